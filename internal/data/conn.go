package data

import (
	"context"
	"database/sql"
	"fmt"
)

// withConn runs fn on a single connection taken from the pool. The connection
// is handed back on every return path, including when fn fails or panics.
func withConn(ctx context.Context, db *sql.DB, fn func(conn *sql.Conn) error) error {
	conn, err := db.Conn(ctx)
	if err != nil {
		return fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Close()

	return fn(conn)
}

// queryRows runs stmt on its own connection and returns every row as a Row.
func queryRows(ctx context.Context, db *sql.DB, stmt string, args ...any) ([]Row, error) {
	var result []Row
	err := withConn(ctx, db, func(conn *sql.Conn) error {
		rows, err := conn.QueryContext(ctx, stmt, args...)
		if err != nil {
			return err
		}
		result, err = scanRows(rows)
		return err
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
