package data

import (
	"context"
	"database/sql"
	"fmt"
)

type HealthModel struct {
	DB *sql.DB
}

// Now reports the store's current timestamp, proving a connection can be
// taken from the pool and used.
func (m *HealthModel) Now(ctx context.Context) ([]Row, error) {
	rows, err := queryRows(ctx, m.DB, `SELECT NOW()`)
	if err != nil {
		return nil, fmt.Errorf("query store time: %w", err)
	}
	return rows, nil
}
