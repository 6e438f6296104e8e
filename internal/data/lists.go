package data

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
)

// treeQuery selects each user together with five flat JSON arrays holding the
// rows of every branch below that user. Nesting happens in assemble, so one
// round trip is enough and the store only filters and orders.
const treeQuery = `
	SELECT
		u.user_id, u.first_name, u.last_name, u.email,
		COALESCE((
			SELECT json_agg(json_build_object(
				'list_shop_id', sls.list_shop_id,
				'shop_name', s.shop_name,
				'address', s.address,
				'contact_number', s.contact_number,
				'website', s.website
			) ORDER BY sls.list_shop_id)
			FROM shopping_list_shops sls
			JOIN shops s ON s.shop_id = sls.shop_id
			WHERE sls.user_id = u.user_id
		), '[]'::json) AS list_shops,
		COALESCE((
			SELECT json_agg(json_build_object(
				'list_shop_id', lsa.list_shop_id,
				'aisle_id', a.aisle_id,
				'name', a.name,
				'description', a.description
			) ORDER BY lsa.list_shop_id, a.aisle_id)
			FROM list_shop_aisles lsa
			JOIN shopping_list_shops sls ON sls.list_shop_id = lsa.list_shop_id
			JOIN aisles a ON a.aisle_id = lsa.aisle_id
			WHERE sls.user_id = u.user_id
		), '[]'::json) AS aisles,
		COALESCE((
			SELECT json_agg(json_build_object(
				'list_shop_id', lap.list_shop_id,
				'aisle_id', lap.aisle_id,
				'product_id', p.product_id,
				'name', p.name,
				'notes', lap.notes,
				'quantity', lap.quantity,
				'price', lap.price
			) ORDER BY lap.list_shop_id, lap.aisle_id, p.product_id)
			FROM list_aisle_products lap
			JOIN shopping_list_shops sls ON sls.list_shop_id = lap.list_shop_id
			JOIN products p ON p.product_id = lap.product_id
			WHERE sls.user_id = u.user_id
		), '[]'::json) AS products,
		COALESCE((
			SELECT json_agg(json_build_object(
				'list_id', tl.list_id,
				'name', tl.name,
				'description', tl.description
			) ORDER BY tl.list_id)
			FROM todo_lists tl
			WHERE tl.user_id = u.user_id
		), '[]'::json) AS todo_lists,
		COALESCE((
			SELECT json_agg(json_build_object(
				'list_id', te.list_id,
				'entry_id', te.entry_id,
				'name', te.name,
				'description', te.description,
				'due_date', te.due_date,
				'status', te.status
			) ORDER BY te.list_id, te.entry_id)
			FROM todo_entries te
			JOIN todo_lists tl ON tl.list_id = te.list_id
			WHERE tl.user_id = u.user_id
		), '[]'::json) AS todo_entries
	FROM users u`

// ListModel builds user trees: a user with their shopping lists (shops, aisles,
// products) and to-do lists (entries).
type ListModel struct {
	DB *sql.DB
}

// GetUserTree returns the tree for the user with the given id. The id is
// handed to the store as is. ErrRecordNotFound means no such user.
func (m *ListModel) GetUserTree(ctx context.Context, id string) (*UserTree, error) {
	stmt := treeQuery + `
	WHERE u.user_id = $1`

	trees, err := m.queryTrees(ctx, stmt, id)
	if err != nil {
		return nil, fmt.Errorf("get tree for user %q: %w", id, err)
	}
	if len(trees) == 0 {
		return nil, ErrRecordNotFound
	}
	return trees[0], nil
}

// ListUserTrees returns one tree per user, ordered by user id. A store with no
// users yields an empty slice.
func (m *ListModel) ListUserTrees(ctx context.Context) ([]*UserTree, error) {
	stmt := treeQuery + `
	ORDER BY u.user_id`

	trees, err := m.queryTrees(ctx, stmt)
	if err != nil {
		return nil, fmt.Errorf("list user trees: %w", err)
	}
	return trees, nil
}

func (m *ListModel) queryTrees(ctx context.Context, stmt string, args ...any) ([]*UserTree, error) {
	trees := []*UserTree{}

	err := withConn(ctx, m.DB, func(conn *sql.Conn) error {
		rows, err := conn.QueryContext(ctx, stmt, args...)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			tr, err := scanTreeRows(rows)
			if err != nil {
				return err
			}
			trees = append(trees, tr.assemble())
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}

	return trees, nil
}

func scanTreeRows(rows *sql.Rows) (treeRows, error) {
	var (
		tr                                              treeRows
		listShops, aisles, products, todoLists, entries []byte
	)

	err := rows.Scan(
		&tr.user.UserID, &tr.user.FirstName, &tr.user.LastName, &tr.user.Email,
		&listShops, &aisles, &products, &todoLists, &entries,
	)
	if err != nil {
		return treeRows{}, err
	}

	branches := []struct {
		column string
		raw    []byte
		dst    any
	}{
		{"list_shops", listShops, &tr.listShops},
		{"aisles", aisles, &tr.aisles},
		{"products", products, &tr.products},
		{"todo_lists", todoLists, &tr.todoLists},
		{"todo_entries", entries, &tr.entries},
	}
	for _, b := range branches {
		if len(b.raw) == 0 {
			continue
		}
		if err := json.Unmarshal(b.raw, b.dst); err != nil {
			return treeRows{}, fmt.Errorf("decode %s for user %d: %w", b.column, tr.user.UserID, err)
		}
	}

	return tr, nil
}
