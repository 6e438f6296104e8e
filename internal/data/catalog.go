package data

import (
	"context"
	"database/sql"
	"fmt"
)

type table string

const (
	tableAisles   table = "aisles"
	tableProducts table = "products"
	tableShops    table = "shops"
	tableUsers    table = "users"
)

// CatalogModel serves the flat, whole-table listings.
type CatalogModel struct {
	DB *sql.DB
}

func (m *CatalogModel) ListAisles(ctx context.Context) ([]Row, error) {
	return m.listTable(ctx, tableAisles)
}

func (m *CatalogModel) ListProducts(ctx context.Context) ([]Row, error) {
	return m.listTable(ctx, tableProducts)
}

func (m *CatalogModel) ListShops(ctx context.Context) ([]Row, error) {
	return m.listTable(ctx, tableShops)
}

func (m *CatalogModel) ListUsers(ctx context.Context) ([]Row, error) {
	return m.listTable(ctx, tableUsers)
}

func (m *CatalogModel) listTable(ctx context.Context, t table) ([]Row, error) {
	stmt := `SELECT * FROM ` + string(t)

	rows, err := queryRows(ctx, m.DB, stmt)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", t, err)
	}
	return rows, nil
}
