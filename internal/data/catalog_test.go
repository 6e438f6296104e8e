package data

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogListings(t *testing.T) {
	tests := []struct {
		name  string
		query string
		list  func(m *CatalogModel, ctx context.Context) ([]Row, error)
	}{
		{"aisles", `SELECT \* FROM aisles`, (*CatalogModel).ListAisles},
		{"products", `SELECT \* FROM products`, (*CatalogModel).ListProducts},
		{"shops", `SELECT \* FROM shops`, (*CatalogModel).ListShops},
		{"users", `SELECT \* FROM users`, (*CatalogModel).ListUsers},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer func() { _ = db.Close() }()

			mock.ExpectQuery(tt.query).WillReturnRows(
				sqlmock.NewRows([]string{"id", "name", "price"}).
					AddRow(int64(1), []byte("first"), []byte("1.50")).
					AddRow(int64(2), "second", nil),
			)

			m := &CatalogModel{DB: db}
			rows, err := tt.list(m, context.Background())
			require.NoError(t, err)
			assert.Equal(t, []Row{
				{"id": int64(1), "name": "first", "price": "1.50"},
				{"id": int64(2), "name": "second", "price": nil},
			}, rows)

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestCatalogListing_EmptyTable(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	mock.ExpectQuery(`SELECT \* FROM aisles`).
		WillReturnRows(sqlmock.NewRows([]string{"aisle_id", "name", "description"}))

	m := &CatalogModel{DB: db}
	rows, err := m.ListAisles(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, rows)
	assert.Empty(t, rows)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCatalogListing_StoreError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	storeErr := errors.New(`relation "shops" does not exist`)
	mock.ExpectQuery(`SELECT \* FROM shops`).WillReturnError(storeErr)

	m := &CatalogModel{DB: db}
	rows, err := m.ListShops(context.Background())
	assert.Nil(t, rows)
	assert.ErrorIs(t, err, storeErr)
	assert.Contains(t, err.Error(), "list shops")

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCatalogListing_RowError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	rowErr := errors.New("connection reset")
	mock.ExpectQuery(`SELECT \* FROM users`).WillReturnRows(
		sqlmock.NewRows([]string{"user_id"}).
			AddRow(int64(1)).
			AddRow(int64(2)).
			RowError(1, rowErr),
	)

	m := &CatalogModel{DB: db}
	rows, err := m.ListUsers(context.Background())
	assert.Nil(t, rows)
	assert.ErrorIs(t, err, rowErr)
}

func TestHealthNow(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	now := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`SELECT NOW\(\)`).WillReturnRows(sqlmock.NewRows([]string{"now"}).AddRow(now))

	m := &HealthModel{DB: db}
	rows, err := m.Now(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []Row{{"now": now}}, rows)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWithConn_AcquireFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	mock.ExpectClose()
	require.NoError(t, db.Close())

	called := false
	err = withConn(context.Background(), db, func(*sql.Conn) error {
		called = true
		return nil
	})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "acquire connection")
	assert.False(t, called)
}
