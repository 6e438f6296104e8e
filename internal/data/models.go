package data

import (
	"database/sql"
	"errors"
)

var (
	ErrRecordNotFound = errors.New("record not found")
)

type Models struct {
	Catalog CatalogModel
	Lists   ListModel
	Health  HealthModel
}

func NewModels(db *sql.DB) Models {
	return Models{
		Catalog: CatalogModel{DB: db},
		Lists:   ListModel{DB: db},
		Health:  HealthModel{DB: db},
	}
}
