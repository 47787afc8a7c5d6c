// Package catalog keeps a SQLite inventory of the saves directory: one row
// per savefile plus an append-only event trail (discovered, updated,
// removed, loaded, written). The catalog is a cache over the filesystem —
// the directory stays the source of truth and RefreshDir reconciles the
// two.
package catalog

import "database/sql"

// Store wraps the catalog database. Open one with dbopen and the package
// Schema:
//
//	db, err := dbopen.Open(path, dbopen.WithMkdirAll(), dbopen.WithSchema(catalog.Schema))
//	st := catalog.NewStore(db)
type Store struct {
	DB *sql.DB
}

// NewStore creates a Store from an already-opened database connection.
func NewStore(db *sql.DB) *Store {
	return &Store{DB: db}
}
