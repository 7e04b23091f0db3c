package database

import (
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

// NewSQLite opens (creating if absent) the SQLite file at path and
// returns a connection configured for the single-writer access pattern
// of the Result Sink's export step.
func NewSQLite(path string) (*sqlx.DB, error) {
	db, err := sqlx.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	// SQLite serialises writers internally; a wide connection pool only
	// produces SQLITE_BUSY errors under concurrent export.
	db.SetMaxOpenConns(1)
	db.SetConnMaxLifetime(1 * time.Hour)
	db.SetConnMaxIdleTime(30 * time.Minute)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}

	return db, nil
}
