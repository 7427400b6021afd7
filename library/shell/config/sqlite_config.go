package config

import (
	"context"
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/aegislib/circulation/eventstore/sqliteengine"
)

// SQLiteSQLX opens the SQLite file at path through sqlx, with a single connection.
func SQLiteSQLX(ctx context.Context, path string) (*sqlx.DB, error) {
	db, err := sqlx.Open("sqlite3", sqliteengine.DSN(path))
	if err != nil {
		return nil, errors.Join(ErrOpeningDatabaseFailed, err)
	}

	db.SetMaxOpenConns(1)

	if pingErr := db.PingContext(ctx); pingErr != nil {
		_ = db.Close()
		return nil, errors.Join(ErrOpeningDatabaseFailed, pingErr)
	}

	return db, nil
}
