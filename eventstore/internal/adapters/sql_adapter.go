package adapters

import (
	"context"
	"database/sql"

	"github.com/aegislib/circulation/eventstore"
)

// SQLAdapter implements DBAdapter for sql.DB, with an optional read replica.
type SQLAdapter struct {
	primary *sql.DB
	replica *sql.DB
}

func NewSQLAdapter(primary *sql.DB) *SQLAdapter {
	return &SQLAdapter{primary: primary}
}

func NewSQLAdapterWithReplica(primary *sql.DB, replica *sql.DB) *SQLAdapter {
	return &SQLAdapter{primary: primary, replica: replica}
}

func (s *SQLAdapter) Query(ctx context.Context, query string) (DBRows, error) {
	db := s.primary
	if s.replica != nil && eventstore.GetConsistencyLevel(ctx) == eventstore.EventualConsistency {
		db = s.replica
	}

	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}

	return &stdRows{rows: rows}, nil
}

func (s *SQLAdapter) Exec(ctx context.Context, query string) (DBResult, error) {
	result, err := s.primary.ExecContext(ctx, query)
	if err != nil {
		return nil, err
	}

	return result, nil
}

// stdRows wraps sql.Rows, shared by the sql.DB and sqlx.DB adapters.
type stdRows struct {
	rows *sql.Rows
}

func (r *stdRows) Next() bool {
	return r.rows.Next()
}

func (r *stdRows) Scan(dest ...any) error {
	return r.rows.Scan(dest...)
}

func (r *stdRows) Err() error {
	return r.rows.Err()
}

func (r *stdRows) Close() error {
	return r.rows.Close()
}
