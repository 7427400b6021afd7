package adapters

import "context"

// DBAdapter executes fully rendered SQL statements.
type DBAdapter interface {
	Query(ctx context.Context, query string) (DBRows, error)
	Exec(ctx context.Context, query string) (DBResult, error)
}

// DBRows is the cursor returned by DBAdapter.Query.
type DBRows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
	Close() error
}

// DBResult is the outcome of DBAdapter.Exec.
type DBResult interface {
	RowsAffected() (int64, error)
}
