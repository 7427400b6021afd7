package sqliteengine

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/sqlite3" // dialect registration
	"github.com/doug-martin/goqu/v9/exp"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3" // database/sql driver "sqlite3"

	"github.com/aegislib/circulation/eventstore"
	"github.com/aegislib/circulation/eventstore/internal/adapters"
	"github.com/aegislib/circulation/eventstore/internal/sqlengine"
	"github.com/aegislib/circulation/eventstore/internal/telemetry"
)

const (
	defaultEventTableName = "circulation_events"
	engineName            = "sqlite"
	dialectSQLite         = "sqlite3"
	driverName            = "sqlite3"
	jsonExtractPredicate  = "json_extract(" + sqlengine.ColPayload + ", ?) = ?"
	occurredAtLayout      = "2006-01-02 15:04:05.999999999"
)

// EventStore is a SQLite engine. It is safe for concurrent use.
type EventStore struct {
	db             adapters.DBAdapter
	eventTableName string
	instr          telemetry.Instrumentation
	appendMu       sync.Mutex
}

// Open opens (or creates) the database file at path and returns the sql.DB to hand to NewEventStoreFromSQLDB.
// The pool is limited to one connection.
func Open(path string) (*sql.DB, error) {
	db, err := sql.Open(driverName, DSN(path))
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(1)

	return db, nil
}

// DSN returns a go-sqlite3 connection string for path with WAL journaling and a busy timeout.
func DSN(path string) string {
	return fmt.Sprintf("file:%s?_busy_timeout=5000&_journal_mode=WAL&_foreign_keys=on", path)
}

// NewEventStoreFromSQLDB creates an EventStore on a sql.DB opened with the "sqlite3" driver.
func NewEventStoreFromSQLDB(db *sql.DB, options ...Option) (*EventStore, error) {
	if db == nil {
		return nil, eventstore.ErrNilDatabaseConnection
	}

	return newEventStore(adapters.NewSQLAdapter(db), options...)
}

// NewEventStoreFromSQLX creates an EventStore on a sqlx.DB.
func NewEventStoreFromSQLX(db *sqlx.DB, options ...Option) (*EventStore, error) {
	if db == nil {
		return nil, eventstore.ErrNilDatabaseConnection
	}

	return newEventStore(adapters.NewSQLXAdapter(db), options...)
}

func newEventStore(db adapters.DBAdapter, options ...Option) (*EventStore, error) {
	es := &EventStore{
		db:             db,
		eventTableName: defaultEventTableName,
		instr:          telemetry.Instrumentation{Engine: engineName},
	}

	for _, option := range options {
		if err := option(es); err != nil {
			return nil, err
		}
	}

	return es, nil
}

// Query returns the events of the dynamic event stream described by filter.
func (es *EventStore) Query(ctx context.Context, filter eventstore.Filter) (
	eventstore.StorableEvents,
	eventstore.MaxSequenceNumberUint,
	error,
) {

	return es.engine().Query(ctx, filter)
}

// Append appends the events atomically, or returns eventstore.ErrConcurrencyConflict.
func (es *EventStore) Append(
	ctx context.Context,
	filter eventstore.Filter,
	expectedMaxSequenceNumber eventstore.MaxSequenceNumberUint,
	event eventstore.StorableEvent,
	additionalEvents ...eventstore.StorableEvent,
) error {

	es.appendMu.Lock()
	defer es.appendMu.Unlock()

	return es.engine().Append(ctx, filter, expectedMaxSequenceNumber, append(eventstore.StorableEvents{event}, additionalEvents...))
}

// CreateSchema creates the events table and its index if they don't exist.
func (es *EventStore) CreateSchema(ctx context.Context) error {
	for _, statement := range SchemaStatements(es.eventTableName) {
		if _, err := es.db.Exec(ctx, statement); err != nil {
			return errors.Join(eventstore.ErrAppendingEventFailed, err)
		}
	}

	return nil
}

// SchemaStatements returns the DDL for tableName.
func SchemaStatements(tableName string) []string {
	table := quoteIdentifier(tableName)

	return []string{
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
	sequence_number INTEGER PRIMARY KEY AUTOINCREMENT,
	event_type TEXT NOT NULL,
	occurred_at TIMESTAMP NOT NULL,
	payload TEXT NOT NULL,
	metadata TEXT NOT NULL
)`, table),
		fmt.Sprintf(`CREATE INDEX IF NOT EXISTS %s ON %s (event_type)`, quoteIdentifier(tableName+"_event_type_idx"), table),
	}
}

func quoteIdentifier(name string) string {
	return "`" + strings.ReplaceAll(name, "`", "``") + "`"
}

func (es *EventStore) engine() sqlengine.Engine {
	return sqlengine.Engine{
		DB:      es.db,
		Table:   es.eventTableName,
		Dialect: sqliteDialect{},
		Instr:   es.instr,
	}
}

type sqliteDialect struct{}

func (sqliteDialect) Name() string {
	return dialectSQLite
}

func (sqliteDialect) Predicate(p eventstore.FilterPredicate) (exp.Expression, error) {
	return goqu.L(jsonExtractPredicate, jsonPath(p.Key()), p.Val()), nil
}

func (sqliteDialect) EventValues(e eventstore.StorableEvent) []any {
	return []any{
		goqu.L("?", e.EventType).As(sqlengine.ColEventType),
		goqu.L("?", e.OccurredAt.UTC().Format(occurredAtLayout)).As(sqlengine.ColOccurredAt),
		goqu.L("?", string(e.PayloadJSON)).As(sqlengine.ColPayload),
		goqu.L("?", string(e.MetadataJSON)).As(sqlengine.ColMetadata),
	}
}

// jsonPath quotes key so that keys containing dots address a single member.
func jsonPath(key string) string {
	return `$."` + strings.ReplaceAll(key, `"`, `\"`) + `"`
}
