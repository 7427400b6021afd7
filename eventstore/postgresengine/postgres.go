package postgresengine

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // dialect registration
	"github.com/doug-martin/goqu/v9/exp"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"
	jsoniter "github.com/json-iterator/go"

	"github.com/aegislib/circulation/eventstore"
	"github.com/aegislib/circulation/eventstore/internal/adapters"
	"github.com/aegislib/circulation/eventstore/internal/sqlengine"
	"github.com/aegislib/circulation/eventstore/internal/telemetry"
)

const (
	defaultEventTableName = "circulation_events"
	engineName            = "postgres"
	dialectPostgres       = "postgres"
	castText              = "?::text"
	castTimestamp         = "?::timestamp with time zone"
	castJsonb             = "?::jsonb"
	containsPredicate     = sqlengine.ColPayload + " @> ?::jsonb"
)

// EventStore is a PostgreSQL engine. It is safe for concurrent use.
type EventStore struct {
	db             adapters.DBAdapter
	eventTableName string
	instr          telemetry.Instrumentation
}

// NewEventStoreFromPGXPool creates an EventStore on a pgx pool.
func NewEventStoreFromPGXPool(db *pgxpool.Pool, options ...Option) (*EventStore, error) {
	if db == nil {
		return nil, eventstore.ErrNilDatabaseConnection
	}

	return newEventStore(adapters.NewPGXAdapter(db), options...)
}

// NewEventStoreFromPGXPoolAndReplica serves eventually consistent reads from replica.
func NewEventStoreFromPGXPoolAndReplica(primary *pgxpool.Pool, replica *pgxpool.Pool, options ...Option) (*EventStore, error) {
	if primary == nil || replica == nil {
		return nil, eventstore.ErrNilDatabaseConnection
	}

	return newEventStore(adapters.NewPGXAdapterWithReplica(primary, replica), options...)
}

// NewEventStoreFromSQLDB creates an EventStore on a sql.DB, typically opened with the lib/pq driver.
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

	return es.engine().Append(ctx, filter, expectedMaxSequenceNumber, append(eventstore.StorableEvents{event}, additionalEvents...))
}

// CreateSchema creates the events table and its indexes if they don't exist.
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
	sequence_number BIGSERIAL PRIMARY KEY,
	event_type TEXT NOT NULL,
	occurred_at TIMESTAMP WITH TIME ZONE NOT NULL,
	payload JSONB NOT NULL,
	metadata JSONB NOT NULL
)`, table),
		fmt.Sprintf(`CREATE INDEX IF NOT EXISTS %s ON %s (event_type)`, quoteIdentifier(tableName+"_event_type_idx"), table),
		fmt.Sprintf(`CREATE INDEX IF NOT EXISTS %s ON %s USING gin (payload jsonb_path_ops)`, quoteIdentifier(tableName+"_payload_idx"), table),
	}
}

func quoteIdentifier(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

func (es *EventStore) engine() sqlengine.Engine {
	return sqlengine.Engine{
		DB:      es.db,
		Table:   es.eventTableName,
		Dialect: postgresDialect{},
		Instr:   es.instr,
	}
}

type postgresDialect struct{}

func (postgresDialect) Name() string {
	return dialectPostgres
}

// Predicate renders payload @> '{"key":"val"}'.
func (postgresDialect) Predicate(p eventstore.FilterPredicate) (exp.Expression, error) {
	containment, err := jsoniter.ConfigFastest.MarshalToString(map[string]string{p.Key(): p.Val()})
	if err != nil {
		return nil, err
	}

	return goqu.L(containsPredicate, containment), nil
}

func (postgresDialect) EventValues(e eventstore.StorableEvent) []any {
	return []any{
		goqu.L(castText, e.EventType).As(sqlengine.ColEventType),
		goqu.L(castTimestamp, e.OccurredAt).As(sqlengine.ColOccurredAt),
		goqu.L(castJsonb, string(e.PayloadJSON)).As(sqlengine.ColPayload),
		goqu.L(castJsonb, string(e.MetadataJSON)).As(sqlengine.ColMetadata),
	}
}
