package postgresengine_test

import (
	"context"
	"database/sql"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq" // sql.DB driver
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aegislib/circulation/eventstore"
	"github.com/aegislib/circulation/eventstore/postgresengine"
)

const dsnEnv = "CIRCULATION_TEST_POSTGRES_DSN"

type queriesAndAppends interface {
	Query(ctx context.Context, filter eventstore.Filter) (eventstore.StorableEvents, eventstore.MaxSequenceNumberUint, error)
	Append(ctx context.Context, filter eventstore.Filter, expected eventstore.MaxSequenceNumberUint, event eventstore.StorableEvent, more ...eventstore.StorableEvent) error
	CreateSchema(ctx context.Context) error
}

func givenDSN(t *testing.T) string {
	t.Helper()

	dsn := os.Getenv(dsnEnv)
	if dsn == "" {
		t.Skipf("%s is not set", dsnEnv)
	}

	return dsn
}

func givenEventStores(t *testing.T) map[string]queriesAndAppends {
	t.Helper()

	ctx := context.Background()
	dsn := givenDSN(t)
	table := "events_test_" + uuid.NewString()[:8]

	pool, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	sqlDB, err := sql.Open("postgres", dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	sqlxDB := sqlx.NewDb(sqlDB, "postgres")

	pgxStore, err := postgresengine.NewEventStoreFromPGXPool(pool, postgresengine.WithTableName(table))
	require.NoError(t, err)
	sqlStore, err := postgresengine.NewEventStoreFromSQLDB(sqlDB, postgresengine.WithTableName(table))
	require.NoError(t, err)
	sqlxStore, err := postgresengine.NewEventStoreFromSQLX(sqlxDB, postgresengine.WithTableName(table))
	require.NoError(t, err)

	require.NoError(t, pgxStore.CreateSchema(ctx))
	t.Cleanup(func() { _, _ = pool.Exec(context.Background(), `DROP TABLE IF EXISTS "`+table+`"`) })

	return map[string]queriesAndAppends{"pgx": pgxStore, "sql": sqlStore, "sqlx": sqlxStore}
}

func givenIssuedEvent(t *testing.T, copyID string) eventstore.StorableEvent {
	t.Helper()

	event, err := eventstore.BuildStorableEvent(
		"BookCopyIssued",
		time.Now().UTC().Truncate(time.Microsecond),
		[]byte(`{"CopyID":"`+copyID+`","UserID":"member_7"}`),
		[]byte(`{"MessageID":"`+uuid.NewString()+`"}`),
	)
	require.NoError(t, err)

	return event
}

func Test_Postgres_AppendAndQuery_WithEveryAdapter(t *testing.T) {
	for name, es := range givenEventStores(t) {
		t.Run(name, func(t *testing.T) {
			// arrange
			ctx := context.Background()
			copyID := "ACC-" + uuid.NewString()
			filter := eventstore.BuildEventFilter().
				Matching().
				AnyEventTypeOf("BookCopyIssued").
				AndAnyPredicateOf(eventstore.P("CopyID", copyID)).
				Finalize()

			_, maxSeq, err := es.Query(ctx, filter)
			require.NoError(t, err)

			// act
			appendErr := es.Append(ctx, filter, maxSeq, givenIssuedEvent(t, copyID))
			events, maxSeqAfter, queryErr := es.Query(ctx, filter)
			staleErr := es.Append(ctx, filter, maxSeq, givenIssuedEvent(t, copyID))

			// assert
			assert.NoError(t, appendErr)
			assert.NoError(t, queryErr)
			require.Len(t, events, 1)
			assert.Equal(t, "BookCopyIssued", events[0].EventType)
			assert.JSONEq(t, `{"CopyID":"`+copyID+`","UserID":"member_7"}`, string(events[0].PayloadJSON))
			assert.Greater(t, maxSeqAfter, maxSeq)
			assert.ErrorIs(t, staleErr, eventstore.ErrConcurrencyConflict)
		})
	}
}
