package postgresengine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aegislib/circulation/eventstore"
)

func Test_BuildSelectQuery_RendersTypesAndJSONBContainment(t *testing.T) {
	// arrange
	es := &EventStore{eventTableName: defaultEventTableName}
	filter := eventstore.BuildEventFilter().
		Matching().
		AnyEventTypeOf("BookCopyIssued", "BookCopyReturned").
		AndAnyPredicateOf(eventstore.P("CopyID", "ACC-1"), eventstore.P("TransactionID", "TXN-123456")).
		Finalize()

	// act
	sqlQuery, err := es.engine().BuildSelectQuery(filter)

	// assert
	require.NoError(t, err)
	assert.Contains(t, sqlQuery, `FROM "circulation_events"`)
	assert.Contains(t, sqlQuery, `"event_type" = 'BookCopyIssued'`)
	assert.Contains(t, sqlQuery, `"event_type" = 'BookCopyReturned'`)
	assert.Contains(t, sqlQuery, `payload @> '{"CopyID":"ACC-1"}'::jsonb`)
	assert.Contains(t, sqlQuery, `payload @> '{"TransactionID":"TXN-123456"}'::jsonb`)
	assert.Contains(t, sqlQuery, `ORDER BY "sequence_number" ASC`)
}

func Test_BuildSelectQuery_EmptyFilterHasNoWhereClause(t *testing.T) {
	es := &EventStore{eventTableName: "events"}

	sqlQuery, err := es.engine().BuildSelectQuery(eventstore.BuildEventFilter().MatchingAnyEvent())

	require.NoError(t, err)
	assert.NotContains(t, sqlQuery, "WHERE")
}

func Test_BuildSelectQuery_EscapesPredicateValues(t *testing.T) {
	es := &EventStore{eventTableName: defaultEventTableName}
	filter := eventstore.BuildEventFilter().Matching().AnyPredicateOf(eventstore.P("Name", "O'Brien")).Finalize()

	sqlQuery, err := es.engine().BuildSelectQuery(filter)

	require.NoError(t, err)
	assert.Contains(t, sqlQuery, `'{"Name":"O''Brien"}'::jsonb`)
}

func Test_BuildInsertQuery_GuardsOnExpectedSequence(t *testing.T) {
	// arrange
	es := &EventStore{eventTableName: defaultEventTableName}
	filter := eventstore.BuildEventFilter().
		Matching().
		AnyEventTypeOf("BookCopyIssued").
		AndAnyPredicateOf(eventstore.P("CopyID", "ACC-1")).
		Finalize()
	first, err := eventstore.BuildStorableEventWithEmptyMetadata("BookCopyIssued", time.Unix(0, 0).UTC(), []byte(`{"CopyID":"ACC-1"}`))
	require.NoError(t, err)
	second, err := eventstore.BuildStorableEventWithEmptyMetadata("BookCopyReturned", time.Unix(1, 0).UTC(), []byte(`{"CopyID":"ACC-1"}`))
	require.NoError(t, err)

	// act
	sqlQuery, buildErr := es.engine().BuildInsertQuery(filter, 3, eventstore.StorableEvents{first, second})

	// assert
	require.NoError(t, buildErr)
	assert.Contains(t, sqlQuery, `INSERT INTO "circulation_events" ("event_type", "occurred_at", "payload", "metadata")`)
	assert.Contains(t, sqlQuery, `MAX("sequence_number") AS "max_seq"`)
	assert.Contains(t, sqlQuery, `COALESCE("max_seq", 0) = 3`)
	assert.Contains(t, sqlQuery, "UNION ALL")
	assert.Contains(t, sqlQuery, `'{"CopyID":"ACC-1"}'::jsonb`)
}

func Test_SchemaStatements_QuoteTableName(t *testing.T) {
	statements := SchemaStatements("library_events")

	require.Len(t, statements, 3)
	assert.Contains(t, statements[0], `CREATE TABLE IF NOT EXISTS "library_events"`)
	assert.Contains(t, statements[2], `USING gin (payload jsonb_path_ops)`)
}
