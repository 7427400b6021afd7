// Package sqlengine renders and executes the statements shared by the SQL eventstore engines.
// Dialect specifics (JSON predicates, literal casts) are supplied by the engine packages.
package sqlengine

import (
	"context"
	"errors"
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/doug-martin/goqu/v9/exp"

	"github.com/aegislib/circulation/eventstore"
	"github.com/aegislib/circulation/eventstore/internal/adapters"
	"github.com/aegislib/circulation/eventstore/internal/telemetry"
)

const (
	ColSequenceNumber = "sequence_number"
	ColEventType      = "event_type"
	ColOccurredAt     = "occurred_at"
	ColPayload        = "payload"
	ColMetadata       = "metadata"

	cteContext  = "context"
	aliasMaxSeq = "max_seq"

	errorTypeBuild   = "build_query"
	errorTypeDB      = "database"
	errorTypeScan    = "scan"
	errorTypeDecode  = "decode"
	errorTypeAffects = "rows_affected"

	logMsgBuildSelectQueryFailed   = "failed to build select query"
	logMsgBuildInsertQueryFailed   = "failed to build insert query"
	logMsgDBQueryFailed            = "database query execution failed"
	logMsgDBExecFailed             = "database execution failed during event append"
	logMsgScanRowFailed            = "failed to scan database row"
	logMsgBuildStorableEventFailed = "failed to build storable event from database row"
	logMsgRowsAffectedFailed       = "failed to get rows affected count"
	logMsgCloseRowsFailed          = "failed to close database rows"
)

// Dialect is what differs between the SQL engines.
type Dialect interface {
	// Name is the goqu dialect name.
	Name() string

	// Predicate renders a payload predicate.
	Predicate(p eventstore.FilterPredicate) (exp.Expression, error)

	// EventValues renders the event_type, occurred_at, payload, metadata select expressions of an insert.
	EventValues(e eventstore.StorableEvent) []any
}

// Engine implements Query and Append on top of a DBAdapter.
type Engine struct {
	DB      adapters.DBAdapter
	Table   string
	Dialect Dialect
	Instr   telemetry.Instrumentation
}

// Query returns matching events in sequence order and the highest sequence number among them.
func (en Engine) Query(ctx context.Context, filter eventstore.Filter) (
	eventstore.StorableEvents,
	eventstore.MaxSequenceNumberUint,
	error,
) {

	ctx, span := en.Instr.StartSpan(ctx, telemetry.SpanNameQuery, telemetry.OperationQuery)

	sqlQuery, buildErr := en.BuildSelectQuery(filter)
	if buildErr != nil {
		en.Instr.Failed(ctx, span, telemetry.OperationQuery, errorTypeBuild, logMsgBuildSelectQueryFailed, buildErr)
		return nil, 0, buildErr
	}

	start := time.Now()
	rows, queryErr := en.DB.Query(ctx, sqlQuery)
	en.Instr.Statement(ctx, telemetry.OperationQuery, sqlQuery, time.Since(start))

	if queryErr != nil {
		en.Instr.Failed(ctx, span, telemetry.OperationQuery, errorTypeDB, logMsgDBQueryFailed, queryErr, telemetry.AttrQuery, sqlQuery)
		return nil, 0, errors.Join(eventstore.ErrQueryingEventsFailed, queryErr)
	}

	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			en.Instr.Warn(ctx, logMsgCloseRowsFailed, telemetry.AttrError, closeErr.Error())
		}
	}()

	eventStream := make(eventstore.StorableEvents, 0)
	maxSequenceNumber := eventstore.MaxSequenceNumberUint(0)

	for rows.Next() {
		var (
			sequenceNumber int64
			eventType      string
			occurredAt     time.Time
			payload        []byte
			metadata       []byte
		)

		if scanErr := rows.Scan(&sequenceNumber, &eventType, &occurredAt, &payload, &metadata); scanErr != nil {
			en.Instr.Failed(ctx, span, telemetry.OperationQuery, errorTypeScan, logMsgScanRowFailed, scanErr)
			return nil, 0, errors.Join(eventstore.ErrScanningDBRowFailed, scanErr)
		}

		event, buildEventErr := eventstore.BuildStorableEvent(eventType, occurredAt.UTC(), payload, metadata)
		if buildEventErr != nil {
			en.Instr.Failed(ctx, span, telemetry.OperationQuery, errorTypeDecode, logMsgBuildStorableEventFailed, buildEventErr,
				telemetry.AttrEventCount, len(eventStream))
			return nil, 0, errors.Join(eventstore.ErrBuildingStorableEventFailed, buildEventErr)
		}

		eventStream = append(eventStream, event)
		maxSequenceNumber = eventstore.MaxSequenceNumberUint(sequenceNumber)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		en.Instr.Failed(ctx, span, telemetry.OperationQuery, errorTypeScan, logMsgScanRowFailed, rowsErr)
		return nil, 0, errors.Join(eventstore.ErrScanningDBRowFailed, rowsErr)
	}

	en.Instr.QuerySucceeded(ctx, span, len(eventStream), maxSequenceNumber, time.Since(start))

	return eventStream, maxSequenceNumber, nil
}

// Append inserts all events in one statement, or none of them when the stream moved on.
func (en Engine) Append(
	ctx context.Context,
	filter eventstore.Filter,
	expectedMaxSequenceNumber eventstore.MaxSequenceNumberUint,
	events eventstore.StorableEvents,
) error {

	ctx, span := en.Instr.StartSpan(ctx, telemetry.SpanNameAppend, telemetry.OperationAppend)

	sqlQuery, buildErr := en.BuildInsertQuery(filter, expectedMaxSequenceNumber, events)
	if buildErr != nil {
		en.Instr.Failed(ctx, span, telemetry.OperationAppend, errorTypeBuild, logMsgBuildInsertQueryFailed, buildErr,
			telemetry.AttrEventCount, len(events))
		return buildErr
	}

	start := time.Now()
	result, execErr := en.DB.Exec(ctx, sqlQuery)
	duration := time.Since(start)
	en.Instr.Statement(ctx, telemetry.OperationAppend, sqlQuery, duration)

	if execErr != nil {
		en.Instr.Failed(ctx, span, telemetry.OperationAppend, errorTypeDB, logMsgDBExecFailed, execErr, telemetry.AttrQuery, sqlQuery)
		return errors.Join(eventstore.ErrAppendingEventFailed, execErr)
	}

	rowsAffected, rowsAffectedErr := result.RowsAffected()
	if rowsAffectedErr != nil {
		en.Instr.Failed(ctx, span, telemetry.OperationAppend, errorTypeAffects, logMsgRowsAffectedFailed, rowsAffectedErr)
		return errors.Join(eventstore.ErrGettingRowsAffectedFailed, rowsAffectedErr)
	}

	if rowsAffected < int64(len(events)) {
		en.Instr.AppendConflicted(ctx, span, expectedMaxSequenceNumber, duration)
		return eventstore.ErrConcurrencyConflict
	}

	en.Instr.AppendSucceeded(ctx, span, len(events), duration)

	return nil
}

// BuildSelectQuery renders the query of a dynamic event stream.
func (en Engine) BuildSelectQuery(filter eventstore.Filter) (string, error) {
	selectStmt := goqu.Dialect(en.Dialect.Name()).
		From(en.Table).
		Select(ColSequenceNumber, ColEventType, ColOccurredAt, ColPayload, ColMetadata).
		Order(goqu.I(ColSequenceNumber).Asc())

	selectStmt, whereErr := en.addWhereClause(filter, selectStmt)
	if whereErr != nil {
		return "", whereErr
	}

	sqlQuery, _, toSQLErr := selectStmt.ToSQL()
	if toSQLErr != nil {
		return "", errors.Join(eventstore.ErrBuildingQueryFailed, toSQLErr)
	}

	return sqlQuery, nil
}

// BuildInsertQuery renders
//
//	WITH context AS (SELECT MAX(sequence_number) AS max_seq FROM <table> WHERE <filter>)
//	INSERT INTO <table> (...) SELECT <event 1> FROM context WHERE COALESCE(max_seq, 0) = <expected>
//	UNION ALL SELECT <event 2> FROM context WHERE ...
func (en Engine) BuildInsertQuery(
	filter eventstore.Filter,
	expectedMaxSequenceNumber eventstore.MaxSequenceNumberUint,
	events eventstore.StorableEvents,
) (string, error) {

	if len(events) == 0 {
		return "", errors.Join(eventstore.ErrBuildingQueryFailed, errors.New("no events to append"))
	}

	builder := goqu.Dialect(en.Dialect.Name())

	cteStmt := builder.
		From(en.Table).
		Select(goqu.MAX(ColSequenceNumber).As(aliasMaxSeq))

	cteStmt, whereErr := en.addWhereClause(filter, cteStmt)
	if whereErr != nil {
		return "", whereErr
	}

	unchanged := goqu.COALESCE(goqu.C(aliasMaxSeq), 0).Eq(goqu.V(expectedMaxSequenceNumber))

	var valuesStmt *goqu.SelectDataset
	for _, event := range events {
		eventStmt := builder.
			From(cteContext).
			Select(en.Dialect.EventValues(event)...).
			Where(unchanged)

		if valuesStmt == nil {
			valuesStmt = eventStmt
			continue
		}

		valuesStmt = valuesStmt.UnionAll(eventStmt)
	}

	insertStmt := builder.
		Insert(en.Table).
		With(cteContext, cteStmt).
		Cols(ColEventType, ColOccurredAt, ColPayload, ColMetadata).
		FromQuery(valuesStmt)

	sqlQuery, _, toSQLErr := insertStmt.ToSQL()
	if toSQLErr != nil {
		return "", errors.Join(eventstore.ErrBuildingQueryFailed, toSQLErr)
	}

	return sqlQuery, nil
}

func (en Engine) addWhereClause(filter eventstore.Filter, stmt *goqu.SelectDataset) (*goqu.SelectDataset, error) {
	if filter.IsEmpty() {
		return stmt, nil
	}

	itemExpressions := make([]exp.Expression, 0, len(filter.Items()))

	for _, item := range filter.Items() {
		eventTypeExpressions := make([]exp.Expression, 0, len(item.EventTypes()))
		for _, eventType := range item.EventTypes() {
			eventTypeExpressions = append(eventTypeExpressions, goqu.Ex{ColEventType: eventType})
		}

		predicateExpressions := make([]exp.Expression, 0, len(item.Predicates()))
		for _, predicate := range item.Predicates() {
			expression, err := en.Dialect.Predicate(predicate)
			if err != nil {
				return nil, errors.Join(eventstore.ErrBuildingQueryFailed, err)
			}

			predicateExpressions = append(predicateExpressions, expression)
		}

		itemParts := make([]exp.Expression, 0, 2)
		if len(eventTypeExpressions) > 0 {
			itemParts = append(itemParts, goqu.Or(eventTypeExpressions...))
		}

		if len(predicateExpressions) > 0 {
			if item.AllPredicatesMustMatch() {
				itemParts = append(itemParts, goqu.And(predicateExpressions...))
			} else {
				itemParts = append(itemParts, goqu.Or(predicateExpressions...))
			}
		}

		if len(itemParts) == 0 {
			return stmt, nil // an item without conditions matches everything
		}

		itemExpressions = append(itemExpressions, goqu.And(itemParts...))
	}

	return stmt.Where(goqu.Or(itemExpressions...)), nil
}
