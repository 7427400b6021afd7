package shell

import (
	"context"

	"github.com/aegislib/circulation/eventstore"
)

// QueriesEvents is the read side of an event store, as used by query handlers.
type QueriesEvents interface {
	Query(ctx context.Context, filter eventstore.Filter) (
		eventstore.StorableEvents,
		eventstore.MaxSequenceNumberUint,
		error,
	)
}

// EventStore is the read and append side of an event store, as used by command handlers.
// memengine, postgresengine and sqliteengine all satisfy it.
type EventStore interface {
	QueriesEvents
	Append(
		ctx context.Context,
		filter eventstore.Filter,
		expectedMaxSequenceNumber eventstore.MaxSequenceNumberUint,
		event eventstore.StorableEvent,
		additionalEvents ...eventstore.StorableEvent,
	) error
}

// Command represents the contract for all command types.
// The CommandType method enables polymorphic handling and observability instrumentation.
type Command interface {
	CommandType() string
}

// Query represents the contract for all query types.
type Query interface {
	QueryType() string
}

// CoreCommandHandler processes commands with pure business logic: Query, Decide, Append.
// Handlers return a HandlerResult containing the business outcome and retry metadata.
// It is designed to be wrapped by observable.CommandWrapper.
type CoreCommandHandler[C Command] interface {
	Handle(ctx context.Context, command C) (HandlerResult, error)
}

// CoreQueryHandler retrieves events and projects them into a result.
// It is designed to be wrapped by observable.QueryWrapper.
type CoreQueryHandler[Q Query, R any] interface {
	Handle(ctx context.Context, query Q) (R, error)
}
