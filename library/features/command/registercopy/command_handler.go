package registercopy

import (
	"context"

	"github.com/aegislib/circulation/eventstore"
	"github.com/aegislib/circulation/library/core"
	"github.com/aegislib/circulation/library/shell"
)

// CommandHandler orchestrates the command processing workflow: Query → Unmarshal → Decide → Append.
type CommandHandler struct {
	eventStore   shell.EventStore
	catalog      core.CatalogLookup
	retryOptions []shell.RetryOption
}

// Option configures a CommandHandler.
type Option func(*CommandHandler) error

// WithRetryOptions configures the backoff applied to concurrency conflicts.
func WithRetryOptions(options ...shell.RetryOption) Option {
	return func(h *CommandHandler) error {
		h.retryOptions = append(h.retryOptions, options...)
		return nil
	}
}

// NewCommandHandler creates a CommandHandler. Copies may only reference books in catalog.
func NewCommandHandler(eventStore shell.EventStore, catalog core.CatalogLookup, opts ...Option) (CommandHandler, error) {
	if eventStore == nil {
		return CommandHandler{}, shell.ErrNilEventStore
	}

	if catalog == nil {
		return CommandHandler{}, shell.ErrNilCatalog
	}

	h := CommandHandler{eventStore: eventStore, catalog: catalog}

	for _, opt := range opts {
		if err := opt(&h); err != nil {
			return CommandHandler{}, err
		}
	}

	return h, nil
}

// Handle executes the command, retrying on concurrency conflicts.
func (h CommandHandler) Handle(ctx context.Context, command Command) (shell.HandlerResult, error) {
	var event core.DomainEvent

	retryMetrics, err := shell.RetryWithExponentialBackoff(ctx, func(retryCtx context.Context) error {
		var execErr error
		event, execErr = h.executeCommand(retryCtx, command)

		return execErr
	}, h.retryOptions...)

	if err != nil {
		return shell.NewErrorResult(retryMetrics), err
	}

	return shell.NewSuccessResult(event, retryMetrics), nil
}

func (h CommandHandler) executeCommand(ctx context.Context, command Command) (core.DomainEvent, error) {
	filter := BuildEventFilter(command.Copy.ID)
	ctx = eventstore.WithStrongConsistency(ctx)

	storableEvents, maxSequenceNumber, err := h.eventStore.Query(ctx, filter)
	if err != nil {
		return nil, err
	}

	history, err := shell.DomainEventsFrom(storableEvents)
	if err != nil {
		return nil, err
	}

	result := Decide(history, command, h.catalog)

	if decisionErr := result.HasError(); decisionErr != nil {
		return nil, decisionErr
	}

	storableEvent, err := shell.StorableEventFrom(result.Event, shell.NewCommandEventMetadata())
	if err != nil {
		return nil, err
	}

	if err = h.eventStore.Append(ctx, filter, maxSequenceNumber, storableEvent); err != nil {
		return nil, err
	}

	return result.Event, nil
}
