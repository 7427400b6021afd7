package returncopy

import (
	"context"
	"errors"
	"time"

	"github.com/aegislib/circulation/eventstore"
	"github.com/aegislib/circulation/library/core"
	"github.com/aegislib/circulation/library/shell"
)

// CommandHandler orchestrates the command processing workflow: Query → Unmarshal → Decide → Append.
// All observability concerns are handled by the observable wrapper.
type CommandHandler struct {
	eventStore   shell.EventStore
	catalog      core.CatalogLookup
	random       core.RandomSource
	retryOptions []shell.RetryOption
}

// Option configures a CommandHandler.
type Option func(*CommandHandler) error

// WithRandomSource sets the source for transaction IDs. It must be safe for concurrent use.
func WithRandomSource(random core.RandomSource) Option {
	return func(h *CommandHandler) error {
		if random == nil {
			return shell.ErrNilRandomSource
		}

		h.random = random

		return nil
	}
}

// WithRetryOptions configures the backoff applied to concurrency conflicts.
func WithRetryOptions(options ...shell.RetryOption) Option {
	return func(h *CommandHandler) error {
		h.retryOptions = append(h.retryOptions, options...)
		return nil
	}
}

// NewCommandHandler creates a CommandHandler. Book titles are snapshotted from catalog.
func NewCommandHandler(eventStore shell.EventStore, catalog core.CatalogLookup, opts ...Option) (CommandHandler, error) {
	if eventStore == nil {
		return CommandHandler{}, shell.ErrNilEventStore
	}

	if catalog == nil {
		return CommandHandler{}, shell.ErrNilCatalog
	}

	h := CommandHandler{
		eventStore: eventStore,
		catalog:    catalog,
		random:     shell.NewLockedRand(time.Now().UnixNano()),
	}

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

// executeCommand draws transaction IDs until one is not yet in the ledger.
func (h CommandHandler) executeCommand(ctx context.Context, command Command) (core.DomainEvent, error) {
	var err error

	for range core.MaxIDGenerationAttempts {
		command.TransactionID = core.GenerateTransactionID(h.random)

		var event core.DomainEvent
		event, err = h.executeWithTransactionID(ctx, command)

		if !errors.Is(err, core.ErrConflict) {
			return event, err
		}
	}

	return nil, err
}

func (h CommandHandler) executeWithTransactionID(ctx context.Context, command Command) (core.DomainEvent, error) {
	filter := BuildEventFilter(command.CopyID, command.TransactionID)

	// Command handlers must see their own writes in the read-check-write cycle.
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
