package engine

import (
	"errors"
	"time"

	"github.com/aegislib/circulation/library/core"
	"github.com/aegislib/circulation/library/shell"
)

const (
	defaultQueryTimeout = 2 * time.Second
	defaultChunkSize    = 250
)

var (
	// ErrNilClock is returned when WithClock receives nil.
	ErrNilClock = errors.New("clock must not be nil")

	// ErrEmptyOperator is returned when WithOperator receives a blank identity.
	ErrEmptyOperator = errors.New("operator must not be empty")

	// ErrNonPositiveQueryTimeout is returned when WithQueryTimeout receives zero or less.
	ErrNonPositiveQueryTimeout = errors.New("query timeout must be positive")

	// ErrNonPositiveChunkSize is returned when WithBootstrapChunkSize receives zero or less.
	ErrNonPositiveChunkSize = errors.New("bootstrap chunk size must be positive")

	// ErrNilApprovalHandler is returned when WithApprovalHandler receives nil.
	ErrNilApprovalHandler = errors.New("approval handler must not be nil")
)

// Option configures an Engine.
type Option func(*Engine) error

// WithClock replaces time.Now as the source of event timestamps.
func WithClock(clock func() time.Time) Option {
	return func(e *Engine) error {
		if clock == nil {
			return ErrNilClock
		}

		e.clock = clock

		return nil
	}
}

// WithOperator sets the identity recorded as handledBy and resolvedBy.
func WithOperator(operator string) Option {
	return func(e *Engine) error {
		if operator == "" {
			return ErrEmptyOperator
		}

		e.operator = operator

		return nil
	}
}

// WithQueryTimeout bounds every query. The default is two seconds.
func WithQueryTimeout(timeout time.Duration) Option {
	return func(e *Engine) error {
		if timeout <= 0 {
			return ErrNonPositiveQueryTimeout
		}

		e.queryTimeout = timeout

		return nil
	}
}

// WithRandomSource replaces the source of transaction and library ids.
// It must be safe for concurrent use, see shell.LockedRand.
func WithRandomSource(random core.RandomSource) Option {
	return func(e *Engine) error {
		if random == nil {
			return shell.ErrNilRandomSource
		}

		e.random = random

		return nil
	}
}

// WithRetryOptions configures the concurrency conflict retries of every command handler.
func WithRetryOptions(options ...shell.RetryOption) Option {
	return func(e *Engine) error {
		e.retryOptions = append(e.retryOptions, options...)
		return nil
	}
}

// WithBootstrapChunkSize sets how many seed events Bootstrap appends at once.
func WithBootstrapChunkSize(size int) Option {
	return func(e *Engine) error {
		if size <= 0 {
			return ErrNonPositiveChunkSize
		}

		e.chunkSize = size

		return nil
	}
}

// WithApprovalHandler registers a hook that runs after a request was approved.
func WithApprovalHandler(handler ApprovalHandler) Option {
	return func(e *Engine) error {
		if handler == nil {
			return ErrNilApprovalHandler
		}

		e.approvalHandlers = append(e.approvalHandlers, handler)

		return nil
	}
}

// WithEnrollOnApproval registers the applicant of an approved enrollment request as a member.
func WithEnrollOnApproval() Option {
	return func(e *Engine) error {
		e.approvalHandlers = append(e.approvalHandlers, EnrollOnApproval(e))
		return nil
	}
}

// WithLogger sets the basic logger of the command and query handlers.
func WithLogger(logger shell.Logger) Option {
	return func(e *Engine) error {
		e.logger = logger
		return nil
	}
}

// WithContextualLogger takes precedence over WithLogger.
func WithContextualLogger(logger shell.ContextualLogger) Option {
	return func(e *Engine) error {
		e.contextualLogger = logger
		return nil
	}
}

// WithMetrics records handler metrics, including retries.
func WithMetrics(collector shell.MetricsCollector) Option {
	return func(e *Engine) error {
		e.metrics = collector
		return nil
	}
}

// WithTracing opens a span per handled command and query.
func WithTracing(collector shell.TracingCollector) Option {
	return func(e *Engine) error {
		e.tracing = collector
		return nil
	}
}
