package shell

import (
	"time"

	"github.com/aegislib/circulation/library/core"
)

// HandlerResult represents the outcome of a command handler execution.
// It captures both business outcomes (idempotency, the appended event) and execution
// metadata (retry information) without coupling the handler to observability implementations.
type HandlerResult struct {
	// Idempotent indicates that no state change was needed. It is a business outcome, not an error.
	Idempotent bool

	// Event is the domain event that was appended, nil for idempotent or failed operations.
	Event core.DomainEvent

	// RetryAttempts is the total number of attempts made (1 for no retries, 2+ for retries).
	RetryAttempts int

	// TotalRetryDelay is the cumulative time spent in backoff delays.
	TotalRetryDelay time.Duration

	// LastErrorType is one of "none", "concurrency_conflict", "context_canceled",
	// "context_deadline_exceeded", "other".
	LastErrorType string

	// RetriesExhausted is true only when every attempt failed with a retryable error.
	RetriesExhausted bool
}

// NewSuccessResult creates a HandlerResult for an operation that appended event.
func NewSuccessResult(event core.DomainEvent, retryMetrics RetryMetrics) HandlerResult {
	result := resultFrom(retryMetrics)
	result.Event = event

	return result
}

// NewIdempotentResult creates a HandlerResult for idempotent operations.
func NewIdempotentResult(retryMetrics RetryMetrics) HandlerResult {
	result := resultFrom(retryMetrics)
	result.Idempotent = true

	return result
}

// NewErrorResult creates a HandlerResult for failed operations, keeping the retry metadata.
func NewErrorResult(retryMetrics RetryMetrics) HandlerResult {
	return resultFrom(retryMetrics)
}

func resultFrom(retryMetrics RetryMetrics) HandlerResult {
	return HandlerResult{
		RetryAttempts:    retryMetrics.Attempts,
		TotalRetryDelay:  retryMetrics.TotalDelay,
		LastErrorType:    retryMetrics.LastErrorType,
		RetriesExhausted: retryMetrics.RetriesExhausted,
	}
}
