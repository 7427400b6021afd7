package shell_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/aegislib/circulation/eventstore"
	"github.com/aegislib/circulation/library/shell"
	"github.com/aegislib/circulation/testutil/helper"
)

func Test_RetryWithExponentialBackoff_Success_NoRetries(t *testing.T) {
	// arrange
	callCount := 0
	fn := func(_ context.Context) error {
		callCount++
		return nil
	}

	// act
	meta, err := shell.RetryWithExponentialBackoff(context.Background(), fn)

	// assert
	assert.NoError(t, err)
	assert.Equal(t, 1, callCount)
	assert.Equal(t, 1, meta.Attempts)
	assert.Equal(t, time.Duration(0), meta.TotalDelay)
	assert.Equal(t, "none", meta.LastErrorType)
	assert.False(t, meta.RetriesExhausted)
}

func Test_RetryWithExponentialBackoff_RetryOnConcurrencyConflict(t *testing.T) {
	// arrange
	callCount := 0
	fn := func(_ context.Context) error {
		callCount++
		if callCount < 3 {
			return eventstore.ErrConcurrencyConflict
		}
		return nil
	}

	// act
	meta, err := shell.RetryWithExponentialBackoff(context.Background(), fn, shell.WithBaseDelay(time.Millisecond))

	// assert
	assert.NoError(t, err)
	assert.Equal(t, 3, callCount)
	assert.Equal(t, 3, meta.Attempts)
	assert.Greater(t, meta.TotalDelay, time.Duration(0))
	assert.Equal(t, "none", meta.LastErrorType)
}

func Test_RetryWithExponentialBackoff_OtherErrorsFailFast(t *testing.T) {
	// arrange
	permanent := errors.New("boom")
	callCount := 0
	fn := func(_ context.Context) error {
		callCount++
		return permanent
	}

	// act
	meta, err := shell.RetryWithExponentialBackoff(context.Background(), fn)

	// assert
	assert.ErrorIs(t, err, permanent)
	assert.Equal(t, 1, callCount)
	assert.Equal(t, "other", meta.LastErrorType)
	assert.False(t, meta.RetriesExhausted)
}

func Test_RetryWithExponentialBackoff_ExhaustsRetriesAndRecordsMetrics(t *testing.T) {
	// arrange
	metrics := helper.NewMetricsCollectorSpy()
	fn := func(_ context.Context) error {
		return eventstore.ErrConcurrencyConflict
	}

	// act
	meta, err := shell.RetryWithExponentialBackoff(context.Background(), fn,
		shell.WithMaxAttempts(3),
		shell.WithBaseDelay(time.Millisecond),
		shell.WithJitterFactor(0),
		shell.WithMetrics(metrics, "IssueCopy"),
	)

	// assert
	assert.ErrorIs(t, err, eventstore.ErrConcurrencyConflict)
	assert.Equal(t, 3, meta.Attempts)
	assert.True(t, meta.RetriesExhausted)
	assert.Equal(t, "concurrency_conflict", meta.LastErrorType)
	assert.Equal(t, 3*time.Millisecond, meta.TotalDelay)
	assert.Equal(t, 2, metrics.CounterCount(shell.CommandHandlerRetriesMetric, map[string]string{"command_type": "IssueCopy"}))
	assert.Equal(t, 1, metrics.CounterCount(shell.CommandHandlerMaxRetriesReachedMetric,
		map[string]string{"command_type": "IssueCopy", "final_error_type": "concurrency_conflict"}))
	assert.True(t, metrics.HasDuration(shell.CommandHandlerRetryDelayMetric, map[string]string{"attempt_number": "2"}))
}

func Test_RetryWithExponentialBackoff_StopsOnCanceledContext(t *testing.T) {
	// arrange
	ctx, cancel := context.WithCancel(context.Background())
	fn := func(_ context.Context) error {
		cancel()
		return eventstore.ErrConcurrencyConflict
	}

	// act
	meta, err := shell.RetryWithExponentialBackoff(ctx, fn, shell.WithBaseDelay(time.Second))

	// assert
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, meta.Attempts)
	assert.Equal(t, "context_canceled", meta.LastErrorType)
}

func Test_RetryWithExponentialBackoff_InvalidOptions(t *testing.T) {
	fn := func(_ context.Context) error { return nil }

	testCases := []struct {
		name    string
		option  shell.RetryOption
		wantErr error
	}{
		{name: "max attempts", option: shell.WithMaxAttempts(0), wantErr: shell.ErrInvalidMaxAttempts},
		{name: "base delay", option: shell.WithBaseDelay(-time.Second), wantErr: shell.ErrNegativeBaseDelay},
		{name: "jitter", option: shell.WithJitterFactor(1.5), wantErr: shell.ErrInvalidJitterFactor},
		{name: "nil collector", option: shell.WithMetrics(nil, "IssueCopy"), wantErr: shell.ErrNilMetricsCollector},
		{name: "empty command type", option: shell.WithMetrics(helper.NewMetricsCollectorSpy(), ""), wantErr: shell.ErrEmptyCommandType},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := shell.RetryWithExponentialBackoff(context.Background(), fn, tc.option)

			assert.ErrorIs(t, err, tc.wantErr)
		})
	}
}
