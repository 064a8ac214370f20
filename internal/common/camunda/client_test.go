package camunda

import (
	"context"
	stderrors "errors"
	"testing"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"voice-order-workers/internal/common/errors"
)

func newRetryClient(maxRetries int) *Client {
	return &Client{config: &ClientConfig{
		ConnectionTimeout: time.Second,
		RetryConfig: &RetryConfig{
			MaxRetries: maxRetries,
			BaseDelay:  time.Millisecond,
			MaxDelay:   5 * time.Millisecond,
		},
	}}
}

func TestIsRetryableZeebeError(t *testing.T) {
	assert.True(t, isRetryableZeebeError(stderrors.New("rpc error: code = Unavailable")))
	assert.True(t, isRetryableZeebeError(stderrors.New("context deadline exceeded")))
	assert.False(t, isRetryableZeebeError(stderrors.New("permission denied")))
}

func TestExecuteWithRetry(t *testing.T) {
	t.Run("succeeds after transient errors", func(t *testing.T) {
		calls := 0
		result, err := newRetryClient(3).ExecuteWithRetry(context.Background(), func(context.Context) (interface{}, error) {
			calls++
			if calls < 3 {
				return nil, stderrors.New("connection refused")
			}
			return "ok", nil
		}, "topology")

		require.NoError(t, err)
		assert.Equal(t, "ok", result)
		assert.Equal(t, 3, calls)
	})

	t.Run("stops on non-retryable error", func(t *testing.T) {
		calls := 0
		_, err := newRetryClient(3).ExecuteWithRetry(context.Background(), func(context.Context) (interface{}, error) {
			calls++
			return nil, stderrors.New("permission denied")
		}, "topology")

		require.Error(t, err)
		assert.Equal(t, 1, calls)

		var stdErr *errors.StandardError
		require.ErrorAs(t, err, &stdErr)
		assert.Equal(t, errors.ErrorCode("EXTERNAL_SERVICE_ERROR"), stdErr.Code)
	})

	t.Run("gives up after max retries", func(t *testing.T) {
		calls := 0
		_, err := newRetryClient(2).ExecuteWithRetry(context.Background(), func(context.Context) (interface{}, error) {
			calls++
			return nil, stderrors.New("unavailable")
		}, "topology")

		require.Error(t, err)
		assert.Equal(t, 3, calls)
		assert.Contains(t, err.Error(), "StandardError[EXTERNAL_SERVICE_ERROR]")
	})

	t.Run("honours cancellation", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		client := newRetryClient(5)
		client.config.RetryConfig.BaseDelay = time.Second
		client.config.RetryConfig.MaxDelay = time.Second

		_, err := client.ExecuteWithRetry(ctx, func(context.Context) (interface{}, error) {
			cancel()
			return nil, stderrors.New("timeout")
		}, "topology")

		assert.ErrorIs(t, err, context.Canceled)
	})
}

type countingHandler struct{ calls int }

func (h *countingHandler) Handle(worker.JobClient, entities.Job) { h.calls++ }

func TestInstrument(t *testing.T) {
	h := &countingHandler{}
	wrapped := Instrument("resolve-turn", h, nil)

	wrapped(nil, entities.Job{})
	wrapped(nil, entities.Job{})

	assert.Equal(t, 2, h.calls)
}

func TestClose_WithoutConnection(t *testing.T) {
	assert.NoError(t, newRetryClient(0).Close())
}
