package camunda

import (
	"context"
	stderrors "errors"
	"testing"
	"time"

	"jobbly-workers/internal/common/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRetryClient(maxRetries int) *Client {
	return &Client{config: &ClientConfig{
		ConnectionTimeout: time.Second,
		RetryConfig: &RetryConfig{
			MaxRetries: maxRetries,
			BaseDelay:  time.Millisecond,
			MaxDelay:   2 * time.Millisecond,
		},
	}}
}

func TestIsRetryableZeebeError(t *testing.T) {
	tests := []struct {
		msg  string
		want bool
	}{
		{"rpc error: code = Unavailable desc = connection refused", true},
		{"context deadline exceeded", true},
		{"RESOURCE_EXHAUSTED: too many jobs", true},
		{"rpc error: code = NotFound desc = job not found", false},
		{"invalid argument: variables", false},
	}
	for _, tt := range tests {
		t.Run(tt.msg, func(t *testing.T) {
			assert.Equal(t, tt.want, isRetryableZeebeError(stderrors.New(tt.msg)))
		})
	}
}

func TestMapZeebeError(t *testing.T) {
	tests := []struct {
		msg  string
		code errors.ErrorCode
	}{
		{"connection reset by peer", errors.ErrCodeBrokerUnavailable},
		{"context deadline exceeded", errors.ErrCodeTimeout},
		{"job with key 7 not found", errors.ErrCodeBrokerRejected},
		{"permission denied", errors.ErrCodeBrokerRejected},
		{"something odd", errors.ErrCodeBrokerUnavailable},
	}
	for _, tt := range tests {
		t.Run(tt.msg, func(t *testing.T) {
			got := mapZeebeError(stderrors.New(tt.msg), "complete-job", 0)
			assert.Equal(t, tt.code, got.Code)
		})
	}
}

func TestExecuteWithRetry_RetriesTransientErrors(t *testing.T) {
	c := newRetryClient(3)
	calls := 0

	res, err := c.ExecuteWithRetry(context.Background(), func(context.Context) (interface{}, error) {
		calls++
		if calls < 3 {
			return nil, stderrors.New("unavailable")
		}
		return "ok", nil
	}, "topology")

	require.NoError(t, err)
	assert.Equal(t, "ok", res)
	assert.Equal(t, 3, calls)
}

func TestExecuteWithRetry_StopsOnPermanentError(t *testing.T) {
	c := newRetryClient(3)
	calls := 0

	_, err := c.ExecuteWithRetry(context.Background(), func(context.Context) (interface{}, error) {
		calls++
		return nil, stderrors.New("invalid argument")
	}, "publish-message")

	require.Error(t, err)
	assert.Equal(t, 1, calls)
	var std *errors.StandardError
	require.True(t, stderrors.As(err, &std))
	assert.Equal(t, errors.ErrCodeBrokerRejected, std.Code)
	assert.False(t, std.Retryable)
}

func TestExecuteWithRetry_GivesUpAfterMaxRetries(t *testing.T) {
	c := newRetryClient(2)
	calls := 0

	_, err := c.ExecuteWithRetry(context.Background(), func(context.Context) (interface{}, error) {
		calls++
		return nil, stderrors.New("connection refused")
	}, "topology")

	require.Error(t, err)
	assert.Equal(t, 3, calls)
	var std *errors.StandardError
	require.True(t, stderrors.As(err, &std))
	assert.Equal(t, errors.ErrCodeBrokerUnavailable, std.Code)
	assert.Contains(t, std.Details, "after 3 attempts")
}

func TestExecuteWithRetry_HonoursCancellation(t *testing.T) {
	c := newRetryClient(5)
	c.config.RetryConfig.BaseDelay = time.Hour
	c.config.RetryConfig.MaxDelay = time.Hour

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.ExecuteWithRetry(ctx, func(context.Context) (interface{}, error) {
		return nil, stderrors.New("unavailable")
	}, "topology")

	var std *errors.StandardError
	require.True(t, stderrors.As(err, &std))
	assert.Equal(t, errors.ErrCodeTimeout, std.Code)
}
