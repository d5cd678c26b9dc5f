package httpclient_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matynz/danger/internal/adapter/httpclient"
)

func TestDefaultRetryConfig(t *testing.T) {
	config := httpclient.DefaultRetryConfig()

	assert.Equal(t, 3, config.MaxRetries)
	assert.Equal(t, 2*time.Second, config.InitialBackoff)
	assert.Equal(t, 32*time.Second, config.MaxBackoff)
	assert.Equal(t, 2.0, config.Multiplier)
}

func TestExponentialBackoff(t *testing.T) {
	config := httpclient.RetryConfig{
		MaxRetries:     5,
		InitialBackoff: 2 * time.Second,
		MaxBackoff:     32 * time.Second,
		Multiplier:     2.0,
	}

	tests := []struct {
		name    string
		attempt int
		minWait time.Duration
		maxWait time.Duration
	}{
		{"attempt 0", 0, 1500 * time.Millisecond, 2500 * time.Millisecond}, // 2s ± 25%
		{"attempt 1", 1, 3 * time.Second, 5 * time.Second},                 // 4s ± 25%
		{"attempt 2", 2, 6 * time.Second, 10 * time.Second},                // 8s ± 25%
		{"attempt 4", 4, 24 * time.Second, 32 * time.Second},               // 32s (capped)
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Run multiple times to verify jitter stays in range
			for i := 0; i < 10; i++ {
				backoff := httpclient.ExponentialBackoff(tt.attempt, config)
				assert.GreaterOrEqual(t, backoff, tt.minWait, "backoff too short")
				assert.LessOrEqual(t, backoff, tt.maxWait, "backoff too long")
			}
		})
	}
}

func TestShouldRetry(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{
			name: "service unavailable should retry",
			err:  httpclient.NewServiceUnavailableError("github", "overloaded"),
			want: true,
		},
		{
			name: "timeout should retry",
			err:  httpclient.NewTimeoutError("github", "timed out"),
			want: true,
		},
		{
			name: "permission error should not retry",
			err:  httpclient.NewPermissionError("github", "forbidden"),
			want: false,
		},
		{
			name: "not found should not retry",
			err:  httpclient.NewNotFoundError("github", "missing"),
			want: false,
		},
		{
			name: "invalid request should not retry",
			err:  httpclient.NewInvalidRequestError("github", "bad request"),
			want: false,
		},
		{
			name: "wrapped typed error should retry",
			err:  errors.Join(errors.New("outer"), httpclient.NewTimeoutError("github", "timed out")),
			want: true,
		},
		{
			name: "non-API error should not retry",
			err:  errors.New("generic error"),
			want: false,
		},
		{
			name: "nil error should not retry",
			err:  nil,
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, httpclient.ShouldRetry(tt.err))
		})
	}
}

func TestRetryWithBackoff_Success(t *testing.T) {
	attempts := 0
	operation := func(ctx context.Context) error {
		attempts++
		return nil
	}

	err := httpclient.RetryWithBackoff(context.Background(), operation, fastRetryConfig())
	require.NoError(t, err)
	assert.Equal(t, 1, attempts, "should succeed on first attempt")
}

func TestRetryWithBackoff_RetryableError(t *testing.T) {
	attempts := 0
	operation := func(ctx context.Context) error {
		attempts++
		if attempts < 3 {
			return httpclient.NewServiceUnavailableError("github", "overloaded")
		}
		return nil
	}

	err := httpclient.RetryWithBackoff(context.Background(), operation, fastRetryConfig())
	require.NoError(t, err)
	assert.Equal(t, 3, attempts, "should retry twice then succeed")
}

func TestRetryWithBackoff_NonRetryableError(t *testing.T) {
	attempts := 0
	operation := func(ctx context.Context) error {
		attempts++
		return httpclient.NewPermissionError("github", "write access required")
	}

	err := httpclient.RetryWithBackoff(context.Background(), operation, fastRetryConfig())
	require.Error(t, err)
	assert.Equal(t, 1, attempts, "should not retry non-retryable error")
	assert.Contains(t, err.Error(), "write access required")
}

func TestRetryWithBackoff_MaxRetriesExceeded(t *testing.T) {
	attempts := 0
	operation := func(ctx context.Context) error {
		attempts++
		return httpclient.NewServiceUnavailableError("github", "still down")
	}

	err := httpclient.RetryWithBackoff(context.Background(), operation, fastRetryConfig())
	require.Error(t, err)
	assert.Equal(t, 4, attempts, "should try once + 3 retries")
	assert.Contains(t, err.Error(), "still down")
}

func TestRetryWithBackoff_ContextCanceled(t *testing.T) {
	attempts := 0
	operation := func(ctx context.Context) error {
		attempts++
		return httpclient.NewServiceUnavailableError("github", "overloaded")
	}

	config := httpclient.RetryConfig{
		MaxRetries:     5,
		InitialBackoff: 50 * time.Millisecond,
		MaxBackoff:     500 * time.Millisecond,
		Multiplier:     2.0,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 75*time.Millisecond)
	defer cancel()

	err := httpclient.RetryWithBackoff(ctx, operation, config)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.LessOrEqual(t, attempts, 3, "should respect context cancellation")
}

func TestRetryWithBackoff_GenericError(t *testing.T) {
	attempts := 0
	operation := func(ctx context.Context) error {
		attempts++
		return errors.New("generic error")
	}

	err := httpclient.RetryWithBackoff(context.Background(), operation, fastRetryConfig())
	require.Error(t, err)
	assert.Equal(t, 1, attempts, "should not retry generic errors")
	assert.Equal(t, "generic error", err.Error())
}

func fastRetryConfig() httpclient.RetryConfig {
	return httpclient.RetryConfig{
		MaxRetries:     3,
		InitialBackoff: time.Millisecond,
		MaxBackoff:     10 * time.Millisecond,
		Multiplier:     2.0,
	}
}
