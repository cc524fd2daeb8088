package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/arcbank/transactions-service/internal/pkg/logger"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type statusErr int

func (s statusErr) Error() string   { return "status" }
func (s statusErr) HTTPStatus() int { return int(s) }

func testRetrier(maxRetries int) *Retrier {
	return New(Config{
		MaxRetries:    maxRetries,
		BaseDelay:     time.Millisecond,
		MaxDelay:      5 * time.Millisecond,
		Multiplier:    2,
		RetryableFunc: NetworkRetryableFunc(),
	}, &logger.ZapLogger{Logger: zap.NewNop()})
}

func TestExecute_SucceedsAfterTransientFailures(t *testing.T) {
	calls := 0
	err := testRetrier(3).Execute(context.Background(), func(ctx context.Context) error {
		calls++
		if calls < 3 {
			return errors.New("dial tcp: connection refused")
		}
		return nil
	})

	assert.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestExecute_StopsOnNonRetryableError(t *testing.T) {
	calls := 0
	err := testRetrier(3).Execute(context.Background(), func(ctx context.Context) error {
		calls++
		return statusErr(400)
	})

	assert.Equal(t, statusErr(400), err)
	assert.Equal(t, 1, calls)
}

func TestExecute_ExhaustsAttempts(t *testing.T) {
	calls := 0
	err := testRetrier(2).Execute(context.Background(), func(ctx context.Context) error {
		calls++
		return statusErr(503)
	})

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "retry limit exceeded after 3 attempts")
	assert.Equal(t, 3, calls)
}

func TestExecute_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := testRetrier(3).Execute(ctx, func(ctx context.Context) error {
		t.Fatal("must not be called")
		return nil
	})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCalculateDelay_CapsAtMax(t *testing.T) {
	r := testRetrier(5)
	assert.Equal(t, time.Millisecond, r.calculateDelay(0))
	assert.Equal(t, 2*time.Millisecond, r.calculateDelay(1))
	assert.Equal(t, 5*time.Millisecond, r.calculateDelay(10))
}

func TestNetworkRetryableFunc(t *testing.T) {
	retryable := NetworkRetryableFunc()

	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"canceled", context.Canceled, false},
		{"server error", statusErr(502), true},
		{"client error", statusErr(404), false},
		{"timeout text", errors.New("i/o timeout"), true},
		{"business error", errors.New("insufficient funds"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, retryable(tt.err))
		})
	}
}
