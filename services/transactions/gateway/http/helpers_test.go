package http

import (
	"time"

	"go.uber.org/zap/zapcore"

	"github.com/arcbank/transactions-service/internal/pkg/circuitbreaker"
	httpclient "github.com/arcbank/transactions-service/internal/pkg/http"
	"github.com/arcbank/transactions-service/internal/pkg/logger"
	"github.com/arcbank/transactions-service/internal/pkg/retry"
)

func newTestClient(name string) *httpclient.EnhancedClient {
	return httpclient.NewEnhancedClient(logger.NewFromCore(zapcore.NewNopCore()), httpclient.Config{
		Name:    name,
		Timeout: 2 * time.Second,
		Retry: &retry.Config{
			MaxRetries:    2,
			BaseDelay:     time.Millisecond,
			MaxDelay:      5 * time.Millisecond,
			Multiplier:    2,
			RetryableFunc: retry.NetworkRetryableFunc(),
		},
		Breaker: &circuitbreaker.Config{
			MaxRequests:      1,
			Interval:         time.Minute,
			Timeout:          time.Minute,
			FailureThreshold: 100,
			SuccessThreshold: 1,
		},
	})
}
