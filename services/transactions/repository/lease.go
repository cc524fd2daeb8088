package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/arcbank/transactions-service/internal/pkg/constants"
	"github.com/arcbank/transactions-service/internal/pkg/database"
	"github.com/arcbank/transactions-service/services/transactions"
)

type sweepLease struct {
	redisClient *database.RedisClient
	ttl         time.Duration
	token       string
}

// NewSweepLease creates the reconciler lease. Each replica holds its own token
func NewSweepLease(redisClient *database.RedisClient, ttl time.Duration) transactions.SweepLease {
	return &sweepLease{
		redisClient: redisClient,
		ttl:         ttl,
		token:       uuid.NewString(),
	}
}

// Acquire takes the lease unless another replica holds it
func (l *sweepLease) Acquire(ctx context.Context) (bool, error) {
	ok, err := l.redisClient.SetNX(ctx, constants.KeyReconcilerLease, l.token, l.ttl)
	if err != nil {
		return false, fmt.Errorf("failed to acquire reconciler lease: %w", err)
	}
	return ok, nil
}

// Release gives the lease back if this replica still holds it
func (l *sweepLease) Release(ctx context.Context) error {
	if _, err := l.redisClient.Eval(ctx, releaseScript, []string{constants.KeyReconcilerLease}, l.token); err != nil {
		return fmt.Errorf("failed to release reconciler lease: %w", err)
	}
	return nil
}
