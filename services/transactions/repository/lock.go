package repository

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/arcbank/transactions-service/internal/pkg/constants"
	"github.com/arcbank/transactions-service/internal/pkg/database"
	"github.com/arcbank/transactions-service/internal/pkg/logger"
	"github.com/arcbank/transactions-service/services/transactions"
)

// releaseScript deletes key only while it still holds our token
const releaseScript = `
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0`

type redisLocker struct {
	redisClient *database.RedisClient
	ttl         time.Duration
	retryDelay  time.Duration
}

// NewRedisLocker creates an account locker shared by every replica
func NewRedisLocker(redisClient *database.RedisClient, ttl, retryDelay time.Duration) transactions.AccountLocker {
	return &redisLocker{
		redisClient: redisClient,
		ttl:         ttl,
		retryDelay:  retryDelay,
	}
}

// Lock retries SET NX until the key is free or ctx ends
func (l *redisLocker) Lock(ctx context.Context, accountID int64) (func(), error) {
	key := fmt.Sprintf(constants.KeyAccountLock, accountID)
	token := uuid.NewString()

	for {
		ok, err := l.redisClient.SetNX(ctx, key, token, l.ttl)
		if err != nil {
			return nil, fmt.Errorf("failed to acquire account lock: %w", err)
		}
		if ok {
			break
		}

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("account %d is busy: %w", accountID, ctx.Err())
		case <-time.After(l.retryDelay):
		}
	}

	unlock := func() {
		// the caller's context may already be done
		releaseCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if _, err := l.redisClient.Eval(releaseCtx, releaseScript, []string{key}, token); err != nil {
			logger.Warn("Failed to release account lock",
				logger.AccountID(accountID),
				logger.Err(err))
		}
	}
	return unlock, nil
}

type memoryLocker struct {
	mu    sync.Mutex
	locks map[int64]chan struct{}
}

// NewMemoryLocker creates an in-process account locker for single-replica
// deployments and tests
func NewMemoryLocker() transactions.AccountLocker {
	return &memoryLocker{locks: make(map[int64]chan struct{})}
}

func (l *memoryLocker) slot(accountID int64) chan struct{} {
	l.mu.Lock()
	defer l.mu.Unlock()
	ch, ok := l.locks[accountID]
	if !ok {
		ch = make(chan struct{}, 1)
		l.locks[accountID] = ch
	}
	return ch
}

// Lock takes the account's slot or gives up when ctx ends
func (l *memoryLocker) Lock(ctx context.Context, accountID int64) (func(), error) {
	ch := l.slot(accountID)
	select {
	case ch <- struct{}{}:
	case <-ctx.Done():
		return nil, fmt.Errorf("account %d is busy: %w", accountID, ctx.Err())
	}

	var once sync.Once
	return func() { once.Do(func() { <-ch }) }, nil
}
