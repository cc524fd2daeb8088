package repository_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arcbank/transactions-service/internal/pkg/database"
	"github.com/arcbank/transactions-service/services/transactions/repository"
)

func setupRedis(t *testing.T) (*miniredis.Miniredis, *database.RedisClient) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return mr, &database.RedisClient{Client: client}
}

func TestRedisLocker_LockAndRelease(t *testing.T) {
	mr, client := setupRedis(t)
	locker := repository.NewRedisLocker(client, time.Second, 5*time.Millisecond)

	unlock, err := locker.Lock(context.Background(), 7)
	require.NoError(t, err)
	assert.True(t, mr.Exists("lock:account:7"))

	unlock()
	assert.False(t, mr.Exists("lock:account:7"))
}

func TestRedisLocker_BusyUntilContextEnds(t *testing.T) {
	_, client := setupRedis(t)
	locker := repository.NewRedisLocker(client, time.Second, 5*time.Millisecond)

	unlock, err := locker.Lock(context.Background(), 7)
	require.NoError(t, err)
	defer unlock()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()
	_, err = locker.Lock(ctx, 7)

	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestRedisLocker_ReleaseKeepsForeignToken(t *testing.T) {
	mr, client := setupRedis(t)
	locker := repository.NewRedisLocker(client, time.Second, 5*time.Millisecond)

	unlock, err := locker.Lock(context.Background(), 7)
	require.NoError(t, err)

	// the lock expired and another holder took it
	require.NoError(t, mr.Set("lock:account:7", "someone-else"))
	unlock()

	value, err := mr.Get("lock:account:7")
	require.NoError(t, err)
	assert.Equal(t, "someone-else", value)
}

func TestRedisLocker_WaitsForRelease(t *testing.T) {
	_, client := setupRedis(t)
	locker := repository.NewRedisLocker(client, time.Second, 5*time.Millisecond)

	unlock, err := locker.Lock(context.Background(), 7)
	require.NoError(t, err)

	go func() {
		time.Sleep(20 * time.Millisecond)
		unlock()
	}()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	second, err := locker.Lock(ctx, 7)
	require.NoError(t, err)
	second()
}

func TestRedisLocker_RedisDown(t *testing.T) {
	mr, client := setupRedis(t)
	locker := repository.NewRedisLocker(client, time.Second, 5*time.Millisecond)
	mr.Close()

	_, err := locker.Lock(context.Background(), 7)

	assert.Error(t, err)
}

func TestMemoryLocker_Serializes(t *testing.T) {
	locker := repository.NewMemoryLocker()

	var inside, maxInside int32
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock, err := locker.Lock(context.Background(), 1)
			if !assert.NoError(t, err) {
				return
			}
			n := atomic.AddInt32(&inside, 1)
			for {
				m := atomic.LoadInt32(&maxInside)
				if n <= m || atomic.CompareAndSwapInt32(&maxInside, m, n) {
					break
				}
			}
			time.Sleep(time.Millisecond)
			atomic.AddInt32(&inside, -1)
			unlock()
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), maxInside)
}

func TestMemoryLocker_DistinctAccountsDoNotBlock(t *testing.T) {
	locker := repository.NewMemoryLocker()

	unlockA, err := locker.Lock(context.Background(), 1)
	require.NoError(t, err)
	defer unlockA()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	unlockB, err := locker.Lock(ctx, 2)
	require.NoError(t, err)
	unlockB()
}

func TestMemoryLocker_ContextCancelled(t *testing.T) {
	locker := repository.NewMemoryLocker()

	unlock, err := locker.Lock(context.Background(), 1)
	require.NoError(t, err)
	defer unlock()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = locker.Lock(ctx, 1)

	assert.ErrorIs(t, err, context.Canceled)
}

func TestMemoryLocker_UnlockTwiceIsSafe(t *testing.T) {
	locker := repository.NewMemoryLocker()

	unlock, err := locker.Lock(context.Background(), 1)
	require.NoError(t, err)
	unlock()
	unlock()

	again, err := locker.Lock(context.Background(), 1)
	require.NoError(t, err)
	again()
}

func TestSweepLease_SingleHolder(t *testing.T) {
	mr, client := setupRedis(t)
	first := repository.NewSweepLease(client, time.Minute)
	second := repository.NewSweepLease(client, time.Minute)
	ctx := context.Background()

	ok, err := first.Acquire(ctx)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = second.Acquire(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	// only the holder can release
	require.NoError(t, second.Release(ctx))
	assert.True(t, mr.Exists("lease:reconciler"))

	require.NoError(t, first.Release(ctx))
	assert.False(t, mr.Exists("lease:reconciler"))

	ok, err = second.Acquire(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestSweepLease_Expires(t *testing.T) {
	mr, client := setupRedis(t)
	lease := repository.NewSweepLease(client, time.Second)
	other := repository.NewSweepLease(client, time.Second)

	ok, err := lease.Acquire(context.Background())
	require.NoError(t, err)
	require.True(t, ok)

	mr.FastForward(2 * time.Second)

	ok, err = other.Acquire(context.Background())
	require.NoError(t, err)
	assert.True(t, ok)
}
