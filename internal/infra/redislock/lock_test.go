package redislock

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClient хранит ключи в памяти; скрипт освобождения исполняется через EvalSha
type fakeClient struct {
	redis.Scripter

	mu     sync.Mutex
	values map[string]string
	setErr error
}

func newFakeClient() *fakeClient {
	return &fakeClient{values: make(map[string]string)}
}

func (f *fakeClient) SetNX(_ context.Context, key string, value interface{}, _ time.Duration) *redis.BoolCmd {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.setErr != nil {
		return redis.NewBoolResult(false, f.setErr)
	}
	if _, exists := f.values[key]; exists {
		return redis.NewBoolResult(false, nil)
	}
	f.values[key] = fmt.Sprint(value)
	return redis.NewBoolResult(true, nil)
}

func (f *fakeClient) EvalSha(_ context.Context, _ string, keys []string, args ...interface{}) *redis.Cmd {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.values[keys[0]] == fmt.Sprint(args[0]) {
		delete(f.values, keys[0])
		return redis.NewCmdResult(int64(1), nil)
	}
	return redis.NewCmdResult(int64(0), nil)
}

func TestLock_TryAcquire(t *testing.T) {
	ctx := context.Background()
	client := newFakeClient()

	first := New(client, "sweeper")
	second := New(client, "sweeper")

	release, ok, err := first.TryAcquire(ctx, time.Minute)
	require.NoError(t, err)
	require.True(t, ok)

	_, ok, err = second.TryAcquire(ctx, time.Minute)
	require.NoError(t, err)
	assert.False(t, ok, "lock is held by the first owner")

	require.NoError(t, release(ctx))

	release2, ok, err := second.TryAcquire(ctx, time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)

	// Повторное освобождение чужим токеном не снимает блокировку
	require.NoError(t, release(ctx))
	_, ok, err = first.TryAcquire(ctx, time.Minute)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, release2(ctx))
}

func TestLock_TryAcquireError(t *testing.T) {
	client := newFakeClient()
	client.setErr = fmt.Errorf("connection refused")

	_, ok, err := New(client, "sweeper").TryAcquire(context.Background(), time.Minute)
	assert.False(t, ok)
	assert.ErrorIs(t, err, ErrAcquire)
}

func TestNewRedisClient_EmptyAddr(t *testing.T) {
	_, err := NewRedisClient("  ", "", 0)
	assert.ErrorIs(t, err, ErrEmptyAddr)
}
