package redislock

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// releaseScript удаляет ключ, только если он все еще принадлежит нам
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// Client часть клиента Redis, нужная блокировке
type Client interface {
	redis.Scripter
	SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.BoolCmd
}

// Lock распределенная блокировка на одном ключе (SET key token NX PX ttl).
// TTL освобождает ключ, если владелец упал, не отпустив его
type Lock struct {
	client Client
	key    string
}

// New создает блокировку на ключе key
func New(client Client, key string) *Lock {
	return &Lock{client: client, key: key}
}

// TryAcquire пытается захватить блокировку на ttl.
// Если ключ занят, возвращает ok=false без ошибки
func (l *Lock) TryAcquire(ctx context.Context, ttl time.Duration) (release func(ctx context.Context) error, ok bool, err error) {
	token := uuid.NewString()

	ok, err = l.client.SetNX(ctx, l.key, token, ttl).Result()
	if err != nil {
		return nil, false, fmt.Errorf("%w: key=%s: %w", ErrAcquire, l.key, err)
	}
	if !ok {
		return nil, false, nil
	}

	release = func(ctx context.Context) error {
		if err := releaseScript.Run(ctx, l.client, []string{l.key}, token).Err(); err != nil {
			return fmt.Errorf("%w: key=%s: %w", ErrRelease, l.key, err)
		}
		return nil
	}

	return release, true, nil
}
