package notification

import (
	"context"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

const guardKeyPrefix = "orpaynter:emergency_callback:"

// CallbackGuard grants at most one callback per key within a cooldown window.
type CallbackGuard interface {
	// Acquire reports whether the caller won the key for ttl.
	Acquire(ctx context.Context, key string, ttl time.Duration) (bool, error)
	// Release frees key so the next request for it is not suppressed.
	Release(ctx context.Context, key string) error
}

// RedisCallbackGuard shares the cooldown across API replicas.
type RedisCallbackGuard struct {
	client redis.Cmdable
}

func NewRedisCallbackGuard(client redis.Cmdable) *RedisCallbackGuard {
	return &RedisCallbackGuard{client: client}
}

func (g *RedisCallbackGuard) Acquire(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	return g.client.SetNX(ctx, guardKeyPrefix+key, time.Now().UTC().Format(time.RFC3339), ttl).Result()
}

func (g *RedisCallbackGuard) Release(ctx context.Context, key string) error {
	return g.client.Del(ctx, guardKeyPrefix+key).Err()
}

// MemoryCallbackGuard is the single-process fallback used when Redis is not configured.
type MemoryCallbackGuard struct {
	mu      sync.Mutex
	expires map[string]time.Time
	now     func() time.Time
}

func NewMemoryCallbackGuard() *MemoryCallbackGuard {
	return &MemoryCallbackGuard{expires: make(map[string]time.Time), now: time.Now}
}

func (g *MemoryCallbackGuard) Acquire(_ context.Context, key string, ttl time.Duration) (bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	now := g.now()
	for k, exp := range g.expires {
		if !now.Before(exp) {
			delete(g.expires, k)
		}
	}

	if _, held := g.expires[key]; held {
		return false, nil
	}
	g.expires[key] = now.Add(ttl)
	return true, nil
}

func (g *MemoryCallbackGuard) Release(_ context.Context, key string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.expires, key)
	return nil
}

var (
	_ CallbackGuard = (*RedisCallbackGuard)(nil)
	_ CallbackGuard = (*MemoryCallbackGuard)(nil)
)
