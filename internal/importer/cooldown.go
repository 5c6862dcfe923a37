package importer

import (
	"context"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// Limiter rate-limits import triggers per key with a fixed cooldown window.
type Limiter interface {
	// Allow reports whether the key may fire now, and if so starts its
	// cooldown.
	Allow(ctx context.Context, key string) bool
}

// MemoryLimiter is the in-process cooldown limiter for single-instance
// deployments.
type MemoryLimiter struct {
	ttl time.Duration
	now func() time.Time

	mu        sync.Mutex
	lastFired map[string]time.Time
}

// NewMemoryLimiter creates an in-memory limiter with the given cooldown.
func NewMemoryLimiter(ttl time.Duration) *MemoryLimiter {
	return &MemoryLimiter{
		ttl:       ttl,
		now:       time.Now,
		lastFired: make(map[string]time.Time),
	}
}

// Allow implements Limiter.
func (l *MemoryLimiter) Allow(_ context.Context, key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if last, ok := l.lastFired[key]; ok && now.Sub(last) < l.ttl {
		return false
	}
	l.lastFired[key] = now
	return true
}

// RedisLimiter is the cooldown limiter for multi-instance deployments. It
// relies on SET NX with a TTL so that exactly one instance wins each window.
type RedisLimiter struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisLimiter creates a Redis-backed limiter with the given cooldown.
func NewRedisLimiter(client *redis.Client, ttl time.Duration) *RedisLimiter {
	return &RedisLimiter{client: client, ttl: ttl}
}

// Allow implements Limiter. Redis errors fail open: a broken limiter must not
// stop imports.
func (l *RedisLimiter) Allow(ctx context.Context, key string) bool {
	ok, err := l.client.SetNX(ctx, "import-cooldown:"+key, 1, l.ttl).Result()
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("Cooldown check failed, allowing trigger")
		return true
	}
	return ok
}
