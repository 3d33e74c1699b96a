package server

import (
	"context"
	"sync"
	"time"

	goredis "github.com/go-redis/redis/v8"

	"github.com/maksimkitikov/QuantFinSocietyAI-Int2/pkg/errors"
)

// Limiter decides whether a client may issue another request in the current window.
type Limiter interface {
	Allow(ctx context.Context, client string) (bool, error)
}

type window struct {
	start time.Time
	count int
}

// MemoryLimiter is a fixed window counter per client kept in process memory.
type MemoryLimiter struct {
	mu      sync.Mutex
	limit   int
	period  time.Duration
	windows map[string]*window
	now     func() time.Time
}

// NewMemoryLimiter allows limit requests per period and client.
func NewMemoryLimiter(limit int, period time.Duration) *MemoryLimiter {
	return &MemoryLimiter{
		mu:      sync.Mutex{},
		limit:   limit,
		period:  period,
		windows: make(map[string]*window),
		now:     time.Now,
	}
}

// Allow implements Limiter.
func (l *MemoryLimiter) Allow(_ context.Context, client string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()

	w, ok := l.windows[client]
	if !ok || now.Sub(w.start) >= l.period {
		l.sweepLocked(now)

		l.windows[client] = &window{start: now, count: 1}

		return true, nil
	}

	if w.count >= l.limit {
		return false, nil
	}

	w.count++

	return true, nil
}

// sweepLocked drops expired windows so idle clients do not accumulate.
func (l *MemoryLimiter) sweepLocked(now time.Time) {
	for client, w := range l.windows {
		if now.Sub(w.start) >= l.period {
			delete(l.windows, client)
		}
	}
}

// RedisLimiter is a fixed window counter shared by every instance using the
// same Redis: INCR on a per-window key, EXPIRE on the first hit.
type RedisLimiter struct {
	client *goredis.Client
	limit  int
	period time.Duration
	prefix string
	now    func() time.Time
}

// NewRedisLimiter allows limit requests per period and client.
func NewRedisLimiter(client *goredis.Client, limit int, period time.Duration) *RedisLimiter {
	return &RedisLimiter{
		client: client,
		limit:  limit,
		period: period,
		prefix: "ratelimit",
		now:    time.Now,
	}
}

// Allow implements Limiter.
func (l *RedisLimiter) Allow(ctx context.Context, client string) (bool, error) {
	bucket := l.now().UnixNano() / int64(l.period)
	key := l.prefix + ":" + client + ":" + time.Unix(0, bucket*int64(l.period)).UTC().Format(time.RFC3339)

	pipe := l.client.TxPipeline()
	incr := pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, l.period)

	if _, err := pipe.Exec(ctx); err != nil {
		return false, errors.Wrap(errors.ErrCodeCacheFailure, "rate limit counter", err)
	}

	return incr.Val() <= int64(l.limit), nil
}
