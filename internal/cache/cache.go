// Package cache stores re-fetchable upstream payloads with a time-to-live.
// It is never authoritative: every entry can be reloaded from its origin.
package cache

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/maksimkitikov/QuantFinSocietyAI-Int2/internal/logger"
	"github.com/maksimkitikov/QuantFinSocietyAI-Int2/pkg/errors"
)

// Backend is a raw key/value store with per-key expiry.
// Set and Get on one key are atomic.
type Backend interface {
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Cache stores typed payloads in schema-checked envelopes.
type Cache interface {
	// Get decodes the entry under key into dst. ok is false on a miss, an
	// expired entry or an entry written under an incompatible schema.
	Get(ctx context.Context, key string, dst any) (ok bool, err error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Observer receives cache outcomes per kind.
type Observer interface {
	CacheHit(kind string)
	CacheMiss(kind string)
	CacheError(kind string)
}

type nopObserver struct{}

func (nopObserver) CacheHit(string)   {}
func (nopObserver) CacheMiss(string)  {}
func (nopObserver) CacheError(string) {}

// EnvelopeCache implements Cache over any Backend.
type EnvelopeCache struct {
	backend  Backend
	logger   *logger.Logger
	observer Observer
	now      func() time.Time
}

// Option configures an EnvelopeCache.
type Option func(*EnvelopeCache)

// WithObserver reports hits and misses to o.
func WithObserver(o Observer) Option {
	return func(c *EnvelopeCache) {
		if o != nil {
			c.observer = o
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *logger.Logger) Option {
	return func(c *EnvelopeCache) {
		if l != nil {
			c.logger = l
		}
	}
}

// New creates a Cache writing envelopes to backend.
func New(backend Backend, opts ...Option) *EnvelopeCache {
	c := &EnvelopeCache{
		backend:  backend,
		logger:   logger.NewNop(),
		observer: nopObserver{},
		now:      time.Now,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Get implements Cache.
func (c *EnvelopeCache) Get(ctx context.Context, key string, dst any) (bool, error) {
	kind := KindOf(key)

	raw, ok, err := c.backend.Get(ctx, key)
	if err != nil {
		c.observer.CacheError(string(kind))

		return false, errors.Wrapf(errors.ErrCodeCacheFailure, err, "cache get %s", key)
	}

	if !ok {
		c.observer.CacheMiss(string(kind))

		return false, nil
	}

	if err := Decode(raw, kind, dst); err != nil {
		c.logger.Warn("Discarding unreadable cache entry", zap.String("key", key), zap.Error(err))
		c.observer.CacheMiss(string(kind))

		return false, nil
	}

	c.observer.CacheHit(string(kind))

	return true, nil
}

// Set implements Cache.
func (c *EnvelopeCache) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	raw, err := Encode(KindOf(key), value, c.now())
	if err != nil {
		return err
	}

	if err := c.backend.Set(ctx, key, raw, ttl); err != nil {
		c.observer.CacheError(string(KindOf(key)))

		return errors.Wrapf(errors.ErrCodeCacheFailure, err, "cache set %s", key)
	}

	return nil
}

// Delete implements Cache.
func (c *EnvelopeCache) Delete(ctx context.Context, key string) error {
	if err := c.backend.Delete(ctx, key); err != nil {
		return errors.Wrapf(errors.ErrCodeCacheFailure, err, "cache delete %s", key)
	}

	return nil
}

// Close implements Cache.
func (c *EnvelopeCache) Close() error {
	return c.backend.Close()
}

// GetOrLoad returns the cached value under key, or calls load on a miss and
// stores its result for ttl. Cache faults fall through to load and are logged.
func GetOrLoad[T any](ctx context.Context, c Cache, log *logger.Logger, key string, ttl time.Duration, load func(ctx context.Context) (T, error)) (T, error) {
	var cached T

	ok, err := c.Get(ctx, key, &cached)
	if err != nil && log != nil {
		log.Warn("Cache unavailable, loading from origin", zap.String("key", key), zap.Error(err))
	}

	if ok {
		return cached, nil
	}

	value, err := load(ctx)
	if err != nil {
		return value, err
	}

	if err := c.Set(ctx, key, value, ttl); err != nil && log != nil {
		log.Warn("Failed to store cache entry", zap.String("key", key), zap.Error(err))
	}

	return value, nil
}
