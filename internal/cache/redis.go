package cache

import (
	"context"
	"time"

	goredis "github.com/go-redis/redis/v8"

	"github.com/maksimkitikov/QuantFinSocietyAI-Int2/pkg/errors"
)

// RedisConfig configures the Redis backend.
type RedisConfig struct {
	Addr         string        `yaml:"addr" json:"addr" validate:"required,hostname_port"`
	Password     string        `yaml:"password" json:"password"`
	DB           int           `yaml:"db" json:"db" validate:"gte=0"`
	MaxFailures  int           `yaml:"max_failures" json:"max_failures" validate:"gte=1"`
	ResetTimeout time.Duration `yaml:"reset_timeout" json:"reset_timeout" validate:"gt=0"`
}

// RedisCache is a Backend storing entries with SET key value EX ttl.
// Calls go through a circuit breaker so a dead server fails fast.
type RedisCache struct {
	client  *goredis.Client
	breaker *CircuitBreaker
}

// NewRedisCache connects to Redis and pings the server.
func NewRedisCache(ctx context.Context, cfg RedisConfig) (*RedisCache, error) {
	client := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()

		return nil, errors.Wrapf(errors.ErrCodeCacheFailure, err, "redis ping %s", cfg.Addr)
	}

	return NewRedisCacheFromClient(client, NewCircuitBreaker(cfg.MaxFailures, cfg.ResetTimeout)), nil
}

// NewRedisCacheFromClient wraps an existing client.
func NewRedisCacheFromClient(client *goredis.Client, breaker *CircuitBreaker) *RedisCache {
	if breaker == nil {
		breaker = NewCircuitBreaker(5, 10*time.Second)
	}

	return &RedisCache{
		client:  client,
		breaker: breaker,
	}
}

// Client returns the underlying client so other components can share the connection pool.
func (r *RedisCache) Client() *goredis.Client {
	return r.client
}

// Breaker returns the circuit breaker guarding the client.
func (r *RedisCache) Breaker() *CircuitBreaker {
	return r.breaker
}

// Get implements Backend. A missing key is a miss, not a failure.
func (r *RedisCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var (
		value []byte
		found bool
	)

	err := r.breaker.Execute(func() error {
		raw, err := r.client.Get(ctx, key).Bytes()
		if errors.Is(err, goredis.Nil) {
			return nil
		}

		if err != nil {
			return err
		}

		value, found = raw, true

		return nil
	})
	if err != nil {
		return nil, false, err
	}

	return value, found, nil
}

// Set implements Backend.
func (r *RedisCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return r.breaker.Execute(func() error {
		return r.client.Set(ctx, key, value, ttl).Err()
	})
}

// Delete implements Backend.
func (r *RedisCache) Delete(ctx context.Context, key string) error {
	return r.breaker.Execute(func() error {
		return r.client.Del(ctx, key).Err()
	})
}

// Close implements Backend.
func (r *RedisCache) Close() error {
	return r.client.Close()
}
