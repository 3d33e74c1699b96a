// Package app assembles the service and its collaborators from a Config.
package app

import (
	"context"
	"time"

	goredis "github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"github.com/maksimkitikov/QuantFinSocietyAI-Int2/internal/cache"
	"github.com/maksimkitikov/QuantFinSocietyAI-Int2/internal/config"
	"github.com/maksimkitikov/QuantFinSocietyAI-Int2/internal/indicator"
	"github.com/maksimkitikov/QuantFinSocietyAI-Int2/internal/llm"
	"github.com/maksimkitikov/QuantFinSocietyAI-Int2/internal/logger"
	"github.com/maksimkitikov/QuantFinSocietyAI-Int2/internal/marketdata"
	"github.com/maksimkitikov/QuantFinSocietyAI-Int2/internal/metrics"
	"github.com/maksimkitikov/QuantFinSocietyAI-Int2/internal/predictor"
	"github.com/maksimkitikov/QuantFinSocietyAI-Int2/internal/scheduler"
	"github.com/maksimkitikov/QuantFinSocietyAI-Int2/internal/server"
	"github.com/maksimkitikov/QuantFinSocietyAI-Int2/internal/service"
	"github.com/maksimkitikov/QuantFinSocietyAI-Int2/internal/store"
	"github.com/maksimkitikov/QuantFinSocietyAI-Int2/pkg/errors"
)

const llmTemperature = 0.7

// App holds the wired components. Cache, Store and Redis are nil when the
// configuration disables them.
type App struct {
	Config  config.Config
	Logger  *logger.Logger
	Metrics *metrics.Metrics
	Cache   cache.Cache
	Store   *store.Store
	Redis   *goredis.Client
	Service *service.Service

	closers []func() error
}

// Build wires every component described by cfg. Only Redis is contacted
// during Build; market data and language model providers are called lazily.
func Build(ctx context.Context, cfg config.Config, log *logger.Logger) (*App, error) {
	if log == nil {
		log = logger.NewNop()
	}

	a := &App{
		Config:  cfg,
		Logger:  log,
		Metrics: metrics.New(),
		Cache:   nil,
		Store:   nil,
		Redis:   nil,
		Service: nil,
		closers: nil,
	}

	if err := a.buildCache(ctx); err != nil {
		a.Close()

		return nil, err
	}

	if cfg.Store.Path != "" {
		db, err := store.Open(ctx, cfg.Store.Path, log)
		if err != nil {
			a.Close()

			return nil, err
		}

		a.Store = db
		a.closers = append(a.closers, db.Close)
	}

	svc, err := a.buildService(ctx)
	if err != nil {
		a.Close()

		return nil, err
	}

	a.Service = svc

	return a, nil
}

func (a *App) buildCache(ctx context.Context) error {
	cfg := a.Config

	var redisCache *cache.RedisCache

	if cfg.UsesRedis() {
		rc, err := cache.NewRedisCache(ctx, cfg.Cache.Redis)
		if err != nil {
			return err
		}

		rc.Breaker().OnStateChange = func(from, to cache.State) {
			a.Metrics.SetCircuitBreakerState(int(to))
			a.Logger.Warn("redis circuit breaker changed state",
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		}

		redisCache = rc
		a.Redis = rc.Client()
	}

	opts := []cache.Option{cache.WithObserver(a.Metrics), cache.WithLogger(a.Logger)}

	switch cfg.Cache.Backend {
	case "memory":
		a.Cache = cache.New(cache.NewMemoryCache(cfg.Cache.MaxEntries), opts...)
	case "redis":
		a.Cache = cache.New(redisCache, opts...)
	case "none":
	default:
		return errors.Newf(errors.ErrCodeInvalidConfiguration, "unknown cache backend %q", cfg.Cache.Backend)
	}

	switch {
	case a.Cache != nil:
		a.closers = append(a.closers, a.Cache.Close)
	case redisCache != nil:
		a.closers = append(a.closers, redisCache.Close)
	}

	return nil
}

func (a *App) buildService(ctx context.Context) (*service.Service, error) {
	cfg := a.Config

	bars, err := marketdata.NewBarFetcher(marketdata.ClientConfig{
		ProviderType:  marketdata.ProviderType(cfg.MarketData.BarsProvider),
		PolygonAPIKey: cfg.MarketData.PolygonAPIKey,
	})
	if err != nil {
		return nil, err
	}

	yahoo := marketdata.NewYahooClient()

	overviewSources := make([]marketdata.OverviewFetcher, 0, 2)

	if cfg.MarketData.AlphaVantageAPIKey != "" {
		av, err := marketdata.NewAlphaVantageClient(cfg.MarketData.AlphaVantageURL, cfg.MarketData.AlphaVantageAPIKey, cfg.MarketData.Timeout)
		if err != nil {
			return nil, err
		}

		overviewSources = append(overviewSources, av)
	}

	overviewSources = append(overviewSources, yahoo)

	var overview marketdata.OverviewFetcher = marketdata.NewMergedOverviewFetcher(a.Logger, overviewSources...)

	deps := service.Dependencies{
		Bars:       bars,
		Overview:   overview,
		Quotes:     yahoo,
		News:       nil,
		Headlines:  nil,
		Generator:  nil,
		Predictor:  predictor.NewPredictor(cfg.Predictor, nil),
		Engine:     indicator.NewEngine(indicator.NewDefaultRegistry()),
		Cache:      a.Cache,
		TTL:        cfg.Cache.TTL,
		Repository: nil,
		Recorder:   a.Metrics,
		Thresholds: cfg.Signals,
		Logger:     a.Logger,
		Now:        nil,
	}

	if cfg.MarketData.NewsAPIKey != "" {
		news, err := marketdata.NewNewsAPIClient(cfg.MarketData.NewsAPIURL, cfg.MarketData.NewsAPIKey, cfg.MarketData.Timeout)
		if err != nil {
			return nil, err
		}

		deps.News = news
		deps.Headlines = news
	} else {
		a.Logger.Info("NEWS_API_KEY not set, news endpoints are disabled")
	}

	if a.Cache != nil {
		deps.Bars = marketdata.NewCachedBarFetcher(deps.Bars, a.Cache, cfg.Cache.TTL, a.Logger)
		deps.Overview = marketdata.NewCachedOverviewFetcher(deps.Overview, a.Cache, cfg.Cache.TTL, a.Logger)

		if deps.News != nil {
			deps.News = marketdata.NewCachedNewsFetcher(deps.News, a.Cache, cfg.Cache.TTL, a.Logger)
		}
	}

	generator, err := llm.New(ctx, llm.Config{
		APIKey:      cfg.LLM.APIKey,
		Model:       cfg.LLM.Model,
		BaseURL:     cfg.LLM.BaseURL,
		MaxTokens:   cfg.LLM.MaxTokens,
		Temperature: llmTemperature,
		Timeout:     cfg.LLM.Timeout,
	}, a.Logger)
	if err != nil {
		return nil, err
	}

	deps.Generator = generator

	if a.Store != nil {
		deps.Repository = a.Store
	}

	return service.New(deps)
}

// Health returns a Health probing the store and Redis when configured.
func (a *App) Health() *server.Health {
	health := server.NewHealth()

	if a.Store != nil {
		health.Register("store", a.Store.Ping)
	}

	if a.Redis != nil {
		client := a.Redis
		health.Register("redis", func(ctx context.Context) error {
			return client.Ping(ctx).Err()
		})
	}

	return health
}

// Limiter returns the configured rate limiter, or nil when the limit is zero.
func (a *App) Limiter() server.Limiter {
	limit := a.Config.RateLimit.RequestsPerMinute
	if limit <= 0 {
		return nil
	}

	if a.Config.RateLimit.Backend == "redis" && a.Redis != nil {
		return server.NewRedisLimiter(a.Redis, limit, time.Minute)
	}

	return server.NewMemoryLimiter(limit, time.Minute)
}

// NewServer builds the HTTP server over the wired service.
func (a *App) NewServer() (*server.Server, error) {
	opts := server.Options{
		Config:            a.Config.Server,
		Service:           a.Service,
		Repository:        nil,
		Limiter:           a.Limiter(),
		RequestsPerMinute: a.Config.RateLimit.RequestsPerMinute,
		Observer:          a.Metrics,
		Metrics:           a.Metrics.Handler(),
		Health:            a.Health(),
		Logger:            a.Logger,
	}

	if a.Store != nil {
		opts.Repository = a.Store
	}

	return server.New(opts)
}

// NewScheduler builds the cache warmer over the wired service.
func (a *App) NewScheduler(ctx context.Context) *scheduler.Scheduler {
	return scheduler.NewScheduler(ctx, a.Service, a.Config.Scheduler, a.Logger)
}

// Close releases every opened resource in reverse order.
func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			a.Logger.Warn("close failed", zap.Error(err))
		}
	}

	a.closers = nil
}
