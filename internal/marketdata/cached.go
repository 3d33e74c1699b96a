package marketdata

import (
	"context"
	"fmt"

	"github.com/maksimkitikov/QuantFinSocietyAI-Int2/internal/cache"
	"github.com/maksimkitikov/QuantFinSocietyAI-Int2/internal/logger"
	"github.com/maksimkitikov/QuantFinSocietyAI-Int2/internal/types"
)

// CachedBarFetcher serves bars from the cache and falls back to next on a miss.
type CachedBarFetcher struct {
	next   BarFetcher
	cache  cache.Cache
	ttl    cache.TTLConfig
	logger *logger.Logger
}

// NewCachedBarFetcher decorates next with c.
func NewCachedBarFetcher(next BarFetcher, c cache.Cache, ttl cache.TTLConfig, log *logger.Logger) *CachedBarFetcher {
	if log == nil {
		log = logger.NewNop()
	}

	return &CachedBarFetcher{next: next, cache: c, ttl: ttl, logger: log}
}

// FetchBars implements BarFetcher.
func (f *CachedBarFetcher) FetchBars(ctx context.Context, symbol string, period types.Period, interval types.Interval) (types.BarSeries, error) {
	key := cache.BarsKey(symbol, period, interval)

	return cache.GetOrLoad(ctx, f.cache, f.logger, key, f.ttl.For(cache.KindBars), func(ctx context.Context) (types.BarSeries, error) {
		return f.next.FetchBars(ctx, symbol, period, interval)
	})
}

// CachedOverviewFetcher serves overviews from the cache and falls back to next on a miss.
type CachedOverviewFetcher struct {
	next   OverviewFetcher
	cache  cache.Cache
	ttl    cache.TTLConfig
	logger *logger.Logger
}

// NewCachedOverviewFetcher decorates next with c.
func NewCachedOverviewFetcher(next OverviewFetcher, c cache.Cache, ttl cache.TTLConfig, log *logger.Logger) *CachedOverviewFetcher {
	if log == nil {
		log = logger.NewNop()
	}

	return &CachedOverviewFetcher{next: next, cache: c, ttl: ttl, logger: log}
}

// FetchOverview implements OverviewFetcher.
func (f *CachedOverviewFetcher) FetchOverview(ctx context.Context, symbol string) (types.CompanyOverview, error) {
	key := cache.OverviewKey(symbol)

	return cache.GetOrLoad(ctx, f.cache, f.logger, key, f.ttl.For(cache.KindOverview), func(ctx context.Context) (types.CompanyOverview, error) {
		return f.next.FetchOverview(ctx, symbol)
	})
}

// CachedNewsFetcher serves news searches from the cache.
type CachedNewsFetcher struct {
	next   NewsFetcher
	cache  cache.Cache
	ttl    cache.TTLConfig
	logger *logger.Logger
}

// NewCachedNewsFetcher decorates next with c.
func NewCachedNewsFetcher(next NewsFetcher, c cache.Cache, ttl cache.TTLConfig, log *logger.Logger) *CachedNewsFetcher {
	if log == nil {
		log = logger.NewNop()
	}

	return &CachedNewsFetcher{next: next, cache: c, ttl: ttl, logger: log}
}

// FetchNews implements NewsFetcher.
func (f *CachedNewsFetcher) FetchNews(ctx context.Context, query string, limit int) ([]types.NewsItem, error) {
	key := cache.Key(cache.KindNews, fmt.Sprintf("%s:%d", query, limit))

	return cache.GetOrLoad(ctx, f.cache, f.logger, key, f.ttl.For(cache.KindNews), func(ctx context.Context) ([]types.NewsItem, error) {
		return f.next.FetchNews(ctx, query, limit)
	})
}
