// Package marketdata fetches bars, quotes, company overviews and news from
// upstream providers and converts them into the internal data model.
package marketdata

import (
	"context"
	"sort"
	"strings"

	"github.com/maksimkitikov/QuantFinSocietyAI-Int2/internal/types"
	"github.com/maksimkitikov/QuantFinSocietyAI-Int2/pkg/errors"
)

// BarFetcher returns the OHLCV history of a symbol.
type BarFetcher interface {
	// FetchBars returns the bars covering period at the given interval.
	// Unknown symbols and empty ranges fail with ErrCodeNoDataFound.
	FetchBars(ctx context.Context, symbol string, period types.Period, interval types.Interval) (types.BarSeries, error)
}

// OverviewFetcher returns static company attributes.
type OverviewFetcher interface {
	// FetchOverview returns the overview of symbol. Attributes the provider
	// does not report are left unknown.
	FetchOverview(ctx context.Context, symbol string) (types.CompanyOverview, error)
}

// QuoteFetcher returns the latest trading snapshot of symbols.
type QuoteFetcher interface {
	FetchQuotes(ctx context.Context, symbols ...string) ([]types.Quote, error)
}

// NewsFetcher searches news articles.
type NewsFetcher interface {
	FetchNews(ctx context.Context, query string, limit int) ([]types.NewsItem, error)
}

// HeadlineFetcher returns the current top headlines of a category.
type HeadlineFetcher interface {
	FetchHeadlines(ctx context.Context, category string, limit int) ([]types.NewsItem, error)
}

// NormalizeSymbol trims and upper-cases a ticker.
func NormalizeSymbol(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}

func validateSymbol(symbol string) (string, error) {
	normalized := NormalizeSymbol(symbol)
	if normalized == "" {
		return "", errors.New(errors.ErrCodeInvalidSymbol, "symbol is required")
	}

	return normalized, nil
}

// buildSeries orders raw provider bars, drops duplicate timestamps (the later
// bar wins) and validates the result.
func buildSeries(provider, symbol string, bars []types.Bar) (types.BarSeries, error) {
	if len(bars) == 0 {
		return types.BarSeries{}, errors.Newf(errors.ErrCodeNoDataFound, "%s returned no bars for %s", provider, symbol)
	}

	sort.SliceStable(bars, func(i, j int) bool {
		return bars[i].Time.Before(bars[j].Time)
	})

	deduped := make([]types.Bar, 0, len(bars))
	for _, bar := range bars {
		if n := len(deduped); n > 0 && deduped[n-1].Time.Equal(bar.Time) {
			deduped[n-1] = bar

			continue
		}

		deduped = append(deduped, bar)
	}

	series, err := types.NewBarSeries(symbol, deduped)
	if err != nil {
		return types.BarSeries{}, errors.Wrapf(errors.ErrCodeMarketDataParse, err, "%s returned malformed bars for %s", provider, symbol)
	}

	return series, nil
}

// statusError converts a non-success HTTP status into a coded error.
func statusError(code errors.ErrorCode, provider string, status int, body string) error {
	switch {
	case status == 429:
		return errors.Newf(errors.ErrCodeRateLimited, "%s rate limit exceeded", provider)
	case status == 404:
		return errors.Newf(errors.ErrCodeNoDataFound, "%s returned not found", provider)
	case status >= 500:
		return errors.Newf(errors.ErrCodeUpstreamUnavailable, "%s unavailable: status %d", provider, status)
	default:
		return errors.Newf(code, "%s returned status %d: %s", provider, status, truncate(body, 200))
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}

	return s[:n] + "..."
}
