package cache

import (
	"fmt"
	"strings"
	"time"

	"github.com/maksimkitikov/QuantFinSocietyAI-Int2/internal/types"
)

// Kind identifies the payload stored under a key. It is the key prefix.
type Kind string

const (
	KindBars          Kind = "stock_data"
	KindOverview      Kind = "stock_info"
	KindNews          Kind = "news"
	KindQuote         Kind = "quote"
	KindMarketSummary Kind = "market_summary"
)

// BarsKey is the key of a bar series: stock_data:{symbol}:{period}:{interval}.
func BarsKey(symbol string, period types.Period, interval types.Interval) string {
	return fmt.Sprintf("%s:%s:%s:%s", KindBars, normalizeSymbol(symbol), period, interval)
}

// OverviewKey is the key of a company overview: stock_info:{symbol}.
func OverviewKey(symbol string) string {
	return fmt.Sprintf("%s:%s", KindOverview, normalizeSymbol(symbol))
}

// Key is the generic key {kind}:{subject}.
func Key(kind Kind, subject string) string {
	return fmt.Sprintf("%s:%s", kind, normalizeSymbol(subject))
}

// KindOf returns the kind prefix of a key.
func KindOf(key string) Kind {
	prefix, _, _ := strings.Cut(key, ":")

	return Kind(prefix)
}

func normalizeSymbol(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}

// TTLConfig holds the time-to-live of every payload kind.
type TTLConfig struct {
	Bars          time.Duration `yaml:"bars" json:"bars" validate:"gt=0"`
	Overview      time.Duration `yaml:"overview" json:"overview" validate:"gt=0"`
	News          time.Duration `yaml:"news" json:"news" validate:"gt=0"`
	Quote         time.Duration `yaml:"quote" json:"quote" validate:"gt=0"`
	MarketSummary time.Duration `yaml:"market_summary" json:"market_summary" validate:"gt=0"`
}

// DefaultTTLConfig returns 5 minutes for prices, 1 hour for overviews and 15 minutes for news.
func DefaultTTLConfig() TTLConfig {
	return TTLConfig{
		Bars:          5 * time.Minute,
		Overview:      time.Hour,
		News:          15 * time.Minute,
		Quote:         time.Minute,
		MarketSummary: 5 * time.Minute,
	}
}

// For returns the TTL of kind. Unknown kinds use the price TTL.
func (c TTLConfig) For(kind Kind) time.Duration {
	switch kind {
	case KindOverview:
		return c.Overview
	case KindNews:
		return c.News
	case KindQuote:
		return c.Quote
	case KindMarketSummary:
		return c.MarketSummary
	default:
		return c.Bars
	}
}
