package types

import (
	"time"

	"github.com/moznion/go-optional"
)

// Stock is a persisted company record.
type Stock struct {
	ID            int64                    `json:"id"`
	Symbol        string                   `json:"symbol" validate:"required,max=16"`
	Name          string                   `json:"name" validate:"required"`
	MarketCap     optional.Option[float64] `json:"market_cap"`
	Sector        string                   `json:"sector"`
	Industry      string                   `json:"industry"`
	PERatio       optional.Option[float64] `json:"pe_ratio"`
	Beta          optional.Option[float64] `json:"beta"`
	DividendYield optional.Option[float64] `json:"dividend_yield"`
	CreatedAt     time.Time                `json:"created_at"`
	UpdatedAt     time.Time                `json:"updated_at"`
}

// StockFromOverview converts an overview into a stock record.
func StockFromOverview(o CompanyOverview) Stock {
	return Stock{
		ID:            0,
		Symbol:        o.Symbol,
		Name:          o.Name,
		MarketCap:     o.MarketCap,
		Sector:        o.Sector,
		Industry:      o.Industry,
		PERatio:       o.PERatio,
		Beta:          o.Beta,
		DividendYield: o.DividendYield,
		CreatedAt:     time.Time{},
		UpdatedAt:     time.Time{},
	}
}

// StockPrice is a persisted bar with an optional indicator snapshot.
type StockPrice struct {
	ID         int64                  `json:"id"`
	StockID    int64                  `json:"stock_id"`
	Bar        Bar                    `json:"bar"`
	Indicators map[IndicatorKey]Value `json:"indicators,omitempty"`
}

// StoredNews is a persisted news article.
type StoredNews struct {
	ID             int64                    `json:"id"`
	Title          string                   `json:"title" validate:"required"`
	Content        string                   `json:"content"`
	Source         string                   `json:"source"`
	URL            string                   `json:"url" validate:"omitempty,url"`
	PublishedAt    time.Time                `json:"published_at"`
	SentimentScore optional.Option[float64] `json:"sentiment_score"`
	StockID        optional.Option[int64]   `json:"stock_id"`
	RelatedStocks  []string                 `json:"related_stocks"`
}
