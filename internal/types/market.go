package types

import (
	"time"

	"github.com/moznion/go-optional"
)

// Quote is the latest trading snapshot of a symbol.
type Quote struct {
	Symbol        string    `json:"symbol"`
	Name          string    `json:"name"`
	Price         float64   `json:"price"`
	Change        float64   `json:"change"`
	ChangePercent float64   `json:"change_percent"`
	Volume        int64     `json:"volume"`
	Time          time.Time `json:"time"`
}

// MarketIndex is a benchmark index tracked by the market summary.
type MarketIndex struct {
	Symbol string
	Name   string
}

// DefaultMarketIndices returns the indices reported by the market summary.
func DefaultMarketIndices() []MarketIndex {
	return []MarketIndex{
		{Symbol: "^GSPC", Name: "S&P 500"},
		{Symbol: "^DJI", Name: "Dow Jones"},
		{Symbol: "^IXIC", Name: "NASDAQ"},
		{Symbol: "^RUT", Name: "Russell 2000"},
	}
}

// MarketSummary holds index quotes keyed by index name.
type MarketSummary struct {
	Indices   map[string]Quote `json:"indices"`
	UpdatedAt time.Time        `json:"updated_at"`
}

// StockSnapshot is the combined overview, quote and indicator view of a symbol.
type StockSnapshot struct {
	Symbol     string          `json:"symbol"`
	Overview   CompanyOverview `json:"overview"`
	Price      float64         `json:"price"`
	Change     Value           `json:"change"`
	ChangePct  Value           `json:"change_percent"`
	Volume     int64           `json:"volume"`
	Indicators IndicatorSet    `json:"technical_indicators"`
	Signals    []Signal        `json:"signals"`
	AsOf       time.Time       `json:"as_of"`
}

// StockComparison is one row of a side-by-side comparison.
type StockComparison struct {
	Symbol    string                   `json:"symbol"`
	Name      string                   `json:"name"`
	Price     float64                  `json:"price"`
	ChangePct Value                    `json:"change_percent"`
	PERatio   optional.Option[float64] `json:"pe_ratio"`
	MarketCap optional.Option[float64] `json:"market_cap"`
	Beta      optional.Option[float64] `json:"beta"`
	RSI       Value                    `json:"rsi_14"`
	Error     string                   `json:"error,omitempty"`
}

// ScreenerCriteria filters a symbol universe. Zero-valued options are ignored.
type ScreenerCriteria struct {
	Symbols   []string                 `json:"symbols" validate:"required,min=1,max=50,dive,required"`
	MinPE     optional.Option[float64] `json:"min_pe"`
	MaxPE     optional.Option[float64] `json:"max_pe"`
	MinVolume optional.Option[int64]   `json:"min_volume"`
	MaxBeta   optional.Option[float64] `json:"max_beta"`
}

// EconomicEvent is one entry of the economic calendar.
type EconomicEvent struct {
	Date       time.Time `json:"date"`
	Event      string    `json:"event"`
	Country    string    `json:"country"`
	Importance string    `json:"importance"`
	Forecast   string    `json:"forecast"`
	Previous   string    `json:"previous"`
}

// ScreenResult is a symbol that passed a screener.
type ScreenResult struct {
	Symbol  string                   `json:"symbol"`
	Name    string                   `json:"name"`
	Price   float64                  `json:"price"`
	Volume  int64                    `json:"volume"`
	PERatio optional.Option[float64] `json:"pe_ratio"`
	Beta    optional.Option[float64] `json:"beta"`
}
