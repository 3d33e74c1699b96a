package types

import (
	"github.com/moznion/go-optional"

	"github.com/maksimkitikov/QuantFinSocietyAI-Int2/pkg/errors"
)

// IndicatorType names an indicator family in the registry.
type IndicatorType string

const (
	IndicatorTypeSMA            IndicatorType = "sma"
	IndicatorTypeEMA            IndicatorType = "ema"
	IndicatorTypeRSI            IndicatorType = "rsi"
	IndicatorTypeMACD           IndicatorType = "macd"
	IndicatorTypeBollingerBands IndicatorType = "bollinger_bands"
	IndicatorTypeATR            IndicatorType = "atr"
	IndicatorTypeOBV            IndicatorType = "obv"
)

// IndicatorKey names one output line of an IndicatorSet.
type IndicatorKey string

const (
	IndicatorKeySMA20      IndicatorKey = "sma_20"
	IndicatorKeySMA50      IndicatorKey = "sma_50"
	IndicatorKeyRSI14      IndicatorKey = "rsi_14"
	IndicatorKeyMACD       IndicatorKey = "macd"
	IndicatorKeyMACDSignal IndicatorKey = "macd_signal"
	IndicatorKeyMACDHist   IndicatorKey = "macd_hist"
	IndicatorKeyBBUpper    IndicatorKey = "bb_upper"
	IndicatorKeyBBMiddle   IndicatorKey = "bb_middle"
	IndicatorKeyBBLower    IndicatorKey = "bb_lower"
	IndicatorKeyATR14      IndicatorKey = "atr_14"
	IndicatorKeyOBV        IndicatorKey = "obv"
)

// AllIndicatorKeys returns every IndicatorSet key in display order.
func AllIndicatorKeys() []IndicatorKey {
	return []IndicatorKey{
		IndicatorKeySMA20,
		IndicatorKeySMA50,
		IndicatorKeyRSI14,
		IndicatorKeyMACD,
		IndicatorKeyMACDSignal,
		IndicatorKeyMACDHist,
		IndicatorKeyBBUpper,
		IndicatorKeyBBMiddle,
		IndicatorKeyBBLower,
		IndicatorKeyATR14,
		IndicatorKeyOBV,
	}
}

// Value is an indicator reading. None means the window was not yet full.
type Value = optional.Option[float64]

// Available wraps a computed reading.
func Available(v float64) Value {
	return optional.Some(v)
}

// Unavailable is the reading for points where the indicator is undefined.
func Unavailable() Value {
	return optional.None[float64]()
}

// IndicatorSet holds the latest reading and the full aligned series of every indicator.
type IndicatorSet struct {
	Symbol string                   `json:"symbol"`
	Latest map[IndicatorKey]Value   `json:"latest"`
	Series map[IndicatorKey][]Value `json:"series,omitempty"`
}

// NewIndicatorSet creates an empty set for symbol.
func NewIndicatorSet(symbol string) IndicatorSet {
	return IndicatorSet{
		Symbol: symbol,
		Latest: make(map[IndicatorKey]Value),
		Series: make(map[IndicatorKey][]Value),
	}
}

// Put stores a full series and derives its latest reading.
func (s IndicatorSet) Put(name IndicatorKey, series []Value) {
	s.Series[name] = series
	if len(series) == 0 {
		s.Latest[name] = Unavailable()

		return
	}

	s.Latest[name] = series[len(series)-1]
}

// Get returns the latest reading of name. Unknown names are unavailable.
func (s IndicatorSet) Get(name IndicatorKey) Value {
	v, ok := s.Latest[name]
	if !ok {
		return Unavailable()
	}

	return v
}

// Require returns the latest reading of name or an insufficient data error.
func (s IndicatorSet) Require(name IndicatorKey) (float64, error) {
	v := s.Get(name)
	if v.IsNone() {
		return 0, errors.NewInsufficientDataErrorf(0, 0, s.Symbol, "indicator %s is unavailable for %s", name, s.Symbol)
	}

	return v.Unwrap(), nil
}

// LatestOnly returns a copy of the set without the per-point series.
func (s IndicatorSet) LatestOnly() IndicatorSet {
	out := IndicatorSet{
		Symbol: s.Symbol,
		Latest: make(map[IndicatorKey]Value, len(s.Latest)),
		Series: nil,
	}

	for k, v := range s.Latest {
		out.Latest[k] = v
	}

	return out
}
