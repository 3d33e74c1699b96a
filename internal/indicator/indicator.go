// Package indicator computes technical indicators over a bar series.
//
// Every indicator returns a series aligned to its input. Points where the
// window is not yet full are types.Unavailable, never zero. Conventions:
//
//   - SMA: arithmetic mean of the trailing window of closes.
//   - EMA: alpha = 2/(span+1), unadjusted recursion seeded with the first value.
//   - RSI: simple rolling means of gains and losses (not Wilder smoothing),
//     100 when the average loss is zero.
//   - MACD: EMA(12) - EMA(26), signal EMA(9) of MACD, histogram MACD - signal.
//   - Bollinger Bands: SMA(20) +/- 2 population standard deviations.
//   - ATR: simple rolling mean of True Range, the first bar has no True Range.
//   - OBV: starts at 0 on the first bar.
//
// All functions are pure and safe for concurrent use.
package indicator

import (
	"math"

	"github.com/maksimkitikov/QuantFinSocietyAI-Int2/internal/types"
)

// Indicator interface defines methods that any technical indicator must implement
type Indicator interface {
	// Name returns the family of the indicator
	Name() types.IndicatorType
	// Config sets the indicator parameters, e.g. the window length
	Config(params ...any) error
	// Keys returns the IndicatorSet keys produced with the current configuration
	Keys() []types.IndicatorKey
	// Compute returns one aligned series per key
	Compute(series types.BarSeries) (map[types.IndicatorKey][]types.Value, error)
}

// Latest returns the last reading of an aligned series.
func Latest(values []types.Value) types.Value {
	if len(values) == 0 {
		return types.Unavailable()
	}

	return values[len(values)-1]
}

// intParam reads an int parameter, accepting whole float64 values as decoded from JSON.
func intParam(params []any, idx int, name string) (int, error) {
	switch v := params[idx].(type) {
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case float64:
		if v != math.Trunc(v) || math.IsInf(v, 0) {
			return 0, invalidType(name, "int")
		}

		return int(v), nil
	default:
		return 0, invalidType(name, "int")
	}
}

func floatParam(params []any, idx int, name string) (float64, error) {
	switch v := params[idx].(type) {
	case float64:
		return v, nil
	case int:
		return float64(v), nil
	default:
		return 0, invalidType(name, "float64")
	}
}
