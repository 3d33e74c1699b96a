package indicator

import (
	"fmt"
	"math"

	"github.com/maksimkitikov/QuantFinSocietyAI-Int2/internal/types"
)

// ATR implements the Average True Range indicator.
type ATR struct {
	period int
}

// NewATR creates a new ATR indicator with default configuration.
func NewATR() Indicator {
	return &ATR{
		period: 14,
	}
}

// Name returns the name of the indicator.
func (a *ATR) Name() types.IndicatorType {
	return types.IndicatorTypeATR
}

// Config configures the ATR indicator. Expected parameters: period (int).
func (a *ATR) Config(params ...any) error {
	if len(params) != 1 {
		return missingParameter("Config expects 1 parameter: period (int)")
	}

	period, err := intParam(params, 0, "period")
	if err != nil {
		return err
	}

	if period <= 0 {
		return invalidWindow("period", period)
	}

	a.period = period

	return nil
}

// Keys implements Indicator.
func (a *ATR) Keys() []types.IndicatorKey {
	return []types.IndicatorKey{types.IndicatorKey(fmt.Sprintf("atr_%d", a.period))}
}

// Compute implements Indicator.
func (a *ATR) Compute(series types.BarSeries) (map[types.IndicatorKey][]types.Value, error) {
	values, err := AverageTrueRange(series.Highs(), series.Lows(), series.Closes(), a.period)
	if err != nil {
		return nil, err
	}

	return map[types.IndicatorKey][]types.Value{a.Keys()[0]: values}, nil
}

// TrueRange returns max(high-low, |high-prevClose|, |low-prevClose|) for every
// bar after the first. Index 0 is unavailable.
func TrueRange(highs, lows, closes []float64) []types.Value {
	out := make([]types.Value, len(closes))
	for i := range closes {
		if i == 0 {
			out[i] = types.Unavailable()

			continue
		}

		prevClose := closes[i-1]
		tr := math.Max(highs[i]-lows[i], math.Max(math.Abs(highs[i]-prevClose), math.Abs(lows[i]-prevClose)))
		out[i] = types.Available(tr)
	}

	return out
}

// AverageTrueRange is the simple rolling mean of the last window True Range
// values. It is unavailable before index window.
func AverageTrueRange(highs, lows, closes []float64, window int) ([]types.Value, error) {
	if window <= 0 {
		return nil, invalidWindow("window", window)
	}

	if len(highs) != len(closes) || len(lows) != len(closes) {
		return nil, missingParameter("highs, lows and closes must have equal length, got %d, %d and %d", len(highs), len(lows), len(closes))
	}

	tr := TrueRange(highs, lows, closes)
	out := make([]types.Value, len(closes))

	for i := range closes {
		if i < window {
			out[i] = types.Unavailable()

			continue
		}

		sum := 0.0
		for j := i - window + 1; j <= i; j++ {
			sum += tr[j].Unwrap()
		}

		out[i] = types.Available(sum / float64(window))
	}

	return out, nil
}
