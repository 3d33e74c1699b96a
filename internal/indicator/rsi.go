package indicator

import (
	"fmt"

	"github.com/maksimkitikov/QuantFinSocietyAI-Int2/internal/types"
)

// RSI implements the Relative Strength Index indicator.
type RSI struct {
	period            int
	rsiLowerThreshold float64
	rsiUpperThreshold float64
}

// NewRSI creates a new RSI indicator with default configuration.
func NewRSI() Indicator {
	return &RSI{
		period:            14,
		rsiLowerThreshold: 30,
		rsiUpperThreshold: 70,
	}
}

// Name returns the name of the indicator.
func (r *RSI) Name() types.IndicatorType {
	return types.IndicatorTypeRSI
}

// Config configures the RSI indicator.
// Expected parameters: period (int), optional lowerThreshold (float64), optional upperThreshold (float64).
func (r *RSI) Config(params ...any) error {
	if len(params) < 1 {
		return missingParameter("Config expects at least 1 parameter: period (int)")
	}

	period, err := intParam(params, 0, "period")
	if err != nil {
		return err
	}

	if period <= 0 {
		return invalidWindow("period", period)
	}

	lower, upper := r.rsiLowerThreshold, r.rsiUpperThreshold

	if len(params) > 1 {
		if lower, err = floatParam(params, 1, "threshold"); err != nil {
			return err
		}
	}

	if len(params) > 2 {
		if upper, err = floatParam(params, 2, "threshold"); err != nil {
			return err
		}
	}

	if lower < 0 || upper > 100 || lower >= upper {
		return invalidThreshold(lower, upper)
	}

	r.period = period
	r.rsiLowerThreshold = lower
	r.rsiUpperThreshold = upper

	return nil
}

// Thresholds returns the oversold and overbought levels.
func (r *RSI) Thresholds() (lower float64, upper float64) {
	return r.rsiLowerThreshold, r.rsiUpperThreshold
}

// Keys implements Indicator.
func (r *RSI) Keys() []types.IndicatorKey {
	return []types.IndicatorKey{types.IndicatorKey(fmt.Sprintf("rsi_%d", r.period))}
}

// Compute implements Indicator.
func (r *RSI) Compute(series types.BarSeries) (map[types.IndicatorKey][]types.Value, error) {
	values, err := RelativeStrengthIndex(series.Closes(), r.period)
	if err != nil {
		return nil, err
	}

	return map[types.IndicatorKey][]types.Value{r.Keys()[0]: values}, nil
}

// RelativeStrengthIndex computes RSI with simple rolling means of gains and
// absolute losses over the last window close-to-close deltas.
// The first window points are unavailable since index 0 has no delta.
// When the average loss is zero the RSI is 100.
func RelativeStrengthIndex(closes []float64, window int) ([]types.Value, error) {
	if window <= 0 {
		return nil, invalidWindow("window", window)
	}

	out := make([]types.Value, len(closes))
	for i := range closes {
		if i < window {
			out[i] = types.Unavailable()

			continue
		}

		gains, losses := 0.0, 0.0

		for j := i - window + 1; j <= i; j++ {
			delta := closes[j] - closes[j-1]
			if delta > 0 {
				gains += delta
			} else {
				losses -= delta
			}
		}

		avgGain := gains / float64(window)
		avgLoss := losses / float64(window)

		if avgLoss == 0 {
			out[i] = types.Available(100)

			continue
		}

		rs := avgGain / avgLoss
		out[i] = types.Available(100 - 100/(1+rs))
	}

	return out, nil
}
