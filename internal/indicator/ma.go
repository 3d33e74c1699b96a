package indicator

import (
	"fmt"

	"github.com/maksimkitikov/QuantFinSocietyAI-Int2/internal/types"
)

// MA indicator implements Simple Moving Average calculation over closes.
type MA struct {
	period int
}

// NewMA creates a new MA indicator with default configuration.
func NewMA() Indicator {
	return &MA{
		period: 20, // Default period
	}
}

// Name returns the name of the indicator.
func (m *MA) Name() types.IndicatorType {
	return types.IndicatorTypeSMA
}

// Config configures the MA indicator. Expected parameters: period (int).
func (m *MA) Config(params ...any) error {
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

	m.period = period

	return nil
}

// Keys implements Indicator.
func (m *MA) Keys() []types.IndicatorKey {
	return []types.IndicatorKey{types.IndicatorKey(fmt.Sprintf("sma_%d", m.period))}
}

// Compute implements Indicator.
func (m *MA) Compute(series types.BarSeries) (map[types.IndicatorKey][]types.Value, error) {
	values, err := SimpleMovingAverage(series.Closes(), m.period)
	if err != nil {
		return nil, err
	}

	return map[types.IndicatorKey][]types.Value{m.Keys()[0]: values}, nil
}

// SimpleMovingAverage returns the mean of the trailing window of values at every
// index. The first window-1 points are unavailable.
func SimpleMovingAverage(values []float64, window int) ([]types.Value, error) {
	if window <= 0 {
		return nil, invalidWindow("window", window)
	}

	out := make([]types.Value, len(values))
	for i := range values {
		if i < window-1 {
			out[i] = types.Unavailable()

			continue
		}

		out[i] = types.Available(mean(values[i-window+1 : i+1]))
	}

	return out, nil
}

func mean(values []float64) float64 {
	sum := 0.0
	for _, v := range values {
		sum += v
	}

	return sum / float64(len(values))
}
