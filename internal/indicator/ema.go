package indicator

import (
	"fmt"

	"github.com/maksimkitikov/QuantFinSocietyAI-Int2/internal/types"
)

// EMA implements the Exponential Moving Average indicator over closes.
type EMA struct {
	period int
}

// NewEMA creates a new EMA indicator with default configuration.
func NewEMA() Indicator {
	return &EMA{
		period: 20,
	}
}

// Name returns the name of the indicator.
func (e *EMA) Name() types.IndicatorType {
	return types.IndicatorTypeEMA
}

// Config configures the EMA indicator. Expected parameters: period (int).
func (e *EMA) Config(params ...any) error {
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

	e.period = period

	return nil
}

// Keys implements Indicator.
func (e *EMA) Keys() []types.IndicatorKey {
	return []types.IndicatorKey{types.IndicatorKey(fmt.Sprintf("ema_%d", e.period))}
}

// Compute implements Indicator.
func (e *EMA) Compute(series types.BarSeries) (map[types.IndicatorKey][]types.Value, error) {
	raw, err := ExponentialMovingAverage(series.Closes(), e.period)
	if err != nil {
		return nil, err
	}

	return map[types.IndicatorKey][]types.Value{e.Keys()[0]: wrapAll(raw)}, nil
}

// ExponentialMovingAverage applies the unadjusted recursion
// ema[0] = v[0], ema[i] = alpha*v[i] + (1-alpha)*ema[i-1] with alpha = 2/(span+1).
// It is defined at every index.
func ExponentialMovingAverage(values []float64, span int) ([]float64, error) {
	if span <= 0 {
		return nil, invalidWindow("span", span)
	}

	out := make([]float64, len(values))
	if len(values) == 0 {
		return out, nil
	}

	alpha := 2.0 / float64(span+1)
	out[0] = values[0]

	for i := 1; i < len(values); i++ {
		out[i] = alpha*values[i] + (1-alpha)*out[i-1]
	}

	return out, nil
}

func wrapAll(values []float64) []types.Value {
	out := make([]types.Value, len(values))
	for i, v := range values {
		out[i] = types.Available(v)
	}

	return out
}
