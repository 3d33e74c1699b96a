package indicator

import (
	"math"

	"github.com/maksimkitikov/QuantFinSocietyAI-Int2/internal/types"
	"github.com/maksimkitikov/QuantFinSocietyAI-Int2/pkg/errors"
)

// BollingerBands implements the Indicator interface for Bollinger Bands.
type BollingerBands struct {
	period int     // Number of periods for moving average
	stdDev float64 // Number of standard deviations
}

// NewBollingerBands creates a new Bollinger Bands indicator with default configuration.
func NewBollingerBands() Indicator {
	return &BollingerBands{
		period: 20,  // Default period
		stdDev: 2.0, // Default standard deviation
	}
}

// Name returns the name of the indicator.
func (bb *BollingerBands) Name() types.IndicatorType {
	return types.IndicatorTypeBollingerBands
}

// Config configures the Bollinger Bands indicator. Expected parameters: period (int), stdDev (float64).
func (bb *BollingerBands) Config(params ...any) error {
	if len(params) != 2 {
		return missingParameter("Config expects 2 parameters: period (int), stdDev (float64)")
	}

	period, err := intParam(params, 0, "period")
	if err != nil {
		return err
	}

	if period <= 0 {
		return invalidWindow("period", period)
	}

	stdDev, err := floatParam(params, 1, "stdDev")
	if err != nil {
		return err
	}

	if stdDev <= 0 {
		return errors.Newf(errors.ErrCodeInvalidInput, "stdDev must be a positive number, got %f", stdDev)
	}

	bb.period = period
	bb.stdDev = stdDev

	return nil
}

// Keys implements Indicator.
func (bb *BollingerBands) Keys() []types.IndicatorKey {
	return []types.IndicatorKey{types.IndicatorKeyBBUpper, types.IndicatorKeyBBMiddle, types.IndicatorKeyBBLower}
}

// Compute implements Indicator.
func (bb *BollingerBands) Compute(series types.BarSeries) (map[types.IndicatorKey][]types.Value, error) {
	upper, middle, lower, err := Bands(series.Closes(), bb.period, bb.stdDev)
	if err != nil {
		return nil, err
	}

	return map[types.IndicatorKey][]types.Value{
		types.IndicatorKeyBBUpper:  upper,
		types.IndicatorKeyBBMiddle: middle,
		types.IndicatorKeyBBLower:  lower,
	}, nil
}

// Bands returns the upper, middle and lower Bollinger Bands. The middle band is
// the SMA of the window and the offsets use the population standard deviation.
func Bands(closes []float64, window int, k float64) (upper []types.Value, middle []types.Value, lower []types.Value, err error) {
	middle, err = SimpleMovingAverage(closes, window)
	if err != nil {
		return nil, nil, nil, err
	}

	upper = make([]types.Value, len(closes))
	lower = make([]types.Value, len(closes))

	for i := range closes {
		if middle[i].IsNone() {
			upper[i] = types.Unavailable()
			lower[i] = types.Unavailable()

			continue
		}

		m := middle[i].Unwrap()
		sd := populationStdDev(closes[i-window+1:i+1], m)
		upper[i] = types.Available(m + k*sd)
		lower[i] = types.Available(m - k*sd)
	}

	return upper, middle, lower, nil
}

func populationStdDev(values []float64, mean float64) float64 {
	sum := 0.0
	for _, v := range values {
		d := v - mean
		sum += d * d
	}

	return math.Sqrt(sum / float64(len(values)))
}
