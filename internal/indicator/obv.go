package indicator

import (
	"github.com/maksimkitikov/QuantFinSocietyAI-Int2/internal/types"
)

// OBV implements the On-Balance Volume indicator.
type OBV struct{}

// NewOBV creates a new OBV indicator.
func NewOBV() Indicator {
	return &OBV{}
}

// Name returns the name of the indicator.
func (o *OBV) Name() types.IndicatorType {
	return types.IndicatorTypeOBV
}

// Config accepts no parameters.
func (o *OBV) Config(params ...any) error {
	if len(params) != 0 {
		return missingParameter("OBV takes no parameters, got %d", len(params))
	}

	return nil
}

// Keys implements Indicator.
func (o *OBV) Keys() []types.IndicatorKey {
	return []types.IndicatorKey{types.IndicatorKeyOBV}
}

// Compute implements Indicator.
func (o *OBV) Compute(series types.BarSeries) (map[types.IndicatorKey][]types.Value, error) {
	return map[types.IndicatorKey][]types.Value{
		types.IndicatorKeyOBV: wrapAll(OnBalanceVolume(series.Closes(), series.Volumes())),
	}, nil
}

// OnBalanceVolume starts at 0 on the first bar and then adds the volume of an
// up close, subtracts the volume of a down close and is unchanged on a flat close.
func OnBalanceVolume(closes []float64, volumes []int64) []float64 {
	out := make([]float64, len(closes))

	for i := 1; i < len(closes); i++ {
		switch {
		case closes[i] > closes[i-1]:
			out[i] = out[i-1] + float64(volumes[i])
		case closes[i] < closes[i-1]:
			out[i] = out[i-1] - float64(volumes[i])
		default:
			out[i] = out[i-1]
		}
	}

	return out
}
