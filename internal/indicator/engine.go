package indicator

import (
	"github.com/maksimkitikov/QuantFinSocietyAI-Int2/internal/types"
	"github.com/maksimkitikov/QuantFinSocietyAI-Int2/pkg/errors"
)

// Spec selects an indicator family and its Config parameters.
type Spec struct {
	Type   types.IndicatorType `json:"type" validate:"required"`
	Params []any               `json:"params,omitempty"`
}

// DefaultSpecs is the set behind every IndicatorSet:
// sma_20, sma_50, rsi_14, macd/signal/hist, bollinger bands (20, 2), atr_14 and obv.
func DefaultSpecs() []Spec {
	return []Spec{
		{Type: types.IndicatorTypeSMA, Params: []any{20}},
		{Type: types.IndicatorTypeSMA, Params: []any{50}},
		{Type: types.IndicatorTypeRSI, Params: []any{14}},
		{Type: types.IndicatorTypeMACD, Params: []any{12, 26, 9}},
		{Type: types.IndicatorTypeBollingerBands, Params: []any{20, 2.0}},
		{Type: types.IndicatorTypeATR, Params: []any{14}},
		{Type: types.IndicatorTypeOBV, Params: nil},
	}
}

// Engine evaluates a list of indicator specs over a bar series.
type Engine struct {
	registry IndicatorRegistry
	specs    []Spec
}

// NewEngine creates an engine computing the default indicator set.
func NewEngine(registry IndicatorRegistry) *Engine {
	return &Engine{
		registry: registry,
		specs:    DefaultSpecs(),
	}
}

// ComputeIndicators validates the series and computes the default IndicatorSet.
// Windows longer than the series yield unavailable values, not errors.
func (e *Engine) ComputeIndicators(series types.BarSeries) (types.IndicatorSet, error) {
	return e.Compute(series, e.specs)
}

// Compute validates the series and evaluates the given specs.
func (e *Engine) Compute(series types.BarSeries, specs []Spec) (types.IndicatorSet, error) {
	if err := series.Validate(); err != nil {
		return types.IndicatorSet{}, err
	}

	set := types.NewIndicatorSet(series.Symbol)

	for _, spec := range specs {
		ind, err := e.registry.GetIndicator(spec.Type)
		if err != nil {
			return types.IndicatorSet{}, err
		}

		if len(spec.Params) > 0 || spec.Type == types.IndicatorTypeOBV {
			if err := ind.Config(spec.Params...); err != nil {
				return types.IndicatorSet{}, err
			}
		}

		outputs, err := ind.Compute(series)
		if err != nil {
			return types.IndicatorSet{}, errors.Wrapf(errors.ErrCodeIndicatorCalculation, err, "failed to compute %s for %s", spec.Type, series.Symbol)
		}

		for _, key := range ind.Keys() {
			set.Put(key, outputs[key])
		}
	}

	return set, nil
}

var defaultEngine = NewEngine(NewDefaultRegistry())

// ComputeIndicators computes the default IndicatorSet with the built-in registry.
func ComputeIndicators(series types.BarSeries) (types.IndicatorSet, error) {
	return defaultEngine.ComputeIndicators(series)
}
