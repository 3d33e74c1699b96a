package indicator

import (
	"github.com/maksimkitikov/QuantFinSocietyAI-Int2/internal/types"
)

// MACD represents the Moving Average Convergence Divergence indicator.
type MACD struct {
	fastPeriod   int
	slowPeriod   int
	signalPeriod int
}

// NewMACD creates a new MACD indicator with default configuration.
func NewMACD() Indicator {
	return &MACD{
		fastPeriod:   12, // Default fast period
		slowPeriod:   26, // Default slow period
		signalPeriod: 9,  // Default signal period
	}
}

// Name returns the name of the indicator.
func (m *MACD) Name() types.IndicatorType {
	return types.IndicatorTypeMACD
}

// Config configures the MACD indicator. Expected parameters: fastPeriod (int), slowPeriod (int), signalPeriod (int).
func (m *MACD) Config(params ...any) error {
	if len(params) != 3 {
		return missingParameter("Config expects 3 parameters: fastPeriod (int), slowPeriod (int), signalPeriod (int)")
	}

	fastPeriod, err := intParam(params, 0, "fastPeriod")
	if err != nil {
		return err
	}

	if fastPeriod <= 0 {
		return invalidWindow("fastPeriod", fastPeriod)
	}

	slowPeriod, err := intParam(params, 1, "slowPeriod")
	if err != nil {
		return err
	}

	if slowPeriod <= 0 {
		return invalidWindow("slowPeriod", slowPeriod)
	}

	signalPeriod, err := intParam(params, 2, "signalPeriod")
	if err != nil {
		return err
	}

	if signalPeriod <= 0 {
		return invalidWindow("signalPeriod", signalPeriod)
	}

	m.fastPeriod = fastPeriod
	m.slowPeriod = slowPeriod
	m.signalPeriod = signalPeriod

	return nil
}

// Keys implements Indicator.
func (m *MACD) Keys() []types.IndicatorKey {
	return []types.IndicatorKey{types.IndicatorKeyMACD, types.IndicatorKeyMACDSignal, types.IndicatorKeyMACDHist}
}

// Compute implements Indicator.
func (m *MACD) Compute(series types.BarSeries) (map[types.IndicatorKey][]types.Value, error) {
	line, signal, hist, err := MACDLines(series.Closes(), m.fastPeriod, m.slowPeriod, m.signalPeriod)
	if err != nil {
		return nil, err
	}

	return map[types.IndicatorKey][]types.Value{
		types.IndicatorKeyMACD:       wrapAll(line),
		types.IndicatorKeyMACDSignal: wrapAll(signal),
		types.IndicatorKeyMACDHist:   wrapAll(hist),
	}, nil
}

// MACDLines returns the MACD line EMA(fast) - EMA(slow), its EMA(signal) and
// the histogram line - signal. All three are defined at every index because the
// underlying EMAs are seeded at index 0.
func MACDLines(closes []float64, fast, slow, signal int) (line []float64, signalLine []float64, hist []float64, err error) {
	fastEMA, err := ExponentialMovingAverage(closes, fast)
	if err != nil {
		return nil, nil, nil, err
	}

	slowEMA, err := ExponentialMovingAverage(closes, slow)
	if err != nil {
		return nil, nil, nil, err
	}

	line = make([]float64, len(closes))
	for i := range closes {
		line[i] = fastEMA[i] - slowEMA[i]
	}

	signalLine, err = ExponentialMovingAverage(line, signal)
	if err != nil {
		return nil, nil, nil, err
	}

	hist = make([]float64, len(closes))
	for i := range closes {
		hist[i] = line[i] - signalLine[i]
	}

	return line, signalLine, hist, nil
}
