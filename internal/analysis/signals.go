package analysis

import (
	"fmt"

	"github.com/maksimkitikov/QuantFinSocietyAI-Int2/internal/types"
)

// Thresholds are the RSI levels used to classify overbought and oversold readings.
type Thresholds struct {
	RSILower float64 `yaml:"rsi_lower" json:"rsi_lower" validate:"gte=0,ltfield=RSIUpper"`
	RSIUpper float64 `yaml:"rsi_upper" json:"rsi_upper" validate:"lte=100"`
}

// DefaultThresholds returns the 30/70 RSI levels.
func DefaultThresholds() Thresholds {
	return Thresholds{RSILower: 30, RSIUpper: 70}
}

// Signals interprets the latest readings of indicators against the latest close.
// Every family yields exactly one signal; missing readings yield SignalTypeUnavailable.
func Signals(indicators types.IndicatorSet, lastClose float64, th Thresholds) []types.Signal {
	return []types.Signal{
		rsiSignal(indicators.Get(types.IndicatorKeyRSI14), th),
		macdSignal(indicators.Get(types.IndicatorKeyMACDHist)),
		bandSignal(indicators.Get(types.IndicatorKeyBBMiddle), indicators.Get(types.IndicatorKeyBBUpper),
			indicators.Get(types.IndicatorKeyBBLower), lastClose),
		trendSignal(indicators.Get(types.IndicatorKeySMA20), indicators.Get(types.IndicatorKeySMA50)),
	}
}

func unavailable(family types.IndicatorType, what string) types.Signal {
	return types.Signal{
		Type:      types.SignalTypeUnavailable,
		Indicator: family,
		Reason:    what + " is unavailable for the requested range",
		RawValue:  types.Unavailable(),
	}
}

func rsiSignal(rsi types.Value, th Thresholds) types.Signal {
	if rsi.IsNone() {
		return unavailable(types.IndicatorTypeRSI, "RSI")
	}

	v := rsi.Unwrap()
	signal := types.Signal{Type: types.SignalTypeNeutral, Indicator: types.IndicatorTypeRSI, RawValue: rsi}

	switch {
	case v > th.RSIUpper:
		signal.Type = types.SignalTypeOverbought
		signal.Reason = fmt.Sprintf("RSI %.2f is above %.0f", v, th.RSIUpper)
	case v < th.RSILower:
		signal.Type = types.SignalTypeOversold
		signal.Reason = fmt.Sprintf("RSI %.2f is below %.0f", v, th.RSILower)
	default:
		signal.Reason = fmt.Sprintf("RSI %.2f is between %.0f and %.0f", v, th.RSILower, th.RSIUpper)
	}

	return signal
}

func macdSignal(hist types.Value) types.Signal {
	if hist.IsNone() {
		return unavailable(types.IndicatorTypeMACD, "MACD")
	}

	v := hist.Unwrap()
	signal := types.Signal{Type: types.SignalTypeNeutral, Indicator: types.IndicatorTypeMACD, RawValue: hist,
		Reason: "MACD is on its signal line"}

	switch {
	case v > 0:
		signal.Type = types.SignalTypeBullish
		signal.Reason = fmt.Sprintf("MACD is %.4f above its signal line", v)
	case v < 0:
		signal.Type = types.SignalTypeBearish
		signal.Reason = fmt.Sprintf("MACD is %.4f below its signal line", -v)
	}

	return signal
}

func bandSignal(middle, upper, lower types.Value, lastClose float64) types.Signal {
	if middle.IsNone() || upper.IsNone() || lower.IsNone() {
		return unavailable(types.IndicatorTypeBollingerBands, "Bollinger Bands")
	}

	signal := types.Signal{Type: types.SignalTypeNeutral, Indicator: types.IndicatorTypeBollingerBands, RawValue: middle,
		Reason: fmt.Sprintf("close %.2f is on the middle band", lastClose)}

	switch {
	case lastClose > upper.Unwrap():
		signal.Type = types.SignalTypeOverbought
		signal.Reason = fmt.Sprintf("close %.2f is above the upper band %.2f", lastClose, upper.Unwrap())
	case lastClose < lower.Unwrap():
		signal.Type = types.SignalTypeOversold
		signal.Reason = fmt.Sprintf("close %.2f is below the lower band %.2f", lastClose, lower.Unwrap())
	case lastClose > middle.Unwrap():
		signal.Type = types.SignalTypeBullish
		signal.Reason = fmt.Sprintf("close %.2f is above the middle band %.2f", lastClose, middle.Unwrap())
	case lastClose < middle.Unwrap():
		signal.Type = types.SignalTypeBearish
		signal.Reason = fmt.Sprintf("close %.2f is below the middle band %.2f", lastClose, middle.Unwrap())
	}

	return signal
}

func trendSignal(fast, slow types.Value) types.Signal {
	if fast.IsNone() || slow.IsNone() {
		return unavailable(types.IndicatorTypeSMA, "SMA 20/50 crossover")
	}

	diff := fast.Unwrap() - slow.Unwrap()
	signal := types.Signal{Type: types.SignalTypeNeutral, Indicator: types.IndicatorTypeSMA, RawValue: types.Available(diff),
		Reason: "SMA 20 equals SMA 50"}

	switch {
	case diff > 0:
		signal.Type = types.SignalTypeBullish
		signal.Reason = fmt.Sprintf("SMA 20 is %.2f above SMA 50", diff)
	case diff < 0:
		signal.Type = types.SignalTypeBearish
		signal.Reason = fmt.Sprintf("SMA 20 is %.2f below SMA 50", -diff)
	}

	return signal
}
