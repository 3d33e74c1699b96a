package types

type SignalType string

const (
	// SignalTypeOverbought is reported when RSI is above the upper threshold
	SignalTypeOverbought SignalType = "overbought"
	// SignalTypeOversold is reported when RSI is below the lower threshold
	SignalTypeOversold SignalType = "oversold"
	// SignalTypeBullish is reported for an upward MACD or a close above the middle band
	SignalTypeBullish SignalType = "bullish"
	// SignalTypeBearish is reported for a downward MACD or a close below the middle band
	SignalTypeBearish SignalType = "bearish"
	// SignalTypeNeutral is reported when no threshold is crossed
	SignalTypeNeutral SignalType = "neutral"
	// SignalTypeUnavailable is reported when the underlying indicator has no value yet
	SignalTypeUnavailable SignalType = "unavailable"
)

// Signal is a readable interpretation of one indicator reading.
type Signal struct {
	// Type is the interpretation of the reading
	Type SignalType `json:"type"`
	// Indicator is the family the reading came from
	Indicator IndicatorType `json:"indicator"`
	// Reason is a short human readable explanation
	Reason string `json:"reason"`
	// RawValue is the reading the signal was derived from
	RawValue Value `json:"raw_value"`
}
