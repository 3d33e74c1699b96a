// Package analysis turns indicator readings into the text handed to a text
// generator and into readable signals. It never calls a model itself.
package analysis

import (
	"fmt"
	"strings"

	"github.com/moznion/go-optional"

	"github.com/maksimkitikov/QuantFinSocietyAI-Int2/internal/types"
	"github.com/maksimkitikov/QuantFinSocietyAI-Int2/pkg/errors"
)

// NotAvailable is rendered in place of a reading that cannot be computed.
const NotAvailable = "N/A"

var indicatorLabels = map[types.IndicatorKey]string{
	types.IndicatorKeySMA20:      "SMA 20",
	types.IndicatorKeySMA50:      "SMA 50",
	types.IndicatorKeyRSI14:      "RSI 14",
	types.IndicatorKeyMACD:       "MACD",
	types.IndicatorKeyMACDSignal: "MACD signal",
	types.IndicatorKeyMACDHist:   "MACD histogram",
	types.IndicatorKeyBBUpper:    "Bollinger upper",
	types.IndicatorKeyBBMiddle:   "Bollinger middle",
	types.IndicatorKeyBBLower:    "Bollinger lower",
	types.IndicatorKeyATR14:      "ATR 14",
	types.IndicatorKeyOBV:        "OBV",
}

// Label returns the display label of an indicator key.
func Label(key types.IndicatorKey) string {
	if label, ok := indicatorLabels[key]; ok {
		return label
	}

	return string(key)
}

// BuildContext formats the latest close, the daily change and every indicator
// of the default set into a fixed block of text:
//
//	Symbol: AAPL
//	Current price: 189.25
//	Daily change: 1.12%
//	SMA 20: 185.40
//	...
//
// Unavailable readings, and the daily change of a one-bar series, are N/A.
func BuildContext(symbol string, series types.BarSeries, indicators types.IndicatorSet) (string, error) {
	if strings.TrimSpace(symbol) == "" {
		return "", errors.New(errors.ErrCodeInvalidSymbol, "symbol is required")
	}

	last, ok := series.Last()
	if !ok {
		return "", errors.Newf(errors.ErrCodeEmptySeries, "bar series for %q is empty", symbol)
	}

	var b strings.Builder

	fmt.Fprintf(&b, "Symbol: %s\n", symbol)
	fmt.Fprintf(&b, "Current price: %.2f\n", last.Close)
	fmt.Fprintf(&b, "Daily change: %s\n", formatPercent(DailyChangePercent(series)))

	for _, key := range types.AllIndicatorKeys() {
		fmt.Fprintf(&b, "%s: %s\n", Label(key), FormatValue(indicators.Get(key)))
	}

	return b.String(), nil
}

// DailyChangePercent returns the percent change of the last close against the
// previous close. It is unavailable for a one-bar series or a zero previous close.
func DailyChangePercent(series types.BarSeries) types.Value {
	change := DailyChange(series)
	prev, ok := series.Previous()

	if change.IsNone() || !ok || prev.Close == 0 {
		return types.Unavailable()
	}

	return types.Available(change.Unwrap() / prev.Close * 100)
}

// DailyChange returns the absolute change of the last close against the previous close.
func DailyChange(series types.BarSeries) types.Value {
	last, ok := series.Last()
	if !ok {
		return types.Unavailable()
	}

	prev, ok := series.Previous()
	if !ok {
		return types.Unavailable()
	}

	return types.Available(last.Close - prev.Close)
}

// FormatValue renders a reading with two decimals or N/A.
func FormatValue(v types.Value) string {
	if v.IsNone() {
		return NotAvailable
	}

	return fmt.Sprintf("%.2f", v.Unwrap())
}

func formatPercent(v types.Value) string {
	if v.IsNone() {
		return NotAvailable
	}

	return fmt.Sprintf("%.2f%%", v.Unwrap())
}

func formatOptional(v optional.Option[float64]) string {
	if v.IsNone() {
		return types.Unknown
	}

	return fmt.Sprintf("%.2f", v.Unwrap())
}

// BuildOverviewContext formats company attributes and the latest trading
// snapshot. Attributes the provider did not supply are rendered as unknown.
func BuildOverviewContext(snapshot types.StockSnapshot) string {
	o := snapshot.Overview.Normalize()

	var b strings.Builder

	fmt.Fprintf(&b, "Symbol: %s\n", snapshot.Symbol)
	fmt.Fprintf(&b, "Name: %s\n", o.Name)
	fmt.Fprintf(&b, "Sector: %s\n", o.Sector)
	fmt.Fprintf(&b, "Industry: %s\n", o.Industry)
	fmt.Fprintf(&b, "Current price: %.2f\n", snapshot.Price)
	fmt.Fprintf(&b, "Change: %s\n", FormatValue(snapshot.Change))
	fmt.Fprintf(&b, "Volume: %d\n", snapshot.Volume)
	fmt.Fprintf(&b, "Market cap: %s\n", formatOptional(o.MarketCap))
	fmt.Fprintf(&b, "P/E: %s\n", formatOptional(o.PERatio))
	fmt.Fprintf(&b, "EPS: %s\n", formatOptional(o.EPS))
	fmt.Fprintf(&b, "Dividend yield: %s\n", formatOptional(o.DividendYield))
	fmt.Fprintf(&b, "Beta: %s\n", formatOptional(o.Beta))

	return b.String()
}
