package types

import (
	"math"
	"time"

	"github.com/maksimkitikov/QuantFinSocietyAI-Int2/pkg/errors"
)

// Bar is one OHLCV sample.
type Bar struct {
	Time   time.Time `json:"date" yaml:"date"`
	Open   float64   `json:"open" yaml:"open"`
	High   float64   `json:"high" yaml:"high"`
	Low    float64   `json:"low" yaml:"low"`
	Close  float64   `json:"close" yaml:"close"`
	Volume int64     `json:"volume" yaml:"volume"`
}

// Validate checks the price envelope of a single bar.
func (b Bar) Validate() error {
	for _, price := range [...]float64{b.Open, b.High, b.Low, b.Close} {
		if math.IsNaN(price) || math.IsInf(price, 0) {
			return errors.Newf(errors.ErrCodeInvalidBar, "bar at %s has a non-finite price", b.Time.Format(time.RFC3339))
		}
	}

	if b.Open < 0 || b.High < 0 || b.Low < 0 || b.Close < 0 {
		return errors.Newf(errors.ErrCodeInvalidBar, "bar at %s has a negative price", b.Time.Format(time.RFC3339))
	}

	if b.Volume < 0 {
		return errors.Newf(errors.ErrCodeInvalidBar, "bar at %s has a negative volume %d", b.Time.Format(time.RFC3339), b.Volume)
	}

	if b.Low > b.Open || b.Low > b.Close {
		return errors.Newf(errors.ErrCodeInvalidBar, "bar at %s has low %.4f above open/close", b.Time.Format(time.RFC3339), b.Low)
	}

	if b.High < b.Open || b.High < b.Close {
		return errors.Newf(errors.ErrCodeInvalidBar, "bar at %s has high %.4f below open/close", b.Time.Format(time.RFC3339), b.High)
	}

	return nil
}

// BarSeries is an ordered sequence of bars for one symbol.
// Timestamps are unique and strictly increasing.
type BarSeries struct {
	Symbol string `json:"symbol"`
	Bars   []Bar  `json:"bars"`
}

// NewBarSeries copies bars into a new validated series.
func NewBarSeries(symbol string, bars []Bar) (BarSeries, error) {
	series := BarSeries{
		Symbol: symbol,
		Bars:   append([]Bar(nil), bars...),
	}

	if err := series.Validate(); err != nil {
		return BarSeries{}, err
	}

	return series, nil
}

// Validate checks that the series is non-empty, strictly increasing in time and
// that every bar is well formed.
func (s BarSeries) Validate() error {
	if len(s.Bars) == 0 {
		return errors.Newf(errors.ErrCodeEmptySeries, "bar series for %q is empty", s.Symbol)
	}

	for i, bar := range s.Bars {
		if err := bar.Validate(); err != nil {
			return err
		}

		if i > 0 && !bar.Time.After(s.Bars[i-1].Time) {
			return errors.Newf(errors.ErrCodeNonMonotonicSeries,
				"bar series for %q is not strictly increasing at index %d (%s after %s)",
				s.Symbol, i, bar.Time.Format(time.RFC3339), s.Bars[i-1].Time.Format(time.RFC3339))
		}
	}

	return nil
}

// Len returns the number of bars.
func (s BarSeries) Len() int {
	return len(s.Bars)
}

// Closes returns a copy of the close prices.
func (s BarSeries) Closes() []float64 {
	out := make([]float64, len(s.Bars))
	for i, bar := range s.Bars {
		out[i] = bar.Close
	}

	return out
}

// Highs returns a copy of the high prices.
func (s BarSeries) Highs() []float64 {
	out := make([]float64, len(s.Bars))
	for i, bar := range s.Bars {
		out[i] = bar.High
	}

	return out
}

// Lows returns a copy of the low prices.
func (s BarSeries) Lows() []float64 {
	out := make([]float64, len(s.Bars))
	for i, bar := range s.Bars {
		out[i] = bar.Low
	}

	return out
}

// Volumes returns a copy of the volumes.
func (s BarSeries) Volumes() []int64 {
	out := make([]int64, len(s.Bars))
	for i, bar := range s.Bars {
		out[i] = bar.Volume
	}

	return out
}

// Times returns a copy of the bar timestamps.
func (s BarSeries) Times() []time.Time {
	out := make([]time.Time, len(s.Bars))
	for i, bar := range s.Bars {
		out[i] = bar.Time
	}

	return out
}

// Last returns the most recent bar. ok is false for an empty series.
func (s BarSeries) Last() (bar Bar, ok bool) {
	if len(s.Bars) == 0 {
		return Bar{}, false
	}

	return s.Bars[len(s.Bars)-1], true
}

// Previous returns the bar before the most recent one. ok is false when the
// series has fewer than two bars.
func (s BarSeries) Previous() (bar Bar, ok bool) {
	if len(s.Bars) < 2 {
		return Bar{}, false
	}

	return s.Bars[len(s.Bars)-2], true
}

// Tail returns a series holding at most the last n bars.
func (s BarSeries) Tail(n int) BarSeries {
	if n >= len(s.Bars) || n < 0 {
		return BarSeries{Symbol: s.Symbol, Bars: append([]Bar(nil), s.Bars...)}
	}

	return BarSeries{Symbol: s.Symbol, Bars: append([]Bar(nil), s.Bars[len(s.Bars)-n:]...)}
}
