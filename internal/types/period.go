package types

import (
	"time"

	"github.com/maksimkitikov/QuantFinSocietyAI-Int2/pkg/errors"
)

// Period is a lookback range in the Yahoo vocabulary.
type Period string

const (
	Period1d  Period = "1d"
	Period5d  Period = "5d"
	Period1mo Period = "1mo"
	Period3mo Period = "3mo"
	Period6mo Period = "6mo"
	Period1y  Period = "1y"
	Period2y  Period = "2y"
	Period5y  Period = "5y"
	Period10y Period = "10y"
	PeriodYTD Period = "ytd"
	PeriodMax Period = "max"
)

// Interval is a bar width.
type Interval string

const (
	Interval1m  Interval = "1m"
	Interval5m  Interval = "5m"
	Interval15m Interval = "15m"
	Interval30m Interval = "30m"
	Interval1h  Interval = "1h"
	Interval1d  Interval = "1d"
	Interval1wk Interval = "1wk"
	Interval1mo Interval = "1mo"
)

var validPeriods = map[Period]struct{}{
	Period1d: {}, Period5d: {}, Period1mo: {}, Period3mo: {}, Period6mo: {},
	Period1y: {}, Period2y: {}, Period5y: {}, Period10y: {}, PeriodYTD: {}, PeriodMax: {},
}

var intervalDurations = map[Interval]time.Duration{
	Interval1m:  time.Minute,
	Interval5m:  5 * time.Minute,
	Interval15m: 15 * time.Minute,
	Interval30m: 30 * time.Minute,
	Interval1h:  time.Hour,
	Interval1d:  24 * time.Hour,
	Interval1wk: 7 * 24 * time.Hour,
	Interval1mo: 30 * 24 * time.Hour,
}

// ParsePeriod validates a period string.
func ParsePeriod(s string) (Period, error) {
	p := Period(s)
	if _, ok := validPeriods[p]; !ok {
		return "", errors.Newf(errors.ErrCodeInvalidPeriod, "unsupported period %q", s)
	}

	return p, nil
}

// ParseInterval validates an interval string.
func ParseInterval(s string) (Interval, error) {
	i := Interval(s)
	if _, ok := intervalDurations[i]; !ok {
		return "", errors.Newf(errors.ErrCodeInvalidInterval, "unsupported interval %q", s)
	}

	return i, nil
}

// Duration returns the nominal width of one bar.
func (i Interval) Duration() time.Duration {
	return intervalDurations[i]
}

// Intraday reports whether the interval is shorter than a day.
func (i Interval) Intraday() bool {
	return i.Duration() < 24*time.Hour
}

// Range returns the [start, end] window the period covers, ending at now.
func (p Period) Range(now time.Time) (start time.Time, end time.Time) {
	end = now
	switch p {
	case Period1d:
		start = now.AddDate(0, 0, -1)
	case Period5d:
		start = now.AddDate(0, 0, -5)
	case Period1mo:
		start = now.AddDate(0, -1, 0)
	case Period3mo:
		start = now.AddDate(0, -3, 0)
	case Period6mo:
		start = now.AddDate(0, -6, 0)
	case Period1y:
		start = now.AddDate(-1, 0, 0)
	case Period2y:
		start = now.AddDate(-2, 0, 0)
	case Period5y:
		start = now.AddDate(-5, 0, 0)
	case Period10y:
		start = now.AddDate(-10, 0, 0)
	case PeriodYTD:
		start = time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location())
	default:
		start = now.AddDate(-50, 0, 0)
	}

	return start, end
}
