package indicator

import (
	"time"

	"github.com/maksimkitikov/QuantFinSocietyAI-Int2/internal/types"
)

var fixtureStart = time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)

// seriesFromCloses builds a daily series whose bars straddle each close by 1.
func seriesFromCloses(closes ...float64) types.BarSeries {
	bars := make([]types.Bar, len(closes))
	for i, c := range closes {
		bars[i] = types.Bar{
			Time:   fixtureStart.AddDate(0, 0, i),
			Open:   c,
			High:   c + 1,
			Low:    c - 1,
			Close:  c,
			Volume: int64(100 + 50*i),
		}
	}

	return types.BarSeries{Symbol: "TEST", Bars: bars}
}

func risingCloses(n int, start float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = start + float64(i)
	}

	return out
}

func unwrapAll(values []types.Value) []float64 {
	out := make([]float64, 0, len(values))
	for _, v := range values {
		if v.IsSome() {
			out = append(out, v.Unwrap())
		}
	}

	return out
}
