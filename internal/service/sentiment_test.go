package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScoreText(t *testing.T) {
	tests := []struct {
		name string
		text string
		want float64
	}{
		{name: "empty", text: "", want: 0},
		{name: "no lexicon words", text: "Apple to hold event in September", want: 0},
		{name: "all positive", text: "Shares SURGE to a record!", want: 1},
		{name: "all negative", text: "Stocks tumble on recession fears", want: -1},
		{name: "mixed", text: "Profit rises despite lawsuit", want: 1.0 / 3.0},
		{name: "punctuation splits words", text: "gains,losses", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ScoreText(tt.text)
			assert.InDelta(t, tt.want, got, 1e-9)
			assert.GreaterOrEqual(t, got, -1.0)
			assert.LessOrEqual(t, got, 1.0)
		})
	}
}
