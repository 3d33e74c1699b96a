package types

import "time"

// PredictionPoint is one simulated future daily price.
type PredictionPoint struct {
	Date  time.Time `json:"date"`
	Price float64   `json:"price"`
}

// PredictionPath is a simulated price path.
//
// The path and its Confidence are illustrative only. Confidence is a
// placeholder drawn from a fixed band, not an estimate of model error.
type PredictionPath struct {
	Symbol       string            `json:"symbol"`
	Method       string            `json:"method"`
	Points       []PredictionPoint `json:"predictions"`
	Confidence   float64           `json:"confidence"`
	Illustrative bool              `json:"illustrative"`
}

// Len returns the number of simulated days.
func (p PredictionPath) Len() int {
	return len(p.Points)
}
