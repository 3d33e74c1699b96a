package types

import "time"

type AnalysisKind string

const (
	AnalysisKindPriceDirection AnalysisKind = "price_direction"
	AnalysisKindInsights       AnalysisKind = "insights"
)

// Analysis is generated commentary on a symbol together with the context it
// was generated from.
type Analysis struct {
	Symbol      string       `json:"symbol"`
	Kind        AnalysisKind `json:"kind"`
	Text        string       `json:"analysis"`
	Context     string       `json:"context"`
	GeneratedAt time.Time    `json:"generated_at"`
}
