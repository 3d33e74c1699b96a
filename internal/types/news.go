package types

import "time"

// NewsItem is one headline returned by a news provider.
type NewsItem struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Summary     string    `json:"summary,omitempty"`
	Link        string    `json:"link"`
	Publisher   string    `json:"publisher"`
	PublishedAt time.Time `json:"published"`
	Type        string    `json:"type"`
	Symbols     []string  `json:"related_symbols,omitempty"`
}

type SentimentLabel string

const (
	SentimentPositive SentimentLabel = "positive"
	SentimentNegative SentimentLabel = "negative"
	SentimentNeutral  SentimentLabel = "neutral"
)

// Thresholds used to turn a score in [-1, 1] into a label.
const (
	SentimentPositiveThreshold = 0.2
	SentimentNegativeThreshold = -0.2
)

// LabelForScore maps a sentiment score to its label.
func LabelForScore(score float64) SentimentLabel {
	switch {
	case score > SentimentPositiveThreshold:
		return SentimentPositive
	case score < SentimentNegativeThreshold:
		return SentimentNegative
	default:
		return SentimentNeutral
	}
}

// NewsSentiment is the scored sentiment of a single headline.
type NewsSentiment struct {
	Title     string         `json:"title"`
	Link      string         `json:"link"`
	Score     float64        `json:"score"`
	Label     SentimentLabel `json:"sentiment"`
	Published time.Time      `json:"published"`
}

// SentimentReport aggregates headline sentiment for one symbol.
type SentimentReport struct {
	Symbol       string          `json:"symbol"`
	OverallScore float64         `json:"overall_score"`
	Overall      SentimentLabel  `json:"overall_sentiment"`
	Items        []NewsSentiment `json:"news_sentiment"`
}

// TextSentiment is the language-model reading of free text.
type TextSentiment struct {
	Text     string `json:"text"`
	Analysis string `json:"analysis"`
}
