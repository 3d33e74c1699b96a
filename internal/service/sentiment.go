package service

import (
	"strings"
	"unicode"
)

var positiveWords = map[string]struct{}{
	"beat": {}, "beats": {}, "bullish": {}, "buy": {}, "climb": {}, "climbs": {}, "gain": {}, "gains": {},
	"growth": {}, "high": {}, "higher": {}, "jump": {}, "jumps": {}, "outperform": {}, "profit": {},
	"profits": {}, "rally": {}, "rallies": {}, "record": {}, "rebound": {}, "rise": {}, "rises": {},
	"soar": {}, "soars": {}, "strong": {}, "surge": {}, "surges": {}, "upgrade": {}, "upgraded": {},
	"win": {}, "wins": {}, "boost": {}, "boosts": {}, "optimism": {}, "optimistic": {},
}

var negativeWords = map[string]struct{}{
	"bearish": {}, "cut": {}, "cuts": {}, "decline": {}, "declines": {}, "downgrade": {}, "downgraded": {},
	"drop": {}, "drops": {}, "fall": {}, "falls": {}, "fear": {}, "fears": {}, "fraud": {}, "lawsuit": {},
	"loss": {}, "losses": {}, "low": {}, "lower": {}, "miss": {}, "misses": {}, "plunge": {}, "plunges": {},
	"recession": {}, "sell": {}, "selloff": {}, "slump": {}, "slumps": {}, "tumble": {}, "tumbles": {},
	"weak": {}, "warning": {}, "layoffs": {}, "probe": {}, "crash": {},
}

// ScoreText scores text in [-1, 1] as (positive - negative) / (positive + negative)
// over a fixed finance lexicon. Text without lexicon words scores 0.
func ScoreText(text string) float64 {
	words := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r)
	})

	var pos, neg int

	for _, w := range words {
		if _, ok := positiveWords[w]; ok {
			pos++
		}

		if _, ok := negativeWords[w]; ok {
			neg++
		}
	}

	if pos+neg == 0 {
		return 0
	}

	return float64(pos-neg) / float64(pos+neg)
}
