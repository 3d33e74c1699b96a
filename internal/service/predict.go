package service

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/maksimkitikov/QuantFinSocietyAI-Int2/internal/analysis"
	"github.com/maksimkitikov/QuantFinSocietyAI-Int2/internal/types"
	"github.com/maksimkitikov/QuantFinSocietyAI-Int2/pkg/errors"
)

// Fallback selects what Predict does when RSI or MACD cannot be computed.
type Fallback string

const (
	// FallbackNone fails with an insufficient data error.
	FallbackNone Fallback = ""
	// FallbackRandomWalk simulates a pure random walk instead.
	FallbackRandomWalk Fallback = "random_walk"
)

// ParseFallback validates a fallback name. The empty string selects FallbackNone.
func ParseFallback(s string) (Fallback, error) {
	switch f := Fallback(strings.TrimSpace(s)); f {
	case FallbackNone, FallbackRandomWalk:
		return f, nil
	default:
		return "", errors.Newf(errors.ErrCodeInvalidInput, "unsupported fallback %q", s)
	}
}

// Predict simulates days daily prices of symbol starting from its latest close.
// The horizon is checked before any data is fetched.
func (s *Service) Predict(ctx context.Context, symbol string, days int, fallback Fallback) (types.PredictionPath, error) {
	symbol, err := requireSymbol(symbol)
	if err != nil {
		return types.PredictionPath{}, err
	}

	maxDays := s.deps.Predictor.Config().MaxDays
	if days < 1 || days > maxDays {
		return types.PredictionPath{}, errors.Newf(errors.ErrCodeInvalidHorizon, "days must be within [1, %d], got %d", maxDays, days)
	}

	series, err := s.fetchBars(ctx, symbol, DefaultPeriod, DefaultInterval)
	if err != nil {
		return types.PredictionPath{}, err
	}

	last, _ := series.Last()

	indicators, err := s.computeIndicators(series)
	if err != nil {
		return types.PredictionPath{}, err
	}

	path, err := s.deps.Predictor.Predict(symbol, last.Close, last.Time, indicators, days)
	if err == nil || fallback != FallbackRandomWalk || !errors.IsKind(err, errors.KindInsufficientData) {
		return path, err
	}

	s.log.Info("Indicators unavailable, falling back to a random walk",
		zap.String("symbol", symbol),
		zap.Int("bars", series.Len()),
		zap.Error(err),
	)

	return s.deps.Predictor.RandomWalk(symbol, last.Close, last.Time, days)
}

// AIPredict asks the text generator for short-term price direction commentary
// based on the indicator context of symbol.
func (s *Service) AIPredict(ctx context.Context, symbol string) (types.Analysis, error) {
	symbol, err := requireSymbol(symbol)
	if err != nil {
		return types.Analysis{}, err
	}

	series, err := s.fetchBars(ctx, symbol, DefaultPeriod, DefaultInterval)
	if err != nil {
		return types.Analysis{}, err
	}

	indicators, err := s.computeIndicators(series)
	if err != nil {
		return types.Analysis{}, err
	}

	text, err := analysis.BuildContext(symbol, series, indicators)
	if err != nil {
		return types.Analysis{}, err
	}

	return s.generate(ctx, symbol, types.AnalysisKindPriceDirection, text, analysis.PriceDirectionPrompt(text))
}

// AIInsights asks the text generator for a brief company analysis based on
// the overview and latest trading snapshot of symbol.
func (s *Service) AIInsights(ctx context.Context, symbol string) (types.Analysis, error) {
	snapshot, err := s.StockData(ctx, symbol)
	if err != nil {
		return types.Analysis{}, err
	}

	text := analysis.BuildOverviewContext(snapshot)

	return s.generate(ctx, snapshot.Symbol, types.AnalysisKindInsights, text, analysis.InsightsPrompt(text))
}

// AISentiment asks the text generator for the tone and market impact of text.
func (s *Service) AISentiment(ctx context.Context, text string) (types.TextSentiment, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return types.TextSentiment{}, errors.New(errors.ErrCodeMissingParameter, "text is required")
	}

	prompt := analysis.SentimentPrompt(text)

	reply, err := s.callGenerator(ctx, prompt)
	if err != nil {
		return types.TextSentiment{}, err
	}

	return types.TextSentiment{Text: text, Analysis: reply}, nil
}

func (s *Service) generate(ctx context.Context, symbol string, kind types.AnalysisKind, context string, prompt analysis.Prompt) (types.Analysis, error) {
	reply, err := s.callGenerator(ctx, prompt)
	if err != nil {
		return types.Analysis{}, err
	}

	return types.Analysis{
		Symbol:      symbol,
		Kind:        kind,
		Text:        reply,
		Context:     context,
		GeneratedAt: s.deps.Now(),
	}, nil
}

func (s *Service) callGenerator(ctx context.Context, prompt analysis.Prompt) (string, error) {
	start := time.Now()
	reply, err := s.deps.Generator.Generate(ctx, prompt.System, prompt.User)
	s.deps.Recorder.ObserveUpstream("llm", time.Since(start), err)

	return reply, err
}
