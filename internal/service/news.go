package service

import (
	"context"
	"strings"
	"time"

	"github.com/maksimkitikov/QuantFinSocietyAI-Int2/internal/marketdata"
	"github.com/maksimkitikov/QuantFinSocietyAI-Int2/internal/types"
	"github.com/maksimkitikov/QuantFinSocietyAI-Int2/pkg/errors"
)

// NewsSentiment scores the recent headlines of symbol with the finance lexicon.
// The overall score is the mean of the headline scores.
func (s *Service) NewsSentiment(ctx context.Context, symbol string, limit int) (types.SentimentReport, error) {
	symbol, err := requireSymbol(symbol)
	if err != nil {
		return types.SentimentReport{}, err
	}

	items, err := s.searchNews(ctx, symbol, limit)
	if err != nil {
		return types.SentimentReport{}, err
	}

	if len(items) == 0 {
		return types.SentimentReport{}, errors.Newf(errors.ErrCodeNoDataFound, "no news found for %s", symbol)
	}

	report := types.SentimentReport{
		Symbol: symbol,
		Items:  make([]types.NewsSentiment, len(items)),
	}

	var total float64

	for i, item := range items {
		score := ScoreText(item.Title + " " + item.Summary)
		total += score

		report.Items[i] = types.NewsSentiment{
			Title:     item.Title,
			Link:      item.Link,
			Score:     score,
			Label:     types.LabelForScore(score),
			Published: item.PublishedAt,
		}
	}

	report.OverallScore = total / float64(len(items))
	report.Overall = types.LabelForScore(report.OverallScore)

	return report, nil
}

// MarketNews returns general market headlines. Business top headlines are
// preferred and the market search query is used without a headline source.
func (s *Service) MarketNews(ctx context.Context, limit int) ([]types.NewsItem, error) {
	if limit <= 0 {
		limit = DefaultNewsLimit
	}

	if s.deps.Headlines != nil {
		start := time.Now()
		items, err := s.deps.Headlines.FetchHeadlines(ctx, "business", limit)
		s.deps.Recorder.ObserveUpstream("news", time.Since(start), err)

		return items, err
	}

	return s.searchNews(ctx, marketdata.MarketNewsQuery, limit)
}

// CompanyNews returns recent articles matching a company name or ticker.
func (s *Service) CompanyNews(ctx context.Context, company string, limit int) ([]types.NewsItem, error) {
	company = strings.TrimSpace(company)
	if company == "" {
		return nil, errors.New(errors.ErrCodeMissingParameter, "company is required")
	}

	return s.searchNews(ctx, company, limit)
}

func (s *Service) searchNews(ctx context.Context, query string, limit int) ([]types.NewsItem, error) {
	if s.deps.News == nil {
		return nil, errors.New(errors.ErrCodeInvalidConfiguration, "no news provider is configured")
	}

	if limit <= 0 {
		limit = DefaultNewsLimit
	}

	start := time.Now()
	items, err := s.deps.News.FetchNews(ctx, query, limit)
	s.deps.Recorder.ObserveUpstream("news", time.Since(start), err)

	return items, err
}

// EconomicCalendar returns the recurring US releases of the coming weeks.
// The dates are placeholders anchored on the current date, not a live feed.
func (s *Service) EconomicCalendar(_ context.Context) []types.EconomicEvent {
	today := s.deps.Now().Truncate(24 * time.Hour)

	events := []struct {
		offset     int
		name       string
		importance string
	}{
		{3, "Initial Jobless Claims", "Medium"},
		{7, "CPI Release", "High"},
		{10, "Retail Sales", "Medium"},
		{14, "FOMC Rate Decision", "High"},
		{21, "GDP Advance Estimate", "High"},
		{28, "Nonfarm Payrolls", "High"},
	}

	out := make([]types.EconomicEvent, len(events))
	for i, e := range events {
		out[i] = types.EconomicEvent{
			Date:       today.AddDate(0, 0, e.offset),
			Event:      e.name,
			Country:    "US",
			Importance: e.importance,
			Forecast:   "",
			Previous:   "",
		}
	}

	return out
}
