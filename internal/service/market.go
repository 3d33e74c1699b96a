package service

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/maksimkitikov/QuantFinSocietyAI-Int2/internal/analysis"
	"github.com/maksimkitikov/QuantFinSocietyAI-Int2/internal/cache"
	"github.com/maksimkitikov/QuantFinSocietyAI-Int2/internal/types"
	"github.com/maksimkitikov/QuantFinSocietyAI-Int2/pkg/errors"
)

// marketSummarySubject is the cache subject of the index summary.
const marketSummarySubject = "indices"

// MaxCompareSymbols bounds the symbols accepted by Compare and Screen.
const MaxCompareSymbols = 50

// MarketSummary returns quotes of the benchmark indices, cached for the
// market summary TTL. Indices the provider does not return are omitted.
func (s *Service) MarketSummary(ctx context.Context) (types.MarketSummary, error) {
	if s.deps.Quotes == nil {
		return types.MarketSummary{}, errors.New(errors.ErrCodeInvalidConfiguration, "no quote provider is configured")
	}

	load := func(ctx context.Context) (types.MarketSummary, error) {
		return s.loadMarketSummary(ctx)
	}

	if s.deps.Cache == nil {
		return load(ctx)
	}

	key := cache.Key(cache.KindMarketSummary, marketSummarySubject)

	return cache.GetOrLoad(ctx, s.deps.Cache, s.log, key, s.deps.TTL.For(cache.KindMarketSummary), load)
}

// RefreshMarketSummary reloads the summary and overwrites the cached entry.
func (s *Service) RefreshMarketSummary(ctx context.Context) (types.MarketSummary, error) {
	if s.deps.Quotes == nil {
		return types.MarketSummary{}, errors.New(errors.ErrCodeInvalidConfiguration, "no quote provider is configured")
	}

	summary, err := s.loadMarketSummary(ctx)
	if err != nil {
		return types.MarketSummary{}, err
	}

	if s.deps.Cache != nil {
		key := cache.Key(cache.KindMarketSummary, marketSummarySubject)
		if err := s.deps.Cache.Set(ctx, key, summary, s.deps.TTL.For(cache.KindMarketSummary)); err != nil {
			s.log.Warn("Failed to store market summary", zap.Error(err))
		}
	}

	return summary, nil
}

func (s *Service) loadMarketSummary(ctx context.Context) (types.MarketSummary, error) {
	indices := types.DefaultMarketIndices()
	symbols := make([]string, len(indices))

	for i, index := range indices {
		symbols[i] = index.Symbol
	}

	start := time.Now()
	quotes, err := s.deps.Quotes.FetchQuotes(ctx, symbols...)
	s.deps.Recorder.ObserveUpstream("quotes", time.Since(start), err)

	if err != nil {
		return types.MarketSummary{}, err
	}

	bySymbol := make(map[string]types.Quote, len(quotes))
	for _, q := range quotes {
		bySymbol[q.Symbol] = q
	}

	summary := types.MarketSummary{
		Indices:   make(map[string]types.Quote, len(indices)),
		UpdatedAt: s.deps.Now(),
	}

	for _, index := range indices {
		q, ok := bySymbol[index.Symbol]
		if !ok {
			s.log.Debug("Index quote missing", zap.String("symbol", index.Symbol))

			continue
		}

		if q.Name == "" {
			q.Name = index.Name
		}

		summary.Indices[index.Name] = q
	}

	return summary, nil
}

// Compare loads the latest price, daily change, RSI and valuation of every
// symbol. A symbol that fails carries its error in the row instead of failing
// the comparison. Rows keep the order of symbols.
func (s *Service) Compare(ctx context.Context, symbols []string) ([]types.StockComparison, error) {
	symbols, err := normalizeSymbols(symbols)
	if err != nil {
		return nil, err
	}

	rows := make([]types.StockComparison, len(symbols))

	s.forEachSymbol(symbols, func(i int, symbol string) {
		rows[i] = s.compareOne(ctx, symbol)
	})

	return rows, nil
}

func (s *Service) compareOne(ctx context.Context, symbol string) types.StockComparison {
	row := types.StockComparison{Symbol: symbol, Name: symbol}

	series, err := s.fetchBars(ctx, symbol, DefaultPeriod, DefaultInterval)
	if err != nil {
		row.Error = err.Error()

		return row
	}

	indicators, err := s.computeIndicators(series)
	if err != nil {
		row.Error = err.Error()

		return row
	}

	overview := s.overview(ctx, symbol)
	last, _ := series.Last()

	row.Name = overview.Name
	row.Price = last.Close
	row.ChangePct = analysis.DailyChangePercent(series)
	row.PERatio = overview.PERatio
	row.MarketCap = overview.MarketCap
	row.Beta = overview.Beta
	row.RSI = indicators.Get(types.IndicatorKeyRSI14)

	return row
}

// Screen returns the symbols of criteria that satisfy every set bound.
// A symbol lacking an attribute a bound needs is excluded, as is a symbol
// whose data cannot be loaded.
func (s *Service) Screen(ctx context.Context, criteria types.ScreenerCriteria) ([]types.ScreenResult, error) {
	symbols, err := normalizeSymbols(criteria.Symbols)
	if err != nil {
		return nil, err
	}

	if criteria.MinPE.IsSome() && criteria.MaxPE.IsSome() && criteria.MinPE.Unwrap() > criteria.MaxPE.Unwrap() {
		return nil, errors.Newf(errors.ErrCodeInvalidInput, "min_pe %.2f is above max_pe %.2f", criteria.MinPE.Unwrap(), criteria.MaxPE.Unwrap())
	}

	candidates := make([]*types.ScreenResult, len(symbols))

	s.forEachSymbol(symbols, func(i int, symbol string) {
		series, err := s.fetchBars(ctx, symbol, types.Period5d, DefaultInterval)
		if err != nil {
			s.log.Warn("Screener skipped symbol", zap.String("symbol", symbol), zap.Error(err))

			return
		}

		overview := s.overview(ctx, symbol)
		last, _ := series.Last()

		result := types.ScreenResult{
			Symbol:  symbol,
			Name:    overview.Name,
			Price:   last.Close,
			Volume:  last.Volume,
			PERatio: overview.PERatio,
			Beta:    overview.Beta,
		}

		if matches(result, criteria) {
			candidates[i] = &result
		}
	})

	results := make([]types.ScreenResult, 0, len(candidates))

	for _, c := range candidates {
		if c != nil {
			results = append(results, *c)
		}
	}

	return results, nil
}

func matches(r types.ScreenResult, c types.ScreenerCriteria) bool {
	if c.MinPE.IsSome() && (r.PERatio.IsNone() || r.PERatio.Unwrap() < c.MinPE.Unwrap()) {
		return false
	}

	if c.MaxPE.IsSome() && (r.PERatio.IsNone() || r.PERatio.Unwrap() > c.MaxPE.Unwrap()) {
		return false
	}

	if c.MinVolume.IsSome() && r.Volume < c.MinVolume.Unwrap() {
		return false
	}

	if c.MaxBeta.IsSome() && (r.Beta.IsNone() || r.Beta.Unwrap() > c.MaxBeta.Unwrap()) {
		return false
	}

	return true
}

// forEachSymbol calls fn for every symbol with at most compareConcurrency calls in flight.
func (s *Service) forEachSymbol(symbols []string, fn func(i int, symbol string)) {
	semaphore := make(chan struct{}, compareConcurrency)

	var wg sync.WaitGroup

	for i, symbol := range symbols {
		wg.Add(1)

		go func() {
			defer wg.Done()

			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			fn(i, symbol)
		}()
	}

	wg.Wait()
}

func normalizeSymbols(symbols []string) ([]string, error) {
	if len(symbols) == 0 {
		return nil, errors.New(errors.ErrCodeMissingParameter, "at least one symbol is required")
	}

	if len(symbols) > MaxCompareSymbols {
		return nil, errors.Newf(errors.ErrCodeInvalidInput, "at most %d symbols are accepted, got %d", MaxCompareSymbols, len(symbols))
	}

	seen := make(map[string]struct{}, len(symbols))
	out := make([]string, 0, len(symbols))

	for _, raw := range symbols {
		symbol, err := requireSymbol(raw)
		if err != nil {
			return nil, err
		}

		if _, dup := seen[symbol]; dup {
			continue
		}

		seen[symbol] = struct{}{}
		out = append(out, symbol)
	}

	return out, nil
}
