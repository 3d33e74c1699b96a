// Package service wires market data, the indicator engine, the predictor and
// the text generator into the operations served over HTTP and the CLI.
package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/maksimkitikov/QuantFinSocietyAI-Int2/internal/analysis"
	"github.com/maksimkitikov/QuantFinSocietyAI-Int2/internal/cache"
	"github.com/maksimkitikov/QuantFinSocietyAI-Int2/internal/indicator"
	"github.com/maksimkitikov/QuantFinSocietyAI-Int2/internal/llm"
	"github.com/maksimkitikov/QuantFinSocietyAI-Int2/internal/logger"
	"github.com/maksimkitikov/QuantFinSocietyAI-Int2/internal/marketdata"
	"github.com/maksimkitikov/QuantFinSocietyAI-Int2/internal/predictor"
	"github.com/maksimkitikov/QuantFinSocietyAI-Int2/internal/types"
	"github.com/maksimkitikov/QuantFinSocietyAI-Int2/pkg/errors"
)

const (
	// DefaultPeriod and DefaultInterval select the bars behind StockData and Predict.
	DefaultPeriod   = types.Period1y
	DefaultInterval = types.Interval1d
	// DefaultNewsLimit is the number of headlines requested when the caller passes none.
	DefaultNewsLimit = 20
	// compareConcurrency bounds the symbols loaded in parallel by Compare and Screen.
	compareConcurrency = 4
)

// Repository is the persistence the service writes fetched data into.
type Repository interface {
	UpsertStock(ctx context.Context, stock types.Stock) (types.Stock, error)
	InsertPrices(ctx context.Context, prices []types.StockPrice) (int, error)
}

// Recorder receives timings of the service's work.
type Recorder interface {
	ObserveIndicators(d time.Duration)
	ObserveUpstream(source string, d time.Duration, err error)
}

type nopRecorder struct{}

func (nopRecorder) ObserveIndicators(time.Duration)             {}
func (nopRecorder) ObserveUpstream(string, time.Duration, error) {}

// Dependencies are the collaborators of a Service. Bars is required; every
// other collaborator is optional and the operations needing it fail with
// ErrCodeInvalidConfiguration when it is missing.
type Dependencies struct {
	Bars       marketdata.BarFetcher
	Overview   marketdata.OverviewFetcher
	Quotes     marketdata.QuoteFetcher
	News       marketdata.NewsFetcher
	Headlines  marketdata.HeadlineFetcher
	Generator  llm.TextGenerator
	Predictor  *predictor.Predictor
	Engine     *indicator.Engine
	Cache      cache.Cache
	TTL        cache.TTLConfig
	Repository Repository
	Recorder   Recorder
	Thresholds analysis.Thresholds
	Logger     *logger.Logger
	Now        func() time.Time
}

// Service implements the stock data, prediction, news and analysis operations.
// It is safe for concurrent use.
type Service struct {
	deps Dependencies
	log  *logger.Logger
}

// New validates deps and fills the defaults of optional collaborators.
func New(deps Dependencies) (*Service, error) {
	if deps.Bars == nil {
		return nil, errors.New(errors.ErrCodeInvalidConfiguration, "a bar fetcher is required")
	}

	if deps.Logger == nil {
		deps.Logger = logger.NewNop()
	}

	if deps.Engine == nil {
		deps.Engine = indicator.NewEngine(indicator.NewDefaultRegistry())
	}

	if deps.Predictor == nil {
		deps.Predictor = predictor.NewPredictor(predictor.DefaultConfig(), nil)
	}

	if deps.Generator == nil {
		deps.Generator = llm.NewStaticGenerator()
	}

	if deps.Recorder == nil {
		deps.Recorder = nopRecorder{}
	}

	if deps.Thresholds == (analysis.Thresholds{}) {
		deps.Thresholds = analysis.DefaultThresholds()
	}

	if deps.TTL == (cache.TTLConfig{}) {
		deps.TTL = cache.DefaultTTLConfig()
	}

	if deps.Now == nil {
		deps.Now = func() time.Time { return time.Now().UTC() }
	}

	return &Service{
		deps: deps,
		log:  deps.Logger.Named("service"),
	}, nil
}

// StockData returns the overview, latest price, indicator readings and signals
// of symbol over a year of daily bars. A failed overview degrades to unknown
// attributes instead of failing the call.
func (s *Service) StockData(ctx context.Context, symbol string) (types.StockSnapshot, error) {
	symbol, err := requireSymbol(symbol)
	if err != nil {
		return types.StockSnapshot{}, err
	}

	series, err := s.fetchBars(ctx, symbol, DefaultPeriod, DefaultInterval)
	if err != nil {
		return types.StockSnapshot{}, err
	}

	indicators, err := s.computeIndicators(series)
	if err != nil {
		return types.StockSnapshot{}, err
	}

	overview := s.overview(ctx, symbol)
	last, _ := series.Last()

	s.persist(ctx, overview, series, indicators)

	return types.StockSnapshot{
		Symbol:     symbol,
		Overview:   overview,
		Price:      last.Close,
		Change:     analysis.DailyChange(series),
		ChangePct:  analysis.DailyChangePercent(series),
		Volume:     last.Volume,
		Indicators: indicators.LatestOnly(),
		Signals:    analysis.Signals(indicators, last.Close, s.deps.Thresholds),
		AsOf:       last.Time,
	}, nil
}

// History returns the bars of symbol over period at interval.
func (s *Service) History(ctx context.Context, symbol string, period types.Period, interval types.Interval) (types.BarSeries, error) {
	symbol, err := requireSymbol(symbol)
	if err != nil {
		return types.BarSeries{}, err
	}

	return s.fetchBars(ctx, symbol, period, interval)
}

// Indicators returns the full aligned indicator series of symbol over period at interval.
func (s *Service) Indicators(ctx context.Context, symbol string, period types.Period, interval types.Interval) (types.IndicatorSet, error) {
	series, err := s.History(ctx, symbol, period, interval)
	if err != nil {
		return types.IndicatorSet{}, err
	}

	return s.computeIndicators(series)
}

func (s *Service) fetchBars(ctx context.Context, symbol string, period types.Period, interval types.Interval) (types.BarSeries, error) {
	if _, err := types.ParsePeriod(string(period)); err != nil {
		return types.BarSeries{}, err
	}

	if _, err := types.ParseInterval(string(interval)); err != nil {
		return types.BarSeries{}, err
	}

	start := time.Now()
	series, err := s.deps.Bars.FetchBars(ctx, symbol, period, interval)
	s.deps.Recorder.ObserveUpstream("bars", time.Since(start), err)

	if err != nil {
		return types.BarSeries{}, err
	}

	return series, nil
}

func (s *Service) computeIndicators(series types.BarSeries) (types.IndicatorSet, error) {
	start := time.Now()
	defer func() { s.deps.Recorder.ObserveIndicators(time.Since(start)) }()

	return s.deps.Engine.ComputeIndicators(series)
}

// overview fetches the company overview, or all-unknown attributes when the
// provider is missing or fails.
func (s *Service) overview(ctx context.Context, symbol string) types.CompanyOverview {
	if s.deps.Overview == nil {
		return types.NewCompanyOverview(symbol)
	}

	start := time.Now()
	overview, err := s.deps.Overview.FetchOverview(ctx, symbol)
	s.deps.Recorder.ObserveUpstream("overview", time.Since(start), err)

	if err != nil {
		s.log.Warn("Company overview unavailable", zap.String("symbol", symbol), zap.Error(err))

		return types.NewCompanyOverview(symbol)
	}

	return overview.Normalize()
}

// persist stores the overview and the bars with their indicator snapshot.
// Failures are logged and never surface to the caller.
func (s *Service) persist(ctx context.Context, overview types.CompanyOverview, series types.BarSeries, indicators types.IndicatorSet) {
	if s.deps.Repository == nil {
		return
	}

	stock := types.StockFromOverview(overview)
	stock.Symbol = series.Symbol

	if stock.Name == "" || stock.Name == types.Unknown {
		stock.Name = series.Symbol
	}

	stored, err := s.deps.Repository.UpsertStock(ctx, stock)
	if err != nil {
		s.log.Warn("Failed to store stock", zap.String("symbol", series.Symbol), zap.Error(err))

		return
	}

	prices := make([]types.StockPrice, len(series.Bars))

	for i, bar := range series.Bars {
		snapshot := make(map[types.IndicatorKey]types.Value, len(indicators.Series))
		for key, values := range indicators.Series {
			if i < len(values) {
				snapshot[key] = values[i]
			}
		}

		prices[i] = types.StockPrice{
			ID:         0,
			StockID:    stored.ID,
			Bar:        bar,
			Indicators: snapshot,
		}
	}

	if _, err := s.deps.Repository.InsertPrices(ctx, prices); err != nil {
		s.log.Warn("Failed to store prices", zap.String("symbol", series.Symbol), zap.Error(err))
	}
}

func requireSymbol(symbol string) (string, error) {
	symbol = marketdata.NormalizeSymbol(symbol)
	if symbol == "" {
		return "", errors.New(errors.ErrCodeInvalidSymbol, "symbol is required")
	}

	return symbol, nil
}
