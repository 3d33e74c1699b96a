// Package predictor simulates illustrative price paths from the latest RSI and
// MACD readings. The paths are a baseline for display, not a forecast.
package predictor

import (
	"math"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/maksimkitikov/QuantFinSocietyAI-Int2/internal/types"
	"github.com/maksimkitikov/QuantFinSocietyAI-Int2/pkg/errors"
)

const (
	MethodIndicatorBiased = "indicator_biased_walk"
	MethodRandomWalk      = "random_walk"
)

// Bars needed before RSI 14 and MACD have a reading.
const (
	rsiMinBars  = 15
	macdMinBars = 1
)

// minPrice is the floor of every simulated price.
var minPrice = decimal.New(1, -2)

// Config holds the simulation parameters.
type Config struct {
	// Volatility is the standard deviation of the daily drift when RSI is neutral
	Volatility float64 `yaml:"volatility" json:"volatility" validate:"gt=0,lt=1"`
	// Bias is the daily drift applied while RSI is overbought or oversold
	Bias float64 `yaml:"bias" json:"bias" validate:"gte=0,lt=1"`
	// TrendBias is added when MACD is positive and subtracted otherwise
	TrendBias float64 `yaml:"trend_bias" json:"trend_bias" validate:"gte=0,lt=1"`
	// RandomWalkVolatility is the daily standard deviation of RandomWalk
	RandomWalkVolatility float64 `yaml:"random_walk_volatility" json:"random_walk_volatility" validate:"gt=0,lt=1"`
	// RSILower and RSIUpper are the oversold and overbought levels
	RSILower float64 `yaml:"rsi_lower" json:"rsi_lower" validate:"gte=0,ltfield=RSIUpper"`
	RSIUpper float64 `yaml:"rsi_upper" json:"rsi_upper" validate:"lte=100"`
	// ConfidenceMin and ConfidenceMax bound the placeholder confidence
	ConfidenceMin float64 `yaml:"confidence_min" json:"confidence_min" validate:"gte=0,ltefield=ConfidenceMax"`
	ConfidenceMax float64 `yaml:"confidence_max" json:"confidence_max" validate:"lte=1"`
	// MaxDays is the longest horizon accepted
	MaxDays int `yaml:"max_days" json:"max_days" validate:"gte=1,lte=30"`
}

// DefaultConfig returns the default simulation parameters.
func DefaultConfig() Config {
	return Config{
		Volatility:           0.005,
		Bias:                 0.01,
		TrendBias:            0.002,
		RandomWalkVolatility: 0.02,
		RSILower:             30,
		RSIUpper:             70,
		ConfidenceMin:        0.7,
		ConfidenceMax:        0.95,
		MaxDays:              30,
	}
}

// Predictor produces PredictionPaths. It is safe for concurrent use.
type Predictor struct {
	config Config
	rng    *rand.Rand
	mu     sync.Mutex
}

// NewPredictor creates a predictor drawing from rng. A nil rng is seeded randomly.
func NewPredictor(config Config, rng *rand.Rand) *Predictor {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	return &Predictor{
		config: config,
		rng:    rng,
		mu:     sync.Mutex{},
	}
}

// Config returns the simulation parameters.
func (p *Predictor) Config() Config {
	return p.config
}

// Predict simulates days daily prices after start.
//
// Each step multiplies the previous price by 1 + drift + bias. The drift is
// -Bias while RSI is overbought, +Bias while it is oversold and a N(0, Volatility)
// draw otherwise. The bias is +TrendBias when MACD is positive, -TrendBias otherwise.
// Dates advance one calendar day per step, weekends included.
func (p *Predictor) Predict(symbol string, startingPrice float64, start time.Time, indicators types.IndicatorSet, days int) (types.PredictionPath, error) {
	if err := p.validate(startingPrice, days); err != nil {
		return types.PredictionPath{}, err
	}

	rsi, err := indicators.Require(types.IndicatorKeyRSI14)
	if err != nil {
		return types.PredictionPath{}, errors.NewInsufficientDataErrorf(rsiMinBars, seriesLen(indicators, types.IndicatorKeyRSI14), symbol,
			"cannot predict %s: RSI 14 is unavailable", symbol)
	}

	macd, err := indicators.Require(types.IndicatorKeyMACD)
	if err != nil {
		return types.PredictionPath{}, errors.NewInsufficientDataErrorf(macdMinBars, seriesLen(indicators, types.IndicatorKeyMACD), symbol,
			"cannot predict %s: MACD is unavailable", symbol)
	}

	trend := -p.config.TrendBias
	if macd > 0 {
		trend = p.config.TrendBias
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	return p.simulate(symbol, MethodIndicatorBiased, startingPrice, start, days, func() float64 {
		switch {
		case rsi > p.config.RSIUpper:
			return -p.config.Bias + trend
		case rsi < p.config.RSILower:
			return p.config.Bias + trend
		default:
			return p.rng.NormFloat64()*p.config.Volatility + trend
		}
	}), nil
}

// RandomWalk simulates days daily prices with a zero-mean N(0, RandomWalkVolatility)
// drift. It is the fallback when no indicators can be computed.
func (p *Predictor) RandomWalk(symbol string, startingPrice float64, start time.Time, days int) (types.PredictionPath, error) {
	if err := p.validate(startingPrice, days); err != nil {
		return types.PredictionPath{}, err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	return p.simulate(symbol, MethodRandomWalk, startingPrice, start, days, func() float64 {
		return p.rng.NormFloat64() * p.config.RandomWalkVolatility
	}), nil
}

// seriesLen is the number of bars behind key. Sets without per-point series report 0.
func seriesLen(indicators types.IndicatorSet, key types.IndicatorKey) int {
	return len(indicators.Series[key])
}

func (p *Predictor) validate(startingPrice float64, days int) error {
	if days < 1 || days > p.config.MaxDays {
		return errors.Newf(errors.ErrCodeInvalidHorizon, "days must be within [1, %d], got %d", p.config.MaxDays, days)
	}

	if math.IsNaN(startingPrice) || math.IsInf(startingPrice, 0) {
		return errors.Newf(errors.ErrCodeInvalidPrice, "starting price must be finite, got %f", startingPrice)
	}

	if startingPrice <= 0 {
		return errors.Newf(errors.ErrCodeInvalidPrice, "starting price must be positive, got %f", startingPrice)
	}

	return nil
}

// simulate must be called with p.mu held.
func (p *Predictor) simulate(symbol, method string, startingPrice float64, start time.Time, days int, step func() float64) types.PredictionPath {
	points := make([]types.PredictionPoint, days)
	price := startingPrice

	for i := 0; i < days; i++ {
		price *= 1 + step()

		rounded := decimal.NewFromFloat(price).Round(2)
		if rounded.LessThan(minPrice) {
			rounded = minPrice
			price = minPrice.InexactFloat64()
		}

		points[i] = types.PredictionPoint{
			Date:  start.AddDate(0, 0, i+1),
			Price: rounded.InexactFloat64(),
		}
	}

	return types.PredictionPath{
		Symbol:       symbol,
		Method:       method,
		Points:       points,
		Confidence:   p.confidence(),
		Illustrative: true,
	}
}

// confidence is a placeholder drawn uniformly from the configured band.
func (p *Predictor) confidence() float64 {
	c := p.config.ConfidenceMin + p.rng.Float64()*(p.config.ConfidenceMax-p.config.ConfidenceMin)

	return decimal.NewFromFloat(c).Round(2).InexactFloat64()
}
