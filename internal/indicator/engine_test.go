package indicator

import (
	"fmt"
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/maksimkitikov/QuantFinSocietyAI-Int2/internal/types"
	"github.com/maksimkitikov/QuantFinSocietyAI-Int2/mocks"
	"github.com/maksimkitikov/QuantFinSocietyAI-Int2/pkg/errors"
)

type EngineTestSuite struct {
	suite.Suite
	engine *Engine
}

func TestEngineSuite(t *testing.T) {
	suite.Run(t, new(EngineTestSuite))
}

func (suite *EngineTestSuite) SetupTest() {
	suite.engine = NewEngine(NewDefaultRegistry())
}

func (suite *EngineTestSuite) TestAllKeysPresent() {
	series := seriesFromCloses(risingCloses(60, 100)...)

	set, err := suite.engine.ComputeIndicators(series)
	suite.Require().NoError(err)
	suite.Equal("TEST", set.Symbol)

	for _, key := range types.AllIndicatorKeys() {
		suite.Contains(set.Latest, key)
		suite.Len(set.Series[key], 60, "series %s", key)
		suite.True(set.Get(key).IsSome(), "latest %s", key)
	}
}

func (suite *EngineTestSuite) TestShortSeriesYieldsUnavailable() {
	series := seriesFromCloses(10, 11, 12, 13, 14)

	set, err := ComputeIndicators(series)
	suite.Require().NoError(err)

	suite.True(set.Get(types.IndicatorKeySMA20).IsNone())
	suite.True(set.Get(types.IndicatorKeySMA50).IsNone())
	suite.True(set.Get(types.IndicatorKeyRSI14).IsNone())
	suite.True(set.Get(types.IndicatorKeyATR14).IsNone())
	suite.True(set.Get(types.IndicatorKeyBBMiddle).IsNone())
	suite.True(set.Get(types.IndicatorKeyMACD).IsSome())
	suite.True(set.Get(types.IndicatorKeyOBV).IsSome())

	_, err = set.Require(types.IndicatorKeyRSI14)
	suite.True(errors.IsInsufficientDataError(err))
}

func (suite *EngineTestSuite) TestInvalidSeries() {
	_, err := suite.engine.ComputeIndicators(types.BarSeries{Symbol: "EMPTY"})
	suite.Error(err)
	suite.Equal(errors.ErrCodeEmptySeries, errors.GetCode(err))
	suite.True(errors.IsKind(err, errors.KindInvalidInput))

	series := seriesFromCloses(10, 11, 12)
	series.Bars[2].Time = series.Bars[1].Time

	_, err = suite.engine.ComputeIndicators(series)
	suite.Equal(errors.ErrCodeNonMonotonicSeries, errors.GetCode(err))

	// a single non-finite close would poison every window containing it
	series = seriesFromCloses(risingCloses(30, 100)...)
	series.Bars[19].Close = math.NaN()

	_, err = suite.engine.ComputeIndicators(series)
	suite.Equal(errors.ErrCodeInvalidBar, errors.GetCode(err))

	series = seriesFromCloses(risingCloses(30, 100)...)
	series.Bars[5].High = math.Inf(1)

	_, err = suite.engine.ComputeIndicators(series)
	suite.Equal(errors.ErrCodeInvalidBar, errors.GetCode(err))
}

func (suite *EngineTestSuite) TestNoLookAhead() {
	closes := []float64{50, 52, 51, 53, 55, 54, 56, 58, 57, 59, 61, 60, 62, 61, 63, 65, 64, 66, 68, 67,
		69, 70, 68, 71, 73, 72, 74, 76, 75, 77}
	full := seriesFromCloses(closes...)

	fullSet, err := suite.engine.ComputeIndicators(full)
	suite.Require().NoError(err)

	for _, n := range []int{1, 5, 15, 21, 29} {
		prefix := types.BarSeries{Symbol: full.Symbol, Bars: full.Bars[:n]}

		prefixSet, err := suite.engine.ComputeIndicators(prefix)
		suite.Require().NoError(err)

		for _, key := range types.AllIndicatorKeys() {
			suite.Equal(fullSet.Series[key][:n], prefixSet.Series[key], "key %s prefix %d", key, n)
		}
	}
}

func (suite *EngineTestSuite) TestInputNotMutated() {
	series := seriesFromCloses(risingCloses(30, 10)...)
	before := append([]types.Bar(nil), series.Bars...)

	_, err := suite.engine.ComputeIndicators(series)
	suite.Require().NoError(err)
	suite.Equal(before, series.Bars)
}

func (suite *EngineTestSuite) TestCustomSpecs() {
	series := seriesFromCloses(risingCloses(30, 10)...)

	set, err := suite.engine.Compute(series, []Spec{
		{Type: types.IndicatorTypeEMA, Params: []any{float64(10)}},
		{Type: types.IndicatorTypeRSI, Params: []any{7}},
	})
	suite.Require().NoError(err)
	suite.Contains(set.Latest, types.IndicatorKey("ema_10"))
	suite.Contains(set.Latest, types.IndicatorKey("rsi_7"))
	suite.NotContains(set.Latest, types.IndicatorKeySMA20)

	_, err = suite.engine.Compute(series, []Spec{{Type: "unknown"}})
	suite.True(errors.IsKind(err, errors.KindNotFound))

	_, err = suite.engine.Compute(series, []Spec{{Type: types.IndicatorTypeSMA, Params: []any{-1}}})
	suite.Equal(errors.ErrCodeInvalidWindow, errors.GetCode(err))
}

func (suite *EngineTestSuite) TestCustomIndicator() {
	ctrl := gomock.NewController(suite.T())
	defer ctrl.Finish()

	series := seriesFromCloses(10, 11, 12)
	custom := types.IndicatorType("custom")
	key := types.IndicatorKey("custom_line")

	mockIndicator := mocks.NewMockIndicator(ctrl)
	mockIndicator.EXPECT().Name().Return(custom).AnyTimes()
	mockIndicator.EXPECT().Config(5).Return(nil).Times(2)
	mockIndicator.EXPECT().Keys().Return([]types.IndicatorKey{key}).AnyTimes()

	registry := NewIndicatorRegistry()
	suite.Require().NoError(registry.RegisterIndicator(func() Indicator { return mockIndicator }))

	engine := NewEngine(registry)

	values := []types.Value{types.Unavailable(), types.Available(1), types.Available(2)}
	mockIndicator.EXPECT().Compute(series).Return(map[types.IndicatorKey][]types.Value{key: values}, nil)

	set, err := engine.Compute(series, []Spec{{Type: custom, Params: []any{5}}})
	suite.Require().NoError(err)
	suite.Equal(values, set.Series[key])
	suite.InDelta(2.0, set.Get(key).Unwrap(), 1e-9)

	mockIndicator.EXPECT().Compute(series).Return(nil, fmt.Errorf("boom"))

	_, err = engine.Compute(series, []Spec{{Type: custom, Params: []any{5}}})
	suite.Equal(errors.ErrCodeIndicatorCalculation, errors.GetCode(err))
}

func BenchmarkComputeIndicators(b *testing.B) {
	series := seriesFromCloses(risingCloses(500, 10)...)
	engine := NewEngine(NewDefaultRegistry())

	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		if _, err := engine.ComputeIndicators(series); err != nil {
			b.Fatal(err)
		}
	}
}

func (suite *EngineTestSuite) TestConcurrentComputeMatchesSerial() {
	const workers = 32

	inputs := make([]types.BarSeries, workers)
	expected := make([]types.IndicatorSet, workers)

	for i := range inputs {
		// lengths straddle every window: 5 .. 67 bars
		inputs[i] = seriesFromCloses(risingCloses(5+2*i, 100+float64(i))...)

		set, err := suite.engine.ComputeIndicators(inputs[i])
		suite.Require().NoError(err)
		expected[i] = set
	}

	got := make([]types.IndicatorSet, workers)
	errs := make([]error, workers)

	var wg sync.WaitGroup

	for round := 0; round < 4; round++ {
		for i := range inputs {
			wg.Add(1)

			go func(i int) {
				defer wg.Done()

				got[i], errs[i] = suite.engine.ComputeIndicators(inputs[i])
			}(i)
		}

		wg.Wait()

		for i := range inputs {
			suite.Require().NoError(errs[i])
			suite.Equal(expected[i], got[i], "series of %d bars", inputs[i].Len())

			for _, key := range types.AllIndicatorKeys() {
				suite.Len(got[i].Series[key], inputs[i].Len(), "%s of %d bars", key, inputs[i].Len())
			}

			closes := inputs[i].Closes()
			if len(closes) >= 20 {
				suite.InDelta(mean(closes[len(closes)-20:]), got[i].Get(types.IndicatorKeySMA20).Unwrap(), 1e-9)
			} else {
				suite.True(got[i].Get(types.IndicatorKeySMA20).IsNone())
			}
		}
	}
}
