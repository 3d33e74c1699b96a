package analysis

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/maksimkitikov/QuantFinSocietyAI-Int2/internal/types"
)

type SignalsTestSuite struct {
	suite.Suite
}

func TestSignalsSuite(t *testing.T) {
	suite.Run(t, new(SignalsTestSuite))
}

func set(values map[types.IndicatorKey]float64) types.IndicatorSet {
	s := types.NewIndicatorSet("AAPL")
	for k, v := range values {
		s.Put(k, []types.Value{types.Available(v)})
	}

	return s
}

func (suite *SignalsTestSuite) byFamily(signals []types.Signal) map[types.IndicatorType]types.Signal {
	out := make(map[types.IndicatorType]types.Signal, len(signals))
	for _, s := range signals {
		out[s.Indicator] = s
	}

	return out
}

func (suite *SignalsTestSuite) TestEmptySetIsUnavailable() {
	signals := Signals(types.NewIndicatorSet("AAPL"), 100, DefaultThresholds())
	suite.Len(signals, 4)

	for _, s := range signals {
		suite.Equal(types.SignalTypeUnavailable, s.Type, "family %s", s.Indicator)
		suite.True(s.RawValue.IsNone())
	}
}

func (suite *SignalsTestSuite) TestRSI() {
	tests := []struct {
		rsi      float64
		expected types.SignalType
	}{
		{rsi: 75, expected: types.SignalTypeOverbought},
		{rsi: 25, expected: types.SignalTypeOversold},
		{rsi: 50, expected: types.SignalTypeNeutral},
		{rsi: 70, expected: types.SignalTypeNeutral},
	}

	for _, tt := range tests {
		got := suite.byFamily(Signals(set(map[types.IndicatorKey]float64{types.IndicatorKeyRSI14: tt.rsi}), 100, DefaultThresholds()))
		suite.Equal(tt.expected, got[types.IndicatorTypeRSI].Type, "rsi %.0f", tt.rsi)
	}
}

func (suite *SignalsTestSuite) TestMACDAndTrend() {
	got := suite.byFamily(Signals(set(map[types.IndicatorKey]float64{
		types.IndicatorKeyMACDHist: 0.5,
		types.IndicatorKeySMA20:    90,
		types.IndicatorKeySMA50:    95,
	}), 100, DefaultThresholds()))

	suite.Equal(types.SignalTypeBullish, got[types.IndicatorTypeMACD].Type)
	suite.Equal(types.SignalTypeBearish, got[types.IndicatorTypeSMA].Type)
	suite.Equal(-5.0, got[types.IndicatorTypeSMA].RawValue.Unwrap())
}

func (suite *SignalsTestSuite) TestBands() {
	bands := map[types.IndicatorKey]float64{
		types.IndicatorKeyBBUpper:  110,
		types.IndicatorKeyBBMiddle: 100,
		types.IndicatorKeyBBLower:  90,
	}

	cases := map[float64]types.SignalType{
		115: types.SignalTypeOverbought,
		85:  types.SignalTypeOversold,
		105: types.SignalTypeBullish,
		95:  types.SignalTypeBearish,
		100: types.SignalTypeNeutral,
	}

	for price, expected := range cases {
		got := suite.byFamily(Signals(set(bands), price, DefaultThresholds()))
		suite.Equal(expected, got[types.IndicatorTypeBollingerBands].Type, "close %.0f", price)
	}
}
