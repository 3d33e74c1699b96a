package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/suite"
)

type SignalTestSuite struct {
	suite.Suite
}

func TestSignalSuite(t *testing.T) {
	suite.Run(t, new(SignalTestSuite))
}

func (suite *SignalTestSuite) TestSignalTypeConstants() {
	suite.Equal(SignalType("overbought"), SignalTypeOverbought)
	suite.Equal(SignalType("oversold"), SignalTypeOversold)
	suite.Equal(SignalType("bullish"), SignalTypeBullish)
	suite.Equal(SignalType("bearish"), SignalTypeBearish)
	suite.Equal(SignalType("neutral"), SignalTypeNeutral)
	suite.Equal(SignalType("unavailable"), SignalTypeUnavailable)
}

func (suite *SignalTestSuite) TestSignalJSON() {
	signal := Signal{
		Type:      SignalTypeOverbought,
		Indicator: IndicatorTypeRSI,
		Reason:    "RSI 78.00 is above 70",
		RawValue:  Available(78),
	}

	raw, err := json.Marshal(signal)
	suite.Require().NoError(err)
	suite.JSONEq(`{"type":"overbought","indicator":"rsi","reason":"RSI 78.00 is above 70","raw_value":78}`, string(raw))

	signal.RawValue = Unavailable()
	raw, err = json.Marshal(signal)
	suite.Require().NoError(err)
	suite.Contains(string(raw), `"raw_value":null`)
}
