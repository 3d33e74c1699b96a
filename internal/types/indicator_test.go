package types

import (
	"encoding/json"
	"testing"

	"github.com/maksimkitikov/QuantFinSocietyAI-Int2/pkg/errors"
	"github.com/stretchr/testify/suite"
)

type IndicatorSetTestSuite struct {
	suite.Suite
}

func TestIndicatorSetSuite(t *testing.T) {
	suite.Run(t, new(IndicatorSetTestSuite))
}

func (suite *IndicatorSetTestSuite) TestPutDerivesLatest() {
	set := NewIndicatorSet("AAPL")
	set.Put(IndicatorKeyRSI14, []Value{Unavailable(), Available(40), Available(55)})
	set.Put(IndicatorKeySMA50, []Value{Unavailable(), Unavailable()})
	set.Put(IndicatorKeyOBV, nil)

	suite.Equal(55.0, set.Get(IndicatorKeyRSI14).Unwrap())
	suite.True(set.Get(IndicatorKeySMA50).IsNone())
	suite.True(set.Get(IndicatorKeyOBV).IsNone())
	suite.True(set.Get(IndicatorKeyATR14).IsNone())
}

func (suite *IndicatorSetTestSuite) TestRequire() {
	set := NewIndicatorSet("AAPL")
	set.Put(IndicatorKeyMACD, []Value{Available(1.5)})

	v, err := set.Require(IndicatorKeyMACD)
	suite.NoError(err)
	suite.Equal(1.5, v)

	_, err = set.Require(IndicatorKeyRSI14)
	suite.Error(err)
	suite.Equal(errors.ErrCodeInsufficientData, errors.GetCode(err))
	suite.Contains(err.Error(), "rsi_14")
}

func (suite *IndicatorSetTestSuite) TestUnavailableMarshalsToNull() {
	set := NewIndicatorSet("AAPL")
	set.Put(IndicatorKeyRSI14, []Value{Unavailable()})
	set.Put(IndicatorKeyMACD, []Value{Available(0.25)})

	raw, err := json.Marshal(set.LatestOnly())
	suite.Require().NoError(err)

	var decoded struct {
		Latest map[string]*float64 `json:"latest"`
		Series map[string]any      `json:"series"`
	}
	suite.Require().NoError(json.Unmarshal(raw, &decoded))

	suite.Nil(decoded.Latest["rsi_14"])
	suite.Require().NotNil(decoded.Latest["macd"])
	suite.Equal(0.25, *decoded.Latest["macd"])
	suite.Nil(decoded.Series)
}

func (suite *IndicatorSetTestSuite) TestLatestOnlyCopies() {
	set := NewIndicatorSet("AAPL")
	set.Put(IndicatorKeyOBV, []Value{Available(1)})

	copied := set.LatestOnly()
	set.Put(IndicatorKeyOBV, []Value{Available(2)})

	suite.Equal(1.0, copied.Get(IndicatorKeyOBV).Unwrap())
	suite.Nil(copied.Series)
}

func (suite *IndicatorSetTestSuite) TestAllIndicatorKeys() {
	keys := AllIndicatorKeys()
	suite.Len(keys, 11)
	suite.Equal(IndicatorKeySMA20, keys[0])
	suite.Equal(IndicatorKeyOBV, keys[len(keys)-1])
}
