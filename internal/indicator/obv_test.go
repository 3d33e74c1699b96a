package indicator

import (
	"testing"

	"github.com/maksimkitikov/QuantFinSocietyAI-Int2/internal/types"
	"github.com/stretchr/testify/suite"
)

type OBVTestSuite struct {
	suite.Suite
}

func TestOBVSuite(t *testing.T) {
	suite.Run(t, new(OBVTestSuite))
}

func (suite *OBVTestSuite) TestFiveBarFixture() {
	closes := []float64{10, 11, 11, 10, 12}
	volumes := []int64{100, 200, 300, 400, 500}

	suite.Equal([]float64{0, 200, 200, -200, 300}, OnBalanceVolume(closes, volumes))
}

func (suite *OBVTestSuite) TestNonDecreasingClosesNeverDecrease() {
	series := seriesFromCloses(10, 10, 11, 12, 12, 13, 15, 15, 16)
	outputs, err := NewOBV().Compute(series)
	suite.Require().NoError(err)

	values := unwrapAll(outputs[types.IndicatorKeyOBV])
	suite.Len(values, 9)
	suite.Equal(0.0, values[0])

	for i := 1; i < len(values); i++ {
		suite.GreaterOrEqual(values[i], values[i-1])
	}
}

func (suite *OBVTestSuite) TestConfigRejectsParameters() {
	obv := NewOBV()
	suite.NoError(obv.Config())
	suite.Error(obv.Config(14))
}
