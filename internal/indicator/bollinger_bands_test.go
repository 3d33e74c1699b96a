package indicator

import (
	"testing"

	"github.com/maksimkitikov/QuantFinSocietyAI-Int2/internal/types"
	"github.com/stretchr/testify/suite"
)

type BollingerBandsTestSuite struct {
	suite.Suite
}

func TestBollingerBandsSuite(t *testing.T) {
	suite.Run(t, new(BollingerBandsTestSuite))
}

func (suite *BollingerBandsTestSuite) TestConfig() {
	bb := NewBollingerBands()
	suite.Equal(types.IndicatorTypeBollingerBands, bb.Name())
	suite.NoError(bb.Config(10, 1.5))

	err := bb.Config(20)
	suite.Error(err)
	suite.Contains(err.Error(), "expects 2 parameters")

	suite.Error(bb.Config(20, -1.0))
	suite.Error(bb.Config(0, 2.0))
}

func (suite *BollingerBandsTestSuite) TestPopulationStdDev() {
	// window 2 over [1, 3]: mean 2, population sd 1
	upper, middle, lower, err := Bands([]float64{1, 3}, 2, 2)
	suite.Require().NoError(err)

	suite.True(middle[0].IsNone())
	suite.True(upper[0].IsNone())
	suite.True(lower[0].IsNone())
	suite.InDelta(2.0, middle[1].Unwrap(), 1e-12)
	suite.InDelta(4.0, upper[1].Unwrap(), 1e-12)
	suite.InDelta(0.0, lower[1].Unwrap(), 1e-12)
}

func (suite *BollingerBandsTestSuite) TestBandOrdering() {
	closes := []float64{20, 21, 19, 22, 25, 24, 23, 26, 28, 27, 25, 24, 26, 29, 30, 31, 28, 27, 29, 32, 33, 31, 30}

	upper, middle, lower, err := Bands(closes, 20, 2)
	suite.Require().NoError(err)

	for i := range closes {
		if middle[i].IsNone() {
			suite.Less(i, 19)

			continue
		}

		suite.GreaterOrEqual(upper[i].Unwrap(), middle[i].Unwrap())
		suite.GreaterOrEqual(middle[i].Unwrap(), lower[i].Unwrap())
	}
}

func (suite *BollingerBandsTestSuite) TestConstantSeriesCollapses() {
	upper, middle, lower, err := Bands([]float64{5, 5, 5}, 3, 2)
	suite.Require().NoError(err)
	suite.Equal(middle[2].Unwrap(), upper[2].Unwrap())
	suite.Equal(middle[2].Unwrap(), lower[2].Unwrap())
}
