package indicator

import (
	"testing"

	"github.com/maksimkitikov/QuantFinSocietyAI-Int2/internal/types"
	"github.com/stretchr/testify/suite"
)

type EMATestSuite struct {
	suite.Suite
}

func TestEMASuite(t *testing.T) {
	suite.Run(t, new(EMATestSuite))
}

func (suite *EMATestSuite) TestSeededAtFirstValue() {
	// span 3 gives alpha 0.5
	values, err := ExponentialMovingAverage([]float64{2, 4, 6, 8}, 3)
	suite.Require().NoError(err)
	suite.InDeltaSlice([]float64{2, 3, 4.5, 6.25}, values, 1e-12)
}

func (suite *EMATestSuite) TestConstantSeriesIsFlat() {
	values, err := ExponentialMovingAverage([]float64{7, 7, 7, 7, 7}, 12)
	suite.Require().NoError(err)

	for _, v := range values {
		suite.InDelta(7.0, v, 1e-12)
	}
}

func (suite *EMATestSuite) TestEmptyInput() {
	values, err := ExponentialMovingAverage(nil, 5)
	suite.NoError(err)
	suite.Empty(values)
}

func (suite *EMATestSuite) TestInvalidSpan() {
	_, err := ExponentialMovingAverage([]float64{1}, -1)
	suite.Error(err)
}

func (suite *EMATestSuite) TestIndicatorKeys() {
	ema := NewEMA()
	suite.Equal(types.IndicatorTypeEMA, ema.Name())
	suite.NoError(ema.Config(9))
	suite.Equal([]types.IndicatorKey{"ema_9"}, ema.Keys())

	outputs, err := ema.Compute(seriesFromCloses(1, 2, 3))
	suite.Require().NoError(err)
	suite.Len(outputs["ema_9"], 3)
	suite.True(outputs["ema_9"][0].IsSome())
}
