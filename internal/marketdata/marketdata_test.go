package marketdata

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/maksimkitikov/QuantFinSocietyAI-Int2/internal/types"
	"github.com/maksimkitikov/QuantFinSocietyAI-Int2/pkg/errors"
)

func day(d int) time.Time {
	return time.Date(2024, 1, d, 0, 0, 0, 0, time.UTC)
}

func flatBar(t time.Time, price float64) types.Bar {
	return types.Bar{Time: t, Open: price, High: price + 1, Low: price - 1, Close: price, Volume: 1000}
}

type MarketDataTestSuite struct {
	suite.Suite
}

func TestMarketDataSuite(t *testing.T) {
	suite.Run(t, new(MarketDataTestSuite))
}

func (suite *MarketDataTestSuite) TestBuildSeriesSortsAndDeduplicates() {
	bars := []types.Bar{
		flatBar(day(3), 12),
		flatBar(day(1), 10),
		flatBar(day(2), 11),
		flatBar(day(2), 11.5),
	}

	series, err := buildSeries("test", "AAPL", bars)
	suite.Require().NoError(err)
	suite.Equal("AAPL", series.Symbol)
	suite.Equal(3, series.Len())
	suite.Equal([]float64{10, 11.5, 12}, series.Closes())
}

func (suite *MarketDataTestSuite) TestBuildSeriesEmpty() {
	_, err := buildSeries("test", "AAPL", nil)
	suite.Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeNoDataFound))
}

func (suite *MarketDataTestSuite) TestBuildSeriesMalformedIsUpstreamError() {
	bad := types.Bar{Time: day(1), Open: 10, High: 9, Low: 8, Close: 10, Volume: 1}

	_, err := buildSeries("test", "AAPL", []types.Bar{bad})
	suite.Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeMarketDataParse))
	suite.True(errors.IsKind(err, errors.KindUpstreamUnavailable))
}

func (suite *MarketDataTestSuite) TestStatusError() {
	tests := []struct {
		name   string
		status int
		code   errors.ErrorCode
	}{
		{name: "rate limited", status: 429, code: errors.ErrCodeRateLimited},
		{name: "not found", status: 404, code: errors.ErrCodeNoDataFound},
		{name: "server error", status: 503, code: errors.ErrCodeUpstreamUnavailable},
		{name: "other", status: 401, code: errors.ErrCodeNewsFailed},
	}

	for _, tc := range tests {
		suite.Run(tc.name, func() {
			err := statusError(errors.ErrCodeNewsFailed, "test", tc.status, "body")
			suite.Equal(tc.code, errors.GetCode(err))
		})
	}
}

func (suite *MarketDataTestSuite) TestValidateSymbol() {
	symbol, err := validateSymbol("  msft ")
	suite.NoError(err)
	suite.Equal("MSFT", symbol)

	_, err = validateSymbol("   ")
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidSymbol))
}
