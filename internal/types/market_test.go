package types

import (
	"testing"
	"time"

	"github.com/maksimkitikov/QuantFinSocietyAI-Int2/pkg/errors"
	"github.com/moznion/go-optional"
	"github.com/stretchr/testify/suite"
)

type MarketTestSuite struct {
	suite.Suite
}

func TestMarketSuite(t *testing.T) {
	suite.Run(t, new(MarketTestSuite))
}

func (suite *MarketTestSuite) TestDefaultMarketIndices() {
	indices := DefaultMarketIndices()
	suite.Len(indices, 4)

	symbols := make([]string, 0, len(indices))
	for _, idx := range indices {
		symbols = append(symbols, idx.Symbol)
	}

	suite.Equal([]string{"^GSPC", "^DJI", "^IXIC", "^RUT"}, symbols)
}

func (suite *MarketTestSuite) TestParsePeriodAndInterval() {
	p, err := ParsePeriod("6mo")
	suite.NoError(err)
	suite.Equal(Period6mo, p)

	_, err = ParsePeriod("7mo")
	suite.Equal(errors.ErrCodeInvalidPeriod, errors.GetCode(err))

	i, err := ParseInterval("1h")
	suite.NoError(err)
	suite.True(i.Intraday())
	suite.False(Interval1d.Intraday())
	suite.Equal(7*24*time.Hour, Interval1wk.Duration())

	_, err = ParseInterval("2h")
	suite.Equal(errors.ErrCodeInvalidInterval, errors.GetCode(err))
	suite.True(errors.IsKind(err, errors.KindInvalidInput))
}

func (suite *MarketTestSuite) TestPeriodRange() {
	now := time.Date(2024, 7, 15, 16, 0, 0, 0, time.UTC)

	start, end := Period1y.Range(now)
	suite.Equal(now, end)
	suite.Equal(time.Date(2023, 7, 15, 16, 0, 0, 0, time.UTC), start)

	start, _ = PeriodYTD.Range(now)
	suite.Equal(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), start)

	start, _ = PeriodMax.Range(now)
	suite.Equal(1974, start.Year())
}

func (suite *MarketTestSuite) TestOverviewNormalizeAndMerge() {
	primary := NewCompanyOverview("AAPL")
	primary.Name = "Apple Inc."
	primary.Sector = "None"
	primary.Industry = ""
	primary.PERatio = optional.Some(28.5)

	normalized := primary.Normalize()
	suite.Equal(Unknown, normalized.Sector)
	suite.Equal(Unknown, normalized.Industry)

	fallback := NewCompanyOverview("AAPL")
	fallback.Name = "Apple"
	fallback.Sector = "Technology"
	fallback.PERatio = optional.Some(30.0)
	fallback.Beta = optional.Some(1.2)

	merged := primary.Merge(fallback)
	suite.Equal("Apple Inc.", merged.Name)
	suite.Equal("Technology", merged.Sector)
	suite.Equal(Unknown, merged.Industry)
	suite.Equal(28.5, merged.PERatio.Unwrap())
	suite.Equal(1.2, merged.Beta.Unwrap())
	suite.True(merged.MarketCap.IsNone())
}

func (suite *MarketTestSuite) TestStockFromOverview() {
	o := NewCompanyOverview("MSFT")
	o.Name = "Microsoft"
	o.MarketCap = optional.Some(3e12)

	stock := StockFromOverview(o)
	suite.Equal("MSFT", stock.Symbol)
	suite.Equal("Microsoft", stock.Name)
	suite.Equal(3e12, stock.MarketCap.Unwrap())
	suite.True(stock.PERatio.IsNone())
}

func (suite *MarketTestSuite) TestLabelForScore() {
	suite.Equal(SentimentPositive, LabelForScore(0.5))
	suite.Equal(SentimentNeutral, LabelForScore(0.2))
	suite.Equal(SentimentNeutral, LabelForScore(-0.2))
	suite.Equal(SentimentNegative, LabelForScore(-0.21))
}

func (suite *MarketTestSuite) TestDefaultUserSettings() {
	settings := DefaultUserSettings(7)
	suite.Equal(int64(7), settings.UserID)
	suite.Equal("light", settings.Theme)
	suite.Equal("1d", settings.DefaultTimeframe)
	suite.Empty(settings.FavoriteStocks)
}
