package marketdata

import (
	"context"
	"errors"
	"testing"
	"time"

	finance "github.com/piquette/finance-go"
	"github.com/piquette/finance-go/chart"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/maksimkitikov/QuantFinSocietyAI-Int2/internal/types"
	coded "github.com/maksimkitikov/QuantFinSocietyAI-Int2/pkg/errors"
)

type fakeChartIter struct {
	bars  []*finance.ChartBar
	index int
	err   error
}

func (f *fakeChartIter) Next() bool {
	if f.index < len(f.bars) {
		f.index++

		return true
	}

	return false
}

func (f *fakeChartIter) Bar() *finance.ChartBar { return f.bars[f.index-1] }
func (f *fakeChartIter) Err() error             { return f.err }

type fakeQuoteIter struct {
	quotes []*finance.Quote
	index  int
	err    error
}

func (f *fakeQuoteIter) Next() bool {
	if f.index < len(f.quotes) {
		f.index++

		return true
	}

	return false
}

func (f *fakeQuoteIter) Quote() *finance.Quote { return f.quotes[f.index-1] }
func (f *fakeQuoteIter) Err() error            { return f.err }

type fakeYahooAPI struct {
	chart      *fakeChartIter
	quotes     *fakeQuoteIter
	equity     *finance.Equity
	equityErr  error
	lastParams *chart.Params
	lastQuotes []string
}

func (f *fakeYahooAPI) Chart(params *chart.Params) YahooChartIterator {
	f.lastParams = params

	return f.chart
}

func (f *fakeYahooAPI) Quotes(symbols []string) YahooQuoteIterator {
	f.lastQuotes = symbols

	return f.quotes
}

func (f *fakeYahooAPI) Equity(string) (*finance.Equity, error) {
	return f.equity, f.equityErr
}

func chartBar(t time.Time, o, h, l, c float64, v int) *finance.ChartBar {
	//nolint:exhaustruct // only the OHLCV fields are read
	return &finance.ChartBar{
		Open:      decimal.NewFromFloat(o),
		High:      decimal.NewFromFloat(h),
		Low:       decimal.NewFromFloat(l),
		Close:     decimal.NewFromFloat(c),
		Volume:    v,
		Timestamp: int(t.Unix()),
	}
}

type YahooClientTestSuite struct {
	suite.Suite
	ctx context.Context
}

func TestYahooClientSuite(t *testing.T) {
	suite.Run(t, new(YahooClientTestSuite))
}

func (suite *YahooClientTestSuite) SetupTest() {
	suite.ctx = context.Background()
}

func (suite *YahooClientTestSuite) TestFetchBars() {
	api := &fakeYahooAPI{chart: &fakeChartIter{bars: []*finance.ChartBar{
		chartBar(day(2), 100, 101, 99, 100.5, 1000),
		chartBar(day(3), 100.5, 102, 100, 101.5, 2000),
		chartBar(day(4), 0, 0, 0, 0, 0),
	}}}
	client := NewYahooClientWithAPI(api)
	client.now = func() time.Time { return day(5) }

	series, err := client.FetchBars(suite.ctx, "aapl", types.Period1mo, types.Interval1d)
	suite.Require().NoError(err)
	suite.Equal("AAPL", series.Symbol)
	suite.Equal(2, series.Len())
	suite.InDelta(100.5, series.Bars[0].Close, 1e-9)
	suite.Equal(int64(2000), series.Bars[1].Volume)
	suite.True(series.Bars[0].Time.Equal(day(2)))

	suite.Require().NotNil(api.lastParams)
	suite.Equal("AAPL", api.lastParams.Symbol)
	suite.EqualValues("1d", api.lastParams.Interval)
}

func (suite *YahooClientTestSuite) TestFetchBarsEmpty() {
	client := NewYahooClientWithAPI(&fakeYahooAPI{chart: &fakeChartIter{}})

	_, err := client.FetchBars(suite.ctx, "ZZZZ", types.Period1mo, types.Interval1d)
	suite.True(coded.HasCode(err, coded.ErrCodeNoDataFound))
}

func (suite *YahooClientTestSuite) TestFetchBarsErrors() {
	tests := []struct {
		name string
		err  error
		code coded.ErrorCode
	}{
		{name: "unknown symbol", err: errors.New("remote-error: No data found, symbol may be delisted"), code: coded.ErrCodeNoDataFound},
		{name: "throttled", err: errors.New("429 Too Many Requests"), code: coded.ErrCodeRateLimited},
		{name: "transport", err: errors.New("dial tcp: connection refused"), code: coded.ErrCodeMarketDataFailed},
	}

	for _, tc := range tests {
		suite.Run(tc.name, func() {
			client := NewYahooClientWithAPI(&fakeYahooAPI{chart: &fakeChartIter{err: tc.err}})

			_, err := client.FetchBars(suite.ctx, "AAPL", types.Period1mo, types.Interval1d)
			suite.Equal(tc.code, coded.GetCode(err))
		})
	}
}

func (suite *YahooClientTestSuite) TestFetchBarsCancelled() {
	ctx, cancel := context.WithCancel(suite.ctx)
	cancel()

	client := NewYahooClientWithAPI(&fakeYahooAPI{chart: &fakeChartIter{}})

	_, err := client.FetchBars(ctx, "AAPL", types.Period1mo, types.Interval1d)
	suite.True(coded.IsKind(err, coded.KindUpstreamUnavailable))
}

func (suite *YahooClientTestSuite) TestFetchQuotes() {
	//nolint:exhaustruct // only the fields mapped into Quote are set
	api := &fakeYahooAPI{quotes: &fakeQuoteIter{quotes: []*finance.Quote{
		{
			Symbol:                     "^GSPC",
			ShortName:                  "S&P 500",
			RegularMarketPrice:         5000.5,
			RegularMarketChange:        25.25,
			RegularMarketChangePercent: 0.5,
			RegularMarketVolume:        123456,
			RegularMarketTime:          int(day(2).Unix()),
		},
	}}}
	client := NewYahooClientWithAPI(api)

	quotes, err := client.FetchQuotes(suite.ctx, "^gspc")
	suite.Require().NoError(err)
	suite.Require().Len(quotes, 1)
	suite.Equal([]string{"^GSPC"}, api.lastQuotes)
	suite.Equal("S&P 500", quotes[0].Name)
	suite.InDelta(5000.5, quotes[0].Price, 1e-9)
	suite.Equal(int64(123456), quotes[0].Volume)
	suite.True(quotes[0].Time.Equal(day(2)))
}

func (suite *YahooClientTestSuite) TestFetchQuotesNone() {
	client := NewYahooClientWithAPI(&fakeYahooAPI{quotes: &fakeQuoteIter{}})

	_, err := client.FetchQuotes(suite.ctx, "ZZZZ")
	suite.True(coded.HasCode(err, coded.ErrCodeNoDataFound))

	quotes, err := client.FetchQuotes(suite.ctx)
	suite.NoError(err)
	suite.Empty(quotes)
}

func (suite *YahooClientTestSuite) TestFetchOverview() {
	//nolint:exhaustruct // only the fields mapped into the overview are set
	eq := &finance.Equity{
		Quote: finance.Quote{
			Symbol:           "AAPL",
			ShortName:        "Apple",
			FullExchangeName: "NasdaqGS",
			CurrencyID:       "USD",
			FiftyTwoWeekHigh: 199.6,
			FiftyTwoWeekLow:  164.1,
		},
		LongName:                "Apple Inc.",
		MarketCap:               3000000000000,
		TrailingPE:              29.5,
		EpsTrailingTwelveMonths: 6.4,
	}
	client := NewYahooClientWithAPI(&fakeYahooAPI{equity: eq})

	overview, err := client.FetchOverview(suite.ctx, "aapl")
	suite.Require().NoError(err)
	suite.Equal("AAPL", overview.Symbol)
	suite.Equal("Apple Inc.", overview.Name)
	suite.Equal("NasdaqGS", overview.Exchange)
	suite.Equal(types.Unknown, overview.Sector)
	suite.InDelta(29.5, overview.PERatio.Unwrap(), 1e-9)
	suite.True(overview.DividendYield.IsNone())
	suite.True(overview.Beta.IsNone())
	suite.Equal("yahoo", overview.Source)
}
