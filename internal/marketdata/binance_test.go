package marketdata

import (
	"context"
	"errors"
	"strconv"
	"testing"
	"time"

	binance "github.com/adshao/go-binance/v2"
	"github.com/adshao/go-binance/v2/common"
	"github.com/stretchr/testify/suite"

	"github.com/maksimkitikov/QuantFinSocietyAI-Int2/internal/types"
	coded "github.com/maksimkitikov/QuantFinSocietyAI-Int2/pkg/errors"
)

type klinesCall struct {
	symbol    string
	interval  string
	startTime int64
}

type fakeKlinesAPI struct {
	pages [][]*binance.Kline
	err   error
	calls []klinesCall
}

func (f *fakeKlinesAPI) Klines(_ context.Context, symbol, interval string, startTime, _ int64, _ int) ([]*binance.Kline, error) {
	f.calls = append(f.calls, klinesCall{symbol: symbol, interval: interval, startTime: startTime})
	if f.err != nil {
		return nil, f.err
	}

	if len(f.calls) > len(f.pages) {
		return nil, nil
	}

	return f.pages[len(f.calls)-1], nil
}

func klinePage(start time.Time, count int, step time.Duration) []*binance.Kline {
	page := make([]*binance.Kline, count)

	for i := range count {
		open := start.Add(time.Duration(i) * step)
		price := strconv.FormatFloat(100+float64(i%10), 'f', 2, 64)
		//nolint:exhaustruct // only OHLCV and times are read
		page[i] = &binance.Kline{
			OpenTime:  open.UnixMilli(),
			CloseTime: open.Add(step).UnixMilli() - 1,
			Open:      price,
			High:      price,
			Low:       price,
			Close:     price,
			Volume:    "12.5",
		}
	}

	return page
}

type BinanceClientTestSuite struct {
	suite.Suite
	ctx context.Context
}

func TestBinanceClientSuite(t *testing.T) {
	suite.Run(t, new(BinanceClientTestSuite))
}

func (suite *BinanceClientTestSuite) SetupTest() {
	suite.ctx = context.Background()
}

func (suite *BinanceClientTestSuite) TestFetchBarsPaginates() {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	first := klinePage(start, binancePageSize, time.Minute)
	second := klinePage(start.Add(binancePageSize*time.Minute), 3, time.Minute)

	api := &fakeKlinesAPI{pages: [][]*binance.Kline{first, second}}
	client := NewBinanceClientWithAPI(api)
	client.now = func() time.Time { return start.AddDate(0, 0, 1) }

	series, err := client.FetchBars(suite.ctx, "btc-usdt", types.Period1d, types.Interval1m)
	suite.Require().NoError(err)
	suite.Equal("BTCUSDT", series.Symbol)
	suite.Equal(binancePageSize+3, series.Len())
	suite.Equal(int64(12), series.Bars[0].Volume)

	suite.Require().Len(api.calls, 2)
	suite.Equal("BTCUSDT", api.calls[0].symbol)
	suite.Equal("1m", api.calls[0].interval)
	suite.Equal(first[len(first)-1].CloseTime+1, api.calls[1].startTime)
}

func (suite *BinanceClientTestSuite) TestFetchBarsAPIErrors() {
	tests := []struct {
		name string
		err  error
		code coded.ErrorCode
	}{
		{name: "too many requests", err: &common.APIError{Code: binanceCodeTooManyRequests, Message: "Too many requests"}, code: coded.ErrCodeRateLimited},
		{name: "invalid symbol", err: &common.APIError{Code: binanceCodeInvalidSymbol, Message: "Invalid symbol."}, code: coded.ErrCodeNoDataFound},
		{name: "other api error", err: &common.APIError{Code: -1100, Message: "Illegal characters"}, code: coded.ErrCodeMarketDataFailed},
		{name: "transport", err: errors.New("i/o timeout"), code: coded.ErrCodeUpstreamUnavailable},
	}

	for _, tc := range tests {
		suite.Run(tc.name, func() {
			client := NewBinanceClientWithAPI(&fakeKlinesAPI{err: tc.err})

			_, err := client.FetchBars(suite.ctx, "BTCUSDT", types.Period1d, types.Interval1h)
			suite.Equal(tc.code, coded.GetCode(err))
		})
	}
}

func (suite *BinanceClientTestSuite) TestFetchBarsInvalidNumber() {
	for _, raw := range []string{"not-a-number", "NaN", "Inf", "-Inf"} {
		suite.Run(raw, func() {
			page := klinePage(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), 1, time.Hour)
			page[0].Close = raw

			client := NewBinanceClientWithAPI(&fakeKlinesAPI{pages: [][]*binance.Kline{page}})

			_, err := client.FetchBars(suite.ctx, "BTCUSDT", types.Period1d, types.Interval1h)
			suite.True(coded.HasCode(err, coded.ErrCodeMarketDataParse))
		})
	}
}

func (suite *BinanceClientTestSuite) TestBinanceInterval() {
	interval, err := binanceIntervalFor(types.Interval1wk)
	suite.NoError(err)
	suite.Equal("1w", interval)

	interval, err = binanceIntervalFor(types.Interval1mo)
	suite.NoError(err)
	suite.Equal("1M", interval)

	_, err = binanceIntervalFor(types.Interval("90m"))
	suite.True(coded.HasCode(err, coded.ErrCodeInvalidInterval))
}
