package marketdata

import (
	"context"
	"math"
	"strconv"
	"strings"
	"time"

	binance "github.com/adshao/go-binance/v2"
	"github.com/adshao/go-binance/v2/common"

	"github.com/maksimkitikov/QuantFinSocietyAI-Int2/internal/types"
	"github.com/maksimkitikov/QuantFinSocietyAI-Int2/pkg/errors"
)

const (
	providerBinance = "binance"

	// binancePageSize is the kline count Binance returns per request.
	binancePageSize = 500

	binanceCodeTooManyRequests = -1003
	binanceCodeInvalidSymbol   = -1121
)

// BinanceKlinesAPI abstracts the kline service of the Binance client.
type BinanceKlinesAPI interface {
	Klines(ctx context.Context, symbol, interval string, startTime, endTime int64, limit int) ([]*binance.Kline, error)
}

type binanceAPIAdapter struct {
	client *binance.Client
}

func (a *binanceAPIAdapter) Klines(ctx context.Context, symbol, interval string, startTime, endTime int64, limit int) ([]*binance.Kline, error) {
	return a.client.NewKlinesService().
		Symbol(symbol).
		Interval(interval).
		StartTime(startTime).
		EndTime(endTime).
		Limit(limit).
		Do(ctx)
}

// BinanceClient serves crypto pair bars from Binance klines. No credentials
// are needed for public market data.
type BinanceClient struct {
	api BinanceKlinesAPI
	now func() time.Time
}

// NewBinanceClient creates a client using the public Binance API.
func NewBinanceClient() *BinanceClient {
	return NewBinanceClientWithAPI(&binanceAPIAdapter{client: binance.NewClient("", "")})
}

// NewBinanceClientWithAPI creates a client with an injected API.
func NewBinanceClientWithAPI(api BinanceKlinesAPI) *BinanceClient {
	return &BinanceClient{
		api: api,
		now: time.Now,
	}
}

// FetchBars implements BarFetcher. Symbols such as BTC-USDT are sent as BTCUSDT.
func (c *BinanceClient) FetchBars(ctx context.Context, symbol string, period types.Period, interval types.Interval) (types.BarSeries, error) {
	symbol, err := validateSymbol(symbol)
	if err != nil {
		return types.BarSeries{}, err
	}

	pair := strings.NewReplacer("-", "", "/", "").Replace(symbol)

	binanceInterval, err := binanceIntervalFor(interval)
	if err != nil {
		return types.BarSeries{}, err
	}

	start, end := period.Range(c.now())
	endMillis := end.UnixMilli()
	currentStart := start.UnixMilli()

	bars := make([]types.Bar, 0)

	for {
		klines, err := c.api.Klines(ctx, pair, binanceInterval, currentStart, endMillis, binancePageSize)
		if err != nil {
			return types.BarSeries{}, binanceError(err, pair)
		}

		for _, k := range klines {
			bar, err := barFromKline(k)
			if err != nil {
				return types.BarSeries{}, err
			}

			bars = append(bars, bar)
		}

		if len(klines) < binancePageSize {
			break
		}

		// Continue after the close of the last kline to avoid duplicates.
		currentStart = klines[len(klines)-1].CloseTime + 1
		if currentStart >= endMillis {
			break
		}
	}

	return buildSeries(providerBinance, pair, bars)
}

func barFromKline(k *binance.Kline) (types.Bar, error) {
	values := make([]float64, 0, 5)

	for _, raw := range []string{k.Open, k.High, k.Low, k.Close, k.Volume} {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return types.Bar{}, errors.Wrapf(errors.ErrCodeMarketDataParse, err, "invalid kline value %q", raw)
		}

		if math.IsNaN(v) || math.IsInf(v, 0) {
			return types.Bar{}, errors.Newf(errors.ErrCodeMarketDataParse, "non-finite kline value %q", raw)
		}

		values = append(values, v)
	}

	return types.Bar{
		Time:   time.UnixMilli(k.OpenTime).UTC(),
		Open:   values[0],
		High:   values[1],
		Low:    values[2],
		Close:  values[3],
		Volume: int64(values[4]),
	}, nil
}

// binanceIntervalFor maps an interval to the Binance vocabulary
// (1m, 3m, 5m, 15m, 30m, 1h, 2h, 4h, 6h, 8h, 12h, 1d, 3d, 1w, 1M).
func binanceIntervalFor(interval types.Interval) (string, error) {
	switch interval {
	case types.Interval1m, types.Interval5m, types.Interval15m, types.Interval30m, types.Interval1h, types.Interval1d:
		return string(interval), nil
	case types.Interval1wk:
		return "1w", nil
	case types.Interval1mo:
		return "1M", nil
	default:
		return "", errors.Newf(errors.ErrCodeInvalidInterval, "binance does not support interval %q", interval)
	}
}

func binanceError(err error, pair string) error {
	var apiErr *common.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case binanceCodeTooManyRequests:
			return errors.Wrapf(errors.ErrCodeRateLimited, err, "binance rate limit exceeded for %s", pair)
		case binanceCodeInvalidSymbol:
			return errors.Wrapf(errors.ErrCodeNoDataFound, err, "binance does not list %s", pair)
		default:
			return errors.Wrapf(errors.ErrCodeMarketDataFailed, err, "binance rejected klines request for %s", pair)
		}
	}

	return errors.Wrapf(errors.ErrCodeUpstreamUnavailable, err, "failed to fetch klines from binance for %s", pair)
}
