package marketdata

import (
	"context"
	"time"

	polygon "github.com/polygon-io/client-go/rest"
	"github.com/polygon-io/client-go/rest/models"

	"github.com/maksimkitikov/QuantFinSocietyAI-Int2/internal/types"
	"github.com/maksimkitikov/QuantFinSocietyAI-Int2/pkg/errors"
)

const providerPolygon = "polygon"

// PolygonAggsIterator is the subset of the polygon aggregate iterator used by the fetcher.
type PolygonAggsIterator interface {
	Next() bool
	Item() models.Agg
	Err() error
}

// PolygonAPIClient abstracts the polygon REST client so it can be mocked.
type PolygonAPIClient interface {
	ListAggs(ctx context.Context, params *models.ListAggsParams, opts ...models.RequestOption) PolygonAggsIterator
}

type polygonAPIAdapter struct {
	client *polygon.Client
}

func (a *polygonAPIAdapter) ListAggs(ctx context.Context, params *models.ListAggsParams, opts ...models.RequestOption) PolygonAggsIterator {
	return a.client.ListAggs(ctx, params, opts...)
}

// PolygonClient serves bars from the Polygon.io aggregates endpoint.
type PolygonClient struct {
	apiClient PolygonAPIClient
	now       func() time.Time
}

// NewPolygonClient creates a client for apiKey.
func NewPolygonClient(apiKey string) (*PolygonClient, error) {
	if apiKey == "" {
		return nil, errors.New(errors.ErrCodeInvalidConfiguration, "polygon api key is required")
	}

	return NewPolygonClientWithAPI(&polygonAPIAdapter{client: polygon.New(apiKey)}), nil
}

// NewPolygonClientWithAPI creates a client with an injected API.
func NewPolygonClientWithAPI(api PolygonAPIClient) *PolygonClient {
	return &PolygonClient{
		apiClient: api,
		now:       time.Now,
	}
}

// FetchBars implements BarFetcher.
func (c *PolygonClient) FetchBars(ctx context.Context, symbol string, period types.Period, interval types.Interval) (types.BarSeries, error) {
	symbol, err := validateSymbol(symbol)
	if err != nil {
		return types.BarSeries{}, err
	}

	multiplier, timespan, err := polygonTimespan(interval)
	if err != nil {
		return types.BarSeries{}, err
	}

	start, end := period.Range(c.now())

	//nolint:exhaustruct // third-party struct with many optional fields
	params := models.ListAggsParams{
		Ticker:     symbol,
		Multiplier: multiplier,
		Timespan:   timespan,
		From:       models.Millis(start),
		To:         models.Millis(end),
	}.WithAdjusted(true).WithOrder(models.Asc).WithLimit(50000)

	iter := c.apiClient.ListAggs(ctx, params)

	bars := make([]types.Bar, 0)

	for iter.Next() {
		agg := iter.Item()
		bars = append(bars, types.Bar{
			Time:   time.Time(agg.Timestamp).UTC(),
			Open:   agg.Open,
			High:   agg.High,
			Low:    agg.Low,
			Close:  agg.Close,
			Volume: int64(agg.Volume),
		})
	}

	if err := iter.Err(); err != nil {
		return types.BarSeries{}, polygonError(err, symbol)
	}

	return buildSeries(providerPolygon, symbol, bars)
}

func polygonTimespan(interval types.Interval) (int, models.Timespan, error) {
	switch interval {
	case types.Interval1m:
		return 1, models.Minute, nil
	case types.Interval5m:
		return 5, models.Minute, nil
	case types.Interval15m:
		return 15, models.Minute, nil
	case types.Interval30m:
		return 30, models.Minute, nil
	case types.Interval1h:
		return 1, models.Hour, nil
	case types.Interval1d:
		return 1, models.Day, nil
	case types.Interval1wk:
		return 1, models.Week, nil
	case types.Interval1mo:
		return 1, models.Month, nil
	default:
		return 0, "", errors.Newf(errors.ErrCodeInvalidInterval, "polygon does not support interval %q", interval)
	}
}

func polygonError(err error, symbol string) error {
	var apiErr *models.ErrorResponse
	if errors.As(err, &apiErr) {
		return statusError(errors.ErrCodeMarketDataFailed, providerPolygon, apiErr.StatusCode, apiErr.Error())
	}

	return errors.Wrapf(errors.ErrCodeUpstreamUnavailable, err, "error iterating polygon aggregates for %s", symbol)
}
