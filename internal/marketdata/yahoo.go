package marketdata

import (
	"context"
	"strings"
	"time"

	"github.com/moznion/go-optional"
	finance "github.com/piquette/finance-go"
	"github.com/piquette/finance-go/chart"
	"github.com/piquette/finance-go/datetime"
	"github.com/piquette/finance-go/equity"
	"github.com/piquette/finance-go/quote"

	"github.com/maksimkitikov/QuantFinSocietyAI-Int2/internal/types"
	"github.com/maksimkitikov/QuantFinSocietyAI-Int2/pkg/errors"
)

const providerYahoo = "yahoo"

// YahooChartIterator is the subset of chart.Iter used by the fetcher.
type YahooChartIterator interface {
	Next() bool
	Bar() *finance.ChartBar
	Err() error
}

// YahooQuoteIterator is the subset of quote.Iter used by the fetcher.
type YahooQuoteIterator interface {
	Next() bool
	Quote() *finance.Quote
	Err() error
}

// YahooAPI abstracts the finance-go package functions so they can be replaced in tests.
type YahooAPI interface {
	Chart(params *chart.Params) YahooChartIterator
	Quotes(symbols []string) YahooQuoteIterator
	Equity(symbol string) (*finance.Equity, error)
}

type financeGoAPI struct{}

func (financeGoAPI) Chart(params *chart.Params) YahooChartIterator {
	return chart.Get(params)
}

func (financeGoAPI) Quotes(symbols []string) YahooQuoteIterator {
	return quote.List(symbols)
}

func (financeGoAPI) Equity(symbol string) (*finance.Equity, error) {
	return equity.Get(symbol)
}

// YahooClient serves bars, quotes and overviews from Yahoo Finance.
type YahooClient struct {
	api YahooAPI
	now func() time.Time
}

// NewYahooClient creates a client backed by finance-go.
func NewYahooClient() *YahooClient {
	return NewYahooClientWithAPI(financeGoAPI{})
}

// NewYahooClientWithAPI creates a client with an injected API.
func NewYahooClientWithAPI(api YahooAPI) *YahooClient {
	return &YahooClient{
		api: api,
		now: time.Now,
	}
}

// FetchBars implements BarFetcher.
func (c *YahooClient) FetchBars(ctx context.Context, symbol string, period types.Period, interval types.Interval) (types.BarSeries, error) {
	symbol, err := validateSymbol(symbol)
	if err != nil {
		return types.BarSeries{}, err
	}

	if err := ctx.Err(); err != nil {
		return types.BarSeries{}, errors.Wrap(errors.ErrCodeUpstreamUnavailable, "request cancelled", err)
	}

	start, end := period.Range(c.now())

	//nolint:exhaustruct // third-party struct with many optional fields
	params := &chart.Params{
		Symbol:   symbol,
		Start:    datetime.New(&start),
		End:      datetime.New(&end),
		Interval: datetime.Interval(interval),
	}

	iter := c.api.Chart(params)

	bars := make([]types.Bar, 0)

	for iter.Next() {
		bar := iter.Bar()
		if bar == nil || bar.Close.IsZero() {
			// Yahoo pads halted sessions with empty rows.
			continue
		}

		bars = append(bars, types.Bar{
			Time:   time.Unix(int64(bar.Timestamp), 0).UTC(),
			Open:   bar.Open.InexactFloat64(),
			High:   bar.High.InexactFloat64(),
			Low:    bar.Low.InexactFloat64(),
			Close:  bar.Close.InexactFloat64(),
			Volume: int64(bar.Volume),
		})
	}

	if err := iter.Err(); err != nil {
		return types.BarSeries{}, yahooError(err, "failed to fetch chart for %s", symbol)
	}

	return buildSeries(providerYahoo, symbol, bars)
}

// FetchQuotes implements QuoteFetcher. Symbols Yahoo does not know are omitted.
func (c *YahooClient) FetchQuotes(ctx context.Context, symbols ...string) ([]types.Quote, error) {
	if len(symbols) == 0 {
		return []types.Quote{}, nil
	}

	normalized := make([]string, 0, len(symbols))

	for _, s := range symbols {
		symbol, err := validateSymbol(s)
		if err != nil {
			return nil, err
		}

		normalized = append(normalized, symbol)
	}

	if err := ctx.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeUpstreamUnavailable, "request cancelled", err)
	}

	iter := c.api.Quotes(normalized)

	quotes := make([]types.Quote, 0, len(normalized))

	for iter.Next() {
		q := iter.Quote()
		if q == nil {
			continue
		}

		quotes = append(quotes, quoteFromYahoo(q))
	}

	if err := iter.Err(); err != nil {
		return nil, yahooError(err, "failed to fetch quotes for %s", strings.Join(normalized, ","))
	}

	if len(quotes) == 0 {
		return nil, errors.Newf(errors.ErrCodeNoDataFound, "yahoo returned no quotes for %s", strings.Join(normalized, ","))
	}

	return quotes, nil
}

// FetchOverview implements OverviewFetcher using the equity endpoint.
// Sector, industry and beta are not part of the quote payload and stay unknown.
func (c *YahooClient) FetchOverview(ctx context.Context, symbol string) (types.CompanyOverview, error) {
	symbol, err := validateSymbol(symbol)
	if err != nil {
		return types.CompanyOverview{}, err
	}

	if err := ctx.Err(); err != nil {
		return types.CompanyOverview{}, errors.Wrap(errors.ErrCodeUpstreamUnavailable, "request cancelled", err)
	}

	eq, err := c.api.Equity(symbol)
	if err != nil {
		return types.CompanyOverview{}, yahooError(err, "failed to fetch equity %s", symbol)
	}

	if eq == nil {
		return types.CompanyOverview{}, errors.Newf(errors.ErrCodeNoDataFound, "yahoo returned no equity for %s", symbol)
	}

	overview := types.NewCompanyOverview(symbol)
	overview.Name = firstNonEmpty(eq.LongName, eq.ShortName)
	overview.Exchange = eq.FullExchangeName
	overview.Currency = eq.CurrencyID
	overview.MarketCap = positive(float64(eq.MarketCap))
	overview.PERatio = positive(eq.TrailingPE)
	overview.EPS = nonZero(eq.EpsTrailingTwelveMonths)
	overview.DividendYield = nonZero(eq.TrailingAnnualDividendYield)
	overview.High52Week = positive(eq.FiftyTwoWeekHigh)
	overview.Low52Week = positive(eq.FiftyTwoWeekLow)
	overview.Source = providerYahoo

	return overview.Normalize(), nil
}

func quoteFromYahoo(q *finance.Quote) types.Quote {
	ts := time.Unix(int64(q.RegularMarketTime), 0).UTC()

	return types.Quote{
		Symbol:        q.Symbol,
		Name:          firstNonEmpty(q.ShortName, q.Symbol),
		Price:         q.RegularMarketPrice,
		Change:        q.RegularMarketChange,
		ChangePercent: q.RegularMarketChangePercent,
		Volume:        int64(q.RegularMarketVolume),
		Time:          ts,
	}
}

func yahooError(err error, format string, args ...any) error {
	msg := strings.ToLower(err.Error())

	switch {
	case strings.Contains(msg, "no data found"), strings.Contains(msg, "not found"), strings.Contains(msg, "404"):
		return errors.Wrapf(errors.ErrCodeNoDataFound, err, format, args...)
	case strings.Contains(msg, "429"), strings.Contains(msg, "too many requests"):
		return errors.Wrapf(errors.ErrCodeRateLimited, err, format, args...)
	default:
		return errors.Wrapf(errors.ErrCodeMarketDataFailed, err, format, args...)
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}

	return ""
}

func positive(v float64) optional.Option[float64] {
	if v > 0 {
		return optional.Some(v)
	}

	return optional.None[float64]()
}

func nonZero(v float64) optional.Option[float64] {
	if v != 0 {
		return optional.Some(v)
	}

	return optional.None[float64]()
}
