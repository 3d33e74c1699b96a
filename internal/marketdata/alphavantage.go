package marketdata

import (
	"context"
	"encoding/json"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/moznion/go-optional"

	"github.com/maksimkitikov/QuantFinSocietyAI-Int2/internal/types"
	"github.com/maksimkitikov/QuantFinSocietyAI-Int2/pkg/errors"
)

const (
	providerAlphaVantage = "alpha_vantage"

	// DefaultAlphaVantageURL is the Alpha Vantage query endpoint host.
	DefaultAlphaVantageURL = "https://www.alphavantage.co"
)

// AlphaVantageClient serves company overviews from the Alpha Vantage OVERVIEW function.
type AlphaVantageClient struct {
	client *resty.Client
	apiKey string
}

// NewAlphaVantageClient creates a client. An empty baseURL selects DefaultAlphaVantageURL.
func NewAlphaVantageClient(baseURL, apiKey string, timeout time.Duration) (*AlphaVantageClient, error) {
	if apiKey == "" {
		return nil, errors.New(errors.ErrCodeInvalidConfiguration, "alpha vantage api key is required")
	}

	if baseURL == "" {
		baseURL = DefaultAlphaVantageURL
	}

	client := resty.New()
	client.SetBaseURL(baseURL)
	client.SetTimeout(timeout)

	return &AlphaVantageClient{
		client: client,
		apiKey: apiKey,
	}, nil
}

// FetchOverview implements OverviewFetcher.
func (c *AlphaVantageClient) FetchOverview(ctx context.Context, symbol string) (types.CompanyOverview, error) {
	symbol, err := validateSymbol(symbol)
	if err != nil {
		return types.CompanyOverview{}, err
	}

	resp, err := c.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"function": "OVERVIEW",
			"symbol":   symbol,
			"apikey":   c.apiKey,
		}).
		Get("/query")
	if err != nil {
		return types.CompanyOverview{}, errors.Wrapf(errors.ErrCodeUpstreamUnavailable, err, "failed to fetch overview for %s", symbol)
	}

	if resp.StatusCode() != http.StatusOK {
		return types.CompanyOverview{}, statusError(errors.ErrCodeOverviewFailed, providerAlphaVantage, resp.StatusCode(), resp.String())
	}

	var payload map[string]string
	if err := json.Unmarshal(resp.Body(), &payload); err != nil {
		return types.CompanyOverview{}, errors.Wrapf(errors.ErrCodeMarketDataParse, err, "failed to parse overview for %s", symbol)
	}

	return parseAlphaVantageOverview(symbol, payload)
}

func parseAlphaVantageOverview(symbol string, payload map[string]string) (types.CompanyOverview, error) {
	// Throttled and premium-only requests come back as 200 with a notice.
	if note := firstNonEmpty(payload["Note"], payload["Information"]); note != "" {
		return types.CompanyOverview{}, errors.Newf(errors.ErrCodeRateLimited, "alpha vantage: %s", note)
	}

	if msg := payload["Error Message"]; msg != "" {
		return types.CompanyOverview{}, errors.Newf(errors.ErrCodeNoDataFound, "alpha vantage: %s", msg)
	}

	if payload["Symbol"] == "" {
		return types.CompanyOverview{}, errors.Newf(errors.ErrCodeNoDataFound, "alpha vantage has no overview for %s", symbol)
	}

	overview := types.NewCompanyOverview(symbol)
	overview.Name = payload["Name"]
	overview.Description = payload["Description"]
	overview.Exchange = payload["Exchange"]
	overview.Currency = payload["Currency"]
	overview.Country = payload["Country"]
	overview.Sector = titleCase(payload["Sector"])
	overview.Industry = titleCase(payload["Industry"])
	overview.MarketCap = parseNumber(payload["MarketCapitalization"])
	overview.PERatio = parseNumber(payload["PERatio"])
	overview.EPS = parseNumber(payload["EPS"])
	overview.DividendYield = parseNumber(payload["DividendYield"])
	overview.Beta = parseNumber(payload["Beta"])
	overview.High52Week = parseNumber(payload["52WeekHigh"])
	overview.Low52Week = parseNumber(payload["52WeekLow"])
	overview.Source = providerAlphaVantage

	return overview.Normalize(), nil
}

// parseNumber reads an Alpha Vantage numeric string. "None", "-" and empty
// values are missing.
func parseNumber(raw string) optional.Option[float64] {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == "None" || raw == "-" {
		return optional.None[float64]()
	}

	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return optional.None[float64]()
	}

	return optional.Some(v)
}

// titleCase turns "TECHNOLOGY" into "Technology". Mixed-case input is kept.
func titleCase(s string) string {
	if s == "" || s != strings.ToUpper(s) {
		return s
	}

	words := strings.Fields(strings.ToLower(s))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}

	return strings.Join(words, " ")
}
