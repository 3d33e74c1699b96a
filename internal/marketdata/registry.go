package marketdata

import (
	"sort"

	"github.com/go-playground/validator/v10"

	"github.com/maksimkitikov/QuantFinSocietyAI-Int2/pkg/errors"
)

// ProviderType names a bar provider.
type ProviderType string

const (
	ProviderYahoo   ProviderType = "yahoo"
	ProviderPolygon ProviderType = "polygon"
	ProviderBinance ProviderType = "binance"
)

// ProviderInfo contains metadata about a market data provider.
type ProviderInfo struct {
	Name         string `json:"name"`
	DisplayName  string `json:"displayName"`
	Description  string `json:"description"`
	RequiresAuth bool   `json:"requiresAuth"`
}

// providerRegistry holds metadata about all supported bar providers.
var providerRegistry = map[ProviderType]ProviderInfo{
	ProviderYahoo: {
		Name:         string(ProviderYahoo),
		DisplayName:  "Yahoo Finance",
		Description:  "Delayed quotes, daily and intraday history for equities and indices",
		RequiresAuth: false,
	},
	ProviderPolygon: {
		Name:         string(ProviderPolygon),
		DisplayName:  "Polygon.io",
		Description:  "US stock market data provider with real-time and historical OHLCV data",
		RequiresAuth: true,
	},
	ProviderBinance: {
		Name:         string(ProviderBinance),
		DisplayName:  "Binance",
		Description:  "Cryptocurrency exchange with extensive market data for crypto trading pairs",
		RequiresAuth: false,
	},
}

// GetSupportedProviders returns the sorted names of all supported providers.
func GetSupportedProviders() []string {
	providers := make([]string, 0, len(providerRegistry))
	for providerType := range providerRegistry {
		providers = append(providers, string(providerType))
	}

	sort.Strings(providers)

	return providers
}

// GetProviderInfo returns metadata for a specific provider.
func GetProviderInfo(providerName string) (ProviderInfo, error) {
	info, exists := providerRegistry[ProviderType(providerName)]
	if !exists {
		return ProviderInfo{}, errors.Newf(errors.ErrCodeInvalidProvider, "unsupported provider: %s", providerName)
	}

	return info, nil
}

// ClientConfig selects and configures the bar provider.
type ClientConfig struct {
	ProviderType  ProviderType `validate:"required,oneof=yahoo polygon binance"`
	PolygonAPIKey string       `validate:"required_if=ProviderType polygon"`
}

// NewBarFetcher creates the bar fetcher named by config.
func NewBarFetcher(config ClientConfig) (BarFetcher, error) {
	validate := validator.New()
	if err := validate.Struct(config); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfiguration, "invalid market data configuration", err)
	}

	switch config.ProviderType {
	case ProviderYahoo:
		return NewYahooClient(), nil
	case ProviderPolygon:
		client, err := NewPolygonClient(config.PolygonAPIKey)
		if err != nil {
			return nil, err
		}

		return client, nil
	case ProviderBinance:
		return NewBinanceClient(), nil
	default:
		return nil, errors.Newf(errors.ErrCodeInvalidProvider, "unsupported provider type: %s", config.ProviderType)
	}
}
