package marketdata

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"

	"github.com/maksimkitikov/QuantFinSocietyAI-Int2/internal/types"
	"github.com/maksimkitikov/QuantFinSocietyAI-Int2/pkg/errors"
)

const (
	providerNewsAPI = "newsapi"

	// DefaultNewsAPIURL is the NewsAPI host.
	DefaultNewsAPIURL = "https://newsapi.org"

	// MarketNewsQuery is the search used for general market news.
	MarketNewsQuery = "stock market OR trading OR finance"

	// DefaultNewsLookback bounds searches to recent articles.
	DefaultNewsLookback = 7 * 24 * time.Hour

	maxNewsPageSize = 100
)

// NewsAPIClient searches articles through NewsAPI.
type NewsAPIClient struct {
	client   *resty.Client
	lookback time.Duration
	now      func() time.Time
}

type newsAPIResponse struct {
	Status   string           `json:"status"`
	Code     string           `json:"code"`
	Message  string           `json:"message"`
	Articles []newsAPIArticle `json:"articles"`
}

type newsAPIArticle struct {
	Source struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	} `json:"source"`
	Author      string    `json:"author"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	URL         string    `json:"url"`
	PublishedAt time.Time `json:"publishedAt"`
	Content     string    `json:"content"`
}

// NewNewsAPIClient creates a client. An empty baseURL selects DefaultNewsAPIURL.
func NewNewsAPIClient(baseURL, apiKey string, timeout time.Duration) (*NewsAPIClient, error) {
	if apiKey == "" {
		return nil, errors.New(errors.ErrCodeInvalidConfiguration, "news api key is required")
	}

	if baseURL == "" {
		baseURL = DefaultNewsAPIURL
	}

	client := resty.New()
	client.SetBaseURL(baseURL)
	client.SetTimeout(timeout)
	client.SetHeader("X-Api-Key", apiKey)

	return &NewsAPIClient{
		client:   client,
		lookback: DefaultNewsLookback,
		now:      time.Now,
	}, nil
}

// FetchNews implements NewsFetcher with the everything endpoint, sorted by relevancy.
func (c *NewsAPIClient) FetchNews(ctx context.Context, query string, limit int) ([]types.NewsItem, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, errors.New(errors.ErrCodeMissingParameter, "news query is required")
	}

	return c.get(ctx, "/v2/everything", map[string]string{
		"q":        query,
		"from":     c.now().Add(-c.lookback).Format("2006-01-02"),
		"language": "en",
		"sortBy":   "relevancy",
		"pageSize": strconv.Itoa(clampPageSize(limit)),
	})
}

// FetchHeadlines implements HeadlineFetcher with the US top-headlines endpoint.
func (c *NewsAPIClient) FetchHeadlines(ctx context.Context, category string, limit int) ([]types.NewsItem, error) {
	if category == "" {
		category = "business"
	}

	return c.get(ctx, "/v2/top-headlines", map[string]string{
		"category": category,
		"country":  "us",
		"pageSize": strconv.Itoa(clampPageSize(limit)),
	})
}

func (c *NewsAPIClient) get(ctx context.Context, path string, params map[string]string) ([]types.NewsItem, error) {
	resp, err := c.client.R().
		SetContext(ctx).
		SetQueryParams(params).
		Get(path)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrCodeUpstreamUnavailable, err, "failed to fetch %s", path)
	}

	var payload newsAPIResponse
	if err := json.Unmarshal(resp.Body(), &payload); err != nil {
		if resp.StatusCode() != http.StatusOK {
			return nil, statusError(errors.ErrCodeNewsFailed, providerNewsAPI, resp.StatusCode(), resp.String())
		}

		return nil, errors.Wrapf(errors.ErrCodeMarketDataParse, err, "failed to parse %s response", path)
	}

	if payload.Status == "error" {
		if payload.Code == "rateLimited" {
			return nil, errors.Newf(errors.ErrCodeRateLimited, "newsapi: %s", payload.Message)
		}

		return nil, errors.Newf(errors.ErrCodeNewsFailed, "newsapi %s: %s", payload.Code, payload.Message)
	}

	if resp.StatusCode() != http.StatusOK {
		return nil, statusError(errors.ErrCodeNewsFailed, providerNewsAPI, resp.StatusCode(), resp.String())
	}

	items := make([]types.NewsItem, 0, len(payload.Articles))

	for _, a := range payload.Articles {
		if a.Title == "" || a.Title == "[Removed]" {
			continue
		}

		items = append(items, types.NewsItem{
			ID:          newsID(a.URL, a.Title),
			Title:       a.Title,
			Summary:     a.Description,
			Link:        a.URL,
			Publisher:   firstNonEmpty(a.Source.Name, a.Author),
			PublishedAt: a.PublishedAt.UTC(),
			Type:        "article",
			Symbols:     nil,
		})
	}

	return items, nil
}

// newsID derives a stable id from the article link so repeated fetches
// produce the same id.
func newsID(link, title string) string {
	seed := link
	if seed == "" {
		seed = title
	}

	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(seed)).String()
}

func clampPageSize(limit int) int {
	switch {
	case limit <= 0:
		return 20
	case limit > maxNewsPageSize:
		return maxNewsPageSize
	default:
		return limit
	}
}
