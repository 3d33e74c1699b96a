package marketdata

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/maksimkitikov/QuantFinSocietyAI-Int2/pkg/errors"
)

const newsAPIArticlesJSON = `{
	"status": "ok",
	"totalResults": 3,
	"articles": [
		{
			"source": {"id": "reuters", "name": "Reuters"},
			"author": "Jane Roe",
			"title": "Apple shares rise after strong earnings",
			"description": "Apple beat estimates.",
			"url": "https://example.com/apple-earnings",
			"publishedAt": "2024-01-02T15:04:05Z",
			"content": "..."
		},
		{
			"source": {"id": null, "name": ""},
			"author": "John Doe",
			"title": "Markets slip as yields climb",
			"description": "",
			"url": "https://example.com/markets",
			"publishedAt": "2024-01-02T10:00:00Z",
			"content": ""
		},
		{
			"source": {"id": null, "name": "Removed"},
			"title": "[Removed]",
			"url": "https://removed.com",
			"publishedAt": "2024-01-01T00:00:00Z"
		}
	]
}`

type NewsAPITestSuite struct {
	suite.Suite
	ctx    context.Context
	status int
	body   string
	path   string
	apiKey string
	query  map[string]string
	server *httptest.Server
	client *NewsAPIClient
}

func TestNewsAPISuite(t *testing.T) {
	suite.Run(t, new(NewsAPITestSuite))
}

func (suite *NewsAPITestSuite) SetupTest() {
	suite.ctx = context.Background()
	suite.status = http.StatusOK
	suite.body = newsAPIArticlesJSON
	suite.query = map[string]string{}

	suite.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		suite.path = r.URL.Path
		suite.apiKey = r.Header.Get("X-Api-Key")

		for key := range r.URL.Query() {
			suite.query[key] = r.URL.Query().Get(key)
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(suite.status)
		_, _ = w.Write([]byte(suite.body))
	}))

	client, err := NewNewsAPIClient(suite.server.URL, "news-key", 5*time.Second)
	suite.Require().NoError(err)
	client.now = func() time.Time { return time.Date(2024, 1, 10, 12, 0, 0, 0, time.UTC) }
	suite.client = client
}

func (suite *NewsAPITestSuite) TearDownTest() {
	suite.server.Close()
}

func (suite *NewsAPITestSuite) TestFetchNews() {
	items, err := suite.client.FetchNews(suite.ctx, "Apple", 10)
	suite.Require().NoError(err)

	suite.Equal("/v2/everything", suite.path)
	suite.Equal("news-key", suite.apiKey)
	suite.Equal("Apple", suite.query["q"])
	suite.Equal("2024-01-03", suite.query["from"])
	suite.Equal("relevancy", suite.query["sortBy"])
	suite.Equal("10", suite.query["pageSize"])

	suite.Require().Len(items, 2)
	suite.Equal("Apple shares rise after strong earnings", items[0].Title)
	suite.Equal("Reuters", items[0].Publisher)
	suite.Equal("https://example.com/apple-earnings", items[0].Link)
	suite.Equal("John Doe", items[1].Publisher)
	suite.True(items[0].PublishedAt.Equal(time.Date(2024, 1, 2, 15, 4, 5, 0, time.UTC)))
	suite.NotEmpty(items[0].ID)
}

func (suite *NewsAPITestSuite) TestNewsIDsAreStable() {
	first, err := suite.client.FetchNews(suite.ctx, "Apple", 10)
	suite.Require().NoError(err)

	second, err := suite.client.FetchNews(suite.ctx, "Apple", 10)
	suite.Require().NoError(err)

	suite.Equal(first[0].ID, second[0].ID)
	suite.NotEqual(first[0].ID, first[1].ID)
}

func (suite *NewsAPITestSuite) TestFetchHeadlines() {
	_, err := suite.client.FetchHeadlines(suite.ctx, "", 500)
	suite.Require().NoError(err)

	suite.Equal("/v2/top-headlines", suite.path)
	suite.Equal("business", suite.query["category"])
	suite.Equal("us", suite.query["country"])
	suite.Equal("100", suite.query["pageSize"])
}

func (suite *NewsAPITestSuite) TestEmptyQuery() {
	_, err := suite.client.FetchNews(suite.ctx, "  ", 10)
	suite.True(errors.HasCode(err, errors.ErrCodeMissingParameter))
}

func (suite *NewsAPITestSuite) TestRateLimited() {
	suite.status = http.StatusTooManyRequests
	suite.body = `{"status": "error", "code": "rateLimited", "message": "You have made too many requests recently."}`

	_, err := suite.client.FetchNews(suite.ctx, "Apple", 10)
	suite.True(errors.IsKind(err, errors.KindRateLimited))
}

func (suite *NewsAPITestSuite) TestAPIError() {
	suite.status = http.StatusUnauthorized
	suite.body = `{"status": "error", "code": "apiKeyInvalid", "message": "Your API key is invalid."}`

	_, err := suite.client.FetchNews(suite.ctx, "Apple", 10)
	suite.True(errors.HasCode(err, errors.ErrCodeNewsFailed))
}

func (suite *NewsAPITestSuite) TestNonJSONFailure() {
	suite.status = http.StatusServiceUnavailable
	suite.body = `upstream down`

	_, err := suite.client.FetchNews(suite.ctx, "Apple", 10)
	suite.True(errors.HasCode(err, errors.ErrCodeUpstreamUnavailable))
}
