package marketdata

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/maksimkitikov/QuantFinSocietyAI-Int2/internal/types"
	"github.com/maksimkitikov/QuantFinSocietyAI-Int2/pkg/errors"
)

const appleOverviewJSON = `{
	"Symbol": "AAPL",
	"Name": "Apple Inc",
	"Description": "Apple designs consumer electronics.",
	"Exchange": "NASDAQ",
	"Currency": "USD",
	"Country": "USA",
	"Sector": "TECHNOLOGY",
	"Industry": "ELECTRONIC COMPUTERS",
	"MarketCapitalization": "2950000000000",
	"PERatio": "29.9",
	"EPS": "6.42",
	"DividendYield": "0.0051",
	"Beta": "1.29",
	"52WeekHigh": "199.62",
	"52WeekLow": "None"
}`

type AlphaVantageTestSuite struct {
	suite.Suite
	ctx    context.Context
	status int
	body   string
	query  map[string]string
	server *httptest.Server
	client *AlphaVantageClient
}

func TestAlphaVantageSuite(t *testing.T) {
	suite.Run(t, new(AlphaVantageTestSuite))
}

func (suite *AlphaVantageTestSuite) SetupTest() {
	suite.ctx = context.Background()
	suite.status = http.StatusOK
	suite.body = appleOverviewJSON
	suite.query = map[string]string{}

	suite.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		for key := range r.URL.Query() {
			suite.query[key] = r.URL.Query().Get(key)
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(suite.status)
		_, _ = w.Write([]byte(suite.body))
	}))

	client, err := NewAlphaVantageClient(suite.server.URL, "demo-key", 5*time.Second)
	suite.Require().NoError(err)
	suite.client = client
}

func (suite *AlphaVantageTestSuite) TearDownTest() {
	suite.server.Close()
}

func (suite *AlphaVantageTestSuite) TestRequiresAPIKey() {
	_, err := NewAlphaVantageClient("", "", time.Second)
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidConfiguration))
}

func (suite *AlphaVantageTestSuite) TestFetchOverview() {
	overview, err := suite.client.FetchOverview(suite.ctx, "aapl")
	suite.Require().NoError(err)

	suite.Equal("OVERVIEW", suite.query["function"])
	suite.Equal("AAPL", suite.query["symbol"])
	suite.Equal("demo-key", suite.query["apikey"])

	suite.Equal("Apple Inc", overview.Name)
	suite.Equal("Technology", overview.Sector)
	suite.Equal("Electronic Computers", overview.Industry)
	suite.InDelta(2.95e12, overview.MarketCap.Unwrap(), 1)
	suite.InDelta(29.9, overview.PERatio.Unwrap(), 1e-9)
	suite.InDelta(1.29, overview.Beta.Unwrap(), 1e-9)
	suite.True(overview.Low52Week.IsNone())
	suite.Equal("alpha_vantage", overview.Source)
}

func (suite *AlphaVantageTestSuite) TestUnknownSymbol() {
	suite.body = `{}`

	_, err := suite.client.FetchOverview(suite.ctx, "ZZZZ")
	suite.True(errors.HasCode(err, errors.ErrCodeNoDataFound))
}

func (suite *AlphaVantageTestSuite) TestThrottleNotice() {
	suite.body = `{"Note": "Thank you for using Alpha Vantage! Our standard API call frequency is 5 calls per minute."}`

	_, err := suite.client.FetchOverview(suite.ctx, "AAPL")
	suite.True(errors.IsKind(err, errors.KindRateLimited))
}

func (suite *AlphaVantageTestSuite) TestHTTPStatus() {
	suite.status = http.StatusTooManyRequests
	suite.body = `{}`

	_, err := suite.client.FetchOverview(suite.ctx, "AAPL")
	suite.True(errors.HasCode(err, errors.ErrCodeRateLimited))

	suite.status = http.StatusBadGateway

	_, err = suite.client.FetchOverview(suite.ctx, "AAPL")
	suite.True(errors.HasCode(err, errors.ErrCodeUpstreamUnavailable))
}

func (suite *AlphaVantageTestSuite) TestTransportFailure() {
	suite.server.Close()

	_, err := suite.client.FetchOverview(suite.ctx, "AAPL")
	suite.True(errors.HasCode(err, errors.ErrCodeUpstreamUnavailable))
}

func (suite *AlphaVantageTestSuite) TestMissingTextFieldsAreUnknown() {
	suite.body = `{"Symbol": "XYZ", "Name": "XYZ Corp", "Sector": "None", "PERatio": "-"}`

	overview, err := suite.client.FetchOverview(suite.ctx, "XYZ")
	suite.Require().NoError(err)
	suite.Equal(types.Unknown, overview.Sector)
	suite.Equal(types.Unknown, overview.Industry)
	suite.True(overview.PERatio.IsNone())
}

func (suite *AlphaVantageTestSuite) TestTitleCase() {
	suite.Equal("Consumer Cyclical", titleCase("CONSUMER CYCLICAL"))
	suite.Equal("Life Sciences", titleCase("Life Sciences"))
	suite.Equal("", titleCase(""))
}
