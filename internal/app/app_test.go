package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/suite"

	"github.com/maksimkitikov/QuantFinSocietyAI-Int2/internal/config"
	"github.com/maksimkitikov/QuantFinSocietyAI-Int2/internal/server"
	"github.com/maksimkitikov/QuantFinSocietyAI-Int2/internal/store"
	"github.com/maksimkitikov/QuantFinSocietyAI-Int2/pkg/errors"
)

type AppTestSuite struct {
	suite.Suite
	ctx context.Context
}

func TestAppSuite(t *testing.T) {
	suite.Run(t, new(AppTestSuite))
}

func (suite *AppTestSuite) SetupTest() {
	suite.ctx = context.Background()
}

func (suite *AppTestSuite) TestBuildDefaults() {
	a, err := Build(suite.ctx, config.Default(), nil)
	suite.Require().NoError(err)
	defer a.Close()

	suite.NotNil(a.Service)
	suite.NotNil(a.Cache)
	suite.Nil(a.Store)
	suite.Nil(a.Redis)
	suite.IsType(&server.MemoryLimiter{}, a.Limiter())

	report := a.Health().Check(suite.ctx)
	suite.Equal("healthy", report.Status)
	suite.Empty(report.Dependencies)
}

func (suite *AppTestSuite) TestBuildWithRedisAndStore() {
	mr := miniredis.RunT(suite.T())

	cfg := config.Default()
	cfg.Cache.Backend = "redis"
	cfg.Cache.Redis.Addr = mr.Addr()
	cfg.RateLimit.Backend = "redis"
	cfg.Store.Path = store.MemoryPath

	a, err := Build(suite.ctx, cfg, nil)
	suite.Require().NoError(err)
	defer a.Close()

	suite.NotNil(a.Redis)
	suite.NotNil(a.Store)
	suite.IsType(&server.RedisLimiter{}, a.Limiter())

	report := a.Health().Check(suite.ctx)
	suite.Equal("healthy", report.Status)
	suite.Contains(report.Dependencies, "store")
	suite.Contains(report.Dependencies, "redis")

	srv, err := a.NewServer()
	suite.Require().NoError(err)

	// the store enables the CRUD routes
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/stocks", nil))
	suite.Equal(http.StatusOK, rec.Code)

	suite.NotNil(a.NewScheduler(suite.ctx))
}

func (suite *AppTestSuite) TestBuildWithoutCache() {
	cfg := config.Default()
	cfg.Cache.Backend = "none"
	cfg.RateLimit.RequestsPerMinute = 0

	a, err := Build(suite.ctx, cfg, nil)
	suite.Require().NoError(err)
	defer a.Close()

	suite.Nil(a.Cache)
	suite.Nil(a.Limiter())

	srv, err := a.NewServer()
	suite.Require().NoError(err)

	// no store, no CRUD routes
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/stocks", nil))
	suite.Equal(http.StatusNotFound, rec.Code)
}

func (suite *AppTestSuite) TestBuildFailsWithoutRedis() {
	mr := miniredis.RunT(suite.T())
	addr := mr.Addr()
	mr.Close()

	cfg := config.Default()
	cfg.Cache.Backend = "redis"
	cfg.Cache.Redis.Addr = addr

	_, err := Build(suite.ctx, cfg, nil)
	suite.True(errors.HasCode(err, errors.ErrCodeCacheFailure))
}

func (suite *AppTestSuite) TestBuildRejectsPolygonWithoutKey() {
	cfg := config.Default()
	cfg.MarketData.BarsProvider = "polygon"

	_, err := Build(suite.ctx, cfg, nil)
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidConfiguration))
}
