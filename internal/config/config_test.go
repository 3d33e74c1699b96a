package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/maksimkitikov/QuantFinSocietyAI-Int2/pkg/errors"
)

type ConfigTestSuite struct {
	suite.Suite
	dir string
}

func TestConfigSuite(t *testing.T) {
	suite.Run(t, new(ConfigTestSuite))
}

func (suite *ConfigTestSuite) SetupTest() {
	suite.dir = suite.T().TempDir()
}

func (suite *ConfigTestSuite) write(name, content string) string {
	path := filepath.Join(suite.dir, name)
	suite.Require().NoError(os.WriteFile(path, []byte(content), 0o600))

	return path
}

func (suite *ConfigTestSuite) TestDefaultIsValid() {
	cfg := Default()
	suite.NoError(cfg.Validate())
	suite.Equal(30, cfg.RateLimit.RequestsPerMinute)
	suite.Equal(5*time.Minute, cfg.Cache.TTL.Bars)
	suite.Equal(time.Hour, cfg.Cache.TTL.Overview)
	suite.Equal(30, cfg.Predictor.MaxDays)
	suite.False(cfg.UsesRedis())
}

func (suite *ConfigTestSuite) TestLoadYAML() {
	path := suite.write("config.yaml", `
server:
  addr: ":9000"
  cors_origins: ["https://example.com"]
cache:
  backend: redis
  redis:
    addr: "cache:6379"
  ttl:
    bars: 2m
scheduler:
  enabled: true
  watchlist: [NVDA]
`)

	cfg, err := Load(path)
	suite.Require().NoError(err)
	suite.Equal(":9000", cfg.Server.Addr)
	suite.Equal([]string{"https://example.com"}, cfg.Server.CORSOrigins)
	suite.Equal("redis", cfg.Cache.Backend)
	suite.Equal("cache:6379", cfg.Cache.Redis.Addr)
	suite.Equal(2*time.Minute, cfg.Cache.TTL.Bars)
	suite.Equal(time.Hour, cfg.Cache.TTL.Overview)
	suite.Equal([]string{"NVDA"}, cfg.Scheduler.Watchlist)
	suite.True(cfg.UsesRedis())
}

func (suite *ConfigTestSuite) TestLoadErrors() {
	_, err := Load(filepath.Join(suite.dir, "missing.yaml"))
	suite.Equal(errors.ErrCodeInvalidConfiguration, errors.GetCode(err))

	_, err = Load(suite.write("bad.yaml", "server: [unclosed"))
	suite.Equal(errors.ErrCodeInvalidConfiguration, errors.GetCode(err))

	_, err = Load(suite.write("invalid.yaml", "cache:\n  backend: memcached\n"))
	suite.Equal(errors.ErrCodeInvalidConfiguration, errors.GetCode(err))
	suite.Contains(err.Error(), "Backend")
}

func (suite *ConfigTestSuite) TestEnvFileAndEnvironment() {
	envFile := suite.write(".env", "NEWS_API_KEY=from-dotenv\n")
	suite.T().Setenv("OPENAI_API_KEY", "sk-test")
	suite.T().Setenv("CORS_ORIGINS", "http://a.test, http://b.test")
	suite.T().Setenv("NEWS_API_KEY", "")

	_ = os.Unsetenv("NEWS_API_KEY")

	cfg, err := Load("", envFile, filepath.Join(suite.dir, "absent.env"))
	suite.Require().NoError(err)
	suite.Equal("sk-test", cfg.LLM.APIKey)
	suite.Equal("from-dotenv", cfg.MarketData.NewsAPIKey)
	suite.Equal([]string{"http://a.test", "http://b.test"}, cfg.Server.CORSOrigins)
}

func (suite *ConfigTestSuite) TestApplyEnv() {
	env := map[string]string{
		"RATE_LIMIT_PER_MINUTE": "60",
		"SCHEDULER_ENABLED":     "true",
		"WATCHLIST":             "AAPL,,MSFT",
		"BARS_PROVIDER":         "binance",
	}

	cfg := Default()
	suite.Require().NoError(cfg.ApplyEnv(func(k string) string { return env[k] }))
	suite.Equal(60, cfg.RateLimit.RequestsPerMinute)
	suite.True(cfg.Scheduler.Enabled)
	suite.Equal([]string{"AAPL", "MSFT"}, cfg.Scheduler.Watchlist)
	suite.Equal("binance", cfg.MarketData.BarsProvider)

	env["RATE_LIMIT_PER_MINUTE"] = "lots"
	err := cfg.ApplyEnv(func(k string) string { return env[k] })
	suite.Equal(errors.ErrCodeInvalidConfiguration, errors.GetCode(err))
}

func (suite *ConfigTestSuite) TestPredictorHorizonCapped() {
	cfg := Default()
	cfg.Predictor.MaxDays = 31
	suite.Equal(errors.ErrCodeInvalidConfiguration, errors.GetCode(cfg.Validate()))

	_, err := Load(suite.write("horizon.yaml", "predictor:\n  max_days: 31\n"))
	suite.Equal(errors.ErrCodeInvalidConfiguration, errors.GetCode(err))
	suite.Contains(err.Error(), "MaxDays")

	cfg.Predictor.MaxDays = 30
	suite.NoError(cfg.Validate())
}

func (suite *ConfigTestSuite) TestPolygonNeedsKey() {
	cfg := Default()
	cfg.MarketData.BarsProvider = "polygon"
	suite.Error(cfg.Validate())

	cfg.MarketData.PolygonAPIKey = "key"
	suite.NoError(cfg.Validate())
}

func (suite *ConfigTestSuite) TestRedisValidatedOnlyWhenUsed() {
	cfg := Default()
	cfg.Cache.Redis.Addr = ""
	suite.NoError(cfg.Validate())

	cfg.RateLimit.Backend = "redis"
	suite.Error(cfg.Validate())
}

func (suite *ConfigTestSuite) TestSchema() {
	schema, err := Schema()
	suite.Require().NoError(err)
	suite.Contains(schema, "market_data")
	suite.Contains(schema, "rate_limit")
}
