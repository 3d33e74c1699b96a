// Package config loads service configuration from a YAML file, a .env file
// and the environment, in that order of increasing precedence.
package config

import (
	"encoding/json"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/invopop/jsonschema"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/maksimkitikov/QuantFinSocietyAI-Int2/internal/analysis"
	"github.com/maksimkitikov/QuantFinSocietyAI-Int2/internal/cache"
	"github.com/maksimkitikov/QuantFinSocietyAI-Int2/internal/logger"
	"github.com/maksimkitikov/QuantFinSocietyAI-Int2/internal/predictor"
	"github.com/maksimkitikov/QuantFinSocietyAI-Int2/pkg/errors"
)

// Config is the complete service configuration.
type Config struct {
	Server     ServerConfig        `yaml:"server" json:"server" jsonschema:"title=Server"`
	Log        logger.Config       `yaml:"log" json:"log" jsonschema:"title=Logging"`
	Cache      CacheConfig         `yaml:"cache" json:"cache" jsonschema:"title=Cache"`
	MarketData MarketDataConfig    `yaml:"market_data" json:"market_data" jsonschema:"title=Market data providers"`
	LLM        LLMConfig           `yaml:"llm" json:"llm" jsonschema:"title=Text generation"`
	Store      StoreConfig         `yaml:"store" json:"store" jsonschema:"title=Relational store"`
	Predictor  predictor.Config    `yaml:"predictor" json:"predictor" jsonschema:"title=Naive predictor"`
	Signals    analysis.Thresholds `yaml:"signals" json:"signals" jsonschema:"title=Signal thresholds"`
	Scheduler  SchedulerConfig     `yaml:"scheduler" json:"scheduler" jsonschema:"title=Cache warmer"`
	RateLimit  RateLimitConfig     `yaml:"rate_limit" json:"rate_limit" jsonschema:"title=Rate limiting"`
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Addr            string        `yaml:"addr" json:"addr" jsonschema:"description=Listen address,default=:8000" validate:"required"`
	CORSOrigins     []string      `yaml:"cors_origins" json:"cors_origins" jsonschema:"description=Allowed CORS origins" validate:"dive,required"`
	ReadTimeout     time.Duration `yaml:"read_timeout" json:"read_timeout" validate:"gt=0"`
	WriteTimeout    time.Duration `yaml:"write_timeout" json:"write_timeout" validate:"gt=0"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" json:"shutdown_timeout" validate:"gt=0"`
}

// CacheConfig selects the cache backend.
type CacheConfig struct {
	Backend    string            `yaml:"backend" json:"backend" jsonschema:"enum=memory,enum=redis,enum=none" validate:"oneof=memory redis none"`
	MaxEntries int               `yaml:"max_entries" json:"max_entries" validate:"gte=0"`
	Redis      cache.RedisConfig `yaml:"redis" json:"redis" validate:"-"`
	TTL        cache.TTLConfig   `yaml:"ttl" json:"ttl"`
}

// MarketDataConfig holds provider credentials.
type MarketDataConfig struct {
	BarsProvider       string        `yaml:"bars_provider" json:"bars_provider" jsonschema:"enum=yahoo,enum=polygon,enum=binance" validate:"oneof=yahoo polygon binance"`
	PolygonAPIKey      string        `yaml:"polygon_api_key" json:"polygon_api_key" validate:"required_if=BarsProvider polygon"`
	AlphaVantageAPIKey string        `yaml:"alpha_vantage_api_key" json:"alpha_vantage_api_key"`
	AlphaVantageURL    string        `yaml:"alpha_vantage_url" json:"alpha_vantage_url" validate:"omitempty,url"`
	NewsAPIKey         string        `yaml:"news_api_key" json:"news_api_key"`
	NewsAPIURL         string        `yaml:"news_api_url" json:"news_api_url" validate:"omitempty,url"`
	Timeout            time.Duration `yaml:"timeout" json:"timeout" validate:"gt=0"`
}

// LLMConfig configures the OpenAI compatible chat model. An empty APIKey
// selects the offline generator.
type LLMConfig struct {
	APIKey    string        `yaml:"api_key" json:"api_key"`
	Model     string        `yaml:"model" json:"model" validate:"required"`
	BaseURL   string        `yaml:"base_url" json:"base_url" validate:"omitempty,url"`
	MaxTokens int           `yaml:"max_tokens" json:"max_tokens" validate:"gte=1"`
	Timeout   time.Duration `yaml:"timeout" json:"timeout" validate:"gt=0"`
}

// StoreConfig locates the DuckDB database. An empty Path disables persistence.
type StoreConfig struct {
	Path string `yaml:"path" json:"path" jsonschema:"description=DuckDB file path or :memory:"`
}

// SchedulerConfig configures the cache warmer.
type SchedulerConfig struct {
	Enabled   bool     `yaml:"enabled" json:"enabled"`
	Spec      string   `yaml:"spec" json:"spec" jsonschema:"description=Cron spec with seconds" validate:"required_if=Enabled true"`
	Watchlist []string `yaml:"watchlist" json:"watchlist" validate:"max=100,dive,required"`
}

// RateLimitConfig configures the per-client request limit.
type RateLimitConfig struct {
	RequestsPerMinute int    `yaml:"requests_per_minute" json:"requests_per_minute" validate:"gte=0"`
	Backend           string `yaml:"backend" json:"backend" jsonschema:"enum=memory,enum=redis" validate:"oneof=memory redis"`
}

// Default returns the configuration used when nothing else is set.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Addr:            ":8000",
			CORSOrigins:     []string{"http://localhost:3000"},
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    60 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Log: logger.Config{Level: "info", Format: "json"},
		Cache: CacheConfig{
			Backend:    "memory",
			MaxEntries: 10000,
			Redis: cache.RedisConfig{
				Addr:         "localhost:6379",
				Password:     "",
				DB:           0,
				MaxFailures:  5,
				ResetTimeout: 10 * time.Second,
			},
			TTL: cache.DefaultTTLConfig(),
		},
		MarketData: MarketDataConfig{
			BarsProvider:       "yahoo",
			PolygonAPIKey:      "",
			AlphaVantageAPIKey: "",
			AlphaVantageURL:    "https://www.alphavantage.co",
			NewsAPIKey:         "",
			NewsAPIURL:         "https://newsapi.org",
			Timeout:            10 * time.Second,
		},
		LLM: LLMConfig{
			APIKey:    "",
			Model:     "gpt-4-turbo-preview",
			BaseURL:   "",
			MaxTokens: 500,
			Timeout:   60 * time.Second,
		},
		Store:     StoreConfig{Path: ""},
		Predictor: predictor.DefaultConfig(),
		Signals:   analysis.DefaultThresholds(),
		Scheduler: SchedulerConfig{
			Enabled:   false,
			Spec:      "0 */5 * * * *",
			Watchlist: []string{"AAPL", "MSFT", "GOOGL", "AMZN", "TSLA"},
		},
		RateLimit: RateLimitConfig{
			RequestsPerMinute: 30,
			Backend:           "memory",
		},
	}
}

// Load reads path (optional), then envFiles (missing files are ignored), then
// the process environment, and validates the result.
func Load(path string, envFiles ...string) (Config, error) {
	cfg := Default()

	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Config{}, errors.Wrapf(errors.ErrCodeInvalidConfiguration, err, "failed to read config file %s", path)
		}

		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return Config{}, errors.Wrapf(errors.ErrCodeInvalidConfiguration, err, "failed to parse config file %s", path)
		}
	}

	for _, file := range envFiles {
		if err := godotenv.Load(file); err != nil && !os.IsNotExist(err) {
			return Config{}, errors.Wrapf(errors.ErrCodeInvalidConfiguration, err, "failed to load env file %s", file)
		}
	}

	if err := cfg.ApplyEnv(os.Getenv); err != nil {
		return Config{}, err
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// ApplyEnv overrides fields from environment variables read through getenv.
func (c *Config) ApplyEnv(getenv func(string) string) error {
	setString := func(name string, dst *string) {
		if val := getenv(name); val != "" {
			*dst = val
		}
	}

	setString("SERVER_ADDR", &c.Server.Addr)
	setString("LOG_LEVEL", &c.Log.Level)
	setString("LOG_FORMAT", &c.Log.Format)
	setString("CACHE_BACKEND", &c.Cache.Backend)
	setString("REDIS_ADDR", &c.Cache.Redis.Addr)
	setString("REDIS_PASSWORD", &c.Cache.Redis.Password)
	setString("BARS_PROVIDER", &c.MarketData.BarsProvider)
	setString("POLYGON_API_KEY", &c.MarketData.PolygonAPIKey)
	setString("ALPHA_VANTAGE_API_KEY", &c.MarketData.AlphaVantageAPIKey)
	setString("NEWS_API_KEY", &c.MarketData.NewsAPIKey)
	setString("OPENAI_API_KEY", &c.LLM.APIKey)
	setString("OPENAI_MODEL", &c.LLM.Model)
	setString("OPENAI_BASE_URL", &c.LLM.BaseURL)
	setString("DATABASE_PATH", &c.Store.Path)
	setString("SCHEDULER_SPEC", &c.Scheduler.Spec)
	setString("RATE_LIMIT_BACKEND", &c.RateLimit.Backend)

	if val := getenv("CORS_ORIGINS"); val != "" {
		c.Server.CORSOrigins = splitList(val)
	}

	if val := getenv("WATCHLIST"); val != "" {
		c.Scheduler.Watchlist = splitList(val)
	}

	if val := getenv("SCHEDULER_ENABLED"); val != "" {
		enabled, err := strconv.ParseBool(val)
		if err != nil {
			return errors.Wrapf(errors.ErrCodeInvalidConfiguration, err, "SCHEDULER_ENABLED must be a boolean, got %q", val)
		}

		c.Scheduler.Enabled = enabled
	}

	if val := getenv("RATE_LIMIT_PER_MINUTE"); val != "" {
		limit, err := strconv.Atoi(val)
		if err != nil {
			return errors.Wrapf(errors.ErrCodeInvalidConfiguration, err, "RATE_LIMIT_PER_MINUTE must be an integer, got %q", val)
		}

		c.RateLimit.RequestsPerMinute = limit
	}

	if val := getenv("REDIS_DB"); val != "" {
		db, err := strconv.Atoi(val)
		if err != nil {
			return errors.Wrapf(errors.ErrCodeInvalidConfiguration, err, "REDIS_DB must be an integer, got %q", val)
		}

		c.Cache.Redis.DB = db
	}

	return nil
}

func splitList(val string) []string {
	parts := strings.Split(val, ",")
	out := make([]string, 0, len(parts))

	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}

	return out
}

// Validate checks every section of the configuration.
func (c Config) Validate() error {
	validate := validator.New()

	if err := validate.Struct(c); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfiguration, "invalid config", err)
	}

	if c.Cache.Backend == "redis" || c.RateLimit.Backend == "redis" {
		if err := validate.Struct(c.Cache.Redis); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfiguration, "invalid redis config", err)
		}
	}

	return nil
}

// UsesRedis reports whether any component needs a Redis connection.
func (c Config) UsesRedis() bool {
	return c.Cache.Backend == "redis" || c.RateLimit.Backend == "redis"
}

// Schema returns the JSON schema of the configuration file.
func Schema() (string, error) {
	schema := jsonschema.Reflect(&Config{})

	raw, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, "failed to encode config schema", err)
	}

	return string(raw), nil
}
