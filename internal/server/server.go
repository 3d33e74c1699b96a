// Package server exposes the service over a JSON REST API under /api/v1.
package server

import (
	"context"
	"net"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/maksimkitikov/QuantFinSocietyAI-Int2/internal/config"
	"github.com/maksimkitikov/QuantFinSocietyAI-Int2/internal/logger"
	"github.com/maksimkitikov/QuantFinSocietyAI-Int2/internal/service"
	"github.com/maksimkitikov/QuantFinSocietyAI-Int2/internal/types"
	"github.com/maksimkitikov/QuantFinSocietyAI-Int2/internal/version"
	"github.com/maksimkitikov/QuantFinSocietyAI-Int2/pkg/errors"
)

// APIPrefix is the path prefix of every versioned route.
const APIPrefix = "/api/v1"

// Service is the orchestration surface the handlers call.
type Service interface {
	StockData(ctx context.Context, symbol string) (types.StockSnapshot, error)
	History(ctx context.Context, symbol string, period types.Period, interval types.Interval) (types.BarSeries, error)
	Indicators(ctx context.Context, symbol string, period types.Period, interval types.Interval) (types.IndicatorSet, error)
	Predict(ctx context.Context, symbol string, days int, fallback service.Fallback) (types.PredictionPath, error)
	AIPredict(ctx context.Context, symbol string) (types.Analysis, error)
	AIInsights(ctx context.Context, symbol string) (types.Analysis, error)
	AISentiment(ctx context.Context, text string) (types.TextSentiment, error)
	NewsSentiment(ctx context.Context, symbol string, limit int) (types.SentimentReport, error)
	MarketNews(ctx context.Context, limit int) ([]types.NewsItem, error)
	CompanyNews(ctx context.Context, company string, limit int) ([]types.NewsItem, error)
	EconomicCalendar(ctx context.Context) []types.EconomicEvent
	MarketSummary(ctx context.Context) (types.MarketSummary, error)
	Compare(ctx context.Context, symbols []string) ([]types.StockComparison, error)
	Screen(ctx context.Context, criteria types.ScreenerCriteria) ([]types.ScreenResult, error)
}

// Repository is the persistence surface behind the CRUD routes.
type Repository interface {
	CreateUser(ctx context.Context, in types.UserCreate) (types.User, error)
	GetUser(ctx context.Context, id int64) (types.User, error)
	UpdateUser(ctx context.Context, id int64, in types.UserUpdate) (types.User, error)
	GetSettings(ctx context.Context, userID int64) (types.UserSettings, error)
	UpsertSettings(ctx context.Context, settings types.UserSettings) (types.UserSettings, error)

	CreateStock(ctx context.Context, stock types.Stock) (types.Stock, error)
	GetStock(ctx context.Context, id int64) (types.Stock, error)
	ListStocks(ctx context.Context, skip, limit int) ([]types.Stock, error)
	UpdateStock(ctx context.Context, stock types.Stock) (types.Stock, error)
	ListPrices(ctx context.Context, stockID int64, skip, limit int) ([]types.StockPrice, error)

	CreateNews(ctx context.Context, news types.StoredNews) (types.StoredNews, error)
	GetNews(ctx context.Context, id int64) (types.StoredNews, error)
	ListNews(ctx context.Context, skip, limit int) ([]types.StoredNews, error)
	UpdateNews(ctx context.Context, news types.StoredNews) (types.StoredNews, error)
}

// Observer receives request level measurements.
type Observer interface {
	ObserveRequest(method, route string, status int, d time.Duration)
	ObserveRateLimited()
}

type nopObserver struct{}

func (nopObserver) ObserveRequest(string, string, int, time.Duration) {}
func (nopObserver) ObserveRateLimited()                               {}

// Options wires the server's collaborators. Service is required.
type Options struct {
	Config            config.ServerConfig
	Service           Service
	Repository        Repository // nil disables the CRUD routes
	Limiter           Limiter    // nil disables rate limiting
	RequestsPerMinute int
	Observer          Observer
	Metrics           http.Handler // served on /metrics when set
	Health            *Health
	Logger            *logger.Logger
}

// Server is the HTTP front of the service.
type Server struct {
	cfg               config.ServerConfig
	svc               Service
	repo              Repository
	limiter           Limiter
	requestsPerMinute int
	observer          Observer
	metrics           http.Handler
	health            *Health
	validate          *validator.Validate
	log               *logger.Logger

	handler    http.Handler
	httpServer *http.Server
	listener   net.Listener
}

// New builds the router and middleware chain.
func New(opts Options) (*Server, error) {
	if opts.Service == nil {
		return nil, errors.New(errors.ErrCodeInvalidConfiguration, "server requires a service")
	}

	s := &Server{
		cfg:               opts.Config,
		svc:               opts.Service,
		repo:              opts.Repository,
		limiter:           opts.Limiter,
		requestsPerMinute: opts.RequestsPerMinute,
		observer:          opts.Observer,
		metrics:           opts.Metrics,
		health:            opts.Health,
		validate:          validator.New(validator.WithRequiredStructEnabled()),
		log:               opts.Logger,
		handler:           nil,
		httpServer:        nil,
		listener:          nil,
	}

	if s.observer == nil {
		s.observer = nopObserver{}
	}

	if s.health == nil {
		s.health = NewHealth()
	}

	if s.log == nil {
		s.log = logger.NewNop()
	}

	s.log = s.log.Named("http")
	s.handler = s.requestID(s.cors(s.routes()))

	return s, nil
}

func (s *Server) routes() *mux.Router {
	router := mux.NewRouter()
	router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, s.log, errors.Newf(errors.ErrCodeDataNotFound, "no route for %s %s", r.Method, r.URL.Path))
	})
	router.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusMethodNotAllowed, ErrorBody{Error: ErrorDetail{
			Code:    int(errors.ErrCodeInvalidInput),
			Kind:    string(errors.KindInvalidInput),
			Message: "method " + r.Method + " not allowed",
		}})
	})

	router.HandleFunc("/", s.handleRoot).Methods(http.MethodGet)
	router.Handle("/healthz", s.health).Methods(http.MethodGet)

	if s.metrics != nil {
		router.Handle("/metrics", s.metrics).Methods(http.MethodGet)
	}

	api := router.PathPrefix(APIPrefix).Subrouter()
	api.Use(s.instrument, s.rateLimit)

	// market data and analysis
	api.HandleFunc("/market/summary", s.handleMarketSummary).Methods(http.MethodGet)
	api.HandleFunc("/market/stocks/{symbol}", s.handleStockData).Methods(http.MethodGet)
	api.HandleFunc("/market/stocks/{symbol}/history", s.handleHistory).Methods(http.MethodGet)
	api.HandleFunc("/market/stocks/{symbol}/indicators", s.handleIndicators).Methods(http.MethodGet)
	api.HandleFunc("/market/stocks/{symbol}/sentiment", s.handleNewsSentiment).Methods(http.MethodGet)
	api.HandleFunc("/market/compare", s.handleCompare).Methods(http.MethodPost)
	api.HandleFunc("/market/screener", s.handleScreen).Methods(http.MethodPost)

	api.HandleFunc("/predict/{symbol}", s.handlePredict).Methods(http.MethodPost)
	api.HandleFunc("/ai/predict/{symbol}", s.handleAIPredict).Methods(http.MethodPost)
	api.HandleFunc("/ai/insights/{symbol}", s.handleAIInsights).Methods(http.MethodPost)
	api.HandleFunc("/ai/sentiment", s.handleAISentiment).Methods(http.MethodPost)

	api.HandleFunc("/news/market", s.handleMarketNews).Methods(http.MethodGet)
	api.HandleFunc("/news/company/{company}", s.handleCompanyNews).Methods(http.MethodGet)
	api.HandleFunc("/news/calendar", s.handleCalendar).Methods(http.MethodGet)

	if s.repo != nil {
		s.storeRoutes(api)
	}

	return router
}

// Handler returns the root handler including every middleware.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Start listens on the configured address and serves in the background.
func (s *Server) Start() error {
	listener, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return errors.Wrapf(errors.ErrCodeInvalidConfiguration, err, "listen on %s", s.cfg.Addr)
	}

	s.listener = listener
	s.httpServer = &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       s.cfg.ReadTimeout,
		WriteTimeout:      s.cfg.WriteTimeout,
	}

	s.log.Info("listening", zap.String("addr", listener.Addr().String()))

	go func() {
		if err := s.httpServer.Serve(listener); err != nil && err != http.ErrServerClosed {
			s.log.Error("http server stopped", zap.Error(err))
		}
	}()

	return nil
}

// Addr returns the bound address once Start succeeded.
func (s *Server) Addr() string {
	if s.listener == nil {
		return ""
	}

	return s.listener.Addr().String()
}

// Shutdown drains in-flight requests within the configured timeout.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}

	timeout := s.cfg.ShutdownTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	return s.httpServer.Shutdown(ctx)
}

func (s *Server) handleRoot(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"message": "stock analysis API",
		"api":     APIPrefix,
		"version": version.GetVersion(),
	})
}
