// Package scheduler keeps the cache warm by refreshing the market summary and
// the watch-list symbols on a cron schedule.
package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/maksimkitikov/QuantFinSocietyAI-Int2/internal/config"
	"github.com/maksimkitikov/QuantFinSocietyAI-Int2/internal/logger"
	"github.com/maksimkitikov/QuantFinSocietyAI-Int2/internal/types"
	"github.com/maksimkitikov/QuantFinSocietyAI-Int2/pkg/errors"
)

const (
	warmConcurrency = 4
	warmTimeout     = 2 * time.Minute
)

// Warmer is the part of the service the scheduler drives.
type Warmer interface {
	RefreshMarketSummary(ctx context.Context) (types.MarketSummary, error)
	StockData(ctx context.Context, symbol string) (types.StockSnapshot, error)
}

// Result summarizes one warm run.
type Result struct {
	SummaryRefreshed bool
	Warmed           []string
	Failed           map[string]error
	Duration         time.Duration
}

// Scheduler owns the cron instance and its single warm job.
type Scheduler struct {
	Cron      *cron.Cron
	warmer    Warmer
	spec      string
	watchlist []string
	log       *logger.Logger
	ctx       context.Context

	mu      sync.Mutex
	running bool
}

// NewScheduler creates a scheduler. The cron spec includes a seconds field.
func NewScheduler(ctx context.Context, warmer Warmer, cfg config.SchedulerConfig, log *logger.Logger) *Scheduler {
	if log == nil {
		log = logger.NewNop()
	}

	return &Scheduler{
		Cron:      cron.New(cron.WithSeconds()),
		warmer:    warmer,
		spec:      cfg.Spec,
		watchlist: append([]string(nil), cfg.Watchlist...),
		log:       log.Named("scheduler"),
		ctx:       ctx,
		mu:        sync.Mutex{},
		running:   false,
	}
}

// Register adds the warm job under the configured spec.
func (s *Scheduler) Register() error {
	if _, err := s.Cron.AddFunc(s.spec, func() { s.RunNow(s.ctx) }); err != nil {
		return errors.Wrapf(errors.ErrCodeInvalidConfiguration, err, "register warm job %q", s.spec)
	}

	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	s.log.Info("scheduler started", zap.String("spec", s.spec), zap.Strings("watchlist", s.watchlist))
}

// Stop stops the scheduler and waits for a running job to finish or ctx to end.
func (s *Scheduler) Stop(ctx context.Context) {
	done := s.Cron.Stop()

	select {
	case <-done.Done():
	case <-ctx.Done():
		s.log.Warn("scheduler stop timed out with a job still running")
	}

	s.log.Info("scheduler stopped")
}

// RunNow refreshes the market summary and every watch-list symbol. A run
// that starts while another is in progress is skipped.
func (s *Scheduler) RunNow(ctx context.Context) Result {
	result := Result{
		SummaryRefreshed: false,
		Warmed:           []string{},
		Failed:           map[string]error{},
		Duration:         0,
	}

	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		s.log.Warn("previous warm run still in progress, skipping")

		return result
	}
	s.running = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.running = false
		s.mu.Unlock()
	}()

	start := time.Now()

	ctx, cancel := context.WithTimeout(ctx, warmTimeout)
	defer cancel()

	if _, err := s.warmer.RefreshMarketSummary(ctx); err != nil {
		s.log.Warn("market summary refresh failed", zap.Error(err))
	} else {
		result.SummaryRefreshed = true
	}

	var (
		mu  sync.Mutex
		wg  sync.WaitGroup
		sem = make(chan struct{}, warmConcurrency)
	)

	for _, symbol := range s.watchlist {
		wg.Add(1)

		go func(symbol string) {
			defer wg.Done()

			sem <- struct{}{}
			defer func() { <-sem }()

			_, err := s.warmer.StockData(ctx, symbol)

			mu.Lock()
			defer mu.Unlock()

			if err != nil {
				result.Failed[symbol] = err

				return
			}

			result.Warmed = append(result.Warmed, symbol)
		}(symbol)
	}

	wg.Wait()

	result.Duration = time.Since(start)

	for symbol, err := range result.Failed {
		s.log.Warn("warm failed", zap.String("symbol", symbol), zap.Error(err))
	}

	s.log.Info("warm run finished",
		zap.Bool("summary", result.SummaryRefreshed),
		zap.Int("warmed", len(result.Warmed)),
		zap.Int("failed", len(result.Failed)),
		zap.Duration("duration", result.Duration),
	)

	return result
}
