package server

import (
	"context"
	"net/http"
	"sort"
	"sync"
	"time"

	"github.com/maksimkitikov/QuantFinSocietyAI-Int2/internal/version"
)

// Probe checks one dependency. A nil error means healthy.
type Probe func(ctx context.Context) error

// DependencyStatus is the result of one probe.
type DependencyStatus struct {
	OK        bool    `json:"ok"`
	LatencyMs float64 `json:"latency_ms"`
	Error     string  `json:"error,omitempty"`
}

// HealthReport is the /healthz payload.
type HealthReport struct {
	Status       string                      `json:"status"`
	Version      string                      `json:"version"`
	Uptime       string                      `json:"uptime"`
	Dependencies map[string]DependencyStatus `json:"dependencies"`
	CheckedAt    time.Time                   `json:"checked_at"`
}

// Health probes the registered dependencies on every request.
type Health struct {
	mu        sync.RWMutex
	probes    map[string]Probe
	timeout   time.Duration
	startedAt time.Time
}

// NewHealth returns a Health without probes, which always reports healthy.
func NewHealth() *Health {
	return &Health{
		mu:        sync.RWMutex{},
		probes:    make(map[string]Probe),
		timeout:   3 * time.Second,
		startedAt: time.Now(),
	}
}

// Register adds or replaces the probe of a dependency.
func (h *Health) Register(name string, probe Probe) {
	h.mu.Lock()
	h.probes[name] = probe
	h.mu.Unlock()
}

// Check runs every probe and aggregates the result: healthy when all pass,
// unhealthy when all fail, degraded otherwise.
func (h *Health) Check(ctx context.Context) HealthReport {
	h.mu.RLock()
	names := make([]string, 0, len(h.probes))
	for name := range h.probes {
		names = append(names, name)
	}
	probes := make(map[string]Probe, len(h.probes))
	for name, p := range h.probes {
		probes[name] = p
	}
	h.mu.RUnlock()

	sort.Strings(names)

	ctx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()

	deps := make(map[string]DependencyStatus, len(names))
	failed := 0

	for _, name := range names {
		start := time.Now()
		err := probes[name](ctx)
		status := DependencyStatus{
			OK:        err == nil,
			LatencyMs: float64(time.Since(start).Microseconds()) / 1000.0,
			Error:     "",
		}

		if err != nil {
			status.Error = err.Error()
			failed++
		}

		deps[name] = status
	}

	overall := "healthy"

	switch {
	case failed > 0 && failed == len(names):
		overall = "unhealthy"
	case failed > 0:
		overall = "degraded"
	}

	return HealthReport{
		Status:       overall,
		Version:      version.GetVersion(),
		Uptime:       time.Since(h.startedAt).Round(time.Second).String(),
		Dependencies: deps,
		CheckedAt:    time.Now().UTC(),
	}
}

// ServeHTTP handles /healthz.
func (h *Health) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	report := h.Check(r.Context())

	code := http.StatusOK
	if report.Status != "healthy" {
		code = http.StatusServiceUnavailable
	}

	writeJSON(w, code, report)
}
