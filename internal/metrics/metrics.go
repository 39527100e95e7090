// Package metrics exports dispatch outcomes to Prometheus.
//
// Usage:
//
//	m := metrics.New(prometheus.NewRegistry())
//	d := command.NewDispatcher(command.WithObserver(m))
package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"aurora/internal/logger"
	"aurora/pkg/command"
)

// UnknownRoot labels dispatches whose root name was not registered, so stray
// input cannot grow the label set.
const UnknownRoot = "unknown"

// Metrics implements command.Observer.
type Metrics struct {
	// DispatchCounter counts dispatches.
	// Labels: root, outcome (executed|handler_error|not_permitted|...)
	DispatchCounter *prometheus.CounterVec

	// DispatchDuration measures resolution plus handler time in seconds.
	// Labels: root
	// Buckets: 100µs, 500µs, 1ms, 5ms, 10ms, 50ms, 100ms, 500ms, 1s
	DispatchDuration *prometheus.HistogramVec

	// CooldownsPruned counts expired cooldown entries removed by the sweeper
	// and by manual prunes.
	CooldownsPruned prometheus.Counter
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		DispatchCounter: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "aurora_dispatches_total",
				Help: "Total number of command dispatches by root command and outcome",
			},
			[]string{"root", "outcome"},
		),

		DispatchDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "aurora_dispatch_duration_seconds",
				Help:    "Duration of command dispatches in seconds",
				Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
			},
			[]string{"root"},
		),

		CooldownsPruned: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "aurora_cooldowns_pruned_total",
				Help: "Total number of expired cooldown entries pruned",
			},
		),
	}
}

// ObserveDispatch implements command.Observer.
func (m *Metrics) ObserveDispatch(root string, outcome command.Outcome, elapsed time.Duration) {
	if root == "" {
		root = UnknownRoot
	}
	m.DispatchCounter.WithLabelValues(root, string(outcome)).Inc()
	m.DispatchDuration.WithLabelValues(root).Observe(elapsed.Seconds())
}

// ObservePrune implements command.Observer.
func (m *Metrics) ObservePrune(n int) {
	if n > 0 {
		m.CooldownsPruned.Add(float64(n))
	}
}

// Handler serves the metrics gathered by g in the Prometheus text format.
func Handler(g prometheus.Gatherer) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(g, promhttp.HandlerOpts{}))
	return mux
}

// Serve exposes /metrics on addr until ctx is cancelled.
func Serve(ctx context.Context, addr string, g prometheus.Gatherer) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           Handler(g),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Debug("Metrics endpoint listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
