// Package metrics records strategy evaluations and backtest runs as
// Prometheus metrics on a registry owned by the caller.
package metrics

import (
	"net"
	"net/http"
	"time"

	"github.com/Protrader1988/protrader-terminal-backend/internal/logger"
	"github.com/Protrader1988/protrader-terminal-backend/internal/types"
	"github.com/Protrader1988/protrader-terminal-backend/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Recorder holds the engine metrics.
type Recorder struct {
	registry *prometheus.Registry

	SignalsTotal       *prometheus.CounterVec
	FaultsTotal        *prometheus.CounterVec
	EvaluationDuration *prometheus.HistogramVec
	BacktestsTotal     *prometheus.CounterVec
	TradesTotal        *prometheus.CounterVec
}

// NewRecorder creates a recorder with its own registry.
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		SignalsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{Name: "protrader_signals_total", Help: "Signals produced by strategy and direction"},
			[]string{"strategy", "direction"},
		),
		FaultsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{Name: "protrader_faults_total", Help: "Evaluations that ended in a fault"},
			[]string{"strategy", "code"},
		),
		EvaluationDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "protrader_evaluation_seconds",
				Help:    "Time spent in one strategy evaluation",
				Buckets: prometheus.ExponentialBuckets(0.0001, 4, 8),
			},
			[]string{"strategy"},
		),
		BacktestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{Name: "protrader_backtests_total", Help: "Completed backtest runs"},
			[]string{"strategy", "symbol"},
		),
		TradesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{Name: "protrader_backtest_trades_total", Help: "Simulated trades by outcome"},
			[]string{"strategy", "outcome"},
		),
	}

	r.registry.MustRegister(r.SignalsTotal, r.FaultsTotal, r.EvaluationDuration, r.BacktestsTotal, r.TradesTotal)

	return r
}

// Registry exposes the underlying registry for gathering.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// ObserveSignal records one evaluation.
func (r *Recorder) ObserveSignal(signal types.Signal, elapsed time.Duration) {
	r.SignalsTotal.WithLabelValues(signal.Strategy, string(signal.Direction)).Inc()
	r.EvaluationDuration.WithLabelValues(signal.Strategy).Observe(elapsed.Seconds())

	if signal.Fault.IsFault() {
		r.FaultsTotal.WithLabelValues(signal.Strategy, string(signal.Fault.Code)).Inc()
	}
}

// ObserveBacktest records a finished run and its trades.
func (r *Recorder) ObserveBacktest(strategyID, symbol string, trades []types.Trade) {
	r.BacktestsTotal.WithLabelValues(strategyID, symbol).Inc()

	for _, t := range trades {
		outcome := "loss"
		if t.IsWin() {
			outcome = "win"
		}

		r.TradesTotal.WithLabelValues(strategyID, outcome).Inc()
	}
}

// Serve exposes the registry on addr under /metrics. The listener is bound
// before Serve returns, so an unusable addr is reported here.
func (r *Recorder) Serve(addr string, log *logger.Logger) (*http.Server, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrCodeInvalidParameter, err, "failed to listen on %s", addr)
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{}))
	srv := &http.Server{Addr: ln.Addr().String(), Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("Metrics server stopped", zap.String("addr", srv.Addr), zap.Error(err))
		}
	}()

	return srv, nil
}
