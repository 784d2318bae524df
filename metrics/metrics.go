// Package metrics provides Prometheus metrics for the terminal session.
package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Dispatch outcomes.
const (
	OutcomeOK       = "ok"
	OutcomeFailure  = "failure"
	OutcomeFault    = "fault"
	OutcomeNotFound = "not_found"
	OutcomeExit     = "exit"
)

var (
	commandsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "termsim_commands_total",
			Help: "Total number of dispatched command lines",
		},
		[]string{"command", "outcome"},
	)

	commandDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "termsim_command_duration_seconds",
			Help:    "Command handler duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"command"},
	)

	redirectsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "termsim_redirects_total",
			Help: "Total number of output redirections",
		},
		[]string{"mode", "status"},
	)

	loginsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "termsim_logins_total",
			Help: "Total number of login and signup attempts",
		},
		[]string{"kind", "status"},
	)
)

// RecordCommand records one dispatch. Unknown command names are folded into
// a single label value to keep cardinality bounded.
func RecordCommand(command, outcome string, d time.Duration) {
	if outcome == OutcomeNotFound {
		command = "unknown"
	}
	commandsTotal.WithLabelValues(command, outcome).Inc()
	commandDuration.WithLabelValues(command).Observe(d.Seconds())
}

// RecordRedirect records an output redirection.
func RecordRedirect(appendMode bool, err error) {
	mode := "overwrite"
	if appendMode {
		mode = "append"
	}
	status := "ok"
	if err != nil {
		status = "error"
	}
	redirectsTotal.WithLabelValues(mode, status).Inc()
}

// RecordLogin records a login or signup attempt.
func RecordLogin(kind string, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	loginsTotal.WithLabelValues(kind, status).Inc()
}

// Serve exposes /metrics on addr until ctx is done.
func Serve(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{Addr: addr, Handler: mux}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
