// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package metrics is the additive observability surface described in §6 of
// the design notes: Prometheus counters/gauges plus a small HTTP server
// exposing /metrics and /healthz. None of it participates in the
// client-facing wire protocol — a session that never touches this package
// behaves identically on the wire.
package metrics

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry holds the counters and gauge the session and listener update.
// A zero-value Registry is not usable; construct one with New.
type Registry struct {
	RequestsTotal      *prometheus.CounterVec
	RequestErrorsTotal *prometheus.CounterVec
	ActiveSessions     prometheus.Gauge
	BytesReadTotal     prometheus.Counter
	BytesWrittenTotal  prometheus.Counter

	reg *prometheus.Registry
}

// New registers a fresh set of collectors on their own registry, so a
// process that never enables the metrics server still pays no cost beyond
// the collectors' own bookkeeping.
func New() *Registry {
	reg := prometheus.NewRegistry()
	r := &Registry{
		RequestsTotal: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "remotefs_requests_total",
			Help: "Total requests dispatched, by operation.",
		}, []string{"op"}),
		RequestErrorsTotal: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "remotefs_request_errors_total",
			Help: "Total requests whose operation reported failure (negative result, or getdirtree result code 1), by operation.",
		}, []string{"op"}),
		ActiveSessions: promauto.With(reg).NewGauge(prometheus.GaugeOpts{
			Name: "remotefs_active_sessions",
			Help: "Number of sessions currently being served.",
		}),
		BytesReadTotal: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "remotefs_bytes_read_total",
			Help: "Total bytes returned to clients by the read and getdirentries operations.",
		}),
		BytesWrittenTotal: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "remotefs_bytes_written_total",
			Help: "Total bytes accepted from clients by the write operation.",
		}),
		reg: reg,
	}
	return r
}

// Server is the optional /metrics + /healthz HTTP endpoint. It is only
// started when config.Config.MetricsAddr is non-empty.
type Server struct {
	httpServer *http.Server
	accepting  func() bool
}

// NewServer builds a metrics HTTP server bound to addr. accepting reports
// whether the listener is currently accepting connections, backing the
// /healthz probe.
func NewServer(addr string, reg *Registry, accepting func() bool) *Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg.reg, promhttp.HandlerOpts{}))
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		if accepting != nil && !accepting() {
			http.Error(w, "not accepting", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	})
	return &Server{
		httpServer: &http.Server{Addr: addr, Handler: mux},
		accepting:  accepting,
	}
}

// Serve blocks until ctx is canceled, then shuts the HTTP server down.
func (s *Server) Serve(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() { errCh <- s.httpServer.ListenAndServe() }()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("metrics: serve: %w", err)
	case <-ctx.Done():
		return s.httpServer.Shutdown(context.Background())
	}
}
