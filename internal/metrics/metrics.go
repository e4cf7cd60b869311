// Package metrics exposes the job search fetch lifecycle as Prometheus metrics.
//
//	lookforjob_fetches_issued_total    requests sent to GET /jobs
//	lookforjob_fetches_applied_total   responses applied to the view
//	lookforjob_fetches_failed_total    current responses that failed
//	lookforjob_fetches_stale_total     responses discarded as superseded
//	lookforjob_fetch_latency_seconds   issue-to-apply latency of applied responses
package metrics

import (
	"context"
	"net/http"
	"time"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

// Collector records fetch lifecycle metrics
type Collector struct {
	registry *prometheus.Registry

	issued  prometheus.Counter
	applied prometheus.Counter
	failed  prometheus.Counter
	stale   prometheus.Counter
	latency prometheus.Histogram
}

// NewCollector creates a collector with its own registry
func NewCollector() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		issued: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "lookforjob_fetches_issued_total",
			Help: "Total number of listing requests issued",
		}),
		applied: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "lookforjob_fetches_applied_total",
			Help: "Total number of listing responses applied to the view",
		}),
		failed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "lookforjob_fetches_failed_total",
			Help: "Total number of current listing requests that failed",
		}),
		stale: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "lookforjob_fetches_stale_total",
			Help: "Total number of superseded listing responses discarded",
		}),
		latency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "lookforjob_fetch_latency_seconds",
			Help:    "Latency of applied listing requests in seconds",
			Buckets: prometheus.DefBuckets,
		}),
	}

	c.registry.MustRegister(c.issued, c.applied, c.failed, c.stale, c.latency)
	return c
}

func (c *Collector) FetchIssued() { c.issued.Inc() }

func (c *Collector) FetchApplied(latency time.Duration) {
	c.applied.Inc()
	c.latency.Observe(latency.Seconds())
}

func (c *Collector) FetchFailed() { c.failed.Inc() }

func (c *Collector) FetchStale() { c.stale.Inc() }

// Handler serves the collector's registry in Prometheus text format
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

// Serve runs a /metrics endpoint on addr until ctx is cancelled
func (c *Collector) Serve(ctx context.Context, addr string, log zerolog.Logger) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", c.Handler())

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	log.Info().Str("addr", addr).Msg("metrics endpoint listening")
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return errors.Wrap(err, "metrics server")
	}
	return nil
}
