// Package metrics records per-request exchange statistics with Prometheus.
package metrics

import (
	"io"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
)

// Collector implements transport.Observer.
type Collector struct {
	registry *prometheus.Registry
	requests *prometheus.CounterVec
	latency  *prometheus.HistogramVec
	faults   *prometheus.CounterVec
}

// NewCollector creates a collector backed by its own registry.
func NewCollector() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cryptotrade_requests_total",
				Help: "Total number of exchange REST requests",
			},
			[]string{"exchange", "method", "path", "status"},
		),
		latency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "cryptotrade_request_duration_seconds",
				Help:    "Distribution of exchange REST request latency",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"exchange", "method"},
		),
		faults: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cryptotrade_faults_total",
				Help: "Total number of non-2xx exchange responses",
			},
			[]string{"exchange", "status"},
		),
	}
	c.registry.MustRegister(c.requests, c.latency, c.faults)
	return c
}

// Observe records one completed request.
func (c *Collector) Observe(exchange, method, path string, status int, elapsed time.Duration) {
	code := strconv.Itoa(status)
	c.requests.WithLabelValues(exchange, method, path, code).Inc()
	c.latency.WithLabelValues(exchange, method).Observe(elapsed.Seconds())
	if status < 200 || status >= 300 {
		c.faults.WithLabelValues(exchange, code).Inc()
	}
}

// WriteText dumps all metrics in the Prometheus text format.
func (c *Collector) WriteText(w io.Writer) error {
	families, err := c.registry.Gather()
	if err != nil {
		return err
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return err
		}
	}
	return nil
}
