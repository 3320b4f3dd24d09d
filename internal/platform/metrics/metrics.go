// Package metrics keeps a per-run Prometheus registry and writes it in the
// text exposition format for the node_exporter textfile collector.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "quotescraper"

// Run collects the summary of one scraper run.
type Run struct {
	registry *prometheus.Registry

	pagesFetched    prometheus.Counter
	quotesExtracted prometheus.Counter
	duration        prometheus.Gauge
	lastSuccess     prometheus.Gauge
}

// NewRun creates a Run with its own registry, so repeated runs in one
// process (tests) never collide on the default registerer.
func NewRun() *Run {
	r := &Run{
		registry: prometheus.NewRegistry(),
		pagesFetched: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "pages_fetched_total",
			Help:      "Pages fetched and extracted during the last run.",
		}),
		quotesExtracted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "quotes_extracted_total",
			Help:      "Quotes extracted during the last run.",
		}),
		duration: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "run_duration_seconds",
			Help:      "Wall time of the last run.",
		}),
		lastSuccess: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_run_success",
			Help:      "1 if the last run wrote its output file, 0 otherwise.",
		}),
	}

	r.registry.MustRegister(r.pagesFetched, r.quotesExtracted, r.duration, r.lastSuccess)

	return r
}

// PageFetched counts one page and the quotes found on it.
func (r *Run) PageFetched(quotes int) {
	r.pagesFetched.Inc()
	r.quotesExtracted.Add(float64(quotes))
}

// Finish records the run outcome.
func (r *Run) Finish(elapsed time.Duration, success bool) {
	r.duration.Set(elapsed.Seconds())
	if success {
		r.lastSuccess.Set(1)
	} else {
		r.lastSuccess.Set(0)
	}
}

// Registry exposes the underlying registry.
func (r *Run) Registry() *prometheus.Registry {
	return r.registry
}

// WriteTextfile writes the registry to path atomically.
func (r *Run) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("writing metrics textfile: %w", err)
	}
	return nil
}
