// Package metrics provides Prometheus metrics for monitoring dataset
// generation.
//
// Key metrics:
//   - Samples generated and quotes priced
//   - Build phase durations
//   - Build failures by stage
package metrics

import (
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// SamplesGenerated counts training samples assembled across all builds.
	SamplesGenerated = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "optionsynth",
		Name:      "samples_generated_total",
		Help:      "Number of training samples generated.",
	})

	// QuotesPriced counts Black-Scholes evaluations performed by builds.
	QuotesPriced = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "optionsynth",
		Name:      "quotes_priced_total",
		Help:      "Number of option quotes priced.",
	})

	// BuildErrors counts aborted dataset builds by stage.
	BuildErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "optionsynth",
		Name:      "build_errors_total",
		Help:      "Number of dataset build failures.",
	}, []string{"stage"})

	// BuildDuration observes wall-clock duration of dataset builds.
	BuildDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "optionsynth",
		Name:      "build_duration_seconds",
		Help:      "Wall-clock duration of dataset builds.",
		Buckets:   prometheus.ExponentialBuckets(0.01, 2, 14),
	})
)

// Handler returns the HTTP handler serving the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}

// Serve starts a metrics HTTP server on the given port and path. Blocks
// until the server fails.
func Serve(port int, path string) error {
	mux := http.NewServeMux()
	mux.Handle(path, Handler())
	return http.ListenAndServe(fmt.Sprintf(":%d", port), mux)
}
