// Package metrics exposes Prometheus instrumentation for the generation
// pipeline.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"avatarstudio/internal/studio"
)

// Metrics holds the service collectors. A nil *Metrics is a valid no-op
// receiver so the core stays usable without instrumentation.
type Metrics struct {
	registry    *prometheus.Registry
	generations *prometheus.CounterVec
	duration    prometheus.Histogram
}

// New registers the service collectors on a fresh registry.
func New() *Metrics {
	registry := prometheus.NewRegistry()
	generations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "avatarstudio_generations_total",
		Help: "Generation outcomes by status category.",
	}, []string{"category"})
	duration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "avatarstudio_generation_duration_seconds",
		Help:    "Wall-clock duration of end-to-end generation calls.",
		Buckets: []float64{1, 5, 15, 30, 60, 120, 180, 300},
	})
	registry.MustRegister(generations, duration)
	return &Metrics{registry: registry, generations: generations, duration: duration}
}

// ObserveGeneration records one finished generation.
func (m *Metrics) ObserveGeneration(status string, seconds float64) {
	if m == nil {
		return
	}
	m.generations.WithLabelValues(studio.StatusCategory(status)).Inc()
	m.duration.Observe(seconds)
}

// Handler serves the Prometheus exposition endpoint.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
