package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics are the service's Prometheus collectors.
type Metrics struct {
	registry *prometheus.Registry

	renders          *prometheus.CounterVec
	renderDuration   prometheus.Histogram
	outlierFallbacks prometheus.Counter
	sourceRows       prometheus.Histogram
}

// NewMetrics registers the collectors on a fresh registry.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	f := promauto.With(reg)

	return &Metrics{
		registry: reg,
		renders: f.NewCounterVec(prometheus.CounterOpts{
			Name: "splom_renders_total",
			Help: "Matrix renders by output format and result",
		}, []string{"format", "status"}),
		renderDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "splom_render_duration_seconds",
			Help:    "Time to build and encode a matrix",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		}),
		outlierFallbacks: f.NewCounter(prometheus.CounterOpts{
			Name: "splom_outlier_fallbacks_total",
			Help: "Cells rendered unfiltered because the outlier filter could not be applied",
		}),
		sourceRows: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "splom_source_rows",
			Help:    "Rows per dataset loaded from InfluxDB",
			Buckets: []float64{0, 4, 10, 25, 50, 100, 250, 1000},
		}),
	}
}

// Registry returns the registry the collectors live in.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }
