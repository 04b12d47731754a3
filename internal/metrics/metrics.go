// Package metrics records projection and decode counters on a private
// Prometheus registry that the CLI can export as a node_exporter textfile.
package metrics

import (
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/shivbijlani/lifetime/internal/domain"
	"github.com/shivbijlani/lifetime/internal/scenario"
)

const namespace = "lifetime"

// Fallback reasons reported by DecodeFallback.
const (
	ReasonUnsupportedVersion = "unsupported_version"
	ReasonMissingParams      = "missing_params"
	ReasonMalformed          = "malformed"
)

// Collector holds the application's metrics.
type Collector struct {
	registry *prometheus.Registry

	ProjectionsTotal     prometheus.Counter
	ProjectionYearsTotal prometheus.Counter
	ShortfallYearsTotal  prometheus.Counter
	DecodeFallbacks      *prometheus.CounterVec
	ProjectionDuration   prometheus.Histogram
}

// New creates a collector registered on its own registry.
func New() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		ProjectionsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "projections_total",
			Help:      "Total projections run",
		}),
		ProjectionYearsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "projection_years_total",
			Help:      "Total simulated years across all projections",
		}),
		ShortfallYearsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "shortfall_years_total",
			Help:      "Total simulated years that ended in a shortfall",
		}),
		DecodeFallbacks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "scenario_decode_fallbacks_total",
			Help:      "Scenario decodes that fell back to generated defaults",
		}, []string{"reason"}),
		ProjectionDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "projection_duration_seconds",
			Help:      "Projection duration in seconds",
			Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		}),
	}
	c.registry.MustRegister(
		c.ProjectionsTotal,
		c.ProjectionYearsTotal,
		c.ShortfallYearsTotal,
		c.DecodeFallbacks,
		c.ProjectionDuration,
	)
	return c
}

// Registry exposes the collector's registry.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// ObserveProjection records one finished projection.
func (c *Collector) ObserveProjection(rows []domain.Row, elapsed time.Duration) {
	shortfalls := 0
	for _, r := range rows {
		if r.Totals.Shortfall {
			shortfalls++
		}
	}
	c.ProjectionsTotal.Inc()
	c.ProjectionYearsTotal.Add(float64(len(rows)))
	c.ShortfallYearsTotal.Add(float64(shortfalls))
	c.ProjectionDuration.Observe(elapsed.Seconds())
}

// DecodeFallback records a decode that fell back to defaults because of err.
func (c *Collector) DecodeFallback(err error) {
	c.DecodeFallbacks.WithLabelValues(FallbackReason(err)).Inc()
}

// FallbackReason maps a codec error to its metric label.
func FallbackReason(err error) string {
	switch {
	case errors.Is(err, scenario.ErrUnsupportedVersion):
		return ReasonUnsupportedVersion
	case errors.Is(err, scenario.ErrMissingParams):
		return ReasonMissingParams
	default:
		return ReasonMalformed
	}
}

// WriteTextfile writes every metric to path in the text exposition format.
func (c *Collector) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, c.registry); err != nil {
		return fmt.Errorf("failed to write metrics to %s: %w", path, err)
	}
	return nil
}
