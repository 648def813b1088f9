package msgmap

import (
	"log/slog"

	"github.com/randalmurphal/msgmap/pkg/msgmap/observability"
)

// collectionConfig holds optional Collection settings.
type collectionConfig struct {
	id      string
	logger  *slog.Logger
	metrics observability.MetricsRecorder
	spans   observability.SpanManager
}

// defaultCollectionConfig returns a config with observability disabled.
func defaultCollectionConfig() collectionConfig {
	return collectionConfig{
		metrics: observability.NoopMetrics{},
		spans:   observability.NoopSpanManager{},
	}
}

// CollectionOption configures a Collection.
type CollectionOption func(*collectionConfig)

// WithLogger sets the logger for builds and renders.
// Default: nil (no logging)
//
// The logger is enriched with the collection ID.
func WithLogger(logger *slog.Logger) CollectionOption {
	return func(c *collectionConfig) {
		c.logger = logger
	}
}

// WithMetrics sets the metrics recorder.
// Default: observability.NoopMetrics{}
//
// Example:
//
//	c := msgmap.NewCollection(def, msgmap.WithMetrics(observability.NewMetricsRecorder()))
func WithMetrics(m observability.MetricsRecorder) CollectionOption {
	return func(c *collectionConfig) {
		if m != nil {
			c.metrics = m
		}
	}
}

// WithSpanManager sets the span manager used by Collection.Render.
// Default: observability.NoopSpanManager{}
func WithSpanManager(s observability.SpanManager) CollectionOption {
	return func(c *collectionConfig) {
		if s != nil {
			c.spans = s
		}
	}
}

// WithCollectionID overrides the generated collection ID.
func WithCollectionID(id string) CollectionOption {
	return func(c *collectionConfig) {
		if id != "" {
			c.id = id
		}
	}
}
