package observability

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// MetricsRecorder records msgmap metrics.
// Use NewMetricsRecorder() for OTel metrics or NoopMetrics{} when disabled.
type MetricsRecorder interface {
	// RecordRender records a render of a collection key with its duration and error status.
	RecordRender(ctx context.Context, key string, duration time.Duration, err error)

	// RecordBuild records construction of a template from its definition.
	RecordBuild(ctx context.Context, key string, tokens int, err error)
}

// otelMetrics implements MetricsRecorder using OpenTelemetry.
type otelMetrics struct {
	renders       metric.Int64Counter
	renderLatency metric.Float64Histogram
	renderErrors  metric.Int64Counter
	builds        metric.Int64Counter
	buildErrors   metric.Int64Counter
	tokens        metric.Int64Histogram
}

var (
	defaultMetrics     *otelMetrics
	defaultMetricsOnce sync.Once
	defaultMetricsErr  error
)

// getDefaultMetrics lazily initializes the shared OTel instruments.
func getDefaultMetrics() (*otelMetrics, error) {
	defaultMetricsOnce.Do(func() {
		defaultMetrics, defaultMetricsErr = newOtelMetrics()
	})
	return defaultMetrics, defaultMetricsErr
}

// newOtelMetrics creates the OTel instruments from the global meter provider.
func newOtelMetrics() (*otelMetrics, error) {
	meter := otel.Meter("msgmap")

	renders, err := meter.Int64Counter("msgmap.render.count",
		metric.WithDescription("Number of template renders"),
	)
	if err != nil {
		return nil, err
	}

	renderLatency, err := meter.Float64Histogram("msgmap.render.latency_ms",
		metric.WithDescription("Template render latency in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	renderErrors, err := meter.Int64Counter("msgmap.render.errors",
		metric.WithDescription("Number of rejected template renders"),
	)
	if err != nil {
		return nil, err
	}

	builds, err := meter.Int64Counter("msgmap.build.count",
		metric.WithDescription("Number of templates built from definitions"),
	)
	if err != nil {
		return nil, err
	}

	buildErrors, err := meter.Int64Counter("msgmap.build.errors",
		metric.WithDescription("Number of definitions that failed to build"),
	)
	if err != nil {
		return nil, err
	}

	tokens, err := meter.Int64Histogram("msgmap.template.tokens",
		metric.WithDescription("Registered tokens per built template"),
	)
	if err != nil {
		return nil, err
	}

	return &otelMetrics{
		renders:       renders,
		renderLatency: renderLatency,
		renderErrors:  renderErrors,
		builds:        builds,
		buildErrors:   buildErrors,
		tokens:        tokens,
	}, nil
}

// NewMetricsRecorder returns a MetricsRecorder that uses OpenTelemetry.
// If metrics initialization fails, returns a no-op recorder.
//
// The recorder uses the global OTel meter provider. Configure the provider
// before calling this function:
//
//	import "go.opentelemetry.io/otel"
//	otel.SetMeterProvider(yourProvider)
func NewMetricsRecorder() MetricsRecorder {
	m, err := getDefaultMetrics()
	if err != nil {
		slog.Warn("metrics initialization failed, using no-op recorder",
			slog.String("error", err.Error()))
		return NoopMetrics{}
	}
	return m
}

// RecordRender records a render.
func (m *otelMetrics) RecordRender(ctx context.Context, key string, duration time.Duration, err error) {
	attrs := metric.WithAttributes(attribute.String("key", key))

	m.renders.Add(ctx, 1, attrs)
	m.renderLatency.Record(ctx, float64(duration.Microseconds())/1000, attrs)

	if err != nil {
		m.renderErrors.Add(ctx, 1, attrs)
	}
}

// RecordBuild records a template build.
func (m *otelMetrics) RecordBuild(ctx context.Context, key string, tokens int, err error) {
	attrs := metric.WithAttributes(attribute.String("key", key))

	m.builds.Add(ctx, 1, attrs)
	if err != nil {
		m.buildErrors.Add(ctx, 1, attrs)
		return
	}
	m.tokens.Record(ctx, int64(tokens), attrs)
}
