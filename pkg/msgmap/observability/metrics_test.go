package observability

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

// setupMetricsTest installs a meter provider backed by a manual reader.
func setupMetricsTest(t *testing.T) *sdkmetric.ManualReader {
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))

	originalProvider := otel.GetMeterProvider()
	otel.SetMeterProvider(provider)

	t.Cleanup(func() {
		otel.SetMeterProvider(originalProvider)
		if err := provider.Shutdown(context.Background()); err != nil {
			t.Logf("Error shutting down meter provider: %v", err)
		}
	})

	return reader
}

func collectMetrics(t *testing.T, reader *sdkmetric.ManualReader) *metricdata.ResourceMetrics {
	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))
	return &rm
}

func findMetric(rm *metricdata.ResourceMetrics, name string) *metricdata.Metrics {
	for _, sm := range rm.ScopeMetrics {
		for i := range sm.Metrics {
			if sm.Metrics[i].Name == name {
				return &sm.Metrics[i]
			}
		}
	}
	return nil
}

// sumFor returns the counter value recorded for the given key attribute.
func sumFor(t *testing.T, m *metricdata.Metrics, key string) int64 {
	t.Helper()
	require.NotNil(t, m)
	sum, ok := m.Data.(metricdata.Sum[int64])
	require.True(t, ok, "Expected Sum type")

	for _, dp := range sum.DataPoints {
		if v, ok := dp.Attributes.Value("key"); ok && v.AsString() == key {
			return dp.Value
		}
	}
	return 0
}

func TestNewMetricsRecorder(t *testing.T) {
	setupMetricsTest(t)

	recorder := NewMetricsRecorder()
	require.NotNil(t, recorder)

	_, isNoop := recorder.(NoopMetrics)
	assert.False(t, isNoop, "Expected real metrics recorder, got noop")
}

func TestRecordRender(t *testing.T) {
	reader := setupMetricsTest(t)

	m, err := newOtelMetrics()
	require.NoError(t, err)
	ctx := context.Background()

	m.RecordRender(ctx, "HELLO", 2*time.Millisecond, nil)
	m.RecordRender(ctx, "HELLO", time.Millisecond, errors.New("rejected"))

	rm := collectMetrics(t, reader)
	assert.Equal(t, int64(2), sumFor(t, findMetric(rm, "msgmap.render.count"), "HELLO"))
	assert.Equal(t, int64(1), sumFor(t, findMetric(rm, "msgmap.render.errors"), "HELLO"))

	latency := findMetric(rm, "msgmap.render.latency_ms")
	require.NotNil(t, latency)
	hist, ok := latency.Data.(metricdata.Histogram[float64])
	require.True(t, ok, "Expected Histogram type")
	require.NotEmpty(t, hist.DataPoints)
	assert.Equal(t, uint64(2), hist.DataPoints[0].Count)
}

func TestRecordBuild(t *testing.T) {
	reader := setupMetricsTest(t)

	m, err := newOtelMetrics()
	require.NoError(t, err)
	ctx := context.Background()

	m.RecordBuild(ctx, "HELLO", 3, nil)
	m.RecordBuild(ctx, "BROKEN", 0, errors.New("bad pattern"))

	rm := collectMetrics(t, reader)
	builds := findMetric(rm, "msgmap.build.count")
	assert.Equal(t, int64(1), sumFor(t, builds, "HELLO"))
	assert.Equal(t, int64(1), sumFor(t, builds, "BROKEN"))
	assert.Equal(t, int64(1), sumFor(t, findMetric(rm, "msgmap.build.errors"), "BROKEN"))
	assert.Equal(t, int64(0), sumFor(t, findMetric(rm, "msgmap.build.errors"), "HELLO"))

	tokens := findMetric(rm, "msgmap.template.tokens")
	require.NotNil(t, tokens)
	hist, ok := tokens.Data.(metricdata.Histogram[int64])
	require.True(t, ok, "Expected Histogram type")
	require.Len(t, hist.DataPoints, 1)
	assert.Equal(t, int64(3), hist.DataPoints[0].Sum)
}
