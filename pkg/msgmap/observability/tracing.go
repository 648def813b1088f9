package observability

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// tracer uses the global OTel tracer provider.
var tracer = otel.Tracer("msgmap")

// SpanManager handles trace span lifecycle.
// Use NewSpanManager() for OTel tracing or NoopSpanManager{} when disabled.
type SpanManager interface {
	// StartRenderSpan starts a span for rendering a collection key.
	StartRenderSpan(ctx context.Context, collectionID, key string) (context.Context, trace.Span)

	// StartBuildSpan starts a span for building a template from its definition.
	// The build span is a child of the render span when one is active.
	StartBuildSpan(ctx context.Context, key string) (context.Context, trace.Span)

	// EndSpanWithError completes a span, optionally recording an error.
	EndSpanWithError(span trace.Span, err error)

	// AddSpanEvent adds an event to the current span in context.
	AddSpanEvent(ctx context.Context, name string, attrs ...attribute.KeyValue)
}

// otelSpanManager implements SpanManager using OpenTelemetry.
type otelSpanManager struct{}

// NewSpanManager returns a SpanManager that uses OpenTelemetry.
//
// The span manager uses the global OTel tracer provider. Configure the provider
// before calling this function:
//
//	import "go.opentelemetry.io/otel"
//	otel.SetTracerProvider(yourProvider)
func NewSpanManager() SpanManager {
	return &otelSpanManager{}
}

// StartRenderSpan starts a span for rendering a collection key.
func (m *otelSpanManager) StartRenderSpan(ctx context.Context, collectionID, key string) (context.Context, trace.Span) {
	return tracer.Start(ctx, "msgmap.render",
		trace.WithAttributes(
			attribute.String("collection.id", collectionID),
			attribute.String("template.key", key),
		),
		trace.WithSpanKind(trace.SpanKindInternal),
	)
}

// StartBuildSpan starts a span for building a template.
func (m *otelSpanManager) StartBuildSpan(ctx context.Context, key string) (context.Context, trace.Span) {
	return tracer.Start(ctx, "msgmap.build",
		trace.WithAttributes(
			attribute.String("template.key", key),
		),
		trace.WithSpanKind(trace.SpanKindInternal),
	)
}

// EndSpanWithError completes a span, optionally recording an error.
func (m *otelSpanManager) EndSpanWithError(span trace.Span, err error) {
	if span == nil {
		return
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}

// AddSpanEvent adds an event to the current span.
func (m *otelSpanManager) AddSpanEvent(ctx context.Context, name string, attrs ...attribute.KeyValue) {
	span := trace.SpanFromContext(ctx)
	if span == nil || !span.IsRecording() {
		return
	}
	span.AddEvent(name, trace.WithAttributes(attrs...))
}
