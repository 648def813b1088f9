// Package observability provides logging, metrics, and tracing for msgmap
// collections.
//
// Features:
//   - Structured logging via slog (Go stdlib)
//   - Metrics via OpenTelemetry
//   - Tracing via OpenTelemetry
//
// All features are opt-in and have no-op implementations when disabled.
package observability

import (
	"log/slog"
	"time"
)

// EnrichLogger adds collection context to a logger.
//
// Example:
//
//	enriched := EnrichLogger(logger, "c-1234")
//	enriched.Info("loaded") // includes collection_id
func EnrichLogger(logger *slog.Logger, collectionID string) *slog.Logger {
	if logger == nil {
		return nil
	}
	return logger.With(slog.String("collection_id", collectionID))
}

// LogBuild logs construction of a template for a collection key.
func LogBuild(logger *slog.Logger, key string, tokens int) {
	if logger == nil {
		return
	}
	logger.Debug("template built",
		slog.String("key", key),
		slog.Int("tokens", tokens),
	)
}

// LogBuildError logs a template that could not be built from its definition.
func LogBuildError(logger *slog.Logger, key string, err error) {
	if logger == nil {
		return
	}
	logger.Error("template build failed",
		slog.String("key", key),
		slog.String("error", err.Error()),
	)
}

// LogRender logs a successful render.
func LogRender(logger *slog.Logger, key string, durationMs float64) {
	if logger == nil {
		return
	}
	logger.Debug("template rendered",
		slog.String("key", key),
		slog.Float64("duration_ms", durationMs),
	)
}

// LogRenderError logs a render that was rejected.
// Rejections are caller errors, so they are logged at warn level.
func LogRenderError(logger *slog.Logger, key string, err error) {
	if logger == nil {
		return
	}
	logger.Warn("template render failed",
		slog.String("key", key),
		slog.String("error", err.Error()),
	)
}

// LogReload logs a definition document that was reloaded from source.
func LogReload(logger *slog.Logger, source string, keys int) {
	if logger == nil {
		return
	}
	logger.Info("definition reloaded",
		slog.String("source", source),
		slog.Int("keys", keys),
	)
}

// LogReloadError logs a reload attempt that failed. The previous definition stays active.
func LogReloadError(logger *slog.Logger, source string, err error) {
	if logger == nil {
		return
	}
	logger.Error("definition reload failed",
		slog.String("source", source),
		slog.String("error", err.Error()),
	)
}

// TimedOperation measures the duration of an operation.
// Returns a function that, when called, returns the elapsed time in milliseconds.
//
// Example:
//
//	done := TimedOperation()
//	// ... do work ...
//	durationMs := done()
func TimedOperation() func() float64 {
	start := time.Now()
	return func() float64 {
		return float64(time.Since(start).Microseconds()) / 1000
	}
}
