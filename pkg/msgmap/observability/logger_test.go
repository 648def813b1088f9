package observability

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newCapture returns a debug-level JSON logger and the buffer it writes to.
func newCapture() (*slog.Logger, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	logger := slog.New(slog.NewJSONHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return logger, buf
}

// lastRecord decodes the final JSON line written to buf.
func lastRecord(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.NotEmpty(t, lines)

	var m map[string]any
	require.NoError(t, json.Unmarshal(lines[len(lines)-1], &m))
	return m
}

func TestEnrichLogger(t *testing.T) {
	t.Run("adds collection_id", func(t *testing.T) {
		logger, buf := newCapture()

		EnrichLogger(logger, "c-123").Info("test message")

		record := lastRecord(t, buf)
		assert.Equal(t, "c-123", record["collection_id"])
		assert.Equal(t, "test message", record["msg"])
	})

	t.Run("nil logger returns nil", func(t *testing.T) {
		assert.Nil(t, EnrichLogger(nil, "c-123"))
	})
}

func TestLogBuild(t *testing.T) {
	logger, buf := newCapture()

	LogBuild(logger, "HELLO", 2)

	record := lastRecord(t, buf)
	assert.Equal(t, "DEBUG", record["level"])
	assert.Equal(t, "template built", record["msg"])
	assert.Equal(t, "HELLO", record["key"])
	assert.Equal(t, float64(2), record["tokens"]) // JSON decodes ints as float64
}

func TestLogBuildError(t *testing.T) {
	logger, buf := newCapture()

	LogBuildError(logger, "BAD", errors.New("bad pattern"))

	record := lastRecord(t, buf)
	assert.Equal(t, "ERROR", record["level"])
	assert.Equal(t, "template build failed", record["msg"])
	assert.Equal(t, "bad pattern", record["error"])
}

func TestLogRender(t *testing.T) {
	logger, buf := newCapture()

	LogRender(logger, "HELLO", 0.25)

	record := lastRecord(t, buf)
	assert.Equal(t, "DEBUG", record["level"])
	assert.Equal(t, "template rendered", record["msg"])
	assert.Equal(t, 0.25, record["duration_ms"])
}

func TestLogRenderError(t *testing.T) {
	logger, buf := newCapture()

	LogRenderError(logger, "HELLO", errors.New("missing two"))

	record := lastRecord(t, buf)
	assert.Equal(t, "WARN", record["level"])
	assert.Equal(t, "template render failed", record["msg"])
	assert.Equal(t, "HELLO", record["key"])
	assert.Equal(t, "missing two", record["error"])
}

func TestLogReload(t *testing.T) {
	logger, buf := newCapture()

	LogReload(logger, "messages.yaml", 12)

	record := lastRecord(t, buf)
	assert.Equal(t, "INFO", record["level"])
	assert.Equal(t, "messages.yaml", record["source"])
	assert.Equal(t, float64(12), record["keys"])

	LogReloadError(logger, "messages.yaml", errors.New("parse yaml"))
	record = lastRecord(t, buf)
	assert.Equal(t, "ERROR", record["level"])
	assert.Equal(t, "definition reload failed", record["msg"])
}

func TestNilLoggerHelpers(t *testing.T) {
	err := errors.New("x")
	assert.NotPanics(t, func() {
		LogBuild(nil, "k", 1)
		LogBuildError(nil, "k", err)
		LogRender(nil, "k", 1)
		LogRenderError(nil, "k", err)
		LogReload(nil, "s", 1)
		LogReloadError(nil, "s", err)
	})
}

func TestTimedOperation(t *testing.T) {
	done := TimedOperation()
	assert.GreaterOrEqual(t, done(), 0.0)
}
