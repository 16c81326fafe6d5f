package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warning"))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("verbose"))
}

func TestNew_JSONFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, "info", "json", "1.2.3")

	logger.Debug("hidden")
	logger.Info("visible", "code", "OPENAPI_EXPORT")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "visible", entry["msg"])
	assert.Equal(t, "envport", entry["service"])
	assert.Equal(t, "1.2.3", entry["version"])
	assert.Equal(t, "OPENAPI_EXPORT", entry["code"])
}

func TestResolve(t *testing.T) {
	assert.Same(t, slog.Default(), Resolve(nil))

	logger := Discard()
	assert.Same(t, logger, Resolve(logger))
}
