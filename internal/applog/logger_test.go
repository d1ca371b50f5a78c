package applog_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"concept_flash/internal/applog"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger := applog.New(&buf, "warn", "prod")

	logger.Info("hidden")
	logger.Warn("shown", "k", "v")

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 1)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(lines[0], &entry))
	assert.Equal(t, "shown", entry["msg"])
	assert.Equal(t, "v", entry["k"])
	assert.Equal(t, "concept-flash", entry["app"])
}

func TestNew_DevUsesTint(t *testing.T) {
	var buf bytes.Buffer
	logger := applog.New(&buf, "debug", "dev")
	logger.Debug("debug line")

	out := buf.String()
	assert.Contains(t, out, "debug line")
	assert.False(t, json.Valid(bytes.TrimSpace(buf.Bytes())), "tint output is not JSON")
}

func TestNew_UnknownLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := applog.New(&buf, "verbose", "prod")
	assert.Contains(t, buf.String(), "Unknown log level")

	buf.Reset()
	logger.Debug("dropped")
	assert.Empty(t, buf.String(), "unknown level falls back to info")
}
