package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func restoreDefault(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })
}

func TestSetup_Text(t *testing.T) {
	restoreDefault(t)
	var buf bytes.Buffer
	logger, err := Setup("warn", "text", &buf)
	require.NoError(t, err)

	logger.Info("hidden")
	slog.Warn("shown", "macro", "abc")
	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "msg=shown")
	assert.Contains(t, out, "macro=abc")
}

func TestSetup_JSON(t *testing.T) {
	restoreDefault(t)
	var buf bytes.Buffer
	logger, err := Setup("debug", "JSON", &buf)
	require.NoError(t, err)

	logger.Debug("recording started", "keys", true)
	var rec map[string]any
	require.NoError(t, json.Unmarshal([]byte(strings.TrimSpace(buf.String())), &rec))
	assert.Equal(t, "recording started", rec["msg"])
	assert.Equal(t, true, rec["keys"])
}

func TestSetup_InvalidLevelFallsBack(t *testing.T) {
	restoreDefault(t)
	var buf bytes.Buffer
	logger, err := Setup("loud", "text", &buf)
	require.Error(t, err)
	require.NotNil(t, logger)

	logger.Debug("hidden")
	logger.Info("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

func TestSetup_InvalidFormat(t *testing.T) {
	restoreDefault(t)
	_, err := Setup("info", "xml", &bytes.Buffer{})
	assert.Error(t, err)
}
