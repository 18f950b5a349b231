package events_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsrikrishna11/obsidian-github-publisher/internal/events"
)

func TestLoggerLevels(t *testing.T) {
	var buf bytes.Buffer
	logger := events.NewTestLogger(events.WarnLevel, "text", &buf)

	logger.Debug("hidden")
	logger.Info("hidden")
	logger.Warn("shown")
	logger.Error("also shown")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "shown")
	assert.Contains(t, out, "[WARN]")
	assert.Contains(t, out, "[ERROR]")
}

func TestLoggerJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := events.NewTestLogger(events.DebugLevel, "json", &buf)

	logger.WithField("path", "notes/a.md").WithField("count", 3).Info("synced")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))

	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "synced", entry["msg"])
	assert.Equal(t, "notes/a.md", entry["path"])
	assert.Equal(t, float64(3), entry["count"])
}

func TestLoggerFieldsDoNotLeakBetweenChildren(t *testing.T) {
	var buf bytes.Buffer
	base := events.NewTestLogger(events.DebugLevel, "text", &buf)

	a := base.WithField("component", "a")
	b := base.WithField("component", "b")

	buf.Reset()
	a.Info("from a")
	assert.Contains(t, buf.String(), "component=a")
	assert.NotContains(t, buf.String(), "component=b")

	buf.Reset()
	b.Info("from b")
	assert.Contains(t, buf.String(), "component=b")
}

func TestLoggerEscapesJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := events.NewTestLogger(events.DebugLevel, "json", &buf)

	logger.Info(`line "one"` + "\nline two")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "line \"one\"\nline two", entry["msg"])
}
