package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoggerWritesJSON(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, InfoLevel)

	log.Info("hello", String("key", "value"), Int("n", 7))

	var entry map[string]interface{}
	assert.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "INFO", entry["level"])
	assert.Equal(t, "hello", entry["message"])

	fields := entry["fields"].(map[string]interface{})
	assert.Equal(t, "value", fields["key"])
	assert.Equal(t, float64(7), fields["n"])
}

func TestLoggerLevelFilter(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, WarnLevel)

	log.Debug("hidden")
	log.Info("hidden too")
	log.Warn("visible")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Len(t, lines, 1)
	assert.Contains(t, lines[0], "visible")
}

func TestWithFields(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, InfoLevel).WithFields(String("service", "moodlist"))

	log.Info("msg")

	assert.Contains(t, buf.String(), `"service":"moodlist"`)
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, DebugLevel, ParseLevel("debug"))
	assert.Equal(t, ErrorLevel, ParseLevel("ERROR"))
	// 未知级别回退为info
	assert.Equal(t, InfoLevel, ParseLevel("bogus"))
}
