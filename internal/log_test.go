package internal

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLogLevel(t *testing.T) {
	assert.Equal(t, LogLevelError, ParseLogLevel("ERROR"))
	assert.Equal(t, LogLevelWarn, ParseLogLevel("warn"))
	assert.Equal(t, LogLevelDebug, ParseLogLevel(" DEBUG "))
	assert.Equal(t, LogLevelTrace, ParseLogLevel("TRACE"))
	assert.Equal(t, LogLevelInfo, ParseLogLevel(""))
	assert.Equal(t, LogLevelInfo, ParseLogLevel("verbose"))
}

func TestLoggerLevelsAndComponent(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(LogLevelInfo).Named("loader").WithWriter(&buf)

	logger.Info("read %d rows", 12)
	logger.Debug("hidden")
	logger.Error("boom")

	out := buf.String()
	assert.Contains(t, out, "[INFO] [loader] read 12 rows")
	assert.Contains(t, out, "[ERROR] [loader] boom")
	assert.NotContains(t, out, "hidden")
	assert.Equal(t, LogLevelInfo, logger.GetLevel())
}
