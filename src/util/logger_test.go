package util

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"codeinsight/src/config"
)

func captureLogger(level string) (*Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	logger := NewLogger(config.LoggingConfig{Level: level})
	logger.output = &buf
	return logger, &buf
}

func TestLoggerLevelFiltering(t *testing.T) {
	logger, buf := captureLogger("warn")

	logger.Debug("hidden")
	logger.Info("hidden")
	logger.Warn("shown warn")
	logger.Error("shown error")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "[WARN] shown warn")
	assert.Contains(t, out, "[ERROR] shown error")
}

func TestLoggerFormatting(t *testing.T) {
	logger, buf := captureLogger("info")

	logger.Info("loaded %d files from %s", 3, "src")

	assert.Equal(t, "[INFO] loaded 3 files from src\n", buf.String())
}

func TestLoggerUnknownLevelDefaultsToInfo(t *testing.T) {
	logger, buf := captureLogger("verbose")

	logger.Debug("hidden")
	logger.Info("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}
