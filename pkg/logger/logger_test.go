package logger

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	logger := New()
	assert.NotNil(t, logger)
	assert.NotNil(t, logger.info)
	assert.NotNil(t, logger.error)
	assert.NotNil(t, logger.warn)
}

func TestInfo(t *testing.T) {
	var out, errOut bytes.Buffer
	logger := NewWithWriters(&out, &errOut)

	logger.Info("Test message: %s", "info")

	assert.Contains(t, out.String(), "[INFO] ")
	assert.Contains(t, out.String(), "Test message: info")
	assert.Empty(t, errOut.String())
}

func TestError(t *testing.T) {
	var out, errOut bytes.Buffer
	logger := NewWithWriters(&out, &errOut)

	logger.Error("Test error: %s", "error")

	assert.Contains(t, errOut.String(), "[ERROR] Test error: error")
	assert.Empty(t, out.String())
}

func TestWarn(t *testing.T) {
	var out, errOut bytes.Buffer
	logger := NewWithWriters(&out, &errOut)

	logger.Warn("Test warning: %s", "warning")

	assert.Contains(t, errOut.String(), "[WARN] Test warning: warning")
}

func TestLogger_Formatting(t *testing.T) {
	var out, errOut bytes.Buffer
	logger := NewWithWriters(&out, &errOut)

	logger.Info("User %s logged in with ID %d", "john", 123)
	logger.Error("Failed to process request %d: %s", 404, "not found")
	logger.Warn("Warning: %s count is %d", "items", 5)

	assert.Contains(t, out.String(), "User john logged in with ID 123")
	assert.Contains(t, errOut.String(), "Failed to process request 404: not found")
	assert.Contains(t, errOut.String(), "Warning: items count is 5")
}

func TestLogger_TimestampPrecedesLevel(t *testing.T) {
	var out, errOut bytes.Buffer
	logger := NewWithWriters(&out, &errOut)

	logger.Info("started")
	logger.Error("failed")

	assert.Regexp(t, `^\d{4}/\d{2}/\d{2} \d{2}:\d{2}:\d{2} \[INFO\] started\n$`, out.String())
	assert.Regexp(t, `^\d{4}/\d{2}/\d{2} \d{2}:\d{2}:\d{2} \[ERROR\] failed\n$`, errOut.String())
}
