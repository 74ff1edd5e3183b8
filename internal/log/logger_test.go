package log

import (
	"bytes"
	"strings"
	"testing"
)

func TestInitialize(t *testing.T) {
	var buf bytes.Buffer
	Initialize(LevelInfo, &buf)

	if Verbosity() != LevelInfo {
		t.Errorf("expected verbosity %d, got %d", LevelInfo, Verbosity())
	}
}

func TestLogLevels(t *testing.T) {
	var buf bytes.Buffer

	// Test at trace level so all messages are captured
	Initialize(LevelTrace, &buf)

	// These should not panic
	Info("test info", "key", "value")
	Debug("test debug", "key", "value")
	Trace("test trace", "key", "value")
	Warn("test warn", "key", "value")
	Error("test error", "key", "value")

	if buf.Len() == 0 {
		t.Error("expected log output, got none")
	}
}

func TestQuietSuppressesInfo(t *testing.T) {
	var buf bytes.Buffer
	Initialize(LevelQuiet, &buf)

	Info("hidden", "key", "value")
	if strings.Contains(buf.String(), "hidden") {
		t.Error("info messages must be suppressed at quiet level")
	}

	Warn("visible")
	if !strings.Contains(buf.String(), "visible") {
		t.Error("warnings must always be emitted")
	}
}

func TestIsDebug(t *testing.T) {
	var buf bytes.Buffer

	Initialize(LevelInfo, &buf)
	if IsDebug() {
		t.Error("expected IsDebug() to be false at info level")
	}

	Initialize(LevelDebug, &buf)
	if !IsDebug() {
		t.Error("expected IsDebug() to be true at debug level")
	}
}
