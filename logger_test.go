package glbridge

import (
	"bytes"
	"log/slog"
	"testing"
)

func TestDefaultLoggerIsSilent(t *testing.T) {
	l := Logger()
	if l == nil {
		t.Fatal("Logger returned nil")
	}
	if l.Enabled(nil, slog.LevelError) {
		t.Error("default logger should be disabled at every level")
	}
}

func TestSetLogger(t *testing.T) {
	defer SetLogger(nil)

	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, nil)))
	Logger().Info("hello")
	if buf.Len() == 0 {
		t.Error("configured logger produced no output")
	}
}

func TestSetLoggerNilRestoresSilent(t *testing.T) {
	SetLogger(slog.Default())
	SetLogger(nil)
	if Logger().Enabled(nil, slog.LevelError) {
		t.Error("nil logger should restore silent behavior")
	}
}
