package logging

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func TestConsoleHandlerFormat(t *testing.T) {
	var buf bytes.Buffer
	levelVar := new(slog.LevelVar)
	logger := slog.New(newConsoleHandler(&buf, levelVar, false))

	logger = NewComponentLogger(logger, "metadata")
	logger.Info("resolved movie", slog.Int(FieldTmdbID, 603))

	out := buf.String()
	if !strings.Contains(out, "[metadata]") {
		t.Fatalf("expected component tag in output: %q", out)
	}
	if !strings.Contains(out, "resolved movie") {
		t.Fatalf("expected message in output: %q", out)
	}
	if !strings.Contains(out, "tmdb_id=603") {
		t.Fatalf("expected attr in output: %q", out)
	}
}

func TestConsoleHandlerRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	levelVar := new(slog.LevelVar)
	levelVar.Set(slog.LevelWarn)
	logger := slog.New(newConsoleHandler(&buf, levelVar, false))

	logger.Info("hidden")
	logger.Warn("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("info should be filtered: %q", out)
	}
	if !strings.Contains(out, "shown") {
		t.Fatalf("warn should pass: %q", out)
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := New(Options{Format: "xml"}); err == nil {
		t.Fatal("expected error for unknown format")
	}
}

func TestNewNopDiscards(t *testing.T) {
	logger := NewNop()
	if logger.Enabled(context.Background(), slog.LevelError) {
		t.Fatal("nop logger should report disabled")
	}
}

func TestErrorAttrToleratesNil(t *testing.T) {
	attr := Error(nil)
	if attr.Value.String() != "<nil>" {
		t.Fatalf("unexpected value: %v", attr.Value)
	}
}
