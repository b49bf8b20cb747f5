package logging

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestNewLoggerWithWriter_Formats(t *testing.T) {
	tests := []struct {
		name   string
		format string
		want   string
	}{
		{name: "text", format: "text", want: "msg=hello"},
		{name: "json", format: "json", want: `"msg":"hello"`},
		{name: "json case-insensitive", format: "JSON", want: `"msg":"hello"`},
		{name: "unknown falls back to text", format: "xml", want: "msg=hello"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			NewLoggerWithWriter("info", tt.format, &buf).Info("hello")
			if !strings.Contains(buf.String(), tt.want) {
				t.Errorf("output %q does not contain %q", buf.String(), tt.want)
			}
		})
	}
}

func TestNewLoggerWithWriter_Level(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter("warn", "text", &buf)

	logger.Info("info-msg")
	if strings.Contains(buf.String(), "info-msg") {
		t.Error("info message should be filtered at warn level")
	}
	logger.Warn("warn-msg")
	if !strings.Contains(buf.String(), "warn-msg") {
		t.Error("warn message should be logged at warn level")
	}
}

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"DEBUG":   slog.LevelDebug,
		"info":    slog.LevelInfo,
		"warn":    slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"verbose": slog.LevelInfo,
	}

	for in, want := range tests {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}
