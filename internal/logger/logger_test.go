package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type logRecord struct {
	Level   string `json:"level"`
	Msg     string `json:"msg"`
	App     string `json:"app"`
	Version string `json:"version"`
}

func TestLogger(t *testing.T) {
	var buf bytes.Buffer

	// Use JSON handler for easier parsing in tests
	handler := slog.NewJSONHandler(&buf, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	})
	testLogger := slog.New(handler)

	originalLogger := Logger
	Logger = testLogger
	defer func() { Logger = originalLogger }()

	tests := []struct {
		name  string
		fn    func(msg string, args ...any)
		level string
		msg   string
	}{
		{
			name:  "Info",
			fn:    Info,
			level: "INFO",
			msg:   "info message",
		},
		{
			name:  "Error",
			fn:    Error,
			level: "ERROR",
			msg:   "error message",
		},
		{
			name:  "Warn",
			fn:    Warn,
			level: "WARN",
			msg:   "warn message",
		},
		{
			name:  "Debug",
			fn:    Debug,
			level: "DEBUG",
			msg:   "debug message",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf.Reset()
			tt.fn(tt.msg)

			var rec logRecord
			if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
				t.Fatalf("failed to unmarshal log output: %v", err)
			}

			if rec.Msg != tt.msg {
				t.Errorf("expected msg %q, got %q", tt.msg, rec.Msg)
			}
			if rec.Level != tt.level {
				t.Errorf("expected level %q, got %q", tt.level, rec.Level)
			}
		})
	}
}

func TestDefaultLogger(t *testing.T) {
	if Logger == nil {
		t.Error("Logger should be initialized")
	}
}

func TestSetup_JSON(t *testing.T) {
	var buf bytes.Buffer
	originalLogger := Logger
	defer func() {
		Logger = originalLogger
		slog.SetDefault(originalLogger)
	}()

	if err := Setup(Options{Output: &buf, Level: "warn", Version: "v1.2.3"}); err != nil {
		t.Fatalf("Setup() failed: %v", err)
	}

	Info("dropped")
	if buf.Len() != 0 {
		t.Errorf("info should be filtered at warn level, got %q", buf.String())
	}

	Warn("kept")
	var rec logRecord
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("failed to unmarshal log output: %v", err)
	}
	if rec.Msg != "kept" || rec.App != "bsd" || rec.Version != "v1.2.3" {
		t.Errorf("unexpected record %+v", rec)
	}
}

func TestSetup_Dev(t *testing.T) {
	var buf bytes.Buffer
	originalLogger := Logger
	defer func() {
		Logger = originalLogger
		slog.SetDefault(originalLogger)
	}()

	if err := Setup(Options{Output: &buf, Level: "debug", Dev: true, NoColor: true}); err != nil {
		t.Fatalf("Setup() failed: %v", err)
	}

	Debug("dev message", "rows", 3)
	out := buf.String()
	if !strings.Contains(out, "dev message") || !strings.Contains(out, "rows=3") {
		t.Errorf("unexpected dev output %q", out)
	}
	if strings.Contains(out, "\x1b[") {
		t.Errorf("NoColor output should not contain escape codes: %q", out)
	}
}

func TestSetup_InvalidLevel(t *testing.T) {
	if err := Setup(Options{Level: "loud"}); err == nil {
		t.Error("Setup() should reject unknown levels")
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"", slog.LevelInfo},
		{"INFO", slog.LevelInfo},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		if err != nil {
			t.Errorf("ParseLevel(%q) error: %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestOpenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "bsd.log")

	f, err := OpenFile(path)
	if err != nil {
		t.Fatalf("OpenFile() failed: %v", err)
	}
	if _, err := f.WriteString("line\n"); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	_ = f.Close()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if string(data) != "line\n" {
		t.Errorf("file content = %q", data)
	}
}

func TestHelpersReportCallerSource(t *testing.T) {
	var buf bytes.Buffer

	originalLogger := Logger
	defer func() { Logger = originalLogger }()

	if err := Setup(Options{Output: &buf, Level: "debug", Dev: true, NoColor: true}); err != nil {
		t.Fatalf("Setup failed: %v", err)
	}
	defer slog.SetDefault(originalLogger)

	Info("dataset loaded", "rows", 3)

	out := buf.String()
	if !strings.Contains(out, "logger_test.go:") {
		t.Errorf("source should point at the caller, got %q", out)
	}
	if strings.Contains(out, "logger.go:") {
		t.Errorf("source should not point at the logger package, got %q", out)
	}
}
