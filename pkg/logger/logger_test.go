package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// observe installs an observer-backed logger and restores the previous one on cleanup
func observe(t *testing.T, level zapcore.Level) *observer.ObservedLogs {
	t.Helper()
	core, recorded := observer.New(level)
	prev := SetLogger(zap.New(core))
	t.Cleanup(func() { SetLogger(prev) })
	return recorded
}

// TestDebugLogging tests the Debug function
func TestDebugLogging(t *testing.T) {
	recorded := observe(t, zapcore.DebugLevel)

	Debug("entry evicted", "key", "db1.users")

	logs := recorded.All()
	if len(logs) != 1 {
		t.Fatalf("Expected 1 log entry, got %d", len(logs))
	}
	entry := logs[0]
	if entry.Level != zapcore.DebugLevel {
		t.Errorf("Expected debug level, got %v", entry.Level)
	}
	if entry.Message != "entry evicted" {
		t.Errorf("Expected 'entry evicted', got '%s'", entry.Message)
	}
	if len(entry.Context) != 1 || entry.Context[0].Key != "key" || entry.Context[0].String != "db1.users" {
		t.Errorf("Expected context field 'key'='db1.users', got %v", entry.Context)
	}
}

// TestWarnAndErrorLogging tests the Warn and Error functions
func TestWarnAndErrorLogging(t *testing.T) {
	recorded := observe(t, zapcore.WarnLevel)

	Warn("statement close failed")
	Error("shutdown failed", "error", "boom")

	logs := recorded.All()
	if len(logs) != 2 {
		t.Fatalf("Expected 2 log entries, got %d", len(logs))
	}
	if logs[0].Level != zapcore.WarnLevel {
		t.Errorf("Expected warn level, got %v", logs[0].Level)
	}
	if logs[1].Level != zapcore.ErrorLevel {
		t.Errorf("Expected error level, got %v", logs[1].Level)
	}
}

// TestWithMethodChaining tests child loggers carry their fields
func TestWithMethodChaining(t *testing.T) {
	recorded := observe(t, zapcore.InfoLevel)

	child := With("component", "stmtcache").With("schema", "db1")
	child.Info("schema invalidated")

	logs := recorded.All()
	if len(logs) != 1 {
		t.Fatalf("Expected 1 log entry, got %d", len(logs))
	}

	fields := make(map[string]string)
	for _, field := range logs[0].Context {
		if field.Type == zapcore.StringType {
			fields[field.Key] = field.String
		}
	}
	if fields["component"] != "stmtcache" {
		t.Errorf("Expected component field to be 'stmtcache', got '%v'", fields["component"])
	}
	if fields["schema"] != "db1" {
		t.Errorf("Expected schema field to be 'db1', got '%v'", fields["schema"])
	}
}

// TestLogLevels tests that level filtering works
func TestLogLevels(t *testing.T) {
	tests := []struct {
		name      string
		level     zapcore.Level
		logFunc   func(string, ...interface{})
		shouldLog bool
	}{
		{"Debug with Info level", zapcore.InfoLevel, Debug, false},
		{"Info with Info level", zapcore.InfoLevel, Info, true},
		{"Info with Warn level", zapcore.WarnLevel, Info, false},
		{"Error with Warn level", zapcore.WarnLevel, Error, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorded := observe(t, tt.level)

			tt.logFunc("test message")

			got := recorded.Len() > 0
			if got != tt.shouldLog {
				t.Errorf("Expected logged=%v, got %v", tt.shouldLog, got)
			}
		})
	}
}

// TestParseLevel tests mapping of config level names
func TestParseLevel(t *testing.T) {
	cases := map[string]zapcore.Level{
		"debug":   zapcore.DebugLevel,
		"INFO":    zapcore.InfoLevel,
		"Warn":    zapcore.WarnLevel,
		"error":   zapcore.ErrorLevel,
		"fatal":   zapcore.FatalLevel,
		"verbose": zapcore.InfoLevel,
		"":        zapcore.InfoLevel,
	}
	for in, want := range cases {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

// TestInitLoggerFile tests JSON output to a log file
func TestInitLoggerFile(t *testing.T) {
	prev := defaultLogger
	defer func() { defaultLogger = prev }()

	logFile := filepath.Join(t.TempDir(), "lrucache.log")
	if err := InitLogger(DebugLevel, logFile); err != nil {
		t.Fatalf("InitLogger failed: %v", err)
	}

	Info("cache cleared", "removed", 3)
	_ = Sync()

	data, err := os.ReadFile(logFile)
	if err != nil {
		t.Fatalf("Failed to read log file: %v", err)
	}
	if !strings.Contains(string(data), `"msg":"cache cleared"`) {
		t.Errorf("Expected JSON log line, got %s", data)
	}
}

// TestInitLoggerInvalidPath tests that an unwritable path is reported
func TestInitLoggerInvalidPath(t *testing.T) {
	prev := defaultLogger
	defer func() { defaultLogger = prev }()

	err := InitLogger(InfoLevel, filepath.Join(t.TempDir(), "missing", "dir", "x.log"))
	if err == nil {
		t.Fatal("Expected error for unwritable log path")
	}
	if defaultLogger != prev {
		t.Error("Logger should be unchanged after a failed init")
	}
}

// TestDefaultLoggerInitialization tests that the default logger is usable
func TestDefaultLoggerInitialization(t *testing.T) {
	if defaultLogger == nil {
		t.Error("Default logger should not be nil after package initialization")
	}
}
