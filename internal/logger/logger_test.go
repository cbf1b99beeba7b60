package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want Level
	}{
		{"debug", LevelDebug},
		{"DEBUG", LevelDebug},
		{"info", LevelInfo},
		{"warn", LevelWarn},
		{"warning", LevelWarn},
		{"error", LevelError},
		{"", LevelInfo},
		{"nonsense", LevelInfo},
		{"  Error ", LevelError},
	}
	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestLevelString(t *testing.T) {
	tests := []struct {
		level Level
		want  string
	}{
		{LevelDebug, "DEBUG"},
		{LevelInfo, "INFO"},
		{LevelWarn, "WARN"},
		{LevelError, "ERROR"},
		{Level(99), "UNKNOWN"},
	}
	for _, tt := range tests {
		if got := tt.level.String(); got != tt.want {
			t.Errorf("Level(%d).String() = %q, want %q", tt.level, got, tt.want)
		}
	}
}

func TestFileLoggerWritesEntries(t *testing.T) {
	dir := t.TempDir()
	logPath := filepath.Join(dir, "test.log")

	l, err := NewFileLogger(&Config{
		LogFilePath: logPath,
		MaxFileSize: 1024 * 1024,
		MaxBackups:  1,
		Level:       LevelDebug,
	})
	if err != nil {
		t.Fatalf("NewFileLogger failed: %v", err)
	}

	l.Info("extraction complete", Int("elements", 42), String("file", "paper.pdf"))
	l.Debug("detail message")
	if err := l.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	content := string(data)

	if !strings.Contains(content, "[INFO] extraction complete") {
		t.Errorf("missing info entry in log: %q", content)
	}
	if !strings.Contains(content, "elements=42") {
		t.Errorf("missing field in log: %q", content)
	}
	if !strings.Contains(content, "[DEBUG] detail message") {
		t.Errorf("missing debug entry in log: %q", content)
	}
}

func TestFileLoggerLevelFilter(t *testing.T) {
	dir := t.TempDir()
	logPath := filepath.Join(dir, "test.log")

	l, err := NewFileLogger(&Config{
		LogFilePath: logPath,
		MaxFileSize: 1024 * 1024,
		MaxBackups:  1,
		Level:       LevelWarn,
	})
	if err != nil {
		t.Fatalf("NewFileLogger failed: %v", err)
	}

	l.Debug("should be filtered")
	l.Info("should also be filtered")
	l.Warn("kept")
	l.Close()

	data, _ := os.ReadFile(logPath)
	content := string(data)

	if strings.Contains(content, "filtered") {
		t.Errorf("filtered entries were written: %q", content)
	}
	if !strings.Contains(content, "[WARN] kept") {
		t.Errorf("warn entry missing: %q", content)
	}
}

func TestFileLoggerRotation(t *testing.T) {
	dir := t.TempDir()
	logPath := filepath.Join(dir, "rotate.log")

	l, err := NewFileLogger(&Config{
		LogFilePath: logPath,
		MaxFileSize: 200,
		MaxBackups:  2,
		Level:       LevelInfo,
	})
	if err != nil {
		t.Fatalf("NewFileLogger failed: %v", err)
	}

	for i := 0; i < 20; i++ {
		l.Info("a fairly long log line to force a rotation to happen", Int("i", i))
	}
	l.Close()

	if _, err := os.Stat(logPath + ".1"); err != nil {
		t.Errorf("expected backup file after rotation: %v", err)
	}
}

func TestGlobalLoggerNoop(t *testing.T) {
	SetGlobalLogger(nil)
	// Must not panic when uninitialized.
	Debug("noop")
	Info("noop")
	Warn("noop")
	Error("noop", os.ErrNotExist)
}

func TestErrField(t *testing.T) {
	f := Err(nil)
	if f.Key != "error" || f.Value != nil {
		t.Errorf("Err(nil) = %+v", f)
	}
	f = Err(os.ErrPermission)
	if f.Value != os.ErrPermission.Error() {
		t.Errorf("Err value = %v", f.Value)
	}
}
