package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap/zapcore"

	"github.com/san-kum/orrery/internal/config"
)

func TestNewLevels(t *testing.T) {
	tests := []struct {
		level string
		want  zapcore.Level
	}{
		{"debug", zapcore.DebugLevel},
		{"warn", zapcore.WarnLevel},
		{"", zapcore.InfoLevel},
		{"nonsense", zapcore.InfoLevel},
	}

	for _, tt := range tests {
		log, err := New(config.LoggingConfig{Level: tt.level, Format: "json", File: filepath.Join(t.TempDir(), "x.log")})
		if err != nil {
			t.Fatalf("level %q: %v", tt.level, err)
		}
		if !log.Core().Enabled(tt.want) {
			t.Errorf("level %q: expected %s enabled", tt.level, tt.want)
		}
		if tt.want > zapcore.DebugLevel && log.Core().Enabled(tt.want-1) {
			t.Errorf("level %q: expected %s disabled", tt.level, tt.want-1)
		}
	}
}

func TestNewWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "orrery.log")
	log, err := New(config.LoggingConfig{Level: "info", Format: "console", File: path})
	if err != nil {
		t.Fatal(err)
	}
	log.Info("session started")
	_ = log.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "session started") {
		t.Errorf("expected message in log file, got %q", data)
	}
}

func TestOrNop(t *testing.T) {
	if OrNop(nil) == nil {
		t.Error("expected a no-op logger")
	}
}
