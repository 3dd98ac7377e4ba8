package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNewLevels(t *testing.T) {
	tests := []struct {
		name    string
		level   string
		enabled zapcore.Level
		muted   zapcore.Level
	}{
		{"debug level", "debug", zapcore.DebugLevel, zapcore.DebugLevel - 1},
		{"warn level", "warn", zapcore.WarnLevel, zapcore.InfoLevel},
		{"default info", "", zapcore.InfoLevel, zapcore.DebugLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log, err := New("", tt.level)
			require.NoError(t, err)
			assert.True(t, log.Enabled(tt.enabled))
			assert.False(t, log.Enabled(tt.muted))
		})
	}
}

func TestNewWritesToFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "logs", "calendar.log")

	log, err := New(file, "info")
	require.NoError(t, err)

	log.Info("moved appointment id=%s", "a-1")
	_ = log.Close()

	data, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Contains(t, string(data), "moved appointment id=a-1")
}

func TestNop(t *testing.T) {
	log := NewNop()
	log.Info("ignored %d", 1)
	log.Warn("ignored")
	log.Error("ignored")
	assert.False(t, log.Enabled(zapcore.ErrorLevel))
}
