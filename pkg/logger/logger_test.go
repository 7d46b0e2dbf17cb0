package logger

import (
	"os"
	"path/filepath"
	"testing"

	"skill_matrix_backend/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestLevel(t *testing.T) {
	cases := []struct {
		mode, level string
		want        zapcore.Level
	}{
		{"release", "", zap.InfoLevel},
		{"debug", "", zap.DebugLevel},
		{"debug", "warn", zap.WarnLevel},
		{"release", "ERROR", zap.ErrorLevel},
		{"release", "bogus", zap.InfoLevel},
	}
	for _, tc := range cases {
		cfg := &config.Config{}
		cfg.Server.Mode = tc.mode
		cfg.Log.Level = tc.level
		assert.Equal(t, tc.want, Level(cfg), "mode=%s level=%s", tc.mode, tc.level)
	}
}

func TestNew_WritesJSONFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	cfg := &config.Config{}
	cfg.Log.File = path
	cfg.Log.MaxSizeMB = 1

	l := New(cfg)
	l.Info("graded", zap.Int("percent", 80))
	_ = l.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"graded"`)
	assert.Contains(t, string(data), `"service":"skill-matrix"`)
	assert.Contains(t, string(data), `"percent":80`)
}
