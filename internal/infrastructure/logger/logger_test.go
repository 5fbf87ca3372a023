package logger

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "info", cfg.Level)
	assert.Equal(t, "console", cfg.Format)
	assert.Equal(t, "stdout", cfg.Output)
}

func TestNew(t *testing.T) {
	tests := []struct {
		name string
		cfg  *Config
	}{
		{name: "default config", cfg: DefaultConfig()},
		{name: "debug console", cfg: &Config{Level: "debug", Format: "console", Output: "stdout"}},
		{name: "json to stderr", cfg: &Config{Level: "info", Format: "json", Output: "stderr"}},
		{name: "custom time format", cfg: &Config{Level: "warn", Format: "json", Output: "stdout", TimeFormat: "15:04:05"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log, err := New(tt.cfg)
			require.NoError(t, err)
			assert.NotNil(t, log)
		})
	}
}

func TestLevelFromString(t *testing.T) {
	tests := []struct {
		level    string
		expected zapcore.Level
	}{
		{"debug", zapcore.DebugLevel},
		{"DEBUG", zapcore.DebugLevel},
		{"info", zapcore.InfoLevel},
		{"warn", zapcore.WarnLevel},
		{"warning", zapcore.WarnLevel},
		{"error", zapcore.ErrorLevel},
		{"fatal", zapcore.FatalLevel},
		{"unknown", zapcore.InfoLevel},
		{"", zapcore.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			assert.Equal(t, tt.expected, levelFromString(tt.level))
		})
	}
}

func TestOpenSinkFallsBackToStdout(t *testing.T) {
	// Unwritable path must not fail logger construction
	sink := openSink(filepath.Join(string(os.PathSeparator), "no", "such", "dir", "app.log"))
	assert.NotNil(t, sink)
}

func TestOpenSinkFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")

	sink := openSink(path)
	require.NotNil(t, sink)

	_, err := sink.Write([]byte("hello\n"))
	require.NoError(t, err)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "hello")
}

func TestJSONOutputShape(t *testing.T) {
	var buf bytes.Buffer

	core := zapcore.NewCore(
		newEncoder(&Config{Format: "json"}),
		zapcore.AddSync(&buf),
		zapcore.InfoLevel,
	)
	log := zap.New(core)

	log.Info("product created", zap.String("product_id", "abc"))

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "product created", entry["msg"])
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "abc", entry["product_id"])
	assert.Contains(t, entry, "time")
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer

	core := zapcore.NewCore(
		newEncoder(&Config{Format: "json"}),
		zapcore.AddSync(&buf),
		levelFromString("warn"),
	)
	log := zap.New(core)

	log.Info("quiet")
	assert.Empty(t, buf.String())

	log.Warn("loud")
	assert.Contains(t, buf.String(), "loud")
}

func TestSync(t *testing.T) {
	log, err := New(DefaultConfig())
	require.NoError(t, err)

	// stdout may reject Sync on some platforms; it must not panic
	_ = Sync(log)
}
