package logger

import (
	"bytes"
	"encoding/json"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestConfigs(t *testing.T) {
	t.Run("default is console on stdout", func(t *testing.T) {
		cfg := DefaultConfig()

		assert.Equal(t, "info", cfg.Level)
		assert.Equal(t, "console", cfg.Format)
		assert.Equal(t, "stdout", cfg.Output)
		assert.NotEmpty(t, cfg.TimeFormat)
	})

	t.Run("production is json", func(t *testing.T) {
		assert.Equal(t, "json", ProductionConfig().Format)
	})
}

func TestNew(t *testing.T) {
	t.Run("builds from default and production configs", func(t *testing.T) {
		for _, cfg := range []*Config{DefaultConfig(), ProductionConfig()} {
			logger, err := New(cfg)
			require.NoError(t, err)
			assert.NotNil(t, logger)
		}
	})

	t.Run("empty time format falls back to the default layout", func(t *testing.T) {
		logger, err := New(&Config{Level: "debug", Format: "json", Output: "stdout"})

		require.NoError(t, err)
		assert.NotNil(t, logger)
	})
}

func TestNewForEnvironment(t *testing.T) {
	for _, env := range []string{"development", "production", "staging"} {
		t.Run(env, func(t *testing.T) {
			logger, err := NewForEnvironment(env)

			require.NoError(t, err)
			assert.NotNil(t, logger)
		})
	}
}

func TestParseLevel(t *testing.T) {
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
			assert.Equal(t, tt.expected, parseLevel(tt.level))
		})
	}
}

func TestCreateWriter(t *testing.T) {
	t.Run("standard streams", func(t *testing.T) {
		for _, output := range []string{"stdout", "stderr", "STDOUT"} {
			assert.NotNil(t, createWriter(output))
		}
	})

	t.Run("file output", func(t *testing.T) {
		tmpFile, err := os.CreateTemp("", "test-log-*.log")
		require.NoError(t, err)
		defer os.Remove(tmpFile.Name())
		tmpFile.Close()

		assert.NotNil(t, createWriter(tmpFile.Name()))
	})
}

func TestJSONOutput(t *testing.T) {
	var buf bytes.Buffer
	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(zapcore.EncoderConfig{
			LevelKey:    "level",
			MessageKey:  "msg",
			EncodeLevel: zapcore.LowercaseLevelEncoder,
		}),
		zapcore.AddSync(&buf),
		zapcore.InfoLevel,
	)
	logger := zap.New(core)

	logger.Debug("suppressed")
	logger.Info("batch ingested", zap.Int("records", 3))

	var output map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &output))
	assert.Equal(t, "batch ingested", output["msg"])
	assert.Equal(t, "info", output["level"])
	assert.Equal(t, float64(3), output["records"])
}
