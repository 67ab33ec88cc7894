package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"quiz-extensions/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestGetBeforeInitialize(t *testing.T) {
	log = nil
	assert.NotNil(t, Get())
	assert.NoError(t, Sync())
}

func TestInitializeLevels(t *testing.T) {
	tests := []struct {
		name  string
		cfg   config.LoggerConfig
		level zapcore.Level
	}{
		{name: "default info", cfg: config.LoggerConfig{}, level: zapcore.InfoLevel},
		{name: "debug", cfg: config.LoggerConfig{Level: "debug"}, level: zapcore.DebugLevel},
		{name: "warn production", cfg: config.LoggerConfig{Level: "warn", Env: "production"}, level: zapcore.WarnLevel},
		{name: "error production", cfg: config.LoggerConfig{Level: "error", Env: "production"}, level: zapcore.ErrorLevel},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.NoError(t, Initialize(tt.cfg))
			assert.True(t, Get().Core().Enabled(tt.level))
			assert.False(t, Get().Core().Enabled(tt.level-1))
		})
	}
	log = nil
}

func TestInitializeUnknownLevel(t *testing.T) {
	log = nil
	err := Initialize(config.LoggerConfig{Level: "verbose"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "logger.level")
	assert.Nil(t, log)
}

func TestBuildProductionWritesJSON(t *testing.T) {
	var buf bytes.Buffer
	l, err := build(config.LoggerConfig{Level: "info", Env: "production"}, zapcore.AddSync(&buf))
	require.NoError(t, err)

	l.Debug("hidden")
	l.Info("session created")
	require.NoError(t, l.Sync())

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "session created", entry["msg"])
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, serviceName, entry["service"])
	assert.Equal(t, "production", entry["env"])
	assert.Contains(t, entry, "timestamp")
}
