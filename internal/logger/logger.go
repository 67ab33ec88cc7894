package logger

import (
	"fmt"
	"os"

	"quiz-extensions/internal/config"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const serviceName = "quiz-extensions"

var log *zap.Logger

// Initialize builds the process-wide logger. Production writes sampled JSON
// lines; any other env writes colored console output.
func Initialize(cfg config.LoggerConfig) error {
	l, err := build(cfg, zapcore.Lock(os.Stdout))
	if err != nil {
		return err
	}
	log = l
	return nil
}

func build(cfg config.LoggerConfig, out zapcore.WriteSyncer) (*zap.Logger, error) {
	level := zapcore.InfoLevel
	if cfg.Level != "" {
		parsed, err := zapcore.ParseLevel(cfg.Level)
		if err != nil {
			return nil, fmt.Errorf("logger.level: %w", err)
		}
		level = parsed
	}

	var core zapcore.Core
	if cfg.Env == "production" {
		enc := zap.NewProductionEncoderConfig()
		enc.TimeKey = "timestamp"
		enc.EncodeTime = zapcore.ISO8601TimeEncoder
		enc.EncodeDuration = zapcore.MillisDurationEncoder
		core = zapcore.NewSamplerWithOptions(
			zapcore.NewCore(zapcore.NewJSONEncoder(enc), out, level),
			1e9, 100, 100,
		)
	} else {
		enc := zap.NewDevelopmentEncoderConfig()
		enc.EncodeLevel = zapcore.CapitalColorLevelEncoder
		enc.EncodeDuration = zapcore.StringDurationEncoder
		core = zapcore.NewCore(zapcore.NewConsoleEncoder(enc), out, level)
	}

	return zap.New(core,
		zap.AddCaller(),
		zap.AddStacktrace(zapcore.ErrorLevel),
		zap.Fields(zap.String("service", serviceName), zap.String("env", cfg.Env)),
	), nil
}

// Get returns the global logger, or a no-op logger before Initialize.
func Get() *zap.Logger {
	if log == nil {
		return zap.NewNop()
	}
	return log
}

func Sync() error {
	if log == nil {
		return nil
	}
	return log.Sync()
}
