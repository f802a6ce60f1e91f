// Package logger builds the zap loggers used across the service and the
// adapters that feed gin and gorm output through them.
package logger

import (
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const defaultTimeFormat = "2006-01-02T15:04:05.000Z07:00"

// Config holds logger configuration
type Config struct {
	Level      string // debug, info, warn, error, fatal
	Format     string // json or console
	Output     string // stdout, stderr, or a file path
	TimeFormat string // timestamp layout, defaults to ISO8601 with millis
}

// DefaultConfig is the development setup: colored console output at info
func DefaultConfig() *Config {
	return &Config{
		Level:  "info",
		Format: "console",
		Output: "stdout",
	}
}

// New builds a zap logger from the configuration. The caller owns the
// returned logger and should flush it with Sync on shutdown.
func New(cfg *Config) (*zap.Logger, error) {
	sink, err := openSink(cfg.Output)
	if err != nil {
		return nil, fmt.Errorf("failed to open log output %q: %w", cfg.Output, err)
	}

	core := zapcore.NewCore(buildEncoder(cfg), sink, levelFor(cfg.Level))
	return zap.New(core,
		zap.AddCaller(),
		zap.AddStacktrace(zapcore.ErrorLevel),
	), nil
}

// Sync flushes any buffered entries
func Sync(logger *zap.Logger) error {
	return logger.Sync()
}

func levelFor(level string) zapcore.Level {
	switch strings.ToLower(level) {
	case "debug":
		return zapcore.DebugLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	case "fatal":
		return zapcore.FatalLevel
	default:
		return zapcore.InfoLevel
	}
}

func buildEncoder(cfg *Config) zapcore.Encoder {
	layout := cfg.TimeFormat
	if layout == "" {
		layout = defaultTimeFormat
	}

	enc := zap.NewProductionEncoderConfig()
	enc.TimeKey = "time"
	enc.MessageKey = "msg"
	enc.EncodeTime = zapcore.TimeEncoderOfLayout(layout)
	enc.EncodeDuration = zapcore.MillisDurationEncoder

	if strings.EqualFold(cfg.Format, "console") {
		enc.EncodeLevel = zapcore.CapitalColorLevelEncoder
		return zapcore.NewConsoleEncoder(enc)
	}
	return zapcore.NewJSONEncoder(enc)
}

func openSink(output string) (zapcore.WriteSyncer, error) {
	switch strings.ToLower(output) {
	case "", "stdout":
		return zapcore.AddSync(os.Stdout), nil
	case "stderr":
		return zapcore.AddSync(os.Stderr), nil
	default:
		file, err := os.OpenFile(output, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, err
		}
		return zapcore.AddSync(file), nil
	}
}
