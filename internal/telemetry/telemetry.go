// Package telemetry is a thin encapsulation of go.uber.org/zap, following
// korthochain-korthochain/pkg/logger. It backs the CLI driver's own
// messages and an optional parser trace logger a caller can attach for
// development diagnostics; the parser's own control flow never logs
// through this package directly, it only accepts an optional *zap.Logger to call
// at a handful of well-known tracing points.
package telemetry

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Config mirrors korthochain's logger.Config: rotation parameters plus a
// minimum level, sufficient for a CLI tool that never needs more than one
// log file.
type Config struct {
	Level      string
	FileName   string
	MaxSize    int
	MaxAge     int
	MaxBackups int
	Compress   bool
}

// DefaultConfig returns sane defaults for a CLI invocation: info level,
// no file rotation target configured (stdout only) unless FileName is set.
func DefaultConfig() *Config {
	return &Config{
		Level:      "info",
		MaxSize:    50,
		MaxAge:     30,
		MaxBackups: 5,
		Compress:   false,
	}
}

// New builds a *zap.Logger from cfg. When cfg.FileName is empty the logger
// writes to stdout via zap's production encoder; otherwise it rotates
// through lumberjack the same way korthochain's logger does.
func New(cfg *Config) (*zap.Logger, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	level := zapcore.InfoLevel
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		return nil, err
	}

	encoder := newEncoder()
	writer := newWriter(cfg)
	core := zapcore.NewCore(encoder, writer, level)
	return zap.New(core, zap.AddCaller()), nil
}

func newEncoder() zapcore.Encoder {
	encConfig := zap.NewProductionEncoderConfig()
	encConfig.TimeKey = "time"
	encConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encConfig.EncodeDuration = zapcore.SecondsDurationEncoder
	encConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	encConfig.EncodeCaller = zapcore.ShortCallerEncoder
	return zapcore.NewConsoleEncoder(encConfig)
}

func newWriter(cfg *Config) zapcore.WriteSyncer {
	if cfg.FileName == "" {
		return zapcore.Lock(os.Stdout)
	}
	rotator := &lumberjack.Logger{
		Filename:   cfg.FileName,
		MaxSize:    cfg.MaxSize,
		MaxAge:     cfg.MaxAge,
		MaxBackups: cfg.MaxBackups,
		Compress:   cfg.Compress,
	}
	return zapcore.AddSync(rotator)
}
