// Package observability builds the structured logger shared by the academy
// packages and the zap fields for game values.
package observability

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/cory-johannsen/academy/internal/config"
	"github.com/cory-johannsen/academy/internal/game/gametime"
)

// LoggerName prefixes every logger built here.
const LoggerName = "academy"

// NewLogger creates a structured logger from the given logging configuration.
//
// Precondition: cfg.Level must be one of "debug", "info", "warn", "error".
// Precondition: cfg.Format must be "json" or "console".
// Postcondition: Returns a configured zap.Logger or a non-nil error.
func NewLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("parsing log level %q: %w", cfg.Level, err)
	}

	var zapCfg zap.Config
	switch cfg.Format {
	case "json":
		zapCfg = zap.NewProductionConfig()
	case "console":
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	default:
		return nil, fmt.Errorf("unknown log format %q", cfg.Format)
	}

	zapCfg.Level = zap.NewAtomicLevelAt(level)
	zapCfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	// The CLI prints game output on stdout; logs go to stderr.
	zapCfg.OutputPaths = []string{"stderr"}

	logger, err := zapCfg.Build()
	if err != nil {
		return nil, fmt.Errorf("building logger: %w", err)
	}
	return logger.Named(LoggerName), nil
}

// Sync flushes logger. Sync errors on terminals are expected and dropped.
func Sync(logger *zap.Logger) {
	_ = logger.Sync()
}

type gameTimeMarshaler gametime.GameTime

func (t gameTimeMarshaler) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddString("day", string(t.Day))
	enc.AddInt("hour", t.Hour)
	enc.AddInt("minute", t.Minute)
	enc.AddInt("day_count", t.DayCount)
	return nil
}

// GameTime logs t as a nested object under "game_time".
func GameTime(t gametime.GameTime) zap.Field {
	return zap.Object("game_time", gameTimeMarshaler(t))
}
