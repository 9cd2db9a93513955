package log

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is a no-op until EnsureLogger or Configure runs.
var Logger = zap.NewNop()

func EnsureLogger() {
	Logger, _ = zap.NewDevelopment()
	defer Logger.Sync()
}

// Configure replaces Logger with a development or production logger at the given level.
func Configure(development bool, level string) error {
	lvl := zapcore.InfoLevel
	if level != "" {
		if err := lvl.UnmarshalText([]byte(level)); err != nil {
			return err
		}
	}

	cfg := zap.NewProductionConfig()
	if development {
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)

	l, err := cfg.Build()
	if err != nil {
		return err
	}
	Logger = l

	return nil
}
