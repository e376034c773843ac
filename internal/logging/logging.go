// Package logging builds the zap logger shared by the CLI and the engine.
package logging

import (
	"fmt"

	"github.com/Rana718/synthgen/internal/config"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func New(cfg config.Logging) (*zap.SugaredLogger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
	}

	var z zap.Config
	if cfg.Development {
		z = zap.NewDevelopmentConfig()
		z.OutputPaths = []string{"stdout"}
	} else {
		z = zap.NewProductionConfig()
	}
	z.Level = zap.NewAtomicLevelAt(level)

	logger, err := z.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return logger.Sugar(), nil
}
