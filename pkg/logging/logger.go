// Package logging provides logger construction and log sanitization helpers.
package logging

import (
	"fmt"

	"go.uber.org/zap"
)

// NewLogger builds the process-wide zap logger.
// Local and test environments get human-readable console output at debug
// level; everything else gets production JSON at info level.
func NewLogger(env string) (*zap.Logger, error) {
	var cfg zap.Config
	switch env {
	case "local", "test":
		cfg = zap.NewDevelopmentConfig()
	default:
		cfg = zap.NewProductionConfig()
	}

	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return logger, nil
}
