// Package logging builds the process logger from config.
package logging

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"solrock/internal/config"
)

// New returns a JSON production logger writing to cfg.LogDestination(), or
// a no-op logger when logging is off. The terminal belongs to the menu, so
// file output is the default.
func New(cfg config.Config) (*zap.Logger, error) {
	dest := cfg.LogDestination()
	if dest == "" {
		return zap.NewNop(), nil
	}

	level, err := zap.ParseAtomicLevel(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}

	if dest != "stderr" {
		if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
			return nil, fmt.Errorf("log dir: %w", err)
		}
	}

	zc := zap.NewProductionConfig()
	zc.Level = level
	zc.OutputPaths = []string{dest}
	zc.ErrorOutputPaths = []string{"stderr"}
	zc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	zc.InitialFields = map[string]any{"app": "solrock", "storage": cfg.Storage}

	log, err := zc.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return log, nil
}
