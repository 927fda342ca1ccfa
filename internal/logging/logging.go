// Package logging builds the application logger. The TUI owns the terminal,
// so logs go to a JSON file under the XDG state directory.
package logging

import (
	"fmt"
	"path/filepath"

	"github.com/adrg/xdg"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	appName     = "storyreel"
	logFileName = "storyreel.log"
)

// DefaultPath returns the log file path, creating its directory if needed.
func DefaultPath() (string, error) {
	return xdg.StateFile(filepath.Join(appName, logFileName))
}

// ParseLevel converts a config level name. Unknown names map to info.
func ParseLevel(name string) zapcore.Level {
	lvl, err := zapcore.ParseLevel(name)
	if err != nil {
		return zapcore.InfoLevel
	}
	return lvl
}

// New creates a production JSON logger writing to path at the given level.
func New(path string, level zapcore.Level) (*zap.Logger, error) {
	config := zap.NewProductionConfig()
	config.Level = zap.NewAtomicLevelAt(level)
	config.OutputPaths = []string{path}
	config.ErrorOutputPaths = []string{path}
	config.Sampling = nil

	logger, err := config.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return logger.With(zap.String("app", appName)), nil
}

// Open creates the logger at the default path. When the log file cannot be
// opened it returns a no-op logger along with the error.
func Open(level zapcore.Level) (*zap.Logger, error) {
	path, err := DefaultPath()
	if err != nil {
		return zap.NewNop(), err
	}
	logger, err := New(path, level)
	if err != nil {
		return zap.NewNop(), err
	}
	return logger, nil
}
