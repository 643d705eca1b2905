package main

import (
	"cardstack/internal/config"

	"go.uber.org/zap"
)

// newLogger builds a JSON logger writing to lc.File. With no file the logger
// discards everything: the terminal belongs to the TUI.
func newLogger(lc config.LogConfig) (*zap.Logger, error) {
	if lc.File == "" {
		return zap.NewNop(), nil
	}
	level, err := lc.ParseLevel()
	if err != nil {
		return nil, err
	}
	zc := zap.NewProductionConfig()
	zc.Level = zap.NewAtomicLevelAt(level)
	zc.OutputPaths = []string{lc.File}
	zc.ErrorOutputPaths = []string{lc.File}
	zc.Sampling = nil
	return zc.Build()
}
