// Package logx is the core's stderr log channel (spec §7
// "Observability"): severity-tagged messages only, never a write to
// stdout.
package logx

import (
	"sync"

	"go.uber.org/zap"
)

var (
	mu      sync.RWMutex
	current = New("info")
)

// New builds a production console logger writing to stderr at the given
// level ("debug", "info", "warn", "error"). An unrecognized level falls
// back to "info".
func New(level string) *zap.SugaredLogger {
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		lvl = zap.NewAtomicLevelAt(zap.InfoLevel)
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = lvl
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	cfg.Encoding = "console"
	cfg.EncoderConfig.TimeKey = "ts"

	logger, err := cfg.Build()
	if err != nil {
		// Build only fails on a malformed config; the config above is
		// static, so fall back to a no-op logger rather than panic.
		return zap.NewNop().Sugar()
	}
	return logger.Sugar()
}

// L returns the package-level logger. Safe for concurrent use.
func L() *zap.SugaredLogger {
	mu.RLock()
	defer mu.RUnlock()
	return current
}

// SetLevel replaces the package-level logger with one at the given level.
// Used by cmd/llmcost to apply its --verbose/-v flag.
func SetLevel(level string) {
	mu.Lock()
	defer mu.Unlock()
	current = New(level)
}
