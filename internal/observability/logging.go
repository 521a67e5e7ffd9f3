// Package observability provides the structured application logger and the game event log.
package observability

import (
	"cmp"
	"fmt"
	"sort"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/cory-johannsen/delve/internal/config"
)

var formats = map[string]func() zap.Config{
	"json":    jsonConfig,
	"console": consoleConfig,
}

func jsonConfig() zap.Config {
	c := zap.NewProductionConfig()
	c.Sampling = nil
	return c
}

// consoleConfig keeps log lines short: warnings share the terminal with the
// game prompt.
func consoleConfig() zap.Config {
	c := zap.NewDevelopmentConfig()
	c.DisableStacktrace = true
	c.DisableCaller = true
	c.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	return c
}

// NewLogger creates the application logger described by cfg.
//
// Precondition: cfg.Level is a zap level name and cfg.Format is a key of formats.
// Postcondition: Returns a logger named "delve" writing to cfg.Output
// (stderr when empty), or a non-nil error.
func NewLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("parsing log level %q: %w", cfg.Level, err)
	}
	build, ok := formats[cfg.Format]
	if !ok {
		return nil, fmt.Errorf("unknown log format %q (want one of %v)", cfg.Format, formatNames())
	}

	zapCfg := build()
	out := cmp.Or(cfg.Output, "stderr")
	zapCfg.OutputPaths = []string{out}
	zapCfg.ErrorOutputPaths = []string{out}
	zapCfg.Level = zap.NewAtomicLevelAt(level)
	zapCfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	logger, err := zapCfg.Build()
	if err != nil {
		return nil, fmt.Errorf("building logger: %w", err)
	}
	return logger.Named("delve"), nil
}

func formatNames() []string {
	names := make([]string, 0, len(formats))
	for n := range formats {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
