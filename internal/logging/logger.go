// Package logging builds the process-wide zap logger.
package logging

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Config struct {
	IsDevelopment     bool
	Encoding          string
	Level             string
	DisableStacktrace bool
}

// ForEnv returns the logger settings for an APP_ENV value: console output in
// development, JSON everywhere else.
func ForEnv(appEnv, level string) Config {
	if appEnv == "development" || appEnv == "" {
		return Config{IsDevelopment: true, Encoding: "console", Level: level}
	}
	return Config{Encoding: "json", Level: level, DisableStacktrace: true}
}

func New(cfg Config) (*zap.Logger, error) {
	zc := zap.NewProductionConfig()
	if cfg.IsDevelopment {
		zc = zap.NewDevelopmentConfig()
	}
	if cfg.Encoding != "" {
		zc.Encoding = cfg.Encoding
	}
	if cfg.Level != "" {
		lvl, err := zapcore.ParseLevel(cfg.Level)
		if err != nil {
			return nil, fmt.Errorf("log level %q: %w", cfg.Level, err)
		}
		zc.Level = zap.NewAtomicLevelAt(lvl)
	}
	zc.DisableStacktrace = cfg.DisableStacktrace
	return zc.Build()
}
