// Package config reads the command line tool settings from the environment.
package config

import (
	"fmt"
	"runtime"
	"time"

	"github.com/TheServat/bip38-crack/bip38"
	"github.com/kelseyhightower/envconfig"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Prefix of every environment variable, e.g. BIP38_NETWORK.
const Prefix = "bip38"

// Config holds defaults that command line flags may override.
type Config struct {
	Network          string        `envconfig:"NETWORK" default:"bitcoin"`
	Workers          int           `envconfig:"WORKERS" default:"0"`
	LogLevel         string        `envconfig:"LOG_LEVEL" default:"info"`
	LogTimestamps    bool          `envconfig:"LOG_TIMESTAMPS" default:"true"`
	Progress         bool          `envconfig:"PROGRESS" default:"true"`
	ProgressInterval time.Duration `envconfig:"PROGRESS_INTERVAL" default:"5s"`
}

// Load processes BIP38_* environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := envconfig.Process(Prefix, cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}
	if cfg.Workers < 0 {
		return nil, fmt.Errorf("invalid %s_WORKERS: %d", "BIP38", cfg.Workers)
	}
	return cfg, nil
}

// WorkerCount returns Workers or the number of CPUs when unset.
func (c *Config) WorkerCount() int {
	if c.Workers > 0 {
		return c.Workers
	}
	return runtime.NumCPU()
}

// BIP38Network resolves the configured network name.
func (c *Config) BIP38Network() (bip38.Network, error) {
	return bip38.NetworkByName(c.Network)
}

// NewLogger builds a production zap logger writing to stderr.
func (c *Config) NewLogger() (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(c.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid log level: %w", err)
	}
	zc := zap.NewProductionConfig()
	zc.Level = zap.NewAtomicLevelAt(lvl)
	zc.Encoding = "console"
	zc.OutputPaths = []string{"stderr"}
	if c.LogTimestamps {
		zc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	} else {
		zc.EncoderConfig.EncodeTime = func(_ time.Time, _ zapcore.PrimitiveArrayEncoder) {}
	}
	return zc.Build(zap.AddStacktrace(zap.NewAtomicLevelAt(zap.FatalLevel)))
}
