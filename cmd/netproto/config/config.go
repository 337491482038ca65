// Package config holds the runtime configuration of the netproto command
package config

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/els0r/netproto/pkg/conf"
	"github.com/els0r/netproto/pkg/output"
	"github.com/els0r/netproto/plugins"
	"golang.org/x/time/rate"
)

// Config is the full configuration, assembled from configuration file, flags and
// environment
type Config struct {
	Logging   LogConfig       `mapstructure:"logging"`
	Directory DirectoryConfig `mapstructure:"directory"`
	Output    OutputConfig    `mapstructure:"output"`
	Server    ServerConfig    `mapstructure:"server"`
}

// LogConfig configures the logger
type LogConfig struct {
	Destination string `mapstructure:"destination"`
	Level       string `mapstructure:"level"`
	Encoding    string `mapstructure:"encoding"`
}

// DirectoryConfig selects the protocol directory backend
type DirectoryConfig struct {
	Backend string `mapstructure:"backend"`
	Source  string `mapstructure:"source"`
}

// OutputConfig configures how results are printed
type OutputConfig struct {
	Format string `mapstructure:"format"`
}

// ServerConfig configures the API server
type ServerConfig struct {
	Addr                string          `mapstructure:"addr"`
	ShutdownGracePeriod time.Duration   `mapstructure:"shutdowngraceperiod"`
	OpenAPI             string          `mapstructure:"openapi"`
	Profiling           bool            `mapstructure:"profiling"`
	Metrics             bool            `mapstructure:"metrics"`
	RateLimit           RateLimitConfig `mapstructure:"ratelimit"`
}

// RateLimitConfig configures the global request rate limit. A rate of zero disables it
type RateLimitConfig struct {
	Rate  float64 `mapstructure:"rate"`
	Burst int     `mapstructure:"burst"`
}

// Limit returns the rate as rate.Limit
func (c RateLimitConfig) Limit() rate.Limit {
	return rate.Limit(c.Rate)
}

var (
	// ErrorNoBackend denotes that no directory backend was configured
	ErrorNoBackend = errors.New("no directory backend provided")
	// ErrorInvalidRateLimit denotes a negative rate or burst
	ErrorInvalidRateLimit = errors.New("rate limit must not be negative")
	// ErrorInvalidGracePeriod denotes a negative shutdown grace period
	ErrorInvalidGracePeriod = errors.New("shutdown grace period must not be negative")
)

// New returns the default configuration
func New() *Config {
	return &Config{
		Logging: LogConfig{
			Level:    conf.DefaultLogLevel,
			Encoding: conf.DefaultLogEncoding,
		},
		Directory: DirectoryConfig{
			Backend: conf.DefaultDirectoryBackend,
		},
		Server: ServerConfig{
			Addr:                conf.DefaultServerAddr,
			ShutdownGracePeriod: conf.DefaultServerShutdownGracePeriod,
			RateLimit: RateLimitConfig{
				Burst: conf.DefaultServerRateLimitBurst,
			},
		},
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Directory.Backend == "" {
		return ErrorNoBackend
	}
	available := plugins.GetAvailableDirectoryPlugins()
	if !slices.Contains(available, c.Directory.Backend) {
		return fmt.Errorf("unknown directory backend %q (available: %v)", c.Directory.Backend, available)
	}

	if c.Output.Format != "" {
		if _, err := output.ParseFormat(c.Output.Format); err != nil {
			return err
		}
	}

	if c.Server.RateLimit.Rate < 0 || c.Server.RateLimit.Burst < 0 {
		return ErrorInvalidRateLimit
	}
	if c.Server.ShutdownGracePeriod < 0 {
		return ErrorInvalidGracePeriod
	}
	return nil
}
