package client

import (
	"errors"
	"time"
)

// Config specifies the configurable parts of the client
type Config struct {
	Addr string `json:"addr" yaml:"addr"`
	Key  string `json:"key,omitempty" yaml:"key,omitempty"`

	RequestTimeout time.Duration `json:"timeout,omitempty" yaml:"timeout,omitempty"`
	NoRetry        bool          `json:"no_retry,omitempty" yaml:"no_retry,omitempty"`

	Log bool `json:"log" yaml:"log"`
}

// ErrorEmptyAddress denotes that a config without endpoint address has been provided
var ErrorEmptyAddress = errors.New("no endpoint address (host:port or unix:/path) provided")

// Validate validates the configuration
func (cfg *Config) Validate() error {
	if cfg.Addr == "" {
		return ErrorEmptyAddress
	}
	return nil
}
