// Package client queries a remote netproto server. Client implements both
// protocols.Directory and protocols.Enumerator, so it can stand in for any local
// protocol database
package client

import (
	"io"
	"os"
	"path/filepath"

	"github.com/els0r/netproto/pkg/api/client"
	npapi "github.com/els0r/netproto/pkg/api/netproto"
	"gopkg.in/yaml.v3"
)

// Client provides a client that calls netproto's API functions
type Client struct {
	*client.DefaultClient
}

const (
	clientName = "netproto-client"
)

// NewFromReader creates the client based on YAML configuration read from r
func NewFromReader(r io.Reader) (*Client, error) {
	var cfg = new(Config)
	err := yaml.NewDecoder(r).Decode(cfg)
	if err != nil {
		return nil, err
	}
	err = cfg.Validate()
	if err != nil {
		return nil, err
	}
	return NewFromConfig(cfg), nil
}

// New creates a new client instance
func New(addr string, opts ...client.Option) *Client {
	opts = append([]client.Option{client.WithName(clientName)}, opts...)
	return &Client{
		DefaultClient: client.NewDefault(addr, opts...),
	}
}

// NewFromConfig creates the client based on cfg
func NewFromConfig(cfg *Config) *Client {
	if cfg == nil {
		return New(npapi.DefaultServerAddress)
	}
	return New(cfg.Addr,
		client.WithRequestLogging(cfg.Log),
		client.WithRequestTimeout(cfg.RequestTimeout),
		client.WithRetry(!cfg.NoRetry),
		client.WithAPIKey(cfg.Key),
	)
}

// NewFromConfigFile creates the client based on configuration from a file
func NewFromConfigFile(path string) (c *Client, err error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	return NewFromReader(f)
}
