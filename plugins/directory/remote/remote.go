// Package remote registers a netproto server as directory backend. The source is either
// the server address (host:port, http(s)://host:port or unix:/path) or the path to a YAML
// client configuration
package remote

import (
	"context"
	"fmt"
	"path/filepath"

	npapi "github.com/els0r/netproto/pkg/api/netproto"
	"github.com/els0r/netproto/pkg/api/netproto/client"
	"github.com/els0r/netproto/pkg/protocols"
	"github.com/els0r/netproto/plugins"
	"github.com/els0r/telemetry/logging"
)

// Type is the identifier of the remote directory backend
const Type = "remote"

// New creates a client for the server described by source. An empty source selects the
// default server address
func New(ctx context.Context, source string) (*client.Client, error) {
	var (
		c   *client.Client
		err error
	)
	switch filepath.Ext(source) {
	case ".yaml", ".yml":
		c, err = client.NewFromConfigFile(source)
		if err != nil {
			return nil, fmt.Errorf("failed to load remote client config: %w", err)
		}
	default:
		if source == "" {
			source = npapi.DefaultServerAddress
		}
		c = client.New(source)
	}
	logging.FromContext(ctx).With("addr", c.Addr().String()).Debug("using remote protocol directory")
	return c, nil
}

func init() {
	plugins.RegisterDirectory(Type, func(ctx context.Context, source string) (protocols.Directory, error) {
		c, err := New(ctx, source)
		if err != nil {
			return nil, err
		}
		return c, nil
	})
}
