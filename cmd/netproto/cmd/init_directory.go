package cmd

import (
	"context"

	"github.com/els0r/netproto/cmd/netproto/config"
	"github.com/els0r/netproto/pkg/protocols"
	"github.com/els0r/netproto/plugins"
	"github.com/els0r/telemetry/logging"

	// internal plugin support
	_ "github.com/els0r/netproto/plugins/directory"
)

func initDirectory(ctx context.Context, cfg *config.Config) (protocols.Directory, error) {
	logging.FromContext(ctx).With("plugins", plugins.GetInitializer()).Debug("initializing protocol directory")

	return plugins.InitDirectory(ctx, cfg.Directory.Backend, cfg.Directory.Source)
}
