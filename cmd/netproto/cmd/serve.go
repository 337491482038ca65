package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/els0r/netproto/cmd/netproto/config"
	npserver "github.com/els0r/netproto/pkg/api/netproto/server"
	"github.com/els0r/netproto/pkg/api/server"
	"github.com/els0r/netproto/pkg/conf"
	"github.com/els0r/netproto/pkg/protocols"
	"github.com/els0r/telemetry/logging"
	"github.com/els0r/telemetry/tracing"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func serveCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve protocol lookups via HTTP",
		Long:  "Serve lookups and enumerations of the configured protocol directory via HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return serveEntrypoint(cmd.Context(), cfg)
		},
	}

	pflags := cmd.Flags()

	pflags.String(conf.ServerAddr, conf.DefaultServerAddr, "address to which the server binds (host:port or unix:/path/to/socket)")
	pflags.Duration(conf.ServerShutdownGracePeriod, conf.DefaultServerShutdownGracePeriod, "duration the server will wait during shutdown before forcing shutdown")
	pflags.String(conf.ServerOpenAPI, "", "write OpenAPI 3.0.3 spec to output file and exit")
	pflags.Float64(conf.ServerRateLimitRate, 0, "maximum number of requests per second (0 disables rate limiting)")
	pflags.Int(conf.ServerRateLimitBurst, conf.DefaultServerRateLimitBurst, "maximum request burst")

	// telemetry
	pflags.Bool(conf.ServerProfiling, false, "enable profiling endpoints")
	pflags.Bool(conf.ServerMetrics, true, "enable prometheus metrics endpoint")

	_ = viper.BindPFlags(pflags)

	return cmd
}

func newServer(d protocols.Directory, cfg *config.Config) *npserver.Server {
	return npserver.New(cfg.Server.Addr, d,
		// Set the release mode of GIN depending on the log level
		server.WithDebugMode(
			logging.LevelFromString(cfg.Logging.Level) == logging.LevelDebug,
		),
		server.WithBackend(cfg.Directory.Backend),
		server.WithProfiling(cfg.Server.Profiling),
		server.WithMetrics(cfg.Server.Metrics),
		server.WithTracing(viper.GetBool(tracing.TracingEnabledArg)),
		server.WithRateLimit(cfg.Server.RateLimit.Limit(), cfg.Server.RateLimit.Burst),
	)
}

func serveEntrypoint(ctx context.Context, cfg *config.Config) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	defer stop()

	logger := logging.FromContext(ctx)

	// write OpenAPI spec and exit
	if cfg.Server.OpenAPI != "" {
		return server.GenerateSpec(ctx, cfg.Server.OpenAPI, npserver.New(cfg.Server.Addr, protocols.IANA()))
	}

	shutdownTracing, err := tracing.InitFromFlags(ctx)
	if err != nil {
		logger.With("error", err).Error("failed to set up tracing")
	}

	d, err := initDirectory(ctx, cfg)
	if err != nil {
		return err
	}
	apiServer := newServer(protocols.Instrument(cfg.Directory.Backend, d), cfg)

	// serve in a goroutine so that it won't block the graceful shutdown handling below
	errs := make(chan error, 1)
	go func() {
		errs <- apiServer.Serve()
	}()

	select {
	case err = <-errs:
		if err != nil {
			return err
		}
	case <-ctx.Done():
	}

	// restore default behavior on the interrupt signal and notify user of shutdown.
	stop()
	logger.Info("shutting down server gracefully")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownGracePeriod)
	defer cancel()

	// shut down running resources, forcibly if need be
	err = apiServer.Shutdown(ctx)
	if err != nil {
		logger.With("error", err).Error("forced shut down of API server")
	}
	if shutdownTracing != nil {
		err = shutdownTracing(ctx)
		if err != nil {
			logger.With("error", err).Error("forced shut down of tracing")
		}
	}

	logger.Info("shut down complete")
	return nil
}
