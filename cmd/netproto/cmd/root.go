// Package cmd provides the runnable commands of netproto
package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/els0r/netproto/cmd/netproto/config"
	"github.com/els0r/netproto/pkg/conf"
	"github.com/els0r/netproto/pkg/version"
	"github.com/els0r/telemetry/logging"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// ErrNotFound is returned by the lookup commands if at least one protocol is unknown
var ErrNotFound = errors.New("protocol not found")

const helpBase = "netproto looks up network protocols by name or number in the protocol database of the platform, a protocols file, the IANA registry or a remote netproto server"

// Execute is the main entrypoint and runs the CLI tool
func Execute() error {
	return newRootCommand().Execute()
}

func newRootCommand() *cobra.Command {
	var (
		cfg             = config.New()
		shutdownLogging logging.ShutdownFunc
	)

	rootCmd := &cobra.Command{
		Use:   "netproto",
		Short: "Look up network protocols",
		Long:  helpBase,
		PersistentPreRunE: func(*cobra.Command, []string) (err error) {
			if err = initConfig(cfg); err != nil {
				return err
			}
			shutdownLogging, err = initLogging(cfg)
			return err
		},
		PersistentPostRunE: func(*cobra.Command, []string) error {
			if shutdownLogging == nil {
				return nil
			}
			return shutdownLogging()
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	rootCmd.InitDefaultHelpCmd()
	rootCmd.InitDefaultHelpFlag()

	if err := conf.RegisterFlags(rootCmd); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to register flags: %v\n", err)
		os.Exit(1)
	}
	rootCmd.PersistentFlags().StringP(conf.OutputFormat, "o", "", "output format (table, plain, json, yaml, toml or csv). Defaults to table on a terminal, plain otherwise")
	_ = viper.BindPFlag(conf.OutputFormat, rootCmd.PersistentFlags().Lookup(conf.OutputFormat))

	rootCmd.AddCommand(
		nameCommand(cfg),
		numberCommand(cfg),
		lookupCommand(cfg),
		listCommand(cfg),
		serveCommand(cfg),
		versionCommand(),
	)
	return rootCmd
}

// initConfig assembles cfg from configuration file, flags and NETPROTO_ environment variables
func initConfig(cfg *config.Config) error {
	path := viper.GetString(conf.ConfigFile)
	if path != "" {
		viper.SetConfigFile(path)

		err := viper.ReadInConfig()
		if err != nil {
			return fmt.Errorf("failed to read configuration file: %w", err)
		}
	}

	conf.InitEnv()

	err := viper.Unmarshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to parse configuration: %w", err)
	}
	return cfg.Validate()
}

func initLogging(cfg *config.Config) (logging.ShutdownFunc, error) {
	// this is a command line tool, logs must not interfere with the results on stdout
	loggerOpts := []logging.Option{
		logging.WithVersion(version.Short()),
		logging.WithOutput(os.Stderr),
		logging.WithErrorOutput(os.Stderr),
	}
	if cfg.Logging.Destination != "" {
		loggerOpts = append(loggerOpts, logging.WithFileOutput(cfg.Logging.Destination))
	}

	shutdown, err := logging.Init(
		logging.LevelFromString(cfg.Logging.Level),
		logging.Encoding(cfg.Logging.Encoding),
		loggerOpts...,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return shutdown, nil
}
