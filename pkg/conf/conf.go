// Package conf provides the configuration keys, defaults and flag registration shared
// by all netproto commands
package conf

import (
	"strings"
	"time"

	"github.com/els0r/telemetry/tracing"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// ServiceName is the name of the service as it will show up in telemetry such as metrics, logs, traces, etc.
const ServiceName = "netproto"

// EnvPrefix prefixes all environment variables overriding configuration keys, e.g.
// NETPROTO_DIRECTORY_BACKEND for directory.backend
const EnvPrefix = "NETPROTO"

const (
	ConfigFile = "config"

	loggingKey = "logging"

	LogDestination = loggingKey + ".destination"
	LogEncoding    = loggingKey + ".encoding"
	LogLevel       = loggingKey + ".level"

	directoryKey = "directory"

	DirectoryBackend = directoryKey + ".backend"
	DirectorySource  = directoryKey + ".source"

	outputKey = "output"

	OutputFormat = outputKey + ".format"

	serverKey = "server"

	ServerAddr                = serverKey + ".addr"
	ServerShutdownGracePeriod = serverKey + ".shutdowngraceperiod"
	ServerOpenAPI             = serverKey + ".openapi"
	ServerProfiling           = serverKey + ".profiling"
	ServerMetrics             = serverKey + ".metrics"

	serverRateLimitKey = serverKey + ".ratelimit"

	ServerRateLimitRate  = serverRateLimitKey + ".rate"
	ServerRateLimitBurst = serverRateLimitKey + ".burst"
)

// Global defaults for command line parameters / arguments
const (
	DefaultLogEncoding = "logfmt"
	DefaultLogLevel    = "warn"

	DefaultDirectoryBackend = "system"

	DefaultServerAddr                = "localhost:8146"
	DefaultServerShutdownGracePeriod = 30 * time.Second
	DefaultServerRateLimitBurst      = 50
)

// RegisterFlags registers all persistent command line flags shared by the subcommands of cmd
func RegisterFlags(cmd *cobra.Command) error {
	pflags := cmd.PersistentFlags()

	pflags.StringP(ConfigFile, "c", "", "path to configuration file")

	tracing.RegisterFlags(pflags)

	pflags.String(LogLevel, DefaultLogLevel, "log level for logger")
	pflags.String(LogEncoding, DefaultLogEncoding, "message encoding format for logger")
	pflags.String(LogDestination, "", "logging destination file path (empty for stderr)")

	pflags.StringP(DirectoryBackend, "b", DefaultDirectoryBackend, "protocol directory backend (system, file, iana or remote)")
	pflags.String(DirectorySource, "", "source of the directory backend: protocols file path for file, server address or client config for remote")

	return viper.BindPFlags(pflags)
}

// InitEnv makes all configuration keys overridable through NETPROTO_ prefixed environment
// variables
func InitEnv() {
	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "__"))
	viper.AutomaticEnv()
}
