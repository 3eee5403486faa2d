package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/haivivi/opusctl/pkg/cli"
)

var (
	// Global flags
	verbose      bool
	configDir    string
	formatOutput string
	outputFile   string

	// Global configuration (loaded at init time)
	globalConfig *cli.Config
)

var rootCmd = &cobra.Command{
	Use:   "opusctl",
	Short: "Inspect and drive libopus encoder and decoder controls",
	Long: `opusctl - issue libopus control requests from the command line.

Every request goes through the fixed-arity control shim, the same path the
WebSocket bridge uses for clients that cannot call variadic C functions.

Configuration is stored in ~/.opusctl/config.yaml, or in the directory named
by OPUSCTL_CONFIG_DIR. A .env file in the working directory or the
configuration directory is loaded first.

Examples:
  # Read and write a single control
  opusctl ctl set encoder bitrate 24000
  opusctl ctl get decoder gain

  # Save a profile and inspect the resulting encoder state
  opusctl profile set voice --voice-defaults --set bitrate=16000
  opusctl state --profile voice

  # Run the bridge and call it
  opusctl serve --listen :7070
  opusctl call version`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "configuration directory (default ~/.opusctl)")
	rootCmd.PersistentFlags().StringVar(&formatOutput, "format", "", "output format: yaml, json, table, raw")
	rootCmd.PersistentFlags().StringVarP(&outputFile, "output", "o", "", "output file (default: stdout)")
}

// configLoadErr stores the error from loading the config for deferred
// reporting, so that commands like 'opusctl version' still run.
var configLoadErr error

func initConfig() {
	globalConfig, configLoadErr = nil, nil

	ctx := context.Background()
	if _, err := cli.LoadEnv(ctx, ".env"); err != nil {
		configLoadErr = err
		setupLogging("")
		return
	}
	paths, err := cli.NewPaths(configDir)
	if err != nil {
		configLoadErr = err
		setupLogging("")
		return
	}
	env, err := cli.LoadEnv(ctx, paths.EnvFile())
	if err != nil {
		configLoadErr = err
		setupLogging("")
		return
	}

	cfg, err := cli.LoadConfigWithPath(paths.ConfigFile())
	if err != nil {
		configLoadErr = err
		setupLogging(env.LogLevel)
		return
	}
	cfg.ApplyEnv(env)
	globalConfig = cfg
	setupLogging(cfg.LogLevel)
}

func setupLogging(level string) {
	logLevel := slog.LevelInfo
	if level != "" {
		if err := logLevel.UnmarshalText([]byte(strings.ToUpper(level))); err != nil {
			logLevel = slog.LevelInfo
		}
	}
	if verbose {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	})))
}

// GetConfig returns the global configuration.
func GetConfig() (*cli.Config, error) {
	if globalConfig == nil {
		if configLoadErr != nil {
			return nil, fmt.Errorf("config not available: %w", configLoadErr)
		}
		return nil, fmt.Errorf("config not available")
	}
	return globalConfig, nil
}

// IsVerbose returns whether verbose mode is enabled.
func IsVerbose() bool {
	return verbose
}

// output prints result in the --format format, or in def when the flag is
// not set.
func output(result any, def cli.OutputFormat) error {
	format := def
	if formatOutput != "" {
		f, err := cli.ParseFormat(formatOutput)
		if err != nil {
			return err
		}
		format = f
	}
	return cli.Output(result, cli.OutputOptions{
		Format: format,
		File:   outputFile,
	})
}
