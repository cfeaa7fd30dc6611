package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/agentic-research/settingsgen/internal/config"
	"github.com/agentic-research/settingsgen/settings"
)

// version is set at build time with -ldflags "-X ...cmd.version=...".
var version = "dev"

// app carries the resolved configuration and logger to every subcommand.
type app struct {
	configPath string
	envFile    string
	logLevel   string
	logFormat  string

	cfg    config.Config
	logger *slog.Logger
}

var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	a := &app{cfg: config.Default()}

	root := &cobra.Command{
		Use:   "settingsgen",
		Short: "Generate typed Go settings accessors from appsettings JSON",
		Long: `settingsgen reads an appsettings JSON document and writes two Go files:
a catalog of every configuration key with its inferred type, and typed
getters that read those keys through the settings package.`,
		Version:           version,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}

	root.PersistentFlags().StringVar(&a.configPath, "config", "", "Config file (.hcl, .yaml or .yml)")
	root.PersistentFlags().StringVar(&a.envFile, "env-file", ".env", "Env file with SETTINGSGEN_* overrides")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "Log level (Trace, Debug, Information, Warning, Error, Critical, None)")
	root.PersistentFlags().StringVar(&a.logFormat, "log-format", "", "Log format: text or json")

	root.AddCommand(newGenerateCmd(a), newWatchCmd(a), newServeCmd(a))
	return root
}

// setup layers flags over the loaded config and builds the logger.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Loader{File: a.configPath, DotEnv: a.envFile}.Load()
	if err != nil {
		return err
	}

	if cmd.Flags().Changed("log-level") {
		level, err := settings.ParseLogLevel(a.logLevel)
		if err != nil {
			return fmt.Errorf("--log-level: %w", err)
		}
		cfg.LogLevel = level
	}
	if cmd.Flags().Changed("log-format") {
		cfg.LogFormat = a.logFormat
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	a.cfg = cfg
	a.logger = newLogger(cmd.ErrOrStderr(), cfg.LogLevel, cfg.LogFormat)
	return nil
}

func newLogger(w io.Writer, level settings.LogLevel, format string) *slog.Logger {
	opts := &slog.HandlerOptions{Level: level.Slog()}
	if format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
