package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/mj1618/keymacro/internal/config"
	"github.com/mj1618/keymacro/internal/logging"
	"github.com/mj1618/keymacro/internal/output"
	"github.com/mj1618/keymacro/internal/platform"
	"github.com/mj1618/keymacro/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "keymacro",
	Short: "Record and replay keyboard and mouse macros",
	Long: `Record global keyboard and mouse input into named macros, edit them as
plain-text scripts, and replay them as synthetic input.

Macros are stored as keyMacros.json in the store directory (or bucket URL).`,
	SilenceUsage: true,
}

// newProvider is swapped out in tests.
var newProvider = platform.NewProvider

var (
	cfg    *config.Config
	logger = slog.Default()
)

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.Version = fmt.Sprintf("%s (commit: %s, built: %s)", version.Version, version.Commit, version.BuildDate)
	rootCmd.PersistentFlags().String(config.KeyFormat, "", "Output format: yaml, json")
	rootCmd.PersistentFlags().String(config.KeyStore, "", "Store directory or bucket URL (default: user config dir)")
	rootCmd.PersistentFlags().String(config.KeyLogLevel, "", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().String(config.KeyLogFormat, "", "Log format: text, json")
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load(rootCmd.PersistentFlags())
		if err != nil {
			return err
		}
		cfg = loaded

		l, err := logging.Setup(cfg.LogLevel, cfg.LogFormat, os.Stderr)
		if l != nil {
			logger = l
		}
		if err != nil {
			if l == nil {
				return err
			}
			logger.Warn("logging", "err", err)
		}

		switch cfg.Format {
		case "yaml":
			output.OutputFormat = output.FormatYAML
		case "json":
			output.OutputFormat = output.FormatJSON
		default:
			return fmt.Errorf("unsupported format: %s (use yaml or json)", cfg.Format)
		}
		if prettyFlag := cmd.Flags().Lookup("pretty"); prettyFlag != nil {
			if pretty, err := cmd.Flags().GetBool("pretty"); err == nil && pretty {
				output.PrettyOutput = true
			}
		}
		return nil
	}
}
