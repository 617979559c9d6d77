// Package cli wires the commutree commands: the interactive widget, the
// non-interactive estimate, shared-link viewing, newsletter signup, and
// config scaffolding.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/rshade/commutree/internal/config"
)

// isTerminal checks if the given file is a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// logger is the package-level logger for CLI operations.
var logger zerolog.Logger //nolint:gochecknoglobals // Required for zerolog context integration

// configKey carries the loaded config through the command context.
type configKey struct{}

// configFromCmd returns the config loaded by the root PersistentPreRunE.
func configFromCmd(cmd *cobra.Command) *config.Config {
	if cfg, ok := cmd.Context().Value(configKey{}).(*config.Config); ok {
		return cfg
	}
	return config.Default()
}

// NewRootCmd creates the root Cobra command for the commutree CLI.
// It wires up config loading, logging, and the subcommands (estimate, view,
// subscribe, config). Running the root command with no arguments opens the
// interactive widget.
func NewRootCmd(ver string) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "commutree",
		Short:         "Commute carbon calculator",
		Long:          "Commutree: estimate your commute's carbon emissions and see how many trees it takes to offset a year of it",
		Version:       ver,
		Example:       rootCmdExample,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("loading configuration: %w", err)
			}
			setupLogging(cmd, cfg)
			cmd.SetContext(context.WithValue(cmd.Context(), configKey{}, cfg))
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !isTerminal(os.Stdout) {
				return cmd.Help()
			}
			return runWidget(cmd, configFromCmd(cmd))
		},
	}

	cmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	cmd.AddCommand(newEstimateCmd(), newViewCmd(), newSubscribeCmd(), newConfigCmd())

	return cmd
}

const rootCmdExample = `  # Open the interactive calculator
  commutree

  # One-shot estimate from the command line
  commutree estimate --home "SW1A 1AA" --work "EC1A 1BB" --method bike

  # Machine-readable output
  commutree estimate --home "SW1A 1AA" --work "EC1A 1BB" --method petrol-car --output json

  # Open a result someone shared with you
  commutree view "https://commutree.app/share?trees=92&emissions=5.00&method=Bike"

  # Subscribe to the newsletter
  commutree subscribe --email you@example.com

  # Write the default configuration file
  commutree config init`
