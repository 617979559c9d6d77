package cli

import (
	"github.com/spf13/cobra"

	"github.com/rshade/commutree/internal/config"
	"github.com/rshade/commutree/internal/logging"
)

// setupLogging configures the package logger from config and CLI flags.
// The --debug flag forces debug-level console output regardless of the
// configured level, format, or file.
func setupLogging(cmd *cobra.Command, cfg *config.Config) {
	loggingCfg := cfg.Logging

	debug, _ := cmd.Flags().GetBool("debug")
	if debug {
		loggingCfg.Level = "debug"
		loggingCfg.Format = "console"
		loggingCfg.File = ""
	}

	base := logging.New(logging.Config{
		Level:  loggingCfg.Level,
		Format: loggingCfg.Format,
		File:   loggingCfg.File,
	})
	logger = logging.ComponentLogger(base, "cli")

	logger.Debug().Str("command", cmd.Name()).Msg("command started")
}
