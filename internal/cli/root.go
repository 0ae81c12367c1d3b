// Package cli implements the symfind subcommands.
package cli

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/symfind/symfind/internal/config"
	"github.com/symfind/symfind/internal/logging"
)

// RegisterCommands attaches the symfind subcommands and global flags to
// the root command.
func RegisterCommands(root *cobra.Command) {
	root.PersistentFlags().String("log-level", "", "Log level (debug, info, warn, error)")
	root.PersistentFlags().BoolP("verbose", "v", false, "Shorthand for --log-level=debug")

	root.AddCommand(NewIDCmd())
	root.AddCommand(NewLocateCmd())
}

// setup loads the configuration and builds the logger from config plus
// global flags. Flags win over the config file.
func setup(cmd *cobra.Command) (zerolog.Logger, *config.Config, error) {
	cfg, err := config.NewLoader().Load()
	if err != nil {
		return zerolog.Nop(), nil, err
	}

	logCfg := logging.DefaultConfig()
	logCfg.Output = cmd.ErrOrStderr()
	if cfg.Log.Level != "" {
		logCfg.Level = cfg.Log.Level
	}
	if cfg.Log.Pretty != nil {
		logCfg.Pretty = *cfg.Log.Pretty
	}
	if level, _ := cmd.Flags().GetString("log-level"); level != "" {
		logCfg.Level = level
	}
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		logCfg.Level = "debug"
	}

	return logging.New(logCfg), cfg, nil
}
