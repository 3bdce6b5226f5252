package main

import (
	"github.com/spf13/cobra"

	"bintrack/internal/config"
)

func newRootCmd(cfg *config.Config) *cobra.Command {
	var jsonOutput bool
	var logLevel string

	cmd := &cobra.Command{
		Use:   "bintrack",
		Short: "Bintrack is a metadata and photo tracker for physical storage bins",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return configureLoggerForCLI(logLevel, cfg.LogLevel)
		},
	}

	cmd.Version = version
	cmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "output JSON")
	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")

	cmd.AddCommand(
		newSrvCmd(cfg),
		newShowCmd(cfg, &jsonOutput),
		newSetCmd(cfg, &jsonOutput),
		newListCmd(cfg, &jsonOutput),
		newPhotoCmd(cfg),
		newExportCmd(cfg, &jsonOutput),
		newConfigCmd(cfg),
	)

	return cmd
}
