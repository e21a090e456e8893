package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/dodge/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the default game config",
	Long: `Print the embedded default game config as YAML.

Save it to ~/.dodge/configs/dodge.yaml or pass it with --config to
tune the canvas, speeds, spawn rates and scoring.

Examples:
  dodge config > ~/.dodge/configs/dodge.yaml`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		_, err := cmd.OutOrStdout().Write(config.DefaultYAML())
		return err
	},
}
