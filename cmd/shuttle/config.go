package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/shuttle-run/internal/config"
)

var flagConfigDefaults bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective game config",
	Long: `Print the game config as YAML after the search order and the
difficulty preset are applied. The output can be saved to
~/.shuttle/configs/shuttle.yaml and edited.

Examples:
  shuttle config
  shuttle config --defaults
  shuttle config --difficulty hard > ~/.shuttle/configs/shuttle.yaml`,
	Args: cobra.NoArgs,
	RunE: runConfig,
}

func init() {
	configCmd.Flags().BoolVar(&flagConfigDefaults, "defaults", false, "Print the built-in defaults instead")
}

func runConfig(_ *cobra.Command, _ []string) error {
	if flagConfigDefaults {
		_, err := os.Stdout.Write(config.DefaultYAML())
		return err
	}

	cfg, err := loadGameConfig()
	if err != nil {
		return err
	}

	data, err := config.Marshal(cfg)
	if err != nil {
		return err
	}
	_, err = os.Stdout.Write(data)
	return err
}
