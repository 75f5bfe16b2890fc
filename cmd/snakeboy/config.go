package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/snakeboy/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Long: `Print the game configuration after file lookup and the difficulty preset,
as YAML. Redirect it to ~/.snakeboy/configs/snake.yaml to start customizing.

Examples:
  snakeboy config
  snakeboy config --difficulty hard > ~/.snakeboy/configs/snake.yaml`,
	Args: cobra.NoArgs,
	RunE: runConfig,
}

func runConfig(_ *cobra.Command, _ []string) error {
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
