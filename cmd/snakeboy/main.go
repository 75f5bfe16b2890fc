// snakeboy is a handheld-style Snake game for the terminal.
//
// Usage:
//
//	snakeboy play            - Play in this terminal
//	snakeboy serve           - Start SSH server for remote play
//	snakeboy scores [mode]   - Show recorded runs
//	snakeboy modes           - List game modes
//	snakeboy config          - Print the effective configuration
//
// Global flags:
//
//	--fps <rate>        - Set frame rate (default: 60)
//	--seed <value>      - Set RNG seed for reproducible gameplay
//	--db <path>         - Set database path (default: ~/.snakeboy/scores.db)
//	--config <path>     - Use a custom game config YAML
//	--log-level <lvl>   - debug, info, warn or error
//	--log-file <path>   - Rotated log file (default: ~/.snakeboy/snakeboy.log)
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/snakeboy/internal/config"
	"github.com/vovakirdan/snakeboy/internal/logging"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagLogLevel   string
	flagLogFile    string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "snakeboy",
	Short: "Snake Boy - a handheld-style Snake for your terminal",
	Long: `Snake Boy is a terminal remake of the handheld classic: eat food,
grow, chain combos, grab power-ups and climb levels.

Available commands:
  play     - Play in this terminal
  serve    - Start SSH server for remote play
  scores   - View recorded runs
  modes    - List game modes
  config   - Print the effective configuration

Examples:
  snakeboy play
  snakeboy play --mode maze --difficulty hard
  snakeboy play --watch :8080
  snakeboy serve --ssh :2222
  snakeboy scores time_attack`,
	SilenceUsage: true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Frame rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.snakeboy/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", logging.DefaultOptions().File, "Path to rotated log file (empty disables)")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(modesCmd)
	rootCmd.AddCommand(configCmd)
}

// loadGameConfig loads the YAML config and applies the difficulty preset.
func loadGameConfig() (config.SnakeConfig, error) {
	cfg, err := config.LoadSnake(flagConfig)
	if err != nil {
		return cfg, err
	}
	switch preset := config.DifficultyPreset(flagDifficulty); preset {
	case "", config.DifficultyEasy, config.DifficultyNormal, config.DifficultyHard:
		config.ApplySnakePreset(&cfg, preset)
	default:
		return cfg, fmt.Errorf("unknown difficulty %q (want easy, normal or hard)", flagDifficulty)
	}
	return cfg, cfg.Validate()
}

// newLogger builds the command logger. Console output is only wanted when no
// TUI owns the terminal.
func newLogger(console bool) (*log.Logger, io.Closer, error) {
	opts := logging.DefaultOptions()
	opts.Level = flagLogLevel
	opts.File = flagLogFile
	opts.Console = console
	return logging.New(opts)
}
