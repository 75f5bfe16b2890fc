package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/snakeboy/internal/games/snake"
	"github.com/vovakirdan/snakeboy/internal/platform/tui"
	"github.com/vovakirdan/snakeboy/internal/storage"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
	flagServeMode   string
	flagServeMute   bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the Snake Boy SSH server",
	Long: `Start an SSH server that lets users connect and play.

Each SSH connection gets its own session.
Scores are stored per-server (all users share the same high score and run history).

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.snakeboy/host_key

Examples:
  snakeboy serve                           # Listen on :23234 with auto-generated key
  snakeboy serve --ssh :2222               # Listen on port 2222
  snakeboy serve --host-key ./my_host_key  # Use specific host key
  snakeboy serve --db ./scores.db          # Use specific database

Users can connect with:
  ssh localhost -p 23234`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
	serveCmd.Flags().StringVar(&flagServeMode, "mode", "classic", "Starting mode for new sessions")
	serveCmd.Flags().BoolVar(&flagServeMute, "mute", false, "Disable the terminal bell for all sessions")
}

func runServe(_ *cobra.Command, _ []string) error {
	mode, err := snake.ParseMode(flagServeMode)
	if err != nil {
		return err
	}
	gameCfg, err := loadGameConfig()
	if err != nil {
		return err
	}

	logger, closer, err := newLogger(true)
	if err != nil {
		return err
	}
	defer closer.Close()

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening scores database: %w", err)
	}
	defer store.Close()

	cfg := tui.DefaultSSHServerConfig()
	cfg.Address = flagSSHAddr
	cfg.HostKeyPath = flagHostKey
	cfg.IdleTimeout = time.Duration(flagIdleTimeout) * time.Minute
	cfg.Game = gameCfg
	cfg.Mode = mode
	cfg.Runtime.FrameRate = flagFPS
	cfg.Runtime.Seed = flagSeed
	cfg.Muted = flagServeMute

	server, err := tui.NewSSHServer(cfg, store, logger.WithPrefix("ssh"))
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}

	fmt.Printf("Starting Snake Boy SSH server on %s\n", server.Addr())
	fmt.Println("Press Ctrl+C to stop")

	return server.ListenAndServe()
}
