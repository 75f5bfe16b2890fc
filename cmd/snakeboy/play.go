package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/snakeboy/internal/core"
	"github.com/vovakirdan/snakeboy/internal/games/snake"
	"github.com/vovakirdan/snakeboy/internal/platform/sound"
	"github.com/vovakirdan/snakeboy/internal/platform/tui"
	"github.com/vovakirdan/snakeboy/internal/platform/web"
	"github.com/vovakirdan/snakeboy/internal/storage"
)

var (
	flagMode  string
	flagSound string
	flagWatch string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play Snake Boy in this terminal",
	Long: `Start a Snake Boy session in this terminal.

Controls:
  Arrows/WASD  - Steer
  Enter        - Start / pause / resume
  Space/P      - Pause
  Tab          - Change mode (start screen)
  Z/J          - A: speed boost
  X/K          - B: shield
  R            - Reset to the start screen
  ?            - Toggle help
  Q/Ctrl+C     - Quit

Modes:
  classic      - Endless, walls are deadly
  time_attack  - Beat the clock, food buys time
  maze         - Walls grow with every level

Examples:
  snakeboy play
  snakeboy play --mode time_attack
  snakeboy play --difficulty hard --seed 42
  snakeboy play --sound bell         # terminal bell instead of tones
  snakeboy play --watch :8080        # stream to ws://host:8080/ws`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagMode, "mode", "classic", "Starting mode: classic, time_attack, maze")
	playCmd.Flags().StringVar(&flagSound, "sound", "tone", "Sound effects: tone, bell, off")
	playCmd.Flags().StringVar(&flagWatch, "watch", "", "Serve a spectator WebSocket on this address")
}

func runPlay(cmd *cobra.Command, _ []string) error {
	mode, err := snake.ParseMode(flagMode)
	if err != nil {
		return err
	}
	cfg, err := loadGameConfig()
	if err != nil {
		return err
	}

	logger, closer, err := newLogger(false)
	if err != nil {
		return err
	}
	defer closer.Close()

	rt := core.DefaultConfig()
	rt.FrameRate = flagFPS
	rt.Seed = flagSeed
	// Get terminal size early so the first frame fits
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		rt.ScreenW, rt.ScreenH = w, h
	}

	// Open score storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		logger.Warn("playing without storage", "err", err)
		// Continue without storage - game still works
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	audio, err := newAudio(logger)
	if err != nil {
		return err
	}
	if c, ok := audio.(io.Closer); ok {
		defer c.Close()
	}

	opts := tui.Options{
		Config:  cfg,
		Store:   store,
		Logger:  logger,
		Audio:   audio,
		Mode:    mode,
		Runtime: rt,
	}

	if flagWatch != "" {
		hub := web.NewHub(logger.WithPrefix("watch"))
		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()
		go func() {
			if err := hub.Serve(ctx, flagWatch); err != nil {
				logger.Error("spectator server stopped", "err", err)
			}
		}()
		opts.Renderers = append(opts.Renderers, hub)
	}

	model, err := tui.NewModel(opts)
	if err != nil {
		return fmt.Errorf("creating game: %w", err)
	}
	return tui.Run(model)
}

// newAudio picks the sound output. Tones fall back to the bell when no audio
// device can be opened.
func newAudio(logger *log.Logger) (snake.Audio, error) {
	switch flagSound {
	case "tone":
		p := sound.NewPlayer(sound.DefaultVolume, logger)
		if err := p.Start(); err != nil {
			logger.Warn("no audio device, using the terminal bell", "err", err)
			return tui.NewBellAudio(os.Stderr, false), nil
		}
		return p, nil
	case "bell":
		return tui.NewBellAudio(os.Stderr, false), nil
	case "off":
		return snake.NopAudio{}, nil
	}
	return nil, fmt.Errorf("unknown sound %q (want tone, bell or off)", flagSound)
}
