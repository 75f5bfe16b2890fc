package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/snakeboy/internal/games/snake"
	"github.com/vovakirdan/snakeboy/internal/storage"
)

var modesCmd = &cobra.Command{
	Use:   "modes",
	Short: "List game modes",
	Long:  `Shows the game modes with the number of recorded runs and the best score of each.`,
	Args:  cobra.NoArgs,
	RunE:  runModes,
}

var modeDescriptions = map[snake.Mode]string{
	snake.ModeClassic:    "Endless, walls are deadly",
	snake.ModeTimeAttack: "Beat the clock, food buys time",
	snake.ModeMaze:       "Walls grow with every level",
}

func runModes(_ *cobra.Command, _ []string) error {
	// Stats are optional; a missing database just shows the modes.
	stats := map[string]*storage.ModeStats{}
	if store, err := storage.Open(flagDBPath); err == nil {
		if s, statErr := store.AllModeStats(); statErr == nil {
			stats = s
		}
		store.Close()
	}

	fmt.Println("Game modes:")
	fmt.Println()
	fmt.Printf("  %-12s  %-5s  %-6s  %s\n", "ID", "Runs", "Best", "Description")
	fmt.Printf("  %-12s  %-5s  %-6s  %s\n", "--", "----", "----", "-----------")

	for _, m := range []snake.Mode{snake.ModeClassic, snake.ModeTimeAttack, snake.ModeMaze} {
		runs, best := 0, 0
		if s, ok := stats[m.String()]; ok {
			runs, best = s.RunsCount, s.HighScore
		}
		fmt.Printf("  %-12s  %-5d  %-6d  %s\n", m.String(), runs, best, modeDescriptions[m])
	}

	fmt.Println()
	fmt.Println("Run 'snakeboy play --mode <id>' to play a mode.")
	return nil
}
