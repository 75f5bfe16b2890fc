package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/snakeboy/internal/games/snake"
	"github.com/vovakirdan/snakeboy/internal/platform/tui"
	"github.com/vovakirdan/snakeboy/internal/storage"
)

var (
	flagScoresTUI   bool
	flagScoresLimit int
	flagScoresClear bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [mode]",
	Short: "Show recorded runs",
	Long: `Display the best recorded runs, for one mode or all of them.

Examples:
  snakeboy scores
  snakeboy scores maze
  snakeboy scores --tui
  snakeboy scores classic --clear`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagScoresTUI, "tui", false, "Browse scores interactively")
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of runs to show")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete the runs of the mode (all runs and the high score without a mode)")
}

func runScores(_ *cobra.Command, args []string) error {
	mode := ""
	title := "All modes"
	if len(args) == 1 {
		m, err := snake.ParseMode(args[0])
		if err != nil {
			return err
		}
		mode, title = m.String(), m.Title()
	}

	// Open score storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening scores database: %w", err)
	}
	defer store.Close()

	if flagScoresClear {
		if err := store.ClearScores(mode); err != nil {
			return err
		}
		fmt.Printf("Cleared runs - %s\n", title)
		return nil
	}

	if flagScoresTUI {
		width, height := 80, 24
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width, height = w, h
		}
		return tui.RunScoreboard(store, width, height)
	}

	scores, err := store.TopScores(mode, flagScoresLimit)
	if err != nil {
		return fmt.Errorf("retrieving scores: %w", err)
	}

	// Display scores
	fmt.Printf("High Scores - %s\n", title)
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Play 'snakeboy play' to set the first high score!")
		return nil
	}

	// Print header
	fmt.Printf("  %-4s  %-8s  %-5s  %-12s  %s\n", "Rank", "Score", "Level", "Mode", "Date")
	fmt.Printf("  %-4s  %-8s  %-5s  %-12s  %s\n", "----", "-----", "-----", "----", "----")

	for i, entry := range scores {
		dateStr := entry.CreatedAt.Local().Format("2006-01-02 15:04")
		fmt.Printf("  %-4d  %-8d  %-5d  %-12s  %s\n", i+1, entry.Score, entry.Level, entry.Mode, dateStr)
	}

	fmt.Println()
	if best, ok, err := store.LoadHighScore(); err == nil && ok {
		fmt.Printf("High score: %d\n", best)
	}
	return nil
}
