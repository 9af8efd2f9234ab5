package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/blockfall/internal/config"
	"github.com/vovakirdan/blockfall/internal/platform/tui"
	"github.com/vovakirdan/blockfall/internal/storage"
)

var (
	flagClear bool
	flagMode  string
	flagPlain bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show high scores",
	Long: `Browse the high score table, one tab per difficulty mode.

Examples:
  blockfall scores
  blockfall scores --plain --mode hard
  blockfall scores --clear --mode easy`,
	Args: cobra.NoArgs,
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete recorded scores")
	scoresCmd.Flags().StringVar(&flagMode, "mode", "", "Restrict to one mode: easy, normal, hard, fixed")
	scoresCmd.Flags().BoolVar(&flagPlain, "plain", false, "Print the top 10 instead of the interactive table")
}

func runScores(_ *cobra.Command, _ []string) error {
	if flagMode != "" {
		if _, err := config.ParsePreset(flagMode); err != nil {
			return err
		}
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	switch {
	case flagClear:
		n, clearErr := store.ClearScores(flagMode)
		if clearErr != nil {
			return clearErr
		}
		fmt.Printf("Deleted %d score(s).\n", n)
		return nil
	case flagPlain:
		return printScores(store)
	}

	width, height := 80, 24
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width, height = w, h
	}
	return tui.RunScoreboard(store, width, height)
}

func printScores(store *storage.Store) error {
	scores, err := store.TopScores(flagMode, 10)
	if err != nil {
		return err
	}

	title := "all modes"
	if flagMode != "" {
		title = flagMode
	}
	fmt.Printf("High Scores - %s\n\n", title)

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Println("Play 'blockfall play' to set the first high score!")
		return nil
	}

	fmt.Printf("  %-4s  %-12s  %-8s  %-5s  %-6s  %s\n", "Rank", "Player", "Score", "Lines", "Mode", "Date")
	fmt.Printf("  %-4s  %-12s  %-8s  %-5s  %-6s  %s\n", "----", "------", "-----", "-----", "----", "----")
	for i, e := range scores {
		fmt.Printf("  %-4d  %-12s  %-8d  %-5d  %-6s  %s\n",
			i+1, e.Player, e.Score, e.Lines, e.Mode, e.CreatedAt.Format("2006-01-02 15:04"))
	}

	if flagMode != "" {
		st, statsErr := store.GetStats(flagMode)
		if statsErr != nil {
			return statsErr
		}
		fmt.Printf("\nGames: %d  Best: %d  Avg: %.0f  Lines: %d\n", st.Games, st.HighScore, st.AvgScore, st.TotalLines)
		return nil
	}

	all, err := store.AllStats()
	if err != nil {
		return err
	}
	modes := make([]string, 0, len(all))
	for m := range all {
		modes = append(modes, m)
	}
	sort.Strings(modes)
	fmt.Println()
	for _, m := range modes {
		st := all[m]
		fmt.Printf("  %-6s  games %-4d best %-8d avg %-8.0f lines %d\n", m, st.Games, st.HighScore, st.AvgScore, st.TotalLines)
	}
	return nil
}
