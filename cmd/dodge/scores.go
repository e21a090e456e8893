package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/dodge/internal/leaderboard"
	"github.com/vovakirdan/dodge/internal/storage"
)

var (
	flagLimit   int
	flagSession string
	flagClear   bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show the leaderboard",
	Long: `Display the best scores, highest first.

With --session, also shows the personal best and recent games of that
session id. With --clear, deletes every saved score instead.

Examples:
  dodge scores
  dodge scores --limit 25
  dodge scores --session 1700000000000-k3j9x2m4q
  dodge scores --clear`,
	Args: cobra.NoArgs,
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagLimit, "limit", leaderboard.DefaultTopN, "Number of scores to show")
	scoresCmd.Flags().StringVar(&flagSession, "session", "", "Session id to show a personal best for")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete all saved scores")
}

func runScores(cmd *cobra.Command, _ []string) {
	ctx := context.Background()

	// Open score storage
	store, err := storage.Open(resolveDBPath(cmd, loadEnv()))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	out := cmd.OutOrStdout()

	if flagClear {
		if err := store.Clear(ctx); err != nil {
			fmt.Fprintf(os.Stderr, "Error clearing scores: %v\n", err)
			return
		}
		fmt.Fprintln(out, "Cleared all saved scores.")
		return
	}

	limit := flagLimit
	if limit <= 0 {
		limit = leaderboard.DefaultTopN
	}

	scores, err := store.TopScores(ctx, limit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
		return
	}

	fmt.Fprintln(out, "Leaderboard - Dodge")
	fmt.Fprintln(out)

	if len(scores) == 0 {
		fmt.Fprintln(out, "No scores recorded yet.")
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Play 'dodge play' to set the first high score!")
		return
	}

	printRecords(out, scores)

	if stats, statsErr := store.Stats(ctx); statsErr == nil {
		fmt.Fprintln(out)
		fmt.Fprintf(out, "Games: %d  Best: %d  Average: %.0f  Coins: %d\n",
			stats.GamesCount, stats.HighScore, stats.AvgScore, stats.TotalCoins)
		if !stats.LastPlayed.IsZero() {
			fmt.Fprintf(out, "Last played: %s\n", stats.LastPlayed.Local().Format("2006-01-02 15:04"))
		}
	}

	if flagSession == "" {
		return
	}

	best, err := store.BestForSession(ctx, flagSession)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving session best: %v\n", err)
		return
	}
	fmt.Fprintln(out)
	fmt.Fprintf(out, "Session %s - personal best: %d\n", flagSession, best)

	recent, err := store.SessionScores(ctx, flagSession, limit)
	if err == nil && len(recent) > 0 {
		fmt.Fprintln(out)
		printRecords(out, recent)
	}
}

func printRecords(w io.Writer, records []leaderboard.Record) {
	// Print header
	fmt.Fprintf(w, "  %-4s  %-20s  %-8s  %-5s  %-8s  %s\n", "Rank", "Player", "Score", "Coins", "Distance", "Date")
	fmt.Fprintf(w, "  %-4s  %-20s  %-8s  %-5s  %-8s  %s\n", "----", "------", "-----", "-----", "--------", "----")

	for i, r := range records {
		dateStr := r.CreatedAt.Local().Format("2006-01-02 15:04")
		fmt.Fprintf(w, "  %-4d  %-20s  %-8d  %-5d  %-8d  %s\n", i+1, r.PlayerName, r.Score, r.Coins, r.Distance, dateStr)
	}
}
