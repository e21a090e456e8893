// dodge is an endless runner for the terminal with a shared leaderboard.
//
// Usage:
//
//	dodge play              - Play locally
//	dodge serve             - Start SSH server for remote play
//	dodge scores            - Show the leaderboard
//	dodge config            - Print the default game config
//
// Global flags:
//
//	--fps <rate>    - Set tick rate (default: 60)
//	--seed <value>  - Set RNG seed for reproducible gameplay
//	--db <path>     - Set database path (default: ~/.dodge/scores.db)
//	--log <path>    - Write logs to a file
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/dodge/internal/config"
	"github.com/vovakirdan/dodge/internal/storage"
)

var (
	// Global flags
	flagFPS     int
	flagSeed    int64
	flagDBPath  string
	flagLogPath string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "dodge",
	Short: "Dodge - an endless runner in your terminal",
	Long: `Dodge is an endless runner: steer the block, avoid the barriers
streaming in from the right and collect coins for bonus points.
Every finished game is saved to a shared leaderboard.

Available commands:
  play     - Play a game locally
  serve    - Start SSH server for remote play
  scores   - View the leaderboard
  config   - Print the default game config

Examples:
  dodge play
  dodge play --difficulty hard --controls swipe
  dodge serve --ssh :2222
  dodge scores --limit 20`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", storage.DefaultPath, "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagLogPath, "log", "", "Write logs to this file")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(configCmd)
}

// loadEnv reads backend settings from the environment and ./.env.
func loadEnv() config.Env {
	return config.LoadEnv(".env")
}

// resolveDBPath prefers an explicit --db, then DODGE_DB, then the default.
func resolveDBPath(cmd *cobra.Command, env config.Env) string {
	if cmd.Flags().Changed("db") || env.DBPath == "" {
		return flagDBPath
	}
	return env.DBPath
}

// newFileLogger returns a logger writing to --log, or one that discards
// everything. The returned close function is never nil.
func newFileLogger(prefix string) (*log.Logger, func(), error) {
	if flagLogPath == "" {
		return log.New(io.Discard), func() {}, nil
	}

	f, err := os.OpenFile(flagLogPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("cannot open log file: %w", err)
	}

	logger := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
		Level:           log.DebugLevel,
	})
	return logger, func() { f.Close() }, nil
}
