package main

import (
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/dodge/internal/config"
	"github.com/vovakirdan/dodge/internal/core"
	"github.com/vovakirdan/dodge/internal/input"
	"github.com/vovakirdan/dodge/internal/leaderboard"
	"github.com/vovakirdan/dodge/internal/platform/tui"
	"github.com/vovakirdan/dodge/internal/prefs"
	"github.com/vovakirdan/dodge/internal/session"
	"github.com/vovakirdan/dodge/internal/storage"
)

var (
	flagConfig     string
	flagDifficulty string
	flagControls   string
	flagName       string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a game",
	Long: `Start Dodge in this terminal.

Controls:
  Arrows/WASD  - Move (buttons mode)
  Mouse drag   - Move (swipe mode)
  Mouse move   - Move (tilt mode)
  M            - Switch control mode
  P/Space      - Pause
  R            - Restart (after game over)
  Tab          - Leaderboard
  Q/Ctrl+C     - Quit

Difficulty options:
  easy   - Start at lowest difficulty, progresses to max
  normal - Start at 30% difficulty, progresses to max
  hard   - Start at 70% difficulty, progresses to max
  fixed  - No speed ramp, stays at config's initial level

Without --difficulty the game uses the config values unchanged.

Environment:
  DODGE_DB       - Scores database path (overridden by --db)
  DODGE_OFFLINE  - Set to 1, yes or on to play without saving scores
  DODGE_PLAYER   - Default player name

Examples:
  dodge play
  dodge play --name Ada --controls tilt
  dodge play --difficulty hard
  dodge play --config ./my-dodge.yaml`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	playCmd.Flags().StringVar(&flagControls, "controls", "", "Control mode: buttons, swipe, tilt")
	playCmd.Flags().StringVar(&flagName, "name", "", "Player name")
}

func runPlay(cmd *cobra.Command, _ []string) {
	env := loadEnv()

	gameCfg, err := loadGameConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	logger, closeLog, err := newFileLogger("dodge")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	userPrefs := prefs.Open(prefs.AppName, logger)
	saved := userPrefs.Get()

	controls, err := input.ParseControlMode(flagControls)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if flagControls == "" {
		if remembered, prefErr := input.ParseControlMode(saved.Controls); prefErr == nil {
			controls = remembered
		}
	}

	name := flagName
	if name == "" {
		name = env.PlayerName
	}
	if name == "" {
		name = saved.PlayerName
	}

	// Get terminal size
	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	runtime := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
	if runtime.Seed == 0 {
		runtime.Seed = time.Now().UnixNano()
	}

	// Open score storage
	var store leaderboard.Store = leaderboard.Nop{}
	var db *storage.Store
	if env.Offline {
		logger.Info("offline mode, scores will not be saved")
	} else {
		db, err = storage.Open(resolveDBPath(cmd, env))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
			// Continue without storage - game still works
			logger.Warn("scores database unavailable", "error", err)
		} else {
			store = db
		}
	}

	opts := tui.Options{
		Config:     gameCfg,
		Runtime:    runtime,
		Recorder:   leaderboard.NewRecorder(store, logger),
		SessionID:  session.NewID(time.Now(), rand.New(rand.NewSource(runtime.Seed))),
		PlayerName: name,
		Controls:   controls,
		Prefs:      userPrefs,
		Logger:     logger,
	}

	runErr := tui.Run(opts)

	// Close store before potential exit
	if db != nil {
		db.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}

// loadGameConfig loads the game config and applies --difficulty.
func loadGameConfig() (config.DodgeConfig, error) {
	cfg, err := config.LoadDodge(flagConfig)
	if err != nil {
		return cfg, err
	}

	if flagDifficulty != "" {
		preset, err := config.ParseDifficultyPreset(flagDifficulty)
		if err != nil {
			return cfg, err
		}
		config.ApplyDodgePreset(&cfg, preset)
	}
	return cfg, nil
}
