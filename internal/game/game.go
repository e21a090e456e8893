// Package game implements Dodge, an endless runner in which the player steers
// a square around barriers that fly across the canvas and picks up coins.
//
// The package holds pure simulation logic. The platform layer owns timing,
// input devices, persistence and display.
package game

import (
	"math"
	"math/rand"
	"strings"

	"github.com/vovakirdan/dodge/internal/config"
	"github.com/vovakirdan/dodge/internal/core"
)

// DefaultPlayerName is used when the player leaves the name blank.
const DefaultPlayerName = "Anonymous"

// MaxPlayerNameLen is the longest accepted player name, in runes.
const MaxPlayerNameLen = 20

// Phase is the lifecycle position of a game.
type Phase string

const (
	PhaseIdle     Phase = "idle"
	PhasePlaying  Phase = "playing"
	PhasePaused   Phase = "paused"
	PhaseGameOver Phase = "game_over"
)

// State is the scoreboard of the running game.
type State struct {
	Playing  bool
	Paused   bool
	Score    int
	Coins    int
	Distance int // Equals the number of ticks played
	Speed    float64
	GameOver bool
}

// Phase derives the lifecycle phase from the flags.
func (s State) Phase() Phase {
	switch {
	case s.GameOver:
		return PhaseGameOver
	case s.Playing && s.Paused:
		return PhasePaused
	case s.Playing:
		return PhasePlaying
	default:
		return PhaseIdle
	}
}

// StepResult is returned by Game.Step after each simulation tick.
type StepResult struct {
	State     State
	Crashed   bool // The game ended during this tick
	Collected int  // Coins picked up during this tick
}

// Game implements the Dodge game logic.
type Game struct {
	cfg        config.DodgeConfig
	runtime    core.RuntimeConfig
	difficulty *config.DifficultyManager
	rng        *rand.Rand
	ids        IDSource

	state      State
	player     Player
	barriers   []Barrier
	coins      []Coin
	playerName string

	startSpeed     float64
	speedIncrement float64
}

// New creates an idle game with the given configuration.
func New(cfg config.DodgeConfig) *Game {
	g := &Game{
		cfg:        cfg,
		playerName: DefaultPlayerName,
		barriers:   make([]Barrier, 0, 16),
		coins:      make([]Coin, 0, cfg.Spawning.MaxCoins+1),
	}
	g.Reset(core.DefaultConfig())
	return g
}

// Reset reseeds the simulation and returns the game to the idle phase.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime
	g.rng = rand.New(rand.NewSource(runtime.Seed))
	g.difficulty = config.NewDifficultyManager(g.cfg.Difficulty)
	g.startSpeed = g.difficulty.StartSpeed(g.cfg.Physics.InitialSpeed, g.cfg.Physics.MaxSpeed)
	g.speedIncrement = g.difficulty.SpeedIncrement(g.cfg.Physics.SpeedIncrement)

	g.clearBoard()
	g.state = State{Speed: g.startSpeed}
}

// Start begins a new game for the named player, discarding any previous run.
func (g *Game) Start(playerName string) {
	g.playerName = NormalizePlayerName(playerName)
	g.clearBoard()
	g.state = State{
		Playing: true,
		Speed:   g.startSpeed,
	}
}

// Restart begins a new game with the current player name.
func (g *Game) Restart() {
	g.Start(g.playerName)
}

// TogglePause pauses or resumes a running game.
func (g *Game) TogglePause() {
	if !g.state.Playing || g.state.GameOver {
		return
	}
	g.state.Paused = !g.state.Paused
}

// Move shifts the player by (dx, dy) canvas units, clamped to the canvas.
// Clamping happens here, on the input event, not on the next tick.
//
// Moves are only applied while playing. Input that arrives while the game
// is idle, paused or over is dropped rather than clamped, so a paused board
// cannot be rearranged and resuming continues from the frozen position.
func (g *Game) Move(dx, dy float64) {
	if g.state.Phase() != PhasePlaying {
		return
	}
	size := g.player.Size
	g.player.X = core.ClampF(g.player.X+dx, 0, g.cfg.Canvas.Width-size)
	g.player.Y = core.ClampF(g.player.Y+dy, 0, g.cfg.Canvas.Height-size)
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) StepResult {
	if g.state.GameOver {
		if in.Has(core.ActionRestart) {
			g.Restart()
		}
		return StepResult{State: g.state}
	}

	if !g.state.Playing {
		return StepResult{State: g.state}
	}

	if in.Has(core.ActionPause) {
		g.TogglePause()
	}

	if g.state.Paused {
		return StepResult{State: g.state}
	}

	return g.tick()
}

// tick runs one frame of simulation. Entities move and spawn first, then
// collisions are tested against the positions they hold after this tick's
// movement. Barriers are checked before coins.
func (g *Game) tick() StepResult {
	w, h := g.cfg.Canvas.Width, g.cfg.Canvas.Height

	// Movement and spawn odds use the speed at the top of the tick
	speed := g.state.Speed

	g.state.Score += g.cfg.Scoring.TickPoints
	g.state.Distance++
	g.state.Speed = math.Min(g.cfg.Physics.MaxSpeed, g.startSpeed+float64(g.state.Distance)*g.speedIncrement)

	// Advance barriers and drop the ones that left the canvas
	kept := g.barriers[:0]
	for _, b := range g.barriers {
		moved := UpdateBarrier(b, speed)
		if !IsBarrierOffScreen(moved, w, h) {
			kept = append(kept, moved)
		}
	}
	g.barriers = kept

	barrierRate := g.difficulty.BarrierRate(g.cfg.Spawning.BarrierRate, g.state.Distance, g.state.Score)
	if g.rng.Float64() < barrierRate*(1+speed/10) {
		g.barriers = append(g.barriers, GenerateBarrier(g.rng, &g.ids, w, h, speed))
	}

	// Collected coins disappear on the tick after pickup
	live := g.coins[:0]
	for _, c := range g.coins {
		if !c.Collected {
			live = append(live, c)
		}
	}
	g.coins = live

	if g.rng.Float64() < g.cfg.Spawning.CoinRate && len(g.coins) < g.cfg.Spawning.MaxCoins {
		g.coins = append(g.coins, GenerateCoin(g.rng, &g.ids, w, h))
	}

	playerRect := g.player.Rect()

	for _, b := range g.barriers {
		if playerRect.Intersects(b.Rect()) {
			g.state.GameOver = true
			g.state.Playing = false
			g.state.Paused = false
			return StepResult{State: g.state, Crashed: true}
		}
	}

	collected := 0
	for i := range g.coins {
		c := &g.coins[i]
		if c.Collected || !playerRect.Intersects(c.Rect()) {
			continue
		}
		c.Collected = true
		g.state.Coins++
		g.state.Score += g.cfg.Scoring.CoinBonus
		collected++
	}

	return StepResult{State: g.state, Collected: collected}
}

// clearBoard removes all entities and re-centers the player.
func (g *Game) clearBoard() {
	size := g.cfg.Player.Size
	g.player = Player{
		X:    g.cfg.Canvas.Width/2 - size/2,
		Y:    g.cfg.Canvas.Height/2 - size/2,
		Size: size,
	}
	g.barriers = g.barriers[:0]
	g.coins = g.coins[:0]
	g.ids.Reset()
}

// State returns the current game state.
func (g *Game) State() State {
	return g.state
}

// Player returns the player entity.
func (g *Game) Player() Player {
	return g.player
}

// Barriers returns the live barriers. The slice must not be modified.
func (g *Game) Barriers() []Barrier {
	return g.barriers
}

// Coins returns the coins on the board, including ones collected this tick.
// The slice must not be modified.
func (g *Game) Coins() []Coin {
	return g.coins
}

// PlayerName returns the name the current game is played under.
func (g *Game) PlayerName() string {
	return g.playerName
}

// Config returns the game configuration.
func (g *Game) Config() config.DodgeConfig {
	return g.cfg
}

// NormalizePlayerName trims the name, caps its length and substitutes
// DefaultPlayerName for blank input.
func NormalizePlayerName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return DefaultPlayerName
	}
	runes := []rune(name)
	if len(runes) > MaxPlayerNameLen {
		name = strings.TrimSpace(string(runes[:MaxPlayerNameLen]))
	}
	return name
}
