package game

import (
	"math"
	"reflect"
	"strings"
	"testing"

	"github.com/vovakirdan/dodge/internal/config"
	"github.com/vovakirdan/dodge/internal/core"
)

// quietConfig disables random spawning so tests can place entities by hand.
func quietConfig() config.DodgeConfig {
	cfg := config.DefaultDodgeConfig()
	cfg.Spawning.BarrierRate = 0
	cfg.Spawning.CoinRate = 0
	return cfg
}

func newTestGame(cfg config.DodgeConfig, seed int64) *Game {
	g := New(cfg)
	g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: seed})
	g.Start("Tester")
	return g
}

func stepN(g *Game, n int) StepResult {
	var res StepResult
	for i := 0; i < n; i++ {
		res = g.Step(core.NewInputFrame())
	}
	return res
}

func frameWith(actions ...core.Action) core.InputFrame {
	in := core.NewInputFrame()
	for _, a := range actions {
		in.Set(a)
	}
	return in
}

func TestNewGameIsIdle(t *testing.T) {
	g := New(config.DefaultDodgeConfig())

	if g.State().Phase() != PhaseIdle {
		t.Fatalf("new game phase = %s, expected idle", g.State().Phase())
	}

	res := g.Step(core.NewInputFrame())
	if res.State.Score != 0 || res.State.Distance != 0 {
		t.Error("idle game should not advance")
	}
}

func TestStartState(t *testing.T) {
	g := newTestGame(config.DefaultDodgeConfig(), 1)
	s := g.State()

	if !s.Playing || s.Paused || s.GameOver {
		t.Errorf("unexpected flags after Start: %+v", s)
	}
	if s.Score != 0 || s.Coins != 0 || s.Distance != 0 {
		t.Errorf("counters should start at zero: %+v", s)
	}
	if s.Speed != 3 {
		t.Errorf("speed = %v, expected 3", s.Speed)
	}

	p := g.Player()
	if p.X != 380 || p.Y != 280 || p.Size != 40 {
		t.Errorf("player = %+v, expected centered 40x40 at (380, 280)", p)
	}
	if len(g.Barriers()) != 0 || len(g.Coins()) != 0 {
		t.Error("board should start empty")
	}
	if g.PlayerName() != "Tester" {
		t.Errorf("player name = %q", g.PlayerName())
	}
}

func TestNormalizePlayerName(t *testing.T) {
	tests := []struct {
		in, expected string
	}{
		{"", DefaultPlayerName},
		{"   ", DefaultPlayerName},
		{"  Ada  ", "Ada"},
		{"abcdefghijklmnopqrstuvwxyz", "abcdefghijklmnopqrst"},
		{"Zoë", "Zoë"},
	}

	for _, tc := range tests {
		if got := NormalizePlayerName(tc.in); got != tc.expected {
			t.Errorf("NormalizePlayerName(%q) = %q, expected %q", tc.in, got, tc.expected)
		}
	}
}

func TestTickAdvancesScoreAndDistance(t *testing.T) {
	g := newTestGame(quietConfig(), 1)

	res := stepN(g, 100)
	if res.State.Score != 100 {
		t.Errorf("score = %d, expected 100", res.State.Score)
	}
	if res.State.Distance != 100 {
		t.Errorf("distance = %d, expected 100", res.State.Distance)
	}
}

func TestSpeedRamp(t *testing.T) {
	g := newTestGame(quietConfig(), 1)

	prev := g.State().Speed
	for n := 1; n <= 500; n++ {
		s := g.Step(core.NewInputFrame()).State
		expected := math.Min(12, 3+float64(n)*0.001)
		if s.Speed != expected {
			t.Fatalf("tick %d: speed = %v, expected %v", n, s.Speed, expected)
		}
		if s.Speed < prev {
			t.Fatalf("tick %d: speed decreased from %v to %v", n, prev, s.Speed)
		}
		prev = s.Speed
	}
}

func TestSpeedCappedAtMax(t *testing.T) {
	cfg := quietConfig()
	cfg.Physics.SpeedIncrement = 1
	g := newTestGame(cfg, 1)

	res := stepN(g, 50)
	if res.State.Speed != 12 {
		t.Errorf("speed = %v, expected cap of 12", res.State.Speed)
	}
}

func TestBarrierTrajectoryAndCull(t *testing.T) {
	cfg := quietConfig()
	cfg.Physics.SpeedIncrement = 0
	g := newTestGame(cfg, 1)

	g.barriers = append(g.barriers, Barrier{
		ID: "b-test", X: -60, Y: 100, W: 60, H: 40,
		Orientation: OrientationHorizontal, Direction: DirRight,
	})

	stepN(g, 10)
	if len(g.Barriers()) != 1 || g.Barriers()[0].X != -30 {
		t.Fatalf("after 10 ticks barrier should be at x=-30, got %+v", g.Barriers())
	}

	stepN(g, 276)
	if len(g.Barriers()) != 1 || g.Barriers()[0].X != 798 {
		t.Fatalf("after 286 ticks barrier should be at x=798, got %+v", g.Barriers())
	}

	stepN(g, 1)
	if len(g.Barriers()) != 0 {
		t.Fatalf("barrier past x=800 should be culled, got %+v", g.Barriers())
	}
	if g.State().GameOver {
		t.Error("barrier on another row should never hit the player")
	}
}

func TestCollisionUsesPostMovePositions(t *testing.T) {
	cfg := quietConfig()
	cfg.Physics.SpeedIncrement = 0

	// Right edge at 377 moves to 380: touching the player, not overlapping
	g := newTestGame(cfg, 1)
	g.barriers = append(g.barriers, Barrier{
		ID: "b-touch", X: 317, Y: 280, W: 60, H: 40,
		Orientation: OrientationHorizontal, Direction: DirRight,
	})
	if res := g.Step(core.NewInputFrame()); res.Crashed {
		t.Fatal("touching edges should not collide")
	}

	// Right edge at 380 moves to 383: overlap after the move
	g = newTestGame(cfg, 1)
	g.barriers = append(g.barriers, Barrier{
		ID: "b-hit", X: 320, Y: 280, W: 60, H: 40,
		Orientation: OrientationHorizontal, Direction: DirRight,
	})
	res := g.Step(core.NewInputFrame())
	if !res.Crashed {
		t.Fatal("overlap after movement should end the game")
	}
	if !res.State.GameOver || res.State.Playing || res.State.Phase() != PhaseGameOver {
		t.Errorf("unexpected state after crash: %+v", res.State)
	}
}

func TestGameOverFreezesState(t *testing.T) {
	g := newTestGame(quietConfig(), 1)
	g.barriers = append(g.barriers, Barrier{
		ID: "b-hit", X: 380, Y: 280, W: 60, H: 40,
		Orientation: OrientationHorizontal, Direction: DirLeft,
	})
	g.Step(core.NewInputFrame())

	before := g.Snapshot()
	stepN(g, 20)
	g.Move(100, 100)
	g.TogglePause()

	if after := g.Snapshot(); !reflect.DeepEqual(before, after) {
		t.Errorf("state changed after game over:\nbefore %+v\nafter  %+v", before, after)
	}
}

func TestCoinCollection(t *testing.T) {
	g := newTestGame(quietConfig(), 1)
	g.coins = append(g.coins, Coin{ID: "c-test", X: 390, Y: 290, W: 30, H: 30})

	res := g.Step(core.NewInputFrame())
	if res.Collected != 1 {
		t.Fatalf("collected = %d, expected 1", res.Collected)
	}
	if res.State.Coins != 1 || res.State.Score != 51 {
		t.Errorf("after pickup coins=%d score=%d, expected 1 and 51", res.State.Coins, res.State.Score)
	}
	if len(g.Coins()) != 1 || !g.Coins()[0].Collected {
		t.Error("collected coin stays on the board until the next tick")
	}

	res = g.Step(core.NewInputFrame())
	if len(g.Coins()) != 0 {
		t.Error("collected coin should be removed on the following tick")
	}
	if res.State.Coins != 1 || res.State.Score != 52 {
		t.Errorf("coin should count once: coins=%d score=%d", res.State.Coins, res.State.Score)
	}
}

func TestBarrierCheckedBeforeCoins(t *testing.T) {
	g := newTestGame(quietConfig(), 1)
	g.coins = append(g.coins, Coin{ID: "c-test", X: 390, Y: 290, W: 30, H: 30})
	g.barriers = append(g.barriers, Barrier{
		ID: "b-hit", X: 380, Y: 280, W: 60, H: 40,
		Orientation: OrientationHorizontal, Direction: DirLeft,
	})

	res := g.Step(core.NewInputFrame())
	if !res.Crashed {
		t.Fatal("expected crash")
	}
	if res.State.Coins != 0 || res.State.Score != 1 {
		t.Errorf("coin should not be collected on the crash tick: %+v", res.State)
	}
}

func TestMaxCoinsOnBoard(t *testing.T) {
	cfg := quietConfig()
	cfg.Spawning.CoinRate = 1
	g := newTestGame(cfg, 3)

	for i := 0; i < 200; i++ {
		g.Step(core.NewInputFrame())
		live := 0
		for _, c := range g.Coins() {
			if !c.Collected {
				live++
			}
		}
		if live > cfg.Spawning.MaxCoins {
			t.Fatalf("tick %d: %d live coins, limit is %d", i, live, cfg.Spawning.MaxCoins)
		}
	}
}

func TestSpawnedBarrierStartsAtEdge(t *testing.T) {
	cfg := quietConfig()
	cfg.Spawning.BarrierRate = 1
	g := newTestGame(cfg, 5)

	g.Step(core.NewInputFrame())
	if len(g.Barriers()) != 1 {
		t.Fatalf("expected one spawned barrier, got %d", len(g.Barriers()))
	}

	b := g.Barriers()[0]
	atEdge := b.X == 800 || b.X == -60 || b.Y == 600 || b.Y == -60
	if !atEdge {
		t.Errorf("new barrier should start just off the canvas, got %+v", b)
	}
}

func TestPauseFreezesSimulation(t *testing.T) {
	g := newTestGame(quietConfig(), 1)
	stepN(g, 5)

	res := g.Step(frameWith(core.ActionPause))
	if !res.State.Paused || res.State.Phase() != PhasePaused {
		t.Fatalf("expected paused state, got %+v", res.State)
	}

	before := g.Snapshot()
	stepN(g, 30)
	g.Move(50, 0)
	if after := g.Snapshot(); !reflect.DeepEqual(before, after) {
		t.Error("paused game should not change")
	}

	res = g.Step(frameWith(core.ActionPause))
	if res.State.Paused {
		t.Fatal("second pause should resume")
	}
	if res.State.Distance != 6 {
		t.Errorf("resume tick should advance once, distance = %d", res.State.Distance)
	}
}

func TestMoveClampsToCanvas(t *testing.T) {
	g := newTestGame(quietConfig(), 1)

	g.Move(15, -15)
	if p := g.Player(); p.X != 395 || p.Y != 265 {
		t.Errorf("player at (%v, %v), expected (395, 265)", p.X, p.Y)
	}

	g.Move(-10000, -10000)
	if p := g.Player(); p.X != 0 || p.Y != 0 {
		t.Errorf("player at (%v, %v), expected (0, 0)", p.X, p.Y)
	}

	g.Move(10000, 10000)
	if p := g.Player(); p.X != 760 || p.Y != 560 {
		t.Errorf("player at (%v, %v), expected (760, 560)", p.X, p.Y)
	}
}

func TestMoveOnlyWhilePlaying(t *testing.T) {
	tests := []struct {
		name  string
		setup func() *Game
		phase Phase
		moved bool
	}{
		{
			name:  "idle",
			setup: func() *Game { return New(quietConfig()) },
			phase: PhaseIdle,
		},
		{
			name: "paused",
			setup: func() *Game {
				g := newTestGame(quietConfig(), 1)
				g.Step(frameWith(core.ActionPause))
				return g
			},
			phase: PhasePaused,
		},
		{
			name: "game over",
			setup: func() *Game {
				g := newTestGame(quietConfig(), 1)
				g.barriers = append(g.barriers, Barrier{
					ID: "b-hit", X: 380, Y: 280, W: 60, H: 40,
					Orientation: OrientationHorizontal, Direction: DirLeft,
				})
				g.Step(core.NewInputFrame())
				return g
			},
			phase: PhaseGameOver,
		},
		{
			name: "resumed",
			setup: func() *Game {
				g := newTestGame(quietConfig(), 1)
				g.Step(frameWith(core.ActionPause))
				g.Step(frameWith(core.ActionPause))
				return g
			},
			phase: PhasePlaying,
			moved: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := tt.setup()
			if got := g.State().Phase(); got != tt.phase {
				t.Fatalf("phase = %s, expected %s", got, tt.phase)
			}

			before := g.Player()
			g.Move(-10000, 10000)
			after := g.Player()

			if tt.moved {
				if after.X != 0 || after.Y != 560 {
					t.Errorf("player at (%v, %v), expected clamp to (0, 560)", after.X, after.Y)
				}
				return
			}
			if after != before {
				t.Errorf("%s game should drop moves, player went from %+v to %+v", tt.name, before, after)
			}
		})
	}
}

func TestRestartAfterGameOver(t *testing.T) {
	g := newTestGame(quietConfig(), 1)
	g.barriers = append(g.barriers, Barrier{
		ID: "b-hit", X: 380, Y: 280, W: 60, H: 40,
		Orientation: OrientationHorizontal, Direction: DirLeft,
	})
	g.Step(core.NewInputFrame())
	if !g.State().GameOver {
		t.Fatal("expected game over")
	}

	res := g.Step(frameWith(core.ActionRestart))
	if res.State.Phase() != PhasePlaying {
		t.Fatalf("restart should resume play, phase = %s", res.State.Phase())
	}
	if res.State.Score != 0 || res.State.Distance != 0 || res.State.Speed != 3 {
		t.Errorf("restart should reset counters: %+v", res.State)
	}
	if len(g.Barriers()) != 0 {
		t.Error("restart should clear barriers")
	}
	if g.PlayerName() != "Tester" {
		t.Errorf("restart should keep the player name, got %q", g.PlayerName())
	}
}

func TestGameDeterminism(t *testing.T) {
	run := func() Snapshot {
		g := newTestGame(config.DefaultDodgeConfig(), 12345)
		for i := 0; i < 600; i++ {
			switch i % 40 {
			case 0:
				g.Move(15, 0)
			case 20:
				g.Move(-15, 15)
			}
			if g.Step(core.NewInputFrame()).State.GameOver {
				break
			}
		}
		return g.Snapshot()
	}

	first := run()
	second := run()
	if !reflect.DeepEqual(first, second) {
		t.Errorf("same seed and inputs diverged:\n%+v\n%+v", first, second)
	}
}

func TestInitialDifficultyRaisesStartSpeed(t *testing.T) {
	cfg := quietConfig()
	config.ApplyDodgePreset(&cfg, config.DifficultyHard)
	g := newTestGame(cfg, 1)

	if got := g.State().Speed; math.Abs(got-5.1) > 1e-9 {
		t.Errorf("hard preset start speed = %v, expected 5.1", got)
	}
}

func TestFixedDifficultyHasNoRamp(t *testing.T) {
	cfg := quietConfig()
	config.ApplyDodgePreset(&cfg, config.DifficultyFixed)
	g := newTestGame(cfg, 1)

	if res := stepN(g, 100); res.State.Speed != 3 {
		t.Errorf("fixed preset speed = %v, expected constant 3", res.State.Speed)
	}
}

func TestRenderPlayfield(t *testing.T) {
	g := newTestGame(quietConfig(), 1)
	screen := core.NewScreen(82, 33)

	g.Render(screen)

	if !strings.Contains(screen.Row(0), "Score: 0") {
		t.Errorf("HUD row = %q", screen.Row(0))
	}
	if !strings.Contains(screen.Row(0), "Tester") {
		t.Errorf("HUD should show the player name, row = %q", screen.Row(0))
	}
	if screen.Get(0, 1) != '┌' || screen.Get(81, 32) != '┘' {
		t.Error("playfield border missing")
	}

	// 80x30 interior: the player spans interior cells 38..41 x 14..15
	for _, pos := range [][2]int{{40, 16}, {41, 17}} {
		cell := screen.GetCell(pos[0], pos[1])
		if cell.Rune != PlayerChar || cell.Color != core.ColorPlayer {
			t.Errorf("expected player at %v, got %+v", pos, cell)
		}
	}
}

func TestRenderEntities(t *testing.T) {
	g := newTestGame(quietConfig(), 1)
	g.barriers = append(g.barriers, Barrier{
		ID: "b-1", X: 100, Y: 100, W: 60, H: 40,
		Orientation: OrientationHorizontal, Direction: DirRight,
	})
	g.barriers = append(g.barriers, Barrier{
		ID: "b-2", X: 600, Y: 400, W: 40, H: 60,
		Orientation: OrientationVertical, Direction: DirUp,
	})
	g.coins = append(g.coins, Coin{ID: "c-3", X: 600, Y: 100, W: 30, H: 30})
	g.coins = append(g.coins, Coin{ID: "c-4", X: 100, Y: 400, W: 30, H: 30, Collected: true})

	screen := core.NewScreen(82, 33)
	g.Render(screen)

	// Cell centers: canvas x = (col-1+0.5)*10, y = (row-2+0.5)*20
	if c := screen.GetCell(1+12, 2+6); c.Rune != BarrierChar || c.Color != core.ColorBarrier {
		t.Errorf("horizontal barrier cell = %+v", c)
	}
	if c := screen.GetCell(1+62, 2+22); c.Rune != BarrierChar || c.Color != core.ColorBarrierTall {
		t.Errorf("vertical barrier cell = %+v", c)
	}
	if c := screen.GetCell(1+61, 2+5); c.Rune != CoinChar || c.Color != core.ColorCoin {
		t.Errorf("coin cell = %+v", c)
	}
	if c := screen.GetCell(1+11, 2+20); c.Rune == CoinChar {
		t.Error("collected coins should not be drawn")
	}
}

func TestRenderTooSmall(t *testing.T) {
	g := newTestGame(quietConfig(), 1)
	screen := core.NewScreen(20, 6)

	g.Render(screen)

	if !strings.Contains(screen.String(), "Terminal too small") {
		t.Errorf("expected too-small notice, got:\n%s", screen.String())
	}
	if strings.ContainsRune(screen.String(), PlayerChar) {
		t.Error("playfield should not be drawn on a tiny screen")
	}
}

func TestRenderPaused(t *testing.T) {
	g := newTestGame(quietConfig(), 1)
	g.TogglePause()

	screen := core.NewScreen(82, 33)
	g.Render(screen)

	if !strings.Contains(screen.String(), "PAUSED") {
		t.Error("paused overlay missing")
	}
}

func TestScreenToCanvas(t *testing.T) {
	g := newTestGame(quietConfig(), 1)

	x, y := g.ScreenToCanvas(82, 33, 40, 16)
	if math.Abs(x-395) > 1e-6 || math.Abs(y-290) > 1e-6 {
		t.Errorf("ScreenToCanvas = (%v, %v), expected (395, 290)", x, y)
	}

	cw, ch := g.CellSize(82, 33)
	if math.Abs(cw-10) > 1e-9 || math.Abs(ch-20) > 1e-9 {
		t.Errorf("CellSize = (%v, %v), expected (10, 20)", cw, ch)
	}
}
