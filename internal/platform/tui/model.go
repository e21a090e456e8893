package tui

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/dodge/internal/config"
	"github.com/vovakirdan/dodge/internal/core"
	"github.com/vovakirdan/dodge/internal/game"
	"github.com/vovakirdan/dodge/internal/input"
	"github.com/vovakirdan/dodge/internal/leaderboard"
	"github.com/vovakirdan/dodge/internal/prefs"
	"github.com/vovakirdan/dodge/internal/session"
)

// View identifies the screen being shown.
type View int

const (
	ViewStart View = iota
	ViewPlaying
	ViewGameOver
	ViewLeaderboard
)

// ScoresMsg carries fresh standings, after a save or a refresh.
type ScoresMsg struct {
	Standings leaderboard.Standings
	Saved     bool
	// Rated saves carry the badge checked against the stored records.
	Rated bool
	Badge leaderboard.Badge
}

// EventMsg wraps a server event for the update loop.
type EventMsg session.Event

// Options configures a Model.
type Options struct {
	Config     config.DodgeConfig
	Runtime    core.RuntimeConfig
	Recorder   *leaderboard.Recorder
	SessionID  session.ID
	PlayerName string
	Controls   input.ControlMode

	Prefs    *prefs.Manager    // Local play only
	Handle   *session.Handle   // SSH only
	Registry *session.Registry // SSH only
	Logger   *log.Logger
}

// Model is the Bubble Tea model for a Dodge session: start screen, play,
// game over and leaderboard.
type Model struct {
	opts      Options
	game      *game.Game
	screen    *core.Screen
	keyMapper *KeyMapper
	theme     Theme
	help      help.Model

	view       View
	returnView View // Where the leaderboard goes back to
	nameInput  textinput.Model
	scoreboard Scoreboard

	mode       input.ControlMode
	drag       input.DragTracker
	tilt       input.TiltTracker
	inputFrame core.InputFrame

	standings leaderboard.Standings
	final     game.State
	badge     leaderboard.Badge
	notice    string
	online    int

	width, height int
	quitting      bool
}

// NewModel creates a session model.
func NewModel(opts Options) Model {
	if opts.Runtime.Seed == 0 {
		opts.Runtime.Seed = time.Now().UnixNano()
	}
	if opts.Runtime.TickRate <= 0 {
		opts.Runtime.TickRate = 60
	}
	if opts.Recorder == nil {
		opts.Recorder = leaderboard.NewRecorder(nil, opts.Logger)
	}
	if opts.SessionID == "" {
		opts.SessionID = session.NewID(time.Now(), rand.New(rand.NewSource(opts.Runtime.Seed)))
	}
	if opts.Controls == "" {
		opts.Controls = input.ModeButtons
	}

	g := game.New(opts.Config)
	g.Reset(opts.Runtime)

	ti := textinput.New()
	ti.Placeholder = game.DefaultPlayerName
	ti.CharLimit = game.MaxPlayerNameLen
	ti.Width = game.MaxPlayerNameLen + 1
	ti.SetValue(opts.PlayerName)
	ti.Focus()

	h := help.New()
	h.Width = opts.Runtime.ScreenW

	return Model{
		opts:       opts,
		game:       g,
		screen:     core.NewScreen(max(1, opts.Runtime.ScreenW), max(1, opts.Runtime.ScreenH-1)),
		keyMapper:  NewKeyMapper(),
		theme:      DefaultTheme(),
		help:       h,
		nameInput:  ti,
		scoreboard: NewScoreboard(opts.Runtime.ScreenW, opts.Runtime.ScreenH),
		mode:       opts.Controls,
		inputFrame: core.NewInputFrame(),
		width:      opts.Runtime.ScreenW,
		height:     opts.Runtime.ScreenH,
	}
}

// Init starts the tick loop and loads the standings.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		tickCmd(m.opts.Runtime.TickRate),
		m.refreshCmd(),
		textinput.Blink,
	}
	if m.opts.Handle != nil {
		cmds = append(cmds, waitForEvent(m.opts.Handle))
	}
	return tea.Batch(cmds...)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case tea.KeyMsg:
		switch m.view {
		case ViewStart:
			return m.updateStart(msg)
		case ViewPlaying:
			return m.updatePlaying(msg)
		case ViewGameOver:
			return m.updateGameOver(msg)
		case ViewLeaderboard:
			return m.updateLeaderboard(msg)
		}

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case TickMsg:
		return m.handleTick()

	case ScoresMsg:
		m.standings = msg.Standings
		m.scoreboard.SetRecords(msg.Standings.Top, m.final.Score)
		if msg.Rated && m.game.State().GameOver {
			m.badge = msg.Badge
		}
		return m, nil

	case EventMsg:
		return m.handleEvent(session.Event(msg))
	}

	if m.view == ViewStart {
		var cmd tea.Cmd
		m.nameInput, cmd = m.nameInput.Update(msg)
		return m, cmd
	}
	return m, nil
}

// handleResize processes window resize events. The canvas is logical, so a
// running game keeps going at the new scale.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height
	m.opts.Runtime.ScreenW = msg.Width
	m.opts.Runtime.ScreenH = msg.Height
	m.screen.Resize(max(1, msg.Width), max(1, msg.Height-1))
	m.scoreboard.Resize(msg.Width, msg.Height)
	m.help.Width = msg.Width
	return m, nil
}

func (m Model) updateStart(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "esc":
		m.quitting = true
		return m, tea.Quit
	case "enter":
		return m.startGame()
	case "tab":
		return m.openLeaderboard()
	case "left":
		m.mode = prevMode(m.mode)
		return m, nil
	case "right":
		m.mode = m.mode.Next()
		return m, nil
	}

	var cmd tea.Cmd
	m.nameInput, cmd = m.nameInput.Update(msg)
	return m, cmd
}

func (m Model) updatePlaying(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	action, isQuit := m.keyMapper.MapKey(msg)
	if isQuit {
		m.quitting = true
		return m, tea.Quit
	}

	switch action {
	case core.ActionPause, core.ActionBack:
		m.inputFrame.Set(core.ActionPause)
	case core.ActionMode:
		m.setMode(m.mode.Next())
	default:
		if m.mode != input.ModeButtons {
			return m, nil
		}
		if dx, dy, ok := input.ButtonDelta(action, m.opts.Config.Player.MoveStep); ok {
			m.game.Move(dx, dy)
		}
	}
	return m, nil
}

func (m Model) updateGameOver(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action, isQuit := m.keyMapper.MapKey(msg)
	if isQuit {
		m.quitting = true
		return m, tea.Quit
	}

	switch action {
	case core.ActionRestart, core.ActionConfirm:
		m.inputFrame.Set(core.ActionRestart)
	case core.ActionScores:
		return m.openLeaderboard()
	case core.ActionBack:
		m.view = ViewStart
		m.nameInput.Focus()
		return m, textinput.Blink
	case core.ActionMode:
		m.setMode(m.mode.Next())
	}
	return m, nil
}

func (m Model) updateLeaderboard(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action, isQuit := m.keyMapper.MapKey(msg)
	if isQuit {
		m.quitting = true
		return m, tea.Quit
	}

	switch action {
	case core.ActionBack, core.ActionScores:
		m.view = m.returnView
		if m.view == ViewStart {
			m.nameInput.Focus()
			return m, textinput.Blink
		}
		return m, nil
	case core.ActionRestart:
		return m, m.refreshCmd()
	}

	var cmd tea.Cmd
	m.scoreboard, cmd = m.scoreboard.Update(msg)
	return m, cmd
}

// handleMouse feeds pointer events to the active control mode.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.view != ViewPlaying {
		return m, nil
	}

	x, y := m.game.ScreenToCanvas(m.screen.Width(), m.screen.Height(), msg.X, msg.Y)

	switch m.mode {
	case input.ModeSwipe:
		switch {
		case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
			m.drag.Press(x, y)
		case msg.Action == tea.MouseActionMotion && msg.Button == tea.MouseButtonLeft:
			if dx, dy, ok := m.drag.Drag(x, y); ok {
				m.game.Move(dx, dy)
			}
		case msg.Action == tea.MouseActionRelease:
			m.drag.Release()
		}

	case input.ModeTilt:
		if msg.Action != tea.MouseActionMotion {
			return m, nil
		}
		cw, ch := m.opts.Config.Canvas.Width, m.opts.Config.Canvas.Height
		gamma, beta := input.PointerToTilt(x, y, cw, ch)
		if dx, dy, ok := m.tilt.Sample(gamma, beta); ok {
			m.game.Move(dx, dy)
		}
	}

	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	next := tickCmd(m.opts.Runtime.TickRate)

	if m.view != ViewPlaying && m.view != ViewGameOver {
		m.inputFrame.Clear()
		return m, next
	}

	wasOver := m.game.State().GameOver
	result := m.game.Step(m.inputFrame)
	m.inputFrame.Clear()

	// Restarted from the game over screen
	if wasOver && result.State.Phase() == game.PhasePlaying {
		m.beginRun()
		return m, tea.Batch(next, m.refreshCmd())
	}

	if result.Crashed {
		m.final = result.State
		m.badge = leaderboard.BadgeFor(result.State.Score, m.standings)
		m.view = ViewGameOver
		m.drag.Release()
		m.tilt.Reset()
		return m, tea.Batch(next, m.saveCmd(result.State))
	}

	return m, next
}

// startGame leaves the start screen and begins a run under the typed name.
func (m Model) startGame() (tea.Model, tea.Cmd) {
	name := game.NormalizePlayerName(m.nameInput.Value())
	m.nameInput.SetValue(name)
	m.nameInput.Blur()

	if m.opts.Prefs != nil {
		m.opts.Prefs.Remember(name, string(m.mode))
	}

	m.game.Start(name)
	m.beginRun()
	return m, m.refreshCmd()
}

// beginRun resets per-run UI state for a game that just started.
func (m *Model) beginRun() {
	m.view = ViewPlaying
	m.final = game.State{}
	m.badge = leaderboard.BadgeNone
	m.notice = ""
	m.drag.Release()
	m.tilt.Reset()
}

func (m Model) openLeaderboard() (tea.Model, tea.Cmd) {
	m.returnView = m.view
	m.view = ViewLeaderboard
	m.nameInput.Blur()
	return m, m.refreshCmd()
}

// setMode switches control mode and forgets pointer history.
func (m *Model) setMode(mode input.ControlMode) {
	m.mode = mode
	m.drag.Release()
	m.tilt.Reset()
	if m.opts.Prefs != nil {
		m.opts.Prefs.Remember("", string(mode))
	}
}

func prevMode(mode input.ControlMode) input.ControlMode {
	for i, candidate := range input.Modes {
		if candidate == mode {
			return input.Modes[(i+len(input.Modes)-1)%len(input.Modes)]
		}
	}
	return input.ModeButtons
}

// saveCmd records the finished game off the update loop and reports the
// standings that follow it.
func (m Model) saveCmd(final game.State) tea.Cmd {
	rec := leaderboard.Record{
		PlayerName: m.game.PlayerName(),
		Score:      final.Score,
		Coins:      final.Coins,
		Distance:   final.Distance,
		SessionID:  m.opts.SessionID.String(),
		CreatedAt:  time.Now(),
	}
	recorder := m.opts.Recorder
	registry := m.opts.Registry
	from := m.opts.SessionID

	return func() tea.Msg {
		sub := recorder.Submit(context.Background(), rec)
		if sub.Rated && sub.Badge == leaderboard.BadgeWorldRecord && registry != nil {
			registry.Broadcast(session.Event{
				Kind:       session.EventWorldRecord,
				From:       from,
				PlayerName: rec.PlayerName,
				Score:      rec.Score,
			})
		}
		return ScoresMsg{Standings: sub.Standings, Saved: true, Rated: sub.Rated, Badge: sub.Badge}
	}
}

// refreshCmd reloads the standings.
func (m Model) refreshCmd() tea.Cmd {
	recorder := m.opts.Recorder
	id := m.opts.SessionID.String()
	return func() tea.Msg {
		return ScoresMsg{Standings: recorder.Refresh(context.Background(), id)}
	}
}

// waitForEvent returns a command that waits for the next server event.
func waitForEvent(h *session.Handle) tea.Cmd {
	return func() tea.Msg {
		select {
		case evt := <-h.Events():
			return EventMsg(evt)
		case <-h.Done():
			return nil
		}
	}
}

func (m Model) handleEvent(evt session.Event) (tea.Model, tea.Cmd) {
	next := waitForEvent(m.opts.Handle)

	switch evt.Kind {
	case session.EventPresence:
		m.online = evt.Online
		return m, next
	case session.EventWorldRecord:
		if evt.From == m.opts.SessionID {
			return m, next
		}
		m.notice = fmt.Sprintf("%s set a new world record: %d", evt.PlayerName, evt.Score)
		return m, tea.Batch(next, m.refreshCmd())
	}

	return m, next
}

// saveScreenshot saves the current playfield to a text file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	dir := filepath.Join(home, ".dodge", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	filename := fmt.Sprintf("dodge_%s.txt", time.Now().Format("20060102_150405"))
	path := filepath.Join(dir, filename)

	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger().Warn("screenshot failed", "error", err)
		return
	}
	m.logger().Info("screenshot saved", "path", path)
}

func (m Model) logger() *log.Logger {
	if m.opts.Logger != nil {
		return m.opts.Logger
	}
	return log.Default()
}

// CurrentView returns the screen being shown.
func (m Model) CurrentView() View {
	return m.view
}

// Game returns the underlying game.
func (m Model) Game() *game.Game {
	return m.game
}

// Mode returns the active control mode.
func (m Model) Mode() input.ControlMode {
	return m.mode
}

// Standings returns the last known standings.
func (m Model) Standings() leaderboard.Standings {
	return m.standings
}

// Badge returns the badge earned by the last finished game.
func (m Model) Badge() leaderboard.Badge {
	return m.badge
}

// IsQuitting returns true if the user requested to quit.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// Run starts a local Bubble Tea program.
func Run(opts Options) error {
	p := tea.NewProgram(
		NewModel(opts),
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
	)

	_, err := p.Run()
	return err
}
