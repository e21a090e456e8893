package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/dodge/internal/core"
)

// KeyMapper translates Bubble Tea key messages to game actions.
// This centralizes key bindings and makes them testable.
type KeyMapper struct{}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{}
}

// MapKey translates a key message to an action.
// Returns the action (may be ActionNone) and whether it's a quit request.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	switch msg.String() {
	case "ctrl+c", "q":
		return core.ActionQuit, true
	case "w", "up", "k":
		return core.ActionUp, false
	case "s", "down", "j":
		return core.ActionDown, false
	case "a", "left":
		return core.ActionLeft, false
	case "d", "right":
		return core.ActionRight, false
	case "enter":
		return core.ActionConfirm, false
	case "b", "esc":
		return core.ActionBack, false
	case "p", " ":
		return core.ActionPause, false
	case "r":
		return core.ActionRestart, false
	case "m":
		return core.ActionMode, false
	case "l", "tab":
		return core.ActionScores, false
	}

	return core.ActionNone, false
}

// bindingSet is a flat help.KeyMap.
type bindingSet []key.Binding

func (b bindingSet) ShortHelp() []key.Binding {
	return b
}

func (b bindingSet) FullHelp() [][]key.Binding {
	return [][]key.Binding{b}
}

var (
	keyMove     = key.NewBinding(key.WithKeys("up", "down", "left", "right", "w", "a", "s", "d"), key.WithHelp("←↑↓→/wasd", "move"))
	keyPause    = key.NewBinding(key.WithKeys("p", " "), key.WithHelp("p", "pause"))
	keyMode     = key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "controls"))
	keyQuit     = key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit"))
	keyPlay     = key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "play"))
	keyModeArr  = key.NewBinding(key.WithKeys("left", "right"), key.WithHelp("←/→", "controls"))
	keyScores   = key.NewBinding(key.WithKeys("tab", "l"), key.WithHelp("tab", "leaderboard"))
	keyEscQuit  = key.NewBinding(key.WithKeys("esc", "ctrl+c"), key.WithHelp("esc", "quit"))
	keyRestart  = key.NewBinding(key.WithKeys("r", "enter"), key.WithHelp("r", "play again"))
	keyMenu     = key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc", "menu"))
	keyBack     = key.NewBinding(key.WithKeys("esc", "b", "l", "tab"), key.WithHelp("esc", "back"))
	keyRefresh  = key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh"))
	keyScroll   = key.NewBinding(key.WithKeys("up", "down", "k", "j"), key.WithHelp("↑/↓", "scroll"))
	keyScreenie = key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "screenshot"))
)

var (
	startHelp       = bindingSet{keyPlay, keyModeArr, keyScores, keyEscQuit}
	playingHelp     = bindingSet{keyMove, keyPause, keyMode, keyScreenie, keyQuit}
	gameOverHelp    = bindingSet{keyRestart, keyScores, keyMenu, keyQuit}
	leaderboardHelp = bindingSet{keyScroll, keyRefresh, keyBack, keyQuit}
)
