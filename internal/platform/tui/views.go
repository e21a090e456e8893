package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/dodge/internal/input"
	"github.com/vovakirdan/dodge/internal/leaderboard"
)

// View renders the current screen.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	switch m.view {
	case ViewPlaying:
		return m.viewPlaying()
	case ViewGameOver:
		return m.center(m.viewGameOver())
	case ViewLeaderboard:
		return m.center(m.viewLeaderboard())
	default:
		return m.center(m.viewStart())
	}
}

func (m Model) center(content string) string {
	if m.width <= 0 || m.height <= 0 {
		return content
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

func (m Model) viewStart() string {
	t := m.theme
	var b strings.Builder

	b.WriteString(t.Title.Render("D O D G E"))
	b.WriteString("\n")
	b.WriteString(t.Subtitle.Render("Avoid the barriers. Grab the coins."))
	b.WriteString("\n\n")

	b.WriteString(t.Label.Render("Name  "))
	b.WriteString(m.nameInput.View())
	b.WriteString("\n\n")

	b.WriteString(t.Label.Render("Controls"))
	b.WriteString("\n")
	b.WriteString(m.modeSelector())
	b.WriteString("\n")
	b.WriteString(t.Muted.Render(m.mode.Hint()))
	b.WriteString("\n\n")

	b.WriteString(m.standingsLine())

	if m.online > 0 {
		b.WriteString("\n")
		b.WriteString(t.Muted.Render(fmt.Sprintf("%d player(s) online", m.online)))
	}
	if m.opts.Recorder.Offline() {
		b.WriteString("\n")
		b.WriteString(t.Notice.Render("Offline: scores will not be saved"))
	}
	if m.notice != "" {
		b.WriteString("\n")
		b.WriteString(t.Notice.Render(m.notice))
	}

	panel := t.Panel.Render(b.String())
	return panel + "\n" + m.help.View(startHelp)
}

// modeSelector renders the control modes with the active one highlighted.
func (m Model) modeSelector() string {
	parts := make([]string, 0, len(input.Modes))
	for _, mode := range input.Modes {
		if mode == m.mode {
			parts = append(parts, m.theme.ModeOn.Render(mode.Label()))
		} else {
			parts = append(parts, m.theme.ModeOff.Render(mode.Label()))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m Model) standingsLine() string {
	t := m.theme
	return t.Label.Render("Best ") + t.Value.Render(fmt.Sprintf("%d", m.standings.PersonalBest)) +
		t.Label.Render("   World record ") + t.Record.Render(fmt.Sprintf("%d", m.standings.WorldRecord))
}

func (m Model) viewPlaying() string {
	m.game.Render(m.screen)
	body := RenderScreen(m.screen)

	footer := m.theme.ModeOn.Render(m.mode.Label()) + " " +
		m.theme.Muted.Render(m.mode.Hint()) + "  " +
		m.help.View(playingHelp)
	footer = lipgloss.NewStyle().MaxWidth(max(1, m.width)).Render(footer)

	return body + "\n" + footer
}

func (m Model) viewGameOver() string {
	t := m.theme
	var b strings.Builder

	b.WriteString(t.GameOver.Render("GAME OVER"))
	b.WriteString("\n\n")

	switch m.badge {
	case leaderboard.BadgeWorldRecord, leaderboard.BadgePersonalBest:
		b.WriteString(t.Badge.Render(string(m.badge)))
		b.WriteString("\n\n")
	}

	rows := []struct {
		label string
		value int
	}{
		{"Score", m.final.Score},
		{"Coins", m.final.Coins},
		{"Distance", m.final.Distance},
	}
	for _, r := range rows {
		b.WriteString(t.Label.Render(fmt.Sprintf("%-10s", r.label)))
		b.WriteString(t.Value.Render(fmt.Sprintf("%d", r.value)))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(m.standingsLine())

	if m.opts.Recorder.Offline() {
		b.WriteString("\n")
		b.WriteString(t.Notice.Render("Offline: this score was not saved"))
	}
	if m.notice != "" {
		b.WriteString("\n")
		b.WriteString(t.Notice.Render(m.notice))
	}

	return t.Panel.Render(b.String()) + "\n" + m.help.View(gameOverHelp)
}

func (m Model) viewLeaderboard() string {
	body := m.scoreboard.View(m.theme, m.opts.Recorder.Offline())
	return body + "\n" + m.help.View(leaderboardHelp)
}
