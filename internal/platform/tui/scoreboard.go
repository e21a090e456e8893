package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/dodge/internal/leaderboard"
)

// Scoreboard layout constants
const (
	tableMinHeight = 4
	dateColWidth   = 12
)

// rankMarks decorate the first three places.
var rankMarks = [...]string{"★", "✦", "•"}

// Scoreboard is the leaderboard table shown inside the session model.
type Scoreboard struct {
	table   table.Model
	records []leaderboard.Record
	current int // Score of the last finished game, highlighted when listed
	width   int
	height  int
}

// NewScoreboard creates an empty scoreboard sized for the terminal.
func NewScoreboard(width, height int) Scoreboard {
	sb := Scoreboard{width: width, height: height}
	sb.table = sb.createTable()
	return sb
}

// createTable creates a new table with columns fitted to the width.
func (sb *Scoreboard) createTable() table.Model {
	columns := []table.Column{
		{Title: "Rank", Width: 6},
		{Title: "Player", Width: 20},
		{Title: "Score", Width: 8},
		{Title: "Coins", Width: 6},
		{Title: "Dist", Width: 7},
		{Title: "Date", Width: dateColWidth},
	}

	// Drop the date and then the distance on narrow terminals
	available := sb.width - 8
	if available < 70 {
		columns = columns[:5]
	}
	if available < 56 {
		columns = columns[:4]
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(tableMinHeight, sb.height-10)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// SetRecords replaces the listed records. The cursor lands on the first row
// matching current, so the player's own result is highlighted.
func (sb *Scoreboard) SetRecords(records []leaderboard.Record, current int) {
	sb.records = records
	sb.current = current
	sb.updateTableRows()
}

// Resize refits the table to a new terminal size.
func (sb *Scoreboard) Resize(width, height int) {
	sb.width = width
	sb.height = height
	sb.table = sb.createTable()
	sb.updateTableRows()
}

// updateTableRows updates the table with the current records.
func (sb *Scoreboard) updateTableRows() {
	cols := len(sb.table.Columns())
	rows := make([]table.Row, len(sb.records))
	highlight := -1

	for i, r := range sb.records {
		rank := fmt.Sprintf("#%d", i+1)
		if i < len(rankMarks) {
			rank = rankMarks[i] + " " + rank
		}
		row := table.Row{
			rank,
			r.PlayerName,
			fmt.Sprintf("%d", r.Score),
			fmt.Sprintf("%d", r.Coins),
			fmt.Sprintf("%d", r.Distance),
			r.CreatedAt.Local().Format("Jan 02 15:04"),
		}
		rows[i] = row[:cols]

		if highlight < 0 && sb.current > 0 && r.Score == sb.current {
			highlight = i
		}
	}
	sb.table.SetRows(rows)

	if highlight >= 0 {
		sb.table.SetCursor(highlight)
	} else {
		sb.table.GotoTop()
	}
}

// Highlighted returns the index of the row matching the current score, or -1.
func (sb Scoreboard) Highlighted() int {
	for i, r := range sb.records {
		if sb.current > 0 && r.Score == sb.current {
			return i
		}
	}
	return -1
}

// Update passes scrolling keys to the table.
func (sb Scoreboard) Update(msg tea.Msg) (Scoreboard, tea.Cmd) {
	var cmd tea.Cmd
	sb.table, cmd = sb.table.Update(msg)
	return sb, cmd
}

// View renders the table or an empty message.
func (sb Scoreboard) View(theme Theme, offline bool) string {
	var b strings.Builder

	b.WriteString(theme.Title.Render(fmt.Sprintf("GLOBAL LEADERBOARD - TOP %d", leaderboard.DefaultTopN)))
	b.WriteString("\n\n")

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	switch {
	case offline:
		b.WriteString(tableStyle.Render(theme.Muted.Italic(true).Padding(1, 4).
			Render("Playing offline.\nScores are not being recorded.")))
	case len(sb.records) == 0:
		b.WriteString(tableStyle.Render(theme.Muted.Italic(true).Padding(1, 4).
			Render("No scores yet.\nBe the first to play!")))
	default:
		b.WriteString(tableStyle.Render(sb.table.View()))
	}

	return b.String()
}
