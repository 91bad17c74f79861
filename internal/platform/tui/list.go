package tui

import (
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
)

// Styles shared by the list screens (scores, saves).
var (
	listTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("229"))
	listBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)
	listDimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	listErrStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	listEmptyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(2, 4)
)

// listChrome is the height taken by the title, status lines, box border
// and help bar around a list table.
const listChrome = 9

// newListTable builds a focused table that fills the screen height.
func newListTable(columns []table.Column, screenH int) table.Model {
	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(screenH-listChrome, 3)),
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

// setListRows replaces the rows and keeps the cursor on a valid row.
func setListRows(t *table.Model, rows []table.Row) {
	t.SetRows(rows)
	if len(rows) > 0 && t.Cursor() >= len(rows) {
		t.GotoBottom()
	}
}

// renderList boxes the table, or the empty message when there are no rows.
func renderList(t table.Model, rows int, empty string) string {
	if rows == 0 {
		return listBoxStyle.Render(listEmptyStyle.Render(empty))
	}
	return listBoxStyle.Render(t.View())
}

// playerCell shows a player name, or a dash for anonymous entries.
func playerCell(player string) string {
	if player == "" {
		return "-"
	}
	return player
}
