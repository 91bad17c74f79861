package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/vovakirdan/tui-2048/internal/games/t2048"
	"github.com/vovakirdan/tui-2048/internal/registry"
	"github.com/vovakirdan/tui-2048/internal/storage"
)

const maxScores = 100

// ScoreboardKeyMap defines the key bindings for the high score screen.
type ScoreboardKeyMap struct {
	Up        key.Binding
	Down      key.Binding
	NextBoard key.Binding
	PrevBoard key.Binding
	Mine      key.Binding
	Back      key.Binding
	Quit      key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.PrevBoard, k.NextBoard, k.Mine, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.PrevBoard, k.NextBoard},
		{k.Mine, k.Back, k.Quit},
	}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		NextBoard: key.NewBinding(
			key.WithKeys("right", "l", "tab"),
			key.WithHelp("→/tab", "next board"),
		),
		PrevBoard: key.NewBinding(
			key.WithKeys("left", "h", "shift+tab"),
			key.WithHelp("←", "prev board"),
		),
		Mine: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "only mine"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// scoreBoard is one leaderboard: a registered variant and its grid.
type scoreBoard struct {
	id    string
	title string
	label string // "4x4 campaign", "5x5 endless"
}

// scoreBoards lists the registered 2048 variants in menu order. Scores
// from different grids are never mixed.
func scoreBoards() []scoreBoard {
	boards := make([]scoreBoard, 0, len(t2048.Variants))
	for _, v := range t2048.Variants {
		if !registry.Exists(v.ID) {
			continue
		}
		rows, cols := v.Size()
		boards = append(boards, scoreBoard{
			id:    v.ID,
			title: v.Title,
			label: fmt.Sprintf("%dx%d %s", rows, cols, v.Mode),
		})
	}
	return boards
}

// ScoreboardModel shows the high scores of one board at a time.
type ScoreboardModel struct {
	boards   []scoreBoard
	cursor   int
	store    *storage.Store
	player   string
	mineOnly bool

	scores []rankedScore      // rows shown, after the player filter
	stats  *storage.GameStats // whole board, ignoring the filter
	err    string

	table     table.Model
	help      help.Model
	keys      ScoreboardKeyMap
	width     int
	height    int
	quitting  bool
	goingBack bool
}

// NewScoreboardModel creates the high score screen. player is marked in
// the table and used by the "only mine" filter.
func NewScoreboardModel(store *storage.Store, player string, width, height int) ScoreboardModel {
	m := ScoreboardModel{
		boards: scoreBoards(),
		store:  store,
		player: player,
		keys:   DefaultScoreboardKeyMap(),
		help:   help.New(),
		width:  width,
		height: height,
	}
	m.table = m.createTable()
	m.load()
	return m
}

func (m *ScoreboardModel) createTable() table.Model {
	return newListTable([]table.Column{
		{Title: "Rank", Width: 6},
		{Title: "Score", Width: 12},
		{Title: "Player", Width: 14},
		{Title: "When", Width: 18},
	}, m.height)
}

// board returns the selected leaderboard.
func (m ScoreboardModel) board() (scoreBoard, bool) {
	if m.cursor < 0 || m.cursor >= len(m.boards) {
		return scoreBoard{}, false
	}
	return m.boards[m.cursor], true
}

// load fetches scores and statistics for the selected board. Filtered
// entries keep their rank on the whole board.
func (m *ScoreboardModel) load() {
	m.scores, m.stats, m.err = nil, nil, ""
	b, ok := m.board()
	if ok && m.store != nil {
		scores, err := m.store.TopScores(b.id, maxScores)
		if err == nil {
			m.stats, err = m.store.GetGameStats(b.id)
		}
		if err != nil {
			m.err = err.Error()
		}
		for i, s := range scores {
			if !m.mineOnly || s.Player == m.player {
				m.scores = append(m.scores, rankedScore{rank: i + 1, ScoreEntry: s})
			}
		}
	}
	m.fillTable()
}

// rankedScore is a score with its position on the board.
type rankedScore struct {
	rank int
	storage.ScoreEntry
}

func (m *ScoreboardModel) fillTable() {
	rows := make([]table.Row, len(m.scores))
	for i, e := range m.scores {
		player := playerCell(e.Player)
		if m.player != "" && e.Player == m.player {
			player += " *"
		}
		rows[i] = table.Row{
			fmt.Sprintf("#%d", e.rank),
			humanize.Comma(int64(e.Score)),
			player,
			humanize.Time(e.CreatedAt),
		}
	}
	setListRows(&m.table, rows)
	m.table.GotoTop()
}

// Init initializes the scoreboard model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.NextBoard):
			m.step(1)
			return m, nil

		case key.Matches(msg, m.keys.PrevBoard):
			m.step(-1)
			return m, nil

		case key.Matches(msg, m.keys.Mine):
			if m.player != "" {
				m.mineOnly = !m.mineOnly
				m.load()
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table = m.createTable()
		m.load()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// step moves the board cursor by delta, wrapping around.
func (m *ScoreboardModel) step(delta int) {
	if len(m.boards) == 0 {
		return
	}
	m.cursor = (m.cursor + delta + len(m.boards)) % len(m.boards)
	m.load()
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder
	b.WriteString(listTitleStyle.Render(centerText("HIGH SCORES", m.width)))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, m.boardTabs()))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(centerText(m.summary(), m.width)))
	b.WriteString("\n\n")

	empty := "No scores on this board yet.\nFinish a game to set one!"
	if m.mineOnly {
		empty = fmt.Sprintf("No scores by %s on this board.", m.player)
	}
	b.WriteString(renderList(m.table, len(m.scores), empty))
	b.WriteString("\n")

	if m.err != "" {
		b.WriteString(listErrStyle.Render(m.err))
		b.WriteString("\n")
	}
	b.WriteString(listDimStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// boardTabs renders one tab per grid, or only the selected one with
// arrows when the tabs do not fit.
func (m ScoreboardModel) boardTabs() string {
	cur, ok := m.board()
	if !ok {
		return "no boards"
	}

	active := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Padding(0, 1)
	tabs := make([]string, len(m.boards))
	width := 0
	for i, sb := range m.boards {
		if i == m.cursor {
			tabs[i] = active.Render(sb.label)
		} else {
			tabs[i] = listDimStyle.Render(" " + sb.label + " ")
		}
		width += len(sb.label) + 3
	}
	if width > m.width-4 {
		return fmt.Sprintf("< %s (%s) >", cur.title, cur.label)
	}
	return strings.Join(tabs, " ")
}

// summary describes the selected board: games, best, average and the
// last finished game.
func (m ScoreboardModel) summary() string {
	if m.stats == nil || m.stats.GamesCount == 0 {
		if cur, ok := m.board(); ok {
			return cur.title
		}
		return ""
	}
	s := m.stats
	parts := []string{
		humanize.Comma(int64(s.GamesCount)) + " games",
		"best " + humanize.Comma(int64(s.HighScore)),
		"avg " + humanize.CommafWithDigits(s.AvgScore, 0),
	}
	if !s.LastPlayed.IsZero() {
		parts = append(parts, "last "+humanize.Time(s.LastPlayed))
	}
	return strings.Join(parts, " · ")
}

// IsGoingBack returns true if user wants to go back to menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// RunScoreboard runs the high score screen for player.
// Returns true if user wants to go back to menu, false if quitting.
func RunScoreboard(store *storage.Store, player string, width, height int) (goBack bool, err error) {
	p := tea.NewProgram(
		NewScoreboardModel(store, player, width, height),
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}

	m, ok := finalModel.(ScoreboardModel)
	if !ok {
		return false, nil
	}
	return m.IsGoingBack(), nil
}
