package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"

	"github.com/vovakirdan/tui-2048/internal/registry"
	"github.com/vovakirdan/tui-2048/internal/storage"
)

const maxSaves = 50

// SavesKeyMap defines the key bindings for the saved games list.
type SavesKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Resume key.Binding
	Delete key.Binding
	Back   key.Binding
	Quit   key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k SavesKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Resume, k.Delete, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k SavesKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Resume, k.Delete},
		{k.Back, k.Quit},
	}
}

// DefaultSavesKeyMap returns default key bindings.
func DefaultSavesKeyMap() SavesKeyMap {
	return SavesKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "down"),
		),
		Resume: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "resume"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d", "delete"),
			key.WithHelp("d", "delete"),
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

// SavesModel lists saved games and lets the player resume or delete them.
type SavesModel struct {
	store     *storage.Store
	player    string // empty lists every player's saves
	saves     []storage.SavedGame
	table     table.Model
	help      help.Model
	keys      SavesKeyMap
	width     int
	height    int
	err       string
	selected  *storage.SavedGame
	quitting  bool
	goingBack bool
}

// NewSavesModel creates a saved games list for player.
func NewSavesModel(store *storage.Store, player string, width, height int) SavesModel {
	m := SavesModel{
		store:  store,
		player: player,
		keys:   DefaultSavesKeyMap(),
		help:   help.New(),
		width:  width,
		height: height,
	}
	m.table = m.createTable()
	m.reload()
	return m
}

func (m *SavesModel) createTable() table.Model {
	return newListTable([]table.Column{
		{Title: "ID", Width: 10},
		{Title: "Board", Width: 20},
		{Title: "Score", Width: 10},
		{Title: "Player", Width: 12},
		{Title: "Saved", Width: 16},
	}, m.height)
}

// reload fetches the save list and refreshes the table.
func (m *SavesModel) reload() {
	m.saves = nil
	if m.store != nil {
		saves, err := m.store.ListSaves(m.player, maxSaves)
		if err != nil {
			m.err = err.Error()
		} else {
			m.saves = saves
		}
	}

	rows := make([]table.Row, len(m.saves))
	for i, s := range m.saves {
		title := s.GameID
		if info, ok := registry.Lookup(s.GameID); ok {
			title = info.Title
		}
		rows[i] = table.Row{
			shortID(s.ID),
			title,
			humanize.Comma(int64(s.Score)),
			playerCell(s.Player),
			humanize.Time(s.UpdatedAt),
		}
	}
	setListRows(&m.table, rows)
}

// Init initializes the model.
func (m SavesModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the saves list.
func (m SavesModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
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

		case key.Matches(msg, m.keys.Resume):
			if cur, ok := m.current(); ok {
				save, err := m.store.LoadGame(cur.ID)
				if err != nil {
					m.err = err.Error()
					return m, nil
				}
				m.selected = save
				return m, tea.Quit
			}
			return m, nil

		case key.Matches(msg, m.keys.Delete):
			if cur, ok := m.current(); ok {
				if err := m.store.DeleteSave(cur.ID); err != nil {
					m.err = err.Error()
				} else {
					m.err = ""
				}
				m.reload()
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table = m.createTable()
		m.reload()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// current returns the highlighted save.
func (m SavesModel) current() (storage.SavedGame, bool) {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.saves) {
		return storage.SavedGame{}, false
	}
	return m.saves[i], true
}

// View renders the saves list.
func (m SavesModel) View() string {
	if m.quitting || m.goingBack || m.selected != nil {
		return ""
	}

	var b strings.Builder

	title := "SAVED GAMES"
	if m.player != "" {
		title = fmt.Sprintf("SAVED GAMES - %s", m.player)
	}
	b.WriteString(listTitleStyle.Render(centerText(title, m.width)))
	b.WriteString("\n\n")
	b.WriteString(renderList(m.table, len(m.saves), "No saved games.\nPress Ctrl+S during a game to save it."))
	b.WriteString("\n")

	if m.err != "" {
		b.WriteString(listErrStyle.Render(m.err))
		b.WriteString("\n")
	}
	b.WriteString(listDimStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// Selected returns the save chosen for resuming, with its state loaded.
func (m SavesModel) Selected() *storage.SavedGame {
	return m.selected
}

// IsGoingBack returns true if user wants to go back to menu.
func (m SavesModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m SavesModel) IsQuitting() bool {
	return m.quitting
}

// RunSaves runs the saved games screen. It returns the save to resume,
// or nil with goBack reporting whether to return to the menu.
func RunSaves(store *storage.Store, player string, width, height int) (resume *storage.SavedGame, goBack bool, err error) {
	model := NewSavesModel(store, player, width, height)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return nil, false, err
	}

	m, ok := finalModel.(SavesModel)
	if !ok {
		return nil, false, nil
	}
	if s := m.Selected(); s != nil {
		return s, false, nil
	}
	return nil, m.IsGoingBack(), nil
}
