package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-2048/internal/core"
	"github.com/vovakirdan/tui-2048/internal/registry"
	"github.com/vovakirdan/tui-2048/internal/storage"
)

// statusDuration is how long a status message stays on the bottom row.
const statusDuration = 2 * time.Second

// controlHinter is implemented by games that describe their own controls.
type controlHinter interface {
	Controls() string
}

// GameModel is the Bubble Tea model for running a game. It is used both
// standalone (play command) and embedded in an SSH session.
type GameModel struct {
	game       registry.Game
	screen     *core.Screen
	store      *storage.Store
	config     core.RuntimeConfig
	inputFrame core.InputFrame
	gameState  core.GameState
	keyMapper  *KeyMapper

	saveID      string // ID of the save slot this run writes to
	status      string
	statusUntil time.Time

	quitting   bool
	backToMenu bool
	scoreSaved bool // Whether score has been saved for current game over
}

// NewGameModel creates a model for game and starts it. When resume is not
// nil the saved state is restored and later saves overwrite the same slot.
func NewGameModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, resume *storage.SavedGame) (GameModel, error) {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	m := GameModel{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:      store,
		config:     cfg,
		inputFrame: core.NewInputFrame(),
		keyMapper:  NewKeyMapper(),
	}

	game.Reset(cfg)
	if resume != nil {
		saver, ok := game.(registry.Saver)
		if !ok {
			return m, fmt.Errorf("tui: game %q cannot be resumed", game.ID())
		}
		if err := saver.RestoreState(resume.State); err != nil {
			return m, fmt.Errorf("tui: resume %s: %w", resume.ID, err)
		}
		m.saveID = resume.ID
		m.setStatus("Resumed save " + shortID(resume.ID))
	}
	m.gameState = game.State()
	// A finished save must not be recorded twice
	m.scoreSaved = m.gameState.GameOver

	return m, nil
}

// Init starts the tick loop.
func (m GameModel) Init() tea.Cmd {
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action, isQuit := m.keyMapper.MapKey(msg)
	switch {
	case isQuit:
		m.quitting = true
		return m, tea.Quit
	case action == core.ActionSave:
		m.save()
		return m, nil
	case action == core.ActionBack:
		// Leaving mid-run needs a pause first so a stray Esc doesn't end it
		if m.gameState.GameOver || m.gameState.Paused {
			m.backToMenu = true
			return m, tea.Quit
		}
		return m, nil
	case action == core.ActionRestart && !m.gameState.GameOver:
		return m, nil
	}

	if action != core.ActionNone {
		m.inputFrame.Set(action)
	}
	return m, nil
}

// handleResize adapts the screen and keeps the run going at the new size.
func (m GameModel) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)

	saver, ok := m.game.(registry.Saver)
	if !ok {
		if !m.gameState.GameOver {
			m.game.Reset(m.config)
		}
		return m, nil
	}

	data, err := saver.SaveState()
	m.game.Reset(m.config)
	if err == nil {
		if err := saver.RestoreState(data); err != nil {
			m.setStatus("Resize lost progress: " + err.Error())
		}
	}
	m.gameState = m.game.State()
	return m, nil
}

// handleTick processes simulation ticks.
func (m GameModel) handleTick() (tea.Model, tea.Cmd) {
	if m.status != "" && time.Now().After(m.statusUntil) {
		m.status = ""
	}

	// Check for restart
	if m.inputFrame.Has(core.ActionRestart) && m.gameState.GameOver {
		// Reset seed for new game
		m.config.Seed = time.Now().UnixNano()
		m.game.Reset(m.config)
		m.gameState = m.game.State()
		m.scoreSaved = false
		m.saveID = ""
		m.inputFrame.Clear()
		return m, tickCmd(m.config.TickRate)
	}

	// Run game simulation
	result := m.game.Step(m.inputFrame)
	m.gameState = result.State

	// Save score on game over (once)
	if m.gameState.GameOver && !m.scoreSaved {
		m.recordScore()
		m.scoreSaved = true
	}

	// Clear input for next frame
	m.inputFrame.Clear()

	// Continue ticking
	return m, tickCmd(m.config.TickRate)
}

// recordScore stores the final score. Zero scores are not recorded.
func (m *GameModel) recordScore() {
	if m.store == nil || m.gameState.Score <= 0 {
		return
	}
	//nolint:errcheck // Best-effort save, game continues regardless
	m.store.SaveScore(m.game.ID(), m.config.Player, m.gameState.Score)
}

// save writes the current run into its save slot.
func (m *GameModel) save() {
	saver, ok := m.game.(registry.Saver)
	if !ok {
		m.setStatus("This game cannot be saved")
		return
	}
	if m.store == nil {
		m.setStatus("Save failed: no database")
		return
	}

	data, err := saver.SaveState()
	if err != nil {
		m.setStatus("Save failed: " + err.Error())
		return
	}

	id, err := m.store.SaveGame(storage.SavedGame{
		ID:     m.saveID,
		GameID: m.game.ID(),
		Player: m.config.Player,
		Score:  m.gameState.Score,
		State:  data,
	})
	if err != nil {
		m.setStatus("Save failed: " + err.Error())
		return
	}
	m.saveID = id
	m.setStatus("Saved " + shortID(id))
}

func (m *GameModel) setStatus(s string) {
	m.status = s
	m.statusUntil = time.Now().Add(statusDuration)
}

// View renders the current state to a string for display.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}

	// Render game to screen buffer
	m.game.Render(m.screen)

	bottom := m.screen.Height() - 1
	switch {
	case m.status != "":
		m.screen.DrawTextCentered(bottom, m.status)
	case bottom > 0:
		if h, ok := m.game.(controlHinter); ok {
			m.screen.DrawTextColored(0, bottom, h.Controls(), core.ColorGray)
		}
	}

	// Convert screen to string
	return RenderScreen(m.screen)
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// SaveID returns the save slot of the current run, if any.
func (m GameModel) SaveID() string {
	return m.saveID
}

// shortID trims a save ID for display.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// Run starts the Bubble Tea program for game. resume may be nil.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, resume *storage.SavedGame) error {
	model, err := NewGameModel(game, store, cfg, resume)
	if err != nil {
		return err
	}

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err = p.Run()
	return err
}
