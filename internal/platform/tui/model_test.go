package tui

import (
	"path/filepath"
	"reflect"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-2048/internal/core"
	"github.com/vovakirdan/tui-2048/internal/games/t2048"
	"github.com/vovakirdan/tui-2048/internal/storage"
)

func openStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "tui.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func testConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	cfg.Seed = 77
	cfg.Player = "tester"
	return cfg
}

func TestGameModelSave(t *testing.T) {
	store := openStore(t)
	m, err := NewGameModel(t2048.NewEndless(), store, testConfig(), nil)
	if err != nil {
		t.Fatalf("NewGameModel() failed: %v", err)
	}

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	m = next.(GameModel)
	id := m.SaveID()
	if id == "" {
		t.Fatal("ctrl+s should create a save")
	}

	// A second save overwrites the same slot
	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	m = next.(GameModel)
	if m.SaveID() != id {
		t.Errorf("save id changed from %s to %s", id, m.SaveID())
	}

	saves, err := store.ListSaves("tester", 10)
	if err != nil {
		t.Fatalf("ListSaves() failed: %v", err)
	}
	if len(saves) != 1 || saves[0].GameID != "2048_endless" {
		t.Errorf("saves = %+v, want one 2048_endless save", saves)
	}
}

func TestGameModelResume(t *testing.T) {
	store := openStore(t)

	orig := t2048.NewEndless()
	first, err := NewGameModel(orig, store, testConfig(), nil)
	if err != nil {
		t.Fatalf("NewGameModel() failed: %v", err)
	}
	next, _ := first.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	id := next.(GameModel).SaveID()

	saved, err := store.LoadGame(id)
	if err != nil {
		t.Fatalf("LoadGame() failed: %v", err)
	}

	cfg := testConfig()
	cfg.Seed = 999
	resumed := t2048.NewEndless()
	m, err := NewGameModel(resumed, store, cfg, saved)
	if err != nil {
		t.Fatalf("resume failed: %v", err)
	}
	if m.SaveID() != id {
		t.Errorf("resumed save id = %s, want %s", m.SaveID(), id)
	}
	if !reflect.DeepEqual(resumed.Snapshot().Board, orig.Snapshot().Board) {
		t.Errorf("resumed board differs:\n%v\nvs\n%v", resumed.Snapshot().Board, orig.Snapshot().Board)
	}

	// Saves from another variant are rejected
	if _, err := NewGameModel(t2048.New(), store, cfg, saved); err == nil {
		t.Error("resuming an endless save as campaign should fail")
	}
}

func TestGameModelResizeKeepsBoard(t *testing.T) {
	g := t2048.NewEndless()
	m, err := NewGameModel(g, nil, testConfig(), nil)
	if err != nil {
		t.Fatalf("NewGameModel() failed: %v", err)
	}
	before := g.Snapshot().Board

	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	m = next.(GameModel)

	if !reflect.DeepEqual(g.Snapshot().Board, before) {
		t.Errorf("resize changed the board:\n%v\nvs\n%v", g.Snapshot().Board, before)
	}
	if m.View() == "" {
		t.Error("view should render after resize")
	}
}

func TestGameModelBack(t *testing.T) {
	m, err := NewGameModel(t2048.NewEndless(), nil, testConfig(), nil)
	if err != nil {
		t.Fatalf("NewGameModel() failed: %v", err)
	}

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = next.(GameModel)
	if m.BackToMenu() || cmd != nil {
		t.Fatal("esc during play should be ignored")
	}

	// Pause, then leave
	next, _ = m.Update(runeKey('p'))
	m = next.(GameModel)
	next, _ = m.Update(TickMsg{})
	m = next.(GameModel)
	next, cmd = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = next.(GameModel)
	if !m.BackToMenu() || cmd == nil {
		t.Error("esc while paused should leave the game")
	}
}

func TestGameModelQuit(t *testing.T) {
	m, err := NewGameModel(t2048.NewEndless(), nil, testConfig(), nil)
	if err != nil {
		t.Fatalf("NewGameModel() failed: %v", err)
	}
	next, cmd := m.Update(runeKey('q'))
	if !next.(GameModel).IsQuitting() || cmd == nil {
		t.Error("q should quit")
	}
	if next.(GameModel).View() != "" {
		t.Error("quitting model should render nothing")
	}
}
