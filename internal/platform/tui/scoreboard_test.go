package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func scoreboardSend(t *testing.T, m ScoreboardModel, msg tea.Msg) ScoreboardModel {
	t.Helper()
	next, _ := m.Update(msg)
	sb, ok := next.(ScoreboardModel)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return sb
}

func TestScoreboardBoards(t *testing.T) {
	m := NewScoreboardModel(nil, "", 80, 24)

	want := []struct{ id, label string }{
		{"2048", "4x4 campaign"},
		{"2048_endless", "4x4 endless"},
		{"2048_5x5", "5x5 endless"},
		{"2048_3x3", "3x3 endless"},
	}
	if len(m.boards) != len(want) {
		t.Fatalf("boards = %d, want %d", len(m.boards), len(want))
	}
	for i, w := range want {
		if m.boards[i].id != w.id || m.boards[i].label != w.label {
			t.Errorf("board %d = %s (%s), want %s (%s)", i, m.boards[i].id, m.boards[i].label, w.id, w.label)
		}
	}
}

func TestScoreboardSwitchBoards(t *testing.T) {
	store := openStore(t)
	for _, score := range []int{128, 512} {
		if _, err := store.SaveScore("2048_5x5", "tester", score); err != nil {
			t.Fatalf("SaveScore() failed: %v", err)
		}
	}

	m := NewScoreboardModel(store, "tester", 80, 24)
	if len(m.scores) != 0 {
		t.Fatalf("campaign board scores = %d, want 0", len(m.scores))
	}

	m = scoreboardSend(t, m, tea.KeyMsg{Type: tea.KeyRight})
	m = scoreboardSend(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.boards[m.cursor].id != "2048_5x5" {
		t.Fatalf("board = %s, want 2048_5x5", m.boards[m.cursor].id)
	}
	if len(m.scores) != 2 || m.scores[0].Score != 512 {
		t.Fatalf("scores = %+v, want 512 first", m.scores)
	}
	if m.stats == nil || m.stats.GamesCount != 2 {
		t.Errorf("stats = %+v, want 2 games", m.stats)
	}
	view := m.View()
	for _, s := range []string{"5x5 endless", "2 games", "best 512"} {
		if !strings.Contains(view, s) {
			t.Errorf("view missing %q", s)
		}
	}

	// Left from the first board wraps to the last
	m.cursor = 0
	m = scoreboardSend(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	if m.boards[m.cursor].id != "2048_3x3" {
		t.Errorf("board = %s, want 2048_3x3", m.boards[m.cursor].id)
	}
}

func TestScoreboardMineKeepsRank(t *testing.T) {
	store := openStore(t)
	entries := []struct {
		player string
		score  int
	}{
		{"other", 300},
		{"tester", 100},
		{"tester", 50},
	}
	for _, e := range entries {
		if _, err := store.SaveScore("2048", e.player, e.score); err != nil {
			t.Fatalf("SaveScore() failed: %v", err)
		}
	}

	m := NewScoreboardModel(store, "tester", 80, 24)
	if len(m.scores) != 3 {
		t.Fatalf("scores = %d, want 3", len(m.scores))
	}

	m = scoreboardSend(t, m, runeKey('m'))
	if !m.mineOnly {
		t.Fatal("m should enable the filter")
	}
	if len(m.scores) != 2 {
		t.Fatalf("filtered scores = %d, want 2", len(m.scores))
	}
	if m.scores[0].rank != 2 || m.scores[1].rank != 3 {
		t.Errorf("ranks = %d, %d, want 2, 3", m.scores[0].rank, m.scores[1].rank)
	}
	if m.stats.GamesCount != 3 {
		t.Errorf("stats games = %d, want 3 for the whole board", m.stats.GamesCount)
	}
	if rows := m.table.Rows(); len(rows) != 2 || rows[0][2] != "tester *" {
		t.Errorf("rows = %v", rows)
	}

	m = scoreboardSend(t, m, runeKey('m'))
	if m.mineOnly || len(m.scores) != 3 {
		t.Errorf("second m should clear the filter, mineOnly=%v scores=%d", m.mineOnly, len(m.scores))
	}
}

func TestScoreboardMineNeedsPlayer(t *testing.T) {
	m := NewScoreboardModel(openStore(t), "", 80, 24)
	m = scoreboardSend(t, m, runeKey('m'))
	if m.mineOnly {
		t.Error("filter needs a player name")
	}
}
