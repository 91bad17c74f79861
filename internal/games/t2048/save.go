package t2048

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/vovakirdan/tui-2048/internal/engine"
)

var (
	// ErrNotStarted is returned when saving or restoring before Reset.
	ErrNotStarted = errors.New("t2048: game not started")
	// ErrVariantMismatch is returned when a save belongs to another variant.
	ErrVariantMismatch = errors.New("t2048: save belongs to another variant")
)

const saveVersion = 1

// savedGame is the persisted form of a game in progress.
type savedGame struct {
	Version  int           `json:"version"`
	Variant  string        `json:"variant"`
	Level    int           `json:"level"` // 0-based campaign level
	Score    int           `json:"score"`
	Moves    int           `json:"moves"`
	Tick     uint64        `json:"tick"`
	Won      bool          `json:"won,omitempty"`
	GameOver bool          `json:"gameOver,omitempty"`
	Board    *engine.Board `json:"board"`
}

// SaveState serializes the game so it can be resumed later.
func (g *Game) SaveState() ([]byte, error) {
	if g.eng == nil {
		return nil, ErrNotStarted
	}
	return json.Marshal(savedGame{
		Version:  saveVersion,
		Variant:  g.variant.ID,
		Level:    g.levelIndex,
		Score:    g.score,
		Moves:    g.moves,
		Tick:     g.tick,
		Won:      g.won,
		GameOver: g.gameOver,
		Board:    g.eng.Board(),
	})
}

// RestoreState replaces the current game with a saved one. The game must
// have been Reset first so screen size and config are known.
func (g *Game) RestoreState(data []byte) error {
	if g.eng == nil {
		return ErrNotStarted
	}

	var s savedGame
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("t2048: decode save: %w", err)
	}
	if s.Version != saveVersion {
		return fmt.Errorf("t2048: unsupported save version %d", s.Version)
	}
	if s.Variant != g.variant.ID {
		return fmt.Errorf("%w: %q, playing %q", ErrVariantMismatch, s.Variant, g.variant.ID)
	}
	if s.Board == nil {
		return fmt.Errorf("t2048: save has no board")
	}
	if err := g.eng.Load(s.Board); err != nil {
		return fmt.Errorf("t2048: load board: %w", err)
	}

	g.levelIndex = max(s.Level, 0)
	g.score = s.Score
	g.moves = s.Moves
	g.tick = s.Tick
	g.won = s.Won
	g.gameOver = s.GameOver || g.eng.Stopped()
	g.levelCleared = false
	g.levelClearTicks = 0
	g.paused = false
	g.lastMoves = engine.MoveMap{}
	g.clearAnimation()

	g.loadLevel()
	g.checkScreenSize()
	return nil
}
