package t2048

// GameStateType represents the current game state.
type GameStateType string

const (
	StatePlaying      GameStateType = "playing"
	StateLevelCleared GameStateType = "level_cleared"
	StateGameOver     GameStateType = "game_over"
	StateWin          GameStateType = "win"
	StatePausedSmall  GameStateType = "paused_small_window"
)

// Snapshot captures the complete game state for determinism testing and replay.
type Snapshot struct {
	Tick    uint64
	Mode    string // "campaign" or "endless"
	Level   int    // Current level (1-indexed for display)
	Target  int    // Current target tile value, 0 in endless
	Score   int
	Moves   int
	Board   [][]int // row-major, 0 for empty
	MaxTile int     // Highest tile on board
	State   GameStateType
}

// Snapshot returns the current game snapshot for determinism verification.
func (g *Game) Snapshot() Snapshot {
	state := StatePlaying
	switch {
	case g.tooSmall:
		state = StatePausedSmall
	case g.won:
		state = StateWin
	case g.gameOver:
		state = StateGameOver
	case g.levelCleared:
		state = StateLevelCleared
	}

	snap := Snapshot{
		Tick:   g.tick,
		Mode:   string(g.variant.Mode),
		Level:  g.levelIndex + 1,
		Target: g.currentTarget,
		Score:  g.score,
		Moves:  g.moves,
		State:  state,
	}
	if g.eng != nil {
		snap.Board = g.eng.Board().Rows2D()
		snap.MaxTile = int(g.eng.Board().MaxBlock())
	}
	return snap
}
