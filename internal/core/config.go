package core

// RuntimeConfig is passed to a game on Reset.
type RuntimeConfig struct {
	ScreenW  int    // screen width in characters
	ScreenH  int    // screen height in characters
	TickRate int    // ticks per second
	Seed     int64  // RNG seed; 0 lets the platform pick one
	Player   string // player name used when recording scores and saves
}

// DefaultConfig returns an 80x24, 60 tick configuration.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
	}
}

// GameState is what the platform needs to know after every tick.
type GameState struct {
	Score    int
	GameOver bool
	Paused   bool
}

// StepResult is returned by Game.Step.
type StepResult struct {
	State GameState
	Moved bool // the tick applied a move that changed the board
}
