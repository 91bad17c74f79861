// Package ws serves games over a JSON websocket protocol, one game per
// connection. Clients send slide directions and receive the move records,
// the spawned tile and the resulting board.
package ws

import (
	"github.com/vovakirdan/tui-2048/internal/engine"
)

// Client message types.
const (
	TypeNew   = "new"
	TypeMove  = "move"
	TypeProbe = "probe"
	TypeSave  = "save"
	TypeLoad  = "load"
	// TypeState asks for the current game; the reply has the same type.
	TypeState = "state"
)

// Server message types.
const (
	TypeSaved = "saved"
	TypeError = "error"
)

// ClientMsg is any message sent by a client. Fields not used by Type are
// ignored.
type ClientMsg struct {
	Type    string `json:"type"`
	Variant string `json:"variant,omitempty"` // new
	Seed    int64  `json:"seed,omitempty"`    // new
	Dir     string `json:"dir,omitempty"`     // move, probe
	ID      string `json:"id,omitempty"`      // load
}

// Spawn is the tile added after an accepted move.
type Spawn struct {
	At    engine.Point `json:"at"`
	Value int          `json:"value"`
}

// StateMsg reports the game after new, move, load and state requests.
type StateMsg struct {
	Type     string        `json:"type"`
	Game     string        `json:"game"`
	Board    *engine.Board `json:"board"`
	Score    int           `json:"score"`
	Moved    bool          `json:"moved"`
	Moves    []engine.Move `json:"moves,omitempty"`
	Spawn    *Spawn        `json:"spawn,omitempty"`
	GameOver bool          `json:"gameOver"`
	Level    int           `json:"level,omitempty"`
	Target   int           `json:"target,omitempty"`
}

// ProbeMsg answers a probe without changing the game.
type ProbeMsg struct {
	Type    string `json:"type"`
	Dir     string `json:"dir"`
	CanMove bool   `json:"canMove"`
}

// SavedMsg returns the save slot written by a save request.
type SavedMsg struct {
	Type string `json:"type"`
	ID   string `json:"id"`
}

// ErrorMsg reports a rejected request. The connection stays open.
type ErrorMsg struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}
