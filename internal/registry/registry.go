// Package registry maps game IDs to factories. Game packages register
// their variants from init(), so the platform can list and create them
// without importing each one by name.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/tui-2048/internal/core"
)

// Game is what the platform drives. Implementations hold only game logic;
// input mapping, timing and terminal output belong to the platform.
type Game interface {
	// ID is the stable identifier used by the CLI and score storage.
	ID() string

	// Title is the display name.
	Title() string

	// Reset starts a fresh game for the given screen and seed.
	Reset(cfg core.RuntimeConfig)

	// Step advances one tick with the actions pressed during it.
	Step(in core.InputFrame) core.StepResult

	// Render draws into a pre-cleared screen.
	Render(dst *core.Screen)

	// State reports score, game over and pause.
	State() core.GameState
}

// Saver is implemented by games whose progress can be persisted and resumed.
type Saver interface {
	SaveState() ([]byte, error)
	RestoreState(data []byte) error
}

// GameInfo describes a registered game.
type GameInfo struct {
	ID    string
	Title string
	Group string // variants of one game share a group
}

// Factory creates a new game instance.
type Factory func() Game

type entry struct {
	info    GameInfo
	factory Factory
}

var (
	mu      sync.RWMutex
	entries = make(map[string]entry)
)

// Register adds a game under id. group names the family it belongs to;
// an empty group means the game stands alone.
// Registering the same id twice panics.
func Register(id, group string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := entries[id]; exists {
		panic(fmt.Sprintf("registry: game %q already registered", id))
	}
	if group == "" {
		group = id
	}
	entries[id] = entry{
		info:    GameInfo{ID: id, Title: f().Title(), Group: group},
		factory: f,
	}
}

// List returns all registered games sorted by ID.
func List() []GameInfo {
	mu.RLock()
	defer mu.RUnlock()

	out := make([]GameInfo, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.info)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Lookup returns the info for id.
func Lookup(id string) (GameInfo, bool) {
	mu.RLock()
	defer mu.RUnlock()

	e, ok := entries[id]
	return e.info, ok
}

// Create instantiates the game registered under id.
func Create(id string) (Game, error) {
	mu.RLock()
	defer mu.RUnlock()

	e, ok := entries[id]
	if !ok {
		return nil, fmt.Errorf("registry: unknown game %q", id)
	}
	return e.factory(), nil
}

// Exists reports whether id is registered.
func Exists(id string) bool {
	_, ok := Lookup(id)
	return ok
}
