package ws

import (
	"errors"
	"fmt"
	"time"

	"github.com/vovakirdan/tui-2048/internal/core"
	"github.com/vovakirdan/tui-2048/internal/engine"
	"github.com/vovakirdan/tui-2048/internal/registry"
	"github.com/vovakirdan/tui-2048/internal/storage"
)

// DefaultVariant is started when a new request names no variant.
const DefaultVariant = "2048_endless"

var (
	// ErrNoGame is returned for move, probe, save and state before a game exists.
	ErrNoGame = errors.New("ws: no game in progress")
	// ErrNotPlayable is returned for games that cannot be driven move by move.
	ErrNotPlayable = errors.New("ws: game cannot be played remotely")
	// ErrNoStore is returned for save and load when the server has no database.
	ErrNoStore = errors.New("ws: saves are disabled")
)

// Playable is a game that can be driven one slide at a time without a
// frame clock.
type Playable interface {
	registry.Game
	registry.Saver
	Move(dir engine.Direction) bool
	CanMove(dir engine.Direction) bool
	Board() *engine.Board
	LastMoves() engine.MoveMap
	LastSpawn() (engine.Point, int, bool)
	Progress() (level, target int)
}

// session is the state of one connection. It is only touched by the
// connection's read loop.
type session struct {
	store  *storage.Store
	player string

	game       Playable
	saveID     string
	scoreSaved bool
}

func newSession(store *storage.Store, player string) *session {
	return &session{store: store, player: player}
}

// handle applies one client message and returns the reply.
func (s *session) handle(msg ClientMsg) (any, error) {
	switch msg.Type {
	case TypeNew:
		return s.start(msg.Variant, msg.Seed)
	case TypeMove:
		return s.move(msg.Dir)
	case TypeProbe:
		return s.probe(msg.Dir)
	case TypeSave:
		return s.save()
	case TypeLoad:
		return s.load(msg.ID)
	case TypeState:
		return s.current()
	}
	return nil, fmt.Errorf("ws: unknown message type %q", msg.Type)
}

// create builds and resets a registered game.
func (s *session) create(variant string, seed int64) (Playable, error) {
	if variant == "" {
		variant = DefaultVariant
	}
	game, err := registry.Create(variant)
	if err != nil {
		return nil, err
	}
	p, ok := game.(Playable)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotPlayable, variant)
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	cfg := core.DefaultConfig()
	cfg.Seed = seed
	cfg.Player = s.player
	p.Reset(cfg)
	return p, nil
}

func (s *session) start(variant string, seed int64) (StateMsg, error) {
	game, err := s.create(variant, seed)
	if err != nil {
		return StateMsg{}, err
	}
	s.game = game
	s.saveID = ""
	s.scoreSaved = false
	return s.state(false), nil
}

func (s *session) move(dir string) (StateMsg, error) {
	if s.game == nil {
		return StateMsg{}, ErrNoGame
	}
	d, err := engine.ParseDirection(dir)
	if err != nil {
		return StateMsg{}, err
	}
	moved := s.game.Move(d)
	st := s.state(moved)

	if st.GameOver && !s.scoreSaved {
		s.scoreSaved = true
		if s.store != nil && st.Score > 0 {
			if _, err := s.store.SaveScore(s.game.ID(), s.player, st.Score); err != nil {
				return st, fmt.Errorf("ws: record score: %w", err)
			}
		}
	}
	return st, nil
}

func (s *session) probe(dir string) (ProbeMsg, error) {
	if s.game == nil {
		return ProbeMsg{}, ErrNoGame
	}
	d, err := engine.ParseDirection(dir)
	if err != nil {
		return ProbeMsg{}, err
	}
	return ProbeMsg{Type: TypeProbe, Dir: d.String(), CanMove: s.game.CanMove(d)}, nil
}

func (s *session) save() (SavedMsg, error) {
	if s.game == nil {
		return SavedMsg{}, ErrNoGame
	}
	if s.store == nil {
		return SavedMsg{}, ErrNoStore
	}
	data, err := s.game.SaveState()
	if err != nil {
		return SavedMsg{}, err
	}
	id, err := s.store.SaveGame(storage.SavedGame{
		ID:     s.saveID,
		GameID: s.game.ID(),
		Player: s.player,
		Score:  s.game.State().Score,
		State:  data,
	})
	if err != nil {
		return SavedMsg{}, err
	}
	s.saveID = id
	return SavedMsg{Type: TypeSaved, ID: id}, nil
}

func (s *session) load(id string) (StateMsg, error) {
	if s.store == nil {
		return StateMsg{}, ErrNoStore
	}
	saved, err := s.store.LoadGame(id)
	if err != nil {
		return StateMsg{}, err
	}
	game, err := s.create(saved.GameID, 0)
	if err != nil {
		return StateMsg{}, err
	}
	if err := game.RestoreState(saved.State); err != nil {
		return StateMsg{}, err
	}
	s.game = game
	s.saveID = saved.ID
	s.scoreSaved = game.State().GameOver
	return s.state(false), nil
}

// current reports the game without changing it.
func (s *session) current() (StateMsg, error) {
	if s.game == nil {
		return StateMsg{}, ErrNoGame
	}
	return s.state(false), nil
}

// state builds the reply for the current game. Move records and the
// spawn are included only when the last request moved the board.
func (s *session) state(moved bool) StateMsg {
	st := s.game.State()
	level, target := s.game.Progress()
	msg := StateMsg{
		Type:     TypeState,
		Game:     s.game.ID(),
		Board:    s.game.Board(),
		Score:    st.Score,
		Moved:    moved,
		GameOver: st.GameOver,
		Level:    level,
		Target:   target,
	}
	if moved {
		msg.Moves = s.game.LastMoves().Moves()
		if at, v, ok := s.game.LastSpawn(); ok {
			msg.Spawn = &Spawn{At: at, Value: v}
		}
	}
	return msg
}
