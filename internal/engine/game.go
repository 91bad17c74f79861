package engine

import (
	"fmt"
	"math/rand"
	"time"
)

// Game owns one board and runs slides and spawns against it.
// A Game is not safe for concurrent use; hosts serving several sessions
// keep one Game per session.
type Game struct {
	board    *Board
	policy   MergePolicy
	rng      *rand.Rand
	listener MergeListener

	op    *MergeOperation
	probe *MergeOperation
}

// Option configures a Game.
type Option func(*Game)

// WithPolicy sets the merge policy. The default is SumPolicy.
func WithPolicy(p MergePolicy) Option {
	return func(g *Game) {
		if p != nil {
			g.policy = p
		}
	}
}

// WithRand sets the random source used by spawns.
func WithRand(r *rand.Rand) Option {
	return func(g *Game) {
		if r != nil {
			g.rng = r
		}
	}
}

// WithSeed seeds a private random source.
func WithSeed(seed int64) Option {
	return WithRand(rand.New(rand.NewSource(seed)))
}

// WithMergeListener sets the listener used by MoveBlocks.
func WithMergeListener(l MergeListener) Option {
	return func(g *Game) {
		g.listener = l
	}
}

// NewGame creates a game with an empty rows x cols board.
func NewGame(rows, cols int, opts ...Option) (*Game, error) {
	board, err := NewBoard(rows, cols)
	if err != nil {
		return nil, err
	}
	g := &Game{
		board:  board,
		policy: SumPolicy{},
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.rng == nil {
		g.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	g.op = NewMergeOperation(g.policy)
	g.probe = NewMergeOperation(g.policy)
	return g, nil
}

// Board returns the live board. Writes through it are visible to the game.
func (g *Game) Board() *Board {
	return g.board
}

// Load replaces the live board with a copy of b. The game adopts b's size.
func (g *Game) Load(b *Board) error {
	if b == nil {
		return fmt.Errorf("%w: nil board", ErrInvalidSize)
	}
	g.board = b.Copy()
	return nil
}

// SetMergeListener replaces the listener used by MoveBlocks.
func (g *Game) SetMergeListener(l MergeListener) {
	g.listener = l
}

// MoveBlocks slides the live board toward dir and returns what moved.
// An empty map means nothing could move; callers should not spawn.
func (g *Game) MoveBlocks(dir Direction) (MoveMap, error) {
	return g.MoveBlocksWith(dir, g.listener)
}

// MoveBlocksWith is MoveBlocks with a listener for this slide only.
func (g *Game) MoveBlocksWith(dir Direction, l MergeListener) (MoveMap, error) {
	t, err := TraversalFor(dir)
	if err != nil {
		return MoveMap{}, err
	}
	g.op.Reset(l)
	return t.Execute(g.board, g.op, false), nil
}

// TryMoveBlocks reports whether sliding toward dir would change the board.
// It works on a private copy and never notifies listeners. An unknown
// direction returns ErrBadDirection, as MoveBlocks does.
func (g *Game) TryMoveBlocks(dir Direction) (bool, error) {
	t, err := TraversalFor(dir)
	if err != nil {
		return false, err
	}
	g.probe.Reset(nil)
	return !t.Execute(g.board.Copy(), g.probe, true).Empty(), nil
}

// Stopped reports whether no direction can move any tile.
func (g *Game) Stopped() bool {
	for _, d := range Directions() {
		if ok, _ := g.TryMoveBlocks(d); ok {
			return false
		}
	}
	return true
}

// SpawnBlock writes v into a uniformly random empty cell.
// ok is false when the board is full.
func (g *Game) SpawnBlock(v Block) (p Point, ok bool, err error) {
	if !v.Valid() {
		return Point{}, false, fmt.Errorf("%w: %d", ErrInvalidBlock, v)
	}
	empty := g.board.EmptySlots()
	if len(empty) == 0 {
		return Point{}, false, nil
	}
	p = empty[g.rng.Intn(len(empty))]
	g.board.put(p, v)
	return p, true, nil
}

// SpawnBlockWeighted picks a value from values using weights and spawns it.
// Mismatched slice lengths and non-positive totals are errors even when
// the board is full.
func (g *Game) SpawnBlockWeighted(values []Block, weights []float64) (Point, bool, error) {
	v, err := PickWeighted(g.rng, values, weights)
	if err != nil {
		return Point{}, false, err
	}
	return g.SpawnBlock(v)
}

// PickWeighted draws r in [0, total) and walks the weights subtracting
// each until r goes negative.
func PickWeighted(rng *rand.Rand, values []Block, weights []float64) (Block, error) {
	if len(values) != len(weights) {
		return Empty, fmt.Errorf("%w: %d values, %d weights", ErrWeightsMismatch, len(values), len(weights))
	}
	total := 0.0
	for _, w := range weights {
		if w < 0 {
			return Empty, fmt.Errorf("%w: negative weight %v", ErrNoWeight, w)
		}
		total += w
	}
	if total <= 0 {
		return Empty, ErrNoWeight
	}

	r := rng.Float64() * total
	for i, w := range weights {
		r -= w
		if r < 0 {
			return values[i], nil
		}
	}
	// Float rounding can leave r at zero after the last weight.
	for i := len(weights) - 1; i >= 0; i-- {
		if weights[i] > 0 {
			return values[i], nil
		}
	}
	return Empty, ErrNoWeight
}

// BlockAt returns the block at p.
func (g *Game) BlockAt(p Point) (Block, error) {
	return g.board.At(p)
}

// ClearBoard empties the board, keeping its size.
func (g *Game) ClearBoard() {
	g.board.Clear()
}
