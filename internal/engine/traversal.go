package engine

import (
	"fmt"
	"strings"
)

// Direction is a slide direction.
type Direction int

const (
	Up Direction = iota
	Down
	Left
	Right
)

// Directions returns the four directions in a fixed order.
func Directions() []Direction {
	return []Direction{Up, Down, Left, Right}
}

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return fmt.Sprintf("Direction(%d)", int(d))
	}
}

// ParseDirection accepts "up", "down", "left", "right" and their first letters.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "up", "u":
		return Up, nil
	case "down", "d":
		return Down, nil
	case "left", "l":
		return Left, nil
	case "right", "r":
		return Right, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrBadDirection, s)
}

// Mover returns the coordinate offset steps further along a slide.
type Mover func(p Point, offset int) Point

// Operation is invoked once per visited cell. It returns the move record
// for the tile at p, if that tile moved.
type Operation interface {
	Operate(b *Board, p Point, newLine bool, move Mover) (Move, bool)
}

// Traversal visits a board in lines perpendicular to a slide, each line
// ordered from the destination edge back toward the near edge.
// Traversals hold no state and are shared.
type Traversal struct {
	dir      Direction
	byColumn bool // lines are columns (vertical slides)
	fromEnd  bool // lines start at the last index
	move     Mover
}

var traversals = [...]*Traversal{
	Up: {
		dir:      Up,
		byColumn: true,
		move:     func(p Point, k int) Point { return Point{Row: p.Row - k, Col: p.Col} },
	},
	Down: {
		dir:      Down,
		byColumn: true,
		fromEnd:  true,
		move:     func(p Point, k int) Point { return Point{Row: p.Row + k, Col: p.Col} },
	},
	Left: {
		dir:  Left,
		move: func(p Point, k int) Point { return Point{Row: p.Row, Col: p.Col - k} },
	},
	Right: {
		dir:     Right,
		fromEnd: true,
		move:    func(p Point, k int) Point { return Point{Row: p.Row, Col: p.Col + k} },
	},
}

// TraversalFor returns the shared traversal for d.
func TraversalFor(d Direction) (*Traversal, error) {
	if d < Up || d > Right {
		return nil, fmt.Errorf("%w: %d", ErrBadDirection, int(d))
	}
	return traversals[d], nil
}

// Direction returns the slide direction this traversal implements.
func (t *Traversal) Direction() Direction { return t.dir }

// Mover returns the point mover bound to this traversal.
func (t *Traversal) Mover() Mover { return t.move }

// Points returns the visitation order, one slice per line.
func (t *Traversal) Points(rows, cols int) [][]Point {
	lines, length := rows, cols
	if t.byColumn {
		lines, length = cols, rows
	}
	out := make([][]Point, lines)
	for l := range lines {
		line := make([]Point, length)
		for i := range length {
			idx := i
			if t.fromEnd {
				idx = length - 1 - i
			}
			if t.byColumn {
				line[i] = Pt(idx, l)
			} else {
				line[i] = Pt(l, idx)
			}
		}
		out[l] = line
	}
	return out
}

// Execute runs op over b in traversal order and collects the moves.
// With earlyTerminate set it returns after the first move.
func (t *Traversal) Execute(b *Board, op Operation, earlyTerminate bool) MoveMap {
	var mm MoveMap
	for _, line := range t.Points(b.Rows(), b.Cols()) {
		for i, p := range line {
			m, ok := op.Operate(b, p, i == 0, t.move)
			if !ok {
				continue
			}
			mm.add(m)
			if earlyTerminate {
				return mm
			}
		}
	}
	return mm
}
