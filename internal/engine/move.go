package engine

import "fmt"

// Move is the net displacement of one tile during a single slide.
// Value is the tile's value before the slide.
type Move struct {
	From   Point `json:"from"`
	To     Point `json:"to"`
	Merged bool  `json:"merged"`
	Value  Block `json:"value"`
}

func (m Move) String() string {
	if m.Merged {
		return fmt.Sprintf("%s->%s merged", m.From, m.To)
	}
	return fmt.Sprintf("%s->%s", m.From, m.To)
}

// MoveMap maps a tile's pre-slide coordinate to its move record.
// Iteration follows traversal order. The zero value is an empty map.
type MoveMap struct {
	order []Point
	moves map[Point]Move
}

func (mm *MoveMap) add(m Move) {
	if mm.moves == nil {
		mm.moves = make(map[Point]Move)
	}
	if _, dup := mm.moves[m.From]; !dup {
		mm.order = append(mm.order, m.From)
	}
	mm.moves[m.From] = m
}

// Len returns the number of tiles that moved. Zero means the slide
// changed nothing.
func (mm MoveMap) Len() int {
	return len(mm.order)
}

// Empty reports whether no tile moved.
func (mm MoveMap) Empty() bool {
	return len(mm.order) == 0
}

// Get returns the move for the tile that started at from.
func (mm MoveMap) Get(from Point) (Move, bool) {
	m, ok := mm.moves[from]
	return m, ok
}

// Moves returns the records in traversal order.
func (mm MoveMap) Moves() []Move {
	out := make([]Move, 0, len(mm.order))
	for _, p := range mm.order {
		out = append(out, mm.moves[p])
	}
	return out
}

// Merged returns how many records ended in a merge.
func (mm MoveMap) Merged() int {
	n := 0
	for _, m := range mm.moves {
		if m.Merged {
			n++
		}
	}
	return n
}

// Each calls fn for every record in traversal order.
func (mm MoveMap) Each(fn func(Move)) {
	for _, p := range mm.order {
		fn(mm.moves[p])
	}
}
