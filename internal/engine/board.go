package engine

import (
	"fmt"
	"strings"
)

// Board is a fixed-size grid of optional blocks stored row-major.
// The occupied count is maintained on every write so occupancy checks
// never scan the grid.
type Board struct {
	rows     int
	cols     int
	cells    []Block
	occupied int
}

// MaxCells bounds rows*cols for every board.
const MaxCells = 1 << 16

// checkSize rejects non-positive dimensions and grids above MaxCells.
// The division keeps rows*cols from overflowing.
func checkSize(rows, cols int) error {
	if rows < 1 || cols < 1 || rows > MaxCells/cols {
		return fmt.Errorf("%w: %dx%d", ErrInvalidSize, rows, cols)
	}
	return nil
}

// NewBoard creates an empty rows x cols board.
func NewBoard(rows, cols int) (*Board, error) {
	if err := checkSize(rows, cols); err != nil {
		return nil, err
	}
	return &Board{
		rows:  rows,
		cols:  cols,
		cells: make([]Block, rows*cols),
	}, nil
}

// MustBoard builds a board from a row-major literal. Zero means empty.
// It panics on ragged or invalid input and is meant for fixtures.
func MustBoard(rows [][]int) *Board {
	if len(rows) == 0 {
		panic("engine: MustBoard needs at least one row")
	}
	b, err := NewBoard(len(rows), len(rows[0]))
	if err != nil {
		panic(err)
	}
	for r, row := range rows {
		if len(row) != b.cols {
			panic(fmt.Sprintf("engine: MustBoard row %d has %d columns, want %d", r, len(row), b.cols))
		}
		for c, v := range row {
			if err := b.Set(Pt(r, c), Block(v)); err != nil {
				panic(err)
			}
		}
	}
	return b
}

// Rows returns the number of rows.
func (b *Board) Rows() int { return b.rows }

// Cols returns the number of columns.
func (b *Board) Cols() int { return b.cols }

// Size returns rows*cols.
func (b *Board) Size() int { return len(b.cells) }

// Occupied returns the number of non-empty cells.
func (b *Board) Occupied() int { return b.occupied }

// Full reports whether every cell holds a block.
func (b *Board) Full() bool { return b.occupied == len(b.cells) }

// Contains reports whether p is inside the board.
func (b *Board) Contains(p Point) bool {
	return p.Within(b.rows, b.cols)
}

func (b *Board) index(p Point) int {
	return p.Row*b.cols + p.Col
}

// At returns the block at p. Empty cells return Empty.
func (b *Board) At(p Point) (Block, error) {
	if !b.Contains(p) {
		return Empty, fmt.Errorf("%w: %s on %dx%d board", ErrOutOfBounds, p, b.rows, b.cols)
	}
	return b.cells[b.index(p)], nil
}

// Set writes blk at p. Writing Empty clears the cell.
func (b *Board) Set(p Point, blk Block) error {
	if !b.Contains(p) {
		return fmt.Errorf("%w: %s on %dx%d board", ErrOutOfBounds, p, b.rows, b.cols)
	}
	if blk < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidBlock, blk)
	}
	b.put(p, blk)
	return nil
}

// Remove clears the cell at p.
func (b *Board) Remove(p Point) error {
	return b.Set(p, Empty)
}

// get and put skip bounds checks; callers must have checked Contains.
func (b *Board) get(p Point) Block {
	return b.cells[b.index(p)]
}

func (b *Board) put(p Point, blk Block) {
	i := b.index(p)
	old := b.cells[i]
	switch {
	case old.IsEmpty() && !blk.IsEmpty():
		b.occupied++
	case !old.IsEmpty() && blk.IsEmpty():
		b.occupied--
	}
	b.cells[i] = blk
}

// Clear empties every cell.
func (b *Board) Clear() {
	for i := range b.cells {
		b.cells[i] = Empty
	}
	b.occupied = 0
}

// EmptySlots returns the empty coordinates in row-major order.
func (b *Board) EmptySlots() []Point {
	out := make([]Point, 0, len(b.cells)-b.occupied)
	for i, blk := range b.cells {
		if blk.IsEmpty() {
			out = append(out, Pt(i/b.cols, i%b.cols))
		}
	}
	return out
}

// OccupiedSlots returns the occupied coordinates in row-major order.
func (b *Board) OccupiedSlots() []Point {
	out := make([]Point, 0, b.occupied)
	for i, blk := range b.cells {
		if !blk.IsEmpty() {
			out = append(out, Pt(i/b.cols, i%b.cols))
		}
	}
	return out
}

// Copy returns an independent deep copy.
func (b *Board) Copy() *Board {
	cells := make([]Block, len(b.cells))
	copy(cells, b.cells)
	return &Board{
		rows:     b.rows,
		cols:     b.cols,
		cells:    cells,
		occupied: b.occupied,
	}
}

// Equal reports whether both boards have the same size and contents.
func (b *Board) Equal(other *Board) bool {
	if other == nil || b.rows != other.rows || b.cols != other.cols {
		return false
	}
	for i := range b.cells {
		if b.cells[i] != other.cells[i] {
			return false
		}
	}
	return true
}

// MaxBlock returns the largest block on the board, or Empty.
func (b *Board) MaxBlock() Block {
	best := Empty
	for _, blk := range b.cells {
		if blk > best {
			best = blk
		}
	}
	return best
}

// Rows2D returns the board as a slice of rows of plain ints (0 for empty).
func (b *Board) Rows2D() [][]int {
	out := make([][]int, b.rows)
	for r := range b.rows {
		row := make([]int, b.cols)
		for c := range b.cols {
			row[c] = int(b.cells[r*b.cols+c])
		}
		out[r] = row
	}
	return out
}

// String renders the board as space-separated rows, "." for empty cells.
func (b *Board) String() string {
	var sb strings.Builder
	for r := range b.rows {
		if r > 0 {
			sb.WriteByte('\n')
		}
		for c := range b.cols {
			if c > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString(b.cells[r*b.cols+c].String())
		}
	}
	return sb.String()
}
