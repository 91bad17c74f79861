// Package engine implements the board traversal and merge rules of a
// sliding-tile merge puzzle. It has no rendering, input or storage code;
// front ends drive it through Game and read back move maps.
package engine

import "strconv"

// Block is a tile value. The zero Block marks an empty cell.
// Blocks are plain values, so two tiles with the same number are equal
// and interchangeable.
type Block int

// Empty is the value stored in unoccupied cells.
const Empty Block = 0

// Valid reports whether b can occupy a cell.
func (b Block) Valid() bool {
	return b > 0
}

// IsEmpty reports whether b is the empty marker.
func (b Block) IsEmpty() bool {
	return b == Empty
}

// String returns the decimal value, or "." for an empty cell.
func (b Block) String() string {
	if b == Empty {
		return "."
	}
	return strconv.Itoa(int(b))
}
