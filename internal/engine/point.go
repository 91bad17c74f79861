package engine

import "fmt"

// Point is a zero-based (row, column) coordinate.
// Points are comparable and are used directly as map keys.
type Point struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Pt is shorthand for Point{Row: row, Col: col}.
func Pt(row, col int) Point {
	return Point{Row: row, Col: col}
}

// Within reports whether p lies inside a rows x cols grid.
func (p Point) Within(rows, cols int) bool {
	return p.Row >= 0 && p.Row < rows && p.Col >= 0 && p.Col < cols
}

// Add returns p shifted by dr rows and dc columns.
func (p Point) Add(dr, dc int) Point {
	return Point{Row: p.Row + dr, Col: p.Col + dc}
}

func (p Point) String() string {
	return fmt.Sprintf("(%d,%d)", p.Row, p.Col)
}
