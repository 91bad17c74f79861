package core

// Rect is an axis-aligned area on the screen.
type Rect struct {
	X, Y int
	W, H int
}

// NewRect creates a rectangle.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the first column past the rectangle.
func (r Rect) Right() int { return r.X + r.W }

// Bottom returns the first row past the rectangle.
func (r Rect) Bottom() int { return r.Y + r.H }

// Contains reports whether (x, y) lies inside r.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// Center returns the center cell of r.
func (r Rect) Center() (int, int) {
	return r.X + r.W/2, r.Y + r.H/2
}

// CenterIn returns a w x h rectangle centered inside an area of
// areaW x areaH, with its top edge no higher than minY.
func CenterIn(areaW, areaH, w, h, minY int) Rect {
	x := (areaW - w) / 2
	y := (areaH - h) / 2
	if y < minY {
		y = minY
	}
	return Rect{X: Max(x, 0), Y: y, W: w, H: h}
}

// Fits reports whether a w x h block fits in areaW x areaH.
func Fits(areaW, areaH, w, h int) bool {
	return w <= areaW && h <= areaH
}

// Clamp restricts val to [lo, hi].
func Clamp(val, lo, hi int) int {
	if val < lo {
		return lo
	}
	if val > hi {
		return hi
	}
	return val
}

// Max returns the larger of a and b.
func Max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
