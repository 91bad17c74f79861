package core

import "testing"

func TestRectEdges(t *testing.T) {
	r := NewRect(5, 10, 20, 15)

	if r.Right() != 25 || r.Bottom() != 25 {
		t.Errorf("Right/Bottom = %d/%d, want 25/25", r.Right(), r.Bottom())
	}
	if x, y := r.Center(); x != 15 || y != 17 {
		t.Errorf("Center() = (%d, %d), want (15, 17)", x, y)
	}
	if !r.Contains(5, 10) || r.Contains(25, 10) {
		t.Error("Contains should include the top-left corner and exclude the right edge")
	}
}

func TestCenterIn(t *testing.T) {
	tests := []struct {
		name                  string
		areaW, areaH, w, h, y int
		want                  Rect
	}{
		{"centered", 80, 24, 21, 9, 0, NewRect(29, 7, 21, 9)},
		{"respects min y", 80, 12, 21, 9, 4, NewRect(29, 4, 21, 9)},
		{"wider than area", 10, 10, 21, 9, 0, NewRect(0, 0, 21, 9)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CenterIn(tt.areaW, tt.areaH, tt.w, tt.h, tt.y); got != tt.want {
				t.Errorf("CenterIn = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestClampAndMax(t *testing.T) {
	tests := []struct{ val, lo, hi, want int }{
		{5, 0, 10, 5},
		{-5, 0, 10, 0},
		{15, 0, 10, 10},
	}
	for _, tt := range tests {
		if got := Clamp(tt.val, tt.lo, tt.hi); got != tt.want {
			t.Errorf("Clamp(%d, %d, %d) = %d, want %d", tt.val, tt.lo, tt.hi, got, tt.want)
		}
	}
	if Max(3, 7) != 7 || Max(7, 3) != 7 {
		t.Error("Max should return the larger value")
	}
	if !Fits(10, 5, 10, 5) || Fits(10, 5, 11, 5) {
		t.Error("Fits boundary check failed")
	}
}
