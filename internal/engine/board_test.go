package engine

import (
	"errors"
	"math"
	"math/rand"
	"testing"
)

func TestNewBoardRejectsBadSize(t *testing.T) {
	sizes := [][2]int{
		{0, 4}, {4, 0}, {-1, 3},
		{MaxCells + 1, 1}, {257, 256},
		{math.MaxInt, math.MaxInt}, {math.MaxInt, 2},
	}
	for _, size := range sizes {
		if _, err := NewBoard(size[0], size[1]); !errors.Is(err, ErrInvalidSize) {
			t.Errorf("NewBoard(%d, %d) error = %v, want ErrInvalidSize", size[0], size[1], err)
		}
	}
}

func TestNewBoardAtCellCap(t *testing.T) {
	b, err := NewBoard(256, 256)
	if err != nil {
		t.Fatalf("NewBoard(256, 256) failed: %v", err)
	}
	if b.Size() != MaxCells {
		t.Errorf("Size() = %d, want %d", b.Size(), MaxCells)
	}
}

func TestBoardBoundsSafety(t *testing.T) {
	sizes := [][2]int{{1, 1}, {2, 3}, {4, 4}, {5, 2}}

	for _, size := range sizes {
		rows, cols := size[0], size[1]
		b, err := NewBoard(rows, cols)
		if err != nil {
			t.Fatalf("NewBoard(%d, %d) failed: %v", rows, cols, err)
		}

		outside := []Point{
			Pt(-1, 0), Pt(0, -1), Pt(rows, 0), Pt(0, cols),
			Pt(rows, cols), Pt(-1, -1),
		}
		for _, p := range outside {
			if _, err := b.At(p); !errors.Is(err, ErrOutOfBounds) {
				t.Errorf("%dx%d At(%s) error = %v, want ErrOutOfBounds", rows, cols, p, err)
			}
			if err := b.Set(p, 2); !errors.Is(err, ErrOutOfBounds) {
				t.Errorf("%dx%d Set(%s) error = %v, want ErrOutOfBounds", rows, cols, p, err)
			}
		}

		if err := b.Set(Pt(rows-1, cols-1), 2); err != nil {
			t.Errorf("%dx%d Set on last cell failed: %v", rows, cols, err)
		}
	}
}

func TestBoardRejectsNegativeBlock(t *testing.T) {
	b, _ := NewBoard(2, 2)
	if err := b.Set(Pt(0, 0), -2); !errors.Is(err, ErrInvalidBlock) {
		t.Errorf("Set(-2) error = %v, want ErrInvalidBlock", err)
	}
	if b.Occupied() != 0 {
		t.Errorf("Occupied() = %d after rejected write, want 0", b.Occupied())
	}
}

func TestBoardOccupancyInvariant(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	b, _ := NewBoard(4, 5)

	for i := 0; i < 2000; i++ {
		p := Pt(rng.Intn(4), rng.Intn(5))
		var v Block
		if rng.Intn(3) > 0 {
			v = Block(2 << rng.Intn(5))
		}
		if err := b.Set(p, v); err != nil {
			t.Fatalf("Set(%s, %d) failed: %v", p, v, err)
		}

		if got, want := b.Occupied(), len(b.OccupiedSlots()); got != want {
			t.Fatalf("step %d: Occupied() = %d, enumeration found %d", i, got, want)
		}
		if got := len(b.OccupiedSlots()) + len(b.EmptySlots()); got != b.Size() {
			t.Fatalf("step %d: occupied+empty = %d, want %d", i, got, b.Size())
		}
	}
}

func TestBoardSlotsRowMajor(t *testing.T) {
	b := MustBoard([][]int{
		{0, 2, 0},
		{4, 0, 8},
	})

	occupied := b.OccupiedSlots()
	want := []Point{Pt(0, 1), Pt(1, 0), Pt(1, 2)}
	if len(occupied) != len(want) {
		t.Fatalf("OccupiedSlots() = %v, want %v", occupied, want)
	}
	for i := range want {
		if occupied[i] != want[i] {
			t.Errorf("OccupiedSlots()[%d] = %s, want %s", i, occupied[i], want[i])
		}
	}

	empty := b.EmptySlots()
	wantEmpty := []Point{Pt(0, 0), Pt(0, 2), Pt(1, 1)}
	for i := range wantEmpty {
		if empty[i] != wantEmpty[i] {
			t.Errorf("EmptySlots()[%d] = %s, want %s", i, empty[i], wantEmpty[i])
		}
	}
}

func TestBoardCopyIsIndependent(t *testing.T) {
	b := MustBoard([][]int{{2, 0}, {0, 4}})
	c := b.Copy()

	if !b.Equal(c) {
		t.Fatal("copy should equal original")
	}

	if err := c.Set(Pt(0, 1), 8); err != nil {
		t.Fatal(err)
	}
	if blk, _ := b.At(Pt(0, 1)); blk != Empty {
		t.Errorf("original changed through copy: got %d", blk)
	}
	if b.Occupied() != 2 || c.Occupied() != 3 {
		t.Errorf("Occupied() original=%d copy=%d, want 2 and 3", b.Occupied(), c.Occupied())
	}
}

func TestBoardClear(t *testing.T) {
	b := MustBoard([][]int{{2, 4}, {8, 16}})
	b.Clear()

	if b.Occupied() != 0 {
		t.Errorf("Occupied() = %d after Clear, want 0", b.Occupied())
	}
	if b.Rows() != 2 || b.Cols() != 2 {
		t.Errorf("Clear changed size to %dx%d", b.Rows(), b.Cols())
	}
	if len(b.EmptySlots()) != 4 {
		t.Errorf("EmptySlots() = %d, want 4", len(b.EmptySlots()))
	}
}

func TestBoardMaxBlock(t *testing.T) {
	b := MustBoard([][]int{
		{2, 4, 8, 16},
		{32, 64, 128, 256},
		{512, 1024, 2048, 4},
		{8, 16, 32, 64},
	})
	if got := b.MaxBlock(); got != 2048 {
		t.Errorf("MaxBlock() = %d, want 2048", got)
	}
}

func TestBoardString(t *testing.T) {
	b := MustBoard([][]int{{2, 0}, {0, 16}})
	want := "2 .\n. 16"
	if got := b.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
