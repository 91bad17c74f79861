package engine

import "testing"

// slide runs one slide over a copy of rows and returns the result.
func slide(t *testing.T, rows [][]int, dir Direction) (*Board, MoveMap, int) {
	t.Helper()
	g, err := NewGame(len(rows), len(rows[0]), WithSeed(1))
	if err != nil {
		t.Fatal(err)
	}
	if err := g.Load(MustBoard(rows)); err != nil {
		t.Fatal(err)
	}
	score := 0
	mm, err := g.MoveBlocksWith(dir, func(merged Block, _ Point, _, _ Source) {
		score += int(merged)
	})
	if err != nil {
		t.Fatal(err)
	}
	return g.Board(), mm, score
}

func TestSlideRowLeft(t *testing.T) {
	tests := []struct {
		name     string
		input    []int
		expected []int
		score    int
		moves    int
	}{
		{"simple merge", []int{2, 2, 0, 0}, []int{4, 0, 0, 0}, 4, 1},
		{"merge with trailing tile", []int{2, 2, 2, 0}, []int{4, 2, 0, 0}, 4, 2},
		{"double merge", []int{2, 2, 2, 2}, []int{4, 4, 0, 0}, 8, 3},
		{"no merge possible", []int{2, 4, 8, 16}, []int{2, 4, 8, 16}, 0, 0},
		{"slide with gap", []int{0, 0, 2, 2}, []int{4, 0, 0, 0}, 4, 2},
		{"slide with multiple gaps", []int{2, 0, 0, 2}, []int{4, 0, 0, 0}, 4, 1},
		{"no change needed", []int{4, 2, 0, 0}, []int{4, 2, 0, 0}, 0, 0},
		{"empty row", []int{0, 0, 0, 0}, []int{0, 0, 0, 0}, 0, 0},
		{"single tile", []int{0, 4, 0, 0}, []int{4, 0, 0, 0}, 0, 1},
		{"slide and stack", []int{2, 0, 4, 0}, []int{2, 4, 0, 0}, 0, 1},
		{"merge behind blocker", []int{2, 4, 4, 0}, []int{2, 8, 0, 0}, 8, 1},
		{"two pairs", []int{2, 2, 4, 4}, []int{4, 8, 0, 0}, 12, 3},
		{"merged tile does not merge again", []int{4, 4, 8, 0}, []int{8, 8, 0, 0}, 8, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, mm, score := slide(t, [][]int{tt.input}, Left)
			if got := b.Rows2D()[0]; !equalInts(got, tt.expected) {
				t.Errorf("slide %v left = %v, want %v", tt.input, got, tt.expected)
			}
			if score != tt.score {
				t.Errorf("slide %v left score = %d, want %d", tt.input, score, tt.score)
			}
			if mm.Len() != tt.moves {
				t.Errorf("slide %v left moves = %d (%v), want %d", tt.input, mm.Len(), mm.Moves(), tt.moves)
			}
		})
	}
}

func TestSingleMergePerLine(t *testing.T) {
	b, mm, _ := slide(t, [][]int{{2, 2, 2, 2}}, Left)

	if got := b.Rows2D()[0]; !equalInts(got, []int{4, 4, 0, 0}) {
		t.Fatalf("row = %v, want [4 4 0 0]", got)
	}
	if mm.Merged() != 2 {
		t.Errorf("merged records = %d, want 2", mm.Merged())
	}

	want := []Move{
		{From: Pt(0, 1), To: Pt(0, 0), Merged: true, Value: 2},
		{From: Pt(0, 2), To: Pt(0, 1), Value: 2},
		{From: Pt(0, 3), To: Pt(0, 1), Merged: true, Value: 2},
	}
	got := mm.Moves()
	if len(got) != len(want) {
		t.Fatalf("moves = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("move %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestSlideAndStackRecords(t *testing.T) {
	_, mm, _ := slide(t, [][]int{{2, 0, 4, 0}}, Left)

	m, ok := mm.Get(Pt(0, 2))
	if !ok {
		t.Fatal("expected a move for the tile at (0,2)")
	}
	if m.To != Pt(0, 1) || m.Merged {
		t.Errorf("move = %v, want (0,2)->(0,1) unmerged", m)
	}
	if _, ok := mm.Get(Pt(0, 0)); ok {
		t.Error("tile at (0,0) should not have a move record")
	}
}

func TestNoOpSlides(t *testing.T) {
	_, mm, _ := slide(t, [][]int{{0, 0, 2, 4}}, Right)
	if !mm.Empty() {
		t.Errorf("packed row slid right produced moves %v", mm.Moves())
	}

	for _, dir := range Directions() {
		_, mm, _ := slide(t, [][]int{{0, 0, 0}, {0, 0, 0}}, dir)
		if !mm.Empty() {
			t.Errorf("empty board slid %s produced moves %v", dir, mm.Moves())
		}
	}
}

func TestGapBeforeBlockerRight(t *testing.T) {
	b, mm, _ := slide(t, [][]int{{2, 0, 0, 4}}, Right)
	if got := b.Rows2D()[0]; !equalInts(got, []int{0, 0, 2, 4}) {
		t.Errorf("row = %v, want [0 0 2 4]", got)
	}
	if m, ok := mm.Get(Pt(0, 0)); !ok || m.To != Pt(0, 2) {
		t.Errorf("move for (0,0) = %v, %v; want ->(0,2)", m, ok)
	}
}

func TestSlideBoards(t *testing.T) {
	tests := []struct {
		name     string
		dir      Direction
		board    [][]int
		expected [][]int
		score    int
	}{
		{
			name: "left",
			dir:  Left,
			board: [][]int{
				{2, 2, 0, 0},
				{4, 0, 4, 0},
				{2, 2, 2, 2},
				{0, 0, 0, 2},
			},
			expected: [][]int{
				{4, 0, 0, 0},
				{8, 0, 0, 0},
				{4, 4, 0, 0},
				{2, 0, 0, 0},
			},
			score: 20,
		},
		{
			name: "right",
			dir:  Right,
			board: [][]int{
				{2, 2, 0, 0},
				{4, 0, 4, 0},
				{2, 2, 2, 2},
				{0, 0, 0, 2},
			},
			expected: [][]int{
				{0, 0, 0, 4},
				{0, 0, 0, 8},
				{0, 0, 4, 4},
				{0, 0, 0, 2},
			},
			score: 20,
		},
		{
			name: "up",
			dir:  Up,
			board: [][]int{
				{2, 4, 2, 0},
				{2, 0, 2, 0},
				{0, 4, 2, 0},
				{0, 0, 2, 2},
			},
			expected: [][]int{
				{4, 8, 4, 2},
				{0, 0, 4, 0},
				{0, 0, 0, 0},
				{0, 0, 0, 0},
			},
			score: 20,
		},
		{
			name: "down",
			dir:  Down,
			board: [][]int{
				{2, 4, 2, 2},
				{2, 0, 2, 0},
				{0, 4, 2, 0},
				{0, 0, 2, 0},
			},
			expected: [][]int{
				{0, 0, 0, 0},
				{0, 0, 0, 0},
				{0, 0, 4, 0},
				{4, 8, 4, 2},
			},
			score: 20,
		},
		{
			name: "non-square up",
			dir:  Up,
			board: [][]int{
				{0, 2},
				{2, 2},
				{2, 4},
			},
			expected: [][]int{
				{4, 4},
				{0, 4},
				{0, 0},
			},
			score: 8,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, _, score := slide(t, tt.board, tt.dir)
			want := MustBoard(tt.expected)
			if !b.Equal(want) {
				t.Errorf("slide %s: got\n%s\nwant\n%s", tt.dir, b, want)
			}
			if score != tt.score {
				t.Errorf("slide %s score = %d, want %d", tt.dir, score, tt.score)
			}
			if got := len(b.OccupiedSlots()); got != b.Occupied() {
				t.Errorf("Occupied() = %d, enumeration = %d", b.Occupied(), got)
			}
		})
	}
}

func TestMergeListenerSources(t *testing.T) {
	g, _ := NewGame(1, 3, WithSeed(1))
	_ = g.Load(MustBoard([][]int{{0, 8, 8}}))

	var calls int
	g.SetMergeListener(func(merged Block, at Point, first, second Source) {
		calls++
		if merged != 16 || at != Pt(0, 0) {
			t.Errorf("listener got merged=%d at=%s, want 16 at (0,0)", merged, at)
		}
		if first.Block != 8 || first.At != Pt(0, 0) {
			t.Errorf("first source = %+v, want 8 at (0,0)", first)
		}
		if second.Block != 8 || second.At != Pt(0, 2) {
			t.Errorf("second source = %+v, want 8 at (0,2)", second)
		}
	})

	if _, err := g.MoveBlocks(Left); err != nil {
		t.Fatal(err)
	}
	if calls != 1 {
		t.Errorf("listener calls = %d, want 1", calls)
	}
}

func TestCapPolicy(t *testing.T) {
	g, _ := NewGame(1, 4, WithSeed(1), WithPolicy(CapPolicy{Max: 8}))
	_ = g.Load(MustBoard([][]int{{8, 8, 4, 4}}))

	if _, err := g.MoveBlocks(Left); err != nil {
		t.Fatal(err)
	}
	if got := g.Board().Rows2D()[0]; !equalInts(got, []int{8, 8, 8, 0}) {
		t.Errorf("row = %v, want [8 8 8 0]", got)
	}
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
