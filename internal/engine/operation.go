package engine

// Source is one of the two tiles that took part in a merge.
type Source struct {
	At    Point
	Block Block
}

// MergeListener is told about every merge during a slide.
// merged is the new tile written at at; first is the tile that was already
// at the destination and second is the tile that slid into it.
type MergeListener func(merged Block, at Point, first, second Source)

// MergeOperation is the per-cell slide state machine. It relies on the
// traversal order: by the time a cell is visited, everything closer to the
// destination edge in the same line is already packed.
type MergeOperation struct {
	policy   MergePolicy
	listener MergeListener

	// per-line state, reset at the first cell of each line
	emptyRun   int
	lastMerged bool
}

// NewMergeOperation returns an operation using policy. A nil policy
// means SumPolicy.
func NewMergeOperation(policy MergePolicy) *MergeOperation {
	if policy == nil {
		policy = SumPolicy{}
	}
	return &MergeOperation{policy: policy}
}

// Reset prepares the operation for a new slide. listener may be nil.
func (o *MergeOperation) Reset(listener MergeListener) {
	o.listener = listener
	o.emptyRun = 0
	o.lastMerged = false
}

// Operate processes the cell at p.
func (o *MergeOperation) Operate(b *Board, p Point, newLine bool, move Mover) (Move, bool) {
	if newLine {
		o.emptyRun = 0
		o.lastMerged = false
	}

	cur := b.get(p)
	if cur.IsEmpty() {
		o.emptyRun++
		return Move{}, false
	}

	// Largest offset first: a tile never passes a tile it cannot merge with.
	for offset := o.emptyRun + 1; offset >= 1; offset-- {
		d := move(p, offset)
		if !b.Contains(d) {
			continue
		}

		dst := b.get(d)
		if dst.IsEmpty() {
			b.put(d, cur)
			b.put(p, Empty)
			o.lastMerged = false
			return Move{From: p, To: d, Value: cur}, true
		}

		if o.lastMerged || !o.policy.CanMerge(dst, cur) {
			continue
		}

		merged := o.policy.Merge(dst, cur)
		b.put(d, merged)
		b.put(p, Empty)
		o.lastMerged = true
		o.emptyRun++
		if o.listener != nil {
			o.listener(merged, d, Source{At: d, Block: dst}, Source{At: p, Block: cur})
		}
		return Move{From: p, To: d, Merged: true, Value: cur}, true
	}

	// Stays put and becomes the new head of the packed run.
	o.emptyRun = 0
	o.lastMerged = false
	return Move{}, false
}
