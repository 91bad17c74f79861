package engine

// MergePolicy decides whether two tiles combine and what they become.
type MergePolicy interface {
	CanMerge(a, b Block) bool
	Merge(a, b Block) Block
}

// SumPolicy merges equal tiles into their sum. It is the classic rule.
type SumPolicy struct{}

func (SumPolicy) CanMerge(a, b Block) bool { return a.Valid() && a == b }

func (SumPolicy) Merge(a, b Block) Block { return a + b }

// CapPolicy behaves like SumPolicy but refuses merges whose result would
// exceed Max. A non-positive Max disables the cap.
type CapPolicy struct {
	Max Block
}

func (p CapPolicy) CanMerge(a, b Block) bool {
	if !(SumPolicy{}).CanMerge(a, b) {
		return false
	}
	return p.Max <= 0 || a+b <= p.Max
}

func (p CapPolicy) Merge(a, b Block) Block { return a + b }
