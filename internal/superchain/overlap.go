package superchain

import "github.com/rdleal/intervalst/interval"

// overlapIndex answers "how much does [lo,hi] overlap the set of
// intervals already accepted" queries during greedy superchain
// selection. The rdleal/intervalst API surface this touches (generic
// SearchTree keyed by a comparator, Insert, AllIntersections) is not
// directly visible anywhere in the retrieval pack — LexicMap's go.mod
// requires the module but its distilled fragment never imports it — so
// this is isolated behind its own small file and local interface rather
// than spread through superchain.go, the same containment strategy
// align's BaseAligner interface uses for the shenwei356/wfa package.
type overlapIndex struct {
	tree   *interval.SearchTree[int, int]
	bounds map[int][2]int // idx -> [lo, hi], since AllIntersections hands back values, not the matched bounds
}

func newOverlapIndex() *overlapIndex {
	return &overlapIndex{
		tree:   interval.NewSearchTree[int](func(a, b int) int { return a - b }),
		bounds: map[int][2]int{},
	}
}

// insert records an accepted interval [lo, hi] (inclusive) tagged with
// its index into the accepted-chains slice.
func (o *overlapIndex) insert(lo, hi, idx int) {
	_ = o.tree.Insert(lo, hi, idx)
	o.bounds[idx] = [2]int{lo, hi}
}

// overlapLen returns the total number of positions in [lo, hi] covered
// by any previously inserted interval.
func (o *overlapIndex) overlapLen(lo, hi int) int {
	idxs, ok := o.tree.AllIntersections(lo, hi)
	if !ok {
		return 0
	}
	var total int
	for _, idx := range idxs {
		b := o.bounds[idx]
		l, h := b[0], b[1]
		if l < lo {
			l = lo
		}
		if h > hi {
			h = hi
		}
		if h >= l {
			total += h - l + 1
		}
	}
	if max := hi - lo + 1; total > max {
		total = max
	}
	return total
}
