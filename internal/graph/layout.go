package graph

import "github.com/ekg/gyeet/internal/seqpos"

// Layout is the node-rank-order placement of every node's sequence onto
// the graph's two linear coordinate lines (spec.md §3's "linear sequence
// arrays"). It is computed once from the graph and shared by the k-mer
// enumerator (C3, which needs it to turn a graph walk into seq_pos
// begin/end values) and the index builder (C5, which uses it to lay out
// seq_fwd/seq_rev/seq_bv).
//
// seq_fwd places node sequences in rank order; seq_rev is the whole-array
// reverse complement of seq_fwd (not a per-node reversal), so a node's
// span on the reverse strand is the mirror image of its forward span:
// node rank r occupies seq_fwd[fwdStart[r], fwdStart[r]+len(r)) and
// seq_rev[totalLength-fwdStart[r]-len(r), totalLength-fwdStart[r]).
type Layout struct {
	fwdStart    []int64 // fwdStart[rank] = offset of node rank's first base on seq_fwd
	lengths     []int64
	totalLength int64
}

// BuildLayout computes the node-rank-order layout for g.
func BuildLayout(g Graph) *Layout {
	n := g.NodeCount()
	l := &Layout{
		fwdStart: make([]int64, n),
		lengths:  make([]int64, n),
	}
	var off int64
	g.ForEachHandle(func(h seqpos.Handle) bool {
		r := h.Rank()
		length := int64(g.Len(h))
		l.fwdStart[r] = off
		l.lengths[r] = length
		off += length
		return true
	})
	l.totalLength = off
	return l
}

// TotalLength returns the length of each linear sequence array.
func (l *Layout) TotalLength() int64 { return l.totalLength }

// NumNodes returns the number of nodes in the layout.
func (l *Layout) NumNodes() int { return len(l.fwdStart) }

// FwdStart returns the forward-strand start offset of node rank.
func (l *Layout) FwdStart(rank uint64) int64 { return l.fwdStart[rank] }

// Len returns the length in bases of node rank.
func (l *Layout) Len(rank uint64) int64 { return l.lengths[rank] }

// RevStart returns the reverse-strand start offset of node rank (the
// offset, on seq_rev, of the first base of the node's revcomp sequence).
func (l *Layout) RevStart(rank uint64) int64 {
	return l.totalLength - l.fwdStart[rank] - l.lengths[rank]
}

// Start returns the strand-appropriate start offset of node rank.
func (l *Layout) Start(rank uint64, rev bool) int64 {
	if rev {
		return l.RevStart(rank)
	}
	return l.FwdStart(rank)
}

// HandleToPos returns the seq_pos naming the first base of h on its own
// orientation's strand.
func (l *Layout) HandleToPos(h seqpos.Handle) seqpos.Pos {
	return seqpos.Encode(l.Start(h.Rank(), h.IsRev()), h.IsRev())
}
