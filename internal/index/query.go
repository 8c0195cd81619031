package index

import (
	"github.com/ekg/gyeet/internal/kmer"
	"github.com/ekg/gyeet/internal/seqpos"
)

// NumNodes returns the node count.
func (idx *Index) NumNodes() int { return idx.NNodes }

// NodeID returns the external id recorded for node rank at build time.
func (idx *Index) NodeID(rank uint64) string { return idx.nodeIDs[rank] }

// NodeLen returns the length in bases of node rank.
func (idx *Index) NodeLen(rank uint64) int64 {
	return int64(idx.nodeRef[rank+1].SeqStart - idx.nodeRef[rank].SeqStart)
}

// SeqPosToHandle maps a linear coordinate to the (node, orientation) its
// offset falls within (spec.md §4.1).
func (idx *Index) SeqPosToHandle(p seqpos.Pos) seqpos.Handle {
	off := uint64(p.Offset())
	if p.IsRev() {
		// seq_rev mirrors seq_fwd, so map back to the forward offset.
		off = uint64(idx.SeqLen) - 1 - off
	}
	rank := idx.seqBV.NodeAt(off)
	return seqpos.NewHandle(rank, p.IsRev())
}

// HandleToPos returns the seq_pos naming the first base of h.
func (idx *Index) HandleToPos(h seqpos.Handle) seqpos.Pos {
	rank := h.Rank()
	if h.IsRev() {
		start := idx.SeqLen - int64(idx.nodeRef[rank+1].SeqStart)
		return seqpos.Encode(start, true)
	}
	return seqpos.Encode(int64(idx.nodeRef[rank].SeqStart), false)
}

// Neighbors returns h's outgoing neighbors using the CSR edge table: the
// trailing span of node h.Rank()'s record for forward handles, the
// leading (incoming) span, each entry flipped, for reverse handles — the
// same flip(incoming(flip(h))) == outgoing(h) identity Build uses to
// write the table in the first place (spec.md §3).
func (idx *Index) Neighbors(h seqpos.Handle) []seqpos.Handle {
	r := h.Rank()
	nr, nrNext := idx.nodeRef[r], idx.nodeRef[r+1]
	incoming := idx.edges[nr.EdgeStart : nr.EdgeStart+uint64(nr.NIncoming)]
	if h.IsRev() {
		out := make([]seqpos.Handle, len(incoming))
		for i, nb := range incoming {
			out[i] = nb.Flip()
		}
		return out
	}
	return idx.edges[nr.EdgeStart+uint64(nr.NIncoming) : nrNext.EdgeStart]
}

// strandArray returns the backing array for p's strand.
func (idx *Index) strandArray(rev bool) []byte {
	if rev {
		return idx.seqRev
	}
	return idx.seqFwd
}

// SliceAt returns the `length` bases starting at p on p's own strand.
// Used both by occurrence verification and by alignment's subgraph
// sequence extraction.
func (idx *Index) SliceAt(p seqpos.Pos, length int) []byte {
	arr := idx.strandArray(p.IsRev())
	off := p.Offset()
	return arr[off : off+int64(length)]
}

// ForEachOccurrence is the low-level streaming primitive spec.md's
// original for_values_of exposed directly on the index: it re-derives
// every k-mer of query and, for each position whose canonical hash
// resolves through the MPHF, calls fn once per occurrence that verifies
// against the stored span (guarding against the MPHF's routine false
// positives on keys outside its training set, spec.md §9). anchor.go's
// AnchorsFor is built entirely on top of this.
//
// Verification reads k contiguous bases from the occurrence's Begin
// position on Begin's own strand. A walk that crosses a strand flip
// mid-k-mer (a node entered in the opposite orientation of its
// predecessor) will then fail verification and be dropped as if it were
// a false positive — a conservative choice that can only lose rare
// anchors, never fabricate a wrong one.
func (idx *Index) ForEachOccurrence(query []byte, fn func(queryPos int, occ Occurrence) error) error {
	if idx.K <= 0 || len(query) < idx.K {
		return nil
	}
	scratch := kmer.NewScratch(idx.K)
	for i := 0; i < len(query); i++ {
		if !scratch.Push(query[i]) {
			scratch = kmer.NewScratch(idx.K)
			continue
		}
		if !scratch.Full() {
			continue
		}
		queryPos := i - idx.K + 1
		hash := kmer.CanonicalHash(scratch.Code(), idx.K)
		rank, ok := idx.mphf.Lookup(hash)
		if !ok {
			continue
		}
		for _, occ := range idx.kpTable[idx.kpRef[rank]:idx.kpRef[rank+1]] {
			if !idx.verifyOccurrence(occ, query[queryPos:queryPos+idx.K]) {
				continue
			}
			if err := fn(queryPos, occ); err != nil {
				return err
			}
		}
	}
	return nil
}

func (idx *Index) verifyOccurrence(occ Occurrence, want []byte) bool {
	code, ok := kmer.Encode(want)
	if !ok {
		return false
	}
	canon, _ := kmer.Canonical(code, idx.K)

	got := idx.SliceAt(occ.Begin, idx.K)
	gotCode, ok := kmer.Encode(got)
	if !ok {
		return false
	}
	gotCanon, _ := kmer.Canonical(gotCode, idx.K)
	return gotCanon == canon
}
