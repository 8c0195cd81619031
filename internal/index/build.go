package index

import (
	"github.com/pkg/errors"

	"github.com/ekg/gyeet/internal/bitvec"
	"github.com/ekg/gyeet/internal/graph"
	"github.com/ekg/gyeet/internal/kmer"
	"github.com/ekg/gyeet/internal/mphf"
	"github.com/ekg/gyeet/internal/seqpos"
)

// BuildOptions bounds the k-mer enumeration performed by Build (spec.md
// §4.3), mirroring kmer.Options.
type BuildOptions struct {
	K             int
	MaxFurcations int
	MaxDegree     int
}

// Build materializes the full index in memory from g: the sequence
// arrays and node-start bit vector (graph.Layout), the edge table
// (graph.Graph.Neighbors plus its reverse-orientation flip identity),
// every k-length occurrence (kmer.Enumerator), and the MPHF plus
// occurrence table grouping those occurrences by canonical hash. Write
// persists the result; an Index returned by Build is immediately usable
// without writing it first.
func Build(g graph.Graph, opt BuildOptions) (*Index, error) {
	n := g.NodeCount()
	if n == 0 {
		return nil, ErrEmptyGraph
	}

	layout := graph.BuildLayout(g)

	idx := &Index{
		K:      opt.K,
		SeqLen: layout.TotalLength(),
		NNodes: n,
	}

	idx.buildSequences(g, layout)
	idx.buildEdges(g)

	if err := idx.buildKmerIndex(g, layout, opt); err != nil {
		return nil, err
	}

	return idx, nil
}

// buildSequences lays out seq_fwd, seq_rev and the node-start bit
// vector from layout, copying each node's forward sequence into its
// rank-ordered span (spec.md §3).
func (idx *Index) buildSequences(g graph.Graph, layout *graph.Layout) {
	idx.seqFwd = make([]byte, idx.SeqLen)
	idx.seqRev = make([]byte, idx.SeqLen)
	idx.seqBV = bitvec.New(uint64(idx.SeqLen))

	g.ForEachHandle(func(h seqpos.Handle) bool {
		r := h.Rank()
		fwdSeq := g.Sequence(seqpos.NewHandle(r, false))
		fwdStart := layout.FwdStart(r)
		copy(idx.seqFwd[fwdStart:], fwdSeq)
		idx.seqBV.Set(uint64(fwdStart))

		revSeq := g.Sequence(seqpos.NewHandle(r, true))
		revStart := layout.RevStart(r)
		copy(idx.seqRev[revStart:], revSeq)
		return true
	})
	idx.seqBV.Freeze()
}

// buildEdges lays out the CSR-style edge table: for every node rank r,
// the incoming span is flip-each(Neighbors(flip(r))) and the outgoing
// span is Neighbors(r) directly (spec.md §3's node_ref/edge-table
// split). A sentinel NodeRef terminates the table so every node's span
// end is simply the next record's EdgeStart.
func (idx *Index) buildEdges(g graph.Graph) {
	idx.nodeRef = make([]NodeRef, idx.NNodes+1)
	idx.nodeIDs = make([]string, idx.NNodes)

	var edges []seqpos.Handle
	var seqStart uint64
	for r := 0; r < idx.NNodes; r++ {
		rank := uint64(r)
		idx.nodeIDs[r] = g.NodeID(rank)

		incomingRaw := g.Neighbors(seqpos.NewHandle(rank, true))
		incoming := make([]seqpos.Handle, len(incomingRaw))
		for i, nb := range incomingRaw {
			incoming[i] = nb.Flip()
		}
		outgoing := g.Neighbors(seqpos.NewHandle(rank, false))

		idx.nodeRef[r] = NodeRef{
			SeqStart:  seqStart,
			EdgeStart: uint64(len(edges)),
			NIncoming: uint32(len(incoming)),
		}
		edges = append(edges, incoming...)
		edges = append(edges, outgoing...)

		seqStart += uint64(g.Len(seqpos.NewHandle(rank, false)))
	}
	idx.nodeRef[idx.NNodes] = NodeRef{
		SeqStart:  seqStart,
		EdgeStart: uint64(len(edges)),
		NIncoming: 0,
	}
	idx.edges = edges
}

// buildKmerIndex enumerates every walk within budget, groups occurrences
// by canonical hash, builds the MPHF over the distinct hash set, and
// lays out kmer_pos_ref/kmer_pos_table so that rank r's occurrences are
// kpTable[kpRef[r]:kpRef[r+1]] (spec.md §4.4).
func (idx *Index) buildKmerIndex(g graph.Graph, layout *graph.Layout, opt BuildOptions) error {
	enum := kmer.NewEnumerator(g, layout, kmer.Options{
		K:             opt.K,
		MaxFurcations: opt.MaxFurcations,
		MaxDegree:     opt.MaxDegree,
	})

	var occs []kmer.KmerPos
	if err := enum.Enumerate(func(kp kmer.KmerPos) error {
		occs = append(occs, kp)
		return nil
	}); err != nil {
		return errors.Wrap(err, "index: enumerate k-mers")
	}
	if len(occs) == 0 {
		return ErrNoKmers
	}

	kmer.SortByHash(occs)

	// Group consecutive equal-hash runs; one group per distinct key.
	type group struct {
		hash uint64
		occs []Occurrence
	}
	var groups []group
	for i := 0; i < len(occs); {
		j := i + 1
		for j < len(occs) && occs[j].Hash == occs[i].Hash {
			j++
		}
		grp := group{hash: occs[i].Hash}
		for _, o := range occs[i:j] {
			grp.occs = append(grp.occs, Occurrence{Begin: o.Begin, End: o.End})
		}
		groups = append(groups, grp)
		i = j
	}

	keys := make([]uint64, len(groups))
	for i, grp := range groups {
		keys[i] = grp.hash
	}

	m, err := mphf.Build(keys)
	if err != nil {
		return errors.Wrap(err, "index: build mphf")
	}
	idx.mphf = m

	counts := make([]int, m.N())
	byRank := make([][]Occurrence, m.N())
	for _, grp := range groups {
		rank, ok := m.Lookup(grp.hash)
		if !ok {
			return errors.Errorf("index: mphf failed to resolve a training key %d", grp.hash)
		}
		counts[rank] = len(grp.occs)
		byRank[rank] = grp.occs
	}

	kpRef := make([]uint64, m.N()+1)
	for r := uint64(0); r < m.N(); r++ {
		kpRef[r+1] = kpRef[r] + uint64(counts[r])
	}

	kpTable := make([]Occurrence, kpRef[m.N()])
	for r := uint64(0); r < m.N(); r++ {
		copy(kpTable[kpRef[r]:kpRef[r+1]], byRank[r])
	}

	idx.kpRef = kpRef
	idx.kpTable = kpTable
	return nil
}
