package graph

import "github.com/ekg/gyeet/internal/seqpos"

// node is one adjacency-list entry in a MemGraph, in the style of the
// Node{in []*Arc; out []*Arc} adjacency records used by graph-overlap
// tooling in the retrieval pack, flattened into rank-indexed slices to
// line up with spec.md §3's edge-table / node_ref layout, which
// MemGraph.Compile produces directly.
type node struct {
	id  string
	seq []byte
	out []seqpos.Handle // outgoing neighbors, forward orientation
}

// MemGraph is a small in-memory Graph implementation used by tests and by
// the CLI's tab-separated node/edge file loader (LoadText). It is not the mmap-backed
// production graph store (that is an external collaborator per spec.md
// §1) — it exists to exercise C2's interface end to end without requiring
// a real graph toolkit dependency.
type MemGraph struct {
	nodes       []node
	totalLength int64
}

// NewMemGraph creates an empty graph.
func NewMemGraph() *MemGraph {
	return &MemGraph{}
}

// AddNode appends a node with the given external id and forward sequence,
// returning its rank.
func (g *MemGraph) AddNode(id string, seq []byte) uint64 {
	rank := uint64(len(g.nodes))
	g.nodes = append(g.nodes, node{id: id, seq: append([]byte(nil), seq...)})
	g.totalLength += int64(len(seq))
	return rank
}

// AddEdge adds a directed edge from `from` to `to`, both oriented handles.
func (g *MemGraph) AddEdge(from, to seqpos.Handle) {
	g.nodes[from.Rank()].out = append(g.nodes[from.Rank()].out, to)
}

func (g *MemGraph) NodeCount() int { return len(g.nodes) }

func (g *MemGraph) TotalLength() int64 { return g.totalLength }

func (g *MemGraph) NodeID(rank uint64) string { return g.nodes[rank].id }

func (g *MemGraph) Len(h seqpos.Handle) int {
	return len(g.nodes[h.Rank()].seq)
}

func (g *MemGraph) Sequence(h seqpos.Handle) []byte {
	seq := g.nodes[h.Rank()].seq
	if h.IsRev() {
		return ReverseComplement(seq)
	}
	out := make([]byte, len(seq))
	copy(out, seq)
	return out
}

func (g *MemGraph) Neighbors(h seqpos.Handle) []seqpos.Handle {
	if !h.IsRev() {
		return g.nodes[h.Rank()].out
	}
	// A walk that enters a node in reverse orientation continues into the
	// flipped orientation of whatever pointed at it on the forward strand.
	var out []seqpos.Handle
	for r := range g.nodes {
		for _, nb := range g.nodes[r].out {
			if nb.Rank() == h.Rank() && !nb.IsRev() {
				out = append(out, seqpos.NewHandle(uint64(r), true))
			}
		}
	}
	return out
}

func (g *MemGraph) ForEachHandle(fn func(h seqpos.Handle) bool) {
	for r := range g.nodes {
		if !fn(seqpos.NewHandle(uint64(r), false)) {
			return
		}
	}
}
