// Package index implements the persisted, mmap-addressed graph k-mer
// index: the linear sequence arrays, the node-start rank-1 bit vector,
// the edge table, the MPHF over canonical k-mer hashes, and the
// occurrence table it addresses (spec.md §3, §4.4-§4.5, §6; C5).
//
// On-disk layout follows the one-array-per-file convention spec.md §6
// specifies rather than LexicMap's single packed .lmi directory of
// chunk files (index/index.go), since here there is no per-batch
// sharding to coordinate: one graph, one set of arrays, written once at
// build time and mmapped read-only thereafter.
package index

import (
	"github.com/ekg/gyeet/internal/bitvec"
	"github.com/ekg/gyeet/internal/mphf"
	"github.com/ekg/gyeet/internal/seqpos"
)

// NodeRef is one node_ref record (spec.md §3): seq_start is the node's
// forward-strand offset into seq_fwd, edge_start indexes into the
// shared edge table, and n_incoming splits that node's span into its
// leading incoming-edge run and trailing outgoing-edge run. The span
// itself is [edge_start, next node's edge_start) — nodeRef carries one
// sentinel entry past the last real node (SeqStart == SeqLen,
// EdgeStart == len(edges), NIncoming == 0) so every node's span end is
// just "the next record's EdgeStart" with no special-casing.
type NodeRef struct {
	SeqStart  uint64
	EdgeStart uint64
	NIncoming uint32
}

// Occurrence is one k-mer walk's [Begin, End] span (End is the walk's
// last base) on the oriented
// linear coordinate line, as grouped under a single MPHF rank in
// kmer_pos_table (spec.md §3's "K-mer occurrence table").
type Occurrence struct {
	Begin seqpos.Pos
	End   seqpos.Pos
}

// Index is the built (or mmapped) graph k-mer index. All fields are
// read-only once construction (Build or Load) returns, matching
// spec.md §3's "once loaded, all arrays are read-only" invariant.
type Index struct {
	K       int
	SeqLen  int64
	NNodes  int

	seqFwd []byte
	seqRev []byte
	seqBV  *bitvec.RankBV

	nodeIDs []string
	nodeRef []NodeRef
	edges   []seqpos.Handle

	mphf    *mphf.MPHF
	kpRef   []uint64      // prefix sums, length mphf.N()+1
	kpTable []Occurrence  // length kpRef[mphf.N()]

	// closers release resources (unmap mmapped regions) acquired by
	// Load; Build's in-memory Index has none.
	closers []func() error
}
