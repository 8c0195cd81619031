// Package graph defines the read-only view over the input variation graph
// that the core consumes (spec.md §4.2, C2). The producer of the graph is
// an external collaborator; this package only names the interface and
// provides a small in-memory implementation for tests and the CLI's
// text-format loader.
package graph

import "github.com/ekg/gyeet/internal/seqpos"

// Graph is a read-only handle-based view over a variation graph. The core
// never mutates it.
type Graph interface {
	// NodeCount returns the number of nodes.
	NodeCount() int
	// TotalLength returns the sum of all node sequence lengths.
	TotalLength() int64
	// Sequence returns the forward-orientation sequence of the node
	// named by h's rank, reverse-complemented if h.IsRev().
	Sequence(h seqpos.Handle) []byte
	// Len returns the length in bases of the node named by h's rank.
	Len(h seqpos.Handle) int
	// NodeID returns the graph's external identifier for a node rank
	// (used for path_string rendering, spec.md §6).
	NodeID(rank uint64) string
	// Neighbors returns the outgoing neighbors of h, oriented consistently
	// (i.e. walking into each returned handle continues the walk).
	Neighbors(h seqpos.Handle) []seqpos.Handle
	// ForEachHandle calls fn once per node rank in [0, NodeCount()), on
	// the forward orientation. Iteration stops early if fn returns false.
	ForEachHandle(fn func(h seqpos.Handle) bool)
}

// Complement returns the DNA base complement of b (A<->T, C<->G), leaving
// N and any other byte unchanged.
func Complement(b byte) byte {
	switch b {
	case 'A':
		return 'T'
	case 'C':
		return 'G'
	case 'G':
		return 'C'
	case 'T':
		return 'A'
	case 'a':
		return 't'
	case 'c':
		return 'g'
	case 'g':
		return 'c'
	case 't':
		return 'a'
	default:
		return b
	}
}

// ReverseComplement returns the reverse complement of seq as a new slice.
func ReverseComplement(seq []byte) []byte {
	n := len(seq)
	out := make([]byte, n)
	for i, b := range seq {
		out[n-1-i] = Complement(b)
	}
	return out
}
