package kmer

// Scratch is a reusable 2-bit-packed rolling buffer the enumerator uses
// while walking a node's sequence, so that shifting in one base and
// reading out the current k-mer code never touches a byte-per-base
// representation. Adapted from index/twobit/2bit_seq.go's Writer, whose
// on-disk 2-bit packing is kept here purely as the in-memory scratch
// encoding for this one hot loop — the mmap layout itself (internal/index)
// needs raw one-byte-per-base arrays for O(1) addressing, so this is not
// reused as the on-disk format.
type Scratch struct {
	code uint64
	mask uint64
	k    int
	n    int // number of bases currently loaded, saturates at k
}

// NewScratch creates a rolling buffer for k-mers of length k (k<=32).
// Returned by value, not pointer: the enumerator forks a walk by copying
// its Scratch onto the next recursive call's stack, so each branch gets
// an independent buffer with no shared mutable state.
func NewScratch(k int) Scratch {
	return Scratch{mask: (uint64(1) << (uint(k) * 2)) - 1, k: k}
}

// Reset clears the buffer, starting a fresh walk.
func (s *Scratch) Reset() {
	s.code = 0
	s.n = 0
}

// Push shifts base b into the buffer. Returns ok=false if b is not an
// ACGT base, in which case the buffer is reset (an N breaks the walk).
func (s *Scratch) Push(b byte) (ok bool) {
	c := baseCode[b]
	if c == 0xFF {
		s.Reset()
		return false
	}
	s.code = ((s.code << 2) | uint64(c)) & s.mask
	if s.n < s.k {
		s.n++
	}
	return true
}

// Full reports whether k bases have been pushed since the last Reset.
func (s *Scratch) Full() bool {
	return s.n >= s.k
}

// Code returns the current k-mer's packed 2-bit code. Only valid when
// Full() is true.
func (s *Scratch) Code() uint64 {
	return s.code
}
