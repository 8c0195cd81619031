// Package kmer implements k-mer encoding, canonicalization, and the
// bounded-DFS enumerator that walks the graph to produce every k-length
// walk within the furcation/degree budgets (spec.md §4.3, C3).
package kmer

import "github.com/ekg/gyeet/internal/seqpos"

// baseCode maps an ASCII base to its 2-bit code, or 0xFF if invalid.
// Bit-shift/code idioms here follow cmd/util/kmers.go's KmerBaseAt /
// KmerPrefix family: pure bit arithmetic, no library, same as the
// teacher's own choice not to import a k-mer codec.
var baseCode = [256]byte{}

func init() {
	for i := range baseCode {
		baseCode[i] = 0xFF
	}
	baseCode['A'], baseCode['a'] = 0, 0
	baseCode['C'], baseCode['c'] = 1, 1
	baseCode['G'], baseCode['g'] = 2, 2
	baseCode['T'], baseCode['t'] = 3, 3
}

var codeBase = [4]byte{'A', 'C', 'G', 'T'}

// complementCode returns the 2-bit code of the complementary base.
func complementCode(c byte) byte {
	return c ^ 3
}

// Encode packs a byte slice of length k (bases A/C/G/T only) into a 2-bit
// code, high bits first. Returns ok=false if seq contains a non-ACGT base.
func Encode(seq []byte) (code uint64, ok bool) {
	for _, b := range seq {
		c := baseCode[b]
		if c == 0xFF {
			return 0, false
		}
		code = code<<2 | uint64(c)
	}
	return code, true
}

// Decode unpacks a k-length 2-bit code back into bases.
func Decode(code uint64, k int) []byte {
	out := make([]byte, k)
	for i := k - 1; i >= 0; i-- {
		out[i] = codeBase[code&3]
		code >>= 2
	}
	return out
}

// ReverseComplementCode returns the reverse complement of a k-length 2-bit
// code.
func ReverseComplementCode(code uint64, k int) uint64 {
	var rc uint64
	for i := 0; i < k; i++ {
		rc = rc<<2 | uint64(complementCode(byte(code&3)))
		code >>= 2
	}
	return rc
}

// Canonical returns the lexicographically smaller of code and its reverse
// complement, and whether the reverse complement was chosen.
func Canonical(code uint64, k int) (canon uint64, isRC bool) {
	rc := ReverseComplementCode(code, k)
	if rc < code {
		return rc, true
	}
	return code, false
}

// KmerPos is a single occurrence of a k-mer on the graph's linearized
// strand: a canonical hash and the [Begin, End] seq_pos span of the walk
// that produced it (spec.md §3's "K-mer record").
type KmerPos struct {
	Hash  uint64
	Begin seqpos.Pos
	End   seqpos.Pos
}
