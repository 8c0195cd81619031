package align

import (
	"strconv"
	"strings"
)

// cigarString renders ops in SAM CIGAR text, e.g. "5=1X3=" (spec.md §6's
// optional `cg:Z:<CIGAR>` tag).
func cigarString(ops []CigarOp) string {
	var b strings.Builder
	for _, op := range ops {
		b.WriteString(strconv.Itoa(op.N))
		b.WriteByte(op.Op)
	}
	return b.String()
}

// residueMatches counts bases covered by '=' ops (spec.md §6's
// residue_matches field).
func residueMatches(ops []CigarOp) int {
	var n int
	for _, op := range ops {
		if op.Op == '=' {
			n += op.N
		}
	}
	return n
}

// blockLen is the total alignment length spanned by ops, matches and
// mismatches and indels alike (spec.md §6's block_len field).
func blockLen(ops []CigarOp) int {
	var n int
	for _, op := range ops {
		n += op.N
	}
	return n
}
