// Package seqpos implements the oriented linear coordinate system used to
// address the graph's concatenated forward/reverse-complement sequence
// arrays as a single line, and the handle (node, orientation) encoding used
// to name graph nodes.
package seqpos

import "fmt"

// Pos is an oriented linear position: the top bit selects the strand
// (0 = forward, 1 = reverse-complement of the graph's concatenated
// sequence) and the lower 63 bits are an offset from the start of that
// strand.
type Pos uint64

const revBit = uint64(1) << 63
const offsetMask = revBit - 1

// Encode packs an offset and an orientation flag into a Pos.
func Encode(offset int64, rev bool) Pos {
	v := uint64(offset) & offsetMask
	if rev {
		v |= revBit
	}
	return Pos(v)
}

// Offset returns the offset component of p, irrespective of strand.
func (p Pos) Offset() int64 {
	return int64(uint64(p) & offsetMask)
}

// IsRev reports whether p names the reverse-complement strand.
func (p Pos) IsRev() bool {
	return uint64(p)&revBit != 0
}

// Advance moves p forward by delta bases along its own strand. It returns
// an error if the move would cross the orientation bit (i.e. overflow the
// 63-bit offset space), which spec.md calls out as a bug, not a wraparound.
func (p Pos) Advance(delta int64) (Pos, error) {
	off := p.Offset() + delta
	if off < 0 || uint64(off) > offsetMask {
		return 0, fmt.Errorf("seqpos: advance(%d, %d) overflows strand boundary", p, delta)
	}
	return Encode(off, p.IsRev()), nil
}

// Retreat moves p backward by delta bases along its own strand.
func (p Pos) Retreat(delta int64) (Pos, error) {
	return p.Advance(-delta)
}

func (p Pos) String() string {
	strand := "+"
	if p.IsRev() {
		strand = "-"
	}
	return fmt.Sprintf("%s%d", strand, p.Offset())
}
