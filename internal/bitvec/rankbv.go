// Package bitvec implements the seq_bv node-start bit vector and its
// rank-1 structure: the map from a linear offset on the graph's
// concatenated sequence to the rank of the node that offset falls in
// (spec.md §3, §4.1).
//
// No succinct bit-vector library (sdsl's bit_vector/rank_support_v, the
// structure the gyeet/dozyg C++ source uses) is present anywhere in the
// retrieval pack, so this is built on github.com/RoaringBitmap/roaring
// (pulled in from agentic-research-mache's go.mod). Rank1 counts set bits
// by iterating the bitmap; a checkpoint table records the offset of every
// 4096th set bit so a query starts its walk from the nearest checkpoint
// instead of from offset 0.
package bitvec

import (
	"sort"

	"github.com/RoaringBitmap/roaring"
)

// checkpointStride is the spacing, in set bits, between cached rank
// checkpoints.
const checkpointStride = 4096

// RankBV is a read-only bit vector over [0, length) supporting rank-1
// queries. Once Freeze is called the vector is immutable, matching
// spec.md §3's "once loaded, all arrays are read-only" invariant.
type RankBV struct {
	bm     *roaring.Bitmap
	length uint64

	// checkpointOffsets[i] is the offset of the (i*checkpointStride)-th
	// set bit; checkpointRanks[i] == i*checkpointStride.
	checkpointOffsets []uint64

	nSet   uint64
	frozen bool
}

// New creates an empty RankBV over an index space of the given length.
func New(length uint64) *RankBV {
	return &RankBV{bm: roaring.New(), length: length}
}

// Set marks offset as a node-start bit. Must be called before Freeze.
func (r *RankBV) Set(offset uint64) {
	if r.frozen {
		panic("bitvec: Set called on frozen RankBV")
	}
	r.bm.Add(uint32OrPanic(offset))
}

// Freeze finalizes the bit vector and builds the rank checkpoint table.
// No further mutation is permitted afterwards.
func (r *RankBV) Freeze() {
	if r.frozen {
		return
	}
	r.bm.RunOptimize()

	it := r.bm.Iterator()
	var i uint64
	for it.HasNext() {
		v := it.Next()
		if i%checkpointStride == 0 {
			r.checkpointOffsets = append(r.checkpointOffsets, uint64(v))
		}
		i++
	}
	r.nSet = i
	r.frozen = true
}

// Len returns the number of set bits (i.e. the node count).
func (r *RankBV) Len() uint64 {
	return r.nSet
}

// Rank1 returns the number of set bits in [0, offset) (exclusive),
// matching spec.md §8's pinned property rank_1(seq_start_of(r)) == r.
func (r *RankBV) Rank1(offset uint64) uint64 {
	base, baseOffset := uint64(0), uint64(0)
	if n := len(r.checkpointOffsets); n > 0 {
		// Largest checkpoint whose offset is <= offset.
		ci := sort.Search(n, func(i int) bool {
			return r.checkpointOffsets[i] > offset
		}) - 1
		if ci >= 0 {
			base = uint64(ci) * checkpointStride
			baseOffset = r.checkpointOffsets[ci]
		}
	}

	it := r.bm.Iterator()
	it.AdvanceIfNeeded(uint32OrPanic(baseOffset))
	var extra uint64
	for it.HasNext() {
		v := it.Next()
		if uint64(v) >= offset {
			break
		}
		extra++
	}
	return base + extra
}

// NodeAt returns the rank of the node whose span contains offset, i.e.
// the general-purpose "any linear offset to a node rank" mapping spec.md
// §4.1 describes, as opposed to Rank1's exact rank-of-set-bit-count
// semantics (which only agrees with NodeAt when offset is itself a node
// start).
func (r *RankBV) NodeAt(offset uint64) uint64 {
	rank := r.Rank1(offset + 1)
	if rank == 0 {
		return 0
	}
	return rank - 1
}

// IsSet reports whether offset is a node-start position.
func (r *RankBV) IsSet(offset uint64) bool {
	return r.bm.Contains(uint32OrPanic(offset))
}

// MarshalBinary serializes the underlying roaring bitmap. Call Freeze
// before marshaling; checkpoints are rebuilt by UnmarshalBinary rather
// than persisted, since they are cheap to recompute from the bitmap
// itself on load.
func (r *RankBV) MarshalBinary() ([]byte, error) {
	return r.bm.ToBytes()
}

// UnmarshalBinary loads a roaring bitmap previously produced by
// MarshalBinary into a RankBV over an index space of the given length,
// and rebuilds the rank checkpoint table (i.e. it leaves r frozen).
func UnmarshalBinary(data []byte, length uint64) (*RankBV, error) {
	bm := roaring.New()
	if err := bm.UnmarshalBinary(data); err != nil {
		return nil, err
	}
	r := &RankBV{bm: bm, length: length}
	r.Freeze()
	return r, nil
}

func uint32OrPanic(v uint64) uint32 {
	if v > 0xFFFFFFFF {
		panic("bitvec: offset exceeds 32-bit roaring index space")
	}
	return uint32(v)
}
