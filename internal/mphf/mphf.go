// Package mphf implements a BBHash-style minimum perfect hash function
// over a static set of uint64 keys (spec.md §4.4, C4).
//
// No BBHash/MPHF library is present anywhere in the retrieval pack (the
// gyeet/dozyg C++ source's boophf_t is the closest analogue, in
// original_source/), so this is a direct implementation of the standard
// multi-level construction: at each level, keys are hashed into a bitset
// sized by a load factor; keys landing alone in their slot are claimed at
// this level, keys colliding with another key fall through to the next
// level with a new seed. A handful of unresolved keys after the level cap
// are assigned by direct lookup instead of forcing more levels.
package mphf

import (
	"encoding/binary"
	"errors"

	"github.com/cespare/xxhash/v2"

	"github.com/ekg/gyeet/internal/bitvec"
)

// gamma is the per-level load factor: a larger bitset lowers the
// collision rate per level at the cost of more bits spent. 2.0 is the
// BBHash paper's usual middle-ground default.
const gamma = 2.0

// maxLevels bounds construction; any keys still unresolved after this
// many levels are assigned by direct map lookup instead of chasing
// vanishing returns on the collision rate.
const maxLevels = 25

// ErrEmptyKeySet is returned by Build when given no keys.
var ErrEmptyKeySet = errors.New("mphf: empty key set")

type level struct {
	bv     *bitvec.RankBV
	size   uint64
	seed   uint64
	offset uint64
}

// MPHF is a static function mapping a known set of U keys bijectively
// onto [0, U). Querying a key outside the training set may still return
// ok=true with some rank in range — this is the spec-mandated "false
// positive" behavior; callers MUST verify the result against the actual
// key associated with that rank (spec.md §3, §9).
type MPHF struct {
	levels   []level
	leftover map[uint64]uint64
	n        uint64
}

// N returns the size of the training set (the MPHF's output range is
// [0, N)).
func (m *MPHF) N() uint64 { return m.n }

// Build constructs an MPHF over keys. keys is not required to be unique,
// but duplicate keys waste a slot; the enumerator's dedup pass (run
// before calling Build) is expected to have already deduplicated.
func Build(keys []uint64) (*MPHF, error) {
	if len(keys) == 0 {
		return nil, ErrEmptyKeySet
	}

	remaining := append([]uint64(nil), keys...)
	var levels []level
	var offset uint64
	seed := uint64(0x9E3779B97F4A7C15)

	for lvl := 0; lvl < maxLevels && len(remaining) > 0; lvl++ {
		size := uint64(float64(len(remaining))*gamma) + 1

		counts := make([]uint8, size)
		for _, k := range remaining {
			s := slot(k, seed, size)
			if counts[s] < 2 {
				counts[s]++
			}
		}

		bv := bitvec.New(size)
		collided := remaining[:0:0]
		for _, k := range remaining {
			s := slot(k, seed, size)
			if counts[s] == 1 {
				bv.Set(s)
			} else {
				collided = append(collided, k)
			}
		}
		bv.Freeze()

		levels = append(levels, level{bv: bv, size: size, seed: seed, offset: offset})
		offset += bv.Len()
		remaining = collided
		seed = mix64(seed)
	}

	m := &MPHF{levels: levels}
	if len(remaining) > 0 {
		leftover := make(map[uint64]uint64, len(remaining))
		for i, k := range remaining {
			leftover[k] = offset + uint64(i)
		}
		offset += uint64(len(remaining))
		m.leftover = leftover
	}
	m.n = offset
	return m, nil
}

// Lookup returns the dense rank assigned to key. ok is false only when
// key provably matches no slot at any level (rare, since a well-sized
// bitset at each level leaves few unclaimed slots); a true result does
// NOT guarantee key was in the training set — positive-set verification
// against the stored occurrence is the caller's responsibility.
func (m *MPHF) Lookup(key uint64) (rank uint64, ok bool) {
	for _, lv := range m.levels {
		s := slot(key, lv.seed, lv.size)
		if lv.bv.IsSet(s) {
			return lv.offset + lv.bv.Rank1(s), true
		}
	}
	if m.leftover != nil {
		if r, ok := m.leftover[key]; ok {
			return r, true
		}
	}
	return 0, false
}

func slot(key, seed, size uint64) uint64 {
	h := mix64(key ^ seed)
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], h)
	return xxhash.Sum64(buf[:]) % size
}

func mix64(key uint64) uint64 {
	key = (^key) + (key << 21)
	key = key ^ (key >> 24)
	key = (key + (key << 3)) + (key << 8)
	key = key ^ (key >> 14)
	key = (key + (key << 2)) + (key << 4)
	key = key ^ (key >> 28)
	key = key + (key << 31)
	return key
}
