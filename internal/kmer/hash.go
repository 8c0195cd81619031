package kmer

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
)

// CanonicalHash returns the 64-bit hash of the canonical form of the
// k-length code. The mixing step is grounded on util/util.go's Hash64
// (a Thomas Wang 64-bit mixer), applied after running the 8-byte encoded
// code through xxhash so that near-identical k-mer codes (which differ
// only in their low bits) don't collide in the MPHF's seeded hash family
// the way a bare mixer applied directly to `code` might for small k.
func CanonicalHash(code uint64, k int) uint64 {
	canon, _ := Canonical(code, k)
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], canon)
	return mix64(xxhash.Sum64(buf[:]))
}

// mix64 is the Thomas Wang 64-bit integer mixer LexicMap's util.Hash64
// uses to spread xxhash output further before it is used as an MPHF key.
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
