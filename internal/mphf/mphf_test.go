package mphf

import (
	"bytes"
	"math/rand"
	"testing"
)

func TestBuildLookupBijective(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	seen := map[uint64]bool{}
	var keys []uint64
	for len(keys) < 5000 {
		k := r.Uint64()
		if !seen[k] {
			seen[k] = true
			keys = append(keys, k)
		}
	}

	m, err := Build(keys)
	if err != nil {
		t.Fatal(err)
	}
	if m.N() != uint64(len(keys)) {
		t.Fatalf("N() = %d, want %d", m.N(), len(keys))
	}

	ranks := make(map[uint64]bool, len(keys))
	for _, k := range keys {
		rank, ok := m.Lookup(k)
		if !ok {
			t.Fatalf("Lookup(%d) reported not found for a training key", k)
		}
		if rank >= m.N() {
			t.Fatalf("rank %d out of range [0,%d)", rank, m.N())
		}
		if ranks[rank] {
			t.Fatalf("rank %d assigned to more than one key: not a bijection", rank)
		}
		ranks[rank] = true
	}
	if len(ranks) != len(keys) {
		t.Fatalf("got %d distinct ranks, want %d", len(ranks), len(keys))
	}
}

func TestEmptyKeySet(t *testing.T) {
	if _, err := Build(nil); err != ErrEmptyKeySet {
		t.Fatalf("Build(nil) err = %v, want ErrEmptyKeySet", err)
	}
}

func TestSerializeRoundTrip(t *testing.T) {
	keys := []uint64{1, 2, 3, 42, 1000, 987654321, 7, 8, 9, 555}
	m, err := Build(keys)
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if _, err := m.WriteTo(&buf); err != nil {
		t.Fatal(err)
	}

	m2, err := ReadFrom(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if m2.N() != m.N() {
		t.Fatalf("N() after round-trip = %d, want %d", m2.N(), m.N())
	}
	for _, k := range keys {
		r1, ok1 := m.Lookup(k)
		r2, ok2 := m2.Lookup(k)
		if !ok1 || !ok2 || r1 != r2 {
			t.Fatalf("lookup mismatch for key %d: (%d,%v) vs (%d,%v)", k, r1, ok1, r2, ok2)
		}
	}
}
