package bitvec

import (
	"testing"
)

func TestRank1Basic(t *testing.T) {
	// node starts at offsets 0, 4, 10, 15 within a 20-base line.
	starts := []uint64{0, 4, 10, 15}
	bv := New(20)
	for _, s := range starts {
		bv.Set(s)
	}
	bv.Freeze()

	if bv.Len() != uint64(len(starts)) {
		t.Fatalf("Len() = %d, want %d", bv.Len(), len(starts))
	}

	cases := []struct {
		offset uint64
		want   uint64
	}{
		{0, 0},
		{1, 1},
		{4, 1},
		{5, 2},
		{10, 2},
		{14, 3},
		{15, 3},
		{19, 4},
	}
	for _, c := range cases {
		got := bv.Rank1(c.offset)
		if got != c.want {
			t.Errorf("Rank1(%d) = %d, want %d", c.offset, got, c.want)
		}
	}
}

func TestNodeAt(t *testing.T) {
	starts := []uint64{0, 4, 10, 15}
	bv := New(20)
	for _, s := range starts {
		bv.Set(s)
	}
	bv.Freeze()

	cases := []struct {
		offset uint64
		want   uint64
	}{
		{0, 0}, {1, 0}, {3, 0},
		{4, 1}, {7, 1}, {9, 1},
		{10, 2}, {14, 2},
		{15, 3}, {19, 3},
	}
	for _, c := range cases {
		if got := bv.NodeAt(c.offset); got != c.want {
			t.Errorf("NodeAt(%d) = %d, want %d", c.offset, got, c.want)
		}
	}
}

func TestMarshalRoundTrip(t *testing.T) {
	starts := []uint64{0, 4, 10, 15}
	bv := New(20)
	for _, s := range starts {
		bv.Set(s)
	}
	bv.Freeze()

	data, err := bv.MarshalBinary()
	if err != nil {
		t.Fatal(err)
	}

	bv2, err := UnmarshalBinary(data, 20)
	if err != nil {
		t.Fatal(err)
	}
	if bv2.Len() != bv.Len() {
		t.Fatalf("Len() after round-trip = %d, want %d", bv2.Len(), bv.Len())
	}
	for _, s := range starts {
		if !bv2.IsSet(s) {
			t.Errorf("offset %d not set after round-trip", s)
		}
	}
	if bv2.NodeAt(14) != 2 {
		t.Errorf("NodeAt(14) after round-trip = %d, want 2", bv2.NodeAt(14))
	}
}

func TestRank1ManyCheckpoints(t *testing.T) {
	n := uint64(20000)
	bv := New(n)
	for i := uint64(0); i < n; i += 3 {
		bv.Set(i)
	}
	bv.Freeze()

	// Node rank r starts at offset 3*r.
	for r := uint64(0); r < bv.Len(); r += 137 {
		offset := 3 * r
		if got := bv.Rank1(offset); got != r {
			t.Fatalf("Rank1(%d) = %d, want %d", offset, got, r)
		}
	}
}
