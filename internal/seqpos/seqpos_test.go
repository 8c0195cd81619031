package seqpos

import "testing"

func TestEncodeOffsetIsRev(t *testing.T) {
	p := Encode(12345, false)
	if p.Offset() != 12345 {
		t.Fatalf("offset = %d, want 12345", p.Offset())
	}
	if p.IsRev() {
		t.Fatalf("IsRev() = true, want false")
	}

	p = Encode(98, true)
	if p.Offset() != 98 {
		t.Fatalf("offset = %d, want 98", p.Offset())
	}
	if !p.IsRev() {
		t.Fatalf("IsRev() = false, want true")
	}
}

func TestAdvanceRetreat(t *testing.T) {
	p := Encode(10, true)
	p2, err := p.Advance(5)
	if err != nil {
		t.Fatal(err)
	}
	if p2.Offset() != 15 || !p2.IsRev() {
		t.Fatalf("got %v", p2)
	}

	p3, err := p2.Retreat(5)
	if err != nil {
		t.Fatal(err)
	}
	if p3 != p {
		t.Fatalf("retreat did not invert advance: got %v want %v", p3, p)
	}
}

func TestAdvanceOverflow(t *testing.T) {
	p := Encode(0, false)
	if _, err := p.Retreat(1); err == nil {
		t.Fatalf("expected overflow error retreating past 0")
	}
}

func TestHandleRoundTrip(t *testing.T) {
	for _, rev := range []bool{false, true} {
		h := NewHandle(424242, rev)
		if h.Rank() != 424242 {
			t.Fatalf("rank = %d, want 424242", h.Rank())
		}
		if h.IsRev() != rev {
			t.Fatalf("IsRev() = %v, want %v", h.IsRev(), rev)
		}
		if h.Flip().Flip() != h {
			t.Fatalf("Flip not involutive")
		}
	}
}
