package chain

import (
	"math/rand"
	"reflect"
	"sort"
	"testing"

	"github.com/ekg/gyeet/internal/anchor"
	"github.com/ekg/gyeet/internal/seqpos"
)

func mkAnchor(q int, r int64, k int) anchor.Anchor {
	return anchor.Anchor{
		QueryBegin: q,
		QueryEnd:   q + k - 1,
		RefBegin:   seqpos.Encode(r, false),
		RefEnd:     seqpos.Encode(r+int64(k)-1, false),
	}
}

func TestChainCollinearRun(t *testing.T) {
	k := 3
	opt := Options{K: k, MaxGap: 5, MaxMismatchRate: 0.2, MinAnchors: 2}
	anchors := []anchor.Anchor{
		mkAnchor(0, 0, k),
		mkAnchor(5, 5, k),
		mkAnchor(10, 10, k),
	}

	chains := Anchors(anchors, opt)
	if len(chains) != 1 {
		t.Fatalf("got %d chains, want 1: %+v", len(chains), chains)
	}
	if len(chains[0].Anchors) != 3 {
		t.Fatalf("chain has %d anchors, want 3", len(chains[0].Anchors))
	}
}

func TestChainIsCommutativeInInputOrder(t *testing.T) {
	k := 3
	opt := Options{K: k, MaxGap: 5, MaxMismatchRate: 0.2, MinAnchors: 2}
	base := []anchor.Anchor{
		mkAnchor(0, 0, k),
		mkAnchor(5, 5, k),
		mkAnchor(10, 10, k),
		mkAnchor(100, 300, k), // unrelated, far away
		mkAnchor(103, 303, k),
	}

	want := Anchors(base, opt)

	r := rand.New(rand.NewSource(7))
	shuffled := append([]anchor.Anchor(nil), base...)
	r.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })
	got := Anchors(shuffled, opt)

	sortChains(want)
	sortChains(got)
	if !reflect.DeepEqual(want, got) {
		t.Fatalf("chaining not commutative:\nwant %+v\ngot  %+v", want, got)
	}
}

func TestChainDropsBelowMinAnchors(t *testing.T) {
	k := 3
	opt := Options{K: k, MaxGap: 5, MaxMismatchRate: 0.2, MinAnchors: 3}
	anchors := []anchor.Anchor{
		mkAnchor(0, 0, k),
		mkAnchor(5, 5, k),
	}
	chains := Anchors(anchors, opt)
	if len(chains) != 0 {
		t.Fatalf("got %d chains, want 0 (below MinAnchors)", len(chains))
	}
}

func sortChains(cs []Chain) {
	sort.Slice(cs, func(i, j int) bool {
		if len(cs[i].Anchors) == 0 || len(cs[j].Anchors) == 0 {
			return len(cs[i].Anchors) < len(cs[j].Anchors)
		}
		return cs[i].Anchors[0].RefBegin < cs[j].Anchors[0].RefBegin
	})
}
