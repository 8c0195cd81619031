package kmer

import (
	"testing"
	"time"

	"github.com/ekg/gyeet/internal/graph"
	"github.com/ekg/gyeet/internal/seqpos"
)

func TestEnumeratorSingleNode(t *testing.T) {
	g := graph.NewMemGraph()
	g.AddNode("n1", []byte("ACGTACGT"))
	layout := graph.BuildLayout(g)

	e := NewEnumerator(g, layout, Options{K: 4, MaxFurcations: 2, MaxDegree: 100})

	var hits []KmerPos
	err := e.Enumerate(func(k KmerPos) error {
		hits = append(hits, k)
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}

	// Forward strand: "ACGT" occurs at offsets 0 and 4 (k=4, len=8 -> 5 windows).
	wantCode, ok := Encode([]byte("ACGT"))
	if !ok {
		t.Fatal("encode failed")
	}
	wantHash := CanonicalHash(wantCode, 4)

	var n int
	for _, h := range hits {
		if h.Begin.IsRev() {
			continue
		}
		if h.Begin.Offset() == 0 && h.Hash == wantHash {
			n++
		}
	}
	if n == 0 {
		t.Fatalf("expected at least one forward occurrence of ACGT at offset 0, got hits=%v", hits)
	}
}

func TestEnumeratorCrossesEdge(t *testing.T) {
	g := graph.NewMemGraph()
	a := g.AddNode("n1", []byte("ACGT"))
	b := g.AddNode("n2", []byte("GGGA"))
	g.AddEdge(seqpos.NewHandle(a, false), seqpos.NewHandle(b, false))
	layout := graph.BuildLayout(g)

	e := NewEnumerator(g, layout, Options{K: 3, MaxFurcations: 2, MaxDegree: 100})

	found := false
	err := e.Enumerate(func(k KmerPos) error {
		// "TGG" begins at the last base of n1, ends in n2 on the forward strand.
		if !k.Begin.IsRev() && k.Begin.Offset() == 3 && k.End.Offset() == 5 {
			found = true
		}
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if !found {
		t.Fatalf("expected a k-mer crossing the n1->n2 edge")
	}
}

func TestEnumeratorCycleTerminates(t *testing.T) {
	g := graph.NewMemGraph()
	a := g.AddNode("n1", []byte("AC"))
	b := g.AddNode("n2", []byte("GT"))
	g.AddEdge(seqpos.NewHandle(a, false), seqpos.NewHandle(b, false))
	g.AddEdge(seqpos.NewHandle(b, false), seqpos.NewHandle(a, false))
	layout := graph.BuildLayout(g)

	e := NewEnumerator(g, layout, Options{K: 20, MaxFurcations: 3, MaxDegree: 100})

	count := 0
	done := make(chan error, 1)
	go func() {
		done <- e.Enumerate(func(k KmerPos) error {
			count++
			return nil
		})
	}()
	select {
	case err := <-done:
		if err != nil {
			t.Fatal(err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("enumerate over a cyclic graph did not terminate")
	}
}
