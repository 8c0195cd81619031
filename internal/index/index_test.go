package index

import (
	"path/filepath"
	"testing"

	"github.com/ekg/gyeet/internal/graph"
	"github.com/ekg/gyeet/internal/seqpos"
)

func twoNodeGraph() *graph.MemGraph {
	g := graph.NewMemGraph()
	a := g.AddNode("n1", []byte("ACGT"))
	b := g.AddNode("n2", []byte("GGGA"))
	g.AddEdge(seqpos.NewHandle(a, false), seqpos.NewHandle(b, false))
	return g
}

func TestBuildFindsCrossEdgeKmer(t *testing.T) {
	g := twoNodeGraph()
	idx, err := Build(g, BuildOptions{K: 3, MaxFurcations: 4, MaxDegree: 100})
	if err != nil {
		t.Fatal(err)
	}

	// "TGG" spans the ACGT|GGGA edge.
	var hits int
	err = idx.ForEachOccurrence([]byte("TGG"), func(qp int, occ Occurrence) error {
		hits++
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if hits == 0 {
		t.Fatal("expected at least one verified occurrence for a cross-edge k-mer")
	}
}

func TestNeighborsRoundTripsIncomingOutgoing(t *testing.T) {
	g := twoNodeGraph()
	idx, err := Build(g, BuildOptions{K: 3, MaxFurcations: 4, MaxDegree: 100})
	if err != nil {
		t.Fatal(err)
	}

	out := idx.Neighbors(seqpos.NewHandle(0, false))
	if len(out) != 1 || out[0].Rank() != 1 {
		t.Fatalf("node 0 forward neighbors = %v, want [rank 1]", out)
	}

	in := idx.Neighbors(seqpos.NewHandle(1, true))
	if len(in) != 1 || in[0].Rank() != 0 {
		t.Fatalf("node 1 reverse neighbors = %v, want [rank 0]", in)
	}
}

func TestWriteLoadRoundTrip(t *testing.T) {
	g := twoNodeGraph()
	idx, err := Build(g, BuildOptions{K: 3, MaxFurcations: 4, MaxDegree: 100})
	if err != nil {
		t.Fatal(err)
	}

	prefix := filepath.Join(t.TempDir(), "test")
	if err := idx.Write(prefix); err != nil {
		t.Fatal(err)
	}

	loaded, err := Load(prefix)
	if err != nil {
		t.Fatal(err)
	}
	defer loaded.Close()

	if loaded.K != idx.K || loaded.SeqLen != idx.SeqLen || loaded.NNodes != idx.NNodes {
		t.Fatalf("loaded meta mismatch: got %+v", loaded)
	}

	var hits int
	err = loaded.ForEachOccurrence([]byte("TGG"), func(qp int, occ Occurrence) error {
		hits++
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if hits == 0 {
		t.Fatal("expected a verified occurrence for TGG after reload")
	}

	if got := loaded.NodeID(0); got != "n1" {
		t.Fatalf("NodeID(0) = %q, want n1", got)
	}
}

func TestSeqPosToHandleAgreesWithLayout(t *testing.T) {
	g := twoNodeGraph()
	idx, err := Build(g, BuildOptions{K: 3, MaxFurcations: 4, MaxDegree: 100})
	if err != nil {
		t.Fatal(err)
	}

	h := idx.SeqPosToHandle(seqpos.Encode(5, false))
	if h.Rank() != 1 {
		t.Fatalf("offset 5 should map to node rank 1, got %d", h.Rank())
	}
	h0 := idx.SeqPosToHandle(seqpos.Encode(0, false))
	if h0.Rank() != 0 {
		t.Fatalf("offset 0 should map to node rank 0, got %d", h0.Rank())
	}
}
