package align

import (
	"strings"
	"testing"

	"github.com/ekg/gyeet/internal/graph"
	"github.com/ekg/gyeet/internal/index"
	"github.com/ekg/gyeet/internal/seqpos"
)

func buildSingleNodeIndex(t *testing.T, k int) *index.Index {
	t.Helper()
	g := graph.NewMemGraph()
	g.AddNode("n1", []byte("ACGTACGT"))
	idx, err := index.Build(g, index.BuildOptions{K: k, MaxFurcations: 4, MaxDegree: 100})
	if err != nil {
		t.Fatal(err)
	}
	return idx
}

func buildTwoNodeIndex(t *testing.T, k int) *index.Index {
	t.Helper()
	g := graph.NewMemGraph()
	a := g.AddNode("n1", []byte("ACGT"))
	b := g.AddNode("n2", []byte("GGGA"))
	g.AddEdge(seqpos.NewHandle(a, false), seqpos.NewHandle(b, false))
	idx, err := index.Build(g, index.BuildOptions{K: k, MaxFurcations: 4, MaxDegree: 100})
	if err != nil {
		t.Fatal(err)
	}
	return idx
}

// scenario 1: single-node graph, exact match.
func TestMapReadSingleNodeExactMatch(t *testing.T) {
	idx := buildSingleNodeIndex(t, 4)
	p := DefaultParams
	p.K = 4
	p.MinAnchors = 1
	p.BestN = 1

	recs := MapRead(idx, NewWFAAligner(), "r1", []byte("ACGT"), p)
	if len(recs) != 1 {
		t.Fatalf("got %d records, want 1: %+v", len(recs), recs)
	}
	rec := recs[0]
	if rec.Unmapped {
		t.Fatalf("expected a mapped record, got UNMAPPED")
	}
	if rec.QueryStart != 0 || rec.QueryEnd != 3 {
		t.Fatalf("query span = [%d,%d], want [0,3]", rec.QueryStart, rec.QueryEnd)
	}
	if rec.CIGAR != "4=" {
		t.Fatalf("CIGAR = %q, want 4=", rec.CIGAR)
	}
}

// scenario 2: two-node graph, query crosses the edge.
func TestMapReadCrossesEdge(t *testing.T) {
	idx := buildTwoNodeIndex(t, 3)
	p := DefaultParams
	p.K = 3
	p.MinAnchors = 1
	p.BestN = 1

	recs := MapRead(idx, NewWFAAligner(), "r2", []byte("GTGGG"), p)
	if len(recs) != 1 || recs[0].Unmapped {
		t.Fatalf("got %+v, want one mapped record", recs)
	}
	if !strings.Contains(recs[0].PathString, "n1") || !strings.Contains(recs[0].PathString, "n2") {
		t.Fatalf("path_string = %q, want tokens for both n1 and n2", recs[0].PathString)
	}
}

// scenario 5: reverse strand.
func TestMapReadReverseStrand(t *testing.T) {
	idx := buildSingleNodeIndex(t, 4)
	p := DefaultParams
	p.K = 4
	p.MinAnchors = 1
	p.BestN = 1

	query := graph.ReverseComplement([]byte("ACGT"))
	recs := MapRead(idx, NewWFAAligner(), "r5", query, p)
	if len(recs) != 1 || recs[0].Unmapped {
		t.Fatalf("got %+v, want one mapped record", recs)
	}
	if recs[0].Strand != '-' {
		t.Fatalf("strand = %c, want -", recs[0].Strand)
	}
}

// scenario 6: query with an N is UNMAPPED.
func TestMapReadWithNIsUnmapped(t *testing.T) {
	idx := buildSingleNodeIndex(t, 4)
	p := DefaultParams
	p.K = 4

	recs := MapRead(idx, NewWFAAligner(), "r6", []byte("ACGN"), p)
	if len(recs) != 1 || !recs[0].Unmapped {
		t.Fatalf("got %+v, want a single UNMAPPED record", recs)
	}
	if recs[0].PathLen != 0 {
		t.Fatalf("UNMAPPED record path_len = %d, want 0", recs[0].PathLen)
	}
}

func TestMapqNoSecondBestIsSixty(t *testing.T) {
	if got := mapq(100, 0); got != 60 {
		t.Fatalf("mapq(100,0) = %d, want 60", got)
	}
}

func TestMapqEqualScoresIsLow(t *testing.T) {
	got := mapq(50, 50)
	if got < 0 || got > 5 {
		t.Fatalf("mapq(50,50) = %d, want near 0 (ambiguous tie)", got)
	}
}
