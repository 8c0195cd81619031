package anchor

import (
	"testing"

	"github.com/ekg/gyeet/internal/graph"
	"github.com/ekg/gyeet/internal/index"
	"github.com/ekg/gyeet/internal/seqpos"
)

func buildTestIndex(t *testing.T) *index.Index {
	t.Helper()
	g := graph.NewMemGraph()
	a := g.AddNode("n1", []byte("ACGT"))
	b := g.AddNode("n2", []byte("GGGA"))
	g.AddEdge(seqpos.NewHandle(a, false), seqpos.NewHandle(b, false))

	idx, err := index.Build(g, index.BuildOptions{K: 3, MaxFurcations: 4, MaxDegree: 100})
	if err != nil {
		t.Fatal(err)
	}
	return idx
}

func TestAnchorsForSortedByRefThenQuery(t *testing.T) {
	idx := buildTestIndex(t)

	anchors, err := AnchorsFor(idx, []byte("GTGGG"))
	if err != nil {
		t.Fatal(err)
	}
	if len(anchors) == 0 {
		t.Fatal("expected at least one anchor for GTGGG against ACGT->GGGA")
	}
	for i := 1; i < len(anchors); i++ {
		a, b := anchors[i-1], anchors[i]
		if a.RefBegin > b.RefBegin || (a.RefBegin == b.RefBegin && a.QueryBegin > b.QueryBegin) {
			t.Fatalf("anchors not sorted: %+v then %+v", a, b)
		}
	}
}

func TestAnchorsForEmptyQuery(t *testing.T) {
	idx := buildTestIndex(t)
	if _, err := AnchorsFor(idx, nil); err != ErrEmptyQuery {
		t.Fatalf("err = %v, want ErrEmptyQuery", err)
	}
}

func TestAnchorsForInvalidBase(t *testing.T) {
	idx := buildTestIndex(t)
	if _, err := AnchorsFor(idx, []byte("ACGTX")); err != ErrInvalidBase {
		t.Fatalf("err = %v, want ErrInvalidBase", err)
	}
}
