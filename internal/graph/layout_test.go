package graph

import (
	"testing"

	"github.com/ekg/gyeet/internal/seqpos"
)

func TestBuildLayout(t *testing.T) {
	g := NewMemGraph()
	a := g.AddNode("n1", []byte("ACGT"))
	b := g.AddNode("n2", []byte("GGGA"))
	g.AddEdge(seqpos.NewHandle(a, false), seqpos.NewHandle(b, false))

	l := BuildLayout(g)
	if l.TotalLength() != 8 {
		t.Fatalf("TotalLength() = %d, want 8", l.TotalLength())
	}
	if l.FwdStart(0) != 0 || l.FwdStart(1) != 4 {
		t.Fatalf("fwd starts = %d, %d", l.FwdStart(0), l.FwdStart(1))
	}
	if l.RevStart(0) != 4 || l.RevStart(1) != 0 {
		t.Fatalf("rev starts = %d, %d", l.RevStart(0), l.RevStart(1))
	}
}
