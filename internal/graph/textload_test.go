package graph

import (
	"strings"
	"testing"
)

func TestLoadTextBuildsEdges(t *testing.T) {
	nodes := strings.NewReader("n1\tACGT\nn2\tGGGA\n")
	edges := strings.NewReader("n1\t+\tn2\t+\n")

	g, err := LoadText(nodes, edges)
	if err != nil {
		t.Fatal(err)
	}
	if g.NodeCount() != 2 {
		t.Fatalf("NodeCount = %d, want 2", g.NodeCount())
	}
	if g.TotalLength() != 8 {
		t.Fatalf("TotalLength = %d, want 8", g.TotalLength())
	}
}

func TestLoadTextRejectsUnknownEdgeNode(t *testing.T) {
	nodes := strings.NewReader("n1\tACGT\n")
	edges := strings.NewReader("n1\t+\tnope\t+\n")

	if _, err := LoadText(nodes, edges); err == nil {
		t.Fatal("expected an error for an edge referencing an unknown node id")
	}
}
