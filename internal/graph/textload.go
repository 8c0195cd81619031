package graph

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/pkg/errors"

	"github.com/ekg/gyeet/internal/seqpos"
)

// LoadText reads a MemGraph from a pair of tab-separated readers: nodes
// (one "id\tsequence" per line) and edges (one "from_id\tfrom_strand\t
// to_id\tto_strand" per line, strand being "+" or "-"). Graph
// construction itself is out of scope (spec.md's Non-goals: "this repo
// does not build variation graphs") — this is a minimal loader for the
// handful of node/edge records a test fixture or a small example graph
// needs, not a general graph-format parser, so it is deliberately kept
// to stdlib bufio/strings rather than reaching for a CSV/TSV dependency
// nothing in the pack supplies for this shape of file anyway.
func LoadText(nodes, edges io.Reader) (*MemGraph, error) {
	g := NewMemGraph()
	rank := map[string]uint64{}

	sc := bufio.NewScanner(nodes)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for lineNo := 1; sc.Scan(); lineNo++ {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Split(line, "\t")
		if len(fields) != 2 {
			return nil, errors.Errorf("graph: nodes line %d: want 2 tab-separated fields, got %d", lineNo, len(fields))
		}
		id := fields[0]
		if _, dup := rank[id]; dup {
			return nil, errors.Errorf("graph: nodes line %d: duplicate node id %q", lineNo, id)
		}
		rank[id] = g.AddNode(id, []byte(strings.ToUpper(fields[1])))
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrap(err, "graph: reading nodes")
	}

	sc = bufio.NewScanner(edges)
	for lineNo := 1; sc.Scan(); lineNo++ {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Split(line, "\t")
		if len(fields) != 4 {
			return nil, errors.Errorf("graph: edges line %d: want 4 tab-separated fields, got %d", lineNo, len(fields))
		}
		fromRank, ok := rank[fields[0]]
		if !ok {
			return nil, errors.Errorf("graph: edges line %d: unknown node id %q", lineNo, fields[0])
		}
		toRank, ok := rank[fields[2]]
		if !ok {
			return nil, errors.Errorf("graph: edges line %d: unknown node id %q", lineNo, fields[2])
		}
		fromRev, err := parseStrand(fields[1])
		if err != nil {
			return nil, errors.Wrapf(err, "graph: edges line %d", lineNo)
		}
		toRev, err := parseStrand(fields[3])
		if err != nil {
			return nil, errors.Wrapf(err, "graph: edges line %d", lineNo)
		}
		g.AddEdge(seqpos.NewHandle(fromRank, fromRev), seqpos.NewHandle(toRank, toRev))
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrap(err, "graph: reading edges")
	}

	return g, nil
}

func parseStrand(s string) (bool, error) {
	switch s {
	case "+":
		return false, nil
	case "-":
		return true, nil
	default:
		return false, fmt.Errorf("strand must be %q or %q, got %q", "+", "-", s)
	}
}
