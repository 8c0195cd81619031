package kmer

import (
	"github.com/ekg/gyeet/internal/graph"
	"github.com/ekg/gyeet/internal/seqpos"
)

// Options bounds a single enumeration run: K is the fixed k-mer length,
// MaxFurcations caps the number of branching decisions a single walk may
// take, MaxDegree excludes nodes of out-degree >= MaxDegree as walk seeds
// (spec.md §4.3).
type Options struct {
	K             int
	MaxFurcations int
	MaxDegree     int
}

// Enumerator performs the bounded depth-first graph walk that produces
// every k-length occurrence reachable from every node and strand within
// budget (spec.md §4.3, C3).
type Enumerator struct {
	g      graph.Graph
	layout *graph.Layout
	opt    Options
}

// NewEnumerator creates an Enumerator over g using a precomputed Layout
// (shared with the index builder so seq_pos values line up with the final
// seq_fwd/seq_rev arrays).
func NewEnumerator(g graph.Graph, layout *graph.Layout, opt Options) *Enumerator {
	return &Enumerator{g: g, layout: layout, opt: opt}
}

// Enumerate streams every k-length walk within budget to fn. A non-nil
// error from fn aborts enumeration and is returned.
func (e *Enumerator) Enumerate(fn func(KmerPos) error) error {
	var walkErr error
	e.g.ForEachHandle(func(h0 seqpos.Handle) bool {
		for _, rev := range [2]bool{false, true} {
			h := seqpos.NewHandle(h0.Rank(), rev)
			if e.outDegree(h) >= e.opt.MaxDegree {
				continue // high out-degree nodes are never walk seeds
			}
			seq := e.g.Sequence(h)
			for i := range seq {
				begin := e.posAt(h, i)
				scratch := NewScratch(e.opt.K)
				if err := e.walk(h, i, seq, scratch, begin, 0, map[seqpos.Handle]int{}, fn); err != nil {
					walkErr = err
					return false
				}
			}
		}
		return true
	})
	return walkErr
}

func (e *Enumerator) outDegree(h seqpos.Handle) int {
	return len(e.g.Neighbors(h))
}

func (e *Enumerator) posAt(h seqpos.Handle, local int) seqpos.Pos {
	start := e.layout.Start(h.Rank(), h.IsRev())
	return seqpos.Encode(start+int64(local), h.IsRev())
}

// walk consumes seq[startLocal:] into scratch (a value, so every fork
// below gets its own independent copy — no shared mutable rolling state
// across branches), emitting a KmerPos as soon as scratch fills and
// otherwise forking across neighbors up to the furcation/visited budget.
//
// visited bounds revisits of a single (node, orientation) handle within one walk, which
// is necessary independently of the furcation counter: a cycle made
// entirely of out-degree-1 nodes never furcates and would otherwise loop
// forever (spec.md §9, "cyclic graphs").
func (e *Enumerator) walk(
	h seqpos.Handle,
	startLocal int,
	seq []byte,
	scratch Scratch,
	begin seqpos.Pos,
	furcations int,
	visited map[seqpos.Handle]int,
	fn func(KmerPos) error,
) error {
	for i := startLocal; i < len(seq); i++ {
		if !scratch.Push(seq[i]) {
			return nil // an N in the walk: abandon it
		}
		if scratch.Full() {
			end := e.posAt(h, i)
			return fn(KmerPos{
				Hash:  CanonicalHash(scratch.Code(), e.opt.K),
				Begin: begin,
				End:   end,
			})
		}
	}

	neighbors := e.g.Neighbors(h)
	if len(neighbors) == 0 {
		return nil // dead end before reaching k bases
	}

	nextFurcations := furcations
	if len(neighbors) > 1 {
		nextFurcations++
		if nextFurcations > e.opt.MaxFurcations {
			return nil
		}
	}

	for _, nb := range neighbors {
		if visited[nb] > e.opt.MaxFurcations {
			continue
		}
		nbSeq := e.g.Sequence(nb)
		if len(nbSeq) == 0 {
			continue
		}

		childVisited := make(map[seqpos.Handle]int, len(visited)+1)
		for k, v := range visited {
			childVisited[k] = v
		}
		childVisited[nb]++

		if err := e.walk(nb, 0, nbSeq, scratch, begin, nextFurcations, childVisited, fn); err != nil {
			return err
		}
	}
	return nil
}
