package align

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ekg/gyeet/internal/index"
	"github.com/ekg/gyeet/internal/seqpos"
)

// subgraph is the induced graph subregion a superchain's spanned
// reference interval touches: the node handles it walks through, in
// order, and their concatenated sequence (spec.md §4.9's "set of nodes
// touched by the interval plus all edges among them").
type subgraph struct {
	handles []seqpos.Handle
	seq     []byte
	bounds  []int // len(handles)+1 entries; bounds[i] is seq's offset where handles[i] begins
}

// maxSubgraphNodes bounds the BFS below against cyclic graphs (spec.md
// §9's "cyclic graphs" design note): a superchain's span is a handful of
// anchors, so a connecting walk of more than this many nodes indicates a
// disconnected or pathological region rather than a real path.
const maxSubgraphNodes = 256

// induceSubgraph finds a walk from lo's node to hi's node following the
// graph's edges (idx.Neighbors), preferring the shortest one (BFS), and
// flattens it into a single target sequence for the base aligner.
func induceSubgraph(idx *index.Index, lo, hi seqpos.Pos) *subgraph {
	start := idx.SeqPosToHandle(lo)
	endRank := idx.SeqPosToHandle(hi).Rank()

	path := bfsPath(idx, start, endRank)
	if path == nil {
		path = []seqpos.Handle{start}
	}

	sg := &subgraph{handles: path, bounds: make([]int, len(path)+1)}
	for i, h := range path {
		sg.bounds[i] = len(sg.seq)
		n := idx.NodeLen(h.Rank())
		sg.seq = append(sg.seq, idx.SliceAt(idx.HandleToPos(h), int(n))...)
	}
	sg.bounds[len(path)] = len(sg.seq)
	return sg
}

func bfsPath(idx *index.Index, start seqpos.Handle, endRank uint64) []seqpos.Handle {
	if start.Rank() == endRank {
		return []seqpos.Handle{start}
	}

	type frame struct {
		h    seqpos.Handle
		path []seqpos.Handle
	}
	visited := map[seqpos.Handle]bool{start: true}
	queue := []frame{{start, []seqpos.Handle{start}}}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if len(cur.path) >= maxSubgraphNodes {
			continue
		}
		for _, nb := range idx.Neighbors(cur.h) {
			if visited[nb] {
				continue
			}
			visited[nb] = true
			next := append(append([]seqpos.Handle(nil), cur.path...), nb)
			if nb.Rank() == endRank {
				return next
			}
			queue = append(queue, frame{nb, next})
		}
	}
	return nil
}

// handleSpan returns the index range [i, j] (inclusive) into sg.handles whose node
// spans overlap the target offset interval [lo, hi] (inclusive).
func (sg *subgraph) handleSpan(lo, hi int) (int, int) {
	i := sort.Search(len(sg.handles), func(i int) bool { return sg.bounds[i+1] > lo })
	j := sort.Search(len(sg.handles), func(i int) bool { return sg.bounds[i+1] > hi })
	if j >= len(sg.handles) {
		j = len(sg.handles) - 1
	}
	return i, j
}

// pathString renders the >node_id/<node_id tokens for the handles
// spanning [lo, hi] in walk order (spec.md §6).
func (sg *subgraph) pathString(idx *index.Index, lo, hi int) string {
	i, j := sg.handleSpan(lo, hi)
	var b strings.Builder
	for k := i; k <= j && k < len(sg.handles); k++ {
		h := sg.handles[k]
		if h.IsRev() {
			b.WriteByte('<')
		} else {
			b.WriteByte('>')
		}
		b.WriteString(idx.NodeID(h.Rank()))
	}
	return b.String()
}

func (sg *subgraph) String() string {
	return fmt.Sprintf("subgraph{%d nodes, %d bases}", len(sg.handles), len(sg.seq))
}
