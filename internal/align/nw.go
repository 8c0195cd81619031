package align

import "github.com/shenwei356/wfa"

// pointer records which cell a traceback step came from, adapted from
// LexicMap's index/align.Pointer (same four-way top/left/match/mismatch
// scheme, without its print-matrix debugging support, which this package
// has no use for).
type pointer uint8

const (
	none pointer = iota
	top
	left
	mismatch
	match
)

// nwAligner is a Needleman-Wunsch global aligner over two already-clipped
// slices, reused as the traceback step of wfaAligner and, directly, as a
// fallback when wfa.Aligner.Align can't find a band that spans the whole
// pair. Scores with wfa's own gap-affine penalties, collapsed to a single
// linear per-base gap cost (GapOpen charged on every gap column, GapExt
// ignored) — a deliberate simplification of full Gotoh three-matrix
// affine scoring, acceptable because the subgraph slices this runs over
// are short (one superchain's span) and rarely contain long indel runs.
type nwAligner struct {
	mismatch int
	gap      int

	scores   []int
	pointers []pointer
}

func newNWAligner(p *wfa.Penalties) *nwAligner {
	return &nwAligner{
		mismatch: -int(p.Mismatch),
		gap:      -int(p.GapOpen),
	}
}

// Align runs global alignment of query against target and reports it as
// an Alignment spanning the full input (QueryBegin/TargetBegin always 0).
func (n *nwAligner) Align(query, target []byte) (*Alignment, error) {
	if len(query) == 0 || len(target) == 0 {
		return nil, errEmptyAlignInput
	}

	h := len(query) + 1
	w := len(target) + 1
	need := h * w
	if cap(n.scores) < need {
		n.scores = make([]int, need)
		n.pointers = make([]pointer, need)
	}
	scores := n.scores[:need]
	pointers := n.pointers[:need]

	idx := func(i, j int) int { return i*w + j }

	pointers[0] = none
	for i := 1; i < h; i++ {
		scores[idx(i, 0)] = n.gap * i
		pointers[idx(i, 0)] = top
	}
	for j := 1; j < w; j++ {
		scores[idx(0, j)] = n.gap * j
		pointers[idx(0, j)] = left
	}

	for i := 1; i < h; i++ {
		for j := 1; j < w; j++ {
			mm := 1
			p := match
			if !baseEqual(query[i-1], target[j-1]) {
				mm = n.mismatch
				p = mismatch
			}
			best := scores[idx(i-1, j-1)] + mm
			if st := scores[idx(i-1, j)] + n.gap; st > best {
				best, p = st, top
			}
			if sl := scores[idx(i, j-1)] + n.gap; sl > best {
				best, p = sl, left
			}
			scores[idx(i, j)] = best
			pointers[idx(i, j)] = p
		}
	}

	var ops []CigarOp
	addOp := func(op byte) {
		if n := len(ops); n > 0 && ops[n-1].Op == op {
			ops[n-1].N++
			return
		}
		ops = append(ops, CigarOp{Op: op, N: 1})
	}

	i, j := h-1, w-1
	score := scores[idx(i, j)]
	for p := pointers[idx(i, j)]; p != none; p = pointers[idx(i, j)] {
		switch p {
		case match:
			addOp('=')
			i--
			j--
		case mismatch:
			addOp('X')
			i--
			j--
		case top:
			addOp('I')
			i--
		case left:
			addOp('D')
			j--
		}
	}
	reverseOps(ops)

	return &Alignment{
		Ops:         ops,
		Score:       score,
		QueryBegin:  0,
		QueryEnd:    len(query) - 1,
		TargetBegin: 0,
		TargetEnd:   len(target) - 1,
	}, nil
}

func baseEqual(a, b byte) bool {
	return upper(a) == upper(b)
}

func upper(b byte) byte {
	if b >= 'a' && b <= 'z' {
		return b - ('a' - 'A')
	}
	return b
}

func reverseOps(ops []CigarOp) {
	for i, j := 0, len(ops)-1; i < j; i, j = i+1, j-1 {
		ops[i], ops[j] = ops[j], ops[i]
	}
}
