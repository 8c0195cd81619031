package align

import (
	"github.com/shenwei356/wfa"
)

// CigarOp is one run-length-encoded alignment operation. Op follows SAM
// convention: '=' match, 'X' mismatch, 'I' insertion (query has, target
// doesn't), 'D' deletion (target has, query doesn't).
type CigarOp struct {
	Op byte
	N  int
}

// Alignment is the result of aligning a query slice against a target
// (subgraph) slice: the clipped span actually aligned plus its CIGAR.
type Alignment struct {
	Ops                    []CigarOp
	Score                  int
	QueryBegin, QueryEnd   int // inclusive, 0-based, within the query slice passed to Align
	TargetBegin, TargetEnd int // inclusive, 0-based, within the target slice passed to Align
}

// BaseAligner performs gap-affine local alignment of a query against a
// target (spec.md §4.9's "external base aligner"). Isolated as a local
// interface, rather than calling shenwei356/wfa directly from the driver,
// because wfa.CIGAR's full field and method surface isn't visible anywhere
// in the retrieval pack (only TBegin/QBegin/TEnd/QEnd, confirmed by
// reading wfa's own backTrace, are used here) — see DESIGN.md.
type BaseAligner interface {
	Align(query, target []byte) (*Alignment, error)
}

// wfaAligner wraps shenwei356/wfa.Aligner. It uses wfa.Aligner.Align only
// for what the fragment in the pack confirms: the clipped query/target
// span the optimal alignment occupies (CIGAR.QBegin/QEnd/TBegin/TEnd).
// The actual operation list is then recomputed locally with the gap-affine
// penalties wfa itself was configured with, via nwAligner's traceback —
// this avoids depending on wfa.CIGAR's internal op representation, which
// is built through an AddN(op byte, n uint32) method but never exposed
// for reading back.
type wfaAligner struct {
	penalties *wfa.Penalties
	opt       *wfa.Options
	nw        *nwAligner
}

// NewWFAAligner returns the default base aligner, backed by
// github.com/shenwei356/wfa with its paper-default gap-affine penalties.
func NewWFAAligner() BaseAligner {
	return &wfaAligner{
		penalties: wfa.DefaultPenalties,
		opt:       wfa.DefaultOptions,
		nw:        newNWAligner(wfa.DefaultPenalties),
	}
}

func (a *wfaAligner) Align(query, target []byte) (*Alignment, error) {
	if len(query) == 0 || len(target) == 0 {
		return nil, errEmptyAlignInput
	}

	q := append([]byte(nil), query...)
	t := append([]byte(nil), target...)

	algn := wfa.New(a.penalties, a.opt)
	defer wfa.RecycleAligner(algn)

	c, err := algn.Align(q, t)
	if err != nil {
		// wfa failed to find a band covering the full pair (e.g. the
		// subgraph slice is too short for its adaptive reduction) —
		// fall back to the always-terminating NW traceback over the
		// full slices rather than surfacing a hard error for a read
		// that is merely awkwardly short.
		return a.nw.Align(query, target)
	}

	qb, qe := int(c.QBegin), int(c.QEnd)
	tb, te := int(c.TBegin), int(c.TEnd)
	if qb < 0 || te < 0 || qb > qe || tb > te || qe >= len(query) || te >= len(target) {
		return a.nw.Align(query, target)
	}

	clipped, err := a.nw.Align(query[qb:qe+1], target[tb:te+1])
	if err != nil {
		return nil, err
	}
	clipped.QueryBegin += qb
	clipped.QueryEnd += qb
	clipped.TargetBegin += tb
	clipped.TargetEnd += tb
	return clipped, nil
}
