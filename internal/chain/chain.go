// Package chain groups colinear anchors within gap/mismatch budgets into
// chains (spec.md §4.7, C7). The predecessor-DP here is adapted
// from index/chaining2.go's Chainer2: a maxscores/maxscoresIdxs forward
// pass followed by backtracking from the best unvisited score, repeated
// until no chain scores above zero remain. Unlike Chainer2 this scans
// every earlier anchor rather than a fixed band, since per-read anchor
// lists are small enough that O(n^2) is not a bottleneck, and because
// spec.md's chainability predicate (gap/mismatch-rate bounds) already
// prunes most pairs before they cost a DP transition.
package chain

import (
	"sort"

	"github.com/ekg/gyeet/internal/anchor"
)

// gapPenalty is the linear per-base cost subtracted from a chain's score
// for each base of gap between consecutive anchors, mirroring
// chaining2.go's `s = maxscores[j] + b.Len - g` (pinned in SPEC_FULL.md §5:
// chain/superchain scoring is not fully specified by spec.md and must be
// pinned by the implementer).
const gapPenalty = 1

// Options bounds chaining (spec.md §4.7's exact parameter set).
type Options struct {
	K               int
	MaxGap          int
	MaxMismatchRate float64
	MinAnchors      int
}

// Chain is a colinear, same-strand run of anchors with a score (matched
// bases minus gap penalties).
type Chain struct {
	Anchors []anchor.Anchor
	Score   int
}

// Anchors chains anchors. Its input normally arrives sorted by RefBegin
// then QueryBegin, but Anchors re-sorts a copy defensively so that chaining is commutative in input order (spec.md
// §8's pinned testable property): the result depends only on anchor
// content, never on the order anchors arrived in.
func Anchors(anchors []anchor.Anchor, opt Options) []Chain {
	if len(anchors) == 0 {
		return nil
	}

	sorted := append([]anchor.Anchor(nil), anchors...)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].RefBegin != sorted[j].RefBegin {
			return sorted[i].RefBegin < sorted[j].RefBegin
		}
		return sorted[i].QueryBegin < sorted[j].QueryBegin
	})

	// Chains never cross strands: partition by the anchor's ref_pos
	// orientation before chaining each partition independently.
	var fwd, rev []anchor.Anchor
	for _, a := range sorted {
		if a.RefBegin.IsRev() {
			rev = append(rev, a)
		} else {
			fwd = append(fwd, a)
		}
	}

	var chains []Chain
	chains = append(chains, chainOneStrand(fwd, opt)...)
	chains = append(chains, chainOneStrand(rev, opt)...)
	return chains
}

func chainOneStrand(anchors []anchor.Anchor, opt Options) []Chain {
	n := len(anchors)
	if n == 0 {
		return nil
	}

	score := make([]int, n)
	prev := make([]int, n)
	nAnchors := make([]int, n)
	for i := range anchors {
		score[i] = opt.K
		prev[i] = -1
		nAnchors[i] = 1
	}

	for i := 1; i < n; i++ {
		a := anchors[i]
		for j := 0; j < i; j++ {
			b := anchors[j]
			g, ok := chainable(b, a, opt)
			if !ok {
				continue
			}
			matched := opt.K - overlapBases(b, a, opt.K)
			cand := score[j] + matched - gapPenalty*g
			if cand > score[i] {
				score[i] = cand
				prev[i] = j
				nAnchors[i] = nAnchors[j] + 1
			}
		}
	}

	visited := make([]bool, n)
	var chains []Chain
	for {
		best, bestScore := -1, 0
		for i := 0; i < n; i++ {
			if !visited[i] && score[i] > bestScore {
				best, bestScore = i, score[i]
			}
		}
		if best < 0 {
			break
		}

		var idxs []int
		i := best
		for i >= 0 && !visited[i] {
			idxs = append(idxs, i)
			visited[i] = true
			i = prev[i]
		}
		// idxs was collected end-to-start; reverse to query order.
		for l, r := 0, len(idxs)-1; l < r; l, r = l+1, r-1 {
			idxs[l], idxs[r] = idxs[r], idxs[l]
		}

		if len(idxs) >= opt.MinAnchors {
			c := Chain{Score: bestScore}
			for _, idx := range idxs {
				c.Anchors = append(c.Anchors, anchors[idx])
			}
			chains = append(chains, c)
		}
	}
	return chains
}

// chainable reports whether b can precede a in a chain, and if so the
// gap g between them (spec.md §4.7).
func chainable(b, a anchor.Anchor, opt Options) (gap int, ok bool) {
	if a.RefBegin.Offset() <= b.RefBegin.Offset() || a.QueryBegin <= b.QueryBegin {
		return 0, false
	}
	dq := a.QueryBegin - b.QueryBegin
	dr := int(a.RefBegin.Offset() - b.RefBegin.Offset())

	g := dq - dr
	if g < 0 {
		g = -g
	}
	if g > opt.MaxGap {
		return 0, false
	}

	// Estimated mismatches: spec.md §4.7 gives
	// `m ≈ g + max(0, min(dq, dr) − k) · 0`, whose second term is
	// always zero as written, so m == g here — a literal reading kept
	// deliberately rather than guessing an intended nonzero term.
	m := g
	maxDqDr := dq
	if dr > maxDqDr {
		maxDqDr = dr
	}
	if maxDqDr > 0 && float64(m) > opt.MaxMismatchRate*float64(maxDqDr) {
		return 0, false
	}
	return g, true
}

// overlapBases returns how many of a's k matched bases were already
// counted by b (its query span trails off into a's), mirroring
// chaining2.go's beginOfNextAnchor bookkeeping but computed directly
// from the pair instead of from a held "next anchor" cursor.
func overlapBases(b, a anchor.Anchor, k int) int {
	overlap := b.QueryEnd - a.QueryBegin + 1
	if overlap < 0 {
		return 0
	}
	if overlap > k {
		return k
	}
	return overlap
}
