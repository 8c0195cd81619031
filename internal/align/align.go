// Package align is the alignment driver (spec.md §4.9, C9): given a
// built index and a query, it runs the full
// NEW → ANCHORED → CHAINED → SUPERCHAINED → ALIGNED|UNMAPPED pipeline for
// one read and assembles spec.md §6's output records.
package align

import (
	"errors"
	"math"

	"github.com/ekg/gyeet/internal/anchor"
	"github.com/ekg/gyeet/internal/chain"
	"github.com/ekg/gyeet/internal/graph"
	"github.com/ekg/gyeet/internal/index"
	"github.com/ekg/gyeet/internal/superchain"
)

var errEmptyAlignInput = errors.New("align: empty alignment input")

// Params bundles every tunable named by spec.md §6's parameter table plus
// the supplemented C++ flags (spec.md §4 of SPEC_FULL.md).
type Params struct {
	K               int
	MaxGap          int
	MaxMismatchRate float64
	MinAnchors      int
	ChainOverlapMax float64
	MergeGap        int
	BestN           int

	// DontAlign stops the pipeline after superchaining (the C++ `-D`
	// flag); MapRead then returns one Record per superchain with no
	// alignment fields populated beyond the query/strand/score.
	DontAlign bool
}

// DefaultParams mirrors spec.md §6's parameter defaults, with
// max_mismatch_rate pinned to the *running* 0.2 default rather than the
// stale 0.1 in the source's help text (spec.md §9's open question,
// resolved in SPEC_FULL.md §5).
var DefaultParams = Params{
	MaxGap:          1000,
	MaxMismatchRate: 0.2,
	MinAnchors:      3,
	ChainOverlapMax: 0.75,
	MergeGap:        50,
	BestN:           1,
}

// Record is one output line per spec.md §6's field list.
type Record struct {
	QueryName      string
	QueryLen       int
	QueryStart     int
	QueryEnd       int
	Strand         byte // '+' or '-'
	PathString     string
	PathLen        int
	PathStart      int
	PathEnd        int
	ResidueMatches int
	BlockLen       int
	MapQ           int
	CIGAR          string // optional cg:Z: tag; empty if not computed
	Score          int

	Unmapped bool
}

func unmappedRecord(name string, queryLen int) Record {
	return Record{QueryName: name, QueryLen: queryLen, Unmapped: true}
}

// MapRead runs the anchor→chain→superchain→align pipeline for one read
// and returns up to params.BestN records, one per surviving superchain,
// highest score first. A single UNMAPPED record is returned in its place
// the moment any stage produces no output (spec.md §4.9's state machine).
//
// query is the read as sequenced (forward strand); MapRead tries both
// orientations and keeps whichever strand anchors since spec.md's anchor
// stream only covers the orientation it's given (spec.md §8 scenario 5).
func MapRead(idx *index.Index, baseAligner BaseAligner, name string, query []byte, p Params) []Record {
	fwdAnchors, err := anchor.AnchorsFor(idx, query)
	if err != nil {
		return []Record{unmappedRecord(name, len(query))}
	}

	rcQuery := graph.ReverseComplement(query)
	revAnchors, err := anchor.AnchorsFor(idx, rcQuery)
	if err != nil {
		revAnchors = nil
	}

	chainOpt := chain.Options{K: p.K, MaxGap: p.MaxGap, MaxMismatchRate: p.MaxMismatchRate, MinAnchors: p.MinAnchors}
	superOpt := superchain.Options{ChainOverlapMax: p.ChainOverlapMax, BestN: p.BestN, MergeGap: p.MergeGap}

	var candidates []orientedSuperchain

	if chains := chain.Anchors(fwdAnchors, chainOpt); len(chains) > 0 {
		for _, sc := range superchain.Select(chains, superOpt) {
			candidates = append(candidates, orientedSuperchain{sc, false, query})
		}
	}
	if chains := chain.Anchors(revAnchors, chainOpt); len(chains) > 0 {
		for _, sc := range superchain.Select(chains, superOpt) {
			candidates = append(candidates, orientedSuperchain{sc, true, rcQuery})
		}
	}
	if len(candidates) == 0 {
		return []Record{unmappedRecord(name, len(query))}
	}

	// Re-sort the merged forward+reverse candidate pool by score so
	// BestN (and the mapq best-vs-second-best comparison below) consider
	// both strands together rather than per-strand.
	sortCandidatesByScore(candidates)
	pool := candidates
	if p.BestN > 0 && len(candidates) > p.BestN {
		candidates = candidates[:p.BestN]
	}

	records := make([]Record, 0, len(candidates))
	for i, c := range candidates {
		second := 0
		if i+1 < len(pool) {
			second = pool[i+1].sc.Score
		}
		rec := buildRecord(idx, baseAligner, name, c.query, c.sc, c.rev, p, second)
		records = append(records, rec)
	}
	return records
}

func buildRecord(idx *index.Index, baseAligner BaseAligner, name string, query []byte, sc superchain.Superchain, rev bool, p Params, secondScore int) (rec Record) {
	strand := byte('+')
	if rev {
		strand = '-'
	}
	rec = Record{
		QueryName:  name,
		QueryLen:   len(query),
		QueryStart: sc.QueryLo,
		QueryEnd:   sc.QueryHi,
		Strand:     strand,
		Score:      sc.Score,
		MapQ:       mapq(sc.Score, secondScore),
	}
	if p.DontAlign {
		return rec
	}

	// A panic from the external base aligner on one read must not bring
	// down the worker (spec.md §7); it downgrades this one record to
	// UNMAPPED instead.
	defer func() {
		if r := recover(); r != nil {
			rec = unmappedRecord(name, len(query))
		}
	}()

	sg := induceSubgraph(idx, sc.RefLo, sc.RefHi)
	aln, err := baseAligner.Align(query[sc.QueryLo:sc.QueryHi+1], sg.seq)
	if err != nil {
		return unmappedRecord(name, len(query))
	}

	rec.PathString = sg.pathString(idx, aln.TargetBegin, aln.TargetEnd)
	rec.PathStart = aln.TargetBegin
	rec.PathEnd = aln.TargetEnd
	rec.PathLen = len(sg.seq)
	rec.ResidueMatches = residueMatches(aln.Ops)
	rec.BlockLen = blockLen(aln.Ops)
	rec.CIGAR = cigarString(aln.Ops)
	return rec
}

// mapq implements spec.md §4.9's mapping-quality formula, pinned in
// SPEC_FULL.md §5: q = min(60, -10*log10(1 - s1/(s1+s2))), clamped to
// [0,60], with s2 == 0 (no second-best superchain) mapping to 60.
func mapq(s1, s2 int) int {
	if s1 <= 0 {
		return 0
	}
	if s2 <= 0 {
		return 60
	}
	ratio := float64(s1) / float64(s1+s2)
	if ratio >= 1 {
		return 60
	}
	q := -10 * math.Log10(1-ratio)
	if q > 60 {
		q = 60
	}
	if q < 0 {
		q = 0
	}
	return int(q + 0.5)
}

// orientedSuperchain pairs a superchain with the (query, strand) it was
// found against, since MapRead chains both orientations independently
// before merging and ranking the combined candidate pool.
type orientedSuperchain struct {
	sc    superchain.Superchain
	rev   bool
	query []byte
}

func sortCandidatesByScore(c []orientedSuperchain) {
	// insertion sort: candidate lists are tiny (bounded by 2*BestN)
	for i := 1; i < len(c); i++ {
		for j := i; j > 0 && c[j].sc.Score > c[j-1].sc.Score; j-- {
			c[j], c[j-1] = c[j-1], c[j]
		}
	}
}
