// Package anchor turns a query string into a stream of (query-offset,
// graph-position) hits against a built index (spec.md §4.6, C6).
package anchor

import (
	"errors"
	"sort"

	"github.com/ekg/gyeet/internal/index"
	"github.com/ekg/gyeet/internal/seqpos"
)

// Error kinds a per-read failure can surface; both are non-fatal and
// turn into an UNMAPPED record at the worker boundary, never abort a
// batch (spec.md §7).
var (
	ErrEmptyQuery  = errors.New("anchor: empty query")
	ErrInvalidBase = errors.New("anchor: query contains a character outside ACGTN")
)

// Anchor is one verified k-mer occurrence shared between the query and
// the graph: QueryBegin/QueryEnd are inclusive 0-based query offsets,
// RefBegin/RefEnd are the occurrence's seq_pos span.
type Anchor struct {
	QueryBegin int
	QueryEnd   int
	RefBegin   seqpos.Pos
	RefEnd     seqpos.Pos
}

// AnchorsFor extracts every anchor in query against idx, sorted by
// RefBegin then QueryBegin (spec.md §4.6) so the chainer can scan them
// in single-pass predecessor order.
func AnchorsFor(idx *index.Index, query []byte) ([]Anchor, error) {
	if len(query) == 0 {
		return nil, ErrEmptyQuery
	}
	for _, b := range query {
		if !isACGTN(b) {
			return nil, ErrInvalidBase
		}
	}

	var anchors []Anchor
	err := idx.ForEachOccurrence(query, func(queryPos int, occ index.Occurrence) error {
		anchors = append(anchors, Anchor{
			QueryBegin: queryPos,
			QueryEnd:   queryPos + idx.K - 1,
			RefBegin:   occ.Begin,
			RefEnd:     occ.End,
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(anchors, func(i, j int) bool {
		if anchors[i].RefBegin != anchors[j].RefBegin {
			return anchors[i].RefBegin < anchors[j].RefBegin
		}
		return anchors[i].QueryBegin < anchors[j].QueryBegin
	})
	return anchors, nil
}

func isACGTN(b byte) bool {
	switch b {
	case 'A', 'C', 'G', 'T', 'N', 'a', 'c', 'g', 't', 'n':
		return true
	default:
		return false
	}
}
