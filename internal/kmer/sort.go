package kmer

import "github.com/twotwotwo/sorts"

// byHash adapts []KmerPos to sort.Interface for sorts.Quicksort, the
// in-place parallel sort index/kmer_location.go reaches for (there, via
// the sortutil.Uint64s convenience wrapper over the same package; here we
// need to keep Begin/End attached to the hash, so we implement
// sort.Interface directly instead of sorting a bare []uint64).
type byHash []KmerPos

func (s byHash) Len() int           { return len(s) }
func (s byHash) Less(i, j int) bool { return s[i].Hash < s[j].Hash }
func (s byHash) Swap(i, j int)      { s[i], s[j] = s[j], s[i] }

// SortByHash parallel-sorts occurrences by hash in place, the
// prerequisite for grouping adjacent equal-hash runs into MPHF rank
// groups (spec.md §4.3's post-processing step).
func SortByHash(list []KmerPos) {
	if len(list) < 2 {
		return
	}
	sorts.Quicksort(byHash(list))
}
