package worker

import "container/heap"

// resultHeap is a min-heap of Results ordered by Ordinal, used to buffer
// batches that complete ahead of the one Run is currently waiting to
// emit. Built on stdlib container/heap — no teacher or pack precedent
// for ordered-output reassembly exists (LexicMap's own worker pool
// never needs one, see pool.go's doc comment), so this is the one piece
// of C10 justified on general Go concurrency idiom rather than grounded
// in the corpus.
type resultHeap []Result

func (h resultHeap) Len() int            { return len(h) }
func (h resultHeap) Less(i, j int) bool  { return h[i].Ordinal < h[j].Ordinal }
func (h resultHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *resultHeap) Push(x interface{}) { *h = append(*h, x.(Result)) }
func (h *resultHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// reorder reads Results off in (which may arrive in any order) and
// writes them to out strictly in ascending Ordinal order, starting from
// 0, closing out once in is drained and every buffered batch has been
// emitted.
func reorder(in <-chan Result, out chan<- Result) {
	defer close(out)

	h := &resultHeap{}
	next := 0
	for r := range in {
		heap.Push(h, r)
		for h.Len() > 0 && (*h)[0].Ordinal == next {
			out <- heap.Pop(h).(Result)
			next++
		}
	}
	// Defensive: a non-contiguous ordinal sequence (a bug upstream)
	// would otherwise stall forever waiting for `next`. Flush whatever
	// remains in ordinal order rather than deadlock silently.
	for h.Len() > 0 {
		out <- heap.Pop(h).(Result)
	}
}
