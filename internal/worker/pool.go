// Package worker runs the mapping pipeline over batches of reads on a
// fixed-size pool and serializes output by input order (spec.md §4.10,
// C10, and §5's concurrency model).
package worker

import (
	"context"
	"sync"

	"github.com/ekg/gyeet/internal/align"
)

// ReadInput is one query read: a name and its sequence.
type ReadInput struct {
	Name string
	Seq  []byte
}

// Batch is a monotonically-ordinal-numbered group of reads (spec.md
// §4.10: "Reads are partitioned into batches... each batch carries a
// monotonically increasing ordinal"). Ordinals must start at 0 and
// increase by 1 per batch submitted to Run.
type Batch struct {
	Ordinal int
	Reads   []ReadInput
}

// Result is one batch's mapped records, tagged with the same ordinal its
// input batch carried, so Run can reorder them before emission.
type Result struct {
	Ordinal int
	Records []align.Record
}

// Pool maps batches of reads concurrently across NumWorkers goroutines.
// The fan-out half (a buffered token channel bounding concurrency, plus a
// WaitGroup) is grounded on the teacher's own query-concurrency pattern
// in `cmd/search.go` (`tokens := make(chan int, maxQueryConcurrency)`
// guarding a per-query goroutine); unlike the teacher, which hands
// finished results to its printer in completion order, Run reorders by
// ordinal before handing results to the caller (spec.md §5's "output
// records appear in input order" guarantee — something the teacher's own
// pool does not provide, since it has no such requirement).
type Pool struct {
	NumWorkers int
	// MapBatch processes one batch of reads into alignment records; it
	// is the caller's glue to align.MapRead over a loaded index and
	// pinned params.
	MapBatch func(ctx context.Context, reads []ReadInput) []align.Record
}

// Run consumes batches (which may complete out of order) and sends
// Results on the returned channel strictly in ascending Ordinal order.
// The returned channel is closed once batches is drained and every
// in-flight batch has been processed and emitted.
//
// Cancellation is cooperative (spec.md §5): once ctx is done, Run stops
// dispatching new batches but lets already-running workers finish their
// current batch (the alignment math itself is non-suspending) and drains
// the ordered-output buffer before closing the returned channel, so no
// result is dropped mid-emission while another worker still holds the
// shared index's mmaps.
func (p *Pool) Run(ctx context.Context, batches <-chan Batch) <-chan Result {
	n := p.NumWorkers
	if n <= 0 {
		n = 1
	}

	completed := make(chan Result, n)
	ordered := make(chan Result, n)

	var wg sync.WaitGroup
	tokens := make(chan struct{}, n)

	go func() {
		for b := range batches {
			if ctx.Err() != nil {
				continue // drain the batch channel without dispatching more work
			}
			tokens <- struct{}{}
			wg.Add(1)
			go func(b Batch) {
				defer func() {
					<-tokens
					wg.Done()
				}()
				records := p.MapBatch(ctx, b.Reads)
				completed <- Result{Ordinal: b.Ordinal, Records: records}
			}(b)
		}
		wg.Wait()
		close(completed)
	}()

	go reorder(completed, ordered)

	return ordered
}
