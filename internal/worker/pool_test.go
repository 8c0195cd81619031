package worker

import (
	"context"
	"testing"
	"time"

	"github.com/ekg/gyeet/internal/align"
)

func TestRunPreservesOrdinalOrderDespiteOutOfOrderCompletion(t *testing.T) {
	// Batch 0 is the slowest worker; batches complete in reverse order
	// of dispatch, but Run must still emit them 0,1,2,3.
	delays := map[int]time.Duration{0: 40 * time.Millisecond, 1: 30 * time.Millisecond, 2: 20 * time.Millisecond, 3: 0}

	p := &Pool{
		NumWorkers: 4,
		MapBatch: func(ctx context.Context, reads []ReadInput) []align.Record {
			ord := reads[0].Name[0] - '0'
			time.Sleep(delays[int(ord)])
			return []align.Record{{QueryName: reads[0].Name}}
		},
	}

	batches := make(chan Batch, 4)
	for i := 0; i < 4; i++ {
		batches <- Batch{Ordinal: i, Reads: []ReadInput{{Name: string(rune('0' + i))}}}
	}
	close(batches)

	out := p.Run(context.Background(), batches)

	var got []int
	for r := range out {
		got = append(got, r.Ordinal)
	}

	want := []int{0, 1, 2, 3}
	if len(got) != len(want) {
		t.Fatalf("got %d results, want %d: %v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("results out of order: got %v, want %v", got, want)
		}
	}
}

func TestRunStopsDispatchingAfterCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var calls int
	p := &Pool{
		NumWorkers: 2,
		MapBatch: func(ctx context.Context, reads []ReadInput) []align.Record {
			calls++
			return nil
		},
	}

	batches := make(chan Batch, 1)
	batches <- Batch{Ordinal: 0, Reads: []ReadInput{{Name: "r"}}}
	close(batches)

	out := p.Run(ctx, batches)
	for range out {
	}

	if calls != 0 {
		t.Fatalf("MapBatch called %d times after cancellation, want 0", calls)
	}
}
