package superchain

import (
	"testing"

	"github.com/ekg/gyeet/internal/anchor"
	"github.com/ekg/gyeet/internal/chain"
	"github.com/ekg/gyeet/internal/seqpos"
)

func mkChain(qlo, rlo int64, k int, score int) chain.Chain {
	return chain.Chain{
		Score: score,
		Anchors: []anchor.Anchor{{
			QueryBegin: int(qlo),
			QueryEnd:   int(qlo) + k - 1,
			RefBegin:   seqpos.Encode(rlo, false),
			RefEnd:     seqpos.Encode(rlo+int64(k)-1, false),
		}},
	}
}

func TestSelectMergesFlankingChains(t *testing.T) {
	opt := Options{ChainOverlapMax: 0.75, BestN: 5, MergeGap: 5}
	chains := []chain.Chain{
		mkChain(0, 100, 10, 20),
		mkChain(15, 115, 10, 20),
	}
	got := Select(chains, opt)
	if len(got) != 1 {
		t.Fatalf("got %d superchains, want 1 merged superchain: %+v", len(got), got)
	}
	if len(got[0].Chains) != 2 {
		t.Fatalf("merged superchain has %d chains, want 2", len(got[0].Chains))
	}
}

func TestSelectDropsHighOverlap(t *testing.T) {
	opt := Options{ChainOverlapMax: 0.2, BestN: 5, MergeGap: 0}
	chains := []chain.Chain{
		mkChain(0, 100, 10, 30),
		mkChain(2, 500, 10, 20), // overlaps the first chain's query span by 8/10
	}
	got := Select(chains, opt)
	if len(got) != 1 {
		t.Fatalf("got %d superchains, want 1 (second should be dropped for overlap): %+v", len(got), got)
	}
}

func TestSelectRespectsBestN(t *testing.T) {
	opt := Options{ChainOverlapMax: 0.75, BestN: 1, MergeGap: 0}
	chains := []chain.Chain{
		mkChain(0, 100, 10, 50),
		mkChain(200, 900, 10, 10),
	}
	got := Select(chains, opt)
	if len(got) != 1 {
		t.Fatalf("got %d superchains, want 1 (BestN cap)", len(got))
	}
	if got[0].Score != 50 {
		t.Fatalf("kept superchain score = %d, want 50 (the higher-scoring one)", got[0].Score)
	}
}
