package rank

import (
	"testing"

	"github.com/wordlex/solver/internal/query"
	"github.com/wordlex/solver/internal/trie"
)

func buildIndex(words []string) *trie.PrefixIndex {
	idx := trie.New()
	for _, w := range words {
		idx.Insert(w, trie.Allowed)
		idx.Insert(w, trie.Possible)
	}
	return idx
}

func TestTopNReturnsAtMostN(t *testing.T) {
	words := []string{"crane", "slate", "adieu", "roate", "tares"}
	idx := buildIndex(words)
	r := New(idx, words, nil)

	got := r.TopN(3, query.New())
	if len(got) != 3 {
		t.Fatalf("len(TopN(3)) = %d, want 3", len(got))
	}
}

func TestTopNOrderedByEntropyDescending(t *testing.T) {
	words := []string{"crane", "slate", "adieu", "roate", "tares", "pious"}
	idx := buildIndex(words)
	r := New(idx, words, nil)

	got := r.TopN(len(words), query.New())
	for i := 1; i < len(got); i++ {
		if got[i].Entropy > got[i-1].Entropy+floatTolerance {
			t.Errorf("entropy not descending at %d: %v > %v", i, got[i].Entropy, got[i-1].Entropy)
		}
	}
}

func TestTopNIsMemoizedPerQuery(t *testing.T) {
	words := []string{"crane", "slate", "adieu", "roate", "tares"}
	idx := buildIndex(words)
	r := New(idx, words, nil)

	q := query.New()
	first := r.TopN(2, q)
	second := r.TopN(2, q)
	if len(first) != len(second) {
		t.Fatalf("cached call returned a different length: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("cached entry %d differs: %+v vs %+v", i, first[i], second[i])
		}
	}
}

func TestMaxEntropyBoundIsMonotonicAcrossPlies(t *testing.T) {
	words := []string{"crane", "slate", "adieu", "roate", "tares", "pious", "month"}
	idx := buildIndex(words)
	r := New(idx, words, nil)

	q1 := query.New()
	r.TopN(len(words), q1)
	bounds1 := make(map[string]float64, len(r.work))
	for _, rw := range r.work {
		bounds1[rw.Word] = rw.MaxEntropyBound
	}

	q2 := query.New()
	q2.SetFixed('c', 0)
	r.TopN(len(words), q2)
	for _, rw := range r.work {
		if rw.MaxEntropyBound > bounds1[rw.Word]+floatTolerance {
			t.Errorf("MaxEntropyBound increased for %s: %v -> %v", rw.Word, bounds1[rw.Word], rw.MaxEntropyBound)
		}
	}
}

func TestRegressionStrategyReordersByExpectedScore(t *testing.T) {
	words := []string{"crane", "slate", "adieu", "roate", "tares"}
	idx := buildIndex(words)
	r := New(idx, words, nil)
	strat := &RegressionStrategy{Ranker: r}

	q := query.New()
	ctx := Context{RemainingBits: entropyOfWhole(r, q), PossibleCount: len(words), GuessesMade: 0}
	got := strat.TopN(len(words), q, ctx)

	for i := 1; i < len(got); i++ {
		if got[i].Score < got[i-1].Score-floatTolerance {
			t.Errorf("regression score not ascending at %d: %v < %v", i, got[i].Score, got[i-1].Score)
		}
	}
}

func entropyOfWhole(r *Ranker, q query.Query) float64 {
	top := r.TopN(1, q)
	if len(top) == 0 {
		return 0
	}
	return top[0].MaxEntropyBound
}
