package game

import (
	"bytes"
	"math"
	"testing"

	"github.com/wordlex/solver/internal/rank"
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

func newGame(t *testing.T, words []string, target string) *GameState {
	t.Helper()
	idx := buildIndex(words)
	r := rank.New(idx, words, nil)
	return New(idx, r, target)
}

func TestGuessingTargetWins(t *testing.T) {
	words := []string{"crane", "slate", "adieu"}
	g := newGame(t, words, "crane")

	stat := g.Guess("crane")
	if !stat.Valid {
		t.Fatal("expected a valid stat")
	}
	if g.Status() != Won {
		t.Fatalf("Status() = %v, want Won", g.Status())
	}
	if !stat.Pattern.Won() {
		t.Error("pattern should report Won for an exact match")
	}
}

func TestLosingAfterMaxGuesses(t *testing.T) {
	words := []string{"crane", "slate", "adieu", "roate", "tares", "pious", "month"}
	g := newGame(t, words, "month")

	wrongGuesses := []string{"crane", "slate", "adieu", "roate", "tares", "pious"}
	for i, w := range wrongGuesses {
		stat := g.Guess(w)
		if !stat.Valid {
			t.Fatalf("guess %d (%s) should be valid", i, w)
		}
	}
	if g.Status() != Lost {
		t.Fatalf("Status() = %v, want Lost after %d wrong guesses", g.Status(), MaxGuesses)
	}

	after := g.Guess("month")
	if after.Valid {
		t.Error("guessing after the game is over must return an invalid Stat")
	}
	if g.Guesses() != MaxGuesses {
		t.Errorf("Guesses() = %d, want %d after a rejected post-game guess", g.Guesses(), MaxGuesses)
	}
}

func TestInvalidGuessDoesNotAdvance(t *testing.T) {
	g := newGame(t, []string{"crane", "slate"}, "crane")
	stat := g.Guess("zzzzz")
	if stat.Valid {
		t.Error("expected an out-of-vocabulary guess to be invalid")
	}
	if g.Guesses() != 0 {
		t.Errorf("Guesses() = %d, want 0 after an invalid guess", g.Guesses())
	}
}

func TestResetPreservesRankerWarmth(t *testing.T) {
	words := []string{"crane", "slate", "adieu", "roate"}
	g := newGame(t, words, "crane")
	g.Guess("slate")

	top := g.TopN(1)
	if len(top) == 0 {
		t.Fatal("expected at least one ranked word")
	}

	g.SetTarget("adieu")
	top2 := g.TopN(1)
	if len(top2) == 0 {
		t.Fatal("expected at least one ranked word after reset")
	}
}

func TestSaveAndLoadCacheRoundTrip(t *testing.T) {
	words := []string{"crane", "slate", "adieu", "roate"}
	g := newGame(t, words, "crane")
	g.TopN(len(words))

	var buf bytes.Buffer
	if !g.SaveCache(&buf) {
		t.Fatal("SaveCache reported failure")
	}

	g2 := newGame(t, words, "crane")
	if !g2.LoadCache(&buf) {
		t.Fatal("LoadCache reported the saved cache as malformed")
	}
}

func TestLoadCacheRejectsMalformedData(t *testing.T) {
	g := newGame(t, []string{"crane", "slate"}, "crane")
	if g.LoadCache(bytes.NewReader([]byte("not a cache\n"))) {
		t.Error("expected malformed cache data to be rejected")
	}
}

func TestCandidateCountMonotoneAndBitsConserved(t *testing.T) {
	words := []string{"crane", "slate", "adieu", "roate", "tares", "pious", "month", "crony"}
	g := newGame(t, words, "crony")

	prev := g.CurrentStat().Count
	for _, w := range []string{"slate", "adieu", "tares"} {
		stat := g.Guess(w)
		if !stat.Valid {
			t.Fatalf("guess %s should be valid", w)
		}
		if stat.Count > prev {
			t.Errorf("candidate count grew after %s: %d -> %d", w, prev, stat.Count)
		}
		wantBits := math.Log2(float64(prev)) - math.Log2(float64(stat.Count))
		if math.Abs(stat.Bits-wantBits) > 1e-9 {
			t.Errorf("bits after %s = %v, want log2(%d)-log2(%d) = %v", w, stat.Bits, prev, stat.Count, wantBits)
		}
		prev = stat.Count
	}
}

func TestNewFromWordListsRandomizesMissingTarget(t *testing.T) {
	words := []string{"crane", "slate", "adieu"}
	g := NewFromWordLists(words, words, "", nil, nil)

	target := g.TargetWord()
	found := false
	for _, w := range words {
		if w == target {
			found = true
		}
	}
	if !found {
		t.Fatalf("randomized target %q is not in the possible set", target)
	}
}

func TestNewFromWordListsAppliesWarmCache(t *testing.T) {
	words := []string{"crane", "slate", "adieu", "roate"}
	g := newGame(t, words, "crane")
	g.TopN(len(words))

	var buf bytes.Buffer
	if !g.SaveCache(&buf) {
		t.Fatal("SaveCache reported failure")
	}

	g2 := NewFromWordLists(words, words, "crane", &buf, nil)
	if g2.Status() != Ongoing {
		t.Fatalf("Status() = %v, want Ongoing", g2.Status())
	}
	if len(g2.TopN(1)) != 1 {
		t.Fatal("expected a ranked word from the warm-started session")
	}
}

func TestCurrentStatBeforeAnyGuess(t *testing.T) {
	words := []string{"crane", "slate", "adieu", "roate"}
	g := newGame(t, words, "crane")

	s := g.CurrentStat()
	if s.Valid {
		t.Error("expected the pre-guess stat to be invalid")
	}
	if s.Count != len(words) {
		t.Errorf("pre-guess Count = %d, want %d", s.Count, len(words))
	}

	g.Guess("slate")
	if got := g.CurrentStat(); !got.Valid || got.Guess != "slate" {
		t.Errorf("CurrentStat after a guess = %+v, want the slate stat", got)
	}
}

func TestStatAtNegativeIndexReturnsMostRecent(t *testing.T) {
	g := newGame(t, []string{"crane", "slate", "adieu"}, "crane")
	g.Guess("slate")
	s := g.StatAt(-1)
	if s.Guess != "slate" {
		t.Errorf("StatAt(-1).Guess = %s, want slate", s.Guess)
	}
}
