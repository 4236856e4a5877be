package trie

import (
	"sort"
	"testing"

	"github.com/wordlex/solver/internal/feedback"
	"github.com/wordlex/solver/internal/query"
)

func buildIndex(words []string) *PrefixIndex {
	idx := New()
	for _, w := range words {
		idx.Insert(w, Allowed)
		idx.Insert(w, Possible)
	}
	return idx
}

func TestCountPrefix(t *testing.T) {
	idx := buildIndex([]string{"camus", "catch", "cameo", "doubt"})
	if got := idx.CountPrefix("ca", Allowed); got != 3 {
		t.Errorf("CountPrefix(ca) = %d, want 3", got)
	}
	if got := idx.CountPrefix("cam", Allowed); got != 2 {
		t.Errorf("CountPrefix(cam) = %d, want 2", got)
	}
	if got := idx.CountPrefix("zzzzz", Allowed); got != 0 {
		t.Errorf("CountPrefix(zzzzz) = %d, want 0", got)
	}
}

func TestCountWithWordsAndUnconstrainedQuery(t *testing.T) {
	words := []string{"aband", "about", "above", "zesty"}
	idx := buildIndex(words)
	q := query.New()
	n, got := idx.CountWithWords(&q, Possible)
	if n != len(words) {
		t.Fatalf("Count = %d, want %d", n, len(words))
	}
	sort.Strings(got)
	want := append([]string(nil), words...)
	sort.Strings(want)
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("word %d = %s, want %s", i, got[i], want[i])
		}
	}
}

func TestCountRestoresQuery(t *testing.T) {
	idx := buildIndex([]string{"aband", "about", "above"})
	q := query.New()
	q.SetFixed('a', 0)
	before := q
	idx.Count(&q, Possible)
	if q != before {
		t.Errorf("Count mutated q: got %+v, want %+v", q, before)
	}
}

// A small ad-hoc corpus, guess "camus", bucketed by feedback pattern.
func TestPartitionSmallFixture(t *testing.T) {
	words := []string{"camus", "caput", "mucus", "focus", "bonus", "scrum", "abuse", "amuse"}
	idx := buildIndex(words)
	q := query.New()
	hist := idx.Partition("camus", &q, Possible)

	total := 0
	for _, c := range hist {
		total += c
	}
	if total != len(words) {
		t.Fatalf("partition total = %d, want %d", total, len(words))
	}
	if hist["CCCCC"] != 1 {
		t.Errorf("exact self-match bucket = %d, want 1", hist["CCCCC"])
	}
}

// Guess "goory" must split "goofy" and "story" into distinct buckets.
func TestPartitionTwoWordFixture(t *testing.T) {
	words := []string{"goofy", "story"}
	idx := buildIndex(words)
	q := query.New()
	hist := idx.Partition("goory", &q, Possible)

	total := 0
	for _, c := range hist {
		total += c
	}
	if total != 2 {
		t.Fatalf("partition total = %d, want 2", total)
	}
	if len(hist) != 2 {
		t.Errorf("expected goofy and story to land in different buckets, got %d buckets: %v", len(hist), hist)
	}
}

// An 8-word fixture with a known full histogram for guess "camus",
// including the exact self-match bucket.
func TestPartitionCamusEightWordFixture(t *testing.T) {
	words := []string{"beisa", "fossa", "plush", "queck", "rossa", "sputa", "squad", "camus"}
	idx := buildIndex(words)
	q := query.New()
	hist := idx.Partition("camus", &q, Possible)

	want := map[string]int{
		"CCCCC": 1,
		"MWWMW": 1,
		"WMWMM": 2,
		"WMWWM": 3,
		"WWWMM": 1,
	}
	if len(hist) != len(want) {
		t.Fatalf("hist = %v, want %v", hist, want)
	}
	for pattern, count := range want {
		if hist[pattern] != count {
			t.Errorf("hist[%s] = %d, want %d", pattern, hist[pattern], count)
		}
	}
}

func TestPartitionRestoresQueryAndScratchState(t *testing.T) {
	idx := buildIndex([]string{"camus", "mucus", "focus"})
	q := query.New()
	q.RequireAtLeast('c', 1)
	before := q
	idx.Partition("camus", &q, Possible)
	if q != before {
		t.Errorf("Partition mutated q: got %+v, want %+v", q, before)
	}
}

// Partition's fused single-pass walk must agree with the canonical
// two-pass rule for every (guess, candidate) pair, including the case
// where an exact match displaces an earlier tentative Misplaced claim:
// "banal" against "aalii" must come out WCWMM (the leading target 'a'
// re-claims the trailing guess 'a' once position 1 proves Correct).
func TestPartitionMatchesPatternOf(t *testing.T) {
	words := []string{"aalii", "banal", "canal", "llama", "altar", "salsa", "aahed", "nasal"}
	idx := buildIndex(words)

	for _, guess := range []string{"banal", "salsa", "aalii", "llama"} {
		q := query.New()
		hist := idx.Partition(guess, &q, Possible)

		want := make(map[string]int)
		for _, target := range words {
			want[feedback.PatternOf(guess, target).String()]++
		}

		if len(hist) != len(want) {
			t.Fatalf("guess %s: hist = %v, want %v", guess, hist, want)
		}
		for pattern, count := range want {
			if hist[pattern] != count {
				t.Errorf("guess %s: hist[%s] = %d, want %d", guess, pattern, hist[pattern], count)
			}
		}
	}
}

// A required letter must not be crowded out of the final open position
// by a sibling branch: with e required, "crany" shares the "cran" prefix
// with "crane" but cannot satisfy the query.
func TestCountRequiredLetterInLastPosition(t *testing.T) {
	idx := buildIndex([]string{"crane", "crany", "crans"})
	q := query.New()
	q.RequireAtLeast('e', 1)

	n, words := idx.CountWithWords(&q, Possible)
	if n != 1 || len(words) != 1 || words[0] != "crane" {
		t.Fatalf("CountWithWords = %d %v, want just crane", n, words)
	}
}

func TestNthWordLexicographicOrder(t *testing.T) {
	words := []string{"zesty", "about", "mound", "apple"}
	idx := buildIndex(words)
	sorted := append([]string(nil), words...)
	sort.Strings(sorted)
	for i, want := range sorted {
		if got := idx.NthWord(i+1, Possible); got != want {
			t.Errorf("NthWord(%d) = %s, want %s", i+1, got, want)
		}
	}
	if got := idx.NthWord(len(words)+1, Possible); got != "" {
		t.Errorf("NthWord out of range = %q, want empty", got)
	}
}

func TestQueryPruningMatchesVerify(t *testing.T) {
	words := []string{"crane", "crepe", "crime", "cramp", "chase", "shale", "spare"}
	idx := buildIndex(words)

	q := query.New()
	q.SetFixed('c', 0)
	q.RequireAtLeast('e', 1)
	q.Ban('h')

	n, got := idx.CountWithWords(&q, Possible)

	var want []string
	for _, w := range words {
		if q.Verify(w) {
			want = append(want, w)
		}
	}
	if n != len(want) {
		t.Fatalf("pruned count = %d, want %d (brute-force Verify)", n, len(want))
	}
	sort.Strings(got)
	sort.Strings(want)
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("word %d = %s, want %s", i, got[i], want[i])
		}
	}
}
