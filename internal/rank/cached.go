package rank

import (
	"sort"

	"github.com/wordlex/solver/internal/candidates"
	"github.com/wordlex/solver/internal/entropy"
	"github.com/wordlex/solver/internal/feedback"
)

// PatternTable memoizes feedback.PatternOf(guess, target) across a
// fixed universe of answers. A full self-play evaluation asks the same
// guess against the same answers over and over across thousands of
// simulated games; without this memo each repetition would re-walk the
// trie from scratch. Patterns for a guess are stored index-aligned with
// the universe, so bucketing a candidates.Set needs one slice scan and
// no map probing.
type PatternTable struct {
	universe *candidates.Universe
	patterns map[string][]feedback.Pattern
}

// NewPatternTable builds a table over the given answer universe,
// typically the initial Possible set for a simulation run.
func NewPatternTable(universe *candidates.Universe) *PatternTable {
	return &PatternTable{
		universe: universe,
		patterns: make(map[string][]feedback.Pattern),
	}
}

func (pt *PatternTable) patternsFor(guess string) []feedback.Pattern {
	if m, ok := pt.patterns[guess]; ok {
		return m
	}
	m := make([]feedback.Pattern, pt.universe.Size())
	for i := range m {
		m[i] = feedback.PatternOf(guess, pt.universe.Word(i))
	}
	pt.patterns[guess] = m
	return m
}

// Histogram buckets every member of remaining by the pattern guess
// would receive against it, using (and populating) the memo.
func (pt *PatternTable) Histogram(guess string, remaining *candidates.Set) map[string]int {
	patterns := pt.patternsFor(guess)
	hist := make(map[string]int)
	for i := range patterns {
		if remaining.ContainsIndex(i) {
			hist[patterns[i].String()]++
		}
	}
	return hist
}

// Matching returns the answers that would produce pattern when guess is
// played against them. Intersecting the current candidate set with it
// applies one observed feedback without walking the trie, which is how
// a cached simulation narrows between plies.
func (pt *PatternTable) Matching(guess string, pattern feedback.Pattern) *candidates.Set {
	patterns := pt.patternsFor(guess)
	out := pt.universe.EmptySet()
	for i := range patterns {
		if patterns[i] == pattern {
			out.AddIndex(i)
		}
	}
	return out
}

// CachedStrategy ranks guesses against a shrinking candidates.Set using
// PatternTable instead of the PrefixIndex, trading the trie's pruning
// bounds for the memo's cross-game reuse. It is the right choice when
// the same bounded answer universe is evaluated many times in a row, as
// in internal/simulate's full self-play runs, and the wrong choice for
// interactive play against the full Allowed vocabulary.
type CachedStrategy struct {
	table   *PatternTable
	guesses []string
}

// NewCachedStrategy builds a strategy that only ever ranks within
// guesses, against whatever candidate set is passed to TopN.
func NewCachedStrategy(table *PatternTable, guesses []string) *CachedStrategy {
	return &CachedStrategy{table: table, guesses: guesses}
}

// TopN ranks s.guesses by expected entropy against remaining, the
// answers still in play.
func (s *CachedStrategy) TopN(n int, remaining *candidates.Set) []RankedWord {
	total := remaining.Count()

	type scored struct {
		word RankedWord
		in   bool
	}
	all := make([]scored, 0, len(s.guesses))
	for _, guess := range s.guesses {
		hist := s.table.Histogram(guess, remaining)
		e := entropy.Of(hist, total)
		bound := entropy.MaxBound(len(hist))

		in := remaining.Contains(guess)
		if bound <= floatTolerance && !in {
			continue
		}
		all = append(all, scored{word: RankedWord{Word: guess, Entropy: e, MaxEntropyBound: bound}, in: in})
	}

	sort.Slice(all, func(i, j int) bool {
		return better(all[i].word, all[i].in, all[j].word, all[j].in)
	})

	if n > len(all) {
		n = len(all)
	}
	out := make([]RankedWord, n)
	for i := 0; i < n; i++ {
		out[i] = all[i].word
	}
	return out
}
