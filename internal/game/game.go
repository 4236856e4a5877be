// Package game ties the trie, query, feedback, entropy, and rank
// packages together into a single guessing session: the state machine an
// interactive CLI or a simulator drives one guess at a time.
package game

import (
	"fmt"
	"io"
	"math"
	"math/rand"

	"github.com/wordlex/solver/internal/entropy"
	"github.com/wordlex/solver/internal/feedback"
	"github.com/wordlex/solver/internal/progress"
	"github.com/wordlex/solver/internal/query"
	"github.com/wordlex/solver/internal/rank"
	"github.com/wordlex/solver/internal/trie"
	"github.com/wordlex/solver/internal/warmcache"
)

// Status is the current outcome of a session.
type Status int

const (
	Ongoing Status = iota
	Won
	Lost
)

func (s Status) String() string {
	switch s {
	case Won:
		return "won"
	case Lost:
		return "lost"
	default:
		return "ongoing"
	}
}

// MaxGuesses is the number of guesses a session allows before declaring
// a loss, matching standard Wordle rules.
const MaxGuesses = 6

// Stat records everything about one completed guess: what was asked,
// what came back, and how the candidate set moved as a result.
type Stat struct {
	Guess         string
	Pattern       feedback.Pattern
	Count         int
	Probability   float64
	Bits          float64
	Entropy       float64
	RemainingBits float64
	Query         query.Query
	Valid         bool
}

func (s Stat) String() string {
	return fmt.Sprintf("%s %s  remaining=%d  gained=%.2f bits  left=%.2f bits",
		s.Guess, s.Pattern.Emoji(), s.Count, s.Bits, s.RemainingBits)
}

// GameState is one Wordle session against a shared PrefixIndex and
// Ranker. It holds no global state; every field needed to resume or
// replay a session lives on the struct itself.
type GameState struct {
	idx    *trie.PrefixIndex
	ranker *rank.Ranker

	target     string
	maxGuesses int
	status     Status
	query      query.Query
	stats      []Stat

	initialCount int
}

// New starts a session against target. Use RandomizeTarget instead if
// the target should be drawn from the Possible set.
func New(idx *trie.PrefixIndex, ranker *rank.Ranker, target string) *GameState {
	g := &GameState{idx: idx, ranker: ranker, maxGuesses: MaxGuesses}
	g.SetTarget(target)
	return g
}

// NewFromWordLists builds the PrefixIndex and Ranker for the given word
// lists and starts a session over them. An empty target draws a random
// Possible word. A non-nil warmCache is folded into the Ranker before
// the first TopN call; a malformed cache is silently ignored, the same
// "cache absent" treatment LoadCache applies.
func NewFromWordLists(allowed, possible []string, target string, warmCache io.Reader, observer progress.Observer) *GameState {
	idx := trie.New()
	for _, w := range allowed {
		idx.Insert(w, trie.Allowed)
	}
	for _, w := range possible {
		idx.Insert(w, trie.Possible)
	}
	g := New(idx, rank.New(idx, allowed, observer), target)
	if warmCache != nil {
		g.LoadCache(warmCache)
	}
	if target == "" {
		g.RandomizeTarget()
	}
	return g
}

// Ranker exposes the session's ranker, mainly so a caller can wrap it in
// a Strategy or snapshot it directly.
func (g *GameState) Ranker() *rank.Ranker {
	return g.ranker
}

// SetTarget assigns the target word and resets the session.
func (g *GameState) SetTarget(word string) {
	g.target = word
	g.Reset()
}

// RandomizeTarget draws a uniformly random word from the Possible set
// and resets the session to it.
func (g *GameState) RandomizeTarget() {
	count := g.idx.CountPrefix("", trie.Possible)
	if count <= 0 {
		return
	}
	n := rand.Intn(count) + 1
	g.SetTarget(g.idx.NthWord(n, trie.Possible))
}

// Reset clears guesses and the derived query but keeps the target and,
// crucially, the Ranker's warm work list intact: the next TopN call on a
// fresh query reuses whatever bounds survived from prior sessions rather
// than starting cold.
func (g *GameState) Reset() {
	g.status = Ongoing
	g.query = query.New()
	g.stats = g.stats[:0]
	g.initialCount = g.idx.CountPrefix("", trie.Possible)
}

// Status reports whether the session is ongoing, won, or lost.
func (g *GameState) Status() Status {
	return g.status
}

// Guesses reports how many guesses have been made so far.
func (g *GameState) Guesses() int {
	return len(g.stats)
}

// TargetWord exposes the session's target, mainly for reporting a loss.
func (g *GameState) TargetWord() string {
	return g.target
}

// IsWordValid reports whether word is shaped like a guess and present in
// the Allowed set.
func (g *GameState) IsWordValid(word string) bool {
	return feedback.IsValidWord(word) && g.idx.CountPrefix(word, trie.Allowed) == 1
}

func (g *GameState) possibleCountBefore() int {
	if len(g.stats) == 0 {
		return g.initialCount
	}
	return g.stats[len(g.stats)-1].Count
}

// Guess scores word against the target, folds the result into the
// session's query, and records a Stat. Guessing after the game is over,
// or guessing an invalid word, returns a zero Stat with Valid false and
// does not advance the session.
func (g *GameState) Guess(word string) Stat {
	if g.status != Ongoing || !g.IsWordValid(word) {
		return Stat{Valid: false}
	}

	prevQuery := g.query
	prevCount := g.possibleCountBefore()

	hist := g.idx.Partition(word, &prevQuery, trie.Possible)
	total := 0
	for _, c := range hist {
		total += c
	}
	preEntropy := entropy.Of(hist, total)

	pattern := feedback.PatternOf(word, g.target)
	feedback.ApplyToQuery(&g.query, word, pattern)

	newCount := g.idx.Count(&g.query, trie.Possible)

	var bits float64
	if prevCount > 0 && newCount > 0 {
		bits = math.Log2(float64(prevCount)) - math.Log2(float64(newCount))
	}
	remainingBits := 0.0
	if newCount > 0 {
		remainingBits = math.Log2(float64(newCount))
	}

	stat := Stat{
		Guess:         word,
		Pattern:       pattern,
		Count:         newCount,
		Probability:   probabilityOf(newCount, prevCount),
		Bits:          bits,
		Entropy:       preEntropy,
		RemainingBits: remainingBits,
		Query:         g.query,
		Valid:         true,
	}
	g.stats = append(g.stats, stat)

	if pattern.Won() {
		g.status = Won
	} else if len(g.stats) >= g.maxGuesses {
		g.status = Lost
	}
	return stat
}

func probabilityOf(count, prevCount int) float64 {
	if prevCount == 0 {
		return 0
	}
	return float64(count) / float64(prevCount)
}

// CurrentStat returns the most recent guess's Stat, or, before any guess
// has been made, an invalid Stat describing the initial candidate set.
func (g *GameState) CurrentStat() Stat {
	return g.StatAt(-1)
}

// StatAt returns the i-th Stat; a negative i counts back from the end, so
// StatAt(-1) is the most recent guess. If no guesses have been made yet
// or the index is out of range, it returns a Stat with Valid false whose
// Count and RemainingBits describe the initial candidate set.
func (g *GameState) StatAt(i int) Stat {
	if i < 0 {
		i += len(g.stats)
	}
	if i < 0 || i >= len(g.stats) {
		count := g.initialCount
		if count < 1 {
			count = 1
		}
		return Stat{
			Count:         g.initialCount,
			RemainingBits: math.Log2(float64(count)),
			Valid:         false,
		}
	}
	return g.stats[i]
}

// CurrentQuery returns the query derived from every guess made so far.
func (g *GameState) CurrentQuery() query.Query {
	return g.query
}

// CurrentCandidates returns every Possible word still consistent with
// the guesses made so far.
func (g *GameState) CurrentCandidates() []string {
	_, words := g.idx.CountWithWords(&g.query, trie.Possible)
	return words
}

// TopN returns the n best next guesses under the entropy-only ranking.
func (g *GameState) TopN(n int) []rank.RankedWord {
	return g.ranker.TopN(n, g.query)
}

// TopNWithStrategy returns the n best next guesses re-scored by strategy,
// using the session's own remaining-entropy and guess-count context.
func (g *GameState) TopNWithStrategy(n int, strategy rank.Strategy) []rank.RankedWord {
	ctx := rank.Context{
		RemainingBits: g.StatAt(-1).RemainingBits,
		PossibleCount: g.possibleCountBefore(),
		GuessesMade:   len(g.stats),
	}
	return strategy.TopN(n, g.query, ctx)
}

// SaveCache writes the Ranker's current work list and memo through w,
// returning false (never an error) on any failure: a failed cache save
// should not interrupt a session, only cost the next run some precompute
// time.
func (g *GameState) SaveCache(w io.Writer) bool {
	if err := warmcache.Write(w, g.ranker.Snapshot()); err != nil {
		return false
	}
	return true
}

// LoadCache reads a previously saved warm cache from r and folds it into
// the Ranker's work list. A malformed or absent cache is reported by a
// false return and otherwise ignored: the Ranker simply starts cold.
func (g *GameState) LoadCache(r io.Reader) bool {
	f, ok := warmcache.Read(r)
	if !ok {
		return false
	}
	g.ranker.Restore(f)
	return true
}
