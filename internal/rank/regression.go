package rank

import (
	"math"
	"sort"

	"github.com/wordlex/solver/internal/query"
)

// expectedScore estimates the number of additional guesses needed given
// remainingBits bits of entropy still left to resolve. The cubic
// coefficients are an empirical fit over recorded games, not derived
// analytically.
func expectedScore(remainingBits float64) float64 {
	x := remainingBits
	return 0.00323876*x*x*x - 0.0646617*x*x + 0.540225*x + 0.989117
}

// Context carries the information a Strategy needs beyond the entropy
// ranking itself: how much entropy remains to resolve, how large the
// candidate set currently is, and how many guesses have been spent.
type Context struct {
	RemainingBits float64
	PossibleCount int
	GuessesMade   int
}

// Strategy re-scores (and re-sorts) the base entropy ranking for a
// different objective. The base Ranker's own TopN only ever ranks by raw
// information gain; a Strategy is how a caller asks for something else
// without touching the shared work list.
type Strategy interface {
	TopN(n int, q query.Query, ctx Context) []RankedWord
}

// EntropyStrategy is the identity strategy: Score is set equal to
// Entropy so a caller that only understands Score still gets a sensible
// ranking.
type EntropyStrategy struct {
	Ranker *Ranker
}

func (s *EntropyStrategy) TopN(n int, q query.Query, _ Context) []RankedWord {
	words := s.Ranker.TopN(n, q)
	for i := range words {
		words[i].Score = words[i].Entropy
	}
	return words
}

// RegressionStrategy re-scores each candidate guess by its expected total
// number of guesses to a win, blending the chance it is itself the
// answer against the expected cost of continuing after it. Candidates
// are re-sorted ascending by Score (fewer expected guesses is better).
type RegressionStrategy struct {
	Ranker *Ranker
}

func (s *RegressionStrategy) TopN(n int, q query.Query, ctx Context) []RankedWord {
	words := s.Ranker.TopN(n, q)

	winProb := 0.0
	if ctx.PossibleCount > 0 {
		winProb = 1.0 / float64(ctx.PossibleCount)
	}
	guessesUsed := float64(ctx.GuessesMade + 1)

	type scored struct {
		word RankedWord
		in   bool
	}
	scoredWords := make([]scored, len(words))
	for i, w := range words {
		in := s.Ranker.isPossibleAnswer(w.Word, q)
		p := 0.0
		if in {
			p = winProb
		}
		expectedContinuation := guessesUsed + expectedScore(ctx.RemainingBits-w.Entropy)
		w.Score = p*guessesUsed + (1-p)*expectedContinuation
		scoredWords[i] = scored{word: w, in: in}
	}

	sort.SliceStable(scoredWords, func(i, j int) bool {
		a, b := scoredWords[i], scoredWords[j]
		if math.Abs(a.word.Score-b.word.Score) > floatTolerance {
			return a.word.Score < b.word.Score
		}
		if a.in != b.in {
			return a.in
		}
		return a.word.Word < b.word.Word
	})

	out := make([]RankedWord, len(scoredWords))
	for i, s := range scoredWords {
		out[i] = s.word
	}
	return out
}
