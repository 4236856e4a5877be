// Package simulate runs a solver against every word in a target universe
// in turn and tallies how many guesses each one took, the self-play
// evaluation used to judge a ranking strategy end to end.
package simulate

import (
	"fmt"

	"github.com/wordlex/solver/internal/candidates"
	"github.com/wordlex/solver/internal/game"
	"github.com/wordlex/solver/internal/progress"
	"github.com/wordlex/solver/internal/rank"
)

// Result is the outcome of one simulation run.
type Result struct {
	// Scores[i] for i in 0..5 is the count of games won in i+1 guesses;
	// Scores[6] is the count of losses.
	Scores      [7]int
	Average     float64
	LostTargets []string
}

func (r Result) String() string {
	s := "guesses: "
	for i := 0; i < 6; i++ {
		s += fmt.Sprintf("%d=%d ", i+1, r.Scores[i])
	}
	s += fmt.Sprintf("lost=%d  average=%.3f", r.Scores[6], r.Average)
	return s
}

// Run plays gs to completion against every word in targets, using
// gs.TopN(1) as the forced best guess at each ply, and returns the
// resulting score distribution. Every ply ranks through the trie; for
// long runs over a fixed answer universe, RunCached is the faster
// equivalent.
func Run(gs *game.GameState, targets []string, observer progress.Observer) Result {
	return tally(gs, targets, observer, func(target string) {
		gs.SetTarget(target)
		for gs.Status() == game.Ongoing {
			guess := target
			if top := gs.TopN(1); len(top) > 0 {
				guess = top[0].Word
			}
			gs.Guess(guess)
		}
	})
}

// RunCached behaves like Run but ranks every ply through a
// rank.PatternTable built over targets: guesses are drawn from guesses
// (typically the full allowed vocabulary), and the candidate set
// narrows by intersecting with the answers matching each observed
// pattern, so after the table warms up ranking a ply never walks the
// trie. Recording each guess through gs.Guess still walks it, to derive
// that ply's Stat. The memoized patterns persist across every game in the run, which is
// what makes evaluating thousands of targets in one process tractable.
func RunCached(gs *game.GameState, targets, guesses []string, observer progress.Observer) Result {
	universe := candidates.NewUniverse(targets)
	table := rank.NewPatternTable(universe)
	strategy := rank.NewCachedStrategy(table, guesses)

	return tally(gs, targets, observer, func(target string) {
		gs.SetTarget(target)
		remaining := universe.FullSet()
		for gs.Status() == game.Ongoing {
			guess := target
			if top := strategy.TopN(1, remaining); len(top) > 0 {
				guess = top[0].Word
			}
			stat := gs.Guess(guess)
			if !stat.Valid {
				break
			}
			remaining = remaining.Intersect(table.Matching(guess, stat.Pattern))
		}
	})
}

// tally drives playOne over every target and folds each finished game
// into the score distribution.
func tally(gs *game.GameState, targets []string, observer progress.Observer, playOne func(target string)) Result {
	if observer == nil {
		observer = progress.NopObserver{}
	}

	var res Result
	total := 0
	observer.Update(0, len(targets))

	for i, target := range targets {
		playOne(target)

		score := gs.Guesses()
		if gs.Status() != game.Won {
			// A lost game scores 7; so does a game abandoned because no
			// valid guess could be played.
			score = 7
			res.LostTargets = append(res.LostTargets, target)
		}
		res.Scores[score-1]++
		total += score

		observer.Update(i+1, len(targets))
	}
	observer.Finish()

	if len(targets) > 0 {
		res.Average = float64(total) / float64(len(targets))
	}
	return res
}
