// Package feedback computes and represents the tile-by-tile result of
// scoring a guess against a target word, and folds that result into a
// query.Query.
package feedback

import (
	"fmt"

	"github.com/wordlex/solver/internal/query"
)

// Tile is the per-letter result of scoring one guess position.
type Tile int

const (
	// Wrong is also the zero value, so an unassigned Tile reads as Wrong.
	Wrong Tile = iota
	Misplaced
	Correct
)

// Byte returns the single-character wire form of t: W, M, or C.
func (t Tile) Byte() byte {
	switch t {
	case Correct:
		return 'C'
	case Misplaced:
		return 'M'
	default:
		return 'W'
	}
}

func (t Tile) String() string {
	return string(t.Byte())
}

// Emoji renders t the way an interactive session does.
func (t Tile) Emoji() string {
	switch t {
	case Correct:
		return "🟩"
	case Misplaced:
		return "🟨"
	default:
		return "🟥"
	}
}

// Pattern is the 5-tile outcome of one guess.
type Pattern [5]Tile

// String renders p as its 5-character wire form, e.g. "CMWWW".
func (p Pattern) String() string {
	buf := make([]byte, 5)
	for i, t := range p {
		buf[i] = t.Byte()
	}
	return string(buf)
}

// Emoji renders p the way an interactive session does.
func (p Pattern) Emoji() string {
	s := ""
	for _, t := range p {
		s += t.Emoji()
	}
	return s
}

// Won reports whether p represents every tile Correct.
func (p Pattern) Won() bool {
	for _, t := range p {
		if t != Correct {
			return false
		}
	}
	return true
}

// ParsePattern parses the 5-character wire form produced by String.
func ParsePattern(s string) (Pattern, error) {
	var p Pattern
	if len(s) != 5 {
		return p, fmt.Errorf("feedback: pattern %q must have length 5", s)
	}
	for i := 0; i < 5; i++ {
		switch s[i] {
		case 'C':
			p[i] = Correct
		case 'M':
			p[i] = Misplaced
		case 'W':
			p[i] = Wrong
		default:
			return p, fmt.Errorf("feedback: invalid tile byte %q in pattern %q", s[i], s)
		}
	}
	return p, nil
}

// IsValidWord reports whether w is a plausible 5-letter lowercase word.
func IsValidWord(w string) bool {
	if len(w) != 5 {
		return false
	}
	for i := 0; i < 5; i++ {
		if w[i] < 'a' || w[i] > 'z' {
			return false
		}
	}
	return true
}

// PatternOf scores guess against target using the duplicate-aware,
// two-pass Wordle rule: every exact match is marked Correct first and its
// target position consumed, then each remaining guess letter claims the
// earliest unconsumed target occurrence of the same letter as Misplaced.
func PatternOf(guess, target string) Pattern {
	var pattern Pattern
	var consumed [5]bool

	for i := 0; i < 5; i++ {
		if guess[i] == target[i] {
			pattern[i] = Correct
			consumed[i] = true
		}
	}

	for i := 0; i < 5; i++ {
		if pattern[i] == Correct {
			continue
		}
		for j := 0; j < 5; j++ {
			if consumed[j] {
				continue
			}
			if target[j] == guess[i] {
				pattern[i] = Misplaced
				consumed[j] = true
				break
			}
		}
	}

	return pattern
}

// ApplyToQuery folds the result of guessing guess and observing pattern
// into q, tightening its constraints. It never loosens an existing
// constraint, so repeated application across a game only ever narrows the
// candidate set.
func ApplyToQuery(q *query.Query, guess string, pattern Pattern) {
	var runCount [26]int

	for i := 0; i < 5; i++ {
		c := guess[i]
		switch pattern[i] {
		case Correct:
			q.SetFixed(c, i)
			runCount[c-'a']++
		case Misplaced:
			q.ForbidAt(c, i)
			runCount[c-'a']++
		case Wrong:
			q.ForbidAt(c, i)
		}
	}

	for i := 0; i < 5; i++ {
		if pattern[i] == Wrong {
			q.Ban(guess[i])
		}
	}

	for c := 0; c < 26; c++ {
		if runCount[c] > 0 {
			q.RequireAtLeast(byte('a'+c), runCount[c])
		}
	}
}
