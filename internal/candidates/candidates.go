// Package candidates tracks which answer words remain in play across a
// simulated run. A Universe assigns every answer of a closed target set
// a stable index once; a Set is then one membership bit per answer with
// a running population count, so a self-play evaluation that narrows and
// counts the same universe thousands of times never rebuilds string
// maps or re-walks the trie to do it.
package candidates

import "math/bits"

// Universe is a closed, ordered set of answer words, built once per
// evaluation run and shared by every Set derived from it.
type Universe struct {
	words []string
	index map[string]int
}

// NewUniverse indexes words in the order given. A duplicate word keeps
// its first index.
func NewUniverse(words []string) *Universe {
	u := &Universe{words: words, index: make(map[string]int, len(words))}
	for i, w := range words {
		if _, ok := u.index[w]; !ok {
			u.index[w] = i
		}
	}
	return u
}

// Size returns the number of words in the universe.
func (u *Universe) Size() int {
	return len(u.words)
}

// Word returns the word at index i.
func (u *Universe) Word(i int) string {
	return u.words[i]
}

// IndexOf returns the stable index of word, or false when word is not
// part of the universe.
func (u *Universe) IndexOf(word string) (int, bool) {
	i, ok := u.index[word]
	return i, ok
}

// EmptySet returns a Set over u with no members.
func (u *Universe) EmptySet() *Set {
	return &Set{universe: u, bits: make([]uint64, (len(u.words)+63)/64)}
}

// FullSet returns a Set holding every word in u, the state a fresh game
// starts from.
func (u *Universe) FullSet() *Set {
	s := u.EmptySet()
	for i := range u.words {
		s.AddIndex(i)
	}
	return s
}

// SetOf returns a Set holding every listed word that belongs to u.
// Words outside the universe are ignored, the same treatment an answer
// list with stray entries gets everywhere else.
func (u *Universe) SetOf(words []string) *Set {
	s := u.EmptySet()
	for _, w := range words {
		s.Add(w)
	}
	return s
}

// Set is a subset of one Universe's answers. Sets from different
// universes must never be mixed; every Set remembers its universe so
// derived sets stay within it.
type Set struct {
	universe *Universe
	bits     []uint64
	count    int
}

// Add marks word as a member; words outside the universe are ignored.
func (s *Set) Add(word string) {
	if i, ok := s.universe.IndexOf(word); ok {
		s.AddIndex(i)
	}
}

// AddIndex marks the universe word at index i as a member.
func (s *Set) AddIndex(i int) {
	w, b := i/64, uint(i%64)
	if s.bits[w]&(1<<b) == 0 {
		s.bits[w] |= 1 << b
		s.count++
	}
}

// Contains reports whether word is a member.
func (s *Set) Contains(word string) bool {
	i, ok := s.universe.IndexOf(word)
	return ok && s.ContainsIndex(i)
}

// ContainsIndex reports whether the universe word at index i is a
// member.
func (s *Set) ContainsIndex(i int) bool {
	return s.bits[i/64]&(1<<uint(i%64)) != 0
}

// Count returns the number of members.
func (s *Set) Count() int {
	return s.count
}

// Intersect returns the members common to s and other. Both sets share
// one universe, so their bit slices are always the same length.
func (s *Set) Intersect(other *Set) *Set {
	out := s.universe.EmptySet()
	for i := range s.bits {
		w := s.bits[i] & other.bits[i]
		out.bits[i] = w
		out.count += bits.OnesCount64(w)
	}
	return out
}

// Words returns the members in universe order.
func (s *Set) Words() []string {
	out := make([]string, 0, s.count)
	for i, w := range s.universe.words {
		if s.ContainsIndex(i) {
			out = append(out, w)
		}
	}
	return out
}
