// Package trie implements the dual-tagged prefix index at the core of the
// solver: a 26-ary trie over 5-letter words where every node carries
// aggregate statistics over its subtree, letting a recursive walk prune
// entire branches against a query.Query without visiting their words.
//
// Each inserted word carries one or both of two tags, Allowed (every word
// a guess may be) and Possible (every word that could still be the
// target). A single trie serves both memberships at once; nodes whose
// Possible-tag subtree is pruned still expose their Allowed-tag subtree
// to a walk that asks for it.
package trie

import (
	"github.com/wordlex/solver/internal/feedback"
	"github.com/wordlex/solver/internal/query"
)

const wordLen = 5

// WordSet selects which tag a query.Query walk is evaluated against.
type WordSet int

const (
	// Allowed is the set of words a player may type as a guess.
	Allowed WordSet = iota
	// Possible is the set of words that could still be the target.
	Possible

	numSets
)

func (w WordSet) String() string {
	switch w {
	case Allowed:
		return "allowed"
	case Possible:
		return "possible"
	default:
		return "unknown"
	}
}

// node holds, for each tag, the count of subtree words and the
// aggregate letter statistics restricted to positions at or after the
// node's own depth (everything before that is shared by the whole
// subtree and determined by the path already taken).
type node struct {
	children [26]*node

	count    [numSets]int32
	terminal [numSets]bool

	// letterCntAtPos[tag][pos][c]: subtree words (tag) with letter c at
	// absolute position pos. Only pos >= depth(node) is ever populated.
	letterCntAtPos [numSets][wordLen][26]int32

	// wordsContainingLetter[tag][c]: subtree words (tag) that contain c
	// anywhere in positions >= depth(node).
	wordsContainingLetter [numSets][26]int32

	// letterOccursAtLeast[tag][c][k-1]: subtree words (tag) containing c
	// at least k times within positions >= depth(node), k = 1..5.
	letterOccursAtLeast [numSets][26][wordLen]int32
}

// touch folds word's suffix starting at depth into n's aggregate stats
// for tag. Called once per node along an insertion path.
func (n *node) touch(tag WordSet, word string, depth int) {
	n.count[tag]++

	var seen [26]bool
	var freq [26]int
	for pos := depth; pos < wordLen; pos++ {
		c := int(word[pos] - 'a')
		n.letterCntAtPos[tag][pos][c]++
		if !seen[c] {
			seen[c] = true
			n.wordsContainingLetter[tag][c]++
		}
		freq[c]++
	}
	for c := 0; c < 26; c++ {
		for k := 1; k <= freq[c]; k++ {
			n.letterOccursAtLeast[tag][c][k-1]++
		}
	}
}

// PrefixIndex is the dual-tagged trie described above.
type PrefixIndex struct {
	root *node
}

// New returns an empty PrefixIndex.
func New() *PrefixIndex {
	return &PrefixIndex{root: &node{}}
}

func validateWord(word string) {
	if !feedback.IsValidWord(word) {
		panic("trie: word must be 5 lowercase letters: " + word)
	}
}

// Insert adds word to the index under tag. Inserting the same word under
// both tags is the normal case for words that are both guessable and a
// possible target.
func (t *PrefixIndex) Insert(word string, tag WordSet) {
	validateWord(word)
	n := t.root
	n.touch(tag, word, 0)
	for i := 0; i < wordLen; i++ {
		c := int(word[i] - 'a')
		if n.children[c] == nil {
			n.children[c] = &node{}
		}
		n = n.children[c]
		n.touch(tag, word, i+1)
	}
	n.terminal[tag] = true
}

// CountPrefix reports how many tag-tagged words share the given prefix
// (which may be shorter than a full word). It performs no query
// filtering; it is a direct lookup.
func (t *PrefixIndex) CountPrefix(prefix string, tag WordSet) int {
	n := t.root
	for i := 0; i < len(prefix); i++ {
		c := int(prefix[i] - 'a')
		if n.children[c] == nil {
			return 0
		}
		n = n.children[c]
	}
	return int(n.count[tag])
}

// letterAllowed is the verify-at-letter test: can the walk descend into
// child letter c at position depth given q's constraints?
func letterAllowed(q *query.Query, c, depth int) bool {
	letter := byte('a' + c)
	if q.Fixed[depth] != 0 && q.Fixed[depth] != letter {
		return false
	}
	if q.ForbiddenAt[depth]&(1<<uint(c)) != 0 {
		return false
	}
	if q.Banned[c] && q.MinCount[c] == 0 {
		return false
	}
	// Placing c here leaves wordLen-depth-1 slots; every still-required
	// letter must fit in them, with c itself covering one requirement
	// when it is required.
	stillRequired := q.RequiredTotal
	if q.MinCount[c] > 0 {
		stillRequired--
	}
	if stillRequired > wordLen-depth-1 {
		return false
	}
	return true
}

// nodeContributes is the node-level bound: can n's subtree (tag) contain
// any word satisfying q, without looking at individual children?
func nodeContributes(n *node, q *query.Query, tag WordSet, depth int) bool {
	if n.count[tag] == 0 {
		return false
	}
	for i := depth; i < wordLen; i++ {
		if q.Fixed[i] != 0 {
			c := int(q.Fixed[i] - 'a')
			if n.letterCntAtPos[tag][i][c] == 0 {
				return false
			}
		}
		mask := q.ForbiddenAt[i]
		if mask != 0 {
			for c := 0; c < 26; c++ {
				if mask&(1<<uint(c)) != 0 && n.letterCntAtPos[tag][i][c] == n.count[tag] {
					return false
				}
			}
		}
	}
	for c := 0; c < 26; c++ {
		if q.MinCount[c] > 0 {
			k := q.MinCount[c]
			if k > wordLen {
				k = wordLen
			}
			if n.letterOccursAtLeast[tag][c][k-1] == 0 {
				return false
			}
		}
		if q.Banned[c] && q.MinCount[c] == 0 {
			if n.wordsContainingLetter[tag][c] == n.count[tag] {
				return false
			}
		}
	}
	return true
}

// commitLetter tentatively requires one more occurrence of letter c to
// have been consumed, returning the value to restore on backtrack.
func commitLetter(q *query.Query, c int) int {
	before := q.MinCount[c]
	if before > 0 {
		q.MinCount[c]--
		q.RequiredTotal--
	}
	return before
}

func restoreLetter(q *query.Query, c, before int) {
	if before > 0 {
		q.MinCount[c] = before
		q.RequiredTotal++
	}
}

// Count returns the number of tag-tagged words satisfying q. q is
// restored to its original state before Count returns.
func (t *PrefixIndex) Count(q *query.Query, tag WordSet) int {
	var path [wordLen]byte
	return t.countWalk(t.root, 0, q, tag, &path, nil)
}

// CountWithWords behaves like Count but also returns the matching words
// in lexicographic order.
func (t *PrefixIndex) CountWithWords(q *query.Query, tag WordSet) (int, []string) {
	var words []string
	var path [wordLen]byte
	n := t.countWalk(t.root, 0, q, tag, &path, &words)
	return n, words
}

func (t *PrefixIndex) countWalk(n *node, depth int, q *query.Query, tag WordSet, path *[wordLen]byte, collect *[]string) int {
	if depth == wordLen {
		if n.count[tag] > 0 && collect != nil {
			*collect = append(*collect, string(path[:]))
		}
		return int(n.count[tag])
	}
	if !nodeContributes(n, q, tag, depth) {
		return 0
	}
	total := 0
	for c := 0; c < 26; c++ {
		child := n.children[c]
		if child == nil || !letterAllowed(q, c, depth) {
			continue
		}
		before := commitLetter(q, c)
		path[depth] = byte('a' + c)
		total += t.countWalk(child, depth+1, q, tag, path, collect)
		restoreLetter(q, c, before)
	}
	return total
}

// NthWord returns the n-th word (1-indexed, lexicographically) among
// tag-tagged words, or "" if n is out of range.
func (t *PrefixIndex) NthWord(n int, tag WordSet) string {
	node := t.root
	var buf [wordLen]byte
	depth := 0
	for depth < wordLen && n > 0 {
		advanced := false
		for c := 0; c < 26; c++ {
			child := node.children[c]
			if child == nil {
				continue
			}
			if int(child.count[tag]) >= n {
				buf[depth] = byte('a' + c)
				node = child
				advanced = true
				depth++
				break
			}
			n -= int(child.count[tag])
		}
		if !advanced {
			return ""
		}
	}
	if depth != wordLen {
		return ""
	}
	return string(buf[:])
}

// Partition buckets tag-tagged words satisfying q by the feedback
// pattern guess would receive against each of them, returning a
// histogram of pattern string to count. q is restored before Partition
// returns.
func (t *PrefixIndex) Partition(guess string, q *query.Query, tag WordSet) map[string]int {
	validateWord(guess)
	var guessPos [26][]int
	for i := 0; i < wordLen; i++ {
		c := int(guess[i] - 'a')
		guessPos[c] = append(guessPos[c], i)
	}

	hist := make(map[string]int)
	var tile [wordLen]feedback.Tile
	var consumed [wordLen]bool
	t.partitionWalk(t.root, 0, q, tag, guess, guessPos, &tile, &consumed, hist)
	return hist
}

func (t *PrefixIndex) partitionWalk(
	n *node, depth int, q *query.Query, tag WordSet,
	guess string, guessPos [26][]int,
	tile *[wordLen]feedback.Tile, consumed *[wordLen]bool, hist map[string]int,
) {
	if depth == wordLen {
		if n.count[tag] > 0 {
			hist[feedback.Pattern(*tile).String()] += int(n.count[tag])
		}
		return
	}
	if !nodeContributes(n, q, tag, depth) {
		return
	}

	for c := 0; c < 26; c++ {
		child := n.children[c]
		if child == nil || !letterAllowed(q, c, depth) {
			continue
		}

		before := commitLetter(q, c)

		prevDepthTile := tile[depth]
		isCorrect := guess[depth]-'a' == byte(c)

		var claimed = -1
		var prevClaimedTile feedback.Tile
		var prevConsumedDepth bool

		if isCorrect {
			prevConsumedDepth = consumed[depth]
			tile[depth] = feedback.Correct
			consumed[depth] = true
			if prevConsumedDepth {
				// A shallower candidate letter had already claimed this
				// position as Misplaced; the exact match takes priority, so
				// that claim moves to the next free guess position of c, if
				// one remains. This keeps the walk equal to the two-pass
				// rule, which assigns every Correct before any Misplaced.
				for _, j := range guessPos[c] {
					if !consumed[j] {
						claimed = j
						prevClaimedTile = tile[j]
						tile[j] = feedback.Misplaced
						consumed[j] = true
						break
					}
				}
			}
		} else {
			for _, j := range guessPos[c] {
				if !consumed[j] {
					claimed = j
					prevClaimedTile = tile[j]
					tile[j] = feedback.Misplaced
					consumed[j] = true
					break
				}
			}
		}

		t.partitionWalk(child, depth+1, q, tag, guess, guessPos, tile, consumed, hist)

		tile[depth] = prevDepthTile
		if isCorrect {
			consumed[depth] = prevConsumedDepth
		}
		if claimed >= 0 {
			tile[claimed] = prevClaimedTile
			consumed[claimed] = false
		}
		restoreLetter(q, c, before)
	}
}
