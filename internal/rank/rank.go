// Package rank implements the solver's guess ranking: a priority work
// list of candidate guesses ordered by a monotonically non-increasing
// entropy upper bound, refined ply by ply, with a per-query memo so a
// repeated top-n request is free.
package rank

import (
	"math"
	"runtime"
	"sort"
	"sync"

	"github.com/wordlex/solver/internal/entropy"
	"github.com/wordlex/solver/internal/progress"
	"github.com/wordlex/solver/internal/query"
	"github.com/wordlex/solver/internal/trie"
	"github.com/wordlex/solver/internal/warmcache"
)

// scoreBatchSize caps how many candidates are handed to the worker pool
// at once. Scoring happens in batches, not one goroutine per candidate,
// so the sequential top-n maintenance and early-termination check (which
// depend on each other and can't themselves be parallelized) still run
// after a bounded amount of speculative work.
const scoreBatchSize = 256

const floatTolerance = 1e-9

// RankedWord is one scored candidate guess.
type RankedWord struct {
	Word string

	// Entropy is the exact expected information, in bits, this guess
	// yields against the current candidate set.
	Entropy float64

	// MaxEntropyBound is an upper bound on Entropy derived from the
	// number of distinct patterns the guess can produce. It only ever
	// shrinks as the candidate set narrows across plies, which is what
	// lets TopN skip recomputing words that can no longer matter.
	MaxEntropyBound float64

	// Score is set by a Strategy layered on top of the base entropy
	// ranking (see RegressionStrategy); the base Ranker leaves it zero.
	Score float64
}

// Ranker holds the persistent work list and per-query memo for one guess
// universe (the Allowed set) against one PrefixIndex.
type Ranker struct {
	idx      *trie.PrefixIndex
	work     []*RankedWord
	topCache map[string][]RankedWord
	cacheN   map[string]int
	observer progress.Observer
}

// New builds a Ranker over allowedWords. Every word starts with an
// infinite bound so the first TopN call evaluates the whole list.
func New(idx *trie.PrefixIndex, allowedWords []string, observer progress.Observer) *Ranker {
	if observer == nil {
		observer = progress.NopObserver{}
	}
	work := make([]*RankedWord, len(allowedWords))
	for i, w := range allowedWords {
		work[i] = &RankedWord{Word: w, MaxEntropyBound: math.Inf(1)}
	}
	return &Ranker{
		idx:      idx,
		work:     work,
		topCache: make(map[string][]RankedWord),
		cacheN:   make(map[string]int),
		observer: observer,
	}
}

// isPossibleAnswer reports whether word is itself a candidate target
// under q: it must have been tagged Possible at load time and still
// satisfy every constraint in q.
func (r *Ranker) isPossibleAnswer(word string, q query.Query) bool {
	return r.idx.CountPrefix(word, trie.Possible) == 1 && q.Verify(word)
}

// better defines the tiebreak order used both inside the top-n insertion
// and for the slice returned to callers: higher entropy first; among
// ties, a word that could itself be the answer; among further ties, the
// smaller (more stable, i.e. further refined) bound; finally
// lexicographic order for a fully deterministic result.
func better(a RankedWord, aIn bool, b RankedWord, bIn bool) bool {
	if math.Abs(a.Entropy-b.Entropy) > floatTolerance {
		return a.Entropy > b.Entropy
	}
	if aIn != bIn {
		return aIn
	}
	if math.Abs(a.MaxEntropyBound-b.MaxEntropyBound) > floatTolerance {
		return a.MaxEntropyBound < b.MaxEntropyBound
	}
	return a.Word < b.Word
}

// insertRanked inserts rw into the sorted (best-first) top slice,
// trimming back to n entries if it overflows.
func insertRanked(top []RankedWord, topIn []bool, rw RankedWord, in bool, n int) ([]RankedWord, []bool) {
	i := 0
	for i < len(top) && better(top[i], topIn[i], rw, in) {
		i++
	}
	top = append(top, RankedWord{})
	copy(top[i+1:], top[i:])
	top[i] = rw

	topIn = append(topIn, false)
	copy(topIn[i+1:], topIn[i:])
	topIn[i] = in

	if len(top) > n {
		top = top[:n]
		topIn = topIn[:n]
	}
	return top, topIn
}

// TopN returns the n best guesses under q, computed against the Possible
// set. Results for a given (q, n) are memoized; a request for a smaller n
// than a previously cached call is served from that cache directly.
func (r *Ranker) TopN(n int, q query.Query) []RankedWord {
	key := q.Serialize()
	if storedN, ok := r.cacheN[key]; ok && storedN >= n {
		cached := r.topCache[key]
		if n < len(cached) {
			cached = cached[:n]
		}
		out := make([]RankedWord, len(cached))
		copy(out, cached)
		return out
	}

	sort.Slice(r.work, func(i, j int) bool {
		return r.work[i].MaxEntropyBound > r.work[j].MaxEntropyBound
	})

	top := make([]RankedWord, 0, n)
	topIn := make([]bool, 0, n)

	total := len(r.work)
	r.observer.Update(0, total)

	done := 0
	for batchStart := 0; batchStart < len(r.work); batchStart += scoreBatchSize {
		batchEnd := batchStart + scoreBatchSize
		if batchEnd > len(r.work) {
			batchEnd = len(r.work)
		}
		batch := r.work[batchStart:batchEnd]

		// The batch is sorted by descending bound; if even its first word
		// can no longer beat the current top-n, every later batch (with an
		// equal or smaller bound) can't either.
		if len(top) >= n && batch[0].MaxEntropyBound <= top[len(top)-1].Entropy+floatTolerance {
			break
		}

		r.scoreBatch(batch, q)

		for _, rw := range batch {
			inPossible := r.isPossibleAnswer(rw.Word, q)
			if rw.MaxEntropyBound <= floatTolerance && !inPossible {
				// This guess can neither win nor distinguish anything further.
				continue
			}
			top, topIn = insertRanked(top, topIn, *rw, inPossible, n)
		}

		done = batchEnd
		r.observer.Update(done, total)
	}
	r.observer.Update(total, total)
	r.observer.Finish()

	out := make([]RankedWord, len(top))
	copy(out, top)
	r.topCache[key] = out
	r.cacheN[key] = n

	result := make([]RankedWord, len(out))
	copy(result, out)
	return result
}

// scoreBatch computes Partition-derived entropy and bound for every word
// in batch against q, sharded across a small worker pool. Each worker
// gets its own copy of q (a plain value type) so the trie's commit/
// restore bookkeeping during Partition never races across goroutines;
// the PrefixIndex itself is read-only once built, so concurrent walks
// over it are safe. This is the one place the solver uses goroutines,
// matching the scale of the first-ply bulk entropy scan over the full
// Allowed vocabulary.
func (r *Ranker) scoreBatch(batch []*RankedWord, q query.Query) {
	numWorkers := runtime.NumCPU()
	if numWorkers > len(batch) {
		numWorkers = len(batch)
	}
	if numWorkers <= 1 {
		r.scoreRange(batch, q)
		return
	}

	chunk := (len(batch) + numWorkers - 1) / numWorkers
	var wg sync.WaitGroup
	for start := 0; start < len(batch); start += chunk {
		end := start + chunk
		if end > len(batch) {
			end = len(batch)
		}
		wg.Add(1)
		go func(words []*RankedWord) {
			defer wg.Done()
			r.scoreRange(words, q)
		}(batch[start:end])
	}
	wg.Wait()
}

// scoreRange scores words sequentially against its own copy of q.
func (r *Ranker) scoreRange(words []*RankedWord, q query.Query) {
	for _, rw := range words {
		hist := r.idx.Partition(rw.Word, &q, trie.Possible)
		sum := 0
		for _, c := range hist {
			sum += c
		}
		rw.Entropy = entropy.Of(hist, sum)
		rw.MaxEntropyBound = entropy.MaxBound(len(hist))
	}
}

// Snapshot captures the Ranker's current work list and per-query memo in
// the on-disk warm cache format.
func (r *Ranker) Snapshot() warmcache.File {
	var f warmcache.File
	f.Work = make([]warmcache.Entry, len(r.work))
	for i, rw := range r.work {
		f.Work[i] = warmcache.Entry{Word: rw.Word, Score: rw.Score, Entropy: rw.Entropy, MaxEntropyBound: rw.MaxEntropyBound}
	}
	for key, n := range r.cacheN {
		cached := r.topCache[key]
		block := warmcache.Block{QueryKey: key, N: n, Entries: make([]warmcache.Entry, len(cached))}
		for i, rw := range cached {
			block.Entries[i] = warmcache.Entry{Word: rw.Word, Score: rw.Score, Entropy: rw.Entropy, MaxEntropyBound: rw.MaxEntropyBound}
		}
		f.Blocks = append(f.Blocks, block)
	}
	return f
}

// Restore replaces the Ranker's work list and memo with the contents of
// f. Words in f.Work that are no longer part of the Ranker's own Allowed
// vocabulary are ignored; words present in the vocabulary but missing
// from f.Work keep their default infinite bound and are simply
// recomputed the next time they matter.
func (r *Ranker) Restore(f warmcache.File) {
	byWord := make(map[string]*RankedWord, len(r.work))
	for _, rw := range r.work {
		byWord[rw.Word] = rw
	}
	for _, e := range f.Work {
		if rw, ok := byWord[e.Word]; ok {
			rw.Score, rw.Entropy, rw.MaxEntropyBound = e.Score, e.Entropy, e.MaxEntropyBound
		}
	}

	r.topCache = make(map[string][]RankedWord, len(f.Blocks))
	r.cacheN = make(map[string]int, len(f.Blocks))
	for _, b := range f.Blocks {
		entries := make([]RankedWord, len(b.Entries))
		for i, e := range b.Entries {
			entries[i] = RankedWord{Word: e.Word, Score: e.Score, Entropy: e.Entropy, MaxEntropyBound: e.MaxEntropyBound}
		}
		r.topCache[b.QueryKey] = entries
		r.cacheN[b.QueryKey] = b.N
	}
}
