// Package entropy turns a partition histogram into the Shannon
// information (in bits) a guess is expected to reveal, and the trivial
// upper bound implied by how many distinct patterns it can produce.
package entropy

import "math"

// Of computes the Shannon entropy, in bits, of the distribution
// described by hist (pattern string -> count) over total candidates.
// A total of zero returns zero.
func Of(hist map[string]int, total int) float64 {
	if total <= 0 {
		return 0
	}
	var h float64
	for _, count := range hist {
		if count <= 0 {
			continue
		}
		p := float64(count) / float64(total)
		h += p * math.Log2(1/p)
	}
	return h
}

// MaxBound returns the entropy a guess would achieve if every candidate
// it could still distinguish fell into its own singleton bucket: the log2
// of the number of distinct patterns observed. A histogram's entropy can
// never exceed it, so it serves as the monotonically non-increasing
// ranking bound a search can prune against as the candidate set shrinks.
func MaxBound(distinctPatterns int) float64 {
	if distinctPatterns <= 0 {
		return 0
	}
	return math.Log2(float64(distinctPatterns))
}

// DistinctPatterns is a small accessor kept alongside MaxBound so callers
// don't need to re-derive len(hist) at each call site.
func DistinctPatterns(hist map[string]int) int {
	return len(hist)
}
