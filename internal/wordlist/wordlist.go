// Package wordlist loads newline-delimited word lists from disk,
// following the same bufio.Scanner shape the rest of this codebase's
// ancestry uses for flat text files.
package wordlist

import (
	"bufio"
	"io"
	"os"
	"strings"

	"github.com/wordlex/solver/internal/feedback"
)

// Load reads one word per line from r, trimming whitespace, skipping
// blank lines, and dropping duplicates while preserving first-seen order.
// It does not validate word shape; callers that need only valid 5-letter
// lowercase words should filter with feedback.IsValidWord, or call
// LoadValid.
func Load(r io.Reader) ([]string, error) {
	seen := make(map[string]struct{})
	var words []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		word := strings.TrimSpace(scanner.Text())
		if word == "" {
			continue
		}
		if _, dup := seen[word]; dup {
			continue
		}
		seen[word] = struct{}{}
		words = append(words, word)
	}
	return words, scanner.Err()
}

// LoadValid behaves like Load but lowercases every entry and discards any
// that is then not a valid 5-letter word, rather than surfacing the
// malformed line as an error. Real word lists occasionally carry stray blank or malformed
// entries; this is the boundary where they get filtered out.
func LoadValid(r io.Reader) ([]string, error) {
	all, err := Load(r)
	if err != nil {
		return nil, err
	}
	var valid []string
	for _, w := range all {
		w = strings.ToLower(w)
		if feedback.IsValidWord(w) {
			valid = append(valid, w)
		}
	}
	return valid, nil
}

// LoadFile opens path and delegates to LoadValid.
func LoadFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return LoadValid(f)
}
