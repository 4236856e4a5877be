package main

// Options are the command-line flags accepted by wordlex, parsed with
// go-flags.
type Options struct {
	Words      string `short:"w" long:"words" description:"path to the allowed-guess word list" default:"words_allowed.txt"`
	Answers    string `short:"a" long:"answers" description:"path to the possible-answer word list" default:"words_possible.txt"`
	Target     string `short:"t" long:"target" description:"force a specific target word instead of a random one"`
	CachePath  string `short:"c" long:"cache" description:"warm cache file to load and save between runs" default:"wordlex.cache"`
	Regression bool   `short:"r" long:"regression" description:"rank guesses by expected total guesses instead of raw entropy"`
	Simulate   bool   `short:"s" long:"simulate" description:"play every possible target in one run and report the score distribution"`
	Direct     bool   `long:"direct" description:"rank each simulated ply through the trie instead of the memoized pattern table"`
	Quiet      bool   `short:"q" long:"quiet" description:"suppress the progress bar and info logging"`
}
