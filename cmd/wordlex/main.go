// Command wordlex is an interactive, information-theoretic Wordle
// solver: it suggests the guess expected to narrow the candidate set the
// most, tracks feedback across a session, and can also run a full
// self-play evaluation over an entire answer list.
package main

import (
	"bufio"
	"fmt"
	"log/slog"
	"os"
	"strings"

	flags "github.com/jessevdk/go-flags"

	"github.com/wordlex/solver/internal/game"
	"github.com/wordlex/solver/internal/progress"
	"github.com/wordlex/solver/internal/rank"
	"github.com/wordlex/solver/internal/simulate"
	"github.com/wordlex/solver/internal/wordlist"
)

func newLogger(quiet bool) *slog.Logger {
	level := slog.LevelInfo
	if quiet {
		level = slog.LevelWarn
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	return slog.New(handler)
}

func main() {
	var opts Options
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		if flagsWroteHelp(err) {
			os.Exit(0)
		}
		os.Exit(1)
	}

	logger := newLogger(opts.Quiet)

	allowed, err := wordlist.LoadFile(opts.Words)
	if err != nil {
		logger.Error("loading allowed word list", "path", opts.Words, "error", err)
		os.Exit(1)
	}
	possible, err := wordlist.LoadFile(opts.Answers)
	if err != nil {
		logger.Error("loading possible word list", "path", opts.Answers, "error", err)
		os.Exit(1)
	}

	var observer progress.Observer = progress.NopObserver{}
	if !opts.Quiet {
		observer = progress.NewBar(len(allowed), "ranking")
	}

	gs := game.NewFromWordLists(allowed, possible, "", nil, observer)
	loadCache(gs, opts.CachePath, logger)

	if opts.Target != "" {
		target := strings.ToLower(strings.TrimSpace(opts.Target))
		if !gs.IsWordValid(target) {
			logger.Error("target word is not in the allowed list", "target", target)
			os.Exit(1)
		}
		gs.SetTarget(target)
	}

	var strategy rank.Strategy = &rank.EntropyStrategy{Ranker: gs.Ranker()}
	if opts.Regression {
		strategy = &rank.RegressionStrategy{Ranker: gs.Ranker()}
	}

	if opts.Simulate {
		runSimulate(gs, allowed, opts.Direct, logger, observer)
	} else {
		runInteractive(gs, strategy, logger)
	}

	saveCache(gs, opts.CachePath, logger)
}

// flagsWroteHelp reports whether go-flags already printed usage text for
// err, in which case the process should exit cleanly rather than report
// a failure.
func flagsWroteHelp(err error) bool {
	if flagErr, ok := err.(*flags.Error); ok {
		return flagErr.Type == flags.ErrHelp
	}
	return false
}

func loadCache(gs *game.GameState, path string, logger *slog.Logger) {
	f, err := os.Open(path)
	if err != nil {
		return
	}
	defer f.Close()

	if !gs.LoadCache(f) {
		logger.Warn("warm cache was unreadable, starting cold", "path", path)
		return
	}
	logger.Info("loaded warm cache", "path", path)
}

func saveCache(gs *game.GameState, path string, logger *slog.Logger) {
	f, err := os.Create(path)
	if err != nil {
		logger.Warn("could not open warm cache for writing", "path", path, "error", err)
		return
	}
	defer f.Close()

	if !gs.SaveCache(f) {
		logger.Warn("failed to write warm cache", "path", path)
	}
}

func runInteractive(gs *game.GameState, strategy rank.Strategy, logger *slog.Logger) {
	reader := bufio.NewReader(os.Stdin)

	for gs.Status() == game.Ongoing {
		banner("GUESS %d/%d", gs.Guesses()+1, game.MaxGuesses)

		stat := gs.CurrentStat()
		fmt.Printf("REMAINING WORDS:       %d\n", stat.Count)
		fmt.Printf("INFORMATION GAINED:    %.2f bits\n", stat.Bits)
		fmt.Printf("REMAINING INFORMATION: %.2f bits\n", stat.RemainingBits)

		candidates := gs.CurrentCandidates()
		if len(candidates) <= 50 {
			fmt.Printf("POSSIBILITIES: %v\n", candidates)
		}

		if top := gs.TopNWithStrategy(5, strategy); len(top) > 0 {
			fmt.Println("SUGGESTIONS:")
			for _, w := range top {
				fmt.Printf("  %-8s entropy=%.3f bound=%.3f\n", w.Word, w.Entropy, w.MaxEntropyBound)
			}
		}

		fmt.Print("Enter your guess: ")
		line, err := reader.ReadString('\n')
		if err != nil {
			return
		}
		guessWord := strings.ToLower(strings.TrimSpace(line))

		if !displayWidthIsFive(guessWord) || !gs.IsWordValid(guessWord) {
			printInvalid()
			continue
		}

		result := gs.Guess(guessWord)
		fmt.Println(result.Pattern.Emoji())
	}

	switch gs.Status() {
	case game.Won:
		printWon()
	case game.Lost:
		printLost(gs.TargetWord())
	}
}

func runSimulate(gs *game.GameState, guesses []string, direct bool, logger *slog.Logger, observer progress.Observer) {
	targets := gs.CurrentCandidates()

	logger.Info("starting simulation", "targets", len(targets), "patternCache", !direct)
	var res simulate.Result
	if direct {
		res = simulate.Run(gs, targets, observer)
	} else {
		res = simulate.RunCached(gs, targets, guesses, observer)
	}

	banner("SIMULATION RESULTS")
	fmt.Println(res)
	if len(res.LostTargets) > 0 {
		fmt.Println("lost on:", res.LostTargets)
	}
}
