package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/mitchellh/colorstring"
	"github.com/rivo/uniseg"
	"golang.org/x/term"
)

// banner prints a bold section heading using colorstring's inline markup,
// underlined with a rule as wide as the current terminal, capped at 72
// columns.
func banner(format string, args ...any) {
	text := fmt.Sprintf(format, args...)
	fmt.Println(colorstring.Color("[bold]" + text + "[reset]"))
	fmt.Println(strings.Repeat("-", min(terminalWidth(), 72)))
}

func printWon() {
	fmt.Println(color.GreenString("Congratulations! You won!"))
}

func printLost(target string) {
	fmt.Println(color.RedString("You lost! The word was: %s", target))
}

func printInvalid() {
	fmt.Println(color.YellowString("Invalid word!"))
}

// terminalWidth reports the current stdout width, falling back to 80
// columns when stdout isn't a terminal (e.g. piped output, CI).
func terminalWidth() int {
	w, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || w <= 0 {
		return 80
	}
	return w
}

// displayWidthIsFive guards against input that is five runes by byte
// count but not five glyphs on screen (combining marks, wide characters
// pasted in by mistake), using uniseg's grapheme-cluster segmentation
// rather than a naive rune count.
func displayWidthIsFive(s string) bool {
	return uniseg.StringWidth(s) == 5
}
