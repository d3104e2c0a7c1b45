package cmd

import (
	"errors"
	"os"

	"golang.org/x/term"
)

var errNoTTY = errors.New("this command needs an interactive terminal")

// isTerminal is swapped in tests.
var isTerminal = func(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// requireTTY fails unless input and the UI output are terminals.
func requireTTY(ui *os.File) error {
	if !isTerminal(os.Stdin) || !isTerminal(ui) {
		return errNoTTY
	}
	return nil
}
