//go:build !windows

package config

import (
	"os"
	"strings"
	"unicode"

	"golang.org/x/term"
)

// CleanFileName makes dump file name safe: path separators and control
// characters are dropped, leading dots trimmed so file is never hidden.
func CleanFileName(in string) string {
	out := strings.Map(func(sym rune) rune {
		if sym == os.PathSeparator || sym == os.PathListSeparator || unicode.IsControl(sym) {
			return -1
		}
		return sym
	}, in)
	out = strings.TrimLeft(out, ".")
	if len(out) == 0 {
		return badFileName
	}
	return out
}

// EnableColorOutput reports if stream is terminal and user did not ask for
// plain output with NO_COLOR.
func EnableColorOutput(stream *os.File) bool {
	if noColor() {
		return false
	}
	return term.IsTerminal(int(stream.Fd()))
}
