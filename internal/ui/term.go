package ui

import (
	"strings"

	"golang.org/x/term"
)

// IsTTY reports whether the given file descriptor refers to a terminal.
func IsTTY(fd uintptr) bool {
	return term.IsTerminal(int(fd))
}

// DisplayPath renders a path for humans. Paths are arbitrary bytes; invalid
// UTF-8 sequences are shown as U+FFFD.
func DisplayPath(p string) string {
	return strings.ToValidUTF8(p, "\uFFFD")
}
