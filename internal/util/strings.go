// Package util provides ANSI-aware text helpers for laying out cards, chat
// bubbles and command output.
package util

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// Ellipsis marks truncated text.
const Ellipsis = "…"

// Truncate shortens s to maxWidth terminal columns, ending with Ellipsis
// when cut. Escape sequences and wide characters are measured correctly.
func Truncate(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	if ansi.StringWidth(s) <= maxWidth {
		return s
	}
	if maxWidth == 1 {
		return Ellipsis
	}
	return ansi.Truncate(s, maxWidth, Ellipsis)
}

// Wrap breaks s into lines of at most width columns, preferring word
// boundaries and splitting words longer than width.
func Wrap(s string, width int) []string {
	if width <= 0 {
		return []string{s}
	}
	return strings.Split(ansi.Wrap(s, width, ""), "\n")
}

// PadRight pads s with spaces to width columns. Wider strings are returned as is.
func PadRight(s string, width int) string {
	w := ansi.StringWidth(s)
	if w >= width {
		return s
	}
	return s + strings.Repeat(" ", width-w)
}

// FirstLine returns s up to its first line break.
func FirstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
