package text

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// Truncate truncates s to maxWidth, appending "…" if truncated.
// ANSI-aware: escape codes are not counted toward visual width and
// will not be broken by the truncation.
func Truncate(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	if ansi.StringWidth(s) <= maxWidth {
		return s
	}
	return ansi.Truncate(s, maxWidth, "…")
}

// TruncateLeft keeps the tail of s, prepending "…" if it had to cut. Useful
// for run names where the trailing path segment is the distinguishing part.
func TruncateLeft(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	w := ansi.StringWidth(s)
	if w <= maxWidth {
		return s
	}
	// Drop leading runes until the remainder plus ellipsis fits.
	runes := []rune(s)
	for len(runes) > 0 && ansi.StringWidth(string(runes))+1 > maxWidth {
		runes = runes[1:]
	}
	return "…" + string(runes)
}

// PadRight pads s with spaces to exactly width. If s is wider, returns s
// unchanged. ANSI-aware.
func PadRight(s string, width int) string {
	w := ansi.StringWidth(s)
	if w >= width {
		return s
	}
	return s + strings.Repeat(" ", width-w)
}
