package ui

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// Widths are display columns, not bytes or runes. Track titles routinely
// contain CJK and emoji, which take two columns each.

// RuneWidth returns the display width of a single rune. Control and
// combining characters count as zero.
func RuneWidth(r rune) int {
	w := runewidth.RuneWidth(r)
	if w < 0 {
		return 0
	}
	return w
}

// StringWidth returns the display width of a string
func StringWidth(s string) int {
	return runewidth.StringWidth(s)
}

// TruncateToWidth cuts s to at most maxWidth columns without splitting a rune
func TruncateToWidth(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}

	width := 0
	for i, r := range s {
		rw := RuneWidth(r)
		if width+rw > maxWidth {
			return s[:i]
		}
		width += rw
	}
	return s
}

// TruncateToWidthWithEllipsis truncates s and marks the cut with "…"
func TruncateToWidthWithEllipsis(s string, maxWidth int) string {
	if StringWidth(s) <= maxWidth {
		return s
	}
	if maxWidth <= 1 {
		return TruncateToWidth(s, maxWidth)
	}
	return TruncateToWidth(s, maxWidth-1) + "…"
}

// PadStringToWidth pads s with spaces up to width columns
func PadStringToWidth(s string, width int) string {
	current := StringWidth(s)
	if current >= width {
		return s
	}
	return s + strings.Repeat(" ", width-current)
}

// FitColumns lays out a row of exactly width columns with left flush left and
// right flush right. The left text gives way first; the right text is dropped
// when there is no room for at least one column of left text and a gap.
func FitColumns(left, right string, width int) string {
	if width <= 0 {
		return ""
	}
	rw := StringWidth(right)
	if right == "" || rw+2 > width {
		return PadStringToWidth(TruncateToWidthWithEllipsis(left, width), width)
	}
	avail := width - rw - 1
	left = PadStringToWidth(TruncateToWidthWithEllipsis(left, avail), avail)
	return left + " " + right
}
