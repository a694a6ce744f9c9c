package ui

import (
	"github.com/gdamore/tcell/v2"
)

// LineInput is a single-line text editor shared by the command line and the
// search dialog. The cursor counts runes.
type LineInput struct {
	text    []rune
	cursor  int
	history *History
}

// NewLineInput creates an input; h may be nil
func NewLineInput(h *History) *LineInput {
	return &LineInput{history: h}
}

// Text returns the current text
func (l *LineInput) Text() string {
	return string(l.text)
}

// SetText replaces the text and moves the cursor to the end
func (l *LineInput) SetText(s string) {
	l.text = []rune(s)
	l.cursor = len(l.text)
}

// Cursor returns the cursor position in runes
func (l *LineInput) Cursor() int {
	return l.cursor
}

// SetCursorColumn moves the cursor to the rune drawn at column col
func (l *LineInput) SetCursorColumn(col int) {
	width := 0
	for i, r := range l.text {
		if width >= col {
			l.cursor = i
			return
		}
		width += RuneWidth(r)
	}
	l.cursor = len(l.text)
}

// Reset clears the text and leaves history navigation
func (l *LineInput) Reset() {
	l.text = l.text[:0]
	l.cursor = 0
	if l.history != nil {
		l.history.Reset()
	}
}

// Commit records the text in the history and returns it
func (l *LineInput) Commit() string {
	s := l.Text()
	if l.history != nil {
		l.history.Add(s)
	}
	return s
}

// HandleKey applies an editing key and reports whether the text changed.
// Keys it does not know (Enter, Escape, Tab) are left to the caller.
func (l *LineInput) HandleKey(ev *tcell.EventKey) bool {
	before := l.Text()

	switch ev.Key() {
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if l.cursor > 0 {
			l.text = append(l.text[:l.cursor-1], l.text[l.cursor:]...)
			l.cursor--
		}
	case tcell.KeyDelete:
		if l.cursor < len(l.text) {
			l.text = append(l.text[:l.cursor], l.text[l.cursor+1:]...)
		}
	case tcell.KeyLeft:
		if l.cursor > 0 {
			l.cursor--
		}
	case tcell.KeyRight:
		if l.cursor < len(l.text) {
			l.cursor++
		}
	case tcell.KeyHome, tcell.KeyCtrlA:
		l.cursor = 0
	case tcell.KeyEnd, tcell.KeyCtrlE:
		l.cursor = len(l.text)
	case tcell.KeyCtrlU:
		l.text = append(l.text[:0], l.text[l.cursor:]...)
		l.cursor = 0
	case tcell.KeyCtrlK:
		l.text = l.text[:l.cursor]
	case tcell.KeyCtrlW:
		l.deleteWordBackwards()
	case tcell.KeyUp:
		if l.history != nil {
			if s, ok := l.history.Previous(l.Text()); ok {
				l.SetText(s)
			}
		}
	case tcell.KeyDown:
		if l.history != nil {
			if s, ok := l.history.Next(); ok {
				l.SetText(s)
			}
		}
	case tcell.KeyRune:
		l.text = append(l.text[:l.cursor], append([]rune{ev.Rune()}, l.text[l.cursor:]...)...)
		l.cursor++
	}

	return l.Text() != before
}

func (l *LineInput) deleteWordBackwards() {
	pos := l.cursor
	for pos > 0 && isSpace(l.text[pos-1]) {
		pos--
	}
	for pos > 0 && !isSpace(l.text[pos-1]) {
		pos--
	}
	l.text = append(l.text[:pos], l.text[l.cursor:]...)
	l.cursor = pos
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t'
}

// Render draws the text from x with a block cursor, clipped to width
// columns. Text left of the cursor scrolls out when it does not fit.
func (l *LineInput) Render(screen *Screen, x, y, width int, textStyle, cursorStyle tcell.Style) {
	if width <= 0 {
		return
	}

	start := 0
	for StringWidth(string(l.text[start:l.cursor]))+1 > width && start < l.cursor {
		start++
	}

	col := 0
	for i := start; i <= len(l.text) && col < width; i++ {
		r := ' '
		if i < len(l.text) {
			r = l.text[i]
		}
		style := textStyle
		if i == l.cursor {
			style = cursorStyle
		}
		rw := max(RuneWidth(r), 1)
		if col+rw > width {
			break
		}
		screen.SetCell(x+col, y, r, style)
		col += rw
	}
	for ; col < width; col++ {
		screen.SetCell(x+col, y, ' ', textStyle)
	}
}
