package ui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/pstuifzand/tui-mixer/internal/theme"
)

// Screen manages the tcell screen and rendering
type Screen struct {
	tcellScreen tcell.Screen
	width       int
	height      int
	Theme       *theme.Theme
}

// NewScreen creates a new Screen on the controlling terminal
func NewScreen(t *theme.Theme) (*Screen, error) {
	tcellScreen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("failed to create screen: %w", err)
	}
	return NewScreenFrom(tcellScreen, t)
}

// NewScreenFrom initialises an existing tcell screen, such as a simulation
// screen in tests
func NewScreenFrom(tcellScreen tcell.Screen, t *theme.Theme) (*Screen, error) {
	if err := tcellScreen.Init(); err != nil {
		return nil, fmt.Errorf("failed to init screen: %w", err)
	}
	if t == nil {
		t = theme.Default()
	}

	width, height := tcellScreen.Size()
	return &Screen{
		tcellScreen: tcellScreen,
		width:       width,
		height:      height,
		Theme:       t,
	}, nil
}

// Close closes the screen
func (s *Screen) Close() error {
	s.tcellScreen.Fini()
	return nil
}

// Clear clears the entire screen
func (s *Screen) Clear() {
	s.tcellScreen.Clear()
}

// Sync redraws every cell, used after a resize
func (s *Screen) Sync() {
	s.tcellScreen.Sync()
	s.Size()
}

// SetCell sets a cell at the given position
func (s *Screen) SetCell(x, y int, r rune, style tcell.Style) {
	if x >= 0 && x < s.width && y >= 0 && y < s.height {
		s.tcellScreen.SetContent(x, y, r, nil, style)
	}
}

// DrawString draws a string at the given position and returns the number of
// columns used. Wide runes take two columns.
func (s *Screen) DrawString(x, y int, text string, style tcell.Style) int {
	col := 0
	for _, r := range text {
		s.SetCell(x+col, y, r, style)
		col += RuneWidth(r)
	}
	return col
}

// DrawStringLimited draws a string, truncating it if it exceeds maxWidth
func (s *Screen) DrawStringLimited(x, y int, text string, maxWidth int, style tcell.Style) int {
	if maxWidth <= 0 {
		return 0
	}
	return s.DrawString(x, y, TruncateToWidth(text, maxWidth), style)
}

// Fill paints a rectangle with spaces
func (s *Screen) Fill(x, y, w, h int, style tcell.Style) {
	for row := y; row < y+h; row++ {
		for col := x; col < x+w; col++ {
			s.SetCell(col, row, ' ', style)
		}
	}
}

// DrawBox draws a single-line border around a rectangle
func (s *Screen) DrawBox(x, y, w, h int, style tcell.Style) {
	if w < 2 || h < 2 {
		return
	}
	for col := x + 1; col < x+w-1; col++ {
		s.SetCell(col, y, '─', style)
		s.SetCell(col, y+h-1, '─', style)
	}
	for row := y + 1; row < y+h-1; row++ {
		s.SetCell(x, row, '│', style)
		s.SetCell(x+w-1, row, '│', style)
	}
	s.SetCell(x, y, '┌', style)
	s.SetCell(x+w-1, y, '┐', style)
	s.SetCell(x, y+h-1, '└', style)
	s.SetCell(x+w-1, y+h-1, '┘', style)
}

// PollEvent polls for the next event (key press, mouse, etc.)
func (s *Screen) PollEvent() tcell.Event {
	return s.tcellScreen.PollEvent()
}

// PostEvent queues an event, typically an interrupt that wakes the poller
func (s *Screen) PostEvent(ev tcell.Event) error {
	return s.tcellScreen.PostEvent(ev)
}

// Show shows the screen
func (s *Screen) Show() {
	s.tcellScreen.Show()
}

// Beep rings the terminal bell
func (s *Screen) Beep() error {
	return s.tcellScreen.Beep()
}

// Size returns the width and height of the screen
func (s *Screen) Size() (int, int) {
	w, h := s.tcellScreen.Size()
	s.width = w
	s.height = h
	return w, h
}

// GetWidth returns the width of the screen
func (s *Screen) GetWidth() int {
	s.width, _ = s.tcellScreen.Size()
	return s.width
}

// GetHeight returns the height of the screen
func (s *Screen) GetHeight() int {
	_, s.height = s.tcellScreen.Size()
	return s.height
}

// HasMouse returns true if mouse is supported
func (s *Screen) HasMouse() bool {
	return s.tcellScreen.HasMouse()
}

// EnableMouse enables button and motion reporting, which drag needs
func (s *Screen) EnableMouse() {
	s.tcellScreen.EnableMouse(tcell.MouseMotionEvents)
}

// DefaultStyle returns the default terminal style
func DefaultStyle() tcell.Style {
	return tcell.StyleDefault
}

// StyleBold returns a bold style
func StyleBold() tcell.Style {
	return tcell.StyleDefault.Bold(true)
}

// Theme-aware style methods

// Background is the base color every surface fades towards
func (s *Screen) Background() tcell.Color {
	return s.Theme.Colors.ListBackground
}

// ListStyle returns the style for normal playlist rows
func (s *Screen) ListStyle() tcell.Style {
	return theme.ColorPairToStyle(s.Theme.Colors.ListText, s.Theme.Colors.ListBackground)
}

// ListSelectedStyle returns the style for the cursor row
func (s *Screen) ListSelectedStyle() tcell.Style {
	return theme.ColorPairToStyle(s.Theme.Colors.ListSelected, s.Theme.Colors.ListBackground).Bold(true).Reverse(true)
}

// ListDurationStyle returns the style for the right-aligned duration column
func (s *Screen) ListDurationStyle() tcell.Style {
	return theme.ColorPairToStyle(s.Theme.Colors.ListDuration, s.Theme.Colors.ListBackground)
}

// ListDraggedStyle returns the style for the row being dragged
func (s *Screen) ListDraggedStyle() tcell.Style {
	return theme.ColorPairToStyle(s.Theme.Colors.ListDragged, s.Theme.Colors.ListBackground).Italic(true)
}

// DropMarkerStyle returns the style for the insertion line
func (s *Screen) DropMarkerStyle() tcell.Style {
	return theme.ColorPairToStyle(s.Theme.Colors.ListDropMarker, s.Theme.Colors.ListBackground).Bold(true)
}

// ScrollIndicatorStyle returns the style for the scroll bar
func (s *Screen) ScrollIndicatorStyle() tcell.Style {
	return theme.ColorPairToStyle(s.Theme.Colors.ScrollIndicator, s.Theme.Colors.ListBackground)
}

// DialogStyle returns the style for dialog content
func (s *Screen) DialogStyle() tcell.Style {
	return theme.ColorPairToStyle(s.Theme.Colors.DialogText, s.Theme.Colors.DialogBackground)
}

// DialogBorderStyle returns the style for dialog borders
func (s *Screen) DialogBorderStyle() tcell.Style {
	return theme.ColorPairToStyle(s.Theme.Colors.DialogBorder, s.Theme.Colors.DialogBackground)
}

// DialogTitleStyle returns the style for dialog titles
func (s *Screen) DialogTitleStyle() tcell.Style {
	return theme.ColorPairToStyle(s.Theme.Colors.DialogTitle, s.Theme.Colors.DialogBackground).Bold(true)
}

// DialogSelectedStyle returns the style for the cursor row of a dialog list
func (s *Screen) DialogSelectedStyle() tcell.Style {
	return theme.ColorPairToStyle(s.Theme.Colors.DialogSelected, s.Theme.Colors.DialogBackground).Reverse(true)
}

// SearchLabelStyle returns the style for search label
func (s *Screen) SearchLabelStyle() tcell.Style {
	return theme.ColorPairToStyle(s.Theme.Colors.SearchLabel, s.Theme.Colors.DialogBackground)
}

// SearchTextStyle returns the style for search text
func (s *Screen) SearchTextStyle() tcell.Style {
	return theme.ColorPairToStyle(s.Theme.Colors.SearchText, s.Theme.Colors.DialogBackground)
}

// SearchCursorStyle returns the style for search cursor
func (s *Screen) SearchCursorStyle() tcell.Style {
	return theme.ColorPairToStyle(s.Theme.Colors.SearchCursor, s.Theme.Colors.DialogBackground).Reverse(true)
}

// SearchResultCountStyle returns the style for search result count
func (s *Screen) SearchResultCountStyle() tcell.Style {
	return theme.ColorPairToStyle(s.Theme.Colors.SearchResultCount, s.Theme.Colors.DialogBackground)
}

// CommandPromptStyle returns the style for command prompt
func (s *Screen) CommandPromptStyle() tcell.Style {
	return theme.ColorToStyle(s.Theme.Colors.CommandPrompt)
}

// CommandTextStyle returns the style for command text
func (s *Screen) CommandTextStyle() tcell.Style {
	return theme.ColorToStyle(s.Theme.Colors.CommandText)
}

// CommandCursorStyle returns the style for command cursor
func (s *Screen) CommandCursorStyle() tcell.Style {
	return theme.ColorToStyle(s.Theme.Colors.CommandCursor).Reverse(true)
}

// HelpStyle returns the style for help background
func (s *Screen) HelpStyle() tcell.Style {
	return theme.ColorPairToStyle(s.Theme.Colors.HelpContent, s.Theme.Colors.HelpBackground)
}

// HelpBorderStyle returns the style for help borders
func (s *Screen) HelpBorderStyle() tcell.Style {
	return theme.ColorPairToStyle(s.Theme.Colors.HelpBorder, s.Theme.Colors.HelpBackground)
}

// HelpTitleStyle returns the style for help title
func (s *Screen) HelpTitleStyle() tcell.Style {
	return theme.ColorPairToStyle(s.Theme.Colors.HelpTitle, s.Theme.Colors.HelpBackground).Bold(true)
}

// StatusModeStyle returns the style for mode indicator
func (s *Screen) StatusModeStyle() tcell.Style {
	return theme.ColorToStyle(s.Theme.Colors.StatusMode).Bold(true).Reverse(true)
}

// StatusMessageStyle returns the style for status messages
func (s *Screen) StatusMessageStyle() tcell.Style {
	return theme.ColorToStyle(s.Theme.Colors.StatusMessage)
}

// StatusModifiedStyle returns the style for modified indicator
func (s *Screen) StatusModifiedStyle() tcell.Style {
	return theme.ColorToStyle(s.Theme.Colors.StatusModified)
}

// StatusDragStyle returns the style for the drag-active indicator
func (s *Screen) StatusDragStyle() tcell.Style {
	return theme.ColorToStyle(s.Theme.Colors.StatusDrag).Bold(true).Reverse(true)
}

// HeaderStyle returns the style for header title
func (s *Screen) HeaderStyle() tcell.Style {
	return theme.ColorToStyle(s.Theme.Colors.HeaderTitle).Bold(true)
}
