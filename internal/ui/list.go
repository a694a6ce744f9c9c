package ui

import (
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/pstuifzand/tui-mixer/internal/autoscroll"
	"github.com/pstuifzand/tui-mixer/internal/feedback"
	"github.com/pstuifzand/tui-mixer/internal/geom"
	"github.com/pstuifzand/tui-mixer/internal/model"
	"github.com/pstuifzand/tui-mixer/internal/mute"
)

// Row is one line of a list
type Row struct {
	ID     string
	Text   string
	Detail string // right-aligned column, e.g. the duration
}

// RenderFunc renders the text of one track row
type RenderFunc func(track model.Track, index int, dragged bool) string

// DefaultRender shows "Artist - Title"
func DefaultRender(track model.Track, _ int, _ bool) string {
	return track.Label()
}

// TrackRows builds list rows for tracks
func TrackRows(tracks []model.Track, render RenderFunc, draggedID string) []Row {
	if render == nil {
		render = DefaultRender
	}
	rows := make([]Row, len(tracks))
	for i, t := range tracks {
		rows[i] = Row{
			ID:     t.ID,
			Text:   render(t, i, t.ID != "" && t.ID == draggedID),
			Detail: t.DurationString(),
		}
	}
	return rows
}

// ListStyles are the styles a list is drawn with
type ListStyles struct {
	Normal   tcell.Style
	Selected tcell.Style
	Detail   tcell.Style
	Dragged  tcell.Style
	Marker   tcell.Style
	Scroll   tcell.Style
	// Background is what dragged rows fade towards
	Background tcell.Color
}

// PlaylistStyles returns the styles of the main playlist
func PlaylistStyles(s *Screen) ListStyles {
	return ListStyles{
		Normal:     s.ListStyle(),
		Selected:   s.ListSelectedStyle(),
		Detail:     s.ListDurationStyle(),
		Dragged:    s.ListDraggedStyle(),
		Marker:     s.DropMarkerStyle(),
		Scroll:     s.ScrollIndicatorStyle(),
		Background: s.Theme.Colors.ListBackground,
	}
}

// DialogListStyles returns the styles of a list inside a dialog
func DialogListStyles(s *Screen) ListStyles {
	return ListStyles{
		Normal:     s.DialogStyle(),
		Selected:   s.DialogSelectedStyle(),
		Detail:     s.DialogStyle().Dim(true),
		Dragged:    s.DialogStyle().Italic(true),
		Marker:     s.DropMarkerStyle(),
		Scroll:     s.DialogBorderStyle(),
		Background: s.Theme.Colors.DialogBackground,
	}
}

// ListState is the per-frame input of Render. None of it is stored in the
// list.
type ListState struct {
	Focused   bool
	DraggedID string
	// DropIndex is the insertion point to mark, or -1
	DropIndex int
	// Opacity below 1 fades the whole list (a muted surface)
	Opacity float64
}

// ListView is a vertically scrolling list of rows. Offsets are in rows.
//
// It is the scroll container of the drag engine: scroll memory reads and
// writes its offset, auto-scroll drives it through Bounds/CanScroll/ScrollBy,
// and RowBoxes gives the drop logic every row's geometry.
type ListView struct {
	rows     []Row
	selected int
	offset   int
	frac     float64
	hidden   bool

	x, y, w, h int
}

// NewListView creates an empty list
func NewListView() *ListView {
	return &ListView{}
}

// SetRows replaces the rows and keeps the selection and offset in range
func (l *ListView) SetRows(rows []Row) {
	l.rows = rows
	l.selected = geom.Clamp(l.selected, 0, max(len(rows)-1, 0))
	l.offset = geom.Clamp(l.offset, 0, l.maxOffset())
}

// Rows returns the rows
func (l *ListView) Rows() []Row {
	return l.rows
}

// Len returns the number of rows
func (l *ListView) Len() int {
	return len(l.rows)
}

// SetRect places the list on screen
func (l *ListView) SetRect(x, y, w, h int) {
	l.x, l.y, l.w, l.h = x, y, max(w, 0), max(h, 0)
	l.offset = geom.Clamp(l.offset, 0, l.maxOffset())
}

// SetHidden marks the list as gone (its panel was closed)
func (l *ListView) SetHidden(hidden bool) {
	l.hidden = hidden
}

// Gone reports whether the list is no longer on screen
func (l *ListView) Gone() bool {
	return l.hidden
}

// Contains reports whether the cell lies inside the list
func (l *ListView) Contains(x, y int) bool {
	return !l.hidden && x >= l.x && x < l.x+l.w && y >= l.y && y < l.y+l.h
}

// Bounds returns the visible rectangle in screen cells
func (l *ListView) Bounds() (geom.Rect, bool) {
	if l.hidden || l.h <= 0 {
		return geom.Rect{}, false
	}
	return geom.Rect{X: float64(l.x), Y: float64(l.y), W: float64(l.w), H: float64(l.h)}, true
}

func (l *ListView) maxOffset() int {
	return max(len(l.rows)-l.h, 0)
}

// ScrollOffset returns the index of the first visible row
func (l *ListView) ScrollOffset() int {
	return l.offset
}

// SetScrollOffset scrolls to offset, clamped to the content
func (l *ListView) SetScrollOffset(offset int) {
	l.offset = geom.Clamp(offset, 0, l.maxOffset())
	l.frac = 0
}

// CanScroll reports whether the list is not yet at its limit in dir
func (l *ListView) CanScroll(dir autoscroll.Direction) bool {
	switch dir {
	case autoscroll.Up:
		return l.offset > 0
	case autoscroll.Down:
		return l.offset < l.maxOffset()
	default:
		return false
	}
}

// ScrollBy scrolls by a fractional number of rows. Fractions accumulate so
// slow speeds still move the list.
func (l *ListView) ScrollBy(delta float64) {
	l.frac += delta
	whole := math.Trunc(l.frac)
	if whole == 0 {
		return
	}
	l.frac -= whole
	next := geom.Clamp(l.offset+int(whole), 0, l.maxOffset())
	if next == l.offset {
		l.frac = 0
	}
	l.offset = next
}

// Selected returns the cursor row, or -1 when the list is empty
func (l *ListView) Selected() int {
	if len(l.rows) == 0 {
		return -1
	}
	return l.selected
}

// SelectedRow returns the cursor row
func (l *ListView) SelectedRow() (Row, bool) {
	i := l.Selected()
	if i < 0 {
		return Row{}, false
	}
	return l.rows[i], true
}

// Select moves the cursor and scrolls it into view
func (l *ListView) Select(i int) {
	if len(l.rows) == 0 {
		l.selected = 0
		return
	}
	l.selected = geom.Clamp(i, 0, len(l.rows)-1)
	l.EnsureVisible(l.selected)
}

// SelectID moves the cursor to the row with id
func (l *ListView) SelectID(id string) bool {
	for i, r := range l.rows {
		if r.ID == id {
			l.Select(i)
			return true
		}
	}
	return false
}

// MoveSelection moves the cursor by delta rows
func (l *ListView) MoveSelection(delta int) {
	l.Select(l.selected + delta)
}

// EnsureVisible scrolls the minimum needed to show row i
func (l *ListView) EnsureVisible(i int) {
	if l.h <= 0 {
		return
	}
	switch {
	case i < l.offset:
		l.SetScrollOffset(i)
	case i >= l.offset+l.h:
		l.SetScrollOffset(i - l.h + 1)
	}
}

// RowAt returns the row under the cell
func (l *ListView) RowAt(x, y int) (int, bool) {
	if !l.Contains(x, y) {
		return -1, false
	}
	i := l.offset + y - l.y
	if i >= len(l.rows) {
		return -1, false
	}
	return i, true
}

// RowBoxes returns the geometry of every row, including those scrolled out
// of view
func (l *ListView) RowBoxes() []geom.Rect {
	boxes := make([]geom.Rect, len(l.rows))
	for i := range l.rows {
		boxes[i] = geom.Rect{
			X: float64(l.x),
			Y: float64(l.y + i - l.offset),
			W: float64(l.w),
			H: 1,
		}
	}
	return boxes
}

// Render draws the visible rows
func (l *ListView) Render(screen *Screen, styles ListStyles, state ListState) {
	if l.hidden || l.w <= 0 || l.h <= 0 {
		return
	}
	fade := func(s tcell.Style) tcell.Style {
		if state.Opacity > 0 && state.Opacity < 1 {
			return mute.Fade(s, styles.Background, state.Opacity)
		}
		return s
	}

	textWidth := l.w
	if len(l.rows) > l.h {
		textWidth-- // scroll bar
	}

	for line := 0; line < l.h; line++ {
		y := l.y + line
		i := l.offset + line
		if i >= len(l.rows) {
			screen.Fill(l.x, y, textWidth, 1, fade(styles.Normal))
			continue
		}
		row := l.rows[i]

		style := styles.Normal
		detail := styles.Detail
		if state.Focused && i == l.selected {
			style = styles.Selected
			detail = styles.Selected
		}
		dragged := row.ID != "" && row.ID == state.DraggedID
		if dragged {
			p := feedback.ItemPresentation(true)
			style = mute.Fade(styles.Dragged, styles.Background, p.Opacity)
			if p.Scale > 1 {
				style = style.Bold(true)
			}
			detail = style
		}

		text := FitColumns(" "+row.Text, row.Detail+" ", textWidth)
		split := len(text) - len(row.Detail) - 1
		if row.Detail == "" || split < 0 || text[split:] != row.Detail+" " {
			split = len(text)
		}
		col := screen.DrawString(l.x, y, text[:split], fade(style))
		screen.DrawString(l.x+col, y, text[split:], fade(detail))
	}

	if state.DropIndex >= 0 {
		l.renderDropMarker(screen, fade(styles.Marker), state.DropIndex, textWidth)
	}
	if len(l.rows) > l.h {
		l.renderScrollBar(screen, fade(styles.Scroll))
	}
}

// renderDropMarker points at the row the item would land before. Past the
// last row it draws a line on the first empty row.
func (l *ListView) renderDropMarker(screen *Screen, style tcell.Style, index, width int) {
	line := index - l.offset
	if line < 0 || line >= l.h {
		return
	}
	y := l.y + line
	screen.SetCell(l.x, y, '▶', style)
	if index >= len(l.rows) {
		for col := 1; col < width; col++ {
			screen.SetCell(l.x+col, y, '─', style)
		}
	}
}

func (l *ListView) renderScrollBar(screen *Screen, style tcell.Style) {
	x := l.x + l.w - 1
	thumb := max(l.h*l.h/len(l.rows), 1)
	pos := 0
	if m := l.maxOffset(); m > 0 {
		pos = (l.h - thumb) * l.offset / m
	}
	for line := 0; line < l.h; line++ {
		r := '│'
		if line >= pos && line < pos+thumb {
			r = '┃'
		}
		screen.SetCell(x, l.y+line, r, style)
	}
}
