package ui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/pstuifzand/tui-mixer/internal/catalog"
	"github.com/pstuifzand/tui-mixer/internal/mute"
)

// Dialog is a boxed overlay. It shows either a list (optionally with a text
// input above it) or plain lines of text.
type Dialog struct {
	// ID names the dialog as a surface: it is the origin of drags that start
	// in it and the surface its mute observer watches
	ID     string
	Title  string
	Footer string
	Lines  []string
	List   *ListView
	Input  *LineInput

	// Opacity below 1 draws the dialog faded into the page
	Opacity float64

	x, y, w, h int
}

// NewTextDialog creates a dialog showing lines of text
func NewTextDialog(id, title string, lines []string) *Dialog {
	return &Dialog{ID: id, Title: title, Lines: lines, Opacity: 1}
}

// Place positions the dialog and lays out its contents
func (d *Dialog) Place(x, y, w, h int) {
	d.x, d.y, d.w, d.h = x, y, w, h
	if d.List == nil {
		return
	}
	top := y + 1
	if d.Input != nil {
		top += 2 // input row and separator
	}
	d.List.SetRect(x+1, top, w-2, y+h-1-top)
}

// PlaceCentered sizes the dialog to its text and centers it
func (d *Dialog) PlaceCentered(screenW, screenH int) {
	w := StringWidth(d.Title) + 6
	for _, line := range d.Lines {
		w = max(w, StringWidth(line)+4)
	}
	w = max(min(w, screenW-4), 10)
	h := min(len(d.Lines)+2, screenH-2)
	d.Place((screenW-w)/2, (screenH-h)/2, w, h)
}

// Rect returns the dialog's outer rectangle
func (d *Dialog) Rect() (x, y, w, h int) {
	return d.x, d.y, d.w, d.h
}

// Contains reports whether the cell lies inside the dialog box
func (d *Dialog) Contains(x, y int) bool {
	return x >= d.x && x < d.x+d.w && y >= d.y && y < d.y+d.h
}

// InputContains reports whether the cell is on the input row
func (d *Dialog) InputContains(x, y int) bool {
	return d.Input != nil && y == d.y+1 && x > d.x+2 && x < d.x+d.w-1
}

// ClickInput places the input cursor under column x
func (d *Dialog) ClickInput(x int) {
	if d.Input != nil {
		d.Input.SetCursorColumn(x - (d.x + 3))
	}
}

func (d *Dialog) style(screen *Screen, s tcell.Style) tcell.Style {
	if d.Opacity > 0 && d.Opacity < 1 {
		return mute.Fade(s, screen.Background(), d.Opacity)
	}
	return s
}

// Render draws the dialog. count is shown right of the input, when there is
// one.
func (d *Dialog) Render(screen *Screen, listState ListState, count string) {
	if d.w < 4 || d.h < 3 {
		return
	}
	body := d.style(screen, screen.DialogStyle())
	border := d.style(screen, screen.DialogBorderStyle())

	screen.Fill(d.x, d.y, d.w, d.h, body)
	screen.DrawBox(d.x, d.y, d.w, d.h, border)
	if d.Title != "" {
		screen.DrawStringLimited(d.x+2, d.y, " "+d.Title+" ", d.w-4, d.style(screen, screen.DialogTitleStyle()))
	}
	if d.Footer != "" {
		footer := " " + d.Footer + " "
		fw := min(StringWidth(footer), d.w-4)
		screen.DrawStringLimited(d.x+d.w-2-fw, d.y+d.h-1, footer, d.w-4, border)
	}

	inner := d.w - 2
	row := d.y + 1
	if d.Input != nil {
		screen.DrawString(d.x+1, row, "/", d.style(screen, screen.SearchLabelStyle()))
		inputWidth := inner - 2
		if count != "" {
			cw := StringWidth(count)
			if cw+4 < inputWidth {
				inputWidth -= cw + 1
				screen.DrawString(d.x+d.w-1-cw, row, count, d.style(screen, screen.SearchResultCountStyle()))
			}
		}
		d.Input.Render(screen, d.x+3, row, inputWidth,
			d.style(screen, screen.SearchTextStyle()), d.style(screen, screen.SearchCursorStyle()))
		screen.SetCell(d.x, row+1, '├', border)
		for col := d.x + 1; col < d.x+d.w-1; col++ {
			screen.SetCell(col, row+1, '─', border)
		}
		screen.SetCell(d.x+d.w-1, row+1, '┤', border)
	}

	if d.List != nil {
		if d.Opacity > 0 && d.Opacity < 1 {
			listState.Opacity = d.Opacity
		}
		d.List.Render(screen, DialogListStyles(screen), listState)
		return
	}

	for i, line := range d.Lines {
		if row+i >= d.y+d.h-1 {
			break
		}
		screen.DrawStringLimited(d.x+2, row+i, line, inner-2, body)
	}
}

// CatalogDialog lists tracks of one catalog kind. The search dialog has a
// query input and fuzzy-filters; the unselected browser lists everything.
type CatalogDialog struct {
	*Dialog
	Kind catalog.Kind

	source  *catalog.Catalog
	results []catalog.Result
}

// NewCatalogDialog creates a dialog over one kind of the catalog. h is the
// query history and may be nil.
func NewCatalogDialog(id string, kind catalog.Kind, source *catalog.Catalog, h *History) *CatalogDialog {
	d := &CatalogDialog{
		Dialog: &Dialog{ID: id, List: NewListView(), Opacity: 1},
		Kind:   kind,
		source: source,
	}
	switch kind {
	case catalog.KindSearch:
		d.Title = "Search"
		d.Footer = "drag or enter to add · esc close"
		d.Input = NewLineInput(h)
	case catalog.KindUnselected:
		d.Title = "Unselected tracks"
		d.Footer = "drag to add · drop here to remove"
	}
	d.Refresh()
	return d
}

// Query returns the text of the search input
func (d *CatalogDialog) Query() string {
	if d.Input == nil {
		return ""
	}
	return d.Input.Text()
}

// Refresh re-runs the query against the catalog
func (d *CatalogDialog) Refresh() {
	selectedID := ""
	if row, ok := d.List.SelectedRow(); ok {
		selectedID = row.ID
	}

	if d.Input != nil {
		d.results = d.source.Search(d.Kind, d.Query())
	} else {
		d.results = d.source.Tracks(d.Kind)
	}

	rows := make([]Row, len(d.results))
	for i, r := range d.results {
		rows[i] = Row{ID: r.Track.ID, Text: r.Track.Label(), Detail: r.Set}
	}
	d.List.SetRows(rows)
	if selectedID == "" || !d.List.SelectID(selectedID) {
		d.List.Select(0)
	}
}

// Results returns the rows' catalog entries
func (d *CatalogDialog) Results() []catalog.Result {
	return d.results
}

// Result returns the entry at row i
func (d *CatalogDialog) Result(i int) (catalog.Result, bool) {
	if i < 0 || i >= len(d.results) {
		return catalog.Result{}, false
	}
	return d.results[i], true
}

// Selected returns the entry under the cursor
func (d *CatalogDialog) Selected() (catalog.Result, bool) {
	return d.Result(d.List.Selected())
}

// HandleKey handles navigation and query editing. Enter and Escape are left
// to the caller.
func (d *CatalogDialog) HandleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyUp:
		d.List.MoveSelection(-1)
		return true
	case tcell.KeyDown:
		d.List.MoveSelection(1)
		return true
	case tcell.KeyPgUp:
		d.List.MoveSelection(-max(d.List.h-1, 1))
		return true
	case tcell.KeyPgDn:
		d.List.MoveSelection(max(d.List.h-1, 1))
		return true
	case tcell.KeyEnter, tcell.KeyEscape:
		return false
	}

	if d.Input == nil {
		switch ev.Rune() {
		case 'k':
			d.List.MoveSelection(-1)
			return true
		case 'j':
			d.List.MoveSelection(1)
			return true
		}
		return false
	}

	// Ctrl+P / Ctrl+N walk the query history since Up and Down move the cursor
	switch ev.Key() {
	case tcell.KeyCtrlP:
		ev = tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone)
	case tcell.KeyCtrlN:
		ev = tcell.NewEventKey(tcell.KeyDown, 0, tcell.ModNone)
	}
	if d.Input.HandleKey(ev) {
		d.Refresh()
	}
	return true
}

// CommitQuery records the query in the search history
func (d *CatalogDialog) CommitQuery() {
	if d.Input != nil && d.Query() != "" {
		d.Input.Commit()
	}
}

// Count is the result counter shown beside the input
func (d *CatalogDialog) Count() string {
	if d.Input == nil {
		return ""
	}
	return fmt.Sprintf("%d/%d", len(d.results), d.source.Len(d.Kind))
}
