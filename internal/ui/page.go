package ui

import (
	"github.com/pstuifzand/tui-mixer/internal/geom"
)

// MinPageHeight is the height the layout needs without scrolling: header,
// a few playlist rows, status and command lines
const MinPageHeight = 10

// Page is the whole terminal document. When the terminal is shorter than
// MinPageHeight the layout scrolls as a unit; the page offset is that scroll.
//
// While locked the offset cannot change, and unlocking reflows the layout
// back to the top. Whoever locks is expected to restore the offset.
type Page struct {
	offset    int
	height    int
	locked    bool
	selection bool
	markers   map[string]bool
}

// NewPage creates an unlocked page with text selection enabled
func NewPage() *Page {
	return &Page{selection: true, markers: make(map[string]bool)}
}

// Resize tells the page how tall the terminal is
func (p *Page) Resize(height int) {
	p.height = height
	p.offset = geom.Clamp(p.offset, 0, p.maxOffset())
}

func (p *Page) maxOffset() int {
	return max(MinPageHeight-p.height, 0)
}

// ScrollOffset returns how many rows the layout is shifted up
func (p *Page) ScrollOffset() int {
	return p.offset
}

// SetScrollOffset moves the page, clamped to what the terminal allows
func (p *Page) SetScrollOffset(offset int) {
	p.offset = geom.Clamp(offset, 0, p.maxOffset())
}

// ScrollBy scrolls the page unless it is locked
func (p *Page) ScrollBy(delta int) bool {
	if p.locked {
		return false
	}
	before := p.offset
	p.SetScrollOffset(p.offset + delta)
	return p.offset != before
}

// SetScrollLocked freezes or releases the page
func (p *Page) SetScrollLocked(locked bool) {
	if p.locked && !locked {
		p.offset = 0
	}
	p.locked = locked
}

// Locked reports whether the page is frozen
func (p *Page) Locked() bool {
	return p.locked
}

// SetTextSelection enables or disables clicking into text inputs
func (p *Page) SetTextSelection(enabled bool) {
	p.selection = enabled
}

// TextSelection reports whether text inputs take clicks
func (p *Page) TextSelection() bool {
	return p.selection
}

// SetMarker sets or clears a named marker
func (p *Page) SetMarker(name string, on bool) {
	if on {
		p.markers[name] = true
		return
	}
	delete(p.markers, name)
}

// Marker reports whether a marker is set
func (p *Page) Marker(name string) bool {
	return p.markers[name]
}
