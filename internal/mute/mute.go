// Package mute dims surfaces that have nothing to do with the running drag,
// such as an open dialog while a search result is dragged into the playlist.
package mute

import (
	"log"

	"github.com/gdamore/tcell/v2"

	"github.com/pstuifzand/tui-mixer/internal/drag"
	"github.com/pstuifzand/tui-mixer/internal/loop"
	"github.com/pstuifzand/tui-mixer/internal/theme"
)

// MutedOpacity is the opacity of a muted surface
const MutedOpacity = 0.4

// Options configures an Observer
type Options struct {
	// SurfaceID is compared against the dragged item's origin
	SurfaceID string
	// MuteWhenOrigin also mutes the surface the drag started from
	MuteWhenOrigin bool
	// Accepts keeps the surface active during drags it is a drop target for
	Accepts  func(item drag.Item) bool
	OnChange func(muted bool)
	Logger   *log.Logger
}

// Observer tracks whether one surface is muted
type Observer struct {
	opts  Options
	muted bool
	scope loop.Scope
}

// New creates an observer and subscribes it to coord. The muted state is
// updated in the same notification that changes the drag state.
func New(coord *drag.Coordinator, opts Options) *Observer {
	if opts.Logger == nil {
		opts.Logger = log.New(log.Writer(), "[MUTE] ", log.LstdFlags|log.Lshortfile)
	}
	o := &Observer{opts: opts}
	o.apply(coord.State())
	o.scope.Add(coord.Subscribe(o.apply))
	return o
}

func (o *Observer) apply(s drag.State) {
	muted := s.IsDragging && s.Item != nil &&
		(s.Item.Origin != o.opts.SurfaceID || o.opts.MuteWhenOrigin)
	if muted && o.opts.Accepts != nil && o.opts.Accepts(*s.Item) {
		muted = false
	}
	if muted == o.muted {
		return
	}
	o.muted = muted
	o.opts.Logger.Printf("surface %q muted=%v", o.opts.SurfaceID, muted)
	if o.opts.OnChange != nil {
		drag.Safely(o.opts.Logger, "mute change", func() { o.opts.OnChange(muted) })
	}
}

// Muted reports whether the surface is muted
func (o *Observer) Muted() bool {
	return o.muted
}

// AcceptsInput reports whether the surface should react to input
func (o *Observer) AcceptsInput() bool {
	return !o.muted
}

// Opacity returns the surface opacity
func (o *Observer) Opacity() float64 {
	if o.muted {
		return MutedOpacity
	}
	return 1
}

// Style returns style faded towards bg when the surface is muted
func (o *Observer) Style(style tcell.Style, bg tcell.Color) tcell.Style {
	if !o.muted {
		return style
	}
	return Fade(style, bg, MutedOpacity)
}

// Fade blends the style's colours towards bg, keeping opacity of the
// original. Styles using terminal default colours are dimmed instead.
func Fade(style tcell.Style, bg tcell.Color, opacity float64) tcell.Style {
	fg, sbg, _ := style.Decompose()
	if sbg.Valid() {
		bg = sbg
	}
	if !fg.Valid() || !bg.Valid() {
		return style.Dim(true)
	}

	return style.Foreground(theme.Blend(fg, bg, opacity))
}

// Dispose unsubscribes the observer
func (o *Observer) Dispose() {
	o.scope.Dispose()
}
