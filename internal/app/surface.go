package app

import (
	"github.com/pstuifzand/tui-mixer/internal/autoscroll"
	"github.com/pstuifzand/tui-mixer/internal/config"
	"github.com/pstuifzand/tui-mixer/internal/drag"
	"github.com/pstuifzand/tui-mixer/internal/input"
	"github.com/pstuifzand/tui-mixer/internal/mute"
	"github.com/pstuifzand/tui-mixer/internal/ui"
)

// Surface IDs. A drag's origin is the surface it started in.
const (
	SurfacePlaylist   = "playlist"
	SurfaceSearch     = "search"
	SurfaceUnselected = "unselected"
	SurfaceInfo       = "info"
	SurfaceBackups    = "backups"
	SurfaceRecovery   = "recovery"
	SurfaceMessages   = "messages"
)

// surface is the playlist or an open dialog, together with the drag plumbing
// attached to it. Everything it owns is released by dispose.
type surface struct {
	id      string
	source  drag.Source
	list    *ui.ListView
	dialog  *ui.Dialog
	catalog *ui.CatalogDialog
	backups *ui.BackupSelector

	// draggable surfaces have both adapters; the pointer mode picks one
	pointer *input.Pointer
	touch   *input.Touch
	scroll  *autoscroll.Controller
	mute    *mute.Observer

	// pressed is the ID of the row under the held button
	pressed string
}

func (s *surface) draggable() bool {
	return s.pointer != nil
}

// accepts reports whether item can be dropped on the surface
func (s *surface) accepts(item drag.Item) bool {
	switch s.id {
	case SurfacePlaylist:
		return true
	case SurfaceUnselected:
		return item.Source() == drag.SourcePlaylist
	}
	return false
}

// active reports whether the surface takes pointer and key input
func (s *surface) active() bool {
	return s.mute == nil || s.mute.AcceptsInput()
}

func (s *surface) setDisabled(disabled bool) {
	if s.pointer != nil {
		s.pointer.SetDisabled(disabled)
		s.touch.SetDisabled(disabled)
	}
}

func (s *surface) dispose() {
	if s.pointer != nil {
		s.pointer.Dispose()
		s.touch.Dispose()
	}
	if s.scroll != nil {
		s.scroll.Dispose()
	}
	if s.mute != nil {
		s.mute.Dispose()
	}
	if s.list != nil {
		s.list.SetHidden(true)
	}
}

// newListSurface attaches drag adapters and auto-scroll to a list. A dialog
// surface also gets a mute observer.
func (a *App) newListSurface(id string, source drag.Source, list *ui.ListView, dialog *ui.Dialog) *surface {
	s := &surface{id: id, source: source, list: list, dialog: dialog}
	subject := func() (input.Subject, bool) {
		return a.subject(s, s.pressed)
	}

	s.pointer = input.NewPointer(a.coord, input.PointerOptions{
		Source:      source,
		Origin:      id,
		Subject:     subject,
		OnDragStart: a.onDragStart,
		OnDragEnd:   a.onDragEnd,
	})
	s.touch = input.NewTouch(a.coord, a.sched, input.TouchOptions{
		Source:         source,
		Origin:         id,
		Subject:        subject,
		LongPressDelay: a.cfg.Drag.LongPressDelay(),
		MoveThreshold:  a.cfg.Drag.MoveThreshold,
		Debounce:       a.cfg.Drag.Debounce(),
		Haptics:        input.HapticsFunc(a.pulse),
		OnDragStart:    a.onDragStart,
		OnMove:         func(x, y float64) { a.dragMove(int(x), int(y)) },
		OnDragEnd:      a.onDragEnd,
	})
	s.scroll = autoscroll.New(a.sched, list, a.cfg.AutoScroll.Controller())

	if dialog != nil {
		a.attachMute(s, true)
	}
	return s
}

// attachMute gives a dialog its mute observer. Dialogs over the playlist mute
// even when they started the drag, so the rows behind them show through.
func (a *App) attachMute(s *surface, whenOrigin bool) {
	s.mute = mute.New(a.coord, mute.Options{
		SurfaceID:      s.id,
		MuteWhenOrigin: whenOrigin,
		Accepts:        s.accepts,
		OnChange: func(muted bool) {
			if s.id != a.originOf() {
				s.setDisabled(muted)
			}
		},
	})
}

// originOf returns the surface the active drag started in
func (a *App) originOf() string {
	if item, ok := a.coord.DraggedItem(); ok {
		return item.Origin
	}
	return ""
}

// pulse is the haptic feedback of a long-press: the terminal bell, when the
// drag.haptics setting allows it
func (a *App) pulse() {
	if a.cfg.Drag.Haptics && a.cfg.Get("haptics") != "false" {
		a.screen.Beep()
	}
}

func (a *App) pointerMode() string {
	if mode := a.cfg.Get("pointer_mode"); mode != "" {
		return mode
	}
	return a.cfg.Drag.PointerMode
}

func (a *App) longPress() bool {
	return a.pointerMode() == config.PointerLongPress
}

// subject resolves the row with id on s to the element a drag picks up
func (a *App) subject(s *surface, id string) (input.Subject, bool) {
	if id == "" {
		return input.Subject{}, false
	}
	switch {
	case s == a.main:
		tracks := a.drops.Tracks()
		for i, t := range tracks {
			if t.ID == id {
				return input.Subject{Track: t, Index: i}, true
			}
		}
	case s.catalog != nil:
		for i, r := range s.catalog.Results() {
			if r.Track.ID == id {
				query := r.Query
				if q := s.catalog.Query(); q != "" {
					query = q
				}
				return input.Subject{Track: r.Track, Index: i, Query: query, Label: r.Set}, true
			}
		}
	}
	return input.Subject{}, false
}

// selectedSubject is the keyboard adapter's element: the grabbed track
// while a grab is held, the cursor row otherwise
func (a *App) selectedSubject() (input.Subject, bool) {
	if a.grabbing() {
		return a.subject(a.main, a.grabID)
	}
	row, ok := a.list.SelectedRow()
	if !ok {
		return input.Subject{}, false
	}
	return a.subject(a.main, row.ID)
}

// openDialog puts s on top, replacing an open dialog with the same ID, and
// gives it the keyboard
func (a *App) openDialog(s *surface) {
	a.closeDialog(s.id)
	if s.catalog != nil {
		// one catalog panel at a time
		for _, id := range []string{SurfaceSearch, SurfaceUnselected} {
			a.closeDialog(id)
		}
	}
	a.dialogs = append(a.dialogs, s)
	a.layout()
	a.setFocus(s.id)
}

// closeDialog disposes the dialog with id, if open
func (a *App) closeDialog(id string) {
	for i, s := range a.dialogs {
		if s.id != id {
			continue
		}
		if a.pressing == s {
			a.pressing = nil
		}
		s.dispose()
		a.dialogs = append(a.dialogs[:i], a.dialogs[i+1:]...)
		if a.focus == id {
			next := SurfacePlaylist
			if len(a.dialogs) > 0 {
				next = a.dialogs[len(a.dialogs)-1].id
			}
			a.focus = ""
			a.setFocus(next)
		}
		return
	}
}

func (a *App) dialog(id string) *surface {
	for _, s := range a.dialogs {
		if s.id == id {
			return s
		}
	}
	return nil
}

func (a *App) focused() *surface {
	if a.focus == SurfacePlaylist {
		return a.main
	}
	return a.dialog(a.focus)
}

// setFocus moves the keyboard to surface id. The playlist's keyboard adapter
// follows the focus.
func (a *App) setFocus(id string) {
	if id == a.focus {
		return
	}
	if a.focus == SurfacePlaylist {
		a.keyboard.Blur()
	}
	a.focus = id
	if id == SurfacePlaylist {
		a.keyboard.Focus(a.list.Selected())
	}
}

// surfaceAt returns the topmost surface under the cell that takes input.
// Muted dialogs let the pointer through to what is behind them.
func (a *App) surfaceAt(x, y int) *surface {
	for i := len(a.dialogs) - 1; i >= 0; i-- {
		s := a.dialogs[i]
		if s.active() && s.dialog.Contains(x, y) {
			return s
		}
	}
	if a.list.Contains(x, y) {
		return a.main
	}
	return nil
}

// surfaceInColumn is like surfaceAt but ignores y, so a pointer above or
// below a list still scrolls it
func (a *App) surfaceInColumn(x int) *surface {
	for i := len(a.dialogs) - 1; i >= 0; i-- {
		s := a.dialogs[i]
		dx, _, dw, _ := s.dialog.Rect()
		if s.active() && x >= dx && x < dx+dw {
			return s
		}
	}
	return a.main
}

func (a *App) stopAutoScroll() {
	a.main.scroll.Stop()
	for _, s := range a.dialogs {
		if s.scroll != nil {
			s.scroll.Stop()
		}
	}
}

// layout places the playlist and dialogs for the current screen size. The
// page offset shifts everything up on terminals shorter than the layout.
func (a *App) layout() {
	w, h := a.screen.Size()
	a.page.Resize(h)
	vh := max(h, ui.MinPageHeight)
	top := -a.page.ScrollOffset()

	a.list.SetRect(0, top+1, w, vh-2)
	for _, s := range a.dialogs {
		switch {
		case s.list != nil:
			dw := min(max(w/2, 30), w)
			s.dialog.Place(w-dw, top+1, dw, vh-2)
		default:
			s.dialog.PlaceCentered(w, vh)
			x, y, dw, dh := s.dialog.Rect()
			s.dialog.Place(x, y+top, dw, dh)
		}
	}
}
