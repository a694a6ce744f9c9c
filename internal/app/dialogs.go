package app

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/pstuifzand/tui-mixer/internal/catalog"
	"github.com/pstuifzand/tui-mixer/internal/drag"
	"github.com/pstuifzand/tui-mixer/internal/model"
	"github.com/pstuifzand/tui-mixer/internal/ui"
)

// openCatalog opens the search dialog or the unselected tracks browser
func (a *App) openCatalog(kind catalog.Kind) {
	id, source := SurfaceSearch, drag.SourceSearch
	if kind == catalog.KindUnselected {
		id, source = SurfaceUnselected, drag.SourceUnselected
	}
	d := ui.NewCatalogDialog(id, kind, a.catalog, a.searchHistory)
	s := a.newListSurface(id, source, d.List, d.Dialog)
	s.catalog = d
	a.openDialog(s)
	if d.List.Len() == 0 && a.catalog.Len(kind) == 0 {
		a.SetStatus("Nothing in the catalog yet; push tracks with tmix add")
	}
}

// openTextDialog shows lines in a centered dialog
func (a *App) openTextDialog(id, title string, lines []string) {
	s := &surface{id: id, dialog: ui.NewTextDialog(id, title, lines)}
	a.attachMute(s, false)
	a.openDialog(s)
}

// openInfo shows the details of the cursor track
func (a *App) openInfo() {
	row, ok := a.list.SelectedRow()
	if !ok {
		a.SetStatus("No track selected")
		return
	}
	tracks := a.drops.Tracks()
	i := model.IndexOf(tracks, row.ID)
	if i < 0 {
		return
	}
	t := tracks[i]
	lines := []string{
		"Title:    " + t.Title,
		"Artist:   " + t.Artist,
		"Album:    " + t.Album,
		"Duration: " + t.DurationString(),
		fmt.Sprintf("Position: %d of %d", i+1, len(tracks)),
		"ID:       " + t.ID,
	}
	a.openTextDialog(SurfaceInfo, "Track", lines)
}

// openMessages lists recent status messages, newest first
func (a *App) openMessages() {
	var lines []string
	for _, m := range a.status.History() {
		lines = append(lines, m.Timestamp.Format("15:04:05")+"  "+m.Text)
	}
	if len(lines) == 0 {
		lines = []string{"No messages"}
	}
	a.openTextDialog(SurfaceMessages, "Messages", lines)
}

// showRecovery is the recovery boundary's user-visible side: the drag has
// already been cancelled, the dialog offers a retry
func (a *App) showRecovery(err error) {
	a.logger.Printf("recovered: %v", err)
	a.pressing = nil
	a.gesture.Reset()
	a.stopAutoScroll()

	msg := err.Error()
	var pe *drag.PanicError
	if errors.As(err, &pe) {
		msg = fmt.Sprintf("%s: %v", pe.Name, pe.Value)
	}
	a.openTextDialog(SurfaceRecovery, "Something went wrong", []string{
		msg,
		"",
		"Any drag in progress was cancelled.",
		"r retry · esc dismiss",
	})
}

func (a *App) handleRecoveryKey(ev *tcell.EventKey) {
	switch {
	case ev.Rune() == 'r':
		a.closeDialog(SurfaceRecovery)
		a.retry()
	case ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyEnter:
		a.closeDialog(SurfaceRecovery)
	}
}

// retry rebuilds everything derived from the playlist and repaints from
// scratch
func (a *App) retry() {
	a.hover = hover{}
	a.refreshRows()
	a.refreshCatalogDialogs()
	a.layout()
	a.screen.Sync()
	a.SetStatus("Recovered")
}

// refreshCatalogDialogs re-runs the query of open catalog dialogs after the
// catalog changed
func (a *App) refreshCatalogDialogs() {
	for _, s := range a.dialogs {
		if s.catalog != nil {
			s.catalog.Refresh()
		}
	}
}

// handleDialogKey handles keys while a dialog has the focus
func (a *App) handleDialogKey(s *surface, ev *tcell.EventKey) {
	if ev.Key() == tcell.KeyTab {
		a.setFocus(SurfacePlaylist)
		return
	}
	if ev.Key() == tcell.KeyEscape {
		if s.catalog != nil {
			s.catalog.CommitQuery()
		}
		a.closeDialog(s.id)
		return
	}
	if !s.active() {
		return
	}

	switch {
	case s.catalog != nil:
		if ev.Key() == tcell.KeyEnter {
			a.addFromCatalog(s)
			return
		}
		s.catalog.HandleKey(ev)

	case s.backups != nil:
		switch {
		case ev.Key() == tcell.KeyEnter:
			if b, ok := s.backups.Selected(); ok {
				a.closeDialog(s.id)
				a.loadBackupFile(b)
			}
		case ev.Key() == tcell.KeyUp || ev.Rune() == 'k':
			s.list.MoveSelection(-1)
		case ev.Key() == tcell.KeyDown || ev.Rune() == 'j':
			s.list.MoveSelection(1)
		case ev.Rune() == 'q':
			a.closeDialog(s.id)
		}

	default:
		if ev.Key() == tcell.KeyEnter || ev.Rune() == 'q' {
			a.closeDialog(s.id)
		}
	}
}

// addFromCatalog inserts the dialog's cursor track below the playlist's
// cursor. It is the keyboard path for what dragging does with the mouse.
func (a *App) addFromCatalog(s *surface) {
	r, ok := s.catalog.Selected()
	if !ok {
		return
	}
	s.catalog.CommitQuery()
	index := a.list.Selected() + 1
	a.insertExternal(index, r.Track)
	if s.catalog.Kind == catalog.KindUnselected {
		a.catalog.Remove(catalog.KindUnselected, r.Track.ID)
		a.refreshCatalogDialogs()
	}
}

// messagesSummary is the one-line form of the status history used in logs
func messagesSummary(msgs []ui.Message) string {
	texts := make([]string, len(msgs))
	for i, m := range msgs {
		texts[i] = m.Text
	}
	return strings.Join(texts, " | ")
}
