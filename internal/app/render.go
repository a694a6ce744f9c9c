package app

import (
	"fmt"
	"time"

	"github.com/pstuifzand/tui-mixer/internal/feedback"
	"github.com/pstuifzand/tui-mixer/internal/input"
	"github.com/pstuifzand/tui-mixer/internal/ui"
)

// render renders the current state to the screen
func (a *App) render() {
	a.screen.Clear()
	a.layout()

	width, height := a.screen.Size()
	vh := max(height, ui.MinPageHeight)
	top := -a.page.ScrollOffset()

	a.renderHeader(width, top)

	draggedID := ""
	if item, ok := a.coord.DraggedItem(); ok {
		draggedID = item.ID
	}
	if a.list.Len() == 0 && draggedID == "" {
		a.screen.Fill(0, top+1, width, vh-2, a.screen.ListStyle())
		ui.RenderSplash(a.screen, 0, top+1, width, vh-2)
	} else {
		a.list.Render(a.screen, ui.PlaylistStyles(a.screen), ui.ListState{
			Focused:   a.focus == SurfacePlaylist,
			DraggedID: draggedID,
			DropIndex: a.hoverIndex(),
		})
	}

	for _, s := range a.dialogs {
		if s.mute != nil {
			s.dialog.Opacity = s.mute.Opacity()
		}
		count := ""
		if s.catalog != nil {
			count = s.catalog.Count()
		}
		s.dialog.Render(a.screen, ui.ListState{
			Focused:   a.focus == s.id,
			DraggedID: draggedID,
			DropIndex: -1,
		}, count)
	}

	if a.command.IsActive() {
		a.command.Render(a.screen, top+vh-1)
	} else {
		a.renderStatus(width, top+vh-1)
	}

	// Draw help overlay if visible
	a.help.Render(a.screen)

	a.screen.Show()
}

// renderHeader draws the title, track count and total length. While a drag
// is active the right side says what is being dragged.
func (a *App) renderHeader(width, y int) {
	style := a.screen.HeaderStyle()
	a.screen.Fill(0, y, width, 1, style)

	tracks := a.drops.Tracks()
	var total time.Duration
	for _, t := range tracks {
		total += t.Duration
	}
	left := fmt.Sprintf(" %s  %d tracks", a.playlist.Title, len(tracks))
	if total > 0 {
		left += " · " + formatTotal(total)
	}
	if a.store.ReadOnly {
		left += "  [read-only]"
	}

	right := ""
	if a.page.Marker(feedback.MarkerDragActive) {
		if item, ok := a.coord.DraggedItem(); ok {
			right = fmt.Sprintf(" %s: %s ", item.Source(), item.Payload.DraggedTrack().Label())
		}
	}
	if right == "" {
		a.screen.DrawStringLimited(0, y, left, width, style)
		return
	}
	rw := min(ui.StringWidth(right), width/2)
	a.screen.DrawStringLimited(0, y, left, width-rw-1, style)
	a.screen.DrawStringLimited(width-rw, y, right, rw, a.screen.StatusDragStyle())
}

// renderStatus draws the mode indicator, the current message and the
// modified flag
func (a *App) renderStatus(width, y int) {
	mode, modeStyle := " NORMAL ", a.screen.StatusModeStyle()
	switch {
	case a.keyboard.State() == input.KeyboardGrabbed:
		mode, modeStyle = " GRAB ", a.screen.StatusDragStyle()
	case a.coord.IsDragging():
		mode, modeStyle = " DRAG ", a.screen.StatusDragStyle()
	case a.focus != SurfacePlaylist:
		mode = " " + a.focusTitle() + " "
	}
	col := a.screen.DrawString(0, y, mode, modeStyle)

	right := ""
	if a.dirty {
		right = "(modified) "
	}
	avail := width - col
	rw := ui.StringWidth(right)
	if rw+2 > avail {
		right, rw = "", 0
	}
	msg := ui.PadStringToWidth(ui.TruncateToWidthWithEllipsis(" "+a.status.Current(), avail-rw), avail-rw)
	a.screen.DrawString(col, y, msg, a.screen.StatusMessageStyle())
	a.screen.DrawString(width-rw, y, right, a.screen.StatusModifiedStyle())
}

func (a *App) focusTitle() string {
	switch a.focus {
	case SurfaceSearch:
		return "SEARCH"
	case SurfaceUnselected:
		return "UNSELECTED"
	case SurfaceBackups:
		return "BACKUPS"
	default:
		return "DIALOG"
	}
}

// formatTotal formats a playlist length as h:mm:ss or m:ss
func formatTotal(d time.Duration) string {
	secs := int(d.Round(time.Second) / time.Second)
	if secs >= 3600 {
		return fmt.Sprintf("%d:%02d:%02d", secs/3600, secs/60%60, secs%60)
	}
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}
