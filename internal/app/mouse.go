package app

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/pstuifzand/tui-mixer/internal/catalog"
	"github.com/pstuifzand/tui-mixer/internal/drag"
	"github.com/pstuifzand/tui-mixer/internal/drop"
	"github.com/pstuifzand/tui-mixer/internal/input"
	"github.com/pstuifzand/tui-mixer/internal/model"
)

const wheelRows = 3

// handleMouse turns mouse reports into presses, drags and drops
func (a *App) handleMouse(ev *tcell.EventMouse) {
	a.gesture.Threshold = a.cfg.Drag.DragThreshold
	me := a.gesture.Handle(ev)

	switch me.Action {
	case input.MouseWheelUp:
		a.wheel(me.X, me.Y, -1)
	case input.MouseWheelDown:
		a.wheel(me.X, me.Y, 1)
	case input.MousePress:
		a.press(me.X, me.Y)
	case input.MouseMove:
		a.pressMove(me.X, me.Y, false)
	case input.MouseDragStart:
		a.pointerDragStart(me.X, me.Y)
	case input.MouseDragMove:
		a.pressMove(me.X, me.Y, true)
	case input.MouseDrop, input.MouseClick:
		a.release(me.X, me.Y)
	}
}

// wheel scrolls the list under the pointer, or the page elsewhere
func (a *App) wheel(x, y, dir int) {
	if s := a.surfaceAt(x, y); s != nil && s.list != nil {
		s.list.ScrollBy(float64(dir * wheelRows))
		return
	}
	a.page.ScrollBy(dir)
}

// press selects the row under the pointer and arms the surface's adapters
func (a *App) press(x, y int) {
	s := a.surfaceAt(x, y)
	if s == nil {
		return
	}
	a.setFocus(s.id)

	if s.dialog != nil && s.dialog.InputContains(x, y) {
		if a.page.TextSelection() {
			s.dialog.ClickInput(x)
		}
		return
	}
	if s.list == nil {
		return
	}
	if s == a.main && a.grabbing() {
		// the cursor stays on the grabbed track
		return
	}
	i, ok := s.list.RowAt(x, y)
	if !ok {
		return
	}
	s.list.Select(i)
	if s == a.main {
		a.keyboard.SetIndex(i)
	}
	if !s.draggable() || a.coord.IsDragging() {
		return
	}

	s.pressed = s.list.Rows()[i].ID
	a.pressing = s
	if a.longPress() {
		s.touch.Start(float64(x), float64(y))
	}
}

// pressMove follows the held button. dragging is true once the gesture moved
// past the drag threshold.
func (a *App) pressMove(x, y int, dragging bool) {
	s := a.pressing
	if s == nil {
		return
	}
	if a.longPress() {
		// the touch adapter reports moves of an active drag through OnMove
		s.touch.Move(float64(x), float64(y))
		return
	}
	if dragging && s.pointer.Owns() {
		a.dragMove(x, y)
	}
}

func (a *App) pointerDragStart(x, y int) {
	s := a.pressing
	if s == nil {
		return
	}
	if a.longPress() {
		s.touch.Move(float64(x), float64(y))
		return
	}
	if s.pointer.DragStart() {
		a.dragMove(x, y)
	}
}

// release ends the gesture. A drag is dropped where the button came up.
func (a *App) release(x, y int) {
	s := a.pressing
	a.pressing = nil
	if s == nil {
		return
	}
	defer func() { s.pressed = "" }()
	a.stopAutoScroll()

	if a.longPress() {
		if s.touch.State() == input.TouchLongPress {
			a.dropAt(x, y)
		}
		s.touch.End()
		return
	}
	if s.pointer.Owns() {
		s.pointer.DragEnd(a.dropAt(x, y))
	}
}

// cancelPointerDrag abandons the mouse drag in progress
func (a *App) cancelPointerDrag() {
	s := a.pressing
	a.pressing = nil
	a.gesture.Reset()
	a.stopAutoScroll()
	if s == nil {
		return
	}
	s.pressed = ""
	if a.longPress() {
		s.touch.Cancel()
		return
	}
	if a.coord.CancelDrag() {
		a.SetStatus("Drag cancelled")
	}
}

// dragMove tracks the pointer during a drag and drives auto-scroll of the
// list that would take the drop
func (a *App) dragMove(x, y int) {
	a.hover = hover{active: true, x: x, y: y}
	item, ok := a.coord.DraggedItem()
	if !ok {
		return
	}
	target := a.surfaceInColumn(x)
	for _, s := range append([]*surface{a.main}, a.dialogs...) {
		if s.scroll == nil {
			continue
		}
		if s == target && s.accepts(item) {
			s.scroll.Update(float64(y))
		} else {
			s.scroll.Stop()
		}
	}
}

// hoverIndex is the insertion point the drop marker shows, or -1
func (a *App) hoverIndex() int {
	item, ok := a.coord.DraggedItem()
	if !ok || !a.hover.active || a.surfaceAt(a.hover.x, a.hover.y) != a.main {
		return -1
	}
	index := drop.DropIndex(float64(a.hover.y), a.list.RowBoxes())
	if p, ok := item.Payload.(drag.PlaylistPayload); ok {
		from := model.IndexOf(a.drops.Tracks(), p.Track.ID)
		if index == from || index == from+1 {
			return -1
		}
	}
	return index
}

// dropAt applies the active drag to whatever is under the cell
func (a *App) dropAt(x, y int) input.DropEffect {
	item, ok := a.coord.DraggedItem()
	if !ok {
		return input.EffectNone
	}
	target := a.surfaceAt(x, y)
	if target == nil || !target.accepts(item) {
		a.logger.Printf("drop of %s at (%d,%d) has no target", item.ID, x, y)
		return input.EffectNone
	}

	if target == a.main {
		return a.dropOnPlaylist(item, y)
	}
	if p, ok := item.Payload.(drag.PlaylistPayload); ok && target.id == SurfaceUnselected {
		return a.unselect(p.Track.ID)
	}
	return input.EffectNone
}

func (a *App) dropOnPlaylist(item drag.Item, y int) input.DropEffect {
	index := drop.DropIndex(float64(y), a.list.RowBoxes())

	switch p := item.Payload.(type) {
	case drag.PlaylistPayload:
		if !a.drops.DropAt(index) {
			return input.EffectNone
		}
		a.list.SelectID(p.Track.ID)
		a.SetStatus("Moved " + p.Track.Label())
		return input.EffectMove

	case drag.SearchPayload:
		a.insertExternal(index, p.Track)
		return input.EffectCopy

	case drag.UnselectedPayload:
		a.insertExternal(index, p.Track)
		a.catalog.Remove(catalog.KindUnselected, p.Track.ID)
		a.refreshCatalogDialogs()
		return input.EffectMove
	}
	return input.EffectNone
}

// insertExternal adds a track from outside the playlist. A track that is
// already in the playlist is added as a copy.
func (a *App) insertExternal(index int, track model.Track) {
	if model.IndexOf(a.drops.Tracks(), track.ID) >= 0 {
		track = track.Copy()
	}
	a.drops.Insert(index, track)
	a.list.SelectID(track.ID)
	a.SetStatus(fmt.Sprintf("Added %s at %d", track.Label(), index+1))
}

// unselect moves a playlist track into the saved unselected set
func (a *App) unselect(id string) input.DropEffect {
	track, ok := a.drops.Remove(model.IndexOf(a.drops.Tracks(), id))
	if !ok {
		return input.EffectNone
	}
	a.catalog.Add(catalog.KindUnselected, savedSet, "", []model.Track{track})
	a.refreshCatalogDialogs()
	a.SetStatus("Unselected " + track.Label())
	return input.EffectMove
}

func (a *App) onDragStart(item drag.Item) {
	a.logger.Printf("drag %s from %s (%s)", item.ID, item.Origin, item.Source())
	a.SetStatus("Dragging " + item.Payload.DraggedTrack().Label())
}

func (a *App) onDragEnd(success bool) {
	if !success {
		a.SetStatus("Nothing dropped")
	}
}

// onDragState follows every drag transition
func (a *App) onDragState(s drag.State) {
	a.refreshRows()
	if !s.IsDragging {
		a.hover = hover{}
		a.stopAutoScroll()
	}
}

// onGrab starts a keyboard drag of the cursor row
func (a *App) onGrab(item drag.Item) {
	a.grabID = item.ID
	a.grabFrom = model.IndexOf(a.drops.Tracks(), item.ID)
	a.SetStatus("Grabbed " + item.Payload.DraggedTrack().Label() + " (up/down to move, space to drop, esc to cancel)")
}

// grabbing reports whether a keyboard grab holds a playlist track
func (a *App) grabbing() bool {
	return a.grabID != "" && a.keyboard.State() == input.KeyboardGrabbed
}

// onKeyboardMove moves the grabbed row one place and keeps it in view
func (a *App) onKeyboardMove(dir input.Direction) {
	from := model.IndexOf(a.drops.Tracks(), a.grabID)
	if from < 0 {
		return
	}
	delta := 1
	if dir == input.DirectionUp {
		delta = -1
	}
	to := a.drops.Shift(from, delta)
	a.list.Select(to)
	a.keyboard.SetIndex(to)
	// runs after the drop coordinator has restored the offset
	a.sched.RequestFrame(func() { a.list.EnsureVisible(to) })
}

// onGrabEnd drops the grabbed row. A cancelled grab puts it back.
func (a *App) onGrabEnd(success bool) {
	id, from := a.grabID, a.grabFrom
	a.grabID, a.grabFrom = "", -1
	if success {
		a.SetStatus("Dropped")
		return
	}
	current := model.IndexOf(a.drops.Tracks(), id)
	if current < 0 || from < 0 {
		return
	}
	to := current
	if current != from {
		to = a.drops.Shift(current, from-current)
	}
	a.list.Select(to)
	a.keyboard.SetIndex(to)
	a.SetStatus("Move cancelled")
}
