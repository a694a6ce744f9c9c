package app

import (
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/pstuifzand/tui-mixer/internal/catalog"
	"github.com/pstuifzand/tui-mixer/internal/input"
)

// KeyBinding represents a key binding with its description and handler
type KeyBinding struct {
	Keys        []string // key names as input.KeyName reports them
	Description string
	Handler     func(*App)

	// DuringGrab bindings still run while a keyboard grab holds a track
	DuringGrab bool
}

// GetKeys returns the keys of this keybinding
func (kb *KeyBinding) GetKeys() string {
	return strings.Join(kb.Keys, ", ")
}

// GetDescription returns the description of this keybinding
func (kb *KeyBinding) GetDescription() string {
	return kb.Description
}

// InitializeKeybindings sets up all the key bindings of the playlist
func (a *App) InitializeKeybindings() []KeyBinding {
	return []KeyBinding{
		{
			Keys:        []string{"j", "down"},
			Description: "Move down",
			Handler: func(app *App) {
				app.list.MoveSelection(1)
			},
		},
		{
			Keys:        []string{"k", "up"},
			Description: "Move up",
			Handler: func(app *App) {
				app.list.MoveSelection(-1)
			},
		},
		{
			Keys:        []string{"g", "home"},
			Description: "First track",
			Handler: func(app *App) {
				app.list.Select(0)
			},
		},
		{
			Keys:        []string{"G", "end"},
			Description: "Last track",
			Handler: func(app *App) {
				app.list.Select(app.list.Len() - 1)
			},
		},
		{
			Keys:        []string{"pgdn", "ctrl+f"},
			Description: "Page down",
			Handler: func(app *App) {
				app.list.MoveSelection(app.pageRows())
			},
		},
		{
			Keys:        []string{"pgup", "ctrl+b"},
			Description: "Page up",
			Handler: func(app *App) {
				app.list.MoveSelection(-app.pageRows())
			},
		},
		{
			Keys:        []string{"space"},
			Description: "Grab / drop the track (up/down move it, esc cancels)",
			Handler: func(app *App) {
				app.keyboard.HandleAction(input.KeyGrab)
			},
		},
		{
			Keys:        []string{"J"},
			Description: "Move track down",
			Handler: func(app *App) {
				app.shiftSelected(1)
			},
		},
		{
			Keys:        []string{"K"},
			Description: "Move track up",
			Handler: func(app *App) {
				app.shiftSelected(-1)
			},
		},
		{
			Keys:        []string{"d"},
			Description: "Move track to unselected",
			Handler: func(app *App) {
				if row, ok := app.list.SelectedRow(); ok {
					app.unselect(row.ID)
				}
			},
		},
		{
			Keys:        []string{"/"},
			Description: "Search the catalog",
			Handler: func(app *App) {
				app.openCatalog(catalog.KindSearch)
			},
		},
		{
			Keys:        []string{"u"},
			Description: "Browse unselected tracks",
			Handler: func(app *App) {
				app.openCatalog(catalog.KindUnselected)
			},
		},
		{
			Keys:        []string{"i", "enter"},
			Description: "Track info",
			Handler: func(app *App) {
				app.openInfo()
			},
		},
		{
			Keys:        []string{"tab"},
			Description: "Focus the open dialog",
			Handler: func(app *App) {
				if len(app.dialogs) > 0 {
					app.setFocus(app.dialogs[len(app.dialogs)-1].id)
				}
			},
		},
		{
			Keys:        []string{"ctrl+s"},
			Description: "Save",
			DuringGrab:  true,
			Handler: func(app *App) {
				if err := app.Save(); err != nil {
					app.SetStatus("Failed to save: " + err.Error())
				} else {
					app.SetStatus("Saved")
				}
			},
		},
		{
			Keys:        []string{":"},
			Description: "Command mode",
			Handler: func(app *App) {
				app.command.Start()
			},
		},
		{
			Keys:        []string{"?"},
			Description: "Help",
			DuringGrab:  true,
			Handler: func(app *App) {
				app.help.Toggle()
			},
		},
	}
}

// handleKeypress handles a key while the playlist has the focus. The
// keyboard drag adapter sees it first.
func (a *App) handleKeypress(ev *tcell.EventKey) {
	if a.keyboard.HandleKey(ev) {
		return
	}
	name := input.KeyName(ev)
	if name == "" {
		return
	}
	for i := range a.keys {
		for _, k := range a.keys[i].Keys {
			if k == name {
				if a.grabbing() && !a.keys[i].DuringGrab {
					a.SetStatus("Drop the track with space or cancel with esc first")
					return
				}
				a.keys[i].Handler(a)
				a.keyboard.SetIndex(a.list.Selected())
				return
			}
		}
	}
}

func (a *App) pageRows() int {
	r, ok := a.list.Bounds()
	if !ok {
		return 1
	}
	return max(int(r.H)-1, 1)
}

// shiftSelected moves the cursor track without a grab
func (a *App) shiftSelected(delta int) {
	from := a.list.Selected()
	if from < 0 {
		return
	}
	to := a.drops.Shift(from, delta)
	a.list.Select(to)
	a.sched.RequestFrame(func() { a.list.EnsureVisible(to) })
}
