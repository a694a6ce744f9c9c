package input

import (
	"log"
	"slices"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/pstuifzand/tui-mixer/internal/drag"
	"github.com/pstuifzand/tui-mixer/internal/loop"
)

// KeyAction is a keyboard command understood by the grab adapter
type KeyAction int

const (
	KeyNone KeyAction = iota
	KeyGrab
	KeyUp
	KeyDown
	KeyCancel
)

func (a KeyAction) String() string {
	switch a {
	case KeyGrab:
		return "grab"
	case KeyUp:
		return "up"
	case KeyDown:
		return "down"
	case KeyCancel:
		return "cancel"
	default:
		return "none"
	}
}

// KeyMap maps key names ("space", "up", "K", "ctrl+g") to actions
type KeyMap struct {
	Grab   []string
	Up     []string
	Down   []string
	Cancel []string
}

// DefaultKeyMap returns the built-in bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Grab:   []string{"space"},
		Up:     []string{"up", "K"},
		Down:   []string{"down", "J"},
		Cancel: []string{"esc"},
	}
}

// Match returns the action bound to ev
func (m KeyMap) Match(ev *tcell.EventKey) KeyAction {
	name := KeyName(ev)
	if name == "" {
		return KeyNone
	}
	switch {
	case containsKey(m.Grab, name):
		return KeyGrab
	case containsKey(m.Up, name):
		return KeyUp
	case containsKey(m.Down, name):
		return KeyDown
	case containsKey(m.Cancel, name):
		return KeyCancel
	}
	return KeyNone
}

func containsKey(keys []string, name string) bool {
	return slices.ContainsFunc(keys, func(k string) bool {
		return normalizeKey(k) == name
	})
}

// KeyName returns the normalised name of a key event
func KeyName(ev *tcell.EventKey) string {
	if ev == nil {
		return ""
	}

	var primary string
	switch ev.Key() {
	case tcell.KeyRune:
		if ev.Rune() == ' ' {
			primary = "space"
		} else {
			primary = string(ev.Rune())
		}
	case tcell.KeyEnter:
		primary = "enter"
	case tcell.KeyEscape:
		primary = "esc"
	case tcell.KeyTab:
		primary = "tab"
	case tcell.KeyUp:
		primary = "up"
	case tcell.KeyDown:
		primary = "down"
	case tcell.KeyLeft:
		primary = "left"
	case tcell.KeyRight:
		primary = "right"
	case tcell.KeyHome:
		primary = "home"
	case tcell.KeyEnd:
		primary = "end"
	case tcell.KeyPgUp:
		primary = "pgup"
	case tcell.KeyPgDn:
		primary = "pgdn"
	default:
		if ev.Key() >= tcell.KeyCtrlA && ev.Key() <= tcell.KeyCtrlZ {
			return "ctrl+" + string(rune('a'+(ev.Key()-tcell.KeyCtrlA)))
		}
		return ""
	}

	if ev.Key() == tcell.KeyRune {
		if ev.Modifiers()&tcell.ModAlt != 0 {
			return "alt+" + primary
		}
		return primary
	}
	var mods []string
	if ev.Modifiers()&tcell.ModCtrl != 0 {
		mods = append(mods, "ctrl")
	}
	if ev.Modifiers()&tcell.ModAlt != 0 {
		mods = append(mods, "alt")
	}
	if ev.Modifiers()&tcell.ModShift != 0 {
		mods = append(mods, "shift")
	}
	return strings.Join(append(mods, primary), "+")
}

func normalizeKey(key string) string {
	key = strings.TrimSpace(key)
	if len([]rune(key)) == 1 {
		if key == " " {
			return "space"
		}
		return key
	}
	lower := strings.ToLower(key)
	switch lower {
	case "escape":
		return "esc"
	case "return":
		return "enter"
	case "pageup":
		return "pgup"
	case "pagedown":
		return "pgdn"
	}
	return lower
}

// KeyboardState is the state of the grab state machine
type KeyboardState int

const (
	KeyboardIdle KeyboardState = iota
	KeyboardFocused
	KeyboardGrabbed
)

func (s KeyboardState) String() string {
	switch s {
	case KeyboardIdle:
		return "idle"
	case KeyboardFocused:
		return "focused"
	case KeyboardGrabbed:
		return "grabbed"
	default:
		return "unknown"
	}
}

type keyboardEvent int

const (
	kbFocus keyboardEvent = iota
	kbBlur
	kbGrab
	kbRelease
	kbCancel
	kbLost
)

var keyboardTransitions = map[KeyboardState]map[keyboardEvent]KeyboardState{
	KeyboardIdle: {
		kbFocus: KeyboardFocused,
	},
	KeyboardFocused: {
		kbFocus: KeyboardFocused,
		kbBlur:  KeyboardIdle,
		kbGrab:  KeyboardGrabbed,
	},
	KeyboardGrabbed: {
		kbFocus:   KeyboardGrabbed,
		kbBlur:    KeyboardIdle,
		kbRelease: KeyboardFocused,
		kbCancel:  KeyboardFocused,
		kbLost:    KeyboardFocused,
	},
}

// Direction is the way a grabbed item should move
type Direction string

const (
	DirectionUp   Direction = "up"
	DirectionDown Direction = "down"
)

// KeyboardSession is the per-focused-item keyboard state
type KeyboardSession struct {
	IsActive      bool
	IsDragging    bool
	SelectedIndex int
}

// KeyboardOptions configures a Keyboard adapter
type KeyboardOptions struct {
	Source   drag.Source
	Origin   string
	Disabled bool
	Subject  SubjectFunc
	Keys     KeyMap

	OnDragStart func(item drag.Item)
	OnMove      func(dir Direction)
	OnDragEnd   func(success bool)
	Logger      *log.Logger
}

// Keyboard turns grab, move and cancel keys into drag operations for the
// focused item. Turning a direction into an index change is up to OnMove.
type Keyboard struct {
	coord *drag.Coordinator
	opts  KeyboardOptions

	state   KeyboardState
	session KeyboardSession
	gen     uint64
	scope   loop.Scope
}

// NewKeyboard creates a keyboard adapter
func NewKeyboard(coord *drag.Coordinator, opts KeyboardOptions) *Keyboard {
	if opts.Logger == nil {
		opts.Logger = defaultLogger()
	}
	if opts.Keys.Grab == nil && opts.Keys.Up == nil && opts.Keys.Down == nil && opts.Keys.Cancel == nil {
		opts.Keys = DefaultKeyMap()
	}
	k := &Keyboard{coord: coord, opts: opts}
	k.scope.Add(k.release)
	return k
}

// SetDisabled enables or disables the adapter
func (k *Keyboard) SetDisabled(disabled bool) {
	k.opts.Disabled = disabled
}

// State returns the state machine's current state
func (k *Keyboard) State() KeyboardState {
	k.sync()
	return k.state
}

// Session returns the keyboard session
func (k *Keyboard) Session() KeyboardSession {
	k.sync()
	return k.session
}

// Focus marks the item at index as focused
func (k *Keyboard) Focus(index int) {
	if k.scope.Disposed() {
		return
	}
	k.fire(kbFocus)
	k.session.IsActive = true
	k.session.SelectedIndex = index
}

// SetIndex updates the focused index after the list changed
func (k *Keyboard) SetIndex(index int) {
	k.session.SelectedIndex = index
}

// Blur removes focus. A grab in progress is cancelled.
func (k *Keyboard) Blur() {
	k.sync()
	if k.state == KeyboardGrabbed {
		k.cancel()
	}
	k.fire(kbBlur)
	k.session = KeyboardSession{}
}

// HandleKey processes a key event. It reports whether the key was consumed.
func (k *Keyboard) HandleKey(ev *tcell.EventKey) bool {
	return k.HandleAction(k.opts.Keys.Match(ev))
}

// HandleAction processes an already matched action
func (k *Keyboard) HandleAction(action KeyAction) bool {
	if k.opts.Disabled || k.scope.Disposed() || action == KeyNone {
		return false
	}
	k.sync()
	if k.state == KeyboardIdle {
		return false
	}

	switch action {
	case KeyGrab:
		if k.isCurrentlyDragged() {
			return k.releaseGrab()
		}
		return k.grab()

	case KeyUp, KeyDown:
		if k.state != KeyboardGrabbed || !k.isCurrentlyDragged() {
			return false
		}
		dir := DirectionDown
		if action == KeyUp {
			dir = DirectionUp
		}
		drag.Safely(k.opts.Logger, "keyboard move", func() {
			if k.opts.OnMove != nil {
				k.opts.OnMove(dir)
			}
		})
		return true

	case KeyCancel:
		if k.state != KeyboardGrabbed {
			return false
		}
		k.cancel()
		return true
	}
	return false
}

func (k *Keyboard) grab() bool {
	if k.opts.Subject == nil {
		return false
	}
	subject, ok := k.opts.Subject()
	if !ok {
		return false
	}
	item := drag.NewItem(k.opts.Origin, BuildPayload(k.opts.Source, subject))
	if !k.coord.StartDrag(item) {
		return false
	}
	k.gen = k.coord.Generation()
	k.fire(kbGrab)
	k.session.IsDragging = true

	item, _ = k.coord.DraggedItem()
	drag.Safely(k.opts.Logger, "keyboard drag start", func() {
		if k.opts.OnDragStart != nil {
			k.opts.OnDragStart(item)
		}
	})
	return true
}

func (k *Keyboard) releaseGrab() bool {
	k.coord.EndDrag()
	k.finish(kbRelease, true)
	return true
}

func (k *Keyboard) cancel() {
	if k.owns() {
		k.coord.CancelDrag()
	}
	k.finish(kbCancel, false)
}

func (k *Keyboard) finish(ev keyboardEvent, success bool) {
	k.gen = 0
	k.fire(ev)
	k.session.IsDragging = false
	drag.Safely(k.opts.Logger, "keyboard drag end", func() {
		if k.opts.OnDragEnd != nil {
			k.opts.OnDragEnd(success)
		}
	})
}

// sync notices a grab that was ended elsewhere
func (k *Keyboard) sync() {
	if k.state == KeyboardGrabbed && !k.owns() {
		k.opts.Logger.Printf("keyboard grab %d lost", k.gen)
		k.gen = 0
		k.fire(kbLost)
		k.session.IsDragging = false
	}
}

func (k *Keyboard) fire(ev keyboardEvent) bool {
	next, ok := keyboardTransitions[k.state][ev]
	if !ok {
		return false
	}
	k.state = next
	return true
}

func (k *Keyboard) isCurrentlyDragged() bool {
	if k.opts.Subject == nil {
		return false
	}
	subject, ok := k.opts.Subject()
	if !ok {
		return false
	}
	return k.coord.IsCurrentlyDragged(subject.Track.ID)
}

func (k *Keyboard) owns() bool {
	return k.gen != 0 && k.coord.IsDragging() && k.coord.Generation() == k.gen
}

func (k *Keyboard) release() {
	if k.owns() {
		k.opts.Logger.Printf("keyboard adapter disposed mid-grab, cancelling")
		k.cancel()
	}
	k.gen = 0
	k.state = KeyboardIdle
	k.session = KeyboardSession{}
}

// Dispose releases the adapter
func (k *Keyboard) Dispose() {
	k.scope.Dispose()
}
