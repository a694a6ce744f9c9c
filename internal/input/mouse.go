package input

import (
	"github.com/gdamore/tcell/v2"
)

// MouseAction is what a raw mouse report meant
type MouseAction int

const (
	MouseNone MouseAction = iota
	MousePress
	MouseMove      // button held, below the drag threshold
	MouseDragStart // button held and moved past the drag threshold
	MouseDragMove
	MouseDrop // release after a drag
	MouseClick
	MouseWheelUp
	MouseWheelDown
)

func (a MouseAction) String() string {
	switch a {
	case MousePress:
		return "press"
	case MouseMove:
		return "move"
	case MouseDragStart:
		return "drag-start"
	case MouseDragMove:
		return "drag-move"
	case MouseDrop:
		return "drop"
	case MouseClick:
		return "click"
	case MouseWheelUp:
		return "wheel-up"
	case MouseWheelDown:
		return "wheel-down"
	default:
		return "none"
	}
}

// MouseEvent is a recognised mouse action with its coordinates
type MouseEvent struct {
	Action MouseAction
	X, Y   int
	StartX int
	StartY int
}

// DefaultDragThreshold is the distance in cells (|dx|+|dy|) a held button must
// travel before the gesture counts as a drag
const DefaultDragThreshold = 1

// MouseGesture turns tcell's stream of button-state reports into press, drag
// and drop actions. Terminals have no native drag and drop, so this is where
// the pointer adapter's drag-start and drag-end signals come from.
type MouseGesture struct {
	Threshold int

	pressed  bool
	dragging bool
	startX   int
	startY   int
	lastX    int
	lastY    int
}

// Handle interprets one mouse report
func (g *MouseGesture) Handle(ev *tcell.EventMouse) MouseEvent {
	x, y := ev.Position()
	buttons := ev.Buttons()

	switch {
	case buttons&tcell.WheelUp != 0:
		return MouseEvent{Action: MouseWheelUp, X: x, Y: y}
	case buttons&tcell.WheelDown != 0:
		return MouseEvent{Action: MouseWheelDown, X: x, Y: y}
	}

	held := buttons&tcell.Button1 != 0
	switch {
	case held && !g.pressed:
		g.pressed = true
		g.dragging = false
		g.startX, g.startY = x, y
		g.lastX, g.lastY = x, y
		return g.event(MousePress, x, y)

	case held:
		moved := x != g.lastX || y != g.lastY
		g.lastX, g.lastY = x, y
		if g.dragging {
			if !moved {
				return MouseEvent{}
			}
			return g.event(MouseDragMove, x, y)
		}
		if abs(x-g.startX)+abs(y-g.startY) >= g.threshold() {
			g.dragging = true
			return g.event(MouseDragStart, x, y)
		}
		if moved {
			return g.event(MouseMove, x, y)
		}
		return MouseEvent{}

	case g.pressed:
		g.pressed = false
		wasDragging := g.dragging
		g.dragging = false
		if wasDragging {
			return g.event(MouseDrop, x, y)
		}
		return g.event(MouseClick, x, y)
	}

	return MouseEvent{}
}

// Reset forgets a gesture in progress
func (g *MouseGesture) Reset() {
	g.pressed = false
	g.dragging = false
}

// Pressed reports whether the button is held
func (g *MouseGesture) Pressed() bool {
	return g.pressed
}

// Dragging reports whether the held button passed the drag threshold
func (g *MouseGesture) Dragging() bool {
	return g.dragging
}

func (g *MouseGesture) event(a MouseAction, x, y int) MouseEvent {
	return MouseEvent{Action: a, X: x, Y: y, StartX: g.startX, StartY: g.startY}
}

func (g *MouseGesture) threshold() int {
	if g.Threshold <= 0 {
		return DefaultDragThreshold
	}
	return g.Threshold
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
