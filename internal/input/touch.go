package input

import (
	"log"
	"math"
	"time"

	"github.com/pstuifzand/tui-mixer/internal/drag"
	"github.com/pstuifzand/tui-mixer/internal/loop"
)

// TouchState is the state of the long-press recogniser
type TouchState int

const (
	TouchIdle TouchState = iota
	TouchPending
	TouchLongPress
	TouchCancelled
)

func (s TouchState) String() string {
	switch s {
	case TouchIdle:
		return "idle"
	case TouchPending:
		return "pending"
	case TouchLongPress:
		return "long-press"
	case TouchCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

type touchEvent int

const (
	touchStart touchEvent = iota
	touchMovedAway
	touchTimer
	touchEnd
	touchCancel
	touchRejected
)

// touchTransitions lists every legal transition. Events missing for a state
// are ignored.
var touchTransitions = map[TouchState]map[touchEvent]TouchState{
	TouchIdle: {
		touchStart: TouchPending,
	},
	TouchPending: {
		touchMovedAway: TouchCancelled,
		touchTimer:     TouchLongPress,
		touchEnd:       TouchIdle,
		touchCancel:    TouchIdle,
	},
	TouchLongPress: {
		touchEnd:      TouchIdle,
		touchCancel:   TouchIdle,
		touchRejected: TouchCancelled,
	},
	TouchCancelled: {
		touchEnd:    TouchIdle,
		touchCancel: TouchIdle,
	},
}

// Touch defaults
const (
	DefaultLongPressDelay = 300 * time.Millisecond
	DefaultMoveThreshold  = 15.0
	DefaultTouchDebounce  = 100 * time.Millisecond
)

// TouchSession is the per-gesture state. It exists from touch-start until
// touch-end or cancel.
type TouchSession struct {
	Active      bool
	StartX      float64
	StartY      float64
	CurrentX    float64
	CurrentY    float64
	IsLongPress bool

	longPressTimer loop.Timer
}

// TouchOptions configures a Touch adapter
type TouchOptions struct {
	Source   drag.Source
	Origin   string
	Disabled bool
	Subject  SubjectFunc

	LongPressDelay time.Duration
	MoveThreshold  float64
	Debounce       time.Duration

	Haptics    Haptics
	AutoScroll AutoScroller

	OnDragStart func(item drag.Item)
	OnMove      func(x, y float64)
	OnDragEnd   func(success bool)
	Logger      *log.Logger
}

// Touch recognises a long-press and turns it into a drag
type Touch struct {
	coord *drag.Coordinator
	sched loop.Scheduler
	opts  TouchOptions

	state     TouchState
	session   *TouchSession
	gen       uint64
	lastStart time.Time
	scope     loop.Scope
}

// NewTouch creates a touch adapter
func NewTouch(coord *drag.Coordinator, sched loop.Scheduler, opts TouchOptions) *Touch {
	if opts.LongPressDelay <= 0 {
		opts.LongPressDelay = DefaultLongPressDelay
	}
	if opts.MoveThreshold <= 0 {
		opts.MoveThreshold = DefaultMoveThreshold
	}
	if opts.Debounce < 0 {
		opts.Debounce = 0
	} else if opts.Debounce == 0 {
		opts.Debounce = DefaultTouchDebounce
	}
	if opts.Logger == nil {
		opts.Logger = defaultLogger()
	}

	t := &Touch{coord: coord, sched: sched, opts: opts}
	t.scope.Add(t.Cancel)
	return t
}

// SetDisabled enables or disables the adapter
func (t *Touch) SetDisabled(disabled bool) {
	t.opts.Disabled = disabled
}

// State returns the recogniser state
func (t *Touch) State() TouchState {
	return t.state
}

// Session returns a copy of the current session
func (t *Touch) Session() (TouchSession, bool) {
	if t.session == nil {
		return TouchSession{}, false
	}
	s := *t.session
	s.longPressTimer = nil
	return s, true
}

func (t *Touch) fire(ev touchEvent) bool {
	next, ok := touchTransitions[t.state][ev]
	if !ok {
		return false
	}
	t.state = next
	return true
}

// Start handles touch-start. It reports whether a new gesture began.
func (t *Touch) Start(x, y float64) bool {
	if t.opts.Disabled || t.scope.Disposed() {
		return false
	}

	now := t.sched.Now()
	if !t.lastStart.IsZero() && now.Sub(t.lastStart) < t.opts.Debounce {
		t.opts.Logger.Printf("touch-start at (%.0f,%.0f) debounced", x, y)
		return false
	}
	if !t.fire(touchStart) {
		t.opts.Logger.Printf("touch-start ignored in state %s", t.state)
		return false
	}
	t.lastStart = now

	t.session = &TouchSession{
		Active:   true,
		StartX:   x,
		StartY:   y,
		CurrentX: x,
		CurrentY: y,
	}
	t.session.longPressTimer = t.sched.AfterFunc(t.opts.LongPressDelay, t.onLongPress)
	return true
}

func (t *Touch) onLongPress() {
	if t.session == nil {
		return
	}
	t.session.longPressTimer = nil
	if !t.fire(touchTimer) {
		return
	}

	if t.opts.Subject == nil {
		t.fire(touchRejected)
		return
	}
	subject, ok := t.opts.Subject()
	if !ok {
		t.fire(touchRejected)
		return
	}
	item := drag.NewItem(t.opts.Origin, BuildPayload(t.opts.Source, subject))
	if !t.coord.StartDrag(item) {
		t.fire(touchRejected)
		return
	}

	t.session.IsLongPress = true
	t.gen = t.coord.Generation()
	if t.opts.Haptics != nil {
		drag.Safely(t.opts.Logger, "haptics", t.opts.Haptics.Pulse)
	}
	item, _ = t.coord.DraggedItem()
	drag.Safely(t.opts.Logger, "touch drag start", func() {
		if t.opts.OnDragStart != nil {
			t.opts.OnDragStart(item)
		}
	})
}

// Move handles touch-move. It returns true when the move belongs to an
// active drag and the default scrolling must be suppressed.
func (t *Touch) Move(x, y float64) bool {
	if t.session == nil {
		return false
	}
	t.session.CurrentX = x
	t.session.CurrentY = y

	switch t.state {
	case TouchPending:
		dist := math.Hypot(x-t.session.StartX, y-t.session.StartY)
		if dist >= t.opts.MoveThreshold {
			t.stopTimer()
			t.fire(touchMovedAway)
		}
		return false

	case TouchLongPress:
		if t.opts.AutoScroll != nil {
			t.opts.AutoScroll.Update(y)
		}
		drag.Safely(t.opts.Logger, "touch move", func() {
			if t.opts.OnMove != nil {
				t.opts.OnMove(x, y)
			}
		})
		return true
	}
	return false
}

// End handles touch-end. An active drag ends successfully on the next tick.
func (t *Touch) End() {
	if t.session == nil {
		return
	}
	t.stopTimer()
	if t.state == TouchLongPress {
		t.stopAutoScroll()
		gen := t.gen
		t.gen = 0
		t.coord.RequestEnd(gen, func() {
			if t.opts.OnDragEnd != nil {
				t.opts.OnDragEnd(true)
			}
		})
	}
	t.fire(touchEnd)
	t.session = nil
}

// Cancel handles touch-cancel. An active drag is cancelled immediately.
func (t *Touch) Cancel() {
	if t.session == nil {
		return
	}
	t.stopTimer()
	if t.state == TouchLongPress {
		t.stopAutoScroll()
		if t.owns() {
			t.coord.CancelDrag()
			drag.Safely(t.opts.Logger, "touch drag end", func() {
				if t.opts.OnDragEnd != nil {
					t.opts.OnDragEnd(false)
				}
			})
		}
		t.gen = 0
	}
	t.fire(touchCancel)
	t.session = nil
}

// Dispose cancels any gesture and releases the adapter
func (t *Touch) Dispose() {
	t.scope.Dispose()
}

func (t *Touch) owns() bool {
	return t.gen != 0 && t.coord.IsDragging() && t.coord.Generation() == t.gen
}

func (t *Touch) stopTimer() {
	if t.session != nil && t.session.longPressTimer != nil {
		t.session.longPressTimer.Stop()
		t.session.longPressTimer = nil
	}
}

func (t *Touch) stopAutoScroll() {
	if t.opts.AutoScroll != nil {
		t.opts.AutoScroll.Stop()
	}
}
