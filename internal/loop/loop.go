// Package loop provides the cooperative scheduler the terminal UI runs on.
//
// All drag, scroll and input state is owned by a single goroutine (the tcell
// event loop). Work that must happen "later" is expressed through three kinds
// of suspension: the next tick (Defer), the next frame before paint
// (RequestFrame) and timers (AfterFunc). Timer callbacks fire on their own
// goroutine but are marshalled back onto the loop before they run.
package loop

import (
	"sync"
	"sync/atomic"
	"time"
)

// FrameID identifies a pending frame callback
type FrameID uint64

// Timer is a cancellable timer created by AfterFunc
type Timer interface {
	// Stop prevents the callback from running. It reports whether the call
	// stopped the timer before the callback ran.
	Stop() bool
}

// Scheduler is the set of suspension points available to components
type Scheduler interface {
	Defer(fn func())
	RequestFrame(fn func()) FrameID
	CancelFrame(id FrameID)
	AfterFunc(d time.Duration, fn func()) Timer
	Now() time.Time
}

type frame struct {
	id FrameID
	fn func()
}

// Loop is the Scheduler used by the running application
type Loop struct {
	mu     sync.Mutex
	ticks  []func()
	frames []frame
	nextID FrameID
	wake   func()
}

// New creates a Loop. wake is called (from any goroutine) whenever new work
// was queued, so the owner can interrupt a blocking event poll.
func New(wake func()) *Loop {
	return &Loop{wake: wake}
}

// SetWake replaces the wake-up hook
func (l *Loop) SetWake(wake func()) {
	l.mu.Lock()
	l.wake = wake
	l.mu.Unlock()
}

// Defer queues fn to run on the next tick
func (l *Loop) Defer(fn func()) {
	if fn == nil {
		return
	}
	l.mu.Lock()
	l.ticks = append(l.ticks, fn)
	wake := l.wake
	l.mu.Unlock()

	if wake != nil {
		wake()
	}
}

// RequestFrame queues fn to run before the next paint
func (l *Loop) RequestFrame(fn func()) FrameID {
	l.mu.Lock()
	l.nextID++
	id := l.nextID
	l.frames = append(l.frames, frame{id: id, fn: fn})
	l.mu.Unlock()
	return id
}

// CancelFrame removes a pending frame callback. Unknown ids are ignored.
func (l *Loop) CancelFrame(id FrameID) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for i, f := range l.frames {
		if f.id == id {
			l.frames = append(l.frames[:i], l.frames[i+1:]...)
			return
		}
	}
}

// AfterFunc runs fn on the loop once d has elapsed
func (l *Loop) AfterFunc(d time.Duration, fn func()) Timer {
	t := &loopTimer{}
	t.timer = time.AfterFunc(d, func() {
		l.Defer(func() {
			if t.stopped.Load() {
				return
			}
			t.fired.Store(true)
			fn()
		})
	})
	return t
}

// Now returns the wall clock
func (l *Loop) Now() time.Time {
	return time.Now()
}

// RunTicks runs the callbacks queued before the call. Callbacks deferred while
// running belong to the next tick. Returns the number of callbacks run.
func (l *Loop) RunTicks() int {
	l.mu.Lock()
	pending := l.ticks
	l.ticks = nil
	l.mu.Unlock()

	for _, fn := range pending {
		fn()
	}
	return len(pending)
}

// RunFrame runs the frame callbacks requested before the call
func (l *Loop) RunFrame() int {
	l.mu.Lock()
	pending := l.frames
	l.frames = nil
	l.mu.Unlock()

	for _, f := range pending {
		f.fn()
	}
	return len(pending)
}

// HasFrames reports whether frame callbacks are waiting
func (l *Loop) HasFrames() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.frames) > 0
}

type loopTimer struct {
	timer   *time.Timer
	stopped atomic.Bool
	fired   atomic.Bool
}

func (t *loopTimer) Stop() bool {
	t.timer.Stop()
	if !t.stopped.CompareAndSwap(false, true) {
		return false
	}
	return !t.fired.Load()
}
