// Package looptest provides a manually driven loop.Scheduler for tests.
package looptest

import (
	"sort"
	"time"

	"github.com/pstuifzand/tui-mixer/internal/loop"
)

type frame struct {
	id loop.FrameID
	fn func()
}

type timer struct {
	due     time.Time
	fn      func()
	stopped bool
	fired   bool
}

func (t *timer) Stop() bool {
	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	return true
}

// Scheduler is a deterministic scheduler. Nothing runs until the test calls
// Tick, Frame or Advance.
type Scheduler struct {
	now    time.Time
	ticks  []func()
	frames []frame
	timers []*timer
	nextID loop.FrameID
}

// New returns a scheduler whose clock starts at a fixed instant
func New() *Scheduler {
	return &Scheduler{now: time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)}
}

func (s *Scheduler) Defer(fn func()) {
	s.ticks = append(s.ticks, fn)
}

func (s *Scheduler) RequestFrame(fn func()) loop.FrameID {
	s.nextID++
	s.frames = append(s.frames, frame{id: s.nextID, fn: fn})
	return s.nextID
}

func (s *Scheduler) CancelFrame(id loop.FrameID) {
	for i, f := range s.frames {
		if f.id == id {
			s.frames = append(s.frames[:i], s.frames[i+1:]...)
			return
		}
	}
}

func (s *Scheduler) AfterFunc(d time.Duration, fn func()) loop.Timer {
	t := &timer{due: s.now.Add(d), fn: fn}
	s.timers = append(s.timers, t)
	return t
}

func (s *Scheduler) Now() time.Time {
	return s.now
}

// Tick runs the callbacks deferred before the call
func (s *Scheduler) Tick() int {
	pending := s.ticks
	s.ticks = nil
	for _, fn := range pending {
		fn()
	}
	return len(pending)
}

// Frame runs the frame callbacks requested before the call
func (s *Scheduler) Frame() int {
	pending := s.frames
	s.frames = nil
	for _, f := range pending {
		f.fn()
	}
	return len(pending)
}

// RunTicks and RunFrame let the scheduler stand in for a loop.Loop
func (s *Scheduler) RunTicks() int { return s.Tick() }
func (s *Scheduler) RunFrame() int { return s.Frame() }

// Advance moves the clock forward and fires every timer that became due, in
// due order.
func (s *Scheduler) Advance(d time.Duration) {
	s.now = s.now.Add(d)

	due := make([]*timer, 0, len(s.timers))
	rest := s.timers[:0]
	for _, t := range s.timers {
		if t.stopped {
			continue
		}
		if !t.due.After(s.now) {
			due = append(due, t)
		} else {
			rest = append(rest, t)
		}
	}
	s.timers = rest

	sort.SliceStable(due, func(i, j int) bool { return due[i].due.Before(due[j].due) })
	for _, t := range due {
		if t.stopped {
			continue
		}
		t.fired = true
		t.fn()
	}
}

// PendingTicks returns the number of deferred callbacks waiting
func (s *Scheduler) PendingTicks() int { return len(s.ticks) }

// PendingFrames returns the number of frame callbacks waiting
func (s *Scheduler) PendingFrames() int { return len(s.frames) }

// ActiveTimers returns the number of timers that have neither fired nor been stopped
func (s *Scheduler) ActiveTimers() int {
	n := 0
	for _, t := range s.timers {
		if !t.stopped && !t.fired {
			n++
		}
	}
	return n
}
