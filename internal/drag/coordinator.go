package drag

import (
	"log"
	"sync"
	"time"

	"github.com/pstuifzand/tui-mixer/internal/loop"
)

// Coordinator is the single source of truth for the active drag
type Coordinator struct {
	mu         sync.RWMutex
	dragging   bool
	item       *Item
	startedAt  time.Time
	generation uint64
	endPending uint64

	sched  loop.Scheduler
	now    func() time.Time
	logger *log.Logger

	subs    []subscriber
	nextSub int
}

type subscriber struct {
	id int
	fn func(State)
}

// Option configures a Coordinator
type Option func(*Coordinator)

// WithLogger sets the diagnostic logger
func WithLogger(l *log.Logger) Option {
	return func(c *Coordinator) {
		c.logger = l
	}
}

// WithClock overrides the clock used for start times and durations
func WithClock(now func() time.Time) Option {
	return func(c *Coordinator) {
		c.now = now
	}
}

// New creates an idle Coordinator. sched is used to defer the commit phase
// of RequestEnd.
func New(sched loop.Scheduler, opts ...Option) *Coordinator {
	c := &Coordinator{
		sched:  sched,
		now:    sched.Now,
		logger: log.New(log.Writer(), "[DRAG] ", log.LstdFlags|log.Lshortfile),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// StartDrag makes item the active drag. While another drag is active the call
// is ignored and false is returned; the existing item is kept.
func (c *Coordinator) StartDrag(item Item) bool {
	c.mu.Lock()
	if c.dragging {
		current := c.item.ID
		c.mu.Unlock()
		c.logger.Printf("start of %q ignored: %q is already being dragged", item.ID, current)
		return false
	}
	if item.Payload == nil {
		c.mu.Unlock()
		c.logger.Printf("start of %q ignored: no payload", item.ID)
		return false
	}

	now := c.now()
	item.StartedAt = now
	c.dragging = true
	c.item = &item
	c.startedAt = now
	c.generation++
	c.endPending = 0
	gen := c.generation
	snapshot := c.snapshotLocked()
	c.mu.Unlock()

	c.logger.Printf("drag %d started: %s %q from %q", gen, item.Source(), item.ID, item.Origin)
	c.notify(snapshot)
	return true
}

// EndDrag finishes the active drag. Ignored when idle.
func (c *Coordinator) EndDrag() bool {
	return c.clear("end", 0)
}

// CancelDrag abandons the active drag. It is always safe to call and wins
// over any end that is still waiting for its commit.
func (c *Coordinator) CancelDrag() bool {
	return c.clear("cancel", 0)
}

// clear resets the state. A non-zero gen restricts it to that drag.
func (c *Coordinator) clear(reason string, gen uint64) bool {
	c.mu.Lock()
	if !c.dragging {
		c.mu.Unlock()
		c.logger.Printf("%s ignored: no active drag", reason)
		return false
	}
	if gen != 0 && c.generation != gen {
		current := c.generation
		c.mu.Unlock()
		c.logger.Printf("stale %s for generation %d dropped (active %d)", reason, gen, current)
		return false
	}
	id := c.item.ID
	c.dragging = false
	c.item = nil
	c.startedAt = time.Time{}
	c.endPending = 0
	snapshot := c.snapshotLocked()
	c.mu.Unlock()

	c.logger.Printf("drag of %q: %s", id, reason)
	c.notify(snapshot)
	return true
}

// Generation identifies the active drag. It changes on every successful
// StartDrag.
func (c *Coordinator) Generation() uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.generation
}

// RequestEnd is the first phase of a deferred end: it marks the drag of the
// given generation as ending and commits on the next tick, so drop handlers
// running in the same input sequence still see the dragged item. The commit
// re-checks the generation; a drag that was cancelled or replaced meanwhile
// is left alone. onCommit runs only when the commit actually ended the drag.
func (c *Coordinator) RequestEnd(gen uint64, onCommit func()) bool {
	c.mu.Lock()
	if !c.dragging || c.generation != gen {
		c.mu.Unlock()
		c.logger.Printf("end request for generation %d ignored", gen)
		return false
	}
	c.endPending = gen
	c.mu.Unlock()

	c.sched.Defer(func() {
		c.commitEnd(gen, onCommit)
	})
	return true
}

func (c *Coordinator) commitEnd(gen uint64, onCommit func()) {
	if c.clear("end commit", gen) && onCommit != nil {
		Safely(c.logger, "end commit", onCommit)
	}
}

// EndPending reports whether the active drag is waiting for its end commit
func (c *Coordinator) EndPending() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.dragging && c.endPending == c.generation
}

// State returns a snapshot of the drag state
func (c *Coordinator) State() State {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.snapshotLocked()
}

// IsDragging reports whether a drag is active
func (c *Coordinator) IsDragging() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.dragging
}

// IsCurrentlyDragged reports whether the item with id is the dragged one
func (c *Coordinator) IsCurrentlyDragged(id string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.dragging && c.item.ID == id
}

// IsDragTypeActive reports whether an item of the given source is dragged
func (c *Coordinator) IsDragTypeActive(s Source) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.dragging && c.item.Source() == s
}

// DraggedItem returns a copy of the dragged item
func (c *Coordinator) DraggedItem() (Item, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if !c.dragging {
		return Item{}, false
	}
	return *c.item, true
}

// DragDuration returns how long the active drag has been running
func (c *Coordinator) DragDuration() time.Duration {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if !c.dragging {
		return 0
	}
	return c.now().Sub(c.startedAt)
}

// Subscribe registers fn to be called after every transition. The returned
// function removes the subscription.
func (c *Coordinator) Subscribe(fn func(State)) func() {
	c.mu.Lock()
	c.nextSub++
	id := c.nextSub
	c.subs = append(c.subs, subscriber{id: id, fn: fn})
	c.mu.Unlock()

	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		for i, s := range c.subs {
			if s.id == id {
				c.subs = append(c.subs[:i:i], c.subs[i+1:]...)
				return
			}
		}
	}
}

func (c *Coordinator) notify(s State) {
	c.mu.RLock()
	subs := make([]subscriber, len(c.subs))
	copy(subs, c.subs)
	c.mu.RUnlock()

	for _, sub := range subs {
		Safely(c.logger, "subscriber", func() { sub.fn(s) })
	}
}

func (c *Coordinator) snapshotLocked() State {
	if !c.dragging {
		return State{}
	}
	item := *c.item
	return State{
		IsDragging: true,
		Item:       &item,
		StartedAt:  c.startedAt,
	}
}
