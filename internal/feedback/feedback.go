// Package feedback applies page-level drag feedback: the page is locked in
// place, text selection is suppressed and a drag-active marker is shown for
// as long as any drag is running.
package feedback

import (
	"log"

	"github.com/pstuifzand/tui-mixer/internal/drag"
	"github.com/pstuifzand/tui-mixer/internal/loop"
)

// MarkerDragActive is the marker set on the page while a drag runs
const MarkerDragActive = "drag-active"

// Page is the top-level surface the controller locks
type Page interface {
	ScrollOffset() int
	SetScrollOffset(offset int)
	SetScrollLocked(locked bool)
	SetTextSelection(enabled bool)
	SetMarker(name string, on bool)
}

// Presentation is how a single row is drawn during a drag
type Presentation struct {
	Opacity float64
	Scale   float64
}

// ItemPresentation returns the presentation of a row. It is derived from
// whether the row is the dragged one and is never stored.
func ItemPresentation(dragged bool) Presentation {
	if dragged {
		return Presentation{Opacity: 0.5, Scale: 1.05}
	}
	return Presentation{Opacity: 1, Scale: 1}
}

// Controller locks and restores a Page around drags
type Controller struct {
	page   Page
	sched  loop.Scheduler
	logger *log.Logger

	locked      bool
	savedOffset int
	restoreID   loop.FrameID
	scope       loop.Scope
}

// New subscribes a controller for page to coord
func New(coord *drag.Coordinator, sched loop.Scheduler, page Page, logger *log.Logger) *Controller {
	if logger == nil {
		logger = log.New(log.Writer(), "[FEEDBACK] ", log.LstdFlags|log.Lshortfile)
	}
	c := &Controller{page: page, sched: sched, logger: logger}

	c.scope.Add(coord.Subscribe(c.onState))
	c.scope.Add(c.release)

	if coord.IsDragging() {
		c.lock()
	}
	return c
}

// Locked reports whether the page is currently locked
func (c *Controller) Locked() bool {
	return c.locked
}

func (c *Controller) onState(s drag.State) {
	if s.IsDragging {
		c.lock()
	} else {
		c.release()
	}
}

func (c *Controller) lock() {
	if c.locked {
		return
	}
	c.locked = true
	if c.restoreID != 0 {
		// the previous drag's restore has not painted yet; keep its offset
		c.sched.CancelFrame(c.restoreID)
		c.restoreID = 0
	} else {
		c.savedOffset = c.page.ScrollOffset()
	}
	c.page.SetScrollLocked(true)
	c.page.SetTextSelection(false)
	c.page.SetMarker(MarkerDragActive, true)
	c.logger.Printf("page locked at offset %d", c.savedOffset)
}

// release undoes lock. Normal drag end and teardown both come through here.
func (c *Controller) release() {
	if !c.locked {
		return
	}
	c.locked = false
	c.page.SetScrollLocked(false)
	c.page.SetTextSelection(true)
	c.page.SetMarker(MarkerDragActive, false)

	offset := c.savedOffset
	page := c.page
	c.logger.Printf("page unlocked, restoring offset %d", offset)
	c.restoreID = c.sched.RequestFrame(func() {
		c.restoreID = 0
		page.SetScrollOffset(offset)
	})
}

// Dispose unsubscribes and restores the page if a drag is running
func (c *Controller) Dispose() {
	c.scope.Dispose()
}
