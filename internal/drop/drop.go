// Package drop owns the playlist's ordered tracks and applies drops to them.
//
// Every mutation keeps the list's scroll position stable: the offset is
// captured before the slice changes and put back on the next frame, after the
// new rows have been laid out.
package drop

import (
	"log"
	"slices"

	"github.com/pstuifzand/tui-mixer/internal/drag"
	"github.com/pstuifzand/tui-mixer/internal/geom"
	"github.com/pstuifzand/tui-mixer/internal/loop"
	"github.com/pstuifzand/tui-mixer/internal/model"
	"github.com/pstuifzand/tui-mixer/internal/scrollmem"
)

// Options configures a Coordinator
type Options struct {
	Container scrollmem.Container
	OnChange  func(tracks []model.Track)
	Logger    *log.Logger
}

// Coordinator is the single writer of the ordered track list
type Coordinator struct {
	tracks    []model.Track
	drag      *drag.Coordinator
	sched     loop.Scheduler
	memory    *scrollmem.Memory
	container scrollmem.Container
	onChange  func([]model.Track)
	logger    *log.Logger

	restoreID loop.FrameID
}

// New creates a Coordinator holding a copy of tracks
func New(coord *drag.Coordinator, sched loop.Scheduler, tracks []model.Track, opts Options) *Coordinator {
	if opts.Logger == nil {
		opts.Logger = log.New(log.Writer(), "[DROP] ", log.LstdFlags|log.Lshortfile)
	}
	return &Coordinator{
		tracks:    slices.Clone(tracks),
		drag:      coord,
		sched:     sched,
		memory:    scrollmem.New(),
		container: opts.Container,
		onChange:  opts.OnChange,
		logger:    opts.Logger,
	}
}

// SetContainer changes the container whose offset is preserved
func (c *Coordinator) SetContainer(container scrollmem.Container) {
	c.container = container
}

// Tracks returns a copy of the current order
func (c *Coordinator) Tracks() []model.Track {
	return slices.Clone(c.tracks)
}

// Len returns the number of tracks
func (c *Coordinator) Len() int {
	return len(c.tracks)
}

// Replace swaps the whole list, for example after loading a file
func (c *Coordinator) Replace(tracks []model.Track) {
	c.mutate("replace", func() {
		c.tracks = slices.Clone(tracks)
	})
}

// DropIndex returns the insertion index for a drop at y. boxes are the rows'
// bounding boxes in list order.
func DropIndex(y float64, boxes []geom.Rect) int {
	for i, b := range boxes {
		if b.MidY() > y {
			return i
		}
	}
	return len(boxes)
}

// Drop applies the active drag at y. It reports whether the list changed.
func (c *Coordinator) Drop(y float64, boxes []geom.Rect) bool {
	return c.DropAt(DropIndex(y, boxes))
}

// DropAt applies the active drag at index. With no drag active this is a
// no-op.
func (c *Coordinator) DropAt(index int) bool {
	item, ok := c.drag.DraggedItem()
	if !ok {
		c.logger.Printf("drop at %d without a dragged item", index)
		return false
	}

	switch p := item.Payload.(type) {
	case drag.PlaylistPayload:
		from := p.Index
		if from < 0 || from >= len(c.tracks) || c.tracks[from].ID != p.Track.ID {
			from = model.IndexOf(c.tracks, p.Track.ID)
		}
		if from < 0 {
			c.logger.Printf("dragged track %s is no longer in the playlist", p.Track.ID)
			return false
		}
		return c.Reorder(from, index)
	case drag.SearchPayload:
		return c.Insert(index, p.Track)
	case drag.UnselectedPayload:
		return c.Insert(index, p.Track)
	default:
		c.logger.Printf("unhandled payload %T", p)
		return false
	}
}

// Reorder moves the track at from so that it ends up in front of the track
// that was at to. Moves that leave the order unchanged do nothing.
func (c *Coordinator) Reorder(from, to int) bool {
	if from < 0 || from >= len(c.tracks) {
		return false
	}
	to = geom.Clamp(to, 0, len(c.tracks))
	if to == from || to == from+1 {
		return false
	}

	c.mutate("reorder", func() {
		t := c.tracks[from]
		c.tracks = slices.Delete(c.tracks, from, from+1)
		if to > from {
			to--
		}
		c.tracks = slices.Insert(c.tracks, to, t)
	})
	return true
}

// Insert adds track at index
func (c *Coordinator) Insert(index int, track model.Track) bool {
	index = geom.Clamp(index, 0, len(c.tracks))
	c.mutate("insert", func() {
		c.tracks = slices.Insert(c.tracks, index, track)
	})
	return true
}

// Remove deletes the track at index and returns it
func (c *Coordinator) Remove(index int) (model.Track, bool) {
	if index < 0 || index >= len(c.tracks) {
		return model.Track{}, false
	}
	removed := c.tracks[index]
	c.mutate("remove", func() {
		c.tracks = slices.Delete(c.tracks, index, index+1)
	})
	return removed, true
}

// Shift moves the track at from by delta positions and returns its new index
func (c *Coordinator) Shift(from, delta int) int {
	if from < 0 || from >= len(c.tracks) {
		return from
	}
	target := geom.Clamp(from+delta, 0, len(c.tracks)-1)
	if target == from {
		return from
	}
	to := target
	if target > from {
		to = target + 1
	}
	c.Reorder(from, to)
	return target
}

func (c *Coordinator) mutate(name string, apply func()) {
	if c.restoreID != 0 {
		// a restore is already pending; its capture predates this mutation
		c.sched.CancelFrame(c.restoreID)
	} else {
		c.memory.Capture(c.container)
	}

	apply()
	c.logger.Printf("%s: %d tracks", name, len(c.tracks))

	c.restoreID = c.sched.RequestFrame(func() {
		c.restoreID = 0
		c.memory.Restore(c.container)
		c.memory.Clear()
	})

	if c.onChange != nil {
		tracks := c.Tracks()
		drag.Safely(c.logger, "drop change", func() { c.onChange(tracks) })
	}
}

// Pending reports whether a scroll restore is waiting for the next frame
func (c *Coordinator) Pending() bool {
	return c.restoreID != 0
}

// Dispose drops a pending restore
func (c *Coordinator) Dispose() {
	if c.restoreID != 0 {
		c.sched.CancelFrame(c.restoreID)
		c.restoreID = 0
	}
	c.memory.Clear()
}
