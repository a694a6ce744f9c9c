package input

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pstuifzand/tui-mixer/internal/drag"
	"github.com/pstuifzand/tui-mixer/internal/loop/looptest"
)

type fakeScroller struct {
	updates []float64
	stops   int
}

func (f *fakeScroller) Update(y float64) { f.updates = append(f.updates, y) }
func (f *fakeScroller) Stop()            { f.stops++ }

type touchFixture struct {
	coord    *drag.Coordinator
	sched    *looptest.Scheduler
	touch    *Touch
	rec      *recorder
	scroller *fakeScroller
	pulses   int
	moves    [][2]float64
}

func newTouchFixture(t *testing.T) *touchFixture {
	t.Helper()
	f := &touchFixture{rec: &recorder{}, scroller: &fakeScroller{}}
	f.coord, f.sched = newCoordinator()
	f.touch = NewTouch(f.coord, f.sched, TouchOptions{
		Source:      drag.SourcePlaylist,
		Origin:      "playlist",
		Subject:     subjectFor("a", 0),
		Haptics:     HapticsFunc(func() { f.pulses++ }),
		AutoScroll:  f.scroller,
		OnDragStart: f.rec.start,
		OnMove:      func(x, y float64) { f.moves = append(f.moves, [2]float64{x, y}) },
		OnDragEnd:   f.rec.end,
		Logger:      quietLogger(),
	})
	return f
}

// long-press held still becomes a drag and ends on touch-end
func TestTouchLongPressDrag(t *testing.T) {
	f := newTouchFixture(t)

	require.True(t, f.touch.Start(100, 200))
	assert.Equal(t, TouchPending, f.touch.State())
	assert.False(t, f.coord.IsDragging())

	f.sched.Advance(299 * time.Millisecond)
	assert.False(t, f.coord.IsDragging())

	f.sched.Advance(1 * time.Millisecond)
	assert.Equal(t, TouchLongPress, f.touch.State())
	assert.True(t, f.coord.IsDragging())
	assert.Equal(t, 1, f.pulses)
	require.Len(t, f.rec.starts, 1)

	session, ok := f.touch.Session()
	require.True(t, ok)
	assert.True(t, session.IsLongPress)
	assert.True(t, session.Active)

	assert.True(t, f.touch.Move(100, 260), "moves during a drag suppress scrolling")
	assert.Equal(t, []float64{260}, f.scroller.updates)
	assert.Equal(t, [][2]float64{{100, 260}}, f.moves)

	f.touch.End()
	assert.Equal(t, TouchIdle, f.touch.State())
	assert.Equal(t, 1, f.scroller.stops)
	_, ok = f.touch.Session()
	assert.False(t, ok)

	f.sched.Tick()
	assert.False(t, f.coord.IsDragging())
	assert.Equal(t, []bool{true}, f.rec.ends)
	assert.Equal(t, 1, f.pulses)
}

// moving beyond the threshold before the delay cancels the long-press
func TestTouchMoveCancelsPendingLongPress(t *testing.T) {
	f := newTouchFixture(t)

	require.True(t, f.touch.Start(100, 200))
	f.sched.Advance(100 * time.Millisecond)

	assert.False(t, f.touch.Move(120, 220))
	assert.Equal(t, TouchCancelled, f.touch.State())
	assert.Equal(t, 0, f.sched.ActiveTimers())

	f.sched.Advance(time.Second)
	assert.False(t, f.coord.IsDragging())
	assert.Equal(t, 0, f.pulses)
	assert.Empty(t, f.rec.starts)

	f.touch.End()
	assert.Equal(t, TouchIdle, f.touch.State())
	assert.Empty(t, f.rec.ends)
}

func TestTouchSmallMoveKeepsPending(t *testing.T) {
	f := newTouchFixture(t)

	require.True(t, f.touch.Start(100, 200))
	assert.False(t, f.touch.Move(105, 205))
	assert.Equal(t, TouchPending, f.touch.State())

	f.sched.Advance(300 * time.Millisecond)
	assert.True(t, f.coord.IsDragging())
}

func TestTouchEndBeforeDelay(t *testing.T) {
	f := newTouchFixture(t)

	require.True(t, f.touch.Start(100, 200))
	f.touch.End()
	f.sched.Advance(time.Second)

	assert.False(t, f.coord.IsDragging())
	assert.Equal(t, TouchIdle, f.touch.State())
	assert.Empty(t, f.rec.ends)
}

func TestTouchDebounce(t *testing.T) {
	f := newTouchFixture(t)

	require.True(t, f.touch.Start(100, 200))
	f.touch.End()

	f.sched.Advance(50 * time.Millisecond)
	assert.False(t, f.touch.Start(100, 200))

	f.sched.Advance(60 * time.Millisecond)
	assert.True(t, f.touch.Start(100, 200))
}

func TestTouchCancelDuringDrag(t *testing.T) {
	f := newTouchFixture(t)

	require.True(t, f.touch.Start(100, 200))
	f.sched.Advance(300 * time.Millisecond)
	require.True(t, f.coord.IsDragging())

	f.touch.Cancel()
	assert.False(t, f.coord.IsDragging())
	assert.Equal(t, []bool{false}, f.rec.ends)
	assert.Equal(t, 1, f.scroller.stops)
}

func TestTouchLongPressWhileOtherDragActive(t *testing.T) {
	f := newTouchFixture(t)
	require.True(t, f.coord.StartDrag(drag.NewItem("search", drag.SearchPayload{})))

	require.True(t, f.touch.Start(100, 200))
	f.sched.Advance(300 * time.Millisecond)

	assert.Equal(t, TouchCancelled, f.touch.State())
	assert.Equal(t, 0, f.pulses)
	assert.Empty(t, f.rec.starts)

	f.touch.End()
	assert.Equal(t, TouchIdle, f.touch.State())
}

func TestTouchRejectedLongPressFollowsTable(t *testing.T) {
	assert.Equal(t, TouchCancelled, touchTransitions[TouchLongPress][touchRejected])
	_, ok := touchTransitions[TouchPending][touchRejected]
	assert.False(t, ok, "a pending press is never rejected")
}

func TestTouchDisposeMidDrag(t *testing.T) {
	f := newTouchFixture(t)

	require.True(t, f.touch.Start(100, 200))
	f.sched.Advance(300 * time.Millisecond)
	require.True(t, f.coord.IsDragging())

	f.touch.Dispose()
	assert.False(t, f.coord.IsDragging())
	assert.Equal(t, []bool{false}, f.rec.ends)
	assert.False(t, f.touch.Start(100, 200))
}

func TestTouchDisposeWhilePendingStopsTimer(t *testing.T) {
	f := newTouchFixture(t)

	require.True(t, f.touch.Start(100, 200))
	f.touch.Dispose()
	assert.Equal(t, 0, f.sched.ActiveTimers())

	f.sched.Advance(time.Second)
	assert.False(t, f.coord.IsDragging())
}
