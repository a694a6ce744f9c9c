package ui

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pstuifzand/tui-mixer/internal/autoscroll"
	"github.com/pstuifzand/tui-mixer/internal/drop"
	"github.com/pstuifzand/tui-mixer/internal/model"
	"github.com/pstuifzand/tui-mixer/internal/scrollmem"
)

func rows(n int) []Row {
	out := make([]Row, n)
	for i := range out {
		out[i] = Row{ID: fmt.Sprintf("t%d", i), Text: fmt.Sprintf("Track %d", i)}
	}
	return out
}

func newList(n, height int) *ListView {
	l := NewListView()
	l.SetRows(rows(n))
	l.SetRect(0, 2, 30, height)
	return l
}

func TestListImplementsContainers(t *testing.T) {
	var _ scrollmem.Container = (*ListView)(nil)
	var _ scrollmem.Gone = (*ListView)(nil)
	var _ autoscroll.Container = (*ListView)(nil)
}

func TestListScrollOffsetIsClamped(t *testing.T) {
	l := newList(20, 5)

	l.SetScrollOffset(100)
	assert.Equal(t, 15, l.ScrollOffset())
	l.SetScrollOffset(-3)
	assert.Equal(t, 0, l.ScrollOffset())

	l.SetRows(rows(3))
	assert.Equal(t, 0, l.ScrollOffset())
	assert.False(t, l.CanScroll(autoscroll.Down))
}

func TestListScrollByAccumulatesFractions(t *testing.T) {
	l := newList(20, 5)

	for i := 0; i < 9; i++ {
		l.ScrollBy(0.1)
	}
	assert.Equal(t, 0, l.ScrollOffset())
	l.ScrollBy(0.15)
	assert.Equal(t, 1, l.ScrollOffset())

	l.ScrollBy(-2.5)
	assert.Equal(t, 0, l.ScrollOffset())
	assert.False(t, l.CanScroll(autoscroll.Up))
	assert.True(t, l.CanScroll(autoscroll.Down))
}

func TestListBoundsAndGone(t *testing.T) {
	l := newList(20, 5)

	b, ok := l.Bounds()
	require.True(t, ok)
	assert.Equal(t, 2.0, b.Top())
	assert.Equal(t, 7.0, b.Bottom())

	l.SetHidden(true)
	_, ok = l.Bounds()
	assert.False(t, ok)
	assert.True(t, l.Gone())
	assert.False(t, l.Contains(1, 3))
}

func TestListRowAtFollowsScroll(t *testing.T) {
	l := newList(20, 5)
	l.SetScrollOffset(4)

	i, ok := l.RowAt(3, 2)
	require.True(t, ok)
	assert.Equal(t, 4, i)

	_, ok = l.RowAt(3, 7)
	assert.False(t, ok, "below the list")

	short := newList(2, 5)
	_, ok = short.RowAt(0, 5)
	assert.False(t, ok, "empty row past the end")
}

func TestListRowBoxesFeedDropIndex(t *testing.T) {
	l := newList(10, 4)
	l.SetScrollOffset(3)
	boxes := l.RowBoxes()
	require.Len(t, boxes, 10)

	// the first visible row is row 3 at y=2
	assert.Equal(t, 2.0, boxes[3].Y)
	assert.Equal(t, 3, drop.DropIndex(2, boxes))
	assert.Equal(t, 5, drop.DropIndex(4, boxes))
	assert.Equal(t, 10, drop.DropIndex(40, boxes))
	assert.Equal(t, 0, drop.DropIndex(-10, boxes))
}

func TestListSelectionScrollsIntoView(t *testing.T) {
	l := newList(20, 5)

	l.Select(12)
	assert.Equal(t, 12, l.Selected())
	assert.Equal(t, 8, l.ScrollOffset())

	l.MoveSelection(-10)
	assert.Equal(t, 2, l.Selected())
	assert.Equal(t, 2, l.ScrollOffset())

	assert.True(t, l.SelectID("t19"))
	assert.Equal(t, 19, l.Selected())
	assert.False(t, l.SelectID("missing"))

	empty := NewListView()
	assert.Equal(t, -1, empty.Selected())
	_, ok := empty.SelectedRow()
	assert.False(t, ok)
}

func TestTrackRows(t *testing.T) {
	tracks := []model.Track{
		{ID: "a", Artist: "Low", Title: "Words", Duration: 185 * time.Second},
		{ID: "b", Title: "Untitled"},
	}
	var seen []bool
	render := func(tr model.Track, _ int, dragged bool) string {
		seen = append(seen, dragged)
		return strings.ToUpper(tr.Title)
	}

	got := TrackRows(tracks, render, "b")
	assert.Equal(t, []Row{
		{ID: "a", Text: "WORDS", Detail: "3:05"},
		{ID: "b", Text: "UNTITLED"},
	}, got)
	assert.Equal(t, []bool{false, true}, seen)

	assert.Equal(t, "Low - Words", TrackRows(tracks, nil, "")[0].Text)
}

func TestListRender(t *testing.T) {
	scr, sim := newTestScreen(t, 30, 8)
	l := NewListView()
	l.SetRows([]Row{
		{ID: "a", Text: "Alpha", Detail: "1:00"},
		{ID: "b", Text: "Beta"},
		{ID: "c", Text: "Gamma"},
	})
	l.SetRect(0, 1, 30, 5)

	l.Render(scr, PlaylistStyles(scr), ListState{DraggedID: "b", DropIndex: 3})
	scr.Show()

	assert.Equal(t, " Alpha", strings.TrimRight(lineAt(sim, 1)[:10], " "))
	assert.True(t, strings.HasSuffix(strings.TrimRight(lineAt(sim, 1), " "), "1:00"))
	assert.Contains(t, lineAt(sim, 2), "Beta")
	_, _, attrs := styleAt(sim, 2, 2).Decompose()
	assert.NotZero(t, attrs&tcell.AttrBold, "dragged row is drawn larger")

	// dropping after the last row marks the first empty row
	assert.True(t, strings.HasPrefix(lineAt(sim, 4), "▶──"))
}

func TestListRenderDropMarkerBeforeRow(t *testing.T) {
	scr, sim := newTestScreen(t, 20, 6)
	l := newList(3, 4)
	l.SetRect(0, 0, 20, 4)

	l.Render(scr, PlaylistStyles(scr), ListState{DropIndex: 1})
	scr.Show()

	assert.True(t, strings.HasPrefix(lineAt(sim, 1), "▶Track 1"))
	assert.True(t, strings.HasPrefix(lineAt(sim, 0), " Track 0"))
}

func TestListRenderScrollBar(t *testing.T) {
	scr, sim := newTestScreen(t, 20, 6)
	l := newList(10, 5)
	l.SetRect(0, 0, 20, 5)
	l.SetScrollOffset(5)

	l.Render(scr, PlaylistStyles(scr), ListState{DropIndex: -1})
	scr.Show()

	assert.Equal(t, '┃', []rune(lineAt(sim, 4))[19])
	assert.Equal(t, '│', []rune(lineAt(sim, 0))[19])
}
