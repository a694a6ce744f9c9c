package input

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
)

func mouse(x, y int, buttons tcell.ButtonMask) *tcell.EventMouse {
	return tcell.NewEventMouse(x, y, buttons, tcell.ModNone)
}

func TestMouseGestureClick(t *testing.T) {
	var g MouseGesture

	ev := g.Handle(mouse(5, 3, tcell.Button1))
	assert.Equal(t, MousePress, ev.Action)
	assert.True(t, g.Pressed())

	ev = g.Handle(mouse(5, 3, tcell.ButtonNone))
	assert.Equal(t, MouseClick, ev.Action)
	assert.False(t, g.Pressed())
}

func TestMouseGestureDrag(t *testing.T) {
	g := MouseGesture{Threshold: 2}

	assert.Equal(t, MousePress, g.Handle(mouse(5, 3, tcell.Button1)).Action)
	assert.Equal(t, MouseMove, g.Handle(mouse(5, 4, tcell.Button1)).Action)

	ev := g.Handle(mouse(5, 5, tcell.Button1))
	assert.Equal(t, MouseDragStart, ev.Action)
	assert.Equal(t, 5, ev.StartX)
	assert.Equal(t, 3, ev.StartY)
	assert.True(t, g.Dragging())

	assert.Equal(t, MouseNone, g.Handle(mouse(5, 5, tcell.Button1)).Action)
	assert.Equal(t, MouseDragMove, g.Handle(mouse(5, 8, tcell.Button1)).Action)

	ev = g.Handle(mouse(5, 8, tcell.ButtonNone))
	assert.Equal(t, MouseDrop, ev.Action)
	assert.Equal(t, 8, ev.Y)
	assert.False(t, g.Dragging())
}

func TestMouseGestureWheel(t *testing.T) {
	var g MouseGesture
	assert.Equal(t, MouseWheelUp, g.Handle(mouse(1, 1, tcell.WheelUp)).Action)
	assert.Equal(t, MouseWheelDown, g.Handle(mouse(1, 1, tcell.WheelDown)).Action)
	assert.False(t, g.Pressed())
}

func TestMouseGestureReset(t *testing.T) {
	var g MouseGesture
	g.Handle(mouse(1, 1, tcell.Button1))
	g.Handle(mouse(1, 4, tcell.Button1))
	assert.True(t, g.Dragging())

	g.Reset()
	assert.Equal(t, MouseNone, g.Handle(mouse(1, 4, tcell.ButtonNone)).Action)
}
