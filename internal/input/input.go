// Package input translates the three input modalities (pointer drag, touch
// long-press, keyboard grab) into DragCoordinator calls.
//
// Each adapter is a disposable scope: the owner must call Dispose when the
// element it belongs to goes away. Disposing an adapter that owns the active
// drag cancels that drag.
package input

import (
	"fmt"
	"log"

	"github.com/pstuifzand/tui-mixer/internal/drag"
	"github.com/pstuifzand/tui-mixer/internal/model"
)

// Subject is the element an adapter is attached to: the track it shows and
// its position in its own list.
type Subject struct {
	Track model.Track
	Index int
	Query string // search text that produced the track, if any
	Label string // catalog label, if any
}

// SubjectFunc resolves the adapter's subject at the time a drag starts
type SubjectFunc func() (Subject, bool)

// BuildPayload builds the typed payload for a drag of s from source
func BuildPayload(source drag.Source, s Subject) drag.Payload {
	switch source {
	case drag.SourcePlaylist:
		return drag.PlaylistPayload{Track: s.Track, Index: s.Index}
	case drag.SourceSearch:
		return drag.SearchPayload{Track: s.Track, Query: s.Query, Label: s.Label}
	case drag.SourceUnselected:
		return drag.UnselectedPayload{Track: s.Track, Index: s.Index}
	default:
		panic(fmt.Sprintf("input: unhandled drag source %v", source))
	}
}

// Haptics gives physical feedback when a long-press turns into a drag
type Haptics interface {
	Pulse()
}

// HapticsFunc adapts a function to Haptics
type HapticsFunc func()

func (f HapticsFunc) Pulse() { f() }

// AutoScroller is the part of autoscroll.Controller the adapters drive
type AutoScroller interface {
	Update(y float64)
	Stop()
}

func defaultLogger() *log.Logger {
	return log.New(log.Writer(), "[INPUT] ", log.LstdFlags|log.Lshortfile)
}
