// Package drag owns the single process-wide drag state.
//
// Exactly one Coordinator exists per running application. Every surface that
// needs to know whether something is being dragged reads it through the
// Coordinator's queries or subscribes to its transitions; only the three
// mutators StartDrag, EndDrag and CancelDrag (plus the deferred RequestEnd)
// change it.
package drag

import (
	"fmt"
	"time"

	"github.com/pstuifzand/tui-mixer/internal/model"
)

// Source tags where a dragged item came from. It decides between reorder and
// insert when the item is dropped on the playlist.
type Source int

const (
	// SourcePlaylist is a row of the playlist itself (internal)
	SourcePlaylist Source = iota
	// SourceSearch is a result of the search dialog
	SourceSearch
	// SourceUnselected is an entry of the unselected tracks browser
	SourceUnselected
)

func (s Source) String() string {
	switch s {
	case SourcePlaylist:
		return "playlist-track"
	case SourceSearch:
		return "search-track"
	case SourceUnselected:
		return "unselected-track"
	default:
		return fmt.Sprintf("source(%d)", int(s))
	}
}

// External reports whether items of this source come from outside the playlist
func (s Source) External() bool {
	return s != SourcePlaylist
}

// Payload is the source-specific part of a dragged item. The set of
// implementations is closed; switch over the concrete types.
type Payload interface {
	Source() Source
	DraggedTrack() model.Track
	payload()
}

// PlaylistPayload is a playlist row being reordered
type PlaylistPayload struct {
	Track model.Track
	Index int
}

func (PlaylistPayload) Source() Source              { return SourcePlaylist }
func (p PlaylistPayload) DraggedTrack() model.Track { return p.Track }
func (PlaylistPayload) payload()                    {}

// SearchPayload is a search result being inserted
type SearchPayload struct {
	Track model.Track
	Query string
	Label string
}

func (SearchPayload) Source() Source              { return SourceSearch }
func (p SearchPayload) DraggedTrack() model.Track { return p.Track }
func (SearchPayload) payload()                    {}

// UnselectedPayload is an entry of the unselected browser being inserted
type UnselectedPayload struct {
	Track model.Track
	Index int
}

func (UnselectedPayload) Source() Source              { return SourceUnselected }
func (p UnselectedPayload) DraggedTrack() model.Track { return p.Track }
func (UnselectedPayload) payload()                    {}

// Item is the thing being dragged
type Item struct {
	ID        string
	Payload   Payload
	Origin    string // surface that started the drag
	StartedAt time.Time
}

// NewItem builds an item for the payload's track, started by origin
func NewItem(origin string, p Payload) Item {
	return Item{
		ID:      p.DraggedTrack().ID,
		Payload: p,
		Origin:  origin,
	}
}

// Source returns the payload's source tag
func (i Item) Source() Source {
	if i.Payload == nil {
		return SourcePlaylist
	}
	return i.Payload.Source()
}

// State is a snapshot of the drag state.
// Item == nil if and only if IsDragging is false.
type State struct {
	IsDragging bool
	Item       *Item
	StartedAt  time.Time
}
