package socket

import (
	"time"

	"github.com/pstuifzand/tui-mixer/internal/model"
)

// Message represents a command sent to the running tmix instance
type Message struct {
	Command string      `json:"command"`
	Kind    string      `json:"kind,omitempty"`  // "search" (default) or "unselected"
	Label   string      `json:"label,omitempty"` // catalog set the tracks belong to
	Query   string      `json:"query,omitempty"`
	Tracks  []TrackSpec `json:"tracks,omitempty"`

	// ResponseChan is set by the server for synchronous commands
	ResponseChan chan *Response `json:"-"`
}

// TrackSpec is a track as sent over the socket. Either Text ("Artist -
// Title") or Title must be set.
type TrackSpec struct {
	ID      string  `json:"id,omitempty"`
	Text    string  `json:"text,omitempty"`
	Artist  string  `json:"artist,omitempty"`
	Title   string  `json:"title,omitempty"`
	Album   string  `json:"album,omitempty"`
	Seconds float64 `json:"seconds,omitempty"`
}

// Track converts the wire form into a model track, generating an ID if needed
func (s TrackSpec) Track() model.Track {
	var t model.Track
	if s.Title == "" && s.Text != "" {
		t = model.ParseTrack(s.Text)
	} else {
		t = model.NewTrack(s.Artist, s.Title)
	}
	if s.ID != "" {
		t.ID = s.ID
	}
	t.Album = s.Album
	t.Duration = time.Duration(s.Seconds * float64(time.Second))
	return t
}

// Response represents the response from the server
type Response struct {
	Success bool     `json:"success"`
	Message string   `json:"message"`
	Lines   []string `json:"lines,omitempty"`
}

// Command types
const (
	CommandAddTracks = "add_tracks" // async: merge tracks into a catalog set
	CommandList      = "list"       // sync: return the current playlist
)
