// Package model contains the playlist model
package model

import (
	"fmt"
	"sync/atomic"
	"time"
)

// Track represents a single entry of a playlist or catalog
type Track struct {
	ID       string        `json:"id"`
	Title    string        `json:"title"`
	Artist   string        `json:"artist,omitempty"`
	Album    string        `json:"album,omitempty"`
	Duration time.Duration `json:"duration,omitempty"`
}

// Label returns the "Artist - Title" form used in lists and search
func (t Track) Label() string {
	if t.Artist == "" {
		return t.Title
	}
	return t.Artist + " - " + t.Title
}

// DurationString formats the duration as m:ss
func (t Track) DurationString() string {
	if t.Duration <= 0 {
		return ""
	}
	total := int(t.Duration.Round(time.Second) / time.Second)
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}

// Playlist is the persisted document: the ordered playlist plus the tracks
// that were considered but left out of it
type Playlist struct {
	Title      string  `json:"title"`
	Tracks     []Track `json:"tracks"`
	Unselected []Track `json:"unselected,omitempty"`
}

// NewTrack creates a track with a generated ID
func NewTrack(artist, title string) Track {
	return Track{
		ID:     generateID(),
		Title:  title,
		Artist: artist,
	}
}

// Copy returns the track under a freshly generated ID, for adding a track
// the playlist already holds
func (t Track) Copy() Track {
	t.ID = generateID()
	return t
}

// ParseTrack splits an "Artist - Title" string into a new track
func ParseTrack(s string) Track {
	for i := 0; i+3 <= len(s); i++ {
		if s[i:i+3] == " - " {
			return NewTrack(s[:i], s[i+3:])
		}
	}
	return NewTrack("", s)
}

// NewPlaylist creates an empty playlist with the given title
func NewPlaylist(title string) *Playlist {
	return &Playlist{
		Title:  title,
		Tracks: make([]Track, 0),
	}
}

// IndexOf returns the position of the track with the given ID, or -1
func IndexOf(tracks []Track, id string) int {
	for i, t := range tracks {
		if t.ID == id {
			return i
		}
	}
	return -1
}

// RemoveByID returns tracks without the track with the given ID
func RemoveByID(tracks []Track, id string) []Track {
	idx := IndexOf(tracks, id)
	if idx < 0 {
		return tracks
	}
	out := make([]Track, 0, len(tracks)-1)
	out = append(out, tracks[:idx]...)
	return append(out, tracks[idx+1:]...)
}

var idCounter atomic.Uint32

func generateID() string {
	n := idCounter.Add(1)
	return fmt.Sprintf("trk_%s_%s%04d", time.Now().Format("20060102150405"), randomString(6), n%10000)
}

func randomString(length int) string {
	const chars = "abcdefghijklmnopqrstuvwxyz0123456789"
	result := make([]byte, length)
	for i := 0; i < length; i++ {
		result[i] = chars[int(time.Now().UnixNano()+int64(i))%len(chars)]
	}
	return string(result)
}
