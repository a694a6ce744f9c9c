// Package catalog holds the candidate tracks that can be dragged into the
// playlist: search result sets pushed in from outside and the playlist's own
// unselected tracks.
package catalog

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/pstuifzand/tui-mixer/internal/model"
)

// Kind says which browser a set belongs to
type Kind string

const (
	KindSearch     Kind = "search"
	KindUnselected Kind = "unselected"
)

// ParseKind validates a kind name
func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case KindSearch, KindUnselected:
		return Kind(s), nil
	case "":
		return KindSearch, nil
	default:
		return "", fmt.Errorf("unknown catalog kind %q", s)
	}
}

// Set is a labelled group of candidate tracks
type Set struct {
	Label  string
	Kind   Kind
	Query  string
	Tracks []model.Track
}

// Result is one matching track with the set it came from
type Result struct {
	Track model.Track
	Set   string
	Query string
	Rank  int
}

// Catalog is safe for concurrent use; sets arrive from the socket goroutine
// while the UI reads them.
type Catalog struct {
	mu   sync.RWMutex
	sets []*Set
}

// New returns an empty catalog
func New() *Catalog {
	return &Catalog{}
}

// Add merges tracks into the set with the given label and kind, creating it
// if needed. Tracks already present (same ID) are skipped. It returns the
// number of tracks added.
func (c *Catalog) Add(kind Kind, label, query string, tracks []model.Track) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	set := c.find(kind, label)
	if set == nil {
		set = &Set{Label: label, Kind: kind, Query: query}
		c.sets = append(c.sets, set)
	}
	if query != "" {
		set.Query = query
	}

	added := 0
	for _, t := range tracks {
		if model.IndexOf(set.Tracks, t.ID) >= 0 {
			continue
		}
		set.Tracks = append(set.Tracks, t)
		added++
	}
	return added
}

// Remove drops the track with id from every set of kind
func (c *Catalog) Remove(kind Kind, id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	removed := false
	for _, s := range c.sets {
		if s.Kind != kind {
			continue
		}
		if model.IndexOf(s.Tracks, id) >= 0 {
			s.Tracks = model.RemoveByID(s.Tracks, id)
			removed = true
		}
	}
	return removed
}

// Replace sets the tracks of a set, creating it if needed
func (c *Catalog) Replace(kind Kind, label string, tracks []model.Track) {
	c.mu.Lock()
	defer c.mu.Unlock()

	set := c.find(kind, label)
	if set == nil {
		set = &Set{Label: label, Kind: kind}
		c.sets = append(c.sets, set)
	}
	set.Tracks = append([]model.Track(nil), tracks...)
}

// Sets returns copies of all sets of kind in insertion order
func (c *Catalog) Sets(kind Kind) []Set {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var out []Set
	for _, s := range c.sets {
		if s.Kind == kind {
			cp := *s
			cp.Tracks = append([]model.Track(nil), s.Tracks...)
			out = append(out, cp)
		}
	}
	return out
}

// Tracks returns every track of kind, in set order
func (c *Catalog) Tracks(kind Kind) []Result {
	return c.Search(kind, "")
}

// Search returns the tracks of kind whose label fuzzy-matches query, best
// match first. An empty query returns everything in set order.
func (c *Catalog) Search(kind Kind, query string) []Result {
	c.mu.RLock()
	defer c.mu.RUnlock()

	query = strings.TrimSpace(query)
	var results []Result
	for _, s := range c.sets {
		if s.Kind != kind {
			continue
		}
		for _, t := range s.Tracks {
			rank := 0
			if query != "" {
				rank = fuzzy.RankMatchNormalizedFold(query, searchText(t))
				if rank < 0 {
					continue
				}
			}
			results = append(results, Result{Track: t, Set: s.Label, Query: s.Query, Rank: rank})
		}
	}

	if query != "" {
		sort.SliceStable(results, func(i, j int) bool {
			return results[i].Rank < results[j].Rank
		})
	}
	return results
}

// Len returns the number of tracks of kind
func (c *Catalog) Len(kind Kind) int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	n := 0
	for _, s := range c.sets {
		if s.Kind == kind {
			n += len(s.Tracks)
		}
	}
	return n
}

func (c *Catalog) find(kind Kind, label string) *Set {
	for _, s := range c.sets {
		if s.Kind == kind && s.Label == label {
			return s
		}
	}
	return nil
}

func searchText(t model.Track) string {
	if t.Album == "" {
		return t.Label()
	}
	return t.Label() + " " + t.Album
}
