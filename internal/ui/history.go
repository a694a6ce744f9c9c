package ui

import (
	"log"

	"github.com/pstuifzand/tui-mixer/internal/history"
)

// History is the in-memory side of a persisted input history. Up and Down
// walk it; the text typed before the walk started comes back at the end.
type History struct {
	entries    []string
	index      int // -1 when not navigating
	maxEntries int
	pending    string
	manager    *history.Manager
	filename   string
}

// NewHistory creates an unpersisted history
func NewHistory(maxEntries int) *History {
	return &History{index: -1, maxEntries: maxEntries}
}

// NewHistoryWithManager creates a history backed by filename in the
// manager's directory. A load error still returns a usable empty history.
func NewHistoryWithManager(manager *history.Manager, filename string) (*History, error) {
	limit := history.DefaultLimit
	if manager != nil && manager.Limit > 0 {
		limit = manager.Limit
	}
	h := &History{index: -1, maxEntries: limit, manager: manager, filename: filename}
	if manager == nil {
		return h, nil
	}

	entries, err := manager.Load(filename)
	if err != nil {
		return h, err
	}
	if len(entries) > limit {
		entries = entries[len(entries)-limit:]
	}
	h.entries = entries
	return h, nil
}

// Add appends an entry, skipping blanks and immediate repeats, and persists
// the history when it has a manager
func (h *History) Add(entry string) {
	h.Reset()
	if entry == "" || (len(h.entries) > 0 && h.entries[len(h.entries)-1] == entry) {
		return
	}

	h.entries = append(h.entries, entry)
	if len(h.entries) > h.maxEntries {
		h.entries = h.entries[len(h.entries)-h.maxEntries:]
	}

	if err := h.Save(); err != nil {
		log.Printf("failed to save %s history: %v", h.filename, err)
	}
}

// Save persists the entries
func (h *History) Save() error {
	if h.manager == nil || h.filename == "" {
		return nil
	}
	return h.manager.Save(h.filename, h.entries)
}

// Previous steps back; current is what the input held before the step
func (h *History) Previous(current string) (string, bool) {
	if len(h.entries) == 0 {
		return "", false
	}
	switch {
	case h.index < 0:
		h.pending = current
		h.index = len(h.entries) - 1
	case h.index > 0:
		h.index--
	}
	return h.entries[h.index], true
}

// Next steps forward, returning the pending input after the newest entry
func (h *History) Next() (string, bool) {
	if h.index < 0 {
		return "", false
	}
	h.index++
	if h.index >= len(h.entries) {
		pending := h.pending
		h.Reset()
		return pending, true
	}
	return h.entries[h.index], true
}

// Reset leaves navigation
func (h *History) Reset() {
	h.index = -1
	h.pending = ""
}

// IsNavigating reports whether Up has been pressed since the last Reset
func (h *History) IsNavigating() bool {
	return h.index >= 0
}

// GetAll returns a copy of the entries, oldest first
func (h *History) GetAll() []string {
	return append([]string(nil), h.entries...)
}

// Len returns the number of entries
func (h *History) Len() int {
	return len(h.entries)
}
