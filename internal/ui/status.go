package ui

import (
	"sync"
	"time"
)

// StatusTimeout is how long a status message stays on screen
const StatusTimeout = 5 * time.Second

// Message represents a status message with timestamp
type Message struct {
	Text      string
	Timestamp time.Time
}

// Status holds the current status line message and the last few before it
type Status struct {
	mu       sync.Mutex
	messages []Message
	maxSize  int
	now      func() time.Time
}

// NewStatus creates a status keeping up to maxSize messages
func NewStatus(maxSize int, now func() time.Time) *Status {
	if now == nil {
		now = time.Now
	}
	return &Status{maxSize: maxSize, now: now}
}

// Set shows text on the status line. Empty text is ignored.
func (s *Status) Set(text string) {
	if text == "" {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.messages = append(s.messages, Message{Text: text, Timestamp: s.now()})
	if len(s.messages) > s.maxSize {
		s.messages = s.messages[len(s.messages)-s.maxSize:]
	}
}

// Current returns the newest message if it has not timed out
func (s *Status) Current() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.messages) == 0 {
		return ""
	}
	last := s.messages[len(s.messages)-1]
	if s.now().Sub(last.Timestamp) > StatusTimeout {
		return ""
	}
	return last.Text
}

// History returns the kept messages, newest first
func (s *Status) History() []Message {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := make([]Message, len(s.messages))
	for i, msg := range s.messages {
		result[len(s.messages)-1-i] = msg
	}
	return result
}
