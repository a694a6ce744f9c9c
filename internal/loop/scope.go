package loop

import "sync"

// Scope collects the cleanups of one adapter or controller. Dispose runs them
// in reverse order exactly once.
type Scope struct {
	mu       sync.Mutex
	cleanups []func()
	disposed bool
}

// Add registers a cleanup. When the scope is already disposed the cleanup
// runs immediately.
func (s *Scope) Add(fn func()) {
	s.mu.Lock()
	if s.disposed {
		s.mu.Unlock()
		fn()
		return
	}
	s.cleanups = append(s.cleanups, fn)
	s.mu.Unlock()
}

// Dispose runs all cleanups, last registered first
func (s *Scope) Dispose() {
	s.mu.Lock()
	if s.disposed {
		s.mu.Unlock()
		return
	}
	s.disposed = true
	cleanups := s.cleanups
	s.cleanups = nil
	s.mu.Unlock()

	for i := len(cleanups) - 1; i >= 0; i-- {
		cleanups[i]()
	}
}

// Disposed reports whether Dispose has been called
func (s *Scope) Disposed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.disposed
}
