// Package scrollmem remembers a list container's scroll offset across a
// mutation so it can be put back once the new contents are on screen.
package scrollmem

// Container is a scrollable list container
type Container interface {
	ScrollOffset() int
	SetScrollOffset(offset int)
}

// Memory holds at most one captured offset. Create one per list container.
type Memory struct {
	captured *int
}

// New returns an empty Memory
func New() *Memory {
	return &Memory{}
}

// Capture records the container's current offset. A nil container is ignored.
func (m *Memory) Capture(c Container) {
	if isNil(c) {
		return
	}
	offset := c.ScrollOffset()
	m.captured = &offset
}

// Restore applies the captured offset to the container and reports whether
// anything was restored. The captured value is kept until Clear.
func (m *Memory) Restore(c Container) bool {
	if m.captured == nil || isNil(c) {
		return false
	}
	c.SetScrollOffset(*m.captured)
	return true
}

// Clear forgets the captured offset
func (m *Memory) Clear() {
	m.captured = nil
}

// Captured returns the captured offset, if any
func (m *Memory) Captured() (int, bool) {
	if m.captured == nil {
		return 0, false
	}
	return *m.captured, true
}

// Gone is implemented by containers that can disappear before a restore
// (a closed panel, a torn-down view).
type Gone interface {
	Gone() bool
}

func isNil(c Container) bool {
	if c == nil {
		return true
	}
	if g, ok := c.(Gone); ok {
		return g.Gone()
	}
	return false
}
