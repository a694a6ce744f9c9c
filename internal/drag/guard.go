package drag

import (
	"fmt"
	"log"
	"runtime/debug"
)

// PanicError is returned by Guard when the guarded function panicked
type PanicError struct {
	Name  string
	Value any
	Stack []byte
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Name, e.Value)
}

// Guard runs fn inside a recovery boundary. If fn panics the active drag is
// cancelled before the panic is turned into an error, so the application can
// never be left dragging with no way back to idle.
func (c *Coordinator) Guard(name string, fn func()) (err error) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		cancelled := c.CancelDrag()
		pe := &PanicError{Name: name, Value: r, Stack: debug.Stack()}
		c.logger.Printf("recovered from %v (drag cancelled: %v)\n%s", pe, cancelled, pe.Stack)
		err = pe
	}()

	fn()
	return nil
}

// Safely calls a caller-supplied callback. A panicking callback is logged and
// swallowed so it cannot interrupt the caller's own state transition or
// cleanup. Reports whether fn returned normally.
func Safely(logger *log.Logger, name string, fn func()) (ok bool) {
	if fn == nil {
		return true
	}
	defer func() {
		if r := recover(); r != nil {
			if logger != nil {
				logger.Printf("%s callback panicked: %v", name, r)
			}
			ok = false
		}
	}()

	fn()
	return true
}
