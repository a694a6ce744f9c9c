package input

import (
	"log"

	"github.com/pstuifzand/tui-mixer/internal/drag"
	"github.com/pstuifzand/tui-mixer/internal/loop"
)

// DropEffect is what the drop target did with the dragged item
type DropEffect int

const (
	EffectNone DropEffect = iota
	EffectMove
	EffectCopy
)

// PointerOptions configures a Pointer adapter
type PointerOptions struct {
	Source   drag.Source
	Origin   string
	Disabled bool
	Subject  SubjectFunc

	OnDragStart func(item drag.Item)
	OnDragEnd   func(success bool)
	Logger      *log.Logger
}

// Pointer adapts pointer drag-start / drag-end signals
type Pointer struct {
	coord *drag.Coordinator
	opts  PointerOptions
	gen   uint64
	scope loop.Scope
}

// NewPointer creates a pointer adapter bound to coord
func NewPointer(coord *drag.Coordinator, opts PointerOptions) *Pointer {
	if opts.Logger == nil {
		opts.Logger = defaultLogger()
	}
	p := &Pointer{coord: coord, opts: opts}
	p.scope.Add(p.release)
	return p
}

// SetDisabled enables or disables the adapter
func (p *Pointer) SetDisabled(disabled bool) {
	p.opts.Disabled = disabled
}

// DragStart handles the platform drag-start signal
func (p *Pointer) DragStart() bool {
	if p.opts.Disabled || p.scope.Disposed() || p.opts.Subject == nil {
		return false
	}
	subject, ok := p.opts.Subject()
	if !ok {
		return false
	}

	item := drag.NewItem(p.opts.Origin, BuildPayload(p.opts.Source, subject))
	if !p.coord.StartDrag(item) {
		return false
	}
	p.gen = p.coord.Generation()
	item, _ = p.coord.DraggedItem()
	drag.Safely(p.opts.Logger, "pointer drag start", func() {
		if p.opts.OnDragStart != nil {
			p.opts.OnDragStart(item)
		}
	})
	return true
}

// DragEnd handles the platform drag-end signal. The coordinator is cleared on
// the next tick so the drop target can still read the dragged item.
func (p *Pointer) DragEnd(effect DropEffect) {
	if p.gen == 0 {
		return
	}
	gen := p.gen
	p.gen = 0

	success := effect != EffectNone
	requested := p.coord.RequestEnd(gen, func() {
		if p.opts.OnDragEnd != nil {
			p.opts.OnDragEnd(success)
		}
	})
	if !requested {
		p.opts.Logger.Printf("pointer drag %d already finished", gen)
	}
}

// Owns reports whether the active drag was started by this adapter
func (p *Pointer) Owns() bool {
	return p.gen != 0 && p.coord.IsDragging() && p.coord.Generation() == p.gen
}

func (p *Pointer) release() {
	if p.Owns() {
		p.opts.Logger.Printf("pointer adapter disposed mid-drag, cancelling")
		p.coord.CancelDrag()
		drag.Safely(p.opts.Logger, "pointer drag end", func() {
			if p.opts.OnDragEnd != nil {
				p.opts.OnDragEnd(false)
			}
		})
	}
	p.gen = 0
}

// Dispose releases the adapter
func (p *Pointer) Dispose() {
	p.scope.Dispose()
}
