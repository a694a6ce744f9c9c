// Package autoscroll scrolls a container while a drag hovers near (or past)
// one of its vertical edges.
package autoscroll

import (
	"log"
	"math"

	"github.com/pstuifzand/tui-mixer/internal/geom"
	"github.com/pstuifzand/tui-mixer/internal/loop"
)

// Direction of a scroll request
type Direction int

const (
	None Direction = iota
	Up
	Down
)

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	default:
		return "none"
	}
}

// Velocity is the scroll request for one frame. Speed is in container units
// per frame and is zero when Direction is None.
type Velocity struct {
	Direction Direction
	Speed     float64
}

// Delta returns the signed scroll amount
func (v Velocity) Delta() float64 {
	switch v.Direction {
	case Up:
		return -v.Speed
	case Down:
		return v.Speed
	default:
		return 0
	}
}

// Config holds the tuning values. They are defaults, not contracts.
type Config struct {
	EdgeThreshold float64 // distance from an edge where in-bounds scrolling starts
	Buffer        float64 // slack outside the container before out-of-bounds speeds apply
	MinSpeed      float64
	MaxSpeed      float64
	OutBaseSpeed  float64
	OutMaxSpeed   float64
	OutScale      float64 // extra speed per unit of distance past the buffer
}

// DefaultConfig returns pixel-scale defaults
func DefaultConfig() Config {
	return Config{
		EdgeThreshold: 80,
		Buffer:        5,
		MinSpeed:      2,
		MaxSpeed:      20,
		OutBaseSpeed:  25,
		OutMaxSpeed:   60,
		OutScale:      0.5,
	}
}

// Compute decides direction and speed for a cursor at y over a container
// whose visible area is bounds.
func (cfg Config) Compute(bounds geom.Rect, y float64) Velocity {
	top, bottom := bounds.Top(), bounds.Bottom()

	switch {
	case y < top-cfg.Buffer:
		return Velocity{Direction: Up, Speed: cfg.outOfBounds(top - cfg.Buffer - y)}
	case y > bottom+cfg.Buffer:
		return Velocity{Direction: Down, Speed: cfg.outOfBounds(y - bottom - cfg.Buffer)}
	}

	if cfg.EdgeThreshold <= 0 {
		return Velocity{}
	}

	fromTop := math.Max(0, y-top)
	fromBottom := math.Max(0, bottom-y)

	if fromTop < cfg.EdgeThreshold && fromTop <= fromBottom {
		return Velocity{Direction: Up, Speed: cfg.inBounds(fromTop)}
	}
	if fromBottom < cfg.EdgeThreshold {
		return Velocity{Direction: Down, Speed: cfg.inBounds(fromBottom)}
	}
	return Velocity{}
}

// inBounds eases quadratically from MinSpeed at the threshold to MaxSpeed at
// the edge
func (cfg Config) inBounds(distance float64) float64 {
	proximity := 1 - distance/cfg.EdgeThreshold
	return cfg.MinSpeed + (cfg.MaxSpeed-cfg.MinSpeed)*proximity*proximity
}

func (cfg Config) outOfBounds(distance float64) float64 {
	return math.Min(cfg.OutBaseSpeed+distance*cfg.OutScale, cfg.OutMaxSpeed)
}

// Container is the scrollable area being driven
type Container interface {
	// Bounds returns the visible rectangle, or false once the container is gone
	Bounds() (geom.Rect, bool)
	// CanScroll reports whether the container is not yet at its limit in dir
	CanScroll(dir Direction) bool
	ScrollBy(delta float64)
}

// Controller runs the per-frame scroll loop
type Controller struct {
	cfg       Config
	sched     loop.Scheduler
	container Container
	logger    *log.Logger

	y        float64
	running  bool
	frame    loop.FrameID
	disposed bool
	last     Velocity
}

// New creates a stopped controller for container
func New(sched loop.Scheduler, container Container, cfg Config) *Controller {
	return &Controller{
		cfg:       cfg,
		sched:     sched,
		container: container,
		logger:    log.New(log.Writer(), "[SCROLL] ", log.LstdFlags|log.Lshortfile),
	}
}

// SetLogger replaces the diagnostic logger
func (c *Controller) SetLogger(l *log.Logger) {
	c.logger = l
}

// Update moves the tracked cursor to y. The loop starts when y asks for a
// scroll and keeps running with the new position when it already runs.
func (c *Controller) Update(y float64) {
	if c.disposed {
		return
	}
	c.y = y
	if c.running {
		return
	}

	bounds, ok := c.container.Bounds()
	if !ok {
		return
	}
	v := c.cfg.Compute(bounds, y)
	if v.Direction == None || !c.container.CanScroll(v.Direction) {
		return
	}

	c.running = true
	c.frame = c.sched.RequestFrame(c.tick)
}

func (c *Controller) tick() {
	c.frame = 0
	if c.disposed || !c.running {
		return
	}

	bounds, ok := c.container.Bounds()
	if !ok {
		c.Stop()
		return
	}
	v := c.cfg.Compute(bounds, c.y)
	if v.Direction == None {
		c.Stop()
		return
	}
	if !c.container.CanScroll(v.Direction) {
		c.logger.Printf("reached %s limit, stopping", v.Direction)
		c.Stop()
		return
	}

	c.container.ScrollBy(v.Delta())
	c.last = v
	c.frame = c.sched.RequestFrame(c.tick)
}

// Stop halts the loop. Safe to call when not running.
func (c *Controller) Stop() {
	if c.frame != 0 {
		c.sched.CancelFrame(c.frame)
		c.frame = 0
	}
	c.running = false
	c.last = Velocity{}
}

// Running reports whether the loop is active
func (c *Controller) Running() bool {
	return c.running
}

// Last returns the velocity applied on the most recent frame
func (c *Controller) Last() Velocity {
	return c.last
}

// Dispose stops the loop for good
func (c *Controller) Dispose() {
	c.Stop()
	c.disposed = true
}
