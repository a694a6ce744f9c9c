// Package geom holds the small amount of geometry shared by the drop and
// auto-scroll logic. Units are whatever the host uses (terminal cells here).
package geom

// Rect is an axis-aligned rectangle
type Rect struct {
	X, Y, W, H float64
}

// Top returns the upper edge
func (r Rect) Top() float64 { return r.Y }

// Bottom returns the lower edge
func (r Rect) Bottom() float64 { return r.Y + r.H }

// MidY returns the vertical midpoint
func (r Rect) MidY() float64 { return r.Y + r.H/2 }

// Contains reports whether the point lies inside the rectangle
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// ContainsY reports whether y lies between the top and bottom edges
func (r Rect) ContainsY(y float64) bool {
	return y >= r.Top() && y <= r.Bottom()
}

// Empty reports whether the rectangle has no area
func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

// Clamp limits v to [lo, hi]
func Clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
