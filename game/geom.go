package game

// Vec2 is a point or extent in world units.
// The world's origin is the bottom-left corner and y grows upward.
type Vec2 struct {
	X, Y float64
}

// Rect is an axis-aligned box anchored at its bottom-left corner.
type Rect struct {
	X, Y float64
	W, H float64
}

// RectAt builds the box occupied by something at pos with the given size.
func RectAt(pos, size Vec2) Rect {
	return Rect{X: pos.X, Y: pos.Y, W: size.X, H: size.Y}
}

func (r Rect) Left() float64   { return r.X }
func (r Rect) Right() float64  { return r.X + r.W }
func (r Rect) Bottom() float64 { return r.Y }
func (r Rect) Top() float64    { return r.Y + r.H }

// Overlaps reports whether a and b share interior area.
// Touching edges do not count.
func Overlaps(a, b Rect) bool {
	return a.Left() < b.Right() &&
		a.Right() > b.Left() &&
		a.Bottom() < b.Top() &&
		a.Top() > b.Bottom()
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
