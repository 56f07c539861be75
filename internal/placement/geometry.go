package placement

// Point is a position in host layout units. The engine never assumes a
// unit: the terminal host passes cells, a pixel host would pass pixels.
type Point struct {
	X float64
	Y float64
}

// Size is a width/height pair in host layout units.
type Size struct {
	Width  float64
	Height float64
}

// Rect is an axis-aligned rectangle anchored at its top-left corner.
type Rect struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// NewRect returns a Rect with the given top-left corner and size.
func NewRect(x, y, width, height float64) Rect {
	return Rect{X: x, Y: y, Width: width, Height: height}
}

// MinX returns the left edge.
func (r Rect) MinX() float64 { return r.X }

// MaxX returns the right edge.
func (r Rect) MaxX() float64 { return r.X + r.Width }

// MinY returns the top edge.
func (r Rect) MinY() float64 { return r.Y }

// MaxY returns the bottom edge.
func (r Rect) MaxY() float64 { return r.Y + r.Height }

// Size returns the rectangle's dimensions.
func (r Rect) Size() Size {
	return Size{Width: r.Width, Height: r.Height}
}

// Center returns the midpoint of the rectangle.
func (r Rect) Center() Point {
	return Point{X: r.X + r.Width/2, Y: r.Y + r.Height/2}
}

// TopCenter returns the midpoint of the top edge.
func (r Rect) TopCenter() Point {
	return Point{X: r.X + r.Width/2, Y: r.Y}
}

// BottomCenter returns the midpoint of the bottom edge.
func (r Rect) BottomCenter() Point {
	return Point{X: r.X + r.Width/2, Y: r.Y + r.Height}
}

// Contains reports whether p falls inside the rectangle. Points on the
// right or bottom edge are outside.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.MinX() && p.X < r.MaxX() && p.Y >= r.MinY() && p.Y < r.MaxY()
}

// Insets describes reserved space along each viewport edge, such as a
// status bar or window chrome, that popups must not cover.
type Insets struct {
	Top    float64
	Right  float64
	Bottom float64
	Left   float64
}
