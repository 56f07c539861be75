// Package placement decides where an anchored popup goes relative to its
// target: which quadrant of the free space around the target it occupies,
// how large it may grow, which of its corners attaches to the target, and
// which way its pointer arrow faces.
//
// Everything here is a pure function of the geometry passed in. Hosts
// re-resolve whenever the target or viewport changes, after their layout
// has settled.
package placement

const (
	// edgePadding is the gap kept between the popup and the usable
	// viewport edge on the chosen sides.
	edgePadding = 24.0

	// cornerRadius is the rounding applied to the three corners that do
	// not point at the target.
	cornerRadius = 16.0
)

// Quadrant identifies which region of the space around the target the
// popup occupies.
type Quadrant int

const (
	QuadrantAboveLeft Quadrant = iota
	QuadrantAboveRight
	QuadrantBelowLeft
	QuadrantBelowRight
)

// String returns the quadrant name.
func (q Quadrant) String() string {
	switch q {
	case QuadrantAboveLeft:
		return "above-left"
	case QuadrantAboveRight:
		return "above-right"
	case QuadrantBelowLeft:
		return "below-left"
	case QuadrantBelowRight:
		return "below-right"
	default:
		return "unknown"
	}
}

// Above reports whether the popup sits above the target.
func (q Quadrant) Above() bool {
	return q == QuadrantAboveLeft || q == QuadrantAboveRight
}

// Left reports whether the popup sits on the target's left side.
func (q Quadrant) Left() bool {
	return q == QuadrantAboveLeft || q == QuadrantBelowLeft
}

// Corner identifies one corner of the popup body.
type Corner int

const (
	CornerTopLeft Corner = iota
	CornerTopRight
	CornerBottomLeft
	CornerBottomRight
)

// String returns the corner name.
func (c Corner) String() string {
	switch c {
	case CornerTopLeft:
		return "top-left"
	case CornerTopRight:
		return "top-right"
	case CornerBottomLeft:
		return "bottom-left"
	case CornerBottomRight:
		return "bottom-right"
	default:
		return "unknown"
	}
}

// ArrowDirection is the way the pointer indicator faces. It always points
// back toward the target, diagonally opposite the popup's quadrant.
type ArrowDirection int

const (
	ArrowUpLeft ArrowDirection = iota
	ArrowUpRight
	ArrowDownLeft
	ArrowDownRight
)

// String returns the direction name.
func (a ArrowDirection) String() string {
	switch a {
	case ArrowUpLeft:
		return "up-left"
	case ArrowUpRight:
		return "up-right"
	case ArrowDownLeft:
		return "down-left"
	case ArrowDownRight:
		return "down-right"
	default:
		return "unknown"
	}
}

// CornerRadii holds the rounding radius for each popup corner. The corner
// coincident with the target anchor stays square so the popup reads as a
// speech bubble pointing at the target.
type CornerRadii struct {
	TopLeft     float64
	TopRight    float64
	BottomLeft  float64
	BottomRight float64
}

// Placement is the resolved geometry for one popup instance.
type Placement struct {
	// Quadrant of the free space around the target the popup occupies.
	Quadrant Quadrant

	// MaxWidth and MaxHeight cap the popup's rendered size. Never
	// negative; zero means there is no room on the chosen sides.
	MaxWidth  float64
	MaxHeight float64

	// TargetAnchor is the point on the target the popup attaches to:
	// top-center when the popup is above, bottom-center when below.
	TargetAnchor Point

	// PopupCorner is the corner of the popup body coincident with
	// TargetAnchor.
	PopupCorner Corner

	// Radii is the per-corner rounding, square at PopupCorner.
	Radii CornerRadii

	// Arrow is the direction the pointer indicator faces.
	Arrow ArrowDirection

	// ArrowLeading is true when the indicator renders before the content
	// (popup on the target's right side); otherwise the content renders
	// first and the indicator trails.
	ArrowLeading bool
}

// Origin returns the popup's top-left corner for a rendered size, such
// that PopupCorner lands on TargetAnchor.
func (p Placement) Origin(popup Size) Point {
	o := p.TargetAnchor
	switch p.PopupCorner {
	case CornerTopRight:
		o.X -= popup.Width
	case CornerBottomLeft:
		o.Y -= popup.Height
	case CornerBottomRight:
		o.X -= popup.Width
		o.Y -= popup.Height
	}
	return o
}

// Resolve computes the placement for a popup anchored to target within
// viewport. Insets shrink the usable viewport on each side; free space is
// measured from the target's bounding box to the inset edges and clamps
// at zero when the target overlaps an inset region.
func Resolve(target, viewport Rect, insets Insets) Placement {
	spaceLeft := max(0, target.MinX()-(viewport.MinX()+insets.Left))
	spaceRight := max(0, (viewport.MaxX()-insets.Right)-target.MaxX())
	spaceAbove := max(0, target.MinY()-(viewport.MinY()+insets.Top))
	spaceBelow := max(0, (viewport.MaxY()-insets.Bottom)-target.MaxY())

	p := resolveSpace(spaceLeft, spaceRight, spaceAbove, spaceBelow, target.Size())
	if p.Quadrant.Above() {
		p.TargetAnchor = target.TopCenter()
	} else {
		p.TargetAnchor = target.BottomCenter()
	}
	return p
}

// resolveSpace picks the quadrant and sizing from the free space on each
// side of the target. TargetAnchor is left for the caller, which knows
// the target's absolute position.
func resolveSpace(left, right, above, below float64, target Size) Placement {
	// Larger side wins; ties favor left and above.
	onLeft := left >= right
	onTop := above >= below

	var q Quadrant
	switch {
	case onTop && onLeft:
		q = QuadrantAboveLeft
	case onTop:
		q = QuadrantAboveRight
	case onLeft:
		q = QuadrantBelowLeft
	default:
		q = QuadrantBelowRight
	}

	hSpace := right
	if onLeft {
		hSpace = left
	}
	vSpace := below
	if onTop {
		vSpace = above
	}

	// The popup may extend past the target's near edge up to its
	// midpoint, so the horizontal budget gains half the target width.
	corner := anchorCorner(q)
	return Placement{
		Quadrant:     q,
		MaxWidth:     max(0, hSpace+target.Width/2-edgePadding),
		MaxHeight:    max(0, vSpace-edgePadding),
		PopupCorner:  corner,
		Radii:        radiiFor(corner),
		Arrow:        arrowFor(q),
		ArrowLeading: !onLeft,
	}
}

// anchorCorner returns the popup corner that touches the target for a
// quadrant: the corner closest to the target.
func anchorCorner(q Quadrant) Corner {
	switch q {
	case QuadrantAboveLeft:
		return CornerBottomRight
	case QuadrantAboveRight:
		return CornerBottomLeft
	case QuadrantBelowLeft:
		return CornerTopRight
	default:
		return CornerTopLeft
	}
}

// arrowFor returns the indicator direction for a quadrant, pointing back
// at the target.
func arrowFor(q Quadrant) ArrowDirection {
	switch q {
	case QuadrantAboveLeft:
		return ArrowDownRight
	case QuadrantAboveRight:
		return ArrowDownLeft
	case QuadrantBelowLeft:
		return ArrowUpRight
	default:
		return ArrowUpLeft
	}
}

// radiiFor rounds every corner except the anchored one.
func radiiFor(square Corner) CornerRadii {
	r := CornerRadii{
		TopLeft:     cornerRadius,
		TopRight:    cornerRadius,
		BottomLeft:  cornerRadius,
		BottomRight: cornerRadius,
	}
	switch square {
	case CornerTopLeft:
		r.TopLeft = 0
	case CornerTopRight:
		r.TopRight = 0
	case CornerBottomLeft:
		r.BottomLeft = 0
	case CornerBottomRight:
		r.BottomRight = 0
	}
	return r
}
