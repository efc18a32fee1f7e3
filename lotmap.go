package lotmap

import (
	"image"
	"math"
)

// Vec2 is a 2D vector used for pixel positions and offsets.
type Vec2 struct {
	X, Y float64
}

// Rect is an axis-aligned rectangle in pixel space. The coordinate system has
// its origin at the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// IsEmpty reports whether the rectangle covers no area.
func (r Rect) IsEmpty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Intersects reports whether r and other overlap.
// Adjacent rectangles (sharing only an edge) are considered intersecting.
func (r Rect) Intersects(other Rect) bool {
	return r.X <= other.X+other.Width &&
		r.X+r.Width >= other.X &&
		r.Y <= other.Y+other.Height &&
		r.Y+r.Height >= other.Y
}

// Union returns the smallest rectangle containing both r and other. An empty
// operand is ignored.
func (r Rect) Union(other Rect) Rect {
	if r.IsEmpty() {
		return other
	}
	if other.IsEmpty() {
		return r
	}
	x0 := math.Min(r.X, other.X)
	y0 := math.Min(r.Y, other.Y)
	x1 := math.Max(r.X+r.Width, other.X+other.Width)
	y1 := math.Max(r.Y+r.Height, other.Y+other.Height)
	return Rect{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}
}

// Adjusted grows each edge outward by the given amounts. Negative values
// shrink it.
func (r Rect) Adjusted(left, top, right, bottom float64) Rect {
	return Rect{
		X:      r.X - left,
		Y:      r.Y - top,
		Width:  r.Width + left + right,
		Height: r.Height + top + bottom,
	}
}

// Margins is per-edge pixel padding beyond a layer's nominal cell bounds.
type Margins struct {
	Left, Top, Right, Bottom int
}

// Max returns the element-wise maximum of m and other.
func (m Margins) Max(other Margins) Margins {
	return Margins{
		Left:   max(m.Left, other.Left),
		Top:    max(m.Top, other.Top),
		Right:  max(m.Right, other.Right),
		Bottom: max(m.Bottom, other.Bottom),
	}
}

// unionTileRects unions two tile rectangles, treating an empty rectangle as
// "no bounds" rather than as a point at its origin.
func unionTileRects(a, b image.Rectangle) image.Rectangle {
	if a.Empty() {
		return b
	}
	if b.Empty() {
		return a
	}
	return a.Union(b)
}

// Orientation selects how tile coordinates map to pixels.
type Orientation uint8

const (
	OrientationUnknown        Orientation = iota // inherit from the map being rendered
	OrientationOrthogonal                        // square grid
	OrientationIsometric                         // diamond grid; upper levels stored pre-shifted by levelTileShift
	OrientationLevelIsometric                    // diamond grid; upper levels shifted in pixel space by the renderer
)

// String returns the orientation name used in map files.
func (o Orientation) String() string {
	switch o {
	case OrientationOrthogonal:
		return "orthogonal"
	case OrientationIsometric:
		return "isometric"
	case OrientationLevelIsometric:
		return "levelisometric"
	default:
		return "unknown"
	}
}

// ParseOrientation converts a map-file orientation name back to an Orientation.
func ParseOrientation(s string) Orientation {
	switch s {
	case "orthogonal":
		return OrientationOrthogonal
	case "isometric":
		return OrientationIsometric
	case "levelisometric":
		return OrientationLevelIsometric
	default:
		return OrientationUnknown
	}
}

// levelTileShift is how many tiles (on both axes) one level is offset by
// when an isometric map stores upper levels pre-shifted.
const levelTileShift = 3
