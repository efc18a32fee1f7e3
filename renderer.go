package lotmap

import "image"

// Renderer converts between tile and pixel coordinates for one render
// orientation. The compositing engine only calls it; drawing happens
// elsewhere (see package paint).
type Renderer interface {
	// TileToPixel converts a tile-space position on level to pixels.
	TileToPixel(x, y float64, level int) Vec2
	// PixelToTile is the inverse of TileToPixel.
	PixelToTile(x, y float64, level int) Vec2
	// BoundingRect returns the pixel rectangle covering tile rect r on level.
	// An empty r yields an empty Rect.
	BoundingRect(r image.Rectangle, level int) Rect
	// MaxLevel is the highest level the renderer draws.
	MaxLevel() int
}

// GridRenderer is the stock Renderer for orthogonal, isometric and
// level-isometric maps.
//
// In level-isometric mode every level is drawn levelTileShift tiles higher on
// screen than the one below it, and the whole map is pushed down so the top
// level still starts at y >= 0.
type GridRenderer struct {
	Orientation Orientation
	TileWidth   int
	TileHeight  int
	// MapWidth and MapHeight size the isometric origin (in tiles).
	MapWidth  int
	MapHeight int
	// Levels is the highest drawn level; see MaxLevel.
	Levels int
}

// NewGridRenderer creates a renderer for m drawn in orient. Passing
// OrientationUnknown uses the map's own orientation.
func NewGridRenderer(m *Map, orient Orientation, maxLevel int) *GridRenderer {
	if orient == OrientationUnknown {
		orient = m.Orientation
	}
	return &GridRenderer{
		Orientation: orient,
		TileWidth:   m.TileWidth,
		TileHeight:  m.TileHeight,
		MapWidth:    m.Width,
		MapHeight:   m.Height,
		Levels:      maxLevel,
	}
}

// MaxLevel returns the highest drawn level.
func (r *GridRenderer) MaxLevel() int {
	return r.Levels
}

// levelOffsetY is the vertical pixel shift applied to level.
func (r *GridRenderer) levelOffsetY(level int) float64 {
	if r.Orientation != OrientationLevelIsometric {
		return 0
	}
	return float64((r.Levels-level)*levelTileShift) * float64(r.TileHeight)
}

// TileToPixel converts a tile position on level to pixels.
func (r *GridRenderer) TileToPixel(x, y float64, level int) Vec2 {
	tw := float64(r.TileWidth)
	th := float64(r.TileHeight)
	switch r.Orientation {
	case OrientationIsometric, OrientationLevelIsometric:
		originX := float64(r.MapHeight) * tw / 2
		return Vec2{
			X: (x-y)*tw/2 + originX,
			Y: (x+y)*th/2 + r.levelOffsetY(level),
		}
	default:
		return Vec2{X: x * tw, Y: y * th}
	}
}

// PixelToTile converts pixels on level to a (fractional) tile position.
func (r *GridRenderer) PixelToTile(x, y float64, level int) Vec2 {
	tw := float64(r.TileWidth)
	th := float64(r.TileHeight)
	switch r.Orientation {
	case OrientationIsometric, OrientationLevelIsometric:
		originX := float64(r.MapHeight) * tw / 2
		my := (y - r.levelOffsetY(level)) / th
		mx := (x - originX) / tw
		return Vec2{X: my + mx, Y: my - mx}
	default:
		return Vec2{X: x / tw, Y: y / th}
	}
}

// BoundingRect returns the pixel rectangle covering tile rect tr on level.
func (r *GridRenderer) BoundingRect(tr image.Rectangle, level int) Rect {
	if tr.Empty() {
		return Rect{}
	}
	switch r.Orientation {
	case OrientationIsometric, OrientationLevelIsometric:
		top := r.TileToPixel(float64(tr.Min.X), float64(tr.Min.Y), level)
		right := r.TileToPixel(float64(tr.Max.X), float64(tr.Min.Y), level)
		bottom := r.TileToPixel(float64(tr.Max.X), float64(tr.Max.Y), level)
		left := r.TileToPixel(float64(tr.Min.X), float64(tr.Max.Y), level)
		return Rect{
			X:      left.X,
			Y:      top.Y,
			Width:  right.X - left.X,
			Height: bottom.Y - top.Y,
		}
	default:
		p := r.TileToPixel(float64(tr.Min.X), float64(tr.Min.Y), level)
		return Rect{
			X:      p.X,
			Y:      p.Y,
			Width:  float64(tr.Dx() * r.TileWidth),
			Height: float64(tr.Dy() * r.TileHeight),
		}
	}
}
