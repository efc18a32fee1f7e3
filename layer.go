package lotmap

import "image"

// GID flag bits (same convention as Tiled TMX format).
const (
	TileFlipH    uint32 = 1 << 31 // horizontal flip
	TileFlipV    uint32 = 1 << 30 // vertical flip
	TileFlipD    uint32 = 1 << 29 // diagonal flip (90° rotation)
	TileFlagMask uint32 = TileFlipH | TileFlipV | TileFlipD
)

// LayerKind tags the concrete type behind a Layer.
type LayerKind uint8

const (
	LayerKindTile   LayerKind = iota // *TileLayer
	LayerKindObject                  // *ObjectGroup
	LayerKindImage                   // *ImageLayer
	LayerKindPath                    // *PathLayer
)

// Layer is one entry in a Map's ordered layer list. Use Kind to select the
// concrete type instead of type-switching on every call site.
type Layer interface {
	Kind() LayerKind
	Name() string
	SetName(name string)
	Visible() bool
	SetVisible(visible bool)
	Opacity() float64
	SetOpacity(opacity float64)
	Position() image.Point
	SetPosition(p image.Point)
	base() *layerBase
}

// layerBase holds the fields every layer kind shares.
type layerBase struct {
	name     string
	visible  bool
	opacity  float64
	position image.Point
}

func newLayerBase(name string) layerBase {
	return layerBase{name: name, visible: true, opacity: 1}
}

func (l *layerBase) Name() string              { return l.name }
func (l *layerBase) SetName(name string)       { l.name = name }
func (l *layerBase) Visible() bool             { return l.visible }
func (l *layerBase) SetVisible(visible bool)   { l.visible = visible }
func (l *layerBase) Opacity() float64          { return l.opacity }
func (l *layerBase) Position() image.Point     { return l.position }
func (l *layerBase) SetPosition(p image.Point) { l.position = p }
func (l *layerBase) base() *layerBase          { return l }

// SetOpacity clamps opacity to [0, 1].
func (l *layerBase) SetOpacity(opacity float64) {
	l.opacity = clampOpacity(opacity)
}

func clampOpacity(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Tileset is a shared tile image source. Tilesets are shared by pointer
// between maps; their lifetime belongs to whoever loaded them.
type Tileset struct {
	Name        string
	ImageSource string
	TileWidth   int
	TileHeight  int
	Columns     int
	TileCount   int
}

// Cell is one grid position of a TileLayer. The zero Cell is empty.
type Cell struct {
	Tileset *Tileset
	TileID  int
	Flags   uint32 // TileFlipH | TileFlipV | TileFlipD
}

// IsEmpty reports whether the cell holds no tile.
func (c Cell) IsEmpty() bool {
	return c.Tileset == nil
}

// TileLayer is a rectangular grid of cells.
type TileLayer struct {
	layerBase
	width  int
	height int
	cells  []Cell // row-major, len = width * height

	// Cached content bounds in layer-local coordinates.
	contentBounds image.Rectangle
	maxTileSize   image.Point
	boundsDirty   bool

	tileWidth  int // owning map's tile size, used for draw margins
	tileHeight int
}

// NewTileLayer creates an empty w x h tile layer.
func NewTileLayer(name string, w, h int) *TileLayer {
	return &TileLayer{
		layerBase:   newLayerBase(name),
		width:       w,
		height:      h,
		cells:       make([]Cell, w*h),
		boundsDirty: true,
	}
}

// Kind returns LayerKindTile.
func (l *TileLayer) Kind() LayerKind { return LayerKindTile }

// Width returns the layer width in tiles.
func (l *TileLayer) Width() int { return l.width }

// Height returns the layer height in tiles.
func (l *TileLayer) Height() int { return l.height }

// Contains reports whether the map-space tile position p is inside the layer.
func (l *TileLayer) Contains(p image.Point) bool {
	p = p.Sub(l.position)
	return p.X >= 0 && p.X < l.width && p.Y >= 0 && p.Y < l.height
}

// CellAt returns the cell at the map-space position p, or the empty cell when
// p is outside the layer.
func (l *TileLayer) CellAt(p image.Point) Cell {
	if !l.Contains(p) {
		return Cell{}
	}
	p = p.Sub(l.position)
	return l.cells[p.Y*l.width+p.X]
}

// SetCell replaces the cell at the map-space position p. Out-of-range
// positions are ignored.
func (l *TileLayer) SetCell(p image.Point, c Cell) {
	if !l.Contains(p) {
		return
	}
	p = p.Sub(l.position)
	l.cells[p.Y*l.width+p.X] = c
	l.boundsDirty = true
}

// Fill sets every cell of the layer to c.
func (l *TileLayer) Fill(c Cell) {
	for i := range l.cells {
		l.cells[i] = c
	}
	l.boundsDirty = true
}

// IsEmpty reports whether the layer has no non-empty cells.
func (l *TileLayer) IsEmpty() bool {
	l.refresh()
	return l.contentBounds.Empty()
}

// Bounds returns the map-space tile rectangle covering all non-empty cells.
// An empty layer has empty bounds.
func (l *TileLayer) Bounds() image.Rectangle {
	l.refresh()
	if l.contentBounds.Empty() {
		return image.Rectangle{}
	}
	return l.contentBounds.Add(l.position)
}

// DrawMargins returns the pixel padding needed around the layer's cells so
// oversized tile images are never clipped. Top and Right hold the largest
// tile height and width used (at least the map's tile size).
func (l *TileLayer) DrawMargins() Margins {
	l.refresh()
	return Margins{
		Top:   max(l.maxTileSize.Y, l.tileHeight),
		Right: max(l.maxTileSize.X, l.tileWidth),
	}
}

// UsesTileset reports whether any cell references ts.
func (l *TileLayer) UsesTileset(ts *Tileset) bool {
	for _, c := range l.cells {
		if c.Tileset == ts {
			return true
		}
	}
	return false
}

// invalidate drops the cached bounds, e.g. after a tileset's tile size
// changed.
func (l *TileLayer) invalidate() {
	l.boundsDirty = true
}

// refresh recomputes cached content bounds and max tile size.
func (l *TileLayer) refresh() {
	if !l.boundsDirty {
		return
	}
	l.boundsDirty = false
	minX, minY := l.width, l.height
	maxX, maxY := -1, -1
	var tileSize image.Point
	for y := 0; y < l.height; y++ {
		row := y * l.width
		for x := 0; x < l.width; x++ {
			c := l.cells[row+x]
			if c.IsEmpty() {
				continue
			}
			minX = min(minX, x)
			minY = min(minY, y)
			maxX = max(maxX, x)
			maxY = max(maxY, y)
			tileSize.X = max(tileSize.X, c.Tileset.TileWidth)
			tileSize.Y = max(tileSize.Y, c.Tileset.TileHeight)
		}
	}
	if maxX < 0 {
		l.contentBounds = image.Rectangle{}
	} else {
		l.contentBounds = image.Rect(minX, minY, maxX+1, maxY+1)
	}
	l.maxTileSize = tileSize
}

// MapObject is a positioned object inside an ObjectGroup.
type MapObject struct {
	Name     string
	Type     string
	Position image.Point // tile space
	Size     image.Point // tile space
}

// ObjectGroup is a layer of map objects.
type ObjectGroup struct {
	layerBase
	objects []*MapObject
}

// NewObjectGroup creates an empty object group.
func NewObjectGroup(name string) *ObjectGroup {
	return &ObjectGroup{layerBase: newLayerBase(name)}
}

// Kind returns LayerKindObject.
func (g *ObjectGroup) Kind() LayerKind { return LayerKindObject }

// AddObject appends obj to the group.
func (g *ObjectGroup) AddObject(obj *MapObject) {
	g.objects = append(g.objects, obj)
}

// RemoveObject removes obj from the group. No-op if absent.
func (g *ObjectGroup) RemoveObject(obj *MapObject) {
	for i, o := range g.objects {
		if o == obj {
			copy(g.objects[i:], g.objects[i+1:])
			g.objects[len(g.objects)-1] = nil
			g.objects = g.objects[:len(g.objects)-1]
			return
		}
	}
}

// Objects returns the object list. The returned slice MUST NOT be mutated.
func (g *ObjectGroup) Objects() []*MapObject {
	return g.objects
}

// ImageLayer displays a single image.
type ImageLayer struct {
	layerBase
	ImageSource string
}

// NewImageLayer creates an image layer.
func NewImageLayer(name, source string) *ImageLayer {
	return &ImageLayer{layerBase: newLayerBase(name), ImageSource: source}
}

// Kind returns LayerKindImage.
func (l *ImageLayer) Kind() LayerKind { return LayerKindImage }

// PathLayer holds polyline paths in tile space.
type PathLayer struct {
	layerBase
	Paths [][]image.Point
}

// NewPathLayer creates an empty path layer.
func NewPathLayer(name string) *PathLayer {
	return &PathLayer{layerBase: newLayerBase(name)}
}

// Kind returns LayerKindPath.
func (l *PathLayer) Kind() LayerKind { return LayerKindPath }
