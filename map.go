package lotmap

import "image"

// Map is an ordered stack of layers sharing one grid. Maps are produced by an
// external loader; the compositing engine never reads or writes files.
type Map struct {
	Orientation Orientation
	Width       int // in tiles
	Height      int // in tiles
	TileWidth   int // in pixels
	TileHeight  int // in pixels

	layers   []Layer
	tilesets []*Tileset
}

// NewMap creates an empty map.
func NewMap(orient Orientation, w, h, tileWidth, tileHeight int) *Map {
	return &Map{
		Orientation: orient,
		Width:       w,
		Height:      h,
		TileWidth:   tileWidth,
		TileHeight:  tileHeight,
	}
}

// Size returns the map extents as a tile rectangle anchored at (0, 0).
func (m *Map) Size() image.Rectangle {
	return image.Rect(0, 0, m.Width, m.Height)
}

// AddLayer appends layer to the top of the stack.
func (m *Map) AddLayer(layer Layer) {
	m.InsertLayer(len(m.layers), layer)
}

// InsertLayer inserts layer at index. Panics if index is out of range.
func (m *Map) InsertLayer(index int, layer Layer) {
	if layer == nil {
		panic("lotmap: cannot insert nil layer")
	}
	if index < 0 || index > len(m.layers) {
		panic("lotmap: layer index out of range")
	}
	if tl, ok := layer.(*TileLayer); ok {
		tl.tileWidth = m.TileWidth
		tl.tileHeight = m.TileHeight
	}
	m.layers = append(m.layers, nil)
	copy(m.layers[index+1:], m.layers[index:])
	m.layers[index] = layer
}

// RemoveLayerAt removes and returns the layer at index.
func (m *Map) RemoveLayerAt(index int) Layer {
	if index < 0 || index >= len(m.layers) {
		panic("lotmap: layer index out of range")
	}
	layer := m.layers[index]
	copy(m.layers[index:], m.layers[index+1:])
	m.layers[len(m.layers)-1] = nil
	m.layers = m.layers[:len(m.layers)-1]
	return layer
}

// LayerAt returns the layer at index.
func (m *Map) LayerAt(index int) Layer {
	return m.layers[index]
}

// LayerCount returns the number of layers.
func (m *Map) LayerCount() int {
	return len(m.layers)
}

// IndexOfLayer returns the index of layer, or -1.
func (m *Map) IndexOfLayer(layer Layer) int {
	for i, l := range m.layers {
		if l == layer {
			return i
		}
	}
	return -1
}

// Layers returns the layer list. The returned slice MUST NOT be mutated.
func (m *Map) Layers() []Layer {
	return m.layers
}

// TileLayers returns every tile layer in stack order.
func (m *Map) TileLayers() []*TileLayer {
	var out []*TileLayer
	for _, l := range m.layers {
		if l.Kind() == LayerKindTile {
			out = append(out, l.(*TileLayer))
		}
	}
	return out
}

// ObjectGroups returns every object group in stack order.
func (m *Map) ObjectGroups() []*ObjectGroup {
	var out []*ObjectGroup
	for _, l := range m.layers {
		if l.Kind() == LayerKindObject {
			out = append(out, l.(*ObjectGroup))
		}
	}
	return out
}

// AddTileset registers ts with the map. Duplicate registrations are ignored.
func (m *Map) AddTileset(ts *Tileset) {
	for _, t := range m.tilesets {
		if t == ts {
			return
		}
	}
	m.tilesets = append(m.tilesets, ts)
}

// RemoveTileset unregisters ts. No-op if absent.
func (m *Map) RemoveTileset(ts *Tileset) {
	for i, t := range m.tilesets {
		if t == ts {
			m.tilesets = append(m.tilesets[:i], m.tilesets[i+1:]...)
			return
		}
	}
}

// Tilesets returns the registered tilesets. The returned slice MUST NOT be
// mutated.
func (m *Map) Tilesets() []*Tileset {
	return m.tilesets
}

// IsTilesetUsed reports whether any tile layer references ts.
func (m *Map) IsTilesetUsed(ts *Tileset) bool {
	for _, l := range m.layers {
		if l.Kind() == LayerKindTile && l.(*TileLayer).UsesTileset(ts) {
			return true
		}
	}
	return false
}

// MapInfo identifies a loaded map. The loader owns MapInfo values and swaps
// Map in place when the file changes on disk, then calls
// MapComposite.MapChanged.
type MapInfo struct {
	// Path is the map's file path; lots are resolved relative to its directory.
	Path string
	// Map is the current contents.
	Map *Map
	// BeingEdited marks the map open in the editor. Its composite does not
	// load lots or synch on construction; the editor drives both.
	BeingEdited bool
}
