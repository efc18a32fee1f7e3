package lotmap

import "image"

// LayerCell is one entry of CompositeLayerGroup.OrderedCellsAt: a cell and the
// opacity of the layer it came from.
type LayerCell struct {
	Cell    Cell
	Opacity float64
}

// SubMapLayers is a sub-map's group that contributes to a parent group.
type SubMapLayers struct {
	SubMap *MapComposite
	Group  *CompositeLayerGroup
	// Bounds is Group's bounds translated into the parent group's tile space.
	Bounds image.Rectangle
}

// groupLayer is the per-member state of a CompositeLayerGroup.
type groupLayer struct {
	layer         *TileLayer
	key           string // name without level prefix
	visible       bool
	opacity       float64
	empty         bool // cached layer.IsEmpty()
	forceNonEmpty bool
	blend         *TileLayer // same-named layer of the blend-over map, or nil
}

// CompositeLayerGroup is the drawable, queryable state of one level of one
// map. It borrows its tile layers from the owning Map and caches derived
// state (bounds, draw margins, contributing sub-maps) that is valid only
// while NeedsSynch is false.
type CompositeLayerGroup struct {
	owner   *MapComposite
	level   int
	visible bool

	layers []groupLayer
	byName map[string][]*TileLayer

	// Cached by Synch.
	tileBounds       image.Rectangle // own layers
	subMapTileBounds image.Rectangle // contributing sub-maps
	drawMargins      Margins
	visibleSubMaps   []SubMapLayers
	anyVisibleLayers bool
	needsSynch       bool

	savedVisible []bool
	savedOpacity []float64
}

func newCompositeLayerGroup(owner *MapComposite, level int) *CompositeLayerGroup {
	g := &CompositeLayerGroup{
		owner:      owner,
		level:      level,
		visible:    true,
		byName:     make(map[string][]*TileLayer),
		needsSynch: true,
	}
	g.drawMargins = g.minimalMargins()
	return g
}

// Owner returns the MapComposite this group belongs to.
func (g *CompositeLayerGroup) Owner() *MapComposite {
	return g.owner
}

// Level returns the group's level within its own map.
func (g *CompositeLayerGroup) Level() int {
	return g.level
}

// AbsoluteLevel returns the group's level relative to the root map.
func (g *CompositeLayerGroup) AbsoluteLevel() int {
	return g.level + g.owner.LevelRecursive()
}

// LayerCount returns the number of member layers.
func (g *CompositeLayerGroup) LayerCount() int {
	return len(g.layers)
}

// LayerAt returns the member layer at index i.
func (g *CompositeLayerGroup) LayerAt(i int) *TileLayer {
	return g.layers[i].layer
}

// Layers returns the member layers in map order.
func (g *CompositeLayerGroup) Layers() []*TileLayer {
	out := make([]*TileLayer, len(g.layers))
	for i := range g.layers {
		out[i] = g.layers[i].layer
	}
	return out
}

// IndexOf returns the member index of layer, or -1.
func (g *CompositeLayerGroup) IndexOf(layer *TileLayer) int {
	for i := range g.layers {
		if g.layers[i].layer == layer {
			return i
		}
	}
	return -1
}

// mustIndexOf is IndexOf for callers that require membership.
func (g *CompositeLayerGroup) mustIndexOf(layer *TileLayer) int {
	i := g.IndexOf(layer)
	if i < 0 {
		panic("lotmap: layer is not a member of this group")
	}
	return i
}

// AddTileLayer inserts layer so members stay in map order; index is the
// layer's index in the owning map. It does not mark the group dirty.
func (g *CompositeLayerGroup) AddTileLayer(layer *TileLayer, index int) {
	if layer == nil {
		panic("lotmap: cannot add nil layer")
	}
	if g.IndexOf(layer) >= 0 {
		panic("lotmap: layer is already a member of this group")
	}
	pos := 0
	for pos < len(g.layers) {
		if g.owner.tmap.IndexOfLayer(g.layers[pos].layer) >= index {
			break
		}
		pos++
	}
	key := LayerNameWithoutPrefix(layer.Name())
	g.layers = append(g.layers, groupLayer{})
	copy(g.layers[pos+1:], g.layers[pos:])
	g.layers[pos] = groupLayer{
		layer:   layer,
		key:     key,
		visible: layer.Visible(),
		opacity: layer.Opacity(),
		empty:   layer.IsEmpty(),
	}
	g.byName[key] = append(g.byName[key], layer)
	if g.savedVisible != nil {
		g.savedVisible = append(g.savedVisible, false)
		copy(g.savedVisible[pos+1:], g.savedVisible[pos:])
		g.savedVisible[pos] = layer.Visible()
	}
	if g.savedOpacity != nil {
		g.savedOpacity = append(g.savedOpacity, 0)
		copy(g.savedOpacity[pos+1:], g.savedOpacity[pos:])
		g.savedOpacity[pos] = layer.Opacity()
	}
}

// RemoveTileLayer removes layer from the group. It does not mark the group
// dirty. Panics if layer is not a member.
func (g *CompositeLayerGroup) RemoveTileLayer(layer *TileLayer) {
	i := g.mustIndexOf(layer)
	g.removeFromIndex(g.layers[i].key, layer)
	copy(g.layers[i:], g.layers[i+1:])
	g.layers[len(g.layers)-1] = groupLayer{}
	g.layers = g.layers[:len(g.layers)-1]
	if g.savedVisible != nil {
		g.savedVisible = append(g.savedVisible[:i], g.savedVisible[i+1:]...)
	}
	if g.savedOpacity != nil {
		g.savedOpacity = append(g.savedOpacity[:i], g.savedOpacity[i+1:]...)
	}
}

// layerRenamed refreshes the name index after a member changed its name
// without leaving the level.
func (g *CompositeLayerGroup) layerRenamed(layer *TileLayer) {
	i := g.mustIndexOf(layer)
	key := LayerNameWithoutPrefix(layer.Name())
	if key == g.layers[i].key {
		return
	}
	g.removeFromIndex(g.layers[i].key, layer)
	g.layers[i].key = key
	g.byName[key] = append(g.byName[key], layer)
}

func (g *CompositeLayerGroup) removeFromIndex(key string, layer *TileLayer) {
	list := g.byName[key]
	for j, l := range list {
		if l == layer {
			list = append(list[:j], list[j+1:]...)
			break
		}
	}
	if len(list) == 0 {
		delete(g.byName, key)
	} else {
		g.byName[key] = list
	}
}

// LayersNamed returns the members whose name without level prefix is key.
// The returned slice MUST NOT be mutated.
func (g *CompositeLayerGroup) LayersNamed(key string) []*TileLayer {
	return g.byName[key]
}

// Visible reports whether the level is shown.
func (g *CompositeLayerGroup) Visible() bool {
	return g.visible
}

// SetVisible shows or hides the whole level. Returns whether it changed.
func (g *CompositeLayerGroup) SetVisible(visible bool) bool {
	if g.visible == visible {
		return false
	}
	g.visible = visible
	g.SetNeedsSynch(true)
	return true
}

// IsLayerVisible reports the group's visibility flag for member i.
func (g *CompositeLayerGroup) IsLayerVisible(i int) bool {
	return g.layers[i].visible
}

// LayerOpacity reports the group's opacity for member i.
func (g *CompositeLayerGroup) LayerOpacity(i int) float64 {
	return g.layers[i].opacity
}

// SetLayerVisibility sets the visibility of a member layer. Returns whether
// the value changed; a change marks the group dirty.
func (g *CompositeLayerGroup) SetLayerVisibility(layer *TileLayer, visible bool) bool {
	return g.setVisibleAt(g.mustIndexOf(layer), visible)
}

// SetLayerVisibilityByName sets the visibility of every member whose name
// without level prefix is key. Returns whether any value changed.
func (g *CompositeLayerGroup) SetLayerVisibilityByName(key string, visible bool) bool {
	changed := false
	for _, l := range g.byName[key] {
		if g.setVisibleAt(g.IndexOf(l), visible) {
			changed = true
		}
	}
	return changed
}

func (g *CompositeLayerGroup) setVisibleAt(i int, visible bool) bool {
	if g.layers[i].visible == visible {
		return false
	}
	g.layers[i].visible = visible
	g.SetNeedsSynch(true)
	return true
}

// SetLayerOpacity sets the opacity of a member layer, clamped to [0, 1].
// Returns whether the value changed; a change marks the group dirty.
func (g *CompositeLayerGroup) SetLayerOpacity(layer *TileLayer, opacity float64) bool {
	return g.setOpacityAt(g.mustIndexOf(layer), opacity)
}

// SetLayerOpacityByName sets the opacity of every member whose name without
// level prefix is key. Returns whether any value changed.
func (g *CompositeLayerGroup) SetLayerOpacityByName(key string, opacity float64) bool {
	changed := false
	for _, l := range g.byName[key] {
		if g.setOpacityAt(g.IndexOf(l), opacity) {
			changed = true
		}
	}
	return changed
}

func (g *CompositeLayerGroup) setOpacityAt(i int, opacity float64) bool {
	opacity = clampOpacity(opacity)
	if g.layers[i].opacity == opacity {
		return false
	}
	g.layers[i].opacity = opacity
	g.SetNeedsSynch(true)
	return true
}

// SetForceNonEmpty makes an empty member count as non-empty, e.g. while the
// editor previews a brush on it. Returns whether the value changed.
func (g *CompositeLayerGroup) SetForceNonEmpty(layer *TileLayer, force bool) bool {
	i := g.mustIndexOf(layer)
	if g.layers[i].forceNonEmpty == force {
		return false
	}
	g.layers[i].forceNonEmpty = force
	g.SetNeedsSynch(true)
	return true
}

// setBlendLayer binds member i to its blend-over fallback layer.
func (g *CompositeLayerGroup) setBlendLayer(i int, blend *TileLayer) {
	if g.layers[i].blend == blend {
		return
	}
	g.layers[i].blend = blend
	g.SetNeedsSynch(true)
}

// IsLayerEmpty reports whether member i is excluded from bounds and paint
// order: it is hidden, or it has no cells (and is not forced non-empty) and
// its blend-over layer, if any, has none either.
func (g *CompositeLayerGroup) IsLayerEmpty(i int) bool {
	gl := &g.layers[i]
	if !gl.visible {
		return true
	}
	if gl.forceNonEmpty {
		return false
	}
	if gl.empty {
		if gl.blend != nil {
			return gl.blend.IsEmpty()
		}
		return true
	}
	return false
}

// NeedsSynch reports whether cached bounds, margins and the sub-map list are
// stale.
func (g *CompositeLayerGroup) NeedsSynch() bool {
	return g.needsSynch
}

// SetNeedsSynch marks the group dirty (or clean). Marking dirty also marks
// the group of every ancestor map at the equivalent level, since each of
// them folds this group's bounds into its own.
func (g *CompositeLayerGroup) SetNeedsSynch(needsSynch bool) {
	g.needsSynch = needsSynch
	if !needsSynch {
		return
	}
	level := g.level
	for mc := g.owner; mc.parent != nil; mc = mc.parent {
		level += mc.levelOffset
		if pg := mc.parent.groups[level]; pg != nil {
			pg.needsSynch = true
		}
	}
}

// levelAdjust is the tile offset applied to this level's cells when placing
// them in the group's tile space.
func (g *CompositeLayerGroup) levelAdjust() image.Point {
	return g.owner.orientAdjustTiles.Mul(g.level)
}

// minimalMargins are the margins of a group with nothing in it: the owning
// map's own tile size (see TileLayer.DrawMargins).
func (g *CompositeLayerGroup) minimalMargins() Margins {
	m := g.owner.tmap
	return Margins{Top: m.TileHeight, Right: m.TileWidth}
}

// inheritRootState copies visibility and opacity for each member from the
// same-named layer of the root map's group at the equivalent absolute level.
// Members with no counterpart are visible and opaque. Returns whether
// anything changed. No-op on the root map.
func (g *CompositeLayerGroup) inheritRootState() bool {
	if g.owner.parent == nil {
		return false
	}
	rg := g.owner.Root().groups[g.AbsoluteLevel()]
	changed := false
	for i := range g.layers {
		gl := &g.layers[i]
		visible, opacity := true, 1.0
		if rg != nil {
			if ri := rg.indexOfKey(gl.key); ri >= 0 {
				visible = rg.layers[ri].visible
				opacity = rg.layers[ri].opacity
			}
		}
		if gl.visible != visible || gl.opacity != opacity {
			gl.visible = visible
			gl.opacity = opacity
			changed = true
		}
	}
	return changed
}

func (g *CompositeLayerGroup) indexOfKey(key string) int {
	if list := g.byName[key]; len(list) > 0 {
		return g.IndexOf(list[0])
	}
	return -1
}

// Synch recomputes the cached bounds, draw margins and contributing sub-map
// list, recursing into sub-maps, then clears the dirty flag. Synch is
// idempotent.
func (g *CompositeLayerGroup) Synch() {
	var r image.Rectangle
	m := g.minimalMargins()

	g.anyVisibleLayers = false
	g.visibleSubMaps = g.visibleSubMaps[:0]

	if !g.visible || !g.owner.visible {
		g.tileBounds = r
		g.subMapTileBounds = r
		g.drawMargins = m
		g.needsSynch = false
		return
	}

	g.inheritRootState()

	adjust := g.levelAdjust()
	for i := range g.layers {
		gl := &g.layers[i]
		gl.empty = gl.layer.IsEmpty()
		if g.IsLayerEmpty(i) {
			continue
		}
		r = unionTileRects(r, gl.layer.Bounds().Add(adjust))
		m = m.Max(gl.layer.DrawMargins())
		g.anyVisibleLayers = true
	}
	g.tileBounds = r

	r = image.Rectangle{}
	for _, sub := range g.owner.subMaps {
		if !sub.visible || !sub.groupVisible {
			continue
		}
		sg := sub.groups[g.level-sub.levelOffset]
		if sg == nil {
			continue
		}
		// Lots at any depth inherit root state, so the whole chain is
		// synched even when the groups in between are clean.
		sg.Synch()
		if !sg.anyVisibleLayers {
			continue
		}
		b := sg.Bounds().Add(sub.origin)
		g.visibleSubMaps = append(g.visibleSubMaps, SubMapLayers{SubMap: sub, Group: sg, Bounds: b})
		r = unionTileRects(r, b)
		m = m.Max(sg.drawMargins)
		g.anyVisibleLayers = true
	}
	g.subMapTileBounds = r
	g.drawMargins = m
	g.needsSynch = false
}

// Bounds returns the cached tile-space bounds of every non-empty visible
// member plus every contributing sub-map. Call Synch first if NeedsSynch.
func (g *CompositeLayerGroup) Bounds() image.Rectangle {
	return unionTileRects(g.tileBounds, g.subMapTileBounds)
}

// DrawMargins returns the cached aggregate draw margins. Call Synch first if
// NeedsSynch.
func (g *CompositeLayerGroup) DrawMargins() Margins {
	return g.drawMargins
}

// HasVisibleContent reports whether the last Synch found anything to draw.
func (g *CompositeLayerGroup) HasVisibleContent() bool {
	return g.anyVisibleLayers
}

// VisibleSubMaps returns the sub-map groups that contributed to the last
// Synch. The returned slice MUST NOT be mutated.
func (g *CompositeLayerGroup) VisibleSubMaps() []SubMapLayers {
	return g.visibleSubMaps
}

// BoundingRect returns the group's pixel bounds in the root map's space,
// expanded by the draw margins beyond the map's own tile size. Unlike Bounds
// it synchs first when the group is dirty.
func (g *CompositeLayerGroup) BoundingRect(renderer Renderer) Rect {
	if g.needsSynch {
		g.Synch()
	}
	origin := g.owner.OriginRecursive()
	level := g.AbsoluteLevel()
	tw := g.owner.tmap.TileWidth
	th := g.owner.tmap.TileHeight
	m := g.drawMargins
	expand := func(r Rect) Rect {
		if r.IsEmpty() {
			return r
		}
		return r.Adjusted(
			float64(m.Left),
			float64(max(0, m.Top-th)),
			float64(max(0, m.Right-tw)),
			float64(m.Bottom),
		)
	}
	bounds := expand(renderer.BoundingRect(g.tileBounds.Add(origin), level))
	if !g.subMapTileBounds.Empty() {
		bounds = bounds.Union(expand(renderer.BoundingRect(g.subMapTileBounds.Add(origin), level)))
	}
	return bounds
}

// OrderedCellsAt appends to dst, in paint order (first entry drawn first),
// the non-empty cells of every contributing member at pos, followed by the
// cells of contributing sub-maps, which paint over this map. pos is in the
// group's tile space. Synchs first when the group is dirty.
func (g *CompositeLayerGroup) OrderedCellsAt(pos image.Point, dst []LayerCell) []LayerCell {
	if g.needsSynch {
		g.Synch()
	}
	lp := pos.Sub(g.levelAdjust())
	for i := range g.layers {
		if g.IsLayerEmpty(i) {
			continue
		}
		gl := &g.layers[i]
		c := gl.layer.CellAt(lp)
		if c.IsEmpty() && gl.blend != nil {
			c = gl.blend.CellAt(lp)
		}
		if !c.IsEmpty() {
			dst = append(dst, LayerCell{Cell: c, Opacity: gl.opacity})
		}
	}
	for _, sm := range g.visibleSubMaps {
		if !pos.In(sm.Bounds) {
			continue
		}
		dst = sm.Group.OrderedCellsAt(pos.Sub(sm.SubMap.origin), dst)
	}
	return dst
}

// RegionAltered is called after a member's cells changed. It marks the group
// dirty only when the change could grow the bounds or margins or flip the
// member's emptiness, so painting does not force a full Synch.
func (g *CompositeLayerGroup) RegionAltered(layer *TileLayer) {
	i := g.mustIndexOf(layer)
	gl := &g.layers[i]
	empty := layer.IsEmpty()
	if gl.empty != empty {
		gl.empty = empty
		if gl.visible {
			g.SetNeedsSynch(true)
		}
		return
	}
	if !gl.visible || empty {
		return
	}
	if g.drawMargins.Max(layer.DrawMargins()) != g.drawMargins {
		g.SetNeedsSynch(true)
		return
	}
	if !layer.Bounds().Add(g.levelAdjust()).In(g.tileBounds) {
		g.SetNeedsSynch(true)
	}
}

// SaveVisibility snapshots every member's visibility and then makes them all
// visible, e.g. to render a clean export image. Pair with RestoreVisibility.
func (g *CompositeLayerGroup) SaveVisibility() {
	g.savedVisible = make([]bool, len(g.layers))
	for i := range g.layers {
		g.savedVisible[i] = g.layers[i].visible
		g.setVisibleAt(i, true)
	}
}

// RestoreVisibility reverts to the last SaveVisibility snapshot.
func (g *CompositeLayerGroup) RestoreVisibility() {
	if g.savedVisible == nil {
		return
	}
	for i := range g.layers {
		g.setVisibleAt(i, g.savedVisible[i])
	}
	g.savedVisible = nil
}

// SaveOpacity snapshots every member's opacity and then makes them all fully
// opaque. Pair with RestoreOpacity.
func (g *CompositeLayerGroup) SaveOpacity() {
	g.savedOpacity = make([]float64, len(g.layers))
	for i := range g.layers {
		g.savedOpacity[i] = g.layers[i].opacity
		g.setOpacityAt(i, 1)
	}
}

// RestoreOpacity reverts to the last SaveOpacity snapshot.
func (g *CompositeLayerGroup) RestoreOpacity() {
	if g.savedOpacity == nil {
		return
	}
	for i := range g.layers {
		g.setOpacityAt(i, g.savedOpacity[i])
	}
	g.savedOpacity = nil
}
