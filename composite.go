package lotmap

import (
	"image"
	"sort"

	"github.com/sirupsen/logrus"
)

// MapComposite is one node in the tree of a map and the lots placed on it.
// Each composite owns one CompositeLayerGroup per level in [MinLevel,
// MaxLevel] and its sub-maps. A parent owns its sub-maps; sub-maps refer to
// their parent only to walk up to the root.
//
// MapComposite is not safe for concurrent use.
type MapComposite struct {
	mapInfo *MapInfo
	tmap    *Map

	parent  *MapComposite
	subMaps []*MapComposite

	groups       map[int]*CompositeLayerGroup
	sortedGroups []*CompositeLayerGroup
	minLevel     int
	maxLevel     int

	// Level each layer had when last seen, for LayerLevelChanged.
	levels map[Layer]int

	// Placement inside the parent.
	origin      image.Point
	levelOffset int

	orientRender      Orientation
	orientAdjustTiles image.Point

	visible           bool
	groupVisible      bool
	savedVisible      bool
	savedGroupVisible bool
	savedState        bool

	blendOver *MapComposite

	// Root only.
	resolver Resolver
	events   EventSink
}

// NewMapComposite builds the composite tree for info rendered in
// orientRender. OrientationUnknown renders in the map's own orientation.
// Unless info is BeingEdited, lots are resolved through cfg.Resolver and
// every group is synched before returning.
func NewMapComposite(info *MapInfo, orientRender Orientation, cfg Config) *MapComposite {
	if info == nil || info.Map == nil {
		panic("lotmap: NewMapComposite requires a loaded map")
	}
	mc := &MapComposite{
		mapInfo:      info,
		orientRender: orientRender,
		visible:      true,
		groupVisible: true,
		resolver:     cfg.Resolver,
		events:       cfg.Events,
	}
	mc.build()
	return mc
}

func newSubMapComposite(info *MapInfo, parent *MapComposite, origin image.Point, levelOffset int) *MapComposite {
	mc := &MapComposite{
		mapInfo:      info,
		parent:       parent,
		origin:       origin,
		levelOffset:  levelOffset,
		orientRender: parent.orientRender,
		visible:      true,
		groupVisible: true,
	}
	if globalDebug {
		debugCheckLotDepth(mc)
	}
	mc.build()
	return mc
}

// orientAdjust returns the per-level tile translation for drawing a map of
// orientation mapOrient in renderOrient.
func orientAdjust(mapOrient, renderOrient Orientation) image.Point {
	switch {
	case mapOrient == OrientationIsometric && renderOrient == OrientationLevelIsometric:
		return image.Pt(-levelTileShift, -levelTileShift)
	case mapOrient == OrientationLevelIsometric && renderOrient == OrientationIsometric:
		return image.Pt(levelTileShift, levelTileShift)
	case mapOrient != renderOrient:
		logger.WithFields(logrus.Fields{
			"map":    mapOrient,
			"render": renderOrient,
		}).Debug("lotmap: no level adjustment for orientation pair")
	}
	return image.Point{}
}

// build (re)creates groups and sub-maps from mc.mapInfo.Map.
func (mc *MapComposite) build() {
	mc.tmap = mc.mapInfo.Map
	if mc.orientRender == OrientationUnknown {
		mc.orientRender = mc.tmap.Orientation
	}
	mc.orientAdjustTiles = orientAdjust(mc.tmap.Orientation, mc.orientRender)

	mc.groups = make(map[int]*CompositeLayerGroup)
	mc.sortedGroups = nil
	mc.levels = make(map[Layer]int)
	for _, sub := range mc.subMaps {
		sub.parent = nil
	}
	mc.subMaps = nil

	for index, layer := range mc.tmap.Layers() {
		level, ok := LevelForLayer(layer)
		if !ok {
			continue
		}
		mc.levels[layer] = level
		if layer.Kind() != LayerKindTile {
			continue
		}
		g := mc.groups[level]
		if g == nil {
			g = newCompositeLayerGroup(mc, level)
			mc.groups[level] = g
		}
		g.AddTileLayer(layer.(*TileLayer), index)
	}

	if !mc.mapInfo.BeingEdited {
		mc.loadLots()
	}

	minLevel, maxLevel := 0, 0
	first := true
	for level := range mc.groups {
		if first {
			minLevel, maxLevel = level, level
			first = false
			continue
		}
		minLevel = min(minLevel, level)
		maxLevel = max(maxLevel, level)
	}
	for _, sub := range mc.subMaps {
		minLevel = min(minLevel, sub.levelOffset+sub.minLevel)
		maxLevel = max(maxLevel, sub.levelOffset+sub.maxLevel)
	}
	mc.minLevel, mc.maxLevel = minLevel, maxLevel
	for level := minLevel; level <= maxLevel; level++ {
		if mc.groups[level] == nil {
			mc.groups[level] = newCompositeLayerGroup(mc, level)
		}
	}
	mc.sortGroups()

	if !mc.mapInfo.BeingEdited {
		for _, g := range mc.sortedGroups {
			g.Synch()
		}
	}
}

// loadLots attaches a sub-map for every "lot" object in the map's object
// groups. Unresolvable and cyclic lots are logged and skipped.
func (mc *MapComposite) loadLots() {
	resolver := mc.Root().resolver
	if resolver == nil {
		return
	}
	for _, og := range mc.tmap.ObjectGroups() {
		ogLevel, _ := LevelForLayer(og)
		for _, obj := range og.Objects() {
			if obj.Name != "lot" || obj.Type == "" {
				continue
			}
			log := logger.WithFields(logrus.Fields{
				"map": mc.mapInfo.Path,
				"lot": obj.Type,
			})
			info, err := resolver.Resolve(obj.Type, mc.mapInfo.Path)
			if err == nil && (info == nil || info.Map == nil) {
				err = ErrMapNotFound
			}
			if err != nil {
				log.WithError(err).Warn("lotmap: skipping lot")
				continue
			}
			if mc.hasAncestor(info) {
				log.WithError(ErrLotCycle).Warn("lotmap: skipping lot")
				continue
			}
			adjust := orientAdjust(info.Map.Orientation, mc.orientRender)
			origin := obj.Position.Add(adjust.Mul(ogLevel))
			mc.subMaps = append(mc.subMaps, newSubMapComposite(info, mc, origin, ogLevel))
		}
	}
}

// hasAncestor reports whether info is mc's map or the map of any ancestor.
func (mc *MapComposite) hasAncestor(info *MapInfo) bool {
	for p := mc; p != nil; p = p.parent {
		if p.mapInfo == info || (info.Path != "" && p.mapInfo.Path == info.Path) {
			return true
		}
	}
	return false
}

func (mc *MapComposite) sortGroups() {
	mc.sortedGroups = mc.sortedGroups[:0]
	for _, g := range mc.groups {
		mc.sortedGroups = append(mc.sortedGroups, g)
	}
	sort.Slice(mc.sortedGroups, func(i, j int) bool {
		return mc.sortedGroups[i].level < mc.sortedGroups[j].level
	})
}

// createGroup adds an empty group for level and announces it.
func (mc *MapComposite) createGroup(level int) *CompositeLayerGroup {
	g := newCompositeLayerGroup(mc, level)
	mc.groups[level] = g
	mc.emit(CompositeEvent{Type: EventLayerGroupAdded, Level: level})
	return g
}

// ensureMaxLevels creates groups so that every level up to maxLevel exists.
func (mc *MapComposite) ensureMaxLevels(maxLevel int) {
	if maxLevel <= mc.maxLevel {
		return
	}
	for level := mc.maxLevel + 1; level <= maxLevel; level++ {
		mc.createGroup(level)
	}
	mc.maxLevel = maxLevel
	mc.sortGroups()
}

// ensureLevelRange grows [MinLevel, MaxLevel] to cover [lo, hi] on mc and
// the equivalent levels on every ancestor.
func (mc *MapComposite) ensureLevelRange(lo, hi int) {
	for c := mc; c != nil; c = c.parent {
		c.ensureLevel(lo)
		c.ensureLevel(hi)
		lo += c.levelOffset
		hi += c.levelOffset
	}
}

// ensureLevel creates groups so that level is inside [MinLevel, MaxLevel].
func (mc *MapComposite) ensureLevel(level int) {
	if level > mc.maxLevel {
		mc.ensureMaxLevels(level)
		return
	}
	if level >= mc.minLevel {
		return
	}
	for l := mc.minLevel - 1; l >= level; l-- {
		mc.createGroup(l)
	}
	mc.minLevel = level
	mc.sortGroups()
}

// Map returns the current map.
func (mc *MapComposite) Map() *Map {
	return mc.tmap
}

// MapInfo returns the map's identity.
func (mc *MapComposite) MapInfo() *MapInfo {
	return mc.mapInfo
}

// Parent returns the parent composite, or nil for the root.
func (mc *MapComposite) Parent() *MapComposite {
	return mc.parent
}

// Root returns the top of the tree.
func (mc *MapComposite) Root() *MapComposite {
	root := mc
	for root.parent != nil {
		root = root.parent
	}
	return root
}

// SubMaps returns the attached sub-maps. The returned slice MUST NOT be
// mutated.
func (mc *MapComposite) SubMaps() []*MapComposite {
	return mc.subMaps
}

// Origin returns the position in tiles relative to the parent.
func (mc *MapComposite) Origin() image.Point {
	return mc.origin
}

// OriginRecursive returns the position in tiles relative to the root.
func (mc *MapComposite) OriginRecursive() image.Point {
	var p image.Point
	for c := mc; c.parent != nil; c = c.parent {
		p = p.Add(c.origin)
	}
	return p
}

// LevelOffset returns the level in the parent that this map's level 0 sits on.
func (mc *MapComposite) LevelOffset() int {
	return mc.levelOffset
}

// LevelRecursive returns the level offset relative to the root.
func (mc *MapComposite) LevelRecursive() int {
	level := 0
	for c := mc; c.parent != nil; c = c.parent {
		level += c.levelOffset
	}
	return level
}

// MinLevel returns the lowest level with a group.
func (mc *MapComposite) MinLevel() int {
	return mc.minLevel
}

// MaxLevel returns the highest level with a group.
func (mc *MapComposite) MaxLevel() int {
	return mc.maxLevel
}

// RenderOrientation returns the orientation the tree is drawn in.
func (mc *MapComposite) RenderOrientation() Orientation {
	return mc.orientRender
}

// OrientAdjustTiles returns the per-level tile translation applied to this
// map's layers.
func (mc *MapComposite) OrientAdjustTiles() image.Point {
	return mc.orientAdjustTiles
}

// OrientAdjustPixels returns OrientAdjustTiles converted to pixels with the
// map's tile size, for an orthogonal overlay drawn over an isometric map.
func (mc *MapComposite) OrientAdjustPixels() Vec2 {
	return Vec2{
		X: float64(mc.orientAdjustTiles.X * mc.tmap.TileWidth),
		Y: float64(mc.orientAdjustTiles.Y * mc.tmap.TileHeight),
	}
}

// LayerGroups returns the groups in ascending level order. The returned
// slice MUST NOT be mutated.
func (mc *MapComposite) LayerGroups() []*CompositeLayerGroup {
	return mc.sortedGroups
}

// LayerGroupForLevel returns the group for level, or nil.
func (mc *MapComposite) LayerGroupForLevel(level int) *CompositeLayerGroup {
	return mc.groups[level]
}

// LayerGroupForLayer returns the group that layer belongs to, or nil.
func (mc *MapComposite) LayerGroupForLayer(layer *TileLayer) *CompositeLayerGroup {
	level, ok := mc.levels[layer]
	if !ok {
		return nil
	}
	if g := mc.groups[level]; g != nil && g.IndexOf(layer) >= 0 {
		return g
	}
	return nil
}

// Visible reports whether the map is drawn.
func (mc *MapComposite) Visible() bool {
	return mc.visible
}

// SetVisible shows or hides the map and its sub-maps.
func (mc *MapComposite) SetVisible(visible bool) {
	if mc.visible == visible {
		return
	}
	mc.visible = visible
	mc.markGroupsDirty()
}

// GroupVisible reports whether the object group that placed this lot is
// shown.
func (mc *MapComposite) GroupVisible() bool {
	return mc.groupVisible
}

// SetGroupVisible hides the lot along with the object group that placed it.
func (mc *MapComposite) SetGroupVisible(visible bool) {
	if mc.groupVisible == visible {
		return
	}
	mc.groupVisible = visible
	mc.markGroupsDirty()
}

// markGroupsDirty marks every group of mc, and through SetNeedsSynch the
// equivalent groups of its ancestors, dirty.
func (mc *MapComposite) markGroupsDirty() {
	for _, g := range mc.sortedGroups {
		g.SetNeedsSynch(true)
	}
	if mc.parent != nil {
		mc.parent.markGroupsDirty()
	}
}

// AddMap attaches info as a sub-map at origin (in tiles) on levelOffset and
// returns it. Returns nil when info is this map or one of its ancestors.
func (mc *MapComposite) AddMap(info *MapInfo, origin image.Point, levelOffset int) *MapComposite {
	if info == nil || info.Map == nil {
		panic("lotmap: AddMap requires a loaded map")
	}
	if mc.hasAncestor(info) {
		logger.WithError(ErrLotCycle).WithField("lot", info.Path).Warn("lotmap: refusing to add map")
		return nil
	}
	sub := newSubMapComposite(info, mc, origin, levelOffset)
	mc.subMaps = append(mc.subMaps, sub)
	mc.ensureLevelRange(levelOffset+sub.minLevel, levelOffset+sub.maxLevel)
	mc.markGroupsDirty()
	return sub
}

// RemoveMap detaches sub. Panics if sub is not a direct sub-map of mc.
func (mc *MapComposite) RemoveMap(sub *MapComposite) {
	for i, s := range mc.subMaps {
		if s == sub {
			copy(mc.subMaps[i:], mc.subMaps[i+1:])
			mc.subMaps[len(mc.subMaps)-1] = nil
			mc.subMaps = mc.subMaps[:len(mc.subMaps)-1]
			sub.parent = nil
			mc.markGroupsDirty()
			return
		}
	}
	panic("lotmap: RemoveMap called with a map that is not a sub-map")
}

// MoveSubMap places sub at origin (in tiles). Panics if sub is not a direct
// sub-map of mc.
func (mc *MapComposite) MoveSubMap(sub *MapComposite, origin image.Point) {
	if sub.parent != mc {
		panic("lotmap: MoveSubMap called with a map that is not a sub-map")
	}
	if sub.origin == origin {
		return
	}
	sub.origin = origin
	mc.markGroupsDirty()
}

// LayerAdded must be called after a layer was inserted into the map at
// index. A leveled tile layer joins its level's group.
func (mc *MapComposite) LayerAdded(index int) {
	layer := mc.tmap.LayerAt(index)
	level, ok := LevelForLayer(layer)
	if !ok {
		return
	}
	mc.levels[layer] = level
	if tl, isTile := layer.(*TileLayer); isTile {
		mc.addLayerToGroup(tl, index, level)
	}
}

// LayerAboutToBeRemoved must be called before the layer at index is removed
// from the map.
func (mc *MapComposite) LayerAboutToBeRemoved(index int) {
	layer := mc.tmap.LayerAt(index)
	if tl, ok := layer.(*TileLayer); ok {
		if g := mc.LayerGroupForLayer(tl); g != nil {
			mc.removeLayerFromGroup(tl, index, g)
		}
	}
	delete(mc.levels, layer)
}

// LayerRenamed must be called after the layer at index was renamed. A level
// change is announced, and a tile layer moves between groups as needed.
func (mc *MapComposite) LayerRenamed(index int) {
	layer := mc.tmap.LayerAt(index)
	oldLevel, hadLevel := mc.levels[layer]
	level, hasLevel := LevelForLayer(layer)
	if hadLevel != hasLevel || level != oldLevel {
		ev := CompositeEvent{Type: EventLayerLevelChanged, Index: index, OldLevel: oldLevel}
		if !hadLevel {
			ev.OldLevel = NoLevel
		}
		mc.emit(ev)
	}
	if hasLevel {
		mc.levels[layer] = level
	}

	tl, ok := layer.(*TileLayer)
	if !ok {
		if !hasLevel {
			delete(mc.levels, layer)
		}
		return
	}
	oldGroup := mc.groups[oldLevel]
	if oldGroup != nil && oldGroup.IndexOf(tl) < 0 {
		oldGroup = nil
	}
	if oldGroup != nil && (!hasLevel || oldGroup.level != level) {
		mc.removeLayerFromGroup(tl, index, oldGroup)
		oldGroup = nil
	}
	if !hasLevel {
		delete(mc.levels, layer)
		return
	}
	if oldGroup == nil {
		mc.addLayerToGroup(tl, index, level)
		return
	}
	oldGroup.layerRenamed(tl)
	oldGroup.SetNeedsSynch(true)
}

func (mc *MapComposite) addLayerToGroup(tl *TileLayer, index, level int) {
	mc.ensureLevelRange(level, level)
	g := mc.groups[level]
	g.AddTileLayer(tl, index)
	g.SetNeedsSynch(true)
	if mc.blendOver != nil {
		mc.bindBlendLayers(g)
	}
	mc.emit(CompositeEvent{Type: EventLayerAddedToGroup, Index: index})
}

func (mc *MapComposite) removeLayerFromGroup(tl *TileLayer, index int, g *CompositeLayerGroup) {
	mc.emit(CompositeEvent{Type: EventLayerAboutToBeRemovedFromGroup, Index: index})
	g.RemoveTileLayer(tl)
	g.SetNeedsSynch(true)
	mc.emit(CompositeEvent{Type: EventLayerRemovedFromGroup, Index: index, OldGroup: g})
}

// RegionAltered must be called after cells of layer changed.
func (mc *MapComposite) RegionAltered(layer *TileLayer) {
	if g := mc.LayerGroupForLayer(layer); g != nil {
		g.RegionAltered(layer)
	}
}

// MapAboutToChange is called before info's map is replaced. Returns whether
// info is in this tree; if so the groups of every composite for info and of
// its ancestors are marked dirty.
func (mc *MapComposite) MapAboutToChange(info *MapInfo) bool {
	affected := info == mc.mapInfo
	for _, sub := range mc.subMaps {
		if sub.MapAboutToChange(info) {
			affected = true
		}
	}
	if affected {
		for _, g := range mc.sortedGroups {
			g.SetNeedsSynch(true)
		}
	}
	return affected
}

// MapChanged is called after info.Map was replaced. The composite for info
// is rebuilt in place and every ancestor grows levels as needed and is
// marked dirty. Returns whether info is in this tree.
func (mc *MapComposite) MapChanged(info *MapInfo) bool {
	if info == mc.mapInfo {
		mc.Recreate()
		return true
	}
	changed := false
	for _, sub := range mc.subMaps {
		if sub.MapChanged(info) {
			mc.ensureLevel(sub.levelOffset + sub.minLevel)
			mc.ensureLevel(sub.levelOffset + sub.maxLevel)
			changed = true
		}
	}
	if changed {
		for _, g := range mc.sortedGroups {
			g.SetNeedsSynch(true)
		}
	}
	return changed
}

// Recreate rebuilds groups and sub-maps from the current MapInfo.Map. The
// composite keeps its identity and its place in the parent.
func (mc *MapComposite) Recreate() {
	blend := mc.blendOver
	mc.build()
	if blend != nil {
		mc.SetBlendOverMap(blend)
	}
	if mc.parent != nil {
		mc.parent.markGroupsDirty()
	}
}

// IsTilesetUsed reports whether any map in the tree references ts.
func (mc *MapComposite) IsTilesetUsed(ts *Tileset) bool {
	if mc.tmap.IsTilesetUsed(ts) {
		return true
	}
	for _, sub := range mc.subMaps {
		if sub.IsTilesetUsed(ts) {
			return true
		}
	}
	return false
}

// TilesetAdded must be called after ts was added or its tile size changed,
// e.g. a missing tileset was found. Maps using it are marked dirty.
func (mc *MapComposite) TilesetAdded(ts *Tileset) {
	mc.tilesetChanged(ts)
}

// TilesetRemoved must be called after ts was removed or replaced.
func (mc *MapComposite) TilesetRemoved(ts *Tileset) {
	mc.tilesetChanged(ts)
}

func (mc *MapComposite) tilesetChanged(ts *Tileset) {
	used := false
	for _, tl := range mc.tmap.TileLayers() {
		if tl.UsesTileset(ts) {
			tl.invalidate()
			used = true
		}
	}
	if used {
		mc.markGroupsDirty()
	}
	for _, sub := range mc.subMaps {
		sub.tilesetChanged(ts)
	}
}

// Synch synchs every dirty group in the tree.
func (mc *MapComposite) Synch() {
	for _, sub := range mc.subMaps {
		sub.Synch()
	}
	for _, g := range mc.sortedGroups {
		if g.needsSynch {
			g.Synch()
		}
	}
}

// BoundingRect returns the pixel bounds of every level the renderer draws.
// With forceMapBounds the result also covers the map's full grid on level 0
// and on its highest non-empty level (every level while being edited), so
// an editor can always scroll to the map edges.
func (mc *MapComposite) BoundingRect(renderer Renderer, forceMapBounds bool) Rect {
	mc.Synch()
	levelBase := mc.LevelRecursive()
	var bounds Rect
	topLevel := 0
	for _, g := range mc.sortedGroups {
		if g.level+levelBase > renderer.MaxLevel() {
			continue
		}
		bounds = bounds.Union(g.BoundingRect(renderer))
		if !g.Bounds().Empty() {
			topLevel = g.level
		}
	}
	if forceMapBounds {
		if mc.mapInfo.BeingEdited {
			topLevel = mc.maxLevel
		}
		size := mc.tmap.Size().Add(mc.OriginRecursive())
		bounds = bounds.Union(renderer.BoundingRect(size, levelBase))
		top := min(topLevel+levelBase, renderer.MaxLevel())
		bounds = bounds.Union(renderer.BoundingRect(size, top))
	}
	return bounds
}

// SaveVisibility forces the whole tree visible, remembering the current
// state. Pair with RestoreVisibility.
func (mc *MapComposite) SaveVisibility() {
	mc.savedVisible = mc.visible
	mc.savedGroupVisible = mc.groupVisible
	mc.savedState = true
	mc.visible = true
	mc.groupVisible = true
	for _, g := range mc.sortedGroups {
		g.SaveVisibility()
		g.SetNeedsSynch(true)
	}
	for _, sub := range mc.subMaps {
		sub.SaveVisibility()
	}
}

// RestoreVisibility reverts the last SaveVisibility.
func (mc *MapComposite) RestoreVisibility() {
	if mc.savedState {
		mc.visible = mc.savedVisible
		mc.groupVisible = mc.savedGroupVisible
		mc.savedState = false
	}
	for _, g := range mc.sortedGroups {
		g.RestoreVisibility()
		g.SetNeedsSynch(true)
	}
	for _, sub := range mc.subMaps {
		sub.RestoreVisibility()
	}
}

// SaveOpacity forces every layer in the tree opaque, remembering the current
// state. Pair with RestoreOpacity.
func (mc *MapComposite) SaveOpacity() {
	for _, g := range mc.sortedGroups {
		g.SaveOpacity()
	}
	for _, sub := range mc.subMaps {
		sub.SaveOpacity()
	}
}

// RestoreOpacity reverts the last SaveOpacity.
func (mc *MapComposite) RestoreOpacity() {
	for _, g := range mc.sortedGroups {
		g.RestoreOpacity()
	}
	for _, sub := range mc.subMaps {
		sub.RestoreOpacity()
	}
}

// BlendOverMap returns the map whose layers fill empty cells, or nil.
func (mc *MapComposite) BlendOverMap() *MapComposite {
	return mc.blendOver
}

// SetBlendOverMap binds each tile layer to the same-named layer on the same
// level of bmc. Where a layer's cell is empty, the blend layer's cell is
// drawn instead. Pass nil to unbind.
func (mc *MapComposite) SetBlendOverMap(bmc *MapComposite) {
	mc.blendOver = bmc
	for _, g := range mc.sortedGroups {
		mc.bindBlendLayers(g)
	}
}

func (mc *MapComposite) bindBlendLayers(g *CompositeLayerGroup) {
	var bg *CompositeLayerGroup
	if mc.blendOver != nil {
		bg = mc.blendOver.groups[g.level]
	}
	for i := range g.layers {
		var blend *TileLayer
		if bg != nil {
			if list := bg.byName[g.layers[i].key]; len(list) > 0 {
				blend = list[0]
			}
		}
		g.setBlendLayer(i, blend)
	}
}

// MapInfosForPath returns the MapInfo of every map in the tree loaded from
// path, each listed once.
func (mc *MapComposite) MapInfosForPath(path string) []*MapInfo {
	var out []*MapInfo
	seen := make(map[*MapInfo]bool)
	var walk func(c *MapComposite)
	walk = func(c *MapComposite) {
		if c.mapInfo.Path == path && !seen[c.mapInfo] {
			seen[c.mapInfo] = true
			out = append(out, c.mapInfo)
		}
		for _, sub := range c.subMaps {
			walk(sub)
		}
	}
	walk(mc)
	return out
}
