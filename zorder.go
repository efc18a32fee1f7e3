package lotmap

// ZOrderItem is one entry of MapComposite.ZOrder: either a level group or a
// single layer drawn on its own.
type ZOrderItem struct {
	// Group is set for a level group.
	Group *CompositeLayerGroup
	// Layer is set for a layer drawn outside any group.
	Layer Layer
	// LayerIndex is Layer's index in the map, or -1 for a group.
	LayerIndex int
}

// grouped reports whether layer is drawn as part of its level group: it has
// a level, that level's group has tile layers, and a tile layer is itself a
// member. Non-tile layers on a populated level travel with the group.
func (mc *MapComposite) grouped(layer Layer) bool {
	level, ok := mc.levels[layer]
	if !ok {
		return false
	}
	g := mc.groups[level]
	if g == nil || g.LayerCount() == 0 {
		return false
	}
	if tl, isTile := layer.(*TileLayer); isTile {
		return g.IndexOf(tl) >= 0
	}
	return true
}

// ZOrder returns the draw order for the map. Layers drawn on their own that
// precede every grouped layer come first. Then every group follows in level
// order, each trailed by the ungrouped layers whose nearest preceding grouped
// layer belongs to it.
//
// For layers "Foo", "0_Floor", "1_Walls", "Foo2" the order is Foo, group 0,
// group 1, Foo2.
func (mc *MapComposite) ZOrder() []ZOrderItem {
	var (
		lead    []ZOrderItem
		trail   = make(map[*CompositeLayerGroup][]ZOrderItem)
		current *CompositeLayerGroup
	)
	for index, layer := range mc.tmap.Layers() {
		if mc.grouped(layer) {
			current = mc.groups[mc.levels[layer]]
			continue
		}
		item := ZOrderItem{Layer: layer, LayerIndex: index}
		if current == nil {
			lead = append(lead, item)
		} else {
			trail[current] = append(trail[current], item)
		}
	}

	out := make([]ZOrderItem, 0, len(lead)+len(mc.sortedGroups)+len(mc.tmap.Layers()))
	out = append(out, lead...)
	for _, g := range mc.sortedGroups {
		out = append(out, ZOrderItem{Group: g, LayerIndex: -1})
		out = append(out, trail[g]...)
	}
	return out
}
