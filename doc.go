// Package lotmap composites a tile map and the lots placed on it into one
// multi-level drawable.
//
// A lot is a smaller map placed on a larger one by an object named "lot" in
// one of the larger map's object groups; the object's Type names the lot's
// map file. Lots may themselves contain lots. [MapComposite] is one node of
// that tree, and each map level is a [CompositeLayerGroup]: the tile layers
// whose names start with that level ("0_Floor", "0_Walls", ...), plus the
// same level of every visible lot.
//
// # Quick start
//
//	info := &lotmap.MapInfo{Path: "maps/street.json", Map: m}
//	mc := lotmap.NewMapComposite(info, lotmap.OrientationLevelIsometric, lotmap.Config{
//		Resolver: resolver, // e.g. mapfs.DirResolver
//	})
//	r := lotmap.NewGridRenderer(m, mc.RenderOrientation(), mc.MaxLevel())
//	for _, item := range mc.ZOrder() {
//		if item.Group == nil {
//			continue // draw item.Layer on its own
//		}
//		cells := item.Group.OrderedCellsAt(image.Pt(x, y), nil)
//		// draw cells bottom first
//	}
//
// # Caching
//
// Groups cache their tile bounds, draw margins and the list of lots that
// contribute to them. Anything that could change those marks the group
// dirty; [CompositeLayerGroup.Synch] recomputes them. Editors report edits
// through [MapComposite.LayerAdded], [MapComposite.LayerRenamed],
// [MapComposite.RegionAltered] and friends so that only affected groups are
// synched.
//
// # Notifications
//
// Structural changes (groups created, layers joining or leaving a group,
// level renames) are delivered to the root's [EventSink]. The lotmap/ecs
// module republishes them on a [Donburi] world.
//
// Satellite packages: lotmap/paint draws groups with [Ebitengine],
// lotmap/mapfs loads and watches map files, and lotmap/overlay renders
// debug images of level bounds.
//
// [Ebitengine]: https://ebitengine.org
// [Donburi]: https://github.com/yohamta/donburi
package lotmap
