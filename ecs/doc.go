// Package ecs provides ECS adapters for lotmap's composite notifications.
//
// The primary adapter is [NewDonburiSink], which bridges lotmap composite
// events (level groups added, layers joining or leaving groups, level
// renames) into a [Donburi] world as typed events. Subscribe to
// [CompositeEventType] in your ECS systems to receive them. [TrackLevels]
// additionally mirrors every level group as an entity with a [Level]
// component.
//
// Usage:
//
//	sink := ecs.NewDonburiSink(world)
//	mc := lotmap.NewMapComposite(info, lotmap.OrientationUnknown, lotmap.Config{Events: sink})
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
