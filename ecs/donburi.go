package ecs

import (
	"github.com/phanxgames/lotmap"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
	"github.com/yohamta/donburi/filter"
)

// CompositeEventType is the Donburi event type for lotmap composite events.
// Subscribe to this in your ECS systems to keep layer views in step with a
// composite.
var CompositeEventType = events.NewEventType[lotmap.CompositeEvent]()

// LevelData describes one level group announced by EventLayerGroupAdded.
type LevelData struct {
	Composite *lotmap.MapComposite
	Level     int
}

// Level is the component attached to entities created by LevelTracker.
var Level = donburi.NewComponentType[LevelData]()

type donburiSink struct {
	world donburi.World
}

// NewDonburiSink creates an EventSink backed by a Donburi world. Composite
// events are published to CompositeEventType and can be consumed with
// events.Subscribe and ProcessEvents.
func NewDonburiSink(world donburi.World) lotmap.EventSink {
	return &donburiSink{world: world}
}

func (s *donburiSink) EmitEvent(event lotmap.CompositeEvent) {
	CompositeEventType.Publish(s.world, event)
}

// TrackLevels subscribes to CompositeEventType and creates an entity with a
// Level component for every level group added, so systems can query levels
// like any other entity. Groups that exist before the composite's sink is
// installed are not announced; see AddLevels.
func TrackLevels(world donburi.World) {
	CompositeEventType.Subscribe(world, func(w donburi.World, e lotmap.CompositeEvent) {
		if e.Type != lotmap.EventLayerGroupAdded {
			return
		}
		addLevel(w, e.Composite, e.Level)
	})
}

// AddLevels creates a Level entity for every existing group of mc that has
// none yet.
func AddLevels(world donburi.World, mc *lotmap.MapComposite) {
	for _, g := range mc.LayerGroups() {
		addLevel(world, mc, g.Level())
	}
}

func addLevel(world donburi.World, mc *lotmap.MapComposite, level int) {
	if FindLevel(world, mc, level) != nil {
		return
	}
	entry := world.Entry(world.Create(Level))
	Level.SetValue(entry, LevelData{Composite: mc, Level: level})
}

// FindLevel returns the entry for mc's level, or nil.
func FindLevel(world donburi.World, mc *lotmap.MapComposite, level int) *donburi.Entry {
	var found *donburi.Entry
	donburi.NewQuery(filter.Contains(Level)).Each(world, func(entry *donburi.Entry) {
		if found != nil {
			return
		}
		d := Level.Get(entry)
		if d.Composite == mc && d.Level == level {
			found = entry
		}
	})
	return found
}
