package lotmap

import (
	"image"
	"testing"
)

func TestEventQueueDrain(t *testing.T) {
	var q EventQueue
	q.EmitEvent(CompositeEvent{Type: EventLayerGroupAdded, Level: 2})
	q.EmitEvent(CompositeEvent{Type: EventLayerAddedToGroup, Index: 1})

	if n := len(q.Events()); n != 2 {
		t.Fatalf("Events = %d, want 2", n)
	}
	events := q.Drain()
	if len(events) != 2 || events[0].Level != 2 || events[1].Index != 1 {
		t.Errorf("Drain = %v", events)
	}
	if n := len(q.Drain()); n != 0 {
		t.Errorf("second Drain = %d events, want 0", n)
	}
}

func TestEventTypeString(t *testing.T) {
	tests := []struct {
		typ  EventType
		want string
	}{
		{EventLayerGroupAdded, "LayerGroupAdded"},
		{EventLayerAddedToGroup, "LayerAddedToGroup"},
		{EventLayerAboutToBeRemovedFromGroup, "LayerAboutToBeRemovedFromGroup"},
		{EventLayerRemovedFromGroup, "LayerRemovedFromGroup"},
		{EventLayerLevelChanged, "LayerLevelChanged"},
		{EventType(99), "Unknown"},
	}
	for _, tt := range tests {
		if got := tt.typ.String(); got != tt.want {
			t.Errorf("EventType(%d).String() = %q, want %q", tt.typ, got, tt.want)
		}
	}
}

func TestSubMapEventsReachRootSink(t *testing.T) {
	var q EventQueue
	house := &MapInfo{Path: "house.json", Map: newTestMap(4, 4, tileLayer("0_Floor", 4, 4, image.Pt(0, 0)))}
	street := &MapInfo{Path: "street.json", Map: newTestMap(10, 10,
		tileLayer("0_Floor", 10, 10),
		lotLayer("0_Lots", map[string]image.Point{"house": image.Pt(1, 1)}),
	)}
	mc := NewMapComposite(street, OrientationUnknown, Config{Resolver: mapResolver{"house": house}, Events: &q})
	sub := mc.SubMaps()[0]

	house.Map.AddLayer(tileLayer("0_Walls", 4, 4))
	sub.LayerAdded(1)

	events := q.Drain()
	if len(events) != 1 {
		t.Fatalf("got %d events, want 1", len(events))
	}
	if events[0].Composite != sub {
		t.Error("event should name the sub-map it happened in")
	}
}
