package lotmap

// EventType identifies a structural change to a MapComposite's level groups.
type EventType uint8

const (
	EventLayerGroupAdded                EventType = iota // a group was created for Level
	EventLayerAddedToGroup                               // layer Index joined its level's group
	EventLayerAboutToBeRemovedFromGroup                  // layer Index is about to leave its group
	EventLayerRemovedFromGroup                           // layer Index left OldGroup
	EventLayerLevelChanged                               // layer Index moved from OldLevel to a new level
)

// NoLevel is the OldLevel of an EventLayerLevelChanged for a layer whose
// previous name carried no level. The new level is read from the layer's
// name; a layer renamed out of its level has none.
const NoLevel = -1

// String returns a short name for the event type.
func (t EventType) String() string {
	switch t {
	case EventLayerGroupAdded:
		return "LayerGroupAdded"
	case EventLayerAddedToGroup:
		return "LayerAddedToGroup"
	case EventLayerAboutToBeRemovedFromGroup:
		return "LayerAboutToBeRemovedFromGroup"
	case EventLayerRemovedFromGroup:
		return "LayerRemovedFromGroup"
	case EventLayerLevelChanged:
		return "LayerLevelChanged"
	default:
		return "Unknown"
	}
}

// CompositeEvent carries one notification. Only the fields named by Type's
// doc are meaningful.
type CompositeEvent struct {
	Type      EventType
	Composite *MapComposite
	Level     int // EventLayerGroupAdded
	Index     int // map layer index for the layer events
	OldLevel  int // EventLayerLevelChanged; NoLevel if the layer had none
	OldGroup  *CompositeLayerGroup
}

// EventSink receives notifications synchronously, in emission order, on the
// goroutine that mutated the composite. A document model or GUI implements
// it to keep its layer views in step with the composite.
type EventSink interface {
	EmitEvent(event CompositeEvent)
}

// EventQueue is an EventSink that records events for later polling.
type EventQueue struct {
	events []CompositeEvent
}

// EmitEvent appends event to the queue.
func (q *EventQueue) EmitEvent(event CompositeEvent) {
	q.events = append(q.events, event)
}

// Events returns the queued events without draining them. The returned slice
// MUST NOT be mutated.
func (q *EventQueue) Events() []CompositeEvent {
	return q.events
}

// Drain returns all queued events and empties the queue.
func (q *EventQueue) Drain() []CompositeEvent {
	out := q.events
	q.events = nil
	return out
}

// emit forwards event to the root's sink, if any.
func (mc *MapComposite) emit(event CompositeEvent) {
	root := mc.Root()
	if root.events == nil {
		return
	}
	event.Composite = mc
	root.events.EmitEvent(event)
}
