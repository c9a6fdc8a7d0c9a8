package ecs

import (
	"github.com/phanxgames/grove"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
	"github.com/yohamta/donburi/filter"
)

// SceneEventType is the Donburi event type for grove scene events.
// Subscribe to this in your ECS systems to receive ticks, trigger presses and
// animation run lifecycle events.
var SceneEventType = events.NewEventType[grove.Event]()

type donburiSink struct {
	world donburi.World
}

// NewDonburiSink creates an EventSink backed by a Donburi world.
// Scene events are published to SceneEventType and can be consumed with
// events.Subscribe and ProcessEvents.
func NewDonburiSink(world donburi.World) grove.EventSink {
	return &donburiSink{world: world}
}

func (s *donburiSink) EmitEvent(event grove.Event) {
	SceneEventType.Publish(s.world, event)
}

// RunInfo is the component a RunTracker attaches to one entity per live run.
type RunInfo struct {
	Run    grove.RunHandle
	Node   grove.NodeID
	Paused bool
}

// RunComponent is the Donburi component type holding RunInfo.
var RunComponent = donburi.NewComponentType[RunInfo]()

var runQuery = donburi.NewQuery(filter.Contains(RunComponent))

// RunTracker mirrors a scene's live animation runs as Donburi entities. Call
// Attach once, then events.ProcessAllEvents (or SceneEventType.ProcessEvents)
// each frame to apply queued run events.
type RunTracker struct {
	world    donburi.World
	entities map[grove.RunHandle]donburi.Entity
}

// NewRunTracker creates a tracker writing into world.
func NewRunTracker(world donburi.World) *RunTracker {
	return &RunTracker{
		world:    world,
		entities: make(map[grove.RunHandle]donburi.Entity),
	}
}

// Attach subscribes the tracker to SceneEventType on its world.
func (t *RunTracker) Attach() {
	SceneEventType.Subscribe(t.world, t.onEvent)
}

func (t *RunTracker) onEvent(w donburi.World, e grove.Event) {
	switch e.Kind {
	case grove.EventRunStarted:
		entity := w.Create(RunComponent)
		RunComponent.SetValue(w.Entry(entity), RunInfo{Run: e.Run, Node: e.Node})
		t.entities[e.Run] = entity
	case grove.EventRunPaused, grove.EventRunResumed:
		entity, ok := t.entities[e.Run]
		if !ok || !w.Valid(entity) {
			return
		}
		RunComponent.Get(w.Entry(entity)).Paused = e.Kind == grove.EventRunPaused
	case grove.EventRunCompleted, grove.EventRunStopped:
		entity, ok := t.entities[e.Run]
		if !ok {
			return
		}
		delete(t.entities, e.Run)
		if w.Valid(entity) {
			w.Remove(entity)
		}
	}
}

// Count returns the number of tracked runs.
func (t *RunTracker) Count() int {
	return runQuery.Count(t.world)
}

// Each calls fn for every tracked run.
func (t *RunTracker) Each(fn func(RunInfo)) {
	runQuery.Each(t.world, func(entry *donburi.Entry) {
		fn(*RunComponent.Get(entry))
	})
}
