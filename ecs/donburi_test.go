package ecs

import (
	"testing"

	"github.com/phanxgames/grove"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

func TestNewDonburiSink(t *testing.T) {
	world := donburi.NewWorld()
	if NewDonburiSink(world) == nil {
		t.Fatal("NewDonburiSink returned nil")
	}
}

func TestDonburiSink_EmitEvent(t *testing.T) {
	world := donburi.NewWorld()
	sink := NewDonburiSink(world)

	var received []grove.Event
	SceneEventType.Subscribe(world, func(w donburi.World, e grove.Event) {
		received = append(received, e)
	})

	sink.EmitEvent(grove.Event{Kind: grove.EventTick, DT: 0.5})
	sink.EmitEvent(grove.Event{Kind: grove.EventPress, Trigger: grove.TriggerPause})

	// Events are queued until processed.
	if len(received) != 0 {
		t.Fatalf("events delivered before processing: %d", len(received))
	}
	SceneEventType.ProcessEvents(world)

	if len(received) != 2 {
		t.Fatalf("expected 2 events, got %d", len(received))
	}
	if received[0].Kind != grove.EventTick || received[0].DT != 0.5 {
		t.Errorf("event 0: %+v", received[0])
	}
	if received[1].Kind != grove.EventPress || received[1].Trigger != grove.TriggerPause {
		t.Errorf("event 1: %+v", received[1])
	}
}

func TestDonburiSink_FromScene(t *testing.T) {
	world := donburi.NewWorld()
	s := grove.NewScene()
	s.SetEventSink(NewDonburiSink(world))

	var kinds []grove.EventKind
	SceneEventType.Subscribe(world, func(w donburi.World, e grove.Event) {
		kinds = append(kinds, e.Kind)
	})

	id := s.AddChild(grove.NewSprite("n", 1))
	s.Run(id, grove.Wait(1))
	s.Update(1)
	events.ProcessAllEvents(world)

	want := []grove.EventKind{grove.EventRunStarted, grove.EventRunCompleted}
	if len(kinds) != len(want) || kinds[0] != want[0] || kinds[1] != want[1] {
		t.Errorf("kinds = %v, want %v", kinds, want)
	}
}

func TestRunTracker(t *testing.T) {
	world := donburi.NewWorld()
	s := grove.NewScene()
	s.SetEventSink(NewDonburiSink(world))
	tracker := NewRunTracker(world)
	tracker.Attach()

	id := s.AddChild(grove.NewSprite("n", 1))
	short := s.Run(id, grove.Wait(1))
	s.Run(id, grove.WaitForever())
	SceneEventType.ProcessEvents(world)
	if tracker.Count() != 2 {
		t.Fatalf("Count = %d, want 2", tracker.Count())
	}

	s.PauseRun(short)
	SceneEventType.ProcessEvents(world)
	paused := 0
	tracker.Each(func(info RunInfo) {
		if info.Node != id {
			t.Errorf("info.Node = %d, want %d", info.Node, id)
		}
		if info.Paused {
			paused++
		}
	})
	if paused != 1 {
		t.Errorf("paused = %d, want 1", paused)
	}

	if err := s.RemoveChild(id); err != nil {
		t.Fatal(err)
	}
	SceneEventType.ProcessEvents(world)
	if tracker.Count() != 0 {
		t.Errorf("Count = %d after removal, want 0", tracker.Count())
	}
}

func TestDonburiSink_MultipleSubscribers(t *testing.T) {
	world := donburi.NewWorld()
	sink := NewDonburiSink(world)

	var count1, count2 int
	SceneEventType.Subscribe(world, func(w donburi.World, e grove.Event) {
		count1++
	})
	SceneEventType.Subscribe(world, func(w donburi.World, e grove.Event) {
		count2++
	})

	sink.EmitEvent(grove.Event{Kind: grove.EventRelease})
	events.ProcessAllEvents(world)

	if count1 != 1 || count2 != 1 {
		t.Errorf("expected both subscribers called once, got %d and %d", count1, count2)
	}
}
