package grove

import "testing"

type sinkRecorder struct {
	events []Event
}

func (s *sinkRecorder) EmitEvent(e Event) { s.events = append(s.events, e) }

func (s *sinkRecorder) kinds() []EventKind {
	out := make([]EventKind, len(s.events))
	for i, e := range s.events {
		out[i] = e.Kind
	}
	return out
}

func TestEventTickAdvancesScene(t *testing.T) {
	s := NewScene()
	n := NewSprite("n", 1)
	id := s.AddChild(n)
	s.Run(id, MoveBy(100, 0, 1))
	s.Event(Event{Kind: EventTick, DT: 0.5})
	if n.X != 50 {
		t.Errorf("X = %v, want 50", n.X)
	}
}

func TestEventPauseAndResumeTriggers(t *testing.T) {
	s := NewScene()
	n := NewSprite("n", 1)
	id := s.AddChild(n)
	h := s.Run(id, MoveBy(100, 0, 1))

	s.Event(Event{Kind: EventPress, Trigger: TriggerPause})
	if st, _ := s.RunState(h); st != RunPaused {
		t.Fatalf("state = %v, want paused", st)
	}
	s.Event(Event{Kind: EventTick, DT: 0.5})
	if n.X != 0 {
		t.Errorf("X = %v while paused, want 0", n.X)
	}

	s.Event(Event{Kind: EventPress, Trigger: TriggerResume})
	s.Event(Event{Kind: EventTick, DT: 0.5})
	if n.X != 50 {
		t.Errorf("X = %v after resume, want 50", n.X)
	}
}

func TestEventReleaseAndNoneDoNothing(t *testing.T) {
	s := NewScene()
	id := s.AddChild(NewSprite("n", 1))
	h := s.Run(id, Wait(1))
	s.Event(Event{Kind: EventRelease, Trigger: TriggerPause})
	s.Event(Event{Kind: EventPress, Trigger: TriggerNone})
	if st, _ := s.RunState(h); st != RunRunning {
		t.Errorf("state = %v, want running", st)
	}
}

func TestEventSinkReceivesLifecycle(t *testing.T) {
	s := NewScene()
	var sink sinkRecorder
	s.SetEventSink(&sink)

	id := s.AddChild(NewSprite("n", 1))
	h := s.Run(id, Wait(1))
	s.Event(Event{Kind: EventPress, Trigger: TriggerPause})
	s.Event(Event{Kind: EventPress, Trigger: TriggerResume})
	s.Event(Event{Kind: EventTick, DT: 1})

	want := []EventKind{
		EventRunStarted,
		EventRunPaused, EventPress,
		EventRunResumed, EventPress,
		EventRunCompleted, EventTick,
	}
	got := sink.kinds()
	if len(got) != len(want) {
		t.Fatalf("events = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("event[%d] = %v, want %v", i, got[i], want[i])
		}
	}
	if e := sink.events[0]; e.Node != id || e.Run != h {
		t.Errorf("started event = %+v, want node %d run %d", e, id, h)
	}
}

func TestEventSinkReceivesStopOnRemoval(t *testing.T) {
	s := NewScene()
	var sink sinkRecorder
	id := s.AddChild(NewSprite("n", 1))
	h := s.Run(id, WaitForever())
	s.SetEventSink(&sink)

	if err := s.RemoveChild(id); err != nil {
		t.Fatal(err)
	}
	if len(sink.events) != 1 {
		t.Fatalf("events = %v, want one run-stopped", sink.kinds())
	}
	if e := sink.events[0]; e.Kind != EventRunStopped || e.Run != h || e.Node != id {
		t.Errorf("event = %+v", e)
	}
}
