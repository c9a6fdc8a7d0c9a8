package grove

import (
	"encoding/json"
	"fmt"
)

// testStep represents a single action in a replay script.
type testStep struct {
	Action  string  `json:"action"`
	DT      float64 `json:"dt,omitempty"`
	Frames  int     `json:"frames,omitempty"`
	Trigger string  `json:"trigger,omitempty"`
}

// testScript is the top-level JSON structure for a replay script.
type testScript struct {
	Steps []testStep `json:"steps"`
}

// TestRunner replays a scripted sequence of ticks and trigger presses against
// a Scene, one frame per Step call, for deterministic animation tests.
//
//	{"steps": [
//		{"action": "tick", "dt": 0.5, "frames": 2},
//		{"action": "press", "trigger": "pause"},
//		{"action": "tick", "dt": 1},
//		{"action": "press", "trigger": "resume"}
//	]}
type TestRunner struct {
	steps     []testStep
	cursor    int
	waitCount int
	waitDT    float64
	done      bool
}

// LoadTestScript parses a JSON replay script.
func LoadTestScript(jsonData []byte) (*TestRunner, error) {
	var script testScript
	if err := json.Unmarshal(jsonData, &script); err != nil {
		return nil, fmt.Errorf("parse test script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("parse test script: no steps")
	}
	for i, st := range script.Steps {
		switch st.Action {
		case "tick":
			if st.DT < 0 {
				return nil, fmt.Errorf("parse test script: step %d: negative dt", i)
			}
		case "press", "release":
			if _, ok := ParseTrigger(st.Trigger); !ok {
				return nil, fmt.Errorf("parse test script: step %d: unknown trigger %q", i, st.Trigger)
			}
		default:
			return nil, fmt.Errorf("parse test script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &TestRunner{steps: script.Steps}, nil
}

// Done reports whether all steps in the script have been executed.
func (r *TestRunner) Done() bool {
	return r.done
}

// Step plays one frame of the script against s.
func (r *TestRunner) Step(s *Scene) {
	if r.done {
		return
	}
	// Remaining frames of a multi-frame tick.
	if r.waitCount > 0 {
		r.waitCount--
		s.Event(Event{Kind: EventTick, DT: r.waitDT})
		r.checkDone()
		return
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	st := r.steps[r.cursor]
	r.cursor++

	switch st.Action {
	case "tick":
		s.Event(Event{Kind: EventTick, DT: st.DT})
		if st.Frames > 1 {
			r.waitCount = st.Frames - 1 // this frame counts as one
			r.waitDT = st.DT
		}
	case "press":
		trig, _ := ParseTrigger(st.Trigger)
		s.Event(Event{Kind: EventPress, Trigger: trig})
	case "release":
		trig, _ := ParseTrigger(st.Trigger)
		s.Event(Event{Kind: EventRelease, Trigger: trig})
	}
	r.checkDone()
}

// Play runs every remaining step against s.
func (r *TestRunner) Play(s *Scene) {
	for !r.done {
		r.Step(s)
	}
}

func (r *TestRunner) checkDone() {
	if r.cursor >= len(r.steps) && r.waitCount == 0 {
		r.done = true
	}
}
