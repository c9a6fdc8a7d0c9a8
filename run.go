package grove

import "log/slog"

// RunHandle identifies one animation run within its scene. The zero handle is
// never issued.
type RunHandle uint64

// RunState is the lifecycle state of an AnimationRun.
type RunState uint8

const (
	RunRunning   RunState = iota // advanced by every Update
	RunPaused                    // frozen; Update skips it
	RunCompleted                 // finished or cancelled; leaves the live set
)

func (st RunState) String() string {
	switch st {
	case RunRunning:
		return "running"
	case RunPaused:
		return "paused"
	case RunCompleted:
		return "completed"
	}
	return "unknown"
}

// AnimationRun is the mutable execution state binding an Action to a Node.
// The Scene owns every run; pausing and resuming change only the run's state,
// never its cursor or the Action.
type AnimationRun struct {
	handle RunHandle
	node   *Node
	action *Action
	state  RunState
	cursor cursor
}

// Handle returns the run's handle.
func (r *AnimationRun) Handle() RunHandle { return r.handle }

// Node returns the animated node.
func (r *AnimationRun) Node() *Node { return r.node }

// Action returns the action being run.
func (r *AnimationRun) Action() *Action { return r.action }

// State returns the run's lifecycle state.
func (r *AnimationRun) State() RunState { return r.state }

// Run starts a on the node with the given ID and returns the handle of the
// new run. Runs on the same node are independent: each applies its changes
// every tick, and when two runs animate the same field the run started later
// wins for that tick. An unknown ID returns the zero handle and starts nothing.
func (s *Scene) Run(id NodeID, a *Action) RunHandle {
	n, ok := s.nodes[id]
	if !ok || a == nil {
		return 0
	}
	s.nextRun++
	r := &AnimationRun{
		handle: s.nextRun,
		node:   n,
		action: a,
		state:  RunRunning,
		cursor: newCursor(a),
	}
	s.runs = append(s.runs, r)
	s.log.Debug("run started", slog.Uint64("run", uint64(r.handle)),
		slog.Uint64("node", uint64(id)), slog.String("action", a.kind.String()))
	s.emit(Event{Kind: EventRunStarted, Node: id, Run: r.handle})
	return r.handle
}

// Pause freezes every live run of a on the node. Pausing an unknown, paused
// or completed run is a no-op.
func (s *Scene) Pause(id NodeID, a *Action) {
	for _, r := range s.runs {
		if r.node.id == id && r.action == a {
			s.pause(r)
		}
	}
}

// Resume reactivates every paused run of a on the node. The run continues
// from its exact cursor with no time skipped.
func (s *Scene) Resume(id NodeID, a *Action) {
	for _, r := range s.runs {
		if r.node.id == id && r.action == a {
			s.resume(r)
		}
	}
}

// Stop cancels every live run of a on the node. Node fields keep the values
// the run last wrote.
func (s *Scene) Stop(id NodeID, a *Action) {
	for _, r := range s.runs {
		if r.node.id == id && r.action == a && r.state != RunCompleted {
			s.finish(r, EventRunStopped)
		}
	}
	s.pruneRuns()
}

// StopAll cancels every live run animating the node.
func (s *Scene) StopAll(id NodeID) {
	for _, r := range s.runs {
		if r.node.id == id && r.state != RunCompleted {
			s.finish(r, EventRunStopped)
		}
	}
	s.pruneRuns()
}

// PauseAll freezes every live run in the scene.
func (s *Scene) PauseAll() {
	for _, r := range s.runs {
		s.pause(r)
	}
}

// ResumeAll reactivates every paused run in the scene.
func (s *Scene) ResumeAll() {
	for _, r := range s.runs {
		s.resume(r)
	}
}

// PauseRun freezes the run with the given handle.
func (s *Scene) PauseRun(h RunHandle) {
	if r := s.lookupRun(h); r != nil {
		s.pause(r)
	}
}

// ResumeRun reactivates the run with the given handle.
func (s *Scene) ResumeRun(h RunHandle) {
	if r := s.lookupRun(h); r != nil {
		s.resume(r)
	}
}

// StopRun cancels the run with the given handle.
func (s *Scene) StopRun(h RunHandle) {
	if r := s.lookupRun(h); r != nil && r.state != RunCompleted {
		s.finish(r, EventRunStopped)
		s.pruneRuns()
	}
}

// RunState reports the state of the run with the given handle. live is false
// once the run has left the live set.
func (s *Scene) RunState(h RunHandle) (state RunState, live bool) {
	if r := s.lookupRun(h); r != nil {
		return r.state, true
	}
	return RunCompleted, false
}

// Runs returns the live runs in registration order. The returned slice MUST
// NOT be mutated and is only valid until the next scene call.
func (s *Scene) Runs() []*AnimationRun {
	return s.runs
}

// NumRuns returns the number of live runs.
func (s *Scene) NumRuns() int {
	return len(s.runs)
}

func (s *Scene) lookupRun(h RunHandle) *AnimationRun {
	for _, r := range s.runs {
		if r.handle == h {
			return r
		}
	}
	return nil
}

func (s *Scene) pause(r *AnimationRun) {
	if r.state != RunRunning {
		return
	}
	r.state = RunPaused
	s.emit(Event{Kind: EventRunPaused, Node: r.node.id, Run: r.handle})
}

func (s *Scene) resume(r *AnimationRun) {
	if r.state != RunPaused {
		return
	}
	r.state = RunRunning
	s.emit(Event{Kind: EventRunResumed, Node: r.node.id, Run: r.handle})
}

// finish moves r to RunCompleted and reports why.
func (s *Scene) finish(r *AnimationRun, kind EventKind) {
	r.state = RunCompleted
	s.log.Debug("run finished", slog.Uint64("run", uint64(r.handle)),
		slog.Uint64("node", uint64(r.node.id)), slog.String("reason", kind.String()))
	s.emit(Event{Kind: kind, Node: r.node.id, Run: r.handle})
}

// cancelDetachedRuns stops every run whose node has left the scene.
func (s *Scene) cancelDetachedRuns() {
	for _, r := range s.runs {
		if r.state != RunCompleted && r.node.scene != s {
			s.finish(r, EventRunStopped)
		}
	}
	s.pruneRuns()
}

// pruneRuns drops completed runs from the live set, keeping registration
// order. While Update is iterating, pruning waits until it returns.
func (s *Scene) pruneRuns() {
	if s.updating {
		return
	}
	kept := s.runs[:0]
	for _, r := range s.runs {
		if r.state != RunCompleted {
			kept = append(kept, r)
		}
	}
	for i := len(kept); i < len(s.runs); i++ {
		s.runs[i] = nil
	}
	s.runs = kept
}
