package grove

import (
	"fmt"
	"log/slog"
	"time"
)

// Scene is the top-level object that owns the node tree and the live set of
// animation runs. A Scene is single-threaded: Update must finish before Draw
// is called for the same frame, and neither may run concurrently with the
// other or with tree changes.
type Scene struct {
	root  *Node
	nodes map[NodeID]*Node
	// nextID is the last NodeID handed out.
	nextID NodeID

	runs     []*AnimationRun
	nextRun  RunHandle
	updating bool

	sink  EventSink
	log   *slog.Logger
	debug bool
}

// NewScene creates a new scene with a pre-created root container. The root is
// never drawn; its children are the scene's roots.
func NewScene() *Scene {
	s := &Scene{
		nodes: make(map[NodeID]*Node),
		log:   newNopLogger(),
	}
	s.root = NewNode("root")
	s.register(s.root)
	return s
}

// Root returns the scene's root container node.
func (s *Scene) Root() *Node {
	return s.root
}

// AddChild takes ownership of n, appends it to the root's children and returns
// its new ID. Paint order is insertion order.
// Panics under the same conditions as Node.AddChild.
func (s *Scene) AddChild(n *Node) NodeID {
	s.root.AddChild(n)
	return n.id
}

// AddChildTo appends n to the children of the node with the given ID.
func (s *Scene) AddChildTo(parent NodeID, n *Node) (NodeID, error) {
	p, ok := s.nodes[parent]
	if !ok {
		return 0, fmt.Errorf("add child to %d: %w", parent, ErrUnknownNode)
	}
	p.AddChild(n)
	return n.id, nil
}

// RemoveChild detaches and disposes the node with the given ID and its whole
// subtree. Runs animating any removed node are cancelled and leave the live
// set; this is how a node's animations are torn down.
func (s *Scene) RemoveChild(id NodeID) error {
	n, ok := s.nodes[id]
	if !ok {
		return fmt.Errorf("remove child %d: %w", id, ErrUnknownNode)
	}
	if n == s.root {
		return fmt.Errorf("remove child %d: cannot remove the scene root", id)
	}
	n.RemoveFromParent()
	dispose(n)
	return nil
}

// Node returns the node with the given ID.
func (s *Scene) Node(id NodeID) (*Node, bool) {
	n, ok := s.nodes[id]
	return n, ok
}

// NumNodes returns the number of nodes in the scene, including the root.
func (s *Scene) NumNodes() int {
	return len(s.nodes)
}

// SetEventSink sets the optional receiver of scene events.
func (s *Scene) SetEventSink(sink EventSink) {
	s.sink = sink
}

// SetDebugMode enables or disables debug mode. When enabled, disposed-node
// tree operations panic, tree depth and child count warnings are logged, and
// per-tick stats are logged at debug level.
func (s *Scene) SetDebugMode(enabled bool) {
	s.debug = enabled
}

// Update advances every running animation by dt seconds, in the order the
// runs were started. Paused runs do not advance. Runs that complete are
// removed from the live set before Update returns; runs started during
// Update first advance on the next call. A negative or NaN dt counts as zero.
func (s *Scene) Update(dt float64) {
	if !(dt > 0) {
		dt = 0
	}
	var t0 time.Time
	if s.debug {
		t0 = time.Now()
	}

	s.updating = true
	live := len(s.runs)
	for i := 0; i < live; i++ {
		r := s.runs[i]
		if r.state != RunRunning {
			continue
		}
		if r.node.scene != s {
			s.finish(r, EventRunStopped)
			continue
		}
		_, done := advance(&r.cursor, r.action, dt, r.node, EaseLinear)
		if done {
			s.finish(r, EventRunCompleted)
		}
	}
	s.updating = false
	s.pruneRuns()

	if s.debug {
		s.debugLog(debugStats{
			dt:         dt,
			updateTime: time.Since(t0),
			runCount:   len(s.runs),
			nodeCount:  len(s.nodes),
		})
	}
}

// register assigns IDs to n and its subtree and indexes them.
func (s *Scene) register(n *Node) {
	s.nextID++
	n.id = s.nextID
	n.scene = s
	s.nodes[n.id] = n
	for _, child := range n.children {
		s.register(child)
	}
}

// unregister removes n and its subtree from the index. IDs are kept so that
// lifecycle events can still name the node.
func (s *Scene) unregister(n *Node) {
	delete(s.nodes, n.id)
	n.scene = nil
	for _, child := range n.children {
		s.unregister(child)
	}
}

// dispose marks a detached subtree as dropped.
func dispose(n *Node) {
	n.disposed = true
	for _, child := range n.children {
		dispose(child)
	}
}
