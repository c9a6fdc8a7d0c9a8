package grove

// NodeID identifies a node within its Scene. The zero value means the node has
// never been added to a scene. IDs are assigned on insertion from a per-scene
// counter and are never reused.
type NodeID uint32

// Node is the fundamental scene graph element. A single flat struct is used for
// containers and sprites alike; a node draws only when it has Content.
//
// Fields may be set directly before a node is animated. Once runs are
// animating a node, prefer the setters from the surrounding application loop
// between ticks; Scene.Update is the only writer during a tick.
type Node struct {
	// Identity
	Name string
	id   NodeID

	// Hierarchy
	parent   *Node
	children []*Node
	scene    *Scene

	// Transform (local)
	X, Y             float64
	ScaleX, ScaleY   float64
	Rotation         float64 // degrees, clockwise with Y down
	AnchorX, AnchorY float64 // local-space origin for scale and rotation

	// Visual
	Opacity float64 // [0, 1]
	Visible bool
	Color   Color

	// Content is the opaque handle supplied by the asset collaborator (an
	// *ebiten.Image, a rune for the terminal renderer, ...). It is passed to
	// the Renderer unmodified.
	Content any

	// Metadata
	UserData any

	disposed bool
}

// nodeDefaults sets the common default field values shared by all constructors.
func nodeDefaults(n *Node) {
	n.ScaleX = 1
	n.ScaleY = 1
	n.Opacity = 1
	n.Visible = true
	n.Color = ColorWhite
}

// NewNode creates a container node with no visual content.
func NewNode(name string) *Node {
	n := &Node{Name: name}
	nodeDefaults(n)
	return n
}

// NewSprite creates a node that draws content.
func NewSprite(name string, content any) *Node {
	n := &Node{Name: name, Content: content}
	nodeDefaults(n)
	return n
}

// ID returns the node's scene-assigned identifier, or zero if the node was
// never added to a scene. Node identity is by ID, not by field values.
func (n *Node) ID() NodeID { return n.id }

// Scene returns the scene the node belongs to, or nil.
func (n *Node) Scene() *Scene { return n.scene }

// --- Tree manipulation ---

// Parent returns the node's parent, or nil for a detached node.
func (n *Node) Parent() *Node { return n.parent }

// Children returns the child list in paint order (back to front). The returned
// slice MUST NOT be mutated by the caller.
func (n *Node) Children() []*Node { return n.children }

// NumChildren returns the number of children.
func (n *Node) NumChildren() int { return len(n.children) }

// ChildAt returns the child at the given index.
func (n *Node) ChildAt(index int) *Node { return n.children[index] }

// AddChild appends child to this node's children and takes ownership of it.
// If this node belongs to a scene, child and its subtree are registered with
// that scene and receive IDs.
// Panics if child is nil, already has a parent, belongs to a scene, or is an
// ancestor of this node (cycle).
func (n *Node) AddChild(child *Node) {
	if child == nil {
		panic("grove: cannot add nil child")
	}
	if n.scene != nil && n.scene.debug {
		debugCheckDisposed(n, "AddChild (parent)")
		debugCheckDisposed(child, "AddChild (child)")
	}
	if isAncestor(child, n) {
		panic("grove: adding child would create a cycle")
	}
	if child.parent != nil {
		panic("grove: child already has a parent; call RemoveFromParent first")
	}
	if child.scene != nil {
		panic("grove: child already belongs to a scene")
	}
	child.parent = n
	n.children = append(n.children, child)
	if n.scene != nil {
		n.scene.register(child)
		if n.scene.debug {
			n.scene.debugCheckTreeDepth(child)
			n.scene.debugCheckChildCount(n)
		}
	}
}

// RemoveChild detaches child and its subtree from this node. If the node
// belongs to a scene, the subtree leaves the scene and every run animating a
// node in it is cancelled.
// Panics if child.Parent() != n.
func (n *Node) RemoveChild(child *Node) {
	if child.parent != n {
		panic("grove: child's parent is not this node")
	}
	n.removeChildByPtr(child)
	child.parent = nil
	if s := n.scene; s != nil {
		s.unregister(child)
		s.cancelDetachedRuns()
	}
}

// RemoveFromParent detaches this node from its parent.
// No-op if this node has no parent.
func (n *Node) RemoveFromParent() {
	if n.parent == nil {
		return
	}
	n.parent.RemoveChild(n)
}

// IsDisposed reports whether the node was removed from a scene with
// Scene.RemoveChild.
func (n *Node) IsDisposed() bool { return n.disposed }

// --- Property setters ---

// SetPosition sets the node's local X and Y.
func (n *Node) SetPosition(x, y float64) {
	n.X = x
	n.Y = y
}

// Position returns the node's local X and Y.
func (n *Node) Position() (x, y float64) { return n.X, n.Y }

// SetScale sets the node's ScaleX and ScaleY.
func (n *Node) SetScale(sx, sy float64) {
	n.ScaleX = sx
	n.ScaleY = sy
}

// SetRotation sets the node's rotation in degrees.
func (n *Node) SetRotation(deg float64) { n.Rotation = deg }

// SetAnchor sets the local point scale and rotation are applied around.
func (n *Node) SetAnchor(ax, ay float64) {
	n.AnchorX = ax
	n.AnchorY = ay
}

// SetOpacity sets the node's opacity, clamped to [0, 1].
func (n *Node) SetOpacity(o float64) { n.Opacity = clamp01(o) }

// SetVisible shows or hides the node. Hiding a node does not hide its
// children.
func (n *Node) SetVisible(v bool) { n.Visible = v }

// --- Helpers ---

// isAncestor reports whether candidate is node or an ancestor of node.
func isAncestor(candidate, node *Node) bool {
	for p := node; p != nil; p = p.parent {
		if p == candidate {
			return true
		}
	}
	return false
}

// removeChildByPtr removes child from n.children without clearing child.parent.
// Uses copy+nil to avoid retaining a dangling pointer in the backing array.
func (n *Node) removeChildByPtr(child *Node) {
	for i, c := range n.children {
		if c == child {
			copy(n.children[i:], n.children[i+1:])
			n.children[len(n.children)-1] = nil
			n.children = n.children[:len(n.children)-1]
			return
		}
	}
}
