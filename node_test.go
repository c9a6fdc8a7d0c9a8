package grove

import "testing"

// --- Constructor defaults ---

func TestNewNodeDefaults(t *testing.T) {
	n := NewNode("test")
	assertNodeDefaults(t, n, "test")
	if n.Content != nil {
		t.Error("container Content should be nil")
	}
}

func TestNewSpriteDefaults(t *testing.T) {
	n := NewSprite("spr", "logo")
	assertNodeDefaults(t, n, "spr")
	if n.Content != "logo" {
		t.Errorf("Content = %v, want logo", n.Content)
	}
}

func assertNodeDefaults(t *testing.T, n *Node, name string) {
	t.Helper()
	if n.ID() != 0 {
		t.Error("ID should be zero before insertion")
	}
	if n.Name != name {
		t.Errorf("Name = %q, want %q", n.Name, name)
	}
	if n.ScaleX != 1 || n.ScaleY != 1 {
		t.Errorf("Scale = (%v, %v), want (1, 1)", n.ScaleX, n.ScaleY)
	}
	if n.Opacity != 1 {
		t.Errorf("Opacity = %v, want 1", n.Opacity)
	}
	if n.Color != ColorWhite {
		t.Errorf("Color = %v, want white", n.Color)
	}
	if !n.Visible {
		t.Error("Visible should be true")
	}
}

// --- AddChild ---

func TestAddChildBasic(t *testing.T) {
	parent := NewNode("parent")
	child := NewNode("child")
	parent.AddChild(child)

	if child.Parent() != parent {
		t.Error("child.Parent() should be parent")
	}
	if parent.NumChildren() != 1 {
		t.Errorf("NumChildren = %d, want 1", parent.NumChildren())
	}
	if parent.ChildAt(0) != child {
		t.Error("ChildAt(0) should be child")
	}
}

func TestAddChildPreservesOrder(t *testing.T) {
	parent := NewNode("parent")
	a, b, c := NewNode("a"), NewNode("b"), NewNode("c")
	parent.AddChild(a)
	parent.AddChild(b)
	parent.AddChild(c)
	kids := parent.Children()
	if kids[0] != a || kids[1] != b || kids[2] != c {
		t.Error("children should be in insertion order")
	}
}

func TestAddChildRejectsSecondOwner(t *testing.T) {
	p1 := NewNode("p1")
	p2 := NewNode("p2")
	child := NewNode("child")
	p1.AddChild(child)
	expectPanic(t, "second parent", func() { p2.AddChild(child) })
	if child.Parent() != p1 || p2.NumChildren() != 0 {
		t.Error("failed AddChild must leave the tree unchanged")
	}
}

func TestAddChildAfterRemoveFromParent(t *testing.T) {
	p1 := NewNode("p1")
	p2 := NewNode("p2")
	child := NewNode("child")
	p1.AddChild(child)
	child.RemoveFromParent()
	p2.AddChild(child)
	if p1.NumChildren() != 0 || p2.NumChildren() != 1 || child.Parent() != p2 {
		t.Error("child should move to p2")
	}
}

func TestAddChildNilPanics(t *testing.T) {
	expectPanic(t, "nil child", func() { NewNode("p").AddChild(nil) })
}

func TestAddChildCyclePanics(t *testing.T) {
	a := NewNode("a")
	b := NewNode("b")
	a.AddChild(b)
	expectPanic(t, "cycle", func() { b.AddChild(a) })
	expectPanic(t, "self", func() { a.AddChild(a) })
}

// --- RemoveChild ---

func TestRemoveChild(t *testing.T) {
	parent := NewNode("parent")
	a, b := NewNode("a"), NewNode("b")
	parent.AddChild(a)
	parent.AddChild(b)
	parent.RemoveChild(a)
	if a.Parent() != nil {
		t.Error("removed child's parent should be nil")
	}
	if parent.NumChildren() != 1 || parent.ChildAt(0) != b {
		t.Error("only b should remain")
	}
}

func TestRemoveChildWrongParentPanics(t *testing.T) {
	p := NewNode("p")
	other := NewNode("other")
	expectPanic(t, "wrong parent", func() { p.RemoveChild(other) })
}

func TestRemoveFromParentNoParent(t *testing.T) {
	NewNode("orphan").RemoveFromParent() // should not panic
}

// --- Setters ---

func TestSetters(t *testing.T) {
	n := NewNode("n")
	n.SetPosition(3, 4)
	if x, y := n.Position(); x != 3 || y != 4 {
		t.Errorf("Position = (%v, %v), want (3, 4)", x, y)
	}
	n.SetScale(2, 5)
	if n.ScaleX != 2 || n.ScaleY != 5 {
		t.Errorf("Scale = (%v, %v)", n.ScaleX, n.ScaleY)
	}
	n.SetRotation(90)
	if n.Rotation != 90 {
		t.Errorf("Rotation = %v", n.Rotation)
	}
	n.SetAnchor(8, 8)
	if n.AnchorX != 8 || n.AnchorY != 8 {
		t.Errorf("Anchor = (%v, %v)", n.AnchorX, n.AnchorY)
	}
	n.SetOpacity(1.5)
	if n.Opacity != 1 {
		t.Errorf("Opacity = %v, want clamped 1", n.Opacity)
	}
	n.SetOpacity(-1)
	if n.Opacity != 0 {
		t.Errorf("Opacity = %v, want clamped 0", n.Opacity)
	}
	n.SetVisible(false)
	if n.Visible {
		t.Error("Visible should be false")
	}
}

// --- Scene membership ---

func TestAddChildToSceneNodeRegistersSubtree(t *testing.T) {
	s := NewScene()
	parent := NewNode("parent")
	s.AddChild(parent)

	sub := NewNode("sub")
	leaf := NewNode("leaf")
	sub.AddChild(leaf)
	parent.AddChild(sub)

	if sub.ID() == 0 || leaf.ID() == 0 {
		t.Fatal("subtree should receive IDs when attached to a scene node")
	}
	if got, ok := s.Node(leaf.ID()); !ok || got != leaf {
		t.Error("leaf should be indexed by the scene")
	}
	if leaf.Scene() != s {
		t.Error("leaf.Scene() should be s")
	}
}

func TestAddChildFromOtherScenePanics(t *testing.T) {
	s1 := NewScene()
	s2 := NewScene()
	expectPanic(t, "node in another scene", func() {
		s1.Root().AddChild(s2.Root())
	})
}

func TestRemoveChildLeavesScene(t *testing.T) {
	s := NewScene()
	parent := NewNode("parent")
	child := NewNode("child")
	parent.AddChild(child)
	s.AddChild(parent)

	id := child.ID()
	parent.RemoveChild(child)
	if _, ok := s.Node(id); ok {
		t.Error("removed child should leave the scene index")
	}
	if child.Scene() != nil {
		t.Error("removed child should have no scene")
	}
	if child.ID() != id {
		t.Error("ID should be kept after removal")
	}
}
