package grove

// Draw traverses the tree depth-first in paint order, composing each node's
// local transform with its parent's, starting from root. A node is drawn when
// it has Content, is Visible and has Opacity > 0; the renderer receives the
// node's own opacity. Hidden or transparent nodes are skipped but their
// children are still visited: visibility and opacity do not propagate.
// A TintRenderer also receives the node's Color.
func (s *Scene) Draw(root Affine, r Renderer) {
	var stats debugStats
	tr, _ := r.(TintRenderer)
	for _, child := range s.root.children {
		s.traverse(child, root, r, tr, &stats)
	}
	if s.debug {
		s.debugLogDraw(stats)
	}
}

func (s *Scene) traverse(n *Node, parent Affine, r Renderer, tr TintRenderer, stats *debugStats) {
	world := parent.Multiply(n.LocalTransform())
	stats.visited++
	if n.Content != nil && n.Visible && n.Opacity > 0 {
		if tr != nil {
			tr.DrawTinted(n.Content, world, n.Opacity, n.Color)
		} else {
			r.DrawNode(n.Content, world, n.Opacity)
		}
		stats.drawCount++
	}
	for _, child := range n.children {
		s.traverse(child, world, r, tr, stats)
	}
}
