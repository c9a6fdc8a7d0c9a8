package scenario

import (
	"fmt"
	"log/slog"

	"github.com/phanxgames/grove"
)

// Instance is a scenario applied to a scene.
type Instance struct {
	// Nodes maps node names to their scene IDs.
	Nodes map[string]grove.NodeID
	// Runs holds the started runs in file order.
	Runs  []grove.RunHandle
	roots []grove.NodeID
}

// Apply builds every node and action of f, then adds the node forest to s and
// starts the animations. Nothing is added to s unless the whole file builds:
// an asset failure is returned as *grove.AssetError, a malformed file as an
// error wrapping ErrSpec.
func Apply(s *grove.Scene, f *File, loader grove.AssetLoader) (*Instance, error) {
	log := s.Logger()

	roots := make([]*grove.Node, len(f.Nodes))
	byName := make(map[string]*grove.Node)
	for i, ns := range f.Nodes {
		n, err := BuildNode(ns, loader)
		if err != nil {
			return nil, err
		}
		if err := index(n, byName); err != nil {
			return nil, err
		}
		roots[i] = n
	}

	actions := make([]*grove.Action, len(f.Animations))
	for i, as := range f.Animations {
		if _, ok := byName[as.Node]; !ok {
			return nil, fmt.Errorf("%w: animation %d (%s): unknown node %q", ErrSpec, i, as.Name, as.Node)
		}
		a, err := as.Action.Build(log)
		if err != nil {
			return nil, fmt.Errorf("animation %d (%s): %w", i, as.Name, err)
		}
		actions[i] = a
	}

	inst := &Instance{Nodes: make(map[string]grove.NodeID, len(byName))}
	for _, n := range roots {
		inst.roots = append(inst.roots, s.AddChild(n))
	}
	for name, n := range byName {
		inst.Nodes[name] = n.ID()
	}
	for i, as := range f.Animations {
		h := s.Run(inst.Nodes[as.Node], actions[i])
		if as.Paused {
			s.PauseRun(h)
		}
		inst.Runs = append(inst.Runs, h)
		log.Debug("scenario animation started", slog.String("name", as.Name),
			slog.String("node", as.Node), slog.Uint64("run", uint64(h)))
	}
	return inst, nil
}

// Remove takes the instance's nodes out of s, cancelling its runs. Nodes
// already removed by other code are skipped.
func (inst *Instance) Remove(s *grove.Scene) {
	for _, id := range inst.roots {
		_ = s.RemoveChild(id)
	}
	inst.roots = nil
	inst.Runs = nil
}

func index(n *grove.Node, byName map[string]*grove.Node) error {
	if _, dup := byName[n.Name]; dup {
		return fmt.Errorf("%w: duplicate node name %q", ErrSpec, n.Name)
	}
	byName[n.Name] = n
	for _, c := range n.Children() {
		if err := index(c, byName); err != nil {
			return err
		}
	}
	return nil
}
