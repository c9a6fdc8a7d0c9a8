package scenario

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/phanxgames/grove"
)

// ErrSpec is wrapped by every error reporting a malformed scenario.
var ErrSpec = errors.New("scenario: invalid spec")

// Build converts s into an action tree. Conditions are compiled with Tengo;
// their run-time failures are logged to log. A nil log discards them.
func (s ActionSpec) Build(log *slog.Logger) (*grove.Action, error) {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return s.build("action", log)
}

func (s ActionSpec) build(path string, log *slog.Logger) (*grove.Action, error) {
	path = path + "." + s.Type
	children, err := s.buildChildren(path, log)
	if err != nil {
		return nil, err
	}

	if s.ConditionFile != "" {
		return nil, fmt.Errorf("%w: %s: condition_file is only resolved by Load", ErrSpec, path)
	}

	var cond grove.Condition
	if s.Type == "while" {
		switch {
		case s.Condition != "":
			if cond, err = CompileCondition(s.Condition, log); err != nil {
				return nil, fmt.Errorf("%w: %s: %w", ErrSpec, path, err)
			}
		case s.Times > 0:
			cond = grove.Times(s.Times)
		default:
			cond = grove.Forever
		}
	}

	var fn grove.EaseFunc
	if s.Ease != "" {
		if fn, err = grove.ParseEaseFunc(s.Ease); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrSpec, path, err)
		}
	}

	var build func() *grove.Action
	switch s.Type {
	case "move-by":
		build = func() *grove.Action { return grove.MoveBy(s.X, s.Y, s.Duration) }
	case "move-to":
		build = func() *grove.Action { return grove.MoveTo(s.X, s.Y, s.Duration) }
	case "scale-to":
		build = func() *grove.Action { return grove.ScaleTo(s.X, s.Y, s.Duration) }
	case "scale-by":
		build = func() *grove.Action { return grove.ScaleBy(s.X, s.Y, s.Duration) }
	case "rotate-to":
		build = func() *grove.Action { return grove.RotateTo(s.Degrees, s.Duration) }
	case "rotate-by":
		build = func() *grove.Action { return grove.RotateBy(s.Degrees, s.Duration) }
	case "fade-in":
		build = func() *grove.Action { return grove.FadeIn(s.Duration) }
	case "fade-out":
		build = func() *grove.Action { return grove.FadeOut(s.Duration) }
	case "fade-to":
		build = func() *grove.Action { return grove.FadeTo(s.Opacity, s.Duration) }
	case "blink":
		build = func() *grove.Action { return grove.Blink(s.Duration, s.Times) }
	case "show":
		build = grove.Show
	case "hide":
		build = grove.Hide
	case "wait":
		build = func() *grove.Action { return grove.Wait(s.Duration) }
	case "wait-forever":
		build = grove.WaitForever
	case "sequence":
		build = func() *grove.Action { return grove.Sequence(children...) }
	case "spawn", "parallel":
		build = func() *grove.Action { return grove.Spawn(children...) }
	case "repeat":
		if len(children) != 1 {
			return nil, fmt.Errorf("%w: %s: needs exactly one action, got %d", ErrSpec, path, len(children))
		}
		if s.Forever {
			build = func() *grove.Action { return grove.RepeatForever(children[0]) }
		} else {
			build = func() *grove.Action { return grove.Repeat(children[0], s.Times) }
		}
	case "while":
		build = func() *grove.Action { return grove.While(cond, children...) }
	case "ease":
		if len(children) != 1 {
			return nil, fmt.Errorf("%w: %s: needs exactly one action, got %d", ErrSpec, path, len(children))
		}
		if s.Ease == "" {
			return nil, fmt.Errorf("%w: %s: missing ease", ErrSpec, path)
		}
		build = func() *grove.Action { return grove.Ease(fn, children[0]) }
	case "":
		return nil, fmt.Errorf("%w: %s: missing type", ErrSpec, path)
	default:
		return nil, fmt.Errorf("%w: %s: unknown type", ErrSpec, path)
	}

	a, err := grove.TryBuild(build)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrSpec, path, err)
	}
	if s.Ease != "" && s.Type != "ease" {
		a = grove.Ease(fn, a)
	}
	return a, nil
}

func (s ActionSpec) buildChildren(path string, log *slog.Logger) ([]*grove.Action, error) {
	if len(s.Actions) == 0 {
		return nil, nil
	}
	out := make([]*grove.Action, len(s.Actions))
	for i, child := range s.Actions {
		a, err := child.build(fmt.Sprintf("%s[%d]", path, i), log)
		if err != nil {
			return nil, err
		}
		out[i] = a
	}
	return out, nil
}

// BuildNode creates the node tree described by s. Images are loaded through
// loader; a failed load is returned as *grove.AssetError.
func BuildNode(s NodeSpec, loader grove.AssetLoader) (*grove.Node, error) {
	if s.Name == "" {
		return nil, fmt.Errorf("%w: node without a name", ErrSpec)
	}
	var n *grove.Node
	if s.Image != "" {
		if loader == nil {
			return nil, fmt.Errorf("%w: node %q has an image but no loader was given", ErrSpec, s.Name)
		}
		var err error
		if n, err = grove.LoadSprite(loader, s.Name, s.Image); err != nil {
			return nil, err
		}
	} else {
		n = grove.NewNode(s.Name)
	}

	n.SetPosition(s.Position.X, s.Position.Y)
	if s.Scale != nil {
		n.SetScale(s.Scale.X, s.Scale.Y)
	}
	n.SetRotation(s.Rotation)
	n.SetAnchor(s.Anchor.X, s.Anchor.Y)
	if s.Opacity != nil {
		n.SetOpacity(*s.Opacity)
	}
	if s.Tint != nil {
		n.Color = s.Tint.Color()
	}
	n.SetVisible(!s.Hidden)

	for _, cs := range s.Children {
		child, err := BuildNode(cs, loader)
		if err != nil {
			return nil, err
		}
		n.AddChild(child)
	}
	return n, nil
}
