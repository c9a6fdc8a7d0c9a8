package grove

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// ActionKind distinguishes the leaf and combinator variants of an Action.
type ActionKind uint8

const (
	ActionMoveBy      ActionKind = iota // translate by (X, Y)
	ActionMoveTo                        // translate to (X, Y)
	ActionScaleTo                       // scale to (X, Y)
	ActionScaleBy                       // scale by adding (X, Y)
	ActionRotateTo                      // rotate to X degrees
	ActionRotateBy                      // rotate by X degrees
	ActionFadeIn                        // opacity to 1
	ActionFadeOut                       // opacity to 0
	ActionFadeTo                        // opacity to X
	ActionBlink                         // toggle visibility Times times
	ActionShow                          // instant: visible
	ActionHide                          // instant: hidden
	ActionWait                          // consume time only
	ActionWaitForever                   // never completes
	ActionSequence                      // children one after another
	ActionSpawn                         // children concurrently
	ActionRepeat                        // child Times times, 0 = forever
	ActionWhile                         // children as a sequence while Cond holds
	ActionEase                          // child leaves eased with Ease
)

var actionKindNames = [...]string{
	ActionMoveBy:      "MoveBy",
	ActionMoveTo:      "MoveTo",
	ActionScaleTo:     "ScaleTo",
	ActionScaleBy:     "ScaleBy",
	ActionRotateTo:    "RotateTo",
	ActionRotateBy:    "RotateBy",
	ActionFadeIn:      "FadeIn",
	ActionFadeOut:     "FadeOut",
	ActionFadeTo:      "FadeTo",
	ActionBlink:       "Blink",
	ActionShow:        "Show",
	ActionHide:        "Hide",
	ActionWait:        "Wait",
	ActionWaitForever: "WaitForever",
	ActionSequence:    "Sequence",
	ActionSpawn:       "Spawn",
	ActionRepeat:      "Repeat",
	ActionWhile:       "While",
	ActionEase:        "Ease",
}

func (k ActionKind) String() string {
	if int(k) < len(actionKindNames) {
		return actionKindNames[k]
	}
	return fmt.Sprintf("ActionKind(%d)", uint8(k))
}

// Condition decides whether a While loop runs its body again. It is called
// each time the body completes, with the number of completed iterations.
type Condition func(n *Node, iterations int) bool

// Forever is a Condition that always holds.
func Forever(*Node, int) bool { return true }

// Times returns a Condition that holds until the body has completed n times.
func Times(n int) Condition {
	return func(_ *Node, iterations int) bool { return iterations < n }
}

// Action is an immutable description of a timed change to a Node, or of a
// combination of other Actions. A single flat struct covers every kind; the
// kind decides which fields are meaningful.
//
// Actions never touch a Node themselves. Start one with Scene.Run; the same
// *Action may be started any number of times on any number of nodes, and its
// pointer identifies those runs for Scene.Pause, Scene.Resume and Scene.Stop.
type Action struct {
	kind     ActionKind
	x, y     float64
	duration float64
	times    int
	ease     EaseFunc
	cond     Condition
	children []*Action
}

// Kind returns the action's variant.
func (a *Action) Kind() ActionKind { return a.kind }

// Children returns the composed actions of a combinator. The returned slice
// MUST NOT be mutated.
func (a *Action) Children() []*Action { return a.children }

// --- Leaves ---

// MoveBy moves the node by (dx, dy) over d seconds.
func MoveBy(dx, dy, d float64) *Action {
	return mustAction(&Action{kind: ActionMoveBy, x: dx, y: dy, duration: d})
}

// MoveTo moves the node to (x, y) over d seconds.
func MoveTo(x, y, d float64) *Action {
	return mustAction(&Action{kind: ActionMoveTo, x: x, y: y, duration: d})
}

// ScaleTo scales the node to (sx, sy) over d seconds.
func ScaleTo(sx, sy, d float64) *Action {
	return mustAction(&Action{kind: ActionScaleTo, x: sx, y: sy, duration: d})
}

// ScaleBy adds (dsx, dsy) to the node's scale over d seconds.
func ScaleBy(dsx, dsy, d float64) *Action {
	return mustAction(&Action{kind: ActionScaleBy, x: dsx, y: dsy, duration: d})
}

// RotateTo rotates the node to deg degrees over d seconds.
func RotateTo(deg, d float64) *Action {
	return mustAction(&Action{kind: ActionRotateTo, x: deg, duration: d})
}

// RotateBy rotates the node by deg degrees over d seconds.
func RotateBy(deg, d float64) *Action {
	return mustAction(&Action{kind: ActionRotateBy, x: deg, duration: d})
}

// FadeIn raises the node's opacity to 1 over d seconds.
func FadeIn(d float64) *Action {
	return mustAction(&Action{kind: ActionFadeIn, duration: d})
}

// FadeOut lowers the node's opacity to 0 over d seconds.
func FadeOut(d float64) *Action {
	return mustAction(&Action{kind: ActionFadeOut, duration: d})
}

// FadeTo changes the node's opacity to opacity over d seconds.
func FadeTo(opacity, d float64) *Action {
	return mustAction(&Action{kind: ActionFadeTo, x: opacity, duration: d})
}

// Blink toggles the node's visibility times times over d seconds. Toggle i
// happens at fraction (2i+1)/(2*times) of d. When the blink completes the node
// has the visibility it had when the blink started.
func Blink(d float64, times int) *Action {
	return mustAction(&Action{kind: ActionBlink, duration: d, times: times})
}

// Show makes the node visible immediately.
func Show() *Action { return &Action{kind: ActionShow} }

// Hide makes the node invisible immediately.
func Hide() *Action { return &Action{kind: ActionHide} }

// Wait does nothing for d seconds.
func Wait(d float64) *Action {
	return mustAction(&Action{kind: ActionWait, duration: d})
}

// WaitForever never completes and never changes the node.
func WaitForever() *Action { return &Action{kind: ActionWaitForever} }

// --- Combinators ---

// Sequence runs actions one after another. Time left over when one finishes
// is handed to the next within the same update.
func Sequence(actions ...*Action) *Action {
	return mustAction(&Action{kind: ActionSequence, children: actions})
}

// Spawn runs actions concurrently, advancing them in the listed order each
// update. It completes when every action has completed.
func Spawn(actions ...*Action) *Action {
	return mustAction(&Action{kind: ActionSpawn, children: actions})
}

// Parallel is an alias for Spawn.
func Parallel(actions ...*Action) *Action { return Spawn(actions...) }

// Repeat runs a n times.
func Repeat(a *Action, n int) *Action {
	if n < 1 {
		panic(fmt.Sprintf("grove: Repeat count must be at least 1, got %d", n))
	}
	return mustAction(&Action{kind: ActionRepeat, times: n, children: []*Action{a}})
}

// RepeatForever runs a again each time it completes.
func RepeatForever(a *Action) *Action {
	return mustAction(&Action{kind: ActionRepeat, children: []*Action{a}})
}

// While runs body as a sequence, then asks cond whether to run it again.
// The While completes the first time cond reports false.
func While(cond Condition, body ...*Action) *Action {
	return mustAction(&Action{kind: ActionWhile, cond: cond, children: body})
}

// Ease passes the progress of every leaf inside a through fn. When Ease
// wrappers nest, the innermost one applies.
func Ease(fn EaseFunc, a *Action) *Action {
	return mustAction(&Action{kind: ActionEase, ease: fn, children: []*Action{a}})
}

// --- Derived properties ---

// Duration returns the time the action takes to complete. bounded is false
// when the action may never complete: WaitForever, RepeatForever, While, and
// any Sequence or Spawn containing one of those.
func (a *Action) Duration() (d float64, bounded bool) {
	switch a.kind {
	case ActionMoveBy, ActionMoveTo, ActionScaleTo, ActionScaleBy,
		ActionRotateTo, ActionRotateBy, ActionFadeIn, ActionFadeOut,
		ActionFadeTo, ActionBlink, ActionWait:
		return a.duration, true
	case ActionShow, ActionHide:
		return 0, true
	case ActionWaitForever, ActionWhile:
		return 0, false
	case ActionSequence:
		var sum float64
		for _, c := range a.children {
			cd, ok := c.Duration()
			if !ok {
				return 0, false
			}
			sum += cd
		}
		return sum, true
	case ActionSpawn:
		var longest float64
		for _, c := range a.children {
			cd, ok := c.Duration()
			if !ok {
				return 0, false
			}
			longest = math.Max(longest, cd)
		}
		return longest, true
	case ActionRepeat:
		if a.times == 0 {
			return 0, false
		}
		cd, ok := a.children[0].Duration()
		if !ok {
			return 0, false
		}
		return cd * float64(a.times), true
	case ActionEase:
		return a.children[0].Duration()
	}
	panic(fmt.Sprintf("grove: unknown action kind %d", a.kind))
}

// --- Validation ---

// ErrInvalidAction is wrapped by the errors TryBuild returns.
var ErrInvalidAction = errors.New("grove: invalid action")

// TryBuild calls build and returns the action it constructs. A constructor
// that rejects its arguments panics; TryBuild turns that panic into an error
// wrapping ErrInvalidAction, for action trees assembled from data. Panics that
// did not come from an action constructor are re-raised.
func TryBuild(build func() *Action) (a *Action, err error) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		msg, ok := r.(string)
		if !ok || !strings.HasPrefix(msg, "grove: ") {
			panic(r)
		}
		a, err = nil, fmt.Errorf("%w: %s", ErrInvalidAction, strings.TrimPrefix(msg, "grove: "))
	}()
	return build(), nil
}

// mustAction panics when a is malformed. Malformed trees are programmer
// errors and are rejected before they can reach Scene.Update.
func mustAction(a *Action) *Action {
	if err := a.check(); err != nil {
		panic("grove: " + err.Error())
	}
	return a
}

// check validates a's own fields. Children were validated when they were
// constructed.
func (a *Action) check() error {
	if math.IsNaN(a.duration) || math.IsInf(a.duration, 0) || a.duration < 0 {
		return fmt.Errorf("%s duration must be a finite non-negative number, got %v", a.kind, a.duration)
	}
	if math.IsNaN(a.x) || math.IsNaN(a.y) {
		return fmt.Errorf("%s has a NaN operand", a.kind)
	}
	switch a.kind {
	case ActionBlink:
		if a.times < 1 {
			return fmt.Errorf("Blink times must be at least 1, got %d", a.times)
		}
	case ActionFadeTo:
		if a.x < 0 || a.x > 1 {
			return fmt.Errorf("FadeTo opacity must be in [0, 1], got %v", a.x)
		}
	case ActionSequence, ActionSpawn, ActionWhile, ActionRepeat, ActionEase:
		if len(a.children) == 0 {
			return fmt.Errorf("%s needs at least one action", a.kind)
		}
		for i, c := range a.children {
			if c == nil {
				return fmt.Errorf("%s action %d is nil", a.kind, i)
			}
		}
	}
	switch a.kind {
	case ActionWhile:
		if a.cond == nil {
			return fmt.Errorf("While needs a condition")
		}
		if d, ok := Sequence(a.children...).Duration(); ok && d <= timeEpsilon {
			return fmt.Errorf("While body must take time, got duration %v", d)
		}
	case ActionRepeat:
		if a.times > 0 {
			break
		}
		if d, ok := a.children[0].Duration(); ok && d <= timeEpsilon {
			return fmt.Errorf("RepeatForever body must take time, got duration %v", d)
		}
	}
	return nil
}
