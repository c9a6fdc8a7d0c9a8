package grove

import (
	"fmt"
	"math"
)

// timeEpsilon absorbs float drift when elapsed time is accumulated across
// several ticks, so a step split over ticks ends where a single tick would.
const timeEpsilon = 1e-9

// cursor is the mutable position of one run inside an action tree. Its shape
// mirrors the tree: children[i] belongs to action.children[i]. The whole tree
// of cursors is allocated when the run starts so advancing never allocates.
type cursor struct {
	elapsed  float64    // time spent in a timed leaf
	started  bool       // leaf start values captured
	done     bool       // Spawn branch finished
	index    int        // active child of a Sequence or While body
	count    int        // completed Repeat/While iterations, or Blink toggles
	from     [2]float64 // leaf start values
	visible  bool       // Blink start visibility
	children []cursor
}

func newCursor(a *Action) cursor {
	var c cursor
	if len(a.children) > 0 {
		c.children = make([]cursor, len(a.children))
		for i, child := range a.children {
			c.children[i] = newCursor(child)
		}
	}
	return c
}

// reset returns c and its subtree to the state of a fresh cursor without
// releasing the children.
func (c *cursor) reset() {
	c.elapsed = 0
	c.started = false
	c.done = false
	c.index = 0
	c.count = 0
	c.from = [2]float64{}
	c.visible = false
	c.resetChildren()
}

func (c *cursor) resetChildren() {
	for i := range c.children {
		c.children[i].reset()
	}
}

// tick moves elapsed toward d by at most dt and reports the time used and
// whether d was reached.
func (c *cursor) tick(d, dt float64) (used float64, done bool) {
	remaining := d - c.elapsed
	if dt >= remaining-timeEpsilon {
		c.elapsed = d
		if remaining < 0 {
			remaining = 0
		}
		return min(remaining, dt), true
	}
	c.elapsed += dt
	return dt, false
}

// advance applies up to dt seconds of a to n starting from c. It returns the
// time actually used, which is less than dt only when the action completed
// partway through, and whether the action completed. fn is the easing of the
// nearest enclosing Ease.
func advance(c *cursor, a *Action, dt float64, n *Node, fn EaseFunc) (used float64, done bool) {
	switch a.kind {
	case ActionMoveBy, ActionMoveTo, ActionScaleTo, ActionScaleBy,
		ActionRotateTo, ActionRotateBy, ActionFadeIn, ActionFadeOut, ActionFadeTo:
		return advanceTween(c, a, dt, n, fn)
	case ActionBlink:
		return advanceBlink(c, a, dt, n)
	case ActionShow:
		n.Visible = true
		return 0, true
	case ActionHide:
		n.Visible = false
		return 0, true
	case ActionWait:
		return c.tick(a.duration, dt)
	case ActionWaitForever:
		return dt, false
	case ActionSequence:
		return advanceSequence(c, a.children, dt, n, fn)
	case ActionSpawn:
		return advanceSpawn(c, a, dt, n, fn)
	case ActionRepeat:
		return advanceRepeat(c, a, dt, n, fn)
	case ActionWhile:
		return advanceWhile(c, a, dt, n, fn)
	case ActionEase:
		return advance(&c.children[0], a.children[0], dt, n, a.ease)
	}
	panic(fmt.Sprintf("grove: unknown action kind %d", a.kind))
}

func advanceTween(c *cursor, a *Action, dt float64, n *Node, fn EaseFunc) (float64, bool) {
	if !c.started {
		c.started = true
		c.from = tweenStart(a, n)
	}
	used, done := c.tick(a.duration, dt)
	t := 1.0
	if !done {
		t = fn.Apply(c.elapsed / a.duration)
	}
	tx, ty := tweenTarget(a, c.from)
	switch a.kind {
	case ActionMoveBy, ActionMoveTo:
		n.X = lerp(c.from[0], tx, t)
		n.Y = lerp(c.from[1], ty, t)
	case ActionScaleTo, ActionScaleBy:
		n.ScaleX = lerp(c.from[0], tx, t)
		n.ScaleY = lerp(c.from[1], ty, t)
	case ActionRotateTo, ActionRotateBy:
		n.Rotation = lerp(c.from[0], tx, t)
	default:
		n.Opacity = clamp01(lerp(c.from[0], tx, t))
	}
	return used, done
}

// tweenStart captures the node values a tween interpolates from.
func tweenStart(a *Action, n *Node) [2]float64 {
	switch a.kind {
	case ActionMoveBy, ActionMoveTo:
		return [2]float64{n.X, n.Y}
	case ActionScaleTo, ActionScaleBy:
		return [2]float64{n.ScaleX, n.ScaleY}
	case ActionRotateTo, ActionRotateBy:
		return [2]float64{n.Rotation, 0}
	default:
		return [2]float64{n.Opacity, 0}
	}
}

// tweenTarget returns the end values of a tween that started at from.
func tweenTarget(a *Action, from [2]float64) (float64, float64) {
	switch a.kind {
	case ActionMoveBy, ActionScaleBy:
		return from[0] + a.x, from[1] + a.y
	case ActionRotateBy:
		return from[0] + a.x, 0
	case ActionFadeIn:
		return 1, 0
	case ActionFadeOut:
		return 0, 0
	default:
		return a.x, a.y
	}
}

func advanceBlink(c *cursor, a *Action, dt float64, n *Node) (float64, bool) {
	if !c.started {
		c.started = true
		c.visible = n.Visible
	}
	used, done := c.tick(a.duration, dt)
	if done {
		c.count = a.times
		n.Visible = c.visible
		return used, true
	}
	for c.count < a.times && c.elapsed >= blinkInstant(a, c.count)-timeEpsilon {
		c.count++
	}
	n.Visible = c.visible != (c.count%2 == 1)
	return used, false
}

// blinkInstant returns the elapsed time at which toggle i happens.
func blinkInstant(a *Action, i int) float64 {
	return a.duration * float64(2*i+1) / float64(2*a.times)
}

func advanceSequence(c *cursor, children []*Action, dt float64, n *Node, fn EaseFunc) (float64, bool) {
	remaining := dt
	for c.index < len(children) {
		used, done := advance(&c.children[c.index], children[c.index], remaining, n, fn)
		remaining = max(remaining-used, 0)
		if !done {
			return dt - remaining, false
		}
		c.index++
	}
	return dt - remaining, true
}

// advanceSpawn moves the live branches forward together in sub-steps that
// end at the next leaf boundary of any branch. A leaf therefore captures its
// start values only after every earlier write from the other branches, so
// splitting a tick does not change the result.
func advanceSpawn(c *cursor, a *Action, dt float64, n *Node, fn EaseFunc) (float64, bool) {
	remaining := dt
	for {
		step := remaining
		for i, child := range a.children {
			if !c.children[i].done {
				step = min(step, untilBoundary(&c.children[i], child))
			}
		}
		live := false
		for i, child := range a.children {
			bc := &c.children[i]
			if bc.done {
				continue
			}
			if _, done := advance(bc, child, step, n, fn); done {
				bc.done = true
			} else {
				live = true
			}
		}
		remaining = max(remaining-step, 0)
		if !live {
			return dt - remaining, true
		}
		if remaining <= 0 {
			return dt, false
		}
	}
}

// untilBoundary returns the time until the action at c next starts or ends a
// leaf or toggles visibility. Zero means a boundary is due now; advancing by
// zero then makes progress, since loops over bodies that take no time are
// rejected at construction.
func untilBoundary(c *cursor, a *Action) float64 {
	switch a.kind {
	case ActionShow, ActionHide:
		return 0
	case ActionWaitForever:
		return math.Inf(1)
	case ActionBlink:
		next := a.duration
		if c.count < a.times {
			next = blinkInstant(a, c.count)
		}
		return max(next-c.elapsed, 0)
	case ActionSequence, ActionWhile:
		if c.index >= len(a.children) {
			return 0
		}
		return untilBoundary(&c.children[c.index], a.children[c.index])
	case ActionSpawn:
		next := math.Inf(1)
		for i, child := range a.children {
			if !c.children[i].done {
				next = min(next, untilBoundary(&c.children[i], child))
			}
		}
		if math.IsInf(next, 1) && !anyLive(c) {
			return 0
		}
		return next
	case ActionRepeat, ActionEase:
		return untilBoundary(&c.children[0], a.children[0])
	}
	return max(a.duration-c.elapsed, 0)
}

func anyLive(c *cursor) bool {
	for i := range c.children {
		if !c.children[i].done {
			return true
		}
	}
	return false
}

func advanceRepeat(c *cursor, a *Action, dt float64, n *Node, fn EaseFunc) (float64, bool) {
	remaining := dt
	body := &c.children[0]
	fresh := false
	for a.times == 0 || c.count < a.times {
		used, done := advance(body, a.children[0], remaining, n, fn)
		remaining = max(remaining-used, 0)
		if !done {
			return dt - remaining, false
		}
		c.count++
		body.reset()
		if a.times == 0 && fresh && used <= 0 {
			// A forever loop whose body finished without taking time would
			// spin; yield the rest of the tick instead.
			return dt, false
		}
		fresh = true
	}
	return dt - remaining, true
}

func advanceWhile(c *cursor, a *Action, dt float64, n *Node, fn EaseFunc) (float64, bool) {
	remaining := dt
	fresh := false
	for {
		before := remaining
		used, done := advanceSequence(c, a.children, remaining, n, fn)
		remaining = max(remaining-used, 0)
		if !done {
			return dt - remaining, false
		}
		c.count++
		if !a.cond(n, c.count) {
			return dt - remaining, true
		}
		c.index = 0
		c.resetChildren()
		if fresh && before-remaining <= 0 {
			return dt, false
		}
		fresh = true
	}
}

func lerp(from, to, t float64) float64 {
	if t == 1 {
		return to
	}
	return from + (to-from)*t
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
