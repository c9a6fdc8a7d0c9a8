// Package grove is a scene graph with a composable, time-driven animation
// engine.
//
// Grove owns the node tree, the animation runs bound to nodes, and the action
// combinators that describe those animations. Windowing, image decoding and
// GPU drawing are left to adapters: see grove/ebitenrender for [Ebitengine]
// and grove/termrender for terminals. grove/scenario loads scenes and their
// animations from YAML files, and grove/ecs mirrors scene events into a
// donburi world.
//
// # Quick start
//
//	scene := grove.NewScene()
//	sprite := grove.NewSprite("logo", img)
//	sprite.SetPosition(400, 300)
//	id := scene.AddChild(sprite)
//
//	seq := grove.Sequence(
//		grove.Ease(grove.EaseCubicOut, grove.ScaleTo(2, 0.5, 0.5)),
//		grove.Ease(grove.EaseBounceOut, grove.MoveBy(0, 100, 1)),
//		grove.Wait(0.5),
//		grove.Blink(1, 5),
//	)
//	scene.Run(id, seq)
//
// Each frame, the application loop calls [Scene.Update] with the elapsed time
// and then [Scene.Draw] with a [Renderer]:
//
//	scene.Update(dt)
//	scene.Draw(grove.Identity, renderer)
//
// # Scene graph
//
// Every element is a [Node]. Nodes form a tree rooted at [Scene.Root]; a
// child's world transform is its parent's world transform composed with its
// own. Children paint in insertion order, back to front. A node belongs to at
// most one parent; removing a node drops its whole subtree and cancels every
// animation running on it.
//
// # Actions
//
// An [Action] is an immutable description: leaves ([MoveBy], [MoveTo],
// [ScaleTo], [RotateTo], [FadeIn], [FadeOut], [Blink], [Wait], [WaitForever])
// and combinators ([Sequence], [Spawn], [Repeat], [RepeatForever], [While],
// [Ease]). Malformed actions (negative durations, empty sequences) panic at
// construction. The same action may be run on many nodes at once.
//
// # Runs
//
// [Scene.Run] binds an action to a node and returns a [RunHandle]. Runs can be
// paused, resumed and stopped by handle or by (node, action) pair. A paused
// run keeps its exact position and resumes with no time skipped. Within one
// Update, runs advance in the order they were started and Spawn branches in
// the order they were listed; when two runs write the same field, the later
// one wins for that tick.
//
// [Ebitengine]: https://ebitengine.org
package grove
