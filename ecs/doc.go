// Package ecs provides ECS adapters for grove's scene event stream.
//
// The primary adapter is [NewDonburiSink], which bridges grove scene events
// (ticks, trigger presses, run lifecycle) into a [Donburi] world as typed
// events. Subscribe to [SceneEventType] in your ECS systems to receive them.
// [RunTracker] keeps one entity per live animation run.
//
// Usage:
//
//	scene.SetEventSink(ecs.NewDonburiSink(world))
//	tracker := ecs.NewRunTracker(world)
//	tracker.Attach()
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
