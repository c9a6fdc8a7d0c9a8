package ebitenrender

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/phanxgames/grove"
)

// KeyBinding maps a keyboard key to a scene trigger.
type KeyBinding struct {
	Key     ebiten.Key
	Trigger grove.Trigger
}

// ButtonBinding maps a mouse button to a scene trigger.
type ButtonBinding struct {
	Button  ebiten.MouseButton
	Trigger grove.Trigger
}

// Bindings is the input map of a Game.
type Bindings struct {
	Keys    []KeyBinding
	Buttons []ButtonBinding
}

// DefaultBindings pauses on a left click and resumes on Space.
func DefaultBindings() Bindings {
	return Bindings{
		Keys:    []KeyBinding{{Key: ebiten.KeySpace, Trigger: grove.TriggerResume}},
		Buttons: []ButtonBinding{{Button: ebiten.MouseButtonLeft, Trigger: grove.TriggerPause}},
	}
}

// poll delivers press and release events for this tick's input edges.
func (b Bindings) poll(s *grove.Scene) {
	for _, kb := range b.Keys {
		if inpututil.IsKeyJustPressed(kb.Key) {
			s.Event(grove.Event{Kind: grove.EventPress, Trigger: kb.Trigger})
		}
		if inpututil.IsKeyJustReleased(kb.Key) {
			s.Event(grove.Event{Kind: grove.EventRelease, Trigger: kb.Trigger})
		}
	}
	for _, bb := range b.Buttons {
		if inpututil.IsMouseButtonJustPressed(bb.Button) {
			s.Event(grove.Event{Kind: grove.EventPress, Trigger: bb.Trigger})
		}
		if inpututil.IsMouseButtonJustReleased(bb.Button) {
			s.Event(grove.Event{Kind: grove.EventRelease, Trigger: bb.Trigger})
		}
	}
}
