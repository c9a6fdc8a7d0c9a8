package grove

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is the default tint (no color modification).
var ColorWhite = Color{1, 1, 1, 1}

// Renderer is the draw collaborator. Scene.Draw calls DrawNode once per
// drawable node per frame, in paint order.
type Renderer interface {
	DrawNode(content any, world Affine, opacity float64)
}

// RendererFunc adapts a function to the Renderer interface.
type RendererFunc func(content any, world Affine, opacity float64)

// DrawNode calls f.
func (f RendererFunc) DrawNode(content any, world Affine, opacity float64) {
	f(content, world, opacity)
}

// TintRenderer is a Renderer that can also multiply content by a color.
// Scene.Draw calls DrawTinted with each node's Color instead of DrawNode when
// the renderer implements it.
type TintRenderer interface {
	Renderer
	DrawTinted(content any, world Affine, opacity float64, tint Color)
}

// EventKind identifies a kind of scene event.
type EventKind uint8

const (
	EventTick         EventKind = iota // advance the scene by DT seconds
	EventPress                         // a trigger was pressed
	EventRelease                       // a trigger was released
	EventRunStarted                    // Scene.Run registered a run
	EventRunPaused                     // a run moved to RunPaused
	EventRunResumed                    // a run moved back to RunRunning
	EventRunCompleted                  // a run finished its action
	EventRunStopped                    // a run was stopped or its node removed
)

var eventKindNames = [...]string{
	EventTick:         "tick",
	EventPress:        "press",
	EventRelease:      "release",
	EventRunStarted:   "run-started",
	EventRunPaused:    "run-paused",
	EventRunResumed:   "run-resumed",
	EventRunCompleted: "run-completed",
	EventRunStopped:   "run-stopped",
}

func (k EventKind) String() string {
	if int(k) < len(eventKindNames) {
		return eventKindNames[k]
	}
	return "unknown"
}

// Trigger is a logical input the scene reacts to. Mapping physical keys and
// buttons to triggers is the adapter's job.
type Trigger uint8

const (
	TriggerNone   Trigger = iota // no scene behavior; forwarded only
	TriggerPause                 // pause every live run
	TriggerResume                // resume every paused run
)

// ParseTrigger resolves "pause", "resume" or "none".
func ParseTrigger(name string) (Trigger, bool) {
	switch name {
	case "pause":
		return TriggerPause, true
	case "resume":
		return TriggerResume, true
	case "none", "":
		return TriggerNone, true
	}
	return TriggerNone, false
}

// Event is delivered to Scene.Event by adapters and forwarded to the scene's
// EventSink together with run lifecycle events.
type Event struct {
	Kind    EventKind
	Trigger Trigger   // EventPress, EventRelease
	DT      float64   // EventTick
	Node    NodeID    // run events
	Run     RunHandle // run events
}

// EventSink receives every event the scene handles or produces.
type EventSink interface {
	EmitEvent(event Event)
}
