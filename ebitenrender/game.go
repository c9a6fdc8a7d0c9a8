package ebitenrender

import (
	"fmt"
	"image/color"
	"log/slog"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"github.com/phanxgames/grove"
)

// RunConfig holds optional configuration for Run.
type RunConfig struct {
	// Title sets the window title.
	Title string
	// Width and Height set the logical screen size. Zero means 640x480.
	Width, Height int
	// Background fills the screen before each frame. Nil leaves it black.
	Background color.Color
	// ShowFPS draws a small FPS/TPS counter in the top-left corner.
	ShowFPS bool
	// TPS sets the tick rate. Zero keeps Ebitengine's default of 60.
	TPS int
	// Bindings maps input to scene triggers. The zero value uses
	// DefaultBindings.
	Bindings *Bindings
	// Replay, when set, drives the scene from a TestRunner script instead of
	// wall-clock ticks and live input.
	Replay *grove.TestRunner
	// OnUpdate, when set, is called at the start of every tick. A non-nil
	// error ends the game loop.
	OnUpdate func() error
}

func (c RunConfig) size() (int, int) {
	w, h := c.Width, c.Height
	if w <= 0 {
		w = 640
	}
	if h <= 0 {
		h = 480
	}
	return w, h
}

// Game adapts a grove.Scene to ebiten.Game. Each tick it delivers input
// edges as press/release events, then an EventTick of 1/TPS seconds.
type Game struct {
	scene    *grove.Scene
	cfg      RunConfig
	bindings Bindings
	renderer Renderer
	fps      fpsCounter
}

// NewGame creates a Game for s.
func NewGame(s *grove.Scene, cfg RunConfig) *Game {
	g := &Game{scene: s, cfg: cfg, bindings: DefaultBindings()}
	if cfg.Bindings != nil {
		g.bindings = *cfg.Bindings
	}
	return g
}

// Update implements ebiten.Game.
func (g *Game) Update() error {
	if g.cfg.OnUpdate != nil {
		if err := g.cfg.OnUpdate(); err != nil {
			return err
		}
	}
	if g.cfg.Replay != nil {
		if g.cfg.Replay.Done() {
			return ebiten.Termination
		}
		g.cfg.Replay.Step(g.scene)
		return nil
	}
	g.bindings.poll(g.scene)
	dt := 1.0 / float64(ebiten.TPS())
	g.scene.Event(grove.Event{Kind: grove.EventTick, DT: dt})
	if g.cfg.ShowFPS {
		g.fps.tick(dt)
	}
	return nil
}

// Draw implements ebiten.Game.
func (g *Game) Draw(screen *ebiten.Image) {
	if g.cfg.Background != nil {
		screen.Fill(g.cfg.Background)
	}
	g.renderer.Target = screen
	g.scene.Draw(grove.Identity, &g.renderer)
	if g.cfg.ShowFPS {
		g.fps.draw(screen)
	}
}

// Layout implements ebiten.Game.
func (g *Game) Layout(_, _ int) (int, int) {
	return g.cfg.size()
}

// Run opens a window and runs s until the window is closed or a replay
// script finishes.
func Run(s *grove.Scene, cfg RunConfig) error {
	w, h := cfg.size()
	if cfg.Title != "" {
		ebiten.SetWindowTitle(cfg.Title)
	}
	ebiten.SetWindowSize(w, h)
	if cfg.TPS > 0 {
		ebiten.SetTPS(cfg.TPS)
	}
	s.Logger().Info("starting game loop", slog.String("title", cfg.Title),
		slog.Int("width", w), slog.Int("height", h))
	return ebiten.RunGame(NewGame(s, cfg))
}

// fpsCounter redraws its label about twice per second.
type fpsCounter struct {
	img   *ebiten.Image
	since float64
	dirty bool
}

func (f *fpsCounter) tick(dt float64) {
	f.since += dt
	if f.img != nil && f.since < 0.5 {
		return
	}
	f.since = 0
	f.dirty = true
}

func (f *fpsCounter) draw(screen *ebiten.Image) {
	if f.img == nil {
		// 100x32 fits "FPS: 60.0\nTPS: 60.0".
		f.img = ebiten.NewImage(100, 32)
		f.dirty = true
	}
	if f.dirty {
		f.dirty = false
		f.img.Clear()
		// Semi-transparent background for readability.
		f.img.Fill(color.RGBA{0, 0, 0, 128})
		ebitenutil.DebugPrint(f.img, fmt.Sprintf("FPS: %.1f\nTPS: %.1f", ebiten.ActualFPS(), ebiten.ActualTPS()))
	}
	screen.DrawImage(f.img, nil)
}
