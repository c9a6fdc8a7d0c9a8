package ebitenrender

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/phanxgames/grove"
)

func TestGeoMMatchesAffine(t *testing.T) {
	n := grove.NewNode("n")
	n.SetPosition(40, 30)
	n.SetScale(2, 3)
	n.SetRotation(30)
	n.SetAnchor(5, 5)
	m := n.LocalTransform()
	g := GeoM(m)

	for _, p := range [][2]float64{{0, 0}, {1, 0}, {0, 1}, {7, -3}} {
		wx, wy := m.Apply(p[0], p[1])
		gx, gy := g.Apply(p[0], p[1])
		if math.Abs(wx-gx) > 1e-9 || math.Abs(wy-gy) > 1e-9 {
			t.Errorf("point %v: GeoM = (%v, %v), want (%v, %v)", p, gx, gy, wx, wy)
		}
	}
}

func TestToRGBA(t *testing.T) {
	got := toRGBA(grove.Color{R: 1, G: 0.5, B: -1, A: 2})
	want := color.NRGBA{R: 255, G: 128, B: 0, A: 255}
	if got != want {
		t.Errorf("toRGBA = %v, want %v", got, want)
	}
}

func TestRendererSkipsForeignContent(t *testing.T) {
	r := NewRenderer(ebiten.NewImage(8, 8))
	r.DrawNode("not an image", grove.Identity, 1)
	r.DrawNode((*ebiten.Image)(nil), grove.Identity, 1)
	if r.Skipped != 2 {
		t.Errorf("Skipped = %d, want 2", r.Skipped)
	}
}

func TestRendererDrawsScene(t *testing.T) {
	s := grove.NewScene()
	s.AddChild(grove.NewSprite("a", Placeholder(4, 4, grove.ColorWhite)))
	s.AddChild(grove.NewSprite("b", "text"))
	r := NewRenderer(ebiten.NewImage(16, 16))
	s.Draw(grove.Identity, r)
	if r.Skipped != 1 {
		t.Errorf("Skipped = %d, want 1", r.Skipped)
	}
}

func TestDefaultBindings(t *testing.T) {
	b := DefaultBindings()
	if len(b.Keys) != 1 || b.Keys[0].Key != ebiten.KeySpace || b.Keys[0].Trigger != grove.TriggerResume {
		t.Errorf("Keys = %+v", b.Keys)
	}
	if len(b.Buttons) != 1 || b.Buttons[0].Button != ebiten.MouseButtonLeft || b.Buttons[0].Trigger != grove.TriggerPause {
		t.Errorf("Buttons = %+v", b.Buttons)
	}
}

func TestRunConfigSize(t *testing.T) {
	if w, h := (RunConfig{}).size(); w != 640 || h != 480 {
		t.Errorf("default size = %dx%d, want 640x480", w, h)
	}
	g := NewGame(grove.NewScene(), RunConfig{Width: 800, Height: 600})
	if w, h := g.Layout(1920, 1080); w != 800 || h != 600 {
		t.Errorf("Layout = %dx%d, want 800x600", w, h)
	}
}

func TestGameReplay(t *testing.T) {
	s := grove.NewScene()
	n := grove.NewSprite("n", 1)
	s.Run(s.AddChild(n), grove.MoveBy(100, 0, 1))
	runner, err := grove.LoadTestScript([]byte(`{"steps": [{"action": "tick", "dt": 0.5}]}`))
	if err != nil {
		t.Fatal(err)
	}
	g := NewGame(s, RunConfig{Replay: runner})
	if err := g.Update(); err != nil {
		t.Fatal(err)
	}
	if n.X != 50 {
		t.Errorf("X = %v, want 50", n.X)
	}
	if err := g.Update(); !errors.Is(err, ebiten.Termination) {
		t.Errorf("err = %v, want ebiten.Termination", err)
	}
}

func writePNG(t *testing.T, path string) {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 3, 2))
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
}

func TestLoaderLoadAndCache(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "a.png"))
	l := NewLoader(dir)

	c1, err := l.Load("a.png")
	if err != nil {
		t.Fatal(err)
	}
	img, ok := c1.(*ebiten.Image)
	if !ok {
		t.Fatalf("content = %T, want *ebiten.Image", c1)
	}
	if w, h := img.Bounds().Dx(), img.Bounds().Dy(); w != 3 || h != 2 {
		t.Errorf("size = %dx%d, want 3x2", w, h)
	}
	c2, _ := l.Load("a.png")
	if c1 != c2 {
		t.Error("second Load should hit the cache")
	}
}

func TestLoaderErrors(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "bad.png"), []byte("not a png"), 0o644); err != nil {
		t.Fatal(err)
	}
	l := NewLoader(dir)

	if _, err := l.Load("missing.png"); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("missing: err = %v, want os.ErrNotExist", err)
	}
	if _, err := l.Load("bad.png"); !errors.Is(err, image.ErrFormat) {
		t.Errorf("bad: err = %v, want image.ErrFormat", err)
	}

	_, err := grove.LoadSprite(l, "logo", "missing.png")
	var ae *grove.AssetError
	if !errors.As(err, &ae) || ae.Path != "missing.png" {
		t.Errorf("LoadSprite err = %v, want *grove.AssetError", err)
	}
}

func TestLoaderLoadAll(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "a.png"))
	writePNG(t, filepath.Join(dir, "b.png"))
	l := NewLoader(dir)
	l.Workers = 2

	if err := l.LoadAll("a.png", "b.png"); err != nil {
		t.Fatal(err)
	}
	if _, ok := l.cached("b.png"); !ok {
		t.Error("b.png should be cached")
	}

	err := l.LoadAll("a.png", "missing.png")
	var ae *grove.AssetError
	if !errors.As(err, &ae) || ae.Path != "missing.png" {
		t.Errorf("err = %v, want *grove.AssetError for missing.png", err)
	}
}

func TestImageSize(t *testing.T) {
	if got := ImageSize(Placeholder(5, 7, grove.ColorWhite)); got != image.Pt(5, 7) {
		t.Errorf("ImageSize = %v, want (5,7)", got)
	}
	if got := ImageSize("text"); got != (image.Point{}) {
		t.Errorf("ImageSize(text) = %v, want zero", got)
	}
}

func TestGameOnUpdate(t *testing.T) {
	stop := errors.New("stop")
	calls := 0
	g := NewGame(grove.NewScene(), RunConfig{OnUpdate: func() error {
		calls++
		if calls == 2 {
			return stop
		}
		return nil
	}})
	if err := g.Update(); err != nil {
		t.Fatal(err)
	}
	if err := g.Update(); !errors.Is(err, stop) {
		t.Errorf("err = %v, want stop", err)
	}
}

var _ grove.TintRenderer = (*Renderer)(nil)

func TestColorScaleTint(t *testing.T) {
	cs := colorScale(grove.Color{R: 1, G: 0.5, B: 0, A: 1}, 0.5)
	if cs.R() != 0.5 || cs.G() != 0.25 || cs.B() != 0 || cs.A() != 0.5 {
		t.Errorf("scale = (%v, %v, %v, %v), want (0.5, 0.25, 0, 0.5)", cs.R(), cs.G(), cs.B(), cs.A())
	}
	white := colorScale(grove.ColorWhite, 1)
	if white.R() != 1 || white.G() != 1 || white.B() != 1 || white.A() != 1 {
		t.Errorf("white scale = (%v, %v, %v, %v), want identity", white.R(), white.G(), white.B(), white.A())
	}
}

func TestRendererDrawTintedSkipsForeignContent(t *testing.T) {
	r := NewRenderer(ebiten.NewImage(8, 8))
	r.DrawTinted("text", grove.Identity, 1, grove.Color{R: 1, A: 1})
	r.DrawTinted(Placeholder(2, 2, grove.ColorWhite), grove.Identity, 1, grove.Color{R: 1, A: 1})
	if r.Skipped != 1 {
		t.Errorf("Skipped = %d, want 1", r.Skipped)
	}
}
