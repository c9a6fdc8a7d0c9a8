package ebitenrender

import (
	"fmt"
	"image"
	_ "image/jpeg" // register JPEG decoder
	_ "image/png"  // register PNG decoder
	"os"
	"path/filepath"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	_ "golang.org/x/image/bmp"  // register BMP decoder
	_ "golang.org/x/image/webp" // register WebP decoder
	"golang.org/x/sync/errgroup"

	"github.com/phanxgames/grove"
)

// Loader is a grove.AssetLoader producing *ebiten.Image content from PNG,
// JPEG, BMP and WebP files. Paths are relative to Dir. Loaded images are
// cached by path.
type Loader struct {
	Dir string
	// Workers bounds LoadAll's concurrent decodes. Zero means 4.
	Workers int

	mu    sync.Mutex
	cache map[string]*ebiten.Image
}

// NewLoader returns a Loader reading from dir.
func NewLoader(dir string) *Loader {
	return &Loader{Dir: dir}
}

// Load implements grove.AssetLoader.
func (l *Loader) Load(path string) (any, error) {
	if img, ok := l.cached(path); ok {
		return img, nil
	}
	src, err := l.decode(path)
	if err != nil {
		return nil, err
	}
	return l.store(path, src), nil
}

// LoadAll decodes paths concurrently and caches the results. The first
// failure is returned as *grove.AssetError.
func (l *Loader) LoadAll(paths ...string) error {
	workers := l.Workers
	if workers <= 0 {
		workers = 4
	}
	decoded := make([]image.Image, len(paths))
	var g errgroup.Group
	g.SetLimit(workers)
	for i, path := range paths {
		if _, ok := l.cached(path); ok {
			continue
		}
		g.Go(func() error {
			src, err := l.decode(path)
			if err != nil {
				return &grove.AssetError{Path: path, Err: err}
			}
			decoded[i] = src
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	for i, src := range decoded {
		if src != nil {
			l.store(paths[i], src)
		}
	}
	return nil
}

func (l *Loader) decode(path string) (image.Image, error) {
	f, err := os.Open(filepath.Join(l.Dir, path))
	if err != nil {
		return nil, err
	}
	defer f.Close()
	src, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return src, nil
}

func (l *Loader) cached(path string) (*ebiten.Image, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	img, ok := l.cache[path]
	return img, ok
}

func (l *Loader) store(path string, src image.Image) *ebiten.Image {
	img := ebiten.NewImageFromImage(src)
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.cache == nil {
		l.cache = make(map[string]*ebiten.Image)
	}
	l.cache[path] = img
	return img
}

// Placeholder returns a solid w x h image for nodes without an asset file.
func Placeholder(w, h int, c grove.Color) *ebiten.Image {
	img := ebiten.NewImage(w, h)
	img.Fill(toRGBA(c))
	return img
}
