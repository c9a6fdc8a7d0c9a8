package grove

import (
	"errors"
	"fmt"
)

// ErrUnknownNode is returned by scene operations that require an existing node
// and were given an ID that is not (or no longer) in the scene. Animation
// control (Run, Pause, Resume, Stop) treats unknown IDs as no-ops instead.
var ErrUnknownNode = errors.New("grove: unknown node id")

// AssetError reports that the asset collaborator could not supply content for
// a node. It is fatal at startup: a sprite cannot exist without its content.
type AssetError struct {
	Path string
	Err  error
}

func (e *AssetError) Error() string {
	return fmt.Sprintf("grove: load asset %q: %v", e.Path, e.Err)
}

func (e *AssetError) Unwrap() error { return e.Err }

// AssetLoader is the asset collaborator: it turns a path into an opaque
// content handle for Node.Content.
type AssetLoader interface {
	Load(path string) (any, error)
}

// AssetLoaderFunc adapts a function to the AssetLoader interface.
type AssetLoaderFunc func(path string) (any, error)

// Load calls f.
func (f AssetLoaderFunc) Load(path string) (any, error) { return f(path) }

// LoadSprite loads path through loader and returns a sprite drawing it.
// Loader failures are returned as *AssetError.
func LoadSprite(loader AssetLoader, name, path string) (*Node, error) {
	content, err := loader.Load(path)
	if err != nil {
		return nil, &AssetError{Path: path, Err: err}
	}
	return NewSprite(name, content), nil
}
