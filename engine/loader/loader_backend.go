package loader

import (
	"io"

	"github.com/Carmen-Shannon/oxy-viewer/engine/scene"
)

// loaderBackend defines the generic interface for loading models from files or streams.
// Concrete implementations (e.g., gltfLoaderBackend) handle format-specific details.
type loaderBackend interface {
	// Load performs a model import from the given file path.
	//
	// Parameters:
	//   - path: the file path to load
	//
	// Returns:
	//   - scene.Node: the root of the imported subtree
	//   - error: error if loading fails
	Load(path string) (scene.Node, error)

	// LoadReader imports a model from a reader stream.
	//
	// Parameters:
	//   - name: name given to the root node
	//   - r: the reader providing model data
	//
	// Returns:
	//   - scene.Node: the root of the imported subtree
	//   - error: error if loading fails
	LoadReader(name string, r io.Reader) (scene.Node, error)

	// Extensions lists the lowercase file extensions the backend accepts, with the dot.
	Extensions() []string
}
