package loader

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/oxy-viewer/engine/scene"
)

var (
	// ErrUnsupportedFormat is returned for files no backend can read.
	ErrUnsupportedFormat = errors.New("loader: unsupported file format")

	// ErrNoScene is returned for documents without any scene to instantiate.
	ErrNoScene = errors.New("loader: document has no scene")

	// ErrInvalidReference is returned when a document indexes past one of its arrays.
	ErrInvalidReference = errors.New("loader: invalid reference")
)

// LoaderBackendType identifies the model file format backend to use.
type LoaderBackendType int

const (
	// BackendTypeGLTF selects the glTF/GLB/VRM loader backend.
	BackendTypeGLTF LoaderBackendType = iota
)

// Poster schedules fn to run on the goroutine that owns the scene, usually the engine loop.
type Poster func(fn func())

// loader is the implementation of the Loader interface.
type loader struct {
	mu sync.RWMutex

	modelCache map[string]scene.Node

	backend loaderBackend
	logger  *slog.Logger

	post    Poster
	workers int
	pool    worker.DynamicWorkerPool
	poolMu  sync.Mutex
	taskID  atomic.Int64
}

// Loader defines the public-facing interface for loading and caching 3D models.
// It abstracts the file format behind a backend and caches each imported subtree
// by path. Load and LoadReader are safe to call from any goroutine.
//
// Cached subtrees are shared: loading the same path twice returns the same Node.
type Loader interface {
	// Load imports a model file and caches the result.
	// If the model is already cached (by file path), the cached version is returned.
	// The backend is selected based on the file extension.
	//
	// Parameters:
	//   - path: the file path to the model file
	//
	// Returns:
	//   - scene.Node: the root of the imported subtree
	//   - error: error if loading fails
	Load(path string) (scene.Node, error)

	// LoadReader imports a model from a reader stream and caches it by the given name.
	//
	// Parameters:
	//   - name: the cache key and root node name
	//   - r: the reader providing GLB (or self-contained glTF) data
	//
	// Returns:
	//   - scene.Node: the root of the imported subtree
	//   - error: error if loading fails
	LoadReader(name string, r io.Reader) (scene.Node, error)

	// LoadAsync runs Load on a worker goroutine and delivers exactly one of onLoad or
	// onError through the configured Poster. There is no cancellation and no timeout.
	//
	// Parameters:
	//   - path: the file path to the model file
	//   - onLoad: called with the loaded subtree on success
	//   - onError: called with the failure otherwise
	LoadAsync(path string, onLoad func(scene.Node), onError func(error))

	// Get retrieves a cached model by name. Returns nil if not found.
	//
	// Parameters:
	//   - name: the cache key to look up
	//
	// Returns:
	//   - scene.Node: the cached subtree or nil
	Get(name string) scene.Node

	// Models returns a copy of the model cache.
	//
	// Returns:
	//   - map[string]scene.Node: all cached models keyed by name
	Models() map[string]scene.Node
}

var _ Loader = &loader{}

// NewLoader creates a new Loader instance with the specified backend type and options applied.
//
// Parameters:
//   - backendType: the type of loader backend to use (e.g., BackendTypeGLTF)
//   - options: a variadic list of LoaderBuilderOption functions to configure the Loader
//
// Returns:
//   - Loader: a new instance of Loader configured with the provided backend and options
func NewLoader(backendType LoaderBackendType, options ...LoaderBuilderOption) Loader {
	l := &loader{
		modelCache: make(map[string]scene.Node),
		logger:     slog.Default(),
		post:       func(fn func()) { fn() },
		workers:    1,
	}

	for _, option := range options {
		option(l)
	}

	switch backendType {
	case BackendTypeGLTF:
		l.backend = newGLTFLoaderBackend(l.logger)
	}
	return l
}

func (l *loader) Load(path string) (scene.Node, error) {
	l.mu.RLock()
	if cached, ok := l.modelCache[path]; ok {
		l.mu.RUnlock()
		return cached, nil
	}
	l.mu.RUnlock()

	backend, err := l.resolveBackend(path)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	root, err := backend.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}
	l.logLoaded(path, root, time.Since(start))

	l.mu.Lock()
	l.modelCache[path] = root
	l.mu.Unlock()

	return root, nil
}

func (l *loader) LoadReader(name string, r io.Reader) (scene.Node, error) {
	l.mu.RLock()
	if cached, ok := l.modelCache[name]; ok {
		l.mu.RUnlock()
		return cached, nil
	}
	l.mu.RUnlock()

	if l.backend == nil {
		return nil, ErrUnsupportedFormat
	}

	start := time.Now()
	root, err := l.backend.LoadReader(name, r)
	if err != nil {
		return nil, fmt.Errorf("failed to load from reader %q: %w", name, err)
	}
	l.logLoaded(name, root, time.Since(start))

	l.mu.Lock()
	l.modelCache[name] = root
	l.mu.Unlock()

	return root, nil
}

func (l *loader) LoadAsync(path string, onLoad func(scene.Node), onError func(error)) {
	id := int(l.taskID.Add(1))
	l.workerPool().SubmitTask(worker.Task{
		ID: id,
		Do: func() (any, error) {
			root, err := l.Load(path)
			if err != nil {
				l.post(func() {
					if onError != nil {
						onError(err)
					}
				})
				return nil, err
			}
			l.post(func() {
				if onLoad != nil {
					onLoad(root)
				}
			})
			return root, nil
		},
	})
}

func (l *loader) Get(name string) scene.Node {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.modelCache[name]
}

func (l *loader) Models() map[string]scene.Node {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return maps.Clone(l.modelCache)
}

// workerPool creates the pool on first use so loaders that never load asynchronously
// spawn no goroutines.
func (l *loader) workerPool() worker.DynamicWorkerPool {
	l.poolMu.Lock()
	defer l.poolMu.Unlock()
	if l.pool == nil {
		l.pool = worker.NewDynamicWorkerPool(l.workers, 16, 1*time.Second)
	}
	return l.pool
}

// resolveBackend selects an appropriate loader backend based on the file extension.
func (l *loader) resolveBackend(path string) (loaderBackend, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if l.backend == nil || !slices.Contains(l.backend.Extensions(), ext) {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
	return l.backend, nil
}

func (l *loader) logLoaded(name string, root scene.Node, elapsed time.Duration) {
	nodes, meshes, triangles := 0, 0, 0
	root.Traverse(func(n scene.Node) bool {
		nodes++
		if m := n.Mesh(); m != nil && m.Geometry != nil {
			meshes++
			triangles += m.Geometry.TriangleCount()
		}
		return true
	})
	l.logger.Info("model loaded",
		"name", name,
		"nodes", nodes,
		"meshes", meshes,
		"triangles", triangles,
		"elapsed", elapsed,
	)
}
