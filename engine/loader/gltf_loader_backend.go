package loader

import (
	"io"
	"log/slog"

	"github.com/Carmen-Shannon/oxy-viewer/engine/scene"
)

// gltfLoaderBackendImpl is the implementation of gltfLoaderBackend.
type gltfLoaderBackendImpl struct {
	importer gltfImporter
}

// gltfLoaderBackend is a loaderBackend implementation for glTF, GLB and VRM files.
// VRM is a GLB container with avatar extensions, which are ignored.
type gltfLoaderBackend interface {
	loaderBackend
}

var _ gltfLoaderBackend = &gltfLoaderBackendImpl{}

// newGLTFLoaderBackend creates a new glTF loader backend.
//
// Returns:
//   - gltfLoaderBackend: the loader backend for glTF/GLB/VRM files
func newGLTFLoaderBackend(logger *slog.Logger) gltfLoaderBackend {
	return &gltfLoaderBackendImpl{
		importer: newGLTFImporter(logger),
	}
}

func (b *gltfLoaderBackendImpl) Load(path string) (scene.Node, error) {
	return b.importer.Import(path)
}

func (b *gltfLoaderBackendImpl) LoadReader(name string, r io.Reader) (scene.Node, error) {
	return b.importer.ImportReader(name, r)
}

func (b *gltfLoaderBackendImpl) Extensions() []string {
	return []string{".gltf", ".glb", ".vrm"}
}
