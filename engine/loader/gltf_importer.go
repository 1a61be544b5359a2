package loader

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/Carmen-Shannon/oxy-viewer/engine/scene"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/qmuntal/gltf"
)

// gltfImporterImpl is the implementation of the gltfImporter interface.
type gltfImporterImpl struct {
	logger *slog.Logger
}

// gltfImporter orchestrates a glTF/GLB/VRM import: it decodes the document and turns
// the default scene's node hierarchy into a scene.Node subtree.
type gltfImporter interface {
	// Import loads a file from disk. External buffers and images are resolved
	// relative to the file's directory.
	//
	// Parameters:
	//   - path: the file path to the glTF, GLB or VRM file
	//
	// Returns:
	//   - scene.Node: the root of the imported subtree
	//   - error: error if import fails
	Import(path string) (scene.Node, error)

	// ImportReader loads a document from a stream. Only self-contained documents
	// (GLB, or glTF with data URIs) can be imported this way.
	//
	// Parameters:
	//   - name: name given to the root node
	//   - r: the reader providing glTF/GLB data
	//
	// Returns:
	//   - scene.Node: the root of the imported subtree
	//   - error: error if import fails
	ImportReader(name string, r io.Reader) (scene.Node, error)
}

var _ gltfImporter = &gltfImporterImpl{}

// newGLTFImporter creates a new glTF importer.
//
// Parameters:
//   - logger: destination for import diagnostics
//
// Returns:
//   - gltfImporter: the importer
func newGLTFImporter(logger *slog.Logger) gltfImporter {
	return &gltfImporterImpl{logger: logger}
}

func (imp *gltfImporterImpl) Import(path string) (scene.Node, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, err
	}
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return imp.importDocument(doc, name, filepath.Dir(path))
}

func (imp *gltfImporterImpl) ImportReader(name string, r io.Reader) (scene.Node, error) {
	doc := new(gltf.Document)
	if err := gltf.NewDecoder(r).Decode(doc); err != nil {
		return nil, fmt.Errorf("failed to parse from reader: %w", err)
	}
	return imp.importDocument(doc, name, "")
}

// importDocument builds the node tree of the document's default scene, falling back
// to the first scene when none is marked as default.
func (imp *gltfImporterImpl) importDocument(doc *gltf.Document, name, baseDir string) (scene.Node, error) {
	if len(doc.Scenes) == 0 {
		return nil, ErrNoScene
	}
	sceneIndex := 0
	if doc.Scene != nil {
		sceneIndex = *doc.Scene
	}
	if sceneIndex < 0 || sceneIndex >= len(doc.Scenes) {
		return nil, fmt.Errorf("%w: scene %d", ErrInvalidReference, sceneIndex)
	}

	b := &gltfTreeBuilder{
		doc:      doc,
		meshes:   newGLTFMeshExtractor(doc, newGLTFMaterialExtractor(doc, baseDir, imp.logger)),
		visiting: make(map[int]bool),
	}

	root := scene.NewNode(scene.WithName(name))
	for _, ni := range doc.Scenes[sceneIndex].Nodes {
		child, err := b.buildNode(ni)
		if err != nil {
			return nil, err
		}
		root.Add(child)
	}
	return root, nil
}

// gltfTreeBuilder converts glTF nodes recursively.
type gltfTreeBuilder struct {
	doc      *gltf.Document
	meshes   gltfMeshExtractor
	visiting map[int]bool
}

func (b *gltfTreeBuilder) buildNode(index int) (scene.Node, error) {
	if index < 0 || index >= len(b.doc.Nodes) {
		return nil, fmt.Errorf("%w: node %d", ErrInvalidReference, index)
	}
	if b.visiting[index] {
		return nil, fmt.Errorf("%w: node %d is its own ancestor", ErrInvalidReference, index)
	}
	b.visiting[index] = true
	defer delete(b.visiting, index)

	gn := b.doc.Nodes[index]
	n := scene.NewNode(append([]scene.NodeBuilderOption{scene.WithName(gn.Name)}, nodeTransform(gn)...)...)

	if gn.Mesh != nil {
		meshes, err := b.meshes.ExtractMesh(*gn.Mesh)
		if err != nil {
			return nil, err
		}
		if len(meshes) == 1 {
			n.SetMesh(meshes[0])
		} else {
			for _, m := range meshes {
				n.Add(scene.NewNode(scene.WithName(m.Name), scene.WithMesh(m)))
			}
		}
	}

	for _, ci := range gn.Children {
		child, err := b.buildNode(ci)
		if err != nil {
			return nil, err
		}
		n.Add(child)
	}
	return n, nil
}

// nodeTransform maps a glTF node transform onto node options. A non-identity matrix
// wins over TRS, as the glTF format requires the two to be exclusive.
func nodeTransform(gn *gltf.Node) []scene.NodeBuilderOption {
	if mat := gn.MatrixOrDefault(); mat != gltf.DefaultMatrix {
		var m mgl32.Mat4
		for i, v := range mat {
			m[i] = float32(v)
		}
		return []scene.NodeBuilderOption{scene.WithMatrix(m)}
	}

	t, r, s := gn.TranslationOrDefault(), gn.RotationOrDefault(), gn.ScaleOrDefault()
	return []scene.NodeBuilderOption{
		scene.WithPosition(mgl32.Vec3{float32(t[0]), float32(t[1]), float32(t[2])}),
		// glTF stores quaternions as (x, y, z, w).
		scene.WithRotation(mgl32.Quat{
			W: float32(r[3]),
			V: mgl32.Vec3{float32(r[0]), float32(r[1]), float32(r[2])},
		}),
		scene.WithScale(mgl32.Vec3{float32(s[0]), float32(s[1]), float32(s[2])}),
	}
}
