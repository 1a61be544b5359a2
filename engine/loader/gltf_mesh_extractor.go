package loader

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-viewer/engine/model"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
)

// gltfMeshExtractorImpl is the implementation of the gltfMeshExtractor interface.
type gltfMeshExtractorImpl struct {
	doc       *gltf.Document
	materials gltfMaterialExtractor
	cache     map[int][]*model.Mesh
}

// gltfMeshExtractor converts glTF meshes into renderable model.Mesh values.
// A glTF mesh with several primitives yields one model.Mesh per triangle primitive.
type gltfMeshExtractor interface {
	// ExtractMesh converts the mesh at meshIndex. Results are cached so meshes
	// instanced by several nodes share geometry.
	//
	// Parameters:
	//   - meshIndex: index into the document's meshes
	//
	// Returns:
	//   - []*model.Mesh: one mesh per triangle primitive
	//   - error: error if an accessor cannot be read
	ExtractMesh(meshIndex int) ([]*model.Mesh, error)
}

var _ gltfMeshExtractor = &gltfMeshExtractorImpl{}

// newGLTFMeshExtractor creates a mesh extractor for doc.
//
// Parameters:
//   - doc: the decoded glTF document
//   - materials: the material extractor used to resolve primitive materials
//
// Returns:
//   - gltfMeshExtractor: the extractor
func newGLTFMeshExtractor(doc *gltf.Document, materials gltfMaterialExtractor) gltfMeshExtractor {
	return &gltfMeshExtractorImpl{
		doc:       doc,
		materials: materials,
		cache:     make(map[int][]*model.Mesh),
	}
}

func (e *gltfMeshExtractorImpl) ExtractMesh(meshIndex int) ([]*model.Mesh, error) {
	if cached, ok := e.cache[meshIndex]; ok {
		return cached, nil
	}
	if meshIndex < 0 || meshIndex >= len(e.doc.Meshes) {
		return nil, fmt.Errorf("%w: mesh %d", ErrInvalidReference, meshIndex)
	}

	gm := e.doc.Meshes[meshIndex]
	var meshes []*model.Mesh
	for i, prim := range gm.Primitives {
		if prim.Mode != gltf.PrimitiveTriangles {
			continue
		}
		m, err := e.extractPrimitive(prim, gm.Name, i)
		if err != nil {
			return nil, fmt.Errorf("mesh %q primitive %d: %w", gm.Name, i, err)
		}
		if m != nil {
			meshes = append(meshes, m)
		}
	}

	e.cache[meshIndex] = meshes
	return meshes, nil
}

func (e *gltfMeshExtractorImpl) extractPrimitive(prim *gltf.Primitive, meshName string, primIndex int) (*model.Mesh, error) {
	posIdx, ok := prim.Attributes["POSITION"]
	if !ok {
		return nil, nil
	}

	acr, err := e.accessor(posIdx)
	if err != nil {
		return nil, err
	}
	positions, err := modeler.ReadPosition(e.doc, acr, nil)
	if err != nil {
		return nil, fmt.Errorf("read positions: %w", err)
	}

	g := &model.Geometry{Positions: make([]mgl32.Vec3, len(positions))}
	for i, p := range positions {
		g.Positions[i] = p
	}

	if prim.Indices != nil {
		acr, err := e.accessor(*prim.Indices)
		if err != nil {
			return nil, err
		}
		if g.Indices, err = modeler.ReadIndices(e.doc, acr, nil); err != nil {
			return nil, fmt.Errorf("read indices: %w", err)
		}
	} else {
		g.Indices = make([]uint32, len(positions))
		for i := range g.Indices {
			g.Indices[i] = uint32(i)
		}
	}

	if idx, ok := prim.Attributes["NORMAL"]; ok {
		acr, err := e.accessor(idx)
		if err != nil {
			return nil, err
		}
		normals, err := modeler.ReadNormal(e.doc, acr, nil)
		if err != nil {
			return nil, fmt.Errorf("read normals: %w", err)
		}
		if len(normals) == len(positions) {
			g.Normals = make([]mgl32.Vec3, len(normals))
			for i, n := range normals {
				g.Normals[i] = n
			}
		}
	}
	if g.Normals == nil {
		g.ComputeNormals()
	}

	if idx, ok := prim.Attributes["TEXCOORD_0"]; ok {
		acr, err := e.accessor(idx)
		if err != nil {
			return nil, err
		}
		uvs, err := modeler.ReadTextureCoord(e.doc, acr, nil)
		if err != nil {
			return nil, fmt.Errorf("read texcoords: %w", err)
		}
		if len(uvs) == len(positions) {
			g.UVs = make([]mgl32.Vec2, len(uvs))
			for i, uv := range uvs {
				g.UVs[i] = uv
			}
		}
	}

	g.ComputeBounds()

	mat := model.DefaultMaterial()
	if prim.Material != nil {
		if mat, err = e.materials.ExtractMaterial(*prim.Material); err != nil {
			return nil, err
		}
	}

	return &model.Mesh{
		Name:     fmt.Sprintf("%s_%d", meshName, primIndex),
		Geometry: g,
		Material: mat,
	}, nil
}

func (e *gltfMeshExtractorImpl) accessor(index int) (*gltf.Accessor, error) {
	if index < 0 || index >= len(e.doc.Accessors) {
		return nil, fmt.Errorf("%w: accessor %d", ErrInvalidReference, index)
	}
	return e.doc.Accessors[index], nil
}
