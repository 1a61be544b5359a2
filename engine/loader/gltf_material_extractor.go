package loader

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"

	"github.com/Carmen-Shannon/oxy-viewer/engine/model"
	"github.com/qmuntal/gltf"
)

// defaultAlphaCutoff is the glTF default for MASK materials without an explicit cutoff.
const defaultAlphaCutoff = 0.5

// gltfMaterialExtractorImpl is the implementation of the gltfMaterialExtractor interface.
type gltfMaterialExtractorImpl struct {
	doc      *gltf.Document
	baseDir  string
	logger   *slog.Logger
	cache    map[int]*model.Material
	textures map[int]*model.Texture
}

// gltfMaterialExtractor converts glTF materials into model.Material values,
// decoding base color textures along the way.
type gltfMaterialExtractor interface {
	// ExtractMaterial converts the material at materialIndex. Results are cached.
	// A texture that cannot be decoded is logged and skipped; the material keeps its
	// base color factor.
	//
	// Parameters:
	//   - materialIndex: index into the document's materials
	//
	// Returns:
	//   - *model.Material: the converted material
	//   - error: error if the index is out of range
	ExtractMaterial(materialIndex int) (*model.Material, error)
}

var _ gltfMaterialExtractor = &gltfMaterialExtractorImpl{}

// newGLTFMaterialExtractor creates a material extractor for doc. External image
// URIs are resolved relative to baseDir.
//
// Parameters:
//   - doc: the decoded glTF document
//   - baseDir: directory of the source file, empty for reader imports
//   - logger: destination for texture warnings
//
// Returns:
//   - gltfMaterialExtractor: the extractor
func newGLTFMaterialExtractor(doc *gltf.Document, baseDir string, logger *slog.Logger) gltfMaterialExtractor {
	return &gltfMaterialExtractorImpl{
		doc:      doc,
		baseDir:  baseDir,
		logger:   logger,
		cache:    make(map[int]*model.Material),
		textures: make(map[int]*model.Texture),
	}
}

func (e *gltfMaterialExtractorImpl) ExtractMaterial(materialIndex int) (*model.Material, error) {
	if cached, ok := e.cache[materialIndex]; ok {
		return cached, nil
	}
	if materialIndex < 0 || materialIndex >= len(e.doc.Materials) {
		return nil, fmt.Errorf("%w: material %d", ErrInvalidReference, materialIndex)
	}

	gm := e.doc.Materials[materialIndex]
	mat := model.DefaultMaterial()
	mat.Name = gm.Name
	mat.DoubleSided = gm.DoubleSided

	if gm.AlphaMode == gltf.AlphaMask {
		mat.AlphaCutoff = defaultAlphaCutoff
		if gm.AlphaCutoff != nil {
			mat.AlphaCutoff = float32(*gm.AlphaCutoff)
		}
	}

	if pbr := gm.PBRMetallicRoughness; pbr != nil {
		if f := pbr.BaseColorFactor; f != nil {
			mat.BaseColor = [4]float32{float32(f[0]), float32(f[1]), float32(f[2]), float32(f[3])}
		}
		if info := pbr.BaseColorTexture; info != nil {
			tex, err := e.loadTexture(info.Index)
			if err != nil {
				e.logger.Warn("skipping base color texture",
					"material", gm.Name, "texture", info.Index, "error", err)
			}
			mat.Texture = tex
		}
	}

	e.cache[materialIndex] = mat
	return mat, nil
}

// loadTexture decodes the image behind a glTF texture. Images are read from a buffer
// view (GLB and VRM), a data URI, or an external file next to the model.
func (e *gltfMaterialExtractorImpl) loadTexture(textureIndex int) (*model.Texture, error) {
	if cached, ok := e.textures[textureIndex]; ok {
		return cached, nil
	}
	if textureIndex < 0 || textureIndex >= len(e.doc.Textures) {
		return nil, fmt.Errorf("%w: texture %d", ErrInvalidReference, textureIndex)
	}

	src := e.doc.Textures[textureIndex].Source
	if src == nil {
		return nil, nil
	}
	if *src < 0 || *src >= len(e.doc.Images) {
		return nil, fmt.Errorf("%w: image %d", ErrInvalidReference, *src)
	}
	img := e.doc.Images[*src]

	data, err := e.imageBytes(img)
	if err != nil {
		return nil, err
	}
	decoded, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image %q (%s): %w", img.Name, img.MimeType, err)
	}

	tex := model.NewTexture(decoded)
	w, h := tex.Size()
	e.logger.Debug("decoded texture", "image", img.Name, "format", format, "width", w, "height", h)

	e.textures[textureIndex] = tex
	return tex, nil
}

func (e *gltfMaterialExtractorImpl) imageBytes(img *gltf.Image) ([]byte, error) {
	// Case 1: Image embedded in a buffer view (GLB and VRM)
	if img.BufferView != nil {
		return e.readBufferViewRaw(*img.BufferView)
	}

	// Case 2: Data URI (base64 encoded inline)
	if img.IsEmbeddedResource() {
		return img.MarshalData()
	}

	// Case 3: External file reference
	if img.URI == "" {
		return nil, fmt.Errorf("image %q has no source", img.Name)
	}
	if e.baseDir == "" {
		return nil, fmt.Errorf("image %q: external uri %q needs a file import", img.Name, img.URI)
	}
	rel, err := url.PathUnescape(img.URI)
	if err != nil {
		rel = img.URI
	}
	return os.ReadFile(filepath.Join(e.baseDir, filepath.FromSlash(rel)))
}

// readBufferViewRaw returns the bytes of a buffer view directly, without accessor
// interpretation.
func (e *gltfMaterialExtractorImpl) readBufferViewRaw(bufferViewIndex int) ([]byte, error) {
	if bufferViewIndex < 0 || bufferViewIndex >= len(e.doc.BufferViews) {
		return nil, fmt.Errorf("%w: bufferView %d", ErrInvalidReference, bufferViewIndex)
	}
	bv := e.doc.BufferViews[bufferViewIndex]
	if bv.Buffer < 0 || bv.Buffer >= len(e.doc.Buffers) {
		return nil, fmt.Errorf("%w: buffer %d", ErrInvalidReference, bv.Buffer)
	}

	buf := e.doc.Buffers[bv.Buffer]
	start, end := bv.ByteOffset, bv.ByteOffset+bv.ByteLength
	if end > len(buf.Data) {
		return nil, fmt.Errorf("bufferView exceeds buffer bounds: offset=%d length=%d bufSize=%d", start, bv.ByteLength, len(buf.Data))
	}
	return buf.Data[start:end], nil
}
