package model

import (
	"image"
	"image/draw"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Geometry is an indexed triangle list in mesh-local space.
type Geometry struct {
	// Positions are the vertex positions.
	Positions []mgl32.Vec3

	// Normals are per-vertex unit normals (same length as Positions).
	Normals []mgl32.Vec3

	// UVs are per-vertex texture coordinates. May be empty.
	UVs []mgl32.Vec2

	// Indices are the triangle indices, three per face.
	Indices []uint32

	// BoundingMin is the minimum corner of the axis-aligned bounding box.
	BoundingMin mgl32.Vec3

	// BoundingMax is the maximum corner of the axis-aligned bounding box.
	BoundingMax mgl32.Vec3
}

// TriangleCount returns the number of faces in the geometry.
func (g *Geometry) TriangleCount() int {
	return len(g.Indices) / 3
}

// ComputeBounds recomputes BoundingMin and BoundingMax from Positions.
func (g *Geometry) ComputeBounds() {
	if len(g.Positions) == 0 {
		g.BoundingMin, g.BoundingMax = mgl32.Vec3{}, mgl32.Vec3{}
		return
	}
	lo, hi := g.Positions[0], g.Positions[0]
	for _, p := range g.Positions[1:] {
		for i := range 3 {
			lo[i] = min(lo[i], p[i])
			hi[i] = max(hi[i], p[i])
		}
	}
	g.BoundingMin, g.BoundingMax = lo, hi
}

// ComputeNormals replaces Normals with area-weighted smooth vertex normals.
// Vertices not referenced by any face get +Y.
func (g *Geometry) ComputeNormals() {
	normals := make([]mgl32.Vec3, len(g.Positions))
	for f := 0; f+2 < len(g.Indices); f += 3 {
		i0, i1, i2 := g.Indices[f], g.Indices[f+1], g.Indices[f+2]
		if int(i0) >= len(normals) || int(i1) >= len(normals) || int(i2) >= len(normals) {
			continue
		}
		p0, p1, p2 := g.Positions[i0], g.Positions[i1], g.Positions[i2]
		// Unnormalized cross product weights the face by its area.
		n := p1.Sub(p0).Cross(p2.Sub(p0))
		normals[i0] = normals[i0].Add(n)
		normals[i1] = normals[i1].Add(n)
		normals[i2] = normals[i2].Add(n)
	}
	for i, n := range normals {
		if n.Len() < 1e-12 {
			normals[i] = mgl32.Vec3{0, 1, 0}
			continue
		}
		normals[i] = n.Normalize()
	}
	g.Normals = normals
}

// Material describes how a surface is shaded.
type Material struct {
	// Name is the material identifier.
	Name string

	// BaseColor is the albedo color (RGBA, linear 0..1), multiplied with the texture.
	BaseColor [4]float32

	// Texture is the optional base color texture.
	Texture *Texture

	// DoubleSided disables back-face culling.
	DoubleSided bool

	// AlphaCutoff discards texels whose alpha is below it. 0 disables the test.
	AlphaCutoff float32
}

// DefaultMaterial returns an opaque white single-sided material.
func DefaultMaterial() *Material {
	return &Material{
		Name:      "default",
		BaseColor: [4]float32{1, 1, 1, 1},
	}
}

// Texture is a decoded RGBA image sampled with nearest filtering and repeat wrapping.
type Texture struct {
	img *image.RGBA
}

// NewTexture copies img into an RGBA texture.
//
// Parameters:
//   - img: any decoded image
//
// Returns:
//   - *Texture: the texture
func NewTexture(img image.Image) *Texture {
	rgba, ok := img.(*image.RGBA)
	if !ok || rgba.Rect.Min != (image.Point{}) {
		b := img.Bounds()
		rgba = image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
		draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
	}
	return &Texture{img: rgba}
}

// Size returns the texture dimensions in texels.
func (t *Texture) Size() (width, height int) {
	return t.img.Rect.Dx(), t.img.Rect.Dy()
}

// Sample returns the texel at (u, v) as normalized RGBA. UV (0, 0) is the top-left
// corner of the image, as in glTF.
//
// Parameters:
//   - u, v: texture coordinates, wrapped into [0, 1)
//
// Returns:
//   - [4]float32: the RGBA value
func (t *Texture) Sample(u, v float32) [4]float32 {
	w, h := t.Size()
	if w == 0 || h == 0 {
		return [4]float32{1, 1, 1, 1}
	}
	u -= float32(math.Floor(float64(u)))
	v -= float32(math.Floor(float64(v)))
	x := min(int(u*float32(w)), w-1)
	y := min(int(v*float32(h)), h-1)
	o := t.img.PixOffset(x, y)
	p := t.img.Pix[o : o+4 : o+4]
	return [4]float32{float32(p[0]) / 255, float32(p[1]) / 255, float32(p[2]) / 255, float32(p[3]) / 255}
}

// Mesh pairs a geometry with its material.
type Mesh struct {
	// Name is the mesh identifier.
	Name string

	// Geometry holds the triangle data.
	Geometry *Geometry

	// Material describes the surface. Nil means DefaultMaterial.
	Material *Material
}
