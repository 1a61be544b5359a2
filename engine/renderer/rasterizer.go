package renderer

import (
	"math"

	"github.com/Carmen-Shannon/oxy-viewer/common"
	"github.com/Carmen-Shannon/oxy-viewer/engine/camera"
	"github.com/Carmen-Shannon/oxy-viewer/engine/light"
	"github.com/Carmen-Shannon/oxy-viewer/engine/model"
	"github.com/Carmen-Shannon/oxy-viewer/engine/scene"
	"github.com/go-gl/mathgl/mgl32"
)

// triangle is a screen-space triangle ready for scan conversion. Attributes that
// need perspective correction are stored pre-divided by clip w.
type triangle struct {
	x, y, z [3]float32
	invW    [3]float32

	worldW  [3]mgl32.Vec3
	normalW [3]mgl32.Vec3
	uvW     [3]mgl32.Vec2
	hasUV   bool

	area     float32
	flipped  bool
	material *model.Material

	minX, maxX, minY, maxY int
}

// shadingEnv is the per-frame lighting state shared read-only by every band.
type shadingEnv struct {
	lights []light.Light
}

var defaultMaterial = model.DefaultMaterial()

// setup transforms every visible mesh into screen space and returns the triangles
// that survive clipping and culling.
func (r *renderer) setup(s scene.Scene, cam camera.Camera) []triangle {
	tris := r.scratch[:0]
	vp := cam.ViewProjectionMatrix()
	w, h := float32(r.width), float32(r.height)

	var clip []mgl32.Vec4
	var worldPos, worldNrm []mgl32.Vec3

	s.VisitMeshes(func(mesh *model.Mesh, world mgl32.Mat4) {
		g := mesh.Geometry
		mat := mesh.Material
		if mat == nil {
			mat = defaultMaterial
		}
		mvp := vp.Mul4(world)
		nm := common.NormalMatrix(world)

		n := len(g.Positions)
		clip = grow(clip, n)
		worldPos = grow(worldPos, n)
		worldNrm = grow(worldNrm, n)
		for i, p := range g.Positions {
			clip[i] = mvp.Mul4x1(p.Vec4(1))
			worldPos[i] = world.Mul4x1(p.Vec4(1)).Vec3()
			if i < len(g.Normals) {
				worldNrm[i] = nm.Mul3x1(g.Normals[i])
			} else {
				worldNrm[i] = mgl32.Vec3{0, 1, 0}
			}
		}
		hasUV := len(g.UVs) == n

		for f := 0; f+2 < len(g.Indices); f += 3 {
			idx := [3]uint32{g.Indices[f], g.Indices[f+1], g.Indices[f+2]}
			if int(idx[0]) >= n || int(idx[1]) >= n || int(idx[2]) >= n {
				continue
			}
			c := [3]mgl32.Vec4{clip[idx[0]], clip[idx[1]], clip[idx[2]]}
			if rejectClip(c) {
				continue
			}

			var t triangle
			for k := range 3 {
				iw := 1 / c[k].W()
				t.invW[k] = iw
				t.x[k] = (c[k].X()*iw + 1) * 0.5 * w
				t.y[k] = (1 - c[k].Y()*iw) * 0.5 * h
				t.z[k] = c[k].Z() * iw
				t.worldW[k] = worldPos[idx[k]].Mul(iw)
				t.normalW[k] = worldNrm[idx[k]].Mul(iw)
				if hasUV {
					t.uvW[k] = g.UVs[idx[k]].Mul(iw)
				}
			}
			t.hasUV = hasUV
			t.material = mat

			// Screen y points down, so counter-clockwise faces have negative area here.
			area := edge(t.x[0], t.y[0], t.x[1], t.y[1], t.x[2], t.y[2])
			if area == 0 || math.IsNaN(float64(area)) {
				continue
			}
			if area > 0 {
				if !mat.DoubleSided {
					continue
				}
				t.flipped = true
			}
			if area < 0 {
				t.x[1], t.x[2] = t.x[2], t.x[1]
				t.y[1], t.y[2] = t.y[2], t.y[1]
				t.z[1], t.z[2] = t.z[2], t.z[1]
				t.invW[1], t.invW[2] = t.invW[2], t.invW[1]
				t.worldW[1], t.worldW[2] = t.worldW[2], t.worldW[1]
				t.normalW[1], t.normalW[2] = t.normalW[2], t.normalW[1]
				t.uvW[1], t.uvW[2] = t.uvW[2], t.uvW[1]
				area = -area
			}
			t.area = area

			t.minX = max(int(math.Floor(float64(min(t.x[0], t.x[1], t.x[2])))), 0)
			t.maxX = min(int(math.Ceil(float64(max(t.x[0], t.x[1], t.x[2])))), r.width-1)
			t.minY = max(int(math.Floor(float64(min(t.y[0], t.y[1], t.y[2])))), 0)
			t.maxY = min(int(math.Ceil(float64(max(t.y[0], t.y[1], t.y[2])))), r.height-1)
			if t.minX > t.maxX || t.minY > t.maxY {
				continue
			}
			tris = append(tris, t)
		}
	})

	r.scratch = tris
	return tris
}

// rejectClip drops triangles that cross the near plane or lie entirely outside one
// side of the view frustum.
func rejectClip(c [3]mgl32.Vec4) bool {
	for k := range 3 {
		if c[k].W() <= 0 || c[k].Z() < -c[k].W() {
			return true
		}
	}
	outside := func(test func(v mgl32.Vec4) bool) bool {
		return test(c[0]) && test(c[1]) && test(c[2])
	}
	return outside(func(v mgl32.Vec4) bool { return v.X() < -v.W() }) ||
		outside(func(v mgl32.Vec4) bool { return v.X() > v.W() }) ||
		outside(func(v mgl32.Vec4) bool { return v.Y() < -v.W() }) ||
		outside(func(v mgl32.Vec4) bool { return v.Y() > v.W() }) ||
		outside(func(v mgl32.Vec4) bool { return v.Z() > v.W() })
}

// edge is the 2D cross product of (b-a) and (p-a).
func edge(ax, ay, bx, by, px, py float32) float32 {
	return (bx-ax)*(py-ay) - (by-ay)*(px-ax)
}

// drawBand clears rows [y0, y1) and scan converts the part of every triangle that
// falls inside them.
func (r *renderer) drawBand(y0, y1 int, tris []triangle, env *shadingEnv) {
	cc := r.clearColor
	inf := float32(math.Inf(1))
	for y := y0; y < y1; y++ {
		row := r.color.Pix[y*r.color.Stride : y*r.color.Stride+r.width*4]
		for x := 0; x < len(row); x += 4 {
			row[x], row[x+1], row[x+2], row[x+3] = cc.R, cc.G, cc.B, cc.A
		}
		depth := r.depth[y*r.width : (y+1)*r.width]
		for x := range depth {
			depth[x] = inf
		}
	}

	for i := range tris {
		t := &tris[i]
		if t.maxY < y0 || t.minY >= y1 {
			continue
		}
		r.fill(t, max(t.minY, y0), min(t.maxY, y1-1), env)
	}
}

// fill scan converts t over rows [ya, yb] with a depth test and per-pixel shading.
func (r *renderer) fill(t *triangle, ya, yb int, env *shadingEnv) {
	invArea := 1 / t.area
	for y := ya; y <= yb; y++ {
		py := float32(y) + 0.5
		for x := t.minX; x <= t.maxX; x++ {
			px := float32(x) + 0.5
			w0 := edge(t.x[1], t.y[1], t.x[2], t.y[2], px, py)
			w1 := edge(t.x[2], t.y[2], t.x[0], t.y[0], px, py)
			w2 := edge(t.x[0], t.y[0], t.x[1], t.y[1], px, py)
			if w0 < 0 || w1 < 0 || w2 < 0 {
				continue
			}
			b0, b1, b2 := w0*invArea, w1*invArea, w2*invArea

			z := b0*t.z[0] + b1*t.z[1] + b2*t.z[2]
			di := y*r.width + x
			if z >= r.depth[di] {
				continue
			}

			iw := b0*t.invW[0] + b1*t.invW[1] + b2*t.invW[2]
			if iw == 0 {
				continue
			}
			pw := 1 / iw

			rgba, ok := r.shade(t, b0, b1, b2, pw, env)
			if !ok {
				continue
			}
			r.depth[di] = z
			o := r.color.PixOffset(x, y)
			r.color.Pix[o] = rgba[0]
			r.color.Pix[o+1] = rgba[1]
			r.color.Pix[o+2] = rgba[2]
			r.color.Pix[o+3] = 0xff
		}
	}
}

// shade evaluates base color times the irradiance of every light. It reports false
// when the texel is cut out by the material's alpha cutoff.
func (r *renderer) shade(t *triangle, b0, b1, b2, pw float32, env *shadingEnv) ([3]uint8, bool) {
	mat := t.material
	base := mat.BaseColor
	if t.hasUV && mat.Texture != nil {
		uv := t.uvW[0].Mul(b0).Add(t.uvW[1].Mul(b1)).Add(t.uvW[2].Mul(b2)).Mul(pw)
		texel := mat.Texture.Sample(uv[0], uv[1])
		for i := range 4 {
			base[i] *= texel[i]
		}
	}
	if mat.AlphaCutoff > 0 && base[3] < mat.AlphaCutoff {
		return [3]uint8{}, false
	}

	pos := t.worldW[0].Mul(b0).Add(t.worldW[1].Mul(b1)).Add(t.worldW[2].Mul(b2)).Mul(pw)
	nrm := t.normalW[0].Mul(b0).Add(t.normalW[1].Mul(b1)).Add(t.normalW[2].Mul(b2))
	if l := nrm.Len(); l > 0 {
		nrm = nrm.Mul(1 / l)
	}
	if t.flipped {
		nrm = nrm.Mul(-1)
	}

	var irr mgl32.Vec3
	for _, l := range env.lights {
		irr = irr.Add(l.Irradiance(pos, nrm))
	}

	return [3]uint8{
		toByte(base[0] * irr[0]),
		toByte(base[1] * irr[1]),
		toByte(base[2] * irr[2]),
	}, true
}

func toByte(v float32) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 0xff
	}
	return uint8(v*255 + 0.5)
}

func grow[T any](s []T, n int) []T {
	if cap(s) < n {
		return make([]T, n)
	}
	return s[:n]
}
