package render

import (
	"image"
	"math"

	"github.com/taigrr/radiance/pkg/math3d"
)

// Vertex represents a vertex with all attributes needed for rasterization.
type Vertex struct {
	Position math3d.Vec3 // Object-space position
	Normal   math3d.Vec3 // Object-space normal
	UV       math3d.Vec2 // Texture coordinates
}

// Triangle is three vertices. Only the first vertex's normal is used for
// culling and flat shading.
type Triangle struct {
	V [3]Vertex
}

// ScalarSampler is a grid of scalars addressed by texture coordinates.
// Irradiance maps implement it; reads must be safe while another goroutine
// writes.
type ScalarSampler interface {
	Sample(u, v float64) float64
}

// Drawable is what the rasterizer needs from a scene object. It is declared
// here so render never imports the scene packages.
type Drawable interface {
	Triangles() []Triangle
	// Transform returns a snapshot of the object's current transform.
	Transform() math3d.Transform
	Texture() *Texture
	// Lightmap returns the irradiance term, or nil if the object has none.
	Lightmap() ScalarSampler
	// Bounds returns the object-space bounding box.
	Bounds() AABB
}

// Shading holds the weights applied to the flat light term and the baked
// irradiance term.
type Shading struct {
	DiffuseWeight    float64 // factor = 1 - dot(n, light) * DiffuseWeight
	IrradianceWeight float64 // factor = 1 - irradiance * IrradianceWeight
}

// DefaultShading returns the weights used by the demo.
func DefaultShading() Shading {
	return Shading{DiffuseWeight: 0.75, IrradianceWeight: 0.75}
}

// Stats counts what happened to the geometry of one frame.
type Stats struct {
	ObjectsTested int // Objects tested against the frustum
	ObjectsCulled int // Objects skipped by the frustum test
	Triangles     int // Triangles submitted
	BackFaces     int // Triangles facing away from the camera
	NearRejected  int // Triangles with a vertex at or behind the eye plane
	Degenerate    int // Triangles under one pixel of doubled area
	Drawn         int // Triangles scan-converted
	Pixels        int // Pixels that passed the depth test
}

// Rasterizer draws objects into a framebuffer with a depth buffer.
type Rasterizer struct {
	fb      *Framebuffer
	zbuffer []float64 // Depth buffer (1D array, row-major)
	Shading Shading
	Stats   Stats
	// DisableFrustumCulling draws every object even if its bounds are off
	// screen.
	DisableFrustumCulling bool
}

// NewRasterizer creates a new rasterizer that draws into fb.
func NewRasterizer(fb *Framebuffer) *Rasterizer {
	r := &Rasterizer{
		fb:      fb,
		Shading: DefaultShading(),
	}
	r.Resize()
	return r
}

// Resize resizes the depth buffer to match the framebuffer.
func (r *Rasterizer) Resize() {
	r.zbuffer = make([]float64, r.fb.Width*r.fb.Height)
	r.clearDepth()
}

// Framebuffer returns the target framebuffer.
func (r *Rasterizer) Framebuffer() *Framebuffer {
	return r.fb
}

// BeginFrame clears color, depth, and stats. Call once per frame.
func (r *Rasterizer) BeginFrame() {
	r.fb.Clear()
	r.clearDepth()
	r.Stats = Stats{}
}

func (r *Rasterizer) clearDepth() {
	// Use copy-doubling for faster clearing
	n := len(r.zbuffer)
	if n == 0 {
		return
	}
	r.zbuffer[0] = math.MaxFloat64
	for i := 1; i < n; i *= 2 {
		copy(r.zbuffer[i:], r.zbuffer[:i])
	}
}

// Depth returns the depth buffer value at (x, y).
func (r *Rasterizer) Depth(x, y int) float64 {
	if x < 0 || x >= r.fb.Width || y < 0 || y >= r.fb.Height {
		return math.MaxFloat64
	}
	return r.zbuffer[y*r.fb.Width+x]
}

// screenVertex holds a vertex after projection.
type screenVertex struct {
	P    image.Point // Integer screen position
	Z    float64     // NDC depth
	InvW float64     // 1/w for perspective-correct interpolation
	U, V float64     // uv divided by w
}

// DrawObject draws every triangle of obj. The transform is read once per
// call; the camera must already be updated for this frame. Degenerate,
// back-facing, and behind-the-eye triangles are skipped silently and only
// show up in Stats.
func (r *Rasterizer) DrawObject(obj Drawable, cam *Camera, light DirectionalLight) {
	xf := obj.Transform()

	if !r.DisableFrustumCulling {
		r.Stats.ObjectsTested++
		world := obj.Bounds().Transform(xf.Matrix())
		if !NewFrustumFromMatrix(cam.ViewProjection()).IntersectSides(world) {
			r.Stats.ObjectsCulled++
			return
		}
	}

	viewProj := cam.ViewProjection()
	eye := cam.Position()
	tex := obj.Texture()
	lightmap := obj.Lightmap()

	for _, tri := range obj.Triangles() {
		r.Stats.Triangles++

		var world [3]math3d.Vec3
		for i := range 3 {
			world[i] = xf.Apply(tri.V[i].Position)
		}
		normal := xf.RotateDir(tri.V[0].Normal).Normalize()

		if normal.Dot(eye.Sub(world[0])) <= 0 {
			r.Stats.BackFaces++
			continue
		}

		flat := 1 - normal.Dot(light.Direction)*r.Shading.DiffuseWeight

		var sv [3]screenVertex
		visible := true
		for i := range 3 {
			clip := viewProj.MulVec4(world[i].Extend(1))
			if clip.W == 0 {
				visible = false
				break
			}
			sv[i].InvW = 1 / clip.W
			if sv[i].InvW <= 0 {
				visible = false
				break
			}
			ndc := clip.PerspectiveDivide()
			sv[i].P = image.Pt(toScreen(ndc.X, r.fb.Width), toScreen(ndc.Y, r.fb.Height))
			sv[i].Z = ndc.Z
			sv[i].U = tri.V[i].UV.X * sv[i].InvW
			sv[i].V = tri.V[i].UV.Y * sv[i].InvW
		}
		if !visible {
			r.Stats.NearRejected++
			continue
		}

		if r.drawTriangle(&sv, tex, lightmap, flat) {
			r.Stats.Drawn++
		} else {
			r.Stats.Degenerate++
		}
	}
}

func (r *Rasterizer) drawTriangle(sv *[3]screenVertex, tex *Texture, lightmap ScalarSampler, flat float64) bool {
	z := math3d.V3(sv[0].Z, sv[1].Z, sv[2].Z)
	invW := math3d.V3(sv[0].InvW, sv[1].InvW, sv[2].InvW)
	us := math3d.V3(sv[0].U, sv[1].U, sv[2].U)
	vs := math3d.V3(sv[0].V, sv[1].V, sv[2].V)
	width := r.fb.Width

	return ScanTriangle(width, r.fb.Height, sv[0].P, sv[1].P, sv[2].P, func(x, y int, bary math3d.Vec3) {
		depth := z.Dot(bary)
		idx := y*width + x
		if r.zbuffer[idx] < depth {
			return
		}

		w := invW.Dot(bary)
		u := us.Dot(bary) / w
		v := vs.Dot(bary) / w

		factor := flat
		if lightmap != nil {
			factor *= 1 - lightmap.Sample(u, v)*r.Shading.IrradianceWeight
		}

		diffuse := math3d.V3(1, 1, 1)
		if tex != nil {
			diffuse = tex.Sample(u, v)
		}

		c := diffuse.Scale(factor * 255)
		r.fb.setRGB(x, y, channel(c.X), channel(c.Y), channel(c.Z))
		r.zbuffer[idx] = depth
		r.Stats.Pixels++
	})
}

// toScreen maps an NDC coordinate to a pixel index along an axis of size dim.
// Off-screen values stay off-screen; huge values are clamped before the
// integer conversion.
func toScreen(ndc float64, dim int) int {
	const limit = 1 << 30
	s := (ndc + 1) * 0.5 * float64(dim)
	if math.IsNaN(s) {
		return -limit
	}
	s = math.Max(-limit, math.Min(limit, s))
	return int(math.Floor(s))
}

// channel saturates v to [0, 255] and truncates it to a byte.
func channel(v float64) byte {
	if !(v > 0) {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return byte(v)
}
