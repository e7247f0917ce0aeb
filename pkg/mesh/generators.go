package mesh

import (
	gomath "math"

	"github.com/Faultbox/tinymesh/pkg/heightfield"
	"github.com/Faultbox/tinymesh/pkg/math"
	"github.com/Faultbox/tinymesh/pkg/shapes"
)

// Box face normals, indexed by NewBox triangles.
var boxNormals = [6]math.Vec3{
	{-1, 0, 0},
	{1, 0, 0},
	{0, -1, 0},
	{0, 1, 0},
	{0, 0, -1},
	{0, 0, 1},
}

// NewBox creates an axis-aligned box with 8 vertices, 6 normals and 12
// triangles. Both triangles of a face share the face normal.
func NewBox(box shapes.Box) *Mesh {
	m := New()
	m.Grow(8, 6, 12)
	for k := range 8 {
		m.AddVertex(box.Vertex(k))
	}
	for _, n := range boxNormals {
		m.AddNormal(n)
	}

	// -Z
	m.AddTriangle(0, 2, 1, 4)
	m.AddTriangle(1, 2, 3, 4)
	// +Z
	m.AddTriangle(4, 5, 6, 5)
	m.AddTriangle(5, 7, 6, 5)
	// -X
	m.AddTriangle(0, 4, 2, 0)
	m.AddTriangle(4, 6, 2, 0)
	// +X
	m.AddTriangle(1, 3, 5, 1)
	m.AddTriangle(3, 7, 5, 1)
	// -Y
	m.AddTriangle(0, 1, 5, 2)
	m.AddTriangle(0, 5, 4, 2)
	// +Y
	m.AddTriangle(3, 2, 7, 3)
	m.AddTriangle(6, 7, 2, 3)

	return m.mustValidate()
}

// NewDisk creates a disk facing +Y: the center vertex followed by div+1 rim
// vertices, the last of which closes the rim on top of the first. The fan
// has div+1 triangles sharing one normal; the triangle joining the closing
// vertex back to the first one is degenerate.
func NewDisk(disk shapes.Disk, div int) *Mesh {
	m := New()
	if div < 1 {
		return m
	}

	c := disk.Center()
	r := disk.Radius()
	step := 2 * gomath.Pi / float64(div)

	m.Grow(div+2, 1, div+1)
	center := m.AddVertex(c)
	up := m.AddNormal(math.UnitY)
	for i := 0; i <= div; i++ {
		sin, cos := gomath.Sincos(float64(i) * step)
		m.AddVertex(c.Add(math.V3(cos*r, 0, sin*r)))
	}

	rim := center + 1
	for i := 0; i <= div; i++ {
		next := (i + 1) % (div + 1)
		m.AddTriangle(center, rim+next, rim+i, up)
	}

	return m.mustValidate()
}

// NewSphere creates a latitude/longitude sphere: a top pole, div rings of
// div vertices and a bottom pole. Normals are the unit radial directions
// and share the vertex indices.
func NewSphere(sphere shapes.Sphere, div int) *Mesh {
	m := New()
	if div < 1 {
		return m
	}

	c := sphere.Center()
	r := sphere.Radius()
	m.Grow(div*div+2, div*div+2, 2*div*div)

	top := m.addRadial(c, r, math.UnitY)
	for i := 0; i < div; i++ {
		theta := float64(i+1) * gomath.Pi / float64(div+1)
		m.addRing(c, r, theta, div)
	}
	bottom := m.addRadial(c, r, math.UnitY.Neg())

	first := top + 1
	m.fanUp(top, first, div)
	for i := 0; i < div-1; i++ {
		m.stitchRings(first+i*div, first+(i+1)*div, div)
	}
	m.fanDown(bottom, first+(div-1)*div, div)

	return m.mustValidate()
}

// NewCylinder creates a closed cylinder along Y. Vertices are the top cap
// center, div pairs of (bottom, top) rim vertices and the bottom cap
// center. Caps use the axial normals and the side uses one radial normal
// per angle, so the rims keep hard edges.
func NewCylinder(cyl shapes.Cylinder, div int) *Mesh {
	m := New()
	if div < 1 {
		return m
	}

	r := cyl.Radius()
	h := cyl.Height()
	step := 2 * gomath.Pi / float64(div)

	m.Grow(2*div+2, div+2, 4*div)
	topCenter := m.AddVertex(math.V3(0, h, 0))
	up := m.AddNormal(math.UnitY)
	down := m.AddNormal(math.UnitY.Neg())
	for k := 0; k < div; k++ {
		sin, cos := gomath.Sincos(float64(k) * step)
		m.AddVertex(math.V3(cos*r, -h, sin*r))
		m.AddVertex(math.V3(cos*r, h, sin*r))
		m.AddNormal(math.V3(cos, 0, sin))
	}
	bottomCenter := m.AddVertex(math.V3(0, -h, 0))

	bot := func(k int) int { return topCenter + 1 + 2*k }
	rim := func(k int) int { return topCenter + 2 + 2*k }
	side := func(k int) int { return down + 1 + k }

	for k := 0; k < div; k++ {
		kn := (k + 1) % div
		m.AddSmoothQuadrangle(bot(k), side(k), rim(k), side(k), rim(kn), side(kn), bot(kn), side(kn))
		m.AddTriangle(topCenter, rim(kn), rim(k), up)
		m.AddTriangle(bottomCenter, bot(k), bot(kn), down)
	}

	return m.mustValidate()
}

// NewTorus creates a torus around Z as a divR x divT grid wrapping in both
// directions: i walks around the tube and j around the axis. Normals are
// analytic and share the vertex indices.
func NewTorus(torus shapes.Torus, divR, divT int) *Mesh {
	m := New()
	if divR < 1 || divT < 1 {
		return m
	}

	radius := torus.Radius()
	thickness := torus.Thickness()

	m.Grow(divR*divT, divR*divT, 2*divR*divT)
	for i := 0; i < divR; i++ {
		sinV, cosV := gomath.Sincos(float64(i) / float64(divR) * 2 * gomath.Pi)
		for j := 0; j < divT; j++ {
			sinU, cosU := gomath.Sincos(float64(j) / float64(divT) * 2 * gomath.Pi)
			ring := radius + thickness*cosV
			m.AddVertex(math.V3(ring*cosU, ring*sinU, thickness*sinV))
			m.AddNormal(math.V3(cosV*cosU, cosV*sinU, sinV))
		}
	}

	for i := 0; i < divR; i++ {
		in := (i + 1) % divR
		for j := 0; j < divT; j++ {
			jn := (j + 1) % divT
			m.AddQuadrangle(i*divT+j, i*divT+jn, in*divT+jn, in*divT+j)
		}
	}

	return m.mustValidate()
}

// NewCapsule creates a capsule along Y: a straight side section between
// two rings at y = +-Height, then a hemispherical cap on each ring. Each cap
// is appended at its own vertex offset and stitched to the side ring it
// closes. Normals are analytic and share the vertex indices.
func NewCapsule(capsule shapes.Capsule, div int) *Mesh {
	m := New()
	if div < 1 {
		return m
	}

	r := capsule.Radius()
	h := capsule.Height()
	topCenter := math.V3(0, h, 0)
	bottomCenter := math.V3(0, -h, 0)

	m.Grow(2*div*div+2, 2*div*div+2, 4*div*div)
	upper := m.addRing(topCenter, r, gomath.Pi/2, div)
	lower := m.addRing(bottomCenter, r, gomath.Pi/2, div)
	m.stitchRings(upper, lower, div)

	m.addCap(topCenter, r, div, upper, true)
	m.addCap(bottomCenter, r, div, lower, false)

	return m.mustValidate()
}

// addCap appends a hemisphere of div-1 rings plus a pole above (up) or
// below the equator ring starting at index equator, and stitches it.
func (m *Mesh) addCap(center math.Vec3, r float64, div, equator int, up bool) {
	prev := equator
	for k := 1; k < div; k++ {
		offset := gomath.Pi / 2 * float64(k) / float64(div)
		if up {
			ring := m.addRing(center, r, gomath.Pi/2-offset, div)
			m.stitchRings(ring, prev, div)
			prev = ring
		} else {
			ring := m.addRing(center, r, gomath.Pi/2+offset, div)
			m.stitchRings(prev, ring, div)
			prev = ring
		}
	}

	if up {
		m.fanUp(m.addRadial(center, r, math.UnitY), prev, div)
	} else {
		m.fanDown(m.addRadial(center, r, math.UnitY.Neg()), prev, div)
	}
}

// NewTerrain creates a grid mesh from a heightfield of size n: (n+1)^2
// vertices at (i, j, height(i, j)) with estimated normals, and one
// quadrangle per cell. Vertex (i, j) has index i*(n+1)+j.
func NewTerrain(hf *heightfield.HeightField) *Mesh {
	m := New()
	n := hf.Size()
	row := n + 1

	m.Grow(row*row, row*row, 2*n*n)
	for i := 0; i <= n; i++ {
		for j := 0; j <= n; j++ {
			m.AddVertex(math.V3(float64(i), float64(j), hf.Height(i, j)))
			m.AddNormal(hf.Normal(i, j))
		}
	}

	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			a := i*row + j
			m.AddQuadrangle(a, a+row, a+row+1, a+1)
		}
	}

	return m.mustValidate()
}

// addRadial appends the point at distance r from c along the unit
// direction dir, with dir as its normal.
func (m *Mesh) addRadial(c math.Vec3, r float64, dir math.Vec3) int {
	m.AddNormal(dir)
	return m.AddVertex(c.Add(dir.Scale(r)))
}

// addRing appends div vertices on the sphere of radius r around c at polar
// angle theta from +Y, starting on +X and turning towards +Z. It returns
// the index of the first one.
func (m *Mesh) addRing(c math.Vec3, r, theta float64, div int) int {
	start := len(m.vertices)
	sinT, cosT := gomath.Sincos(theta)
	for j := 0; j < div; j++ {
		sinP, cosP := gomath.Sincos(float64(j) * 2 * gomath.Pi / float64(div))
		m.addRadial(c, r, math.V3(sinT*cosP, cosT, sinT*sinP))
	}
	return start
}

// stitchRings joins two rings of div vertices built by addRing, the upper
// one being closer to +Y, with outward facing quadrangles.
func (m *Mesh) stitchRings(upper, lower, div int) {
	for j := 0; j < div; j++ {
		jn := (j + 1) % div
		m.AddQuadrangle(upper+j, upper+jn, lower+jn, lower+j)
	}
}

// fanUp closes a ring with a pole above it.
func (m *Mesh) fanUp(pole, ring, div int) {
	for j := 0; j < div; j++ {
		jn := (j + 1) % div
		m.AddSmoothTriangle(pole, pole, ring+jn, ring+jn, ring+j, ring+j)
	}
}

// fanDown closes a ring with a pole below it.
func (m *Mesh) fanDown(pole, ring, div int) {
	for j := 0; j < div; j++ {
		jn := (j + 1) % div
		m.AddSmoothTriangle(pole, pole, ring+j, ring+j, ring+jn, ring+jn)
	}
}
