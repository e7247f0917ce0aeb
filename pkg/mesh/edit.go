package mesh

import (
	"slices"

	"github.com/Faultbox/tinymesh/pkg/math"
)

// SmoothNormals replaces the normals with one per vertex, computed as the
// area weighted sum of the normals of every adjacent triangle. The normal
// index array becomes a copy of the position index array. Vertices not
// used by any triangle keep the zero vector.
func (m *Mesh) SmoothNormals() {
	normals := make([]math.Vec3, len(m.vertices))

	for i := 0; i+2 < len(m.varray); i += 3 {
		ia, ib, ic := m.varray[i], m.varray[i+1], m.varray[i+2]
		a, b, c := m.vertices[ia], m.vertices[ib], m.vertices[ic]

		// Cross product length is twice the triangle area.
		n := b.Sub(a).Cross(c.Sub(a))
		normals[ia] = normals[ia].Add(n)
		normals[ib] = normals[ib].Add(n)
		normals[ic] = normals[ic].Add(n)
	}

	for i := range normals {
		normals[i] = normals[i].Normalize()
	}

	m.normals = normals
	m.narray = slices.Clone(m.varray)
}

// Scale multiplies every vertex by s. A negative factor mirrors the mesh
// through the origin, so normals are flipped with it.
func (m *Mesh) Scale(s float64) {
	for i, v := range m.vertices {
		m.vertices[i] = v.Scale(s)
	}
	if s < 0 {
		for i, n := range m.normals {
			m.normals[i] = n.Neg()
		}
	}
}

// Translate moves every vertex by t.
func (m *Mesh) Translate(t math.Vec3) {
	for i, v := range m.vertices {
		m.vertices[i] = v.Add(t)
	}
}

// RotateX rotates the mesh around the X axis by deg degrees.
func (m *Mesh) RotateX(deg float64) { m.rotate(math.RotationX(deg)) }

// RotateY rotates the mesh around the Y axis by deg degrees.
func (m *Mesh) RotateY(deg float64) { m.rotate(math.RotationY(deg)) }

// RotateZ rotates the mesh around the Z axis by deg degrees.
func (m *Mesh) RotateZ(deg float64) { m.rotate(math.RotationZ(deg)) }

func (m *Mesh) rotate(r math.Mat3) {
	for i, v := range m.vertices {
		m.vertices[i] = r.MulVec3(v)
	}
	for i, n := range m.normals {
		m.normals[i] = r.MulVec3(n)
	}
}

// Transform applies a linear map to the mesh. Vertices are multiplied by t
// and normals by its inverse transpose, then renormalized. Normals are left
// unchanged when t is singular.
func (m *Mesh) Transform(t math.Mat3) {
	for i, v := range m.vertices {
		m.vertices[i] = t.MulVec3(v)
	}

	inv, ok := t.Inverse()
	if !ok {
		return
	}
	nt := inv.Transpose()
	for i, n := range m.normals {
		m.normals[i] = nt.MulVec3(n).Normalize()
	}
}

// Merge appends other to m. The indices of other are shifted by the
// vertex and normal counts m had before the call.
func (m *Mesh) Merge(other *Mesh) {
	vOff := len(m.vertices)
	nOff := len(m.normals)

	m.Grow(len(other.vertices), len(other.normals), other.Triangles())
	for _, v := range other.varray {
		m.varray = append(m.varray, v+vOff)
	}
	for _, n := range other.narray {
		m.narray = append(m.narray, n+nOff)
	}
	m.vertices = append(m.vertices, other.vertices...)
	m.normals = append(m.normals, other.normals...)
}

// ModifyHeight sets the Z coordinate of the first vertex lying exactly at
// (x, y) in the XY plane. It reports whether such a vertex was found.
func (m *Mesh) ModifyHeight(x, y, h float64) bool {
	for i, v := range m.vertices {
		if v.X == x && v.Y == y {
			m.vertices[i].Z = h
			return true
		}
	}
	return false
}

// Flatten levels a square patch of a terrain mesh around the grid vertex
// (x, y): every vertex (i, j) with x-d <= i < x+d and y-d <= j < y+d is
// moved to height h. Nothing happens when no vertex lies at (x, y). It
// returns how many vertices were modified. Normals are not recomputed.
func (m *Mesh) Flatten(x, y int, h float64, d int) int {
	if !slices.ContainsFunc(m.vertices, func(v math.Vec3) bool {
		return v.X == float64(x) && v.Y == float64(y)
	}) {
		return 0
	}

	count := 0
	for i := x - d; i < x+d; i++ {
		for j := y - d; j < y+d; j++ {
			if m.ModifyHeight(float64(i), float64(j), h) {
				count++
			}
		}
	}
	return count
}
