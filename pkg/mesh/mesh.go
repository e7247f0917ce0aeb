// Package mesh provides an indexed triangle mesh with separate position and
// normal indexing, procedural generators for primitive solids and terrains,
// and the editing operations that work on that representation.
package mesh

import (
	"errors"
	"fmt"
	"slices"

	"github.com/Faultbox/tinymesh/pkg/math"
)

// Mesh errors.
var (
	ErrInvariantViolation  = errors.New("mesh invariant violation")
	ErrResourceUnavailable = errors.New("mesh resource unavailable")
)

// Triangle references three corner positions and three corner normals.
type Triangle struct {
	V [3]int // Position indices
	N [3]int // Normal indices
}

// Mesh is an indexed triangle mesh. Positions and normals are stored once
// and referenced by index from each triangle corner; the two index arrays
// grow together, three entries per triangle.
//
// A Mesh has a single owner and is not safe for concurrent mutation.
type Mesh struct {
	vertices []math.Vec3
	normals  []math.Vec3
	varray   []int // Position index per triangle corner
	narray   []int // Normal index per triangle corner
}

// New returns an empty mesh.
func New() *Mesh {
	return &Mesh{}
}

// FromArrays creates a mesh from raw arrays. Every consecutive triple of va
// and na describes one triangle. The slices are copied.
func FromArrays(vertices, normals []math.Vec3, va, na []int) (*Mesh, error) {
	m := &Mesh{
		vertices: slices.Clone(vertices),
		normals:  slices.Clone(normals),
		varray:   slices.Clone(va),
		narray:   slices.Clone(na),
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

// FromTriangles creates a mesh from vertices, normals and triangle handles.
func FromTriangles(vertices, normals []math.Vec3, tris []Triangle) (*Mesh, error) {
	m := &Mesh{
		vertices: slices.Clone(vertices),
		normals:  slices.Clone(normals),
	}
	m.Grow(0, 0, len(tris))
	for _, t := range tris {
		m.AddTriangleHandle(t)
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

// NewIndexed creates a mesh from vertices and position indices. Every
// vertex gets a +Z normal and triangles use the position index as normal index.
func NewIndexed(vertices []math.Vec3, indices []int) (*Mesh, error) {
	normals := make([]math.Vec3, len(vertices))
	for i := range normals {
		normals[i] = math.UnitZ
	}
	return FromArrays(vertices, normals, indices, indices)
}

// Grow reserves room for nv more vertices, nn more normals and nt more triangles.
func (m *Mesh) Grow(nv, nn, nt int) {
	m.vertices = slices.Grow(m.vertices, nv)
	m.normals = slices.Grow(m.normals, nn)
	m.varray = slices.Grow(m.varray, 3*nt)
	m.narray = slices.Grow(m.narray, 3*nt)
}

// Clone returns a deep copy of the mesh.
func (m *Mesh) Clone() *Mesh {
	return &Mesh{
		vertices: slices.Clone(m.vertices),
		normals:  slices.Clone(m.normals),
		varray:   slices.Clone(m.varray),
		narray:   slices.Clone(m.narray),
	}
}

// Vertexes returns the number of vertices.
func (m *Mesh) Vertexes() int { return len(m.vertices) }

// NormalCount returns the number of normals.
func (m *Mesh) NormalCount() int { return len(m.normals) }

// Triangles returns the number of triangles.
func (m *Mesh) Triangles() int { return len(m.varray) / 3 }

// Vertex returns vertex i.
func (m *Mesh) Vertex(i int) math.Vec3 { return m.vertices[i] }

// Normal returns normal i.
func (m *Mesh) Normal(i int) math.Vec3 { return m.normals[i] }

// Vertices returns a copy of the vertex array.
func (m *Mesh) Vertices() []math.Vec3 { return slices.Clone(m.vertices) }

// Normals returns a copy of the normal array.
func (m *Mesh) Normals() []math.Vec3 { return slices.Clone(m.normals) }

// VertexIndexes returns a copy of the position index array.
func (m *Mesh) VertexIndexes() []int { return slices.Clone(m.varray) }

// NormalIndexes returns a copy of the normal index array.
func (m *Mesh) NormalIndexes() []int { return slices.Clone(m.narray) }

// Triangle returns triangle i.
func (m *Mesh) Triangle(i int) Triangle {
	k := 3 * i
	return Triangle{
		V: [3]int{m.varray[k], m.varray[k+1], m.varray[k+2]},
		N: [3]int{m.narray[k], m.narray[k+1], m.narray[k+2]},
	}
}

// Corners returns the three positions of triangle i.
func (m *Mesh) Corners(i int) [3]math.Vec3 {
	t := m.Triangle(i)
	return [3]math.Vec3{m.vertices[t.V[0]], m.vertices[t.V[1]], m.vertices[t.V[2]]}
}

// AddVertex appends a vertex and returns its index.
func (m *Mesh) AddVertex(v math.Vec3) int {
	m.vertices = append(m.vertices, v)
	return len(m.vertices) - 1
}

// AddNormal appends a normal and returns its index.
func (m *Mesh) AddNormal(n math.Vec3) int {
	m.normals = append(m.normals, n)
	return len(m.normals) - 1
}

// AddSmoothTriangle appends a triangle with one normal index per corner.
func (m *Mesh) AddSmoothTriangle(a, na, b, nb, c, nc int) {
	m.varray = append(m.varray, a, b, c)
	m.narray = append(m.narray, na, nb, nc)
}

// AddTriangle appends a flat triangle whose corners share normal n.
func (m *Mesh) AddTriangle(a, b, c, n int) {
	m.AddSmoothTriangle(a, n, b, n, c, n)
}

// AddTriangleHandle appends t.
func (m *Mesh) AddTriangleHandle(t Triangle) {
	m.AddSmoothTriangle(t.V[0], t.N[0], t.V[1], t.N[1], t.V[2], t.N[2])
}

// AddSmoothQuadrangle appends the two triangles abc and acd.
func (m *Mesh) AddSmoothQuadrangle(a, na, b, nb, c, nc, d, nd int) {
	m.AddSmoothTriangle(a, na, b, nb, c, nc)
	m.AddSmoothTriangle(a, na, c, nc, d, nd)
}

// AddQuadrangle appends the two triangles abc and acd, using each vertex
// index as its normal index.
func (m *Mesh) AddQuadrangle(a, b, c, d int) {
	m.AddSmoothQuadrangle(a, a, b, b, c, c, d, d)
}

// Validate checks that both index arrays have the same length, a multiple
// of three, and that every index points into its array.
func (m *Mesh) Validate() error {
	if len(m.varray) != len(m.narray) {
		return fmt.Errorf("%w: %d position indices, %d normal indices", ErrInvariantViolation, len(m.varray), len(m.narray))
	}
	if len(m.varray)%3 != 0 {
		return fmt.Errorf("%w: %d indices is not a multiple of 3", ErrInvariantViolation, len(m.varray))
	}
	for i, v := range m.varray {
		if v < 0 || v >= len(m.vertices) {
			return fmt.Errorf("%w: corner %d position index %d out of range [0, %d)", ErrInvariantViolation, i, v, len(m.vertices))
		}
	}
	for i, n := range m.narray {
		if n < 0 || n >= len(m.normals) {
			return fmt.Errorf("%w: corner %d normal index %d out of range [0, %d)", ErrInvariantViolation, i, n, len(m.normals))
		}
	}
	return nil
}

// mustValidate panics when a generator produced inconsistent topology.
func (m *Mesh) mustValidate() *Mesh {
	if err := m.Validate(); err != nil {
		panic(err)
	}
	return m
}

// Bounds returns the axis-aligned bounding box of the vertices, or an empty
// box when the mesh has none.
func (m *Mesh) Bounds() math.Box {
	return math.BoxOf(m.vertices)
}
