package mesh

import (
	"fmt"

	"go.uber.org/multierr"

	"github.com/Faultbox/tinymesh/pkg/formats"
	"github.com/Faultbox/tinymesh/pkg/math"
)

// Load reads a mesh from an OBJ file (optionally .zst compressed).
//
// When the file cannot be opened the result is an empty mesh and an error
// wrapping ErrResourceUnavailable. Malformed lines are skipped: the mesh
// built from the remaining records is returned together with an error
// wrapping formats.ErrMalformedRecord.
func Load(path string) (*Mesh, error) {
	obj, err := formats.ParseOBJFile(path)
	if obj == nil {
		return New(), fmt.Errorf("%w: %w", ErrResourceUnavailable, err)
	}

	m, buildErr := FromOBJ(obj)
	return m, multierr.Append(err, buildErr)
}

// FromOBJ builds a mesh from parsed OBJ records. Faces without normal
// indices are flat shaded with one +Z normal appended after the file's own.
func FromOBJ(obj *formats.OBJ) (*Mesh, error) {
	m := New()
	m.Grow(len(obj.Vertices), len(obj.Normals)+1, len(obj.Faces))
	m.vertices = append(m.vertices, obj.Vertices...)
	m.normals = append(m.normals, obj.Normals...)

	up := -1
	for _, f := range obj.Faces {
		if f.HasNormals {
			m.AddTriangleHandle(Triangle{V: f.V, N: f.N})
			continue
		}
		if up < 0 {
			up = m.AddNormal(math.UnitZ)
		}
		m.AddTriangle(f.V[0], f.V[1], f.V[2], up)
	}

	if err := m.Validate(); err != nil {
		return New(), err
	}
	return m, nil
}

// OBJ converts the mesh to OBJ records.
func (m *Mesh) OBJ(name string) *formats.OBJ {
	obj := &formats.OBJ{
		Name:     name,
		Vertices: m.Vertices(),
		Normals:  m.Normals(),
		Faces:    make([]formats.OBJFace, 0, m.Triangles()),
	}
	for i := range m.Triangles() {
		t := m.Triangle(i)
		obj.Faces = append(obj.Faces, formats.OBJFace{V: t.V, N: t.N, HasNormals: true})
	}
	return obj
}

// SaveOBJ writes the mesh to path as an OBJ group called name. Paths
// ending in .zst are compressed.
func (m *Mesh) SaveOBJ(path, name string) error {
	if err := formats.WriteOBJFile(path, m.OBJ(name)); err != nil {
		return fmt.Errorf("%w: %w", ErrResourceUnavailable, err)
	}
	return nil
}
