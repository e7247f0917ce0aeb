package mesh

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/tinymesh/pkg/formats"
	"github.com/Faultbox/tinymesh/pkg/math"
	"github.com/Faultbox/tinymesh/pkg/shapes"
)

func assertSameMesh(t *testing.T, want, got *Mesh) {
	t.Helper()
	require.Equal(t, want.Vertexes(), got.Vertexes())
	require.Equal(t, want.NormalCount(), got.NormalCount())
	for i := range want.Vertexes() {
		assert.True(t, want.Vertex(i).ApproxEqual(got.Vertex(i), eps), "vertex %d", i)
	}
	for i := range want.NormalCount() {
		assert.True(t, want.Normal(i).ApproxEqual(got.Normal(i), eps), "normal %d", i)
	}
	assert.Equal(t, want.VertexIndexes(), got.VertexIndexes())
	assert.Equal(t, want.NormalIndexes(), got.NormalIndexes())
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	meshes := map[string]*Mesh{
		"box":      NewBox(shapes.NewCube(1)),
		"torus":    NewTorus(shapes.NewTorus(1, 0.5), 10, 10),
		"cylinder": NewCylinder(shapes.NewCylinder(1, 3), 12),
	}

	for name, m := range meshes {
		for _, ext := range []string{".obj", ".obj.zst"} {
			t.Run(name+ext, func(t *testing.T) {
				path := filepath.Join(dir, name+ext)
				require.NoError(t, m.SaveOBJ(path, name))

				got, err := Load(path)
				require.NoError(t, err)
				assertSameMesh(t, m, got)
			})
		}
	}
}

func TestLoad_Missing(t *testing.T) {
	m, err := Load(filepath.Join(t.TempDir(), "missing.obj"))
	assert.ErrorIs(t, err, ErrResourceUnavailable)
	assert.ErrorIs(t, err, os.ErrNotExist)
	require.NotNil(t, m)
	assert.Zero(t, m.Vertexes())
	assert.Zero(t, m.Triangles())
}

func TestLoad_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.obj")
	src := "v 0 0 0\nv 1 0 0\nv 0 1 0\nv 1 1 zz\nf 1 2 3\nf 1 2 4\n"
	require.NoError(t, os.WriteFile(path, []byte(src), 0o644))

	m, err := Load(path)
	assert.ErrorIs(t, err, formats.ErrMalformedRecord)
	assert.NotErrorIs(t, err, ErrResourceUnavailable)
	assert.Equal(t, 3, m.Vertexes())
	assert.Equal(t, 1, m.Triangles())
}

func TestFromOBJ_NoNormals(t *testing.T) {
	obj := &formats.OBJ{
		Vertices: []math.Vec3{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}},
		Faces:    []formats.OBJFace{{V: [3]int{0, 1, 2}}},
	}

	m, err := FromOBJ(obj)
	require.NoError(t, err)
	assert.Equal(t, 1, m.NormalCount())
	assert.Equal(t, math.UnitZ, m.Normal(0))
	assert.Equal(t, Triangle{V: [3]int{0, 1, 2}, N: [3]int{0, 0, 0}}, m.Triangle(0))
}

func TestFromOBJ_MixedNormals(t *testing.T) {
	obj := &formats.OBJ{
		Vertices: []math.Vec3{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}, {1, 1, 0}},
		Normals:  []math.Vec3{math.UnitX, math.UnitY},
		Faces: []formats.OBJFace{
			{V: [3]int{0, 1, 2}, N: [3]int{0, 0, 1}, HasNormals: true},
			{V: [3]int{1, 3, 2}},
			{V: [3]int{0, 3, 1}},
		},
	}

	m, err := FromOBJ(obj)
	require.NoError(t, err)
	require.Equal(t, 3, m.NormalCount())
	assert.Equal(t, Triangle{V: [3]int{0, 1, 2}, N: [3]int{0, 0, 1}}, m.Triangle(0))
	for i := 1; i < m.Triangles(); i++ {
		for _, n := range m.Triangle(i).N {
			assert.Equal(t, math.UnitZ, m.Normal(n), "triangle %d", i)
		}
	}
	assert.Equal(t, m.Triangle(1).N, m.Triangle(2).N)
}

func TestFromOBJ_InvalidIndex(t *testing.T) {
	obj := &formats.OBJ{
		Vertices: []math.Vec3{{0, 0, 0}},
		Normals:  []math.Vec3{math.UnitZ},
		Faces:    []formats.OBJFace{{V: [3]int{0, 0, 4}, HasNormals: true}},
	}

	m, err := FromOBJ(obj)
	assert.ErrorIs(t, err, ErrInvariantViolation)
	assert.Zero(t, m.Vertexes())
}

func TestSaveOBJ_Unwritable(t *testing.T) {
	m := NewBox(shapes.NewCube(1))
	err := m.SaveOBJ(filepath.Join(t.TempDir(), "missing", "box.obj"), "box")
	assert.ErrorIs(t, err, ErrResourceUnavailable)
}

func TestOBJ(t *testing.T) {
	m := NewBox(shapes.NewCube(1))
	obj := m.OBJ("box")

	assert.Equal(t, "box", obj.Name)
	assert.Len(t, obj.Vertices, 8)
	assert.Len(t, obj.Normals, 6)
	require.Len(t, obj.Faces, 12)
	assert.True(t, obj.Faces[0].HasNormals)
	assert.Equal(t, m.Triangle(3).V, obj.Faces[3].V)
}
