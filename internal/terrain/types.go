// Package terrain turns heightfields into colored terrain meshes.
package terrain

import (
	"errors"
	"fmt"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/Faultbox/tinymesh/pkg/formats"
	"github.com/Faultbox/tinymesh/pkg/mesh"
)

// ErrColorCount is returned when a color array does not match the vertices.
var ErrColorCount = errors.New("color count does not match vertex count")

// Band colors every vertex whose normalized depth below the terrain
// ceiling is at most Upto.
type Band struct {
	Name  string
	Upto  float64
	Color colorful.Color
}

// ColoredMesh is a mesh with one color per vertex.
type ColoredMesh struct {
	Mesh   *mesh.Mesh
	Colors []colorful.Color
}

// NewColoredMesh pairs m with colors, which must hold one entry per vertex.
func NewColoredMesh(m *mesh.Mesh, colors []colorful.Color) (*ColoredMesh, error) {
	if len(colors) != m.Vertexes() {
		return nil, fmt.Errorf("%w: %d colors for %d vertices", ErrColorCount, len(colors), m.Vertexes())
	}
	return &ColoredMesh{Mesh: m, Colors: colors}, nil
}

// OBJ converts the colored mesh to OBJ records carrying vertex colors.
func (c *ColoredMesh) OBJ(name string) *formats.OBJ {
	obj := c.Mesh.OBJ(name)
	obj.Colors = make([][3]float64, len(c.Colors))
	for i, col := range c.Colors {
		col = col.Clamped()
		obj.Colors[i] = [3]float64{col.R, col.G, col.B}
	}
	return obj
}

// SaveOBJ writes the colored mesh to path. Paths ending in .zst are compressed.
func (c *ColoredMesh) SaveOBJ(path, name string) error {
	if err := formats.WriteOBJFile(path, c.OBJ(name)); err != nil {
		return fmt.Errorf("%w: %w", mesh.ErrResourceUnavailable, err)
	}
	return nil
}
