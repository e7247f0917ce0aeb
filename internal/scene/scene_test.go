package scene

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/tinymesh/internal/config"
	"github.com/Faultbox/tinymesh/internal/terrain"
	"github.com/Faultbox/tinymesh/pkg/math"
	"github.com/Faultbox/tinymesh/pkg/mesh"
	"github.com/Faultbox/tinymesh/pkg/shapes"
)

func testConfig() *config.Config {
	cfg := config.Default()
	cfg.Generation.Div = 8
	cfg.Generation.Workers = 4
	cfg.Terrain.Size = 16
	return cfg
}

func TestBuild_AllScenes(t *testing.T) {
	cfg := testConfig()
	for _, name := range Names() {
		t.Run(name, func(t *testing.T) {
			res, err := Build(context.Background(), name, cfg)
			require.NoError(t, err)

			assert.Equal(t, name, res.Name)
			assert.NoError(t, res.Mesh.Validate())
			assert.Positive(t, res.Mesh.Triangles())
			assert.Len(t, res.Colors, res.Mesh.Vertexes())
		})
	}
}

func TestBuild_Counts(t *testing.T) {
	cfg := testConfig()

	tests := []struct {
		name      string
		vertices  int
		triangles int
	}{
		{"box", 8, 12},
		{"disk", 10, 9},
		{"sphere", 66, 128},
		{"cylinder", 18, 32},
		{"torus", 100, 200},
		{"capsule", 130, 256},
		{"capsule-merged", 18 + 2*66, 32 + 2*128},
		{"scene", 18 + 2*66 + 64 + 2*10 + 2*8, 32 + 2*128 + 128 + 2*9 + 2*12},
		{"terrain", 17 * 17, 2 * 16 * 16},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Build(context.Background(), tt.name, cfg)
			require.NoError(t, err)
			assert.Equal(t, tt.vertices, res.Mesh.Vertexes())
			assert.Equal(t, tt.triangles, res.Mesh.Triangles())
		})
	}
}

func TestBuild_SceneMergeOrder(t *testing.T) {
	res, err := Build(context.Background(), "scene", testConfig())
	require.NoError(t, err)

	// The cylinder comes first, the upper box last.
	cyl := mesh.NewCylinder(shapes.NewCylinder(1, 1.5), 8)
	for i := range cyl.Vertexes() {
		assert.Equal(t, cyl.Vertex(i), res.Mesh.Vertex(i))
	}

	last := res.Mesh.Vertex(res.Mesh.Vertexes() - 1)
	assert.True(t, last.ApproxEqual(math.V3(-0.8, 1.2, 0.2), 1e-12), "last vertex %v", last)
	for _, c := range res.Colors {
		assert.Equal(t, Sky, c)
	}
}

func TestBuild_Deterministic(t *testing.T) {
	single := testConfig()
	single.Generation.Workers = 1

	a, err := Build(context.Background(), "scene", single)
	require.NoError(t, err)
	b, err := Build(context.Background(), "scene", testConfig())
	require.NoError(t, err)

	assert.Equal(t, a.Mesh.Vertices(), b.Mesh.Vertices())
	assert.Equal(t, a.Mesh.VertexIndexes(), b.Mesh.VertexIndexes())
	assert.Equal(t, a.Mesh.NormalIndexes(), b.Mesh.NormalIndexes())
}

func TestBuild_Unknown(t *testing.T) {
	_, err := Build(context.Background(), "teapot", testConfig())
	assert.ErrorIs(t, err, ErrUnknownScene)
}

func TestBuild_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Build(ctx, "scene", testConfig())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestBuild_Smooth(t *testing.T) {
	cfg := testConfig()
	cfg.Generation.Smooth = true

	res, err := Build(context.Background(), "cylinder", cfg)
	require.NoError(t, err)
	assert.Equal(t, res.Mesh.Vertexes(), res.Mesh.NormalCount())
	assert.Equal(t, res.Mesh.VertexIndexes(), res.Mesh.NormalIndexes())
}

func TestBuild_TerrainUncolored(t *testing.T) {
	cfg := testConfig()
	cfg.Colorize.Enabled = false

	res, err := Build(context.Background(), "terrain", cfg)
	require.NoError(t, err)
	for _, c := range res.Colors {
		assert.Equal(t, Gray, c)
	}
}

func TestBuild_TerrainFlatten(t *testing.T) {
	cfg := testConfig()
	cfg.Terrain.Flatten = &config.FlattenConfig{X: 8, Y: 8, Height: 3, Radius: 2}

	res, err := Build(context.Background(), "terrain", cfg)
	require.NoError(t, err)

	for i := 6; i < 10; i++ {
		for j := 6; j < 10; j++ {
			assert.Equal(t, 3.0, res.Mesh.Vertex(i*17+j).Z, "vertex (%d, %d)", i, j)
		}
	}
	// The flattened patch is colored as one band.
	want := res.Colors[8*17+8]
	for i := 6; i < 10; i++ {
		for j := 6; j < 10; j++ {
			assert.Equal(t, want, res.Colors[i*17+j])
		}
	}
}

func TestResult_Save(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	res, err := Build(context.Background(), "box", testConfig())
	require.NoError(t, err)

	for _, compress := range []bool{false, true} {
		path, err := res.Save(dir, compress)
		require.NoError(t, err)
		assert.Equal(t, res.Path(dir, compress), path)

		loaded, err := mesh.Load(path)
		require.NoError(t, err)
		assert.Equal(t, res.Mesh.Vertices(), loaded.Vertices())
		assert.Equal(t, res.Mesh.VertexIndexes(), loaded.VertexIndexes())
	}

	assert.FileExists(t, filepath.Join(dir, "box.obj"))
	assert.FileExists(t, filepath.Join(dir, "box.obj.zst"))
}

func TestResult_SaveUnwritable(t *testing.T) {
	file := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(file, nil, 0644))

	res, err := Build(context.Background(), "box", testConfig())
	require.NoError(t, err)

	_, err = res.Save(filepath.Join(file, "sub"), false)
	assert.ErrorIs(t, err, mesh.ErrResourceUnavailable)
}

func TestGenerate(t *testing.T) {
	b := NewBuilder(testConfig())

	tests := []struct {
		shape    Shape
		vertices int
	}{
		{Shape{Kind: "box", Radius: 1, Center: math.V3(2, 0, 0)}, 8},
		{Shape{Kind: "disk", Radius: 2}, 10},
		{Shape{Kind: "sphere", Radius: 1}, 66},
		{Shape{Kind: "cylinder", Radius: 1, Height: 2}, 18},
		{Shape{Kind: "torus", Radius: 2, Thickness: 0.5}, 100},
		{Shape{Kind: "capsule", Radius: 1, Height: 0}, 130},
	}
	for _, tt := range tests {
		t.Run(tt.shape.Kind, func(t *testing.T) {
			m, err := b.Generate(tt.shape)
			require.NoError(t, err)
			assert.Equal(t, tt.vertices, m.Vertexes())
			assert.True(t, m.Bounds().Center().ApproxEqual(tt.shape.Center, 1e-9) || tt.shape.Kind == "disk")
		})
	}
}

func TestGenerate_Invalid(t *testing.T) {
	b := NewBuilder(testConfig())

	tests := []Shape{
		{Kind: "box", Radius: 0},
		{Kind: "sphere", Radius: -1},
		{Kind: "cylinder", Radius: 1, Height: 0},
		{Kind: "torus", Radius: 1},
		{Kind: "capsule", Radius: 1, Height: -1},
		{Kind: "cone", Radius: 1},
	}
	for _, s := range tests {
		_, err := b.Generate(s)
		assert.ErrorIs(t, err, shapes.ErrInvalidParameter, "%+v", s)
	}
}

func TestColorizer(t *testing.T) {
	cfg := config.Default().Colorize
	eye := [3]float64{-59, -112, 52}
	cfg.Eye = &eye

	c, err := Colorizer(cfg, 3)
	require.NoError(t, err)
	assert.Len(t, c.Bands, 4)
	assert.Equal(t, "snow", c.Bands[0].Name)
	assert.Equal(t, 3, c.Workers)
	require.NotNil(t, c.Eye)
	assert.Equal(t, math.V3(-59, -112, 52), *c.Eye)

	// Default hex values match the built-in palette.
	for i, b := range terrain.DefaultBands() {
		assert.InDelta(t, b.Color.R, c.Bands[i].Color.R, 0.01, b.Name)
		assert.InDelta(t, b.Color.G, c.Bands[i].Color.G, 0.01, b.Name)
		assert.InDelta(t, b.Color.B, c.Bands[i].Color.B, 0.01, b.Name)
	}

	cfg.Bands[2].Color = "brown"
	_, err = Colorizer(cfg, 1)
	assert.Error(t, err)
}
