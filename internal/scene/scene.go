// Package scene builds the named example meshes of meshtool.
package scene

import (
	"context"
	"errors"
	"fmt"
	gomath "math"
	"os"
	"path/filepath"
	"time"

	"github.com/lucasb-eyer/go-colorful"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Faultbox/tinymesh/internal/config"
	"github.com/Faultbox/tinymesh/internal/logger"
	"github.com/Faultbox/tinymesh/internal/terrain"
	"github.com/Faultbox/tinymesh/pkg/formats"
	"github.com/Faultbox/tinymesh/pkg/math"
	"github.com/Faultbox/tinymesh/pkg/mesh"
	"github.com/Faultbox/tinymesh/pkg/shapes"
)

// ErrUnknownScene is returned by Build for names not in Names.
var ErrUnknownScene = errors.New("unknown scene")

// Scene colors.
var (
	Gray = colorful.Color{R: 0.8, G: 0.8, B: 0.8}
	Sky  = colorful.Color{R: 0.1, G: 0.8, B: 1.0}
)

var names = []string{
	"box",
	"disk",
	"sphere",
	"cylinder",
	"torus",
	"capsule",
	"capsule-merged",
	"terrain",
	"scene",
}

// Names returns the built-in scene names.
func Names() []string {
	return append([]string(nil), names...)
}

// Result is a built scene.
type Result struct {
	Name string
	*terrain.ColoredMesh
	Elapsed time.Duration
}

// Path returns the file a result is saved to under dir.
func (r *Result) Path(dir string, compress bool) string {
	name := r.Name + ".obj"
	if compress {
		name += formats.CompressedExt
	}
	return filepath.Join(dir, name)
}

// Save writes the result under dir and returns the file path.
func (r *Result) Save(dir string, compress bool) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("%w: %w", mesh.ErrResourceUnavailable, err)
	}
	path := r.Path(dir, compress)
	if err := r.SaveOBJ(path, r.Name); err != nil {
		return "", err
	}
	return path, nil
}

// Builder builds scenes from a configuration.
type Builder struct {
	cfg *config.Config
	log *zap.Logger
}

// NewBuilder creates a builder using cfg.
func NewBuilder(cfg *config.Config) *Builder {
	return &Builder{cfg: cfg, log: logger.Named("scene")}
}

// Build builds the named scene with cfg.
func Build(ctx context.Context, name string, cfg *config.Config) (*Result, error) {
	return NewBuilder(cfg).Build(ctx, name)
}

// Build builds the named scene.
func (b *Builder) Build(ctx context.Context, name string) (*Result, error) {
	start := time.Now()
	gen := b.cfg.Generation

	var (
		cm  *terrain.ColoredMesh
		err error
	)
	switch name {
	case "box":
		cm = uniform(mesh.NewBox(shapes.NewCube(1)), Gray)
	case "disk":
		cm = uniform(mesh.NewDisk(shapes.NewDisk(math.V3(0, 1, 0), 2), gen.Div), Gray)
	case "sphere":
		cm = uniform(mesh.NewSphere(shapes.NewSphere(math.Zero, 2), gen.Div), Gray)
	case "cylinder":
		cm = uniform(mesh.NewCylinder(shapes.NewCylinder(1, 3), gen.Div), Gray)
	case "torus":
		m := mesh.NewTorus(shapes.NewTorus(1, 0.5), gen.TorusDivR, gen.TorusDivT)
		cm, err = terrain.NewColoredMesh(m, torusColors(m.Vertexes()))
	case "capsule":
		cm = uniform(mesh.NewCapsule(shapes.NewCapsule(1, 1.5), gen.Div), Gray)
	case "capsule-merged":
		var m *mesh.Mesh
		if m, err = b.assemble(ctx, capsuleParts(gen.Div)); err == nil {
			cm = uniform(m, Gray)
		}
	case "scene":
		var m *mesh.Mesh
		if m, err = b.assemble(ctx, sceneParts(gen.Div)); err == nil {
			cm = uniform(m, Sky)
		}
	case "terrain":
		cm, err = b.Terrain(ctx)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownScene, name)
	}
	if err != nil {
		return nil, fmt.Errorf("building %s: %w", name, err)
	}

	if gen.Smooth {
		cm.Mesh.SmoothNormals()
	}

	res := &Result{Name: name, ColoredMesh: cm, Elapsed: time.Since(start)}
	b.log.Info("built scene",
		zap.String("scene", name),
		zap.Int("vertices", cm.Mesh.Vertexes()),
		zap.Int("triangles", cm.Mesh.Triangles()),
		zap.Duration("elapsed", res.Elapsed),
	)
	return res, nil
}

// part is one independently built piece of a composite scene.
type part struct {
	name  string
	build func() *mesh.Mesh
}

// assemble builds parts concurrently, each into its own mesh, then merges
// them in order.
func (b *Builder) assemble(ctx context.Context, parts []part) (*mesh.Mesh, error) {
	meshes := make([]*mesh.Mesh, len(parts))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(b.cfg.Generation.Workers, 1))
	for i, p := range parts {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			start := time.Now()
			meshes[i] = p.build()
			b.log.Debug("built part",
				zap.String("part", p.name),
				zap.Int("triangles", meshes[i].Triangles()),
				zap.Duration("elapsed", time.Since(start)),
			)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := mesh.New()
	for _, m := range meshes {
		out.Merge(m)
	}
	return out, nil
}

// capsuleParts is a cylinder closed by two translated spheres.
func capsuleParts(div int) []part {
	return []part{
		{"cylinder", func() *mesh.Mesh {
			return mesh.NewCylinder(shapes.NewCylinder(1, 1.5), div)
		}},
		{"top sphere", func() *mesh.Mesh {
			m := mesh.NewSphere(shapes.NewSphere(math.Zero, 1), div)
			m.Translate(math.V3(0, 1.5, 0))
			return m
		}},
		{"bottom sphere", func() *mesh.Mesh {
			m := mesh.NewSphere(shapes.NewSphere(math.Zero, 1), div)
			m.Translate(math.V3(0, -1.5, 0))
			return m
		}},
	}
}

// sceneParts is the merged capsule with a torus around it, a disk above and
// below and two small boxes.
func sceneParts(div int) []part {
	parts := capsuleParts(div)
	return append(parts,
		part{"torus", func() *mesh.Mesh {
			m := mesh.NewTorus(shapes.NewTorus(1.5, 0.5), div, div)
			m.RotateX(90)
			return m
		}},
		part{"top disk", func() *mesh.Mesh {
			m := mesh.NewDisk(shapes.NewDisk(math.V3(0, 2.78, 0), 2), div)
			m.Scale(0.9)
			return m
		}},
		part{"bottom disk", func() *mesh.Mesh {
			m := mesh.NewDisk(shapes.NewDisk(math.V3(0, -2.78, 0), 2), div)
			m.Scale(0.9)
			return m
		}},
		part{"lower box", func() *mesh.Mesh {
			m := mesh.NewBox(shapes.NewCube(0.2))
			m.Translate(math.V3(-1, -1, 0))
			return m
		}},
		part{"upper box", func() *mesh.Mesh {
			m := mesh.NewBox(shapes.NewCube(0.2))
			m.Translate(math.V3(-1, 1, 0))
			return m
		}},
	)
}

// uniform paints every vertex of m with c.
func uniform(m *mesh.Mesh, c colorful.Color) *terrain.ColoredMesh {
	colors := make([]colorful.Color, m.Vertexes())
	for i := range colors {
		colors[i] = c
	}
	cm, _ := terrain.NewColoredMesh(m, colors)
	return cm
}

// torusColors is a red ramp with pseudo-random green stripes.
func torusColors(n int) []colorful.Color {
	colors := make([]colorful.Color, n)
	for i := range colors {
		_, g := gomath.Modf(float64(i) * 39.478378)
		colors[i] = colorful.Color{R: float64(i) / 6, G: g, B: 0}.Clamped()
	}
	return colors
}
