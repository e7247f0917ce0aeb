package terrain

import (
	"context"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/sync/errgroup"

	"github.com/Faultbox/tinymesh/pkg/heightfield"
	"github.com/Faultbox/tinymesh/pkg/math"
	"github.com/Faultbox/tinymesh/pkg/mesh"
)

// Default palette, from the highest band to the lowest.
var (
	Snow  = colorful.Color{R: 1, G: 1, B: 1}
	Rock  = colorful.Color{R: 88.0 / 255, G: 86.0 / 255, B: 84.0 / 255}
	Dirt  = colorful.Color{R: 150.0 / 255, G: 75.0 / 255, B: 0}
	Grass = colorful.Color{R: 0, G: 0.6, B: 0.1}
)

// chunkSize is the number of vertices colored per task.
const chunkSize = 4096

// DefaultBands returns the snow, rock, dirt and grass bands.
func DefaultBands() []Band {
	return []Band{
		{Name: "snow", Upto: 0.3, Color: Snow},
		{Name: "rock", Upto: 0.5, Color: Rock},
		{Name: "dirt", Upto: 0.7, Color: Dirt},
		{Name: "grass", Upto: 1, Color: Grass},
	}
}

// Colorizer assigns a color to every vertex of a terrain mesh by ray
// marching the heightfield.
//
// A vertical ray is cast from a ceiling Margin above the highest sample
// down through each vertex. The hit distance divided by the distance from
// the ceiling to the lowest sample selects the first band whose Upto is not
// exceeded; deeper hits fall into the last band. Vertices whose ray misses
// the surface get Miss.
//
// When Eye is set, vertices hidden from it by the terrain are blended
// towards black by Shadow.
type Colorizer struct {
	Bands  []Band
	Miss   colorful.Color
	Margin float64
	March  heightfield.MarchParams

	Eye    *math.Vec3
	Shadow float64 // 0 keeps the band color, 1 turns it black
	Bias   float64 // Distance short of the vertex where eye rays stop

	Workers int // Parallel tasks; values below 1 mean one
}

// NewColorizer returns a colorizer with the default bands and march
// parameters and no eye.
func NewColorizer() *Colorizer {
	return &Colorizer{
		Bands:   DefaultBands(),
		Margin:  1,
		March:   heightfield.DefaultMarchParams(),
		Shadow:  0.5,
		Bias:    0.5,
		Workers: 1,
	}
}

// Classify returns the color of the band holding depth.
func (c *Colorizer) Classify(depth float64) colorful.Color {
	if len(c.Bands) == 0 {
		return c.Miss
	}
	for _, b := range c.Bands {
		if depth <= b.Upto {
			return b.Color
		}
	}
	return c.Bands[len(c.Bands)-1].Color
}

// Colorize computes one color per vertex of m against hf.
func (c *Colorizer) Colorize(ctx context.Context, m *mesh.Mesh, hf *heightfield.HeightField) (*ColoredMesh, error) {
	lo, hi := hf.Range()
	ceiling := hi + c.Margin
	span := ceiling - lo
	if span <= 0 {
		span = 1
	}
	// The vertical ray crosses the whole height range whatever MaxT says.
	down := c.March
	down.MaxT = max(down.MaxT, span+down.Step)

	colors := make([]colorful.Color, m.Vertexes())

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(c.Workers, 1))
	for start := 0; start < len(colors); start += chunkSize {
		end := min(start+chunkSize, len(colors))
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			for i := start; i < end; i++ {
				colors[i] = c.vertexColor(m.Vertex(i), hf, down, ceiling, span)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return NewColoredMesh(m, colors)
}

func (c *Colorizer) vertexColor(v math.Vec3, hf *heightfield.HeightField, down heightfield.MarchParams, ceiling, span float64) colorful.Color {
	r := math.NewRay(math.V3(v.X, v.Y, ceiling), math.UnitZ.Neg())
	t, hit := hf.CastRay(r, down)
	if !hit {
		return c.Miss
	}

	col := c.Classify(t / span)
	if c.Eye != nil && c.occluded(v, hf) {
		col = col.BlendLab(colorful.Color{}, c.Shadow).Clamped()
	}
	return col
}

// occluded reports whether the terrain hides v from the eye.
func (c *Colorizer) occluded(v math.Vec3, hf *heightfield.HeightField) bool {
	dist := c.Eye.Distance(v)
	if dist <= c.Bias {
		return false
	}

	p := c.March
	p.MaxT = dist - c.Bias
	_, hit := hf.CastRay(math.NewRayThrough(*c.Eye, v), p)
	return hit
}

// Terrain builds the terrain mesh of hf and colors it.
func (c *Colorizer) Terrain(ctx context.Context, hf *heightfield.HeightField) (*ColoredMesh, error) {
	return c.Colorize(ctx, mesh.NewTerrain(hf), hf)
}
