package scene

import (
	"context"
	"fmt"
	"time"

	"github.com/lucasb-eyer/go-colorful"
	"go.uber.org/zap"

	"github.com/Faultbox/tinymesh/internal/config"
	"github.com/Faultbox/tinymesh/internal/terrain"
	"github.com/Faultbox/tinymesh/pkg/heightfield"
	"github.com/Faultbox/tinymesh/pkg/math"
	"github.com/Faultbox/tinymesh/pkg/mesh"
)

// Source returns the heightfield source described by the terrain config.
func Source(cfg config.TerrainConfig) terrain.Source {
	return terrain.Source{
		Size:   cfg.Size,
		Image:  cfg.Image,
		Noise:  cfg.Noise,
		Seed:   cfg.Seed,
		Perlin: cfg.Perlin,
	}
}

// Colorizer returns the terrain colorizer described by cfg.
func Colorizer(cfg config.ColorizeConfig, workers int) (*terrain.Colorizer, error) {
	c := terrain.NewColorizer()
	c.Margin = cfg.Margin
	c.March = cfg.March
	c.Shadow = cfg.Shadow
	c.Workers = workers

	if cfg.Miss != "" {
		miss, err := colorful.Hex(cfg.Miss)
		if err != nil {
			return nil, fmt.Errorf("miss color: %w", err)
		}
		c.Miss = miss
	}

	if len(cfg.Bands) > 0 {
		c.Bands = make([]terrain.Band, len(cfg.Bands))
		for i, b := range cfg.Bands {
			col, err := colorful.Hex(b.Color)
			if err != nil {
				return nil, fmt.Errorf("band %s color: %w", b.Name, err)
			}
			c.Bands[i] = terrain.Band{Name: b.Name, Upto: b.Upto, Color: col}
		}
	}

	if cfg.Eye != nil {
		eye := math.V3(cfg.Eye[0], cfg.Eye[1], cfg.Eye[2])
		c.Eye = &eye
	}
	return c, nil
}

// Terrain builds the configured heightfield, meshes it, applies the
// optional flatten and colors it.
func (b *Builder) Terrain(ctx context.Context) (*terrain.ColoredMesh, error) {
	src := Source(b.cfg.Terrain)

	start := time.Now()
	hf, err := src.HeightField()
	if err != nil {
		return nil, err
	}
	lo, hi := hf.Range()
	b.log.Debug("built heightfield",
		zap.String("source", src.Kind()),
		zap.Int("size", hf.Size()),
		zap.Float64("min", lo),
		zap.Float64("max", hi),
		zap.Duration("elapsed", time.Since(start)),
	)

	m := mesh.NewTerrain(hf)
	if f := b.cfg.Terrain.Flatten; f != nil {
		n := flatten(m, hf, f)
		b.log.Debug("flattened terrain",
			zap.Int("x", f.X),
			zap.Int("y", f.Y),
			zap.Float64("height", f.Height),
			zap.Int("vertices", n),
		)
	}

	if !b.cfg.Colorize.Enabled {
		return uniform(m, Gray), nil
	}

	c, err := Colorizer(b.cfg.Colorize, b.cfg.Generation.Workers)
	if err != nil {
		return nil, err
	}

	start = time.Now()
	cm, err := c.Colorize(ctx, m, hf)
	if err != nil {
		return nil, err
	}
	b.log.Debug("colored terrain",
		zap.Int("bands", len(c.Bands)),
		zap.Bool("shaded", c.Eye != nil),
		zap.Duration("elapsed", time.Since(start)),
	)
	return cm, nil
}

// flatten levels the mesh and keeps the heightfield in step so that
// coloring sees the same surface.
func flatten(m *mesh.Mesh, hf *heightfield.HeightField, f *config.FlattenConfig) int {
	n := m.Flatten(f.X, f.Y, f.Height, f.Radius)
	if n == 0 {
		return 0
	}
	for i := f.X - f.Radius; i < f.X+f.Radius; i++ {
		for j := f.Y - f.Radius; j < f.Y+f.Radius; j++ {
			hf.Set(i, j, f.Height)
		}
	}
	return n
}
