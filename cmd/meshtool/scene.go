package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Faultbox/tinymesh/internal/logger"
	"github.com/Faultbox/tinymesh/internal/scene"
	"github.com/Faultbox/tinymesh/pkg/math"
)

func (a *app) sceneCmd() *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:       "scene [name...]",
		Short:     "Build example scenes",
		Long:      "Build example scenes and write them to the export directory.\n\nScenes: " + strings.Join(scene.Names(), ", "),
		ValidArgs: scene.Names(),
		Args:      cobra.OnlyValidArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if all {
				args = scene.Names()
			}
			if len(args) == 0 {
				return fmt.Errorf("no scene given, use --all or one of: %s", strings.Join(scene.Names(), ", "))
			}
			return a.buildScenes(cmd.Context(), cmd.OutOrStdout(), args)
		},
	}
	cmd.Flags().BoolVar(&all, "all", false, "Build every scene")
	return cmd
}

func (a *app) terrainCmd() *cobra.Command {
	var (
		eye     []float64
		noColor bool
	)

	cmd := &cobra.Command{
		Use:   "terrain",
		Short: "Build a colored heightfield terrain",
		Long: `Build a heightfield terrain from an image (--image), Perlin noise (config
terrain.perlin) or seeded random heights, color it by ray marching and
write it to the export directory.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Flags().Changed("eye") {
				if len(eye) != 3 {
					return fmt.Errorf("--eye needs 3 values, got %d", len(eye))
				}
				a.cfg.Colorize.Eye = &[3]float64{eye[0], eye[1], eye[2]}
			}
			if noColor {
				a.cfg.Colorize.Enabled = false
			}
			return a.buildScenes(cmd.Context(), cmd.OutOrStdout(), []string{"terrain"})
		},
	}
	cmd.Flags().Float64SliceVar(&eye, "eye", nil, "Shade vertices hidden from this point (x,y,z)")
	cmd.Flags().BoolVar(&noColor, "no-color", false, "Skip terrain coloring")
	return cmd
}

func (a *app) buildScenes(ctx context.Context, w io.Writer, names []string) error {
	b := scene.NewBuilder(a.cfg)
	for _, name := range names {
		res, err := b.Build(ctx, name)
		if err != nil {
			return err
		}

		path, err := res.Save(a.cfg.Export.Dir, a.cfg.Export.Compress)
		if err != nil {
			return err
		}
		logger.Debug("saved scene", zap.String("scene", name), zap.String("path", path))

		fmt.Fprintf(w, "%-16s %8d vertices %8d triangles  %s\n",
			name, res.Mesh.Vertexes(), res.Mesh.Triangles(), path)
	}
	return nil
}

// vec3 converts a --center style flag value.
func vec3(flag string, v []float64) (math.Vec3, error) {
	switch len(v) {
	case 0:
		return math.Zero, nil
	case 3:
		return math.V3(v[0], v[1], v[2]), nil
	default:
		return math.Zero, fmt.Errorf("--%s needs 3 values, got %d", flag, len(v))
	}
}
