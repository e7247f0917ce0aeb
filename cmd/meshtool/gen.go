package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Faultbox/tinymesh/internal/logger"
	"github.com/Faultbox/tinymesh/internal/scene"
	"github.com/Faultbox/tinymesh/pkg/formats"
)

func (a *app) genCmd() *cobra.Command {
	var (
		s      scene.Shape
		center []float64
		name   string
	)

	cmd := &cobra.Command{
		Use:       "gen <kind>",
		Short:     "Generate a single primitive",
		Long:      "Generate a single primitive mesh.\n\nKinds: " + strings.Join(scene.Kinds, ", "),
		ValidArgs: scene.Kinds,
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := vec3("center", center)
			if err != nil {
				return err
			}
			s.Kind = args[0]
			s.Center = c
			if name == "" {
				name = s.Kind
			}

			m, err := scene.NewBuilder(a.cfg).Generate(s)
			if err != nil {
				return err
			}

			dir := a.cfg.Export.Dir
			if err := os.MkdirAll(dir, 0755); err != nil {
				return err
			}
			path := filepath.Join(dir, name+".obj")
			if a.cfg.Export.Compress {
				path += formats.CompressedExt
			}
			if err := m.SaveOBJ(path, name); err != nil {
				return err
			}

			logger.Info("generated primitive",
				zap.String("kind", s.Kind),
				zap.Int("vertices", m.Vertexes()),
				zap.Int("triangles", m.Triangles()),
			)
			fmt.Fprintf(cmd.OutOrStdout(), "%-16s %8d vertices %8d triangles  %s\n",
				name, m.Vertexes(), m.Triangles(), path)
			return nil
		},
	}
	cmd.Flags().Float64Var(&s.Radius, "radius", 1, "Radius (half size for boxes)")
	cmd.Flags().Float64Var(&s.Height, "height", 1, "Half height of cylinders and capsules")
	cmd.Flags().Float64Var(&s.Thickness, "thickness", 0.5, "Tube radius of tori")
	cmd.Flags().Float64SliceVar(&center, "center", nil, "Center (x,y,z)")
	cmd.Flags().StringVar(&name, "name", "", "Output name (defaults to the kind)")
	return cmd
}
