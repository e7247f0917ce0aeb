package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/Faultbox/tinymesh/internal/logger"
	"github.com/Faultbox/tinymesh/internal/scene"
	"github.com/Faultbox/tinymesh/pkg/mesh"
)

func (a *app) infoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info <file.obj>...",
		Short: "Show mesh statistics",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			for _, path := range args {
				m, err := mesh.Load(path)
				if errors.Is(err, mesh.ErrResourceUnavailable) {
					return err
				}
				for _, e := range multierr.Errors(err) {
					logger.Warn("skipped record", zap.String("file", path), zap.Error(e))
				}

				b := m.Bounds()
				fmt.Fprintf(w, "File:      %s\n", path)
				fmt.Fprintf(w, "Vertices:  %d\n", m.Vertexes())
				fmt.Fprintf(w, "Normals:   %d\n", m.NormalCount())
				fmt.Fprintf(w, "Triangles: %d\n", m.Triangles())
				if !b.IsEmpty() {
					size := b.Size()
					fmt.Fprintf(w, "Bounds:    (%.3f, %.3f, %.3f) - (%.3f, %.3f, %.3f)\n",
						b.Min.X, b.Min.Y, b.Min.Z, b.Max.X, b.Max.Y, b.Max.Z)
					fmt.Fprintf(w, "Size:      %.3f x %.3f x %.3f\n", size.X, size.Y, size.Z)
				}
				if n := len(multierr.Errors(err)); n > 0 {
					fmt.Fprintf(w, "Skipped:   %d malformed records\n", n)
				}
				fmt.Fprintln(w)
			}
			return nil
		},
	}
}

func (a *app) listCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List scenes and primitive kinds",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			w := cmd.OutOrStdout()
			fmt.Fprintln(w, "Scenes:")
			for _, name := range scene.Names() {
				fmt.Fprintf(w, "  %s\n", name)
			}
			fmt.Fprintln(w, "Primitives:")
			for _, kind := range scene.Kinds {
				fmt.Fprintf(w, "  %s\n", kind)
			}
			return nil
		},
	}
}
