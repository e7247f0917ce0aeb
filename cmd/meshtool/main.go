// meshtool builds procedural meshes and terrains and writes them as OBJ files.
package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/Faultbox/tinymesh/internal/config"
	"github.com/Faultbox/tinymesh/internal/logger"
)

// app carries state shared by the subcommands.
type app struct {
	flags *config.Flags
	cfg   *config.Config
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "meshtool",
		Short: "Procedural mesh toolkit",
		Long: `meshtool builds primitive meshes, example scenes and heightfield terrains
and writes them as Wavefront OBJ files (optionally zstd compressed).

Settings come from defaults, then meshtool.yaml (or --config), then flags.`,
		Example: `  meshtool scene --all -o out
  meshtool gen torus --radius 2 --thickness 0.25 --div 32
  meshtool terrain --image terrain.png --noise 20 --compress
  meshtool info out/capsule.obj
  meshtool config show`,
		SilenceUsage: true,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			return a.setup()
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			logger.Sync()
		},
	}
	a.flags = config.BindFlags(root.PersistentFlags())

	root.AddCommand(
		a.sceneCmd(),
		a.genCmd(),
		a.terrainCmd(),
		a.infoCmd(),
		a.listCmd(),
		a.configCmd(),
	)
	return root
}

// setup loads the configuration and starts logging.
func (a *app) setup() error {
	cfg, err := config.Load(a.flags)
	if err != nil {
		return err
	}
	a.cfg = cfg

	lc := cfg.Logging
	var fileCfg logger.FileConfig
	if lc.LogFile != "" {
		fileCfg = logger.FileConfig{
			Path:       lc.LogFile,
			MaxSizeMB:  lc.MaxSizeMB,
			MaxBackups: lc.MaxBackups,
			MaxAgeDays: lc.MaxAgeDays,
			Compress:   lc.Compress,
		}
	}
	return logger.InitWithFileConfig(lc.Level, fileCfg, true)
}
