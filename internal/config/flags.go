package config

import "github.com/spf13/pflag"

// Flags holds command-line overrides. A flag only overrides the file value
// when it was set explicitly.
type Flags struct {
	fs *pflag.FlagSet

	ConfigPath string
	Debug      bool
	LogFile    string
	Div        int
	Workers    int
	Smooth     bool
	Size       int
	Seed       uint64
	Image      string
	Noise      float64
	OutDir     string
	Compress   bool
}

// BindFlags registers the configuration flags on fs.
func BindFlags(fs *pflag.FlagSet) *Flags {
	f := &Flags{fs: fs}
	fs.StringVarP(&f.ConfigPath, "config", "c", "", "Path to config file")
	fs.BoolVar(&f.Debug, "debug", false, "Enable debug logging")
	fs.StringVar(&f.LogFile, "log-file", "", "Also log to this file, with rotation")
	fs.IntVar(&f.Div, "div", 0, "Primitive subdivisions")
	fs.IntVar(&f.Workers, "workers", 0, "Parallel builders")
	fs.BoolVar(&f.Smooth, "smooth", false, "Recompute smooth normals")
	fs.IntVar(&f.Size, "size", 0, "Terrain grid size")
	fs.Uint64Var(&f.Seed, "seed", 0, "Random terrain seed")
	fs.StringVar(&f.Image, "image", "", "Terrain height image")
	fs.Float64Var(&f.Noise, "noise", 0, "Terrain height of a white pixel")
	fs.StringVarP(&f.OutDir, "out", "o", "", "Output directory")
	fs.BoolVar(&f.Compress, "compress", false, "Write zstd compressed meshes")
	return f
}

// configPath returns the explicit config path if provided via --config.
func (f *Flags) configPath() string {
	if f == nil {
		return ""
	}
	return f.ConfigPath
}

func (f *Flags) changed(name string) bool {
	return f != nil && f.fs != nil && f.fs.Changed(name)
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config, f *Flags) {
	if f == nil {
		return
	}
	if f.Debug {
		cfg.Logging.Level = "debug"
	}
	if f.changed("log-file") {
		cfg.Logging.LogFile = f.LogFile
	}
	if f.changed("div") {
		cfg.Generation.Div = f.Div
	}
	if f.changed("workers") {
		cfg.Generation.Workers = f.Workers
	}
	if f.changed("smooth") {
		cfg.Generation.Smooth = f.Smooth
	}
	if f.changed("size") {
		cfg.Terrain.Size = f.Size
	}
	if f.changed("seed") {
		cfg.Terrain.Seed = f.Seed
	}
	if f.changed("image") {
		cfg.Terrain.Image = f.Image
	}
	if f.changed("noise") {
		cfg.Terrain.Noise = f.Noise
	}
	if f.changed("out") {
		cfg.Export.Dir = f.OutDir
	}
	if f.changed("compress") {
		cfg.Export.Compress = f.Compress
	}
}
