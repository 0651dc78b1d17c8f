package config

import (
	"flag"
	"strings"
)

// Flags holds command-line overrides. Zero values leave the config alone.
type Flags struct {
	Config  string
	Debug   bool
	U       float64
	V       float64
	Surface string
	Grid    string
	Out     string
	Formats string
	Addr    string
}

// RegisterFlags binds the common flags to fs.
func RegisterFlags(fs *flag.FlagSet) *Flags {
	f := &Flags{}
	fs.StringVar(&f.Config, "config", "", "Path to config file")
	fs.BoolVar(&f.Debug, "debug", false, "Enable debug logging")
	fs.Float64Var(&f.U, "u", 0, "U resolution (parameter units per sample)")
	fs.Float64Var(&f.V, "v", 0, "V resolution (parameter units per sample)")
	fs.StringVar(&f.Surface, "surface", "", "Surface kind: plane, wave, grid, cylinder")
	fs.StringVar(&f.Grid, "grid", "", "Terrain grid file (.otg or .asc); implies -surface grid")
	fs.StringVar(&f.Out, "out", "", "Output directory")
	fs.StringVar(&f.Formats, "formats", "", "Comma-separated output formats")
	fs.StringVar(&f.Addr, "addr", "", "HTTP listen address")
	return f
}

// apply applies CLI flag overrides to the config.
func (f *Flags) apply(cfg *Config) {
	if f.Debug {
		cfg.Logging.Level = "debug"
		cfg.Server.Mode = "debug"
	}
	if f.U != 0 {
		cfg.Analysis.UResolution = f.U
	}
	if f.V != 0 {
		cfg.Analysis.VResolution = f.V
	}
	if f.Surface != "" {
		cfg.Surface.Kind = f.Surface
	}
	if f.Grid != "" {
		cfg.Surface.Kind = "grid"
		cfg.Surface.GridFile = f.Grid
	}
	if f.Out != "" {
		cfg.Output.Dir = f.Out
	}
	if f.Formats != "" {
		var formats []string
		for _, s := range strings.Split(f.Formats, ",") {
			if s = strings.TrimSpace(s); s != "" {
				formats = append(formats, strings.ToLower(s))
			}
		}
		cfg.Output.Formats = formats
	}
	if f.Addr != "" {
		cfg.Server.Addr = f.Addr
	}
}
