// Package config handles octoland configuration loading and management.
package config

import (
	"strings"

	"github.com/pkg/errors"

	"github.com/Faultbox/octoland/internal/surfaces"
	"github.com/Faultbox/octoland/pkg/math"
)

// Config holds all octoland settings.
type Config struct {
	Analysis AnalysisConfig `yaml:"analysis"`
	Surface  surfaces.Spec  `yaml:"surface"`
	Output   OutputConfig   `yaml:"output"`
	Server   ServerConfig   `yaml:"server"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// AnalysisConfig holds the sampling and contour settings.
type AnalysisConfig struct {
	UResolution      float64     `yaml:"u_resolution"`
	VResolution      float64     `yaml:"v_resolution"`
	ContourTolerance float64     `yaml:"contour_tolerance"`
	MaxSamples       int         `yaml:"max_samples"` // 0 disables the limit
	Plane            PlaneConfig `yaml:"plane"`
}

// PlaneConfig describes the reference plane by origin and normal.
type PlaneConfig struct {
	Origin [3]float64 `yaml:"origin" json:"origin"`
	Normal [3]float64 `yaml:"normal" json:"normal"`
}

// Plane returns the reference plane.
func (p PlaneConfig) Plane() math.Plane {
	o := math.Vec3{X: p.Origin[0], Y: p.Origin[1], Z: p.Origin[2]}
	n := math.Vec3{X: p.Normal[0], Y: p.Normal[1], Z: p.Normal[2]}
	if n == (math.Vec3{X: 0, Y: 0, Z: 1}) {
		plane := math.WorldXY()
		plane.Origin = o
		return plane
	}
	return math.NewPlane(o, n)
}

// OutputConfig holds export settings.
type OutputConfig struct {
	Dir     string   `yaml:"dir"`
	Name    string   `yaml:"name"`    // file name stem
	Formats []string `yaml:"formats"` // geojson, dxf, stl, png, json, csv
	PNGSize int      `yaml:"png_size"`
}

// ServerConfig holds HTTP API settings.
type ServerConfig struct {
	Addr       string `yaml:"addr"`
	Mode       string `yaml:"mode"` // gin mode: debug, release, test
	MaxBodyMB  int    `yaml:"max_body_mb"`
	MaxSamples int    `yaml:"max_samples"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
	JSON    bool   `yaml:"json"`
}

// Known output formats.
var Formats = []string{"geojson", "dxf", "stl", "png", "json", "csv"}

// ErrInvalidConfig is returned by Validate.
var ErrInvalidConfig = errors.New("invalid config")

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Analysis: AnalysisConfig{
			UResolution:      1,
			VResolution:      1,
			ContourTolerance: 0.01,
			MaxSamples:       4_000_000,
			Plane: PlaneConfig{
				Normal: [3]float64{0, 0, 1},
			},
		},
		Surface: surfaces.Default(),
		Output: OutputConfig{
			Dir:     "out",
			Name:    "octoland",
			Formats: []string{"json"},
			PNGSize: 512,
		},
		Server: ServerConfig{
			Addr:       ":8080",
			Mode:       "release",
			MaxBodyMB:  8,
			MaxSamples: 1_000_000,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Validate checks settings that cannot be fixed up later. Resolutions are
// left to the analysis, which reports them with its own diagnostic.
func (c *Config) Validate() error {
	if !(c.Analysis.ContourTolerance > 0) {
		return errors.Wrapf(ErrInvalidConfig, "contour_tolerance %v", c.Analysis.ContourTolerance)
	}
	if c.Analysis.Plane.Normal == [3]float64{} {
		return errors.Wrap(ErrInvalidConfig, "plane normal is zero")
	}
	for _, f := range c.Output.Formats {
		if !knownFormat(f) {
			return errors.Wrapf(ErrInvalidConfig, "unknown output format %q", f)
		}
	}
	if c.Output.PNGSize < 16 {
		return errors.Wrapf(ErrInvalidConfig, "png_size %d", c.Output.PNGSize)
	}
	switch c.Server.Mode {
	case "debug", "release", "test":
	default:
		return errors.Wrapf(ErrInvalidConfig, "server mode %q", c.Server.Mode)
	}
	return nil
}

func knownFormat(f string) bool {
	for _, k := range Formats {
		if strings.EqualFold(k, f) {
			return true
		}
	}
	return false
}
