// Package surfaces builds analysis surfaces from declarative specs shared
// by the config file, the command line and the HTTP API.
package surfaces

import (
	gomath "math"
	"strings"

	"github.com/pkg/errors"

	"github.com/Faultbox/octoland/pkg/formats"
	"github.com/Faultbox/octoland/pkg/math"
	"github.com/Faultbox/octoland/pkg/surface"
)

// Surface kinds.
const (
	KindPlane    = "plane"
	KindWave     = "wave"
	KindGrid     = "grid"
	KindCylinder = "cylinder"
)

// Errors returned by Build.
var (
	ErrUnknownKind  = errors.New("unknown surface kind")
	ErrMissingGrid  = errors.New("grid surface needs a grid file or inline heights")
	ErrInvalidShape = errors.New("surface dimensions must be positive")
	ErrRefine       = errors.New("grid refine out of range")
)

// MaxRefine bounds the brep spans per grid cell a spec may ask for.
const MaxRefine = 16

// Spec describes a surface. Which fields apply depends on Kind.
type Spec struct {
	Kind string `yaml:"kind" json:"kind"`

	// plane, wave
	Width float64 `yaml:"width" json:"width"`
	Depth float64 `yaml:"depth" json:"depth"`
	Base  float64 `yaml:"base" json:"base"`

	// wave
	Amplitude  float64 `yaml:"amplitude" json:"amplitude"`
	Wavelength float64 `yaml:"wavelength" json:"wavelength"`

	// cylinder
	Radius   float64 `yaml:"radius" json:"radius"`
	Height   float64 `yaml:"height" json:"height"`
	SweepDeg float64 `yaml:"sweep_deg" json:"sweep_deg"`

	// grid: either a file or inline samples
	GridFile string    `yaml:"grid_file" json:"-"`
	Cols     int       `yaml:"cols,omitempty" json:"cols,omitempty"`
	Rows     int       `yaml:"rows,omitempty" json:"rows,omitempty"`
	Cell     float64   `yaml:"cell,omitempty" json:"cell,omitempty"`
	Heights  []float64 `yaml:"heights,omitempty" json:"heights,omitempty"`
	Refine   int       `yaml:"refine" json:"refine"`
}

// Default returns the spec used when nothing else is configured: a 100 by
// 100 wave terrain around the datum.
func Default() Spec {
	return Spec{
		Kind:       KindWave,
		Width:      100,
		Depth:      100,
		Amplitude:  5,
		Wavelength: 40,
		Radius:     10,
		Height:     10,
		SweepDeg:   360,
		Refine:     1,
	}
}

// Build creates the surface described by spec.
func Build(spec Spec) (surface.Surface, error) {
	switch strings.ToLower(spec.Kind) {
	case KindPlane:
		if !(spec.Width > 0) || !(spec.Depth > 0) {
			return nil, errors.Wrapf(ErrInvalidShape, "plane %vx%v", spec.Width, spec.Depth)
		}
		frame := math.WorldXY()
		frame.Origin.Z = spec.Base
		return surface.NewPlane(frame, math.NewInterval(0, spec.Width), math.NewInterval(0, spec.Depth)), nil

	case KindWave:
		if !(spec.Width > 0) || !(spec.Depth > 0) {
			return nil, errors.Wrapf(ErrInvalidShape, "wave %vx%v", spec.Width, spec.Depth)
		}
		return &surface.Wave{
			Width:      spec.Width,
			Depth:      spec.Depth,
			Base:       spec.Base,
			Amplitude:  spec.Amplitude,
			Wavelength: spec.Wavelength,
		}, nil

	case KindCylinder:
		if !(spec.Radius > 0) || !(spec.Height > 0) {
			return nil, errors.Wrapf(ErrInvalidShape, "cylinder r=%v h=%v", spec.Radius, spec.Height)
		}
		c := surface.NewCylinder(math.WorldXY(), spec.Radius, spec.Height)
		if spec.SweepDeg > 0 && spec.SweepDeg < 360 {
			c.Sweep = spec.SweepDeg * gomath.Pi / 180
		}
		return c, nil

	case KindGrid:
		return buildGrid(spec)
	}
	return nil, errors.Wrapf(ErrUnknownKind, "%q", spec.Kind)
}

func buildGrid(spec Spec) (surface.Surface, error) {
	if spec.Refine < 0 || spec.Refine > MaxRefine {
		return nil, errors.Wrapf(ErrRefine, "got %d, want 0..%d", spec.Refine, MaxRefine)
	}

	var h *surface.Heightfield
	var err error
	switch {
	case spec.GridFile != "":
		h, err = FromGridFile(spec.GridFile)
	case len(spec.Heights) > 0:
		cell := spec.Cell
		if cell == 0 {
			cell = 1
		}
		h, err = surface.NewHeightfield(math.Vec2{}, cell, cell, spec.Cols, spec.Rows, spec.Heights)
	default:
		return nil, ErrMissingGrid
	}
	if err != nil {
		return nil, err
	}
	if spec.Refine > 1 {
		h.Refine = spec.Refine
	}
	return h, nil
}

// FromGrid wraps a parsed terrain grid as a heightfield surface.
func FromGrid(g *formats.Grid) (*surface.Heightfield, error) {
	return surface.NewHeightfield(
		math.Vec2{X: g.OriginX, Y: g.OriginY},
		float64(g.CellX), float64(g.CellY),
		int(g.Width), int(g.Height),
		g.Float64s(),
	)
}

// FromGridFile loads a binary or ESRI ASCII grid and wraps it as a
// heightfield surface.
func FromGridFile(path string) (*surface.Heightfield, error) {
	g, err := formats.LoadGridFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "loading grid %s", path)
	}
	return FromGrid(g)
}
