// Package analysis samples a parametric surface on a regular grid and
// reports its elevation relative to a reference plane.
//
// A run is strictly sequential: inputs are validated, the surface is
// sampled into a quad mesh, elevation statistics are computed from the
// samples, and the ground contour is cut from the surface's brep. Any
// failure aborts the run and no partial result is returned.
package analysis

import (
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Faultbox/octoland/internal/logger"
	"github.com/Faultbox/octoland/pkg/math"
	"github.com/Faultbox/octoland/pkg/surface"
)

// Defaults for the analysis inputs.
const (
	DefaultResolution = 1.0
	DefaultMaxSamples = 4_000_000
)

// Analyzer runs analyses with a fixed set of options. The zero value is
// not usable; call New.
type Analyzer struct {
	tolerance  float64
	maxSamples int
	log        *zap.Logger
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithTolerance sets the contour tolerance.
func WithTolerance(tol float64) Option {
	return func(a *Analyzer) {
		if tol > 0 {
			a.tolerance = tol
		}
	}
}

// WithMaxSamples caps the number of grid samples. Zero disables the cap.
func WithMaxSamples(n int) Option {
	return func(a *Analyzer) {
		if n >= 0 {
			a.maxSamples = n
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(a *Analyzer) {
		if l != nil {
			a.log = l
		}
	}
}

// New creates an Analyzer.
func New(opts ...Option) *Analyzer {
	a := &Analyzer{
		tolerance:  ContourTolerance,
		maxSamples: DefaultMaxSamples,
		log:        logger.Nop(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Analyze runs an analysis with default options.
func Analyze(plane math.Plane, s surface.Surface, uRes, vRes float64) (*Result, error) {
	return New().Analyze(plane, s, uRes, vRes)
}

// Analyze validates the inputs, samples s into a mesh, computes elevation
// statistics against plane and extracts the ground contour.
func (a *Analyzer) Analyze(plane math.Plane, s surface.Surface, uRes, vRes float64) (*Result, error) {
	runID := uuid.NewString()
	log := a.log.With(zap.String("run_id", runID))
	start := time.Now()

	if err := Validate(s, uRes, vRes); err != nil {
		log.Warn("invalid input", zap.Error(err))
		return nil, err
	}

	grid, err := SampleGrid(s, uRes, vRes, a.maxSamples)
	if err != nil {
		log.Warn("sample grid rejected", zap.Error(err))
		return nil, err
	}
	if grid.ClampedU || grid.ClampedV {
		log.Warn("resolution coarser than domain, using domain bounds",
			zap.Float64("u_res", uRes),
			zap.Float64("v_res", vRes),
			zap.Bool("clamped_u", grid.ClampedU),
			zap.Bool("clamped_v", grid.ClampedV))
	}

	m, points, err := SurfaceToMesh(s, &grid)
	if err != nil {
		log.Error("mesh construction failed", zap.Error(err))
		return nil, err
	}
	log.Debug("mesh built",
		zap.Int("u_count", grid.UCount),
		zap.Int("v_count", grid.VCount),
		zap.Int("faces", len(m.Faces)),
		zap.Int("culled", grid.Culled))

	relative, absolute := Elevations(points, plane)
	stats, err := Summarize(relative, plane)
	if err != nil {
		log.Error("statistics failed", zap.Error(err))
		return nil, err
	}

	contours, err := ExtractContours(s, plane, a.tolerance)
	if err != nil {
		log.Error("contour extraction failed", zap.Error(err))
		return nil, err
	}

	res := &Result{
		RunID:             runID,
		Plane:             plane,
		Grid:              grid,
		Mesh:              m,
		Points:            points,
		RelativeElevation: relative,
		AbsoluteElevation: absolute,
		Mean:              stats.Mean,
		StdDev:            stats.StdDev,
		Contours:          contours,
	}
	log.Info("analysis complete",
		zap.Int("samples", len(points)),
		zap.Float64("mean", stats.Mean),
		zap.Float64("std_dev", stats.StdDev),
		zap.Int("contours", len(contours)),
		zap.Duration("elapsed", time.Since(start)))
	return res, nil
}
