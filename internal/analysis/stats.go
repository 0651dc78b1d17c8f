package analysis

import (
	gomath "math"

	"github.com/gonum/floats"
	"github.com/pkg/errors"

	"github.com/Faultbox/octoland/pkg/math"
)

// Stats summarizes the relative elevations of a run.
type Stats struct {
	Mean   float64
	StdDev float64
}

// Elevations returns the relative and absolute elevation of every point.
// Relative elevation is the raw world Z. Absolute elevation is the
// distance of Z from the plane's origin Z.
func Elevations(points []math.Vec3, plane math.Plane) (relative, absolute []float64) {
	relative = make([]float64, len(points))
	absolute = make([]float64, len(points))
	datum := plane.OriginZ()
	for k, p := range points {
		relative[k] = p.Z
		absolute[k] = gomath.Abs(p.Z - datum)
	}
	return relative, absolute
}

// Mean returns the arithmetic mean of values.
func Mean(values []float64) (float64, error) {
	if len(values) == 0 {
		return 0, ErrEmptyInput
	}
	return floats.Sum(values) / float64(len(values)), nil
}

// StdDevAround returns sqrt(sum((x - ref)²) / n). A nil ref uses the mean
// of values instead.
func StdDevAround(values []float64, ref *float64) (float64, error) {
	if len(values) == 0 {
		return 0, ErrEmptyInput
	}
	var center float64
	if ref != nil {
		center = *ref
	} else {
		center, _ = Mean(values)
	}
	squares := make([]float64, len(values))
	for i, x := range values {
		d := x - center
		squares[i] = d * d
	}
	return gomath.Sqrt(floats.Sum(squares) / float64(len(values))), nil
}

// Summarize computes the mean of the relative elevations and their
// deviation around the plane's origin Z, not around that mean. Results
// that overflow fail with ErrNonFiniteStats.
func Summarize(relative []float64, plane math.Plane) (Stats, error) {
	mean, err := Mean(relative)
	if err != nil {
		return Stats{}, err
	}
	datum := plane.OriginZ()
	std, err := StdDevAround(relative, &datum)
	if err != nil {
		return Stats{}, err
	}
	if !finite(mean) || !finite(std) {
		return Stats{}, errors.Wrapf(ErrNonFiniteStats, "mean %v, std dev %v", mean, std)
	}
	return Stats{Mean: mean, StdDev: std}, nil
}

func finite(x float64) bool {
	return !gomath.IsNaN(x) && !gomath.IsInf(x, 0)
}
