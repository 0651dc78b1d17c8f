package analysis

import (
	"github.com/Faultbox/octoland/pkg/kernel"
	"github.com/Faultbox/octoland/pkg/math"
	"github.com/Faultbox/octoland/pkg/mesh"
)

// Result holds every output of a successful run.
type Result struct {
	RunID string
	Plane math.Plane
	Grid  Grid

	Mesh              *mesh.Mesh
	Points            []math.Vec3
	RelativeElevation []float64
	AbsoluteElevation []float64
	Mean              float64
	StdDev            float64
	Contours          []kernel.Polyline
}

// Output is one named result value.
type Output struct {
	Name  string
	Value any
}

// Output names in the order Outputs reports them.
const (
	OutputMesh     = "Mesh"
	OutputPoints   = "Points"
	OutputRelative = "Relative Elevation"
	OutputAbsolute = "Absolute Elevation"
	OutputMean     = "Mean"
	OutputStdDev   = "Standard Deviation"
	OutputContours = "Contour"
)

// Outputs returns the result values in their fixed order.
func (r *Result) Outputs() []Output {
	return []Output{
		{OutputMesh, r.Mesh},
		{OutputPoints, r.Points},
		{OutputRelative, r.RelativeElevation},
		{OutputAbsolute, r.AbsoluteElevation},
		{OutputMean, r.Mean},
		{OutputStdDev, r.StdDev},
		{OutputContours, r.Contours},
	}
}

// ContourLength returns the summed length of all contour curves.
func (r *Result) ContourLength() float64 {
	var total float64
	for _, c := range r.Contours {
		total += c.Length()
	}
	return total
}

// ElevationRange returns the lowest and highest relative elevation.
func (r *Result) ElevationRange() (lo, hi float64) {
	if len(r.RelativeElevation) == 0 {
		return 0, 0
	}
	lo, hi = r.RelativeElevation[0], r.RelativeElevation[0]
	for _, z := range r.RelativeElevation[1:] {
		lo = min(lo, z)
		hi = max(hi, z)
	}
	return lo, hi
}
