package analysis

import (
	"github.com/Faultbox/octoland/pkg/kernel"
	"github.com/Faultbox/octoland/pkg/math"
	"github.com/Faultbox/octoland/pkg/surface"
)

// ContourTolerance is the model-space tolerance of the ground contour.
const ContourTolerance = 0.01

// ExtractContours intersects the brep of s with plane. Touch points the
// intersection also reports are dropped.
func ExtractContours(s surface.Surface, plane math.Plane, tol float64) ([]kernel.Polyline, error) {
	brep, err := s.ToBrep()
	if err != nil {
		return nil, fail(ErrContourExtraction, err)
	}
	curves, _, err := kernel.IntersectBrepPlane(brep, plane, tol)
	if err != nil {
		return nil, fail(ErrContourExtraction, err)
	}
	return curves, nil
}
