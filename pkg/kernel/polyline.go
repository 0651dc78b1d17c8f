package kernel

import (
	"github.com/Faultbox/octoland/pkg/math"
)

// Polyline is a chain of points. A closed polyline does not repeat its
// first point at the end.
type Polyline struct {
	Points []math.Vec3
	Closed bool
}

// Length returns the summed segment length, including the closing segment.
func (p Polyline) Length() float64 {
	var total float64
	for i := 1; i < len(p.Points); i++ {
		total += p.Points[i].Distance(p.Points[i-1])
	}
	if p.Closed && len(p.Points) > 2 {
		total += p.Points[len(p.Points)-1].Distance(p.Points[0])
	}
	return total
}

// Vertices returns the points with the first point appended again when
// the polyline is closed.
func (p Polyline) Vertices() []math.Vec3 {
	if !p.Closed || len(p.Points) == 0 {
		return p.Points
	}
	out := make([]math.Vec3, 0, len(p.Points)+1)
	out = append(out, p.Points...)
	return append(out, p.Points[0])
}
