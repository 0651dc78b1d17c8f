package surface

import (
	"github.com/Faultbox/octoland/pkg/kernel"
	"github.com/Faultbox/octoland/pkg/math"
)

// Plane is a rectangular patch of a plane. Parameters are plane
// coordinates along the plane's X and Y axes.
type Plane struct {
	Frame  math.Plane
	URange math.Interval
	VRange math.Interval
}

// NewPlane returns a patch of frame covering [u0,u1] x [v0,v1].
func NewPlane(frame math.Plane, u, v math.Interval) *Plane {
	return &Plane{Frame: frame, URange: u, VRange: v}
}

// Domain implements Surface.
func (p *Plane) Domain(dir Direction) math.Interval {
	if dir == V {
		return p.VRange
	}
	return p.URange
}

// PointAt implements Surface.
func (p *Plane) PointAt(u, v float64) math.Vec3 {
	return p.Frame.PointAt(u, v)
}

// IsClosed implements Surface. A plane patch never wraps.
func (p *Plane) IsClosed(Direction) bool {
	return false
}

// ToBrep implements Surface. Two triangles represent the patch exactly.
func (p *Plane) ToBrep() (*kernel.Brep, error) {
	return Tessellate(p, 1, 1)
}
