package surface

import (
	gomath "math"

	"github.com/Faultbox/octoland/pkg/kernel"
	"github.com/Faultbox/octoland/pkg/math"
)

// Cylinder is a cylindrical sheet around the Z axis of Frame. U is the
// angle in radians over [0, Sweep], V the height over [0, Height].
type Cylinder struct {
	Frame  math.Plane
	Radius float64
	Height float64
	Sweep  float64
}

// NewCylinder returns a full cylinder, which is closed in U.
func NewCylinder(frame math.Plane, radius, height float64) *Cylinder {
	return &Cylinder{Frame: frame, Radius: radius, Height: height, Sweep: 2 * gomath.Pi}
}

// Domain implements Surface.
func (c *Cylinder) Domain(dir Direction) math.Interval {
	if dir == V {
		return math.NewInterval(0, c.Height)
	}
	return math.NewInterval(0, c.Sweep)
}

// IsClosed implements Surface. Only a full sweep closes, and only in U.
func (c *Cylinder) IsClosed(dir Direction) bool {
	return dir == U && c.Sweep >= 2*gomath.Pi-1e-12
}

// PointAt implements Surface.
func (c *Cylinder) PointAt(u, v float64) math.Vec3 {
	s, t := c.Radius*gomath.Cos(u), c.Radius*gomath.Sin(u)
	return c.Frame.PointAt(s, t).Add(c.Frame.ZAxis.Scale(v))
}

// ToBrep implements Surface with 64 spans per full turn.
func (c *Cylinder) ToBrep() (*kernel.Brep, error) {
	return Tessellate(c, spans(c.Sweep, 2*gomath.Pi/64, 1), 1)
}
