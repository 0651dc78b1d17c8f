// Package surface defines the parametric surfaces the analysis samples and
// the tessellation that turns them into a kernel brep.
package surface

import (
	"github.com/pkg/errors"

	"github.com/Faultbox/octoland/pkg/kernel"
	"github.com/Faultbox/octoland/pkg/math"
)

// Direction selects a parametric direction.
type Direction int

// Parametric directions.
const (
	U Direction = iota
	V
)

// String returns "U" or "V".
func (d Direction) String() string {
	if d == V {
		return "V"
	}
	return "U"
}

// Surface is a parametric 2D manifold embedded in 3D.
type Surface interface {
	// Domain returns the parameter interval along dir.
	Domain(dir Direction) math.Interval
	// PointAt evaluates the surface at (u, v).
	PointAt(u, v float64) math.Vec3
	// IsClosed reports whether the surface wraps around along dir.
	IsClosed(dir Direction) bool
	// ToBrep converts the surface into a triangulated brep.
	ToBrep() (*kernel.Brep, error)
}

// ErrInvalidTessellation is returned for non-positive tessellation counts.
var ErrInvalidTessellation = errors.New("tessellation needs at least one span per direction")

// MaxSpans caps the per-direction tessellation of analytic surfaces.
const MaxSpans = 512

// Tessellate samples s on an nu x nv span grid spread evenly over its domain
// and splits each span into two triangles.
func Tessellate(s Surface, nu, nv int) (*kernel.Brep, error) {
	if nu < 1 || nv < 1 {
		return nil, errors.Wrapf(ErrInvalidTessellation, "got %dx%d", nu, nv)
	}
	ud, vd := s.Domain(U), s.Domain(V)

	grid := make([]math.Vec3, 0, (nu+1)*(nv+1))
	for i := 0; i <= nu; i++ {
		u := ud.ParameterAt(float64(i) / float64(nu))
		for j := 0; j <= nv; j++ {
			v := vd.ParameterAt(float64(j) / float64(nv))
			grid = append(grid, s.PointAt(u, v))
		}
	}

	tris := make([][3]math.Vec3, 0, 2*nu*nv)
	for i := 0; i < nu; i++ {
		for j := 0; j < nv; j++ {
			p0 := grid[i*(nv+1)+j]
			p1 := grid[i*(nv+1)+j+1]
			p2 := grid[(i+1)*(nv+1)+j+1]
			p3 := grid[(i+1)*(nv+1)+j]
			tris = append(tris, [3]math.Vec3{p0, p1, p2}, [3]math.Vec3{p0, p2, p3})
		}
	}
	return kernel.NewBrep(tris), nil
}

// spans returns how many tessellation spans a length needs at the given
// span size, clamped to [lo, MaxSpans].
func spans(length, size float64, lo int) int {
	if !(size > 0) {
		return lo
	}
	n := int(length/size + 0.999999)
	if n < lo {
		return lo
	}
	if n > MaxSpans {
		return MaxSpans
	}
	return n
}
