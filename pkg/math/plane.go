package math

import "math"

// Plane is an oriented plane with an origin and an orthonormal frame.
// ZAxis is the plane normal.
type Plane struct {
	Origin Vec3
	XAxis  Vec3
	YAxis  Vec3
	ZAxis  Vec3
}

// WorldXY returns the world XY plane at the origin.
func WorldXY() Plane {
	return Plane{
		Origin: Vec3{},
		XAxis:  Vec3{1, 0, 0},
		YAxis:  Vec3{0, 1, 0},
		ZAxis:  Vec3{0, 0, 1},
	}
}

// NewPlane builds a plane from an origin and a normal. The in-plane axes
// are derived from the normal; a zero normal yields an invalid plane.
func NewPlane(origin, normal Vec3) Plane {
	z := normal.Normalize()
	if z == (Vec3{}) {
		return Plane{Origin: origin}
	}
	// Pick the world axis least aligned with the normal as the x seed.
	seed := Vec3{1, 0, 0}
	if math.Abs(z.X) > 0.9 {
		seed = Vec3{0, 1, 0}
	}
	if math.Abs(z.Z) > 0.9 {
		seed = Vec3{1, 0, 0}
	}
	x := seed.Sub(z.Scale(seed.Dot(z))).Normalize()
	y := z.Cross(x)
	return Plane{Origin: origin, XAxis: x, YAxis: y, ZAxis: z}
}

// OriginZ returns the Z coordinate of the origin, the elevation datum.
func (p Plane) OriginZ() float64 {
	return p.Origin.Z
}

// Normal returns the plane normal.
func (p Plane) Normal() Vec3 {
	return p.ZAxis
}

// IsValid reports whether the frame is finite and has a unit normal.
func (p Plane) IsValid() bool {
	if !p.Origin.IsFinite() || !p.ZAxis.IsFinite() {
		return false
	}
	return math.Abs(p.ZAxis.Length()-1) < 1e-9
}

// DistanceTo returns the signed distance from the plane to pt along the normal.
func (p Plane) DistanceTo(pt Vec3) float64 {
	return pt.Sub(p.Origin).Dot(p.ZAxis)
}

// PointAt returns the world point at plane coordinates (s, t).
func (p Plane) PointAt(s, t float64) Vec3 {
	return p.Origin.Add(p.XAxis.Scale(s)).Add(p.YAxis.Scale(t))
}

// Project returns the plane coordinates of pt.
func (p Plane) Project(pt Vec3) Vec2 {
	d := pt.Sub(p.Origin)
	return Vec2{d.Dot(p.XAxis), d.Dot(p.YAxis)}
}
