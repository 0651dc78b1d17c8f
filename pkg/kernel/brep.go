// Package kernel holds the boundary representation used for plane
// intersections and the intersection routine itself.
package kernel

import (
	"github.com/pkg/errors"
	"github.com/unixpickle/model3d/model3d"

	"github.com/Faultbox/octoland/pkg/math"
)

// Kernel errors.
var (
	ErrEmptyBrep        = errors.New("brep has no faces")
	ErrDegeneratePlane  = errors.New("plane has no valid normal")
	ErrInvalidTolerance = errors.New("tolerance must be positive")
)

// minTriangleArea drops slivers produced by collapsed surface edges.
const minTriangleArea = 1e-14

// Brep is a triangulated boundary representation of a surface.
type Brep struct {
	faces []*model3d.Triangle
}

// NewBrep builds a brep from triangles, skipping zero-area ones.
func NewBrep(tris [][3]math.Vec3) *Brep {
	b := &Brep{faces: make([]*model3d.Triangle, 0, len(tris))}
	for _, t := range tris {
		tri := &model3d.Triangle{toCoord(t[0]), toCoord(t[1]), toCoord(t[2])}
		if tri.Area() < minTriangleArea {
			continue
		}
		b.faces = append(b.faces, tri)
	}
	return b
}

// FaceCount returns the number of triangles.
func (b *Brep) FaceCount() int {
	return len(b.faces)
}

// Triangles returns the faces in construction order.
func (b *Brep) Triangles() []*model3d.Triangle {
	return b.faces
}

// Mesh returns the faces as a model3d mesh.
func (b *Brep) Mesh() *model3d.Mesh {
	m := model3d.NewMesh()
	for _, t := range b.faces {
		m.Add(t)
	}
	return m
}

// Area returns the total face area.
func (b *Brep) Area() float64 {
	var total float64
	for _, t := range b.faces {
		total += t.Area()
	}
	return total
}

// Bounds returns the bounding corners of all faces.
func (b *Brep) Bounds() (lo, hi math.Vec3) {
	if len(b.faces) == 0 {
		return math.Vec3{}, math.Vec3{}
	}
	lo = fromCoord(b.faces[0][0])
	hi = lo
	for _, t := range b.faces {
		for _, c := range t {
			lo = math.Vec3{X: min(lo.X, c.X), Y: min(lo.Y, c.Y), Z: min(lo.Z, c.Z)}
			hi = math.Vec3{X: max(hi.X, c.X), Y: max(hi.Y, c.Y), Z: max(hi.Z, c.Z)}
		}
	}
	return lo, hi
}

func toCoord(v math.Vec3) model3d.Coord3D {
	return model3d.XYZ(v.X, v.Y, v.Z)
}

func fromCoord(c model3d.Coord3D) math.Vec3 {
	return math.Vec3{X: c.X, Y: c.Y, Z: c.Z}
}
