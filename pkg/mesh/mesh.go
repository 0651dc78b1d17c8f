// Package mesh provides the quad mesh container produced by surface sampling.
package mesh

import (
	"github.com/Faultbox/octoland/pkg/math"
)

// Face holds four vertex indices. A triangle repeats its third index in the
// fourth slot.
type Face [4]int

// IsTriangle reports whether the face is a triangle.
func (f Face) IsTriangle() bool {
	return f[2] == f[3]
}

// Corners returns the distinct corner indices in winding order.
func (f Face) Corners() []int {
	if f.IsTriangle() {
		return []int{f[0], f[1], f[2]}
	}
	return []int{f[0], f[1], f[2], f[3]}
}

// Bounds holds the axis-aligned bounding box of a mesh.
type Bounds struct {
	Min math.Vec3
	Max math.Vec3
}

// Size returns the extent of the box along each axis.
func (b Bounds) Size() math.Vec3 {
	return b.Max.Sub(b.Min)
}

// Mesh is a vertex list plus faces indexing into it.
type Mesh struct {
	Vertices []math.Vec3
	Faces    []Face
}

// New returns an empty mesh with room for the given vertex and face counts.
func New(vertexCap, faceCap int) *Mesh {
	return &Mesh{
		Vertices: make([]math.Vec3, 0, vertexCap),
		Faces:    make([]Face, 0, faceCap),
	}
}

// AddVertex appends a vertex and returns its index.
func (m *Mesh) AddVertex(p math.Vec3) int {
	m.Vertices = append(m.Vertices, p)
	return len(m.Vertices) - 1
}

// AddQuad appends a quad face and returns its index.
func (m *Mesh) AddQuad(a, b, c, d int) int {
	m.Faces = append(m.Faces, Face{a, b, c, d})
	return len(m.Faces) - 1
}

// AddTriangle appends a triangle face and returns its index.
func (m *Mesh) AddTriangle(a, b, c int) int {
	m.Faces = append(m.Faces, Face{a, b, c, c})
	return len(m.Faces) - 1
}

// CullUnused removes vertices no face references and remaps face indices.
// It returns the number of vertices removed. Faces holding out-of-range
// indices are dropped.
func (m *Mesh) CullUnused() int {
	used := make([]bool, len(m.Vertices))
	faces := m.Faces[:0]
	for _, f := range m.Faces {
		if !m.inRange(f) {
			continue
		}
		for _, idx := range f {
			used[idx] = true
		}
		faces = append(faces, f)
	}
	m.Faces = faces

	remap := make([]int, len(m.Vertices))
	kept := 0
	for i, v := range m.Vertices {
		if !used[i] {
			remap[i] = -1
			continue
		}
		remap[i] = kept
		m.Vertices[kept] = v
		kept++
	}
	removed := len(m.Vertices) - kept
	m.Vertices = m.Vertices[:kept]

	if removed > 0 {
		for i := range m.Faces {
			for k := range m.Faces[i] {
				m.Faces[i][k] = remap[m.Faces[i][k]]
			}
		}
	}
	return removed
}

func (m *Mesh) inRange(f Face) bool {
	for _, idx := range f {
		if idx < 0 || idx >= len(m.Vertices) {
			return false
		}
	}
	return true
}

// Bounds returns the bounding box of all vertices.
func (m *Mesh) Bounds() Bounds {
	if len(m.Vertices) == 0 {
		return Bounds{}
	}
	b := Bounds{Min: m.Vertices[0], Max: m.Vertices[0]}
	for _, v := range m.Vertices[1:] {
		updateBounds(&b, v)
	}
	return b
}

// FaceNormal returns the unit normal of face i following its winding.
// Quads use the cross product of their diagonals.
func (m *Mesh) FaceNormal(i int) math.Vec3 {
	return faceCross(m.Vertices, m.Faces[i]).Normalize()
}

// FaceArea returns the area of face i.
func (m *Mesh) FaceArea(i int) float64 {
	return faceCross(m.Vertices, m.Faces[i]).Length() / 2
}

// Area returns the summed area of all faces.
func (m *Mesh) Area() float64 {
	var total float64
	for i := range m.Faces {
		total += m.FaceArea(i)
	}
	return total
}

// Triangles splits every face into triangles along the 0-2 diagonal.
func (m *Mesh) Triangles() [][3]math.Vec3 {
	tris := make([][3]math.Vec3, 0, 2*len(m.Faces))
	for _, f := range m.Faces {
		v := m.Vertices
		tris = append(tris, [3]math.Vec3{v[f[0]], v[f[1]], v[f[2]]})
		if !f.IsTriangle() {
			tris = append(tris, [3]math.Vec3{v[f[0]], v[f[2]], v[f[3]]})
		}
	}
	return tris
}

// Edges returns every undirected edge once, smaller index first, in the
// order faces first reference them.
func (m *Mesh) Edges() [][2]int {
	seen := make(map[[2]int]bool)
	var edges [][2]int
	for _, f := range m.Faces {
		c := f.Corners()
		for k := range c {
			e := undirected(c[k], c[(k+1)%len(c)])
			if !seen[e] {
				seen[e] = true
				edges = append(edges, e)
			}
		}
	}
	return edges
}

func faceCross(v []math.Vec3, f Face) math.Vec3 {
	if f.IsTriangle() {
		return v[f[1]].Sub(v[f[0]]).Cross(v[f[2]].Sub(v[f[0]]))
	}
	return v[f[2]].Sub(v[f[0]]).Cross(v[f[3]].Sub(v[f[1]]))
}

func undirected(a, b int) [2]int {
	if a > b {
		return [2]int{b, a}
	}
	return [2]int{a, b}
}

func updateBounds(b *Bounds, p math.Vec3) {
	if p.X < b.Min.X {
		b.Min.X = p.X
	}
	if p.Y < b.Min.Y {
		b.Min.Y = p.Y
	}
	if p.Z < b.Min.Z {
		b.Min.Z = p.Z
	}
	if p.X > b.Max.X {
		b.Max.X = p.X
	}
	if p.Y > b.Max.Y {
		b.Max.Y = p.Y
	}
	if p.Z > b.Max.Z {
		b.Max.Z = p.Z
	}
}
