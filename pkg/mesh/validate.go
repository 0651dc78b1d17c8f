package mesh

import (
	"github.com/pkg/errors"
)

// Validation errors.
var (
	ErrNoFaces             = errors.New("mesh has no faces")
	ErrFaceIndex           = errors.New("face index out of range")
	ErrDegenerateFace      = errors.New("face repeats a vertex")
	ErrZeroAreaFace        = errors.New("face has zero area")
	ErrNonFiniteVertex     = errors.New("vertex is not finite")
	ErrNonManifoldEdge     = errors.New("edge shared by more than two faces")
	ErrInconsistentWinding = errors.New("adjacent faces have opposite winding")
)

// MinFaceArea is the area below which a face counts as degenerate.
const MinFaceArea = 1e-12

// IsValid reports whether Validate finds no problem.
func (m *Mesh) IsValid() bool {
	return m.Validate() == nil
}

// Validate checks the structural invariants of the mesh: finite vertices,
// in-range face indices, no repeated corners, no zero-area faces, every
// edge shared by at most two faces and traversed in opposite directions
// by neighbours.
func (m *Mesh) Validate() error {
	if len(m.Faces) == 0 {
		return ErrNoFaces
	}
	for i, v := range m.Vertices {
		if !v.IsFinite() {
			return errors.Wrapf(ErrNonFiniteVertex, "vertex %d", i)
		}
	}

	// directed edge -> number of faces using it
	directed := make(map[[2]int]int)
	undirectedUse := make(map[[2]int]int)

	for i, f := range m.Faces {
		if !m.inRange(f) {
			return errors.Wrapf(ErrFaceIndex, "face %d %v with %d vertices", i, f, len(m.Vertices))
		}
		c := f.Corners()
		for a := range c {
			for b := a + 1; b < len(c); b++ {
				if c[a] == c[b] {
					return errors.Wrapf(ErrDegenerateFace, "face %d %v", i, f)
				}
			}
		}
		if area := m.FaceArea(i); area < MinFaceArea {
			return errors.Wrapf(ErrZeroAreaFace, "face %d area %g", i, area)
		}
		for k := range c {
			e := [2]int{c[k], c[(k+1)%len(c)]}
			directed[e]++
			undirectedUse[undirected(e[0], e[1])]++
		}
	}

	for e, n := range undirectedUse {
		if n > 2 {
			return errors.Wrapf(ErrNonManifoldEdge, "edge %v used %d times", e, n)
		}
	}
	for e, n := range directed {
		if n > 1 {
			return errors.Wrapf(ErrInconsistentWinding, "edge %v", e)
		}
	}
	return nil
}
