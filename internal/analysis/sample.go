package analysis

import (
	gomath "math"

	"github.com/pkg/errors"

	"github.com/Faultbox/octoland/pkg/math"
	"github.com/Faultbox/octoland/pkg/mesh"
	"github.com/Faultbox/octoland/pkg/surface"
)

// MinSamples is the smallest sample count per direction. Counts derived
// from a resolution coarser than the domain are raised to it so the grid
// still spans the whole domain.
const MinSamples = 2

// Grid describes the sample layout of a run.
type Grid struct {
	UCount   int
	VCount   int
	ClampedU bool // resolution exceeded the U domain length
	ClampedV bool // resolution exceeded the V domain length
	Culled   int  // vertices removed by CullUnused
}

// Index returns the flat index of sample (i, j).
func (g Grid) Index(i, j int) int {
	return i*g.VCount + j
}

// Len returns the number of samples.
func (g Grid) Len() int {
	return g.UCount * g.VCount
}

// MaxGridSamples bounds the sample grid regardless of the configured limit.
const MaxGridSamples = 1 << 28

// SampleCount returns floor(length/res) + 1 clamped to MinSamples, and
// whether clamping happened. The length is taken as an absolute value.
// Counts above MaxGridSamples fail with ErrSampleLimit.
func SampleCount(length, res float64) (int, bool, error) {
	n := gomath.Floor(gomath.Abs(length)/res) + 1
	if n < MinSamples || gomath.IsNaN(n) {
		return MinSamples, true, nil
	}
	if n > MaxGridSamples {
		return 0, false, errors.Wrapf(ErrSampleLimit, "%g samples along one direction", n)
	}
	return int(n), false, nil
}

// SampleGrid computes the sample counts of s at the given resolutions.
// It fails with ErrSampleLimit when the grid would exceed maxSamples, or
// MaxGridSamples when maxSamples is zero.
func SampleGrid(s surface.Surface, uRes, vRes float64, maxSamples int) (Grid, error) {
	var g Grid
	var err error
	if g.UCount, g.ClampedU, err = SampleCount(s.Domain(surface.U).Length(), uRes); err != nil {
		return g, errors.WithMessage(err, "u")
	}
	if g.VCount, g.ClampedV, err = SampleCount(s.Domain(surface.V).Length(), vRes); err != nil {
		return g, errors.WithMessage(err, "v")
	}

	limit := int64(MaxGridSamples)
	if maxSamples > 0 && int64(maxSamples) < limit {
		limit = int64(maxSamples)
	}
	if int64(g.UCount)*int64(g.VCount) > limit {
		return g, errors.Wrapf(ErrSampleLimit, "%dx%d samples, limit %d", g.UCount, g.VCount, limit)
	}
	return g, nil
}

// SurfaceToMesh walks the parameter domain of s on grid g and returns the
// quad mesh together with the sampled points in grid order. The first and
// last sample of each direction sit exactly on the domain bounds.
func SurfaceToMesh(s surface.Surface, g *Grid) (*mesh.Mesh, []math.Vec3, error) {
	uDomain := s.Domain(surface.U)
	vDomain := s.Domain(surface.V)

	m := mesh.New(g.Len(), (g.UCount-1)*(g.VCount-1))
	points := make([]math.Vec3, 0, g.Len())

	for i := 0; i < g.UCount; i++ {
		u := uDomain.ParameterAt(float64(i) / float64(g.UCount-1))
		for j := 0; j < g.VCount; j++ {
			v := vDomain.ParameterAt(float64(j) / float64(g.VCount-1))
			p := s.PointAt(u, v)
			points = append(points, p)
			m.AddVertex(p)
		}
	}

	for i := 0; i < g.UCount - 1; i++ {
		for j := 0; j < g.VCount - 1; j++ {
			idx0 := g.Index(i, j)
			idx1 := idx0 + 1
			idx2 := idx0 + g.VCount
			idx3 := idx2 + 1
			m.AddQuad(idx0, idx1, idx3, idx2)
		}
	}

	g.Culled = m.CullUnused()
	if err := m.Validate(); err != nil {
		return nil, nil, fail(ErrMeshConstruction, err)
	}
	return m, points, nil
}
