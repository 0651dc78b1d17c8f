package surface

import (
	gomath "math"

	"github.com/pkg/errors"

	"github.com/Faultbox/octoland/pkg/kernel"
	"github.com/Faultbox/octoland/pkg/math"
)

// Heightfield errors.
var (
	ErrHeightfieldSize     = errors.New("heightfield needs at least 2x2 samples")
	ErrHeightfieldCell     = errors.New("heightfield cell size must be positive")
	ErrHeightfieldMismatch = errors.New("heightfield sample count does not match dimensions")
	ErrHeightfieldValue    = errors.New("heightfield sample is not finite")
)

// Heightfield is a terrain surface interpolated bilinearly from a regular
// grid of altitudes. Parameters are world distances from Origin along X (U)
// and Y (V).
type Heightfield struct {
	Origin  math.Vec2 // world XY of sample (0, 0)
	CellX   float64   // sample spacing along X
	CellY   float64   // sample spacing along Y
	Cols    int       // samples along X
	Rows    int       // samples along Y
	Heights []float64 // row-major, Heights[row*Cols+col]
	Refine  int       // brep spans per grid cell, defaults to 1
}

// NewHeightfield validates and wraps a grid of altitudes.
func NewHeightfield(origin math.Vec2, cellX, cellY float64, cols, rows int, heights []float64) (*Heightfield, error) {
	if cols < 2 || rows < 2 {
		return nil, errors.Wrapf(ErrHeightfieldSize, "got %dx%d", cols, rows)
	}
	if !(cellX > 0) || !(cellY > 0) {
		return nil, errors.Wrapf(ErrHeightfieldCell, "got %vx%v", cellX, cellY)
	}
	if len(heights) != cols*rows {
		return nil, errors.Wrapf(ErrHeightfieldMismatch, "%d samples for %dx%d", len(heights), cols, rows)
	}
	for i, h := range heights {
		if gomath.IsNaN(h) || gomath.IsInf(h, 0) {
			return nil, errors.Wrapf(ErrHeightfieldValue, "sample %d", i)
		}
	}
	return &Heightfield{
		Origin:  origin,
		CellX:   cellX,
		CellY:   cellY,
		Cols:    cols,
		Rows:    rows,
		Heights: heights,
		Refine:  1,
	}, nil
}

// Domain implements Surface.
func (h *Heightfield) Domain(dir Direction) math.Interval {
	if dir == V {
		return math.NewInterval(0, float64(h.Rows-1)*h.CellY)
	}
	return math.NewInterval(0, float64(h.Cols-1)*h.CellX)
}

// IsClosed implements Surface. Heightfields never wrap.
func (h *Heightfield) IsClosed(Direction) bool {
	return false
}

// PointAt implements Surface.
func (h *Heightfield) PointAt(u, v float64) math.Vec3 {
	return math.Vec3{
		X: h.Origin.X + u,
		Y: h.Origin.Y + v,
		Z: h.HeightAt(u, v),
	}
}

// At returns the altitude of sample (col, row).
func (h *Heightfield) At(col, row int) float64 {
	return h.Heights[row*h.Cols+col]
}

// HeightAt returns the bilinearly interpolated altitude at parameter (u, v).
// Parameters outside the domain are clamped to its edge.
func (h *Heightfield) HeightAt(u, v float64) float64 {
	fx := u / h.CellX
	fy := v / h.CellY

	col := int(gomath.Floor(fx))
	row := int(gomath.Floor(fy))

	// Clamp to the last full cell
	col = clampi(col, 0, h.Cols-2)
	row = clampi(row, 0, h.Rows-2)

	tx := clampf(fx-float64(col), 0, 1)
	ty := clampf(fy-float64(row), 0, 1)

	// South edge (lower Y): lerp along X, then the north edge, then along Y
	south := h.At(col, row)*(1-tx) + h.At(col+1, row)*tx
	north := h.At(col, row+1)*(1-tx) + h.At(col+1, row+1)*tx
	return south*(1-ty) + north*ty
}

// AltitudeRange returns the lowest and highest sample.
func (h *Heightfield) AltitudeRange() (lo, hi float64) {
	lo, hi = h.Heights[0], h.Heights[0]
	for _, z := range h.Heights[1:] {
		lo = min(lo, z)
		hi = max(hi, z)
	}
	return lo, hi
}

// ToBrep implements Surface. Each grid cell becomes Refine x Refine spans.
// Refinement stops once a direction would exceed MaxSpans; grids already
// wider than that keep one span per cell.
func (h *Heightfield) ToBrep() (*kernel.Brep, error) {
	r := max(h.Refine, 1)
	r = min(r, max(MaxSpans/(h.Cols-1), 1), max(MaxSpans/(h.Rows-1), 1))
	return Tessellate(h, (h.Cols-1)*r, (h.Rows-1)*r)
}

func clampi(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampf(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
