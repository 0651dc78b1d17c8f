package surface

import (
	gomath "math"
	"testing"

	"github.com/pkg/errors"

	"github.com/Faultbox/octoland/pkg/math"
)

func TestPlanePatch(t *testing.T) {
	frame := math.NewPlane(math.Vec3{Z: 3}, math.Vec3{Z: 1})
	p := NewPlane(frame, math.NewInterval(0, 10), math.NewInterval(-2, 2))

	if got := p.Domain(U).Length(); got != 10 {
		t.Errorf("Domain(U).Length() = %v, want 10", got)
	}
	if got := p.Domain(V).Length(); got != 4 {
		t.Errorf("Domain(V).Length() = %v, want 4", got)
	}
	if p.IsClosed(U) || p.IsClosed(V) {
		t.Error("plane patch should be open")
	}
	if got := p.PointAt(5, 1); got != (math.Vec3{X: 5, Y: 1, Z: 3}) {
		t.Errorf("PointAt(5, 1) = %v, want {5 1 3}", got)
	}

	b, err := p.ToBrep()
	if err != nil {
		t.Fatalf("ToBrep failed: %v", err)
	}
	if b.FaceCount() != 2 {
		t.Errorf("FaceCount() = %d, want 2", b.FaceCount())
	}
	if got := b.Area(); gomath.Abs(got-40) > 1e-9 {
		t.Errorf("Area() = %v, want 40", got)
	}
}

func TestHeightfieldInterpolation(t *testing.T) {
	// 3x2 samples, 2m spacing in X, 1m in Y.
	h, err := NewHeightfield(math.Vec2{X: 100, Y: 200}, 2, 1, 3, 2, []float64{
		0, 2, 4,
		10, 12, 14,
	})
	if err != nil {
		t.Fatalf("NewHeightfield failed: %v", err)
	}

	tests := []struct {
		u, v float64
		want float64
	}{
		{0, 0, 0},
		{4, 0, 4},
		{4, 1, 14},
		{1, 0, 1},
		{2, 0.5, 7},
		{3, 0.5, 8},
		{-5, -5, 0},
		{99, 99, 14},
	}
	for _, tt := range tests {
		if got := h.HeightAt(tt.u, tt.v); gomath.Abs(got-tt.want) > 1e-12 {
			t.Errorf("HeightAt(%v, %v) = %v, want %v", tt.u, tt.v, got, tt.want)
		}
	}

	p := h.PointAt(4, 1)
	if p != (math.Vec3{X: 104, Y: 201, Z: 14}) {
		t.Errorf("PointAt(4, 1) = %v, want {104 201 14}", p)
	}
	if h.Domain(U) != math.NewInterval(0, 4) || h.Domain(V) != math.NewInterval(0, 1) {
		t.Errorf("Domain = %v x %v, want [0,4] x [0,1]", h.Domain(U), h.Domain(V))
	}
	if lo, hi := h.AltitudeRange(); lo != 0 || hi != 14 {
		t.Errorf("AltitudeRange() = %v, %v, want 0, 14", lo, hi)
	}
}

func TestHeightfieldErrors(t *testing.T) {
	tests := []struct {
		name       string
		cellX      float64
		cols, rows int
		heights    []float64
		want       error
	}{
		{"too small", 1, 1, 2, []float64{0, 0}, ErrHeightfieldSize},
		{"bad cell", 0, 2, 2, []float64{0, 0, 0, 0}, ErrHeightfieldCell},
		{"mismatch", 1, 2, 2, []float64{0, 0, 0}, ErrHeightfieldMismatch},
		{"nan", 1, 2, 2, []float64{0, gomath.NaN(), 0, 0}, ErrHeightfieldValue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewHeightfield(math.Vec2{}, tt.cellX, 1, tt.cols, tt.rows, tt.heights)
			if !errors.Is(err, tt.want) {
				t.Errorf("NewHeightfield() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestHeightfieldBrep(t *testing.T) {
	h, err := NewHeightfield(math.Vec2{}, 1, 1, 4, 3, make([]float64, 12))
	if err != nil {
		t.Fatalf("NewHeightfield failed: %v", err)
	}
	b, err := h.ToBrep()
	if err != nil {
		t.Fatalf("ToBrep failed: %v", err)
	}
	if b.FaceCount() != 12 {
		t.Errorf("FaceCount() = %d, want 12", b.FaceCount())
	}

	h.Refine = 2
	b, _ = h.ToBrep()
	if b.FaceCount() != 48 {
		t.Errorf("refined FaceCount() = %d, want 48", b.FaceCount())
	}

	// 3 x 2 cells: refinement stops at MaxSpans/3 along X.
	h.Refine = 1_000_000
	b, err = h.ToBrep()
	if err != nil {
		t.Fatalf("ToBrep failed: %v", err)
	}
	r := MaxSpans / 3
	if want := 2 * (3 * r) * (2 * r); b.FaceCount() != want {
		t.Errorf("capped FaceCount() = %d, want %d", b.FaceCount(), want)
	}
}

func TestCylinderClosedness(t *testing.T) {
	full := NewCylinder(math.WorldXY(), 2, 5)
	if !full.IsClosed(U) {
		t.Error("full cylinder should be closed in U")
	}
	if full.IsClosed(V) {
		t.Error("cylinder should be open in V")
	}

	half := &Cylinder{Frame: math.WorldXY(), Radius: 2, Height: 5, Sweep: gomath.Pi}
	if half.IsClosed(U) {
		t.Error("half cylinder should be open in U")
	}

	p := full.PointAt(gomath.Pi/2, 3)
	if gomath.Abs(p.X) > 1e-12 || gomath.Abs(p.Y-2) > 1e-12 || p.Z != 3 {
		t.Errorf("PointAt(π/2, 3) = %v, want {0 2 3}", p)
	}

	b, err := half.ToBrep()
	if err != nil {
		t.Fatalf("ToBrep failed: %v", err)
	}
	if b.FaceCount() != 64 {
		t.Errorf("FaceCount() = %d, want 64", b.FaceCount())
	}
}

func TestWave(t *testing.T) {
	w := &Wave{Width: 20, Depth: 10, Base: 1, Amplitude: 2, Wavelength: 8}
	if got := w.PointAt(2, 0); gomath.Abs(got.Z-3) > 1e-12 {
		t.Errorf("PointAt(2, 0).Z = %v, want 3", got.Z)
	}
	if got := w.PointAt(0, 5); got.Z != 1 {
		t.Errorf("PointAt(0, 5).Z = %v, want 1", got.Z)
	}
	b, err := w.ToBrep()
	if err != nil {
		t.Fatalf("ToBrep failed: %v", err)
	}
	// 20/0.5 = 40 spans by 10/0.5 = 20 spans, two triangles each.
	if b.FaceCount() != 1600 {
		t.Errorf("FaceCount() = %d, want 1600", b.FaceCount())
	}
}

func TestTessellateRejectsZeroSpans(t *testing.T) {
	p := NewPlane(math.WorldXY(), math.NewInterval(0, 1), math.NewInterval(0, 1))
	if _, err := Tessellate(p, 0, 1); !errors.Is(err, ErrInvalidTessellation) {
		t.Errorf("Tessellate(0, 1) error = %v, want %v", err, ErrInvalidTessellation)
	}
}
