package analysis

import (
	gomath "math"
	"testing"

	"github.com/pkg/errors"

	"github.com/Faultbox/octoland/pkg/math"
)

func TestSampleCount(t *testing.T) {
	tests := []struct {
		length, res float64
		want        int
		clamped     bool
	}{
		{10, 1, 11, false},
		{10, 3, 4, false},
		{-10, 1, 11, false},
		{1, 0.3, 4, false},
		{10, 100, 2, true},
		{0, 1, 2, true},
	}
	for _, tt := range tests {
		got, clamped, err := SampleCount(tt.length, tt.res)
		if err != nil {
			t.Errorf("SampleCount(%v, %v) error = %v", tt.length, tt.res, err)
			continue
		}
		if got != tt.want || clamped != tt.clamped {
			t.Errorf("SampleCount(%v, %v) = %d, %v, want %d, %v", tt.length, tt.res, got, clamped, tt.want, tt.clamped)
		}
	}
}

func TestSampleCountOverflow(t *testing.T) {
	for _, res := range []float64{1e-12, gomath.SmallestNonzeroFloat64} {
		if _, _, err := SampleCount(10, res); !errors.Is(err, ErrSampleLimit) {
			t.Errorf("SampleCount(10, %v) error = %v, want ErrSampleLimit", res, err)
		}
	}
	if _, _, err := SampleCount(gomath.Inf(1), 1); !errors.Is(err, ErrSampleLimit) {
		t.Errorf("SampleCount(+Inf, 1) error = %v, want ErrSampleLimit", err)
	}
}

func TestElevations(t *testing.T) {
	plane := math.WorldXY()
	plane.Origin.Z = 2
	points := []math.Vec3{{Z: 0}, {Z: 2}, {Z: 5}}
	rel, abs := Elevations(points, plane)
	wantRel := []float64{0, 2, 5}
	wantAbs := []float64{2, 0, 3}
	for i := range points {
		if rel[i] != wantRel[i] {
			t.Errorf("relative[%d] = %v, want %v", i, rel[i], wantRel[i])
		}
		if abs[i] != wantAbs[i] {
			t.Errorf("absolute[%d] = %v, want %v", i, abs[i], wantAbs[i])
		}
	}
}

func TestMean(t *testing.T) {
	got, err := Mean([]float64{1, 2, 3, 6})
	if err != nil {
		t.Fatalf("Mean() error = %v", err)
	}
	if got != 3 {
		t.Errorf("Mean() = %v, want 3", got)
	}
	if _, err := Mean(nil); !errors.Is(err, ErrEmptyInput) {
		t.Errorf("Mean(nil) error = %v, want ErrEmptyInput", err)
	}
}

func TestStdDevAround(t *testing.T) {
	values := []float64{1, 2, 3}
	zero := 0.0

	got, err := StdDevAround(values, &zero)
	if err != nil {
		t.Fatalf("StdDevAround() error = %v", err)
	}
	if want := gomath.Sqrt(14.0 / 3); gomath.Abs(got-want) > eps {
		t.Errorf("StdDevAround(ref=0) = %v, want %v", got, want)
	}

	got, err = StdDevAround(values, nil)
	if err != nil {
		t.Fatalf("StdDevAround() error = %v", err)
	}
	if want := gomath.Sqrt(2.0 / 3); gomath.Abs(got-want) > eps {
		t.Errorf("StdDevAround(ref=nil) = %v, want %v", got, want)
	}

	if _, err := StdDevAround(nil, &zero); !errors.Is(err, ErrEmptyInput) {
		t.Errorf("StdDevAround(nil) error = %v, want ErrEmptyInput", err)
	}
}

func TestSummarizeUsesDatum(t *testing.T) {
	plane := math.WorldXY()
	plane.Origin.Z = 10
	st, err := Summarize([]float64{10, 12, 14}, plane)
	if err != nil {
		t.Fatalf("Summarize() error = %v", err)
	}
	if st.Mean != 12 {
		t.Errorf("Mean = %v, want 12", st.Mean)
	}
	if want := gomath.Sqrt(20.0 / 3); gomath.Abs(st.StdDev-want) > eps {
		t.Errorf("StdDev = %v, want %v", st.StdDev, want)
	}
}

func TestSummarizeOverflow(t *testing.T) {
	// Each value is finite but the squares and the sum are not.
	big := []float64{1e200, 1e308, 1e308}
	if _, err := Summarize(big, math.WorldXY()); !errors.Is(err, ErrNonFiniteStats) {
		t.Errorf("Summarize() error = %v, want ErrNonFiniteStats", err)
	}
}
