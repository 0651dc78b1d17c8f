package surface

import (
	gomath "math"

	"github.com/Faultbox/octoland/pkg/kernel"
	"github.com/Faultbox/octoland/pkg/math"
)

// Wave is a synthetic undulating terrain over a rectangle:
//
//	z = Base + Amplitude * sin(2πx/Wavelength) * cos(2πy/Wavelength)
type Wave struct {
	Width      float64
	Depth      float64
	Base       float64
	Amplitude  float64
	Wavelength float64
}

// Domain implements Surface.
func (w *Wave) Domain(dir Direction) math.Interval {
	if dir == V {
		return math.NewInterval(0, w.Depth)
	}
	return math.NewInterval(0, w.Width)
}

// IsClosed implements Surface.
func (w *Wave) IsClosed(Direction) bool {
	return false
}

// PointAt implements Surface.
func (w *Wave) PointAt(u, v float64) math.Vec3 {
	z := w.Base
	if w.Wavelength > 0 {
		k := 2 * gomath.Pi / w.Wavelength
		z += w.Amplitude * gomath.Sin(k*u) * gomath.Cos(k*v)
	}
	return math.Vec3{X: u, Y: v, Z: z}
}

// ToBrep implements Surface, using 16 spans per wavelength.
func (w *Wave) ToBrep() (*kernel.Brep, error) {
	size := w.Wavelength / 16
	return Tessellate(w, spans(w.Width, size, 8), spans(w.Depth, size, 8))
}
