package export

import (
	"image/color"
	gomath "math"

	"github.com/fogleman/gg"

	"github.com/Faultbox/octoland/internal/analysis"
	"github.com/Faultbox/octoland/pkg/math"
)

// heatStops is the elevation colour ramp, low to high.
var heatStops = []color.RGBA{
	{R: 20, G: 40, B: 140, A: 255},
	{R: 40, G: 150, B: 200, A: 255},
	{R: 80, G: 180, B: 80, A: 255},
	{R: 230, G: 210, B: 90, A: 255},
	{R: 170, G: 70, B: 40, A: 255},
}

// Heat maps t in [0,1] onto the colour ramp.
func Heat(t float64) color.RGBA {
	if gomath.IsNaN(t) {
		t = 0
	}
	t = min(max(t, 0), 1)
	pos := t * float64(len(heatStops)-1)
	i := min(int(pos), len(heatStops)-2)
	f := pos - float64(i)
	a, b := heatStops[i], heatStops[i+1]
	lerp := func(x, y uint8) uint8 {
		return uint8(float64(x) + (float64(y)-float64(x))*f + 0.5)
	}
	return color.RGBA{R: lerp(a.R, b.R), G: lerp(a.G, b.G), B: lerp(a.B, b.B), A: 255}
}

// Render draws a top-down elevation heatmap of res with the contours in
// black. The longer side of the sampled area spans size pixels.
func Render(res *analysis.Result, size int) *gg.Context {
	b := res.Mesh.Bounds()
	ext := b.Size()
	span := max(ext.X, ext.Y)
	if span <= 0 {
		span = 1
	}
	scale := float64(size) / span
	w := max(int(gomath.Ceil(ext.X*scale)), 1)
	h := max(int(gomath.Ceil(ext.Y*scale)), 1)

	dc := gg.NewContext(w, h)
	dc.SetRGB(1, 1, 1)
	dc.Clear()

	// Image Y grows downward; world Y grows north.
	toPx := func(p math.Vec3) (float64, float64) {
		return (p.X - b.Min.X) * scale, float64(h) - (p.Y-b.Min.Y)*scale
	}

	lo, hi := res.ElevationRange()
	rng := hi - lo
	g := res.Grid
	for i := 0; i < g.UCount - 1; i++ {
		for j := 0; j < g.VCount - 1; j++ {
			corners := [4]int{g.Index(i, j), g.Index(i, j+1), g.Index(i+1, j+1), g.Index(i+1, j)}
			var z float64
			for n, k := range corners {
				x, y := toPx(res.Points[k])
				if n == 0 {
					dc.MoveTo(x, y)
				} else {
					dc.LineTo(x, y)
				}
				z += res.RelativeElevation[k]
			}
			dc.ClosePath()
			t := 0.5
			if rng > 0 {
				t = (z/4 - lo) / rng
			}
			dc.SetColor(Heat(t))
			dc.Fill()
		}
	}

	dc.SetRGB(0, 0, 0)
	dc.SetLineWidth(2)
	for _, c := range res.Contours {
		pts := c.Vertices()
		for k := 1; k < len(pts); k++ {
			x1, y1 := toPx(pts[k-1])
			x2, y2 := toPx(pts[k])
			dc.DrawLine(x1, y1, x2, y2)
		}
		dc.Stroke()
	}
	return dc
}

// WritePNG writes the elevation heatmap.
func WritePNG(path string, res *analysis.Result, opts Options) error {
	return Render(res, opts.PNGSize).SavePNG(path)
}
