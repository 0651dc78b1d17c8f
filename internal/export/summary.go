package export

import (
	"io"
	"os"

	json "github.com/goccy/go-json"

	"github.com/Faultbox/octoland/internal/analysis"
	"github.com/Faultbox/octoland/pkg/kernel"
)

// Summary is the JSON form of a result.
type Summary struct {
	RunID    string    `json:"run_id"`
	Grid     GridInfo  `json:"grid"`
	Samples  int       `json:"samples"`
	Faces    int       `json:"faces"`
	Datum    float64   `json:"datum"`
	Mean     float64   `json:"mean"`
	StdDev   float64   `json:"std_dev"`
	MinZ     float64   `json:"min_z"`
	MaxZ     float64   `json:"max_z"`
	Contours []Contour `json:"contours"`

	Relative []float64 `json:"relative_elevation,omitempty"`
	Absolute []float64 `json:"absolute_elevation,omitempty"`
}

// GridInfo describes the sample grid.
type GridInfo struct {
	UCount   int  `json:"u_count"`
	VCount   int  `json:"v_count"`
	ClampedU bool `json:"clamped_u,omitempty"`
	ClampedV bool `json:"clamped_v,omitempty"`
}

// Contour is one contour curve.
type Contour struct {
	Closed bool         `json:"closed"`
	Length float64      `json:"length"`
	Points [][3]float64 `json:"points"`
}

// NewSummary builds the summary of res. The elevation series are included
// only when series is set.
func NewSummary(res *analysis.Result, series bool) Summary {
	lo, hi := res.ElevationRange()
	s := Summary{
		RunID: res.RunID,
		Grid: GridInfo{
			UCount:   res.Grid.UCount,
			VCount:   res.Grid.VCount,
			ClampedU: res.Grid.ClampedU,
			ClampedV: res.Grid.ClampedV,
		},
		Samples:  len(res.Points),
		Faces:    len(res.Mesh.Faces),
		Datum:    res.Plane.OriginZ(),
		Mean:     res.Mean,
		StdDev:   res.StdDev,
		MinZ:     lo,
		MaxZ:     hi,
		Contours: make([]Contour, 0, len(res.Contours)),
	}
	for _, c := range res.Contours {
		s.Contours = append(s.Contours, newContour(c))
	}
	if series {
		s.Relative = res.RelativeElevation
		s.Absolute = res.AbsoluteElevation
	}
	return s
}

func newContour(c kernel.Polyline) Contour {
	pts := make([][3]float64, len(c.Points))
	for i, p := range c.Points {
		pts[i] = [3]float64{p.X, p.Y, p.Z}
	}
	return Contour{Closed: c.Closed, Length: c.Length(), Points: pts}
}

// EncodeSummary writes the indented summary of res to w.
func EncodeSummary(w io.Writer, res *analysis.Result, series bool) error {
	data, err := json.MarshalIndent(NewSummary(res, series), "", "  ")
	if err != nil {
		return err
	}
	_, err = w.Write(append(data, '\n'))
	return err
}

// WriteSummary writes the JSON summary, elevation series included.
func WriteSummary(path string, res *analysis.Result, _ Options) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := EncodeSummary(f, res, true); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
