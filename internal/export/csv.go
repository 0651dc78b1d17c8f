package export

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"

	"github.com/Faultbox/octoland/internal/analysis"
)

var csvHeader = []string{"index", "i", "j", "x", "y", "z", "relative", "absolute"}

// EncodeCSV writes one row per sample in grid order.
func EncodeCSV(w io.Writer, res *analysis.Result) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	f := func(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) }
	vc := res.Grid.VCount
	for k, p := range res.Points {
		row := []string{
			strconv.Itoa(k),
			strconv.Itoa(k / vc),
			strconv.Itoa(k % vc),
			f(p.X), f(p.Y), f(p.Z),
			f(res.RelativeElevation[k]),
			f(res.AbsoluteElevation[k]),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteCSV writes the sample table.
func WriteCSV(path string, res *analysis.Result, _ Options) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := EncodeCSV(f, res); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
