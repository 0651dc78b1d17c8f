package export

import (
	"bytes"
	"encoding/csv"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/pkg/errors"

	"github.com/Faultbox/octoland/internal/analysis"
	"github.com/Faultbox/octoland/pkg/math"
	"github.com/Faultbox/octoland/pkg/surface"
)

func testResult(t *testing.T) *analysis.Result {
	t.Helper()
	wave := &surface.Wave{Width: 8, Depth: 4, Amplitude: 1, Wavelength: 8}
	res, err := analysis.Analyze(math.WorldXY(), wave, 1, 1)
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	if len(res.Contours) == 0 {
		t.Fatal("test result has no contours")
	}
	return res
}

func TestExportAllFormats(t *testing.T) {
	res := testResult(t)
	dir := filepath.Join(t.TempDir(), "out")

	written, err := Export(res, Formats(), Options{Dir: dir, Name: "site", PNGSize: 64})
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	if len(written) != len(Formats()) {
		t.Fatalf("Export() wrote %d files, want %d", len(written), len(Formats()))
	}
	for _, path := range written {
		info, err := os.Stat(path)
		if err != nil {
			t.Errorf("Stat(%s) error = %v", path, err)
			continue
		}
		if info.Size() == 0 {
			t.Errorf("%s is empty", path)
		}
		if !strings.HasPrefix(filepath.Base(path), "site.") {
			t.Errorf("%s does not use the configured name", path)
		}
	}
}

func TestExportUnknownFormat(t *testing.T) {
	res := testResult(t)
	written, err := Export(res, []string{"json", "obj", "shp"}, Options{Dir: t.TempDir()})
	if !errors.Is(err, ErrUnknownFormat) {
		t.Fatalf("Export() error = %v, want ErrUnknownFormat", err)
	}
	if got := strings.Count(err.Error(), "unknown export format"); got != 2 {
		t.Errorf("combined error mentions %d formats, want 2: %v", got, err)
	}
	if len(written) != 1 {
		t.Errorf("Export() wrote %v, want the json file only", written)
	}
}

func TestSummary(t *testing.T) {
	res := testResult(t)

	var buf bytes.Buffer
	if err := EncodeSummary(&buf, res, false); err != nil {
		t.Fatalf("EncodeSummary() error = %v", err)
	}
	var got Summary
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if got.RunID != res.RunID {
		t.Errorf("RunID = %s, want %s", got.RunID, res.RunID)
	}
	if got.Grid.UCount != 9 || got.Grid.VCount != 5 {
		t.Errorf("Grid = %+v, want 9x5", got.Grid)
	}
	if got.Samples != 45 || got.Faces != 32 {
		t.Errorf("Samples, Faces = %d, %d, want 45, 32", got.Samples, got.Faces)
	}
	if got.Mean != res.Mean || got.StdDev != res.StdDev {
		t.Errorf("Mean, StdDev = %v, %v, want %v, %v", got.Mean, got.StdDev, res.Mean, res.StdDev)
	}
	if len(got.Contours) != len(res.Contours) {
		t.Errorf("Contours = %d, want %d", len(got.Contours), len(res.Contours))
	}
	if got.Relative != nil {
		t.Error("Relative should be omitted without series")
	}

	full := NewSummary(res, true)
	if len(full.Relative) != len(res.Points) || len(full.Absolute) != len(res.Points) {
		t.Errorf("series lengths %d, %d, want %d", len(full.Relative), len(full.Absolute), len(res.Points))
	}
}

func TestFeatureCollection(t *testing.T) {
	res := testResult(t)
	path := filepath.Join(t.TempDir(), "r.geojson")
	if err := WriteGeoJSON(path, res, Options{}); err != nil {
		t.Fatalf("WriteGeoJSON() error = %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		t.Fatalf("UnmarshalFeatureCollection() error = %v", err)
	}

	want := len(res.Contours) + len(res.Points)
	if len(fc.Features) != want {
		t.Fatalf("features = %d, want %d", len(fc.Features), want)
	}
	first := fc.Features[0]
	if first.Properties["kind"] != "contour" {
		t.Errorf("first feature kind = %v, want contour", first.Properties["kind"])
	}
	switch first.Geometry.(type) {
	case orb.LineString, orb.Polygon:
	default:
		t.Errorf("contour geometry = %T", first.Geometry)
	}
	last := fc.Features[len(fc.Features)-1]
	pt, ok := last.Geometry.(orb.Point)
	if !ok {
		t.Fatalf("sample geometry = %T, want orb.Point", last.Geometry)
	}
	lastSample := res.Points[len(res.Points)-1]
	if pt[0] != lastSample.X || pt[1] != lastSample.Y {
		t.Errorf("last sample = %v, want (%v, %v)", pt, lastSample.X, lastSample.Y)
	}
}

func TestWriteDXF(t *testing.T) {
	res := testResult(t)
	path := filepath.Join(t.TempDir(), "r.dxf")
	if err := WriteDXF(path, res, Options{}); err != nil {
		t.Fatalf("WriteDXF() error = %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	text := string(data)
	for _, want := range []string{LayerContour, LayerMesh, "LWPOLYLINE", "LINE", "EOF"} {
		if !strings.Contains(text, want) {
			t.Errorf("DXF output missing %q", want)
		}
	}
}

func TestWriteSTL(t *testing.T) {
	res := testResult(t)
	path := filepath.Join(t.TempDir(), "r.stl")
	if err := WriteSTL(path, res, Options{}); err != nil {
		t.Fatalf("WriteSTL() error = %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	// Binary STL: 80-byte header, uint32 count, 50 bytes per triangle.
	if info.Size() <= 84 || (info.Size()-84)%50 != 0 {
		t.Errorf("STL size = %d, not a binary STL", info.Size())
	}
}

func TestWritePNG(t *testing.T) {
	res := testResult(t)
	path := filepath.Join(t.TempDir(), "r.png")
	if err := WritePNG(path, res, Options{PNGSize: 80}); err != nil {
		t.Fatalf("WritePNG() error = %v", err)
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("png.Decode() error = %v", err)
	}
	// 8 x 4 area, longer side 80 px.
	if b := img.Bounds(); b.Dx() != 80 || b.Dy() != 40 {
		t.Errorf("image = %dx%d, want 80x40", b.Dx(), b.Dy())
	}
}

func TestHeat(t *testing.T) {
	if got := Heat(0); got != heatStops[0] {
		t.Errorf("Heat(0) = %v, want %v", got, heatStops[0])
	}
	if got := Heat(1); got != heatStops[len(heatStops)-1] {
		t.Errorf("Heat(1) = %v, want %v", got, heatStops[len(heatStops)-1])
	}
	if got := Heat(-3); got != heatStops[0] {
		t.Errorf("Heat(-3) = %v, want clamped %v", got, heatStops[0])
	}
}

func TestEncodeCSV(t *testing.T) {
	res := testResult(t)
	var buf bytes.Buffer
	if err := EncodeCSV(&buf, res); err != nil {
		t.Fatalf("EncodeCSV() error = %v", err)
	}
	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	if len(rows) != len(res.Points)+1 {
		t.Fatalf("rows = %d, want %d", len(rows), len(res.Points)+1)
	}
	if strings.Join(rows[0], ",") != strings.Join(csvHeader, ",") {
		t.Errorf("header = %v", rows[0])
	}
	// Sample (1, 0) follows the whole first U row.
	row := rows[res.Grid.Index(1, 0)+1]
	if row[1] != "1" || row[2] != "0" {
		t.Errorf("row i, j = %s, %s, want 1, 0", row[1], row[2])
	}
}
