package export

import (
	"os"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/Faultbox/octoland/internal/analysis"
)

// FeatureCollection converts res to GeoJSON: one feature per contour
// (LineString, or Polygon when closed) followed by one Point per sample
// carrying its elevations. Coordinates are world XY.
func FeatureCollection(res *analysis.Result) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()

	for i, c := range res.Contours {
		ls := make(orb.LineString, 0, len(c.Points)+1)
		for _, p := range c.Vertices() {
			ls = append(ls, orb.Point{p.X, p.Y})
		}
		var geom orb.Geometry = ls
		if c.Closed {
			geom = orb.Polygon{orb.Ring(ls)}
		}
		f := geojson.NewFeature(geom)
		f.Properties["kind"] = "contour"
		f.Properties["index"] = i
		f.Properties["closed"] = c.Closed
		f.Properties["length"] = c.Length()
		f.Properties["elevation"] = res.Plane.OriginZ()
		fc.Append(f)
	}

	for k, p := range res.Points {
		f := geojson.NewFeature(orb.Point{p.X, p.Y})
		f.Properties["kind"] = "sample"
		f.Properties["index"] = k
		f.Properties["relative"] = res.RelativeElevation[k]
		f.Properties["absolute"] = res.AbsoluteElevation[k]
		fc.Append(f)
	}
	return fc
}

// WriteGeoJSON writes contours and samples as a GeoJSON feature collection.
func WriteGeoJSON(path string, res *analysis.Result, _ Options) error {
	data, err := FeatureCollection(res).MarshalJSON()
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
