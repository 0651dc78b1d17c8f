package export

import (
	"github.com/yofu/dxf"
	"github.com/yofu/dxf/color"
	"github.com/yofu/dxf/entity"

	"github.com/Faultbox/octoland/internal/analysis"
)

// DXF layer names.
const (
	LayerContour = "CONTOUR"
	LayerMesh    = "MESH"
)

// WriteDXF writes the contours as lightweight polylines on the CONTOUR
// layer and the mesh wireframe as 3D lines on the MESH layer.
func WriteDXF(path string, res *analysis.Result, _ Options) error {
	d := dxf.NewDrawing()
	d.Header().LtScale = 1.0

	d.AddLayer(LayerMesh, color.Green, dxf.DefaultLineType, true)
	d.ChangeLayer(LayerMesh)
	v := res.Mesh.Vertices
	for _, e := range res.Mesh.Edges() {
		a, b := v[e[0]], v[e[1]]
		if _, err := d.Line(a.X, a.Y, a.Z, b.X, b.Y, b.Z); err != nil {
			return err
		}
	}

	d.AddLayer(LayerContour, color.Red, dxf.DefaultLineType, true)
	d.ChangeLayer(LayerContour)
	for _, c := range res.Contours {
		pts := c.Vertices()
		lwp := entity.NewLwPolyline(len(pts))
		for j, p := range pts {
			lwp.Vertices[j] = []float64{p.X, p.Y}
		}
		d.AddEntity(lwp)
	}

	return d.SaveAs(path)
}
