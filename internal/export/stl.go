package export

import (
	"github.com/pkg/errors"

	"github.com/Faultbox/octoland/internal/analysis"
	"github.com/Faultbox/octoland/pkg/kernel"
)

// ErrEmptyMesh is returned when there is nothing to write.
var ErrEmptyMesh = errors.New("mesh has no triangles")

// WriteSTL writes the analysis mesh, split into triangles, as binary STL.
func WriteSTL(path string, res *analysis.Result, _ Options) error {
	brep := kernel.NewBrep(res.Mesh.Triangles())
	if brep.FaceCount() == 0 {
		return ErrEmptyMesh
	}
	return brep.Mesh().SaveGroupedSTL(path)
}
