package analysis

import (
	"github.com/pkg/errors"

	"github.com/Faultbox/octoland/pkg/surface"
)

// Validate checks the inputs of an analysis run. Resolutions must be
// positive (NaN is rejected) and the surface must be open in both
// directions.
func Validate(s surface.Surface, uRes, vRes float64) error {
	if s == nil {
		return ErrInvalidSurface
	}
	if !(uRes > 0) || !(vRes > 0) {
		return errors.Wrapf(ErrInvalidResolution, "u=%v v=%v", uRes, vRes)
	}
	for _, dir := range []surface.Direction{surface.U, surface.V} {
		if s.IsClosed(dir) {
			return errors.Wrapf(ErrClosedSurface, "closed in %s", dir)
		}
	}
	return nil
}
