package analysis

import (
	"github.com/pkg/errors"
)

// Analysis errors. Every one aborts the run before any output exists.
var (
	ErrInvalidSurface    = errors.New("surface is required")
	ErrInvalidResolution = errors.New("resolution must be greater than zero")
	ErrSampleLimit       = errors.New("resolution produces too many samples")
	ErrClosedSurface     = errors.New("closed surfaces are not supported")
	ErrMeshConstruction  = errors.New("mesh construction failed")
	ErrEmptyInput        = errors.New("no values to summarize")
	ErrNonFiniteStats    = errors.New("elevation statistics are not finite")
	ErrContourExtraction = errors.New("contour extraction failed")
)

// failure ties a lower-level cause to one of the analysis errors, so both
// errors.Is(err, ErrX) and errors.Is(err, cause) hold.
type failure struct {
	kind  error
	cause error
}

func (f *failure) Error() string {
	return f.kind.Error() + ": " + f.cause.Error()
}

func (f *failure) Is(target error) bool {
	return target == f.kind
}

func (f *failure) Unwrap() error {
	return f.cause
}

func fail(kind, cause error) error {
	return &failure{kind: kind, cause: cause}
}

// Diagnostic returns the message shown to a user for a failed analysis.
func Diagnostic(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrInvalidSurface):
		return "A surface is required."
	case errors.Is(err, ErrInvalidResolution):
		return "Resolution must be greater than zero."
	case errors.Is(err, ErrSampleLimit):
		return "Resolution is too fine for this surface; increase U or V resolution."
	case errors.Is(err, ErrClosedSurface):
		return "The input surface cannot be closed."
	case errors.Is(err, ErrMeshConstruction):
		return "Mesh built from the surface is not valid."
	case errors.Is(err, ErrEmptyInput):
		return "No sample points to compute elevation statistics."
	case errors.Is(err, ErrNonFiniteStats):
		return "Elevation statistics overflowed; the surface heights are too large."
	case errors.Is(err, ErrContourExtraction):
		return "Ground contour could not be extracted."
	default:
		return err.Error()
	}
}
