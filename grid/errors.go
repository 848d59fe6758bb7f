package grid

import "errors"

// Configuration errors shared by the kernel packages. Kernel entry points
// wrap these with the offending buffer, axis and bounds, and always validate
// before mutating any output.
var (
	ErrDimension   = errors.New("dimensionality mismatch")
	ErrBoxMismatch = errors.New("ghostbox mismatch")
	ErrFillBox     = errors.New("fillbox not contained in stencil-safe region")
	ErrBadSpacing  = errors.New("invalid grid spacing")
)
