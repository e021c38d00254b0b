package seamcarve

import "github.com/pkg/errors"

// Error kinds reported by the carver. Callers match them with errors.Is,
// the returned errors carry additional context.
var (
	// ErrAllocation is returned when a grid of the requested size cannot be allocated.
	ErrAllocation = errors.New("grid allocation failed")
	// ErrDimensionMismatch is returned for targets larger than the source
	// or for seams whose length disagrees with the grid.
	ErrDimensionMismatch = errors.New("dimension mismatch")
	// ErrInvalidSeam signals a seam with an out of range coordinate or a disconnected step.
	ErrInvalidSeam = errors.New("invalid seam")
	// ErrDegenerateGrid is returned for grids with a zero width or height.
	ErrDegenerateGrid = errors.New("degenerate grid")
)
