package tilt

import "errors"

// Domain errors for pointer handling and configuration.
var (
	// ErrDegenerateBounds indicates a bounding box with zero width or height.
	ErrDegenerateBounds = errors.New("tilt: degenerate bounding box (zero width or height)")

	// ErrInvalidPointer indicates a pointer position that is NaN or Inf.
	ErrInvalidPointer = errors.New("tilt: invalid pointer position (NaN or Inf detected)")

	// ErrParameterBounds indicates a configuration value outside its valid range.
	ErrParameterBounds = errors.New("tilt: parameter out of valid bounds")
)
