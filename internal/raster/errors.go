package raster

import (
	"errors"
	"fmt"
)

// Sentinel error kinds a render may fail with. Wrap these with
// fmt.Errorf("...: %w", ErrX) to add context; callers match with
// errors.Is.
var (
	// ErrInvalidGeometry is returned for a triangle-mode draw call whose
	// position count is not a multiple of 3, whose index count is not a
	// multiple of 3, or whose indices are out of range.
	ErrInvalidGeometry = errors.New("invalid geometry")

	// ErrUnsupported is returned for sparse accessors, unsupported index
	// component types, or unsupported texture mime types.
	ErrUnsupported = errors.New("unsupported")

	// ErrDimension is returned for a non-positive width or height.
	ErrDimension = errors.New("invalid dimensions")
)

// wrapInvalidGeometry formats a message and wraps it around
// ErrInvalidGeometry.
func wrapInvalidGeometry(format string, args ...any) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrInvalidGeometry)
}
