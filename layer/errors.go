// SPDX-License-Identifier: MIT

// Package layer: sentinel error set.
// Every message is prefixed with "layer: ..."; public methods wrap these with
// their method context via fmt.Errorf("%w"), so callers match with errors.Is.

package layer

import "errors"

var (
	// ErrInvalidGeometry is returned by New when width, height or resolution
	// is not a positive finite number, the center is not finite, or the
	// resulting grid exceeds the configured cell limit.
	ErrInvalidGeometry = errors.New("layer: invalid geometry")

	// ErrOutOfBounds indicates world coordinates outside the layer extent.
	// Recoverable: the caller may retry with corrected coordinates.
	ErrOutOfBounds = errors.New("layer: coordinates out of bounds")

	// ErrUseAfterRelease indicates an operation on a released layer.
	// This is a programming error; Cell handles panic with it.
	ErrUseAfterRelease = errors.New("layer: use after release")

	// ErrNaNInf signals a NaN or ±Inf write while the numeric policy is on.
	ErrNaNInf = errors.New("layer: NaN or Inf value")

	// ErrIndexOutOfRange indicates a row, column or linear index outside the grid.
	ErrIndexOutOfRange = errors.New("layer: index out of range")
)
