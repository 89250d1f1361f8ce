// SPDX-License-Identifier: MIT

// Package layer implements a fixed-extent, resolution-quantized 2D map layer:
// a dense row-major grid of float64 cells addressed by continuous world
// coordinates.
//
// What:
//
//   - Layer owns one contiguous []float64 covering an axis-aligned world
//     rectangle given by its center, width and height.
//   - CellAt quantizes (x, y) with floor against the lower-left corner and
//     returns a bounds-checked Cell handle, the only way to mutate a value.
//   - MakeTraversal copies the current values into a read-only Traversal that
//     yields (center, value) pairs in row-major order.
//
// Why:
//
//   - Occupancy and elevation maps, cost layers, heatmaps fed by a
//     perception pipeline that supplies coordinates and consumes values.
//
// Lifecycle:
//
//	New ──► Live ──Release──► Released (terminal)
//
// CellAt and MakeTraversal are valid only while Live and return
// ErrUseAfterRelease afterwards. A Cell handle used after Release panics with
// an error wrapping ErrUseAfterRelease. A Traversal is a snapshot and stays
// valid after Release.
//
// Complexity:
//
//   - New:           O(columns×rows) zero-init.
//   - CellAt/Locate: O(1).
//   - MakeTraversal: O(columns×rows) copy.
//
// Errors:
//
//   - ErrInvalidGeometry: non-positive or non-finite width/height/resolution,
//     non-finite center, or a grid larger than the configured cell limit.
//   - ErrOutOfBounds: coordinates outside the layer extent.
//   - ErrUseAfterRelease: operating on a released layer.
//   - ErrNaNInf: writing NaN/±Inf while the numeric policy is on.
//   - ErrIndexOutOfRange: row/column or linear index outside the grid.
//
// A Layer is single-owner and carries no locks. Hand Traversal snapshots to
// concurrent readers instead of sharing the Layer.
package layer
