// SPDX-License-Identifier: MIT

// Package layer - read-only traversal snapshots.
//
// A Traversal owns a private copy of a layer's values taken by
// Layer.MakeTraversal. It exposes no setter and never hands out the backing
// slice, so it can be shared with any number of concurrent readers.

package layer

import (
	"fmt"
	"iter"

	"github.com/google/uuid"
	"github.com/paulmach/orb"
)

const (
	ctxTraversalAt    = "At"
	ctxTraversalValue = "Value"
)

// Entry is one yielded cell: grid position, world center and value.
type Entry struct {
	Row, Col int
	Center   orb.Point
	Value    float64
}

// Traversal is a point-in-time, read-only snapshot of a Layer.
// Iteration order is row-major: row 0 first, column 0 first within a row,
// which is the same linearization as the layer's buffer.
type Traversal struct {
	source     uuid.UUID // ID of the layer it was taken from
	cols, rows int
	minX, minY float64
	resolution float64
	values     []float64 // private copy; len == cols*rows
}

var _ fmt.Stringer = (*Traversal)(nil)

// Source returns the ID of the layer the snapshot was taken from.
func (t *Traversal) Source() uuid.UUID { return t.source }

// Columns returns the grid width in cells.
func (t *Traversal) Columns() int { return t.cols }

// Rows returns the grid height in cells.
func (t *Traversal) Rows() int { return t.rows }

// Len returns the number of entries yielded by a full traversal.
func (t *Traversal) Len() int { return len(t.values) }

// Resolution returns the edge length of one cell.
func (t *Traversal) Resolution() float64 { return t.resolution }

// Bound returns the world rectangle covered by the snapshot.
func (t *Traversal) Bound() orb.Bound {
	return orb.Bound{
		Min: orb.Point{t.minX, t.minY},
		Max: orb.Point{
			t.minX + float64(t.cols)*t.resolution,
			t.minY + float64(t.rows)*t.resolution,
		},
	}
}

// entry builds the Entry at linear index i; i must be in range.
func (t *Traversal) entry(i int) Entry {
	row, col := i/t.cols, i%t.cols

	return Entry{
		Row:    row,
		Col:    col,
		Center: cellCenter(t.minX, t.minY, t.resolution, row, col),
		Value:  t.values[i],
	}
}

// At returns the i-th entry in traversal order or ErrIndexOutOfRange.
// Complexity: O(1).
func (t *Traversal) At(i int) (Entry, error) {
	if i < 0 || i >= len(t.values) {
		return Entry{}, fmt.Errorf("Traversal.%s(%d): %w", ctxTraversalAt, i, ErrIndexOutOfRange)
	}

	return t.entry(i), nil
}

// Value returns the snapshot value of cell (row, col) or ErrIndexOutOfRange.
// Complexity: O(1).
func (t *Traversal) Value(row, col int) (float64, error) {
	if row < 0 || row >= t.rows || col < 0 || col >= t.cols {
		return 0, fmt.Errorf("Traversal.%s(%d,%d): %w", ctxTraversalValue, row, col, ErrIndexOutOfRange)
	}

	return t.values[row*t.cols+col], nil
}

// Entries returns a lazy, restartable sequence over all cells.
// Each range over the result starts again at (0,0).
func (t *Traversal) Entries() iter.Seq[Entry] {
	return func(yield func(Entry) bool) {
		for i := range t.values {
			if !yield(t.entry(i)) {
				return
			}
		}
	}
}

// All returns a lazy, restartable sequence of (cell center, value) pairs.
func (t *Traversal) All() iter.Seq2[orb.Point, float64] {
	return func(yield func(orb.Point, float64) bool) {
		var row, col int
		for i, v := range t.values {
			row, col = i/t.cols, i%t.cols
			if !yield(cellCenter(t.minX, t.minY, t.resolution, row, col), v) {
				return
			}
		}
	}
}

// Do visits each entry in traversal order and stops early when f returns false.
// Complexity: O(c*r), no allocations.
func (t *Traversal) Do(f func(e Entry) bool) {
	for i := range t.values {
		if !f(t.entry(i)) {
			return
		}
	}
}

// Values returns a fresh copy of the snapshot values in traversal order.
func (t *Traversal) Values() []float64 {
	out := make([]float64, len(t.values))
	copy(out, t.values)

	return out
}

// String renders the snapshot like Layer.String.
func (t *Traversal) String() string {
	return formatRows(t.values, t.rows, t.cols)
}
