// SPDX-License-Identifier: MIT

package layer

import (
	"fmt"
	"math"

	"github.com/paulmach/orb"
)

// Cell is a bounds-checked read/write handle to one cell of a Layer.
// It is obtained from Layer.CellAt and is valid until the Layer is released;
// any use afterwards panics with an error wrapping ErrUseAfterRelease.
// The zero Cell is invalid and panics on use as well.
type Cell struct {
	owner *Layer
	row   int
	col   int
	off   int // row*cols + col, precomputed by CellAt
}

// mustLive panics when the handle outlived its layer (programmer error).
func (c Cell) mustLive(method string) {
	if c.owner == nil {
		panic(fmt.Errorf("Cell.%s: zero Cell: %w", method, ErrUseAfterRelease))
	}
	if c.owner.released {
		panic(fmt.Errorf("Cell.%s(%d,%d) on layer %s: %w", method, c.row, c.col, c.owner.id, ErrUseAfterRelease))
	}
}

// Row returns the cell's row (0 = lowest y).
func (c Cell) Row() int { return c.row }

// Col returns the cell's column (0 = lowest x).
func (c Cell) Col() int { return c.col }

// Index returns the row-major offset row*Columns()+col.
func (c Cell) Index() int { return c.off }

// Center returns the world coordinates of the cell center.
func (c Cell) Center() orb.Point {
	c.mustLive("Center")
	l := c.owner

	return cellCenter(l.minX, l.minY, l.resolution, c.row, c.col)
}

// Value reads the current value of the cell.
func (c Cell) Value() float64 {
	c.mustLive("Value")

	return c.owner.cells[c.off]
}

// Set overwrites the cell with v.
// Returns ErrNaNInf if v is not finite and the layer validates values;
// the cell is left unchanged in that case.
func (c Cell) Set(v float64) error {
	c.mustLive("Set")
	if c.owner.validateNaNInf && (math.IsNaN(v) || math.IsInf(v, 0)) {
		return fmt.Errorf("Cell.Set(%d,%d): %w", c.row, c.col, ErrNaNInf)
	}
	c.owner.cells[c.off] = v

	return nil
}

// Add accumulates delta into the cell and returns the new value.
// Same numeric policy as Set, applied to the result.
func (c Cell) Add(delta float64) (float64, error) {
	c.mustLive("Add")
	nv := c.owner.cells[c.off] + delta
	if c.owner.validateNaNInf && (math.IsNaN(nv) || math.IsInf(nv, 0)) {
		return c.owner.cells[c.off], fmt.Errorf("Cell.Add(%d,%d): %w", c.row, c.col, ErrNaNInf)
	}
	c.owner.cells[c.off] = nv

	return nv, nil
}
