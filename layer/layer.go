// SPDX-License-Identifier: MIT

// Package layer - dense world-anchored grid storage & coordinate quantization.
//
// Purpose:
//   - Own a single row-major buffer with the index formula row*columns + col.
//   - Map continuous world coordinates to cells with floor against the
//     lower-left corner (center - extent/2); boundary ties go to the higher cell.
//   - Guard every public entry point with bounds and lifecycle checks.
//
// Complexity quicksheet:
//   - New: O(c*r) zero-init; CellAt/Locate/CellCenter: O(1); String: O(c*r).

package layer

import (
	"fmt"
	"math"
	"strings"

	"github.com/google/uuid"
	"github.com/hauke96/sigolo/v2"
	"github.com/paulmach/orb"
)

// ---------- error context tags ----------

const (
	ctxNew           = "New"
	ctxRelease       = "Release"
	ctxCellAt        = "CellAt"
	ctxLocate        = "Locate"
	ctxCellCenter    = "CellCenter"
	ctxMakeTraversal = "MakeTraversal"
)

// ---------- Formatting literals ----------

const (
	_fmtRowOpen  = "["
	_fmtRowClose = "]\n"
	_fmtSep      = ", "
)

// quantizeULPs absorbs float noise in extent/resolution before Ceil, so
// 1.1/0.1 (11.000000000000002) yields 11 cells, not 12. The tolerance is a
// few ulps of the count, so a real fraction of a cell is never dropped.
const quantizeULPs = 4

// layerErrorf wraps err with the method tag and the world coordinates.
func layerErrorf(method string, x, y float64, err error) error {
	return fmt.Errorf("Layer.%s(%g,%g): %w", method, x, y, err)
}

// Layer is a fixed-extent grid of float64 cells over a world rectangle.
//   - cols,rows are derived once from width/height and resolution.
//   - cells is a flat buffer of length cols*rows in row-major order.
//   - minX,minY anchor column 0 / row 0 at the lower-left corner.
//
// The zero value is not usable; construct with New.
type Layer struct {
	id             uuid.UUID
	width, height  float64   // requested extent in world units
	centerX        float64   // world x of the extent center
	centerY        float64   // world y of the extent center
	resolution     float64   // edge length of one cell (>0)
	minX, minY     float64   // lower-left corner of the grid
	cols, rows     int       // grid shape (>=1 each)
	cells          []float64 // len == cols*rows; nil after Release
	validateNaNInf bool      // numeric guard for Cell writes
	released       bool
}

var _ fmt.Stringer = (*Layer)(nil)

// New creates a zero-filled layer covering width×height world units around
// (centerX, centerY) with square cells of edge resolution.
//
// Implementation:
//   - Stage 1: validate geometry (positive finite extent/resolution, finite center).
//   - Stage 2: columns = ceil(width/resolution), rows = ceil(height/resolution),
//     snapping ratios within quantizeULPs ulps above an integer.
//   - Stage 3: enforce the cell limit, then allocate the buffer once.
//
// Behavior highlights:
//   - All-or-nothing: on error no layer is returned.
//   - The buffer is never reallocated; extent and resolution are immutable.
//
// Errors:
//   - ErrInvalidGeometry (wrapped with the offending inputs).
//
// Complexity:
//   - Time O(c*r), Space O(c*r).
func New(width, height, centerX, centerY, resolution float64, opts ...Option) (*Layer, error) {
	o := gatherOptions(opts...)

	if !positiveFinite(width) || !positiveFinite(height) || !positiveFinite(resolution) {
		return nil, fmt.Errorf("Layer.%s(w=%g,h=%g,res=%g): %w",
			ctxNew, width, height, resolution, ErrInvalidGeometry)
	}
	if !finite(centerX) || !finite(centerY) {
		return nil, fmt.Errorf("Layer.%s(center=%g,%g): %w",
			ctxNew, centerX, centerY, ErrInvalidGeometry)
	}

	fc := cellCount(width, resolution)
	fr := cellCount(height, resolution)
	// Compare in float space so huge extents cannot overflow int.
	if fc*fr > float64(o.maxCells) {
		return nil, fmt.Errorf("Layer.%s: %gx%g cells exceeds limit %d: %w",
			ctxNew, fc, fr, o.maxCells, ErrInvalidGeometry)
	}
	cols, rows := int(fc), int(fr)

	l := &Layer{
		id:             uuid.New(),
		width:          width,
		height:         height,
		centerX:        centerX,
		centerY:        centerY,
		resolution:     resolution,
		minX:           centerX - width/2,
		minY:           centerY - height/2,
		cols:           cols,
		rows:           rows,
		cells:          make([]float64, cols*rows), // make() zero-fills
		validateNaNInf: o.validateNaNInf,
	}
	sigolo.Tracef("Created layer %s: %dx%d cells at resolution %g around (%g,%g)",
		l.id, cols, rows, resolution, centerX, centerY)

	return l, nil
}

// cellCount returns ceil(extent/resolution), at least 1.
func cellCount(extent, resolution float64) float64 {
	ratio := extent / resolution
	n := math.Round(ratio)
	if ratio > n && ratio-n <= quantizeULPs*(math.Nextafter(n, math.Inf(1))-n) {
		ratio = n
	}
	ratio = math.Ceil(ratio)
	if ratio < 1 {
		return 1
	}

	return ratio
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

func positiveFinite(v float64) bool { return finite(v) && v > 0 }

// Release drops the backing buffer and moves the layer to its terminal state.
// Outstanding Cell handles become invalid and panic on use; Traversal
// snapshots stay valid.
//
// Errors:
//   - ErrUseAfterRelease when the layer was already released.
func (l *Layer) Release() error {
	if l.released {
		return fmt.Errorf("Layer.%s(%s): %w", ctxRelease, l.id, ErrUseAfterRelease)
	}
	l.released = true
	l.cells = nil
	sigolo.Tracef("Released layer %s", l.id)

	return nil
}

// Released reports whether Release has been called.
func (l *Layer) Released() bool { return l.released }

// ID returns the identifier assigned at creation; it shows up in logs.
func (l *Layer) ID() uuid.UUID { return l.id }

// Columns returns the number of cells along x.
func (l *Layer) Columns() int { return l.cols }

// Rows returns the number of cells along y.
func (l *Layer) Rows() int { return l.rows }

// Len returns Columns()*Rows().
func (l *Layer) Len() int { return l.cols * l.rows }

// Width returns the requested extent along x in world units.
func (l *Layer) Width() float64 { return l.width }

// Height returns the requested extent along y in world units.
func (l *Layer) Height() float64 { return l.height }

// Resolution returns the edge length of one cell.
func (l *Layer) Resolution() float64 { return l.resolution }

// Center returns the world coordinates of the extent center.
func (l *Layer) Center() orb.Point { return orb.Point{l.centerX, l.centerY} }

// Bound returns the world rectangle covered by the cells. Min is the
// lower-left corner of cell (0,0); Max is Min + (columns, rows)*resolution,
// which exceeds Width/Height when they are not multiples of the resolution.
// Max is exclusive for CellAt.
func (l *Layer) Bound() orb.Bound {
	return orb.Bound{
		Min: orb.Point{l.minX, l.minY},
		Max: orb.Point{
			l.minX + float64(l.cols)*l.resolution,
			l.minY + float64(l.rows)*l.resolution,
		},
	}
}

// checkLive returns a wrapped ErrUseAfterRelease for released layers.
func (l *Layer) checkLive(method string) error {
	if l.released {
		return fmt.Errorf("Layer.%s(%s): %w", method, l.id, ErrUseAfterRelease)
	}

	return nil
}

// quantize maps world (x,y) to (row,col) without lifecycle checks.
// Non-finite inputs and anything outside [0,cols)×[0,rows) are rejected
// before the int conversion, so no overflow can slip through.
func (l *Layer) quantize(x, y float64) (row, col int, ok bool) {
	fc := math.Floor((x - l.minX) / l.resolution)
	fr := math.Floor((y - l.minY) / l.resolution)
	if math.IsNaN(fc) || math.IsNaN(fr) {
		return 0, 0, false
	}
	if fc < 0 || fc >= float64(l.cols) || fr < 0 || fr >= float64(l.rows) {
		return 0, 0, false
	}

	return int(fr), int(fc), true
}

// Locate returns the (row, col) of the cell containing world (x, y).
//
// Behavior highlights:
//   - col = floor((x - minX)/resolution), row = floor((y - minY)/resolution).
//   - A point on a shared cell edge belongs to the cell above/right of it.
//
// Errors:
//   - ErrOutOfBounds, ErrUseAfterRelease.
//
// Complexity:
//   - Time O(1), Space O(1).
func (l *Layer) Locate(x, y float64) (row, col int, err error) {
	if err = l.checkLive(ctxLocate); err != nil {
		return 0, 0, err
	}
	row, col, ok := l.quantize(x, y)
	if !ok {
		return 0, 0, layerErrorf(ctxLocate, x, y, ErrOutOfBounds)
	}

	return row, col, nil
}

// CellAt returns a read/write handle to the cell containing world (x, y).
// This is the only mutation entry point of a Layer; writes through the
// handle touch exactly one cell.
//
// Errors:
//   - ErrOutOfBounds when (x, y) lies outside Bound().
//   - ErrUseAfterRelease on a released layer.
//
// Complexity:
//   - Time O(1), Space O(1).
func (l *Layer) CellAt(x, y float64) (Cell, error) {
	if err := l.checkLive(ctxCellAt); err != nil {
		return Cell{}, err
	}
	row, col, ok := l.quantize(x, y)
	if !ok {
		return Cell{}, layerErrorf(ctxCellAt, x, y, ErrOutOfBounds)
	}

	return Cell{owner: l, row: row, col: col, off: row*l.cols + col}, nil
}

// CellAtPoint is CellAt for an orb.Point (X = p[0], Y = p[1]).
func (l *Layer) CellAtPoint(p orb.Point) (Cell, error) {
	return l.CellAt(p.X(), p.Y())
}

// CellCenter returns the world coordinates of the center of cell (row, col),
// the inverse of Locate.
//
// Errors:
//   - ErrIndexOutOfRange, ErrUseAfterRelease.
func (l *Layer) CellCenter(row, col int) (orb.Point, error) {
	if err := l.checkLive(ctxCellCenter); err != nil {
		return orb.Point{}, err
	}
	if row < 0 || row >= l.rows || col < 0 || col >= l.cols {
		return orb.Point{}, fmt.Errorf("Layer.%s(%d,%d): %w", ctxCellCenter, row, col, ErrIndexOutOfRange)
	}

	return cellCenter(l.minX, l.minY, l.resolution, row, col), nil
}

// cellCenter is shared by Layer, Cell and Traversal so all three agree.
func cellCenter(minX, minY, res float64, row, col int) orb.Point {
	return orb.Point{
		minX + (float64(col)+0.5)*res,
		minY + (float64(row)+0.5)*res,
	}
}

// MakeTraversal snapshots the current geometry and values into a read-only
// Traversal. Later writes through Cell handles are not visible in it, and
// it remains usable after Release.
//
// Errors:
//   - ErrUseAfterRelease on a released layer.
//
// Complexity:
//   - Time O(c*r), Space O(c*r).
func (l *Layer) MakeTraversal() (*Traversal, error) {
	if err := l.checkLive(ctxMakeTraversal); err != nil {
		return nil, err
	}
	values := make([]float64, len(l.cells))
	copy(values, l.cells)

	return &Traversal{
		source:     l.id,
		cols:       l.cols,
		rows:       l.rows,
		minX:       l.minX,
		minY:       l.minY,
		resolution: l.resolution,
		values:     values,
	}, nil
}

// String renders one bracketed line per row, row 0 first.
// A released layer renders as "Layer(<id>, released)".
func (l *Layer) String() string {
	if l.released {
		return fmt.Sprintf("Layer(%s, released)", l.id)
	}

	return formatRows(l.cells, l.rows, l.cols)
}

func formatRows(data []float64, rows, cols int) string {
	var b strings.Builder
	var i, j, base int
	for i = 0; i < rows; i++ {
		b.WriteString(_fmtRowOpen)
		base = i * cols
		for j = 0; j < cols; j++ {
			b.WriteString(fmt.Sprintf("%g", data[base+j]))
			if j+1 < cols {
				b.WriteString(_fmtSep)
			}
		}
		b.WriteString(_fmtRowClose)
	}

	return b.String()
}
