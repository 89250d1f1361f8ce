// SPDX-License-Identifier: MIT

// Package gridmap is an in-memory map layer library: a fixed-extent,
// resolution-quantized 2D grid of float64 cells addressed by world
// coordinates.
//
// What is in the box:
//
//   - layer/          — Layer (dense row-major store), Cell handles (the only
//     way to write a value) and Traversal snapshots (read-only, row-major).
//   - internal/config — YAML layer geometry for host tools.
//   - cmd/gridmap     — CLI that fills a layer from "x y value" samples.
//   - examples/       — runnable host program.
//
// Quick ASCII example, a 3 m × 2 m layer at 1 m resolution centered on the
// origin (cell centers shown):
//
//	 y
//	 1 ┌────────┬────────┬────────┐
//	   │(-1,.5) │ (0,.5) │ (1,.5) │  row 1
//	 0 ├────────┼────────┼────────┤
//	   │(-1,-.5)│ (0,-.5)│ (1,-.5)│  row 0
//	-1 └────────┴────────┴────────┘
//	 -1.5      -0.5     0.5      1.5  x
//
// A point on a shared edge belongs to the cell above/right of it.
//
//	go get github.com/katalvlaran/gridmap/layer
package gridmap
