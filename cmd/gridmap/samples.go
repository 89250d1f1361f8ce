// SPDX-License-Identifier: MIT

package main

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/hauke96/sigolo/v2"
	"github.com/katalvlaran/gridmap/layer"
	"github.com/pkg/errors"
)

type writeMode string

const (
	modeSet writeMode = "set"
	modeAdd writeMode = "add"
)

// sample is one "x y value" record.
type sample struct {
	X, Y, Value float64
}

type applyStats struct {
	Applied int
	Skipped int
}

// readSamples parses whitespace-separated "x y value" lines. Blank lines and
// lines starting with '#' are ignored.
func readSamples(r io.Reader) ([]sample, error) {
	var samples []sample
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) != 3 {
			return nil, errors.Errorf("Line %d: expected 'x y value', got %d fields", lineNo, len(fields))
		}
		var parsed [3]float64
		for i, field := range fields {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, errors.Wrapf(err, "Line %d: unable to parse field %d", lineNo, i+1)
			}
			parsed[i] = v
		}
		samples = append(samples, sample{X: parsed[0], Y: parsed[1], Value: parsed[2]})
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "Unable to read samples")
	}

	return samples, nil
}

// applySamples writes every sample through CellAt. Out-of-bounds samples are
// skipped unless strict is set; any other error aborts.
func applySamples(l *layer.Layer, samples []sample, mode writeMode, strict bool) (applyStats, error) {
	var stats applyStats
	for _, s := range samples {
		c, err := l.CellAt(s.X, s.Y)
		if errors.Is(err, layer.ErrOutOfBounds) && !strict {
			sigolo.Tracef("Skip sample outside layer: %v", err)
			stats.Skipped++
			continue
		}
		if err != nil {
			return stats, errors.Wrapf(err, "Unable to write sample (%g,%g)", s.X, s.Y)
		}

		switch mode {
		case modeAdd:
			_, err = c.Add(s.Value)
		default:
			err = c.Set(s.Value)
		}
		if err != nil {
			return stats, errors.Wrapf(err, "Unable to write sample (%g,%g)", s.X, s.Y)
		}
		stats.Applied++
	}

	return stats, nil
}

func printInfo(w io.Writer, l *layer.Layer) {
	b := l.Bound()
	fmt.Fprintf(w, "id:         %s\n", l.ID())
	fmt.Fprintf(w, "cells:      %d x %d\n", l.Columns(), l.Rows())
	fmt.Fprintf(w, "resolution: %g\n", l.Resolution())
	fmt.Fprintf(w, "center:     %g %g\n", l.Center().X(), l.Center().Y())
	fmt.Fprintf(w, "bound:      %g %g %g %g\n", b.Min.X(), b.Min.Y(), b.Max.X(), b.Max.Y())
}

// printTraversal writes one "x y value" line per cell followed by a summary.
func printTraversal(w io.Writer, tr *layer.Traversal) {
	for p, v := range tr.All() {
		fmt.Fprintf(w, "%g %g %g\n", p.X(), p.Y(), v)
	}
	s := tr.Summary()
	fmt.Fprintf(w, "# cells=%d min=%g max=%g sum=%g mean=%g stddev=%g\n",
		s.Count, s.Min, s.Max, s.Sum, s.Mean, s.StdDev)
}
