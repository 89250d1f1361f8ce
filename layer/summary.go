// SPDX-License-Identifier: MIT

package layer

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Summary holds descriptive statistics over a traversal's values.
type Summary struct {
	Count  int
	Min    float64
	Max    float64
	Sum    float64
	Mean   float64
	StdDev float64 // sample standard deviation; 0 for a single cell
}

// Summary computes statistics over every snapshot value.
// NaN values (possible only with WithValidateNaNInf(false)) propagate.
// A zero Traversal yields the zero Summary.
func (t *Traversal) Summary() Summary {
	if len(t.values) == 0 {
		return Summary{}
	}
	mean, variance := stat.MeanVariance(t.values, nil)
	if len(t.values) < 2 {
		variance = 0
	}

	return Summary{
		Count:  len(t.values),
		Min:    floats.Min(t.values),
		Max:    floats.Max(t.values),
		Sum:    floats.Sum(t.values),
		Mean:   mean,
		StdDev: math.Sqrt(variance),
	}
}
