// SPDX-License-Identifier: MIT

// Package layer: functional options for New.
// Option constructors panic only on nonsensical values (programmer error);
// user-supplied geometry is validated by New and reported as errors.

package layer

// ---------- Defaults (single source of truth) ----------

const (
	// DefaultValidateNaNInf rejects NaN/±Inf writes through Cell handles.
	DefaultValidateNaNInf = true

	// DefaultMaxCells caps columns×rows for a single layer (2 GiB of float64).
	DefaultMaxCells = 1 << 28
)

const (
	panicMaxCellsInvalid = "layer: WithMaxCells: limit must be > 0"
)

// Option mutates layer construction settings.
type Option func(*options)

type options struct {
	validateNaNInf bool // numeric guard for Cell.Set/Cell.Add
	maxCells       int  // upper bound on columns×rows
}

func defaultOptions() options {
	return options{
		validateNaNInf: DefaultValidateNaNInf,
		maxCells:       DefaultMaxCells,
	}
}

// gatherOptions applies opts over the defaults in order; later options win.
func gatherOptions(opts ...Option) options {
	o := defaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	return o
}

// WithValidateNaNInf toggles rejection of NaN/±Inf writes.
// Disable it when NaN is used as an "unknown" marker in the layer.
func WithValidateNaNInf(on bool) Option {
	return func(o *options) { o.validateNaNInf = on }
}

// WithMaxCells overrides DefaultMaxCells. Panics if limit <= 0.
func WithMaxCells(limit int) Option {
	if limit <= 0 {
		panic(panicMaxCellsInvalid)
	}

	return func(o *options) { o.maxCells = limit }
}
