package trajectory

import (
	"fmt"
	"math"
)

// A Field is a scalar overlay bound to one named field of a trajectory,
// e.g. a velocity profile. Writes through it mutate the trajectory in place
// and must not run concurrently with any other operation on it.
type Field[P any] struct {
	tr   *Trajectory[P]
	name string
	ch   *channel
}

// At returns the field's interpolated value at arc length s, clamped to
// [0, Length].
func (f *Field[P]) At(s float64) float64 {
	return f.ch.interp.Compute(s)
}

// Set assigns v to every sample of the field.
func (f *Field[P]) Set(v float64) error {
	for i := range f.ch.samples {
		f.ch.samples[i] = v
	}
	return f.ch.refit(f.tr.bases)
}

// Range restricts a subsequent write to the arc-length span [start, end].
// It fails with [ErrInvalidRange] if start < 0, end exceeds the trajectory
// length, or the span is empty or inverted.
func (f *Field[P]) Range(start, end float64) (*FieldRange[P], error) {
	if start < 0 || end > f.tr.Length()+rangeSlack || start >= end {
		return nil, fmt.Errorf("field %q range [%g, %g] of length %g: %w",
			f.name, start, end, f.tr.Length(), ErrInvalidRange)
	}
	return &FieldRange[P]{
		f:     f,
		start: start,
		end:   math.Min(end, f.tr.Length()),
	}, nil
}

// A FieldRange is a pending ranged write to a field.
type FieldRange[P any] struct {
	f          *Field[P]
	start, end float64
}

// Set assigns v to every field sample whose arc length lies in
// [start, end]. Exact boundary samples are inserted into the shared basis
// first, with every other channel receiving its interpolated value there, so
// the field holds exactly v at both boundaries. Samples outside the span
// are untouched.
//
// Overlapping ranged writes apply in call order: the last write covering a
// sample wins.
func (r *FieldRange[P]) Set(v float64) error {
	tr := r.f.tr
	inserted := tr.insertBase(r.start)
	if tr.insertBase(r.end) {
		inserted = true
	}
	if inserted {
		if err := tr.refitAll(); err != nil {
			return err
		}
	}
	for i, b := range tr.bases {
		if b >= r.start-baseMergeEps && b <= r.end+baseMergeEps {
			r.f.ch.samples[i] = v
		}
	}
	return r.f.ch.refit(tr.bases)
}
