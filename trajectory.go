package trajectory

import (
	"fmt"
	"math"
	"sort"
)

const (
	// baseMergeEps is the distance below which an inserted basis position is
	// considered to already exist. Inserting closer samples would create
	// near-zero-width segments that destabilize spline fitting.
	baseMergeEps = 1e-10

	// rangeSlack absorbs final-ulp overshoot in caller arithmetic such as
	// Crop(l/3, 2*l/3) without weakening the fail-fast range checks.
	rangeSlack = 1e-10

	// curvatureEps is the curvature denominator below which the tangent is
	// considered degenerate and zero curvature is reported.
	curvatureEps = 1e-12
)

// A channel is one interpolated quantity over the trajectory's shared basis:
// a geometric dimension or a named scalar field. It owns its samples and the
// interpolant fitted to them; the basis itself lives on the trajectory.
type channel struct {
	samples []float64
	fitter  Fitter
	interp  Interpolator
}

func (c *channel) refit(bases []float64) error {
	interp, err := c.fitter.Fit(bases, c.samples)
	if err != nil {
		return err
	}
	c.interp = interp
	return nil
}

// A Trajectory is a parametric curve over arc length: two geometry channels
// (x, y) and any number of named scalar-field channels, all sharing one
// strictly increasing basis whose first sample is 0 and whose last sample is
// the curve's length.
//
// Trajectories are created by [Builder.Build] and mutated in place by
// [Trajectory.Crop] and by field overlays. Mutations must not run
// concurrently with any other operation on the same trajectory.
type Trajectory[P any] struct {
	adapter  Adapter[P]
	bases    []float64
	x, y     *channel
	fields   map[string]*channel
	names    []string // sorted field names, fixed at build time
	minBases int
}

// allChannels returns every channel in deterministic order: geometry first,
// then fields by name.
func (t *Trajectory[P]) allChannels() []*channel {
	chs := make([]*channel, 0, 2+len(t.names))
	chs = append(chs, t.x, t.y)
	for _, name := range t.names {
		chs = append(chs, t.fields[name])
	}
	return chs
}

func (t *Trajectory[P]) refitAll() error {
	for _, ch := range t.allChannels() {
		if err := ch.refit(t.bases); err != nil {
			return err
		}
	}
	return nil
}

// Length returns the trajectory's total arc length.
func (t *Trajectory[P]) Length() float64 {
	return t.bases[len(t.bases)-1]
}

// Position returns the position at arc length s, clamped to [0, Length].
func (t *Trajectory[P]) Position(s float64) Point {
	return Pt(t.x.interp.Compute(s), t.y.interp.Compute(s))
}

// Azimuth returns the tangent direction at arc length s in radians,
// measured like atan2.
func (t *Trajectory[P]) Azimuth(s float64) float64 {
	return Vec(t.x.interp.Derivative(s), t.y.interp.Derivative(s)).Angle()
}

// Curvature returns the signed planar curvature at arc length s. Where the
// tangent degenerates and the curvature denominator underflows, 0 is
// reported; this is expected at trajectory endpoints and hairpins.
func (t *Trajectory[P]) Curvature(s float64) float64 {
	xd := t.x.interp.Derivative(s)
	yd := t.y.interp.Derivative(s)
	xdd := t.x.interp.SecondDerivative(s)
	ydd := t.y.interp.SecondDerivative(s)
	denom := math.Pow(xd*xd+yd*yd, 1.5)
	if denom < curvatureEps {
		return 0
	}
	return (xd*ydd - yd*xdd) / denom
}

// Compute reconstructs an external-domain point at arc length s, clamped to
// [0, Length], with every field's value interpolated at s.
func (t *Trajectory[P]) Compute(s float64) P {
	s = math.Min(math.Max(s, 0), t.Length())
	var fields Fields
	if len(t.names) > 0 {
		fields = make(Fields, len(t.names))
		for _, name := range t.names {
			fields[name] = t.fields[name].interp.Compute(s)
		}
	}
	return t.adapter.Assemble(t.Position(s), fields)
}

// FieldNames returns the names of the trajectory's scalar fields in sorted
// order.
func (t *Trajectory[P]) FieldNames() []string {
	return append([]string(nil), t.names...)
}

// Field returns the overlay handle for the named scalar field.
func (t *Trajectory[P]) Field(name string) (*Field[P], error) {
	ch, ok := t.fields[name]
	if !ok {
		return nil, fmt.Errorf("field %q: %w", name, ErrUnknownField)
	}
	return &Field[P]{tr: t, name: name, ch: ch}, nil
}

// Crop restricts the trajectory's support to [start, start+length] and
// re-bases arc length so the new first sample is 0. Exact boundary samples
// are inserted; channel values at surviving samples are preserved, not
// recomputed. After a successful crop, Length reports exactly length.
//
// Crop fails with [ErrInvalidRange] if start < 0, length <= 0, or
// start+length exceeds the current length; it never clamps silently.
func (t *Trajectory[P]) Crop(start, length float64) error {
	if start < 0 || length <= 0 || start+length > t.Length()+rangeSlack {
		return fmt.Errorf("crop [%g, %g] of length %g: %w",
			start, start+length, t.Length(), ErrInvalidRange)
	}
	end := math.Min(start+length, t.Length())

	cropped := cropBases(t.bases, start, end)
	// An inserted boundary may collide with an existing sample to within a
	// few ulps; keep the earlier of the two.
	bases := cropped[:1]
	for _, b := range cropped[1:] {
		if b-bases[len(bases)-1] > baseMergeEps {
			bases = append(bases, b)
		}
	}
	bases[len(bases)-1] = end

	bases, err := fillBases(bases, t.minBases)
	if err != nil {
		return err
	}

	for _, ch := range t.allChannels() {
		samples := make([]float64, len(bases))
		for i, b := range bases {
			samples[i] = ch.interp.Compute(b)
		}
		ch.samples = samples
	}
	for i := range bases {
		bases[i] -= start
	}
	bases[0] = 0
	bases[len(bases)-1] = length

	t.bases = bases
	return t.refitAll()
}

// Restore reconstructs a discrete external-domain point sequence sampled at
// the trajectory's current basis, densified to at least minPoints samples.
// Every field's interpolated value is included at each sample.
func (t *Trajectory[P]) Restore(minPoints int) []P {
	bases, err := fillBases(t.bases, minPoints)
	if err != nil {
		// The basis invariant guarantees at least two samples.
		panic(err)
	}
	out := make([]P, len(bases))
	for i, b := range bases {
		out[i] = t.Compute(b)
	}
	return out
}

// insertBase splices a new basis sample at arc length s, giving every
// channel its interpolated value there, and reports whether anything was
// inserted. Samples within baseMergeEps of an existing one are not
// duplicated. Callers must refit the channels afterwards.
func (t *Trajectory[P]) insertBase(s float64) bool {
	i := sort.SearchFloat64s(t.bases, s)
	if i < len(t.bases) && t.bases[i]-s < baseMergeEps {
		return false
	}
	if i > 0 && s-t.bases[i-1] < baseMergeEps {
		return false
	}

	for _, ch := range t.allChannels() {
		v := ch.interp.Compute(s)
		ch.samples = append(ch.samples, 0)
		copy(ch.samples[i+1:], ch.samples[i:])
		ch.samples[i] = v
	}
	t.bases = append(t.bases, 0)
	copy(t.bases[i+1:], t.bases[i:])
	t.bases[i] = s
	return true
}
