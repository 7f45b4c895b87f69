package trajectory

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/floats"
)

// defaultMinBases is the basis density every trajectory is densified to at
// minimum. It matches the arity of the cubic-spline fit, so a two-point
// input still yields a fittable basis.
const defaultMinBases = 4

type builderConfig struct {
	geometry     Fitter
	fieldDefault Fitter
	fields       map[string]Fitter
	minBases     int
}

// A BuilderOption adjusts how a [Builder] fits trajectories.
type BuilderOption func(*builderConfig)

// WithGeometry selects the interpolation kind for the x and y channels.
// The default is [CubicSpline].
func WithGeometry(f Fitter) BuilderOption {
	return func(cfg *builderConfig) { cfg.geometry = f }
}

// WithField selects the interpolation kind for one named scalar field,
// overriding the field default. Discrete fields such as lane ids typically
// want [Stairstep].
func WithField(name string, f Fitter) BuilderOption {
	return func(cfg *builderConfig) { cfg.fields[name] = f }
}

// WithFieldDefault selects the interpolation kind used for scalar fields
// that have no [WithField] override. The default is [Linear].
func WithFieldDefault(f Fitter) BuilderOption {
	return func(cfg *builderConfig) { cfg.fieldDefault = f }
}

// WithMinBases raises the minimum basis density. The effective minimum is
// never below what the configured interpolation kinds require.
func WithMinBases(n int) BuilderOption {
	return func(cfg *builderConfig) { cfg.minBases = n }
}

// A Builder validates raw point sequences and fits trajectories from them.
// One builder may build any number of trajectories.
type Builder[P any] struct {
	adapter Adapter[P]
	cfg     builderConfig
}

// NewBuilder returns a builder that converts points through adapter and
// applies opts in order.
func NewBuilder[P any](adapter Adapter[P], opts ...BuilderOption) *Builder[P] {
	cfg := builderConfig{
		geometry:     CubicSpline,
		fieldDefault: Linear,
		fields:       make(map[string]Fitter),
		minBases:     defaultMinBases,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Builder[P]{adapter: adapter, cfg: cfg}
}

func (b *Builder[P]) fitterFor(name string) Fitter {
	if f, ok := b.cfg.fields[name]; ok {
		return f
	}
	return b.cfg.fieldDefault
}

// Build fits a trajectory to the given point sequence. It fails with
// [ErrTooFewPoints] for fewer than two distinct points and with
// [ErrInconsistentFields] when the adapter reports differing field sets
// across points. Consecutive points with identical coordinates are
// collapsed, since a zero-length gap cannot carry a strictly increasing
// basis. No partial trajectory is ever returned.
func (b *Builder[P]) Build(points []P) (*Trajectory[P], error) {
	if len(points) < 2 {
		return nil, fmt.Errorf("build from %d points: %w", len(points), ErrTooFewPoints)
	}

	var (
		pts   []Point
		names []string
		raw   = make(map[string][]float64)
	)
	for idx, p := range points {
		pt, fields := b.adapter.Extract(p)
		if idx == 0 {
			for name := range fields {
				names = append(names, name)
			}
			sort.Strings(names)
		} else if len(fields) != len(names) {
			return nil, fmt.Errorf("point %d has %d fields, point 0 has %d: %w",
				idx, len(fields), len(names), ErrInconsistentFields)
		}
		if len(pts) > 0 && pt == pts[len(pts)-1] {
			continue
		}
		pts = append(pts, pt)
		for _, name := range names {
			v, ok := fields[name]
			if !ok {
				return nil, fmt.Errorf("point %d lacks field %q: %w", idx, name, ErrInconsistentFields)
			}
			raw[name] = append(raw[name], v)
		}
	}
	if len(pts) < 2 {
		return nil, fmt.Errorf("build from %d distinct points: %w", len(pts), ErrTooFewPoints)
	}

	// Arc length accumulated along the input polyline is the basis.
	steps := make([]float64, len(pts))
	for i := 1; i < len(pts); i++ {
		steps[i] = pts[i].Distance(pts[i-1])
	}
	bases := make([]float64, len(pts))
	floats.CumSum(bases, steps)

	required := max(b.cfg.minBases, b.cfg.geometry.MinPoints())
	for _, name := range names {
		required = max(required, b.fitterFor(name).MinPoints())
	}
	filled, err := fillBases(bases, required)
	if err != nil {
		return nil, err
	}

	newChannel := func(fitter Fitter, values []float64) (*channel, error) {
		ch := &channel{samples: resample(bases, values, filled), fitter: fitter}
		if err := ch.refit(filled); err != nil {
			return nil, err
		}
		return ch, nil
	}

	xs := make([]float64, len(pts))
	ys := make([]float64, len(pts))
	for i, pt := range pts {
		xs[i] = pt.X
		ys[i] = pt.Y
	}
	x, err := newChannel(b.cfg.geometry, xs)
	if err != nil {
		return nil, err
	}
	y, err := newChannel(b.cfg.geometry, ys)
	if err != nil {
		return nil, err
	}
	fields := make(map[string]*channel, len(names))
	for _, name := range names {
		ch, err := newChannel(b.fitterFor(name), raw[name])
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", name, err)
		}
		fields[name] = ch
	}

	return &Trajectory[P]{
		adapter:  b.adapter,
		bases:    filled,
		x:        x,
		y:        y,
		fields:   fields,
		names:    names,
		minBases: required,
	}, nil
}

// resample evaluates the raw polyline of (bases, values) at each requested
// position. Positions equal to an original base keep that base's value
// exactly, so densification never perturbs the input points.
func resample(bases, values, at []float64) []float64 {
	if len(at) == len(bases) {
		return append([]float64(nil), values...)
	}
	poly := linear{bases: bases, values: values}
	out := make([]float64, len(at))
	for i, s := range at {
		out[i] = poly.Compute(s)
	}
	return out
}
