package trajectory

// Fields carries the named scalar values attached to one point, keyed by
// field name. A nil Fields means the point type carries no scalar fields.
type Fields map[string]float64

// An Adapter converts between an external point type and the plain planar
// coordinates plus named scalar fields a trajectory operates on.
//
// Both directions must be pure, side-effect-free functions, total over the
// point type's valid domain, and Extract must report the same field names
// for every point of one sequence. The library never inspects P itself;
// everything it knows about a point goes through the adapter.
type Adapter[P any] interface {
	Extract(p P) (Point, Fields)
	Assemble(pt Point, fields Fields) P
}

// PointsAdapter is the identity adapter for callers whose points are plain
// [Point] values with no scalar fields.
type PointsAdapter struct{}

func (PointsAdapter) Extract(p Point) (Point, Fields)   { return p, nil }
func (PointsAdapter) Assemble(pt Point, _ Fields) Point { return pt }
