package trajectory

import "math"

// Point is a position in the plane.
//
// Trajectories are planar: an optional elevation is carried as an ordinary
// scalar field by the [Adapter] rather than as a third coordinate, since
// every geometric query in this package (azimuth, curvature, closest point,
// crossing detection) is defined on the xy-plane.
type Point struct {
	X float64
	Y float64
}

// Pt returns the point (x, y).
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Sub computes pt−o.
func (pt Point) Sub(o Point) Vec2 {
	return Vec2{
		X: pt.X - o.X,
		Y: pt.Y - o.Y,
	}
}

// Translate moves the point by the vector v.
func (pt Point) Translate(v Vec2) Point {
	return Point{
		X: pt.X + v.X,
		Y: pt.Y + v.Y,
	}
}

// Lerp linearly interpolates between two points.
func (pt Point) Lerp(o Point, t float64) Point {
	return Point(Vec2(pt).Lerp(Vec2(o), t))
}

// Distance returns the euclidean distance between two points.
func (pt Point) Distance(o Point) float64 {
	x := pt.X - o.X
	y := pt.Y - o.Y
	return math.Hypot(x, y)
}

// DistanceSquared returns the squared euclidean distance between two points.
func (pt Point) DistanceSquared(o Point) float64 {
	x := pt.X - o.X
	y := pt.Y - o.Y
	return x*x + y*y
}
