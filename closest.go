package trajectory

import "math"

// Closest returns the arc length on tr whose position is nearest to pt.
//
// The trajectory is scanned one basis segment at a time, projecting the
// query point onto each segment's chord with the projection clamped to the
// segment. The winning segment and its neighbors are then refined against
// the fitted curve itself, so the result does not inherit the chord's error
// where the curve bulges away from it. Ties in the coarse scan resolve to
// the earliest segment, making the result deterministic. The result always
// lies in [0, tr.Length()].
func Closest[P any](tr *Trajectory[P], pt Point) float64 {
	bestSeg := 0
	bestDist := math.Inf(1)
	prev := tr.Position(tr.bases[0])
	for i := 0; i+1 < len(tr.bases); i++ {
		cur := tr.Position(tr.bases[i+1])
		distSq, _ := nearestOnSegment(prev, cur, pt)
		if distSq < bestDist {
			bestDist = distSq
			bestSeg = i
		}
		prev = cur
	}
	lo := tr.bases[max(bestSeg-1, 0)]
	hi := tr.bases[min(bestSeg+2, len(tr.bases)-1)]
	return minimizeDistance(tr, pt, lo, hi)
}

// ClosestPoint returns the position on tr nearest to pt.
func ClosestPoint[P any](tr *Trajectory[P], pt Point) Point {
	return tr.Position(Closest(tr, pt))
}

// minimizeDistance minimizes the distance from pt to the fitted curve over
// the arc-length span [lo, hi] by golden-section search. The span covers at
// most three basis segments, across which the distance to the curve is
// unimodal.
func minimizeDistance[P any](tr *Trajectory[P], pt Point, lo, hi float64) float64 {
	const invPhi = 0.618033988749895
	a, b := lo, hi
	c := b - invPhi*(b-a)
	d := a + invPhi*(b-a)
	fc := tr.Position(c).DistanceSquared(pt)
	fd := tr.Position(d).DistanceSquared(pt)
	for b-a > 1e-10 {
		if fc < fd {
			b, d, fd = d, c, fc
			c = b - invPhi*(b-a)
			fc = tr.Position(c).DistanceSquared(pt)
		} else {
			a, c, fc = c, d, fd
			d = a + invPhi*(b-a)
			fd = tr.Position(d).DistanceSquared(pt)
		}
	}
	return 0.5 * (a + b)
}

// nearestOnSegment projects pt onto the segment p0p1, returning the squared
// distance and the parameter clamped to [0, 1]. A zero-length segment
// reports its start point.
func nearestOnSegment(p0, p1, pt Point) (distSq, u float64) {
	d := p1.Sub(p0)
	dotp := d.Dot(pt.Sub(p0))
	dSq := d.Hypot2()
	switch {
	case dotp <= 0 || dSq == 0:
		return pt.Sub(p0).Hypot2(), 0
	case dotp >= dSq:
		return pt.Sub(p1).Hypot2(), 1
	default:
		u = dotp / dSq
		return pt.Sub(p0.Lerp(p1, u)).Hypot2(), u
	}
}
