package trajectory

import (
	"math"
	"sort"
)

// crossingEps bounds both the parallelism test in segment intersection and
// the arc-length distance below which two crossings are considered the same
// (a curve tangent to the polyline at a shared segment vertex).
const crossingEps = 1e-9

// Crossed returns the arc lengths at which tr's path geometrically
// intersects any segment of the polyline, in ascending order. Candidate
// crossings are detected on chords between basis positions and segment
// midpoints, then sharpened against the fitted curve by bisection, so the
// reported arc lengths land on the polyline itself. A crossing shared by
// two adjacent segments is reported once. The result is empty when the
// curve never meets the polyline; Crossed cannot fail.
func Crossed[P any](tr *Trajectory[P], polyline []Point) []float64 {
	samples := halvedBases(tr.bases)

	var out []float64
	prev := tr.Position(samples[0])
	for i := 0; i+1 < len(samples); i++ {
		cur := tr.Position(samples[i+1])
		for j := 0; j+1 < len(polyline); j++ {
			u, ok := intersectSegments(prev, cur, polyline[j], polyline[j+1])
			if !ok {
				continue
			}
			s := samples[i] + u*(samples[i+1]-samples[i])
			out = append(out, refineCrossing(tr, polyline[j], polyline[j+1], samples[i], samples[i+1], s))
		}
		prev = cur
	}

	// Chords are visited in arc-length order, but several polyline
	// segments may cross one chord out of order.
	sort.Float64s(out)
	return dedupeAscending(out, crossingEps)
}

// halvedBases returns the basis positions with every segment midpoint
// interleaved, halving the chords the crossing scan works on.
func halvedBases(bases []float64) []float64 {
	out := make([]float64, 0, 2*len(bases)-1)
	for i, b := range bases {
		if i > 0 {
			out = append(out, 0.5*(bases[i-1]+b))
		}
		out = append(out, b)
	}
	return out
}

// refineCrossing sharpens a chord-level crossing against the fitted curve by
// bisecting on which side of the polyline segment's carrier line the curve
// lies. When the curve does not change sides across the chord span (a
// tangency), the chord estimate is kept.
func refineCrossing[P any](tr *Trajectory[P], q0, q1 Point, lo, hi, chord float64) float64 {
	e := q1.Sub(q0)
	side := func(s float64) float64 { return e.Cross(tr.Position(s).Sub(q0)) }
	flo, fhi := side(lo), side(hi)
	switch {
	case flo == 0:
		return lo
	case fhi == 0:
		return hi
	case (flo > 0) == (fhi > 0):
		return chord
	}
	for hi-lo > 1e-12 {
		mid := 0.5 * (lo + hi)
		fm := side(mid)
		if fm == 0 {
			return mid
		}
		if (fm > 0) == (flo > 0) {
			lo, flo = mid, fm
		} else {
			hi = mid
		}
	}
	return 0.5 * (lo + hi)
}

// intersectSegments intersects the segments p0p1 and q0q1 and reports the
// parameter of the intersection on p0p1. Parallel, coincident and
// degenerate segments yield no intersection.
func intersectSegments(p0, p1, q0, q1 Point) (float64, bool) {
	d := p1.Sub(p0)
	e := q1.Sub(q0)
	det := d.Cross(e)
	if math.Abs(det) < crossingEps {
		return 0, false
	}
	w := q0.Sub(p0)
	u := w.Cross(e) / det
	v := w.Cross(d) / det
	if u < -crossingEps || u > 1+crossingEps || v < 0 || v > 1 {
		return 0, false
	}
	return math.Min(math.Max(u, 0), 1), true
}

// dedupeAscending drops elements within eps of their predecessor. The input
// must be sorted ascending.
func dedupeAscending(xs []float64, eps float64) []float64 {
	if len(xs) == 0 {
		return nil
	}
	out := xs[:1]
	for _, x := range xs[1:] {
		if x-out[len(out)-1] > eps {
			out = append(out, x)
		}
	}
	return out
}
