package trajectory

import "math"

// MaxCurvature returns the maximum absolute curvature of tr, sampled at
// every basis position and at every segment midpoint. The result is never
// negative. The scan is bounded by the basis length, so it completes in
// time proportional to the trajectory's sample count.
func MaxCurvature[P any](tr *Trajectory[P]) float64 {
	m := 0.0
	for i, b := range tr.bases {
		m = math.Max(m, math.Abs(tr.Curvature(b)))
		if i+1 < len(tr.bases) {
			mid := 0.5 * (b + tr.bases[i+1])
			m = math.Max(m, math.Abs(tr.Curvature(mid)))
		}
	}
	return m
}
