package trajectory

// An Interval is a contiguous arc-length range on a trajectory. Start and
// End coincide for an interval produced by a single isolated sample.
// Intervals are ephemeral query results; they are not stored on the
// trajectory.
type Interval struct {
	Start float64
	End   float64
}

// FindIntervals returns the maximal contiguous arc-length intervals over
// which pred holds, evaluating it on the external-domain point
// reconstructed at every basis position. Adjacent true samples merge into
// one interval; intervals are returned in ascending arc-length order.
func FindIntervals[P any](tr *Trajectory[P], pred func(P) bool) []Interval {
	var out []Interval
	runStart := -1
	for i, b := range tr.bases {
		if pred(tr.Compute(b)) {
			if runStart < 0 {
				runStart = i
			}
			continue
		}
		if runStart >= 0 {
			out = append(out, Interval{Start: tr.bases[runStart], End: tr.bases[i-1]})
			runStart = -1
		}
	}
	if runStart >= 0 {
		out = append(out, Interval{Start: tr.bases[runStart], End: tr.bases[len(tr.bases)-1]})
	}
	return out
}
