package trajectory

import "fmt"

// fillBases densifies a strictly increasing basis to at least minPoints
// samples. If the basis is already dense enough it is returned unchanged.
// Otherwise the missing points are distributed as evenly as possible across
// the gaps (the first missing%gaps gaps receive one extra point) and
// each gap is subdivided into equal sub-intervals. Original basis values are
// preserved exactly, so the result is strictly increasing whenever the input
// is.
func fillBases(bases []float64, minPoints int) ([]float64, error) {
	n := len(bases)
	if n < 2 {
		return nil, fmt.Errorf("fill %d bases: %w", n, ErrTooFewPoints)
	}
	if n >= minPoints {
		return bases, nil
	}

	toAdd := minPoints - n
	gaps := n - 1
	perGap := toAdd / gaps
	extra := toAdd % gaps

	out := make([]float64, 0, minPoints)
	for i := 0; i < n-1; i++ {
		out = append(out, bases[i])

		add := perGap
		if i < extra {
			add++
		}
		step := (bases[i+1] - bases[i]) / float64(add+1)
		for j := 1; j <= add; j++ {
			out = append(out, bases[i]+float64(j)*step)
		}
	}
	out = append(out, bases[n-1])

	return out, nil
}

// cropBases restricts a strictly increasing basis to [start, end] inclusive,
// inserting exact boundary samples when they are not already present.
// The result always begins with start and ends with end; a boundary equal to
// an existing sample is never duplicated.
func cropBases(bases []float64, start, end float64) []float64 {
	out := make([]float64, 0, len(bases)+2)

	hasStart, hasEnd := false, false
	for _, b := range bases {
		if b == start {
			hasStart = true
		}
		if b == end {
			hasEnd = true
		}
	}

	if !hasStart {
		out = append(out, start)
	}
	for _, b := range bases {
		if b >= start && b <= end {
			out = append(out, b)
		}
	}
	if !hasEnd {
		out = append(out, end)
	}

	return out
}
