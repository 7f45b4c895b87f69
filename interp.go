package trajectory

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// An Interpolator is a 1-D piecewise function over an arc-length basis,
// giving the interpolated value and its first two derivatives at an
// arbitrary arc length. Queries outside the basis span are clamped to it.
type Interpolator interface {
	Compute(s float64) float64
	Derivative(s float64) float64
	SecondDerivative(s float64) float64
}

// A Fitter fits an interpolator of one kind to samples over a basis.
// Fit does not retain the slices it is given.
type Fitter interface {
	Fit(bases, values []float64) (Interpolator, error)
	// MinPoints returns the minimum basis length the kind can be fitted to.
	MinPoints() int
}

// The interpolation kinds. CubicSpline is a natural cubic spline (second
// derivative zero at both ends), the default for geometry. Linear is
// piecewise linear, the default for scalar fields. Stairstep holds each
// sample's value until the next basis position; it suits discrete fields
// such as lane ids.
var (
	CubicSpline Fitter = cubicSplineFitter{}
	Linear      Fitter = linearFitter{}
	Stairstep   Fitter = stairstepFitter{}
)

// segment locates the basis segment containing s, clamping s to the basis
// span. It returns the index i such that bases[i] <= s <= bases[i+1] along
// with the clamped arc length.
func segment(bases []float64, s float64) (int, float64) {
	if s <= bases[0] {
		return 0, bases[0]
	}
	if s >= bases[len(bases)-1] {
		return len(bases) - 2, bases[len(bases)-1]
	}
	return floats.Within(bases, s), s
}

func checkFit(kind string, bases, values []float64, minPoints int) error {
	if len(bases) < minPoints {
		return fmt.Errorf("fit %s to %d bases: %w", kind, len(bases), ErrTooFewPoints)
	}
	if len(bases) != len(values) {
		return fmt.Errorf("fit %s: %d bases but %d values: %w",
			kind, len(bases), len(values), ErrInconsistentFields)
	}
	return nil
}

type cubicSplineFitter struct{}

func (cubicSplineFitter) MinPoints() int { return 4 }

// Fit solves the natural spline moment system, which is tridiagonal in the
// second derivatives at the bases, with gonum's tridiagonal solver.
func (cubicSplineFitter) Fit(bases, values []float64) (Interpolator, error) {
	if err := checkFit("cubic spline", bases, values, 4); err != nil {
		return nil, err
	}

	n := len(bases)
	dl := make([]float64, n-1)
	d := make([]float64, n)
	du := make([]float64, n-1)
	rhs := make([]float64, n)

	// Natural boundary: the first and last moments are pinned to zero.
	d[0] = 1
	d[n-1] = 1
	for i := 1; i < n-1; i++ {
		h0 := bases[i] - bases[i-1]
		h1 := bases[i+1] - bases[i]
		dl[i-1] = h0 / 6
		d[i] = (h0 + h1) / 3
		du[i] = h1 / 6
		rhs[i] = (values[i+1]-values[i])/h1 - (values[i]-values[i-1])/h0
	}

	var sol mat.VecDense
	if err := mat.NewTridiag(n, dl, d, du).SolveVecTo(&sol, false, mat.NewVecDense(n, rhs)); err != nil {
		return nil, fmt.Errorf("fit cubic spline: %w", err)
	}

	sp := &cubicSpline{
		bases:   append([]float64(nil), bases...),
		values:  append([]float64(nil), values...),
		moments: make([]float64, n),
	}
	for i := range sp.moments {
		sp.moments[i] = sol.AtVec(i)
	}
	return sp, nil
}

type cubicSpline struct {
	bases   []float64
	values  []float64
	moments []float64 // second derivatives at the bases
}

// coeffs returns the local cubic's coefficients on the segment containing s,
// together with the offset from the segment's left base.
func (sp *cubicSpline) coeffs(s float64) (a, b, c, d, t float64) {
	i, s := segment(sp.bases, s)
	h := sp.bases[i+1] - sp.bases[i]
	a = sp.values[i]
	b = (sp.values[i+1]-sp.values[i])/h - h*(2*sp.moments[i]+sp.moments[i+1])/6
	c = sp.moments[i] / 2
	d = (sp.moments[i+1] - sp.moments[i]) / (6 * h)
	t = s - sp.bases[i]
	return a, b, c, d, t
}

func (sp *cubicSpline) Compute(s float64) float64 {
	a, b, c, d, t := sp.coeffs(s)
	return a + t*(b+t*(c+t*d))
}

func (sp *cubicSpline) Derivative(s float64) float64 {
	_, b, c, d, t := sp.coeffs(s)
	return b + t*(2*c+t*3*d)
}

func (sp *cubicSpline) SecondDerivative(s float64) float64 {
	_, _, c, d, t := sp.coeffs(s)
	return 2*c + 6*d*t
}

type linearFitter struct{}

func (linearFitter) MinPoints() int { return 2 }

func (linearFitter) Fit(bases, values []float64) (Interpolator, error) {
	if err := checkFit("linear", bases, values, 2); err != nil {
		return nil, err
	}
	return &linear{
		bases:  append([]float64(nil), bases...),
		values: append([]float64(nil), values...),
	}, nil
}

type linear struct {
	bases  []float64
	values []float64
}

func (l *linear) Compute(s float64) float64 {
	i, s := segment(l.bases, s)
	t := (s - l.bases[i]) / (l.bases[i+1] - l.bases[i])
	return l.values[i] + t*(l.values[i+1]-l.values[i])
}

func (l *linear) Derivative(s float64) float64 {
	i, _ := segment(l.bases, s)
	return (l.values[i+1] - l.values[i]) / (l.bases[i+1] - l.bases[i])
}

func (l *linear) SecondDerivative(s float64) float64 { return 0 }

type stairstepFitter struct{}

func (stairstepFitter) MinPoints() int { return 2 }

func (stairstepFitter) Fit(bases, values []float64) (Interpolator, error) {
	if err := checkFit("stairstep", bases, values, 2); err != nil {
		return nil, err
	}
	return &stairstep{
		bases:  append([]float64(nil), bases...),
		values: append([]float64(nil), values...),
	}, nil
}

type stairstep struct {
	bases  []float64
	values []float64
}

func (st *stairstep) Compute(s float64) float64 {
	// The final sample's value holds at the end of the span; everywhere else
	// a sample's value holds up to, but not including, the next base.
	if s >= st.bases[len(st.bases)-1] {
		return st.values[len(st.values)-1]
	}
	i, _ := segment(st.bases, s)
	return st.values[i]
}

func (st *stairstep) Derivative(s float64) float64 { return 0 }

func (st *stairstep) SecondDerivative(s float64) float64 { return 0 }
