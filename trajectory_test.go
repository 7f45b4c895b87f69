package trajectory

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pathPoint is the external point type used throughout the tests: planar
// coordinates plus a velocity profile and a discrete lane id.
type pathPoint struct {
	X, Y     float64
	Velocity float64
	Lane     float64
}

type pathAdapter struct{}

func (pathAdapter) Extract(p pathPoint) (Point, Fields) {
	return Pt(p.X, p.Y), Fields{"velocity": p.Velocity, "lane": p.Lane}
}

func (pathAdapter) Assemble(pt Point, fields Fields) pathPoint {
	return pathPoint{X: pt.X, Y: pt.Y, Velocity: fields["velocity"], Lane: fields["lane"]}
}

func lanePoint(x, y, lane float64) pathPoint {
	return pathPoint{X: x, Y: y, Lane: lane}
}

func buildFixture(t *testing.T) *Trajectory[pathPoint] {
	t.Helper()
	points := []pathPoint{
		lanePoint(0.00, 0.00, 0), lanePoint(0.81, 1.68, 0),
		lanePoint(1.65, 2.98, 0), lanePoint(3.30, 4.01, 1),
		lanePoint(4.70, 4.52, 1), lanePoint(6.49, 5.20, 1),
		lanePoint(8.11, 6.07, 1), lanePoint(8.76, 7.23, 1),
		lanePoint(9.36, 8.74, 1), lanePoint(10.0, 10.0, 1),
	}
	tr, err := NewBuilder[pathPoint](pathAdapter{}, WithField("lane", Stairstep)).Build(points)
	require.NoError(t, err)
	return tr
}

func TestFixtureBuildFails(t *testing.T) {
	b := NewBuilder[pathPoint](pathAdapter{}, WithField("lane", Stairstep))
	_, err := b.Build([]pathPoint{lanePoint(0, 0, 0)})
	require.ErrorIs(t, err, ErrTooFewPoints)
}

func TestCompute(t *testing.T) {
	tr := buildFixture(t)
	length := tr.Length()

	velocity, err := tr.Field("velocity")
	require.NoError(t, err)
	rng, err := velocity.Range(length/3, length)
	require.NoError(t, err)
	require.NoError(t, rng.Set(10))

	point := tr.Compute(length / 2)
	assert.Greater(t, point.X, 0.0)
	assert.Less(t, point.X, 10.0)
	assert.Greater(t, point.Y, 0.0)
	assert.Less(t, point.Y, 10.0)
	assert.Equal(t, 1.0, point.Lane)
	assert.InDelta(t, 10.0, point.Velocity, 1e-9)
}

func TestManipulateVelocity(t *testing.T) {
	tr := buildFixture(t)
	length := tr.Length()

	velocity, err := tr.Field("velocity")
	require.NoError(t, err)
	require.NoError(t, velocity.Set(10))

	rng, err := velocity.Range(length/3, 2*length/3)
	require.NoError(t, err)
	require.NoError(t, rng.Set(5))

	assert.InDelta(t, 10, tr.Compute(0).Velocity, 1e-9)
	assert.InDelta(t, 5, tr.Compute(length/2).Velocity, 1e-9)
	assert.InDelta(t, 10, tr.Compute(length).Velocity, 1e-9)

	// The edit has exact boundaries.
	assert.InDelta(t, 5, velocity.At(length/3), 1e-9)
	assert.InDelta(t, 5, velocity.At(2*length/3), 1e-9)
}

func TestOverlayLastWriteWins(t *testing.T) {
	tr := buildFixture(t)
	length := tr.Length()

	velocity, err := tr.Field("velocity")
	require.NoError(t, err)
	require.NoError(t, velocity.Set(1))

	first, err := velocity.Range(0, 2*length/3)
	require.NoError(t, err)
	require.NoError(t, first.Set(2))

	second, err := velocity.Range(length/3, length)
	require.NoError(t, err)
	require.NoError(t, second.Set(3))

	assert.InDelta(t, 2, tr.Compute(length/6).Velocity, 1e-9)
	assert.InDelta(t, 3, tr.Compute(length/2).Velocity, 1e-9)
	assert.InDelta(t, 3, tr.Compute(length).Velocity, 1e-9)
}

func TestOverlayInvalidRange(t *testing.T) {
	tr := buildFixture(t)
	velocity, err := tr.Field("velocity")
	require.NoError(t, err)

	_, err = velocity.Range(-1, 2)
	require.ErrorIs(t, err, ErrInvalidRange)

	_, err = velocity.Range(2, 1)
	require.ErrorIs(t, err, ErrInvalidRange)

	_, err = velocity.Range(1, 1)
	require.ErrorIs(t, err, ErrInvalidRange)

	_, err = velocity.Range(0, tr.Length()+1)
	require.ErrorIs(t, err, ErrInvalidRange)
}

func TestAzimuth(t *testing.T) {
	tr := buildFixture(t)
	dir := tr.Azimuth(0)
	assert.Greater(t, dir, 0.0)
	assert.Less(t, dir, math.Pi/2)
}

func TestCurvatureAtStart(t *testing.T) {
	tr := buildFixture(t)
	curvature := tr.Curvature(0)
	assert.Greater(t, curvature, -1.0)
	assert.Less(t, curvature, 1.0)
}

func TestRestore(t *testing.T) {
	tr := buildFixture(t)

	velocity, err := tr.Field("velocity")
	require.NoError(t, err)
	rng, err := velocity.Range(4.0, tr.Length())
	require.NoError(t, err)
	require.NoError(t, rng.Set(5))

	// The ranged write inserted one basis sample at 4.0 into the ten-point
	// basis.
	points := tr.Restore(0)
	assert.Len(t, points, 11)

	// Densification on restore does not touch the trajectory itself.
	assert.Len(t, tr.Restore(30), 30)
	assert.Len(t, tr.Restore(0), 11)
}

func TestRestoreRoundTrip(t *testing.T) {
	tr := buildFixture(t)

	restored := tr.Restore(0)
	rebuilt, err := NewBuilder[pathPoint](pathAdapter{}, WithField("lane", Stairstep)).Build(restored)
	require.NoError(t, err)

	require.InDelta(t, tr.Length(), rebuilt.Length(), 1e-9)
	for _, f := range []float64{0, 0.1, 0.25, 0.5, 0.75, 0.9, 1} {
		s := f * tr.Length()
		want := tr.Position(s)
		got := rebuilt.Position(s)
		assert.InDelta(t, want.X, got.X, 1e-6)
		assert.InDelta(t, want.Y, got.Y, 1e-6)
	}
}

func TestCrop(t *testing.T) {
	tr := buildFixture(t)
	length := tr.Length()

	startExpect := tr.Compute(length / 3)
	endExpect := tr.Compute(length/3 + 1)

	require.NoError(t, tr.Crop(length/3, 1))

	assert.Equal(t, 1.0, tr.Length())

	startActual := tr.Compute(0)
	assert.InDelta(t, startExpect.X, startActual.X, 1e-9)
	assert.InDelta(t, startExpect.Y, startActual.Y, 1e-9)
	assert.Equal(t, startExpect.Lane, startActual.Lane)

	endActual := tr.Compute(tr.Length())
	assert.InDelta(t, endExpect.X, endActual.X, 1e-9)
	assert.InDelta(t, endExpect.Y, endActual.Y, 1e-9)
	assert.Equal(t, endExpect.Lane, endActual.Lane)
}

func TestCropFullLength(t *testing.T) {
	tr := buildFixture(t)
	length := tr.Length()

	mid := tr.Position(length / 2)
	require.NoError(t, tr.Crop(0, length))

	assert.Equal(t, length, tr.Length())
	got := tr.Position(length / 2)
	assert.InDelta(t, mid.X, got.X, 1e-9)
	assert.InDelta(t, mid.Y, got.Y, 1e-9)
}

func TestCropInvalidRange(t *testing.T) {
	tr := buildFixture(t)

	require.ErrorIs(t, tr.Crop(-1, 1), ErrInvalidRange)
	require.ErrorIs(t, tr.Crop(0, 0), ErrInvalidRange)
	require.ErrorIs(t, tr.Crop(0, -2), ErrInvalidRange)
	require.ErrorIs(t, tr.Crop(1, tr.Length()), ErrInvalidRange)

	// A failed crop leaves the trajectory untouched.
	assert.Greater(t, tr.Length(), 10.0)
}
