// Package trajectory represents an ordered sequence of points, such as a
// vehicle path or a reference line, as a continuous
// function of arc length.
//
// A [Trajectory] is built from raw points by a [Builder]. The builder
// accumulates arc length along the input polyline, densifies the resulting
// basis to the minimum sample count its interpolators need, and fits one
// interpolant per geometric dimension and per named scalar field over the
// shared basis. Construction is all-or-nothing: an invalid input (fewer than
// two points, inconsistent field sets) yields an error and no trajectory.
//
// Once built, a trajectory answers arc-length-indexed queries
// ([Trajectory.Position], [Trajectory.Azimuth], [Trajectory.Curvature],
// [Trajectory.Compute]) and supports in-place mutation: [Trajectory.Crop]
// restricts the support to a sub-range and re-bases arc length at zero, and
// field overlays ([Field.Set], [Field.Range]) assign scalar values to all or
// part of the curve. The geometric query suite ([Closest], [Crossed],
// [MaxCurvature], [FindIntervals]) operates on trajectories without mutating
// them.
//
// External point representations are bridged by an [Adapter], a pure
// bidirectional mapping between the caller's point type and plain
// coordinates plus named scalar fields. The library never inspects the
// external type itself.
//
// Trajectories are not synchronized. Read-only queries may run concurrently
// with each other, but no operation may run concurrently with a mutation
// (Crop, Set, Range.Set) on the same trajectory; callers needing shared
// access must serialize mutation externally.
package trajectory
