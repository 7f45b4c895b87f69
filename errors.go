package trajectory

import "errors"

// Callers branch on these with [errors.Is]; call sites attach context by
// wrapping with %w.
var (
	// ErrTooFewPoints indicates that an input point or basis sequence is
	// shorter than the operation's minimum. Building needs at least two
	// points; cubic spline fitting needs at least four basis samples.
	ErrTooFewPoints = errors.New("trajectory: too few points")

	// ErrInvalidRange indicates an invalid or out-of-bounds arc-length span
	// passed to [Trajectory.Crop] or [Field.Range]. Spans are never clamped
	// silently; an inverted or out-of-range span is a caller error.
	ErrInvalidRange = errors.New("trajectory: invalid range")

	// ErrUnknownField indicates a field name the trajectory does not carry.
	ErrUnknownField = errors.New("trajectory: unknown field")

	// ErrInconsistentFields indicates that the adapter reported different
	// field sets for different points of one build input.
	ErrInconsistentFields = errors.New("trajectory: inconsistent fields")
)
