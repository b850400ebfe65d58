// Package convgeom computes the geometry of sliding-window tensor operations:
// output spatial sizes and paddings for 2D and 3D convolutions and
// deconvolutions, given input shape, kernel size, strides, padding, dilation
// and a convolution mode.
//
// All functions are pure and stateless: shape vectors are plain []int values,
// results are freshly allocated, and nothing is shared between calls, so
// every function is safe for concurrent use.
//
// The package only derives shapes and paddings -- it does not perform the
// convolution compute itself. The adapt subpackage provides the layout
// transformations (channel-first 4D to flattened 2D and back, plus mask
// broadcasting) that surround such a compute step.
//
// Errors are classified by sentinel: every error returned wraps one of
// ErrInvalidArgument, ErrInvalidInput, ErrInvalidConfig or ErrInvalidState,
// so callers can dispatch with errors.Is while still getting a complete
// diagnostic message.
package convgeom

// unitDilation is the default dilation: no expansion between kernel taps.
// It is never mutated.
var unitDilation = []int{1, 1}
