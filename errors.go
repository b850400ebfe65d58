package convgeom

import "github.com/pkg/errors"

// Error kinds wrapped by every error this package returns. Use errors.Is to
// classify an error; the message itself always carries the full numeric
// context of the failing call.
var (
	// ErrInvalidArgument indicates a malformed or rank-mismatched input
	// (wrong-length shape vectors, unsupported rank): a caller bug.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrInvalidInput indicates a kernel/padding/input-size combination that
	// is geometrically impossible for the requested mode.
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInvalidConfig indicates a Strict-mode divisibility violation: the
	// message embeds the exact arithmetic and the output sizes obtainable by
	// switching to Truncate or Same mode.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrInvalidState indicates that an internally derived padding or shape
	// became negative: an inconsistent combination of already-validated
	// values.
	ErrInvalidState = errors.New("invalid state")
)
