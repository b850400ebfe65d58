package convgeom

import (
	"strings"

	"github.com/pkg/errors"
)

// ConvolutionMode selects how output spatial sizes are derived from the
// input size, kernel, strides and padding.
//
//   - Same: the output size depends only on the input size and strides
//     (`ceil(in/stride)`); the padding needed to achieve it is computed
//     internally, as symmetric as possible. Explicit padding must be zero.
//   - Strict: the standard formula `(in - kernel + 2*padding)/stride + 1`
//     must yield an exact integer, otherwise the configuration is rejected.
//   - Truncate: the standard formula with floor division; any fractional
//     remainder is silently discarded (the input is effectively cropped).
type ConvolutionMode int

const (
	Same ConvolutionMode = iota
	Strict
	Truncate
)

// String implements fmt.Stringer.
func (m ConvolutionMode) String() string {
	switch m {
	case Same:
		return "Same"
	case Strict:
		return "Strict"
	case Truncate:
		return "Truncate"
	}
	return "InvalidConvolutionMode"
}

// ParseConvolutionMode converts a case-insensitive mode name ("same",
// "strict" or "truncate") to the corresponding ConvolutionMode.
func ParseConvolutionMode(name string) (ConvolutionMode, error) {
	switch strings.ToLower(name) {
	case "same":
		return Same, nil
	case "strict":
		return Strict, nil
	case "truncate":
		return Truncate, nil
	}
	return Same, errors.Wrapf(ErrInvalidArgument, "unknown convolution mode %q, valid values are Same, Strict and Truncate", name)
}
