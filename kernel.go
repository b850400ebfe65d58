package convgeom

import (
	"github.com/pkg/errors"

	"github.com/tensorkit/convgeom/xslices"
)

// HasDilation reports whether the given dilation actually dilates the
// kernel, i.e. whether any component differs from 1. A nil dilation counts
// as no dilation.
func HasDilation(dilation []int) bool {
	for _, d := range dilation {
		if d != 1 {
			return true
		}
	}
	return false
}

// EffectiveKernelSize returns the kernel size after accounting for dilation:
// each component becomes `k + (k-1)*(d-1)`. With unit dilation the kernel is
// returned unchanged (as a copy, never aliasing the input).
//
// kernel must have rank 2 or 3 and dilation the same rank; a nil dilation
// means unit dilation.
func EffectiveKernelSize(kernel, dilation []int) ([]int, error) {
	rank := len(kernel)
	if rank != 2 && rank != 3 {
		return nil, errors.Wrapf(ErrInvalidArgument, "kernel size has to be either two or three, got %d", rank)
	}
	if dilation != nil && len(dilation) != rank {
		return nil, errors.Wrapf(ErrInvalidArgument, "dilation %v must have the same rank as the kernel %v", dilation, kernel)
	}
	if !HasDilation(dilation) {
		return xslices.Copy(kernel), nil
	}
	eKernel := make([]int, rank)
	for i, k := range kernel {
		eKernel[i] = k + (k-1)*(dilation[i]-1)
	}
	return eKernel, nil
}
