package convgeom

import (
	"github.com/pkg/errors"
)

// OutputSize returns the spatial output size (height, width) of a 2D
// convolution over a channel-first input.
//
// inputShape is the full input tensor shape `[batch, channels, height,
// width]`; kernel, strides and padding give the height/width hyperparameters
// and dilation the kernel dilation (nil means no dilation).
//
// The configuration is validated against the effective (dilation-adjusted)
// kernel before any size is computed. Under Same mode the result is
// `ceil(in/stride)` per dimension; under Strict and Truncate it is
// `(in - effectiveKernel + 2*padding)/stride + 1` with integer division --
// exact for Strict (the validator guarantees divisibility), floored for
// Truncate.
func OutputSize(inputShape []int, kernel, strides, padding []int, mode ConvolutionMode, dilation []int) ([]int, error) {
	if len(inputShape) != 4 {
		return nil, errors.Wrapf(ErrInvalidArgument, "expected a 4D input shape [batch, channels, height, width], got %v", inputShape)
	}
	if dilation == nil {
		dilation = unitDilation
	}
	inH, inW := inputShape[2], inputShape[3]

	eKernel, err := EffectiveKernelSize(kernel, dilation)
	if err != nil {
		return nil, err
	}
	atrous := HasDilation(dilation)

	inSize := []int{inH, inW}
	if err = ValidateShapes(inputShape, eKernel, strides, padding, mode, dilation, inSize, atrous); err != nil {
		return nil, err
	}

	if mode == Same {
		return []int{ceilQuotient(inH, strides[0]), ceilQuotient(inW, strides[1])}, nil
	}
	return []int{
		(inH-eKernel[0]+2*padding[0])/strides[0] + 1,
		(inW-eKernel[1]+2*padding[1])/strides[1] + 1,
	}, nil
}

// DeconvolutionOutputSize returns the spatial output size (height, width) of
// a 2D deconvolution (transposed convolution) over a channel-first input:
// the inverse of the OutputSize computation.
//
// Under Same mode the result is `stride*in` per dimension, otherwise
// `stride*(in-1) + effectiveKernel - 2*padding`.
//
// Unlike OutputSize, the configuration is validated against the raw
// (non-dilated) kernel. This mirrors long-standing behavior that callers
// may depend on; see the package design notes.
func DeconvolutionOutputSize(inputShape []int, kernel, strides, padding []int, mode ConvolutionMode, dilation []int) ([]int, error) {
	if len(inputShape) != 4 {
		return nil, errors.Wrapf(ErrInvalidArgument, "expected a 4D input shape [batch, channels, height, width], got %v", inputShape)
	}
	if dilation == nil {
		dilation = unitDilation
	}
	inH, inW := inputShape[2], inputShape[3]

	eKernel, err := EffectiveKernelSize(kernel, dilation)
	if err != nil {
		return nil, err
	}
	atrous := HasDilation(dilation)

	inSize := []int{inH, inW}
	if err = ValidateShapes(inputShape, kernel, strides, padding, mode, dilation, inSize, atrous); err != nil {
		return nil, err
	}

	if mode == Same {
		return []int{strides[0] * inH, strides[1] * inW}, nil
	}
	return []int{
		strides[0]*(inH-1) + eKernel[0] - 2*padding[0],
		strides[1]*(inW-1) + eKernel[1] - 2*padding[1],
	}, nil
}

// SameModeTopLeftPadding returns the padding applied before each spatial
// dimension (top and left, for a 2D kernel) that realizes a Same-mode
// convolution with the given output size:
// `((out-1)*stride + effectiveKernel - in) / 2` per dimension.
//
// Whenever the bracketed quantity is odd the bottom/right padding is one
// larger; see SameModeBottomRightPadding.
func SameModeTopLeftPadding(outSize, inSize, kernel, strides, dilation []int) ([]int, error) {
	return sameModePadding(outSize, inSize, kernel, strides, dilation, 0)
}

// SameModeBottomRightPadding returns the padding applied after each spatial
// dimension (bottom and right, for a 2D kernel) that realizes a Same-mode
// convolution with the given output size. It is one larger than the
// top/left padding whenever `(out-1)*stride + effectiveKernel - in` is odd,
// and equal otherwise.
func SameModeBottomRightPadding(outSize, inSize, kernel, strides, dilation []int) ([]int, error) {
	return sameModePadding(outSize, inSize, kernel, strides, dilation, 1)
}

func sameModePadding(outSize, inSize, kernel, strides, dilation []int, roundUp int) ([]int, error) {
	eKernel, err := EffectiveKernelSize(kernel, dilation)
	if err != nil {
		return nil, err
	}
	rank := len(eKernel)
	if len(outSize) != rank || len(inSize) != rank || len(strides) != rank {
		return nil, errors.Wrapf(ErrInvalidArgument,
			"output size (%v), input size (%v) and strides (%v) must all match the kernel rank %d",
			outSize, inSize, strides, rank)
	}
	outPad := make([]int, rank)
	for i := range outPad {
		outPad[i] = ((outSize[i]-1)*strides[i] + eKernel[i] - inSize[i] + roundUp) / 2
		if outPad[i] < 0 {
			return nil, errors.Wrapf(ErrInvalidState,
				"invalid padding values calculated: %v - layer configuration is invalid? Input size %v, output size %v, kernel %v, strides %v, dilation %v",
				outPad, inSize, outSize, kernel, strides, dilation)
		}
	}
	return outPad, nil
}
