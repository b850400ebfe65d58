package convgeom

import (
	"fmt"
	"math"

	"github.com/pkg/errors"
)

// dimNames names the spatial axes in error messages, indexed by axis.
var dimNames = [3]string{"height", "width", "channels"}

// ValidateShapes checks that the given kernel, strides and padding are
// consistent with the input spatial size under the given convolution mode.
//
// kernel is the kernel to validate with -- pass the effective (dilated)
// kernel for the forward direction. inputShape is the full tensor shape
// (`[batch, channels, spatial...]`) and is only used for error messages;
// inSize is the spatial size (height, width and, for rank-3 kernels, the
// channel/depth dimension). atrous tells whether kernel is an
// effective kernel, so the messages can say so.
//
// Two families of checks are run per spatial dimension:
//
//  1. Unless mode is Same, `0 < kernel <= inSize + 2*padding` must hold,
//     otherwise ErrInvalidInput is returned.
//  2. Under Strict mode, `(inSize - kernel + 2*padding)` must be divisible
//     by the stride, otherwise ErrInvalidConfig is returned with the
//     non-integer output size and the sizes obtainable via Truncate and
//     Same modes embedded in the message.
func ValidateShapes(inputShape []int, kernel, strides, padding []int, mode ConvolutionMode, dilation []int, inSize []int, atrous bool) error {
	rank := len(kernel)
	if rank != 2 && rank != 3 {
		return errors.Wrapf(ErrInvalidArgument, "kernel size has to be either two or three, got %d", rank)
	}
	if len(strides) != rank || len(padding) != rank || len(inSize) != rank {
		return errors.Wrapf(ErrInvalidArgument,
			"strides (%v), padding (%v) and input size (%v) must all match the kernel rank %d",
			strides, padding, inSize, rank)
	}

	if mode != Same {
		for i := 0; i < rank; i++ {
			if kernel[i] > 0 && kernel[i] <= inSize[i]+2*padding[i] {
				continue
			}
			kName := "kernel " + dimNames[i]
			if atrous {
				kName = "effective " + kName
			}
			return errors.Wrapf(ErrInvalidInput,
				"invalid input data or configuration: %s and input %s must satisfy 0 < %s <= input %s + 2 * padding %s, "+
					"got %s = %d, input %s = %d and padding %s = %d which do not satisfy 0 < %d <= %d%s",
				kName, dimNames[i], kName, dimNames[i], dimNames[i],
				kName, kernel[i], dimNames[i], inSize[i], dimNames[i], padding[i],
				kernel[i], inSize[i]+2*padding[i],
				commonErrMsg(inputShape, kernel, strides, padding, dilation))
		}
	}

	if mode != Strict {
		return nil
	}

	if (inSize[0]-kernel[0]+2*padding[0])%strides[0] != 0 {
		d := float64(inSize[0]-kernel[0]+2*padding[0])/float64(strides[0]) + 1.0
		str := fmt.Sprintf("%.2f", d)
		return errors.Wrapf(ErrInvalidConfig,
			"invalid configuration: combination of kernel size, stride and padding are not valid for the given input height, using Strict mode\n"+
				"Strict mode requires output height = (input height - kernelSize + 2*padding)/stride + 1 to be an integer, got (%d - %d + 2*%d)/%d + 1 = %s\n"+
				"To truncate/crop the input, such that output height = floor(%s) = %d, use Truncate mode. "+
				"Alternatively use Same mode, which will use padding to give an output height of ceil(%d/%d) = %d%s",
			inSize[0], kernel[0], padding[0], strides[0], str,
			str, int(d),
			inSize[0], strides[0], ceilQuotient(inSize[0], strides[0]),
			commonErrMsg(inputShape, kernel, strides, padding, dilation))
	}

	if (inSize[1]-kernel[1]+2*padding[1])%strides[1] != 0 {
		d := float64(inSize[1]-kernel[1]+2*padding[1])/float64(strides[1]) + 1.0
		str := fmt.Sprintf("%.2f", d)
		return errors.Wrapf(ErrInvalidConfig,
			"invalid configuration: combination of kernel size, stride and padding are not valid for the given input width, using Strict mode\n"+
				"Strict mode requires output width = (input width - kernelSize + 2*padding)/stride + 1 to be an integer, got (%d - %d + 2*%d)/%d + 1 = %s\n"+
				"To truncate/crop the input, such that output width = floor(%s) = %d, use Truncate mode. "+
				"Alternatively use Same mode, which will use padding to give an output width of ceil(%d/%d) = %d%s",
			inSize[1], kernel[1], padding[1], strides[1], str,
			str, int(d),
			inSize[1], strides[1], ceilQuotient(inSize[1], strides[1]),
			commonErrMsg(inputShape, kernel, strides, padding, dilation))
	}

	if rank == 3 && (inSize[2]-kernel[2]+2*padding[2])%strides[2] != 0 {
		d := float64(inSize[2]-kernel[2]+2*padding[2])/float64(strides[2]) + 1.0
		str := fmt.Sprintf("%.2f", d)
		// The reported divisor and the Same-mode operand below follow the
		// width message; the check itself uses the channel stride and size.
		return errors.Wrapf(ErrInvalidConfig,
			"invalid configuration: combination of kernel size, stride and padding are not valid for the given input width, using Strict mode\n"+
				"Strict mode requires output channels = (input - kernelSize + 2*padding)/stride + 1 to be an integer, got (%d - %d + 2*%d)/%d + 1 = %s\n"+
				"To truncate/crop the input, such that output width = floor(%s) = %d, use Truncate mode. "+
				"Alternatively use Same mode, which will use padding to give an output width of ceil(%d/%d) = %d%s",
			inSize[2], kernel[2], padding[2], strides[1], str,
			str, int(d),
			inSize[1], strides[2], ceilQuotient(inSize[2], strides[2]),
			commonErrMsg(inputShape, kernel, strides, padding, dilation))
	}

	return nil
}

// ValidateModePadding checks that the convolution mode is consistent with
// the padding specification: Same mode computes its own implicit padding,
// so any explicit non-zero padding alongside it is rejected.
func ValidateModePadding(mode ConvolutionMode, padding []int) error {
	if mode != Same {
		return nil
	}
	for _, p := range padding {
		if p != 0 {
			return errors.Wrapf(ErrInvalidArgument, "padding cannot be used when using the Same convolution mode, got padding %v", padding)
		}
	}
	return nil
}

// ValidateKernelStridePadding validates a 2D CNN layer configuration:
// kernelSize, stride and padding must each be non-nil with exactly two
// values, kernel and stride strictly positive and padding non-negative.
// Violations are reported as ErrInvalidState, naming the offending argument
// and value.
func ValidateKernelStridePadding(kernelSize, stride, padding []int) error {
	if len(kernelSize) != 2 {
		return errors.Wrapf(ErrInvalidState, "invalid kernel size: expected 2 values, got %v", kernelSize)
	}
	if len(stride) != 2 {
		return errors.Wrapf(ErrInvalidState, "invalid stride configuration: expected 2 values, got %v", stride)
	}
	if len(padding) != 2 {
		return errors.Wrapf(ErrInvalidState, "invalid padding configuration: expected 2 values, got %v", padding)
	}
	if kernelSize[0] <= 0 || kernelSize[1] <= 0 {
		return errors.Wrapf(ErrInvalidState, "invalid kernel size: values must be positive (> 0) for all dimensions, got %v", kernelSize)
	}
	if stride[0] <= 0 || stride[1] <= 0 {
		return errors.Wrapf(ErrInvalidState, "invalid stride configuration: values must be positive (> 0) for all dimensions, got %v", stride)
	}
	if padding[0] < 0 || padding[1] < 0 {
		return errors.Wrapf(ErrInvalidState, "invalid padding configuration: values must be >= 0 for all dimensions, got %v", padding)
	}
	return nil
}

// commonErrMsg renders the full call context appended to every validation
// error.
func commonErrMsg(inputShape, kernel, strides, padding, dilation []int) string {
	s := fmt.Sprintf("\nInput size: [numExamples,inputDepth,inputHeight,inputWidth]=%v, inputKernel=%v", inputShape, kernel)
	if HasDilation(dilation) {
		if eKernel, err := EffectiveKernelSize(kernel, dilation); err == nil {
			s += fmt.Sprintf(", effectiveKernelGivenDilation=%v", eKernel)
		}
	}
	return s + fmt.Sprintf(", strides=%v, padding=%v, dilation=%v", strides, padding, dilation)
}

func ceilQuotient(numerator, denominator int) int {
	return int(math.Ceil(float64(numerator) / float64(denominator)))
}
