package convgeom

import (
	"github.com/pkg/errors"

	"github.com/tensorkit/convgeom/xslices"
)

// InputType describes the spatial layout of data feeding a convolutional
// layer. It is a closed set of variants: Convolutional (channel-first image
// data) and ConvolutionalFlat (image data flattened to a vector per
// example).
type InputType interface {
	isInputType()
}

// Convolutional is image-like input data, shaped `[batch, channels, height,
// width]`.
type Convolutional struct {
	Height, Width, Channels int
}

// ConvolutionalFlat is image-like input data flattened to one row per
// example, `[batch, height*width*depth]`.
type ConvolutionalFlat struct {
	Height, Width, Depth int
}

func (Convolutional) isInputType()     {}
func (ConvolutionalFlat) isInputType() {}

// HWDFromInputType returns the (height, width, depth) triple declared by the
// given input type. Any variant other than Convolutional or
// ConvolutionalFlat fails with ErrInvalidState.
func HWDFromInputType(inputType InputType) ([]int, error) {
	switch it := inputType.(type) {
	case Convolutional:
		return []int{it.Height, it.Width, it.Channels}, nil
	case ConvolutionalFlat:
		return []int{it.Height, it.Width, it.Depth}, nil
	default:
		return nil, errors.Wrapf(ErrInvalidState,
			"invalid input type: expected Convolutional or ConvolutionalFlat, got %T", inputType)
	}
}

// HeightAndWidth reads the last two elements of a shape vector, in reversed
// order: result[0] is the last element and result[1] the second-to-last.
// Callers rely on this order.
func HeightAndWidth(shape []int) ([]int, error) {
	if len(shape) < 2 {
		return nil, errors.Wrapf(ErrInvalidArgument,
			"no width and height able to be found: shape must be at least length 2, got %v", shape)
	}
	return []int{xslices.At(shape, -1), xslices.At(shape, -2)}, nil
}

// NumChannels returns the number of channels (feature maps) implied by a
// tensor shape: the element at axis 1 for channel-first shapes of rank 4 or
// more, and 1 otherwise.
func NumChannels(shape []int) int {
	if len(shape) < 4 {
		return 1
	}
	return shape[1]
}
