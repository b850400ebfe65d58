// Package adapt converts activations and masks between the channel-first 4D
// layout used by convolutional layers and the flattened 2D layout consumed
// by dense compute and loss functions.
//
// All functions operate on row-major *tensor.Dense values. The permutations
// are applied lazily and only re-materialized (copied into the implied
// row-major order) when the permuted layout is not contiguous; this is the
// only copy these functions ever make, and it is logged at klog verbosity 2.
//
// Aliasing: unless stated otherwise the input tensor is reinterpreted in
// place -- the returned tensor shares the input's backing storage and the
// input's own shape header is modified. Callers that need the original
// tensor unchanged should Clone first.
package adapt

import (
	"github.com/dustin/go-humanize"
	"github.com/pdevine/tensor"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"

	"github.com/tensorkit/convgeom"
)

// Reshape4DTo2D flattens a `[batch, channels, height, width]` tensor to
// `[batch*height*width, channels]`: a permutation to channels-last followed
// by a collapse of the leading three axes.
//
// The input is modified in place and the result shares its storage.
func Reshape4DTo2D(in *tensor.Dense) (*tensor.Dense, error) {
	if in.Dims() != 4 {
		return nil, errors.Wrapf(convgeom.ErrInvalidArgument,
			"expected a tensor with rank 4, got rank %d with shape %v", in.Dims(), in.Shape())
	}
	s := in.Shape().Clone()

	// [n,c,h,w] -> [n,h,w,c], then collapse to [n*h*w,c].
	if err := in.T(0, 2, 3, 1); err != nil {
		return nil, errors.WithStack(err)
	}
	if in.IsMaterializable() {
		logMaterialize("Reshape4DTo2D", in)
		if err := in.Transpose(); err != nil {
			return nil, errors.WithStack(err)
		}
	}
	if err := in.Reshape(s[0]*s[2]*s[3], s[1]); err != nil {
		return nil, errors.WithStack(err)
	}
	return in, nil
}

// Reshape2DTo4D is the inverse of Reshape4DTo2D: it expands a
// `[batch*height*width, channels]` tensor back to channel-first 4D using
// toShape, which carries the target `[batch, channels, height, width]`.
//
// The input is modified in place; the result is materialized to contiguous
// channel-first order and shares the input's storage.
func Reshape2DTo4D(in2d *tensor.Dense, toShape []int) (*tensor.Dense, error) {
	if in2d.Dims() != 2 {
		return nil, errors.Wrapf(convgeom.ErrInvalidArgument,
			"expected a tensor with rank 2, got rank %d with shape %v", in2d.Dims(), in2d.Shape())
	}
	if len(toShape) != 4 {
		return nil, errors.Wrapf(convgeom.ErrInvalidArgument,
			"expected toShape with 4 elements, got %v", toShape)
	}
	if in2d.IsMaterializable() {
		logMaterialize("Reshape2DTo4D", in2d)
		in2d = tensor.Materialize(in2d).(*tensor.Dense)
	}

	// [n*h*w,c] -> [n,h,w,c] -> [n,c,h,w].
	n, c, h, w := toShape[0], toShape[1], toShape[2], toShape[3]
	if err := in2d.Reshape(n, h, w, c); err != nil {
		return nil, errors.WithStack(err)
	}
	if err := in2d.T(0, 3, 1, 2); err != nil {
		return nil, errors.WithStack(err)
	}
	if in2d.IsMaterializable() {
		if err := in2d.Transpose(); err != nil {
			return nil, errors.WithStack(err)
		}
	}
	return in2d, nil
}

// ReshapeMaskIfRequired flattens a mask to the `[batch*height*width, 1]`
// (or `[batch*height*width, channels]`) layout matching Reshape4DTo2D
// applied to output. The mask rank selects the conversion:
//
//   - nil mask: returns nil.
//   - rank 2, `[batch, 1]`: broadcast over the output's spatial extent,
//     see Adapt2DMask.
//   - rank 3, `[batch, height, width]`: flattened directly, see
//     Reshape3DMask.
//   - anything else: treated as a rank-4 tensor and flattened like the
//     activations.
func ReshapeMaskIfRequired(mask, output *tensor.Dense) (*tensor.Dense, error) {
	if mask == nil {
		return nil, nil
	}
	switch mask.Dims() {
	case 2:
		return Adapt2DMask(mask, output)
	case 3:
		return Reshape3DMask(mask)
	default:
		return Reshape4DTo2D(mask)
	}
}

// Adapt2DMask broadcasts a per-example mask of shape `[batch, 1]` over the
// spatial extent of the 4D output and flattens it to
// `[batch*height*width, 1]`.
//
// The mask is not modified; the result never aliases it (the broadcast is a
// copy).
func Adapt2DMask(mask, output *tensor.Dense) (*tensor.Dense, error) {
	if mask.Dims() != 2 {
		return nil, errors.Wrapf(convgeom.ErrInvalidArgument,
			"expected a mask with rank 2, got rank %d with shape %v", mask.Dims(), mask.Shape())
	}
	if output.Dims() != 4 {
		return nil, errors.Wrapf(convgeom.ErrInvalidArgument,
			"expected an output with rank 4, got rank %d with shape %v", output.Dims(), output.Shape())
	}
	s := output.Shape()
	n, h, w := s[0], s[2], s[3]

	// Broadcast [n,1] to [n,1,h,w] by copying along the spatial axes.
	bMask := mask.Clone().(*tensor.Dense)
	if err := bMask.Reshape(n, 1, 1, 1); err != nil {
		return nil, errors.WithStack(err)
	}
	t, err := tensor.Repeat(bMask, 2, h)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	if t, err = tensor.Repeat(t, 3, w); err != nil {
		return nil, errors.WithStack(err)
	}
	bMask = t.(*tensor.Dense)

	// Move the singleton channel axis to the end and collapse.
	if err = bMask.T(0, 2, 3, 1); err != nil {
		return nil, errors.WithStack(err)
	}
	if bMask.IsMaterializable() {
		if err = bMask.Transpose(); err != nil {
			return nil, errors.WithStack(err)
		}
	}
	if err = bMask.Reshape(n*h*w, 1); err != nil {
		return nil, errors.WithStack(err)
	}
	return bMask, nil
}

// Reshape3DMask flattens a `[batch, height, width]` mask (implicitly
// broadcast across channels) to `[batch*height*width, 1]`.
//
// The mask is modified in place and the result shares its storage, unless a
// re-materialization copy was needed first.
func Reshape3DMask(mask *tensor.Dense) (*tensor.Dense, error) {
	if mask.Dims() != 3 {
		return nil, errors.Wrapf(convgeom.ErrInvalidArgument,
			"expected a mask with rank 3, got rank %d with shape %v", mask.Dims(), mask.Shape())
	}
	if mask.IsMaterializable() {
		logMaterialize("Reshape3DMask", mask)
		mask = tensor.Materialize(mask).(*tensor.Dense)
	}
	if err := mask.Reshape(mask.Shape().TotalSize(), 1); err != nil {
		return nil, errors.WithStack(err)
	}
	return mask, nil
}

// Reshape4DMask flattens a rank-4 mask exactly like the activations.
func Reshape4DMask(mask *tensor.Dense) (*tensor.Dense, error) {
	return Reshape4DTo2D(mask)
}

func logMaterialize(op string, t *tensor.Dense) {
	if !klog.V(2).Enabled() {
		return
	}
	numBytes := uint64(t.Shape().TotalSize()) * uint64(t.Dtype().Size())
	klog.V(2).Infof("%s: re-materializing a %s copy for shape %v", op, humanize.Bytes(numBytes), t.Shape())
}
