package convgeom

import (
	. "github.com/gomlx/exceptions"
	"github.com/pkg/errors"

	"github.com/tensorkit/convgeom/xslices"
)

// Conv2DConfig holds the geometry hyperparameters of a 2D convolutional
// layer: kernel size, strides, padding, dilation, number of filters and the
// convolution mode.
//
// Create it with Conv2D, chain the setters and then use Validate and the
// size methods. Setters panic on values that are malformed regardless of any
// input shape (a programmer error); Validate reports configuration errors
// through the package error kinds.
type Conv2DConfig struct {
	kernelSize []int
	strides    []int
	padding    []int
	dilation   []int
	filters    int
	mode       ConvolutionMode
}

// Conv2D returns a Conv2DConfig with unit strides, zero padding, no
// dilation and Truncate mode. KernelSize (or KernelSizePerDim) must be set
// before the configuration is used.
func Conv2D() *Conv2DConfig {
	return &Conv2DConfig{
		strides:  []int{1, 1},
		padding:  []int{0, 0},
		dilation: []int{1, 1},
		mode:     Truncate,
	}
}

// KernelSize sets the same kernel size for both spatial dimensions.
func (c *Conv2DConfig) KernelSize(size int) *Conv2DConfig {
	return c.KernelSizePerDim(size, size)
}

// KernelSizePerDim sets the kernel height and width individually.
func (c *Conv2DConfig) KernelSizePerDim(height, width int) *Conv2DConfig {
	c.kernelSize = []int{height, width}
	return c
}

// Strides sets the same stride for both spatial dimensions. Default is 1.
func (c *Conv2DConfig) Strides(stride int) *Conv2DConfig {
	return c.StridesPerDim(stride, stride)
}

// StridesPerDim sets the stride per spatial dimension.
func (c *Conv2DConfig) StridesPerDim(height, width int) *Conv2DConfig {
	c.strides = []int{height, width}
	return c
}

// Padding sets the same explicit padding for both spatial dimensions.
// Default is 0. Explicit padding cannot be combined with Same mode.
func (c *Conv2DConfig) Padding(padding int) *Conv2DConfig {
	return c.PaddingPerDim(padding, padding)
}

// PaddingPerDim sets the explicit padding per spatial dimension.
func (c *Conv2DConfig) PaddingPerDim(height, width int) *Conv2DConfig {
	c.padding = []int{height, width}
	return c
}

// Dilation sets the same kernel dilation for both spatial dimensions.
// Default is 1, meaning no dilation.
func (c *Conv2DConfig) Dilation(dilation int) *Conv2DConfig {
	return c.DilationPerDim(dilation, dilation)
}

// DilationPerDim sets the kernel dilation per spatial dimension.
func (c *Conv2DConfig) DilationPerDim(height, width int) *Conv2DConfig {
	c.dilation = []int{height, width}
	return c
}

// Filters sets the number of filters, which is the number of output feature
// maps (channels). It must be > 0.
func (c *Conv2DConfig) Filters(filters int) *Conv2DConfig {
	if filters <= 0 {
		Panicf("number of filters must be > 0, it was set to %d", filters)
	}
	c.filters = filters
	return c
}

// Mode sets the convolution mode. Default is Truncate.
func (c *Conv2DConfig) Mode(mode ConvolutionMode) *Conv2DConfig {
	if mode != Same && mode != Strict && mode != Truncate {
		Panicf("invalid convolution mode %d", int(mode))
	}
	c.mode = mode
	return c
}

// Validate checks the kernel/stride/padding values and their consistency
// with the configured mode.
func (c *Conv2DConfig) Validate() error {
	if err := ValidateKernelStridePadding(c.kernelSize, c.strides, c.padding); err != nil {
		return err
	}
	return ValidateModePadding(c.mode, c.padding)
}

// NumFeatureMaps returns the number of filters (output feature maps).
func (c *Conv2DConfig) NumFeatureMaps() int {
	return c.filters
}

// HeightAndWidth returns the configured kernel size through the shared
// shape accessor, so in the same reversed order: `[width, height]`.
func (c *Conv2DConfig) HeightAndWidth() ([]int, error) {
	return HeightAndWidth(c.kernelSize)
}

// OutputSize returns the forward output spatial size for this configuration
// over the given `[batch, channels, height, width]` input shape.
func (c *Conv2DConfig) OutputSize(inputShape []int) ([]int, error) {
	return OutputSize(inputShape, c.kernelSize, c.strides, c.padding, c.mode, c.dilation)
}

// DeconvolutionOutputSize returns the deconvolution output spatial size for
// this configuration over the given `[batch, channels, height, width]`
// input shape.
func (c *Conv2DConfig) DeconvolutionOutputSize(inputShape []int) ([]int, error) {
	return DeconvolutionOutputSize(inputShape, c.kernelSize, c.strides, c.padding, c.mode, c.dilation)
}

// SameModePadding returns the top/left and bottom/right paddings that
// realize Same mode for this configuration over the given input shape. The
// configured mode must be Same.
func (c *Conv2DConfig) SameModePadding(inputShape []int) (topLeft, bottomRight []int, err error) {
	if c.mode != Same {
		return nil, nil, errors.Wrapf(ErrInvalidArgument, "SameModePadding requires Same mode, configuration uses %s", c.mode)
	}
	outSize, err := c.OutputSize(inputShape)
	if err != nil {
		return nil, nil, err
	}
	inSize := xslices.Copy(inputShape[2:])
	topLeft, err = SameModeTopLeftPadding(outSize, inSize, c.kernelSize, c.strides, c.dilation)
	if err != nil {
		return nil, nil, err
	}
	bottomRight, err = SameModeBottomRightPadding(outSize, inSize, c.kernelSize, c.strides, c.dilation)
	if err != nil {
		return nil, nil, err
	}
	return topLeft, bottomRight, nil
}
