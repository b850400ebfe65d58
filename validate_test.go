package convgeom

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateShapesKernelBounds(t *testing.T) {
	inputShape := []int{1, 1, 5, 5}
	inSize := []int{5, 5}

	// Kernel larger than padded input is rejected for non-Same modes.
	err := ValidateShapes(inputShape, []int{7, 3}, []int{1, 1}, []int{0, 0}, Truncate, []int{1, 1}, inSize, false)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidInput))
	assert.Contains(t, err.Error(), "kernel height")
	assert.Contains(t, err.Error(), "input height = 5")

	// Padding can make the same kernel legal.
	err = ValidateShapes(inputShape, []int{7, 3}, []int{1, 1}, []int{1, 0}, Truncate, []int{1, 1}, inSize, false)
	require.NoError(t, err)

	// Same mode skips the bound check entirely.
	err = ValidateShapes(inputShape, []int{7, 3}, []int{1, 1}, []int{0, 0}, Same, []int{1, 1}, inSize, false)
	require.NoError(t, err)

	// With dilation the message names the effective kernel.
	err = ValidateShapes(inputShape, []int{7, 3}, []int{1, 1}, []int{0, 0}, Truncate, []int{3, 1}, inSize, true)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "effective kernel height")
	assert.Contains(t, err.Error(), "effectiveKernelGivenDilation")

	// Width failures name the width dimension.
	err = ValidateShapes(inputShape, []int{3, 7}, []int{1, 1}, []int{0, 0}, Truncate, []int{1, 1}, inSize, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "kernel width")
}

func TestValidateShapesStrict(t *testing.T) {
	// (7 - 2 + 0) is not divisible by stride 2.
	inputShape := []int{1, 1, 7, 7}
	inSize := []int{7, 7}
	err := ValidateShapes(inputShape, []int{2, 2}, []int{2, 2}, []int{0, 0}, Strict, []int{1, 1}, inSize, false)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidConfig))
	// The message carries the non-integer size and both fallbacks.
	assert.Contains(t, err.Error(), "3.50")
	assert.Contains(t, err.Error(), "floor(3.50) = 3")
	assert.Contains(t, err.Error(), "ceil(7/2) = 4")

	// Same parameters pass under Truncate.
	err = ValidateShapes(inputShape, []int{2, 2}, []int{2, 2}, []int{0, 0}, Truncate, []int{1, 1}, inSize, false)
	require.NoError(t, err)

	// Divisible configurations pass under Strict.
	err = ValidateShapes(inputShape, []int{3, 3}, []int{2, 2}, []int{0, 0}, Strict, []int{1, 1}, inSize, false)
	require.NoError(t, err)
}

func TestValidateShapes3D(t *testing.T) {
	inputShape := []int{1, 2, 9, 9, 5}
	inSize := []int{9, 9, 5}

	err := ValidateShapes(inputShape, []int{3, 3, 2}, []int{1, 1, 2}, []int{0, 0, 0}, Strict, []int{1, 1, 1}, inSize, false)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidConfig))
	assert.Contains(t, err.Error(), "output channels")

	err = ValidateShapes(inputShape, []int{3, 3, 2}, []int{1, 1, 1}, []int{0, 0, 0}, Strict, []int{1, 1, 1}, inSize, false)
	require.NoError(t, err)

	// Channel-dimension kernel bound.
	err = ValidateShapes(inputShape, []int{3, 3, 9}, []int{1, 1, 1}, []int{0, 0, 0}, Truncate, []int{1, 1, 1}, inSize, false)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidInput))
	assert.Contains(t, err.Error(), "kernel channels")
}

func TestValidateShapesRank(t *testing.T) {
	err := ValidateShapes([]int{1, 1, 5, 5}, []int{3}, []int{1}, []int{0}, Truncate, []int{1}, []int{5}, false)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidArgument))

	// Mismatched lengths are caller bugs, not configuration errors.
	err = ValidateShapes([]int{1, 1, 5, 5}, []int{3, 3}, []int{1}, []int{0, 0}, Truncate, []int{1, 1}, []int{5, 5}, false)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidArgument))
}

func TestValidateModePadding(t *testing.T) {
	require.NoError(t, ValidateModePadding(Same, []int{0, 0}))
	require.NoError(t, ValidateModePadding(Truncate, []int{2, 2}))
	require.NoError(t, ValidateModePadding(Strict, []int{1, 0}))

	err := ValidateModePadding(Same, []int{1, 0})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidArgument))
}

func TestValidateKernelStridePadding(t *testing.T) {
	require.NoError(t, ValidateKernelStridePadding([]int{3, 3}, []int{1, 1}, []int{1, 1}))

	err := ValidateKernelStridePadding([]int{0, 3}, []int{1, 1}, []int{0, 0})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidState))
	assert.Contains(t, err.Error(), "kernel")

	err = ValidateKernelStridePadding(nil, []int{1, 1}, []int{0, 0})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "kernel")

	err = ValidateKernelStridePadding([]int{3, 3}, []int{1, 0}, []int{0, 0})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "stride")

	err = ValidateKernelStridePadding([]int{3, 3}, []int{1, 1}, []int{-1, 0})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "padding")

	err = ValidateKernelStridePadding([]int{3, 3, 3}, []int{1, 1}, []int{0, 0})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "kernel")
}
