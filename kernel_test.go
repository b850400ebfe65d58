package convgeom

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHasDilation(t *testing.T) {
	assert.False(t, HasDilation(nil))
	assert.False(t, HasDilation([]int{1, 1}))
	assert.False(t, HasDilation([]int{1, 1, 1}))
	assert.True(t, HasDilation([]int{2, 1}))
	assert.True(t, HasDilation([]int{1, 1, 3}))
}

func TestEffectiveKernelSize(t *testing.T) {
	// Unit dilation returns the kernel unchanged.
	kernel := []int{3, 3}
	eKernel, err := EffectiveKernelSize(kernel, []int{1, 1})
	require.NoError(t, err)
	assert.Equal(t, []int{3, 3}, eKernel)

	// A copy, not an alias.
	eKernel[0] = 99
	assert.Equal(t, []int{3, 3}, kernel)

	// Nil dilation means unit dilation.
	eKernel, err = EffectiveKernelSize([]int{5, 7}, nil)
	require.NoError(t, err)
	assert.Equal(t, []int{5, 7}, eKernel)

	// k + (k-1)*(d-1).
	eKernel, err = EffectiveKernelSize([]int{3, 3}, []int{2, 2})
	require.NoError(t, err)
	assert.Equal(t, []int{5, 5}, eKernel)

	eKernel, err = EffectiveKernelSize([]int{3, 5, 2}, []int{2, 1, 3})
	require.NoError(t, err)
	assert.Equal(t, []int{5, 5, 4}, eKernel)
}

func TestEffectiveKernelSizeErrors(t *testing.T) {
	_, err := EffectiveKernelSize([]int{3}, []int{1})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidArgument))

	_, err = EffectiveKernelSize([]int{3, 3, 3, 3}, []int{1, 1, 1, 1})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidArgument))

	// Rank mismatch between kernel and dilation.
	_, err = EffectiveKernelSize([]int{3, 3}, []int{2, 2, 2})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidArgument))
}
