package convgeom

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHeightAndWidth(t *testing.T) {
	// Last two dimensions, reversed.
	hw, err := HeightAndWidth([]int{2, 3, 4, 5})
	require.NoError(t, err)
	assert.Equal(t, []int{5, 4}, hw)

	hw, err = HeightAndWidth([]int{9, 7})
	require.NoError(t, err)
	assert.Equal(t, []int{7, 9}, hw)

	_, err = HeightAndWidth([]int{3})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidArgument))
}

func TestNumChannels(t *testing.T) {
	assert.Equal(t, 3, NumChannels([]int{2, 3, 4, 5}))
	assert.Equal(t, 7, NumChannels([]int{1, 7, 28, 28, 28}))
	assert.Equal(t, 1, NumChannels([]int{2, 3, 4}))
	assert.Equal(t, 1, NumChannels(nil))
}

type bogusInputType struct{}

func (bogusInputType) isInputType() {}

func TestHWDFromInputType(t *testing.T) {
	hwd, err := HWDFromInputType(Convolutional{Height: 28, Width: 14, Channels: 3})
	require.NoError(t, err)
	assert.Equal(t, []int{28, 14, 3}, hwd)

	hwd, err = HWDFromInputType(ConvolutionalFlat{Height: 8, Width: 8, Depth: 1})
	require.NoError(t, err)
	assert.Equal(t, []int{8, 8, 1}, hwd)

	_, err = HWDFromInputType(bogusInputType{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidState))
	assert.Contains(t, err.Error(), "bogusInputType")
}
