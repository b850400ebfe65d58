package convgeom

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvolutionModeString(t *testing.T) {
	assert.Equal(t, "Same", Same.String())
	assert.Equal(t, "Strict", Strict.String())
	assert.Equal(t, "Truncate", Truncate.String())
	assert.Equal(t, "InvalidConvolutionMode", ConvolutionMode(17).String())
}

func TestParseConvolutionMode(t *testing.T) {
	for name, want := range map[string]ConvolutionMode{
		"same": Same, "Same": Same, "SAME": Same,
		"strict":   Strict,
		"Truncate": Truncate,
	} {
		mode, err := ParseConvolutionMode(name)
		require.NoErrorf(t, err, "parsing %q", name)
		assert.Equal(t, want, mode)
	}

	_, err := ParseConvolutionMode("valid")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidArgument))
}
