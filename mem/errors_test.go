package mem

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllocErrorMessage(t *testing.T) {
	err := AllocError{Layout: Layout{Size: 10, Align: 1}}
	assert.Equal(t, "failed to allocate memory by required layout {size: 10, align: 1}", err.Error())
}

func TestAllocErrorMatching(t *testing.T) {
	var err error = AllocError{Layout: Layout{Size: 32, Align: 8}}

	var ae AllocError
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, 32, ae.Layout.Size)
	assert.Equal(t, 8, ae.Layout.Align)

	assert.True(t, errors.Is(err, AllocError{Layout: Layout{Size: 32, Align: 8}}),
		"AllocError values with equal layouts should compare equal")
	assert.False(t, errors.Is(err, AllocError{Layout: Layout{Size: 16, Align: 8}}))
}
