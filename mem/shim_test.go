package mem

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllocZeroSize(t *testing.T) {
	l := Layout{Size: 0, Align: 1}
	b, err := Alloc(l)
	require.NoError(t, err)
	assert.NotNil(t, b, "zero-size alloc returns an empty block, not nil")
	assert.Len(t, b, 0)
	require.NoError(t, Free(b, l))
}

func TestAllocInvalidLayout(t *testing.T) {
	_, err := Alloc(Layout{Size: -1, Align: 1})
	assert.ErrorIs(t, err, ErrBadSize)

	_, err = Alloc(Layout{Size: 8, Align: 3})
	assert.ErrorIs(t, err, ErrBadAlign)

	assert.ErrorIs(t, Free(nil, Layout{Size: 8, Align: 3}), ErrBadAlign)
}

func TestAllocFreeStats(t *testing.T) {
	before := ReadStats()
	l := Layout{Size: 128, Align: 8}

	b, err := Alloc(l)
	require.NoError(t, err)
	require.Len(t, b, 128)
	require.NoError(t, Free(b, l))

	after := ReadStats()
	assert.Equal(t, before.AllocCalls+1, after.AllocCalls)
	assert.Equal(t, before.FreeCalls+1, after.FreeCalls)
	assert.Equal(t, before.BytesAllocated+128, after.BytesAllocated)
	assert.Equal(t, before.BytesFreed+128, after.BytesFreed)
}

func TestAllocFailureReturnsAllocError(t *testing.T) {
	swapDefault(t, failAlloc{})

	_, err := Alloc(Layout{Size: 256, Align: 8})
	require.Error(t, err)
	assert.Equal(t, AllocError{Layout: Layout{Size: 256, Align: 8}}, err,
		"shim failure should carry the requested layout")
}

func TestMustAllocInvalidLayoutPanics(t *testing.T) {
	assert.PanicsWithError(t, ErrBadAlign.Error(), func() {
		MustAlloc(Layout{Size: 8, Align: 3})
	})
}

func TestMustAllocOutsideBoundaryPanics(t *testing.T) {
	swapDefault(t, failAlloc{})

	l := Layout{Size: 64, Align: 8}
	assert.PanicsWithValue(t, AllocError{Layout: l}, func() {
		_ = MustAlloc(l)
	})
}
