package mem

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLayoutString(t *testing.T) {
	l := Layout{Size: 10, Align: 1}
	assert.Equal(t, "{size: 10, align: 1}", l.String())

	l = Layout{Size: 1024, Align: 4096}
	assert.Equal(t, "{size: 1024, align: 4096}", l.String())
}

func TestLayoutCheck(t *testing.T) {
	require.NoError(t, Layout{Size: 0, Align: 1}.check())
	require.NoError(t, Layout{Size: 4096, Align: 4096}.check())
	require.NoError(t, Layout{Size: 1, Align: 1}.check())

	assert.ErrorIs(t, Layout{Size: -1, Align: 1}.check(), ErrBadSize)
	assert.ErrorIs(t, Layout{Size: 8, Align: 0}.check(), ErrBadAlign)
	assert.ErrorIs(t, Layout{Size: 8, Align: 3}.check(), ErrBadAlign)
	assert.ErrorIs(t, Layout{Size: 8, Align: -8}.check(), ErrBadAlign)
	assert.ErrorIs(t, Layout{}.check(), ErrBadAlign, "zero layout is not valid")
}

func TestLayoutOf(t *testing.T) {
	l := LayoutOf[uint64]()
	assert.Equal(t, 8, l.Size)
	assert.Equal(t, 8, l.Align)

	bl := LayoutOf[byte]()
	assert.Equal(t, 1, bl.Size)
	assert.Equal(t, 1, bl.Align)

	type pair struct {
		a byte
		b uint32
	}
	pl := LayoutOf[pair]()
	assert.Equal(t, 8, pl.Size, "padding should be included")
	assert.Equal(t, 4, pl.Align)
}
