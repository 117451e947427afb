package vec

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/memkit/mem"
)

func TestTryMake(t *testing.T) {
	s, err := TryMake[int](8)
	require.NoError(t, err)
	assert.Len(t, s, 8)
	assert.Equal(t, 8, cap(s))
	for i, v := range s {
		if v != 0 {
			t.Fatalf("element %d not zeroed: %d", i, v)
		}
	}
}

func TestTryMakeZeroAndNegative(t *testing.T) {
	s, err := TryMake[byte](0)
	require.NoError(t, err)
	assert.Len(t, s, 0)

	_, err = TryMake[byte](-1)
	assert.ErrorIs(t, err, ErrBadCount)
}

func TestTryMakeProbed(t *testing.T) {
	// Large enough to take the probed path, small enough to succeed.
	s, err := TryMake[uint64](1024)
	require.NoError(t, err)
	assert.Len(t, s, 1024)
}

func TestTryMakeHuge(t *testing.T) {
	_, err := TryMake[byte](math.MaxInt)
	require.Error(t, err)
	assert.Equal(t, mem.AllocError{Layout: mem.Layout{Size: math.MaxInt, Align: 1}}, err,
		"exhaustion should carry the slice layout")
}

func TestTryMakeOverflow(t *testing.T) {
	_, err := TryMake[uint64](math.MaxInt/4 + 1)
	assert.ErrorIs(t, err, ErrSizeOverflow)
}

func TestTryGrow(t *testing.T) {
	s, err := TryGrow[int](nil, 10)
	require.NoError(t, err)
	assert.Len(t, s, 0)
	assert.GreaterOrEqual(t, cap(s), 10)

	s = append(s, 1, 2, 3)
	grown, err := TryGrow(s, 100)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3}, grown[:3])
	assert.GreaterOrEqual(t, cap(grown), 103)
}

func TestTryGrowNoOpWhenRoomy(t *testing.T) {
	s := make([]int, 2, 20)
	ns, err := TryGrow(s, 5)
	require.NoError(t, err)
	assert.Equal(t, 20, cap(ns))
	assert.Same(t, &s[0], &ns[0], "sufficient capacity should not reallocate")
}

func TestTryGrowFailureLeavesOriginal(t *testing.T) {
	s := []byte{1, 2, 3}

	same, err := TryGrow(s, math.MaxInt)
	assert.ErrorIs(t, err, ErrSizeOverflow)
	assert.Equal(t, []byte{1, 2, 3}, same)

	same, err = TryGrow(s, math.MaxInt-10)
	require.Error(t, err)
	var ae mem.AllocError
	assert.ErrorAs(t, err, &ae)
	assert.Equal(t, []byte{1, 2, 3}, same, "failed growth must return the original slice")
}

func TestTryAppend(t *testing.T) {
	s, err := TryAppend[int](nil, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, s)

	s, err = TryAppend(s, 3)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3}, s)
}

func TestMakeRaisesUnderCatch(t *testing.T) {
	_, err := mem.Catch(func() []byte {
		return Make[byte](math.MaxInt)
	})
	require.Error(t, err)
	assert.Equal(t, mem.AllocError{Layout: mem.Layout{Size: math.MaxInt, Align: 1}}, err)
}

func TestGrowRaisesUnderCatch(t *testing.T) {
	_, err := mem.Catch(func() []byte {
		s := []byte{1}
		return Grow(s, math.MaxInt-8)
	})
	require.Error(t, err)
	var ae mem.AllocError
	assert.ErrorAs(t, err, &ae)
}

func TestMakeBadCountPanics(t *testing.T) {
	assert.PanicsWithValue(t, ErrBadCount, func() {
		Make[int](-1)
	})
}

func TestMemFree(t *testing.T) {
	assert.Positive(t, memFree(), "without a memory limit the estimate should be large")
}
