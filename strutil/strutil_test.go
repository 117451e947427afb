package strutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTryClone(t *testing.T) {
	s, err := TryClone("abc")
	require.NoError(t, err)
	assert.Equal(t, "abc", s)

	empty, err := TryClone("")
	require.NoError(t, err)
	assert.Equal(t, "", empty)

	long, err := TryClone(string(make([]byte, 4096)))
	require.NoError(t, err)
	assert.Len(t, long, 4096)
}

func TestTryCloneIsACopy(t *testing.T) {
	src := []byte("mutable")
	s, err := TryClone(string(src))
	require.NoError(t, err)
	src[0] = 'X'
	assert.Equal(t, "mutable", s, "clone must not alias the source")
}

func TestTryConcat(t *testing.T) {
	s, err := TryConcat("foo", "-", "bar")
	require.NoError(t, err)
	assert.Equal(t, "foo-bar", s)

	s, err = TryConcat()
	require.NoError(t, err)
	assert.Equal(t, "", s)

	s, err = TryConcat("", "", "x")
	require.NoError(t, err)
	assert.Equal(t, "x", s)
}

func TestTryFormat(t *testing.T) {
	s, err := TryFormat("%d-%s", 42, "x")
	require.NoError(t, err)
	assert.Equal(t, "42-x", s)

	s, err = TryFormat("")
	require.NoError(t, err)
	assert.Equal(t, "", s)

	s, err = TryFormat("%08b", 5)
	require.NoError(t, err)
	assert.Equal(t, "00000101", s)
}

func TestTryString(t *testing.T) {
	s, err := TryString(123)
	require.NoError(t, err)
	assert.Equal(t, "123", s)

	s, err = TryString([]int{1, 2, 3})
	require.NoError(t, err)
	assert.Equal(t, "[1 2 3]", s)
}
