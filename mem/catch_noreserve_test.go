//go:build noreserve

package mem

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Without the emergency slots, capture still works as long as the
// raise bookkeeping itself can be allocated.
func TestCatchBestEffortWithoutReserve(t *testing.T) {
	la := NewLimited(Sys{}, 4096)
	swapDefault(t, la)

	l := Layout{Size: 1 << 20, Align: 8}
	_, err := Catch(func() int {
		_ = MustAlloc(l)
		return 0
	})
	require.Error(t, err)
	assert.Equal(t, AllocError{Layout: l}, err)
	assert.EqualValues(t, 4096, la.Remaining(), "bookkeeping should be released after capture")
}

func TestCatchNoReserveDoubleFault(t *testing.T) {
	// Priming is a no-op in this build, so a zero budget fails the
	// first raise's bookkeeping immediately.
	swapDefault(t, NewLimited(Sys{}, 0))
	code := swapExit(t)

	l := Layout{Size: 10, Align: 1}
	_, err := Catch(func() int {
		_ = MustAlloc(l)
		return 0
	})
	require.Error(t, err)
	assert.Equal(t, 2, *code, "unserved raise bookkeeping should terminate the process")
}
