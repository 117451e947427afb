// Package testutil provides shared fixtures for allocator-facing tests.
package testutil

import (
	"errors"
	"testing"

	"github.com/joshuapare/memkit/mem"
)

// ErrNoMem is the error NoMem returns for every request.
var ErrNoMem = errors.New("testutil: no memory")

// NoMem is an allocator that refuses every request. Free is a no-op so
// blocks handed out before a swap can still be dropped safely.
type NoMem struct{}

func (NoMem) Alloc(l mem.Layout) ([]byte, error) { return nil, ErrNoMem }

func (NoMem) Free(b []byte, l mem.Layout) error { return nil }

// SwapDefault installs a as the process-wide default allocator for the
// duration of the test and restores the previous one on cleanup.
// Tests using it must not run in parallel.
//
// Example:
//
//	testutil.SwapDefault(t, mem.NewLimited(mem.Sys{}, 1<<20))
func SwapDefault(tb testing.TB, a mem.Allocator) {
	tb.Helper()
	prev := mem.SetDefault(a)
	tb.Cleanup(func() { mem.SetDefault(prev) })
}

// Budget installs a Limited allocator over Sys sized for one capture
// boundary's reserve priming plus extra bytes, and returns it so tests
// can assert on the remaining budget.
//
// Example:
//
//	la := testutil.Budget(t, 64) // priming plus 64 usable bytes
func Budget(tb testing.TB, extra int64) *mem.Limited {
	tb.Helper()
	la := mem.NewLimited(mem.Sys{}, int64(mem.ReserveBytes())+extra)
	SwapDefault(tb, la)
	return la
}
