package mem

import (
	"errors"
	"sync/atomic"
	"testing"
)

var errNoMem = errors.New("no memory")

// failAlloc refuses every request.
type failAlloc struct{}

func (failAlloc) Alloc(l Layout) ([]byte, error) { return nil, errNoMem }
func (failAlloc) Free(b []byte, l Layout) error  { return nil }

// countedAlloc allows a fixed number of allocations, then refuses all
// further ones. Free always passes through.
type countedAlloc struct {
	inner Allocator
	allow atomic.Int32
}

func newCountedAlloc(inner Allocator, allow int32) *countedAlloc {
	c := &countedAlloc{inner: inner}
	c.allow.Store(allow)
	return c
}

func (c *countedAlloc) Alloc(l Layout) ([]byte, error) {
	if c.allow.Add(-1) < 0 {
		return nil, errNoMem
	}
	return c.inner.Alloc(l)
}

func (c *countedAlloc) Free(b []byte, l Layout) error { return c.inner.Free(b, l) }

// swapDefault installs a for the duration of the test. Tests using it
// must not run in parallel.
func swapDefault(t *testing.T, a Allocator) {
	t.Helper()
	prev := SetDefault(a)
	t.Cleanup(func() { SetDefault(prev) })
}

// swapExit replaces the terminal exit with a recorder for the duration
// of the test. The returned pointer holds the last exit code, -1 when
// no exit happened.
func swapExit(t *testing.T) *int {
	t.Helper()
	code := -1
	prev := osExit
	osExit = func(c int) { code = c }
	t.Cleanup(func() { osExit = prev })
	return &code
}
