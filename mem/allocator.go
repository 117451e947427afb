package mem

import (
	"sync/atomic"

	"github.com/joshuapare/memkit/internal/osmem"
)

// Allocator hands out zeroed blocks of memory described by a Layout.
//
// Implementations may assume the layout has been validated and that
// Size is positive; zero-size requests never reach an allocator. Free
// must be called with the same slice Alloc returned and the same
// layout.
type Allocator interface {
	Alloc(l Layout) ([]byte, error)
	Free(b []byte, l Layout) error
}

// Sys allocates directly from the operating system. Blocks are
// page-granular and zero-filled, so any alignment up to the OS
// granularity is satisfied for free.
type Sys struct{}

// Alloc obtains a zeroed block from the OS.
func (Sys) Alloc(l Layout) ([]byte, error) {
	if l.Align > osmem.Granularity() {
		return nil, ErrBadAlign
	}
	return osmem.Alloc(l.Size)
}

// Free returns a block to the OS. b must be the slice Alloc returned.
func (Sys) Free(b []byte, l Layout) error {
	return osmem.Free(b)
}

// Limited wraps another allocator with an atomic byte budget. Requests
// that would take the budget below zero fail with ErrBudget before
// touching the inner allocator. Free credits the budget back.
type Limited struct {
	inner  Allocator
	budget atomic.Int64
}

// NewLimited returns a Limited allocator with the given budget in bytes.
func NewLimited(inner Allocator, budget int64) *Limited {
	l := &Limited{inner: inner}
	l.budget.Store(budget)
	return l
}

// Alloc debits the budget and delegates to the inner allocator. A
// failed inner allocation refunds the debit.
func (la *Limited) Alloc(l Layout) ([]byte, error) {
	size := int64(l.Size)
	for {
		cur := la.budget.Load()
		if cur < size {
			return nil, ErrBudget
		}
		if la.budget.CompareAndSwap(cur, cur-size) {
			break
		}
	}
	b, err := la.inner.Alloc(l)
	if err != nil {
		la.budget.Add(size)
		return nil, err
	}
	return b, nil
}

// Free delegates to the inner allocator and credits the budget.
func (la *Limited) Free(b []byte, l Layout) error {
	if err := la.inner.Free(b, l); err != nil {
		return err
	}
	la.budget.Add(int64(l.Size))
	return nil
}

// Remaining reports the unspent budget in bytes.
func (la *Limited) Remaining() int64 {
	return la.budget.Load()
}

type allocRef struct{ a Allocator }

var defaultAllocator atomic.Pointer[allocRef]

// Default returns the process-wide allocator the package-level entry
// points route through. It is Sys until SetDefault replaces it.
func Default() Allocator {
	if r := defaultAllocator.Load(); r != nil {
		return r.a
	}
	return Sys{}
}

// SetDefault atomically replaces the process-wide allocator and returns
// the previous one. Blocks obtained from the previous allocator must
// still be freed through it; swapping while such blocks are live is the
// caller's responsibility.
func SetDefault(a Allocator) Allocator {
	old := defaultAllocator.Swap(&allocRef{a: a})
	if old == nil {
		return Sys{}
	}
	return old.a
}
