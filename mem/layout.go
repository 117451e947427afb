package mem

import (
	"fmt"
	"unsafe"
)

// Layout describes the size and alignment an allocation must satisfy.
// Size is in bytes; Align must be a power of two. The zero Layout is not
// valid; use Layout{Size: n, Align: 1} for plain byte storage.
type Layout struct {
	Size  int
	Align int
}

// LayoutOf returns the layout of T as the runtime lays it out.
func LayoutOf[T any]() Layout {
	var z T
	return Layout{Size: int(unsafe.Sizeof(z)), Align: int(unsafe.Alignof(z))}
}

// String renders the layout in the canonical failure-report form.
func (l Layout) String() string {
	return fmt.Sprintf("{size: %d, align: %d}", l.Size, l.Align)
}

// check validates the layout invariants before it reaches an allocator.
func (l Layout) check() error {
	if l.Size < 0 {
		return ErrBadSize
	}
	if l.Align <= 0 || l.Align&(l.Align-1) != 0 {
		return ErrBadAlign
	}
	return nil
}
