// Package vec provides fallible allocation for ordinary Go slices.
//
// The runtime's make and append treat exhaustion as fatal. The helpers
// here bound a request first, against the configured memory limit when
// one is set, and convert the runtime's out-of-memory panics into a
// mem.AllocError carrying the slice's layout. They manage Go-heap
// slices; storage interposed through the mem package is the buf
// package's job.
package vec

import (
	"errors"
	"runtime"
	"runtime/debug"
	"unsafe"

	"github.com/joshuapare/memkit/internal/bits"
	"github.com/joshuapare/memkit/mem"
)

var (
	// ErrBadCount indicates a negative element count.
	ErrBadCount = errors.New("vec: negative count")

	// ErrSizeOverflow indicates a byte size that does not fit in int.
	ErrSizeOverflow = errors.New("vec: size overflows int")
)

// smallSlice is the element count under which the free-memory probe is
// skipped; requests that small are served from existing spans anyway.
const smallSlice = 8

// memFree estimates the bytes still allocatable under the configured
// memory limit. With no limit set the estimate is effectively
// unbounded and the recover path does the real work.
func memFree() int64 {
	limit := debug.SetMemoryLimit(-1)
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)
	return limit - int64(ms.Sys-ms.HeapReleased)
}

func layoutFor[T any](n int) mem.Layout {
	var z T
	return mem.Layout{
		Size:  n * int(unsafe.Sizeof(z)),
		Align: int(unsafe.Alignof(z)),
	}
}

// TryMake returns a zeroed slice of n elements, reporting exhaustion
// as a mem.AllocError instead of crashing.
func TryMake[T any](n int) (s []T, err error) {
	if n < 0 {
		return nil, ErrBadCount
	}
	var z T
	total, ok := bits.MulOverflowSafe(n, int(unsafe.Sizeof(z)))
	if !ok {
		return nil, ErrSizeOverflow
	}
	if n > smallSlice && int64(total) > memFree() {
		return nil, mem.AllocError{Layout: layoutFor[T](n)}
	}
	defer func() {
		if recover() != nil {
			s, err = nil, mem.AllocError{Layout: layoutFor[T](n)}
		}
	}()
	return make([]T, n), nil
}

// TryGrow returns a slice with the contents of s and capacity for at
// least additional more elements. On failure s is returned unchanged
// alongside the error.
func TryGrow[T any](s []T, additional int) (out []T, err error) {
	if additional < 0 {
		return s, ErrBadCount
	}
	if cap(s)-len(s) >= additional {
		return s, nil
	}
	need, ok := bits.AddOverflowSafe(len(s), additional)
	if !ok {
		return s, ErrSizeOverflow
	}
	newCap, ok := bits.MulOverflowSafe(cap(s), 2)
	if !ok || newCap < need {
		newCap = need
	}
	var z T
	total, ok := bits.MulOverflowSafe(newCap, int(unsafe.Sizeof(z)))
	if !ok {
		return s, ErrSizeOverflow
	}
	if newCap > smallSlice && int64(total) > memFree() {
		return s, mem.AllocError{Layout: layoutFor[T](newCap)}
	}
	defer func() {
		if recover() != nil {
			out, err = s, mem.AllocError{Layout: layoutFor[T](newCap)}
		}
	}()
	ns := make([]T, len(s), newCap)
	copy(ns, s)
	return ns, nil
}

// TryAppend appends items to s, reporting exhaustion as an error. On
// failure s is returned unchanged.
func TryAppend[T any](s []T, items ...T) ([]T, error) {
	ns, err := TryGrow(s, len(items))
	if err != nil {
		return s, err
	}
	return append(ns, items...), nil
}

// Make is TryMake for straight-line code under a capture boundary:
// exhaustion is raised for the nearest mem.Catch. Invalid counts are
// caller bugs and panic with the plain sentinel.
func Make[T any](n int) []T {
	s, err := TryMake[T](n)
	if err == nil {
		return s
	}
	var ae mem.AllocError
	if errors.As(err, &ae) {
		mem.Raise(ae.Layout)
	}
	panic(err)
}

// Grow is TryGrow's raising counterpart.
func Grow[T any](s []T, additional int) []T {
	ns, err := TryGrow(s, additional)
	if err == nil {
		return ns
	}
	var ae mem.AllocError
	if errors.As(err, &ae) {
		mem.Raise(ae.Layout)
	}
	panic(err)
}
