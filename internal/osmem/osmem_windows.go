//go:build windows

package osmem

import (
	"unsafe"

	"golang.org/x/sys/windows"
)

// allocationGranularity is the base-address alignment VirtualAlloc provides.
const allocationGranularity = 64 * 1024

// Alloc obtains size bytes of zeroed memory from the operating system
// via VirtualAlloc. Committed pages are zero-filled by the kernel.
func Alloc(size int) ([]byte, error) {
	if size <= 0 {
		return nil, ErrBadSize
	}
	addr, err := windows.VirtualAlloc(0, uintptr(size), windows.MEM_COMMIT|windows.MEM_RESERVE, windows.PAGE_READWRITE)
	if err != nil {
		return nil, err
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(addr)), size), nil
}

// Free returns a block to the operating system. b must be the same slice
// returned by Alloc; VirtualFree releases the whole reservation from its
// base address.
func Free(b []byte) error {
	if len(b) == 0 {
		return nil
	}
	addr := uintptr(unsafe.Pointer(unsafe.SliceData(b)))
	return windows.VirtualFree(addr, 0, windows.MEM_RELEASE)
}

// Granularity returns the alignment guaranteed for blocks returned by Alloc.
func Granularity() int {
	return allocationGranularity
}
