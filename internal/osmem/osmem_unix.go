//go:build unix

package osmem

import (
	"os"

	"golang.org/x/sys/unix"
)

// Alloc obtains size bytes of zeroed, page-aligned memory from the
// operating system via an anonymous private mapping.
func Alloc(size int) ([]byte, error) {
	if size <= 0 {
		return nil, ErrBadSize
	}
	b, err := unix.Mmap(-1, 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_PRIVATE|unix.MAP_ANON)
	if err != nil {
		return nil, err
	}
	return b, nil
}

// Free returns a block to the operating system. b must be the same slice
// returned by Alloc; the mapping registry is keyed on it.
func Free(b []byte) error {
	if len(b) == 0 {
		return nil
	}
	return unix.Munmap(b)
}

// Granularity returns the alignment guaranteed for blocks returned by Alloc.
func Granularity() int {
	return os.Getpagesize()
}
