//go:build !unix && !windows

// Package osmem provides platform-specific helpers for obtaining raw
// memory outside the Go heap.
package osmem

// Alloc obtains size bytes of zeroed memory. Without an OS mapping
// facility it falls back to the runtime heap; a failed make is caught
// and reported as an error instead of a crash.
func Alloc(size int) (b []byte, err error) {
	if size <= 0 {
		return nil, ErrBadSize
	}
	defer func() {
		if recover() != nil {
			b, err = nil, ErrExhausted
		}
	}()
	return make([]byte, size), nil
}

// Free releases a block obtained from Alloc. The garbage collector owns
// fallback blocks, so this is a no-op.
func Free(b []byte) error {
	return nil
}

// Granularity returns the alignment guaranteed for blocks returned by Alloc.
func Granularity() int {
	return 8
}
