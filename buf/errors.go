package buf

import "errors"

var (
	// ErrFreed indicates use of a buffer after Free.
	ErrFreed = errors.New("buf: buffer used after Free")

	// ErrSizeOverflow indicates a requested capacity that does not fit in int.
	ErrSizeOverflow = errors.New("buf: capacity overflows int")

	// ErrBadCount indicates a negative count or an out-of-range truncation.
	ErrBadCount = errors.New("buf: count out of range")
)
