package osmem

import "errors"

var (
	// ErrBadSize is returned when the requested size is zero or negative.
	ErrBadSize = errors.New("osmem: allocation size must be positive")

	// ErrExhausted is returned by the fallback path when the runtime
	// cannot satisfy the request.
	ErrExhausted = errors.New("osmem: out of memory")
)
