package mem

import "errors"

var (
	// ErrBadSize indicates a layout with a negative size.
	ErrBadSize = errors.New("mem: layout size must be non-negative")

	// ErrBadAlign indicates a layout whose alignment is not a power of two.
	ErrBadAlign = errors.New("mem: layout alignment must be a power of two")

	// ErrBudget indicates a Limited allocator rejected a request that
	// would exceed its remaining byte budget.
	ErrBudget = errors.New("mem: allocation budget exhausted")
)

// AllocError reports an allocation request the process could not
// satisfy. It is the only panic payload Catch converts into an error;
// the error is returned unwrapped, so callers can compare it with == or
// match it with errors.As.
type AllocError struct {
	Layout Layout
}

func (e AllocError) Error() string {
	return "failed to allocate memory by required layout " + e.Layout.String()
}
