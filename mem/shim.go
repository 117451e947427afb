package mem

import (
	"fmt"
	"os"
)

// Compile-time debug flag for shim tracing. Enable for development only.
const debugShim = false

// Runtime debug flag for allocation logging - controlled by MEMKIT_LOG_ALLOC env var.
var logAlloc = os.Getenv("MEMKIT_LOG_ALLOC") != ""

// zeroBlock is handed out for zero-size requests so allocators never
// see them.
var zeroBlock = []byte{}

// Alloc obtains a zeroed block satisfying l from the default allocator.
// While the calling goroutine is unwinding an allocation failure inside
// a capture boundary, a failed request may instead be served from that
// goroutine's emergency slots. When nothing can serve it, the returned
// error is an AllocError carrying l.
func Alloc(l Layout) ([]byte, error) {
	if err := l.check(); err != nil {
		return nil, err
	}
	stats.allocCalls.Add(1)
	if l.Size == 0 {
		return zeroBlock, nil
	}
	b, err := Default().Alloc(l)
	if err == nil {
		stats.bytesAllocated.Add(int64(l.Size))
		return b, nil
	}
	if logAlloc {
		fmt.Fprintf(os.Stderr, "[MEM] Alloc failed: layout=%v err=%v\n", l, err)
	}
	if b := reserveTake(l); b != nil {
		stats.reserveHits.Add(1)
		stats.bytesAllocated.Add(int64(l.Size))
		if logAlloc {
			fmt.Fprintf(os.Stderr, "[MEM] Served from emergency slot: layout=%v\n", l)
		}
		return b, nil
	}
	stats.allocFailures.Add(1)
	return nil, AllocError{Layout: l}
}

// Free returns a block obtained from Alloc. b must be the same slice
// Alloc returned and l the same layout it was requested with.
func Free(b []byte, l Layout) error {
	if err := l.check(); err != nil {
		return err
	}
	stats.freeCalls.Add(1)
	if l.Size == 0 || len(b) == 0 {
		return nil
	}
	if err := Default().Free(b, l); err != nil {
		return err
	}
	stats.bytesFreed.Add(int64(l.Size))
	return nil
}

// MustAlloc is Alloc for straight-line code under a capture boundary.
// On allocation failure it raises the failure as a panic whose payload
// is the AllocError; the nearest Catch converts it back to an error.
// Without a boundary on the stack the panic is fatal, which is the
// correct default for an unhandled out-of-memory condition. Invalid
// layouts are caller bugs and panic with the validation error instead.
func MustAlloc(l Layout) []byte {
	b, err := Alloc(l)
	if err == nil {
		return b
	}
	if ae, ok := err.(AllocError); ok {
		currentHooks().raise(ae.Layout)
	}
	panic(err)
}

func debugLogf(format string, args ...any) {
	if debugShim {
		fmt.Fprintf(os.Stderr, "[MEM] "+format+"\n", args...)
	}
}
