// Package mem provides interposable memory allocation with recoverable
// allocation failure.
//
// # Overview
//
// This package routes allocation requests through a process-wide default
// allocator and turns exhaustion into a value instead of a crash. Code
// that allocates through the package can run under Catch, which stops
// the unwind started by a failed request at a well-defined boundary and
// hands the failure back as an AllocError carrying the exact layout
// that could not be satisfied.
//
// # Allocator Interface
//
// The core abstraction is the Allocator interface:
//
//   - Alloc(layout): Obtain a zeroed block satisfying size and alignment
//   - Free(block, layout): Return a block obtained from Alloc
//
// # Implementations
//
// Sys: Production allocator backed by the operating system
//
//   - Anonymous private mappings on unix, VirtualAlloc on Windows
//   - Page-granular, zero-filled blocks
//   - Alignment up to the OS granularity
//
// Limited: Budget-enforcing wrapper around another allocator
//
//   - Debits an atomic byte budget on Alloc, credits it on Free
//   - Over-budget requests fail without touching the inner allocator
//   - Used for tests and pressure drills
//
// # Usage Example
//
//	result, err := mem.Catch(func() *Index {
//	    b := mem.MustAlloc(mem.Layout{Size: 1 << 20, Align: 8})
//	    defer mem.Free(b, mem.Layout{Size: 1 << 20, Align: 8})
//	    return buildIndex(b)
//	})
//	if err != nil {
//	    var ae mem.AllocError
//	    if errors.As(err, &ae) {
//	        log.Printf("index too large: %v", ae.Layout)
//	    }
//	}
//
// # Failure Semantics
//
// Only allocation failure is recoverable. MustAlloc reacts to a failed
// request by raising a panic whose payload is the AllocError; Catch
// recovers exactly that payload. Any other panic reaching a Catch
// boundary means arbitrary program state was unwound for an unknown
// reason, and the process terminates rather than continue corrupted.
//
// While a goroutine is unwinding an allocation failure, the shim falls
// back to small per-goroutine emergency slots primed at Catch entry, so
// the bookkeeping of the failure itself cannot fail under the same
// pressure that triggered it. A second failure during that window
// terminates the process. Building with the noreserve tag compiles the
// fallback out, making capture best-effort.
//
// # Thread Safety
//
// All package-level entry points are safe for concurrent use. Emergency
// slots and unwind state are per goroutine; failures on one goroutine
// never consume another goroutine's slots. SetDefault is atomic, but
// swapping the default allocator while blocks from the previous one are
// still live is the caller's responsibility.
//
// # Environment
//
// Setting MEMKIT_LOG_ALLOC to any non-empty value logs allocation
// failures and emergency slot hits to stderr.
//
// # Related Packages
//
//   - github.com/joshuapare/memkit/buf: Fallible byte buffer on this allocator
//   - github.com/joshuapare/memkit/vec: Fallible slice helpers for Go heap slices
//   - github.com/joshuapare/memkit/strutil: Fallible string building and decoding
package mem
