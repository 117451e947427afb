package mem

import (
	"fmt"
	"os"
	"sync"
	"sync/atomic"
)

// hookPair couples the raise and terminal halves of failure handling.
// They install together, exactly once; the atomic pointer publishes
// both or neither, so no goroutine can observe half-installed hooks.
type hookPair struct {
	raise    func(Layout)
	terminal func(rec any)
}

var (
	hookOnce  sync.Once
	hookState atomic.Pointer[hookPair]
)

// installHooks wires the failure hooks. The first call installs the
// pair; later and concurrent calls are no-ops that observe it.
func installHooks() {
	hookOnce.Do(func() {
		hookState.Store(&hookPair{raise: raiseAllocError, terminal: defaultTerminal})
	})
}

func currentHooks() *hookPair {
	if h := hookState.Load(); h != nil {
		return h
	}
	installHooks()
	return hookState.Load()
}

// osExit is swapped by tests that exercise terminal paths.
var osExit = os.Exit

// Raise reports an allocation failure for layout l by starting the
// unwind a Catch boundary stops. It never returns. Collaborating
// packages that detect exhaustion outside the shim (fallible slice
// helpers, custom pools) raise through here so boundary bookkeeping
// stays uniform.
func Raise(l Layout) {
	currentHooks().raise(l)
	panic(AllocError{Layout: l}) // reached only when raise is stubbed
}

// raiseAllocError starts the unwind for a request nothing could serve.
// Inside a capture boundary it first records the failure in shim-owned
// memory; those two small writes are what the emergency slots exist to
// serve. An allocation failure during that bookkeeping is a double
// fault and terminates the process.
func raiseAllocError(l Layout) {
	if r := currentReserve(); r != nil {
		r.reclaimInflight() // a second failure replaces the first
		r.unwinding = true
		r.seq++
		carrier := allocSlot(carrierLayout, l)
		record := allocSlot(recordLayout, l)
		encodeCarrier(carrier, l)
		encodeRecord(record, r, l)
		r.inflightCarrier = carrier
		r.inflightRecord = record
		debugLogf("raise: layout=%v seq=%d depth=%d", l, r.seq, r.depth)
	}
	panic(AllocError{Layout: l})
}

// allocSlot obtains one bookkeeping block during a raise.
func allocSlot(slot, orig Layout) []byte {
	b, err := Alloc(slot)
	if err != nil {
		fatalDoubleFault(slot)
		panic(AllocError{Layout: orig}) // reached only when exit is stubbed in tests
	}
	return b
}

// defaultTerminal handles a panic payload that is not an allocation
// failure observed at a capture boundary. Arbitrary state was unwound
// for an unknown reason; continuing is unsafe.
func defaultTerminal(rec any) {
	fmt.Fprintf(os.Stderr, "memkit: non-allocation panic crossed capture boundary: %v\n", rec)
	osExit(2)
}

func fatalDoubleFault(l Layout) {
	stats.doubleFaults.Add(1)
	fmt.Fprintf(os.Stderr, "memkit: allocation failed while reporting an allocation failure: layout=%v\n", l)
	osExit(2)
}

func fatalCorruptCapture(l Layout) {
	fmt.Fprintf(os.Stderr, "memkit: capture bookkeeping does not match recovered failure: layout=%v\n", l)
	osExit(2)
}
