//go:build noreserve

package mem

// The noreserve build strips the emergency slots. Capture still works,
// but raise bookkeeping competes with ordinary traffic for memory, so
// a failure under extreme pressure can double-fault and terminate.

// ReserveBytes reports how many bytes of emergency memory a capture
// boundary primes per goroutine: none in this build.
func ReserveBytes() int { return 0 }

func (r *reserve) prime() error { return nil }

func (r *reserve) release() {}

func reserveTake(l Layout) []byte { return nil }
