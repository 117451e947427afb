//go:build !noreserve

package mem

// ReserveBytes reports how many bytes of emergency memory a capture
// boundary primes per goroutine. Capacity planners can subtract it
// from a budget; it is zero in noreserve builds.
func ReserveBytes() int { return carrierSize + recordSize }

// prime fills any empty emergency slot from the default allocator.
// Boundaries re-prime on entry, so slots consumed by an earlier capture
// refill before the next piece of work runs. Priming deliberately goes
// straight to the default allocator: the slots must never be served
// from themselves.
func (r *reserve) prime() error {
	if r.carrier == nil {
		b, err := Default().Alloc(carrierLayout)
		if err != nil {
			return AllocError{Layout: carrierLayout}
		}
		r.carrier = b
	}
	if r.record == nil {
		b, err := Default().Alloc(recordLayout)
		if err != nil {
			return AllocError{Layout: recordLayout}
		}
		r.record = b
	}
	debugLogf("prime: gid=%d depth=%d", r.gid, r.depth)
	return nil
}

// release returns any held slots to the default allocator.
func (r *reserve) release() {
	if r.carrier != nil {
		_ = Default().Free(r.carrier, carrierLayout)
		r.carrier = nil
	}
	if r.record != nil {
		_ = Default().Free(r.record, recordLayout)
		r.record = nil
	}
	debugLogf("release: gid=%d", r.gid)
}

// reserveTake serves l from the calling goroutine's emergency slots.
// Only consulted after the default allocator failed, and only while
// that goroutine is unwinding an allocation failure. Layouts must
// match a slot exactly; the raise path requests exactly these.
func reserveTake(l Layout) []byte {
	r := currentReserve()
	if r == nil || !r.unwinding {
		return nil
	}
	if l == carrierLayout && r.carrier != nil {
		b := r.carrier
		r.carrier = nil
		return b
	}
	if l == recordLayout && r.record != nil {
		b := r.record
		r.record = nil
		return b
	}
	return nil
}
