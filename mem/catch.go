package mem

// Catch runs work and returns its result. If an allocation made
// through this package fails inside work, the unwind stops here and
// the failure comes back as the error instead of crashing the
// goroutine. Boundaries nest; the innermost one observes a failure.
//
// Catch primes the calling goroutine's emergency slots before running
// work so that failure bookkeeping cannot itself die of the memory
// pressure it reports. If even that priming fails, Catch returns the
// priming failure without running work.
//
// Only AllocError payloads are recovered. Any other panic reaching the
// boundary terminates the process: state above the panic site was
// unwound for a reason this package cannot reason about.
func Catch[T any](work func() T) (result T, err error) {
	installHooks()
	r, rerr := enterReserve()
	if rerr != nil {
		err = rerr
		return
	}
	stats.catches.Add(1)
	defer exitReserve(r)
	defer func() {
		rec := recover()
		if rec == nil {
			// work may have recovered the condition itself; drop any
			// bookkeeping it left behind.
			r.unwinding = false
			r.reclaimInflight()
			return
		}
		r.unwinding = false
		carrier := r.inflightCarrier
		record := r.inflightRecord
		r.inflightCarrier = nil
		r.inflightRecord = nil
		ae, ok := rec.(AllocError)
		if !ok {
			if carrier != nil {
				_ = Free(carrier, carrierLayout)
			}
			if record != nil {
				_ = Free(record, recordLayout)
			}
			currentHooks().terminal(rec)
			panic(rec) // terminal does not return in production; keep unwinding when it is stubbed
		}
		if !r.reconcile(carrier, record, ae.Layout) {
			fatalCorruptCapture(ae.Layout)
		}
		stats.recovered.Add(1)
		err = ae
	}()
	result = work()
	return
}

// TryCatch is Catch for work that already returns an error. A captured
// allocation failure takes precedence over the work's own error.
func TryCatch(work func() error) error {
	werr, err := Catch(work)
	if err != nil {
		return err
	}
	return werr
}
