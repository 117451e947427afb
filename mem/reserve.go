package mem

import (
	"sync"

	"github.com/petermattis/goid"

	"github.com/joshuapare/memkit/internal/bits"
)

// Emergency slot geometry. The carrier holds the failed layout for the
// boundary to reconcile; the record holds the full raise bookkeeping.
const (
	carrierSize = 16
	recordSize  = 80
	slotAlign   = 8

	// recordMagic is "MEMKITRC" read as a big-endian uint64.
	recordMagic uint64 = 0x4d454d4b49545243
)

var (
	carrierLayout = Layout{Size: carrierSize, Align: slotAlign}
	recordLayout  = Layout{Size: recordSize, Align: slotAlign}
)

// reserve is the per-goroutine emergency state. Only the owning
// goroutine touches its fields, so no locking is needed past the
// registry itself.
type reserve struct {
	gid   int64
	depth int    // nested capture boundaries on this goroutine
	seq   uint64 // raises observed, for record reconciliation

	// unwinding is set while an allocation failure is in flight; the
	// shim consults the slots below only during that window.
	unwinding bool

	carrier []byte
	record  []byte

	inflightCarrier []byte
	inflightRecord  []byte
}

// reserves maps goroutine id to its reserve while at least one capture
// boundary is active on that goroutine.
var reserves sync.Map

func currentReserve() *reserve {
	if v, ok := reserves.Load(goid.Get()); ok {
		return v.(*reserve)
	}
	return nil
}

// enterReserve registers a capture boundary on the current goroutine
// and primes its emergency slots. Priming failure is itself an
// allocation failure and is returned as one.
func enterReserve() (*reserve, error) {
	gid := goid.Get()
	var r *reserve
	if v, ok := reserves.Load(gid); ok {
		r = v.(*reserve)
	} else {
		r = &reserve{gid: gid}
		reserves.Store(gid, r)
	}
	r.depth++
	if err := r.prime(); err != nil {
		r.depth--
		if r.depth == 0 {
			r.release()
			reserves.Delete(r.gid)
		}
		return nil, err
	}
	return r, nil
}

// exitReserve unregisters a boundary. The goroutine's slots are held
// across nested boundaries and released when the outermost one exits;
// goroutines have no exit hook, so this is where cleanup lives.
func exitReserve(r *reserve) {
	r.depth--
	if r.depth == 0 {
		r.release()
		reserves.Delete(r.gid)
	}
}

// reclaimInflight frees raise bookkeeping that never reached a
// boundary, either because a second failure replaced it or because the
// work recovered the condition itself.
func (r *reserve) reclaimInflight() {
	if r.inflightCarrier != nil {
		_ = Free(r.inflightCarrier, carrierLayout)
		r.inflightCarrier = nil
	}
	if r.inflightRecord != nil {
		_ = Free(r.inflightRecord, recordLayout)
		r.inflightRecord = nil
	}
}

// reconcile validates and frees the bookkeeping blocks a raise wrote
// for the failure the boundary just recovered. It reports whether the
// blocks describe that failure.
func (r *reserve) reconcile(carrier, record []byte, l Layout) bool {
	ok := true
	if carrier != nil {
		if decodeCarrier(carrier) != l {
			ok = false
		}
		_ = Free(carrier, carrierLayout)
	}
	if record != nil {
		if !r.checkRecord(record, l) {
			ok = false
		}
		_ = Free(record, recordLayout)
	}
	return ok
}

func encodeCarrier(b []byte, l Layout) {
	bits.PutU64LE(b[0:], uint64(l.Size))
	bits.PutU64LE(b[8:], uint64(l.Align))
}

func decodeCarrier(b []byte) Layout {
	return Layout{
		Size:  int(bits.U64LE(b[0:])),
		Align: int(bits.U64LE(b[8:])),
	}
}

func encodeRecord(b []byte, r *reserve, l Layout) {
	bits.PutU64LE(b[0:], recordMagic)
	bits.PutU64LE(b[8:], r.seq)
	bits.PutU64LE(b[16:], uint64(r.gid))
	bits.PutU64LE(b[24:], uint64(l.Size))
	bits.PutU64LE(b[32:], uint64(l.Align))
	bits.PutU64LE(b[40:], uint64(r.depth))
	// bytes 48..80 stay zero for future use
}

func (r *reserve) checkRecord(b []byte, l Layout) bool {
	return bits.U64LE(b[0:]) == recordMagic &&
		bits.U64LE(b[8:]) == r.seq &&
		bits.U64LE(b[16:]) == uint64(r.gid) &&
		bits.U64LE(b[24:]) == uint64(l.Size) &&
		bits.U64LE(b[32:]) == uint64(l.Align) &&
		bits.U64LE(b[40:]) == uint64(r.depth)
}
