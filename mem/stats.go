package mem

import "sync/atomic"

// Stats holds counters describing shim activity since process start.
type Stats struct {
	AllocCalls     int64 // Total Alloc() entries, including failures
	FreeCalls      int64 // Total Free() entries
	AllocFailures  int64 // Requests neither the allocator nor the reserve could serve
	ReserveHits    int64 // Requests served from per-goroutine emergency slots
	BytesAllocated int64 // Bytes handed out through the shim
	BytesFreed     int64 // Bytes returned through the shim
	Catches        int64 // Capture boundaries entered
	Recovered      int64 // Allocation failures converted to errors at a boundary
	DoubleFaults   int64 // Allocation failures while reporting an allocation failure
}

// shimStats is the live atomic mirror of Stats.
type shimStats struct {
	allocCalls     atomic.Int64
	freeCalls      atomic.Int64
	allocFailures  atomic.Int64
	reserveHits    atomic.Int64
	bytesAllocated atomic.Int64
	bytesFreed     atomic.Int64
	catches        atomic.Int64
	recovered      atomic.Int64
	doubleFaults   atomic.Int64
}

var stats shimStats

// ReadStats returns a snapshot of the shim counters. Counters are read
// individually, so a snapshot taken under concurrent traffic is
// internally consistent per counter, not across counters.
func ReadStats() Stats {
	return Stats{
		AllocCalls:     stats.allocCalls.Load(),
		FreeCalls:      stats.freeCalls.Load(),
		AllocFailures:  stats.allocFailures.Load(),
		ReserveHits:    stats.reserveHits.Load(),
		BytesAllocated: stats.bytesAllocated.Load(),
		BytesFreed:     stats.bytesFreed.Load(),
		Catches:        stats.catches.Load(),
		Recovered:      stats.recovered.Load(),
		DoubleFaults:   stats.doubleFaults.Load(),
	}
}
