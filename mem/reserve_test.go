//go:build !noreserve

package mem

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReserveLifecycle(t *testing.T) {
	r, err := enterReserve()
	require.NoError(t, err, "priming against Sys should not fail")
	require.NotNil(t, r)
	defer func() {
		if currentReserve() != nil {
			exitReserve(r)
		}
	}()

	assert.Equal(t, 1, r.depth)
	assert.NotNil(t, r.carrier, "carrier slot should be primed")
	assert.NotNil(t, r.record, "record slot should be primed")
	assert.Same(t, r, currentReserve())

	assert.Nil(t, reserveTake(carrierLayout), "slots are off limits outside an unwind")

	r.unwinding = true
	assert.Nil(t, reserveTake(Layout{Size: 32, Align: 8}), "only exact slot layouts are served")

	b := reserveTake(carrierLayout)
	require.NotNil(t, b)
	assert.Len(t, b, carrierSize)
	assert.Nil(t, reserveTake(carrierLayout), "carrier slot is single-use")
	require.NoError(t, Free(b, carrierLayout))
	r.unwinding = false

	exitReserve(r)
	assert.Nil(t, currentReserve(), "outermost exit should clear the registry")
}

func TestReserveReprimeOnReentry(t *testing.T) {
	r, err := enterReserve()
	require.NoError(t, err)
	defer exitReserve(r)

	r.unwinding = true
	b := reserveTake(recordLayout)
	require.NotNil(t, b)
	require.NoError(t, Free(b, recordLayout))
	r.unwinding = false
	assert.Nil(t, r.record)

	// A nested boundary on the same goroutine refills the consumed slot.
	r2, err := enterReserve()
	require.NoError(t, err)
	assert.Same(t, r, r2)
	assert.Equal(t, 2, r.depth)
	assert.NotNil(t, r.record, "reentry should re-prime consumed slots")
	exitReserve(r2)
	assert.Equal(t, 1, r.depth)
}

func TestRecordRoundtrip(t *testing.T) {
	r := &reserve{gid: 1234, depth: 2, seq: 7}
	l := Layout{Size: 4096, Align: 16}

	carrier := make([]byte, carrierSize)
	encodeCarrier(carrier, l)
	assert.Equal(t, l, decodeCarrier(carrier))

	record := make([]byte, recordSize)
	encodeRecord(record, r, l)
	assert.True(t, r.checkRecord(record, l))
	assert.False(t, r.checkRecord(record, Layout{Size: 4095, Align: 16}),
		"record must match the recovered layout")

	r.seq++
	assert.False(t, r.checkRecord(record, l), "a stale record must not reconcile")
}
