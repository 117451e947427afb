//go:build unix

package osmem

import (
	"os"
	"testing"
)

func TestAllocFreeUnix(t *testing.T) {
	b, err := Alloc(4097)
	if err != nil {
		t.Fatalf("Alloc: %v", err)
	}
	if len(b) != 4097 {
		t.Fatalf("len = %d, want 4097", len(b))
	}
	for i, v := range b {
		if v != 0 {
			t.Fatalf("byte %d not zeroed: 0x%x", i, v)
		}
	}
	b[0] = 0xde
	b[4096] = 0xad
	if b[0] != 0xde || b[4096] != 0xad {
		t.Fatalf("mapping not writable")
	}
	if err := Free(b); err != nil {
		t.Fatalf("Free: %v", err)
	}
}

func TestAllocBadSizeUnix(t *testing.T) {
	if _, err := Alloc(0); err != ErrBadSize {
		t.Fatalf("Alloc(0) err = %v, want ErrBadSize", err)
	}
	if _, err := Alloc(-1); err != ErrBadSize {
		t.Fatalf("Alloc(-1) err = %v, want ErrBadSize", err)
	}
}

func TestFreeNilUnix(t *testing.T) {
	if err := Free(nil); err != nil {
		t.Fatalf("Free(nil): %v", err)
	}
}

func TestGranularityUnix(t *testing.T) {
	if got := Granularity(); got != os.Getpagesize() {
		t.Fatalf("Granularity = %d, want page size %d", got, os.Getpagesize())
	}
}
