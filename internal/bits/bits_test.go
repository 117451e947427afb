package bits

import "testing"

func TestFieldCodecs(t *testing.T) {
	data := []byte{0x01, 0x23, 0x45, 0x67, 0x89, 0xab, 0xcd, 0xef}

	if got := U16LE(data); got != 0x2301 {
		t.Fatalf("U16LE = 0x%x, want 0x2301", got)
	}
	if got := U64LE(data); got != 0xefcdab8967452301 {
		t.Fatalf("U64LE = 0x%x, want 0xefcdab8967452301", got)
	}

	short := []byte{0xAA}
	if U16LE(short) != 0 {
		t.Fatalf("U16LE short should be 0")
	}
	if U64LE(short) != 0 {
		t.Fatalf("U64LE short should be 0")
	}
}

func TestPutU64LE(t *testing.T) {
	b := make([]byte, 8)
	PutU64LE(b, 0xefcdab8967452301)
	want := []byte{0x01, 0x23, 0x45, 0x67, 0x89, 0xab, 0xcd, 0xef}
	for i := range want {
		if b[i] != want[i] {
			t.Fatalf("PutU64LE byte %d = 0x%x, want 0x%x", i, b[i], want[i])
		}
	}

	short := []byte{0xAA}
	PutU64LE(short, 1)
	if short[0] != 0xAA {
		t.Fatalf("PutU64LE on short buffer should not write")
	}
}
