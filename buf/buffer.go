package buf

import (
	"github.com/joshuapare/memkit/internal/bits"
	"github.com/joshuapare/memkit/mem"
)

// Buffer is an append-oriented byte buffer backed by the mem package.
// The zero value is an empty buffer ready to use. Not safe for
// concurrent use.
type Buffer struct {
	block []byte // backing storage, len(block) is the capacity
	n     int    // bytes in use
	freed bool
}

// TryWithCapacity returns a buffer with at least capacity bytes
// reserved.
func TryWithCapacity(capacity int) (*Buffer, error) {
	b := &Buffer{}
	if err := b.TryReserveExact(capacity); err != nil {
		return nil, err
	}
	return b, nil
}

// Len reports the number of bytes in use.
func (b *Buffer) Len() int { return b.n }

// Cap reports the capacity of the backing block.
func (b *Buffer) Cap() int { return len(b.block) }

// Bytes returns the used portion of the buffer. The view is only valid
// until the next growth or Free. Returns nil after Free.
func (b *Buffer) Bytes() []byte {
	if b.freed {
		return nil
	}
	return b.block[:b.n]
}

// String copies the used portion into an ordinary Go string. It is a
// convenience for handing results out of allocator-backed storage; use
// the strutil package when the copy itself must be fallible.
func (b *Buffer) String() string {
	if b.freed {
		return ""
	}
	return string(b.block[:b.n])
}

// TryReserve ensures room for at least additional more bytes, growing
// amortized. Returns mem.AllocError when the backing allocation fails.
func (b *Buffer) TryReserve(additional int) error {
	need, err := b.reserveCheck(additional)
	if err != nil || need <= len(b.block) {
		return err
	}
	return b.growTo(growCapacity(len(b.block), need))
}

// TryReserveExact is TryReserve without amortization: capacity becomes
// exactly what is in use plus additional.
func (b *Buffer) TryReserveExact(additional int) error {
	need, err := b.reserveCheck(additional)
	if err != nil || need <= len(b.block) {
		return err
	}
	return b.growTo(need)
}

func (b *Buffer) reserveCheck(additional int) (int, error) {
	if b.freed {
		return 0, ErrFreed
	}
	if additional < 0 {
		return 0, ErrBadCount
	}
	need, ok := bits.AddOverflowSafe(b.n, additional)
	if !ok {
		return 0, ErrSizeOverflow
	}
	return need, nil
}

// growTo swaps the backing block for one of newCap bytes.
func (b *Buffer) growTo(newCap int) error {
	nb, err := mem.Alloc(mem.Layout{Size: newCap, Align: 1})
	if err != nil {
		return err
	}
	copy(nb, b.block[:b.n])
	old := b.block
	b.block = nb
	if old != nil {
		return mem.Free(old, mem.Layout{Size: len(old), Align: 1})
	}
	return nil
}

// ensure is the raising counterpart of TryReserve, for use under a
// capture boundary. Misuse (freed buffer, overflowing count) panics
// with the plain sentinel: those are caller bugs, not memory pressure.
func (b *Buffer) ensure(additional int) {
	if b.freed {
		panic(ErrFreed)
	}
	need, ok := bits.AddOverflowSafe(b.n, additional)
	if !ok {
		panic(ErrSizeOverflow)
	}
	if need <= len(b.block) {
		return
	}
	nb := mem.MustAlloc(mem.Layout{Size: growCapacity(len(b.block), need), Align: 1})
	copy(nb, b.block[:b.n])
	old := b.block
	b.block = nb
	if old != nil {
		_ = mem.Free(old, mem.Layout{Size: len(old), Align: 1})
	}
}

// Grow reserves room for at least additional more bytes, raising the
// allocation failure for a surrounding mem.Catch.
func (b *Buffer) Grow(additional int) {
	b.ensure(additional)
}

// Append appends p, raising on allocation failure.
func (b *Buffer) Append(p []byte) {
	b.ensure(len(p))
	b.n += copy(b.block[b.n:], p)
}

// AppendString appends s, raising on allocation failure.
func (b *Buffer) AppendString(s string) {
	b.ensure(len(s))
	b.n += copy(b.block[b.n:], s)
}

// AppendByte appends a single byte, raising on allocation failure.
func (b *Buffer) AppendByte(c byte) {
	b.ensure(1)
	b.block[b.n] = c
	b.n++
}

// TryAppend appends p, reporting allocation failure as an error.
func (b *Buffer) TryAppend(p []byte) error {
	if err := b.TryReserve(len(p)); err != nil {
		return err
	}
	b.n += copy(b.block[b.n:], p)
	return nil
}

// TryAppendString appends s, reporting allocation failure as an error.
func (b *Buffer) TryAppendString(s string) error {
	if err := b.TryReserve(len(s)); err != nil {
		return err
	}
	b.n += copy(b.block[b.n:], s)
	return nil
}

// Write implements io.Writer over TryAppend, so fmt.Fprintf and
// friends surface allocation failure instead of crashing.
func (b *Buffer) Write(p []byte) (int, error) {
	if err := b.TryAppend(p); err != nil {
		return 0, err
	}
	return len(p), nil
}

// WriteString implements io.StringWriter over TryAppendString.
func (b *Buffer) WriteString(s string) (int, error) {
	if err := b.TryAppendString(s); err != nil {
		return 0, err
	}
	return len(s), nil
}

// Truncate discards all but the first n bytes. Panics with ErrBadCount
// when n is out of range.
func (b *Buffer) Truncate(n int) {
	if n < 0 || n > b.n {
		panic(ErrBadCount)
	}
	b.n = n
}

// Reset empties the buffer, keeping its storage.
func (b *Buffer) Reset() { b.n = 0 }

// Free releases the backing block. The buffer is unusable afterwards;
// Free on a freed or never-grown buffer is a no-op.
func (b *Buffer) Free() error {
	if b.freed || b.block == nil {
		b.freed = true
		return nil
	}
	block := b.block
	b.block = nil
	b.n = 0
	b.freed = true
	return mem.Free(block, mem.Layout{Size: len(block), Align: 1})
}
