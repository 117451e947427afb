// Package buf implements a byte buffer whose storage comes from the
// mem package instead of the Go heap.
//
// # Overview
//
// Buffer is an append-oriented byte buffer with explicit, fallible
// capacity management. Where bytes.Buffer grows by panicking on
// exhaustion, Buffer offers two disciplines:
//
//   - Try methods (TryReserve, TryAppend, Write) return an error when
//     the backing allocation fails, for call sites that handle
//     exhaustion inline.
//   - Plain methods (Append, AppendByte, Grow) raise the failure for a
//     surrounding mem.Catch boundary, keeping straight-line code
//     straight.
//
// # Usage Example
//
//	var b buf.Buffer
//	defer b.Free()
//
//	out, err := mem.Catch(func() string {
//	    b.AppendString("report: ")
//	    b.Append(payload)
//	    return b.String()
//	})
//
// # Ownership
//
// The zero Buffer is empty and ready to use. Storage is owned by the
// buffer and released by Free; use after Free fails with ErrFreed on
// Try methods and panics on the raising ones. Bytes returns a view
// that is only valid until the next growth or Free.
package buf
