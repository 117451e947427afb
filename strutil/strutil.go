// Package strutil builds and decodes strings with fallible allocation.
//
// Go string operations allocate on the runtime heap and treat
// exhaustion as fatal. The helpers here size the result first, obtain
// exactly that storage through the vec package, and hand it back as an
// immutable string, so running out of memory surfaces as a
// mem.AllocError instead of a crash.
package strutil

import (
	"errors"
	"fmt"
	"unsafe"

	"github.com/joshuapare/memkit/internal/bits"
	"github.com/joshuapare/memkit/vec"
)

var (
	// ErrOddLength indicates UTF-16 input with a dangling byte.
	ErrOddLength = errors.New("strutil: utf-16 data has odd length")

	// ErrFormatChanged indicates format output that changed size
	// between the sizing and rendering passes, which happens when
	// arguments are mutated concurrently.
	ErrFormatChanged = errors.New("strutil: format output changed between passes")

	// ErrSizeOverflow indicates a result size that does not fit in int.
	ErrSizeOverflow = errors.New("strutil: size overflows int")
)

// ownedString reinterprets b as a string without copying. Every caller
// hands over a freshly built slice that is never touched again.
func ownedString(b []byte) string {
	if len(b) == 0 {
		return ""
	}
	return unsafe.String(&b[0], len(b))
}

// TryClone returns a copy of s, reporting exhaustion as an error.
func TryClone(s string) (string, error) {
	if len(s) == 0 {
		return "", nil
	}
	b, err := vec.TryMake[byte](len(s))
	if err != nil {
		return "", err
	}
	copy(b, s)
	return ownedString(b), nil
}

// TryConcat concatenates parts into one fallibly allocated string.
func TryConcat(parts ...string) (string, error) {
	total := 0
	for _, p := range parts {
		t, ok := bits.AddOverflowSafe(total, len(p))
		if !ok {
			return "", ErrSizeOverflow
		}
		total = t
	}
	if total == 0 {
		return "", nil
	}
	b, err := vec.TryMake[byte](total)
	if err != nil {
		return "", err
	}
	n := 0
	for _, p := range parts {
		n += copy(b[n:], p)
	}
	return ownedString(b), nil
}

// countWriter measures fmt output without keeping it.
type countWriter int

func (w *countWriter) Write(p []byte) (int, error) {
	*w += countWriter(len(p))
	return len(p), nil
}

// fixedWriter renders into a preallocated block and refuses to grow.
type fixedWriter struct {
	buf []byte
	n   int
}

func (w *fixedWriter) Write(p []byte) (int, error) {
	if w.n+len(p) > len(w.buf) {
		return 0, ErrFormatChanged
	}
	w.n += copy(w.buf[w.n:], p)
	return len(p), nil
}

// TryFormat renders the fmt-style format into a fallibly allocated
// string. The output is sized with a dry run, then rendered into
// exactly that much storage; fmt's own scratch space still comes off
// the runtime heap.
func TryFormat(format string, args ...any) (string, error) {
	var cw countWriter
	if _, err := fmt.Fprintf(&cw, format, args...); err != nil {
		return "", err
	}
	if cw == 0 {
		return "", nil
	}
	b, err := vec.TryMake[byte](int(cw))
	if err != nil {
		return "", err
	}
	fw := fixedWriter{buf: b}
	if _, err := fmt.Fprintf(&fw, format, args...); err != nil {
		return "", err
	}
	if fw.n != len(b) {
		return "", ErrFormatChanged
	}
	return ownedString(b), nil
}

// TryString renders v the way fmt would, with fallible allocation.
func TryString(v any) (string, error) {
	return TryFormat("%v", v)
}
