package strutil

import (
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"

	"github.com/joshuapare/memkit/internal/bits"
	"github.com/joshuapare/memkit/vec"
)

// utf16ASCIIThreshold is the first code unit that is not plain ASCII.
const utf16ASCIIThreshold = 0x80

// runeUTF8Len is utf8.RuneLen with the replacement-character size for
// runes EncodeRune would reject, so sizing and rendering agree.
func runeUTF8Len(r rune) int {
	if n := utf8.RuneLen(r); n > 0 {
		return n
	}
	return utf8.RuneLen(utf8.RuneError)
}

// DecodeUTF16LE converts UTF-16LE bytes to a UTF-8 string with
// fallible allocation. Surrogate pairs are combined; unpaired
// surrogates decode to the replacement character.
func DecodeUTF16LE(data []byte) (string, error) {
	if len(data)%2 != 0 {
		return "", ErrOddLength
	}
	if len(data) == 0 {
		return "", nil
	}

	// Fast path: all ASCII. In UTF-16LE, ASCII chars are [byte, 0x00].
	allASCII := true
	for i := 0; i < len(data); i += 2 {
		if data[i+1] != 0 || data[i] >= utf16ASCIIThreshold {
			allASCII = false
			break
		}
	}
	if allASCII {
		out, err := vec.TryMake[byte](len(data) / 2)
		if err != nil {
			return "", err
		}
		for i := 0; i < len(data); i += 2 {
			out[i/2] = data[i]
		}
		return ownedString(out), nil
	}

	size := 0
	for i := 0; i+1 < len(data); i += 2 {
		r, skip := utf16RuneAt(data, i)
		size += runeUTF8Len(r)
		i += skip
	}
	out, err := vec.TryMake[byte](size)
	if err != nil {
		return "", err
	}
	n := 0
	for i := 0; i+1 < len(data); i += 2 {
		r, skip := utf16RuneAt(data, i)
		n += utf8.EncodeRune(out[n:], r)
		i += skip
	}
	return ownedString(out[:n]), nil
}

// utf16RuneAt reads the rune starting at the code unit at offset i,
// returning it and how many extra bytes a surrogate pair consumed.
func utf16RuneAt(data []byte, i int) (rune, int) {
	r := rune(bits.U16LE(data[i:]))
	if r >= 0xD800 && r <= 0xDBFF && i+3 < len(data) {
		r2 := rune(bits.U16LE(data[i+2:]))
		if r2 >= 0xDC00 && r2 <= 0xDFFF {
			return 0x10000 + ((r-0xD800)<<10 | (r2 - 0xDC00)), 2
		}
	}
	return r, 0
}

// DecodeLatin1 converts Windows-1252 bytes to a UTF-8 string with
// fallible allocation. Windows-1252 rather than strict Latin-1 because
// real-world "latin1" data almost always carries the 0x80-0x9F
// printable extensions. Undefined bytes decode to the replacement
// character.
func DecodeLatin1(data []byte) (string, error) {
	if len(data) == 0 {
		return "", nil
	}

	// Fast path: ASCII is identical in both encodings.
	allASCII := true
	for _, c := range data {
		if c >= 0x80 {
			allASCII = false
			break
		}
	}
	if allASCII {
		out, err := vec.TryMake[byte](len(data))
		if err != nil {
			return "", err
		}
		copy(out, data)
		return ownedString(out), nil
	}

	size := 0
	for _, c := range data {
		size += runeUTF8Len(charmap.Windows1252.DecodeByte(c))
	}
	out, err := vec.TryMake[byte](size)
	if err != nil {
		return "", err
	}
	n := 0
	for _, c := range data {
		n += utf8.EncodeRune(out[n:], charmap.Windows1252.DecodeByte(c))
	}
	return ownedString(out[:n]), nil
}
