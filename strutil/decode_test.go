package strutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeUTF16LEASCII(t *testing.T) {
	data := []byte{'H', 0, 'e', 0, 'l', 0, 'l', 0, 'o', 0}
	s, err := DecodeUTF16LE(data)
	require.NoError(t, err)
	assert.Equal(t, "Hello", s)
}

func TestDecodeUTF16LENonASCII(t *testing.T) {
	// "café" with é = U+00E9
	data := []byte{'c', 0, 'a', 0, 'f', 0, 0xE9, 0}
	s, err := DecodeUTF16LE(data)
	require.NoError(t, err)
	assert.Equal(t, "café", s)
}

func TestDecodeUTF16LESurrogatePair(t *testing.T) {
	// U+1F600 encodes as the pair D83D DE00
	data := []byte{0x3D, 0xD8, 0x00, 0xDE}
	s, err := DecodeUTF16LE(data)
	require.NoError(t, err)
	assert.Equal(t, "\U0001F600", s)
}

func TestDecodeUTF16LEUnpairedSurrogate(t *testing.T) {
	data := []byte{0x3D, 0xD8, 'A', 0}
	s, err := DecodeUTF16LE(data)
	require.NoError(t, err)
	assert.Equal(t, "�A", s, "unpaired surrogate should decode to the replacement rune")
}

func TestDecodeUTF16LEOddLength(t *testing.T) {
	_, err := DecodeUTF16LE([]byte{0x41})
	assert.ErrorIs(t, err, ErrOddLength)
}

func TestDecodeUTF16LEEmpty(t *testing.T) {
	s, err := DecodeUTF16LE(nil)
	require.NoError(t, err)
	assert.Equal(t, "", s)
}

func TestDecodeLatin1ASCII(t *testing.T) {
	s, err := DecodeLatin1([]byte("plain ascii"))
	require.NoError(t, err)
	assert.Equal(t, "plain ascii", s)
}

func TestDecodeLatin1Extended(t *testing.T) {
	// 0x93/0x94 are the Windows-1252 curly quotes missing from strict Latin-1.
	s, err := DecodeLatin1([]byte{0x93, 'h', 'i', 0x94, ' ', 0xE9})
	require.NoError(t, err)
	assert.Equal(t, "“hi” é", s)
}

func TestDecodeLatin1Undefined(t *testing.T) {
	s, err := DecodeLatin1([]byte{0x81})
	require.NoError(t, err)
	assert.Equal(t, "�", s, "undefined bytes should decode to the replacement rune")
}

func TestDecodeLatin1Empty(t *testing.T) {
	s, err := DecodeLatin1(nil)
	require.NoError(t, err)
	assert.Equal(t, "", s)
}
