package surface

import (
	"strings"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/unicode/norm"
)

// The core fonts are single-byte Windows-1252 fonts. Text crossing into the
// library is composed (NFC) and mapped rune by rune; anything outside the
// code page becomes '?'.
var codepage = charmap.Windows1252

// Encode converts UTF-8 text to the byte string the core fonts expect.
func Encode(s string) string {
	s = norm.NFC.String(s)
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch r {
		case '\t':
			b.WriteByte(' ')
			continue
		case '\n', '\r':
			b.WriteByte(' ')
			continue
		}
		if c, ok := codepage.EncodeRune(r); ok && r >= ' ' {
			b.WriteByte(c)
		} else {
			b.WriteByte('?')
		}
	}
	return b.String()
}

// Decode is the inverse of Encode for bytes the code page defines.
func Decode(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		b.WriteRune(codepage.DecodeByte(s[i]))
	}
	return b.String()
}
