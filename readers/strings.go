package readers

import (
	"bytes"

	"golang.org/x/text/encoding/unicode"

	"github.com/bearlytools/tracefield/internal/binary"
	"github.com/bearlytools/tracefield/internal/conversions"
)

// utf16le decodes without looking for a byte order mark; a leading U+FEFF is kept as text.
var utf16le = unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)

// UnicodeStringLen returns the byte length of the zero terminated UTF-16LE string at the
// start of b, including the 2 byte terminator. Only code units on even offsets are examined,
// so a zero byte that is half of a code unit does not end the string. ok is false if b ends
// before a terminator is found. This does not allocate.
func UnicodeStringLen(b []byte) (n int, ok bool) {
	for i := 0; i+1 < len(b); i += 2 {
		if b[i] == 0 && b[i+1] == 0 {
			return i + 2, true
		}
	}
	return 0, false
}

// UnicodeString decodes the zero terminated UTF-16LE string at the start of b. The length is
// found with UnicodeStringLen, so the decoded text always ends where the probe says the field
// ends. Unpaired surrogates decode to U+FFFD.
func UnicodeString(b []byte) (s string, ok bool) {
	n, ok := UnicodeStringLen(b)
	if !ok {
		return "", false
	}
	return decodeUTF16(b[:n-2]), true
}

// AnsiStringLen returns the byte length of the zero terminated 8 bit string at the start of
// b, including the terminator.
func AnsiStringLen(b []byte) (n int, ok bool) {
	i := bytes.IndexByte(b, 0)
	if i < 0 {
		return 0, false
	}
	return i + 1, true
}

// AnsiString reads the zero terminated 8 bit string at the start of b. The bytes are copied.
func AnsiString(b []byte) (s string, ok bool) {
	n, ok := AnsiStringLen(b)
	if !ok {
		return "", false
	}
	return string(b[:n-1]), true
}

// countPrefix is the size of the uint16 count in front of counted fields.
const countPrefix = 2

// CountedLen returns the byte length of a count prefixed field at the start of b: the
// 2 byte count plus count*unit bytes. If b is shorter than that, n is the length that was
// needed and ok is false. If b cannot even hold the count, n is 2.
func CountedLen(b []byte, unit int) (n int, ok bool) {
	if len(b) < countPrefix {
		return countPrefix, false
	}
	n = countPrefix + int(binary.Get[uint16](b[:countPrefix]))*unit
	return n, n <= len(b)
}

// CountedUnicodeString reads a string prefixed by its length in UTF-16 code units. There is no
// terminator.
func CountedUnicodeString(b []byte) (s string, ok bool) {
	n, ok := CountedLen(b, 2)
	if !ok {
		return "", false
	}
	return decodeUTF16(b[countPrefix:n]), true
}

// CountedBinary reads bytes prefixed by their length. The returned slice is a copy.
func CountedBinary(b []byte) (v []byte, ok bool) {
	n, ok := CountedLen(b, 1)
	if !ok {
		return nil, false
	}
	return bytes.Clone(b[countPrefix:n]), true
}

func decodeUTF16(b []byte) string {
	if len(b) == 0 {
		return ""
	}
	// Invalid sequences are replaced with U+FFFD rather than reported, and b always holds
	// whole code units, so the decoder cannot fail.
	out, _ := utf16le.NewDecoder().Bytes(b)
	return conversions.ByteSlice2String(out)
}
