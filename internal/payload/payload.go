// Package payload builds event payloads in the wire layout the decoder reads. It exists for
// tests and examples; nothing on the decode path uses it.
package payload

import (
	"math"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/encoding/unicode"

	"github.com/bearlytools/tracefield/internal/binary"
)

var utf16le = unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)

// Builder appends fields to a payload. The zero value is ready to use and writes
// 8 byte pointers.
type Builder struct {
	buf []byte
	// PointerSize is the width Pointer() writes. 0 means 8.
	PointerSize int
}

// Bytes returns the payload built so far.
func (b *Builder) Bytes() []byte {
	return b.buf
}

// Len returns the length of the payload built so far.
func (b *Builder) Len() int {
	return len(b.buf)
}

// Raw appends bytes as is.
func (b *Builder) Raw(p []byte) *Builder {
	b.buf = append(b.buf, p...)
	return b
}

func (b *Builder) Bool(v bool) *Builder {
	if v {
		return b.Uint8(1)
	}
	return b.Uint8(0)
}

func (b *Builder) Bool32(v bool) *Builder {
	if v {
		return b.Uint32(1)
	}
	return b.Uint32(0)
}

func (b *Builder) Int8(v int8) *Builder   { b.buf = binary.Append(b.buf, v); return b }
func (b *Builder) Int16(v int16) *Builder { b.buf = binary.Append(b.buf, v); return b }
func (b *Builder) Int32(v int32) *Builder { b.buf = binary.Append(b.buf, v); return b }
func (b *Builder) Int64(v int64) *Builder { b.buf = binary.Append(b.buf, v); return b }

func (b *Builder) Uint8(v uint8) *Builder   { b.buf = binary.Append(b.buf, v); return b }
func (b *Builder) Uint16(v uint16) *Builder { b.buf = binary.Append(b.buf, v); return b }
func (b *Builder) Uint32(v uint32) *Builder { b.buf = binary.Append(b.buf, v); return b }
func (b *Builder) Uint64(v uint64) *Builder { b.buf = binary.Append(b.buf, v); return b }

func (b *Builder) Float32(v float32) *Builder { return b.Uint32(math.Float32bits(v)) }
func (b *Builder) Float64(v float64) *Builder { return b.Uint64(math.Float64bits(v)) }

// Pointer appends v using PointerSize bytes.
func (b *Builder) Pointer(v uint64) *Builder {
	if b.PointerSize == 4 {
		return b.Uint32(uint32(v))
	}
	return b.Uint64(v)
}

// FileTime appends t as 100ns intervals since 1601-01-01 UTC. The zero time is written as 0.
func (b *Builder) FileTime(t time.Time) *Builder {
	if t.IsZero() {
		return b.Int64(0)
	}
	return b.Int64(t.Unix()*1e7 + int64(t.Nanosecond())/100 + 116444736000000000)
}

// GUID appends u in the mixed endian GUID layout.
func (b *Builder) GUID(u uuid.UUID) *Builder {
	var g [16]byte
	g[0], g[1], g[2], g[3] = u[3], u[2], u[1], u[0]
	g[4], g[5] = u[5], u[4]
	g[6], g[7] = u[7], u[6]
	copy(g[8:], u[8:])
	return b.Raw(g[:])
}

// UnicodeString appends s as UTF-16LE followed by a zero code unit.
func (b *Builder) UnicodeString(s string) *Builder {
	return b.Raw(utf16(s)).Uint16(0)
}

// AnsiString appends s followed by a zero byte.
func (b *Builder) AnsiString(s string) *Builder {
	return b.Raw([]byte(s)).Uint8(0)
}

// CountedUnicodeString appends the number of UTF-16 code units in s, then s as UTF-16LE.
func (b *Builder) CountedUnicodeString(s string) *Builder {
	u := utf16(s)
	return b.Uint16(uint16(len(u) / 2)).Raw(u)
}

// CountedBinary appends len(p) as a uint16, then p.
func (b *Builder) CountedBinary(p []byte) *Builder {
	return b.Uint16(uint16(len(p))).Raw(p)
}

func utf16(s string) []byte {
	u, err := utf16le.NewEncoder().String(s)
	if err != nil {
		panic(err)
	}
	return []byte(u)
}
