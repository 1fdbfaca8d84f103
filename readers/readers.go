// Package readers holds the typed field readers: pure functions that interpret the bytes found
// at a resolved field offset as a concrete value.
//
// Fixed width readers have no error path. The caller (normally a cursor.Cursor) has already
// checked that the slice holds the field's full width, so a short slice is a bug and panics.
// Variable length readers return ok == false when the payload ends before the field does.
//
// Every function is safe to call concurrently on the same immutable payload.
package readers

import (
	"time"

	"github.com/google/uuid"
	"golang.org/x/exp/constraints"

	"github.com/bearlytools/tracefield/internal/binary"
)

// Int reads a little endian integer of type T from the start of b.
func Int[T constraints.Integer](b []byte) T {
	return binary.Get[T](b[:binary.Size[T]()])
}

// Bool reads a 1 byte boolean. Any nonzero byte is true.
func Bool(b []byte) bool {
	return b[0] != 0
}

// Bool32 reads a 4 byte platform boolean. Any nonzero value is true.
func Bool32(b []byte) bool {
	return binary.Get[uint32](b[:4]) != 0
}

// Float32 reads a little endian IEEE 754 float32.
func Float32(b []byte) float32 {
	return binary.GetFloat32(b)
}

// Float64 reads a little endian IEEE 754 float64.
func Float64(b []byte) float64 {
	return binary.GetFloat64(b)
}

// Pointer reads a pointer sized value. size must be 4 or 8.
func Pointer(b []byte, size int) uint64 {
	if size == 4 {
		return uint64(binary.Get[uint32](b[:4]))
	}
	return binary.Get[uint64](b[:8])
}

// fileTimeUnixDelta is the number of 100ns intervals between 1601-01-01 and 1970-01-01.
const fileTimeUnixDelta = 116444736000000000

// FileTime reads a count of 100ns intervals since 1601-01-01 UTC. A zero count is returned
// as the zero time.Time.
func FileTime(b []byte) time.Time {
	ticks := binary.Get[int64](b[:8])
	if ticks == 0 {
		return time.Time{}
	}
	ticks -= fileTimeUnixDelta
	return time.Unix(ticks/1e7, (ticks%1e7)*100).UTC()
}

// GUID reads a 16 byte GUID. The first three groups (4, 2 and 2 bytes) are little endian,
// the last 8 bytes are an opaque sequence. The result is in RFC 4122 byte order.
func GUID(b []byte) uuid.UUID {
	_ = b[15]

	var u uuid.UUID
	u[0], u[1], u[2], u[3] = b[3], b[2], b[1], b[0]
	u[4], u[5] = b[5], b[4]
	u[6], u[7] = b[7], b[6]
	copy(u[8:], b[8:16])
	return u
}

// PutGUID is the inverse of GUID.
func PutGUID(b []byte, u uuid.UUID) {
	_ = b[15]

	b[0], b[1], b[2], b[3] = u[3], u[2], u[1], u[0]
	b[4], b[5] = u[5], u[4]
	b[6], b[7] = u[7], u[6]
	copy(b[8:16], u[8:])
}
