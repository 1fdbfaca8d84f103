// Package binary replaces the encoding/binary package in the standard library for little endian
// decoding of event payload integers using generics.
package binary

import (
	"encoding/binary"
	"fmt"
	"math"

	"golang.org/x/exp/constraints"
)

// Enc is the byte order every payload is emitted in.
var Enc = binary.LittleEndian

// Size returns the number of bytes an integer of type T occupies on the wire.
func Size[T constraints.Integer]() int {
	var r T
	switch any(r).(type) {
	case int8, uint8:
		return 1
	case int16, uint16:
		return 2
	case int32, uint32:
		return 4
	case int64, uint64:
		return 8
	}
	panic(fmt.Sprintf("unsupported type that passed the type constraint %T", r))
}

// Get gets any integer size from a []byte slice. b must hold at least Size[T]() bytes.
func Get[T constraints.Integer](b []byte) T {
	_ = b[len(b)-1] // bounds check hint to compiler; see golang.org/issue/14808

	var r T // This is only used for type detction.
	switch any(r).(type) {
	case int8:
		return T(int8(b[0]))
	case int16:
		return T(int16(uint16(b[0]) | uint16(b[1])<<8))
	case int32:
		return T(int32(Enc.Uint32(b)))
	case int64:
		return T(int64(Enc.Uint64(b)))
	case uint8:
		return T(b[0])
	case uint16:
		return T(uint16(b[0]) | uint16(b[1])<<8)
	case uint32:
		return T(Enc.Uint32(b))
	case uint64:
		return T(Enc.Uint64(b))
	}
	panic(fmt.Sprintf("unsupported type that passed the type constraint %T", r))
}

// Put puts any integer size into a []byte slice.
func Put[T constraints.Integer](b []byte, v T) {
	switch any(v).(type) {
	case int8, uint8:
		b[0] = byte(v)
	case int16, uint16:
		Enc.PutUint16(b, uint16(v))
	case int32, uint32:
		Enc.PutUint32(b, uint32(v))
	default:
		Enc.PutUint64(b, uint64(v))
	}
}

// Append appends the little endian encoding of v to b.
func Append[T constraints.Integer](b []byte, v T) []byte {
	n := Size[T]()
	l := len(b)
	b = append(b, make([]byte, n)...)
	Put(b[l:l+n], v)
	return b
}

// GetFloat32 reads an IEEE 754 float32 from b.
func GetFloat32(b []byte) float32 {
	return math.Float32frombits(Get[uint32](b[:4]))
}

// GetFloat64 reads an IEEE 754 float64 from b.
func GetFloat64(b []byte) float64 {
	return math.Float64frombits(Get[uint64](b[:8]))
}
