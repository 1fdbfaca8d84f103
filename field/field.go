// Package field details the wire types a payload field can be encoded as.
package field

import (
	"strconv"
	"strings"
)

// Type represents the wire type of a field within an event payload.
type Type uint8

const (
	FTUnknown Type = 0  // Unknown
	FTBool    Type = 1  // bool
	FTBool32  Type = 2  // bool32
	FTInt8    Type = 3  // int8
	FTInt16   Type = 4  // int16
	FTInt32   Type = 5  // int32
	FTInt64   Type = 6  // int64
	FTUint8   Type = 7  // uint8
	FTUint16  Type = 8  // uint16
	FTUint32  Type = 9  // uint32
	FTUint64  Type = 10 // uint64
	FTFloat32 Type = 11 // float32
	FTFloat64 Type = 12 // float64
	// FTPointer is 4 or 8 bytes depending on the process that emitted the event.
	FTPointer Type = 13 // pointer
	// FTFileTime counts 100ns intervals since 1601-01-01 UTC.
	FTFileTime Type = 14 // filetime
	FTGUID     Type = 15 // guid
	// Reserve 16 to 39
	FTUnicodeString        Type = 40 // unicodestring
	FTAnsiString           Type = 41 // ansistring
	FTCountedUnicodeString Type = 42 // countedunicodestring
	FTCountedBinary        Type = 43 // countedbinary
)

var names = map[Type]string{
	FTUnknown:              "unknown",
	FTBool:                 "bool",
	FTBool32:               "bool32",
	FTInt8:                 "int8",
	FTInt16:                "int16",
	FTInt32:                "int32",
	FTInt64:                "int64",
	FTUint8:                "uint8",
	FTUint16:               "uint16",
	FTUint32:               "uint32",
	FTUint64:               "uint64",
	FTFloat32:              "float32",
	FTFloat64:              "float64",
	FTPointer:              "pointer",
	FTFileTime:             "filetime",
	FTGUID:                 "guid",
	FTUnicodeString:        "unicodestring",
	FTAnsiString:           "ansistring",
	FTCountedUnicodeString: "countedunicodestring",
	FTCountedBinary:        "countedbinary",
}

var byName = func() map[string]Type {
	m := make(map[string]Type, len(names))
	for t, n := range names {
		m[n] = t
	}
	return m
}()

// String implements fmt.Stringer.
func (t Type) String() string {
	if n, ok := names[t]; ok {
		return n
	}
	return "Type(" + strconv.Itoa(int(t)) + ")"
}

// Valid reports if t is a known wire type other than FTUnknown.
func (t Type) Valid() bool {
	_, ok := names[t]
	return ok && t != FTUnknown
}

// Parse returns the Type with the name s. Matching is case insensitive. FTUnknown and
// false are returned if there is no such type.
func Parse(s string) (Type, bool) {
	t, ok := byName[strings.ToLower(strings.TrimSpace(s))]
	if !ok || t == FTUnknown {
		return FTUnknown, false
	}
	return t, true
}

// Width returns the static byte width of fixed width types. pointerSize is the size of
// FTPointer for the emitting process and must be 4 or 8. ok is false for variable length
// types, whose size can only be found by scanning the payload.
func Width(t Type, pointerSize int) (width int, ok bool) {
	switch t {
	case FTBool, FTInt8, FTUint8:
		return 1, true
	case FTInt16, FTUint16:
		return 2, true
	case FTBool32, FTInt32, FTUint32, FTFloat32:
		return 4, true
	case FTInt64, FTUint64, FTFloat64, FTFileTime:
		return 8, true
	case FTGUID:
		return 16, true
	case FTPointer:
		return pointerSize, true
	}
	return 0, false
}

// IsVariable determines if a Type has a size that must be discovered from the payload.
func IsVariable(t Type) bool {
	return t >= FTUnicodeString && t <= FTCountedBinary
}

// IsString determines if a Type holds text.
func IsString(t Type) bool {
	switch t {
	case FTUnicodeString, FTAnsiString, FTCountedUnicodeString:
		return true
	}
	return false
}

// IsInteger determines if a Type is read as an integer.
func IsInteger(t Type) bool {
	return t >= FTInt8 && t <= FTUint64
}
