package cursor

import (
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"
	"golang.org/x/exp/constraints"

	"github.com/bearlytools/tracefield/errors"
	"github.com/bearlytools/tracefield/field"
	"github.com/bearlytools/tracefield/readers"
)

// This file holds the typed getters. Each checks the wire type in the schema, resolves the
// field and hands its bytes to the matching reader. Values are decoded on every call and
// nothing is cached except offsets.

// Index returns the index of the field called name.
func (c *Cursor) Index(name string) (int, bool) {
	f, ok := c.schema.ByName(name)
	if !ok {
		return 0, false
	}
	return int(f.Index), true
}

// typed returns the bytes of field k if its wire type is one of want.
func (c *Cursor) typed(k int, want ...field.Type) ([]byte, error) {
	if k < 0 || k >= len(c.schema.Fields) {
		return nil, c.indexErr(k)
	}
	f := c.schema.Fields[k]
	if !slices.Contains(want, f.Type) {
		return nil, &errors.FieldError{
			Kind:   errors.TypeTypeMismatch,
			Schema: c.schema.String(),
			Field:  f.Name,
			Index:  k,
			Offset: unresolved,
			Len:    len(c.buf),
			Detail: fmt.Sprintf("field is %v, want %v", f.Type, want),
		}
	}
	return c.Field(k)
}

// Bool reads an FTBool or FTBool32 field.
func (c *Cursor) Bool(k int) (bool, error) {
	b, err := c.typed(k, field.FTBool, field.FTBool32)
	if err != nil {
		return false, err
	}
	if len(b) == 4 {
		return readers.Bool32(b), nil
	}
	return readers.Bool(b), nil
}

func (c *Cursor) Int8(k int) (int8, error)     { return integer[int8](c, k, field.FTInt8) }
func (c *Cursor) Int16(k int) (int16, error)   { return integer[int16](c, k, field.FTInt16) }
func (c *Cursor) Int32(k int) (int32, error)   { return integer[int32](c, k, field.FTInt32) }
func (c *Cursor) Int64(k int) (int64, error)   { return integer[int64](c, k, field.FTInt64) }
func (c *Cursor) Uint8(k int) (uint8, error)   { return integer[uint8](c, k, field.FTUint8) }
func (c *Cursor) Uint16(k int) (uint16, error) { return integer[uint16](c, k, field.FTUint16) }
func (c *Cursor) Uint32(k int) (uint32, error) { return integer[uint32](c, k, field.FTUint32) }
func (c *Cursor) Uint64(k int) (uint64, error) { return integer[uint64](c, k, field.FTUint64) }

func integer[I constraints.Integer](c *Cursor, k int, t field.Type) (I, error) {
	b, err := c.typed(k, t)
	if err != nil {
		return 0, err
	}
	return readers.Int[I](b), nil
}

// Integer reads any integer or pointer field and converts it to I with a Go conversion, so a
// narrower I truncates. Use it when a field widened between versions of an event.
func Integer[I constraints.Integer](c *Cursor, k int) (I, error) {
	b, err := c.typed(k,
		field.FTInt8, field.FTInt16, field.FTInt32, field.FTInt64,
		field.FTUint8, field.FTUint16, field.FTUint32, field.FTUint64,
		field.FTPointer,
	)
	if err != nil {
		return 0, err
	}

	switch c.schema.Fields[k].Type {
	case field.FTInt8:
		return I(readers.Int[int8](b)), nil
	case field.FTInt16:
		return I(readers.Int[int16](b)), nil
	case field.FTInt32:
		return I(readers.Int[int32](b)), nil
	case field.FTInt64:
		return I(readers.Int[int64](b)), nil
	case field.FTUint8:
		return I(readers.Int[uint8](b)), nil
	case field.FTUint16:
		return I(readers.Int[uint16](b)), nil
	case field.FTUint32:
		return I(readers.Int[uint32](b)), nil
	}
	// FTUint64 and FTPointer.
	return I(readers.Pointer(b, len(b))), nil
}

// Float32 reads an FTFloat32 field.
func (c *Cursor) Float32(k int) (float32, error) {
	b, err := c.typed(k, field.FTFloat32)
	if err != nil {
		return 0, err
	}
	return readers.Float32(b), nil
}

// Float64 reads an FTFloat64 field.
func (c *Cursor) Float64(k int) (float64, error) {
	b, err := c.typed(k, field.FTFloat64)
	if err != nil {
		return 0, err
	}
	return readers.Float64(b), nil
}

// Pointer reads an FTPointer field, widened to 64 bits.
func (c *Cursor) Pointer(k int) (uint64, error) {
	b, err := c.typed(k, field.FTPointer)
	if err != nil {
		return 0, err
	}
	return readers.Pointer(b, c.ptrSize), nil
}

// FileTime reads an FTFileTime field.
func (c *Cursor) FileTime(k int) (time.Time, error) {
	b, err := c.typed(k, field.FTFileTime)
	if err != nil {
		return time.Time{}, err
	}
	return readers.FileTime(b), nil
}

// GUID reads an FTGUID field.
func (c *Cursor) GUID(k int) (uuid.UUID, error) {
	b, err := c.typed(k, field.FTGUID)
	if err != nil {
		return uuid.Nil, err
	}
	return readers.GUID(b), nil
}

// String reads an FTUnicodeString, FTAnsiString or FTCountedUnicodeString field.
func (c *Cursor) String(k int) (string, error) {
	b, err := c.typed(k, field.FTUnicodeString, field.FTAnsiString, field.FTCountedUnicodeString)
	if err != nil {
		return "", err
	}

	// b is exactly the field, as sized by the same probe the reader uses, so the readers
	// cannot fail here.
	var s string
	switch c.schema.Fields[k].Type {
	case field.FTUnicodeString:
		s, _ = readers.UnicodeString(b)
	case field.FTAnsiString:
		s, _ = readers.AnsiString(b)
	case field.FTCountedUnicodeString:
		s, _ = readers.CountedUnicodeString(b)
	}
	return s, nil
}

// Binary reads an FTCountedBinary field. The result is a copy.
func (c *Cursor) Binary(k int) ([]byte, error) {
	b, err := c.typed(k, field.FTCountedBinary)
	if err != nil {
		return nil, err
	}
	v, _ := readers.CountedBinary(b)
	return v, nil
}

// Value reads field k as whatever Go type its wire type decodes to: bool, the sized integer
// types, float32, float64, uint64 for pointers, time.Time, uuid.UUID, string or []byte.
func (c *Cursor) Value(k int) (any, error) {
	if k < 0 || k >= len(c.schema.Fields) {
		return nil, c.indexErr(k)
	}

	switch c.schema.Fields[k].Type {
	case field.FTBool, field.FTBool32:
		return c.Bool(k)
	case field.FTInt8:
		return c.Int8(k)
	case field.FTInt16:
		return c.Int16(k)
	case field.FTInt32:
		return c.Int32(k)
	case field.FTInt64:
		return c.Int64(k)
	case field.FTUint8:
		return c.Uint8(k)
	case field.FTUint16:
		return c.Uint16(k)
	case field.FTUint32:
		return c.Uint32(k)
	case field.FTUint64:
		return c.Uint64(k)
	case field.FTFloat32:
		return c.Float32(k)
	case field.FTFloat64:
		return c.Float64(k)
	case field.FTPointer:
		return c.Pointer(k)
	case field.FTFileTime:
		return c.FileTime(k)
	case field.FTGUID:
		return c.GUID(k)
	case field.FTUnicodeString, field.FTAnsiString, field.FTCountedUnicodeString:
		return c.String(k)
	case field.FTCountedBinary:
		return c.Binary(k)
	}
	return nil, &errors.FieldError{
		Kind:   errors.TypeBug,
		Schema: c.schema.String(),
		Field:  c.schema.Fields[k].Name,
		Index:  k,
		Offset: unresolved,
		Len:    len(c.buf),
		Detail: fmt.Sprintf("no reader for type %v", c.schema.Fields[k].Type),
	}
}
