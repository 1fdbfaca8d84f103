// Package cursor locates fields inside one event payload.
//
// A Cursor pairs an immutable payload with a Schema and an offset cache holding one slot per
// field plus one for the end of the last field. Slot k holds the byte offset of field k once it
// has been resolved and -1 before that. Slot 0 is always 0. Resolving slot k adds the size of
// field k-1 to slot k-1, resolving earlier slots first if needed. Fixed width sizes come from
// the wire type, variable length sizes from scanning the payload, so only a forward walk from a
// resolved offset can find the next one. The walk is done once: a resolved slot is never
// recomputed and resolved slots always form a prefix of the cache.
//
// A Cursor is not safe for concurrent use. Any number of Cursors may read the same payload
// concurrently since the payload is never written.
package cursor

import (
	"fmt"

	"github.com/bearlytools/tracefield/errors"
	"github.com/bearlytools/tracefield/field"
	"github.com/bearlytools/tracefield/mapping"
	"github.com/bearlytools/tracefield/readers"
)

const unresolved = -1

// Option is an optional argument for New, Get and Bind.
type Option func(c *Cursor)

// WithPointerSize sets the width of FTPointer fields, which depends on the bitness of the
// process that emitted the event. Only 4 and 8 are valid; anything else is treated as 8.
func WithPointerSize(size int) Option {
	return func(c *Cursor) {
		if size == 4 {
			c.ptrSize = 4
			return
		}
		c.ptrSize = 8
	}
}

// Cursor maps field indexes of a Schema to offsets in a payload and reads the fields there.
type Cursor struct {
	schema *mapping.Schema
	buf    []byte
	// offsets has len(schema.Fields)+1 slots. The last slot is the end of the last field.
	offsets []int
	// hwm is the highest resolved slot.
	hwm     int
	ptrSize int
	scans   int
}

// New creates a Cursor for reading buf with schema s. buf is borrowed, not copied, and must
// not change while the Cursor is in use.
func New(s *mapping.Schema, buf []byte, options ...Option) *Cursor {
	c := &Cursor{}
	c.Bind(s, buf, options...)
	return c
}

// Bind points the Cursor at a new payload and schema, discarding every resolved offset. The
// cache storage is reused.
func (c *Cursor) Bind(s *mapping.Schema, buf []byte, options ...Option) {
	c.schema = s
	c.buf = buf
	c.ptrSize = 8
	c.scans = 0
	for _, o := range options {
		o(c)
	}

	n := len(s.Fields) + 1
	if cap(c.offsets) < n {
		c.offsets = make([]int, n)
	} else {
		c.offsets = c.offsets[:n]
	}
	for i := range c.offsets {
		c.offsets[i] = unresolved
	}
	c.offsets[0] = 0
	c.hwm = 0
}

// Reset drops the payload and schema. It implements the Resetter interface used by the pool.
func (c *Cursor) Reset() {
	c.schema = nil
	c.buf = nil
	c.offsets = c.offsets[:0]
	c.hwm = 0
	c.scans = 0
}

// Schema returns the schema the Cursor decodes with.
func (c *Cursor) Schema() *mapping.Schema {
	return c.schema
}

// Payload returns the payload the Cursor reads.
func (c *Cursor) Payload() []byte {
	return c.buf
}

// Len returns the number of fields in the schema.
func (c *Cursor) Len() int {
	return len(c.schema.Fields)
}

// Scans returns how many variable length fields have been scanned to find their size. Each
// field is scanned at most once per Bind.
func (c *Cursor) Scans() int {
	return c.scans
}

// Offset returns the byte offset of field k, resolving any unresolved predecessors first.
// Offset k may equal the payload length when the payload ends right after field k-1.
func (c *Cursor) Offset(k int) (int, error) {
	if k < 0 || k >= len(c.schema.Fields) {
		return unresolved, c.indexErr(k)
	}
	return c.resolve(k)
}

// End returns the offset just past the last field, which is the number of payload bytes the
// schema accounts for.
func (c *Cursor) End() (int, error) {
	return c.resolve(len(c.schema.Fields))
}

// Trailing returns the number of payload bytes after the last field. These are usually fields
// added by a newer version of the event than the schema describes.
func (c *Cursor) Trailing() (int, error) {
	end, err := c.End()
	if err != nil {
		return 0, err
	}
	return len(c.buf) - end, nil
}

// Field returns the bytes of field k, including any count prefix or terminator. The slice
// aliases the payload.
func (c *Cursor) Field(k int) ([]byte, error) {
	if k < 0 || k >= len(c.schema.Fields) {
		return nil, c.indexErr(k)
	}
	end, err := c.resolve(k + 1)
	if err != nil {
		return nil, err
	}
	return c.buf[c.offsets[k]:end], nil
}

// Present reports if field k is entirely inside the payload. Fields an older emitter did not
// write are not present.
func (c *Cursor) Present(k int) bool {
	_, err := c.Field(k)
	return err == nil
}

// resolve returns slot k of the cache, walking forward from the high water mark.
func (c *Cursor) resolve(k int) (int, error) {
	if k <= c.hwm {
		return c.offsets[k], nil
	}

	for i := c.hwm; i < k; i++ {
		size, err := c.size(i, c.offsets[i])
		if err != nil {
			return unresolved, err
		}
		c.offsets[i+1] = c.offsets[i] + size
		c.hwm = i + 1
	}
	return c.offsets[k], nil
}

// size returns the byte size of field i, which starts at off. off is never past the end
// of the payload.
func (c *Cursor) size(i, off int) (int, error) {
	f := c.schema.Fields[i]
	rest := c.buf[off:]

	if w, ok := field.Width(f.Type, c.ptrSize); ok {
		if w > len(rest) {
			return 0, c.fault(errors.TypeTruncatedPayload, i, off, w)
		}
		return w, nil
	}

	// A payload that ends where a variable field starts simply does not have the field.
	if len(rest) == 0 {
		return 0, c.fault(errors.TypeTruncatedPayload, i, off, minSize(f.Type))
	}

	c.scans++
	var (
		n  int
		ok bool
	)
	switch f.Type {
	case field.FTUnicodeString:
		if n, ok = readers.UnicodeStringLen(rest); !ok {
			return 0, c.fault(errors.TypeMalformedVariableField, i, off, 0)
		}
	case field.FTAnsiString:
		if n, ok = readers.AnsiStringLen(rest); !ok {
			return 0, c.fault(errors.TypeMalformedVariableField, i, off, 0)
		}
	case field.FTCountedUnicodeString:
		if n, ok = readers.CountedLen(rest, 2); !ok {
			return 0, c.fault(errors.TypeTruncatedPayload, i, off, n)
		}
	case field.FTCountedBinary:
		if n, ok = readers.CountedLen(rest, 1); !ok {
			return 0, c.fault(errors.TypeTruncatedPayload, i, off, n)
		}
	default:
		c.scans--
		return 0, &errors.FieldError{
			Kind:   errors.TypeBug,
			Schema: c.schema.String(),
			Field:  f.Name,
			Index:  i,
			Offset: off,
			Len:    len(c.buf),
			Detail: fmt.Sprintf("no size rule for type %v", f.Type),
		}
	}
	return n, nil
}

// minSize is the smallest encoding of a variable length type.
func minSize(t field.Type) int {
	switch t {
	case field.FTAnsiString:
		return 1
	}
	return 2
}

func (c *Cursor) fault(kind errors.Type, i, off, need int) error {
	return &errors.FieldError{
		Kind:   kind,
		Schema: c.schema.String(),
		Field:  c.schema.Fields[i].Name,
		Index:  i,
		Offset: off,
		Need:   need,
		Len:    len(c.buf),
	}
}

func (c *Cursor) indexErr(k int) error {
	return &errors.FieldError{
		Kind:   errors.TypeParameter,
		Schema: c.schema.String(),
		Index:  k,
		Offset: unresolved,
		Len:    len(c.buf),
		Detail: fmt.Sprintf("schema has %d fields", len(c.schema.Fields)),
	}
}
