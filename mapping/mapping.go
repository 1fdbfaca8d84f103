// Package mapping holds the static description of event payloads: which fields an event has,
// in what order and with what wire type. Descriptors are schema global and never mutated once
// a Schema is registered; the per payload state lives in package cursor.
package mapping

import (
	"fmt"

	"github.com/bearlytools/tracefield/field"
)

// FieldDescr describes a field.
type FieldDescr struct {
	// Name is the name of the field as the event manifest describes it.
	Name string
	// Type is the wire type of the field.
	Type field.Type
	// Index is the position of the field in the Schema.
	Index uint16
}

// Validate validates the FieldDescr in isolation.
func (f *FieldDescr) Validate() error {
	if f.Name == "" {
		return fmt.Errorf(".field[%d]: must have a Name", f.Index)
	}
	if !f.Type.Valid() {
		return fmt.Errorf(".%s: has invalid type %v", f.Name, f.Type)
	}
	return nil
}

// Key identifies an event independent of its version.
type Key struct {
	Provider string
	ID       uint16
}

// String implements fmt.Stringer.
func (k Key) String() string {
	return fmt.Sprintf("%s/%d", k.Provider, k.ID)
}

// Schema is the ordered list of fields for one version of one event.
type Schema struct {
	// Provider is the name of the provider that emits the event.
	Provider string
	// Name is the name of the event.
	Name string
	// ID is the event id within the provider.
	ID uint16
	// Version is the version of the event this field list describes. Newer versions of an
	// event only ever append fields.
	Version uint8
	// Fields are the field descriptions, in payload order.
	Fields []*FieldDescr
}

// New creates a Schema from the fields given, setting each field's Index to its position.
func New(provider, name string, id uint16, version uint8, fields ...FieldDescr) (*Schema, error) {
	s := &Schema{
		Provider: provider,
		Name:     name,
		ID:       id,
		Version:  version,
		Fields:   make([]*FieldDescr, 0, len(fields)),
	}
	for i, f := range fields {
		f.Index = uint16(i)
		s.Fields = append(s.Fields, &f)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// MustNew is New but panics on error. Use it for package level schema tables.
func MustNew(provider, name string, id uint16, version uint8, fields ...FieldDescr) *Schema {
	s, err := New(provider, name, id, version, fields...)
	if err != nil {
		panic(err)
	}
	return s
}

// Key returns the version independent key of the schema.
func (s *Schema) Key() Key {
	return Key{Provider: s.Provider, ID: s.ID}
}

// Len returns the number of fields.
func (s *Schema) Len() int {
	return len(s.Fields)
}

// String returns "provider/name@vN".
func (s *Schema) String() string {
	return fmt.Sprintf("%s/%s@v%d", s.Provider, s.Name, s.Version)
}

// ByName retrieves the FieldDescr by name.
func (s *Schema) ByName(name string) (*FieldDescr, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return nil, false
}

// Validate checks that the schema is usable by a cursor.
func (s *Schema) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("schema for %s must have a Name", s.Key())
	}
	if len(s.Fields) > 0xFFFF {
		return fmt.Errorf("%s: has %d fields, max is 65535", s, len(s.Fields))
	}
	seen := make(map[string]bool, len(s.Fields))
	for i, f := range s.Fields {
		if f == nil {
			return fmt.Errorf("%s: field %d is nil", s, i)
		}
		if int(f.Index) != i {
			return fmt.Errorf("%s.%s: has Index %d but is at position %d", s, f.Name, f.Index, i)
		}
		if err := f.Validate(); err != nil {
			return fmt.Errorf("%s%w", s, err)
		}
		if seen[f.Name] {
			return fmt.Errorf("%s.%s: duplicate field name", s, f.Name)
		}
		seen[f.Name] = true
	}
	return nil
}

// MustValidate calls Validate and panics on an error.
func (s *Schema) MustValidate() {
	if err := s.Validate(); err != nil {
		panic(err)
	}
}
