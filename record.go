package tracefield

import (
	"bytes"
	"math"
	"strconv"

	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"

	"github.com/bearlytools/tracefield/field"
)

// Value is one decoded field of a Record.
type Value struct {
	// Name is the field's name in the schema.
	Name string
	// Type is the wire type the value was decoded from.
	Type field.Type
	// Value holds bool, a sized integer type, float32, float64, uint64 for pointers,
	// time.Time, uuid.UUID, string or []byte.
	Value any
}

// Record is every field of one event in schema order.
type Record struct {
	// Schema names the schema the event was decoded with, as provider/name@vN.
	Schema string
	// Version is the version of that schema, which is lower than the event's version when
	// the registry had no exact match.
	Version uint8
	// Fields are the decoded fields. Trailing fields the payload did not carry are absent.
	Fields []Value
}

// Get returns the field called name.
func (r Record) Get(name string) (Value, bool) {
	for _, v := range r.Fields {
		if v.Name == name {
			return v, true
		}
	}
	return Value{}, false
}

// MarshalJSONTo writes the Record as a JSON object whose "fields" member keeps schema order:
//
//	{"schema":"P/Request@v1","version":1,"fields":{"Id":42,"Uri":"http://x"}}
func (r Record) MarshalJSONTo(enc *jsontext.Encoder) error {
	if err := enc.WriteToken(jsontext.BeginObject); err != nil {
		return err
	}
	if err := enc.WriteToken(jsontext.String("schema")); err != nil {
		return err
	}
	if err := enc.WriteToken(jsontext.String(r.Schema)); err != nil {
		return err
	}
	if err := enc.WriteToken(jsontext.String("version")); err != nil {
		return err
	}
	if err := enc.WriteToken(jsontext.Uint(uint64(r.Version))); err != nil {
		return err
	}
	if err := enc.WriteToken(jsontext.String("fields")); err != nil {
		return err
	}
	if err := enc.WriteToken(jsontext.BeginObject); err != nil {
		return err
	}
	for _, v := range r.Fields {
		if err := enc.WriteToken(jsontext.String(v.Name)); err != nil {
			return err
		}
		if err := json.MarshalEncode(enc, jsonValue(v.Value)); err != nil {
			return err
		}
	}
	if err := enc.WriteToken(jsontext.EndObject); err != nil {
		return err
	}
	return enc.WriteToken(jsontext.EndObject)
}

// MarshalJSON implements json.Marshaler.
func (r Record) MarshalJSON() ([]byte, error) {
	buf := bytes.Buffer{}
	if err := r.MarshalJSONTo(jsontext.NewEncoder(&buf)); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// jsonValue converts values JSON has no number for into strings.
func jsonValue(v any) any {
	switch x := v.(type) {
	case float32:
		if f := float64(x); math.IsNaN(f) || math.IsInf(f, 0) {
			return strconv.FormatFloat(f, 'g', -1, 32)
		}
	case float64:
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return strconv.FormatFloat(x, 'g', -1, 64)
		}
	}
	return v
}
