package errors

import (
	"fmt"
)

// Sentinels that FieldError matches with Is() based on its Kind.
var (
	ErrTruncatedPayload       = New("truncated payload")
	ErrMalformedVariableField = New("malformed variable length field")
	ErrTypeMismatch           = New("field type mismatch")
	ErrFieldIndex             = New("field index out of range")
)

// FieldError describes a fault at a single field of a single payload. It never outlives the
// decode of that payload and carries enough to log the event and skip it.
type FieldError struct {
	// Kind is one of TypeTruncatedPayload, TypeMalformedVariableField, TypeTypeMismatch or
	// TypeParameter.
	Kind Type
	// Schema is the name of the schema the payload was decoded with.
	Schema string
	// Field is the name of the field that could not be resolved or read.
	Field string
	// Index is the position of Field in the schema.
	Index int
	// Offset is where the field starts in the payload, -1 if it was never resolved.
	Offset int
	// Need is the number of bytes the field needed past Offset.
	Need int
	// Len is the length of the payload.
	Len int
	// Detail is optional extra text.
	Detail string
}

// Error implements error.
func (e *FieldError) Error() string {
	var s string
	switch e.Kind {
	case TypeTruncatedPayload:
		s = fmt.Sprintf("%s: field %d(%s) needs %d bytes at offset %d, payload is %d bytes", ErrTruncatedPayload, e.Index, e.Field, e.Need, e.Offset, e.Len)
	case TypeMalformedVariableField:
		s = fmt.Sprintf("%s: field %d(%s) at offset %d has no terminator before end of payload (%d bytes)", ErrMalformedVariableField, e.Index, e.Field, e.Offset, e.Len)
	case TypeParameter:
		s = fmt.Sprintf("%s: field %d", ErrFieldIndex, e.Index)
	default:
		s = fmt.Sprintf("%s: field %d(%s)", e.sentinel(), e.Index, e.Field)
	}
	if e.Schema != "" {
		s = e.Schema + ": " + s
	}
	if e.Detail != "" {
		s += ": " + e.Detail
	}
	return s
}

// Is allows errors.Is(err, ErrTruncatedPayload) and friends to match.
func (e *FieldError) Is(target error) bool {
	return target == e.sentinel()
}

// Category returns CatUser for payload faults and CatInternal for everything else.
func (e *FieldError) Category() Category {
	switch e.Kind {
	case TypeTruncatedPayload, TypeMalformedVariableField:
		return CatUser
	}
	return CatInternal
}

func (e *FieldError) sentinel() error {
	switch e.Kind {
	case TypeTruncatedPayload:
		return ErrTruncatedPayload
	case TypeMalformedVariableField:
		return ErrMalformedVariableField
	case TypeTypeMismatch:
		return ErrTypeMismatch
	case TypeParameter:
		return ErrFieldIndex
	}
	return nil
}

// IsFault reports if err is one of the two payload faults. A fault means the single event
// should be skipped, not that decoding of later events should stop.
func IsFault(err error) bool {
	return Is(err, ErrTruncatedPayload) || Is(err, ErrMalformedVariableField)
}
