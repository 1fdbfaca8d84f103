// Package errors provides an errors package for this module. It includes all of the stdlib's
// functions and types, the fault taxonomy of payload decoding and FieldError, which
// describes a fault at a specific field of a payload.
package errors

import (
	"github.com/gostdlib/base/context"
	"github.com/gostdlib/base/errors"
)

// Category represents the category of the error.
type Category uint32

func (c Category) Category() string {
	return c.String()
}

// String implements fmt.Stringer.
func (c Category) String() string {
	switch c {
	case CatUser:
		return "User"
	case CatInternal:
		return "Internal"
	}
	return "Unknown"
}

const (
	// CatUnknown represents an unknown category. This should not be used.
	CatUnknown Category = Category(0) // Unknown
	// CatUser represents an error that is caused by bad input, such as a payload that
	// does not match its schema.
	CatUser Category = Category(1) // User
	// CatInternal represents an internal error.
	CatInternal Category = Category(2) // Internal
)

// Type represents the type of the error.
type Type uint16

func (t Type) Type() string {
	return t.String()
}

// String implements fmt.Stringer.
func (t Type) String() string {
	switch t {
	case TypeBug:
		return "Bug"
	case TypeParameter:
		return "Parameter"
	case TypeTruncatedPayload:
		return "TruncatedPayload"
	case TypeMalformedVariableField:
		return "MalformedVariableField"
	case TypeTypeMismatch:
		return "TypeMismatch"
	case TypeUnknownSchema:
		return "UnknownSchema"
	}
	return "Unknown"
}

const (
	// TypeUnknown represents an unknown type.
	TypeUnknown Type = Type(0) // Unknown
	// TypeBug represents a bug in the calling code. This is only bugs that are known bugs and
	// not because of bad input.
	TypeBug Type = Type(1) // Bug
	// TypeParameter represents an error with a parameter that didn't pass validation, such as
	// a field index outside of the schema.
	TypeParameter Type = Type(2) // Parameter

	// TypeTruncatedPayload indicates that resolving or reading a field would go past the end
	// of the payload. This almost always means the schema and the emitter disagree on the
	// event version.
	TypeTruncatedPayload Type = Type(100) // TruncatedPayload
	// TypeMalformedVariableField indicates that a variable length field has no terminator
	// before the end of the payload.
	TypeMalformedVariableField Type = Type(101) // MalformedVariableField
	// TypeTypeMismatch indicates a typed accessor was used on a field of another wire type.
	TypeTypeMismatch Type = Type(102) // TypeMismatch
	// TypeUnknownSchema indicates there is no schema registered for an event.
	TypeUnknownSchema Type = Type(103) // UnknownSchema
)

// LogAttrer is an interface that can be implemented by an error to return a list of attributes
// used in logging.
type LogAttrer = errors.LogAttrer

// Error is the error type returned across the decoder boundary. Error implements
// github.com/gostdlib/base/errors.E .
type Error = errors.Error

// EOption is an optional argument for E().
type EOption = errors.EOption

// WithCallNum is used if you need to set the runtime.CallNum() in order to get the correct filename and line.
// This defaults to 1 which sets to the frame of the caller of E().
func WithCallNum(i int) EOption {
	return errors.WithCallNum(i)
}

// WithSuppressTraceErr will prevent the trace as being recorded with an error status.
// A single bad event is skipped by callers, so decode faults usually use this.
func WithSuppressTraceErr() EOption {
	return errors.WithSuppressTraceErr()
}

// E creates a new Error with the given parameters.
func E(ctx context.Context, c errors.Category, t errors.Type, msg error, options ...errors.EOption) Error {
	// This makes sure we do the correct call number since we are a wrapper. Now, if they set the
	// call number, this will not override it.
	opts := make([]errors.EOption, 0, len(options)+1)
	opts = append(opts, WithCallNum(2))
	opts = append(opts, options...)

	return errors.E(ctx, c, t, msg, opts...)
}
