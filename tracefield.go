// Package tracefield decodes the payloads of binary trace events.
//
// A payload is a flat byte buffer whose layout is fixed by the schema of the event that
// produced it. The schema is an ordered list of typed fields (see package mapping). Fixed width
// fields have a size known from their type, variable length fields (strings, counted blobs)
// have to be scanned, so the offset of a field is only known after every field before it has
// been sized. Package cursor does that work lazily and remembers every offset it finds.
//
// The Decoder in this package ties a schema Registry to the cursor:
//
//	reg := mapping.NewRegistry()
//	if err := reg.LoadYAML(f); err != nil {
//		// Do something
//	}
//	dec, err := tracefield.New(ctx, reg)
//	if err != nil {
//		// Do something
//	}
//
//	// Inside the event callback.
//	c, err := dec.Open(ctx, tracefield.Event{Provider: p, ID: id, Version: v, Payload: b})
//	if err != nil {
//		// Skip the event.
//	}
//	defer c.Release(ctx)
//	uri, err := c.String(1)
//
// Record decodes every field at once for consumers that don't know the schema ahead of time.
//
// A truncated or malformed payload only fails the event it belongs to. Decoder logs it,
// counts it and returns an error that matches errors.ErrTruncatedPayload or
// errors.ErrMalformedVariableField.
package tracefield

// Event is one raw event as delivered by the tracing subsystem.
type Event struct {
	// Provider is the name of the provider that emitted the event.
	Provider string
	// ID is the event id within the provider.
	ID uint16
	// Version is the version of the event's schema the emitter used.
	Version uint8
	// PointerSize is the pointer width of the emitting process, 4 or 8. Zero uses the
	// Decoder's default.
	PointerSize int
	// Payload is the event's user data. It is borrowed by the Decoder and any Cursor or
	// Record made from it; it must not change until they are done with it.
	Payload []byte
}
