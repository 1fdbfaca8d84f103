package tracefield

import (
	"fmt"
	"log/slog"

	"github.com/gostdlib/base/context"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/bearlytools/tracefield/cursor"
	"github.com/bearlytools/tracefield/errors"
	"github.com/bearlytools/tracefield/mapping"
)

// Decoder turns Events into Cursors and Records. It is safe for concurrent use.
type Decoder struct {
	reg *mapping.Registry
	cfg *config

	events metric.Int64Counter
	faults metric.Int64Counter
}

// New creates a Decoder that finds schemas in reg.
func New(ctx context.Context, reg *mapping.Registry, options ...Option) (*Decoder, error) {
	if reg == nil {
		return nil, errors.E(ctx, errors.CatUser, errors.TypeParameter, errors.New("tracefield.New: Registry cannot be nil"))
	}

	cfg := defaultConfig()
	for _, o := range options {
		o(cfg)
	}
	if cfg.pointerSize != 4 && cfg.pointerSize != 8 {
		return nil, errors.E(ctx, errors.CatUser, errors.TypeParameter, fmt.Errorf("tracefield.New: pointer size must be 4 or 8, was %d", cfg.pointerSize))
	}

	d := &Decoder{reg: reg, cfg: cfg}
	if err := d.initMetrics(ctx); err != nil {
		return nil, err
	}
	return d, nil
}

// initMetrics initializes the OTEL metric instruments.
func (d *Decoder) initMetrics(ctx context.Context) error {
	var meter metric.Meter
	if d.cfg.meterProvider != nil {
		meter = d.cfg.meterProvider.Meter("tracefield")
	} else {
		meter = context.Meter(ctx)
	}

	var err error
	d.events, err = meter.Int64Counter(
		"tracefield.decode.events",
		metric.WithDescription("Number of events opened or decoded"),
	)
	if err != nil {
		return err
	}

	d.faults, err = meter.Int64Counter(
		"tracefield.decode.faults",
		metric.WithDescription("Number of events skipped because they could not be decoded"),
	)
	if err != nil {
		return err
	}
	return nil
}

// Schema returns the schema that decodes ev.
func (d *Decoder) Schema(ctx context.Context, ev Event) (*mapping.Schema, error) {
	s, err := d.reg.Lookup(ev.Provider, ev.ID, ev.Version)
	if err != nil {
		d.fault(ctx, ev, "", errors.TypeUnknownSchema, err)
		return nil, errors.E(ctx, errors.CatUser, errors.TypeUnknownSchema, err, errors.WithSuppressTraceErr())
	}
	return s, nil
}

// Open returns a pooled Cursor over ev's payload. The caller must call Release on it.
func (d *Decoder) Open(ctx context.Context, ev Event) (*cursor.Cursor, error) {
	s, err := d.Schema(ctx, ev)
	if err != nil {
		return nil, err
	}
	d.events.Add(ctx, 1, metric.WithAttributes(attribute.String("schema", s.String())))
	return cursor.Get(ctx, s, ev.Payload, cursor.WithPointerSize(d.pointerSize(ev))), nil
}

// Record decodes every field of ev. If the payload ends exactly where a field would start,
// that field and the ones after it are left out unless WithStrict(true) was passed.
func (d *Decoder) Record(ctx context.Context, ev Event) (Record, error) {
	c, err := d.Open(ctx, ev)
	if err != nil {
		return Record{}, err
	}
	defer c.Release(ctx)

	s := c.Schema()
	rec := Record{Schema: s.String(), Version: s.Version, Fields: make([]Value, 0, s.Len())}
	for k, f := range s.Fields {
		if !d.cfg.strict {
			if off, err := c.Offset(k); err == nil && off == len(ev.Payload) {
				break
			}
		}

		v, err := c.Value(k)
		if err != nil {
			return Record{}, d.decodeErr(ctx, ev, err)
		}
		rec.Fields = append(rec.Fields, Value{Name: f.Name, Type: f.Type, Value: v})
	}
	return rec, nil
}

// decodeErr reports a fault from the cursor and wraps it for the caller.
func (d *Decoder) decodeErr(ctx context.Context, ev Event, err error) error {
	var fe *errors.FieldError
	if !errors.As(err, &fe) {
		return errors.E(ctx, errors.CatInternal, errors.TypeBug, err)
	}

	d.fault(ctx, ev, fe.Field, fe.Kind, err)
	if errors.IsFault(err) {
		return errors.E(ctx, fe.Category(), fe.Kind, err, errors.WithSuppressTraceErr())
	}
	return errors.E(ctx, fe.Category(), fe.Kind, err)
}

// fault logs and counts an event that will be skipped.
func (d *Decoder) fault(ctx context.Context, ev Event, fieldName string, kind errors.Type, err error) {
	d.faults.Add(ctx, 1, metric.WithAttributes(attribute.String("fault", kind.String())))
	d.cfg.log.LogAttrs(
		ctx,
		slog.LevelWarn,
		"tracefield: skipping event",
		slog.String("provider", ev.Provider),
		slog.Int("id", int(ev.ID)),
		slog.Int("version", int(ev.Version)),
		slog.String("field", fieldName),
		slog.String("fault", kind.String()),
		slog.Int("payload_len", len(ev.Payload)),
		slog.String("error", err.Error()),
	)
}

func (d *Decoder) pointerSize(ev Event) int {
	if ev.PointerSize == 4 || ev.PointerSize == 8 {
		return ev.PointerSize
	}
	return d.cfg.pointerSize
}
