package tracefield

import (
	"log/slog"

	"go.opentelemetry.io/otel/metric"
)

// config holds the configuration of a Decoder.
type config struct {
	// log receives one record per skipped event.
	log *slog.Logger

	// meterProvider supplies the decode counters. If nil, context.Meter() is used.
	meterProvider metric.MeterProvider

	// pointerSize is the FTPointer width used when an Event does not carry one.
	pointerSize int

	// strict makes a payload that ends before the last field a fault instead of an
	// older emitter.
	strict bool
}

func defaultConfig() *config {
	return &config{
		log:         slog.Default(),
		pointerSize: 8,
	}
}

// Option configures a Decoder.
type Option func(*config)

// WithLogger sets the logger skipped events are reported to.
// If not set, slog.Default() is used.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.log = l
		}
	}
}

// WithMeterProvider sets the MeterProvider for the decode counters.
// If not set, the Meter attached to the context passed to New is used.
func WithMeterProvider(mp metric.MeterProvider) Option {
	return func(c *config) {
		c.meterProvider = mp
	}
}

// WithPointerSize sets the pointer width, 4 or 8, of the processes that emitted the events.
// Event.PointerSize overrides it per event. Default is 8.
func WithPointerSize(size int) Option {
	return func(c *config) {
		c.pointerSize = size
	}
}

// WithStrict makes Record treat a payload that stops before the schema's last field as
// truncated. By default the missing trailing fields are left out of the Record, which is how
// payloads from emitters older than the schema look.
func WithStrict(strict bool) Option {
	return func(c *config) {
		c.strict = strict
	}
}
