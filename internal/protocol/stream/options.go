package stream

import (
	"github.com/rs/zerolog"

	"github.com/danmuck/ubxwire/internal/protocol/frame"
	"github.com/danmuck/ubxwire/internal/protocol/schema"
)

type config struct {
	registry *schema.Registry
	mode     schema.Mode
	strict   bool
	sinks    map[frame.Protocol]func([]byte)
	surface  map[frame.Protocol]bool
	observer Observer
	logger   zerolog.Logger
	limits   frame.Limits
	readSize int
}

func defaultConfig() config {
	return config{
		registry: schema.Catalogue(),
		mode:     schema.Get,
		sinks:    make(map[frame.Protocol]func([]byte)),
		surface:  make(map[frame.Protocol]bool),
		observer: NopObserver{},
		logger:   zerolog.Nop(),
		limits:   frame.DefaultLimits(),
		readSize: 4096,
	}
}

type Option func(*config)

func WithRegistry(r *schema.Registry) Option {
	return func(c *config) {
		if r != nil {
			c.registry = r
		}
	}
}

// WithMode selects which layout table frames resolve against. Streams from
// a receiver are Get; streams captured toward a receiver are Set or Poll.
func WithMode(m schema.Mode) Option {
	return func(c *config) { c.mode = m }
}

func WithStrict(strict bool) Option {
	return func(c *config) { c.strict = strict }
}

// WithSink hands every delimited chunk of protocol p to fn, whether or not
// p is surfaced as an event. fn must not retain the slice past the call.
func WithSink(p frame.Protocol, fn func([]byte)) Option {
	return func(c *config) {
		if fn != nil {
			c.sinks[p] = fn
		}
	}
}

// WithProtocols surfaces chunks of the given foreign protocols as Foreign
// events.
func WithProtocols(ps ...frame.Protocol) Option {
	return func(c *config) {
		for _, p := range ps {
			if p == frame.NMEA || p == frame.RTCM3 {
				c.surface[p] = true
			}
		}
	}
}

func WithObserver(o Observer) Option {
	return func(c *config) {
		if o != nil {
			c.observer = o
		}
	}
}

func WithLogger(l zerolog.Logger) Option {
	return func(c *config) { c.logger = l }
}

func WithLimits(l frame.Limits) Option {
	return func(c *config) { c.limits = l }
}

// WithReadSize sets how many bytes Reader asks its source for at a time.
func WithReadSize(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.readSize = n
		}
	}
}
