package exchange

import (
	"time"

	"github.com/rs/zerolog"

	"cryptotrade/internal/transport"
)

// Option configures an adapter at construction.
type Option func(*Options)

// Options holds the settings shared by every adapter.
type Options struct {
	// BaseURL replaces the exchange's production endpoint when non-empty.
	BaseURL  string
	Timeout  time.Duration
	Logger   zerolog.Logger
	Observer transport.Observer
	// Now is the clock used for timestamps and signatures.
	Now func() time.Time
	// Nonce generates per-request nonces for exchanges that need them.
	Nonce func() string
}

func WithBaseURL(url string) Option {
	return func(o *Options) {
		o.BaseURL = url
	}
}

func WithTimeout(timeout time.Duration) Option {
	return func(o *Options) {
		o.Timeout = timeout
	}
}

func WithLogger(logger zerolog.Logger) Option {
	return func(o *Options) {
		o.Logger = logger
	}
}

func WithObserver(observer transport.Observer) Option {
	return func(o *Options) {
		o.Observer = observer
	}
}

func WithClock(now func() time.Time) Option {
	return func(o *Options) {
		o.Now = now
	}
}

func WithNonce(nonce func() string) Option {
	return func(o *Options) {
		o.Nonce = nonce
	}
}

// ApplyOptions resolves opts over the defaults: no-op logger, wall clock,
// no timeout.
func ApplyOptions(opts ...Option) *Options {
	o := &Options{
		Logger: zerolog.Nop(),
		Now:    time.Now,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// BaseURLOr returns the configured base URL, or fallback when none is set.
func (o *Options) BaseURLOr(fallback string) string {
	if o.BaseURL != "" {
		return o.BaseURL
	}
	return fallback
}

// TransportOptions converts the shared settings into transport options.
func (o *Options) TransportOptions() []transport.Option {
	opts := []transport.Option{transport.WithLogger(o.Logger)}
	if o.Observer != nil {
		opts = append(opts, transport.WithObserver(o.Observer))
	}
	return opts
}
