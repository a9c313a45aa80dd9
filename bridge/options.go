package bridge

import (
	"time"

	"github.com/jrsteele09/go-kin-bridge/events"
	"github.com/jrsteele09/go-kin-bridge/token"
	"github.com/rs/zerolog"
)

// Option configures a Module.
type Option func(*Module)

// WithLogger replaces the global zerolog logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(m *Module) {
		m.logger = logger
	}
}

// WithEmitter sets where native observer events are forwarded. Without one events are dropped.
func WithEmitter(emitter events.Emitter) Option {
	return func(m *Module) {
		m.emitter = emitter
	}
}

// WithSignerOptions are applied to every signer built from credentials.
func WithSignerOptions(options ...token.Option) Option {
	return func(m *Module) {
		m.signerOptions = append(m.signerOptions, options...)
	}
}

// WithNowFunc sets the clock used for locally signed tokens.
func WithNowFunc(now func() time.Time) Option {
	return func(m *Module) {
		m.signerOptions = append(m.signerOptions, token.WithNowFunc(now))
	}
}

type dropEmitter struct{}

func (dropEmitter) Emit(string, any) {}
