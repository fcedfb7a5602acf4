package internal

import "github.com/starford/raido/internal/xcallback"

// Option is a functional option for configuring the application.
type Option func(*application)

type application struct {
	config     *Config
	dispatcher xcallback.Dispatcher
}

// WithConfig sets the application configuration.
func WithConfig(cfg *Config) Option {
	return func(a *application) {
		a.config = cfg
	}
}

// WithDispatcher overrides the x-callback dispatcher. Used in tests and on
// platforms without a URL-open facility.
func WithDispatcher(d xcallback.Dispatcher) Option {
	return func(a *application) {
		a.dispatcher = d
	}
}
