package rill

import (
	"log/slog"

	"github.com/moriyoshi/rill/internal/logging"
)

type options struct {
	logger *slog.Logger
}

type OptionFunc func(*options) error

// WithLogger sets the logger device lifecycle events are reported to. A
// nil logger discards them.
func WithLogger(logger *slog.Logger) OptionFunc {
	return func(o *options) error {
		if logger == nil {
			logger = slog.New(logging.DiscardHandler{})
		}
		o.logger = logger
		return nil
	}
}

func applyOptions(opts []OptionFunc) (*options, error) {
	o := &options{
		logger: slog.New(logging.DiscardHandler{}),
	}
	for _, opt := range opts {
		err := opt(o)
		if err != nil {
			return nil, err
		}
	}
	return o, nil
}
