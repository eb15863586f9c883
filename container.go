package rill

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/hashicorp/go-multierror"

	"github.com/moriyoshi/rill/internal/logging"
)

// Container exclusively owns at most one device.
//
// A device is destroyed by dropping it; if it implements io.Closer it is
// closed first. The zero Container is closed and ready to use. Containers
// must not be copied; use Move instead.
type Container[D any] struct {
	noCopy noCopy
	dev    *D
	logger *slog.Logger
}

// noCopy makes go vet's copylocks check report copies of the struct that
// holds it.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}

func NewContainer[D any](opts ...OptionFunc) (*Container[D], error) {
	o, err := applyOptions(opts)
	if err != nil {
		return nil, err
	}
	return &Container[D]{logger: o.logger}, nil
}

func (c *Container[D]) log() *slog.Logger {
	if c.logger == nil {
		return logging.Discard()
	}
	return c.logger
}

// Open destroys the current device, if any, and then binds the one built
// by ctor. The two are never alive at the same time. If ctor fails the
// container is left closed and the failure is returned; a failure to
// close the previous device is returned alongside.
func (c *Container[D]) Open(ctor func() (D, error)) error {
	var result *multierror.Error
	if err := c.Close(); err != nil {
		result = multierror.Append(result, err)
	}
	d, err := ctor()
	if err != nil {
		result = multierror.Append(result, fmt.Errorf("failed to construct device: %w", err))
		return result.ErrorOrNil()
	}
	c.dev = &d
	c.log().Debug("device bound", slog.String("device", fmt.Sprintf("%T", d)))
	return result.ErrorOrNil()
}

// OpenValue is Open for a device that is already built.
func (c *Container[D]) OpenValue(d D) error {
	return c.Open(func() (D, error) { return d, nil })
}

func (c *Container[D]) IsOpen() bool {
	return c.dev != nil
}

// Close destroys the bound device. Closing a closed container does
// nothing.
func (c *Container[D]) Close() error {
	dev := c.dev
	if dev == nil {
		return nil
	}
	c.dev = nil
	c.log().Debug("device released", slog.String("device", fmt.Sprintf("%T", *dev)))
	if closer, ok := any(dev).(io.Closer); ok {
		if err := closer.Close(); err != nil {
			return fmt.Errorf("failed to close device: %w", err)
		}
	}
	return nil
}

// Device returns the bound device. It panics with ErrClosed when the
// container is closed.
func (c *Container[D]) Device() *D {
	if c.dev == nil {
		panic(ErrClosed)
	}
	return c.dev
}

// Move hands the device over to a new container and leaves c closed.
func (c *Container[D]) Move() *Container[D] {
	dst := &Container[D]{}
	c.moveTo(dst)
	return dst
}

func (c *Container[D]) moveTo(dst *Container[D]) {
	dst.dev, dst.logger = c.dev, c.logger
	c.dev = nil
}
