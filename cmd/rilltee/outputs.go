package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/hashicorp/go-multierror"

	"github.com/moriyoshi/rill"
	"github.com/moriyoshi/rill/iodev"
	"github.com/moriyoshi/rill/tee"
)

type output struct {
	name string
	buf  *rill.Direct[byte, iodev.Writer]
}

// outputSet owns every output buffer the tee writes to.
type outputSet struct {
	outputs []output
	logger  *slog.Logger
}

// noClose keeps a borrowed stream such as stdout from being closed along
// with its device.
type noClose struct {
	io.Writer
}

func (s *outputSet) add(name string, w io.Writer) error {
	buf, err := rill.NewSink[byte, iodev.Writer](rill.WithLogger(s.logger.With(slog.String("output", name))))
	if err != nil {
		return err
	}
	if err := buf.OpenValue(iodev.NewWriter(w)); err != nil {
		return err
	}
	s.outputs = append(s.outputs, output{name: name, buf: buf})
	return nil
}

func (s *outputSet) addStdout() error {
	return s.add("-", noClose{os.Stdout})
}

func (s *outputSet) addFile(o Output) error {
	flags := os.O_WRONLY | os.O_CREATE
	if o.Append {
		flags |= os.O_APPEND
	} else {
		flags |= os.O_TRUNC
	}
	f, err := os.OpenFile(o.Path, flags, 0o666)
	if err != nil {
		return fmt.Errorf("failed to open output: %w", err)
	}
	return s.add(o.Path, f)
}

func (s *outputSet) tee(policy tee.Policy) *tee.Tee[byte] {
	targets := make([]tee.Target[byte], len(s.outputs))
	for i, o := range s.outputs {
		targets[i] = o.buf
	}
	return tee.New(policy, targets...)
}

// reportErrors logs every output whose device failed.
func (s *outputSet) reportErrors() {
	for _, o := range s.outputs {
		if err := o.buf.Device().Err(); err != nil {
			s.logger.Warn("output failed", slog.String("output", o.name), slog.Any("error", err))
		}
	}
}

// close releases every output and returns all failures together.
func (s *outputSet) close() error {
	var result *multierror.Error
	for _, o := range s.outputs {
		if err := o.buf.Close(); err != nil {
			result = multierror.Append(result, fmt.Errorf("%s: %w", o.name, err))
		}
	}
	s.outputs = nil
	return result.ErrorOrNil()
}
