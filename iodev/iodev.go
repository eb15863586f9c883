// Package iodev provides devices that forward to an io.Reader or io.Writer.
//
// The device contract has no room for errors: a device either moves
// characters or reports zero. The devices here therefore stop at the
// first error, report zero from then on, and keep the error for Err.
// io.EOF is not kept.
package iodev

import (
	"errors"
	"io"
)

// Reader is a byte source backed by an io.Reader.
type Reader struct {
	r    io.Reader
	err  error
	done bool
}

func NewReader(r io.Reader) Reader {
	return Reader{r: r}
}

// Read performs a single Read on the underlying reader, retrying only
// while it reports neither data nor an error.
func (d *Reader) Read(p []byte) int {
	if d.done || len(p) == 0 {
		return 0
	}
	for {
		n, err := d.r.Read(p)
		if err != nil {
			d.done = true
			if !errors.Is(err, io.EOF) {
				d.err = err
			}
			return n
		}
		if n > 0 {
			return n
		}
	}
}

func (d *Reader) Err() error {
	return d.err
}

// Close closes the underlying reader if it is an io.Closer.
func (d *Reader) Close() error {
	return closeIfCloser(d.r)
}

// Writer is a byte sink backed by an io.Writer.
type Writer struct {
	w    io.Writer
	err  error
	done bool
}

func NewWriter(w io.Writer) Writer {
	return Writer{w: w}
}

func (d *Writer) Write(p []byte) int {
	if d.done {
		return 0
	}
	n, err := d.w.Write(p)
	if err != nil {
		d.done = true
		d.err = err
	}
	return n
}

func (d *Writer) Err() error {
	return d.err
}

// Close closes the underlying writer if it is an io.Closer.
func (d *Writer) Close() error {
	return closeIfCloser(d.w)
}

// ReadWriter is both a Reader and a Writer. The two directions fail
// independently.
type ReadWriter struct {
	Reader
	Writer
}

func NewReadWriter(rw io.ReadWriter) ReadWriter {
	return ReadWriter{Reader: NewReader(rw), Writer: NewWriter(rw)}
}

// Err returns the read error if there is one, otherwise the write error.
func (d *ReadWriter) Err() error {
	if d.Reader.err != nil {
		return d.Reader.err
	}
	return d.Writer.err
}

// Close closes the underlying stream once.
func (d *ReadWriter) Close() error {
	return d.Reader.Close()
}

func closeIfCloser(v any) error {
	if c, ok := v.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
