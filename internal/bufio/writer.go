package bufio

import (
	"io"

	"github.com/moriyoshi/rill/types"
)

// Writer exposes an OutStream through the io interfaces. A short write
// from the stream becomes io.ErrShortWrite.
type Writer struct {
	s OutStream
}

func NewWriter(s OutStream) *Writer {
	return &Writer{s: s}
}

func (w *Writer) Write(p []byte) (int, error) {
	n := w.s.SPutN(p)
	if n < len(p) {
		return n, io.ErrShortWrite
	}
	return n, nil
}

func (w *Writer) WriteByte(c byte) error {
	if w.s.SPutC(c) == types.EOF {
		return io.ErrShortWrite
	}
	return nil
}

func (w *Writer) WriteString(s string) (int, error) {
	return w.Write([]byte(s))
}

func (w *Writer) Flush() error {
	if !w.s.Flush() {
		return io.ErrShortWrite
	}
	return nil
}

var _ BufferedWriter = &Writer{}
