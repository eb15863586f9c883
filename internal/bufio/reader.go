package bufio

import (
	"io"

	"github.com/moriyoshi/rill/types"
)

// Reader exposes an InStream through the io interfaces.
type Reader struct {
	s InStream
}

func NewReader(s InStream) *Reader {
	return &Reader{s: s}
}

func (r *Reader) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	n := r.s.SGetN(p)
	if n == 0 {
		return 0, io.EOF
	}
	return n, nil
}

func (r *Reader) ReadByte() (byte, error) {
	c := r.s.SBumpC()
	if c == types.EOF {
		return 0, io.EOF
	}
	return types.ToChar[byte](c), nil
}

func (r *Reader) UnreadByte() error {
	if r.s.SUngetC() == types.EOF {
		return ErrUnread
	}
	return nil
}

// WriteTo drains the stream into w.
func (r *Reader) WriteTo(w io.Writer) (int64, error) {
	var nn int64
	buf := make([]byte, 8192)
	for {
		n := r.s.SGetN(buf)
		if n == 0 {
			return nn, nil
		}
		m, err := w.Write(buf[:n])
		nn += int64(m)
		if err != nil {
			return nn, err
		}
	}
}

func (r *Reader) Buffered() int {
	return r.s.InAvail()
}

// Peek returns up to n characters without consuming them. Only what is
// already buffered can be returned; when that is less than n the result
// is short and comes with ErrBufferFull.
func (r *Reader) Peek(n int) ([]byte, error) {
	if n <= 0 {
		return nil, nil
	}
	if r.s.InAvail() == 0 && r.s.SGetC() == types.EOF {
		return nil, io.EOF
	}
	area, pos := r.s.GetArea()
	avail := area[pos:]
	if len(avail) < n {
		return avail, ErrBufferFull
	}
	return avail[:n], nil
}

func (r *Reader) Discard(n int) (int, error) {
	for i := 0; i < n; i++ {
		if r.s.SBumpC() == types.EOF {
			return i, io.EOF
		}
	}
	return n, nil
}

// ReadUpTo reads through the first occurrence of delim. The result is
// always a fresh slice.
func (r *Reader) ReadUpTo(delim byte) ([]byte, bool, error) {
	var b []byte
	for {
		c := r.s.SBumpC()
		if c == types.EOF {
			return b, true, io.EOF
		}
		b = append(b, types.ToChar[byte](c))
		if types.ToChar[byte](c) == delim {
			return b, true, nil
		}
	}
}

var _ BufferedReader = &Reader{}
