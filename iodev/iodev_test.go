package iodev

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"

	"github.com/moriyoshi/rill"
	"github.com/moriyoshi/rill/types"
)

type closeRecorder struct {
	io.Reader
	closed int
}

func (c *closeRecorder) Close() error {
	c.closed++
	return nil
}

type stallingReader struct {
	stalls int
	data   string
}

func (r *stallingReader) Read(p []byte) (int, error) {
	if r.stalls > 0 {
		r.stalls--
		return 0, nil
	}
	if r.data == "" {
		return 0, io.EOF
	}
	n := copy(p, r.data)
	r.data = r.data[n:]
	return n, nil
}

func TestReader(t *testing.T) {
	t.Parallel()

	d := NewReader(iotest.OneByteReader(strings.NewReader("ab")))
	p := make([]byte, 4)
	assert.Equal(t, 1, d.Read(p))
	assert.Equal(t, 1, d.Read(p))
	assert.Equal(t, 0, d.Read(p))
	assert.Equal(t, 0, d.Read(p))
	assert.NoError(t, d.Err())
	assert.Equal(t, 0, d.Read(nil))
}

func TestReaderRetriesEmptyReads(t *testing.T) {
	t.Parallel()

	d := NewReader(&stallingReader{stalls: 3, data: "x"})
	p := make([]byte, 4)
	assert.Equal(t, 1, d.Read(p))
	assert.Equal(t, byte('x'), p[0])
	assert.Equal(t, 0, d.Read(p))
}

func TestReaderError(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	d := NewReader(iotest.ErrReader(boom))
	assert.Equal(t, 0, d.Read(make([]byte, 1)))
	assert.ErrorIs(t, d.Err(), boom)
}

func TestReaderClose(t *testing.T) {
	t.Parallel()

	rc := &closeRecorder{Reader: strings.NewReader("")}
	b, err := rill.NewSource[byte, Reader]()
	if !assert.NoError(t, err) {
		t.FailNow()
	}
	assert.NoError(t, b.OpenValue(NewReader(rc)))
	assert.NoError(t, b.Close())
	assert.Equal(t, 1, rc.closed)

	d := NewReader(strings.NewReader(""))
	assert.NoError(t, d.Close())
}

func TestWriter(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	b, err := rill.NewSink[byte, Writer]()
	if !assert.NoError(t, err) {
		t.FailNow()
	}
	assert.NoError(t, b.OpenValue(NewWriter(&out)))
	assert.Equal(t, 5, b.SPutN([]byte("hello")))
	assert.Equal(t, types.Int('!'), b.SPutC('!'))
	assert.Equal(t, "hello!", out.String())
	assert.NoError(t, b.Device().Err())
}

type failingWriter struct {
	limit int
}

func (w *failingWriter) Write(p []byte) (int, error) {
	if len(p) > w.limit {
		n := w.limit
		w.limit = 0
		return n, io.ErrShortWrite
	}
	w.limit -= len(p)
	return len(p), nil
}

func TestWriterError(t *testing.T) {
	t.Parallel()

	d := NewWriter(&failingWriter{limit: 3})
	assert.Equal(t, 3, d.Write([]byte("abcdef")))
	assert.ErrorIs(t, d.Err(), io.ErrShortWrite)
	assert.Equal(t, 0, d.Write([]byte("g")))
}

func TestReadWriter(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	b, err := rill.NewDuplex[byte, ReadWriter]()
	if !assert.NoError(t, err) {
		t.FailNow()
	}
	assert.NoError(t, b.OpenValue(NewReadWriter(&buf)))
	assert.Equal(t, 3, b.SPutN([]byte("abc")))
	assert.Equal(t, types.Int('a'), b.SBumpC())
	p := make([]byte, 4)
	n := b.SGetN(p)
	assert.Equal(t, "bc", string(p[:n]))
	assert.NoError(t, b.Device().Err())
	assert.NoError(t, b.Close())
}
