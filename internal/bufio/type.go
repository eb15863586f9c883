package bufio

import (
	_bufio "bufio"
	"errors"
	"io"

	"github.com/moriyoshi/rill/types"
)

var (
	ErrBufferFull = _bufio.ErrBufferFull
	ErrUnread     = errors.New("bufio: cannot unread byte")
)

type Peeker interface {
	Buffered() int
	Peek(n int) ([]byte, error)
	Discard(n int) (int, error)
}

type Scanner interface {
	ReadUpTo(delim byte) ([]byte, bool, error)
}

type BufferedReader interface {
	io.Reader
	io.ByteScanner
	io.WriterTo
	Peeker
	Scanner
}

type BufferedWriter interface {
	io.Writer
	io.ByteWriter
	io.StringWriter
	Flush() error
}

// InStream is the reading half of a byte streambuf.Buffer.
type InStream interface {
	InAvail() int
	GetArea() ([]byte, int)
	SGetC() types.Int
	SBumpC() types.Int
	SUngetC() types.Int
	SGetN(p []byte) int
}

// OutStream is the writing half of a byte streambuf.Buffer.
type OutStream interface {
	SPutC(c byte) types.Int
	SPutN(p []byte) int
	Flush() bool
}
