package rill

import (
	"log/slog"

	"github.com/moriyoshi/rill/internal/capability"
	"github.com/moriyoshi/rill/streambuf"
	"github.com/moriyoshi/rill/types"
)

// Direct adapts a device to the streambuf protocol with as little
// buffering as possible.
//
// A readable device gets a one-character holding cell so the next
// character can be looked at before it is consumed; bulk reads go straight
// into the caller's slice. A writable device gets no put area at all and
// every write reaches the device immediately.
//
// Which of these applies is settled once, when the Direct is built, from
// the methods D has. Operations the device cannot perform keep the
// streambuf defaults: reads see an empty sequence and writes are refused.
//
// A Direct must not be copied; use Move instead.
type Direct[C types.Char, D any] struct {
	streambuf.Buffer[C]
	container Container[D]
	caps      capability.Set
	src       types.Source[C]
	snk       types.Sink[C]
	cell      []C
}

// NewSource builds a Direct for a device that can at least be read.
func NewSource[C types.Char, D any, PD interface {
	*D
	types.Source[C]
}](opts ...OptionFunc) (*Direct[C, D], error) {
	return newDirect[C, D](opts)
}

// NewSink builds a Direct for a device that can at least be written.
func NewSink[C types.Char, D any, PD interface {
	*D
	types.Sink[C]
}](opts ...OptionFunc) (*Direct[C, D], error) {
	return newDirect[C, D](opts)
}

// NewDuplex builds a Direct for a device that can be read and written.
func NewDuplex[C types.Char, D any, PD interface {
	*D
	types.Duplex[C]
}](opts ...OptionFunc) (*Direct[C, D], error) {
	return newDirect[C, D](opts)
}

func newDirect[C types.Char, D any](opts []OptionFunc) (*Direct[C, D], error) {
	o, err := applyOptions(opts)
	if err != nil {
		return nil, err
	}
	b := &Direct[C, D]{
		container: Container[D]{logger: o.logger},
		caps:      capability.Of[C, D](),
	}
	b.bind()
	b.reset()
	return b, nil
}

func (b *Direct[C, D]) bind() {
	switch b.caps {
	case capability.Duplex:
		b.Init(duplexHooks[C, D]{sourceHooks[C, D]{b}, sinkHooks[C, D]{b}})
	case capability.Source:
		b.Init(readOnlyHooks[C, D]{streambuf.Defaults[C]{B: &b.Buffer}, sourceHooks[C, D]{b}})
	case capability.Sink:
		b.Init(writeOnlyHooks[C, D]{streambuf.Defaults[C]{B: &b.Buffer}, sinkHooks[C, D]{b}})
	default:
		b.Init(nil)
	}
	if b.caps.Has(capability.Source) {
		b.cell = make([]C, 1)
	}
}

// reset empties the holding cell, leaving nothing to back up over, and
// drops any put area.
func (b *Direct[C, D]) reset() {
	if b.caps.Has(capability.Source) {
		b.SetG(b.cell[:0], 0)
	}
	if b.caps.Has(capability.Sink) {
		b.SetP(nil)
	}
}

func (b *Direct[C, D]) attach() {
	b.src, b.snk = nil, nil
	if !b.container.IsOpen() {
		return
	}
	dev := any(b.container.Device())
	if b.caps.Has(capability.Source) {
		b.src = dev.(types.Source[C])
	}
	if b.caps.Has(capability.Sink) {
		b.snk = dev.(types.Sink[C])
	}
}

// Open replaces the bound device with the one built by ctor. Any
// character held from the previous device is discarded.
func (b *Direct[C, D]) Open(ctor func() (D, error)) error {
	err := b.container.Open(ctor)
	b.attach()
	b.reset()
	return err
}

func (b *Direct[C, D]) OpenValue(d D) error {
	return b.Open(func() (D, error) { return d, nil })
}

func (b *Direct[C, D]) IsOpen() bool {
	return b.container.IsOpen()
}

func (b *Direct[C, D]) Close() error {
	err := b.container.Close()
	b.attach()
	b.reset()
	return err
}

// Device returns the bound device and panics with ErrClosed if there is
// none.
func (b *Direct[C, D]) Device() *D {
	return b.container.Device()
}

func (b *Direct[C, D]) CanRead() bool {
	return b.caps.Has(capability.Source)
}

func (b *Direct[C, D]) CanWrite() bool {
	return b.caps.Has(capability.Sink)
}

// Move transfers the device and any held character to a new Direct and
// leaves b closed and empty.
func (b *Direct[C, D]) Move() *Direct[C, D] {
	dst := &Direct[C, D]{caps: b.caps}
	b.container.moveTo(&dst.container)
	dst.bind()
	dst.reset()
	dst.attach()
	if b.caps.Has(capability.Source) && b.InAvail() > 0 {
		dst.cell[0] = b.cell[0]
		dst.SetG(dst.cell, 0)
	}
	dst.container.log().Debug("device moved", slog.String("capabilities", b.caps.String()))
	b.attach()
	b.reset()
	return dst
}

func (b *Direct[C, D]) source() types.Source[C] {
	if b.src == nil {
		panic(ErrClosed)
	}
	return b.src
}

func (b *Direct[C, D]) sink() types.Sink[C] {
	if b.snk == nil {
		panic(ErrClosed)
	}
	return b.snk
}

// underflow pulls a single character into the holding cell and leaves it
// there for the next read.
func (b *Direct[C, D]) underflow() types.Int {
	n := checkCount("read", b.source().Read(b.cell[:1]), 1)
	if n == 0 {
		return types.EOF
	}
	b.SetG(b.cell, 0)
	return types.ToInt(b.cell[0])
}

// xsgetn drains the holding cell first and reads the rest directly into p.
// The last character read is left behind the get position so SUngetC
// backs up to it rather than to whatever the cell held before.
func (b *Direct[C, D]) xsgetn(p []C) int {
	src := b.source()
	if len(p) == 0 {
		return 0
	}
	held := 0
	if b.InAvail() > 0 {
		p[0] = types.ToChar[C](b.SBumpC())
		held = 1
		p = p[1:]
		if len(p) == 0 {
			return held
		}
	}
	k := checkCount("read", src.Read(p), len(p))
	if k > 0 {
		b.cell[0] = p[k-1]
		b.SetG(b.cell, 1)
	}
	return held + k
}

func (b *Direct[C, D]) overflow(ch types.Int) types.Int {
	snk := b.sink()
	if ch == types.EOF {
		return types.NotEOF(ch)
	}
	c := [1]C{types.ToChar[C](ch)}
	if checkCount("write", snk.Write(c[:]), 1) == 0 {
		return types.EOF
	}
	return ch
}

func (b *Direct[C, D]) xsputn(p []C) int {
	return checkCount("write", b.sink().Write(p), len(p))
}

type sourceHooks[C types.Char, D any] struct {
	b *Direct[C, D]
}

func (h sourceHooks[C, D]) Underflow() types.Int { return h.b.underflow() }
func (h sourceHooks[C, D]) XSGetN(p []C) int     { return h.b.xsgetn(p) }

type sinkHooks[C types.Char, D any] struct {
	b *Direct[C, D]
}

func (h sinkHooks[C, D]) Overflow(ch types.Int) types.Int { return h.b.overflow(ch) }
func (h sinkHooks[C, D]) XSPutN(p []C) int                { return h.b.xsputn(p) }

type readOnlyHooks[C types.Char, D any] struct {
	streambuf.Defaults[C]
	sourceHooks[C, D]
}

func (h readOnlyHooks[C, D]) Underflow() types.Int { return h.sourceHooks.Underflow() }
func (h readOnlyHooks[C, D]) XSGetN(p []C) int     { return h.sourceHooks.XSGetN(p) }

type writeOnlyHooks[C types.Char, D any] struct {
	streambuf.Defaults[C]
	sinkHooks[C, D]
}

func (h writeOnlyHooks[C, D]) Overflow(ch types.Int) types.Int { return h.sinkHooks.Overflow(ch) }
func (h writeOnlyHooks[C, D]) XSPutN(p []C) int                { return h.sinkHooks.XSPutN(p) }

type duplexHooks[C types.Char, D any] struct {
	sourceHooks[C, D]
	sinkHooks[C, D]
}

var (
	_ streambuf.Hooks[byte] = readOnlyHooks[byte, struct{}]{}
	_ streambuf.Hooks[byte] = writeOnlyHooks[byte, struct{}]{}
	_ streambuf.Hooks[byte] = duplexHooks[byte, struct{}]{}
)
