// Package streambuf is the buffered stream protocol devices are adapted to.
//
// A Buffer keeps an optional get area (characters already pulled from the
// underlying sequence but not yet consumed) and an optional put area
// (characters accepted but not yet handed on). When an area runs dry or
// fills up the Buffer calls into its Hooks, which is where an
// implementation talks to whatever actually produces or consumes data.
// Short reads and writes are reported as counts; exhaustion and refusal
// are reported as types.EOF.
package streambuf

import (
	"github.com/moriyoshi/rill/types"
)

// Hooks are the overridable points of a Buffer.
type Hooks[C types.Char] interface {
	// Underflow makes at least one character available in the get area and
	// returns it without consuming it, or returns EOF.
	Underflow() types.Int
	// XSGetN consumes up to len(p) characters into p.
	XSGetN(p []C) int
	// Overflow hands ch on, flushing the put area if needed. It returns
	// EOF on failure and something other than EOF on success.
	Overflow(ch types.Int) types.Int
	// XSPutN hands on up to len(p) characters.
	XSPutN(p []C) int
}

// PutBacker is an optional hook called when SUngetC finds no room to back
// up in the get area.
type PutBacker interface {
	PBackFail(ch types.Int) types.Int
}

type Buffer[C types.Char] struct {
	hooks Hooks[C]
	g     []C
	gpos  int
	p     []C
	ppos  int
}

// New returns a Buffer with no areas and the given hooks. A nil h gives
// the inherited default behaviour.
func New[C types.Char](h Hooks[C]) *Buffer[C] {
	b := &Buffer[C]{}
	b.Init(h)
	return b
}

// NewFixed returns a Buffer whose put area holds exactly n characters and
// refuses anything beyond that.
func NewFixed[C types.Char](n int) *Buffer[C] {
	b := New[C](nil)
	b.SetP(make([]C, n))
	return b
}

func (b *Buffer[C]) Init(h Hooks[C]) {
	b.hooks = h
}

func (b *Buffer[C]) impl() Hooks[C] {
	if b.hooks == nil {
		return Defaults[C]{b}
	}
	return b.hooks
}

// SetG replaces the get area. Characters area[pos:] are pending.
func (b *Buffer[C]) SetG(area []C, pos int) {
	b.g = area
	b.gpos = pos
}

// GetArea returns the get area and the read position within it.
func (b *Buffer[C]) GetArea() ([]C, int) {
	return b.g, b.gpos
}

// SetP replaces the put area with an empty one backed by area. A nil area
// disables put buffering so every SPutC reaches Overflow.
func (b *Buffer[C]) SetP(area []C) {
	b.p = area
	b.ppos = 0
}

// Pending returns the characters accumulated in the put area.
func (b *Buffer[C]) Pending() []C {
	return b.p[:b.ppos]
}

// InAvail reports how many characters can be taken without calling into
// the hooks.
func (b *Buffer[C]) InAvail() int {
	return len(b.g) - b.gpos
}

// SGetC returns the next character without consuming it.
func (b *Buffer[C]) SGetC() types.Int {
	if b.gpos < len(b.g) {
		return types.ToInt(b.g[b.gpos])
	}
	return b.impl().Underflow()
}

// SBumpC consumes and returns the next character.
func (b *Buffer[C]) SBumpC() types.Int {
	if b.gpos < len(b.g) {
		c := b.g[b.gpos]
		b.gpos++
		return types.ToInt(c)
	}
	return b.uflow()
}

// SNextC consumes the current character and returns the one after it.
func (b *Buffer[C]) SNextC() types.Int {
	if b.SBumpC() == types.EOF {
		return types.EOF
	}
	return b.SGetC()
}

// SUngetC moves the read position back by one.
func (b *Buffer[C]) SUngetC() types.Int {
	if b.gpos > 0 && b.gpos <= len(b.g) {
		b.gpos--
		return types.ToInt(b.g[b.gpos])
	}
	if pb, ok := b.hooks.(PutBacker); ok {
		return pb.PBackFail(types.EOF)
	}
	return types.EOF
}

func (b *Buffer[C]) SGetN(p []C) int {
	return b.impl().XSGetN(p)
}

// SPutC appends c to the put area, or hands it to Overflow when the area
// is full or absent.
func (b *Buffer[C]) SPutC(c C) types.Int {
	if b.ppos < len(b.p) {
		b.p[b.ppos] = c
		b.ppos++
		return types.ToInt(c)
	}
	return b.impl().Overflow(types.ToInt(c))
}

func (b *Buffer[C]) SPutN(p []C) int {
	return b.impl().XSPutN(p)
}

// Flush asks the hooks to hand on whatever the put area holds, by
// passing EOF to Overflow. It reports whether that succeeded.
func (b *Buffer[C]) Flush() bool {
	return b.impl().Overflow(types.EOF) != types.EOF
}

// SUnputC withdraws the most recent character from the put area. It
// fails once the character has left the put area.
func (b *Buffer[C]) SUnputC() bool {
	if b.ppos == 0 {
		return false
	}
	b.ppos--
	return true
}

func (b *Buffer[C]) uflow() types.Int {
	c := b.impl().Underflow()
	if c != types.EOF && b.gpos < len(b.g) {
		b.gpos++
	}
	return c
}

// Defaults is the behaviour a Buffer has when nothing overrides it: an
// empty sequence that refuses every write. Hooks implementations embed it
// to inherit the operations they do not provide.
type Defaults[C types.Char] struct {
	B *Buffer[C]
}

func (d Defaults[C]) Underflow() types.Int {
	return types.EOF
}

func (d Defaults[C]) XSGetN(p []C) int {
	n := 0
	for n < len(p) {
		if d.B.gpos < len(d.B.g) {
			k := copy(p[n:], d.B.g[d.B.gpos:])
			d.B.gpos += k
			n += k
			continue
		}
		c := d.B.uflow()
		if c == types.EOF {
			break
		}
		p[n] = types.ToChar[C](c)
		n++
	}
	return n
}

func (d Defaults[C]) Overflow(ch types.Int) types.Int {
	return types.EOF
}

func (d Defaults[C]) XSPutN(p []C) int {
	n := 0
	for _, c := range p {
		if d.B.SPutC(c) == types.EOF {
			break
		}
		n++
	}
	return n
}

var _ Hooks[byte] = Defaults[byte]{}
