// Package tee provides a sink device that copies every write to a fixed,
// ordered list of buffered streams.
package tee

import (
	"fmt"

	"github.com/moriyoshi/rill/types"
)

// Target is a downstream stream a Tee writes to. *streambuf.Buffer and
// every rill.Direct satisfy it.
type Target[C types.Char] interface {
	SPutN(p []C) int
	SPutC(c C) types.Int
}

// Retractor is implemented by targets that can withdraw the character
// they accepted last.
type Retractor interface {
	SUnputC() bool
}

type Policy int

const (
	// Bulk hands the whole block to every target in one call and reports
	// the smallest count any of them accepted. Targets that took more than
	// that are left ahead of the others.
	Bulk Policy = iota
	// Checked writes one character at a time and stops at the first
	// character some target refuses. The refused character is not offered
	// to the targets after the refusing one, and is withdrawn from the
	// targets before it that implement Retractor, so the reported count is
	// the prefix every target holds. Targets before the refusing one that
	// cannot withdraw keep that one extra character.
	Checked
)

func (p Policy) String() string {
	switch p {
	case Bulk:
		return "bulk"
	case Checked:
		return "checked"
	}
	return fmt.Sprintf("Policy(%d)", int(p))
}

// ParsePolicy maps "bulk" and "checked" to their Policy.
func ParsePolicy(s string) (Policy, error) {
	switch s {
	case "bulk":
		return Bulk, nil
	case "checked":
		return Checked, nil
	}
	return 0, fmt.Errorf("unknown tee policy %q", s)
}

// Tee fans writes out to its targets. It does not own them; they must
// stay usable for as long as the Tee is written to.
type Tee[C types.Char] struct {
	policy  Policy
	targets []Target[C]
}

// New returns a Tee writing to targets in the given order. It panics if a
// target is nil.
func New[C types.Char](policy Policy, targets ...Target[C]) *Tee[C] {
	for i, t := range targets {
		if t == nil {
			panic(fmt.Sprintf("tee: target %d is nil", i))
		}
	}
	return &Tee[C]{
		policy:  policy,
		targets: append([]Target[C](nil), targets...),
	}
}

func (t *Tee[C]) Policy() Policy {
	return t.policy
}

func (t *Tee[C]) Len() int {
	return len(t.targets)
}

func (t *Tee[C]) Write(p []C) int {
	if t.policy == Checked {
		return t.writeChecked(p)
	}
	return t.writeBulk(p)
}

func (t *Tee[C]) writeBulk(p []C) int {
	least := len(p)
	for _, target := range t.targets {
		if n := target.SPutN(p); n < least {
			least = n
		}
	}
	return least
}

func (t *Tee[C]) writeChecked(p []C) int {
	for i, c := range p {
		for j, target := range t.targets {
			if target.SPutC(c) == types.EOF {
				t.retract(j)
				return i
			}
		}
	}
	return len(p)
}

// retract withdraws the last character from the first n targets, the ones
// that accepted it before a later target refused.
func (t *Tee[C]) retract(n int) {
	for _, target := range t.targets[:n] {
		if r, ok := target.(Retractor); ok {
			r.SUnputC()
		}
	}
}

var _ types.Sink[byte] = (*Tee[byte])(nil)
