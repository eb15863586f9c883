// Package capability decides whether a device type can be read from,
// written to, or both.
//
// The checks are structural: a type needs no registration, it only has to
// carry the right method. Types are probed through a nil pointer, so a
// method declared on either the value or the pointer receiver counts.
package capability

import (
	"strings"

	"github.com/moriyoshi/rill/types"
)

// Set is a combination of capabilities.
type Set uint8

const (
	Source Set = 1 << iota
	Sink

	None   Set = 0
	Duplex     = Source | Sink
)

func (s Set) Has(o Set) bool {
	return s&o == o
}

func (s Set) String() string {
	if s == None {
		return "none"
	}
	var parts []string
	if s.Has(Source) {
		parts = append(parts, "source")
	}
	if s.Has(Sink) {
		parts = append(parts, "sink")
	}
	return strings.Join(parts, "+")
}

// Concept is a named structural requirement. A concept may refine exactly
// one more primitive concept; a probe models the concept only if it also
// models every concept down the chain.
type Concept struct {
	name     string
	base     *Concept
	requires func(probe any) bool
}

// True is modelled by everything and roots every refinement chain.
var True = &Concept{
	name:     "true",
	requires: func(any) bool { return true },
}

// Refine derives a concept from base. A nil base means True.
func Refine(base *Concept, name string, requires func(probe any) bool) *Concept {
	if base == nil {
		base = True
	}
	return &Concept{name: name, base: base, requires: requires}
}

func (c *Concept) Models(probe any) bool {
	for cc := c; cc != nil; cc = cc.base {
		if !cc.requires(probe) {
			return false
		}
	}
	return true
}

// SourceConcept is satisfied by types with a Read([]C) int method.
func SourceConcept[C types.Char]() *Concept {
	return Refine(True, "source", func(probe any) bool {
		_, ok := probe.(types.Source[C])
		return ok
	})
}

// SinkConcept is satisfied by types with a Write([]C) int method.
func SinkConcept[C types.Char]() *Concept {
	return Refine(True, "sink", func(probe any) bool {
		_, ok := probe.(types.Sink[C])
		return ok
	})
}

// DuplexConcept refines SourceConcept with the sink requirement.
func DuplexConcept[C types.Char]() *Concept {
	sink := SinkConcept[C]()
	return Refine(SourceConcept[C](), "duplex", sink.requires)
}

func probe[D any]() any {
	return (*D)(nil)
}

func IsSource[C types.Char, D any]() bool {
	return SourceConcept[C]().Models(probe[D]())
}

func IsSink[C types.Char, D any]() bool {
	return SinkConcept[C]().Models(probe[D]())
}

// Of reports the full capability set of D.
func Of[C types.Char, D any]() Set {
	switch {
	case DuplexConcept[C]().Models(probe[D]()):
		return Duplex
	case IsSource[C, D]():
		return Source
	case IsSink[C, D]():
		return Sink
	}
	return None
}
