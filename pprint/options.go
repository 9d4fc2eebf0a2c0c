package pprint

import (
	"fmt"

	"github.com/bennorth/countdown-numbers-solver/program"
)

// Cards is the ordered set of six input numbers a program draws from.
type Cards [6]int

// Symbols is the set of operator glyphs used when rendering.
type Symbols struct {
	Multiply string
	Divide   string
	Add      string
	Subtract string
}

var (
	// Unicode renders with ×, ÷, + and − (U+2212).
	Unicode = Symbols{Multiply: "×", Divide: "÷", Add: "+", Subtract: "−"}

	// ASCII renders with *, /, + and -.
	ASCII = Symbols{Multiply: "*", Divide: "/", Add: "+", Subtract: "-"}
)

// pair returns the (combine, invert) glyphs for a Multiply or Add.
func (s Symbols) pair(k program.Kind) (string, string) {
	if k == program.KindMultiply {
		return s.Multiply, s.Divide
	}
	return s.Add, s.Subtract
}

// SymbolsByName looks up a symbol set by its configuration name.
func SymbolsByName(name string) (Symbols, error) {
	switch name {
	case "", "unicode":
		return Unicode, nil
	case "ascii":
		return ASCII, nil
	default:
		return Symbols{}, fmt.Errorf("pprint: unknown symbol set %q", name)
	}
}

// LeafOrder is the direction leaf operands are sorted within a group.
type LeafOrder int

const (
	// Descending puts the largest card first: "75 + 3".
	Descending LeafOrder = iota
	// Ascending puts the smallest card first: "3 + 75".
	Ascending
)

// CompositeOrder decides how parenthesised sub-expressions are ordered
// relative to each other. Leaves always precede composites in a group.
type CompositeOrder int

const (
	// CompositeStable keeps composites in the order they were popped.
	CompositeStable CompositeOrder = iota
	// CompositeText orders composites by descending rendered text.
	CompositeText
)

// ParseLeafOrder parses "descending" or "ascending".
func ParseLeafOrder(s string) (LeafOrder, error) {
	switch s {
	case "", "descending":
		return Descending, nil
	case "ascending":
		return Ascending, nil
	default:
		return 0, fmt.Errorf("pprint: unknown leaf order %q", s)
	}
}

// ParseCompositeOrder parses "stable" or "text".
func ParseCompositeOrder(s string) (CompositeOrder, error) {
	switch s {
	case "", "stable":
		return CompositeStable, nil
	case "text":
		return CompositeText, nil
	default:
		return 0, fmt.Errorf("pprint: unknown composite order %q", s)
	}
}

// Options configures a Decoder.
type Options struct {
	Symbols        Symbols
	LeafOrder      LeafOrder
	CompositeOrder CompositeOrder
}

// DefaultOptions returns Unicode symbols, descending leaves and stable
// composites.
func DefaultOptions() Options {
	return Options{Symbols: Unicode}
}
