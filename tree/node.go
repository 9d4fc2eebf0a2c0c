// Package tree rebuilds expression trees from solver programs so that
// solutions produced by different solvers can be compared up to
// reordering and regrouping of like operators.
package tree

import (
	"cmp"
	"slices"
	"strconv"
	"strings"

	"github.com/bennorth/countdown-numbers-solver/pprint"
	"github.com/bennorth/countdown-numbers-solver/program"
)

// Node is a Leaf or an *Op.
type Node interface {
	// Key returns the structural key used for ordering and comparison.
	Key() Key
	// Format renders the node fully parenthesised, children in order.
	Format(sym pprint.Symbols) string

	absorb() Node
	canonical() Node
}

// Leaf is a single card value.
type Leaf struct {
	Value int
}

// Op combines its children with a Multiply or Add. Inverted[i] marks
// child i as a divisor or subtrahend.
type Op struct {
	Kind     program.Kind
	Children []Node
	Inverted []bool
}

// Key is a comparable description of a node's shape. Leaves have Tag 0;
// multiplies Tag 1; adds Tag 2.
type Key struct {
	Tag      int
	Value    int
	Children []ChildKey
}

// ChildKey is one operand of an operator key.
type ChildKey struct {
	Inverted bool
	Key      Key
}

// Compare orders keys lexicographically: tag, then value for leaves or
// children for operators, with a shorter child list sorting first.
func (k Key) Compare(o Key) int {
	if c := cmp.Compare(k.Tag, o.Tag); c != 0 {
		return c
	}
	if k.Tag == 0 {
		return cmp.Compare(k.Value, o.Value)
	}
	for i := 0; i < len(k.Children) && i < len(o.Children); i++ {
		a, b := k.Children[i], o.Children[i]
		if a.Inverted != b.Inverted {
			if a.Inverted {
				return 1
			}
			return -1
		}
		if c := a.Key.Compare(b.Key); c != 0 {
			return c
		}
	}
	return cmp.Compare(len(k.Children), len(o.Children))
}

// String renders the key as an s-expression, e.g. "(* +10 -(+ +5 +3))".
func (k Key) String() string {
	var sb strings.Builder
	k.write(&sb)
	return sb.String()
}

func (k Key) write(sb *strings.Builder) {
	if k.Tag == 0 {
		sb.WriteString(strconv.Itoa(k.Value))
		return
	}
	if k.Tag == 1 {
		sb.WriteString("(*")
	} else {
		sb.WriteString("(+")
	}
	for _, ch := range k.Children {
		if ch.Inverted {
			sb.WriteString(" -")
		} else {
			sb.WriteString(" +")
		}
		ch.Key.write(sb)
	}
	sb.WriteByte(')')
}

// ---------------------------------------------------------------------------
// Leaf
// ---------------------------------------------------------------------------

func (l Leaf) Key() Key { return Key{Tag: 0, Value: l.Value} }

func (l Leaf) Format(pprint.Symbols) string { return strconv.Itoa(l.Value) }

func (l Leaf) absorb() Node    { return l }
func (l Leaf) canonical() Node { return l }

// ---------------------------------------------------------------------------
// Op
// ---------------------------------------------------------------------------

func (o *Op) tag() int {
	if o.Kind == program.KindMultiply {
		return 1
	}
	return 2
}

func (o *Op) Key() Key {
	k := Key{Tag: o.tag(), Children: make([]ChildKey, len(o.Children))}
	for i, ch := range o.Children {
		k.Children[i] = ChildKey{Inverted: o.Inverted[i], Key: ch.Key()}
	}
	return k
}

// Format renders direct operands first, then each inverted operand with
// its own inverse symbol: "(a + b − c − d)".
func (o *Op) Format(sym pprint.Symbols) string {
	combine, invert := sym.Add, sym.Subtract
	if o.Kind == program.KindMultiply {
		combine, invert = sym.Multiply, sym.Divide
	}

	var direct, inverse []string
	for i, ch := range o.Children {
		if o.Inverted[i] {
			inverse = append(inverse, ch.Format(sym))
		} else {
			direct = append(direct, ch.Format(sym))
		}
	}

	var sb strings.Builder
	sb.WriteByte('(')
	sb.WriteString(strings.Join(direct, " "+combine+" "))
	for _, s := range inverse {
		sb.WriteString(" " + invert + " ")
		sb.WriteString(s)
	}
	sb.WriteByte(')')
	return sb.String()
}

// absorb merges children of the same kind into o. A child that is itself
// inverted contributes its operands with their inversion flipped.
func (o *Op) absorb() Node {
	out := &Op{Kind: o.Kind}
	for i, orig := range o.Children {
		ch := orig.absorb()
		inner, ok := ch.(*Op)
		if !ok || inner.Kind != o.Kind {
			out.Children = append(out.Children, ch)
			out.Inverted = append(out.Inverted, o.Inverted[i])
			continue
		}
		out.Children = append(out.Children, inner.Children...)
		for _, inv := range inner.Inverted {
			out.Inverted = append(out.Inverted, inv != o.Inverted[i])
		}
	}
	return out
}

// canonical orders children direct-first, then by key.
func (o *Op) canonical() Node {
	type pair struct {
		inv bool
		ch  Node
		key Key
	}
	pairs := make([]pair, len(o.Children))
	for i, ch := range o.Children {
		c := ch.canonical()
		pairs[i] = pair{inv: o.Inverted[i], ch: c, key: c.Key()}
	}
	slices.SortStableFunc(pairs, func(a, b pair) int {
		if a.inv != b.inv {
			if a.inv {
				return 1
			}
			return -1
		}
		return a.key.Compare(b.key)
	})

	out := &Op{Kind: o.Kind, Children: make([]Node, len(pairs)), Inverted: make([]bool, len(pairs))}
	for i, p := range pairs {
		out.Children[i] = p.ch
		out.Inverted[i] = p.inv
	}
	return out
}

// ---------------------------------------------------------------------------
// Package-level helpers
// ---------------------------------------------------------------------------

// Canonicalize absorbs like children and then sorts operands, so that
// equivalent groupings and orderings of the same solution share a key.
func Canonicalize(n Node) Node {
	return n.absorb().canonical()
}

// Absorb merges nested operators of the same kind.
func Absorb(n Node) Node {
	return n.absorb()
}

// CanonicalKey is Canonicalize(n).Key().String().
func CanonicalKey(n Node) string {
	return Canonicalize(n).Key().String()
}

// FormatTop renders n without its outermost parentheses.
func FormatTop(n Node, sym pprint.Symbols) string {
	s := n.Format(sym)
	if _, ok := n.(*Op); ok {
		return s[1 : len(s)-1]
	}
	return s
}
