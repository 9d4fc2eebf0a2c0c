package pprint

import (
	"cmp"
	"slices"
	"strconv"
	"strings"
)

// operand is one entry of the decode stack.
type operand struct {
	text    string
	leaf    bool // pushed directly by a Value instruction
	value   int  // card value; meaningful only for leaves
	wrapped bool // text carries one outer pair of parentheses
}

func leafOperand(v int) operand {
	return operand{text: strconv.Itoa(v), leaf: true, value: v}
}

// compare orders two operands of the same group. Leaves precede
// composites; ties return 0 so a stable sort keeps pop order.
func (o Options) compare(a, b operand) int {
	switch {
	case a.leaf && b.leaf:
		if o.LeafOrder == Ascending {
			return cmp.Compare(a.value, b.value)
		}
		return cmp.Compare(b.value, a.value)
	case a.leaf:
		return -1
	case b.leaf:
		return 1
	case o.CompositeOrder == CompositeText:
		return strings.Compare(b.text, a.text)
	default:
		return 0
	}
}

func (o Options) sortGroup(group []operand) {
	slices.SortStableFunc(group, o.compare)
}

func joinTexts(sb *strings.Builder, group []operand, sep string) {
	for i, op := range group {
		if i > 0 {
			sb.WriteString(sep)
		}
		sb.WriteString(op.text)
	}
}
