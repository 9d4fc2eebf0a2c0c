package tree

import (
	"errors"
	"fmt"

	"github.com/bennorth/countdown-numbers-solver/pprint"
	"github.com/bennorth/countdown-numbers-solver/program"
)

// ErrLeftover reports a flat-form line that does not reduce to exactly
// one expression.
var ErrLeftover = errors.New("expression does not reduce to a single tree")

// FromProgram builds one tree per Return in code. Malformed buffers are
// rejected with the same sentinel errors as pprint.Decode.
func FromProgram(cards pprint.Cards, code []byte) ([]Node, error) {
	instrs, err := program.DecodeInstructions(code)
	if err != nil {
		return nil, err
	}

	var stack, out []Node
	for i, in := range instrs {
		off := i * program.Width
		switch in.Kind {
		case program.KindValue:
			if int(in.Arg0) >= len(cards) {
				return nil, fmt.Errorf("tree: offset %d: %w", off, pprint.ErrCardIndex)
			}
			stack = append(stack, Leaf{Value: cards[in.Arg0]})

		case program.KindMultiply, program.KindAdd:
			n := int(in.Arg0)
			if n > program.MaxOperands {
				return nil, fmt.Errorf("tree: offset %d: %w", off, pprint.ErrArity)
			}
			if len(stack) < n {
				return nil, fmt.Errorf("tree: offset %d: %w", off, pprint.ErrStackUnderflow)
			}
			var op *Op
			stack, op = reduce(stack, in.Kind, in.Signs())
			stack = append(stack, op)

		case program.KindReturn:
			if len(stack) == 0 {
				return nil, fmt.Errorf("tree: offset %d: %w", off, pprint.ErrStackUnderflow)
			}
			out = append(out, stack[len(stack)-1])
			stack = stack[:len(stack)-1]
		}
	}
	return out, nil
}

// ParseFlat builds the tree described by one flat-form line such as
// "V(24) V(13) A(+-) V(99) M(-+) R".
func ParseFlat(line string) (Node, error) {
	ops, err := program.ParseFlat(line)
	if err != nil {
		return nil, err
	}

	var stack []Node
	for _, op := range ops {
		switch op.Kind {
		case program.KindValue:
			stack = append(stack, Leaf{Value: op.Value})
		case program.KindMultiply, program.KindAdd:
			if len(stack) < len(op.Signs) {
				return nil, fmt.Errorf("tree: %s: %w", op, pprint.ErrStackUnderflow)
			}
			var n *Op
			stack, n = reduce(stack, op.Kind, op.Signs)
			stack = append(stack, n)
		case program.KindReturn:
			// Terminates the line; nothing to pop.
		}
	}
	if len(stack) != 1 {
		return nil, fmt.Errorf("tree: %q: %w (%d on stack)", line, ErrLeftover, len(stack))
	}
	return stack[0], nil
}

// reduce replaces the top len(signs) stack entries with one operator
// node. signs lists one sign per operand, deepest first.
func reduce(stack []Node, kind program.Kind, signs string) ([]Node, *Op) {
	n := len(signs)
	base := len(stack) - n
	op := &Op{
		Kind:     kind,
		Children: make([]Node, n),
		Inverted: make([]bool, n),
	}
	copy(op.Children, stack[base:])
	for i := 0; i < n; i++ {
		op.Inverted[i] = signs[i] == '-'
	}
	return stack[:base], op
}
