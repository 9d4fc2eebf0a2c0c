package program

import (
	"fmt"
	"strconv"
	"strings"
)

// The flat form is the solver's one-line text rendering of a program:
//
//	V(24) V(13) A(+-) V(99) M(-+) R
//
// Values are concrete card values. An operator lists one sign per operand,
// deepest operand first.

// FlatOp is one token of a flat-form program.
type FlatOp struct {
	Kind  Kind
	Value int    // card value, for KindValue
	Signs string // per-operand signs, for KindMultiply and KindAdd
}

// String renders the token in flat form.
func (op FlatOp) String() string {
	switch op.Kind {
	case KindValue:
		return fmt.Sprintf("V(%d)", op.Value)
	case KindMultiply, KindAdd:
		return fmt.Sprintf("%s(%s)", op.Kind.Info().Tag, op.Signs)
	default:
		return op.Kind.Info().Tag
	}
}

// FormatFlat renders code as flat-form lines, one per Return. Instructions
// after the final Return are rendered as a last, unterminated line.
func FormatFlat(code []byte, cards []int) ([]string, error) {
	instrs, err := DecodeInstructions(code)
	if err != nil {
		return nil, err
	}

	var lines []string
	var toks []string
	for i, in := range instrs {
		op := FlatOp{Kind: in.Kind}
		switch in.Kind {
		case KindValue:
			if int(in.Arg0) >= len(cards) {
				return nil, fmt.Errorf("program: offset %d: card index %d out of range", i*Width, in.Arg0)
			}
			op.Value = cards[in.Arg0]
		case KindMultiply, KindAdd:
			op.Signs = in.Signs()
		}
		toks = append(toks, op.String())
		if in.Kind == KindReturn {
			lines = append(lines, strings.Join(toks, " "))
			toks = toks[:0]
		}
	}
	if len(toks) > 0 {
		lines = append(lines, strings.Join(toks, " "))
	}
	return lines, nil
}

// ParseFlat tokenises one flat-form line.
func ParseFlat(line string) ([]FlatOp, error) {
	fields := strings.Fields(line)
	ops := make([]FlatOp, 0, len(fields))
	for _, f := range fields {
		op, err := parseFlatToken(f)
		if err != nil {
			return nil, err
		}
		ops = append(ops, op)
	}
	return ops, nil
}

func parseFlatToken(tok string) (FlatOp, error) {
	if tok == "R" {
		return FlatOp{Kind: KindReturn}, nil
	}
	if len(tok) < 3 || tok[1] != '(' || tok[len(tok)-1] != ')' {
		return FlatOp{}, fmt.Errorf("program: malformed flat token %q", tok)
	}
	body := tok[2 : len(tok)-1]

	switch tok[0] {
	case 'V':
		v, err := strconv.Atoi(body)
		if err != nil {
			return FlatOp{}, fmt.Errorf("program: flat token %q: %w", tok, err)
		}
		return FlatOp{Kind: KindValue, Value: v}, nil
	case 'M', 'A':
		if len(body) > MaxOperands || strings.Trim(body, "+-") != "" {
			return FlatOp{}, fmt.Errorf("program: flat token %q: bad signs", tok)
		}
		kind := KindAdd
		if tok[0] == 'M' {
			kind = KindMultiply
		}
		return FlatOp{Kind: kind, Signs: body}, nil
	default:
		return FlatOp{}, fmt.Errorf("program: unknown flat token %q", tok)
	}
}

// MaskFromSigns is the inverse of Instruction.Signs.
func MaskFromSigns(signs string) uint8 {
	var mask uint8
	n := len(signs)
	for i := 0; i < n; i++ {
		if signs[n-1-i] == '+' {
			mask |= 1 << uint(i)
		}
	}
	return mask
}
