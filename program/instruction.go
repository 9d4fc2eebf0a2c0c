package program

import (
	"errors"
	"fmt"
)

// Width is the encoded size of one instruction in bytes.
const Width = 3

// MaxOperands is the largest operand count a Multiply or Add can carry,
// bounded by the width of the mask byte.
const MaxOperands = 8

var (
	// ErrTruncated is returned when a buffer ends partway through an
	// instruction.
	ErrTruncated = errors.New("buffer length is not a multiple of the instruction width")

	// ErrUnknownOpcode is returned for an opcode byte outside 0..3.
	ErrUnknownOpcode = errors.New("unknown opcode")
)

// Instruction is one decoded (opcode, arg0, arg1) triple.
//
// For Value, Arg0 is the card index. For Multiply and Add, Arg0 is the
// operand count and Arg1 the combine-side mask, read least-significant bit
// first in pop order. Return ignores both arguments.
type Instruction struct {
	Kind Kind
	Arg0 uint8
	Arg1 uint8
}

// Value returns a Value instruction referencing card index idx.
func Value(idx uint8) Instruction {
	return Instruction{Kind: KindValue, Arg0: idx}
}

// Multiply returns a Multiply instruction over n operands.
func Multiply(n, mask uint8) Instruction {
	return Instruction{Kind: KindMultiply, Arg0: n, Arg1: mask}
}

// Add returns an Add instruction over n operands.
func Add(n, mask uint8) Instruction {
	return Instruction{Kind: KindAdd, Arg0: n, Arg1: mask}
}

// Return returns a Return instruction.
func Return() Instruction {
	return Instruction{Kind: KindReturn}
}

// Combines reports whether the operand popped at position i (0 = first
// popped) is on the combine side of a Multiply or Add.
func (in Instruction) Combines(i int) bool {
	return (in.Arg1>>uint(i))&1 == 1
}

// Signs renders the mask of a Multiply or Add as one sign per operand,
// deepest operand first: '+' for combine side, '-' for invert side.
func (in Instruction) Signs() string {
	n := int(in.Arg0)
	buf := make([]byte, n)
	for i := 0; i < n; i++ {
		sign := byte('-')
		if in.Combines(i) {
			sign = '+'
		}
		buf[n-1-i] = sign
	}
	return string(buf)
}

// String implements the Stringer interface.
func (in Instruction) String() string {
	switch in.Kind {
	case KindValue:
		return fmt.Sprintf("%s %d", in.Kind, in.Arg0)
	case KindMultiply, KindAdd:
		return fmt.Sprintf("%s n=%d mask=0b%0*b (%s)", in.Kind, in.Arg0, max(int(in.Arg0), 1), in.Arg1, in.Signs())
	default:
		return in.Kind.String()
	}
}

// AppendTo appends the 3-byte encoding of in to dst.
func (in Instruction) AppendTo(dst []byte) []byte {
	return append(dst, byte(in.Kind), in.Arg0, in.Arg1)
}

// Encode concatenates the encodings of instrs.
func Encode(instrs ...Instruction) []byte {
	out := make([]byte, 0, len(instrs)*Width)
	for _, in := range instrs {
		out = in.AppendTo(out)
	}
	return out
}

// DecodeInstructions splits code into instructions. It fails if the buffer
// length is not a multiple of Width or an opcode is unknown.
func DecodeInstructions(code []byte) ([]Instruction, error) {
	r := NewReader(code)
	instrs := make([]Instruction, 0, len(code)/Width)
	for r.HasMore() {
		off := r.Offset()
		in, err := r.Next()
		if err != nil {
			return nil, fmt.Errorf("program: offset %d: %w", off, err)
		}
		instrs = append(instrs, in)
	}
	return instrs, nil
}
