package pprint

import (
	"errors"
	"fmt"
	"strings"

	"github.com/bennorth/countdown-numbers-solver/program"
)

var (
	// ErrTruncated reports a buffer whose length is not a multiple of
	// program.Width.
	ErrTruncated = program.ErrTruncated

	// ErrUnknownOpcode reports an opcode byte outside 0..3.
	ErrUnknownOpcode = program.ErrUnknownOpcode

	// ErrCardIndex reports a Value whose card index is not in 0..5.
	ErrCardIndex = errors.New("card index out of range")

	// ErrStackUnderflow reports an instruction that pops more operands
	// than the stack holds.
	ErrStackUnderflow = errors.New("operand stack underflow")

	// ErrArity reports a Multiply or Add over more operands than its mask
	// can describe.
	ErrArity = errors.New("operand count exceeds mask width")
)

// DecodeError describes a malformed program. Decoding stops at the first
// fault and no partial output is returned.
type DecodeError struct {
	Offset      int                  // byte offset of the faulting instruction
	Instruction *program.Instruction // nil when the instruction could not be read
	Err         error
}

func (e *DecodeError) Error() string {
	if e.Instruction != nil {
		return fmt.Sprintf("pprint: offset %d (%s): %v", e.Offset, e.Instruction, e.Err)
	}
	return fmt.Sprintf("pprint: offset %d: %v", e.Offset, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// Decoder renders instruction buffers as infix expressions. A Decoder is
// immutable and may be shared by concurrent callers.
type Decoder struct {
	opts Options
}

// NewDecoder creates a decoder with the given options. A zero Symbols
// value selects Unicode.
func NewDecoder(opts Options) *Decoder {
	if opts.Symbols == (Symbols{}) {
		opts.Symbols = Unicode
	}
	return &Decoder{opts: opts}
}

// Options returns the decoder's options.
func (d *Decoder) Options() Options {
	return d.opts
}

// Decode renders code against cards with DefaultOptions.
func Decode(cards Cards, code []byte) ([]string, error) {
	return NewDecoder(DefaultOptions()).Decode(cards, code)
}

// MustDecode is like Decode but panics on a malformed buffer.
func MustDecode(cards Cards, code []byte) []string {
	exprs, err := Decode(cards, code)
	if err != nil {
		panic(err)
	}
	return exprs
}

// Decode runs the program stack machine over code and returns one
// expression per Return instruction, in program order.
func (d *Decoder) Decode(cards Cards, code []byte) ([]string, error) {
	if rem := len(code) % program.Width; rem != 0 {
		return nil, &DecodeError{Offset: len(code) - rem, Err: ErrTruncated}
	}

	var (
		stack []operand
		exprs []string
	)
	r := program.NewReader(code)
	for r.HasMore() {
		off := r.Offset()
		in, err := r.Next()
		if err != nil {
			return nil, &DecodeError{Offset: off, Err: err}
		}
		fault := func(err error) error {
			return &DecodeError{Offset: off, Instruction: &in, Err: err}
		}

		switch in.Kind {
		case program.KindValue:
			if int(in.Arg0) >= len(cards) {
				return nil, fault(ErrCardIndex)
			}
			stack = append(stack, leafOperand(cards[in.Arg0]))

		case program.KindMultiply, program.KindAdd:
			n := int(in.Arg0)
			if n > program.MaxOperands {
				return nil, fault(ErrArity)
			}
			if len(stack) < n {
				return nil, fault(ErrStackUnderflow)
			}
			var combined operand
			stack, combined = d.combine(stack, in)
			stack = append(stack, combined)

		case program.KindReturn:
			if len(stack) == 0 {
				return nil, fault(ErrStackUnderflow)
			}
			top := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			exprs = append(exprs, unwrap(top))
		}
	}
	return exprs, nil
}

// combine pops in.Arg0 operands, classifies each by its mask bit and
// returns the shortened stack with the parenthesised combination.
func (d *Decoder) combine(stack []operand, in program.Instruction) ([]operand, operand) {
	n := int(in.Arg0)
	var direct, inverse []operand
	for i := 0; i < n; i++ {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if in.Combines(i) {
			direct = append(direct, top)
		} else {
			inverse = append(inverse, top)
		}
	}
	d.opts.sortGroup(direct)
	d.opts.sortGroup(inverse)

	sym, inv := d.opts.Symbols.pair(in.Kind)
	sep := " " + sym + " "

	var sb strings.Builder
	sb.WriteByte('(')
	joinTexts(&sb, direct, sep)
	switch len(inverse) {
	case 0:
	case 1:
		sb.WriteString(" " + inv + " ")
		sb.WriteString(inverse[0].text)
	default:
		sb.WriteString(" " + inv + " (")
		joinTexts(&sb, inverse, sep)
		sb.WriteByte(')')
	}
	sb.WriteByte(')')

	return stack, operand{text: sb.String(), wrapped: true}
}

// unwrap strips the outer parentheses of a composite. Leaves are returned
// as is.
func unwrap(o operand) string {
	if !o.wrapped {
		return o.text
	}
	return o.text[1 : len(o.text)-1]
}
