package program

import "fmt"

// Packed template programs use one byte per instruction: the kind in the
// high nibble and arg0 in the low nibble. They carry no mask, so unpacking
// yields instructions with Arg1 zero.
//
//	0x05  Value 5
//	0x13  Multiply 3
//	0x24  Add 4
//	0x30  Return

// PackByte returns the packed encoding of in.
func (in Instruction) PackByte() (byte, error) {
	if !in.Kind.Valid() {
		return 0, ErrUnknownOpcode
	}
	if in.Arg0 > 0x0F {
		return 0, fmt.Errorf("program: %s arg0 %d does not fit a nibble", in.Kind, in.Arg0)
	}
	return byte(in.Kind)<<4 | in.Arg0, nil
}

// Pack encodes instrs in the packed template form.
func Pack(instrs []Instruction) ([]byte, error) {
	out := make([]byte, 0, len(instrs))
	for i, in := range instrs {
		b, err := in.PackByte()
		if err != nil {
			return nil, fmt.Errorf("program: pack instruction %d: %w", i, err)
		}
		out = append(out, b)
	}
	return out, nil
}

// Unpack expands packed template bytes into instructions.
func Unpack(packed []byte) ([]Instruction, error) {
	out := make([]Instruction, 0, len(packed))
	for i, b := range packed {
		k := Kind(b >> 4)
		if !k.Valid() {
			return nil, fmt.Errorf("program: packed byte %d (0x%02X): %w", i, b, ErrUnknownOpcode)
		}
		out = append(out, Instruction{Kind: k, Arg0: b & 0x0F})
	}
	return out, nil
}
