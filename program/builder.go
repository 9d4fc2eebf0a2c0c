package program

// ---------------------------------------------------------------------------
// Builder: helper for constructing programs
// ---------------------------------------------------------------------------

// Builder helps construct instruction buffers.
type Builder struct {
	bytes []byte
}

// NewBuilder creates a new program builder.
func NewBuilder() *Builder {
	return &Builder{
		bytes: make([]byte, 0, 16*Width),
	}
}

// Bytes returns the constructed buffer.
func (b *Builder) Bytes() []byte {
	return b.bytes
}

// Len returns the current length in bytes.
func (b *Builder) Len() int {
	return len(b.bytes)
}

// Emit appends an instruction.
func (b *Builder) Emit(in Instruction) *Builder {
	b.bytes = in.AppendTo(b.bytes)
	return b
}

// EmitRaw appends three raw bytes without validation.
func (b *Builder) EmitRaw(op, arg0, arg1 byte) *Builder {
	b.bytes = append(b.bytes, op, arg0, arg1)
	return b
}

// Value appends a Value instruction for card index idx.
func (b *Builder) Value(idx uint8) *Builder {
	return b.Emit(Value(idx))
}

// Multiply appends a Multiply instruction over n operands.
func (b *Builder) Multiply(n, mask uint8) *Builder {
	return b.Emit(Multiply(n, mask))
}

// Add appends an Add instruction over n operands.
func (b *Builder) Add(n, mask uint8) *Builder {
	return b.Emit(Add(n, mask))
}

// Return appends a Return instruction.
func (b *Builder) Return() *Builder {
	return b.Emit(Return())
}
