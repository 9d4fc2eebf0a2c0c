package program

// ---------------------------------------------------------------------------
// Reader for decoding and disassembly
// ---------------------------------------------------------------------------

// Reader walks an instruction buffer one instruction at a time.
type Reader struct {
	bytes []byte
	pos   int
}

// NewReader creates a reader over code.
func NewReader(code []byte) *Reader {
	return &Reader{bytes: code}
}

// Offset returns the byte offset of the next instruction.
func (r *Reader) Offset() int {
	return r.pos
}

// HasMore returns true if there are more bytes to read.
func (r *Reader) HasMore() bool {
	return r.pos < len(r.bytes)
}

// Next reads the instruction at the current offset and advances past it.
// The reader does not advance on error.
func (r *Reader) Next() (Instruction, error) {
	if r.pos+Width > len(r.bytes) {
		return Instruction{}, ErrTruncated
	}
	in := Instruction{
		Kind: Kind(r.bytes[r.pos]),
		Arg0: r.bytes[r.pos+1],
		Arg1: r.bytes[r.pos+2],
	}
	if !in.Kind.Valid() {
		return Instruction{}, ErrUnknownOpcode
	}
	r.pos += Width
	return in, nil
}

// Seek sets the read position. pos should be a multiple of Width.
func (r *Reader) Seek(pos int) {
	r.pos = pos
}
