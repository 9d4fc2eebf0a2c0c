package program

import (
	"fmt"
	"strings"
)

// ---------------------------------------------------------------------------
// Disassembly
// ---------------------------------------------------------------------------

// DisassembleInstruction disassembles the instruction at the reader's
// position and advances the reader. cards may be nil; when present, Value
// lines are annotated with the referenced card.
func DisassembleInstruction(r *Reader, cards []int) (string, error) {
	pos := r.Offset()
	in, err := r.Next()
	if err != nil {
		return fmt.Sprintf("%04d  <%v>", pos, err), err
	}

	switch in.Kind {
	case KindValue:
		if cards != nil {
			if int(in.Arg0) < len(cards) {
				return fmt.Sprintf("%04d  %s ; %d", pos, in, cards[in.Arg0]), nil
			}
			return fmt.Sprintf("%04d  %s ; <no card>", pos, in), nil
		}
		return fmt.Sprintf("%04d  %s", pos, in), nil
	default:
		return fmt.Sprintf("%04d  %s", pos, in), nil
	}
}

// Disassemble returns a full listing of code, one line per instruction.
// A malformed tail is reported on the final line.
func Disassemble(code []byte) string {
	return DisassembleWithCards(code, nil)
}

// DisassembleWithCards is Disassemble with Value lines annotated by card.
func DisassembleWithCards(code []byte, cards []int) string {
	r := NewReader(code)
	var sb strings.Builder
	for r.HasMore() {
		if sb.Len() > 0 {
			sb.WriteByte('\n')
		}
		line, err := DisassembleInstruction(r, cards)
		sb.WriteString(line)
		if err != nil {
			break
		}
	}
	return sb.String()
}
