package program

import "fmt"

// ---------------------------------------------------------------------------
// Instruction kinds
// ---------------------------------------------------------------------------

// Kind is the opcode tag of an instruction.
type Kind byte

const (
	KindValue    Kind = 0 // push a card: arg0 = card index
	KindMultiply Kind = 1 // multiply/divide n operands: arg0 = n, arg1 = mask
	KindAdd      Kind = 2 // add/subtract n operands: arg0 = n, arg1 = mask
	KindReturn   Kind = 3 // pop a finished expression
)

// KindInfo holds metadata about an instruction kind.
type KindInfo struct {
	Name  string // listing name
	Tag   string // single-letter tag used by the flat text form
	Binop bool   // whether arg0/arg1 describe an n-ary operator
}

var kindTable = map[Kind]KindInfo{
	KindValue:    {"VALUE", "V", false},
	KindMultiply: {"MULTIPLY", "M", true},
	KindAdd:      {"ADD", "A", true},
	KindReturn:   {"RETURN", "R", false},
}

// Info returns the metadata for a kind.
func (k Kind) Info() KindInfo {
	if info, ok := kindTable[k]; ok {
		return info
	}
	return KindInfo{Name: fmt.Sprintf("UNKNOWN_%02X", byte(k)), Tag: "?"}
}

// Valid reports whether k is one of the four defined kinds.
func (k Kind) Valid() bool {
	_, ok := kindTable[k]
	return ok
}

// IsBinop reports whether k is Multiply or Add.
func (k Kind) IsBinop() bool {
	return k.Info().Binop
}

// String implements the Stringer interface.
func (k Kind) String() string {
	return k.Info().Name
}

// Other swaps Multiply and Add. Value and Return map to themselves.
func (k Kind) Other() Kind {
	switch k {
	case KindMultiply:
		return KindAdd
	case KindAdd:
		return KindMultiply
	default:
		return k
	}
}

// Symbol returns the ASCII operator symbol for Multiply ("*") or Add ("+").
func (k Kind) Symbol() (string, error) {
	switch k {
	case KindMultiply:
		return "*", nil
	case KindAdd:
		return "+", nil
	default:
		return "", fmt.Errorf("program: %s has no operator symbol", k)
	}
}
