// Package solution defines the wire format the solver uses to hand
// accepted programs to the decoder.
package solution

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/bennorth/countdown-numbers-solver/pprint"
	"github.com/bennorth/countdown-numbers-solver/program"
)

// Batch is every accepted program the solver produced for one set of
// cards. Programs is the raw concatenation of 3-byte instructions.
type Batch struct {
	ID       string       `cbor:"1,keyasint"`
	Cards    pprint.Cards `cbor:"2,keyasint"`
	Target   int          `cbor:"3,keyasint,omitempty"` // informational only
	Programs []byte       `cbor:"4,keyasint"`
	Solver   string       `cbor:"5,keyasint,omitempty"` // e.g. "tree", "rpn"
}

// NewBatch creates a batch with a fresh ID.
func NewBatch(cards pprint.Cards, target int, programs []byte) *Batch {
	return &Batch{
		ID:       uuid.NewString(),
		Cards:    cards,
		Target:   target,
		Programs: programs,
	}
}

// Validate checks the ID and the framing of the program buffer. It does not
// run the programs.
func (b *Batch) Validate() error {
	if _, err := uuid.Parse(b.ID); err != nil {
		return fmt.Errorf("solution: batch id %q: %w", b.ID, err)
	}
	if len(b.Programs)%program.Width != 0 {
		return fmt.Errorf("solution: batch %s: %w", b.ID, program.ErrTruncated)
	}
	return nil
}

// Job adapts the batch for pprint.Decoder.DecodeBatches.
func (b *Batch) Job() pprint.Job {
	return pprint.Job{Name: b.ID, Cards: b.Cards, Code: b.Programs}
}

// CountReturns is the number of programs in the batch.
func (b *Batch) CountReturns() int {
	n := 0
	for i := 0; i+program.Width <= len(b.Programs); i += program.Width {
		if program.Kind(b.Programs[i]) == program.KindReturn {
			n++
		}
	}
	return n
}
