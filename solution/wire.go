package solution

import (
	"fmt"
	"os"

	"github.com/fxamacker/cbor/v2"
)

// cborEncMode uses canonical mode so equal batches encode identically.
var cborEncMode cbor.EncMode

func init() {
	em, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("solution: failed to create CBOR enc mode: %v", err))
	}
	cborEncMode = em
}

// Marshal serializes a Batch to CBOR bytes.
func Marshal(b *Batch) ([]byte, error) {
	return cborEncMode.Marshal(b)
}

// Unmarshal deserializes a Batch from CBOR bytes and validates it.
func Unmarshal(data []byte) (*Batch, error) {
	var b Batch
	if err := cbor.Unmarshal(data, &b); err != nil {
		return nil, fmt.Errorf("solution: unmarshal batch: %w", err)
	}
	if err := b.Validate(); err != nil {
		return nil, err
	}
	return &b, nil
}

// MarshalList serializes several batches as one CBOR array.
func MarshalList(bs []*Batch) ([]byte, error) {
	return cborEncMode.Marshal(bs)
}

// UnmarshalList deserializes a CBOR array of batches.
func UnmarshalList(data []byte) ([]*Batch, error) {
	var bs []*Batch
	if err := cbor.Unmarshal(data, &bs); err != nil {
		return nil, fmt.Errorf("solution: unmarshal batch list: %w", err)
	}
	for _, b := range bs {
		if err := b.Validate(); err != nil {
			return nil, err
		}
	}
	return bs, nil
}

// ReadFile loads a single CBOR-encoded batch.
func ReadFile(path string) (*Batch, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", path, err)
	}
	b, err := Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return b, nil
}

// WriteFile stores a batch as CBOR.
func WriteFile(path string, b *Batch) error {
	data, err := Marshal(b)
	if err != nil {
		return fmt.Errorf("solution: marshal batch: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}
