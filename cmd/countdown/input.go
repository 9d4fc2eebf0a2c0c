package main

import (
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bennorth/countdown-numbers-solver/pprint"
	"github.com/bennorth/countdown-numbers-solver/solution"
)

// input is one program buffer with the cards it draws from.
type input struct {
	name     string
	batch    *solution.Batch
	hasCards bool
}

// source describes where the programs of a command come from.
type source struct {
	hex    string
	cards  []int
	target int
}

var errNoInput = errors.New("no input: give program files or --hex")

// loadInputs reads every program buffer named by args and src. Raw buffers
// take their cards from --cards or the configuration; CBOR batches carry
// their own. When needCards is false a raw buffer without cards is still
// accepted.
func (a *app) loadInputs(args []string, src source, needCards bool) ([]input, error) {
	raw := func(name string, code []byte) (input, error) {
		cards, err := a.cards(src.cards)
		if err != nil {
			if needCards {
				return input{}, err
			}
			return input{name: name, batch: solution.NewBatch(pprint.Cards{}, src.target, code)}, nil
		}
		return input{name: name, batch: solution.NewBatch(cards, src.target, code), hasCards: true}, nil
	}

	var out []input
	if src.hex != "" {
		code, err := hex.DecodeString(strings.Join(strings.Fields(src.hex), ""))
		if err != nil {
			return nil, fmt.Errorf("--hex: %w", err)
		}
		in, err := raw("hex", code)
		if err != nil {
			return nil, err
		}
		out = append(out, in)
	}

	for _, path := range args {
		if strings.EqualFold(filepath.Ext(path), ".cbor") {
			bs, err := readBatches(path)
			if err != nil {
				return nil, err
			}
			for i, b := range bs {
				name := path
				if len(bs) > 1 {
					name = fmt.Sprintf("%s[%d]", path, i)
				}
				out = append(out, input{name: name, batch: b, hasCards: true})
			}
			continue
		}

		code, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("cannot read %s: %w", path, err)
		}
		in, err := raw(path, code)
		if err != nil {
			return nil, err
		}
		out = append(out, in)
	}

	if len(out) == 0 {
		return nil, errNoInput
	}
	return out, nil
}

// readBatches loads a CBOR file holding either one batch or an array of
// them.
func readBatches(path string) ([]*solution.Batch, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", path, err)
	}
	// Major type 4 is a CBOR array.
	if len(data) > 0 && data[0]>>5 == 4 {
		bs, err := solution.UnmarshalList(data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		return bs, nil
	}
	b, err := solution.Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return []*solution.Batch{b}, nil
}
