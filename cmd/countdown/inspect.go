package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/bennorth/countdown-numbers-solver/program"
)

func newDisasmCmd(a *app) *cobra.Command {
	var src source
	cmd := &cobra.Command{
		Use:   "disasm [files...]",
		Short: "List programs one instruction per line",
		Long: `Prints an offset-annotated listing of each program. When cards are known
every VALUE instruction is annotated with the card it pushes. Listing stops
at the first malformed instruction.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			inputs, err := a.loadInputs(args, src, false)
			if err != nil {
				return err
			}
			results := make([]result, len(inputs))
			for i, in := range inputs {
				var listing string
				if in.hasCards {
					listing = program.DisassembleWithCards(in.batch.Programs, in.batch.Cards[:])
				} else {
					listing = program.Disassemble(in.batch.Programs)
				}
				results[i] = result{Name: in.name, ID: in.batch.ID, Lines: splitLines(listing)}
				if in.hasCards {
					results[i].Cards = in.batch.Cards[:]
				}
			}
			return writeResults(cmd.OutOrStdout(), a.cfg.Output.Format, results)
		},
	}
	cmd.Flags().StringVar(&src.hex, "hex", "", "program bytes as hex (whitespace ignored)")
	cmd.Flags().IntSliceVar(&src.cards, "cards", nil, "the six card values")
	return cmd
}

func newFlatCmd(a *app) *cobra.Command {
	var src source
	cmd := &cobra.Command{
		Use:   "flat [files...]",
		Short: "Print programs in flat form",
		Long: `Prints each program on one line in flat form, for example
"V(24) V(13) A(+-) V(99) M(-+) R". Flat lines can be fed to "countdown
compare".`,
		RunE: func(cmd *cobra.Command, args []string) error {
			inputs, err := a.loadInputs(args, src, true)
			if err != nil {
				return err
			}
			results := make([]result, len(inputs))
			for i, in := range inputs {
				lines, err := program.FormatFlat(in.batch.Programs, in.batch.Cards[:])
				if err != nil {
					return err
				}
				results[i] = result{Name: in.name, ID: in.batch.ID, Cards: in.batch.Cards[:], Lines: lines}
			}
			return writeResults(cmd.OutOrStdout(), a.cfg.Output.Format, results)
		},
	}
	cmd.Flags().StringVar(&src.hex, "hex", "", "program bytes as hex (whitespace ignored)")
	cmd.Flags().IntSliceVar(&src.cards, "cards", nil, "the six card values")
	return cmd
}

func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}
