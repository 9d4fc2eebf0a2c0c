package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bennorth/countdown-numbers-solver/archive"
	"github.com/bennorth/countdown-numbers-solver/pprint"
)

func newDecodeCmd(a *app) *cobra.Command {
	var (
		src     source
		workers int
		save    bool
	)
	cmd := &cobra.Command{
		Use:   "decode [files...]",
		Short: "Decode programs into infix expressions",
		Long: `Decodes every program in the given inputs and prints one expression per
Return instruction.

Files ending in .cbor are read as solution batches and carry their own
cards. Other files are raw instruction buffers and take their cards from
--cards or countdown.toml.`,
		Example: `  countdown decode --cards 25,50,75,100,3,6 --hex 000000 000100 020203 030000
  countdown decode --format json solutions.cbor
  countdown decode --save solutions.cbor`,
		RunE: func(cmd *cobra.Command, args []string) error {
			inputs, err := a.loadInputs(args, src, true)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("workers") {
				workers = a.cfg.Decode.Workers
			}
			return a.runDecode(cmd, inputs, workers, save)
		},
	}
	f := cmd.Flags()
	f.StringVar(&src.hex, "hex", "", "program bytes as hex (whitespace ignored)")
	f.IntSliceVar(&src.cards, "cards", nil, "the six card values")
	f.IntVar(&src.target, "target", 0, "target recorded with archived batches")
	f.IntVar(&workers, "workers", 0, "parallel decoders (0: one per CPU)")
	f.BoolVar(&save, "save", false, "store decoded batches in the archive")
	return cmd
}

func (a *app) runDecode(cmd *cobra.Command, inputs []input, workers int, save bool) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	jobs := make([]pprint.Job, len(inputs))
	for i, in := range inputs {
		jobs[i] = in.batch.Job()
		jobs[i].Name = in.name
	}
	decoder := pprint.NewDecoder(a.opts)
	exprs, err := decoder.DecodeBatches(ctx, jobs, workers)
	if err != nil {
		return err
	}

	if save {
		if err := a.saveAll(ctx, inputs, exprs); err != nil {
			return err
		}
	}

	results := make([]result, len(inputs))
	for i, in := range inputs {
		results[i] = result{
			Name:   in.name,
			ID:     in.batch.ID,
			Cards:  in.batch.Cards[:],
			Target: in.batch.Target,
			Lines:  exprs[i],
		}
	}
	return writeResults(cmd.OutOrStdout(), a.cfg.Output.Format, results)
}

func (a *app) saveAll(ctx context.Context, inputs []input, exprs [][]string) error {
	ar, err := archive.Open(a.cfg.ArchivePath())
	if err != nil {
		return err
	}
	defer ar.Close()

	for i, in := range inputs {
		if err := ar.Save(ctx, in.batch, exprs[i]); err != nil {
			return fmt.Errorf("%s: %w", in.name, err)
		}
	}
	return nil
}
