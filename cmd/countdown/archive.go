package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/bennorth/countdown-numbers-solver/archive"
)

func newArchiveCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "archive",
		Short: "Inspect the archive of decoded batches",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List archived batches, newest first",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.withArchive(cmd, func(ctx context.Context, ar *archive.Archive) error {
					list, err := ar.Batches(ctx)
					if err != nil {
						return err
					}
					w := cmd.OutOrStdout()
					for _, s := range list {
						fmt.Fprintf(w, "%s  %v  %d expressions  %s\n",
							s.ID, s.Cards, s.Expressions, s.CreatedAt.Format(time.RFC3339))
					}
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "show <id>",
			Short: "Print the expressions of an archived batch",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.withArchive(cmd, func(ctx context.Context, ar *archive.Archive) error {
					b, err := ar.Batch(ctx, args[0])
					if err != nil {
						return err
					}
					exprs, err := ar.Expressions(ctx, args[0])
					if err != nil {
						return err
					}
					return writeResults(cmd.OutOrStdout(), a.cfg.Output.Format, []result{{
						Name:   b.ID,
						ID:     b.ID,
						Cards:  b.Cards[:],
						Target: b.Target,
						Lines:  exprs,
					}})
				})
			},
		},
		&cobra.Command{
			Use:   "delete <id>",
			Short: "Remove an archived batch",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.withArchive(cmd, func(ctx context.Context, ar *archive.Archive) error {
					return ar.Delete(ctx, args[0])
				})
			},
		},
	)
	return cmd
}

func (a *app) withArchive(cmd *cobra.Command, fn func(context.Context, *archive.Archive) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ar, err := archive.Open(a.cfg.ArchivePath())
	if err != nil {
		return err
	}
	defer ar.Close()
	return fn(ctx, ar)
}
