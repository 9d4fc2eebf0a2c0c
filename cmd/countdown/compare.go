package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bennorth/countdown-numbers-solver/tree"
)

var errSetsDiffer = errors.New("solution sets differ")

func newCompareCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare <a> <b>",
		Short: "Compare two solvers' solution sets",
		Long: `Canonicalises every solution in two inputs and reports the solutions found
by only one side. Inputs are CBOR batches (.cbor) or text files with one
flat-form program per line; blank lines and lines starting with # are
skipped.

Exits non-zero when the sets differ.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			na, err := loadTrees(args[0])
			if err != nil {
				return err
			}
			nb, err := loadTrees(args[1])
			if err != nil {
				return err
			}
			c := tree.Compare(na, nb)
			writeComparison(cmd.OutOrStdout(), args[0], args[1], len(na), len(nb), c)
			if !c.Equivalent() {
				return errSetsDiffer
			}
			return nil
		},
	}
	return cmd
}

// loadTrees reads the solution trees held in path.
func loadTrees(path string) ([]tree.Node, error) {
	if strings.EqualFold(filepath.Ext(path), ".cbor") {
		bs, err := readBatches(path)
		if err != nil {
			return nil, err
		}
		var nodes []tree.Node
		for _, b := range bs {
			ns, err := tree.FromProgram(b.Cards, b.Programs)
			if err != nil {
				return nil, fmt.Errorf("%s: batch %s: %w", path, b.ID, err)
			}
			nodes = append(nodes, ns...)
		}
		return nodes, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", path, err)
	}
	defer f.Close()

	var nodes []tree.Node
	sc := bufio.NewScanner(f)
	for lineNo := 1; sc.Scan(); lineNo++ {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		n, err := tree.ParseFlat(line)
		if err != nil {
			return nil, fmt.Errorf("%s:%d: %w", path, lineNo, err)
		}
		nodes = append(nodes, n)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", path, err)
	}
	return nodes, nil
}

func writeComparison(w io.Writer, nameA, nameB string, lenA, lenB int, c tree.Comparison) {
	fmt.Fprintf(w, "%s: %d solutions, %d distinct\n", nameA, lenA, len(c.CountA))
	fmt.Fprintf(w, "%s: %d solutions, %d distinct\n", nameB, lenB, len(c.CountB))
	fmt.Fprintf(w, "common: %d\n", c.Common)
	section := func(title string, keys []string, counts map[string]int) {
		if len(keys) == 0 {
			return
		}
		fmt.Fprintf(w, "%s:\n", title)
		for _, k := range keys {
			if counts != nil {
				fmt.Fprintf(w, "  %s x%d\n", k, counts[k])
			} else {
				fmt.Fprintf(w, "  %s\n", k)
			}
		}
	}
	section("only in "+nameA, c.OnlyA, nil)
	section("only in "+nameB, c.OnlyB, nil)
	section("repeated in "+nameB, c.Duplicates(), c.CountB)
}
