package main

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// result is the structured form of one decoded input.
type result struct {
	Name   string   `json:"name" yaml:"name"`
	ID     string   `json:"id" yaml:"id"`
	Cards  []int    `json:"cards,omitempty" yaml:"cards,omitempty"`
	Target int      `json:"target,omitempty" yaml:"target,omitempty"`
	Lines  []string `json:"lines" yaml:"lines"`
}

// writeResults prints results in the configured output format. Text output
// gives one line per entry, headed by the input name when there are
// several inputs.
func writeResults(w io.Writer, format string, results []result) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		return enc.Encode(results)

	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(results); err != nil {
			return err
		}
		return enc.Close()

	default:
		for i, r := range results {
			if len(results) > 1 {
				if i > 0 {
					fmt.Fprintln(w)
				}
				fmt.Fprintf(w, "# %s\n", r.Name)
			}
			for _, line := range r.Lines {
				fmt.Fprintln(w, line)
			}
		}
		return nil
	}
}
