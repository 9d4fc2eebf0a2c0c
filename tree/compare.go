package tree

import "sort"

// Comparison reports how two solvers' solution sets differ once each
// solution is canonicalised.
type Comparison struct {
	OnlyA  []string       // canonical keys found only in A, sorted
	OnlyB  []string       // canonical keys found only in B, sorted
	Common int            // distinct keys found in both
	CountA map[string]int // multiplicity of each key in A
	CountB map[string]int // multiplicity of each key in B
}

// Equivalent reports whether both sides produced the same distinct
// solutions.
func (c Comparison) Equivalent() bool {
	return len(c.OnlyA) == 0 && len(c.OnlyB) == 0
}

// Duplicates returns the keys of B that occur more than once, sorted.
// A solver that emits the same solution in several orders shows up here.
func (c Comparison) Duplicates() []string {
	var dups []string
	for k, n := range c.CountB {
		if n > 1 {
			dups = append(dups, k)
		}
	}
	sort.Strings(dups)
	return dups
}

// Multiplicity counts the canonical keys of nodes.
func Multiplicity(nodes []Node) map[string]int {
	counts := make(map[string]int, len(nodes))
	for _, n := range nodes {
		counts[CanonicalKey(n)]++
	}
	return counts
}

// Compare canonicalises both solution sets and reports their differences.
func Compare(a, b []Node) Comparison {
	c := Comparison{
		CountA: Multiplicity(a),
		CountB: Multiplicity(b),
	}
	for k := range c.CountA {
		if _, ok := c.CountB[k]; ok {
			c.Common++
		} else {
			c.OnlyA = append(c.OnlyA, k)
		}
	}
	for k := range c.CountB {
		if _, ok := c.CountA[k]; !ok {
			c.OnlyB = append(c.OnlyB, k)
		}
	}
	sort.Strings(c.OnlyA)
	sort.Strings(c.OnlyB)
	return c
}
