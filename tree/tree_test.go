package tree

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/bennorth/countdown-numbers-solver/pprint"
	"github.com/bennorth/countdown-numbers-solver/program"
)

func mustParse(t *testing.T, line string) Node {
	t.Helper()
	n, err := ParseFlat(line)
	if err != nil {
		t.Fatalf("ParseFlat(%q): %v", line, err)
	}
	return n
}

func TestParseFlat(t *testing.T) {
	got := mustParse(t, "V(24) V(13) A(+-) V(99) M(-+) R")
	want := &Op{
		Kind: program.KindMultiply,
		Children: []Node{
			&Op{Kind: program.KindAdd, Children: []Node{Leaf{24}, Leaf{13}}, Inverted: []bool{false, true}},
			Leaf{99},
		},
		Inverted: []bool{true, false},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestParseFlatErrors(t *testing.T) {
	if _, err := ParseFlat("V(1) V(2) R"); !errors.Is(err, ErrLeftover) {
		t.Errorf("two values: err = %v, want ErrLeftover", err)
	}
	if _, err := ParseFlat("A(++) R"); !errors.Is(err, pprint.ErrStackUnderflow) {
		t.Errorf("bare add: err = %v, want ErrStackUnderflow", err)
	}
	if _, err := ParseFlat("Q(1)"); err == nil {
		t.Error("unknown token should fail")
	}
}

func TestFromProgram(t *testing.T) {
	cards := pprint.Cards{24, 13, 99, 7}
	code := program.NewBuilder().
		Value(0).Value(1).Add(2, 0b10).Value(2).Multiply(2, 0b01).Return().
		Value(3).Return().
		Bytes()

	nodes, err := FromProgram(cards, code)
	if err != nil {
		t.Fatalf("FromProgram: %v", err)
	}
	if len(nodes) != 2 {
		t.Fatalf("got %d trees, want 2", len(nodes))
	}
	if diff := cmp.Diff(mustParse(t, "V(24) V(13) A(+-) V(99) M(-+) R"), nodes[0]); diff != "" {
		t.Errorf("tree 0 (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(Node(Leaf{7}), nodes[1]); diff != "" {
		t.Errorf("tree 1 (-want +got):\n%s", diff)
	}
}

func TestFromProgramErrors(t *testing.T) {
	cards := pprint.Cards{1, 2, 3, 4, 5, 6}
	if _, err := FromProgram(cards, []byte{0, 0}); !errors.Is(err, program.ErrTruncated) {
		t.Errorf("truncated: err = %v", err)
	}
	if _, err := FromProgram(cards, program.Encode(program.Value(8))); !errors.Is(err, pprint.ErrCardIndex) {
		t.Errorf("card index: err = %v", err)
	}
	if _, err := FromProgram(cards, program.Encode(program.Value(0), program.Multiply(2, 3))); !errors.Is(err, pprint.ErrStackUnderflow) {
		t.Errorf("underflow: err = %v", err)
	}
}

func TestFormat(t *testing.T) {
	tests := []struct {
		line string
		want string
	}{
		{"V(24) V(13) A(+-) V(99) M(-+) R", "99 ÷ (24 − 13)"},
		{"V(100) V(5) V(2) M(+--) R", "100 ÷ 5 ÷ 2"},
		{"V(7) R", "7"},
	}
	for _, tt := range tests {
		got := FormatTop(mustParse(t, tt.line), pprint.Unicode)
		if got != tt.want {
			t.Errorf("FormatTop(%q) = %q, want %q", tt.line, got, tt.want)
		}
	}
}

func TestAbsorb(t *testing.T) {
	// (1 + 2) subtracted from 3: the inner addends become subtrahends.
	n := Absorb(mustParse(t, "V(1) V(2) A(++) V(3) A(-+) R"))
	want := &Op{
		Kind:     program.KindAdd,
		Children: []Node{Leaf{1}, Leaf{2}, Leaf{3}},
		Inverted: []bool{true, true, false},
	}
	if diff := cmp.Diff(Node(want), n); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestAbsorbKeepsUnlikeKinds(t *testing.T) {
	n := Absorb(mustParse(t, "V(2) V(3) M(++) V(4) A(++) R"))
	op, ok := n.(*Op)
	if !ok || len(op.Children) != 2 {
		t.Fatalf("multiply child should not be absorbed into add: %#v", n)
	}
}

func TestCanonicalKey(t *testing.T) {
	tests := []struct {
		line string
		want string
	}{
		{"V(42) R", "42"},
		{"V(1) V(2) A(++) V(3) A(-+) R", "(+ +3 -1 -2)"},
		{"V(3) V(1) V(2) A(++) A(+-) R", "(+ +3 -1 -2)"},
		{"V(2) V(3) M(++) V(4) A(++) R", "(+ +4 +(* +2 +3))"},
		{"V(24) V(13) A(+-) V(99) M(-+) R", "(* +99 -(+ +24 -13))"},
	}
	for _, tt := range tests {
		if got := CanonicalKey(mustParse(t, tt.line)); got != tt.want {
			t.Errorf("CanonicalKey(%q) = %q, want %q", tt.line, got, tt.want)
		}
	}
}

func TestKeyCompare(t *testing.T) {
	leaf := Leaf{100}.Key()
	mul := mustParse(t, "V(1) V(2) M(++) R").Key()
	add := mustParse(t, "V(1) V(2) A(++) R").Key()
	add3 := mustParse(t, "V(1) V(2) V(3) A(+++) R").Key()

	if leaf.Compare(mul) >= 0 {
		t.Error("leaf should sort before multiply")
	}
	if mul.Compare(add) >= 0 {
		t.Error("multiply should sort before add")
	}
	if add.Compare(add3) >= 0 {
		t.Error("shorter operand list should sort first")
	}
	if add.Compare(add) != 0 {
		t.Error("key should equal itself")
	}
	if (Leaf{3}).Key().Compare(Leaf{5}.Key()) >= 0 {
		t.Error("leaves compare by value")
	}
}

func TestCompare(t *testing.T) {
	a := []Node{
		mustParse(t, "V(3) V(1) V(2) A(++) A(+-) R"),
		mustParse(t, "V(5) R"),
	}
	b := []Node{
		mustParse(t, "V(1) V(2) A(++) V(3) A(-+) R"),
		mustParse(t, "V(2) V(3) A(++) R"),
		mustParse(t, "V(3) V(2) A(++) R"),
	}

	c := Compare(a, b)
	if c.Equivalent() {
		t.Error("sets differ but Equivalent() = true")
	}
	if diff := cmp.Diff([]string{"5"}, c.OnlyA); diff != "" {
		t.Errorf("OnlyA (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"(+ +2 +3)"}, c.OnlyB); diff != "" {
		t.Errorf("OnlyB (-want +got):\n%s", diff)
	}
	if c.Common != 1 {
		t.Errorf("Common = %d, want 1", c.Common)
	}
	if diff := cmp.Diff([]string{"(+ +2 +3)"}, c.Duplicates()); diff != "" {
		t.Errorf("Duplicates (-want +got):\n%s", diff)
	}

	if !Compare(a, a).Equivalent() {
		t.Error("a set should be equivalent to itself")
	}
}
